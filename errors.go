package lambert

import "errors"

// Error kinds returned by the solver and propagator. All of them are terminal
// for the call: no partial result is ever returned alongside one of these.
var (
	// ErrInvalidInput flags malformed vectors or non-positive μ, Δt or steps.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDegenerateGeometry flags colinear radii: no unique transfer plane.
	ErrDegenerateGeometry = errors.New("degenerate transfer geometry")
	// ErrConvergence flags an iteration cap reached before the tolerance.
	ErrConvergence = errors.New("did not converge")
	// ErrNumericalInstability flags a g coefficient too close to zero to divide.
	ErrNumericalInstability = errors.New("numerical instability")
)
