package lambert

import (
	"fmt"
	"math"
	"time"

	"github.com/ChristopherRabotin/ode"
	"github.com/gonum/matrix/mat64"
)

/* Handles the two-body propagation used to cross-check Lambert solutions. */

// DefaultSteps is the default number of RK4 steps of a propagation.
const DefaultSteps = 1000

// twoBodyProp integrates the unperturbed two-body equations of motion over a
// fixed number of RK4 steps. It implements ode.Integrable.
type twoBodyProp struct {
	μ     float64
	state []float64 // R then V
	steps int
	iter  int
}

// GetState implements the ode.Integrable interface.
func (p *twoBodyProp) GetState() []float64 {
	return p.state
}

// SetState implements the ode.Integrable interface.
func (p *twoBodyProp) SetState(t float64, s []float64) {
	p.state = s
}

// Stop implements the ode.Integrable interface: the step count is fixed ahead
// of time, so we count iterations instead of comparing times.
func (p *twoBodyProp) Stop(t float64) bool {
	if p.iter >= p.steps {
		return true
	}
	p.iter++
	return false
}

// Func implements the ode.Integrable interface with the central inverse
// square gravity -μ*R/|R|^3 and no perturbations.
func (p *twoBodyProp) Func(t float64, s []float64) []float64 {
	R := s[:3]
	acc := scale(R, -p.μ/math.Pow(norm(R), 3))
	return append(append(make([]float64, 0, 6), s[3:]...), acc...)
}

// PropagateOrbit advances the state (R0, V0) by Δt about a central body of
// gravitational parameter μ using classical RK4 with the fixed step Δt/steps.
// The step count is part of the contract: the same inputs always produce the
// same output to floating point precision.
func PropagateOrbit(R0, V0 *mat64.Vector, Δt time.Duration, μ float64, steps int) (R, V *mat64.Vector, err error) {
	R0r, _ := R0.Dims()
	V0r, _ := V0.Dims()
	if R0r != 3 || V0r != 3 {
		return nil, nil, fmt.Errorf("state must be two 3x1 vectors: %w", ErrInvalidInput)
	}
	if μ <= 0 {
		return nil, nil, fmt.Errorf("μ=%f must be strictly positive: %w", μ, ErrInvalidInput)
	}
	if steps <= 0 {
		return nil, nil, fmt.Errorf("steps=%d must be strictly positive: %w", steps, ErrInvalidInput)
	}
	state := make([]float64, 6)
	for i := 0; i < 3; i++ {
		state[i] = R0.At(i, 0)
		state[i+3] = V0.At(i, 0)
	}
	if Δt == 0 {
		return mat64.NewVector(3, state[:3]), mat64.NewVector(3, state[3:]), nil
	}
	// Two-body motion is time reversible: a negative Δt propagates forward
	// with the velocity negated, and the final velocity negated back.
	backward := Δt < 0
	if backward {
		Δt = -Δt
		for i := 3; i < 6; i++ {
			state[i] = -state[i]
		}
	}
	prop := &twoBodyProp{μ: μ, state: state, steps: steps}
	ode.NewRK4(0, Δt.Seconds()/float64(steps), prop).Solve() // Blocking.
	if backward {
		for i := 3; i < 6; i++ {
			prop.state[i] = -prop.state[i]
		}
	}
	return mat64.NewVector(3, prop.state[:3]), mat64.NewVector(3, prop.state[3:]), nil
}
