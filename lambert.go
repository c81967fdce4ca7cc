package lambert

import (
	"errors"
	"fmt"
	"math"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gonum/matrix/mat64"
)

const (
	// defaultMaxIterations caps the Newton iteration on the universal variable.
	defaultMaxIterations = 1000
	// defaultTolerance is the convergence tolerance on the Newton step.
	defaultTolerance = 1e-8
	// derivativeδz is the central finite difference step on z.
	derivativeδz = 1e-5
)

// TransferDirection selects which of the two arcs around the transfer plane
// to fly: the short way with the orbit normal along +z (prograde), or the
// complementary arc (retrograde).
type TransferDirection uint8

const (
	// Prograde is the default direction of motion.
	Prograde TransferDirection = iota
	// Retrograde selects the complementary arc around the full circle.
	Retrograde
)

func (d TransferDirection) String() string {
	switch d {
	case Prograde:
		return "prograde"
	case Retrograde:
		return "retrograde"
	default:
		panic("unknown transfer direction")
	}
}

// LambertSolver solves the Lambert boundary problem about a single central
// body: given two radii and a time of flight, it computes the conic arc
// connecting them. The solver only owns μ and the iteration settings; all
// other state is local to a Solve call, so a single instance is safe to use
// from concurrent goroutines.
type LambertSolver struct {
	μ             float64 // Gravitational parameter of the central body, km^3/s^2.
	MaxIterations int
	Tolerance     float64
	logger        kitlog.Logger
}

// NewLambertSolver returns a solver about a central body of gravitational
// parameter μ (km^3/s^2), with the default iteration settings.
func NewLambertSolver(μ float64) (*LambertSolver, error) {
	if μ <= 0 {
		return nil, fmt.Errorf("μ=%f must be strictly positive: %w", μ, ErrInvalidInput)
	}
	return &LambertSolver{μ, defaultMaxIterations, defaultTolerance, kitlog.NewNopLogger()}, nil
}

// NewLambertSolverForBody returns a solver about the provided celestial body.
func NewLambertSolverForBody(body CelestialObject) *LambertSolver {
	s, err := NewLambertSolver(body.GM())
	if err != nil {
		panic(err) // All catalog bodies have a positive μ.
	}
	return s
}

// GM returns μ (which is unexported because it's a lowercase letter).
func (s *LambertSolver) GM() float64 {
	return s.μ
}

// SetLogger sets the logger used to report convergence information.
// The solver is silent by default.
func (s *LambertSolver) SetLogger(l kitlog.Logger) {
	s.logger = l
}

// Solve returns the departure and arrival velocities of the conic arc which
// connects R1 to R2 (3x1 vectors, km) in exactly Δt, flying in the requested
// direction. It iterates on the universal variable z with Newton's method
// until the time of flight implied by z matches Δt within the solver
// tolerance, then rebuilds the velocities from the f and g functions.
func (s *LambertSolver) Solve(R1, R2 *mat64.Vector, Δt time.Duration, dir TransferDirection) (V1, V2 *mat64.Vector, err error) {
	// Sanity checks
	R1r, _ := R1.Dims()
	R2r, _ := R2.Dims()
	if R1r != R2r || R1r != 3 {
		return nil, nil, fmt.Errorf("radii must be 3x1 vectors: %w", ErrInvalidInput)
	}
	if Δt <= 0 {
		return nil, nil, fmt.Errorf("time of flight %s must be strictly positive: %w", Δt, ErrInvalidInput)
	}
	Δt0 := Δt.Seconds()
	r1 := mat64.Norm(R1, 2)
	r2 := mat64.Norm(R2, 2)
	cosΔν := mat64.Dot(R1, R2) / (r1 * r2)
	// Clamp to [-1, 1] to guard against floating point overshoot.
	cosΔν = math.Max(math.Min(cosΔν, 1), -1)
	sinΔν := math.Sqrt(1 - cosΔν*cosΔν)
	if math.Abs(sinΔν) < s.Tolerance {
		return nil, nil, fmt.Errorf("radii are colinear, no unique transfer plane: %w", ErrDegenerateGeometry)
	}
	Δν := math.Acos(cosΔν)
	// The transfer plane normal decides whether the short arc matches the
	// requested direction of motion; if not, fly the complementary arc.
	normalZ := crossVec(R1, R2).At(2, 0)
	if (dir == Prograde && normalZ < 0) || (dir == Retrograde && normalZ >= 0) {
		sinΔν = -sinΔν
		Δν = 2*math.Pi - Δν
	}

	A := sinΔν * math.Sqrt(r1*r2/(1-cosΔν))
	if A == 0 {
		return nil, nil, fmt.Errorf("Δν ~=0 and A ~=0, cannot compute trajectory: %w", ErrDegenerateGeometry)
	}

	yAt := func(z float64) float64 {
		c2 := stumpffC(z)
		if c2 == 0 {
			return math.Inf(1)
		}
		return r1 + r2 + A*(z*stumpffS(z)-1)/math.Sqrt(c2)
	}
	// tofAt is only valid where C(z) > 0 and y(z) >= 0; outside of the
	// admissible family it returns +Inf.
	tofAt := func(z float64) float64 {
		y := yAt(z)
		if y < 0 {
			return math.Inf(1)
		}
		c2 := stumpffC(z)
		if c2 == 0 {
			return math.Inf(1)
		}
		χ := math.Sqrt(y / c2)
		return (math.Pow(χ, 3)*stumpffS(z) + A*math.Sqrt(y)) / math.Sqrt(s.μ)
	}

	// Newton iteration on z, starting at the parabolic case z=0 and kept
	// inside the single revolution window by bisection: the time of flight
	// grows with z there, so every evaluation tightens one side of the
	// bracket, and a Newton step which would leave the bracket is replaced
	// with the midpoint.
	zLow, zHigh := -4*math.Pi*math.Pi, 4*math.Pi*math.Pi
	z := 0.0
	ratio := math.Inf(1)
	var iteration int
	for math.Abs(ratio) > s.Tolerance {
		if iteration >= s.MaxIterations {
			return nil, nil, fmt.Errorf("%w on z after %d iterations", ErrConvergence, s.MaxIterations)
		}
		iteration++
		if y := yAt(z); y < 0 || stumpffC(z) == 0 {
			// Outside of the admissible family. y drops below zero on the
			// low z side when A > 0 and on the high z side when A < 0, so
			// tighten that side and bisect.
			if A > 0 {
				zLow = z
			} else {
				zHigh = z
			}
			mid := (zLow + zHigh) / 2
			ratio = z - mid
			z = mid
			continue
		}
		Δtz := tofAt(z)
		if Δtz < Δt0 {
			zLow = z
		} else {
			zHigh = z
		}
		dΔtdz := (tofAt(z+derivativeδz) - tofAt(z-derivativeδz)) / (2 * derivativeδz)
		if dΔtdz == 0 {
			break // Stagnation: accept the current z.
		}
		ratio = (Δtz - Δt0) / dΔtdz
		zNext := z - ratio
		if zNext <= zLow || zNext >= zHigh {
			zNext = (zLow + zHigh) / 2
			ratio = z - zNext
		}
		z = zNext
	}
	s.logger.Log("level", "debug", "subsys", "lambert", "z", z, "Δν", Δν, "iterations", iteration, "dir", dir)

	// Rebuild the velocities from the f and g functions.
	y := yAt(z)
	if y < 0 || math.IsInf(y, 0) || math.IsNaN(y) {
		return nil, nil, fmt.Errorf("y=%f at z=%f is not a physical transfer: %w", y, z, ErrNumericalInstability)
	}
	f := 1 - y/r1
	gDot := 1 - y/r2
	g := A * math.Sqrt(y/s.μ)
	if math.Abs(g) < s.Tolerance {
		return nil, nil, fmt.Errorf("g=%f is too close to zero to divide: %w", g, ErrNumericalInstability)
	}
	V1 = mat64.NewVector(3, nil)
	V2 = mat64.NewVector(3, nil)
	R2scaled := mat64.NewVector(3, nil)
	V1.AddScaledVec(R2, -f, R1)
	V1.ScaleVec(1/g, V1)
	R2scaled.ScaleVec(gDot, R2)
	V2.AddScaledVec(R2scaled, -1, R1)
	V2.ScaleVec(1/g, V2)
	return V1, V2, nil
}

// IsTerminal returns whether the provided error is one of the solver error
// kinds, i.e. the call failed with no partial result.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrDegenerateGeometry) ||
		errors.Is(err, ErrConvergence) || errors.Is(err, ErrNumericalInstability)
}
