package lambert

import (
	"fmt"
	"math"
	"time"

	"github.com/gonum/matrix/mat64"
)

/* Closed-form sanity checks layered on the solver: none of these are consumed
by the iteration itself, they only serve as reference values. */

// OrbitalEnergy returns the specific mechanical energy ξ of the state (R, V),
// negative for a bound orbit.
func OrbitalEnergy(R, V *mat64.Vector, μ float64) float64 {
	v := mat64.Norm(V, 2)
	return v*v/2 - μ/mat64.Norm(R, 2)
}

// OrbitalPeriod returns the period of a circular orbit of radius r.
func OrbitalPeriod(r, μ float64) time.Duration {
	// The time package does not trivially handle fractions of a second, so let's
	// compute this in a convoluted way...
	seconds := 2 * math.Pi * math.Sqrt(math.Pow(r, 3)/μ)
	duration, _ := time.ParseDuration(fmt.Sprintf("%.6fs", seconds))
	return duration
}

// HohmannTransferTime returns the time of flight of the minimum energy two
// impulse transfer between circular orbits of radii rI and rF.
func HohmannTransferTime(rI, rF, μ float64) time.Duration {
	aTransfer := 0.5 * (rI + rF)
	seconds := math.Pi * math.Sqrt(math.Pow(aTransfer, 3)/μ)
	duration, _ := time.ParseDuration(fmt.Sprintf("%.6fs", seconds))
	return duration
}

// Hohmann computes an Hohmann transfer. It returns the departure and arrival
// velocities, and the time of flight.
// To get final computations:
// ΔvInit = vDeparture - vI
// ΔvFinal = vArrival - vF
func Hohmann(rI, rF, μ float64) (vDeparture, vArrival float64, tof time.Duration) {
	aTransfer := 0.5 * (rI + rF)
	vDeparture = math.Sqrt((2 * μ / rI) - (μ / aTransfer))
	vArrival = math.Sqrt((2 * μ / rF) - (μ / aTransfer))
	tof = HohmannTransferTime(rI, rF, μ)
	return
}

// EscapeVelocity returns the escape velocity at radius r.
func EscapeVelocity(r, μ float64) float64 {
	return math.Sqrt(2 * μ / r)
}
