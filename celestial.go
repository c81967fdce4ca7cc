package lambert

import (
	"fmt"
	"strings"
)

// CelestialObject defines a celestial object. The solver only needs its
// gravitational parameter; the radius is kept for surface-departure scenarios.
type CelestialObject struct {
	Name   string
	Radius float64 // km
	μ      float64 // km^3/s^2
}

// GM returns μ (which is unexported because it's a lowercase letter).
func (c CelestialObject) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial object is the same.
func (c *CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.μ == b.μ
}

// CelestialObjectFromString returns the object from its name.
func CelestialObjectFromString(name string) (CelestialObject, error) {
	switch strings.ToLower(name) {
	case "sun":
		return Sun, nil
	case "earth":
		return Earth, nil
	case "moon":
		return Moon, nil
	case "mars":
		return Mars, nil
	default:
		return CelestialObject{}, fmt.Errorf("undefined body '%s': %w", name, ErrInvalidInput)
	}
}

/* Definitions */

// Sun is our closest star.
var Sun = CelestialObject{"Sun", 695700, 1.32712440017987e11}

// Earth is home.
var Earth = CelestialObject{"Earth", 6378.1363, 398600.4418}

// Moon is orbiting Earth.
var Moon = CelestialObject{"Moon", 1737.4, 4902.800066}

// Mars is the vacation place.
var Mars = CelestialObject{"Mars", 3396.19, 4.28283100e4}
