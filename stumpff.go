package lambert

import "math"

/* Stumpff special functions, which parameterize orbital motion in the
universal variable. Both have a removable singularity at z=0, hence the three
analytic branches: the z=0 branch is the limit of the other two, so the
functions are continuous across the boundary. */

// stumpffC returns C(z).
func stumpffC(z float64) float64 {
	if z > 0 {
		sz := math.Sqrt(z)
		return (1 - math.Cos(sz)) / z
	}
	if z < 0 {
		sz := math.Sqrt(-z)
		return (1 - math.Cosh(sz)) / z
	}
	return 1 / 2.
}

// stumpffS returns S(z).
func stumpffS(z float64) float64 {
	if z > 0 {
		sz := math.Sqrt(z)
		return (sz - math.Sin(sz)) / math.Pow(sz, 3)
	}
	if z < 0 {
		sz := math.Sqrt(-z)
		return (math.Sinh(sz) - sz) / math.Pow(sz, 3)
	}
	return 1 / 6.
}
