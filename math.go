package lambert

import (
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

// norm returns the norm of a given vector which is supposed to be 3x1.
func norm(v []float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// unit returns the unit vector of a given vector.
func unit(a []float64) (b []float64) {
	n := norm(a)
	if floats.EqualWithinAbs(n, 0, 1e-12) {
		return []float64{0, 0, 0}
	}
	b = make([]float64, len(a))
	for i, val := range a {
		b[i] = val / n
	}
	return
}

// dot performs the inner product via mat64/BLAS.
func dot(a, b []float64) float64 {
	return mat64.Dot(mat64.NewVector(len(a), a), mat64.NewVector(len(b), b))
}

// cross performs the cross product.
func cross(a, b []float64) []float64 {
	return []float64{a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0]} // Cross product R x V.
}

// crossVec performs the cross product from two mat64.Vectors.
func crossVec(a, b *mat64.Vector) *mat64.Vector {
	rslt := mat64.NewVector(3, nil) // only support dim 3 (cross only defined in dims 3 and 7)
	rslt.SetVec(0, a.At(1, 0)*b.At(2, 0)-a.At(2, 0)*b.At(1, 0))
	rslt.SetVec(1, a.At(2, 0)*b.At(0, 0)-a.At(0, 0)*b.At(2, 0))
	rslt.SetVec(2, a.At(0, 0)*b.At(1, 0)-a.At(1, 0)*b.At(0, 0))
	return rslt
}

// add returns the component-wise sum of two vectors of the same length.
func add(a, b []float64) (c []float64) {
	c = make([]float64, len(a))
	for i, val := range a {
		c[i] = val + b[i]
	}
	return
}

// sub returns the component-wise difference of two vectors of the same length.
func sub(a, b []float64) (c []float64) {
	c = make([]float64, len(a))
	for i, val := range a {
		c[i] = val - b[i]
	}
	return
}

// scale returns the vector scaled by the provided factor.
func scale(a []float64, f float64) (c []float64) {
	c = make([]float64, len(a))
	for i, val := range a {
		c[i] = val * f
	}
	return
}
