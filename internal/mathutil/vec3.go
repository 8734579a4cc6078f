package mathutil

import (
	"errors"
	"fmt"
	"math"
)

// ErrZeroMagnitude is returned when a vector with zero magnitude is normalized.
var ErrZeroMagnitude = errors.New("zero magnitude")

// Vec3 is a 3-component real vector (value type, stack-allocated).
type Vec3 [3]float64

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub returns a − b.
func (a Vec3) Sub(b Vec3) Vec3 {
	var out Vec3
	for n := 0; n < 3; n++ {
		out[n] = a[n] - b[n]
	}
	return out
}

// Scale returns s·v.
func (v Vec3) Scale(s float64) Vec3 {
	var out Vec3
	for n := 0; n < 3; n++ {
		out[n] = s * v[n]
	}
	return out
}

// ScaleComplex returns cs·v as a complex vector.
func (v Vec3) ScaleComplex(cs complex128) CVec3 {
	var out CVec3
	for n := 0; n < 3; n++ {
		out[n] = cs * complex(v[n], 0)
	}
	return out
}

// Dot returns the Euclidean inner product Σ aᵢ·bᵢ.
func (a Vec3) Dot(b Vec3) float64 {
	var out float64
	for n := 0; n < 3; n++ {
		out += a[n] * b[n]
	}
	return out
}

// DotComplex returns Σ aᵢ·bᵢ. The real operand is self-conjugate, so
// nothing is conjugated.
func (a Vec3) DotComplex(b CVec3) complex128 {
	var out complex128
	for n := 0; n < 3; n++ {
		out += complex(a[n], 0) * b[n]
	}
	return out
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// CrossComplex returns a × b for a real a and complex b.
func (a Vec3) CrossComplex(b CVec3) CVec3 {
	return a.Complex().Cross(b)
}

// Len returns the magnitude sqrt(v·v).
func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v/|v|. A zero vector yields ErrZeroMagnitude.
func (v Vec3) Normalize() (Vec3, error) {
	l := v.Len()
	if l == 0 {
		return Vec3{}, fmt.Errorf("mathutil: normalize %v: %w", v, ErrZeroMagnitude)
	}
	var out Vec3
	for n := 0; n < 3; n++ {
		out[n] = v[n] / l
	}
	return out, nil
}

// Snell reflects v about the plane with the given normal:
// v − 2(v·n)n. The normal is expected to be unit length.
func (v Vec3) Snell(normal Vec3) Vec3 {
	factor := 2 * v.Dot(normal)
	return v.Sub(normal.Scale(factor))
}

// Complex widens v to a complex vector with zero imaginary parts.
func (v Vec3) Complex() CVec3 {
	return CVec3{complex(v[0], 0), complex(v[1], 0), complex(v[2], 0)}
}
