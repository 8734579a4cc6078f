package mathutil

import (
	"fmt"
	"math/cmplx"
)

// CVec3 is a 3-component complex vector, typically a field phasor.
type CVec3 [3]complex128

func (a CVec3) Add(b CVec3) CVec3 {
	return CVec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub returns a − b.
func (a CVec3) Sub(b CVec3) CVec3 {
	var out CVec3
	for n := 0; n < 3; n++ {
		out[n] = a[n] - b[n]
	}
	return out
}

// Scale returns cs·v.
func (v CVec3) Scale(cs complex128) CVec3 {
	var out CVec3
	for n := 0; n < 3; n++ {
		out[n] = cs * v[n]
	}
	return out
}

// ScaleReal returns s·v.
func (v CVec3) ScaleReal(s float64) CVec3 {
	return v.Scale(complex(s, 0))
}

// Dot returns the Hermitian inner product Σ conj(aᵢ)·bᵢ.
// The left operand is conjugated, so a.Dot(b) == conj(b.Dot(a)).
func (a CVec3) Dot(b CVec3) complex128 {
	var out complex128
	for n := 0; n < 3; n++ {
		out += cmplx.Conj(a[n]) * b[n]
	}
	return out
}

// DotReal returns Σ conj(aᵢ)·bᵢ for a real right operand.
func (a CVec3) DotReal(b Vec3) complex128 {
	return a.Dot(b.Complex())
}

func (a CVec3) Cross(b CVec3) CVec3 {
	return CVec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// CrossReal returns a × b for a complex a and real b.
func (a CVec3) CrossReal(b Vec3) CVec3 {
	return a.Cross(b.Complex())
}

// Conj returns the component-wise complex conjugate.
func (v CVec3) Conj() CVec3 {
	var out CVec3
	for n := 0; n < 3; n++ {
		out[n] = cmplx.Conj(v[n])
	}
	return out
}

// Abs returns sqrt(v.Dot(v.Conj())). The result stays complex so it
// composes with phasor arithmetic; for vectors with a common phase it is
// real up to that phase.
func (v CVec3) Abs() complex128 {
	return cmplx.Sqrt(v.Dot(v.Conj()))
}

// Norm2 returns the Hermitian power Σ|vᵢ|², always real and non-negative.
func (v CVec3) Norm2() float64 {
	return real(v.Dot(v))
}

// Normalize returns v/Abs(v). A zero Abs yields ErrZeroMagnitude.
func (v CVec3) Normalize() (CVec3, error) {
	cnorm := v.Abs()
	if cnorm == 0 {
		return CVec3{}, fmt.Errorf("mathutil: normalize %v: %w", v, ErrZeroMagnitude)
	}
	var out CVec3
	for n := 0; n < 3; n++ {
		out[n] = v[n] / cnorm
	}
	return out, nil
}

// Snell reflects a complex vector about a real normal:
// v − 2(v·n)n, with v conjugated in the dot product.
func (v CVec3) Snell(normal Vec3) CVec3 {
	cfactor := 2 * v.DotReal(normal)
	return v.Sub(normal.ScaleComplex(cfactor))
}

// Real returns the real parts of v.
func (v CVec3) Real() Vec3 {
	return Vec3{real(v[0]), real(v[1]), real(v[2])}
}

// Imag returns the imaginary parts of v.
func (v CVec3) Imag() Vec3 {
	return Vec3{imag(v[0]), imag(v[1]), imag(v[2])}
}
