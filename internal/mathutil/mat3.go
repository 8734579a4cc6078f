package mathutil

import (
	"errors"
	"math"
)

// ErrSingular is returned when inverting a matrix with zero determinant.
var ErrSingular = errors.New("mathutil: singular matrix")

// Mat3 is a 3×3 matrix stored row-major: [r0c0, r0c1, r0c2, r1c0, ...].
type Mat3 [9]float64

func Mat3Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Mat3Mul returns a × b.
func Mat3Mul(a, b Mat3) Mat3 {
	var m Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[r*3+c] = a.Row(r).Dot(b.Col(c))
		}
	}
	return m
}

// Row returns row r as a vector.
func (m Mat3) Row(r int) Vec3 {
	return Vec3{m[r*3], m[r*3+1], m[r*3+2]}
}

// Col returns column c as a vector.
func (m Mat3) Col(c int) Vec3 {
	return Vec3{m[c], m[3+c], m[6+c]}
}

// MulVec3 returns M × v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{m.Row(0).Dot(v), m.Row(1).Dot(v), m.Row(2).Dot(v)}
}

// MulCVec3 returns M × v for a complex v.
func (m Mat3) MulCVec3(v CVec3) CVec3 {
	return CVec3{m.Row(0).DotComplex(v), m.Row(1).DotComplex(v), m.Row(2).DotComplex(v)}
}

// Det is the scalar triple product of the rows.
func (m Mat3) Det() float64 {
	return m.Row(0).Dot(m.Row(1).Cross(m.Row(2)))
}

// Inverse returns M⁻¹ built from row cross products (adjugate / det).
func (m Mat3) Inverse() (Mat3, error) {
	d := m.Det()
	if d == 0 {
		return Mat3Identity(), ErrSingular
	}
	c0 := m.Row(1).Cross(m.Row(2)).Scale(1 / d)
	c1 := m.Row(2).Cross(m.Row(0)).Scale(1 / d)
	c2 := m.Row(0).Cross(m.Row(1)).Scale(1 / d)
	return Mat3{
		c0[0], c1[0], c2[0],
		c0[1], c1[1], c2[1],
		c0[2], c1[2], c2[2],
	}, nil
}

func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// RotX returns a rotation matrix around the X axis. Angle in radians.
func RotX(a float64) Mat3 {
	return AxisAngle(Vec3{1, 0, 0}, a)
}

func RotY(a float64) Mat3 {
	return AxisAngle(Vec3{0, 1, 0}, a)
}

func RotZ(a float64) Mat3 {
	return AxisAngle(Vec3{0, 0, 1}, a)
}

// AxisAngle returns the Rodrigues rotation of angle a (radians) about a
// unit axis k: R = I + sin(a)K + (1−cos(a))K².
func AxisAngle(k Vec3, a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	t := 1 - c
	x, y, z := k[0], k[1], k[2]
	return Mat3{
		c + t*x*x, t*x*y - s*z, t*x*z + s*y,
		t*x*y + s*z, c + t*y*y, t*y*z - s*x,
		t*x*z - s*y, t*y*z + s*x, c + t*z*z,
	}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
