package trace

import (
	"fmt"
	"math/cmplx"

	"reflector/internal/mathutil"
)

// Eta0 is the impedance of free space in ohms.
const Eta0 = 376.730313668

// Source evaluates an incident field at a point. dir is the unit
// propagation direction there, e the complex electric field phasor.
type Source interface {
	Field(r mathutil.Vec3) (dir mathutil.Vec3, e mathutil.CVec3, err error)
}

// transverse removes the component of p along the unit direction d.
func transverse(p mathutil.CVec3, d mathutil.Vec3) mathutil.CVec3 {
	return p.Sub(d.ScaleComplex(d.DotComplex(p)))
}

// PointSource radiates a spherical wave A·p⊥·exp(−jkR)/R.
type PointSource struct {
	Position     mathutil.Vec3
	Polarization mathutil.CVec3
	Amplitude    float64
	K            float64
}

func (s PointSource) Field(r mathutil.Vec3) (mathutil.Vec3, mathutil.CVec3, error) {
	d := r.Sub(s.Position)
	R := d.Len()
	dir, err := d.Normalize()
	if err != nil {
		return mathutil.Vec3{}, mathutil.CVec3{}, fmt.Errorf("trace: point source at %v: %w", r, err)
	}
	phasor := complex(s.Amplitude/R, 0) * cmplx.Exp(complex(0, -s.K*R))
	return dir, transverse(s.Polarization, dir).Scale(phasor), nil
}

// PlaneWave is a uniform wave A·p⊥·exp(−jk d·r).
type PlaneWave struct {
	Direction    mathutil.Vec3
	Polarization mathutil.CVec3
	Amplitude    float64
	K            float64
}

func (w PlaneWave) Field(r mathutil.Vec3) (mathutil.Vec3, mathutil.CVec3, error) {
	dir, err := w.Direction.Normalize()
	if err != nil {
		return mathutil.Vec3{}, mathutil.CVec3{}, fmt.Errorf("trace: plane wave direction: %w", err)
	}
	phasor := complex(w.Amplitude, 0) * cmplx.Exp(complex(0, -w.K*dir.Dot(r)))
	return dir, transverse(w.Polarization, dir).Scale(phasor), nil
}
