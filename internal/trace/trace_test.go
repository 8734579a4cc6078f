package trace

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflector/internal/mathutil"
	"reflector/internal/surface"
)

const lambda = 210.0

func dish(t *testing.T, f, rmax float64) *surface.Surface {
	t.Helper()
	p := surface.Parabola{Focus: mathutil.Vec3{0, 0, f}}
	s, err := p.Generate("p1", surface.GridSpec{
		Mode:  surface.GridUV,
		LimsX: [2]float64{0.05 * rmax, rmax},
		LimsY: [2]float64{0, 2 * math.Pi},
		Size:  [2]int{25, 31},
	})
	require.NoError(t, err)
	return s
}

func TestPointSourceTransverse(t *testing.T) {
	src := PointSource{
		Polarization: mathutil.CVec3{1, 1i, 0},
		Amplitude:    1,
		K:            2 * math.Pi / lambda,
	}
	points := []mathutil.Vec3{{1, 0, 0}, {3, -2, 5}, {0, 0, -7}}
	for _, p := range points {
		dir, e, err := src.Field(p)
		require.NoError(t, err)
		assert.InDelta(t, 0, cmplx.Abs(dir.DotComplex(e)), 1e-12)
		assert.InDelta(t, 1.0, dir.Len(), 1e-12)
	}

	_, _, err := src.Field(mathutil.Vec3{})
	assert.ErrorIs(t, err, mathutil.ErrZeroMagnitude)
}

func TestPlaneWavePhase(t *testing.T) {
	k := 2 * math.Pi / lambda
	w := PlaneWave{
		Direction:    mathutil.Vec3{0, 0, -2},
		Polarization: mathutil.CVec3{1, 0, 0},
		Amplitude:    3,
		K:            k,
	}
	_, e0, err := w.Field(mathutil.Vec3{0, 0, 0})
	require.NoError(t, err)
	_, e1, err := w.Field(mathutil.Vec3{5, 5, -lambda / 4})
	require.NoError(t, err)

	assert.InDelta(t, 0, cmplx.Abs(e0[0]-3), 1e-12)
	// A quarter wavelength downstream lags by π/2.
	assert.InDelta(t, 0, cmplx.Abs(e1[0]-complex(0, -3)), 1e-12)
}

func TestReflectFromFocus(t *testing.T) {
	f := 12e3
	k := 2 * math.Pi / lambda
	s := dish(t, f, 12.5e3)
	src := PointSource{
		Position:     mathutil.Vec3{0, 0, f},
		Polarization: mathutil.CVec3{0, 1, 0},
		Amplitude:    1e4,
		K:            k,
	}

	rays, err := Reflect(src, s, nil)
	require.NoError(t, err)
	require.Len(t, rays, s.Len())

	axis := mathutil.Vec3{0, 0, 1}
	for _, r := range rays {
		// Collimated along the axis.
		for n := 0; n < 3; n++ {
			assert.InDelta(t, axis[n], r.Direction[n], 1e-9)
		}
		// Transverse to the new direction.
		assert.InDelta(t, 0, cmplx.Abs(r.Direction.DotComplex(r.E)), 1e-9)
		// H is E rotated about the direction and scaled by 1/η.
		assert.InDelta(t, r.E.Norm2()/(Eta0*Eta0), r.H.Norm2(), 1e-18)
	}
}

func TestReflectPreservesPower(t *testing.T) {
	s := dish(t, 500, 400)
	src := PointSource{
		Position:     mathutil.Vec3{0, 0, 500},
		Polarization: mathutil.CVec3{complex(1, 1), complex(0, -2), 0},
		Amplitude:    1,
		K:            2 * math.Pi / lambda,
	}
	rays, err := Reflect(src, s, nil)
	require.NoError(t, err)
	for k, r := range rays {
		_, ei, err := src.Field(s.Points[k])
		require.NoError(t, err)
		assert.InEpsilon(t, ei.Norm2(), r.E.Norm2(), 1e-9)
	}
}

func TestReflectCurrentIsTangential(t *testing.T) {
	s := dish(t, 500, 400)
	src := PlaneWave{
		Direction:    mathutil.Vec3{0.1, 0, -1},
		Polarization: mathutil.CVec3{1, 0, 0},
		Amplitude:    1,
		K:            2 * math.Pi / lambda,
	}
	rays, err := Reflect(src, s, nil)
	require.NoError(t, err)
	require.NotEmpty(t, rays)
	for k, r := range rays {
		assert.InDelta(t, 0, cmplx.Abs(s.Normals[k].DotComplex(r.J)), 1e-12)
	}
}

func TestReflectMaskAndBackside(t *testing.T) {
	s := dish(t, 500, 400)
	src := PointSource{
		Position:     mathutil.Vec3{0, 0, 500},
		Polarization: mathutil.CVec3{1, 0, 0},
		Amplitude:    1,
		K:            1,
	}

	left := MaskFunc(func(u, v float64) bool { return u < 0.5 })
	rays, err := Reflect(src, s, left)
	require.NoError(t, err)
	assert.Less(t, len(rays), s.Len())
	for _, r := range rays {
		assert.GreaterOrEqual(t, r.Origin[0], -1e-9)
	}

	// Illuminated from behind, nothing reflects.
	behind := PlaneWave{Direction: mathutil.Vec3{0, 0, 1}, Polarization: mathutil.CVec3{1, 0, 0}, Amplitude: 1, K: 1}
	rays, err = Reflect(behind, s, nil)
	require.NoError(t, err)
	assert.Empty(t, rays)
}

// Every path focus → dish → aperture plane has the same length, so the
// aperture field is in phase.
func TestApertureEquiphase(t *testing.T) {
	f, zp := 1000.0, 1500.0
	k := 2 * math.Pi / lambda
	s := dish(t, f, 800)
	src := PointSource{
		Position:     mathutil.Vec3{0, 0, f},
		Polarization: mathutil.CVec3{1, 0, 0},
		Amplitude:    1,
		K:            k,
	}
	rays, err := Reflect(src, s, nil)
	require.NoError(t, err)

	hits, err := PropagateToPlane(rays, Plane{Center: mathutil.Vec3{0, 0, zp}, Normal: mathutil.Vec3{0, 0, 1}}, k)
	require.NoError(t, err)
	require.Len(t, hits, len(rays))

	ref := cmplx.Exp(complex(0, -k*(f+zp)))
	for i, h := range hits {
		assert.InDelta(t, zp, h.Pos[2], 1e-6)
		assert.InDelta(t, rays[i].Origin[0], h.X, 1e-6)
		assert.InDelta(t, rays[i].Origin[1], h.Y, 1e-6)
		assert.InDelta(t, h.E.Norm2(), h.Power, 1e-18)

		// Strip the common phase; what remains is real.
		for n := 0; n < 3; n++ {
			c := h.E[n] / ref
			assert.InDelta(t, 0, imag(c), 1e-6*cmplx.Abs(h.E[n])+1e-15)
		}
	}
}

func TestPropagateSkipsParallelAndBehind(t *testing.T) {
	pl := Plane{Center: mathutil.Vec3{0, 0, 10}, Normal: mathutil.Vec3{0, 0, 1}}
	rays := []Ray{
		{Origin: mathutil.Vec3{0, 0, 0}, Direction: mathutil.Vec3{1, 0, 0}},
		{Origin: mathutil.Vec3{0, 0, 0}, Direction: mathutil.Vec3{0, 0, -1}},
		{Origin: mathutil.Vec3{1, 2, 0}, Direction: mathutil.Vec3{0, 0, 1}, E: mathutil.CVec3{1, 0, 0}},
	}
	hits, err := PropagateToPlane(rays, pl, 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 1.0, hits[0].X)
	assert.Equal(t, 2.0, hits[0].Y)

	_, err = PropagateToPlane(rays, Plane{}, 0)
	assert.ErrorIs(t, err, mathutil.ErrZeroMagnitude)
}

func TestPlaneBasis(t *testing.T) {
	normals := []mathutil.Vec3{{0, 0, 1}, {0, 1, 0}, {1, 1, 1}, {-3, 0.2, 0}}
	for _, raw := range normals {
		u, v, err := Plane{Normal: raw}.Basis()
		require.NoError(t, err)
		n, _ := raw.Normalize()
		w := u.Cross(v)
		for i := 0; i < 3; i++ {
			assert.InDelta(t, n[i], w[i], 1e-12)
		}
		assert.InDelta(t, 0, u.Dot(v), 1e-12)
	}
}
