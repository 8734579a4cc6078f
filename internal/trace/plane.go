package trace

import (
	"fmt"
	"math"
	"math/cmplx"

	"reflector/internal/mathutil"
)

// Plane is an observation plane through Center with unit Normal.
type Plane struct {
	Center mathutil.Vec3
	Normal mathutil.Vec3
}

// Basis returns in-plane unit axes (u, v) with u × v = normal.
func (pl Plane) Basis() (mathutil.Vec3, mathutil.Vec3, error) {
	n, err := pl.Normal.Normalize()
	if err != nil {
		return mathutil.Vec3{}, mathutil.Vec3{}, fmt.Errorf("trace: plane normal: %w", err)
	}
	ref := mathutil.Vec3{0, 1, 0}
	if math.Abs(n.Dot(ref)) > 0.999 {
		ref = mathutil.Vec3{1, 0, 0}
	}
	u, err := ref.Cross(n).Normalize()
	if err != nil {
		return mathutil.Vec3{}, mathutil.Vec3{}, err
	}
	return u, n.Cross(u), nil
}

// Hit is a ray arriving on a plane.
type Hit struct {
	Pos    mathutil.Vec3
	X, Y   float64 // plane coordinates along Basis()
	E      mathutil.CVec3
	Power  float64 // Hermitian power E·E
	Weight float64
}

// PropagateToPlane carries rays forward to pl, applying the free-space
// phase exp(−jkL) along the way. Rays parallel to the plane or moving
// away from it are dropped.
func PropagateToPlane(rays []Ray, pl Plane, k float64) ([]Hit, error) {
	u, v, err := pl.Basis()
	if err != nil {
		return nil, err
	}
	n := u.Cross(v)

	hits := make([]Hit, 0, len(rays))
	for _, r := range rays {
		denom := n.Dot(r.Direction)
		if math.Abs(denom) < 1e-12 {
			continue
		}
		t := n.Dot(pl.Center.Sub(r.Origin)) / denom
		if t < 0 {
			continue
		}
		pos := r.Origin.Add(r.Direction.Scale(t))
		e := r.E.Scale(cmplx.Exp(complex(0, -k*t)))
		rel := pos.Sub(pl.Center)
		hits = append(hits, Hit{
			Pos:    pos,
			X:      rel.Dot(u),
			Y:      rel.Dot(v),
			E:      e,
			Power:  real(e.Dot(e)),
			Weight: r.Weight,
		})
	}
	return hits, nil
}
