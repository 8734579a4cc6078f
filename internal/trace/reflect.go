package trace

import (
	"fmt"

	"reflector/internal/mathutil"
	"reflector/internal/surface"
)

// Mask reports whether the surface is blocked at mask coordinates (u,v).
type Mask interface {
	Blocked(u, v float64) bool
}

// MaskFunc adapts a function to Mask.
type MaskFunc func(u, v float64) bool

func (f MaskFunc) Blocked(u, v float64) bool { return f(u, v) }

// Ray is a reflected ray leaving one surface sample.
type Ray struct {
	Origin    mathutil.Vec3
	Direction mathutil.Vec3
	// E and H are the reflected fields at the origin, J the physical-optics
	// surface current 2n×H of the incident wave.
	E, H, J mathutil.CVec3
	Weight  float64
}

// Reflect illuminates a perfectly conducting surface with src. Samples that
// are masked or lit from behind produce no ray.
func Reflect(src Source, s *surface.Surface, mask Mask) ([]Ray, error) {
	rays := make([]Ray, 0, s.Len())
	for k, p := range s.Points {
		if mask != nil && mask.Blocked(s.U[k], s.V[k]) {
			continue
		}
		n := s.Normals[k]

		dir, ei, err := src.Field(p)
		if err != nil {
			return nil, fmt.Errorf("trace: %s sample %d: %w", s.Name, k, err)
		}
		if dir.Dot(n) >= 0 {
			continue
		}

		hi := dir.CrossComplex(ei).ScaleReal(1 / Eta0)
		rd := dir.Snell(n)
		// Tangential E vanishes on the conductor: Er = 2(n·Ei)n − Ei.
		er := n.ScaleComplex(2 * n.DotComplex(ei)).Sub(ei)

		rays = append(rays, Ray{
			Origin:    p,
			Direction: rd,
			E:         er,
			H:         rd.CrossComplex(er).ScaleReal(1 / Eta0),
			J:         n.CrossComplex(hi).ScaleReal(2),
			Weight:    s.Area[k],
		})
	}
	return rays, nil
}
