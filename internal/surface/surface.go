package surface

import "reflector/internal/mathutil"

// Surface is a sampled reflector. Slices are indexed i*Nv+j.
type Surface struct {
	Name    string
	Nu, Nv  int
	Points  []mathutil.Vec3
	Normals []mathutil.Vec3
	Area    []float64
	// U, V are mask coordinates in [0,1] over the projected aperture.
	U, V []float64
}

func newSurface(name string, nu, nv int) *Surface {
	n := nu * nv
	return &Surface{
		Name:    name,
		Nu:      nu,
		Nv:      nv,
		Points:  make([]mathutil.Vec3, 0, n),
		Normals: make([]mathutil.Vec3, 0, n),
		Area:    make([]float64, 0, n),
		U:       make([]float64, 0, n),
		V:       make([]float64, 0, n),
	}
}

// Len returns the number of sample points.
func (s *Surface) Len() int {
	return len(s.Points)
}

// TotalArea sums the area elements.
func (s *Surface) TotalArea() float64 {
	var a float64
	for _, da := range s.Area {
		a += da
	}
	return a
}
