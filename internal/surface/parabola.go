package surface

import (
	"errors"
	"fmt"
	"math"

	"reflector/internal/mathutil"
)

// ErrInvalidGrid is returned for grid sizes below 2 or empty limits.
var ErrInvalidGrid = errors.New("surface: invalid grid")

// GridMode selects how the parameter grid is laid out.
type GridMode int

const (
	// GridXY samples a Cartesian x/y rectangle in the reflector's local frame.
	GridXY GridMode = iota
	// GridUV samples radius (LimsX) and azimuth (LimsY, radians).
	GridUV
)

// GridSpec describes the sampling of a surface.
type GridSpec struct {
	Mode  GridMode
	LimsX [2]float64
	LimsY [2]float64
	Size  [2]int
}

func (g GridSpec) validate() error {
	if g.Size[0] < 2 || g.Size[1] < 2 {
		return fmt.Errorf("%w: size %v", ErrInvalidGrid, g.Size)
	}
	if g.LimsX[0] >= g.LimsX[1] || g.LimsY[0] >= g.LimsY[1] {
		return fmt.Errorf("%w: limits %v %v", ErrInvalidGrid, g.LimsX, g.LimsY)
	}
	if g.Mode == GridUV && g.LimsX[0] < 0 {
		return fmt.Errorf("%w: negative radius %v", ErrInvalidGrid, g.LimsX[0])
	}
	return nil
}

// Parabola is a paraboloid of revolution given by its focus and vertex.
type Parabola struct {
	Focus  mathutil.Vec3
	Vertex mathutil.Vec3
	// Rotation is applied about the vertex after placement. Zero value means none.
	Rotation mathutil.Mat3
}

// FocalLength returns |focus − vertex|.
func (p Parabola) FocalLength() float64 {
	return p.Focus.Sub(p.Vertex).Len()
}

// frame returns the rotation taking the local +z axis onto the vertex→focus axis.
func (p Parabola) frame() (mathutil.Mat3, error) {
	axis, err := p.Focus.Sub(p.Vertex).Normalize()
	if err != nil {
		return mathutil.Mat3{}, fmt.Errorf("surface: parabola axis: %w", err)
	}
	z := mathutil.Vec3{0, 0, 1}
	k := z.Cross(axis)
	if k.Len() < 1e-15 {
		if axis.Dot(z) > 0 {
			return mathutil.Mat3Identity(), nil
		}
		return mathutil.RotX(math.Pi), nil
	}
	k, err = k.Normalize()
	if err != nil {
		return mathutil.Mat3{}, fmt.Errorf("surface: parabola frame: %w", err)
	}
	return mathutil.AxisAngle(k, math.Acos(axis.Dot(z))), nil
}

// Generate samples the paraboloid on the grid. Normals point to the
// concave (focus) side and have unit length.
func (p Parabola) Generate(name string, g GridSpec) (*Surface, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	R, err := p.frame()
	if err != nil {
		return nil, err
	}
	if p.Rotation != (mathutil.Mat3{}) {
		R = mathutil.Mat3Mul(p.Rotation, R)
	}

	f := p.FocalLength()
	nu, nv := g.Size[0], g.Size[1]
	du := (g.LimsX[1] - g.LimsX[0]) / float64(nu-1)
	dv := (g.LimsY[1] - g.LimsY[0]) / float64(nv-1)
	// A full turn in azimuth is periodic: drop the end point so the seam is
	// sampled once, and every column carries a full weight.
	periodic := g.Mode == GridUV && g.LimsY[1]-g.LimsY[0] >= 2*math.Pi-1e-12
	if periodic {
		dv = (g.LimsY[1] - g.LimsY[0]) / float64(nv)
	}

	// Mask coordinates span the projected aperture.
	half := math.Max(math.Abs(g.LimsX[0]), math.Abs(g.LimsX[1]))
	halfY := math.Max(math.Abs(g.LimsY[0]), math.Abs(g.LimsY[1]))
	if g.Mode == GridUV {
		halfY = half
	}

	s := newSurface(name, nu, nv)
	for i := 0; i < nu; i++ {
		a := g.LimsX[0] + float64(i)*du
		for j := 0; j < nv; j++ {
			b := g.LimsY[0] + float64(j)*dv

			x, y, jac := a, b, 1.0
			if g.Mode == GridUV {
				x, y, jac = a*math.Cos(b), a*math.Sin(b), a
			}
			rho2 := x*x + y*y
			local := mathutil.Vec3{x, y, rho2 / (4 * f)}
			n, err := mathutil.Vec3{-x / (2 * f), -y / (2 * f), 1}.Normalize()
			if err != nil {
				return nil, fmt.Errorf("surface: %s normal at (%d,%d): %w", name, i, j, err)
			}

			s.Points = append(s.Points, p.Vertex.Add(R.MulVec3(local)))
			s.Normals = append(s.Normals, R.MulVec3(n))
			w := trapezoid(i, nu)
			if !periodic {
				w *= trapezoid(j, nv)
			}
			s.Area = append(s.Area, math.Sqrt(1+rho2/(4*f*f))*jac*du*dv*w)
			s.U = append(s.U, (x+half)/(2*half))
			s.V = append(s.V, (y+halfY)/(2*halfY))
		}
	}
	return s, nil
}

// trapezoid is the end-inclusive quadrature weight of sample i of n.
func trapezoid(i, n int) float64 {
	if i == 0 || i == n-1 {
		return 0.5
	}
	return 1
}
