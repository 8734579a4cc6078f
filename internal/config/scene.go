package config

import (
	"errors"
	"fmt"
	"math"

	"reflector/internal/mathutil"
	"reflector/internal/surface"
	"reflector/internal/trace"
)

// ErrInvalidScene marks a scene description that cannot be built.
var ErrInvalidScene = errors.New("config: invalid scene")

// Complex is a JSON-friendly [re, im] pair.
type Complex [2]float64

func (c Complex) Value() complex128 { return complex(c[0], c[1]) }

// CVec is a complex 3-vector written as three [re, im] pairs.
type CVec [3]Complex

func (v CVec) Value() mathutil.CVec3 {
	return mathutil.CVec3{v[0].Value(), v[1].Value(), v[2].Value()}
}

// Grid describes the reflector sampling. Mode is "xy" or "uv".
type Grid struct {
	Mode  string     `json:"mode"`
	LimsX [2]float64 `json:"lims_x"`
	LimsY [2]float64 `json:"lims_y"`
	Size  [2]int     `json:"size"`
}

// Reflector is a paraboloid given by focus and vertex, optionally rotated
// about the vertex by Euler angles applied X, then Y, then Z.
type Reflector struct {
	Focus       mathutil.Vec3 `json:"focus"`
	Vertex      mathutil.Vec3 `json:"vertex"`
	RotationDeg mathutil.Vec3 `json:"rotation_deg"`
	Grid        Grid          `json:"grid"`
}

// Source is either a "point" source or a "plane" wave.
type Source struct {
	Kind         string        `json:"kind"`
	Position     mathutil.Vec3 `json:"position"`
	Direction    mathutil.Vec3 `json:"direction"`
	Polarization CVec          `json:"polarization"`
	// Amplitude defaults to 1 when omitted.
	Amplitude *float64 `json:"amplitude,omitempty"`
}

// Aperture is the observation plane.
type Aperture struct {
	// Center defaults to the reflector focus when omitted.
	Center *mathutil.Vec3 `json:"center,omitempty"`
	Normal mathutil.Vec3  `json:"normal"`
	// HalfWidth fixes the rendered extent; zero fits the hits.
	HalfWidth float64 `json:"half_width"`
}

// Scene is one reflector/source/aperture setup to render.
type Scene struct {
	Name      string    `json:"name"`
	Lambda    float64   `json:"lambda"`
	Reflector Reflector `json:"reflector"`
	Source    Source    `json:"source"`
	Aperture  Aperture  `json:"aperture"`
	Mask      string    `json:"mask"`
}

// DefaultScene is a 25 m prime-focus dish with a 600 mm vertex hole, fed
// by a point source at its focus and observed in the focal plane.
func DefaultScene() Scene {
	focus := mathutil.Vec3{0, 0, 12e3}
	return Scene{
		Name:   "dro",
		Lambda: 210,
		Reflector: Reflector{
			Focus: focus,
			Grid: Grid{
				Mode:  "uv",
				LimsX: [2]float64{300, 12.5e3},
				LimsY: [2]float64{0, 2 * math.Pi},
				Size:  [2]int{201, 201},
			},
		},
		Source: Source{
			Kind:         "point",
			Position:     focus,
			Polarization: CVec{{1, 0}, {0, 0}, {0, 0}},
		},
		Aperture: Aperture{Normal: mathutil.Vec3{0, 0, 1}},
	}
}

// K returns the wavenumber 2π/λ.
func (s Scene) K() float64 {
	return 2 * math.Pi / s.Lambda
}

func (s Scene) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidScene)
	}
	if s.Lambda <= 0 {
		return fmt.Errorf("%w: %s: lambda %v", ErrInvalidScene, s.Name, s.Lambda)
	}
	return nil
}

// Parabola returns the reflector geometry.
func (s Scene) Parabola() surface.Parabola {
	p := surface.Parabola{Focus: s.Reflector.Focus, Vertex: s.Reflector.Vertex}
	if r := s.Reflector.RotationDeg; r != (mathutil.Vec3{}) {
		p.Rotation = mathutil.Mat3Mul(mathutil.RotZ(mathutil.Deg2Rad(r[2])),
			mathutil.Mat3Mul(mathutil.RotY(mathutil.Deg2Rad(r[1])), mathutil.RotX(mathutil.Deg2Rad(r[0]))))
	}
	return p
}

// GridSpec converts the grid description.
func (s Scene) GridSpec() (surface.GridSpec, error) {
	g := s.Reflector.Grid
	spec := surface.GridSpec{LimsX: g.LimsX, LimsY: g.LimsY, Size: g.Size}
	switch g.Mode {
	case "", "xy":
		spec.Mode = surface.GridXY
	case "uv":
		spec.Mode = surface.GridUV
	default:
		return surface.GridSpec{}, fmt.Errorf("%w: %s: grid mode %q", ErrInvalidScene, s.Name, g.Mode)
	}
	return spec, nil
}

// BuildSource returns the incident field model.
func (s Scene) BuildSource() (trace.Source, error) {
	src := s.Source
	amp := 1.0
	if src.Amplitude != nil {
		amp = *src.Amplitude
	}
	switch src.Kind {
	case "", "point":
		return trace.PointSource{Position: src.Position, Polarization: src.Polarization.Value(), Amplitude: amp, K: s.K()}, nil
	case "plane":
		return trace.PlaneWave{Direction: src.Direction, Polarization: src.Polarization.Value(), Amplitude: amp, K: s.K()}, nil
	default:
		return nil, fmt.Errorf("%w: %s: source kind %q", ErrInvalidScene, s.Name, src.Kind)
	}
}

// Plane returns the aperture plane, defaulting to +z through the focus.
func (s Scene) Plane() trace.Plane {
	pl := trace.Plane{Center: s.Reflector.Focus, Normal: s.Aperture.Normal}
	if s.Aperture.Center != nil {
		pl.Center = *s.Aperture.Center
	}
	if pl.Normal == (mathutil.Vec3{}) {
		pl.Normal = mathutil.Vec3{0, 0, 1}
	}
	return pl
}
