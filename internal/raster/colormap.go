package raster

import (
	"image"
	"math"
)

// ColorStop is one control point of a colour ramp, t in [0,1].
type ColorStop struct {
	T       float64
	R, G, B float64 // linear, 0..1
}

// Ramp is a piecewise-linear colour ramp in linear light.
type Ramp []ColorStop

// DefaultRamp runs black → purple → orange → pale yellow.
func DefaultRamp() Ramp {
	return Ramp{
		{0.00, 0.000, 0.000, 0.004},
		{0.35, 0.180, 0.020, 0.280},
		{0.65, 0.780, 0.180, 0.060},
		{0.90, 0.980, 0.650, 0.040},
		{1.00, 0.990, 0.950, 0.600},
	}
}

// At returns the linear colour at t, clamped to the ramp ends.
func (r Ramp) At(t float64) (float64, float64, float64) {
	if len(r) == 0 {
		return t, t, t
	}
	if t <= r[0].T {
		return r[0].R, r[0].G, r[0].B
	}
	for i := 1; i < len(r); i++ {
		if t <= r[i].T {
			a, b := r[i-1], r[i]
			w := (t - a.T) / (b.T - a.T)
			return a.R + (b.R-a.R)*w, a.G + (b.G-a.G)*w, a.B + (b.B-a.B)*w
		}
	}
	last := r[len(r)-1]
	return last.R, last.G, last.B
}

// Display gamma for linear → sRGB-ish encoding.
const invGamma = 1.0 / 2.2

// ToImage maps pixel power in dB relative to the peak onto the ramp.
// Values below −rangeDB clamp to the ramp start; pixels no ray reached
// are transparent.
func (fb *FieldBuffer) ToImage(ramp Ramp, rangeDB float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	peak := fb.Peak()
	if peak <= 0 || rangeDB <= 0 {
		return img
	}

	for i, p := range fb.Power {
		if fb.Count[i] == 0 {
			continue
		}
		t := 0.0
		if p > 0 {
			db := 10 * math.Log10(p/peak)
			t = math.Max(0, 1+db/rangeDB)
		}
		r, g, b := ramp.At(t)
		o := i * 4
		img.Pix[o] = encode8(r)
		img.Pix[o+1] = encode8(g)
		img.Pix[o+2] = encode8(b)
		img.Pix[o+3] = 255
	}
	return img
}

func encode8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Pow(v, invGamma)*255 + 0.5)
}
