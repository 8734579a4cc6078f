package raster

import (
	"math"

	"reflector/internal/trace"
)

// Extent is the plane region covered by a buffer: [XMin, XMax] × [YMin, YMax].
type Extent struct {
	XMin, XMax, YMin, YMax float64
}

func (e Extent) empty() bool {
	return e.XMax <= e.XMin || e.YMax <= e.YMin
}

// FitExtent returns a square extent around all hits with a relative margin.
func FitExtent(hits []trace.Hit, margin float64) Extent {
	if len(hits) == 0 {
		return Extent{-1, 1, -1, 1}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, h := range hits {
		minX = math.Min(minX, h.X)
		maxX = math.Max(maxX, h.X)
		minY = math.Min(minY, h.Y)
		maxY = math.Max(maxY, h.Y)
	}

	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	span := math.Max(maxX-minX, maxY-minY)
	if span < 1e-9 {
		span = 1e-9
	}
	half := span / 2 * (1 + margin)
	return Extent{cx - half, cx + half, cy - half, cy + half}
}

// FieldBuffer accumulates weighted ray power per pixel. Row 0 is the top
// of the plane (largest y).
type FieldBuffer struct {
	Width  int
	Height int
	Extent Extent
	Power  []float64 // len = W*H
	Count  []int     // hits per pixel, len = W*H
}

// NewFieldBuffer allocates a zeroed buffer over ext.
func NewFieldBuffer(w, h int, ext Extent) *FieldBuffer {
	n := w * h
	return &FieldBuffer{
		Width:  w,
		Height: h,
		Extent: ext,
		Power:  make([]float64, n),
		Count:  make([]int, n),
	}
}

// pixel maps plane coordinates to a buffer index; ok is false outside.
func (fb *FieldBuffer) pixel(x, y float64) (int, bool) {
	e := fb.Extent
	if e.empty() {
		return 0, false
	}
	px := int(math.Floor((x - e.XMin) / (e.XMax - e.XMin) * float64(fb.Width)))
	py := int(math.Floor((e.YMax - y) / (e.YMax - e.YMin) * float64(fb.Height)))
	if px == fb.Width && x == e.XMax {
		px--
	}
	if py == fb.Height && y == e.YMin {
		py--
	}
	if px < 0 || px >= fb.Width || py < 0 || py >= fb.Height {
		return 0, false
	}
	return py*fb.Width + px, true
}

// Splat adds each hit's Power·Weight to its pixel and returns how many
// hits landed inside the extent.
func (fb *FieldBuffer) Splat(hits []trace.Hit) int {
	landed := 0
	for _, h := range hits {
		i, ok := fb.pixel(h.X, h.Y)
		if !ok {
			continue
		}
		fb.Power[i] += h.Power * h.Weight
		fb.Count[i]++
		landed++
	}
	return landed
}

// Peak returns the largest accumulated pixel power.
func (fb *FieldBuffer) Peak() float64 {
	var peak float64
	for _, p := range fb.Power {
		if p > peak {
			peak = p
		}
	}
	return peak
}
