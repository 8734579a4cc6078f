package texture

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/ftrvxmtrx/tga"
)

// DefaultThreshold is the open fraction below which a mask blocks.
const DefaultThreshold = 0.5

// Mask is an aperture blockage map. Open holds, per pixel, the product of
// luminance and alpha in [0,1]; dark or transparent pixels block.
type Mask struct {
	Width     int
	Height    int
	Open      []float64 // len = W*H, row 0 at the top
	Threshold float64
}

var supportedExt = map[string]bool{".tga": true, ".png": true, ".jpg": true, ".jpeg": true}

// LoadMask reads a TGA, PNG or JPEG file and converts it to a Mask.
func LoadMask(path string) (*Mask, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExt[ext] {
		return nil, fmt.Errorf("texture: unknown extension: %s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return FromImage(img), nil
}

// FromImage builds a Mask from any decoded image.
func FromImage(src image.Image) *Mask {
	b := src.Bounds()
	m := &Mask{
		Width:     b.Dx(),
		Height:    b.Dy(),
		Open:      make([]float64, b.Dx()*b.Dy()),
		Threshold: DefaultThreshold,
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			lum := (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
			m.Open[(y-b.Min.Y)*m.Width+(x-b.Min.X)] = lum * float64(c.A) / 255
		}
	}
	return m
}

// Blocked reports whether the mask is closed at (u,v); v grows upward.
// Coordinates outside [0,1] are clamped to the border.
func (m *Mask) Blocked(u, v float64) bool {
	if m.Width == 0 || m.Height == 0 {
		return false
	}
	return m.Sample(u, 1-v) < m.Threshold
}

// OpenFraction is the mean openness over all pixels. An empty mask blocks
// nothing and is fully open.
func (m *Mask) OpenFraction() float64 {
	if len(m.Open) == 0 {
		return 1
	}
	var sum float64
	for _, o := range m.Open {
		sum += o
	}
	return sum / float64(len(m.Open))
}
