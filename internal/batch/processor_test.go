package batch

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflector/internal/config"
	"reflector/internal/mathutil"
	"reflector/internal/texture"
)

func smallScene(name string) config.Scene {
	s := config.DefaultScene()
	s.Name = name
	s.Reflector.Grid.Size = [2]int{21, 33}
	return s
}

func writeHalfMask(t *testing.T, dir string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if x >= 4 {
				img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
			}
		}
	}
	f, err := os.Create(filepath.Join(dir, "half.png"))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func newConfig(t *testing.T) Config {
	t.Helper()
	maskDir := t.TempDir()
	writeHalfMask(t, maskDir)
	return Config{
		OutputDir:      t.TempDir(),
		Masks:          texture.NewCache(texture.BuildIndex(maskDir)),
		RenderSize:     32,
		Supersample:    2,
		DynamicRangeDB: 30,
		Workers:        2,
	}
}

func TestRun(t *testing.T) {
	cfg := newConfig(t)

	masked := smallScene("masked")
	masked.Mask = "half"

	badLambda := smallScene("bad-lambda")
	badLambda.Lambda = -1

	missingMask := smallScene("missing-mask")
	missingMask.Mask = "nope"

	scenes := []config.Scene{smallScene("open"), masked, badLambda, missingMask}
	results := Run(cfg, scenes)
	require.Len(t, results, len(scenes))

	open, half := results[0], results[1]
	require.True(t, open.Success, open.Error)
	require.True(t, half.Success, half.Error)

	assert.Equal(t, 21*33, open.Samples)
	assert.Equal(t, open.Samples, open.Rays)
	assert.Equal(t, open.Rays, open.Hits)
	assert.Greater(t, open.PeakPower, 0.0)
	assert.Less(t, half.Rays, open.Rays)

	for _, r := range results[:2] {
		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, r.Image))
		require.NoError(t, err)
		require.Greater(t, len(data), 12)
		assert.Equal(t, "RIFF", string(data[:4]))
		assert.Equal(t, "WEBP", string(data[8:12]))
	}

	assert.False(t, results[2].Success)
	assert.Contains(t, results[2].Error, "lambda")
	assert.False(t, results[3].Success)
	assert.Contains(t, results[3].Error, "nope")
}

func TestRunNoMaskDirectory(t *testing.T) {
	cfg := newConfig(t)
	cfg.Masks = nil
	s := smallScene("m")
	s.Mask = "half"
	results := Run(cfg, []config.Scene{s})
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "no mask directory")
}

func TestRunNothingReachesAperture(t *testing.T) {
	cfg := newConfig(t)
	s := smallScene("edge-on")
	s.Aperture.Normal = [3]float64{1, 0, 0}
	s.Aperture.Center = &mathutil.Vec3{-1e6, 0, 0}
	results := Run(cfg, []config.Scene{s})
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "no rays")
}

func TestRunEncodeFailureLeavesNoImage(t *testing.T) {
	orig := encodeWebP
	t.Cleanup(func() { encodeWebP = orig })
	encodeWebP = func(w io.Writer, img image.Image) error {
		w.Write([]byte("RIFF"))
		return errors.New("disk full")
	}

	cfg := newConfig(t)
	results := Run(cfg, []config.Scene{smallScene("broken")})
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Empty(t, results[0].Image)
	assert.Contains(t, results[0].Error, "disk full")
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, "broken.webp"))

	path := filepath.Join(t.TempDir(), "m.json")
	require.NoError(t, WriteManifest(path, results))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "broken.webp")
}

func TestWriteWebPUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	// The target is an existing directory.
	target := filepath.Join(dir, "taken.webp")
	require.NoError(t, os.MkdirAll(target, 0755))
	err := writeWebP(target, image.NewNRGBA(image.Rect(0, 0, 2, 2)))
	assert.Error(t, err)
	assert.DirExists(t, target)
}

func TestRunFixedExtent(t *testing.T) {
	cfg := newConfig(t)
	cfg.Supersample = 1
	s := smallScene("fixed")
	s.Aperture.HalfWidth = 13e3
	s.Reflector.Grid.LimsY = [2]float64{0, math.Pi}
	results := Run(cfg, []config.Scene{s})
	require.True(t, results[0].Success, results[0].Error)
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	results := []Result{
		{Name: "a", Image: "a.webp", Samples: 4, Rays: 3, Hits: 2, PeakPower: 1.5, Success: true},
		{Name: "b", Error: "boom"},
	}
	require.NoError(t, WriteManifest(path, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "a.webp", entries[0].Image)
	assert.Equal(t, 3, entries[0].Rays)
	assert.Equal(t, "boom", entries[1].Error)
	assert.NotContains(t, string(data), `"image": ""`)
}
