package batch

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"reflector/internal/config"
	"reflector/internal/postprocess"
	"reflector/internal/raster"
	"reflector/internal/texture"
	"reflector/internal/trace"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir      string
	Masks          *texture.Cache
	RenderSize     int
	Supersample    int
	DynamicRangeDB float64
	Workers        int
	// Progress is the interval between progress lines; zero disables them.
	Progress time.Duration
}

// Result holds the outcome of rendering one scene.
type Result struct {
	Name      string
	Image     string
	Samples   int
	Rays      int
	Hits      int
	PeakPower float64
	Success   bool
	Error     string
}

// Run renders all scenes using a worker pool. One failing scene does not
// stop the others.
func Run(cfg Config, scenes []config.Scene) []Result {
	total := len(scenes)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						fmt.Printf("  [%d/%d] %.1f scenes/sec\n", p, total, float64(p)/elapsed)
					}
				}
			}
		}()
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	// Worker pool
	sceneChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range sceneChan {
				results[idx] = processScene(cfg, scenes[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range scenes {
		sceneChan <- i
	}
	close(sceneChan)

	wg.Wait()
	close(done)

	return results
}

func processScene(cfg Config, sc config.Scene) Result {
	res := Result{Name: sc.Name}
	fail := func(err error) Result {
		res.Error = err.Error()
		return res
	}

	if cfg.RenderSize <= 0 {
		return fail(fmt.Errorf("render size %d", cfg.RenderSize))
	}
	if err := sc.Validate(); err != nil {
		return fail(err)
	}
	grid, err := sc.GridSpec()
	if err != nil {
		return fail(err)
	}
	src, err := sc.BuildSource()
	if err != nil {
		return fail(err)
	}

	var mask trace.Mask
	if sc.Mask != "" {
		if cfg.Masks == nil {
			return fail(fmt.Errorf("mask %q requested but no mask directory configured", sc.Mask))
		}
		m, err := cfg.Masks.Resolve(sc.Mask)
		if err != nil {
			return fail(err)
		}
		mask = m
	}

	surf, err := sc.Parabola().Generate(sc.Name, grid)
	if err != nil {
		return fail(err)
	}
	res.Samples = surf.Len()

	rays, err := trace.Reflect(src, surf, mask)
	if err != nil {
		return fail(err)
	}
	hits, err := trace.PropagateToPlane(rays, sc.Plane(), sc.K())
	if err != nil {
		return fail(err)
	}
	res.Rays = len(rays)
	res.Hits = len(hits)
	if res.Hits == 0 {
		return fail(fmt.Errorf("no rays reached the aperture plane"))
	}

	supersample := max(cfg.Supersample, 1)
	renderSize := cfg.RenderSize * supersample
	ext := raster.FitExtent(hits, 0.05)
	if hw := sc.Aperture.HalfWidth; hw > 0 {
		ext = raster.Extent{XMin: -hw, XMax: hw, YMin: -hw, YMax: hw}
	}
	fb := raster.NewFieldBuffer(renderSize, renderSize, ext)
	fb.Splat(hits)
	res.PeakPower = fb.Peak()

	img := fb.ToImage(raster.DefaultRamp(), cfg.DynamicRangeDB)
	if supersample > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize, cfg.RenderSize)
	}

	name := sc.Name + ".webp"
	if err := writeWebP(filepath.Join(cfg.OutputDir, name), img); err != nil {
		return fail(err)
	}

	res.Image = name
	res.Success = true
	return res
}

var encodeWebP = func(w io.Writer, img image.Image) error {
	return nativewebp.Encode(w, img, nil)
}

// writeWebP encodes img to path. A partially written file is removed on failure.
func writeWebP(path string, img image.Image) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if err := encodeWebP(f, img); err != nil {
		return fmt.Errorf("WebP encode: %w", err)
	}
	return nil
}
