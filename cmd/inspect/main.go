package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"reflector/internal/config"
	"reflector/internal/mathutil"
	"reflector/internal/texture"
	"reflector/internal/trace"
)

func main() {
	configFile := flag.String("config", "", "Path to scene config JSON (default: built-in DRO scene)")
	maskDir := flag.String("masks", "", "Directory of aperture mask images")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{MaskDir: *maskDir})

	var masks *texture.Cache
	if cfg.MaskDir != "" {
		masks = texture.NewCache(texture.BuildIndex(cfg.MaskDir))
	}

	failed := false
	for _, sc := range cfg.Scenes {
		if err := inspect(sc, masks); err != nil {
			fmt.Printf("  Error: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func inspect(sc config.Scene, masks *texture.Cache) error {
	fmt.Printf("Scene %q: lambda=%.4g k=%.4g\n", sc.Name, sc.Lambda, sc.K())
	if err := sc.Validate(); err != nil {
		return err
	}
	grid, err := sc.GridSpec()
	if err != nil {
		return err
	}
	p := sc.Parabola()
	surf, err := p.Generate(sc.Name, grid)
	if err != nil {
		return err
	}

	minP := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	maxP := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, pt := range surf.Points {
		for k := 0; k < 3; k++ {
			minP[k] = math.Min(minP[k], pt[k])
			maxP[k] = math.Max(maxP[k], pt[k])
		}
	}
	fmt.Printf("  Reflector: f=%.4g samples=%d (%dx%d) area=%.4g\n",
		p.FocalLength(), surf.Len(), surf.Nu, surf.Nv, surf.TotalArea())
	fmt.Printf("    BBox: X[%.1f, %.1f] Y[%.1f, %.1f] Z[%.1f, %.1f]\n",
		minP[0], maxP[0], minP[1], maxP[1], minP[2], maxP[2])

	var mask trace.Mask
	if sc.Mask != "" && masks != nil {
		m, err := masks.Resolve(sc.Mask)
		if err != nil {
			return err
		}
		fmt.Printf("  Mask %q: %dx%d open=%.1f%%\n", sc.Mask, m.Width, m.Height, 100*m.OpenFraction())
		mask = m
	}

	src, err := sc.BuildSource()
	if err != nil {
		return err
	}
	rays, err := trace.Reflect(src, surf, mask)
	if err != nil {
		return err
	}
	hits, err := trace.PropagateToPlane(rays, sc.Plane(), sc.K())
	if err != nil {
		return err
	}

	// Current magnitude and aperture field summary
	var jMax, pSum, pMax float64
	for _, r := range rays {
		jMax = math.Max(jMax, math.Sqrt(r.J.Norm2()))
	}
	for _, h := range hits {
		pSum += h.Power * h.Weight
		pMax = math.Max(pMax, h.Power)
	}
	fmt.Printf("  Rays: %d reflected, %d on aperture, max |J|=%.4g\n", len(rays), len(hits), jMax)
	fmt.Printf("  Aperture: integrated power=%.4g peak=%.4g\n", pSum, pMax)
	return nil
}
