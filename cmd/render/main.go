package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"reflector/internal/batch"
	"reflector/internal/config"
	"reflector/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to scene config JSON (default: built-in DRO scene)")
	sceneName := flag.String("scene", "", "Render only the scene with this name")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	outputDir := flag.String("output", "", "Output directory (default: renders/ next to the config)")
	maskDir := flag.String("masks", "", "Directory of aperture mask images (.tga/.png/.jpg)")
	size := flag.Int("size", 0, "Output image size in pixels (default: 256)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir: *outputDir,
		MaskDir:   *maskDir,
		Size:      *size,
		Workers:   *workers,
	})

	scenes := cfg.Scenes
	if *sceneName != "" {
		var filtered []config.Scene
		for _, s := range scenes {
			if s.Name == *sceneName {
				filtered = append(filtered, s)
			}
		}
		scenes = filtered
	}

	if len(scenes) == 0 {
		fmt.Println("No scenes to render.")
		os.Exit(0)
	}

	var masks *texture.Cache
	if cfg.MaskDir != "" {
		index := texture.BuildIndex(cfg.MaskDir)
		masks = texture.NewCache(index)
		fmt.Printf("Masks: %d indexed\n", index.Len())
	}

	fmt.Println("Reflector aperture-field renderer → WebP")
	fmt.Printf("Scenes: %d, Workers: %d\n", len(scenes), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir:      cfg.OutputDir,
		Masks:          masks,
		RenderSize:     cfg.RenderSize,
		Supersample:    cfg.Supersample,
		DynamicRangeDB: cfg.DynamicRangeDB,
		Workers:        cfg.Workers,
		Progress:       2 * time.Second,
	}, scenes)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	failed := 0
	for _, r := range results {
		if r.Success {
			fmt.Printf("  %s: %d rays, %d hits, peak %.3g → %s\n", r.Name, r.Rays, r.Hits, r.PeakPower, r.Image)
		} else {
			failed++
			fmt.Printf("  %s: FAILED: %s\n", r.Name, r.Error)
		}
	}
	fmt.Printf("Rendered: %d/%d\n", len(results)-failed, len(results))

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
