package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds output paths, render settings and the scenes to render.
type Config struct {
	// Paths
	BaseDir   string `json:"-"`
	OutputDir string `json:"output_dir"`
	MaskDir   string `json:"mask_dir"`

	// Render settings
	RenderSize     int     `json:"render_size"`
	Supersample    int     `json:"supersample"`
	DynamicRangeDB float64 `json:"dynamic_range_db"`
	Workers        int     `json:"workers"`

	Scenes []Scene `json:"scenes"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values; relative paths
// resolve against the file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.BaseDir = filepath.Dir(path)

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir string
	MaskDir   string
	Size      int
	Workers   int
}

// Resolve applies flag overrides and fills defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.MaskDir != "" {
		c.MaskDir = flags.MaskDir
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.BaseDir, "renders")
	} else if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
	}
	if c.MaskDir != "" && !filepath.IsAbs(c.MaskDir) {
		c.MaskDir = filepath.Join(c.BaseDir, c.MaskDir)
	}

	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.DynamicRangeDB <= 0 {
		c.DynamicRangeDB = 40
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if len(c.Scenes) == 0 {
		c.Scenes = []Scene{DefaultScene()}
	}
}
