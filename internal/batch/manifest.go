package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one rendered scene in the output manifest.
type ManifestEntry struct {
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Samples   int     `json:"samples"`
	Rays      int     `json:"rays"`
	Hits      int     `json:"hits"`
	PeakPower float64 `json:"peak_power"`
	Error     string  `json:"error,omitempty"`
}

// WriteManifest writes the results as indented JSON to path.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Name:      r.Name,
			Image:     r.Image,
			Samples:   r.Samples,
			Rays:      r.Rays,
			Hits:      r.Hits,
			PeakPower: r.PeakPower,
			Error:     r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
