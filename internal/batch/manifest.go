package batch

import (
	"encoding/json"
	"os"

	"thinlens-renderer/internal/config"
)

// ManifestEntry represents one shot in the output manifest.
type ManifestEntry struct {
	Name          string     `json:"name"`
	Image         string     `json:"image"`
	Eye           [3]float64 `json:"eye"`
	LookAt        [3]float64 `json:"look_at"`
	FOV           float64    `json:"fov"`
	Roll          float64    `json:"roll,omitempty"`
	FocalDistance float64    `json:"focal_distance"`
	Aperture      float64    `json:"aperture"`
	EnvMap        string     `json:"env_map,omitempty"`
	Width         int        `json:"width"`
	Height        int        `json:"height"`
	Samples       int        `json:"samples"`
	Seed          uint64     `json:"seed"`
	RenderMillis  int64      `json:"render_ms"`
	Error         string     `json:"error,omitempty"`
}

// WriteManifest writes manifest.json describing every rendered shot.
// results must be in shot order, as returned by Run.
func WriteManifest(path string, cfg *config.Config, results []Result) error {
	entries := make([]ManifestEntry, len(cfg.Shots))
	for i, s := range cfg.Shots {
		entries[i] = ManifestEntry{
			Name:          s.Name,
			Image:         s.Output,
			Eye:           s.Eye,
			LookAt:        s.LookAt,
			FOV:           s.FOV,
			Roll:          s.Roll,
			FocalDistance: s.FocalDistance,
			Aperture:      s.Aperture,
			EnvMap:        s.EnvMap,
			Width:         cfg.Width,
			Height:        cfg.Height,
			Samples:       cfg.Samples,
			Seed:          cfg.Seed,
		}
		if i < len(results) {
			entries[i].RenderMillis = results[i].Duration.Milliseconds()
			entries[i].Error = results[i].Error
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
