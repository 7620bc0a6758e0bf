package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"thinlens-renderer/internal/camera"
	"thinlens-renderer/internal/mathutil"
	"thinlens-renderer/internal/output"
	"thinlens-renderer/internal/scene"
)

// Config holds the scene, render settings and the list of shots to render.
type Config struct {
	Scene     string `json:"scene"`
	EnvMap    string `json:"env_map"`
	OutputDir string `json:"output_dir"`
	Format    string `json:"format"`

	// Render settings
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Samples     int    `json:"samples"`
	MaxDepth    int    `json:"max_depth"`
	Supersample int    `json:"supersample"`
	Workers     int    `json:"workers"`
	Seed        uint64 `json:"seed"`

	Shots []Shot `json:"shots"`
}

// Shot is one camera placement and lens setting.
type Shot struct {
	Name          string     `json:"name"`
	Eye           [3]float64 `json:"eye"`
	LookAt        [3]float64 `json:"look_at"`
	Up            [3]float64 `json:"up"`
	FOV           float64    `json:"fov"`  // degrees; 0 keeps the camera default
	Roll          float64    `json:"roll"` // degrees around the view axis
	FocalDistance float64    `json:"focal_distance"`
	Aperture      float64    `json:"aperture"`
	EnvMap        string     `json:"env_map"` // empty uses Config.EnvMap
	Output        string     `json:"output"`  // file name, relative to OutputDir
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values leave the config untouched. Pinhole forces every shot's
// aperture to zero.
type Flags struct {
	Scene     string
	EnvMap    string
	OutputDir string
	Format    string
	Width     int
	Height    int
	Samples   int
	Workers   int
	Seed      uint64
	FOV       float64
	Focus     float64
	Aperture  float64
	Pinhole   bool
}

// Resolve applies flag overrides and fills in any empty fields with defaults.
// A config without shots gets one shot from the scene's suggested view.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.EnvMap != "" {
		c.EnvMap = flags.EnvMap
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Samples > 0 {
		c.Samples = flags.Samples
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}

	// Defaults for render settings
	if c.Scene == "" {
		c.Scene = "default"
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.Format == "" {
		c.Format = string(output.WebP)
	}
	if c.Width <= 0 {
		c.Width = 320
	}
	if c.Height <= 0 {
		c.Height = 180
	}
	if c.Samples <= 0 {
		c.Samples = 16
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = 3
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	if len(c.Shots) == 0 {
		if sc, err := scene.ByName(c.Scene); err == nil {
			c.Shots = []Shot{shotFromView(sc.Name, sc.View)}
		}
	}

	for i := range c.Shots {
		s := &c.Shots[i]
		if s.Name == "" {
			s.Name = fmt.Sprintf("shot%02d", i)
		}
		if s.Up == ([3]float64{}) {
			s.Up = [3]float64{0, 1, 0}
		}
		if s.Output == "" {
			s.Output = s.Name + "." + c.Format
		}
		if s.EnvMap == "" {
			s.EnvMap = c.EnvMap
		}
		if flags.FOV > 0 {
			s.FOV = flags.FOV
		}
		if flags.Focus > 0 {
			s.FocalDistance = flags.Focus
		}
		if flags.Aperture > 0 {
			s.Aperture = flags.Aperture
		}
		if flags.Pinhole {
			s.Aperture = 0
		}
	}
}

func shotFromView(name string, v scene.View) Shot {
	return Shot{
		Name:          name,
		Eye:           v.Eye,
		LookAt:        v.Target,
		Up:            v.Up,
		FOV:           v.FOV,
		FocalDistance: v.FocalDistance,
		Aperture:      v.Aperture,
	}
}

// Validate checks a resolved config.
func (c *Config) Validate() error {
	if _, err := scene.ByName(c.Scene); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if len(c.Shots) == 0 {
		return fmt.Errorf("config: no shots")
	}
	seen := make(map[string]bool, len(c.Shots))
	for _, s := range c.Shots {
		if seen[s.Output] {
			return fmt.Errorf("config: shot %q: duplicate output %s", s.Name, s.Output)
		}
		seen[s.Output] = true
		if _, err := output.FormatFromPath(s.Output); err != nil {
			return fmt.Errorf("config: shot %q: %w", s.Name, err)
		}
		if s.Eye == s.LookAt {
			return fmt.Errorf("config: shot %q: eye and look_at coincide", s.Name)
		}
		if err := checkUp(s); err != nil {
			return fmt.Errorf("config: shot %q: %w", s.Name, err)
		}
		if err := c.Camera(s).Validate(); err != nil {
			return fmt.Errorf("config: shot %q: %w", s.Name, err)
		}
	}
	return nil
}

// ErrViewUp reports a shot whose up vector is zero or parallel to its
// viewing direction, which leaves the placement singular.
var ErrViewUp = errors.New("up vector is parallel to the view direction")

func checkUp(s Shot) error {
	forward := mathutil.Point3(s.LookAt).Sub(mathutil.Point3(s.Eye)).Normalize()
	up := mathutil.Vec3(s.Up).Normalize()
	if forward.Cross(up).Len() < 1e-6 {
		return fmt.Errorf("%w: look_at-eye %v, up %v", ErrViewUp, forward, s.Up)
	}
	return nil
}

// Camera returns the camera configuration for a shot at the supersampled
// render resolution.
func (c *Config) Camera(s Shot) camera.Config {
	ss := c.Supersample
	if ss < 1 {
		ss = 1
	}
	placement := mathutil.LookAt(s.Eye, s.LookAt, s.Up)
	if s.Roll != 0 {
		placement = placement.Mul(mathutil.RotateZ(mathutil.Deg2Rad(s.Roll)))
	}
	return camera.Config{
		Placement:     placement,
		Width:         c.Width * ss,
		Height:        c.Height * ss,
		FOV:           s.FOV,
		FocalDistance: s.FocalDistance,
		ApertureSize:  s.Aperture,
	}
}

// OutputPath returns where a shot is written.
func (c *Config) OutputPath(s Shot) string {
	if filepath.IsAbs(s.Output) {
		return s.Output
	}
	return filepath.Join(c.OutputDir, s.Output)
}
