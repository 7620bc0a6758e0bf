package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"thinlens-renderer/internal/camera"
	"thinlens-renderer/internal/mathutil"
	"thinlens-renderer/internal/rng"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndResolve(t *testing.T) {
	path := writeConfig(t, `{
		"scene": "focus",
		"width": 64,
		"height": 32,
		"samples": 4,
		"shots": [
			{"name": "wide", "eye": [0, 1, 5], "look_at": [0, 1, 0], "fov": 70},
			{"eye": [1, 1, 5], "look_at": [0, 0, 0], "focal_distance": 5, "aperture": 0.1, "output": "close.png"}
		]
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Resolve(Flags{Workers: 3})

	if cfg.Width != 64 || cfg.Height != 32 || cfg.Samples != 4 || cfg.Workers != 3 {
		t.Errorf("settings not kept: %+v", cfg)
	}
	if cfg.Format != "webp" || cfg.Supersample != 1 || cfg.MaxDepth != 3 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if got := cfg.Shots[0].Output; got != "wide.webp" {
		t.Errorf("shot 0 output = %q", got)
	}
	if got := cfg.Shots[1].Name; got != "shot01" {
		t.Errorf("shot 1 name = %q", got)
	}
	if got := cfg.Shots[1].Up; got != [3]float64{0, 1, 0} {
		t.Errorf("shot 1 up = %v", got)
	}
	if got := cfg.OutputPath(cfg.Shots[1]); got != filepath.Join("renders", "close.png") {
		t.Errorf("OutputPath = %q", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestResolveWithoutShotsUsesSceneView(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{Scene: "focus"})

	if len(cfg.Shots) != 1 || cfg.Shots[0].Name != "focus" {
		t.Fatalf("shots = %+v", cfg.Shots)
	}
	if cfg.Shots[0].Aperture == 0 || cfg.Shots[0].FocalDistance == 0 {
		t.Errorf("focus view should carry depth of field: %+v", cfg.Shots[0])
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestFlagOverrides(t *testing.T) {
	cfg := Config{Shots: []Shot{{Name: "a", Eye: [3]float64{0, 0, 5}, FOV: 40, Aperture: 0.2}}}
	cfg.Resolve(Flags{Width: 100, Height: 50, FOV: 90, Focus: 5, Format: "png"})

	s := cfg.Shots[0]
	if s.FOV != 90 || s.FocalDistance != 5 || s.Aperture != 0.2 || s.Output != "a.png" {
		t.Errorf("shot = %+v", s)
	}

	cfg.Resolve(Flags{Pinhole: true})
	if cfg.Shots[0].Aperture != 0 {
		t.Errorf("pinhole flag left aperture %f", cfg.Shots[0].Aperture)
	}
}

func TestCameraUsesSupersampledResolution(t *testing.T) {
	cfg := Config{Width: 40, Height: 20, Supersample: 3}
	cc := cfg.Camera(Shot{Eye: [3]float64{0, 0, 1}, Up: [3]float64{0, 1, 0}})
	if cc.Width != 120 || cc.Height != 60 {
		t.Errorf("camera resolution %dx%d, want 120x60", cc.Width, cc.Height)
	}
}

func TestValidateErrors(t *testing.T) {
	base := func() Config {
		cfg := Config{Shots: []Shot{{Name: "a", Eye: [3]float64{0, 0, 5}}}}
		cfg.Resolve(Flags{})
		return cfg
	}

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
		wantMsg string
	}{
		{"unknown scene", func(c *Config) { c.Scene = "nope" }, nil, "unknown scene"},
		{"duplicate output", func(c *Config) { c.Shots = append(c.Shots, c.Shots[0]) }, nil, "duplicate output"},
		{"bad extension", func(c *Config) { c.Shots[0].Output = "a.gif" }, nil, "unsupported extension"},
		{"eye equals target", func(c *Config) { c.Shots[0].LookAt = c.Shots[0].Eye }, nil, "coincide"},
		{"bad fov", func(c *Config) { c.Shots[0].FOV = 200 }, camera.ErrFOV, ""},
		{"negative aperture", func(c *Config) { c.Shots[0].Aperture = -1 }, camera.ErrDOF, ""},
		{"no shots", func(c *Config) { c.Shots = nil }, nil, "no shots"},
		{"top-down with default up", func(c *Config) {
			c.Shots[0].Eye = [3]float64{0, 10, 0}
			c.Shots[0].LookAt = [3]float64{0, 0, 0}
		}, ErrViewUp, ""},
		{"bottom-up with default up", func(c *Config) {
			c.Shots[0].Eye = [3]float64{1, -4, 2}
			c.Shots[0].LookAt = [3]float64{1, 3, 2}
		}, ErrViewUp, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("got %v, want %v", err, tc.wantErr)
			}
			if tc.wantMsg != "" && !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tc.wantMsg)
			}
		})
	}
}

func TestTopDownShotWithExplicitUp(t *testing.T) {
	cfg := Config{Shots: []Shot{{
		Name:   "top",
		Eye:    [3]float64{0, 10, 0},
		LookAt: [3]float64{0, 0, 0},
		Up:     [3]float64{0, 0, -1},
	}}}
	cfg.Resolve(Flags{})
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	cam, err := cfg.Camera(cfg.Shots[0]).Build()
	if err != nil {
		t.Fatal(err)
	}
	ray := cam.GenerateRay(float64(cfg.Width)/2, float64(cfg.Height)/2, rng.NewXorShift(1))
	for i, c := range ray.Direction {
		if math.IsNaN(c) {
			t.Fatalf("direction component %d is NaN: %v", i, ray.Direction)
		}
	}
	if ray.Direction[1] > -0.99 {
		t.Errorf("direction %v should point straight down", ray.Direction)
	}
}

func TestShotRollTurnsTheFrame(t *testing.T) {
	shot := Shot{Eye: [3]float64{0, 0, 5}, Up: [3]float64{0, 1, 0}, FOV: 90, Roll: 90}
	cfg := Config{Width: 10, Height: 10, Supersample: 1}

	cam, err := cfg.Camera(shot).Build()
	if err != nil {
		t.Fatal(err)
	}
	want := mathutil.LookAt(mathutil.Point3(shot.Eye), mathutil.Origin, mathutil.Vec3(shot.Up)).
		Mul(mathutil.RotateZ(math.Pi / 2))
	if !cam.CameraToWorld().ApproxEqual(want, 1e-12) {
		t.Errorf("placement = %v, want %v", cam.CameraToWorld().Mat4(), want.Mat4())
	}

	// the top edge of the frame now faces world -X
	ray := cam.GenerateRay(5, 0, rng.NewXorShift(1))
	if ray.Direction[0] >= 0 || math.Abs(ray.Direction[1]) > 1e-9 {
		t.Errorf("top-center direction %v, want -X with no Y", ray.Direction)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected a read error")
	}
	if _, err := Load(writeConfig(t, "{not json")); err == nil {
		t.Error("expected a parse error")
	}
}
