package batch

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"thinlens-renderer/internal/config"
	"thinlens-renderer/internal/envmap"
	"thinlens-renderer/internal/output"
	"thinlens-renderer/internal/postprocess"
	"thinlens-renderer/internal/render"
	"thinlens-renderer/internal/scene"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Settings *config.Config
	Scene    *scene.Scene
	Envs     *envmap.Cache // resolves each shot's env_map; nil gets a fresh cache
	Exposure float64     // 0 means 1
	Progress bool        // print a progress line every two seconds
}

// Result holds the outcome of rendering one shot.
type Result struct {
	Name     string
	Path     string
	Success  bool
	Error    string
	Duration time.Duration
}

// Run renders every shot in order. Each render fans out over rows, so shots
// are not rendered concurrently. A cancelled context fails the remaining
// shots.
func Run(ctx context.Context, cfg Config) []Result {
	if cfg.Envs == nil {
		cfg.Envs = envmap.NewCache()
	}
	shots := cfg.Settings.Shots
	total := len(shots)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					fmt.Printf("  [%d/%d] %.1fs elapsed\n", p, total, time.Since(start).Seconds())
				}
			}
		}()
	}

	for i, shot := range shots {
		results[i] = processShot(ctx, cfg, shot)
		processed.Add(1)
	}
	close(done)

	return results
}

func processShot(ctx context.Context, cfg Config, shot config.Shot) (res Result) {
	s := cfg.Settings
	res = Result{Name: shot.Name, Path: s.OutputPath(shot)}
	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	camCfg := s.Camera(shot)
	cam, err := camCfg.Build()
	if err != nil {
		res.Error = err.Error()
		return res
	}

	var env *envmap.Map
	if shot.EnvMap != "" {
		env, err = cfg.Envs.Get(shot.EnvMap)
		if err != nil {
			res.Error = err.Error()
			return res
		}
	}

	film, err := render.Render(ctx, cam, cfg.Scene, render.Options{
		Width:    camCfg.Width,
		Height:   camCfg.Height,
		Samples:  s.Samples,
		MaxDepth: s.MaxDepth,
		Workers:  s.Workers,
		Seed:     s.Seed,
		Env:      env,
	})
	if err != nil {
		res.Error = fmt.Sprintf("render: %v", err)
		return res
	}

	exposure := cfg.Exposure
	if exposure == 0 {
		exposure = 1
	}
	img := film.Image(exposure)

	// Post-processing: supersample downsample
	if s.Supersample > 1 {
		img = postprocess.Downsample(img, s.Width, s.Height)
	}

	if err := output.Save(res.Path, img); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Success = true
	return res
}
