package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"thinlens-renderer/internal/batch"
	"thinlens-renderer/internal/config"
	"thinlens-renderer/internal/envmap"
	"thinlens-renderer/internal/scene"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	sceneName := flag.String("scene", "", fmt.Sprintf("Built-in scene %v (default: default)", scene.Names()))
	envMap := flag.String("env", "", "Equirectangular environment map (png, jpg, tga)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	format := flag.String("format", "", "Output format for shots without a file name: webp, png, tga (default: webp)")
	width := flag.Int("width", 0, "Image width in pixels (default: 320)")
	height := flag.Int("height", 0, "Image height in pixels (default: 180)")
	samples := flag.Int("samples", 0, "Samples per pixel (default: 16)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	seed := flag.Uint64("seed", 0, "Random seed")
	fov := flag.Float64("fov", 0, "Override field of view in degrees for every shot")
	focus := flag.Float64("focus", 0, "Override focal distance for every shot")
	aperture := flag.Float64("aperture", 0, "Override aperture half-width for every shot")
	pinhole := flag.Bool("pinhole", false, "Disable depth of field for every shot")
	exposure := flag.Float64("exposure", 1, "Exposure multiplier before tone mapping")

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
		Scene:     *sceneName,
		EnvMap:    *envMap,
		OutputDir: *outputDir,
		Format:    *format,
		Width:     *width,
		Height:    *height,
		Samples:   *samples,
		Workers:   *workers,
		Seed:      *seed,
		FOV:       *fov,
		Focus:     *focus,
		Aperture:  *aperture,
		Pinhole:   *pinhole,
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sc, err := scene.ByName(cfg.Scene)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	envs := envmap.NewCache()
	if cfg.EnvMap != "" {
		env, err := envs.Get(cfg.EnvMap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading environment map: %v\n", err)
			os.Exit(1)
		}
		w, h := env.Size()
		fmt.Printf("Environment: %s (%dx%d)\n", cfg.EnvMap, w, h)
	}

	fmt.Printf("Thin-lens renderer: scene %q\n", sc.Name)
	fmt.Printf("Shots: %d, %dx%d, %d spp, supersample %d, Workers: %d\n",
		len(cfg.Shots), cfg.Width, cfg.Height, cfg.Samples, cfg.Supersample, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()

	results := batch.Run(ctx, batch.Config{
		Settings: &cfg,
		Scene:    sc,
		Envs:     envs,
		Exposure: *exposure,
		Progress: true,
	})

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
			fmt.Printf("  %s -> %s (%.1fs)\n", r.Name, r.Path, r.Duration.Seconds())
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(results))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		for _, e := range errors {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else if err := batch.WriteManifest(manifestPath, &cfg, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
