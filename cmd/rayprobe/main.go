package main

import (
	"flag"
	"fmt"
	"os"

	"thinlens-renderer/internal/camera"
	"thinlens-renderer/internal/mathutil"
	"thinlens-renderer/internal/rng"
	"thinlens-renderer/internal/scene"
)

func main() {
	sceneName := flag.String("scene", "default", "Built-in scene whose view is probed")
	width := flag.Int("width", 320, "Raster width")
	height := flag.Int("height", 180, "Raster height")
	fov := flag.Float64("fov", 0, "Field of view in degrees (default: scene view)")
	focus := flag.Float64("focus", -1, "Focal distance (default: scene view)")
	aperture := flag.Float64("aperture", -1, "Aperture half-width (default: scene view)")
	samples := flag.Int("samples", 1, "Rays per probe point")
	seed := flag.Uint64("seed", 1, "Random seed")
	identity := flag.Bool("identity", false, "Use an identity placement instead of the scene view")
	tilt := flag.Float64("tilt", 0, "Extra pitch around the camera's X axis, in degrees")
	roll := flag.Float64("roll", 0, "Extra roll around the camera's view axis, in degrees")
	flag.Parse()

	sc, err := scene.ByName(*sceneName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	v := sc.View
	cfg := camera.Config{
		Placement:     mathutil.LookAt(v.Eye, v.Target, v.Up),
		Width:         *width,
		Height:        *height,
		FOV:           v.FOV,
		FocalDistance: v.FocalDistance,
		ApertureSize:  v.Aperture,
	}
	if *identity {
		cfg.Placement = mathutil.Identity()
	}
	if *tilt != 0 || *roll != 0 {
		local := mathutil.RotateX(mathutil.Deg2Rad(*tilt)).Mul(mathutil.RotateZ(mathutil.Deg2Rad(*roll)))
		cfg.Placement = cfg.Placement.Mul(local)
	}
	if *fov > 0 {
		cfg.FOV = *fov
	}
	if *focus >= 0 {
		cfg.FocalDistance = *focus
	}
	if *aperture >= 0 {
		cfg.ApertureSize = *aperture
	}

	cam, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	w, h := float64(*width), float64(*height)
	probes := []struct {
		name string
		x, y float64
	}{
		{"top-left", 0, 0},
		{"top-right", w, 0},
		{"center", w / 2, h / 2},
		{"bottom-left", 0, h},
		{"bottom-right", w, h},
	}

	fmt.Printf("Camera %dx%d scale %.4f focal %.3f aperture %.3f\n",
		*width, *height, cam.Scale(), cam.FocalDistance(), cam.ApertureSize())
	m := cam.CameraToWorld().Mat4()
	fmt.Println("Camera to world:")
	for row := 0; row < 4; row++ {
		fmt.Printf("  [%8.4f %8.4f %8.4f %8.4f]\n", m.At(row, 0), m.At(row, 1), m.At(row, 2), m.At(row, 3))
	}
	src := rng.NewXorShift(*seed)
	for _, p := range probes {
		for i := 0; i < *samples; i++ {
			r := cam.GenerateRay(p.x, p.y, src)
			fmt.Printf("%-13s (%7.1f, %7.1f)  origin (%8.4f, %8.4f, %8.4f)  dir (%7.4f, %7.4f, %7.4f)\n",
				p.name, p.x, p.y,
				r.Origin[0], r.Origin[1], r.Origin[2],
				r.Direction[0], r.Direction[1], r.Direction[2])
		}
	}
}
