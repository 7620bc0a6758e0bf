// Package render is the sampling loop around the camera: it jitters raster
// positions, generates rays, shades them and accumulates the results on a
// Film. The Camera and Scene are shared read-only by all workers; every
// (pass, row) pair draws from its own random stream, so output depends only
// on the seed and not on scheduling.
package render

import (
	"context"
	"runtime"
	"sync"

	"thinlens-renderer/internal/camera"
	"thinlens-renderer/internal/envmap"
	"thinlens-renderer/internal/rng"
	"thinlens-renderer/internal/scene"
)

// Options controls one render.
type Options struct {
	Width    int
	Height   int
	Samples  int // samples per pixel
	MaxDepth int // 1 disables reflections
	Workers  int
	Seed     uint64
	Env      *envmap.Map // nil uses the sky gradient
	Light    *LightConfig
}

func (o Options) withDefaults() Options {
	if o.Samples <= 0 {
		o.Samples = 1
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = 3
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	return o
}

func newTracer(sc *scene.Scene, opts Options) *tracer {
	lc := DefaultLightConfig(sc.LightDir)
	if opts.Light != nil {
		lc = *opts.Light
	}
	return &tracer{scene: sc, env: opts.Env, light: lc, maxDepth: opts.MaxDepth}
}

// Render traces opts.Samples jittered samples for every pixel. cam must have
// been built for opts.Width×opts.Height. On cancellation the partially filled
// film is returned with ctx.Err().
func Render(ctx context.Context, cam camera.Camera, sc *scene.Scene, opts Options) (*Film, error) {
	opts = opts.withDefaults()
	film := NewFilm(opts.Width, opts.Height)
	err := renderPass(ctx, cam, newTracer(sc, opts), film, opts, 0, opts.Samples)
	return film, err
}

// renderPass adds spp samples to every pixel using a row worker pool.
func renderPass(ctx context.Context, cam camera.Camera, tr *tracer, film *Film, opts Options, pass uint64, spp int) error {
	rowChan := make(chan int, opts.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rowChan {
				renderRow(cam, tr, film, opts.Seed, pass, y, spp)
			}
		}()
	}

	var err error
send:
	for y := 0; y < film.Height; y++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break send
		case rowChan <- y:
		}
	}
	close(rowChan)
	wg.Wait()

	return err
}

func renderRow(cam camera.Camera, tr *tracer, film *Film, seed, pass uint64, y, spp int) {
	src := rng.NewXorShift(rng.Derive(seed, pass, uint64(y)))
	for x := 0; x < film.Width; x++ {
		for s := 0; s < spp; s++ {
			rx := float64(x) + src.Float64()
			ry := float64(y) + src.Float64()
			ray := cam.GenerateRay(rx, ry, src)
			film.Add(x, y, tr.Trace(ray, tr.maxDepth))
		}
	}
}
