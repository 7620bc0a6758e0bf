package render

import (
	"context"

	"thinlens-renderer/internal/camera"
	"thinlens-renderer/internal/scene"
)

// Progressive refines a film one sample per pixel at a time.
// Not safe for concurrent use; Step itself fans out over rows.
type Progressive struct {
	cam    camera.Camera
	tracer *tracer
	film   *Film
	opts   Options
	passes uint64
}

// NewProgressive prepares an empty film for cam and sc.
func NewProgressive(cam camera.Camera, sc *scene.Scene, opts Options) *Progressive {
	opts = opts.withDefaults()
	return &Progressive{
		cam:    cam,
		tracer: newTracer(sc, opts),
		film:   NewFilm(opts.Width, opts.Height),
		opts:   opts,
	}
}

// Step adds one sample to every pixel. An interrupted pass leaves some rows
// ahead of the others, so the film is reset and refinement starts over.
func (p *Progressive) Step(ctx context.Context) error {
	if err := renderPass(ctx, p.cam, p.tracer, p.film, p.opts, p.passes, 1); err != nil {
		p.Reset(p.cam)
		return err
	}
	p.passes++
	return nil
}

// Reset discards the accumulated samples and switches to a new camera,
// keeping the film size.
func (p *Progressive) Reset(cam camera.Camera) {
	p.cam = cam
	p.film = NewFilm(p.opts.Width, p.opts.Height)
	p.passes = 0
}

// Passes returns the number of completed passes.
func (p *Progressive) Passes() int { return int(p.passes) }

// Camera returns the camera currently being refined.
func (p *Progressive) Camera() camera.Camera { return p.cam }

// Film returns the accumulation buffer.
func (p *Progressive) Film() *Film { return p.film }
