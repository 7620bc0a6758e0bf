package render

import (
	"image"
	"math"

	"thinlens-renderer/internal/mathutil"
)

// Film accumulates linear radiance per pixel as flat slices for cache locality.
// Each row is written by one worker at a time, so no locking is needed.
type Film struct {
	Width   int
	Height  int
	Sum     []mathutil.Vec3 // len = W*H
	Samples []int           // len = W*H
}

// NewFilm allocates an empty film.
func NewFilm(w, h int) *Film {
	n := w * h
	return &Film{
		Width:   w,
		Height:  h,
		Sum:     make([]mathutil.Vec3, n),
		Samples: make([]int, n),
	}
}

// Add records one radiance sample for pixel (x, y).
func (f *Film) Add(x, y int, c mathutil.Vec3) {
	i := y*f.Width + x
	f.Sum[i] = f.Sum[i].Add(c)
	f.Samples[i]++
}

// Mean returns the average radiance of pixel (x, y).
func (f *Film) Mean(x, y int) mathutil.Vec3 {
	i := y*f.Width + x
	if f.Samples[i] == 0 {
		return mathutil.Vec3{}
	}
	return f.Sum[i].Scale(1 / float64(f.Samples[i]))
}

// Image tone-maps the film to an opaque NRGBA image.
func (f *Film) Image(exposure float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	f.WriteRGBA(img.Pix, exposure)
	return img
}

// WriteRGBA tone-maps the film into an interleaved RGBA byte slice of
// length W*H*4.
func (f *Film) WriteRGBA(pix []byte, exposure float64) {
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.Mean(x, y)
			i := (y*f.Width + x) * 4
			pix[i] = toSRGB8(c[0] * exposure)
			pix[i+1] = toSRGB8(c[1] * exposure)
			pix[i+2] = toSRGB8(c[2] * exposure)
			pix[i+3] = 255
		}
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

func toSRGB8(linear float64) uint8 {
	if linear <= 0 || math.IsNaN(linear) {
		return 0
	}
	v := math.Pow(ACESTonemap(linear), 1.0/2.2) * 255
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
