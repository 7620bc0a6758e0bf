package envmap

import (
	"image"
	"math"

	"thinlens-renderer/internal/mathutil"
)

// Map is a decoded equirectangular panorama. Read-only after Load.
type Map struct {
	img *image.NRGBA
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// Size returns the panorama dimensions.
func (m *Map) Size() (int, int) {
	return m.img.Rect.Dx(), m.img.Rect.Dy()
}

// Radiance returns the linear color seen along the unit direction dir.
// +Y is up; u wraps around the horizon, v runs from the zenith (0) to the nadir (1).
func (m *Map) Radiance(dir mathutil.Vec3) mathutil.Vec3 {
	u := 0.5 + math.Atan2(dir[0], -dir[2])/(2*math.Pi)
	v := math.Acos(math.Max(-1, math.Min(1, dir[1]))) / math.Pi
	// v must not wrap: the nadir row is not adjacent to the zenith row
	v = math.Min(v, math.Nextafter(1, 0))
	r, g, b, _ := SampleTexture(m.img, u, v)
	return mathutil.Vec3{srgbToLinear[r], srgbToLinear[g], srgbToLinear[b]}
}

// SampleTexture performs bilinear filtering with UV wrapping.
// Returns RGBA as uint8. Accesses tex.Pix directly for performance.
func SampleTexture(tex *image.NRGBA, u, v float64) (r, g, b, a uint8) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()

	// Wrap UVs
	u = u - math.Floor(u)
	v = v - math.Floor(v)

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0 := int(fx)
	y0 := int(fy)
	x1 := (x0 + 1) % w
	y1 := (y0 + 1) % h
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	stride := tex.Stride
	pix := tex.Pix

	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	fr := float64(pix[i00])*w00 + float64(pix[i10])*w10 + float64(pix[i01])*w01 + float64(pix[i11])*w11
	fg := float64(pix[i00+1])*w00 + float64(pix[i10+1])*w10 + float64(pix[i01+1])*w01 + float64(pix[i11+1])*w11
	fb := float64(pix[i00+2])*w00 + float64(pix[i10+2])*w10 + float64(pix[i01+2])*w01 + float64(pix[i11+2])*w11
	fa := float64(pix[i00+3])*w00 + float64(pix[i10+3])*w10 + float64(pix[i01+3])*w01 + float64(pix[i11+3])*w11

	return uint8(fr + 0.5), uint8(fg + 0.5), uint8(fb + 0.5), uint8(fa + 0.5)
}
