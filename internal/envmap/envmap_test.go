package envmap

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ftrvxmtrx/tga"

	"thinlens-renderer/internal/mathutil"
)

// twoBand is red above the horizon and blue below it.
func twoBand(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 255, A: 255}
			if y >= h/2 {
				c = color.NRGBA{B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writeTGA(t *testing.T, dir string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, "sky.tga")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := tga.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTGARadiance(t *testing.T) {
	path := writeTGA(t, t.TempDir(), twoBand(16, 8))
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := m.Size(); w != 16 || h != 8 {
		t.Fatalf("size %dx%d, want 16x8", w, h)
	}

	up := m.Radiance(mathutil.Vec3{0, 1, 0})
	if up[0] < 0.99 || up[2] > 0.01 {
		t.Errorf("zenith radiance %v, want red", up)
	}
	down := m.Radiance(mathutil.Vec3{0, -1, 0})
	if down[2] < 0.99 || down[0] > 0.01 {
		t.Errorf("nadir radiance %v, want blue", down)
	}
}

func TestLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sky.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, twoBand(4, 4)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if _, err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected an error for a missing file")
	}
	junk := filepath.Join(dir, "junk.png")
	os.WriteFile(junk, []byte("not an image"), 0644)
	if _, err := Load(junk); err == nil {
		t.Error("expected a decode error")
	}
}

func TestSampleTextureBilinear(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 200, A: 255})

	r, _, _, a := SampleTexture(img, 0.5, 0)
	if r != 100 || a != 255 {
		t.Errorf("midpoint r=%d a=%d, want 100, 255", r, a)
	}
	// u wraps
	r2, _, _, _ := SampleTexture(img, 1.5, 0)
	if r2 != r {
		t.Errorf("wrapped sample %d, want %d", r2, r)
	}
}

func TestCacheSharesEntries(t *testing.T) {
	path := writeTGA(t, t.TempDir(), twoBand(8, 4))
	c := NewCache()

	var wg sync.WaitGroup
	maps := make([]*Map, 8)
	for i := range maps {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := c.Get(path)
			if err != nil {
				t.Error(err)
			}
			maps[i] = m
		}(i)
	}
	wg.Wait()

	first, _ := c.Get(path)
	for i, m := range maps {
		if m != first {
			t.Errorf("goroutine %d got a different map", i)
		}
	}

	if _, err := c.Get(filepath.Join(t.TempDir(), "nope.tga")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
