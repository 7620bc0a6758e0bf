package render

import (
	"math"

	"thinlens-renderer/internal/envmap"
	"thinlens-renderer/internal/mathutil"
	"thinlens-renderer/internal/scene"
)

// LightConfig holds precomputed lighting parameters.
type LightConfig struct {
	LightDir mathutil.Vec3
	RimDir   mathutil.Vec3
	Ambient  float64
	Hemi     float64
	Direct   float64
	Rim      float64
	SpecPow  float64
	Reflect  float64 // fraction of Material.Specular returned as mirror reflection
}

// DefaultLightConfig returns the standard lighting for a key light along lightDir.
func DefaultLightConfig(lightDir mathutil.Vec3) LightConfig {
	return LightConfig{
		LightDir: lightDir.Normalize(),
		RimDir:   mathutil.Vec3{-160, 130, -210}.Normalize(),
		Ambient:  0.08,
		Hemi:     0.20,
		Direct:   0.90,
		Rim:      0.15,
		SpecPow:  32.0,
		Reflect:  0.35,
	}
}

// tracer shades rays against an immutable scene. Safe for concurrent use.
type tracer struct {
	scene    *scene.Scene
	env      *envmap.Map
	light    LightConfig
	maxDepth int
}

// Trace returns the linear radiance arriving along r.
func (t *tracer) Trace(r mathutil.Ray, depth int) mathutil.Vec3 {
	h, ok := t.scene.Intersect(r, 1e-4, math.Inf(1))
	if !ok {
		return t.sky(r.Direction)
	}

	lc := &t.light
	n := h.Normal
	albedo := h.Material.AlbedoAt(h.Point)

	// Hemisphere fill
	hemi := (n[1]*0.5 + 0.5) * lc.Hemi

	ndl := n.Dot(lc.LightDir)
	if ndl < 0 || t.scene.Occluded(h.Point.Add(n.Scale(1e-4)), lc.LightDir, math.Inf(1)) {
		ndl = 0
	}
	ndlRim := math.Max(0, n.Dot(lc.RimDir))

	shade := lc.Ambient + hemi + ndl*lc.Direct + ndlRim*lc.Rim
	c := albedo.Scale(shade)

	// Blinn-Phong specular from the key light
	if ndl > 0 && h.Material.Specular > 0 {
		half := lc.LightDir.Sub(r.Direction).Normalize()
		ndh := math.Max(0, n.Dot(half))
		s := math.Pow(ndh, lc.SpecPow) * h.Material.Specular
		c = c.Add(mathutil.Vec3{s, s, s})
	}

	if depth > 1 && h.Material.Specular > 0 {
		k := h.Material.Specular * lc.Reflect
		refl := mathutil.Ray{Origin: h.Point.Add(n.Scale(1e-4)), Direction: r.Direction.Reflect(n).Normalize()}
		c = c.Scale(1 - k).Add(t.Trace(refl, depth-1).Scale(k))
	}
	return c
}

func (t *tracer) sky(dir mathutil.Vec3) mathutil.Vec3 {
	if t.env != nil {
		return t.env.Radiance(dir)
	}
	a := 0.5 * (dir[1] + 1)
	horizon := mathutil.Vec3{1, 1, 1}
	zenith := mathutil.Vec3{0.5, 0.7, 1.0}
	return horizon.Scale(1 - a).Add(zenith.Scale(a))
}
