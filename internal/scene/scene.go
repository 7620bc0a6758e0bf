package scene

import (
	"math"

	"thinlens-renderer/internal/mathutil"
)

// Material holds the surface parameters used by the shader.
type Material struct {
	Albedo   mathutil.Vec3 // linear RGB in [0,1]
	Specular float64       // scales the Blinn-Phong highlight
	Checker  bool          // alternate Albedo with half its value on a unit grid
}

// Sphere is a sphere primitive.
type Sphere struct {
	Center   mathutil.Point3
	Radius   float64
	Material Material
}

// Plane is an infinite plane through Point with unit Normal.
type Plane struct {
	Point    mathutil.Point3
	Normal   mathutil.Vec3
	Material Material
}

// Hit describes the closest intersection along a ray.
type Hit struct {
	T        float64
	Point    mathutil.Point3
	Normal   mathutil.Vec3 // unit, facing the incoming ray
	Material Material
}

// View is a suggested camera placement for a scene.
type View struct {
	Eye           mathutil.Point3
	Target        mathutil.Point3
	Up            mathutil.Vec3
	FOV           float64
	FocalDistance float64
	Aperture      float64
}

// Scene is an immutable collection of primitives plus a key light direction.
type Scene struct {
	Name     string
	Spheres  []Sphere
	Planes   []Plane
	LightDir mathutil.Vec3 // unit, pointing toward the light
	View     View
}

// Intersect returns the closest hit with t in (tMin, tMax).
func (s *Scene) Intersect(r mathutil.Ray, tMin, tMax float64) (Hit, bool) {
	var best Hit
	found := false
	closest := tMax

	for i := range s.Spheres {
		if t, ok := s.Spheres[i].intersect(r, tMin, closest); ok {
			closest = t
			p := r.At(t)
			best = Hit{
				T:        t,
				Point:    p,
				Normal:   p.Sub(s.Spheres[i].Center).Scale(1 / s.Spheres[i].Radius),
				Material: s.Spheres[i].Material,
			}
			found = true
		}
	}

	for i := range s.Planes {
		if t, ok := s.Planes[i].intersect(r, tMin, closest); ok {
			closest = t
			best = Hit{
				T:        t,
				Point:    r.At(t),
				Normal:   s.Planes[i].Normal,
				Material: s.Planes[i].Material,
			}
			found = true
		}
	}

	if found && best.Normal.Dot(r.Direction) > 0 {
		best.Normal = best.Normal.Neg()
	}
	return best, found
}

// Occluded reports whether anything blocks the segment from p along dir
// within maxDist.
func (s *Scene) Occluded(p mathutil.Point3, dir mathutil.Vec3, maxDist float64) bool {
	_, hit := s.Intersect(mathutil.Ray{Origin: p, Direction: dir}, 1e-4, maxDist)
	return hit
}

func (sp *Sphere) intersect(r mathutil.Ray, tMin, tMax float64) (float64, bool) {
	oc := r.Origin.Sub(sp.Center)
	halfB := oc.Dot(r.Direction)
	c := oc.Dot(oc) - sp.Radius*sp.Radius
	a := r.Direction.Dot(r.Direction)
	disc := halfB*halfB - a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := (-halfB - sq) / a
	if t <= tMin || t >= tMax {
		t = (-halfB + sq) / a
		if t <= tMin || t >= tMax {
			return 0, false
		}
	}
	return t, true
}

func (pl *Plane) intersect(r mathutil.Ray, tMin, tMax float64) (float64, bool) {
	denom := pl.Normal.Dot(r.Direction)
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}
	t := pl.Point.Sub(r.Origin).Dot(pl.Normal) / denom
	if t <= tMin || t >= tMax {
		return 0, false
	}
	return t, true
}

// AlbedoAt returns the surface color at p, applying the checker pattern.
func (m Material) AlbedoAt(p mathutil.Point3) mathutil.Vec3 {
	if !m.Checker {
		return m.Albedo
	}
	ix := int(math.Floor(p[0]))
	iz := int(math.Floor(p[2]))
	if (ix+iz)&1 == 0 {
		return m.Albedo
	}
	return m.Albedo.Scale(0.5)
}
