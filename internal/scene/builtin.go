package scene

import (
	"fmt"
	"sort"

	"thinlens-renderer/internal/mathutil"
)

var builtins = map[string]func() *Scene{
	"default": Default,
	"focus":   Focus,
	"grid":    Grid,
}

// ByName returns a fresh copy of a built-in scene.
func ByName(name string) (*Scene, error) {
	fn, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("scene: unknown scene %q (available: %v)", name, Names())
	}
	return fn(), nil
}

// Names lists the built-in scenes in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func ground() Plane {
	return Plane{
		Point:    mathutil.Point3{0, 0, 0},
		Normal:   mathutil.Vec3{0, 1, 0},
		Material: Material{Albedo: mathutil.Vec3{0.8, 0.8, 0.75}, Checker: true},
	}
}

func keyLight() mathutil.Vec3 {
	return mathutil.Vec3{180, 260, 140}.Normalize()
}

// Default is three spheres on a checkered floor.
func Default() *Scene {
	return &Scene{
		Name: "default",
		Spheres: []Sphere{
			{Center: mathutil.Point3{0, 1, 0}, Radius: 1, Material: Material{Albedo: mathutil.Vec3{0.8, 0.25, 0.2}, Specular: 0.45}},
			{Center: mathutil.Point3{-2.2, 0.7, -1}, Radius: 0.7, Material: Material{Albedo: mathutil.Vec3{0.2, 0.5, 0.85}, Specular: 0.2}},
			{Center: mathutil.Point3{2, 0.5, 0.8}, Radius: 0.5, Material: Material{Albedo: mathutil.Vec3{0.9, 0.8, 0.3}, Specular: 0.8}},
		},
		Planes:   []Plane{ground()},
		LightDir: keyLight(),
		View: View{
			Eye:    mathutil.Point3{0, 1.6, 6},
			Target: mathutil.Point3{0, 0.8, 0},
			Up:     mathutil.Vec3{0, 1, 0},
			FOV:    45,
		},
	}
}

// Focus is a receding row of spheres; the middle one sits on the focal plane
// of the suggested view, so the ends show defocus blur.
func Focus() *Scene {
	s := &Scene{
		Name:     "focus",
		Planes:   []Plane{ground()},
		LightDir: keyLight(),
	}
	for i := 0; i < 7; i++ {
		z := 2 - float64(i)*2
		shade := 0.25 + 0.1*float64(i)
		s.Spheres = append(s.Spheres, Sphere{
			Center:   mathutil.Point3{float64(i)*0.6 - 1.8, 0.5, z},
			Radius:   0.5,
			Material: Material{Albedo: mathutil.Vec3{shade, 0.9 - shade, 0.6}, Specular: 0.5},
		})
	}
	eye := mathutil.Point3{0, 1.2, 7}
	target := s.Spheres[3].Center
	s.View = View{
		Eye:           eye,
		Target:        target,
		Up:            mathutil.Vec3{0, 1, 0},
		FOV:           40,
		FocalDistance: target.Sub(eye).Len(),
		Aperture:      0.15,
	}
	return s
}

// Grid is a 5×5 grid of small spheres seen from above at an angle.
func Grid() *Scene {
	s := &Scene{
		Name:     "grid",
		Planes:   []Plane{ground()},
		LightDir: keyLight(),
		View: View{
			Eye:    mathutil.Point3{0, 6, 8},
			Target: mathutil.Point3{0, 0, 0},
			Up:     mathutil.Vec3{0, 1, 0},
			FOV:    50,
		},
	}
	for ix := -2; ix <= 2; ix++ {
		for iz := -2; iz <= 2; iz++ {
			s.Spheres = append(s.Spheres, Sphere{
				Center: mathutil.Point3{float64(ix) * 1.5, 0.4, float64(iz) * 1.5},
				Radius: 0.4,
				Material: Material{
					Albedo:   mathutil.Vec3{0.3 + 0.1*float64(ix+2), 0.5, 0.3 + 0.1*float64(iz+2)},
					Specular: 0.3,
				},
			})
		}
	}
	return s
}
