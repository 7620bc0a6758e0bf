package scene

import (
	"math"
	"testing"

	"thinlens-renderer/internal/mathutil"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func TestSphereIntersection(t *testing.T) {
	s := &Scene{Spheres: []Sphere{{Center: mathutil.Point3{0, 0, -5}, Radius: 1}}}

	testCases := []struct {
		name  string
		ray   mathutil.Ray
		hit   bool
		wantT float64
	}{
		{"head on", mathutil.Ray{Origin: mathutil.Origin, Direction: mathutil.Vec3{0, 0, -1}}, true, 4},
		{"miss", mathutil.Ray{Origin: mathutil.Origin, Direction: mathutil.Vec3{0, 1, 0}}, false, 0},
		{"from inside", mathutil.Ray{Origin: mathutil.Point3{0, 0, -5}, Direction: mathutil.Vec3{1, 0, 0}}, true, 1},
		{"behind", mathutil.Ray{Origin: mathutil.Origin, Direction: mathutil.Vec3{0, 0, 1}}, false, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, ok := s.Intersect(tc.ray, 1e-4, math.Inf(1))
			if ok != tc.hit {
				t.Fatalf("hit = %v, want %v", ok, tc.hit)
			}
			if ok && !almostEqual(h.T, tc.wantT) {
				t.Errorf("t = %f, want %f", h.T, tc.wantT)
			}
			if ok && h.Normal.Dot(tc.ray.Direction) > 0 {
				t.Errorf("normal %v faces away from the ray", h.Normal)
			}
		})
	}
}

func TestClosestHitWins(t *testing.T) {
	s := Default()
	ray := mathutil.Ray{Origin: mathutil.Point3{0, 1, 10}, Direction: mathutil.Vec3{0, 0, -1}}
	h, ok := s.Intersect(ray, 1e-4, math.Inf(1))
	if !ok {
		t.Fatal("expected a hit")
	}
	if !almostEqual(h.T, 9) {
		t.Errorf("t = %f, want 9 (front of the center sphere)", h.T)
	}
}

func TestPlaneAndOcclusion(t *testing.T) {
	s := &Scene{
		Planes:  []Plane{ground()},
		Spheres: []Sphere{{Center: mathutil.Point3{0, 2, 0}, Radius: 0.5}},
	}
	down := mathutil.Ray{Origin: mathutil.Point3{3, 1, 0}, Direction: mathutil.Vec3{0, -1, 0}}
	h, ok := s.Intersect(down, 1e-4, math.Inf(1))
	if !ok || !almostEqual(h.T, 1) {
		t.Fatalf("plane hit = %v t = %f, want t = 1", ok, h.T)
	}
	if !s.Occluded(mathutil.Origin, mathutil.Vec3{0, 1, 0}, math.Inf(1)) {
		t.Error("sphere above the origin should occlude")
	}
	if s.Occluded(mathutil.Point3{3, 0.001, 0}, mathutil.Vec3{0, 1, 0}, math.Inf(1)) {
		t.Error("nothing above (3, 0, 0)")
	}
}

func TestCheckerAlbedo(t *testing.T) {
	m := Material{Albedo: mathutil.Vec3{1, 1, 1}, Checker: true}
	a := m.AlbedoAt(mathutil.Point3{0.5, 0, 0.5})
	b := m.AlbedoAt(mathutil.Point3{1.5, 0, 0.5})
	if a == b {
		t.Errorf("adjacent cells share albedo %v", a)
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		s, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
		if s.Name != name || len(s.Spheres) == 0 {
			t.Errorf("scene %q looks empty", name)
		}
	}
	if _, err := ByName("nope"); err == nil {
		t.Error("expected an error for an unknown scene")
	}
}

func TestFocusViewIsFocusedOnMiddleSphere(t *testing.T) {
	s := Focus()
	d := s.Spheres[3].Center.Sub(s.View.Eye).Len()
	if !almostEqual(s.View.FocalDistance, d) {
		t.Errorf("focal distance %f, want %f", s.View.FocalDistance, d)
	}
}
