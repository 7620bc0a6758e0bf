package mathutil

// Ray is a half-line in world space. Direction is expected to be unit length.
type Ray struct {
	Origin    Point3
	Direction Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Point3 {
	return r.Origin.Add(r.Direction.Scale(t))
}
