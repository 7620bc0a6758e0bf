package mathutil

// Point3 is a position in space. Transforms apply translation to a Point3.
type Point3 [3]float64

// Origin is the point (0, 0, 0).
var Origin = Point3{}

// Add offsets p by v.
func (p Point3) Add(v Vec3) Point3 {
	return Point3{p[0] + v[0], p[1] + v[1], p[2] + v[2]}
}

// Sub returns the vector from q to p.
func (p Point3) Sub(q Point3) Vec3 {
	return Vec3{p[0] - q[0], p[1] - q[1], p[2] - q[2]}
}

// ToVec returns the vector from the origin to p.
func (p Point3) ToVec() Vec3 {
	return Vec3(p)
}
