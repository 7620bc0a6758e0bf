package mathutil

import "github.com/go-gl/mathgl/mgl64"

// Transform is an affine 4×4 transform (column-major, mgl64 convention).
// Value type; composition returns a new Transform.
type Transform struct {
	m mgl64.Mat4
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{m: mgl64.Ident4()}
}

// FromMat4 wraps an mgl64 matrix. The bottom row is assumed to be (0, 0, 0, 1).
func FromMat4(m mgl64.Mat4) Transform {
	return Transform{m: m}
}

// Translate returns a translation by t.
func Translate(t Vec3) Transform {
	return Transform{m: mgl64.Translate3D(t[0], t[1], t[2])}
}

// NonuniformScale returns a per-axis scale.
func NonuniformScale(x, y, z float64) Transform {
	return Transform{m: mgl64.Scale3D(x, y, z)}
}

// RotateX returns a rotation around the X axis. Angle in radians.
func RotateX(a float64) Transform {
	return Transform{m: mgl64.HomogRotate3DX(a)}
}

// RotateY returns a rotation around the Y axis.
func RotateY(a float64) Transform {
	return Transform{m: mgl64.HomogRotate3DY(a)}
}

// RotateZ returns a rotation around the Z axis.
func RotateZ(a float64) Transform {
	return Transform{m: mgl64.HomogRotate3DZ(a)}
}

// LookAt returns the camera-to-world placement of an eye at eye looking at
// target. The camera looks down its local -Z with +Y as up.
func LookAt(eye, target Point3, up Vec3) Transform {
	view := mgl64.LookAtV(mgl64.Vec3(eye), mgl64.Vec3(target), mgl64.Vec3(up))
	return Transform{m: view.Inv()}
}

// Mul returns t × o: o is applied first, then t.
func (t Transform) Mul(o Transform) Transform {
	return Transform{m: t.m.Mul4(o.m)}
}

// Inverse returns the inverse transform. A singular matrix yields the zero matrix.
func (t Transform) Inverse() Transform {
	return Transform{m: t.m.Inv()}
}

// Point transforms a position; translation applies.
func (t Transform) Point(p Point3) Point3 {
	return Point3(mgl64.TransformCoordinate(mgl64.Vec3(p), t.m))
}

// Vector transforms a direction; translation does not apply.
func (t Transform) Vector(v Vec3) Vec3 {
	return Vec3(mgl64.TransformNormal(mgl64.Vec3(v), t.m))
}

// Mat4 returns the underlying matrix.
func (t Transform) Mat4() mgl64.Mat4 {
	return t.m
}

// ApproxEqual reports whether every entry of t and o differs by at most eps.
func (t Transform) ApproxEqual(o Transform, eps float64) bool {
	return t.m.ApproxEqualThreshold(o.m, eps)
}
