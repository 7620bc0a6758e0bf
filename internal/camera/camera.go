// Package camera implements a perspective thin-lens camera that turns raster
// coordinates into world-space rays.
//
// A Camera is a value. FOV and DOF return an updated copy, so configuration
// happens before rendering and the result can be shared read-only by any
// number of goroutines calling GenerateRay.
package camera

import (
	"math"

	"thinlens-renderer/internal/mathutil"
	"thinlens-renderer/internal/rng"
)

// DefaultScale is the field-of-view scale of a Camera whose FOV was never
// set, roughly a 73.7° horizontal field of view.
const DefaultScale = 0.75

// Camera maps raster space (origin top-left, y down, [0,width]×[0,height])
// through camera space (eye at origin, looking down -Z) into world space.
type Camera struct {
	cameraToWorld  mathutil.Transform
	rasterToCamera mathutil.Transform
	focalDistance  float64
	apertureSize   float64
	scale          float64
}

// New builds a pinhole camera for a width×height raster.
// width and height must be positive; the caller guarantees this.
func New(cameraToWorld mathutil.Transform, width, height int) Camera {
	aspectRatio := float64(width) / float64(height)

	// [0,w]×[0,h] → [0,2]×[0,2] → [-1,1]×[-1,1], then flip y and correct aspect.
	rasterToCamera := mathutil.NonuniformScale(1, -1/aspectRatio, 1).
		Mul(mathutil.Translate(mathutil.Vec3{-1, -1, 0})).
		Mul(mathutil.NonuniformScale(2/float64(width), 2/float64(height), 1))

	return Camera{
		cameraToWorld:  cameraToWorld,
		rasterToCamera: rasterToCamera,
		scale:          DefaultScale,
	}
}

// FOV returns c with its field of view set. fovDeg should be in (0, 180).
func (c Camera) FOV(fovDeg float64) Camera {
	c.scale = math.Tan(mathutil.Deg2Rad(fovDeg) / 2)
	return c
}

// DOF returns c with the lens focused at distance and a square aperture of
// half-width size. A zero size keeps the camera a pinhole whatever the
// distance. An open aperture with a zero distance focuses on the lens itself,
// so rays point from the lens sample back through the optical axis.
func (c Camera) DOF(distance, size float64) Camera {
	c.focalDistance = distance
	c.apertureSize = size
	return c
}

// GenerateRay returns the world-space ray through raster point (rasterX,
// rasterY). Sub-pixel jitter is the caller's job. Exactly two values are drawn
// from src on every call, whether or not the lens is open.
func (c Camera) GenerateRay(rasterX, rasterY float64, src rng.Source) mathutil.Ray {
	dir := c.rasterToCamera.Point(mathutil.Point3{rasterX, rasterY, -1}).
		ToVec().
		MulElem(mathutil.Vec3{c.scale, c.scale, 1}).
		Normalize()

	// Square aperture: both axes remapped from [0,1) to [-1,1).
	lensX := (src.Float64() - 0.5) * 2 * c.apertureSize
	lensY := (src.Float64() - 0.5) * 2 * c.apertureSize

	origin := mathutil.Origin
	if c.apertureSize != 0 {
		origin = mathutil.Point3{lensX, lensY, 0}
		focus := mathutil.Origin.Add(dir.Scale(c.focalDistance))
		dir = focus.Sub(origin).Normalize()
	}

	return mathutil.Ray{
		Origin:    c.cameraToWorld.Point(origin),
		Direction: c.cameraToWorld.Vector(dir).Normalize(),
	}
}

// CameraToWorld returns the camera placement.
func (c Camera) CameraToWorld() mathutil.Transform { return c.cameraToWorld }

// RasterToCamera returns the raster-to-camera transform.
func (c Camera) RasterToCamera() mathutil.Transform { return c.rasterToCamera }

// Scale returns tan(fov/2).
func (c Camera) Scale() float64 { return c.scale }

// FocalDistance returns the distance of the plane in perfect focus.
func (c Camera) FocalDistance() float64 { return c.focalDistance }

// ApertureSize returns the half-width of the square lens aperture.
func (c Camera) ApertureSize() float64 { return c.apertureSize }
