package camera

import (
	"errors"
	"fmt"

	"thinlens-renderer/internal/mathutil"
)

var (
	ErrResolution = errors.New("camera: width and height must be positive")
	ErrFOV        = errors.New("camera: fov must be in (0, 180) degrees")
	ErrDOF        = errors.New("camera: focal distance and aperture must be non-negative")
	ErrFocus      = errors.New("camera: an open aperture needs a positive focal distance")
)

// Config is the validated construction path for a Camera. New and its
// builder methods accept anything; Build rejects the inputs that would
// silently produce degenerate rays.
type Config struct {
	Placement     mathutil.Transform
	Width         int
	Height        int
	FOV           float64 // degrees; 0 keeps DefaultScale
	FocalDistance float64
	ApertureSize  float64
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrResolution, c.Width, c.Height)
	}
	if c.FOV < 0 || c.FOV >= 180 {
		return fmt.Errorf("%w: got %g", ErrFOV, c.FOV)
	}
	if c.FocalDistance < 0 || c.ApertureSize < 0 {
		return fmt.Errorf("%w: got distance %g, aperture %g", ErrDOF, c.FocalDistance, c.ApertureSize)
	}
	if c.ApertureSize > 0 && c.FocalDistance == 0 {
		return fmt.Errorf("%w: aperture %g", ErrFocus, c.ApertureSize)
	}
	return nil
}

// Build validates c and returns the configured Camera.
func (c Config) Build() (Camera, error) {
	if err := c.Validate(); err != nil {
		return Camera{}, err
	}
	cam := New(c.Placement, c.Width, c.Height)
	if c.FOV != 0 {
		cam = cam.FOV(c.FOV)
	}
	return cam.DOF(c.FocalDistance, c.ApertureSize), nil
}
