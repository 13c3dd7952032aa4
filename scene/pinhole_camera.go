package scene

import (
	"math"

	"github.com/katalvlaran/pathforge/vecmath"
)

// PinholeCamera is a zero-aperture perspective camera: a reference
// Camera implementation sufficient to drive a full render end to end.
// It ignores the lens sample (u, v), since a
// pinhole has no depth of field.
type PinholeCamera struct {
	eye, forward, right, up vecmath.Vec3
	fovY                    float64
	imageWidth, imageHeight int
	shutterOpen, shutterClose float64

	pixelAngularWidth float64
}

// NewPinholeCamera builds a camera at eye, looking toward lookAt, with
// up as the approximate up direction (re-orthonormalized against the
// view direction), fovY as the vertical field of view in radians, and an
// image of imageWidth x imageHeight pixels. The shutter is closed
// (motion blur disabled) by default; see SetShutter.
func NewPinholeCamera(eye, lookAt, up vecmath.Vec3, fovY float64, imageWidth, imageHeight int) *PinholeCamera {
	forward := lookAt.Sub(eye).Normalized()
	right := forward.Cross(up).Normalized()
	trueUp := right.Cross(forward).Normalized()

	halfHeight := math.Tan(fovY / 2)

	return &PinholeCamera{
		eye: eye, forward: forward, right: right, up: trueUp,
		fovY: fovY, imageWidth: imageWidth, imageHeight: imageHeight,
		shutterOpen: 0, shutterClose: 0,
		pixelAngularWidth: (2 * halfHeight) / float64(imageHeight),
	}
}

// SetShutter configures the camera's shutter interval in [0,1] sample
// time; a zero-width interval (the default) disables motion blur by
// mapping every sample to open.
func (c *PinholeCamera) SetShutter(open, close float64) {
	c.shutterOpen, c.shutterClose = open, close
}

// GenerateRay implements Camera.
func (c *PinholeCamera) GenerateRay(rx, ry, dx, dy, time, u, v float64) *vecmath.Ray {
	aspect := float64(c.imageWidth) / float64(c.imageHeight)
	halfHeight := math.Tan(c.fovY / 2)
	halfWidth := halfHeight * aspect

	px := (2*(rx+dx)/float64(c.imageWidth) - 1) * halfWidth
	py := (1 - 2*(ry+dy)/float64(c.imageHeight)) * halfHeight

	dir := c.forward.Add(c.right.Scale(px)).Add(c.up.Scale(py)).Normalized()

	r := &vecmath.Ray{
		Origin: c.eye,
		Dir:    dir,
		Time:   c.shutterOpen + (c.shutterClose-c.shutterOpen)*time,
		MaxT:   math.Inf(1),
		OW:     0,
		DW:     c.pixelAngularWidth,
	}
	r.Finalize()
	return r
}
