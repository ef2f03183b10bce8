// Package camera provides the orbit camera used to view the campsite.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center mgl32.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// AutoOrbit turns the camera by OrbitSpeed radians per second.
	AutoOrbit  bool
	OrbitSpeed float32

	// Projection
	FOV       float32 // degrees
	Near, Far float32
	Aspect    float32
}

// NewOrbitCamera creates an orbit camera at eye looking at center.
func NewOrbitCamera(eye, center mgl32.Vec3) *OrbitCamera {
	c := &OrbitCamera{
		Center:          center,
		MinDistance:     2.0,
		MaxDistance:     60.0,
		MinPitch:        -0.2,
		MaxPitch:        1.4,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FOV:             75,
		Near:            0.1,
		Far:             1000,
		Aspect:          16.0 / 9.0,
	}
	c.LookFrom(eye)
	return c
}

// LookFrom places the camera at eye, keeping the current center.
func (c *OrbitCamera) LookFrom(eye mgl32.Vec3) {
	off := eye.Sub(c.Center)
	c.Distance = off.Len()
	if c.Distance == 0 {
		c.Distance = c.MinDistance
		return
	}
	c.RotationX = float32(gomath.Asin(float64(off.Y() / c.Distance)))
	c.RotationY = float32(gomath.Atan2(float64(off.X()), float64(off.Z())))
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))
	return c.Center.Add(mgl32.Vec3{x, y, z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection.
func (c *OrbitCamera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// SetViewport updates the aspect ratio after a resize.
func (c *OrbitCamera) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
}

// Update advances the automatic orbit by dt seconds.
func (c *OrbitCamera) Update(dt float64) {
	if c.AutoOrbit {
		c.RotationY += c.OrbitSpeed * float32(dt)
	}
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = mgl32.Clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}
