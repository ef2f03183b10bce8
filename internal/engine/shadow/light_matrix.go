package shadow

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
	set bool
}

// Extend grows the box to contain p.
func (b *AABB) Extend(p mgl32.Vec3) {
	if !b.set {
		b.Min, b.Max, b.set = p, p, true
		return
	}
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}

// Empty reports whether nothing has been added to the box.
func (b AABB) Empty() bool {
	return !b.set
}

// Center returns the center point of the AABB.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Radius returns the distance from center to corner (half-diagonal).
func (b AABB) Radius() float32 {
	return b.Max.Sub(b.Min).Len() / 2
}

// LightMatrix computes the view-projection of a directional light shining
// along direction so that the whole of bounds falls inside its
// orthographic frustum.
func LightMatrix(direction mgl32.Vec3, bounds AABB) mgl32.Mat4 {
	center := bounds.Center()
	radius := max(bounds.Radius(), 1)
	dir := direction.Normalize()

	// Back off far enough to encompass the entire box
	lightDistance := radius * 2
	eye := center.Sub(dir.Mul(lightDistance))

	up := mgl32.Vec3{0, 1, 0}
	if gomath.Abs(float64(dir.Y())) > 0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}
	view := mgl32.LookAtV(eye, center, up)

	// Padding avoids edge artifacts
	halfSize := radius * 1.1
	far := lightDistance + halfSize
	proj := mgl32.Ortho(-halfSize, halfSize, -halfSize, halfSize, 0.1, far)

	return proj.Mul4(view)
}
