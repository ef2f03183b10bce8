// Package procgen computes poses for decorative scene instances and turns
// them into renderable descriptors.
package procgen

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/campfire/pkg/math"
)

// Pose is where a generated instance sits in world space.
// Rotation holds XYZ Euler angles in radians.
type Pose struct {
	Position math.Vec3
	Rotation math.Vec3
}

// Area bounds a random scatter. It is centred on the origin and shifted
// by -Offset along Z.
type Area struct {
	Width  float64 `yaml:"width"`
	Depth  float64 `yaml:"depth"`
	Offset float64 `yaml:"offset"`
}

// Validate checks that the area has a positive, finite extent.
func (a Area) Validate() error {
	if !math.IsFinite(a.Width) || a.Width <= 0 {
		return fmt.Errorf("area width %v: %w", a.Width, ErrInvalidArgument)
	}
	if !math.IsFinite(a.Depth) || a.Depth <= 0 {
		return fmt.Errorf("area depth %v: %w", a.Depth, ErrInvalidArgument)
	}
	if !math.IsFinite(a.Offset) {
		return fmt.Errorf("area offset %v: %w", a.Offset, ErrInvalidArgument)
	}
	return nil
}

// Contains reports whether p lies inside the area in the XZ plane.
func (a Area) Contains(p math.Vec3) bool {
	hw, hd := a.Width/2, a.Depth/2
	z := p.Z + a.Offset
	return p.X >= -hw && p.X <= hw && z >= -hd && z <= hd
}

// ScatterInArea places count poses uniformly inside area at height groundY.
// Rotations are zero.
func ScatterInArea(area Area, groundY float64, count int, rng RandomSource) ([]Pose, error) {
	if err := area.Validate(); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("scatter count %d: %w", count, ErrInvalidArgument)
	}
	if !math.IsFinite(groundY) {
		return nil, fmt.Errorf("ground level %v: %w", groundY, ErrInvalidArgument)
	}

	poses := make([]Pose, 0, count)
	for i := 0; i < count; i++ {
		x := rng.Float64()*area.Width - area.Width/2
		z := rng.Float64()*area.Depth - area.Depth/2
		poses = append(poses, Pose{
			Position: math.Vec3{X: x, Y: groundY, Z: z - area.Offset},
		})
	}
	return poses, nil
}

// RingPlacement spaces count poses evenly on a horizontal circle around
// center, starting at +X and advancing by 2π/count. Each Euler component
// of the rotation is drawn from [0, π).
func RingPlacement(center math.Vec3, radius float64, count int, rng RandomSource) ([]Pose, error) {
	if !center.IsFinite() {
		return nil, fmt.Errorf("ring center %v: %w", center, ErrInvalidArgument)
	}
	if !math.IsFinite(radius) || radius < 0 {
		return nil, fmt.Errorf("ring radius %v: %w", radius, ErrInvalidArgument)
	}
	if count < 0 {
		return nil, fmt.Errorf("ring count %d: %w", count, ErrInvalidArgument)
	}

	poses := make([]Pose, 0, count)
	for i := 0; i < count; i++ {
		angle := float64(i) / float64(count) * gomath.Pi * 2
		poses = append(poses, Pose{
			Position: math.Vec3{
				X: center.X + gomath.Cos(angle)*radius,
				Y: center.Y,
				Z: center.Z + gomath.Sin(angle)*radius,
			},
			Rotation: math.Vec3{
				X: uniform(rng, 0, gomath.Pi),
				Y: uniform(rng, 0, gomath.Pi),
				Z: uniform(rng, 0, gomath.Pi),
			},
		})
	}
	return poses, nil
}

// ScatterInCube returns count points with each component uniform in
// [-extent/2, extent/2).
func ScatterInCube(extent float64, count int, rng RandomSource) ([]math.Vec3, error) {
	if !math.IsFinite(extent) || extent <= 0 {
		return nil, fmt.Errorf("cube extent %v: %w", extent, ErrInvalidArgument)
	}
	if count < 0 {
		return nil, fmt.Errorf("cube count %d: %w", count, ErrInvalidArgument)
	}

	points := make([]math.Vec3, 0, count)
	for i := 0; i < count; i++ {
		points = append(points, math.Vec3{
			X: (rng.Float64() - 0.5) * extent,
			Y: (rng.Float64() - 0.5) * extent,
			Z: (rng.Float64() - 0.5) * extent,
		})
	}
	return points, nil
}
