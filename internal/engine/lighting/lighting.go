// Package lighting describes the light rig of the scene and packs it for
// GPU upload.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/campfire/pkg/math"
)

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 8

// MaxDirectionalLights is the maximum number of directional lights supported in shaders.
const MaxDirectionalLights = 4

// PointLight represents a point light source for GPU upload.
type PointLight struct {
	Position  [3]float32 // World position
	Color     [3]float32 // RGB color (0-1 range)
	Range     float32    // Light radius/falloff distance, 0 = infinite
	Intensity float32    // Light intensity multiplier
}

// DirectionalLight shines from Position towards Target.
type DirectionalLight struct {
	Position   [3]float32
	Target     [3]float32
	Color      [3]float32
	Intensity  float32
	CastShadow bool
}

// Direction returns the normalised vector from the light towards its target.
func (d DirectionalLight) Direction() [3]float32 {
	dx := float64(d.Target[0] - d.Position[0])
	dy := float64(d.Target[1] - d.Position[1])
	dz := float64(d.Target[2] - d.Position[2])
	l := gomath.Sqrt(dx*dx + dy*dy + dz*dz)
	if l == 0 {
		return [3]float32{0, -1, 0}
	}
	return [3]float32{float32(dx / l), float32(dy / l), float32(dz / l)}
}

// Rig is every light in the scene.
type Rig struct {
	AmbientColor     [3]float32
	AmbientIntensity float32
	Directional      []DirectionalLight
	Points           []PointLight
}

// RGB converts a 0xRRGGBB colour to normalised components.
func RGB(hex uint32) [3]float32 {
	return [3]float32{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

// Vec converts a scene vector to a GPU triple.
func Vec(v math.Vec3) [3]float32 {
	return v.Float32()
}
