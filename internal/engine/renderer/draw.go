package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/campfire/internal/engine/mesh"
	"github.com/Faultbox/campfire/internal/engine/shadow"
	"github.com/Faultbox/campfire/internal/procgen"
	"github.com/Faultbox/campfire/pkg/math"
)

// item is one mesh instance resolved to world space.
type item struct {
	Kind  procgen.InstanceKind
	Shape procgen.Shape
	Size  []float64
	Key   string
	Model mgl32.Mat4
	Style procgen.Style
}

// ModelMatrix returns the world transform of pose under a parent at
// origin. Rotation is applied X, then Y, then Z in the intrinsic order,
// so the matrix is T * Rx * Ry * Rz.
func ModelMatrix(origin math.Vec3, pose procgen.Pose) mgl32.Mat4 {
	p := origin.Add(pose.Position).Float32()
	r := pose.Rotation.Float32()
	return mgl32.Translate3D(p[0], p[1], p[2]).
		Mul4(mgl32.HomogRotate3DX(r[0])).
		Mul4(mgl32.HomogRotate3DY(r[1])).
		Mul4(mgl32.HomogRotate3DZ(r[2]))
}

// flatten resolves every mesh-backed descriptor in instances. Groups are
// expanded into their children; point templates are skipped.
func flatten(instances []procgen.InstanceDescriptor) []item {
	var items []item
	for _, inst := range instances {
		procgen.Walk(inst, func(d procgen.InstanceDescriptor, origin math.Vec3) {
			shape := d.Kind.Shape()
			if shape == procgen.ShapeGroup || shape == procgen.ShapePoint {
				return
			}
			items = append(items, item{
				Kind:  d.Kind,
				Shape: shape,
				Size:  d.Size,
				Key:   mesh.Key(shape, d.Size),
				Model: ModelMatrix(origin, d.Pose),
				Style: d.Style,
			})
		})
	}
	return items
}

// casterBounds returns the world box around every shadow casting or
// receiving item, using the vertices of its mesh.
func casterBounds(items []item, meshes map[string]*mesh.Mesh) shadow.AABB {
	var b shadow.AABB
	for _, it := range items {
		if !it.Style.CastShadow && !it.Style.ReceiveShadow {
			continue
		}
		m, ok := meshes[it.Key]
		if !ok {
			continue
		}
		for _, v := range m.Vertices {
			w := it.Model.Mul4x1(mgl32.Vec3(v.Position).Vec4(1))
			b.Extend(w.Vec3())
		}
	}
	return b
}

// rgb converts a 0xRRGGBB colour to a shader vector.
func rgb(hex uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

// emissive returns the additive colour of style.
func emissive(style procgen.Style) mgl32.Vec3 {
	return rgb(style.Emissive).Mul(float32(style.EmissiveIntensity))
}
