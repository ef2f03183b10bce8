package procgen

import (
	gomath "math"

	"github.com/Faultbox/campfire/pkg/math"
)

// Palette used by the campsite objects.
const (
	ColorGround   = 0xa39027
	ColorBark     = 0x8b4513
	ColorLeaves   = 0x228b22
	ColorRock     = 0x888888
	ColorFireBase = 0x7f5539
	ColorFirefly  = 0xffff00
	ColorStar     = 0xffffff
	ColorWhite    = 0xffffff
)

// Texture names resolved by the renderer's texture directory.
const (
	TextureWood = "wood"
	TextureMoon = "moon"
)

// TreeGroundY is the height every forest tree group is planted at.
const TreeGroundY = -1.9

// leafTier is one cone of a tree crown.
type leafTier struct {
	size, y float64
}

var (
	forestCrown  = []leafTier{{1.5, 2.5}, {1.2, 3.5}, {0.9, 4.5}}
	centralCrown = []leafTier{{1.5, 0.5}, {1.2, 1.5}, {0.9, 2.3}}
)

func at(x, y, z float64) Pose {
	return Pose{Position: math.Vec3{X: x, Y: y, Z: z}}
}

// Trunk returns a six-sided tapered trunk.
func Trunk(pose Pose) (InstanceDescriptor, error) {
	return BuildInstance(KindTrunk, pose, []float64{0.2, 0.3, 1, 6}, Style{
		Color:         ColorBark,
		CastShadow:    true,
		ReceiveShadow: true,
	})
}

// LeafCone returns a crown cone of the given radius; its height is twice
// the radius.
func LeafCone(size, y float64) (InstanceDescriptor, error) {
	return BuildInstance(KindLeaves, at(0, y, 0), []float64{size, size * 2, 6}, Style{
		Color:         ColorLeaves,
		FlatShading:   true,
		CastShadow:    true,
		ReceiveShadow: true,
	})
}

func tree(pose Pose, trunkY float64, crown []leafTier) (InstanceDescriptor, error) {
	trunk, err := Trunk(at(0, trunkY, 0))
	if err != nil {
		return InstanceDescriptor{}, err
	}
	children := []InstanceDescriptor{trunk}
	for _, tier := range crown {
		leaf, err := LeafCone(tier.size, tier.y)
		if err != nil {
			return InstanceDescriptor{}, err
		}
		children = append(children, leaf)
	}
	return BuildGroup(KindTree, pose, children...)
}

// Tree returns a forest tree planted at the XZ of position. The Y of
// position is ignored; forest trees sit at TreeGroundY.
func Tree(position math.Vec3) (InstanceDescriptor, error) {
	return tree(at(position.X, TreeGroundY, position.Z), 0.9, forestCrown)
}

// CentralTree returns the lone tree next to the campfire.
func CentralTree() (InstanceDescriptor, error) {
	return tree(Pose{}, -1.0, centralCrown)
}

// Rock returns a grey dodecahedron of the given radius.
func Rock(size float64, pose Pose) (InstanceDescriptor, error) {
	return BuildInstance(KindRock, pose, []float64{size}, Style{
		Color:         ColorRock,
		CastShadow:    true,
		ReceiveShadow: true,
	})
}

// Ground returns a flat plane lying horizontally at height y.
func Ground(width, depth, y float64) (InstanceDescriptor, error) {
	return BuildInstance(KindGround, Pose{
		Position: math.Vec3{Y: y},
		Rotation: math.Vec3{X: -gomath.Pi / 2},
	}, []float64{width, depth}, Style{
		Color:         ColorGround,
		FlatShading:   true,
		ReceiveShadow: true,
	})
}

// FireBase returns the flat hexagonal base of the campfire.
func FireBase(position math.Vec3) (InstanceDescriptor, error) {
	return BuildInstance(KindFireBase, Pose{Position: position}, []float64{0.5, 0.5, 0.1, 6}, Style{
		Color:         ColorFireBase,
		ReceiveShadow: true,
	})
}

// CampLog returns a short wood-textured log.
func CampLog(position, rotation math.Vec3) (InstanceDescriptor, error) {
	return BuildInstance(KindLog, Pose{Position: position, Rotation: rotation}, []float64{0.15, 0.15, 1, 6}, Style{
		Color:         ColorWhite,
		Texture:       TextureWood,
		CastShadow:    true,
		ReceiveShadow: true,
	})
}

// CrossedLogs returns two logs lying flat on the ground in an X.
func CrossedLogs(position math.Vec3) ([]InstanceDescriptor, error) {
	var logs []InstanceDescriptor
	for _, yaw := range []float64{gomath.Pi / 4, -gomath.Pi / 4} {
		l, err := CampLog(position, math.Vec3{X: 0, Y: yaw, Z: gomath.Pi / 2})
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, nil
}

// ChairLog returns the longer log used as a bench.
func ChairLog(position, rotation math.Vec3) (InstanceDescriptor, error) {
	return BuildInstance(KindChairLog, Pose{Position: position, Rotation: rotation}, []float64{0.2, 0.2, 1.5, 12}, Style{
		Color:         ColorWhite,
		Texture:       TextureWood,
		CastShadow:    true,
		ReceiveShadow: true,
	})
}

// Moon returns a glowing textured sphere.
func Moon(position math.Vec3) (InstanceDescriptor, error) {
	return BuildInstance(KindMoon, Pose{Position: position}, []float64{2, 20, 20}, Style{
		Color:             ColorWhite,
		Texture:           TextureMoon,
		Emissive:          ColorWhite,
		EmissiveIntensity: 0.3,
		CastShadow:        true,
	})
}

// FireflyBody returns the shared template for a firefly sphere. Its pose
// is replaced by the simulation each frame.
func FireflyBody() (InstanceDescriptor, error) {
	return BuildInstance(KindFirefly, Pose{}, []float64{0.03, 8, 8}, Style{
		Color: ColorFirefly,
		Unlit: true,
	})
}

// StarPoint returns the template used for every point of the star field.
func StarPoint(size float64) (InstanceDescriptor, error) {
	return BuildInstance(KindStar, Pose{}, []float64{size}, Style{
		Color: ColorStar,
		Unlit: true,
	})
}
