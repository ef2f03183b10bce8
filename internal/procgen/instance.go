package procgen

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Faultbox/campfire/pkg/math"
)

// InstanceKind identifies what a descriptor asks the renderer to draw.
type InstanceKind int

const (
	KindGround InstanceKind = iota
	KindTrunk
	KindLeaves
	KindTree
	KindRock
	KindLog
	KindChairLog
	KindFireBase
	KindMoon
	KindStar
	KindFirefly
)

var kindNames = [...]string{
	KindGround:   "ground",
	KindTrunk:    "trunk",
	KindLeaves:   "leaves",
	KindTree:     "tree",
	KindRock:     "rock",
	KindLog:      "log",
	KindChairLog: "chair_log",
	KindFireBase: "fire_base",
	KindMoon:     "moon",
	KindStar:     "star",
	KindFirefly:  "firefly",
}

func (k InstanceKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Shape is the geometry family a kind is built from.
type Shape int

const (
	ShapeGroup Shape = iota
	ShapePlane
	ShapeCylinder
	ShapeCone
	ShapeDodecahedron
	ShapeSphere
	ShapePoint
)

// Size parameter layouts per shape:
//
//	ShapePlane        [width, depth]
//	ShapeCylinder     [radiusTop, radiusBottom, height, radialSegments]
//	ShapeCone         [radius, height, radialSegments]
//	ShapeDodecahedron [radius]
//	ShapeSphere       [radius, widthSegments, heightSegments]
//	ShapePoint        [pointSize]
//	ShapeGroup        []
var shapeArity = map[Shape]int{
	ShapeGroup:        0,
	ShapePlane:        2,
	ShapeCylinder:     4,
	ShapeCone:         3,
	ShapeDodecahedron: 1,
	ShapeSphere:       3,
	ShapePoint:        1,
}

// Shape returns the geometry family for the kind.
func (k InstanceKind) Shape() Shape {
	switch k {
	case KindGround:
		return ShapePlane
	case KindTrunk, KindLog, KindChairLog, KindFireBase:
		return ShapeCylinder
	case KindLeaves:
		return ShapeCone
	case KindRock:
		return ShapeDodecahedron
	case KindMoon, KindFirefly:
		return ShapeSphere
	case KindStar:
		return ShapePoint
	default:
		return ShapeGroup
	}
}

// Style carries the material hints for an instance. Colours are 0xRRGGBB.
type Style struct {
	Color             uint32
	FlatShading       bool
	Unlit             bool
	Texture           string
	Emissive          uint32
	EmissiveIntensity float64
	CastShadow        bool
	ReceiveShadow     bool
}

// InstanceDescriptor is a fully specified request to instantiate a
// renderable. Children carry poses local to the parent.
type InstanceDescriptor struct {
	ID       string
	Kind     InstanceKind
	Pose     Pose
	Size     []float64
	Style    Style
	Children []InstanceDescriptor
}

// BuildInstance validates the parameters for kind and returns a new
// descriptor. Size values must match the kind's shape layout and be
// finite and positive.
func BuildInstance(kind InstanceKind, pose Pose, size []float64, style Style) (InstanceDescriptor, error) {
	if kind < 0 || int(kind) >= len(kindNames) {
		return InstanceDescriptor{}, fmt.Errorf("instance kind %d: %w", int(kind), ErrInvalidArgument)
	}
	if !pose.Position.IsFinite() || !pose.Rotation.IsFinite() {
		return InstanceDescriptor{}, fmt.Errorf("%s pose %+v: %w", kind, pose, ErrInvalidArgument)
	}
	want := shapeArity[kind.Shape()]
	if len(size) != want {
		return InstanceDescriptor{}, fmt.Errorf("%s expects %d size params, got %d: %w",
			kind, want, len(size), ErrInvalidArgument)
	}
	for i, v := range size {
		if !math.IsFinite(v) || v <= 0 {
			return InstanceDescriptor{}, fmt.Errorf("%s size[%d] = %v: %w", kind, i, v, ErrInvalidArgument)
		}
	}
	if style.EmissiveIntensity < 0 || !math.IsFinite(style.EmissiveIntensity) {
		return InstanceDescriptor{}, fmt.Errorf("%s emissive intensity %v: %w",
			kind, style.EmissiveIntensity, ErrInvalidArgument)
	}

	return InstanceDescriptor{
		ID:    uuid.NewString(),
		Kind:  kind,
		Pose:  pose,
		Size:  append([]float64(nil), size...),
		Style: style,
	}, nil
}

// BuildGroup returns a group descriptor owning children.
func BuildGroup(kind InstanceKind, pose Pose, children ...InstanceDescriptor) (InstanceDescriptor, error) {
	if kind.Shape() != ShapeGroup {
		return InstanceDescriptor{}, fmt.Errorf("%s is not a group kind: %w", kind, ErrInvalidArgument)
	}
	d, err := BuildInstance(kind, pose, nil, Style{})
	if err != nil {
		return InstanceDescriptor{}, err
	}
	d.Children = append([]InstanceDescriptor(nil), children...)
	return d, nil
}

// Walk visits d and every descendant depth first, passing the world pose
// translation accumulated from ancestors. Rotations of groups are not
// composed; groups in this scene are translation-only.
func Walk(d InstanceDescriptor, fn func(d InstanceDescriptor, origin math.Vec3)) {
	walk(d, math.Vec3{}, fn)
}

func walk(d InstanceDescriptor, origin math.Vec3, fn func(InstanceDescriptor, math.Vec3)) {
	fn(d, origin)
	childOrigin := origin.Add(d.Pose.Position)
	for _, c := range d.Children {
		walk(c, childOrigin, fn)
	}
}
