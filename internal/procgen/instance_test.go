package procgen

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/campfire/pkg/math"
)

func TestBuildInstance(t *testing.T) {
	pose := Pose{Position: math.Vec3{X: 1, Y: 2, Z: 3}}
	size := []float64{0.25}
	d, err := BuildInstance(KindRock, pose, size, Style{Color: ColorRock})
	require.NoError(t, err)

	assert.NotEmpty(t, d.ID)
	assert.Equal(t, KindRock, d.Kind)
	assert.Equal(t, pose, d.Pose)
	assert.Equal(t, []float64{0.25}, d.Size)

	// the descriptor must not alias the caller's slice
	size[0] = 9
	assert.Equal(t, 0.25, d.Size[0])

	other, err := BuildInstance(KindRock, pose, []float64{0.25}, Style{})
	require.NoError(t, err)
	assert.NotEqual(t, d.ID, other.ID)
}

func TestBuildInstance_Invalid(t *testing.T) {
	tests := []struct {
		name string
		kind InstanceKind
		pose Pose
		size []float64
	}{
		{"unknown kind", InstanceKind(99), Pose{}, nil},
		{"wrong arity", KindRock, Pose{}, []float64{1, 2}},
		{"zero radius", KindRock, Pose{}, []float64{0}},
		{"negative height", KindTrunk, Pose{}, []float64{0.2, 0.3, -1, 6}},
		{"nan size", KindLeaves, Pose{}, []float64{1, gomath.NaN(), 6}},
		{"inf position", KindRock, Pose{Position: math.Vec3{X: gomath.Inf(1)}}, []float64{1}},
		{"nan rotation", KindRock, Pose{Rotation: math.Vec3{Y: gomath.NaN()}}, []float64{1}},
		{"group with size", KindTree, Pose{}, []float64{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildInstance(tt.kind, tt.pose, tt.size, Style{})
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}

	_, err := BuildInstance(KindMoon, Pose{}, []float64{2, 20, 20}, Style{EmissiveIntensity: -1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBuildGroup(t *testing.T) {
	_, err := BuildGroup(KindRock, Pose{})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	leaf, err := LeafCone(1, 2)
	require.NoError(t, err)
	g, err := BuildGroup(KindTree, Pose{}, leaf)
	require.NoError(t, err)
	assert.Len(t, g.Children, 1)
	assert.Empty(t, g.Size)
}

func TestTree(t *testing.T) {
	tr, err := Tree(math.Vec3{X: 4, Y: -1.5, Z: -12})
	require.NoError(t, err)

	assert.Equal(t, KindTree, tr.Kind)
	assert.Equal(t, math.Vec3{X: 4, Y: TreeGroundY, Z: -12}, tr.Pose.Position)
	require.Len(t, tr.Children, 4)
	assert.Equal(t, KindTrunk, tr.Children[0].Kind)
	assert.Equal(t, 0.9, tr.Children[0].Pose.Position.Y)

	wantCrown := []struct{ size, y float64 }{{1.5, 2.5}, {1.2, 3.5}, {0.9, 4.5}}
	for i, want := range wantCrown {
		leaf := tr.Children[i+1]
		assert.Equal(t, KindLeaves, leaf.Kind)
		assert.Equal(t, []float64{want.size, want.size * 2, 6}, leaf.Size)
		assert.Equal(t, want.y, leaf.Pose.Position.Y)
	}
}

func TestWalk(t *testing.T) {
	tr, err := Tree(math.Vec3{X: 4, Z: -12})
	require.NoError(t, err)

	var kinds []InstanceKind
	var worldY []float64
	Walk(tr, func(d InstanceDescriptor, origin math.Vec3) {
		kinds = append(kinds, d.Kind)
		worldY = append(worldY, origin.Add(d.Pose.Position).Y)
	})

	assert.Equal(t, []InstanceKind{KindTree, KindTrunk, KindLeaves, KindLeaves, KindLeaves}, kinds)
	assert.InDelta(t, TreeGroundY, worldY[0], eps)
	assert.InDelta(t, TreeGroundY+0.9, worldY[1], eps)
	assert.InDelta(t, TreeGroundY+4.5, worldY[4], eps)
}

func TestCrossedLogs(t *testing.T) {
	logs, err := CrossedLogs(math.Vec3{X: 3, Y: -1.3})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.InDelta(t, gomath.Pi/4, logs[0].Pose.Rotation.Y, eps)
	assert.InDelta(t, -gomath.Pi/4, logs[1].Pose.Rotation.Y, eps)
	for _, l := range logs {
		assert.InDelta(t, gomath.Pi/2, l.Pose.Rotation.Z, eps)
		assert.Equal(t, TextureWood, l.Style.Texture)
	}
}

func TestKindShapes(t *testing.T) {
	assert.Equal(t, ShapePlane, KindGround.Shape())
	assert.Equal(t, ShapeCylinder, KindChairLog.Shape())
	assert.Equal(t, ShapeCone, KindLeaves.Shape())
	assert.Equal(t, ShapeDodecahedron, KindRock.Shape())
	assert.Equal(t, ShapeSphere, KindFirefly.Shape())
	assert.Equal(t, ShapePoint, KindStar.Shape())
	assert.Equal(t, ShapeGroup, KindTree.Shape())
	assert.Equal(t, "chair_log", KindChairLog.String())
	assert.Equal(t, "kind(42)", InstanceKind(42).String())
}
