package spawner

import (
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/Carmen-Shannon/oxy-spiral/engine/diag"
	"github.com/Carmen-Shannon/oxy-spiral/engine/model"
	"github.com/Carmen-Shannon/oxy-spiral/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTemplate() *scene.Node {
	mesh := model.NewBox("slice", 1, 1, 1, common.ColorFromHex(0xffcc88))
	return scene.NewNode("cake", scene.WithChildren(
		scene.NewNode("slice", scene.WithMesh(mesh), scene.WithPosition(0.5, 0, 0)),
	))
}

func TestSpawnDemoLayout(t *testing.T) {
	root := scene.NewGroup("root")
	rec := diag.NewRecorder()
	s := NewSpawner(root, WithDiagnostics(rec))

	group, err := s.Spawn(newTemplate(), LayoutConfig{Total: 104, YStep: 4, AngleStepDeg: 45})
	require.NoError(t, err)
	require.Equal(t, 104, group.ChildCount())
	assert.Same(t, root, group.Parent())

	tests := []struct {
		index  int
		height float32
		yawDeg float32
	}{
		{0, 0, 0},
		{7, 0, 315},
		{8, 4, 0},
		{9, 4, 45},
		{103, 48, 315},
	}
	for _, tt := range tests {
		piece := group.Child(tt.index)
		assert.InDelta(t, tt.height, piece.Transform.Position[1], 1e-5, "piece %d height", tt.index)
		assert.InDelta(t, mgl32.DegToRad(tt.yawDeg), piece.Yaw(), 1e-5, "piece %d yaw", tt.index)
		assert.Equal(t, float32(0), piece.Transform.Position[0])
		assert.Equal(t, float32(0), piece.Transform.Position[2])
		assert.Equal(t, 1, piece.ChildCount(), "descendants are cloned")
	}

	events := rec.Named("spawner.piece")
	require.Len(t, events, 104)
	last := events[103].Attrs
	assert.Equal(t, int64(104), last["index"])
	assert.Equal(t, int64(104), last["total"])
	assert.InDelta(t, 48, last["y"], 1e-6)
	assert.InDelta(t, 315, last["angle_deg"], 1e-6)
	assert.Equal(t, int64(1), events[0].Attrs["index"])
}

func TestSpawnLeavesTemplateUntouched(t *testing.T) {
	template := newTemplate()
	group, err := NewSpawner(nil).Spawn(template, LayoutConfig{Total: 3, YStep: 1, AngleStepDeg: 90})
	require.NoError(t, err)

	assert.Nil(t, group.Parent())
	assert.Nil(t, template.Parent())
	assert.Equal(t, mgl32.Vec3{}, template.Transform.Position)
	assert.Equal(t, float32(0), template.Yaw())

	group.Child(1).Child(0).SetPosition(7, 7, 7)
	assert.Equal(t, mgl32.Vec3{0.5, 0, 0}, template.Child(0).Transform.Position)
	assert.Equal(t, template.Child(0).Mesh().ID(), group.Child(2).Child(0).Mesh().ID())
}

func TestSpawnEveryPieceOnHelix(t *testing.T) {
	const yStep, angleStep = 4, 45
	for _, total := range []int{0, 1, 7, 8, 9, 17, 104} {
		t.Run(fmt.Sprintf("total_%d", total), func(t *testing.T) {
			group, err := NewSpawner(scene.NewGroup("root")).
				Spawn(newTemplate(), LayoutConfig{Total: total, YStep: yStep, AngleStepDeg: angleStep})
			require.NoError(t, err)
			require.Equal(t, total, group.ChildCount())

			for i := 0; i < total; i++ {
				piece := group.Child(i)
				assert.InDelta(t, float32(i/DefaultRingSize)*yStep, piece.Transform.Position[1], 1e-5, "piece %d height", i)
				assert.InDelta(t, mgl32.DegToRad(float32(i%DefaultRingSize)*angleStep), piece.Yaw(), 1e-5, "piece %d yaw", i)
			}
		})
	}
}

func TestSpawnZeroTotal(t *testing.T) {
	root := scene.NewGroup("root")
	rec := diag.NewRecorder()
	group, err := NewSpawner(root, WithDiagnostics(rec), WithGroupName("stack")).
		Spawn(newTemplate(), LayoutConfig{Total: 0, YStep: 2, AngleStepDeg: 45})
	require.NoError(t, err)
	assert.Equal(t, 0, group.ChildCount())
	assert.Equal(t, "stack", group.Name)
	assert.Empty(t, rec.Named("spawner.piece"))
	assert.Len(t, rec.Named("spawner.done"), 1)
}

func TestSpawnErrors(t *testing.T) {
	root := scene.NewGroup("root")
	s := NewSpawner(root)

	_, err := s.Spawn(nil, DefaultLayout())
	assert.ErrorIs(t, err, ErrNilTemplate)

	_, err = s.Spawn(newTemplate(), LayoutConfig{Total: -1})
	assert.ErrorIs(t, err, ErrInvalidLayout)

	_, err = s.Spawn(newTemplate(), LayoutConfig{Total: 1, RingSize: -2})
	assert.ErrorIs(t, err, ErrInvalidLayout)

	assert.Equal(t, 0, root.ChildCount(), "failed spawns attach nothing")
}

func TestPlacementCustomRing(t *testing.T) {
	cfg := LayoutConfig{YStep: 1.5, AngleStepDeg: 30, RingSize: 12}
	h, yaw := cfg.Placement(25)
	assert.InDelta(t, 3, h, 1e-6)
	assert.InDelta(t, mgl32.DegToRad(30), yaw, 1e-6)
}
