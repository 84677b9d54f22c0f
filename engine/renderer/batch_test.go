package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/Carmen-Shannon/oxy-spiral/engine/model"
	"github.com/Carmen-Shannon/oxy-spiral/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBatchesGroupsByMesh(t *testing.T) {
	red := model.NewBox("red", 1, 1, 1, common.Color{1, 0, 0, 1})
	blue := model.NewBox("blue", 1, 1, 1, common.Color{0, 0, 1, 1})

	root := scene.NewGroup("root")
	root.Add(scene.NewNode("a", scene.WithMesh(red), scene.WithPosition(0, 1, 0)))
	root.Add(scene.NewNode("b", scene.WithMesh(blue)))
	stack := scene.NewGroup("stack")
	stack.SetPosition(0, 10, 0)
	stack.Add(scene.NewNode("c", scene.WithMesh(red), scene.WithTint(common.Color{0.5, 0.5, 0.5, 1})))
	root.Add(stack)

	hidden := scene.NewNode("hidden", scene.WithMesh(red))
	hidden.Visible = false
	root.Add(hidden)

	batches, stats := BuildBatches(root, nil)
	require.Len(t, batches, 2)
	assert.Equal(t, BatchStats{MeshNodes: 3, Instances: 3, Batches: 2}, stats)

	assert.Less(t, batches[0].Mesh.ID(), batches[1].Mesh.ID())
	redBatch := batches[0]
	if redBatch.Mesh.ID() != red.ID() {
		redBatch = batches[1]
	}
	require.Len(t, redBatch.Instances, 2)
	assert.Equal(t, mgl32.Translate3D(0, 1, 0), redBatch.Instances[0].Model)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, redBatch.Instances[0].Color)
	assert.Equal(t, mgl32.Translate3D(0, 10, 0), redBatch.Instances[1].Model, "inherits the group transform")
	assert.Equal(t, [4]float32{0.5, 0, 0, 1}, redBatch.Instances[1].Color, "tint multiplies base color")
}

func TestBuildBatchesCulls(t *testing.T) {
	box := model.NewBox("box", 2, 2, 2, common.Color{1, 1, 1, 1})
	root := scene.NewGroup("root")
	root.Add(scene.NewNode("front", scene.WithMesh(box)))
	root.Add(scene.NewNode("behind", scene.WithMesh(box), scene.WithPosition(0, 0, 50)))
	root.Add(scene.NewNode("far-left", scene.WithMesh(box), scene.WithPosition(-500, 0, 0)))

	cam := newTestCamera()
	frustum := cam.Frustum()
	batches, stats := BuildBatches(root, &frustum)

	require.Len(t, batches, 1)
	assert.Equal(t, 3, stats.MeshNodes)
	assert.Equal(t, 2, stats.Culled)
	assert.Equal(t, 1, stats.Instances)
	assert.Equal(t, mgl32.Ident4(), batches[0].Instances[0].Model)
}

func TestBuildBatchesScaledSphereStaysConservative(t *testing.T) {
	box := model.NewBox("box", 1, 1, 1, common.Color{1, 1, 1, 1})
	root := scene.NewGroup("root")
	// Center is off screen but the scaled sphere still reaches into the view.
	root.Add(scene.NewNode("wide", scene.WithMesh(box), scene.WithPosition(-20, 0, 0), scene.WithScale(40, 1, 1)))

	frustum := newTestCamera().Frustum()
	_, stats := BuildBatches(root, &frustum)
	assert.Equal(t, 0, stats.Culled)
}

func TestBuildBatchesEmpty(t *testing.T) {
	batches, stats := BuildBatches(nil, nil)
	assert.Nil(t, batches)
	assert.Zero(t, stats)

	batches, stats = BuildBatches(scene.NewGroup("empty"), nil)
	assert.Empty(t, batches)
	assert.Zero(t, stats.Instances)
}

func TestFlattenInstances(t *testing.T) {
	a := model.NewBox("a", 1, 1, 1, common.Color{1, 1, 1, 1})
	b := model.NewBox("b", 1, 1, 1, common.Color{1, 1, 1, 1})
	batches := []Batch{
		{Mesh: a, Instances: make([]model.GPUInstance, 3)},
		{Mesh: b, Instances: make([]model.GPUInstance, 2)},
	}
	all, offsets := FlattenInstances(batches)
	assert.Len(t, all, 5)
	assert.Equal(t, []uint32{0, 3}, offsets)
}
