package renderer

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/Carmen-Shannon/oxy-spiral/engine/model"
	"github.com/Carmen-Shannon/oxy-spiral/engine/scene"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Batch holds every visible instance of one mesh for a single frame.
// The whole batch is drawn with one instanced draw call.
type Batch struct {
	Mesh      model.Mesh
	Instances []model.GPUInstance
}

// BatchStats summarizes one batching pass.
type BatchStats struct {
	MeshNodes int // visible nodes carrying a mesh
	Culled    int // mesh nodes rejected by the frustum
	Instances int
	Batches   int
}

// BuildBatches walks the graph under root and groups mesh nodes by mesh.
// Each instance carries the node's world matrix and its tint multiplied by
// the mesh base color. Batches are ordered by mesh ID and instances keep the
// depth-first walk order.
//
// Parameters:
//   - root: the graph to collect, hidden subtrees are skipped
//   - frustum: when non-nil, nodes whose world bounding sphere lies outside are dropped
//
// Returns:
//   - []Batch: one batch per mesh with at least one visible instance
//   - BatchStats: node and instance counts
func BuildBatches(root *scene.Node, frustum *common.Frustum) ([]Batch, BatchStats) {
	var stats BatchStats
	if root == nil {
		return nil, stats
	}

	byMesh := make(map[uint64]*Batch)
	root.Walk(func(n *scene.Node, world mgl32.Mat4) bool {
		m := n.Mesh()
		if m == nil || m.IndexCount() == 0 {
			return true
		}
		stats.MeshNodes++

		if frustum != nil {
			center, radius := worldSphere(m, world)
			if !frustum.ContainsSphere(center, radius) {
				stats.Culled++
				return true
			}
		}

		b, ok := byMesh[m.ID()]
		if !ok {
			b = &Batch{Mesh: m}
			byMesh[m.ID()] = b
		}
		b.Instances = append(b.Instances, model.GPUInstance{
			Model: world,
			Color: instanceColor(n.Tint, m.BaseColor()),
		})
		stats.Instances++
		return true
	})

	batches := make([]Batch, 0, len(byMesh))
	for _, b := range byMesh {
		batches = append(batches, *b)
	}
	sort.Slice(batches, func(i, j int) bool {
		return batches[i].Mesh.ID() < batches[j].Mesh.ID()
	})
	stats.Batches = len(batches)
	return batches, stats
}

// FlattenInstances packs the instances of every batch back to back and returns
// the index of each batch's first instance.
//
// Parameters:
//   - batches: the batches in draw order
//
// Returns:
//   - []model.GPUInstance: all instances
//   - []uint32: first instance offset per batch
func FlattenInstances(batches []Batch) ([]model.GPUInstance, []uint32) {
	total := 0
	for _, b := range batches {
		total += len(b.Instances)
	}
	all := make([]model.GPUInstance, 0, total)
	offsets := make([]uint32, len(batches))
	for i, b := range batches {
		offsets[i] = uint32(len(all))
		all = append(all, b.Instances...)
	}
	return all, offsets
}

// worldSphere transforms a mesh's model-space bounding sphere by world. The
// radius grows by the largest axis scale so non-uniform scaling stays conservative.
func worldSphere(m model.Mesh, world mgl32.Mat4) (mgl32.Vec3, float32) {
	c, r := m.BoundingSphere()
	center := world.Mul4x1(c.Vec4(1)).Vec3()
	scale := math32.Max(world.Col(0).Vec3().Len(), math32.Max(world.Col(1).Vec3().Len(), world.Col(2).Vec3().Len()))
	return center, r * scale
}

func instanceColor(tint, base common.Color) [4]float32 {
	return [4]float32{tint[0] * base[0], tint[1] * base[1], tint[2] * base[2], tint[3] * base[3]}
}
