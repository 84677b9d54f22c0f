package model

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// meshCount hands out process-unique mesh IDs used as renderer cache keys.
var meshCount atomic.Uint64

type mesh struct {
	id        uint64
	name      string
	vertices  []GPUVertex
	indices   []uint32
	baseColor common.Color

	boundingMin    mgl32.Vec3
	boundingMax    mgl32.Vec3
	boundingCenter mgl32.Vec3
	boundingRadius float32
}

// Mesh is immutable, renderable triangle geometry in model space.
// A Mesh is safe to share between any number of scene nodes; every node that
// references it is drawn as one instance of the mesh.
type Mesh interface {
	// ID returns the process-unique identifier of the mesh.
	ID() uint64

	// Name returns the mesh's identifier.
	Name() string

	// Vertices returns the vertex data. The slice must not be modified.
	Vertices() []GPUVertex

	// Indices returns the triangle-list index data. The slice must not be modified.
	Indices() []uint32

	// IndexCount returns the number of indices to draw.
	IndexCount() int

	// BaseColor returns the material base color multiplied into every vertex color.
	BaseColor() common.Color

	// Bounds returns the model-space axis-aligned bounding box.
	//
	// Returns:
	//   - min, max: the box corners
	Bounds() (min, max mgl32.Vec3)

	// BoundingSphere returns a model-space sphere enclosing every vertex.
	//
	// Returns:
	//   - center: the sphere center
	//   - radius: the sphere radius
	BoundingSphere() (center mgl32.Vec3, radius float32)
}

var _ Mesh = &mesh{}

// NewMesh creates a Mesh from the given options. When no indices are supplied a
// sequential triangle list is generated; when WithGeneratedNormals is set,
// smooth vertex normals are computed from the triangles.
//
// Parameters:
//   - options: functional options providing the geometry
//
// Returns:
//   - Mesh: the immutable mesh
func NewMesh(options ...MeshBuilderOption) Mesh {
	b := &meshBuilder{
		mesh: &mesh{
			id:        meshCount.Add(1),
			baseColor: common.Color{1, 1, 1, 1},
		},
	}
	for _, opt := range options {
		opt(b)
	}

	m := b.mesh
	if m.indices == nil {
		m.indices = make([]uint32, len(m.vertices))
		for i := range m.indices {
			m.indices[i] = uint32(i)
		}
	}
	if b.generateNormals {
		GenerateNormals(m.vertices, m.indices)
	}
	m.computeBounds()
	return m
}

func (m *mesh) ID() uint64 {
	return m.id
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) Vertices() []GPUVertex {
	return m.vertices
}

func (m *mesh) Indices() []uint32 {
	return m.indices
}

func (m *mesh) IndexCount() int {
	return len(m.indices)
}

func (m *mesh) BaseColor() common.Color {
	return m.baseColor
}

func (m *mesh) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	return m.boundingMin, m.boundingMax
}

func (m *mesh) BoundingSphere() (mgl32.Vec3, float32) {
	return m.boundingCenter, m.boundingRadius
}

// computeBounds derives the bounding box and a box-centered bounding sphere.
func (m *mesh) computeBounds() {
	if len(m.vertices) == 0 {
		return
	}
	lo := mgl32.Vec3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32}
	hi := mgl32.Vec3{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32}
	for _, v := range m.vertices {
		for j := 0; j < 3; j++ {
			lo[j] = math32.Min(lo[j], v.Position[j])
			hi[j] = math32.Max(hi[j], v.Position[j])
		}
	}
	m.boundingMin, m.boundingMax = lo, hi
	m.boundingCenter = lo.Add(hi).Mul(0.5)

	var r float32
	for _, v := range m.vertices {
		r = math32.Max(r, mgl32.Vec3(v.Position).Sub(m.boundingCenter).Len())
	}
	m.boundingRadius = r
}

// GenerateNormals computes smooth vertex normals from triangle geometry. Each
// face normal (area weighted) is accumulated onto its three vertices and the
// sums are normalized. Vertices touched by no valid triangle get +Y.
//
// Parameters:
//   - vertices: the vertex slice to write normal data into
//   - indices: the triangle index buffer
func GenerateNormals(vertices []GPUVertex, indices []uint32) {
	n := len(vertices)
	accum := make([]mgl32.Vec3, n)

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if int(i0) >= n || int(i1) >= n || int(i2) >= n {
			continue
		}
		p0 := mgl32.Vec3(vertices[i0].Position)
		p1 := mgl32.Vec3(vertices[i1].Position)
		p2 := mgl32.Vec3(vertices[i2].Position)

		face := p1.Sub(p0).Cross(p2.Sub(p0))
		accum[i0] = accum[i0].Add(face)
		accum[i1] = accum[i1].Add(face)
		accum[i2] = accum[i2].Add(face)
	}

	for i := range vertices {
		if accum[i].Len() < 1e-6 {
			vertices[i].Normal = [3]float32{0, 1, 0}
			continue
		}
		vertices[i].Normal = accum[i].Normalize()
	}
}
