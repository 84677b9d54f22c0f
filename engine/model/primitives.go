package model

import "github.com/Carmen-Shannon/oxy-spiral/common"

// NewBox builds an axis-aligned box centered on the origin with flat-shaded faces.
//
// Parameters:
//   - name: the mesh identifier
//   - sx, sy, sz: the box extents along each axis
//   - color: the base color
//
// Returns:
//   - Mesh: a 24-vertex, 36-index mesh
func NewBox(name string, sx, sy, sz float32, color common.Color) Mesh {
	hx, hy, hz := sx/2, sy/2, sz/2

	faces := []struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}, {-hx, hy, -hz}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}},
	}

	vertices := make([]GPUVertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(vertices))
		for _, c := range f.corners {
			vertices = append(vertices, GPUVertex{Position: c, Normal: f.normal, Color: [4]float32{1, 1, 1, 1}})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return NewMesh(
		WithName(name),
		WithVertices(vertices),
		WithIndices(indices),
		WithBaseColor(color),
	)
}
