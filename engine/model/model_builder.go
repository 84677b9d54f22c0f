package model

import "github.com/Carmen-Shannon/oxy-spiral/common"

// meshBuilder carries construction-only flags alongside the mesh being built.
type meshBuilder struct {
	mesh            *mesh
	generateNormals bool
}

// MeshBuilderOption is a functional option for configuring a Mesh via NewMesh.
type MeshBuilderOption func(*meshBuilder)

// WithName sets the name of the Mesh.
//
// Parameters:
//   - name: the mesh identifier
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithName(name string) MeshBuilderOption {
	return func(b *meshBuilder) {
		b.mesh.name = name
	}
}

// WithVertices sets the vertex data. The mesh takes ownership of the slice.
//
// Parameters:
//   - vertices: the vertex data
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithVertices(vertices []GPUVertex) MeshBuilderOption {
	return func(b *meshBuilder) {
		b.mesh.vertices = vertices
	}
}

// WithIndices sets the triangle-list index data. The mesh takes ownership of the slice.
//
// Parameters:
//   - indices: the index data
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithIndices(indices []uint32) MeshBuilderOption {
	return func(b *meshBuilder) {
		b.mesh.indices = indices
	}
}

// WithBaseColor sets the material base color.
//
// Parameters:
//   - color: the RGBA base color
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithBaseColor(color common.Color) MeshBuilderOption {
	return func(b *meshBuilder) {
		b.mesh.baseColor = color
	}
}

// WithGeneratedNormals requests smooth normals computed from the triangles,
// overwriting any normals already present in the vertex data.
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithGeneratedNormals() MeshBuilderOption {
	return func(b *meshBuilder) {
		b.generateNormals = true
	}
}
