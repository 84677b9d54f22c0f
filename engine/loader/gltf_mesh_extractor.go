package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/Carmen-Shannon/oxy-spiral/engine/model"
)

// gltfMeshExtractorImpl converts glTF mesh primitives into model.Mesh values.
// Each glTF mesh is extracted once, however many nodes reference it.
type gltfMeshExtractorImpl struct {
	parser gltfParser
	cache  map[int][]model.Mesh
}

// gltfMeshExtractor turns parsed glTF meshes into engine geometry.
type gltfMeshExtractor interface {
	// ExtractMesh returns one model.Mesh per primitive of the given glTF mesh.
	//
	// Parameters:
	//   - meshIndex: the index of the mesh to extract
	//
	// Returns:
	//   - []model.Mesh: one mesh per primitive
	//   - error: error if extraction fails
	ExtractMesh(meshIndex int) ([]model.Mesh, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

func newGLTFMeshExtractor(parser gltfParser) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{parser: parser, cache: make(map[int][]model.Mesh)}
}

func (e *gltfMeshExtractorImpl) ExtractMesh(meshIndex int) ([]model.Mesh, error) {
	if cached, ok := e.cache[meshIndex]; ok {
		return cached, nil
	}

	doc := e.parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}
	if meshIndex < 0 || meshIndex >= len(doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", meshIndex)
	}

	src := &doc.Meshes[meshIndex]
	meshes := make([]model.Mesh, 0, len(src.Primitives))
	for primIdx := range src.Primitives {
		m, err := e.extractPrimitive(&src.Primitives[primIdx], meshName(src.Name, meshIndex, primIdx))
		if err != nil {
			return nil, fmt.Errorf("mesh %d primitive %d: %w", meshIndex, primIdx, err)
		}
		meshes = append(meshes, m)
	}

	e.cache[meshIndex] = meshes
	return meshes, nil
}

func (e *gltfMeshExtractorImpl) extractPrimitive(prim *gltfPrimitive, name string) (model.Mesh, error) {
	if prim.Mode != nil && *prim.Mode != gltfPrimitiveModeTriangles {
		return nil, fmt.Errorf("unsupported primitive mode: %d (only triangles supported)", *prim.Mode)
	}

	posAccessor, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}
	positions, err := e.parser.ReadVec3Accessor(posAccessor)
	if err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}

	vertices := make([]model.GPUVertex, len(positions))
	for i, pos := range positions {
		vertices[i].Position = pos
		vertices[i].Color = [4]float32{1, 1, 1, 1}
	}

	hasNormals := false
	if normalAccessor, ok := prim.Attributes["NORMAL"]; ok {
		normals, err := e.parser.ReadVec3Accessor(normalAccessor)
		if err != nil {
			return nil, fmt.Errorf("failed to read normals: %w", err)
		}
		for i := 0; i < len(normals) && i < len(vertices); i++ {
			vertices[i].Normal = normals[i]
		}
		hasNormals = true
	}

	if colorAccessor, ok := prim.Attributes["COLOR_0"]; ok {
		colors, err := e.parser.ReadColorAccessor(colorAccessor)
		if err != nil {
			return nil, fmt.Errorf("failed to read colors: %w", err)
		}
		for i := 0; i < len(colors) && i < len(vertices); i++ {
			vertices[i].Color = colors[i]
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = e.parser.ReadIndicesAccessor(*prim.Indices); err != nil {
			return nil, fmt.Errorf("failed to read indices: %w", err)
		}
		for _, idx := range indices {
			if int(idx) >= len(vertices) {
				return nil, fmt.Errorf("index %d exceeds vertex count %d", idx, len(vertices))
			}
		}
	}

	options := []model.MeshBuilderOption{
		model.WithName(name),
		model.WithVertices(vertices),
		model.WithIndices(indices),
		model.WithBaseColor(e.baseColor(prim.Material)),
	}
	if !hasNormals {
		options = append(options, model.WithGeneratedNormals())
	}
	return model.NewMesh(options...), nil
}

// baseColor returns the material's baseColorFactor, or opaque white.
func (e *gltfMeshExtractorImpl) baseColor(materialIndex *int) common.Color {
	white := common.Color{1, 1, 1, 1}
	doc := e.parser.Document()
	if materialIndex == nil || *materialIndex < 0 || *materialIndex >= len(doc.Materials) {
		return white
	}
	pbr := doc.Materials[*materialIndex].PbrMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return white
	}
	return common.Color(*pbr.BaseColorFactor)
}

func meshName(name string, meshIndex, primIndex int) string {
	if name == "" {
		name = fmt.Sprintf("mesh_%d", meshIndex)
	}
	if primIndex > 0 {
		name = fmt.Sprintf("%s_prim%d", name, primIndex)
	}
	return name
}
