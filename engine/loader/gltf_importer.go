package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-spiral/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// gltfImporterImpl builds scene graphs from glTF documents.
type gltfImporterImpl struct{}

// gltfImporter turns a glTF/GLB source into a scene.Node hierarchy rooted at a
// single group named after the asset.
type gltfImporter interface {
	// Import parses the file at path and builds its node tree.
	//
	// Parameters:
	//   - path: the .gltf or .glb file
	//
	// Returns:
	//   - *scene.Node: the root group
	//   - error: error if parsing or extraction fails
	Import(path string) (*scene.Node, error)

	// ImportReader parses data from r and builds its node tree.
	//
	// Parameters:
	//   - name: the name given to the root group
	//   - r: reader with glTF JSON or GLB data
	//   - isGLB: true for the binary container
	//
	// Returns:
	//   - *scene.Node: the root group
	//   - error: error if parsing or extraction fails
	ImportReader(name string, r io.Reader, isGLB bool) (*scene.Node, error)
}

var _ gltfImporter = &gltfImporterImpl{}

func newGLTFImporter() gltfImporter {
	return &gltfImporterImpl{}
}

func (imp *gltfImporterImpl) Import(path string) (*scene.Node, error) {
	parser := newGLTFParser()
	if err := parser.Parse(path); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return imp.buildScene(parser, name)
}

func (imp *gltfImporterImpl) ImportReader(name string, r io.Reader, isGLB bool) (*scene.Node, error) {
	parser := newGLTFParser()
	if err := parser.ParseReader(r, isGLB, ""); err != nil {
		return nil, fmt.Errorf("failed to parse from reader: %w", err)
	}
	return imp.buildScene(parser, name)
}

// buildScene instantiates the default scene (or the first one, or every
// parentless node when the document lists no scenes) under one root group.
func (imp *gltfImporterImpl) buildScene(parser gltfParser, fallbackName string) (*scene.Node, error) {
	doc := parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document after parsing")
	}

	name, roots := gltfSceneRoots(doc)
	if name == "" {
		name = fallbackName
	}
	root := scene.NewGroup(name)

	meshes := newGLTFMeshExtractor(parser)
	visiting := make(map[int]bool)
	for _, idx := range roots {
		child, err := imp.buildNode(doc, meshes, idx, visiting)
		if err != nil {
			return nil, err
		}
		root.Add(child)
	}
	return root, nil
}

func (imp *gltfImporterImpl) buildNode(doc *gltfDocument, meshes gltfMeshExtractor, index int, visiting map[int]bool) (*scene.Node, error) {
	if index < 0 || index >= len(doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", index)
	}
	if visiting[index] {
		return nil, fmt.Errorf("node %d: cycle in node hierarchy", index)
	}
	visiting[index] = true
	defer delete(visiting, index)

	src := &doc.Nodes[index]
	name := src.Name
	if name == "" {
		name = fmt.Sprintf("node_%d", index)
	}
	n := scene.NewNode(name)
	n.Transform = gltfNodeTransform(src)

	if src.Mesh != nil {
		prims, err := meshes.ExtractMesh(*src.Mesh)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", index, err)
		}
		if len(prims) == 1 {
			n.SetMesh(prims[0])
		} else {
			for _, m := range prims {
				n.Add(scene.NewNode(m.Name(), scene.WithMesh(m)))
			}
		}
	}

	for _, childIdx := range src.Children {
		child, err := imp.buildNode(doc, meshes, childIdx, visiting)
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

// gltfSceneRoots returns the scene name and root node indices to instantiate.
func gltfSceneRoots(doc *gltfDocument) (string, []int) {
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
			idx = *doc.Scene
		}
		return doc.Scenes[idx].Name, doc.Scenes[idx].Nodes
	}

	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var roots []int
	for i, child := range isChild {
		if !child {
			roots = append(roots, i)
		}
	}
	return "", roots
}

// gltfNodeTransform converts a node's matrix or TRS into a scene.Transform.
// The glTF rotation becomes the base Orientation so Rotation stays free for yaw.
func gltfNodeTransform(src *gltfNode) scene.Transform {
	t := scene.IdentityTransform()

	if src.Matrix != nil {
		m := mgl32.Mat4(*src.Matrix)
		t.Position = m.Col(3).Vec3()
		sx, sy, sz := m.Col(0).Vec3().Len(), m.Col(1).Vec3().Len(), m.Col(2).Vec3().Len()
		t.Scale = mgl32.Vec3{sx, sy, sz}
		if sx > 0 && sy > 0 && sz > 0 {
			rot := mgl32.Mat3FromCols(m.Col(0).Vec3().Mul(1/sx), m.Col(1).Vec3().Mul(1/sy), m.Col(2).Vec3().Mul(1/sz))
			t.Orientation = mgl32.Mat4ToQuat(rot.Mat4()).Normalize()
		}
		return t
	}

	if v := src.Translation; v != nil {
		t.Position = mgl32.Vec3(*v)
	}
	if q := src.Rotation; q != nil {
		t.Orientation = mgl32.Quat{W: q[3], V: mgl32.Vec3{q[0], q[1], q[2]}}.Normalize()
	}
	if s := src.Scale; s != nil {
		t.Scale = mgl32.Vec3(*s)
	}
	return t
}
