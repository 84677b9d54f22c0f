package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-spiral/engine/scene"
)

// loaderBackend loads one model format into a scene graph.
type loaderBackend interface {
	// Load imports the model file at path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *scene.Node: the imported hierarchy
	//   - error: error if loading fails
	Load(path string) (*scene.Node, error)

	// LoadReader imports a model from a stream.
	//
	// Parameters:
	//   - name: name of the root group
	//   - r: the reader providing model data
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - *scene.Node: the imported hierarchy
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, isGLB bool) (*scene.Node, error)
}
