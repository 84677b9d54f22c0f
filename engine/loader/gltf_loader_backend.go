package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-spiral/engine/scene"
)

// gltfLoaderBackendImpl is the glTF/GLB loaderBackend.
type gltfLoaderBackendImpl struct {
	importer gltfImporter
}

var _ loaderBackend = &gltfLoaderBackendImpl{}

func newGLTFLoaderBackend() loaderBackend {
	return &gltfLoaderBackendImpl{
		importer: newGLTFImporter(),
	}
}

func (b *gltfLoaderBackendImpl) Load(path string) (*scene.Node, error) {
	return b.importer.Import(path)
}

func (b *gltfLoaderBackendImpl) LoadReader(name string, r io.Reader, isGLB bool) (*scene.Node, error) {
	return b.importer.ImportReader(name, r, isGLB)
}
