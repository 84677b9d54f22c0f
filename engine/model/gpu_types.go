package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput and
// InstanceData structs. Matches GPUVertex and GPUInstance exactly.
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Size: 40 bytes, tightly packed for a vertex buffer.
type GPUVertex struct {
	Position [3]float32 // offset  0
	Normal   [3]float32 // offset 12
	Color    [4]float32 // offset 24
}

// GPUVertexSize is the stride of GPUVertex in a vertex buffer.
const GPUVertexSize = 40

// Size returns the size of the GPUVertex struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the vertex into a 40-byte little-endian buffer.
//
// Returns:
//   - []byte: buffer ready for GPU upload
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, GPUVertexSize)
	putFloats(buf[0:], g.Position[:])
	putFloats(buf[12:], g.Normal[:])
	putFloats(buf[24:], g.Color[:])
	return buf
}

// GPUInstance is the per-instance record stored in the instance storage buffer:
// the node's world matrix and its tint color. Size: 80 bytes (std430).
type GPUInstance struct {
	Model mgl32.Mat4 // offset  0: column-major world matrix
	Color [4]float32 // offset 64
}

// GPUInstanceSize is the std430 stride of GPUInstance.
const GPUInstanceSize = 80

// Marshal serializes the instance into an 80-byte little-endian buffer.
//
// Returns:
//   - []byte: buffer ready for GPU upload
func (g *GPUInstance) Marshal() []byte {
	buf := make([]byte, GPUInstanceSize)
	putFloats(buf[0:], g.Model[:])
	putFloats(buf[64:], g.Color[:])
	return buf
}

// MarshalInstances packs a slice of instances back to back.
//
// Parameters:
//   - instances: the instances to pack
//
// Returns:
//   - []byte: len(instances)*GPUInstanceSize bytes
func MarshalInstances(instances []GPUInstance) []byte {
	buf := make([]byte, 0, len(instances)*GPUInstanceSize)
	for i := range instances {
		buf = append(buf, instances[i].Marshal()...)
	}
	return buf
}

func putFloats(dst []byte, values []float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}
