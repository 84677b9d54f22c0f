package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeshGeneratesSequentialIndices(t *testing.T) {
	m := NewMesh(WithVertices([]GPUVertex{
		{Position: [3]float32{0, 0, 0}},
		{Position: [3]float32{1, 0, 0}},
		{Position: [3]float32{0, 1, 0}},
	}))

	assert.Equal(t, []uint32{0, 1, 2}, m.Indices())
	assert.Equal(t, 3, m.IndexCount())
	assert.Equal(t, common.Color{1, 1, 1, 1}, m.BaseColor())
}

func TestNewMeshIDsAreUnique(t *testing.T) {
	a := NewMesh(WithName("a"))
	b := NewMesh(WithName("b"))
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestGenerateNormals(t *testing.T) {
	m := NewMesh(
		WithVertices([]GPUVertex{
			{Position: [3]float32{0, 0, 0}},
			{Position: [3]float32{1, 0, 0}},
			{Position: [3]float32{0, 1, 0}},
			{Position: [3]float32{5, 5, 5}},
		}),
		WithIndices([]uint32{0, 1, 2}),
		WithGeneratedNormals(),
	)

	for i := 0; i < 3; i++ {
		assert.InDeltaSlice(t, []float32{0, 0, 1}, m.Vertices()[i].Normal[:], 1e-6)
	}
	assert.Equal(t, [3]float32{0, 1, 0}, m.Vertices()[3].Normal, "unreferenced vertex falls back to +Y")
}

func TestBoxBounds(t *testing.T) {
	box := NewBox("box", 2, 4, 6, common.ColorFromHex(0xff0000))

	lo, hi := box.Bounds()
	assert.Equal(t, mgl32.Vec3{-1, -2, -3}, lo)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, hi)

	center, radius := box.BoundingSphere()
	assert.Equal(t, mgl32.Vec3{}, center)
	assert.InDelta(t, math.Sqrt(1+4+9), radius, 1e-5)

	assert.Len(t, box.Vertices(), 24)
	assert.Equal(t, 36, box.IndexCount())
}

func TestGPUInstanceMarshal(t *testing.T) {
	inst := GPUInstance{Model: mgl32.Translate3D(1, 2, 3), Color: [4]float32{0.5, 0.25, 1, 1}}
	buf := inst.Marshal()
	require.Len(t, buf, GPUInstanceSize)

	readF := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	assert.Equal(t, float32(1), readF(48), "translation x lives in column 3")
	assert.Equal(t, float32(3), readF(56))
	assert.Equal(t, float32(0.25), readF(68))

	assert.Len(t, MarshalInstances([]GPUInstance{inst, inst}), 2*GPUInstanceSize)
}

func TestGPUVertexMarshal(t *testing.T) {
	v := GPUVertex{Position: [3]float32{1, 2, 3}, Normal: [3]float32{0, 1, 0}, Color: [4]float32{1, 1, 1, 1}}
	buf := v.Marshal()
	require.Len(t, buf, GPUVertexSize)
	assert.Equal(t, GPUVertexSize, v.Size())
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[16:])))
}
