package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectionalLightPointsAtOrigin(t *testing.T) {
	l := NewDirectionalLight(0xffffff, 1.2, mgl32.Vec3{5, 10, 7})
	want := mgl32.Vec3{-5, -10, -7}.Normalize()
	assert.True(t, l.Direction().ApproxEqual(want))
	assert.Equal(t, float32(1.2), l.Intensity())
}

func TestHemisphereHasNoDirection(t *testing.T) {
	l := NewHemisphereLight(0xffffff, 0x404040, 1)
	assert.Equal(t, mgl32.Vec3{}, l.Direction())
	assert.Equal(t, common.ColorFromHex(0x404040), l.GroundColor())
}

func TestPack(t *testing.T) {
	disabled := NewDirectionalLight(0xff0000, 1, mgl32.Vec3{0, 1, 0})
	disabled.SetEnabled(false)

	g := Pack([]Light{
		NewHemisphereLight(0xffffff, 0x000000, 0.5),
		NewDirectionalLight(0xffffff, 2, mgl32.Vec3{0, 10, 0}),
		disabled,
		nil,
	})

	assert.Equal(t, [4]float32{0.5, 0.5, 0.5, 0}, g.SkyColor)
	require.Equal(t, uint32(1), g.DirectionalCount)
	assert.InDeltaSlice(t, []float32{0, -1, 0, 0}, g.Directional[0].Direction[:], 1e-6)
	assert.Equal(t, [4]float32{2, 2, 2, 1}, g.Directional[0].Color)
}

func TestPackCapsDirectionalLights(t *testing.T) {
	var lights []Light
	for i := 0; i < MaxDirectionalLights+2; i++ {
		lights = append(lights, NewDirectionalLight(0xffffff, 1, mgl32.Vec3{1, 1, 1}))
	}
	assert.Equal(t, uint32(MaxDirectionalLights), Pack(lights).DirectionalCount)
}

func TestGPULightsMarshal(t *testing.T) {
	g := Pack([]Light{NewDirectionalLight(0xffffff, 1, mgl32.Vec3{0, 1, 0})})
	buf := g.Marshal()
	require.Len(t, buf, GPULightsSize)
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[32:]))
	assert.Equal(t, float32(-1), math.Float32frombits(binary.LittleEndian.Uint32(buf[52:])))
}
