package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestSmoothingFactor(t *testing.T) {
	assert.Equal(t, float32(1), SmoothingFactor(0.016, 0))
	assert.Equal(t, float32(1), SmoothingFactor(0.016, -1))
	assert.Equal(t, float32(0), SmoothingFactor(0, 0.12))
	assert.InDelta(t, 1-math32.Exp(-1), SmoothingFactor(0.12, 0.12), 1e-6)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(4), Clamp(-10, 4, 80))
	assert.Equal(t, float32(80), Clamp(100, 4, 80))
	assert.Equal(t, float32(15), Clamp(15, 4, 80))
}

func TestColorFromHex(t *testing.T) {
	c := ColorFromHex(0x111318)
	assert.InDelta(t, 17.0/255.0, c[0], 1e-6)
	assert.InDelta(t, 19.0/255.0, c[1], 1e-6)
	assert.InDelta(t, 24.0/255.0, c[2], 1e-6)
	assert.Equal(t, float32(1), c[3])

	assert.Equal(t, Color{0.5, 0.5, 0.5, 1}, Color{1, 1, 1, 1}.Scaled(0.5))
}

func TestKeyByName(t *testing.T) {
	code, ok := KeyByName(" W ")
	assert.True(t, ok)
	assert.Equal(t, uint32(KeyW), code)

	code, ok = KeyByName("Up")
	assert.True(t, ok)
	assert.Equal(t, uint32(KeyUp), code)

	_, ok = KeyByName("f13")
	assert.False(t, ok)
}

func TestPerspectiveZODepthRange(t *testing.T) {
	proj := PerspectiveZO(mgl32.DegToRad(60), 1, 0.1, 1000)

	near := proj.Mul4x1(mgl32.Vec4{0, 0, -0.1, 1})
	far := proj.Mul4x1(mgl32.Vec4{0, 0, -1000, 1})

	assert.InDelta(t, 0, near[2]/near[3], 1e-5)
	assert.InDelta(t, 1, far[2]/far[3], 1e-5)
}

func TestEulerYXZYaw(t *testing.T) {
	m := EulerYXZ(mgl32.Vec3{0, math32.Pi / 2, 0})
	v := m.Mul4x1(mgl32.Vec4{0, 0, 1, 0})
	assert.InDelta(t, 1, v[0], 1e-6)
	assert.InDelta(t, 0, v[2], 1e-6)
}

func TestFrustumContainsSphere(t *testing.T) {
	proj := PerspectiveZO(mgl32.DegToRad(60), 1, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	f := ExtractFrustumFromMatrix(proj.Mul4(view))

	assert.True(t, f.ContainsSphere(mgl32.Vec3{0, 0, 0}, 1))
	assert.False(t, f.ContainsSphere(mgl32.Vec3{0, 0, 20}, 1), "behind the camera")
	assert.False(t, f.ContainsSphere(mgl32.Vec3{500, 0, 0}, 1), "far off to the side")
	assert.True(t, f.ContainsSphere(mgl32.Vec3{0, 0, 11}, 2), "straddles the near plane")
}
