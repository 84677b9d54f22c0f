package light

import (
	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies how a Light contributes to shading.
type LightType int

const (
	// LightTypeDirectional shines from Position towards the origin, like sunlight.
	LightTypeDirectional LightType = iota

	// LightTypeHemisphere blends between a sky color above and a ground color below
	// based on the surface normal's vertical component.
	LightTypeHemisphere
)

type lightImpl struct {
	lightType   LightType
	position    mgl32.Vec3
	color       common.Color
	groundColor common.Color
	intensity   float32
	enabled     bool
}

// Light is a scene light source.
type Light interface {
	// Type returns the light type.
	Type() LightType

	// Position returns the world-space position. Directional lights shine from here towards the origin.
	Position() mgl32.Vec3

	// Direction returns the normalized direction the light travels in.
	// Zero for hemisphere lights.
	Direction() mgl32.Vec3

	// Color returns the light color (the sky color for hemisphere lights).
	Color() common.Color

	// GroundColor returns the ground color of a hemisphere light.
	GroundColor() common.Color

	// Intensity returns the scalar multiplier applied to the color.
	Intensity() float32

	// Enabled reports whether the light contributes to shading.
	Enabled() bool

	// SetPosition moves the light.
	SetPosition(x, y, z float32)

	// SetColor changes the light color.
	SetColor(c common.Color)

	// SetIntensity changes the scalar multiplier.
	SetIntensity(intensity float32)

	// SetEnabled toggles the light.
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a Light of the given type. Defaults: white, intensity 1,
// enabled, positioned straight above the origin.
//
// Parameters:
//   - lightType: the light type
//   - opts: functional options
//
// Returns:
//   - Light: the new light
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:   lightType,
		position:    mgl32.Vec3{0, 1, 0},
		color:       common.Color{1, 1, 1, 1},
		groundColor: common.Color{0, 0, 0, 1},
		intensity:   1.0,
		enabled:     true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewHemisphereLight is shorthand for a hemisphere light with sky and ground colors.
//
// Parameters:
//   - sky: packed 0xRRGGBB sky color
//   - ground: packed 0xRRGGBB ground color
//   - intensity: scalar multiplier
//
// Returns:
//   - Light: the new light
func NewHemisphereLight(sky, ground uint32, intensity float32) Light {
	return NewLight(LightTypeHemisphere,
		WithColor(common.ColorFromHex(sky)),
		WithGroundColor(common.ColorFromHex(ground)),
		WithIntensity(intensity),
	)
}

// NewDirectionalLight is shorthand for a directional light placed at position.
//
// Parameters:
//   - color: packed 0xRRGGBB color
//   - intensity: scalar multiplier
//   - position: the point the light shines from
//
// Returns:
//   - Light: the new light
func NewDirectionalLight(color uint32, intensity float32, position mgl32.Vec3) Light {
	return NewLight(LightTypeDirectional,
		WithColor(common.ColorFromHex(color)),
		WithIntensity(intensity),
		WithPosition(position[0], position[1], position[2]),
	)
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	if l.lightType != LightTypeDirectional || l.position.Len() == 0 {
		return mgl32.Vec3{}
	}
	return l.position.Mul(-1).Normalize()
}

func (l *lightImpl) Color() common.Color {
	return l.color
}

func (l *lightImpl) GroundColor() common.Color {
	return l.groundColor
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = mgl32.Vec3{x, y, z}
}

func (l *lightImpl) SetColor(c common.Color) {
	l.color = c
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
