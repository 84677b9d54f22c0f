package common

import "github.com/go-gl/mathgl/mgl32"

// Color is a linear RGBA color with components in [0, 1].
type Color [4]float32

// ColorFromHex converts a 0xRRGGBB value into an opaque Color.
//
// Parameters:
//   - hex: packed 24-bit RGB value
//
// Returns:
//   - Color: the unpacked color with alpha 1
func ColorFromHex(hex uint32) Color {
	return Color{
		float32((hex>>16)&0xff) / 255.0,
		float32((hex>>8)&0xff) / 255.0,
		float32(hex&0xff) / 255.0,
		1,
	}
}

// RGB returns the color channels as a vector, dropping alpha.
func (c Color) RGB() mgl32.Vec3 {
	return mgl32.Vec3{c[0], c[1], c[2]}
}

// Scaled multiplies the RGB channels by intensity, leaving alpha untouched.
func (c Color) Scaled(intensity float32) Color {
	return Color{c[0] * intensity, c[1] * intensity, c[2] * intensity, c[3]}
}
