package light

import (
	_ "embed"
	"encoding/binary"
	"math"
)

// GPULightsSource is the WGSL definition of the Lights uniform block.
// The directional array starts at offset 48, matching GPULights.
//
//go:embed assets/lights.wgsl
var GPULightsSource string

// MaxDirectionalLights is the number of directional light slots in GPULights.
const MaxDirectionalLights = 4

// GPUDirectional is one directional light slot (32 bytes).
type GPUDirectional struct {
	Direction [4]float32 // xyz: travel direction, w unused
	Color     [4]float32 // rgb premultiplied by intensity
}

// GPULights is the lighting block uploaded once per frame.
// Size: 48 + 32*MaxDirectionalLights bytes, std140/std430 compatible.
type GPULights struct {
	SkyColor         [4]float32 // offset  0: hemisphere sky * intensity
	GroundColor      [4]float32 // offset 16: hemisphere ground * intensity
	DirectionalCount uint32     // offset 32
	_pad             [3]uint32  // offset 36
	Directional      [MaxDirectionalLights]GPUDirectional
}

// GPULightsSize is the byte size of a marshaled GPULights block.
const GPULightsSize = 48 + 32*MaxDirectionalLights

// Pack folds the enabled lights into a GPULights block. Hemisphere lights are
// summed; directional lights beyond MaxDirectionalLights are ignored.
//
// Parameters:
//   - lights: the scene lights
//
// Returns:
//   - GPULights: the packed block
func Pack(lights []Light) GPULights {
	var g GPULights
	for _, l := range lights {
		if l == nil || !l.Enabled() {
			continue
		}
		switch l.Type() {
		case LightTypeHemisphere:
			sky := l.Color().Scaled(l.Intensity())
			ground := l.GroundColor().Scaled(l.Intensity())
			for i := 0; i < 3; i++ {
				g.SkyColor[i] += sky[i]
				g.GroundColor[i] += ground[i]
			}
		case LightTypeDirectional:
			if g.DirectionalCount >= MaxDirectionalLights {
				continue
			}
			d := l.Direction()
			c := l.Color().Scaled(l.Intensity())
			g.Directional[g.DirectionalCount] = GPUDirectional{
				Direction: [4]float32{d[0], d[1], d[2], 0},
				Color:     [4]float32{c[0], c[1], c[2], 1},
			}
			g.DirectionalCount++
		}
	}
	return g
}

// Marshal serializes the block into GPULightsSize little-endian bytes.
//
// Returns:
//   - []byte: buffer ready for GPU upload
func (g *GPULights) Marshal() []byte {
	buf := make([]byte, GPULightsSize)
	putFloats(buf[0:], g.SkyColor[:])
	putFloats(buf[16:], g.GroundColor[:])
	binary.LittleEndian.PutUint32(buf[32:], g.DirectionalCount)
	for i, d := range g.Directional {
		off := 48 + i*32
		putFloats(buf[off:], d.Direction[:])
		putFloats(buf[off+16:], d.Color[:])
	}
	return buf
}

func putFloats(dst []byte, values []float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}
