package demo

import (
	"github.com/Carmen-Shannon/oxy-spiral/engine/light"
	"github.com/Carmen-Shannon/oxy-spiral/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	backgroundColor = 0x111318

	skyColor        = 0xffffff
	groundColor     = 0x404040
	hemiIntensity   = 1.0
	sunColor        = 0xffffff
	sunIntensity    = 1.2
	gridSize        = 80
	gridDivisions   = 80
	gridCenterColor = 0x3a3a5a
	gridLineColor   = 0x2a2a3a
)

// sunPosition places the directional light; it shines toward the origin.
var sunPosition = mgl32.Vec3{5, 10, 7}

// NewScene builds the stage the stack is spawned into: dark background,
// hemisphere fill, one directional light and a floor grid.
func NewScene(name string) scene.Scene {
	return scene.NewScene(name,
		scene.WithBackground(backgroundColor),
		scene.WithLights(
			light.NewHemisphereLight(skyColor, groundColor, hemiIntensity),
			light.NewDirectionalLight(sunColor, sunIntensity, sunPosition),
		),
		scene.WithGrid(scene.NewGrid(gridSize, gridDivisions, gridCenterColor, gridLineColor)),
	)
}
