package scene

import (
	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/Carmen-Shannon/oxy-spiral/engine/model"
)

// Grid is a flat reference grid on the XZ plane, centered on the origin.
type Grid struct {
	Size        float32
	Divisions   int
	CenterColor common.Color
	LineColor   common.Color
}

// NewGrid creates a grid of the given size split into divisions cells per side.
//
// Parameters:
//   - size: side length in world units
//   - divisions: number of cells per side
//   - center: packed 0xRRGGBB color of the two center lines
//   - line: packed 0xRRGGBB color of every other line
//
// Returns:
//   - *Grid: the grid
func NewGrid(size float32, divisions int, center, line uint32) *Grid {
	return &Grid{
		Size:        size,
		Divisions:   divisions,
		CenterColor: common.ColorFromHex(center),
		LineColor:   common.ColorFromHex(line),
	}
}

// Lines returns the grid as a line list: two vertices per segment,
// divisions+1 segments parallel to X followed by the same parallel to Z.
// The segment through the origin uses CenterColor.
//
// Returns:
//   - []model.GPUVertex: 4*(Divisions+1) vertices, or nil for an empty grid
func (g *Grid) Lines() []model.GPUVertex {
	if g == nil || g.Divisions <= 0 || g.Size <= 0 {
		return nil
	}
	half := g.Size / 2
	step := g.Size / float32(g.Divisions)
	up := [3]float32{0, 1, 0}

	vertices := make([]model.GPUVertex, 0, 4*(g.Divisions+1))
	for i := 0; i <= g.Divisions; i++ {
		k := -half + float32(i)*step
		color := g.LineColor
		if i == g.Divisions/2 {
			color = g.CenterColor
		}
		vertices = append(vertices,
			model.GPUVertex{Position: [3]float32{-half, 0, k}, Normal: up, Color: color},
			model.GPUVertex{Position: [3]float32{half, 0, k}, Normal: up, Color: color},
			model.GPUVertex{Position: [3]float32{k, 0, -half}, Normal: up, Color: color},
			model.GPUVertex{Position: [3]float32{k, 0, half}, Normal: up, Color: color},
		)
	}
	return vertices
}
