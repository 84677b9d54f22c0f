package scene

import (
	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/Carmen-Shannon/oxy-spiral/engine/light"
)

type scene struct {
	name       string
	active     bool
	root       *Node
	background common.Color
	lights     []light.Light
	grid       *Grid
}

// Scene is the top of a renderable world: a root node plus the environment
// that is not part of the node hierarchy (background, lights, reference grid).
// A Scene is owned by the frame loop and is not safe for concurrent mutation.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Root returns the root node. Everything attached below it is rendered.
	Root() *Node

	// Add attaches node to the root.
	//
	// Parameters:
	//   - node: the node to attach
	Add(node *Node)

	// Background returns the clear color.
	Background() common.Color

	// SetBackground changes the clear color.
	//
	// Parameters:
	//   - c: the new color
	SetBackground(c common.Color)

	// Lights returns the scene lights.
	Lights() []light.Light

	// AddLight adds a light source to the scene.
	//
	// Parameters:
	//   - l: the Light to add
	AddLight(l light.Light)

	// RemoveLight removes a light source from the scene by reference.
	//
	// Parameters:
	//   - l: the Light to remove
	RemoveLight(l light.Light)

	// Grid returns the reference grid, or nil when none is shown.
	Grid() *Grid

	// SetGrid replaces the reference grid. Pass nil to hide it.
	//
	// Parameters:
	//   - g: the new grid
	SetGrid(g *Grid)
}

var _ Scene = &scene{}

// NewScene creates an active, empty scene with a black background.
//
// Parameters:
//   - name: the scene identifier
//   - options: functional options
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		name:       name,
		active:     true,
		root:       NewGroup(name),
		background: common.Color{0, 0, 0, 1},
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.active = active
}

func (s *scene) Root() *Node {
	return s.root
}

func (s *scene) Add(node *Node) {
	s.root.Add(node)
}

func (s *scene) Background() common.Color {
	return s.background
}

func (s *scene) SetBackground(c common.Color) {
	s.background = c
}

func (s *scene) Lights() []light.Light {
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) AddLight(l light.Light) {
	if l != nil {
		s.lights = append(s.lights, l)
	}
}

func (s *scene) RemoveLight(l light.Light) {
	for i, existing := range s.lights {
		if existing == l {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			return
		}
	}
}

func (s *scene) Grid() *Grid {
	return s.grid
}

func (s *scene) SetGrid(g *Grid) {
	s.grid = g
}
