package spawner

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-spiral/engine/diag"
	"github.com/Carmen-Shannon/oxy-spiral/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultRingSize is the number of pieces per turn of the helix.
const DefaultRingSize = 8

var (
	// ErrInvalidLayout is returned for a layout that cannot be realized, such as a negative total.
	ErrInvalidLayout = errors.New("spawner: invalid layout")

	// ErrNilTemplate is returned when Spawn is called without a template node.
	ErrNilTemplate = errors.New("spawner: nil template")
)

// LayoutConfig describes a helical stack of pieces. Piece i sits on ring
// i / RingSize at height ring*YStep, rotated (i % RingSize)*AngleStepDeg about +Y.
type LayoutConfig struct {
	Total        int     `yaml:"total" toml:"total"`
	YStep        float32 `yaml:"y_step" toml:"y_step"`
	AngleStepDeg float32 `yaml:"angle_step_deg" toml:"angle_step_deg"`
	// RingSize defaults to DefaultRingSize when zero.
	RingSize int `yaml:"ring_size" toml:"ring_size"`
}

// DefaultLayout returns 24 pieces, 2 units per ring, 45 degrees per step.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		Total:        24,
		YStep:        2,
		AngleStepDeg: 45,
		RingSize:     DefaultRingSize,
	}
}

// Validate reports whether the layout can be spawned.
//
// Returns:
//   - error: wraps ErrInvalidLayout when Total or RingSize is negative
func (c LayoutConfig) Validate() error {
	if c.Total < 0 {
		return fmt.Errorf("%w: total %d is negative", ErrInvalidLayout, c.Total)
	}
	if c.RingSize < 0 {
		return fmt.Errorf("%w: ring size %d is negative", ErrInvalidLayout, c.RingSize)
	}
	return nil
}

func (c LayoutConfig) ringSize() int {
	if c.RingSize == 0 {
		return DefaultRingSize
	}
	return c.RingSize
}

// Placement returns the local height and yaw of piece i.
//
// Parameters:
//   - i: the zero-based piece index
//
// Returns:
//   - height: ring index times YStep
//   - yawRad: position in ring times AngleStepDeg, in radians
func (c LayoutConfig) Placement(i int) (height, yawRad float32) {
	ring := c.ringSize()
	height = float32(i/ring) * c.YStep
	yawRad = float32(i%ring) * mgl32.DegToRad(c.AngleStepDeg)
	return height, yawRad
}

type spawnerImpl struct {
	root      *scene.Node
	sink      diag.Sink
	groupName string
}

// Spawner builds helical stacks of cloned template nodes.
type Spawner interface {
	// Spawn clones template cfg.Total times into a new group, places each clone
	// according to cfg, attaches the group to the spawner's root and returns it.
	// A total of zero yields an empty group. The template is never modified.
	//
	// Parameters:
	//   - template: the node to clone (deep)
	//   - cfg: the layout
	//
	// Returns:
	//   - *scene.Node: the populated group
	//   - error: ErrNilTemplate or ErrInvalidLayout
	Spawn(template *scene.Node, cfg LayoutConfig) (*scene.Node, error)
}

var _ Spawner = &spawnerImpl{}

// NewSpawner creates a Spawner attaching its groups to root. A nil root leaves
// spawned groups detached.
//
// Parameters:
//   - root: the node spawned groups are attached to
//   - options: functional options
//
// Returns:
//   - Spawner: the new spawner
func NewSpawner(root *scene.Node, options ...SpawnerBuilderOption) Spawner {
	s := &spawnerImpl{
		root:      root,
		sink:      diag.Nop(),
		groupName: "pieces",
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *spawnerImpl) Spawn(template *scene.Node, cfg LayoutConfig) (*scene.Node, error) {
	if template == nil {
		return nil, ErrNilTemplate
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	group := scene.NewGroup(s.groupName)
	if s.root != nil {
		s.root.Add(group)
	}

	ring := cfg.ringSize()
	for i := 0; i < cfg.Total; i++ {
		height, yaw := cfg.Placement(i)

		piece := template.Clone(true)
		piece.Name = fmt.Sprintf("%s_%d", template.Name, i)
		piece.SetPosition(0, height, 0)
		piece.SetYaw(yaw)
		group.Add(piece)

		s.sink.Emit(slog.LevelInfo, "spawner.piece",
			slog.Int("index", i+1),
			slog.Int("total", cfg.Total),
			slog.Float64("y", float64(height)),
			slog.Float64("angle_deg", float64(float32(i%ring)*cfg.AngleStepDeg)),
		)
	}

	s.sink.Emit(slog.LevelInfo, "spawner.done",
		slog.String("group", group.Name),
		slog.Int("count", group.ChildCount()),
	)
	return group, nil
}
