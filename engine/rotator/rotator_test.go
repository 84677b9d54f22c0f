package rotator

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/Carmen-Shannon/oxy-spiral/engine/input"
	"github.com/Carmen-Shannon/oxy-spiral/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestRotatorTurnsBoundNode(t *testing.T) {
	node := scene.NewGroup("stack")
	r := NewYawRotator(WithSpeedDegrees(120), WithTarget(node))

	r.HandleInput(input.KeyDownEvent(common.KeyD))
	r.Update(0.5)
	assert.InDelta(t, mgl32.DegToRad(60), node.Yaw(), 1e-5)

	r.HandleInput(input.KeyDownEvent(common.KeyA))
	r.Update(1)
	assert.InDelta(t, mgl32.DegToRad(-60), node.Yaw(), 1e-5)
}

func TestRotatorLastKeyWins(t *testing.T) {
	tests := []struct {
		name   string
		events []input.Event
		want   int
	}{
		{"idle", nil, 0},
		{"d held", []input.Event{input.KeyDownEvent(common.KeyD)}, 1},
		{"a after d", []input.Event{input.KeyDownEvent(common.KeyD), input.KeyDownEvent(common.KeyA)}, -1},
		{"stale release", []input.Event{
			input.KeyDownEvent(common.KeyD), input.KeyDownEvent(common.KeyA), input.KeyUpEvent(common.KeyD),
		}, -1},
		{"active release", []input.Event{
			input.KeyDownEvent(common.KeyD), input.KeyDownEvent(common.KeyA), input.KeyUpEvent(common.KeyA),
		}, 0},
		{"wheel ignored", []input.Event{input.WheelEvent(100)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewYawRotator()
			for _, ev := range tt.events {
				r.HandleInput(ev)
			}
			assert.Equal(t, tt.want, r.KeyDirection())
		})
	}
}

func TestRotatorNoTarget(t *testing.T) {
	r := NewYawRotator()
	r.HandleInput(input.KeyDownEvent(common.KeyD))
	assert.NotPanics(t, func() { r.Update(1) })
	assert.Nil(t, r.Target())
}

func TestRotatorBindUnbind(t *testing.T) {
	node := scene.NewGroup("stack")
	r := NewYawRotator()
	assert.InDelta(t, DefaultSpeedDeg, r.SpeedDegrees(), 1e-4)

	r.HandleInput(input.KeyDownEvent(common.KeyD))
	r.Bind(node)
	r.Update(1)
	assert.InDelta(t, mgl32.DegToRad(90), node.Yaw(), 1e-5)

	r.Unbind()
	r.Update(1)
	assert.InDelta(t, mgl32.DegToRad(90), node.Yaw(), 1e-5)
	assert.Equal(t, 1, r.KeyDirection(), "key state survives unbinding")
}

func TestRotatorIgnoresNonPositiveDt(t *testing.T) {
	node := scene.NewGroup("stack")
	r := NewYawRotator(WithTarget(node), WithKeys(common.KeyE, common.KeyQ))
	r.HandleInput(input.KeyDownEvent(common.KeyQ))
	r.Update(0)
	r.Update(-0.1)
	assert.Equal(t, float32(0), node.Yaw())

	r.SetSpeedDegrees(180)
	r.Update(1)
	assert.InDelta(t, -mgl32.DegToRad(180), node.Yaw(), 1e-5)
}
