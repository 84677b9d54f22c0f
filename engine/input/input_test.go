package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxisLastPressedWins(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   int
	}{
		{"idle", nil, 0},
		{"positive", []Event{KeyDownEvent(common.KeyW)}, 1},
		{"negative", []Event{KeyDownEvent(common.KeyS)}, -1},
		{"later press overrides", []Event{KeyDownEvent(common.KeyW), KeyDownEvent(common.KeyS)}, -1},
		{"stale release ignored", []Event{KeyDownEvent(common.KeyW), KeyDownEvent(common.KeyS), KeyUpEvent(common.KeyW)}, -1},
		{"active release clears", []Event{KeyDownEvent(common.KeyW), KeyDownEvent(common.KeyS), KeyUpEvent(common.KeyS)}, 0},
		{"repeat keeps direction", []Event{KeyDownEvent(common.KeyW), KeyDownEvent(common.KeyW)}, 1},
		{"unrelated key", []Event{KeyDownEvent(common.KeyA)}, 0},
		{"wheel ignored", []Event{KeyDownEvent(common.KeyW), WheelEvent(100)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAxis(common.KeyW, common.KeyS)
			for _, ev := range tt.events {
				a.Handle(ev)
			}
			assert.Equal(t, tt.want, a.Direction())
		})
	}
}

func TestAxisRebind(t *testing.T) {
	a := NewAxis(common.KeyW, common.KeyS)
	a.Handle(KeyDownEvent(common.KeyW))
	a.Rebind(common.KeyUp, common.KeyDown)

	assert.Equal(t, 0, a.Direction())
	assert.False(t, a.Handle(KeyDownEvent(common.KeyW)))
	assert.True(t, a.Handle(KeyDownEvent(common.KeyDown)))
	assert.Equal(t, -1, a.Direction())
}

func TestQueueDrainOrder(t *testing.T) {
	q := NewQueue(8)
	q.Push(KeyDownEvent(common.KeyW))
	q.Push(WheelEvent(-120))
	q.Push(KeyUpEvent(common.KeyW))

	var first, second []EventKind
	n := q.Drain(
		HandlerFunc(func(ev Event) { first = append(first, ev.Kind) }),
		HandlerFunc(func(ev Event) { second = append(second, ev.Kind) }),
	)

	require.Equal(t, 3, n)
	assert.Equal(t, []EventKind{KeyDown, Wheel, KeyUp}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 0, q.Len())
}

func TestQueueCoalescesWheelWhenFull(t *testing.T) {
	q := NewQueue(2)
	assert.True(t, q.Push(WheelEvent(1)))
	assert.True(t, q.Push(WheelEvent(2)))
	assert.False(t, q.Push(WheelEvent(3)))
	assert.Equal(t, 2, q.Len())

	var got []float32
	q.Drain(HandlerFunc(func(ev Event) { got = append(got, ev.DeltaY) }))
	assert.Equal(t, []float32{1, 5}, got)
}

func TestQueueKeepsKeysWhenFull(t *testing.T) {
	q := NewQueue(2)
	q.Push(KeyDownEvent(common.KeyW))
	q.Push(KeyDownEvent(common.KeyS))
	assert.False(t, q.Push(KeyUpEvent(common.KeyW)))
	assert.False(t, q.Push(WheelEvent(1)))
	assert.False(t, q.Push(WheelEvent(2)))

	var kinds []EventKind
	var wheel float32
	q.Drain(HandlerFunc(func(ev Event) {
		kinds = append(kinds, ev.Kind)
		wheel += ev.DeltaY
	}))
	assert.Equal(t, []EventKind{KeyDown, KeyDown, KeyUp, Wheel}, kinds)
	assert.Equal(t, float32(3), wheel)
}

func TestQueueReleaseSurvivesWheelFlood(t *testing.T) {
	const capacity = 256
	q := NewQueue(capacity)
	axis := NewAxis(common.KeyW, common.KeyS)
	handler := HandlerFunc(func(ev Event) { axis.Handle(ev) })

	q.Push(KeyDownEvent(common.KeyW))
	q.Drain(handler)
	require.Equal(t, 1, axis.Direction())

	q.Push(KeyUpEvent(common.KeyW))
	for i := 0; i < capacity+1; i++ {
		q.Push(WheelEvent(-1))
	}

	var wheel float32
	q.Drain(handler, HandlerFunc(func(ev Event) { wheel += ev.DeltaY }))
	assert.Equal(t, 0, axis.Direction())
	assert.Equal(t, float32(-(capacity + 1)), wheel)
	assert.Equal(t, 0, q.Len())
}
