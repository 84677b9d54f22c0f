package window

import (
	"github.com/Carmen-Shannon/oxy-spiral/engine/input"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// WheelNotchDelta is the DeltaY produced by one scroll wheel notch.
const WheelNotchDelta = 100

// keyEvent translates a GLFW key action. Repeats count as presses.
func keyEvent(key glfw.Key, action glfw.Action) (input.Event, bool) {
	if key == glfw.KeyUnknown {
		return input.Event{}, false
	}
	switch action {
	case glfw.Press, glfw.Repeat:
		return input.KeyDownEvent(uint32(key)), true
	case glfw.Release:
		return input.KeyUpEvent(uint32(key)), true
	default:
		return input.Event{}, false
	}
}

// wheelEvent converts a GLFW vertical scroll offset (positive is up) into a
// wheel event where positive DeltaY scrolls away.
func wheelEvent(yoff float64) (input.Event, bool) {
	if yoff == 0 {
		return input.Event{}, false
	}
	return input.WheelEvent(float32(-yoff * WheelNotchDelta)), true
}
