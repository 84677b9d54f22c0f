package input

// Axis turns a pair of opposing keys into a direction of -1, 0 or +1.
//
// The most recently pressed key wins, even while the opposite key is still
// held. Releasing a key only clears the direction when that key is the one
// currently driving it, so releasing the stale key of a pair is ignored.
type Axis struct {
	positive  uint32
	negative  uint32
	direction int
}

// NewAxis creates an idle Axis bound to the given key codes.
//
// Parameters:
//   - positive: key producing +1
//   - negative: key producing -1
//
// Returns:
//   - Axis: the axis with direction 0
func NewAxis(positive, negative uint32) Axis {
	return Axis{positive: positive, negative: negative}
}

// Handle applies a key event to the axis. Wheel events and unbound keys are ignored.
//
// Parameters:
//   - ev: the input event
//
// Returns:
//   - bool: true if the event referenced one of the axis keys
func (a *Axis) Handle(ev Event) bool {
	var dir int
	switch ev.Key {
	case a.positive:
		dir = 1
	case a.negative:
		dir = -1
	default:
		return false
	}

	switch ev.Kind {
	case KeyDown:
		a.direction = dir
	case KeyUp:
		if a.direction == dir {
			a.direction = 0
		}
	default:
		return false
	}
	return true
}

// Direction returns the current direction: -1, 0 or +1.
func (a *Axis) Direction() int {
	return a.direction
}

// Rebind changes the key codes and resets the direction.
//
// Parameters:
//   - positive: key producing +1
//   - negative: key producing -1
func (a *Axis) Rebind(positive, negative uint32) {
	a.positive, a.negative, a.direction = positive, negative, 0
}

// Keys returns the bound key codes.
func (a *Axis) Keys() (positive, negative uint32) {
	return a.positive, a.negative
}
