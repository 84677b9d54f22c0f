package input

import "sync"

// EventKind identifies the type of an input Event.
type EventKind int

const (
	// KeyDown is emitted on key press and on OS key repeat.
	KeyDown EventKind = iota
	// KeyUp is emitted on key release.
	KeyUp
	// Wheel carries a vertical scroll delta.
	Wheel
)

func (k EventKind) String() string {
	switch k {
	case KeyDown:
		return "key_down"
	case KeyUp:
		return "key_up"
	case Wheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// Event is a discrete user input. Key is set for KeyDown/KeyUp, DeltaY for Wheel.
// DeltaY follows the browser convention: positive scrolls away from the
// content (zoom out), roughly 100 units per wheel notch.
type Event struct {
	Kind   EventKind
	Key    uint32
	DeltaY float32
}

// KeyDownEvent builds a KeyDown event for the given key code.
func KeyDownEvent(key uint32) Event {
	return Event{Kind: KeyDown, Key: key}
}

// KeyUpEvent builds a KeyUp event for the given key code.
func KeyUpEvent(key uint32) Event {
	return Event{Kind: KeyUp, Key: key}
}

// WheelEvent builds a Wheel event with the given vertical delta.
func WheelEvent(deltaY float32) Event {
	return Event{Kind: Wheel, DeltaY: deltaY}
}

// Handler consumes input events. Controllers implement Handler and are
// dispatched to by the engine's frame loop.
type Handler interface {
	HandleInput(ev Event)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ev Event)

func (f HandlerFunc) HandleInput(ev Event) {
	f(ev)
}

// Queue buffers events between platform callbacks and the frame loop.
// Push never blocks and never drops a key transition. Capacity bounds the
// number of pending events by coalescing Wheel events: once full, wheel
// deltas are summed into an already pending Wheel instead of being queued
// separately. Key events are always queued, even past capacity.
type Queue struct {
	mu       *sync.Mutex
	events   []Event
	capacity int
}

// NewQueue creates a Queue holding at most capacity pending events (minimum 1)
// before wheel coalescing starts.
//
// Parameters:
//   - capacity: number of undrained events stored without coalescing
//
// Returns:
//   - *Queue: the new queue
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{
		mu:       &sync.Mutex{},
		events:   make([]Event, 0, capacity),
		capacity: capacity,
	}
}

// Push enqueues ev without blocking.
//
// Parameters:
//   - ev: the event to enqueue
//
// Returns:
//   - bool: false if the queue was full and wheel events had to be coalesced
func (q *Queue) Push(ev Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) < q.capacity {
		q.events = append(q.events, ev)
		return true
	}

	if ev.Kind == Wheel {
		if last := q.lastWheel(); last >= 0 {
			q.events[last].DeltaY += ev.DeltaY
			return false
		}
		q.events = append(q.events, ev)
		return false
	}

	q.coalesceOldestWheels()
	q.events = append(q.events, ev)
	return false
}

// lastWheel returns the index of the newest pending Wheel event, or -1.
func (q *Queue) lastWheel() int {
	for i := len(q.events) - 1; i >= 0; i-- {
		if q.events[i].Kind == Wheel {
			return i
		}
	}
	return -1
}

// coalesceOldestWheels folds the oldest pending Wheel into the next one,
// freeing a slot. It is a no-op when fewer than two wheels are pending.
func (q *Queue) coalesceOldestWheels() {
	first := -1
	for i, ev := range q.events {
		if ev.Kind != Wheel {
			continue
		}
		if first < 0 {
			first = i
			continue
		}
		q.events[i].DeltaY += q.events[first].DeltaY
		q.events = append(q.events[:first], q.events[first+1:]...)
		return
	}
}

// Drain delivers every pending event, in arrival order, to each handler in turn.
// Events pushed while draining are left for the next call.
//
// Parameters:
//   - handlers: the handlers to dispatch to, in order
//
// Returns:
//   - int: the number of events drained
func (q *Queue) Drain(handlers ...Handler) int {
	q.mu.Lock()
	pending := q.events
	q.events = make([]Event, 0, q.capacity)
	q.mu.Unlock()

	for _, ev := range pending {
		for _, h := range handlers {
			h.HandleInput(ev)
		}
	}
	return len(pending)
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
