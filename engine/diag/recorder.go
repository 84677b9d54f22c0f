package diag

import (
	"log/slog"
	"sync"
)

// Event is a single recorded diagnostic.
type Event struct {
	Level slog.Level
	Name  string
	Attrs map[string]any
}

// Recorder is an in-memory Sink that keeps every event. Intended for tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

var _ Sink = &Recorder{}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Emit(level slog.Level, name string, attrs ...slog.Attr) {
	values := make(map[string]any, len(attrs))
	for _, a := range attrs {
		values[a.Key] = a.Value.Any()
	}
	r.mu.Lock()
	r.events = append(r.events, Event{Level: level, Name: name, Attrs: values})
	r.mu.Unlock()
}

// Events returns a copy of all recorded events in emission order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Named returns the recorded events whose name matches.
//
// Parameters:
//   - name: the event name to filter by
//
// Returns:
//   - []Event: matching events in emission order
func (r *Recorder) Named(name string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// Reset discards all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
