package profiler

import (
	"time"

	"github.com/Carmen-Shannon/oxy-spiral/engine/diag"
)

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often statistics are reported. Non-positive values are ignored.
//
// Parameters:
//   - d: the reporting interval
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithDiagnostics routes reports to sink.
func WithDiagnostics(sink diag.Sink) ProfilerBuilderOption {
	return func(p *Profiler) {
		if sink != nil {
			p.sink = sink
		}
	}
}

// WithTimeSource replaces time.Now, letting tests drive the clock.
func WithTimeSource(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}
