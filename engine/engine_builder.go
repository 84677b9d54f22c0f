package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-spiral/engine/camera"
	"github.com/Carmen-Shannon/oxy-spiral/engine/diag"
	"github.com/Carmen-Shannon/oxy-spiral/engine/input"
	"github.com/Carmen-Shannon/oxy-spiral/engine/profiler"
	"github.com/Carmen-Shannon/oxy-spiral/engine/renderer"
	"github.com/Carmen-Shannon/oxy-spiral/engine/scene"
	"github.com/Carmen-Shannon/oxy-spiral/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables per-frame profiler ticks.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window whose message loop drives the engine and whose
// input queue feeds the handlers.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer drawing the scene each frame.
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithCamera sets the camera updated and rendered from each frame.
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithScene sets the scene drawn each frame.
//
// Parameters:
//   - s: the Scene to render
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithClock replaces the system clock, e.g. with a ManualClock in tests.
func WithClock(c Clock) EngineBuilderOption {
	return func(e *engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithInputHandlers registers handlers in dispatch order.
//
// Parameters:
//   - handlers: the handlers receiving every input event
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithInputHandlers(handlers ...input.Handler) EngineBuilderOption {
	return func(e *engine) {
		for _, h := range handlers {
			if h != nil {
				e.handlers = append(e.handlers, h)
			}
		}
	}
}

// WithTickCallback sets the per-frame callback.
func WithTickCallback(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.tickCallback = callback
	}
}

// WithFrameLimit caps the frame rate in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.frameLimit = 0
			return
		}
		e.frameLimit = time.Duration(float64(time.Second) / fps)
	}
}

// WithDiagnostics routes engine events to sink. The default profiler reports there too.
func WithDiagnostics(sink diag.Sink) EngineBuilderOption {
	return func(e *engine) {
		if sink != nil {
			e.sink = sink
		}
	}
}
