package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-spiral/engine/camera"
	"github.com/Carmen-Shannon/oxy-spiral/engine/diag"
	"github.com/Carmen-Shannon/oxy-spiral/engine/input"
	"github.com/Carmen-Shannon/oxy-spiral/engine/profiler"
	"github.com/Carmen-Shannon/oxy-spiral/engine/renderer"
	"github.com/Carmen-Shannon/oxy-spiral/engine/scene"
	"github.com/Carmen-Shannon/oxy-spiral/engine/window"
)

// engine implements the Engine interface.
// Everything runs on the goroutine that calls Run: the window's message loop
// invokes Step once per iteration.
type engine struct {
	window   window.Window
	renderer renderer.Renderer
	camera   camera.Camera
	scene    scene.Scene
	clock    Clock
	sink     diag.Sink

	handlers     []input.Handler
	tickCallback func(deltaTime float32)

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameLimit time.Duration // minimum frame duration; 0 = uncapped
	frames     uint64

	quit     chan struct{}
	quitOnce sync.Once
}

// Engine owns the frame loop. Each frame it
//  1. measures dt from its Clock,
//  2. drains the window's input queue into the registered handlers in order,
//  3. runs the tick callback,
//  4. updates the camera from its controller,
//  5. renders the scene and ticks the profiler.
type Engine interface {
	// Window returns the underlying window, or nil when running headless.
	Window() window.Window

	// Renderer returns the renderer, or nil when none is attached.
	Renderer() renderer.Renderer

	// Camera returns the camera used for rendering.
	Camera() camera.Camera

	// Scene returns the scene drawn each frame.
	Scene() scene.Scene

	// AddInputHandler appends a handler; handlers see every event in registration order.
	//
	// Parameters:
	//   - h: the handler to add
	AddInputHandler(h input.Handler)

	// SetTickCallback registers the function called once per frame before the camera update.
	//
	// Parameters:
	//   - callback: function receiving the frame delta in seconds
	SetTickCallback(callback func(deltaTime float32))

	// EnableProfiler turns on per-frame profiler ticks.
	EnableProfiler()

	// DisableProfiler turns off profiler ticks.
	DisableProfiler()

	// Frames returns the number of completed Step calls.
	Frames() uint64

	// Step runs a single frame. It does nothing after Quit.
	Step()

	// Run drives Step from the window message loop and blocks until the window
	// closes or Quit is called.
	Run()

	// Quit stops the loop. Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine with the provided options applied.
// When a window is supplied, its resize events reach the renderer and the
// camera aspect ratio.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		clock: NewSystemClock(),
		sink:  diag.Nop(),
		quit:  make(chan struct{}),
	}
	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithDiagnostics(e.sink))
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
		if e.camera != nil && e.window.Height() > 0 {
			e.camera.SetAspect(float32(e.window.Width()) / float32(e.window.Height()))
		}
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) AddInputHandler(h input.Handler) {
	if h != nil {
		e.handlers = append(e.handlers, h)
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Frames() uint64 {
	return e.frames
}

func (e *engine) Step() {
	select {
	case <-e.quit:
		return
	default:
	}

	dt := e.clock.Delta()

	if e.window != nil {
		e.window.Input().Drain(e.handlers...)
	}
	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
	if e.camera != nil {
		e.camera.Update()
	}
	if e.renderer != nil && e.camera != nil && e.scene != nil {
		if err := e.renderer.Render(e.scene, e.camera); err != nil {
			e.sink.Emit(slog.LevelWarn, "renderer.error", slog.Any("err", err))
		}
	}
	if e.profilingEnabled {
		e.profiler.Tick()
	}
	e.frames++
}

func (e *engine) Run() {
	if e.window == nil {
		return
	}
	e.sink.Emit(slog.LevelInfo, "engine.start", slog.Int("width", e.window.Width()), slog.Int("height", e.window.Height()))

	e.window.SetUpdateCallback(func() {
		start := time.Now()
		e.Step()
		if e.frameLimit > 0 {
			if remaining := e.frameLimit - time.Since(start); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	})
	e.window.ProcessMessages()
	e.Quit()

	e.sink.Emit(slog.LevelInfo, "engine.stop", slog.Uint64("frames", e.frames))
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quit)
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

// resize forwards a framebuffer size change to the renderer and camera.
func (e *engine) resize(width, height int) {
	if e.renderer != nil {
		e.renderer.Resize(width, height)
	}
	if e.camera != nil && height > 0 {
		e.camera.SetAspect(float32(width) / float32(height))
	}
	e.sink.Emit(slog.LevelDebug, "engine.resize", slog.Int("width", width), slog.Int("height", height))
}
