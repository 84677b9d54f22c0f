package demo

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-spiral/engine/camera"
	"github.com/Carmen-Shannon/oxy-spiral/engine/config"
	"github.com/Carmen-Shannon/oxy-spiral/engine/diag"
	"github.com/Carmen-Shannon/oxy-spiral/engine/input"
	"github.com/Carmen-Shannon/oxy-spiral/engine/loader"
	"github.com/Carmen-Shannon/oxy-spiral/engine/rotator"
	"github.com/Carmen-Shannon/oxy-spiral/engine/scene"
	"github.com/Carmen-Shannon/oxy-spiral/engine/spawner"
)

// App is the spiral demo without its platform layer: the scene, the camera
// rig, the stack rotator and the asynchronous model load that populates the
// stack. Tick must be called from the frame loop; it is the only place the
// scene graph changes.
type App struct {
	cfg  config.Config
	sink diag.Sink

	scene   scene.Scene
	rig     camera.VerticalZoomRig
	camera  camera.Camera
	rotator rotator.YawRotator
	spawner spawner.Spawner
	loader  loader.Loader
	watcher *config.Watcher

	template *scene.Node
	stack    *scene.Node
	loadErr  error
}

// NewApp assembles the demo from cfg. Nothing is loaded until Start.
//
// Parameters:
//   - cfg: a validated configuration, copied
//   - options: functional options
//
// Returns:
//   - *App: the assembled demo
func NewApp(cfg *config.Config, options ...AppBuilderOption) *App {
	a := &App{sink: diag.Nop()}
	if cfg == nil {
		cfg = config.Default()
	}
	a.cfg = *cfg.Clone()

	for _, opt := range options {
		opt(a)
	}
	if a.loader == nil {
		a.loader = loader.NewLoader(loader.BackendTypeGLTF, loader.WithDiagnostics(a.sink))
	}

	a.scene = NewScene("spiral")
	a.spawner = spawner.NewSpawner(a.scene.Root(), spawner.WithDiagnostics(a.sink))
	a.rig = camera.NewVerticalZoomRig(append(a.cfg.RigOptions(), camera.WithDiagnostics(a.sink))...)
	a.camera = camera.NewCamera(
		camera.WithFovDegrees(a.cfg.Camera.FovDeg),
		camera.WithClipPlanes(a.cfg.Camera.Near, a.cfg.Camera.Far),
		camera.WithAspect(float32(a.cfg.Window.Width)/float32(a.cfg.Window.Height)),
		camera.WithController(a.rig),
	)
	a.rotator = rotator.NewYawRotator(a.cfg.RotatorOptions()...)
	return a
}

// Start begins loading the configured model in the background.
func (a *App) Start() {
	a.loader.LoadAsync(a.cfg.Model.Path, a.onModel, a.onLoadError)
}

// Tick advances one frame: rig, rotator, then finished loads and config reloads.
//
// Parameters:
//   - dt: frame delta in seconds
func (a *App) Tick(dt float32) {
	a.rig.Update(dt)
	a.rotator.Update(dt)
	a.loader.Poll()

	if a.watcher == nil {
		return
	}
	cfg, err := a.watcher.Poll()
	if err != nil {
		a.sink.Emit(slog.LevelWarn, "config.reload_failed", slog.Any("err", err))
	}
	if cfg != nil {
		a.Apply(cfg)
	}
}

// Apply hot-swaps tuning from cfg. Rig and rotator speeds change in place; a
// changed layout respawns the stack keeping its current yaw. Window, camera
// and key bindings only take effect on restart.
//
// Parameters:
//   - cfg: the new configuration
func (a *App) Apply(cfg *config.Config) {
	a.rig.SetConfig(cfg.Rig)
	a.rotator.SetSpeedDegrees(cfg.Rotator.SpeedDeg)

	layoutChanged := cfg.Layout != a.cfg.Layout
	a.cfg.Rig = cfg.Clone().Rig
	a.cfg.Rotator.SpeedDeg = cfg.Rotator.SpeedDeg
	a.cfg.Layout = cfg.Layout
	a.sink.Emit(slog.LevelInfo, "config.applied", slog.Bool("respawn", layoutChanged && a.template != nil))

	if layoutChanged && a.template != nil {
		a.respawn()
	}
}

// Handlers returns the input handlers in dispatch order.
func (a *App) Handlers() []input.Handler {
	return []input.Handler{a.rig, a.rotator}
}

func (a *App) Scene() scene.Scene { return a.scene }

func (a *App) Camera() camera.Camera { return a.camera }

func (a *App) Rig() camera.VerticalZoomRig { return a.rig }

func (a *App) Rotator() rotator.YawRotator { return a.rotator }

// Stack returns the spawned group, or nil until the model has loaded.
func (a *App) Stack() *scene.Node { return a.stack }

// LoadErr returns the model load failure, if any.
func (a *App) LoadErr() error { return a.loadErr }

// Config returns the configuration currently in effect.
func (a *App) Config() config.Config { return a.cfg }

func (a *App) onModel(template *scene.Node) {
	a.template = template
	a.respawn()
}

// onLoadError keeps the app running with an empty stack. The loader has
// already reported the failure.
func (a *App) onLoadError(err error) {
	a.loadErr = err
	a.sink.Emit(slog.LevelWarn, "demo.empty_stack", slog.String("model", a.cfg.Model.Path))
}

// respawn replaces the current stack with a fresh one from the cached template.
func (a *App) respawn() {
	var yaw float32
	if a.stack != nil {
		yaw = a.stack.Yaw()
		a.scene.Root().Remove(a.stack)
		a.stack = nil
		a.rotator.Unbind()
	}

	stack, err := a.spawner.Spawn(a.template, a.cfg.Layout)
	if err != nil {
		a.sink.Emit(slog.LevelError, "spawner.error", slog.Any("err", err))
		return
	}
	stack.SetYaw(yaw)
	a.stack = stack
	a.rotator.Bind(stack)
	a.sink.Emit(slog.LevelInfo, "demo.stack_ready", slog.Int("pieces", stack.ChildCount()))
}
