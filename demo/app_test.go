package demo

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/Carmen-Shannon/oxy-spiral/engine/config"
	"github.com/Carmen-Shannon/oxy-spiral/engine/diag"
	"github.com/Carmen-Shannon/oxy-spiral/engine/input"
	"github.com/Carmen-Shannon/oxy-spiral/engine/light"
	"github.com/Carmen-Shannon/oxy-spiral/engine/loader"
	"github.com/Carmen-Shannon/oxy-spiral/engine/model"
	"github.com/Carmen-Shannon/oxy-spiral/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTemplate() *scene.Node {
	cake := model.NewBox("cake", 1, 0.5, 1, common.Color{1, 0.8, 0.6, 1})
	root := scene.NewGroup("Cake")
	root.Add(scene.NewNode("slice", scene.WithMesh(cake)))
	return root
}

// startApp runs Start and ticks until the async load has been applied.
func startApp(t *testing.T, app *App, l loader.Loader) {
	t.Helper()
	app.Start()
	require.Eventually(t, func() bool {
		app.Tick(0)
		return l.Pending() == 0
	}, 5*time.Second, 5*time.Millisecond)
}

func TestNewScene(t *testing.T) {
	s := NewScene("spiral")
	assert.True(t, s.Active())
	assert.Equal(t, common.ColorFromHex(0x111318), s.Background())
	require.Len(t, s.Lights(), 2)
	assert.Equal(t, light.LightTypeHemisphere, s.Lights()[0].Type())
	assert.Equal(t, light.LightTypeDirectional, s.Lights()[1].Type())
	require.NotNil(t, s.Grid())
	assert.Len(t, s.Grid().Lines(), 4*81)
}

func TestAppSpawnsStackFromLoadedModel(t *testing.T) {
	rec := diag.NewRecorder()
	cfg := config.Default()
	l := loader.NewLoader(loader.BackendTypeGLTF, loader.WithModel(cfg.Model.Path, newTemplate()))
	app := NewApp(cfg, WithLoader(l), WithDiagnostics(rec))

	assert.Nil(t, app.Stack())
	startApp(t, app, l)

	stack := app.Stack()
	require.NotNil(t, stack)
	assert.Equal(t, 104, stack.ChildCount())
	assert.Same(t, app.Scene().Root(), stack.Parent())
	assert.Same(t, stack, app.Rotator().Target())
	assert.Len(t, rec.Named("spawner.piece"), 104)
	require.Len(t, rec.Named("demo.stack_ready"), 1)

	last := stack.Child(103)
	assert.InDelta(t, 48, last.Transform.Position.Y(), 1e-4)
	assert.InDelta(t, mgl32.DegToRad(315), last.Yaw(), 1e-4)
}

func TestAppLoadFailureKeepsRunning(t *testing.T) {
	rec := diag.NewRecorder()
	cfg := config.Default()
	cfg.Model.Path = t.TempDir() + "/missing.glb"
	l := loader.NewLoader(loader.BackendTypeGLTF, loader.WithDiagnostics(rec))
	app := NewApp(cfg, WithLoader(l), WithDiagnostics(rec))

	startApp(t, app, l)

	assert.Nil(t, app.Stack())
	assert.Error(t, app.LoadErr())
	assert.Len(t, rec.Named("loader.error"), 1)
	assert.Len(t, rec.Named("demo.empty_stack"), 1)
	assert.Equal(t, 1, app.Scene().Root().Count(), "only the root remains")

	app.Tick(0.016)
}

func TestAppInputDrivesRigAndRotator(t *testing.T) {
	cfg := config.Default()
	l := loader.NewLoader(loader.BackendTypeGLTF, loader.WithModel(cfg.Model.Path, newTemplate()))
	app := NewApp(cfg, WithLoader(l))
	startApp(t, app, l)

	q := input.NewQueue(8)
	q.Push(input.KeyDownEvent(common.KeyW))
	q.Push(input.KeyDownEvent(common.KeyD))
	q.Drain(app.Handlers()...)

	_, y0, _ := app.Rig().Position()
	for i := 0; i < 30; i++ {
		app.Tick(1.0 / 30)
	}
	_, y1, _ := app.Rig().Position()
	assert.Greater(t, y1, y0)
	assert.InDelta(t, mgl32.DegToRad(120), app.Stack().Yaw(), 1e-3, "one second at 120 deg/s")

	app.Camera().Update()
	assert.InDelta(t, y1, app.Camera().Eye().Y(), 1e-5)
}

func TestAppApplyRespawnsOnLayoutChange(t *testing.T) {
	cfg := config.Default()
	l := loader.NewLoader(loader.BackendTypeGLTF, loader.WithModel(cfg.Model.Path, newTemplate()))
	app := NewApp(cfg, WithLoader(l))
	startApp(t, app, l)

	app.Stack().SetYaw(1)
	old := app.Stack()

	next := config.Default()
	next.Rotator.SpeedDeg = 30
	next.Rig.MaxDistance = 10
	app.Apply(next)
	assert.Same(t, old, app.Stack(), "same layout keeps the stack")
	assert.InDelta(t, 30, app.Rotator().SpeedDegrees(), 1e-4)
	assert.LessOrEqual(t, app.Rig().TargetDistance(), float32(10))

	next.Layout.Total = 8
	app.Apply(next)
	require.NotSame(t, old, app.Stack())
	assert.Equal(t, 8, app.Stack().ChildCount())
	assert.InDelta(t, 1, app.Stack().Yaw(), 1e-6)
	assert.Nil(t, old.Parent())
	assert.Same(t, app.Stack(), app.Rotator().Target())
	assert.Len(t, app.Scene().Root().Children(), 1)
}

func TestNewAppCopiesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Rig.Override = &[3]float32{45, 25, 45}
	app := NewApp(cfg, WithLoader(loader.NewLoader(loader.BackendTypeGLTF)))

	cfg.Rig.Override[0] = 0
	cfg.Layout.Total = 1
	got := app.Config()
	require.NotNil(t, got.Rig.Override)
	assert.Equal(t, float32(45), got.Rig.Override[0])
	assert.Equal(t, 104, got.Layout.Total)

	x, y, z := app.Rig().Position()
	assert.Equal(t, [3]float32{45, 25, 45}, [3]float32{x, y, z})
}
