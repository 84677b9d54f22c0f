package renderer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/Carmen-Shannon/oxy-spiral/engine/camera"
	"github.com/Carmen-Shannon/oxy-spiral/engine/diag"
	"github.com/Carmen-Shannon/oxy-spiral/engine/light"
	"github.com/Carmen-Shannon/oxy-spiral/engine/model"
	"github.com/Carmen-Shannon/oxy-spiral/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-spiral/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedController struct {
	pos, target mgl32.Vec3
}

func (f fixedController) Position() (x, y, z float32) { return f.pos[0], f.pos[1], f.pos[2] }
func (f fixedController) Target() (x, y, z float32)   { return f.target[0], f.target[1], f.target[2] }

func newTestCamera() camera.Camera {
	cam := camera.NewCamera(camera.WithController(fixedController{pos: mgl32.Vec3{0, 0, 10}}))
	cam.Update()
	return cam
}

// fakeBackend records the calls the renderer makes instead of touching a GPU.
type fakeBackend struct {
	calls      []string
	pipelines  []string
	uploaded   map[uint64]int
	lines      map[string]int
	instances  int
	lightsData []byte
	clear      common.Color
	beginErr   error
	width      int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{uploaded: make(map[uint64]int), lines: make(map[string]int)}
}

func (f *fakeBackend) ConfigureSurface(width, height int) {
	f.width = width
	f.calls = append(f.calls, fmt.Sprintf("configure %dx%d", width, height))
}
func (f *fakeBackend) SetPresentMode(PresentMode) {}
func (f *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	f.pipelines = append(f.pipelines, p.PipelineKey())
	return nil
}
func (f *fakeBackend) WriteFrameUniforms(_, lightsData []byte) { f.lightsData = lightsData }
func (f *fakeBackend) WriteInstances(data []byte) error {
	f.instances = len(data) / model.GPUInstanceSize
	return nil
}
func (f *fakeBackend) UploadMesh(m model.Mesh) error {
	f.uploaded[m.ID()]++
	return nil
}
func (f *fakeBackend) UploadLines(key string, vertices []model.GPUVertex) error {
	f.lines[key] = len(vertices)
	return nil
}
func (f *fakeBackend) BeginFrame(clear common.Color) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	f.clear = clear
	f.calls = append(f.calls, "begin")
	return nil
}
func (f *fakeBackend) DrawMesh(p pipeline.Pipeline, meshID uint64, count, first uint32) {
	f.calls = append(f.calls, fmt.Sprintf("draw %s x%d @%d", p.PipelineKey(), count, first))
}
func (f *fakeBackend) DrawLines(p pipeline.Pipeline, key string) {
	f.calls = append(f.calls, "lines "+key)
}
func (f *fakeBackend) EndFrame() { f.calls = append(f.calls, "end") }
func (f *fakeBackend) Present()  { f.calls = append(f.calls, "present") }
func (f *fakeBackend) Release()  { f.calls = append(f.calls, "release") }

func newTestRenderer(t *testing.T, options ...RendererBuilderOption) (*renderer, *fakeBackend) {
	t.Helper()
	fb := newFakeBackend()
	r := newRenderer(options...)
	r.backend = fb
	require.NoError(t, r.init(800, 600))
	return r, fb
}

func TestRendererInitRegistersPipelines(t *testing.T) {
	r, fb := newTestRenderer(t)
	assert.Equal(t, []string{"mesh", "grid"}, fb.pipelines)
	assert.Equal(t, "configure 800x600", fb.calls[0])
	assert.Contains(t, r.meshPipeline.Source(), "struct CameraUniform")
	assert.Contains(t, r.meshPipeline.Source(), "struct Lights")
	assert.Contains(t, r.meshPipeline.Source(), "fn vs_main")
	assert.NotContains(t, r.gridPipeline.Source(), "@oxy:")
	assert.Equal(t, 2, r.meshPipeline.BindGroupCount())
	assert.Equal(t, 1, r.gridPipeline.BindGroupCount())
}

func TestRenderDrawsOneCallPerMesh(t *testing.T) {
	rec := diag.NewRecorder()
	r, fb := newTestRenderer(t, WithDiagnostics(rec))

	box := model.NewBox("box", 1, 1, 1, common.Color{1, 1, 1, 1})
	root := scene.NewGroup("pieces")
	for i := 0; i < 5; i++ {
		root.Add(scene.NewNode(fmt.Sprintf("p%d", i), scene.WithMesh(box), scene.WithPosition(0, float32(i), 0)))
	}
	s := scene.NewScene("main",
		scene.WithActive(true),
		scene.WithBackground(0x111318),
		scene.WithGrid(scene.NewGrid(80, 80, 0x3a3a5a, 0x2a2a3a)),
		scene.WithLights(light.NewHemisphereLight(0xffffff, 0x404040, 1)),
		scene.WithNodes(root),
	)

	require.NoError(t, r.Render(s, newTestCamera()))

	assert.Equal(t, []string{"configure 800x600", "begin", "lines grid", "draw mesh x5 @0", "end", "present"}, fb.calls)
	assert.Equal(t, 1, fb.uploaded[box.ID()])
	assert.Equal(t, 4*81, fb.lines[gridLinesKey])
	assert.Equal(t, 5, fb.instances)
	assert.Equal(t, common.ColorFromHex(0x111318), fb.clear)
	assert.Len(t, fb.lightsData, light.GPULightsSize)

	last := r.LastFrame()
	assert.Equal(t, 2, last.DrawCalls)
	assert.Equal(t, 5, last.Instances)
	require.Len(t, rec.Named("renderer.frame"), 1)
	assert.Equal(t, int64(2), rec.Named("renderer.frame")[0].Attrs["draw_calls"])

	fb.calls = nil
	require.NoError(t, r.Render(s, newTestCamera()))
	assert.Equal(t, 1, fb.uploaded[box.ID()], "meshes upload once")
}

func TestRenderSkips(t *testing.T) {
	r, fb := newTestRenderer(t)

	assert.ErrorIs(t, r.Render(scene.NewScene("s", scene.WithActive(true)), nil), ErrNilCamera)

	fb.calls = nil
	require.NoError(t, r.Render(scene.NewScene("idle", scene.WithActive(false)), newTestCamera()))
	require.NoError(t, r.Render(nil, newTestCamera()))
	assert.Empty(t, fb.calls)

	r.Resize(0, 0)
	require.NoError(t, r.Render(scene.NewScene("s", scene.WithActive(true)), newTestCamera()))
	assert.Equal(t, []string{"configure 0x0"}, fb.calls, "minimized surfaces draw nothing")
}

func TestRenderWithoutCulling(t *testing.T) {
	r, _ := newTestRenderer(t, WithFrustumCulling(false))
	box := model.NewBox("box", 1, 1, 1, common.Color{1, 1, 1, 1})
	s := scene.NewScene("s", scene.WithActive(true),
		scene.WithNodes(scene.NewNode("behind", scene.WithMesh(box), scene.WithPosition(0, 0, 100))))

	require.NoError(t, r.Render(s, newTestCamera()))
	assert.Equal(t, 1, r.LastFrame().Instances)
	assert.Equal(t, 0, r.LastFrame().Culled)
}

func TestRenderBeginFrameError(t *testing.T) {
	r, fb := newTestRenderer(t)
	fb.beginErr = errors.New("surface lost")

	err := r.Render(scene.NewScene("s", scene.WithActive(true)), newTestCamera())
	assert.ErrorContains(t, err, "surface lost")
}

func TestRenderRemovesGrid(t *testing.T) {
	r, fb := newTestRenderer(t)
	s := scene.NewScene("s", scene.WithActive(true), scene.WithGrid(scene.NewGrid(10, 2, 0xffffff, 0x808080)))

	require.NoError(t, r.Render(s, newTestCamera()))
	assert.Equal(t, 12, fb.lines[gridLinesKey])

	s.SetGrid(nil)
	fb.calls = nil
	require.NoError(t, r.Render(s, newTestCamera()))
	assert.Equal(t, 0, fb.lines[gridLinesKey])
	assert.NotContains(t, fb.calls, "lines grid")
}
