package renderer

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-spiral/engine/camera"
	"github.com/Carmen-Shannon/oxy-spiral/engine/diag"
	"github.com/Carmen-Shannon/oxy-spiral/engine/light"
	"github.com/Carmen-Shannon/oxy-spiral/engine/model"
	"github.com/Carmen-Shannon/oxy-spiral/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-spiral/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-spiral/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/mesh.wgsl
var meshShaderSource string

//go:embed assets/grid.wgsl
var gridShaderSource string

const gridLinesKey = "grid"

// ErrNilCamera is returned by Render when no camera is supplied.
var ErrNilCamera = errors.New("renderer: nil camera")

// Surface is the drawable a renderer presents to; engine windows implement it.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// FrameStats describes the most recent frame.
type FrameStats struct {
	BatchStats
	DrawCalls int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	sink        diag.Sink

	meshPipeline pipeline.Pipeline
	gridPipeline pipeline.Pipeline

	width, height int
	cull          bool
	grid          *scene.Grid
	last          FrameStats

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer draws a scene graph from a camera's point of view.
//
// Every mesh referenced by the graph is uploaded once and drawn with one
// instanced call per frame, no matter how many nodes share it. The scene's
// background color clears the frame and its grid, when set, is drawn as lines.
type Renderer interface {
	// Render draws s as seen by cam and presents the frame. Inactive scenes and
	// zero-sized surfaces are skipped without error.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - cam: the camera whose matrices are used, its Update must already have run
	//
	// Returns:
	//   - error: an error if GPU uploads or frame acquisition fail
	Render(s scene.Scene, cam camera.Camera) error

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes how frames are presented. Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// LastFrame returns the statistics of the most recent Render call.
	LastFrame() FrameStats

	// Release frees every GPU resource held by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a renderer presenting to surface. It panics if the GPU
// adapter, device or pipelines cannot be created.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - surface: the window providing the surface descriptor and initial size
//   - options: a variadic list of RendererBuilderOption functions
//
// Returns:
//   - Renderer: the ready renderer
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) Renderer {
	r := newRenderer(options...)
	r.backendType = backendType

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if err := r.init(surface.Width(), surface.Height()); err != nil {
		panic(err)
	}
	return r
}

// newRenderer applies options to a renderer without a backend.
func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:   &sync.Mutex{},
		sink: diag.Nop(),
		cull: true,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// init configures the surface and registers the built-in pipelines.
func (r *renderer) init(width, height int) error {
	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.width, r.height = width, height
	r.backend.ConfigureSurface(width, height)

	var err error
	if r.meshPipeline, err = newShaderPipeline("mesh", meshShaderSource); err != nil {
		return err
	}
	if r.gridPipeline, err = newShaderPipeline("grid", gridShaderSource, pipeline.WithTopology(wgpu.PrimitiveTopologyLineList)); err != nil {
		return err
	}
	for _, p := range []pipeline.Pipeline{r.meshPipeline, r.gridPipeline} {
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) Render(s scene.Scene, cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cam == nil {
		return ErrNilCamera
	}
	if s == nil || !s.Active() || r.width <= 0 || r.height <= 0 {
		return nil
	}

	var batches []Batch
	var stats FrameStats
	if r.cull {
		frustum := cam.Frustum()
		batches, stats.BatchStats = BuildBatches(s.Root(), &frustum)
	} else {
		batches, stats.BatchStats = BuildBatches(s.Root(), nil)
	}

	for _, b := range batches {
		if err := r.backend.UploadMesh(b.Mesh); err != nil {
			return fmt.Errorf("failed to upload mesh %q: %w", b.Mesh.Name(), err)
		}
	}
	if g := s.Grid(); g != r.grid {
		if err := r.backend.UploadLines(gridLinesKey, g.Lines()); err != nil {
			return fmt.Errorf("failed to upload grid: %w", err)
		}
		r.grid = g
	}

	uniform := camera.UniformFor(cam)
	lights := light.Pack(s.Lights())
	r.backend.WriteFrameUniforms(uniform.Marshal(), lights.Marshal())

	instances, offsets := FlattenInstances(batches)
	if err := r.backend.WriteInstances(model.MarshalInstances(instances)); err != nil {
		return err
	}

	if err := r.backend.BeginFrame(s.Background()); err != nil {
		return fmt.Errorf("failed to begin frame: %w", err)
	}
	if r.grid != nil {
		r.backend.DrawLines(r.gridPipeline, gridLinesKey)
		stats.DrawCalls++
	}
	for i, b := range batches {
		r.backend.DrawMesh(r.meshPipeline, b.Mesh.ID(), uint32(len(b.Instances)), offsets[i])
		stats.DrawCalls++
	}
	r.backend.EndFrame()
	r.backend.Present()

	r.last = stats
	r.sink.Emit(slog.LevelDebug, "renderer.frame",
		slog.Int("draw_calls", stats.DrawCalls),
		slog.Int("instances", stats.Instances),
		slog.Int("culled", stats.Culled),
	)
	return nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) LastFrame() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.Release()
	r.grid = nil
}

// newShaderPipeline expands the annotations in source and builds a pipeline
// whose bind group count matches the groups the shader declares.
func newShaderPipeline(key, source string, options ...pipeline.PipelineBuilderOption) (pipeline.Pipeline, error) {
	pp := shader.NewPreProcessor()
	wgsl, err := pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("failed to process %s shader: %w", key, err)
	}
	options = append([]pipeline.PipelineBuilderOption{
		pipeline.WithSource(wgsl),
		pipeline.WithVertexLayout(gpuVertexLayout()),
		pipeline.WithBindGroupCount(pp.BindGroupCount()),
	}, options...)
	return pipeline.NewPipeline(key, options...), nil
}

// gpuVertexLayout describes model.GPUVertex at vertex buffer slot 0.
func gpuVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: model.GPUVertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 24, ShaderLocation: 2},
		},
	}
}
