package renderer

import (
	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/Carmen-Shannon/oxy-spiral/engine/model"
	"github.com/Carmen-Shannon/oxy-spiral/engine/renderer/pipeline"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4; higher values are adapter-dependent.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}

// wgpuRendererBackend owns every GPU object: surface, depth and MSAA targets,
// the shared frame and instance bind groups, and per-mesh buffers.
type wgpuRendererBackend interface {
	// ConfigureSurface reconfigures the swapchain and recreates the depth and
	// MSAA targets for the new size. Zero sizes are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the present mode used by the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline compiles p's WGSL module and creates its GPU pipeline
	// against the shared bind group layouts.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - error: an error if shader or pipeline creation fails
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// WriteFrameUniforms uploads the camera and lights blocks for the frame.
	//
	// Parameters:
	//   - cameraData: a marshaled camera uniform
	//   - lightsData: a marshaled lights block
	WriteFrameUniforms(cameraData, lightsData []byte)

	// WriteInstances uploads the frame's instance records, growing the storage
	// buffer when they do not fit.
	//
	// Parameters:
	//   - data: back to back instance records
	//
	// Returns:
	//   - error: an error if the buffer could not be grown
	WriteInstances(data []byte) error

	// UploadMesh creates the vertex and index buffers for m once; later calls
	// with the same mesh are no-ops.
	//
	// Parameters:
	//   - m: the mesh to upload
	//
	// Returns:
	//   - error: an error if buffer creation fails
	UploadMesh(m model.Mesh) error

	// UploadLines replaces the line-list vertex buffer stored under key.
	//
	// Parameters:
	//   - key: the buffer name
	//   - vertices: two vertices per segment
	//
	// Returns:
	//   - error: an error if buffer creation fails
	UploadLines(key string, vertices []model.GPUVertex) error

	// BeginFrame acquires the next swapchain texture and begins the main render
	// pass cleared to clear. Must be paired with EndFrame.
	//
	// Parameters:
	//   - clear: the background color
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame(clear common.Color) error

	// DrawMesh encodes one instanced indexed draw of an uploaded mesh.
	//
	// Parameters:
	//   - p: the registered pipeline
	//   - meshID: the ID passed to UploadMesh
	//   - instanceCount: number of instances to draw
	//   - firstInstance: offset into the instance buffer
	DrawMesh(p pipeline.Pipeline, meshID uint64, instanceCount, firstInstance uint32)

	// DrawLines encodes a non-indexed draw of the line buffer stored under key.
	//
	// Parameters:
	//   - p: the registered line pipeline
	//   - key: the name passed to UploadLines
	DrawLines(p pipeline.Pipeline, key string)

	// EndFrame ends the render pass and submits the command buffer.
	EndFrame()

	// Present presents the surface and releases the swapchain texture.
	Present()

	// Release frees every GPU object owned by the backend.
	Release()
}
