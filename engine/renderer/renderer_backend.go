package renderer

import (
	"github.com/Carmen-Shannon/oxy-monument/common"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
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
// Only specific power-of-two values are valid for GPU hardware. WebGPU guarantees support for
// 1 (off) and 4; higher values (8, 16) are adapter-dependent and may not be available.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4

	// MSAA8x enables 8× multisample anti-aliasing. Adapter-dependent; not all hardware supports this.
	MSAA8x MSAASampleCount = 8

	// MSAA16x enables 16× multisample anti-aliasing. Adapter-dependent; not all hardware supports this.
	MSAA16x MSAASampleCount = 16
)

// RendererBackend is the GPU-facing half of the Renderer. The renderer keeps all bookkeeping
// (handles, texture units, meshes, per-draw uniform offsets) and delegates GPU object creation
// and command encoding to the backend.
type RendererBackend interface {
	// ConfigureSurface configures the swapchain and recreates the MSAA and depth targets.
	// Required whenever the surface size changes.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode. Takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// UniformAlignment returns the required alignment of dynamic uniform buffer offsets.
	//
	// Returns:
	//   - uint64: the alignment in bytes
	UniformAlignment() uint64

	// RegisterRenderPipeline creates the shader module, bind group layouts, pipeline layout and
	// render pipeline for p, and stores them on p.
	//
	// Parameters:
	//   - p: the pipeline to create
	//
	// Returns:
	//   - error: an error if any GPU object could not be created
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitUniformBindGroup creates a uniform buffer of the given size for binding 0 of a group and
	// the bind group that exposes it. Dynamic groups bind a window of the group's binding size.
	//
	// Parameters:
	//   - p: the registered pipeline that owns the group layout
	//   - group: the @group index
	//   - provider: the provider that receives the buffer and bind group
	//   - size: the buffer size in bytes
	//
	// Returns:
	//   - error: an error if the buffer or bind group could not be created
	InitUniformBindGroup(p pipeline.Pipeline, group int, provider bind_group_provider.BindGroupProvider, size uint64) error

	// InitTextureView creates an RGBA texture, uploads every mip level and stores the texture and
	// its view on the provider at the given binding.
	//
	// Parameters:
	//   - provider: the provider that receives the texture
	//   - binding: the binding key used on the provider
	//   - stagingData: RGBA pixels (4 channels) with dimensions and mipmap flag
	//
	// Returns:
	//   - error: an error if the texture could not be created
	InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error

	// InitSampler creates a sampler and stores it on the provider at the given binding.
	//
	// Parameters:
	//   - provider: the provider that receives the sampler
	//   - binding: the binding key used on the provider
	//   - samplerStagingData: the sampler configuration, zero fields take repeat/linear defaults
	//
	// Returns:
	//   - error: an error if the sampler could not be created
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int, samplerStagingData common.SamplerStagingData) error

	// InitTextureBindGroup builds the texture group from one view per texture unit plus the shared sampler.
	//
	// Parameters:
	//   - p: the registered pipeline that owns the group layout
	//   - group: the @group index of the texture group
	//   - provider: the provider that receives the bind group
	//   - views: one view per texture unit, bound at bindings 0..len(views)-1
	//   - sampler: the sampler bound after the last view
	//
	// Returns:
	//   - error: an error if the bind group could not be created
	InitTextureBindGroup(p pipeline.Pipeline, group int, provider bind_group_provider.BindGroupProvider, views []*wgpu.TextureView, sampler *wgpu.Sampler) error

	// InitMeshBuffers creates vertex and index buffers and stores them on the provider.
	//
	// Parameters:
	//   - provider: the provider that receives the buffers
	//   - vertexData: the raw vertex bytes
	//   - indexData: the raw uint32 index bytes
	//   - indexCount: the number of indices
	//
	// Returns:
	//   - error: an error if a buffer could not be created
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	//
	// Parameters:
	//   - writes: the writes to perform, in order
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next swapchain texture and begins the main render pass.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawCall encodes one indexed draw within the current render pass. Bind groups are set at
	// their slice index; dynamic groups receive dynamicOffset.
	//
	// Parameters:
	//   - p: the registered pipeline
	//   - meshProvider: the provider holding vertex and index buffers
	//   - bindGroups: providers whose bind groups are set at groups 0..n-1
	//   - dynamicOffset: the byte offset applied to every dynamic group
	DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider, dynamicOffset uint32)

	// EndFrame ends the current render pass and submits the command buffer.
	EndFrame()

	// Present presents the surface and releases the swapchain texture.
	Present()

	// Release releases the surface targets, device and instance.
	Release()
}
