package renderer

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-monument/common"
	"github.com/Carmen-Shannon/oxy-monument/engine/mesh"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/params"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// MaxTextureUnits is the number of texture units the shading program samples from.
	MaxTextureUnits = 16

	// DefaultMaxObjects is the number of draws a single frame can hold by default.
	DefaultMaxObjects = 64

	frameGroup   = 0
	objectGroup  = 1
	textureGroup = 2
)

var (
	// ErrInvalidTextureData is returned when staging data has no pixels, a zero size or an unsupported channel count.
	ErrInvalidTextureData = errors.New("invalid texture data")

	// ErrUnknownTexture is returned when a handle does not refer to a live texture.
	ErrUnknownTexture = errors.New("unknown texture handle")

	// ErrInvalidTextureUnit is returned when a texture unit is outside [0, MaxTextureUnits).
	ErrInvalidTextureUnit = errors.New("invalid texture unit")

	// ErrEmptyMesh is returned when uploading a mesh without vertices or indices.
	ErrEmptyMesh = errors.New("mesh has no geometry")

	// ErrMeshNotUploaded is returned when drawing a primitive whose mesh was never uploaded.
	ErrMeshNotUploaded = errors.New("mesh not uploaded")

	// ErrNoActiveFrame is returned when drawing outside BeginFrame/EndFrame.
	ErrNoActiveFrame = errors.New("no active frame")

	// ErrObjectLimit is returned when a frame issues more draws than the object uniform buffer holds.
	ErrObjectLimit = errors.New("per-frame object limit reached")
)

// Surface is the window-side source of the WebGPU surface.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu      *sync.Mutex
	backend RendererBackend

	shaderKey, shaderSource string
	pipeline                pipeline.Pipeline
	cullMode                wgpu.CullMode

	frameProvider   bind_group_provider.BindGroupProvider
	objectProvider  bind_group_provider.BindGroupProvider
	textureProvider bind_group_provider.BindGroupProvider
	fallback        bind_group_provider.BindGroupProvider
	defaultSampler  common.SamplerStagingData

	textures   map[common.TextureHandle]bind_group_provider.BindGroupProvider
	nextHandle common.TextureHandle
	units      [MaxTextureUnits]common.TextureHandle
	unitsDirty bool

	meshes map[mesh.Kind]bind_group_provider.BindGroupProvider

	maxObjects   int
	objectStride uint64
	drawIndex    int
	inFrame      bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           wgpu.Color
}

// Renderer draws the scene's primitives with the Phong shading program.
//
// It owns every GPU object: textures are referenced through opaque handles and bound to one of
// MaxTextureUnits units, meshes are uploaded once per mesh.Kind, and each DrawPrimitive packs the
// current shader parameters into its own slice of a dynamic-offset uniform buffer.
type Renderer interface {
	// CreateTexture uploads a texture with its sampler and returns its handle.
	// RGB data is widened to RGBA; the mip chain is generated when requested.
	//
	// Parameters:
	//   - data: the pixels and dimensions (3 or 4 channels)
	//   - sampler: the sampler configuration for the texture
	//
	// Returns:
	//   - common.TextureHandle: the new handle, never InvalidTextureHandle on success
	//   - error: ErrInvalidTextureData or the GPU error
	CreateTexture(data common.TextureStagingData, sampler common.SamplerStagingData) (common.TextureHandle, error)

	// BindTextureUnit makes the texture sampleable through the given unit.
	//
	// Parameters:
	//   - unit: the texture unit in [0, MaxTextureUnits)
	//   - handle: a live texture handle
	//
	// Returns:
	//   - error: ErrInvalidTextureUnit or ErrUnknownTexture
	BindTextureUnit(unit int, handle common.TextureHandle) error

	// ReleaseTexture frees the texture and unbinds it from every unit. Unknown handles are ignored.
	//
	// Parameters:
	//   - handle: the texture handle
	ReleaseTexture(handle common.TextureHandle)

	// UploadMesh uploads the geometry for m.Kind, replacing any earlier upload of the same kind.
	//
	// Parameters:
	//   - m: the mesh to upload
	//
	// Returns:
	//   - error: ErrEmptyMesh or the GPU error
	UploadMesh(m *mesh.Mesh) error

	// ReleaseMesh frees the geometry uploaded for kind, if any.
	//
	// Parameters:
	//   - kind: the mesh kind
	ReleaseMesh(kind mesh.Kind)

	// BeginFrame writes the per-frame uniforms (camera and lights) from values and begins the render pass.
	// Must be paired with EndFrame.
	//
	// Parameters:
	//   - values: the parameter store holding view, projection, view position, lighting and light values
	//
	// Returns:
	//   - error: an error if the texture group or swapchain texture could not be prepared
	BeginFrame(values params.Reader) error

	// DrawPrimitive draws the uploaded mesh of the given kind with the per-object parameters in values.
	//
	// Parameters:
	//   - kind: the mesh kind
	//   - values: the parameter store holding the object's transform, appearance and material
	//
	// Returns:
	//   - error: ErrNoActiveFrame, ErrMeshNotUploaded or ErrObjectLimit
	DrawPrimitive(kind mesh.Kind, values params.Reader) error

	// EndFrame ends the render pass and submits the frame's commands.
	EndFrame()

	// Present presents the frame to the display. Call once per frame after EndFrame.
	Present()

	// Resize reconfigures the surface for a new size. Zero sizes (minimized windows) are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the present mode. A call to Resize is required for it to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Release frees every texture, mesh, buffer and the GPU device.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates the WebGPU backend for the window's surface, validates the shading program
// and creates the pipeline and its uniform buffers.
//
// Parameters:
//   - surface: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the ready renderer
//   - error: an error if the GPU or the shading program could not be initialized
func NewRenderer(surface Surface, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(options...)

	backend, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa, r.clearColor)
	if err != nil {
		return nil, err
	}
	if err := r.init(backend, surface.Width(), surface.Height()); err != nil {
		backend.Release()
		return nil, err
	}
	return r, nil
}

func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:             &sync.Mutex{},
		shaderKey:      "phong",
		shaderSource:   shader.PhongSource,
		cullMode:       wgpu.CullModeNone,
		defaultSampler: common.RepeatLinearSampler(),
		textures:       make(map[common.TextureHandle]bind_group_provider.BindGroupProvider),
		meshes:         make(map[mesh.Kind]bind_group_provider.BindGroupProvider),
		maxObjects:     DefaultMaxObjects,
		presentMode:    PresentModeVSync,
		msaa:           MSAA4x,
		clearColor:     wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// init wires the backend: surface, pipeline, frame and object uniforms and the fallback texture
// that fills unbound texture units.
func (r *renderer) init(backend RendererBackend, width, height int) error {
	r.backend = backend
	r.backend.SetPresentMode(r.presentMode)
	r.backend.ConfigureSurface(width, height)

	s, err := shader.NewShader(r.shaderKey, r.shaderSource)
	if err != nil {
		return err
	}
	r.pipeline = pipeline.NewPipeline(r.shaderKey, s,
		pipeline.WithDynamicGroup(objectGroup),
		pipeline.WithCullMode(r.cullMode),
	)
	if err := r.backend.RegisterRenderPipeline(r.pipeline); err != nil {
		return fmt.Errorf("failed to register pipeline %s: %w", r.shaderKey, err)
	}

	r.frameProvider = bind_group_provider.NewBindGroupProvider("frame")
	if err := r.backend.InitUniformBindGroup(r.pipeline, frameGroup, r.frameProvider, params.FrameUniformsSize); err != nil {
		return fmt.Errorf("failed to create frame uniforms: %w", err)
	}

	r.objectStride = common.AlignUp(uint64(params.ObjectUniformsSize), r.backend.UniformAlignment())
	r.objectProvider = bind_group_provider.NewBindGroupProvider("objects")
	if err := r.backend.InitUniformBindGroup(r.pipeline, objectGroup, r.objectProvider, r.objectStride*uint64(r.maxObjects)); err != nil {
		return fmt.Errorf("failed to create object uniforms: %w", err)
	}

	r.fallback = bind_group_provider.NewBindGroupProvider("fallback")
	white := common.TextureStagingData{
		Label:    "fallback",
		Pixels:   []byte{0xFF, 0xFF, 0xFF, 0xFF},
		Width:    1,
		Height:   1,
		Channels: 4,
	}
	if err := r.backend.InitTextureView(r.fallback, 0, white); err != nil {
		return fmt.Errorf("failed to create fallback texture: %w", err)
	}
	if err := r.backend.InitSampler(r.fallback, 0, r.defaultSampler); err != nil {
		return fmt.Errorf("failed to create fallback sampler: %w", err)
	}

	r.textureProvider = bind_group_provider.NewBindGroupProvider("textures")
	r.unitsDirty = true
	return nil
}

func (r *renderer) CreateTexture(data common.TextureStagingData, sampler common.SamplerStagingData) (common.TextureHandle, error) {
	if data.Width == 0 || data.Height == 0 {
		return common.InvalidTextureHandle, fmt.Errorf("%w: %s has size %dx%d", ErrInvalidTextureData, data.Label, data.Width, data.Height)
	}
	if data.Channels != 3 && data.Channels != 4 {
		return common.InvalidTextureHandle, fmt.Errorf("%w: %s has %d channels", ErrInvalidTextureData, data.Label, data.Channels)
	}
	if want := int(data.Width) * int(data.Height) * data.Channels; len(data.Pixels) != want {
		return common.InvalidTextureHandle, fmt.Errorf("%w: %s has %d bytes, want %d", ErrInvalidTextureData, data.Label, len(data.Pixels), want)
	}

	staging := data
	staging.Pixels = common.ExpandToRGBA(data.Pixels, data.Channels)
	staging.Channels = 4

	r.mu.Lock()
	defer r.mu.Unlock()

	provider := bind_group_provider.NewBindGroupProvider("texture:" + data.Label)
	if err := r.backend.InitTextureView(provider, 0, staging); err != nil {
		provider.Release()
		return common.InvalidTextureHandle, fmt.Errorf("failed to create texture %s: %w", data.Label, err)
	}
	if err := r.backend.InitSampler(provider, 0, sampler); err != nil {
		provider.Release()
		return common.InvalidTextureHandle, fmt.Errorf("failed to create sampler for %s: %w", data.Label, err)
	}

	r.nextHandle++
	handle := r.nextHandle
	r.textures[handle] = provider
	log.Printf("[Renderer] created texture %s (%dx%d) as handle %d", data.Label, data.Width, data.Height, handle)
	return handle, nil
}

func (r *renderer) BindTextureUnit(unit int, handle common.TextureHandle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if unit < 0 || unit >= MaxTextureUnits {
		return fmt.Errorf("%w: %d", ErrInvalidTextureUnit, unit)
	}
	if _, ok := r.textures[handle]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTexture, handle)
	}
	if r.units[unit] != handle {
		r.units[unit] = handle
		r.unitsDirty = true
	}
	return nil
}

func (r *renderer) ReleaseTexture(handle common.TextureHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	provider, ok := r.textures[handle]
	if !ok {
		return
	}
	for unit, bound := range r.units {
		if bound == handle {
			r.units[unit] = common.InvalidTextureHandle
			r.unitsDirty = true
		}
	}
	provider.Release()
	delete(r.textures, handle)
}

func (r *renderer) UploadMesh(m *mesh.Mesh) error {
	if m == nil || len(m.Vertices) == 0 || m.IndexCount() == 0 {
		return ErrEmptyMesh
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	provider := bind_group_provider.NewBindGroupProvider("mesh:" + m.Kind.String())
	if err := r.backend.InitMeshBuffers(provider, m.VertexData(), m.IndexData(), m.IndexCount()); err != nil {
		provider.Release()
		return fmt.Errorf("failed to upload mesh %s: %w", m.Kind, err)
	}
	if old, ok := r.meshes[m.Kind]; ok {
		old.Release()
	}
	r.meshes[m.Kind] = provider
	return nil
}

func (r *renderer) ReleaseMesh(kind mesh.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if provider, ok := r.meshes[kind]; ok {
		provider.Release()
		delete(r.meshes, kind)
	}
}

func (r *renderer) BeginFrame(values params.Reader) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.unitsDirty {
		if err := r.rebuildTextureGroup(); err != nil {
			return err
		}
	}

	frame := params.PackFrame(values)
	r.backend.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: r.frameProvider,
		Binding:  0,
		Offset:   0,
		Data:     frame.Marshal(),
	}})

	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	r.drawIndex = 0
	r.inFrame = true
	return nil
}

// rebuildTextureGroup rebinds every texture unit, filling unbound units with the fallback texture.
// The program samples all units through one sampler: the one created with the texture in the
// lowest bound unit, or the default sampler when no unit is bound.
func (r *renderer) rebuildTextureGroup() error {
	views := make([]*wgpu.TextureView, MaxTextureUnits)
	var sampler *wgpu.Sampler
	for unit, handle := range r.units {
		provider, ok := r.textures[handle]
		if !ok {
			views[unit] = r.fallback.TextureView(0)
			continue
		}
		views[unit] = provider.TextureView(0)
		if sampler == nil {
			sampler = provider.Sampler(0)
		}
	}
	if sampler == nil {
		sampler = r.fallback.Sampler(0)
	}

	if err := r.backend.InitTextureBindGroup(r.pipeline, textureGroup, r.textureProvider, views, sampler); err != nil {
		return fmt.Errorf("failed to bind texture units: %w", err)
	}
	r.unitsDirty = false
	return nil
}

func (r *renderer) DrawPrimitive(kind mesh.Kind, values params.Reader) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inFrame {
		return ErrNoActiveFrame
	}
	provider, ok := r.meshes[kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMeshNotUploaded, kind)
	}
	if r.drawIndex >= r.maxObjects {
		return fmt.Errorf("%w: %d", ErrObjectLimit, r.maxObjects)
	}

	offset := uint64(r.drawIndex) * r.objectStride
	object := params.PackObject(values)
	r.backend.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: r.objectProvider,
		Binding:  0,
		Offset:   offset,
		Data:     object.Marshal(),
	}})
	r.backend.DrawCall(r.pipeline, provider, []bind_group_provider.BindGroupProvider{
		r.frameProvider,
		r.objectProvider,
		r.textureProvider,
	}, uint32(offset))
	r.drawIndex++
	return nil
}

func (r *renderer) EndFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inFrame {
		return
	}
	r.backend.EndFrame()
	r.inFrame = false
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for handle, provider := range r.textures {
		provider.Release()
		delete(r.textures, handle)
	}
	r.units = [MaxTextureUnits]common.TextureHandle{}
	for kind, provider := range r.meshes {
		provider.Release()
		delete(r.meshes, kind)
	}
	for _, provider := range []bind_group_provider.BindGroupProvider{r.textureProvider, r.objectProvider, r.frameProvider, r.fallback} {
		if provider != nil {
			provider.Release()
		}
	}
	if r.pipeline != nil {
		r.pipeline.Release()
	}
	if r.backend != nil {
		r.backend.Release()
	}
	log.Printf("[Renderer] released")
}
