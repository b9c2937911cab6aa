package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-monument/common"
	"github.com/Carmen-Shannon/oxy-monument/engine/mesh"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/params"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uniformInit struct {
	group int
	label string
	size  uint64
}

type drawRecord struct {
	mesh   string
	groups []string
	offset uint32
}

// fakeBackend records the calls the renderer makes without touching a GPU.
type fakeBackend struct {
	width, height    int
	presentMode      PresentMode
	registered       []string
	uniforms         []uniformInit
	textureLabels    []string
	samplerLabels    []string
	textureGroupSets int
	meshes           map[string]int
	writes           []bind_group_provider.BufferWrite
	draws            []drawRecord
	frames, ends     int
	presents         int
	released         bool
	failTexture      bool
	failBeginFrame   bool
}

var _ RendererBackend = &fakeBackend{}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{meshes: make(map[string]int)}
}

func (f *fakeBackend) ConfigureSurface(width, height int) { f.width, f.height = width, height }
func (f *fakeBackend) SetPresentMode(mode PresentMode)    { f.presentMode = mode }
func (f *fakeBackend) UniformAlignment() uint64           { return 256 }

func (f *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	f.registered = append(f.registered, p.PipelineKey())
	return nil
}

func (f *fakeBackend) InitUniformBindGroup(_ pipeline.Pipeline, group int, provider bind_group_provider.BindGroupProvider, size uint64) error {
	f.uniforms = append(f.uniforms, uniformInit{group: group, label: provider.Label(), size: size})
	return nil
}

func (f *fakeBackend) InitTextureView(provider bind_group_provider.BindGroupProvider, _ int, data common.TextureStagingData) error {
	if f.failTexture {
		return errors.New("out of memory")
	}
	if data.Channels != 4 || len(data.Pixels) != int(data.Width*data.Height)*4 {
		return errors.New("staging data is not RGBA")
	}
	f.textureLabels = append(f.textureLabels, provider.Label())
	return nil
}

func (f *fakeBackend) InitSampler(provider bind_group_provider.BindGroupProvider, _ int, _ common.SamplerStagingData) error {
	f.samplerLabels = append(f.samplerLabels, provider.Label())
	return nil
}

func (f *fakeBackend) InitTextureBindGroup(_ pipeline.Pipeline, _ int, _ bind_group_provider.BindGroupProvider, views []*wgpu.TextureView, _ *wgpu.Sampler) error {
	if len(views) != MaxTextureUnits {
		return errors.New("wrong number of texture views")
	}
	f.textureGroupSets++
	return nil
}

func (f *fakeBackend) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, _, _ []byte, indexCount int) error {
	f.meshes[provider.Label()] = indexCount
	return nil
}

func (f *fakeBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	f.writes = append(f.writes, writes...)
}

func (f *fakeBackend) BeginFrame() error {
	if f.failBeginFrame {
		return errors.New("surface lost")
	}
	f.frames++
	return nil
}

func (f *fakeBackend) DrawCall(_ pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider, dynamicOffset uint32) {
	groups := make([]string, 0, len(bindGroups))
	for _, bg := range bindGroups {
		groups = append(groups, bg.Label())
	}
	f.draws = append(f.draws, drawRecord{mesh: meshProvider.Label(), groups: groups, offset: dynamicOffset})
}

func (f *fakeBackend) EndFrame() { f.ends++ }
func (f *fakeBackend) Present()  { f.presents++ }
func (f *fakeBackend) Release()  { f.released = true }

func newTestRenderer(t *testing.T, options ...RendererBuilderOption) (*renderer, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend()
	r := newRenderer(options...)
	require.NoError(t, r.init(backend, 800, 600))
	return r, backend
}

func rgbTexture(label string) common.TextureStagingData {
	return common.TextureStagingData{
		Label:    label,
		Pixels:   make([]byte, 2*2*3),
		Width:    2,
		Height:   2,
		Channels: 3,
	}
}

func TestInit(t *testing.T) {
	_, backend := newTestRenderer(t, WithMaxObjects(8), WithPresentMode(PresentModeUncapped))

	assert.Equal(t, 800, backend.width)
	assert.Equal(t, 600, backend.height)
	assert.Equal(t, PresentModeUncapped, backend.presentMode)
	assert.Equal(t, []string{"phong"}, backend.registered)
	require.Len(t, backend.uniforms, 2)
	assert.Equal(t, uniformInit{group: 0, label: "frame", size: params.FrameUniformsSize}, backend.uniforms[0])
	assert.Equal(t, uniformInit{group: 1, label: "objects", size: 256 * 8}, backend.uniforms[1])
	assert.Equal(t, []string{"fallback"}, backend.textureLabels)
}

func TestInit_InvalidShader(t *testing.T) {
	r := newRenderer(WithShaderSource("broken", "fn nope( {"))
	assert.Error(t, r.init(newFakeBackend(), 800, 600))
}

func TestCreateTexture(t *testing.T) {
	r, backend := newTestRenderer(t)

	first, err := r.CreateTexture(rgbTexture("stone"), common.RepeatLinearSampler())
	require.NoError(t, err)
	second, err := r.CreateTexture(rgbTexture("bush"), common.RepeatLinearSampler())
	require.NoError(t, err)

	assert.NotEqual(t, common.InvalidTextureHandle, first)
	assert.NotEqual(t, first, second)
	assert.Equal(t, []string{"fallback", "texture:stone", "texture:bush"}, backend.textureLabels)
}

func TestCreateTexture_InvalidData(t *testing.T) {
	r, _ := newTestRenderer(t)

	cases := map[string]common.TextureStagingData{
		"zero size":   {Label: "a", Pixels: []byte{}, Width: 0, Height: 2, Channels: 4},
		"one channel": {Label: "b", Pixels: make([]byte, 4), Width: 2, Height: 2, Channels: 1},
		"short data":  {Label: "c", Pixels: make([]byte, 5), Width: 2, Height: 2, Channels: 4},
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			handle, err := r.CreateTexture(data, common.RepeatLinearSampler())
			assert.ErrorIs(t, err, ErrInvalidTextureData)
			assert.Equal(t, common.InvalidTextureHandle, handle)
		})
	}
}

func TestCreateTexture_BackendFailure(t *testing.T) {
	r, backend := newTestRenderer(t)
	backend.failTexture = true

	handle, err := r.CreateTexture(rgbTexture("stone"), common.RepeatLinearSampler())
	assert.Error(t, err)
	assert.Equal(t, common.InvalidTextureHandle, handle)
	assert.Empty(t, r.textures)
}

func TestBindTextureUnit(t *testing.T) {
	r, _ := newTestRenderer(t)
	handle, err := r.CreateTexture(rgbTexture("stone"), common.RepeatLinearSampler())
	require.NoError(t, err)

	assert.NoError(t, r.BindTextureUnit(3, handle))
	assert.Equal(t, handle, r.units[3])
	assert.ErrorIs(t, r.BindTextureUnit(-1, handle), ErrInvalidTextureUnit)
	assert.ErrorIs(t, r.BindTextureUnit(MaxTextureUnits, handle), ErrInvalidTextureUnit)
	assert.ErrorIs(t, r.BindTextureUnit(0, handle+10), ErrUnknownTexture)
}

func TestReleaseTexture_UnbindsUnits(t *testing.T) {
	r, _ := newTestRenderer(t)
	handle, err := r.CreateTexture(rgbTexture("stone"), common.RepeatLinearSampler())
	require.NoError(t, err)
	require.NoError(t, r.BindTextureUnit(0, handle))
	require.NoError(t, r.BindTextureUnit(5, handle))

	r.ReleaseTexture(handle)
	r.ReleaseTexture(handle)

	assert.Equal(t, common.InvalidTextureHandle, r.units[0])
	assert.Equal(t, common.InvalidTextureHandle, r.units[5])
	assert.ErrorIs(t, r.BindTextureUnit(0, handle), ErrUnknownTexture)
}

func TestTextureGroupRebuiltOnlyWhenUnitsChange(t *testing.T) {
	r, backend := newTestRenderer(t)
	store := params.NewStore()

	require.NoError(t, r.BeginFrame(store))
	r.EndFrame()
	require.NoError(t, r.BeginFrame(store))
	r.EndFrame()
	assert.Equal(t, 1, backend.textureGroupSets)

	handle, err := r.CreateTexture(rgbTexture("stone"), common.RepeatLinearSampler())
	require.NoError(t, err)
	require.NoError(t, r.BindTextureUnit(0, handle))
	require.NoError(t, r.BindTextureUnit(0, handle))

	require.NoError(t, r.BeginFrame(store))
	r.EndFrame()
	assert.Equal(t, 2, backend.textureGroupSets)
}

func TestUploadMesh(t *testing.T) {
	r, backend := newTestRenderer(t)
	m, err := mesh.NewProvider().Build(mesh.KindBox)
	require.NoError(t, err)

	require.NoError(t, r.UploadMesh(m))
	require.NoError(t, r.UploadMesh(m))
	assert.Equal(t, m.IndexCount(), backend.meshes["mesh:"+mesh.KindBox.String()])
	assert.Len(t, r.meshes, 1)

	assert.ErrorIs(t, r.UploadMesh(nil), ErrEmptyMesh)
	assert.ErrorIs(t, r.UploadMesh(&mesh.Mesh{Kind: mesh.KindPlane}), ErrEmptyMesh)

	r.ReleaseMesh(mesh.KindBox)
	r.ReleaseMesh(mesh.KindBox)
	assert.Empty(t, r.meshes)
}

func TestDrawPrimitive(t *testing.T) {
	r, backend := newTestRenderer(t)
	provider := mesh.NewProvider()
	for _, kind := range []mesh.Kind{mesh.KindPlane, mesh.KindTorus} {
		m, err := provider.Build(kind)
		require.NoError(t, err)
		require.NoError(t, r.UploadMesh(m))
	}
	store := params.NewStore()

	assert.ErrorIs(t, r.DrawPrimitive(mesh.KindPlane, store), ErrNoActiveFrame)

	require.NoError(t, r.BeginFrame(store))
	require.NoError(t, r.DrawPrimitive(mesh.KindPlane, store))
	require.NoError(t, r.DrawPrimitive(mesh.KindTorus, store))
	assert.ErrorIs(t, r.DrawPrimitive(mesh.KindPrism, store), ErrMeshNotUploaded)
	r.EndFrame()
	r.Present()

	require.Len(t, backend.draws, 2)
	assert.Equal(t, uint32(0), backend.draws[0].offset)
	assert.Equal(t, uint32(256), backend.draws[1].offset)
	assert.Equal(t, "mesh:"+mesh.KindTorus.String(), backend.draws[1].mesh)
	assert.Equal(t, []string{"frame", "objects", "textures"}, backend.draws[0].groups)
	assert.Equal(t, 1, backend.ends)
	assert.Equal(t, 1, backend.presents)

	// one frame write followed by one object write per draw
	require.Len(t, backend.writes, 3)
	assert.Equal(t, "frame", backend.writes[0].Provider.Label())
	assert.Len(t, backend.writes[0].Data, params.FrameUniformsSize)
	assert.Equal(t, uint64(256), backend.writes[2].Offset)
	assert.Len(t, backend.writes[2].Data, params.ObjectUniformsSize)

	// the next frame starts at offset zero again
	require.NoError(t, r.BeginFrame(store))
	require.NoError(t, r.DrawPrimitive(mesh.KindPlane, store))
	r.EndFrame()
	assert.Equal(t, uint32(0), backend.draws[2].offset)
}

func TestDrawPrimitive_ObjectLimit(t *testing.T) {
	r, _ := newTestRenderer(t, WithMaxObjects(1))
	m, err := mesh.NewProvider().Build(mesh.KindPlane)
	require.NoError(t, err)
	require.NoError(t, r.UploadMesh(m))
	store := params.NewStore()

	require.NoError(t, r.BeginFrame(store))
	require.NoError(t, r.DrawPrimitive(mesh.KindPlane, store))
	assert.ErrorIs(t, r.DrawPrimitive(mesh.KindPlane, store), ErrObjectLimit)
	r.EndFrame()
}

func TestBeginFrame_BackendFailure(t *testing.T) {
	r, backend := newTestRenderer(t)
	backend.failBeginFrame = true

	assert.Error(t, r.BeginFrame(params.NewStore()))
	assert.False(t, r.inFrame)
	r.EndFrame()
	assert.Equal(t, 0, backend.ends)
}

func TestResize_IgnoresZero(t *testing.T) {
	r, backend := newTestRenderer(t)

	r.Resize(0, 0)
	assert.Equal(t, 800, backend.width)
	r.Resize(1024, 768)
	assert.Equal(t, 1024, backend.width)
	assert.Equal(t, 768, backend.height)
}

func TestRelease(t *testing.T) {
	r, backend := newTestRenderer(t)
	_, err := r.CreateTexture(rgbTexture("stone"), common.RepeatLinearSampler())
	require.NoError(t, err)
	m, err := mesh.NewProvider().Build(mesh.KindPrism)
	require.NoError(t, err)
	require.NoError(t, r.UploadMesh(m))

	r.Release()

	assert.True(t, backend.released)
	assert.Empty(t, r.textures)
	assert.Empty(t, r.meshes)
}
