package scene

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-monument/common"
	"github.com/Carmen-Shannon/oxy-monument/engine/light"
	"github.com/Carmen-Shannon/oxy-monument/engine/mesh"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/params"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/texture"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drawn is the parameter snapshot taken at one DrawPrimitive call.
type drawn struct {
	kind       mesh.Kind
	model      mgl32.Mat4
	useTexture bool
	slot       int32
	color      mgl32.Vec4
	uvScale    mgl32.Vec2
	diffuse    mgl32.Vec3
}

type fakeRenderer struct {
	next     common.TextureHandle
	bound    map[int]common.TextureHandle
	released []common.TextureHandle
	meshes   map[mesh.Kind]bool
	draws    []drawn

	uploadErr error
	drawErr   map[mesh.Kind]error
	onDraw    func()
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		bound:   map[int]common.TextureHandle{},
		meshes:  map[mesh.Kind]bool{},
		drawErr: map[mesh.Kind]error{},
	}
}

func (r *fakeRenderer) CreateTexture(common.TextureStagingData, common.SamplerStagingData) (common.TextureHandle, error) {
	r.next++
	return r.next, nil
}

func (r *fakeRenderer) BindTextureUnit(unit int, handle common.TextureHandle) error {
	r.bound[unit] = handle
	return nil
}

func (r *fakeRenderer) ReleaseTexture(handle common.TextureHandle) {
	r.released = append(r.released, handle)
}

func (r *fakeRenderer) UploadMesh(m *mesh.Mesh) error {
	if r.uploadErr != nil && m.Kind == mesh.KindTorus {
		return r.uploadErr
	}
	r.meshes[m.Kind] = true
	return nil
}

func (r *fakeRenderer) ReleaseMesh(kind mesh.Kind) {
	delete(r.meshes, kind)
}

func (r *fakeRenderer) DrawPrimitive(kind mesh.Kind, values params.Reader) error {
	if r.onDraw != nil {
		r.onDraw()
	}
	if err := r.drawErr[kind]; err != nil {
		return err
	}
	if !r.meshes[kind] {
		return fmt.Errorf("mesh %s not uploaded", kind)
	}
	d := drawn{kind: kind}
	d.model, _ = values.Mat4(params.KeyModel)
	d.useTexture, _ = values.Bool(params.KeyUseTexture)
	d.slot, _ = values.Int(params.KeyObjectTexture)
	d.color, _ = values.Vec4(params.KeyObjectColor)
	d.uvScale, _ = values.Vec2(params.KeyUVScale)
	d.diffuse, _ = values.Vec3(params.KeyMaterialDiffuseColor)
	r.draws = append(r.draws, d)
	return nil
}

// recordingStore keeps every write in order on top of a real store.
type recordingStore struct {
	params.Store
	writes []params.Key
}

func newRecordingStore() *recordingStore {
	return &recordingStore{Store: params.NewStore()}
}

func (s *recordingStore) Set(key params.Key, value params.Value) {
	s.writes = append(s.writes, key)
	s.Store.Set(key, value)
}

func (s *recordingStore) SetMat4(key params.Key, m mgl32.Mat4) { s.Set(key, params.Mat4Value(m)) }
func (s *recordingStore) SetVec2(key params.Key, v mgl32.Vec2) { s.Set(key, params.Vec2Value(v)) }
func (s *recordingStore) SetVec3(key params.Key, v mgl32.Vec3) { s.Set(key, params.Vec3Value(v)) }
func (s *recordingStore) SetVec4(key params.Key, v mgl32.Vec4) { s.Set(key, params.Vec4Value(v)) }
func (s *recordingStore) SetFloat(key params.Key, f float32)   { s.Set(key, params.FloatValue(f)) }
func (s *recordingStore) SetInt(key params.Key, i int32)       { s.Set(key, params.IntValue(i)) }
func (s *recordingStore) SetBool(key params.Key, b bool)       { s.Set(key, params.BoolValue(b)) }

// countingProvider counts the shapes built by the wrapped provider.
type countingProvider struct {
	mesh.Provider
	built map[mesh.Kind]int
}

func (p *countingProvider) Build(kind mesh.Kind) (*mesh.Mesh, error) {
	p.built[kind]++
	return p.Provider.Build(kind)
}

type fakeDecoder struct {
	mu      sync.Mutex
	missing map[string]bool
}

func (d *fakeDecoder) Decode(path string) (common.DecodedImage, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.missing[path] {
		return common.DecodedImage{}, fmt.Errorf("open %s: no such file", path)
	}
	return common.DecodedImage{Pixels: make([]byte, 2*2*3), Width: 2, Height: 2, Channels: 3}, nil
}

var (
	stoneColor = mgl32.Vec4{0.871, 0.804, 0.675, 1}
	tiled      = mgl32.Vec2{2, 3}
)

func testObjects() []RenderObject {
	return []RenderObject{
		{
			Name:       "ground",
			Mesh:       mesh.KindPlane,
			Scale:      mgl32.Vec3{20, 1, 10},
			Appearance: Appearance{Color: mgl32.Vec4{1, 1, 1, 1}, Texture: "ground"},
			Material:   "bottomPlane",
			UVScale:    &tiled,
		},
		{
			Name:       "base",
			Mesh:       mesh.KindBox,
			Scale:      mgl32.Vec3{7, 4, 3},
			Position:   mgl32.Vec3{0, 1, 2.5},
			Appearance: Appearance{Color: stoneColor, Texture: "stone"},
			Material:   "box1",
		},
		{
			Name:       "cap",
			Mesh:       mesh.KindPrism,
			Scale:      mgl32.Vec3{1.75, 2, 2.3},
			Rotation:   mgl32.Vec3{-90, 0, 0},
			Position:   mgl32.Vec3{0, 9.3, 2},
			Appearance: Appearance{Color: mgl32.Vec4{0.5, 0.5, 0.5, 1}},
			Material:   "prism",
		},
	}
}

func newTestScene(t *testing.T, decoder *fakeDecoder, options ...SceneBuilderOption) (Scene, *fakeRenderer) {
	t.Helper()
	r := newFakeRenderer()
	if decoder == nil {
		decoder = &fakeDecoder{}
	}
	base := []SceneBuilderOption{
		WithTextureOptions(texture.WithDecoder(decoder)),
		WithTextures(
			texture.Spec{Path: "ground.jpg", Tag: "ground"},
			texture.Spec{Path: "stone.jpg", Tag: "stone"},
		),
		WithMaterials(
			material.New("bottomPlane", material.WithDiffuseColor(mgl32.Vec3{0.3, 0.3, 0.3})),
			material.New("box1", material.WithDiffuseColor(mgl32.Vec3{0.6, 0.5, 0.4})),
			material.New("prism", material.WithDiffuseColor(mgl32.Vec3{0.8, 0.7, 0.5})),
		),
		WithLights(light.NewLight(light.WithPosition(10, 14, 5))),
		WithObjects(testObjects()...),
	}
	return NewScene("test", r, append(base, options...)...), r
}

func TestNewSceneRequiresRenderer(t *testing.T) {
	assert.Panics(t, func() { NewScene("broken", nil) })
}

func TestRenderFrameBeforePrepare(t *testing.T) {
	s, r := newTestScene(t, nil)

	assert.Equal(t, StateUnprepared, s.State())
	assert.ErrorIs(t, s.RenderFrame(), ErrNotPrepared)
	assert.Empty(t, r.draws)
}

func TestPrepare(t *testing.T) {
	s, r := newTestScene(t, nil)

	require.NoError(t, s.Prepare())
	assert.Equal(t, StateReady, s.State())

	assert.Equal(t, 2, s.Textures().Len())
	assert.Equal(t, map[int]common.TextureHandle{0: 1, 1: 2}, r.bound)
	assert.Equal(t, 3, s.Materials().Len())
	for _, kind := range mesh.Kinds {
		assert.True(t, r.meshes[kind], kind.String())
	}

	lit, ok := s.Params().Bool(params.KeyUseLighting)
	require.True(t, ok)
	assert.True(t, lit)
	pos, ok := s.Params().Vec3(params.LightKey(0, params.LightPosition))
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{10, 14, 5}, pos)

	assert.ErrorIs(t, s.Prepare(), ErrAlreadyPrepared)
}

func TestRenderFrameBindsEachObjectInOrder(t *testing.T) {
	s, r := newTestScene(t, nil)
	require.NoError(t, s.Prepare())

	require.NoError(t, s.RenderFrame())
	require.Len(t, r.draws, 3)

	ground, base, prism := r.draws[0], r.draws[1], r.draws[2]
	assert.Equal(t, mesh.KindPlane, ground.kind)
	assert.Equal(t, mesh.KindBox, base.kind)
	assert.Equal(t, mesh.KindPrism, prism.kind)

	assert.True(t, ground.useTexture)
	assert.Equal(t, int32(0), ground.slot)
	assert.Equal(t, tiled, ground.uvScale)
	assert.Equal(t, mgl32.Vec3{0.3, 0.3, 0.3}, ground.diffuse)

	assert.True(t, base.useTexture)
	assert.Equal(t, int32(1), base.slot)
	assert.Equal(t, mgl32.Vec2{1, 1}, base.uvScale)
	assert.Equal(t, common.BuildModelMatrix(mgl32.Vec3{7, 4, 3}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 2.5}), base.model)

	assert.False(t, prism.useTexture)
	assert.Equal(t, mgl32.Vec4{0.5, 0.5, 0.5, 1}, prism.color)
	assert.Equal(t, mgl32.Vec3{0.8, 0.7, 0.5}, prism.diffuse)

	// a second frame draws the same sequence again
	require.NoError(t, s.RenderFrame())
	assert.Len(t, r.draws, 6)
	assert.Equal(t, r.draws[:3], r.draws[3:])
}

func TestMissingTextureFallsBackToColor(t *testing.T) {
	decoder := &fakeDecoder{missing: map[string]bool{"stone.jpg": true}}
	s, r := newTestScene(t, decoder)

	require.NoError(t, s.Prepare())
	assert.Equal(t, 1, s.Textures().Len())

	assert.Equal(t, map[int]common.TextureHandle{0: 1}, r.bound)

	require.NoError(t, s.RenderFrame())
	assert.True(t, r.draws[0].useTexture)
	assert.Equal(t, int32(0), r.draws[0].slot)
	base := r.draws[1]
	assert.False(t, base.useTexture)
	assert.Equal(t, stoneColor, base.color)
}

func TestRenderFrameWritesEachObjectOnce(t *testing.T) {
	store := newRecordingStore()
	hedge := RenderObject{
		Name:       "hedge",
		Mesh:       mesh.KindTaperedCylinder,
		Appearance: Appearance{Color: mgl32.Vec4{0.243, 0.651, 0.286, 1}, Texture: "bush"},
		Material:   "box1",
	}
	s, r := newTestScene(t, nil, WithParams(store), WithObjects(hedge))
	s.(*scene).objects[2].Material = "undefined"
	require.NoError(t, s.Prepare())
	assert.Same(t, store, s.Params())

	var perDraw [][]params.Key
	store.writes = nil
	r.onDraw = func() {
		perDraw = append(perDraw, store.writes)
		store.writes = nil
	}
	require.NoError(t, s.RenderFrame())

	materialKeys := []params.Key{
		params.KeyMaterialAmbientColor,
		params.KeyMaterialAmbientStrength,
		params.KeyMaterialDiffuseColor,
		params.KeyMaterialSpecularColor,
		params.KeyMaterialShininess,
	}
	textured := append([]params.Key{params.KeyModel, params.KeyUseTexture, params.KeyObjectTexture, params.KeyUVScale}, materialKeys...)
	colored := []params.Key{params.KeyModel, params.KeyUseTexture, params.KeyObjectColor, params.KeyUVScale}

	require.Len(t, perDraw, 4)
	assert.Equal(t, textured, perDraw[0], "ground")
	assert.Equal(t, textured, perDraw[1], "base")
	assert.Equal(t, colored, perDraw[2], "cap with unknown material")
	assert.Equal(t, append(colored, materialKeys...), perDraw[3], "hedge with missing texture")
	assert.Empty(t, store.writes)

	hedgeDraw := r.draws[3]
	assert.False(t, hedgeDraw.useTexture)
	assert.Equal(t, hedge.Appearance.Color, hedgeDraw.color)
}

func TestMeshProviderBuildsEachShapeOnce(t *testing.T) {
	p := &countingProvider{Provider: mesh.NewProvider(mesh.WithTorusSegments(8, 4)), built: map[mesh.Kind]int{}}
	s, r := newTestScene(t, nil, WithMeshProvider(p))

	require.NoError(t, s.Prepare())
	for _, kind := range mesh.Kinds {
		assert.Equal(t, 1, p.built[kind], kind.String())
		assert.True(t, r.meshes[kind], kind.String())
	}
}

func TestStrictTexturesFailPrepare(t *testing.T) {
	decoder := &fakeDecoder{missing: map[string]bool{"stone.jpg": true}}
	s, r := newTestScene(t, decoder, WithStrictTextures(true))

	err := s.Prepare()
	assert.ErrorIs(t, err, texture.ErrDecodeFailure)
	assert.Equal(t, StateUnprepared, s.State())
	assert.Equal(t, 0, s.Textures().Len())
	assert.Equal(t, []common.TextureHandle{1}, r.released)
	assert.Empty(t, r.meshes)
}

func TestMeshFailureFailsPrepare(t *testing.T) {
	s, r := newTestScene(t, nil)
	r.uploadErr = errors.New("out of memory")

	err := s.Prepare()
	assert.ErrorIs(t, err, r.uploadErr)
	assert.Equal(t, StateUnprepared, s.State())
	assert.Empty(t, r.meshes)
	assert.Equal(t, 0, s.Textures().Len())
	assert.ErrorIs(t, s.RenderFrame(), ErrNotPrepared)
}

func TestTooManyLightsFailPrepare(t *testing.T) {
	lights := make([]light.Light, params.MaxLights)
	for i := range lights {
		lights[i] = light.NewLight()
	}
	s, _ := newTestScene(t, nil, WithLights(lights...))

	assert.Error(t, s.Prepare())
	assert.Equal(t, StateUnprepared, s.State())
}

func TestDrawFailureContinuesWithRemainingObjects(t *testing.T) {
	s, r := newTestScene(t, nil)
	require.NoError(t, s.Prepare())
	drawErr := errors.New("object limit")
	r.drawErr[mesh.KindBox] = drawErr

	err := s.RenderFrame()
	assert.ErrorIs(t, err, drawErr)
	require.Len(t, r.draws, 2)
	assert.Equal(t, mesh.KindPrism, r.draws[1].kind)
}

func TestUnknownMaterialKeepsPreviousValues(t *testing.T) {
	objects := testObjects()
	objects[2].Material = "undefined"
	s, r := newTestScene(t, nil)
	s.(*scene).objects = objects
	require.NoError(t, s.Prepare())

	require.NoError(t, s.RenderFrame())
	assert.Equal(t, r.draws[1].diffuse, r.draws[2].diffuse)
}

func TestTeardown(t *testing.T) {
	s, r := newTestScene(t, nil)
	require.NoError(t, s.Prepare())

	s.Teardown()
	s.Teardown()

	assert.Equal(t, StateUnprepared, s.State())
	assert.ElementsMatch(t, []common.TextureHandle{1, 2}, r.released)
	assert.Empty(t, r.meshes)
	assert.Equal(t, 0, s.Textures().Len())
	assert.Equal(t, 0, s.Materials().Len())
	assert.ErrorIs(t, s.RenderFrame(), ErrNotPrepared)

	// the scene can be prepared again after teardown
	require.NoError(t, s.Prepare())
	assert.Equal(t, 3, s.Materials().Len())
	assert.Equal(t, 2, s.Textures().Len())
}

func TestSetLighting(t *testing.T) {
	s, _ := newTestScene(t, nil, WithLighting(false))
	require.NoError(t, s.Prepare())

	lit, _ := s.Params().Bool(params.KeyUseLighting)
	assert.False(t, lit)

	s.SetLighting(true)
	lit, _ = s.Params().Bool(params.KeyUseLighting)
	assert.True(t, lit)
	assert.True(t, s.LightingEnabled())
}

func TestAccessorsReturnCopies(t *testing.T) {
	s, _ := newTestScene(t, nil)

	objects := s.Objects()
	objects[0].Name = "changed"
	assert.Equal(t, "ground", s.Objects()[0].Name)
	assert.Len(t, s.Lights(), 1)
	assert.Equal(t, "test", s.Name())
}
