package binder

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-monument/common"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/params"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/texture"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

type slotMap map[string]int

func (m slotMap) Slot(tag string) (int, bool) {
	slot, ok := m[tag]
	if !ok {
		return texture.NotFound, false
	}
	return slot, true
}

func newTestBinder(t *testing.T) (Binder, *recordingStore, material.Registry) {
	t.Helper()
	store := newRecordingStore()
	materials := material.NewRegistry()
	materials.Define(material.New("box1",
		material.WithAmbient(mgl32.Vec3{0.1, 0.1, 0.1}, 0.1),
		material.WithDiffuseColor(mgl32.Vec3{0.6, 0.5, 0.4}),
		material.WithSpecularColor(mgl32.Vec3{0.2, 0.3, 0.4}),
		material.WithShininess(0.5),
	))
	return NewBinder(store, slotMap{"stone": 0, "bush": 1, "sky": 3}, materials), store, materials
}

func TestSetTransformWritesModel(t *testing.T) {
	b, store, _ := newTestBinder(t)
	scale, rot, pos := mgl32.Vec3{7, 4, 3}, mgl32.Vec3{90, 0, 0}, mgl32.Vec3{0, 1, 2.5}

	b.SetTransform(scale, rot, pos)

	m, ok := store.Mat4(params.KeyModel)
	require.True(t, ok)
	assert.Equal(t, common.BuildModelMatrix(scale, rot, pos), m)
	assert.Equal(t, []params.Key{params.KeyModel}, store.writes)
}

func TestSetColorDisablesTexture(t *testing.T) {
	b, store, _ := newTestBinder(t)
	require.NoError(t, b.SetTexture("stone"))

	b.SetColor(0.243, 0.651, 0.286, 1)

	use, _ := store.Bool(params.KeyUseTexture)
	assert.False(t, use)
	c, ok := store.Vec4(params.KeyObjectColor)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec4{0.243, 0.651, 0.286, 1}, c)
}

func TestSetTextureFound(t *testing.T) {
	b, store, _ := newTestBinder(t)

	require.NoError(t, b.SetTexture("sky"))

	use, _ := store.Bool(params.KeyUseTexture)
	assert.True(t, use)
	slot, ok := store.Int(params.KeyObjectTexture)
	require.True(t, ok)
	assert.Equal(t, int32(3), slot)
}

func TestSetTextureNotFound(t *testing.T) {
	b, store, _ := newTestBinder(t)
	require.NoError(t, b.SetTexture("bush"))
	store.writes = nil

	err := b.SetTexture("marble")
	assert.ErrorIs(t, err, texture.ErrTagNotFound)

	use, _ := store.Bool(params.KeyUseTexture)
	assert.False(t, use)
	assert.Equal(t, []params.Key{params.KeyUseTexture}, store.writes)
	slot, _ := store.Int(params.KeyObjectTexture)
	assert.Equal(t, int32(1), slot)

	// a second miss still reports the error
	assert.ErrorIs(t, b.SetTexture("marble"), texture.ErrTagNotFound)
}

func TestSetAppearance(t *testing.T) {
	hedge := mgl32.Vec4{0.243, 0.651, 0.286, 1}

	t.Run("registered texture", func(t *testing.T) {
		b, store, _ := newTestBinder(t)
		assert.True(t, b.SetAppearance("bush", hedge))
		assert.Equal(t, []params.Key{params.KeyUseTexture, params.KeyObjectTexture}, store.writes)
		slot, _ := store.Int(params.KeyObjectTexture)
		assert.Equal(t, int32(1), slot)
	})

	t.Run("missing texture falls back once", func(t *testing.T) {
		b, store, _ := newTestBinder(t)
		assert.False(t, b.SetAppearance("marble", hedge))
		assert.Equal(t, []params.Key{params.KeyUseTexture, params.KeyObjectColor}, store.writes)
		use, _ := store.Bool(params.KeyUseTexture)
		assert.False(t, use)
		c, _ := store.Vec4(params.KeyObjectColor)
		assert.Equal(t, hedge, c)
	})

	t.Run("no texture", func(t *testing.T) {
		b, store, _ := newTestBinder(t)
		assert.False(t, b.SetAppearance("", hedge))
		assert.Equal(t, []params.Key{params.KeyUseTexture, params.KeyObjectColor}, store.writes)
	})
}

func TestSetUVScale(t *testing.T) {
	b, store, _ := newTestBinder(t)
	b.SetUVScale(2, 0.5)

	uv, ok := store.Vec2(params.KeyUVScale)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec2{2, 0.5}, uv)
}

func TestSetMaterialFoundWritesFiveKeys(t *testing.T) {
	b, store, _ := newTestBinder(t)

	assert.True(t, b.SetMaterial("box1"))
	assert.ElementsMatch(t, []params.Key{
		params.KeyMaterialAmbientColor,
		params.KeyMaterialAmbientStrength,
		params.KeyMaterialDiffuseColor,
		params.KeyMaterialSpecularColor,
		params.KeyMaterialShininess,
	}, store.writes)

	shininess, _ := store.Float(params.KeyMaterialShininess)
	assert.Equal(t, float32(0.5), shininess)
	diffuse, _ := store.Vec3(params.KeyMaterialDiffuseColor)
	assert.Equal(t, mgl32.Vec3{0.6, 0.5, 0.4}, diffuse)
}

func TestSetMaterialNotFoundKeepsStaleValues(t *testing.T) {
	b, store, _ := newTestBinder(t)
	require.True(t, b.SetMaterial("box1"))
	store.writes = nil

	assert.False(t, b.SetMaterial("granite"))
	assert.Empty(t, store.writes)

	shininess, ok := store.Float(params.KeyMaterialShininess)
	assert.True(t, ok)
	assert.Equal(t, float32(0.5), shininess)
}

func TestSetLighting(t *testing.T) {
	b, store, _ := newTestBinder(t)
	b.SetLighting(true)

	on, ok := store.Bool(params.KeyUseLighting)
	assert.True(t, ok)
	assert.True(t, on)
}

func TestNewBinderRequiresCollaborators(t *testing.T) {
	assert.Panics(t, func() { NewBinder(nil, slotMap{}, material.NewRegistry()) })
}
