package params

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatAt(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset : offset+4]))
}

func TestKeyNames(t *testing.T) {
	cases := map[Key]string{
		KeyModel:                   "model",
		KeyObjectColor:             "objectColor",
		KeyObjectTexture:           "objectTexture",
		KeyUseTexture:              "bUseTexture",
		KeyUseLighting:             "bUseLighting",
		KeyUVScale:                 "UVscale",
		KeyMaterialAmbientStrength: "material.ambientStrength",
		KeyMaterialShininess:       "material.shininess",

		LightKey(0, LightPosition):          "lightSources[0].position",
		LightKey(3, LightSpecularIntensity): "lightSources[3].specularIntensity",
		LightKey(2, LightFocalStrength):     "lightSources[2].focalStrength",
	}
	for key, name := range cases {
		assert.Equal(t, name, key.String())
	}
	assert.Equal(t, "Key(-1)", Key(-1).String())
}

func TestLightKeysAreDistinct(t *testing.T) {
	seen := map[Key]bool{}
	for i := 0; i < MaxLights; i++ {
		for f := LightPosition; f < lightFieldCount; f++ {
			key := LightKey(i, f)
			require.True(t, key.Valid())
			require.False(t, seen[key], key.String())
			seen[key] = true

			index, field, ok := key.Light()
			require.True(t, ok)
			assert.Equal(t, i, index)
			assert.Equal(t, f, field)
		}
	}
	assert.Len(t, seen, KeyCount-int(keyLightBase))

	_, _, ok := KeyModel.Light()
	assert.False(t, ok)
}

func TestLightKeyOutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { LightKey(MaxLights, LightPosition) })
	assert.Panics(t, func() { LightKey(-1, LightPosition) })
	assert.Panics(t, func() { LightKey(0, lightFieldCount) })
}

func TestStoreLastWriteWins(t *testing.T) {
	s := NewStore()
	s.SetVec4(KeyObjectColor, mgl32.Vec4{1, 0, 0, 1})
	s.SetVec4(KeyObjectColor, mgl32.Vec4{0, 1, 0, 1})

	c, ok := s.Vec4(KeyObjectColor)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec4{0, 1, 0, 1}, c)
	assert.Equal(t, 1, s.Len())
}

func TestStoreTypedGetters(t *testing.T) {
	s := NewStore()
	s.SetBool(KeyUseTexture, true)
	s.SetInt(KeyObjectTexture, 3)
	s.SetFloat(KeyMaterialShininess, 0.5)
	s.SetVec2(KeyUVScale, mgl32.Vec2{2, 3})
	s.SetVec3(KeyViewPosition, mgl32.Vec3{1, 2, 3})
	s.SetMat4(KeyModel, mgl32.Translate3D(1, 2, 3))

	b, ok := s.Bool(KeyUseTexture)
	assert.True(t, ok)
	assert.True(t, b)

	i, ok := s.Int(KeyObjectTexture)
	assert.True(t, ok)
	assert.Equal(t, int32(3), i)

	f, ok := s.Float(KeyMaterialShininess)
	assert.True(t, ok)
	assert.Equal(t, float32(0.5), f)

	uv, ok := s.Vec2(KeyUVScale)
	assert.True(t, ok)
	assert.Equal(t, mgl32.Vec2{2, 3}, uv)

	pos, ok := s.Vec3(KeyViewPosition)
	assert.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, pos)

	m, ok := s.Mat4(KeyModel)
	assert.True(t, ok)
	assert.Equal(t, mgl32.Translate3D(1, 2, 3), m)

	// wrong kind
	_, ok = s.Float(KeyUseTexture)
	assert.False(t, ok)
	// unset
	_, ok = s.Vec4(KeyObjectColor)
	assert.False(t, ok)
	// outside the closed set
	s.SetFloat(Key(KeyCount), 1)
	_, ok = s.Get(Key(KeyCount))
	assert.False(t, ok)

	assert.Equal(t, 6, s.Len())
	s.Reset()
	assert.Equal(t, 0, s.Len())
}

func TestPackObjectDefaults(t *testing.T) {
	o := PackObject(NewStore())
	assert.Equal(t, mgl32.Ident4(), o.Model)
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, o.ObjectColor)
	assert.Equal(t, mgl32.Vec2{1, 1}, o.UVScale)
	assert.Equal(t, uint32(0), o.UseTexture)
}

func TestPackObjectMarshalLayout(t *testing.T) {
	s := NewStore()
	s.SetMat4(KeyModel, mgl32.Translate3D(5, 6, 7))
	s.SetVec4(KeyObjectColor, mgl32.Vec4{0.1, 0.2, 0.3, 0.4})
	s.SetVec2(KeyUVScale, mgl32.Vec2{2, 4})
	s.SetBool(KeyUseTexture, true)
	s.SetInt(KeyObjectTexture, 2)
	s.SetVec3(KeyMaterialAmbientColor, mgl32.Vec3{0.1, 0.1, 0.1})
	s.SetFloat(KeyMaterialAmbientStrength, 0.25)
	s.SetVec3(KeyMaterialDiffuseColor, mgl32.Vec3{0.6, 0.5, 0.4})
	s.SetFloat(KeyMaterialShininess, 0.7)
	s.SetVec3(KeyMaterialSpecularColor, mgl32.Vec3{0.2, 0.3, 0.4})

	o := PackObject(s)
	buf := o.Marshal()
	require.Len(t, buf, o.Size())

	assert.Equal(t, float32(5), floatAt(buf, 48))
	assert.Equal(t, float32(7), floatAt(buf, 56))
	assert.Equal(t, float32(0.4), floatAt(buf, 76))
	assert.Equal(t, float32(4), floatAt(buf, 84))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[88:92]))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(buf[92:96]))
	assert.Equal(t, float32(0.25), floatAt(buf, 108))
	assert.Equal(t, float32(0.6), floatAt(buf, 112))
	assert.Equal(t, float32(0.7), floatAt(buf, 124))
	assert.Equal(t, float32(0.4), floatAt(buf, 136))
}

func TestPackFrameMarshalLayout(t *testing.T) {
	s := NewStore()
	s.SetVec3(KeyViewPosition, mgl32.Vec3{0, 5, 12})
	s.SetBool(KeyUseLighting, true)
	s.SetVec3(LightKey(0, LightPosition), mgl32.Vec3{10, 14, 5})
	s.SetFloat(LightKey(0, LightFocalStrength), 64)
	s.SetFloat(LightKey(0, LightSpecularIntensity), 0.8)
	s.SetVec3(LightKey(3, LightSpecularColor), mgl32.Vec3{0.5, 0.5, 0.5})

	f := PackFrame(s)
	buf := f.Marshal()
	require.Len(t, buf, f.Size())
	require.Equal(t, 400, len(buf))

	assert.Equal(t, float32(1), floatAt(buf, 0))
	assert.Equal(t, float32(12), floatAt(buf, 136))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[140:144]))
	assert.Equal(t, float32(10), floatAt(buf, 144))
	assert.Equal(t, float32(64), floatAt(buf, 156))
	assert.Equal(t, float32(0.8), floatAt(buf, 172))
	assert.Equal(t, float32(0.5), floatAt(buf, 144+3*64+48))
}
