package params

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ObjectUniformsSize is the byte size of the per-draw uniform block (WGSL uniform layout).
const ObjectUniformsSize = 144

// LightUniformsSize is the byte size of one light in the frame uniform block.
const LightUniformsSize = 64

// FrameUniformsSize is the byte size of the per-frame uniform block.
const FrameUniformsSize = 144 + MaxLights*LightUniformsSize

// ObjectUniforms is the GPU-aligned per-draw parameter block.
// Matches the WGSL ObjectUniforms struct layout exactly (144 bytes).
type ObjectUniforms struct {
	Model           mgl32.Mat4 // offset   0
	ObjectColor     mgl32.Vec4 // offset  64
	UVScale         mgl32.Vec2 // offset  80
	UseTexture      uint32     // offset  88: 1 = sample objectTexture, 0 = flat objectColor
	TextureSlot     int32      // offset  92: texture unit index
	AmbientColor    mgl32.Vec3 // offset  96
	AmbientStrength float32    // offset 108
	DiffuseColor    mgl32.Vec3 // offset 112
	Shininess       float32    // offset 124
	SpecularColor   mgl32.Vec3 // offset 128
	_pad            float32    // offset 140
}

// Size returns the size of the ObjectUniforms block in bytes.
//
// Returns:
//   - int: the block size in bytes (144)
func (o *ObjectUniforms) Size() int {
	return ObjectUniformsSize
}

// Marshal serializes the ObjectUniforms struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 144-byte buffer ready for GPU upload
func (o *ObjectUniforms) Marshal() []byte {
	buf := make([]byte, ObjectUniformsSize)
	putFloats(buf[0:64], o.Model[:])
	putFloats(buf[64:80], o.ObjectColor[:])
	putFloats(buf[80:88], o.UVScale[:])
	binary.LittleEndian.PutUint32(buf[88:92], o.UseTexture)
	binary.LittleEndian.PutUint32(buf[92:96], uint32(o.TextureSlot))
	putFloats(buf[96:108], o.AmbientColor[:])
	binary.LittleEndian.PutUint32(buf[108:112], math.Float32bits(o.AmbientStrength))
	putFloats(buf[112:124], o.DiffuseColor[:])
	binary.LittleEndian.PutUint32(buf[124:128], math.Float32bits(o.Shininess))
	putFloats(buf[128:140], o.SpecularColor[:])
	return buf
}

// LightUniforms is the GPU-aligned representation of one Phong light source.
// Matches the WGSL Light struct layout exactly (64 bytes).
type LightUniforms struct {
	Position          mgl32.Vec3 // offset  0
	FocalStrength     float32    // offset 12: specular exponent
	AmbientColor      mgl32.Vec3 // offset 16
	SpecularIntensity float32    // offset 28
	DiffuseColor      mgl32.Vec3 // offset 32
	_pad0             float32    // offset 44
	SpecularColor     mgl32.Vec3 // offset 48
	_pad1             float32    // offset 60
}

// Marshal serializes the LightUniforms struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (l *LightUniforms) Marshal() []byte {
	buf := make([]byte, LightUniformsSize)
	l.marshalInto(buf)
	return buf
}

func (l *LightUniforms) marshalInto(buf []byte) {
	putFloats(buf[0:12], l.Position[:])
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(l.FocalStrength))
	putFloats(buf[16:28], l.AmbientColor[:])
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(l.SpecularIntensity))
	putFloats(buf[32:44], l.DiffuseColor[:])
	putFloats(buf[48:60], l.SpecularColor[:])
}

// FrameUniforms is the GPU-aligned per-frame parameter block: camera matrices, the lighting
// switch and every light slot. Matches the WGSL FrameUniforms struct layout exactly (400 bytes).
type FrameUniforms struct {
	View         mgl32.Mat4               // offset   0
	Projection   mgl32.Mat4               // offset  64
	ViewPosition mgl32.Vec3               // offset 128
	UseLighting  uint32                   // offset 140
	Lights       [MaxLights]LightUniforms // offset 144
}

// Size returns the size of the FrameUniforms block in bytes.
//
// Returns:
//   - int: the block size in bytes (400)
func (f *FrameUniforms) Size() int {
	return FrameUniformsSize
}

// Marshal serializes the FrameUniforms struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 400-byte buffer ready for GPU upload
func (f *FrameUniforms) Marshal() []byte {
	buf := make([]byte, FrameUniformsSize)
	putFloats(buf[0:64], f.View[:])
	putFloats(buf[64:128], f.Projection[:])
	putFloats(buf[128:140], f.ViewPosition[:])
	binary.LittleEndian.PutUint32(buf[140:144], f.UseLighting)
	for i := range f.Lights {
		offset := 144 + i*LightUniformsSize
		f.Lights[i].marshalInto(buf[offset : offset+LightUniformsSize])
	}
	return buf
}

// PackObject gathers the per-draw parameters from r into an ObjectUniforms block.
// Unset keys take neutral defaults: identity model, opaque white color, unit UV scale.
//
// Parameters:
//   - r: the parameter source
//
// Returns:
//   - ObjectUniforms: the packed block
func PackObject(r Reader) ObjectUniforms {
	o := ObjectUniforms{
		Model:       mgl32.Ident4(),
		ObjectColor: mgl32.Vec4{1, 1, 1, 1},
		UVScale:     mgl32.Vec2{1, 1},
	}
	if m, ok := r.Mat4(KeyModel); ok {
		o.Model = m
	}
	if c, ok := r.Vec4(KeyObjectColor); ok {
		o.ObjectColor = c
	}
	if uv, ok := r.Vec2(KeyUVScale); ok {
		o.UVScale = uv
	}
	if use, _ := r.Bool(KeyUseTexture); use {
		o.UseTexture = 1
	}
	o.TextureSlot, _ = r.Int(KeyObjectTexture)
	o.AmbientColor, _ = r.Vec3(KeyMaterialAmbientColor)
	o.AmbientStrength, _ = r.Float(KeyMaterialAmbientStrength)
	o.DiffuseColor, _ = r.Vec3(KeyMaterialDiffuseColor)
	o.SpecularColor, _ = r.Vec3(KeyMaterialSpecularColor)
	o.Shininess, _ = r.Float(KeyMaterialShininess)
	return o
}

// PackFrame gathers the per-frame parameters from r into a FrameUniforms block.
// Unset camera matrices default to identity; unset light fields are zero, which leaves the slot dark.
//
// Parameters:
//   - r: the parameter source
//
// Returns:
//   - FrameUniforms: the packed block
func PackFrame(r Reader) FrameUniforms {
	f := FrameUniforms{
		View:       mgl32.Ident4(),
		Projection: mgl32.Ident4(),
	}
	if m, ok := r.Mat4(KeyView); ok {
		f.View = m
	}
	if m, ok := r.Mat4(KeyProjection); ok {
		f.Projection = m
	}
	f.ViewPosition, _ = r.Vec3(KeyViewPosition)
	if use, _ := r.Bool(KeyUseLighting); use {
		f.UseLighting = 1
	}
	for i := range f.Lights {
		l := &f.Lights[i]
		l.Position, _ = r.Vec3(LightKey(i, LightPosition))
		l.AmbientColor, _ = r.Vec3(LightKey(i, LightAmbientColor))
		l.DiffuseColor, _ = r.Vec3(LightKey(i, LightDiffuseColor))
		l.SpecularColor, _ = r.Vec3(LightKey(i, LightSpecularColor))
		l.FocalStrength, _ = r.Float(LightKey(i, LightFocalStrength))
		l.SpecularIntensity, _ = r.Float(LightKey(i, LightSpecularIntensity))
	}
	return f
}

func putFloats(buf []byte, values []float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(v))
	}
}
