package params

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Writer is the write side of a parameter store. The binder and the lights only ever write.
type Writer interface {
	// Set stores a value under key. Last write wins; writes to keys outside the closed set are ignored.
	//
	// Parameters:
	//   - key: the parameter key
	//   - value: the typed value
	Set(key Key, value Value)

	// SetMat4 stores a 4x4 matrix under key.
	SetMat4(key Key, m mgl32.Mat4)

	// SetVec2 stores a 2-component vector under key.
	SetVec2(key Key, v mgl32.Vec2)

	// SetVec3 stores a 3-component vector under key.
	SetVec3(key Key, v mgl32.Vec3)

	// SetVec4 stores a 4-component vector under key.
	SetVec4(key Key, v mgl32.Vec4)

	// SetFloat stores a scalar under key.
	SetFloat(key Key, f float32)

	// SetInt stores an integer under key.
	SetInt(key Key, i int32)

	// SetBool stores a flag under key.
	SetBool(key Key, b bool)
}

// Reader is the read side of a parameter store. Typed getters return false when the key is unset
// or holds a value of a different kind.
type Reader interface {
	// Get returns the raw value stored under key.
	//
	// Parameters:
	//   - key: the parameter key
	//
	// Returns:
	//   - Value: the stored value
	//   - bool: true if a value has been written under key
	Get(key Key) (Value, bool)

	Mat4(key Key) (mgl32.Mat4, bool)
	Vec2(key Key) (mgl32.Vec2, bool)
	Vec3(key Key) (mgl32.Vec3, bool)
	Vec4(key Key) (mgl32.Vec4, bool)
	Float(key Key) (float32, bool)
	Int(key Key) (int32, bool)
	Bool(key Key) (bool, bool)
}

// Store is the shader parameter store: a keyed, typed set of values consumed by the renderer at draw time.
type Store interface {
	Writer
	Reader

	// Len returns the number of keys that currently hold a value.
	Len() int

	// Reset clears every stored value.
	Reset()
}

type store struct {
	values [KeyCount]Value
}

var _ Store = &store{}

// NewStore creates an empty parameter store.
//
// Returns:
//   - Store: the store
func NewStore() Store {
	return &store{}
}

func (s *store) Set(key Key, value Value) {
	if !key.Valid() {
		return
	}
	s.values[key] = value
}

func (s *store) SetMat4(key Key, m mgl32.Mat4) { s.Set(key, Mat4Value(m)) }
func (s *store) SetVec2(key Key, v mgl32.Vec2) { s.Set(key, Vec2Value(v)) }
func (s *store) SetVec3(key Key, v mgl32.Vec3) { s.Set(key, Vec3Value(v)) }
func (s *store) SetVec4(key Key, v mgl32.Vec4) { s.Set(key, Vec4Value(v)) }
func (s *store) SetFloat(key Key, f float32)   { s.Set(key, FloatValue(f)) }
func (s *store) SetInt(key Key, i int32)       { s.Set(key, IntValue(i)) }
func (s *store) SetBool(key Key, b bool)       { s.Set(key, BoolValue(b)) }

func (s *store) Get(key Key) (Value, bool) {
	if !key.Valid() {
		return Value{}, false
	}
	v := s.values[key]
	return v, v.kind != KindNone
}

func (s *store) Mat4(key Key) (mgl32.Mat4, bool) {
	v, _ := s.Get(key)
	return v.Mat4()
}

func (s *store) Vec2(key Key) (mgl32.Vec2, bool) {
	v, _ := s.Get(key)
	return v.Vec2()
}

func (s *store) Vec3(key Key) (mgl32.Vec3, bool) {
	v, _ := s.Get(key)
	return v.Vec3()
}

func (s *store) Vec4(key Key) (mgl32.Vec4, bool) {
	v, _ := s.Get(key)
	return v.Vec4()
}

func (s *store) Float(key Key) (float32, bool) {
	v, _ := s.Get(key)
	return v.Float()
}

func (s *store) Int(key Key) (int32, bool) {
	v, _ := s.Get(key)
	return v.Int()
}

func (s *store) Bool(key Key) (bool, bool) {
	v, _ := s.Get(key)
	return v.Bool()
}

func (s *store) Len() int {
	n := 0
	for _, v := range s.values {
		if v.kind != KindNone {
			n++
		}
	}
	return n
}

func (s *store) Reset() {
	s.values = [KeyCount]Value{}
}
