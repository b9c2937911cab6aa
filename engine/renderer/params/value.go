package params

import "github.com/go-gl/mathgl/mgl32"

// Kind is the data type carried by a Value.
type Kind uint8

const (
	KindNone Kind = iota
	KindMat4
	KindVec2
	KindVec3
	KindVec4
	KindFloat
	KindInt
	KindBool
)

var kindNames = [...]string{
	KindNone:  "none",
	KindMat4:  "mat4",
	KindVec2:  "vec2",
	KindVec3:  "vec3",
	KindVec4:  "vec4",
	KindFloat: "float",
	KindInt:   "int",
	KindBool:  "bool",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is a single typed parameter value. Vector and scalar kinds occupy the leading
// components of the matrix storage.
type Value struct {
	kind Kind
	data mgl32.Mat4
	i    int32
	b    bool
}

// Kind returns the data type of the value, KindNone for an unset value.
func (v Value) Kind() Kind { return v.kind }

func Mat4Value(m mgl32.Mat4) Value { return Value{kind: KindMat4, data: m} }

func Vec2Value(x mgl32.Vec2) Value {
	v := Value{kind: KindVec2}
	copy(v.data[:2], x[:])
	return v
}

func Vec3Value(x mgl32.Vec3) Value {
	v := Value{kind: KindVec3}
	copy(v.data[:3], x[:])
	return v
}

func Vec4Value(x mgl32.Vec4) Value {
	v := Value{kind: KindVec4}
	copy(v.data[:4], x[:])
	return v
}

func FloatValue(f float32) Value {
	v := Value{kind: KindFloat}
	v.data[0] = f
	return v
}

func IntValue(i int32) Value { return Value{kind: KindInt, i: i} }

func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

func (v Value) Mat4() (mgl32.Mat4, bool) {
	if v.kind != KindMat4 {
		return mgl32.Mat4{}, false
	}
	return v.data, true
}

func (v Value) Vec2() (mgl32.Vec2, bool) {
	if v.kind != KindVec2 {
		return mgl32.Vec2{}, false
	}
	return mgl32.Vec2{v.data[0], v.data[1]}, true
}

func (v Value) Vec3() (mgl32.Vec3, bool) {
	if v.kind != KindVec3 {
		return mgl32.Vec3{}, false
	}
	return mgl32.Vec3{v.data[0], v.data[1], v.data[2]}, true
}

func (v Value) Vec4() (mgl32.Vec4, bool) {
	if v.kind != KindVec4 {
		return mgl32.Vec4{}, false
	}
	return mgl32.Vec4{v.data[0], v.data[1], v.data[2], v.data[3]}, true
}

func (v Value) Float() (float32, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.data[0], true
}

func (v Value) Int() (int32, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}
