package common

import (
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// BuildModelMatrix composes a model matrix from scale, Euler rotation in degrees, and position.
// The composition is Translate * RotX * RotY * RotZ * Scale, so a vertex is scaled first, then
// rotated about Z, then Y, then X, then translated. The result is column-major.
//
// Parameters:
//   - scale: scale factors along each axis
//   - rotationDegrees: rotation angles in degrees around X, Y and Z
//   - position: translation in world space
//
// Returns:
//   - mgl32.Mat4: the model matrix
func BuildModelMatrix(scale, rotationDegrees, position mgl32.Vec3) mgl32.Mat4 {
	translation := mgl32.Translate3D(position.X(), position.Y(), position.Z())
	rotX := mgl32.HomogRotate3DX(mgl32.DegToRad(rotationDegrees.X()))
	rotY := mgl32.HomogRotate3DY(mgl32.DegToRad(rotationDegrees.Y()))
	rotZ := mgl32.HomogRotate3DZ(mgl32.DegToRad(rotationDegrees.Z()))
	scaling := mgl32.Scale3D(scale.X(), scale.Y(), scale.Z())

	return translation.Mul4(rotX).Mul4(rotY).Mul4(rotZ).Mul4(scaling)
}

// Perspective creates a perspective projection matrix for WebGPU clip space, where depth maps to [0, 1].
// mgl32.Perspective targets the OpenGL [-1, 1] depth range, so it cannot be used directly.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / math32.Tan(fovY/2.0)

	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// LookAt creates a right-handed view matrix looking from eye towards center.
//
// Parameters:
//   - eye: the camera position
//   - center: the point being looked at
//   - up: the world up direction
//
// Returns:
//   - mgl32.Mat4: the view matrix
func LookAt(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, center, up)
}
