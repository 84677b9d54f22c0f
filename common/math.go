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
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(unsafe.Sizeof(*v)))
}

// PerspectiveZO builds a right-handed perspective projection that maps view depth
// into the [0, 1] clip range used by WebGPU. mgl32.Perspective targets the OpenGL
// [-1, 1] range and would clip half of the depth buffer.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func PerspectiveZO(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / math32.Tan(fovY/2.0)
	var m mgl32.Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = far / (near - far)
	m[11] = -1.0
	m[14] = (near * far) / (near - far)
	return m
}

// EulerYXZ returns the rotation matrix for Euler angles (radians) applied as
// Y * X * Z. rot[1] is therefore the yaw about the world up axis.
//
// Parameters:
//   - rot: pitch, yaw, roll in radians
//
// Returns:
//   - mgl32.Mat4: the rotation matrix
func EulerYXZ(rot mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3DY(rot[1]).
		Mul4(mgl32.HomogRotate3DX(rot[0])).
		Mul4(mgl32.HomogRotate3DZ(rot[2]))
}

// SmoothingFactor returns the blend weight for frame-rate independent exponential
// smoothing: 1 - exp(-dt/smoothTime). A non-positive smoothTime snaps (returns 1).
//
// Parameters:
//   - dt: elapsed time in seconds
//   - smoothTime: time constant in seconds
//
// Returns:
//   - float32: weight in [0, 1] applied to (target - current)
func SmoothingFactor(dt, smoothTime float32) float32 {
	if smoothTime <= 0 {
		return 1
	}
	return 1 - math32.Exp(-dt/smoothTime)
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
