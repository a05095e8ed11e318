package common

import (
	"math"
	"unsafe"
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

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Clamp constrains v to the inclusive range [lo, hi].
//
// Parameters:
//   - v: value to constrain
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: v limited to [lo, hi]
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates between a and b by t. t is not clamped.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Smoothstep performs the GLSL/WGSL smoothstep interpolation between edge0 and
// edge1 using the Hermite polynomial 3t^2 - 2t^3, with the factor clamped to
// [0, 1]. When edge0 == edge1 the transition degenerates to a hard threshold
// at that edge, matching GPU behavior for a zero-width transition.
//
// Parameters:
//   - edge0: lower edge of the transition
//   - edge1: upper edge of the transition
//   - x: input value
//
// Returns:
//   - float32: interpolation factor in [0, 1]
func Smoothstep(edge0, edge1, x float32) float32 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// IsFinite reports whether v is neither NaN nor an infinity.
//
// Parameters:
//   - v: value to test
//
// Returns:
//   - bool: true if v is a finite number
func IsFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
