// Package simd provides a portable SIMD lane abstraction with runtime CPU
// dispatch detection, used by the dense storage backend and kernel family
// to size and walk support-vector rows at lane granularity.
//
// It follows the Highway C++ library's design philosophy: write once, run
// optimally everywhere. Operations fall back to a pure Go scalar
// implementation; the detected dispatch level governs only the row-padding
// stride the dense backend chooses, not which code path executes.
package simd

// maxVecLanes bounds the fixed-size array backing Vec/Mask: the widest
// register this runtime detects is 64 bytes (AVX-512), and the narrowest
// lane type is float32 (4 bytes), so 64/4 = 16 lanes is the most any
// Vec[T] ever needs to hold. Backing Vec/Mask with an inline array rather
// than a heap slice keeps Load/Mul/Sub/FMA/ReduceSum allocation-free.
const maxVecLanes = 16

// Lanes is a constraint for all types that can be stored in SIMD lanes.
type Lanes interface {
	~float32 | ~float64
}

// Vec is a portable vector handle wrapping a fixed-size run of lanes.
//
// Vec instances should not be created directly; use Load or Zero instead.
type Vec[T Lanes] struct {
	data [maxVecLanes]T
	n    int
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return v.n
}

// Mask represents the result of a tail-boundary comparison: bit i is set
// if lane i is within bounds.
//
// Mask instances should not be created directly; use TailMask instead.
type Mask[T Lanes] struct {
	bits [maxVecLanes]bool
	n    int
}

// NumLanes returns the number of lanes in this mask.
func (m Mask[T]) NumLanes() int {
	return m.n
}
