package simd

import "math"

// This file provides the scalar reference implementations of the handful of
// Highway operations the kernel family needs: load, multiply, subtract,
// fused-multiply-add and horizontal sum. Unlike upstream go-highway there is
// no GOEXPERIMENT=simd-gated AVX2/AVX512/NEON specialisation here — every
// build uses this scalar path, and CurrentLevel only governs dense-row
// padding stride (see dispatch.go). Vec is array-backed (see types.go), so
// none of these allocate.

// Zero returns a vector of MaxLanes[T]() zero-valued lanes.
func Zero[T Lanes]() Vec[T] {
	return Vec[T]{n: MaxLanes[T]()}
}

// Load creates a vector by loading up to MaxLanes[T]() values from src.
func Load[T Lanes](src []T) Vec[T] {
	var v Vec[T]
	v.n = min(len(src), MaxLanes[T]())
	copy(v.data[:v.n], src[:v.n])
	return v
}

// Mul multiplies two vectors lane-wise.
func Mul[T Lanes](a, b Vec[T]) Vec[T] {
	var out Vec[T]
	out.n = min(a.n, b.n)
	for i := 0; i < out.n; i++ {
		out.data[i] = a.data[i] * b.data[i]
	}
	return out
}

// Sub subtracts b from a lane-wise.
func Sub[T Lanes](a, b Vec[T]) Vec[T] {
	var out Vec[T]
	out.n = min(a.n, b.n)
	for i := 0; i < out.n; i++ {
		out.data[i] = a.data[i] - b.data[i]
	}
	return out
}

// FMA performs a fused multiply-add: a*b + c, lane-wise.
func FMA[T Lanes](a, b, c Vec[T]) Vec[T] {
	var out Vec[T]
	out.n = min(a.n, min(b.n, c.n))
	for i := 0; i < out.n; i++ {
		switch av := any(a.data[i]).(type) {
		case float32:
			out.data[i] = any(float32(math.FMA(float64(av), float64(any(b.data[i]).(float32)), float64(any(c.data[i]).(float32))))).(T)
		case float64:
			out.data[i] = any(math.FMA(av, any(b.data[i]).(float64), any(c.data[i]).(float64))).(T)
		}
	}
	return out
}

// ReduceSum sums all lanes of v.
func ReduceSum[T Lanes](v Vec[T]) T {
	var sum T
	for i := 0; i < v.n; i++ {
		sum += v.data[i]
	}
	return sum
}
