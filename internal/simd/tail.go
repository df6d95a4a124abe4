package simd

// TailMask creates a mask with the first count lanes active, used to
// process the remainder of a row when its length is not a multiple of
// MaxLanes[T](). Counts are clamped into [0, MaxLanes[T]()].
func TailMask[T Lanes](count int) Mask[T] {
	maxLanes := MaxLanes[T]()
	if count < 0 {
		count = 0
	}
	if count > maxLanes {
		count = maxLanes
	}

	var m Mask[T]
	m.n = maxLanes
	for i := 0; i < count; i++ {
		m.bits[i] = true
	}
	return m
}

// ProcessWithTail walks [0, size) in MaxLanes[T]()-sized chunks, calling
// fullFn for every full lane group and tailFn once for the final partial
// group (if any). This is the lane-granularity loop the dense-backend
// kernels use to reduce a support-vector row against a feature vector
// without a per-element branch.
func ProcessWithTail[T Lanes](size int, fullFn func(offset int), tailFn func(offset, count int)) {
	lanes := MaxLanes[T]()
	if lanes <= 0 {
		if size > 0 {
			tailFn(0, size)
		}
		return
	}

	offset := 0
	for ; offset+lanes <= size; offset += lanes {
		fullFn(offset)
	}
	if remaining := size - offset; remaining > 0 {
		tailFn(offset, remaining)
	}
}

// MaskLoad loads up to mask's active-lane count from src, zero-filling the
// remaining lanes up to MaxLanes[T]().
func MaskLoad[T Lanes](mask Mask[T], src []T) Vec[T] {
	var v Vec[T]
	v.n = mask.n
	for i := 0; i < mask.n; i++ {
		if mask.bits[i] && i < len(src) {
			v.data[i] = src[i]
		}
	}
	return v
}
