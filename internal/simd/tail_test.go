package simd

import "testing"

func TestTailMaskClamps(t *testing.T) {
	max := MaxLanes[float32]()

	m := TailMask[float32](-1)
	if m.NumLanes() != max {
		t.Fatalf("TailMask(-1): got %d lanes, want %d", m.NumLanes(), max)
	}
	for i, bit := range m.bits {
		if bit {
			t.Errorf("TailMask(-1): lane %d active, want none active", i)
		}
	}

	m = TailMask[float32](max + 10)
	count := 0
	for _, bit := range m.bits {
		if bit {
			count++
		}
	}
	if count != max {
		t.Errorf("TailMask(overflow): got %d active lanes, want %d", count, max)
	}
}

func TestProcessWithTail(t *testing.T) {
	lanes := MaxLanes[float32]()
	size := lanes*3 + 1 // guarantee one partial group regardless of host width
	var fullCalls, tailCalls int
	var tailCount int

	ProcessWithTail[float32](size,
		func(offset int) { fullCalls++ },
		func(offset, count int) {
			tailCalls++
			tailCount = count
		},
	)

	if fullCalls != 3 {
		t.Errorf("ProcessWithTail: got %d full calls, want 3", fullCalls)
	}
	if tailCalls != 1 {
		t.Errorf("ProcessWithTail: got %d tail calls, want 1", tailCalls)
	}
	if tailCount != 1 {
		t.Errorf("ProcessWithTail: tail count = %d, want 1", tailCount)
	}
}

func TestProcessWithTailExactMultiple(t *testing.T) {
	lanes := MaxLanes[float32]()
	size := lanes * 2
	tailCalls := 0

	ProcessWithTail[float32](size,
		func(offset int) {},
		func(offset, count int) { tailCalls++ },
	)

	if tailCalls != 0 {
		t.Errorf("ProcessWithTail: exact multiple should not invoke tailFn, got %d calls", tailCalls)
	}
}

func TestMaskLoadZeroPads(t *testing.T) {
	lanes := MaxLanes[float32]()
	if lanes < 2 {
		t.Skip("host width too narrow for this test")
	}
	mask := TailMask[float32](1)
	v := MaskLoad(mask, []float32{42})
	if v.data[0] != 42 {
		t.Errorf("MaskLoad: lane 0 = %v, want 42", v.data[0])
	}
	for i := 1; i < v.NumLanes(); i++ {
		if v.data[i] != 0 {
			t.Errorf("MaskLoad: lane %d = %v, want 0 (zero padding)", i, v.data[i])
		}
	}
}
