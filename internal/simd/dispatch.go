package simd

import (
	"os"
	"unsafe"
)

// DispatchLevel represents the current SIMD instruction set detected for
// this process.
type DispatchLevel int

const (
	// DispatchScalar indicates no hardware SIMD; pure Go implementation.
	DispatchScalar DispatchLevel = iota

	// DispatchAVX2 indicates AVX2 instructions (256-bit SIMD) are available.
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512 instructions (512-bit SIMD) are available.
	DispatchAVX512

	// DispatchNEON indicates ARM NEON instructions (128-bit SIMD) are available.
	DispatchNEON
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// currentLevel is the detected SIMD level for this runtime.
// Set by init() in dispatch_*.go files.
var currentLevel DispatchLevel

// currentWidth is the SIMD register width in bytes for the current level.
// Set by init() in dispatch_*.go files. For DispatchScalar this is 16, so
// that dense rows still pad to a sensible minimum stride.
var currentWidth int

// CurrentLevel returns the SIMD instruction set detected for this host.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the SIMD register width in bytes, e.g. 16 for
// NEON/scalar, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns a human-readable name for the current SIMD target.
func CurrentName() string {
	return currentLevel.String()
}

// HasSIMD reports whether hardware SIMD acceleration was detected.
func HasSIMD() bool {
	return currentLevel != DispatchScalar
}

// MaxLanes returns the number of T values that fit in the current SIMD
// register width. Dense matrix rows are padded to a multiple of this many
// lanes with zeros.
func MaxLanes[T Lanes]() int {
	var dummy T
	elementSize := int(unsafe.Sizeof(dummy))
	if elementSize == 0 {
		return 0
	}
	return currentWidth / elementSize
}

// noSIMDEnv checks the FFSVM_NO_SIMD environment variable, which forces
// scalar-stride dense rows regardless of detected CPU features. Useful for
// testing padding behaviour deterministically across hosts.
func noSIMDEnv() bool {
	return os.Getenv("FFSVM_NO_SIMD") != ""
}
