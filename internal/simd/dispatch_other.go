//go:build !amd64 && !arm64

package simd

func init() {
	// Architectures without a dedicated detector fall back to scalar mode.
	currentLevel = DispatchScalar
	currentWidth = 16
}
