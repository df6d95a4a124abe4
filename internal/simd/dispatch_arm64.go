//go:build arm64

package simd

func init() {
	if noSIMDEnv() {
		setScalarMode()
		return
	}

	// ARM64 NEON is mandatory on every arm64 target Go supports.
	currentLevel = DispatchNEON
	currentWidth = 16
}

func setScalarMode() {
	currentLevel = DispatchScalar
	currentWidth = 16
}
