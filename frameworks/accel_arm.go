//go:build arm || arm64

package frameworks

// On arm builds the NEON variant is the supported CPU-SIMD flavor.
func cpuVariantAccel(hw HW) (AccelHW, bool) {
	if hw == HWCPUNeon {
		return AccelCPUNeon, true
	}
	return AccelAuto, false
}
