//go:build !arm && !arm64

package frameworks

// Outside arm builds the generic SIMD variant is the supported CPU-SIMD
// flavor.
func cpuVariantAccel(hw HW) (AccelHW, bool) {
	if hw == HWCPUSIMD {
		return AccelCPUSIMD, true
	}
	return AccelAuto, false
}
