package frameworks

// HW is the public enumeration of target hardware classes a caller may
// request a framework to execute on.
type HW int

const (
	// HWAny lets the framework pick its default hardware.
	HWAny HW = iota
	// HWAuto lets the plugin negotiate the hardware automatically.
	HWAuto
	HWCPU
	// HWCPUNeon is only meaningful on arm builds; elsewhere it degrades to
	// HWAuto on conversion.
	HWCPUNeon
	// HWCPUSIMD is only meaningful on non-arm builds; on arm it degrades to
	// HWAuto on conversion.
	HWCPUSIMD
	HWGPU
	HWNPU
	HWNPUMovidius
	HWNPUEdgeTPU
	HWNPUVivante
	HWNPUSLSI
	HWNPUSR
)

// AccelHW is the pipeline engine's internal accelerator enumeration, the form
// filter plugins are configured with.
type AccelHW int

const (
	AccelDefault AccelHW = iota
	AccelAuto
	AccelCPU
	AccelCPUNeon
	AccelCPUSIMD
	AccelGPU
	AccelNPU
	AccelNPUMovidius
	AccelNPUEdgeTPU
	AccelNPUVivante
	AccelNPUSLSI
	AccelNPUSR
)

// String returns the accelerator name as understood by filter plugin
// properties.
func (a AccelHW) String() string {
	switch a {
	case AccelDefault:
		return "default"
	case AccelAuto:
		return "auto"
	case AccelCPU:
		return "cpu"
	case AccelCPUNeon:
		return "cpu.neon"
	case AccelCPUSIMD:
		return "cpu.simd"
	case AccelGPU:
		return "gpu"
	case AccelNPU:
		return "npu"
	case AccelNPUMovidius:
		return "npu.movidius"
	case AccelNPUEdgeTPU:
		return "npu.edgetpu"
	case AccelNPUVivante:
		return "npu.vivante"
	case AccelNPUSLSI:
		return "npu.slsi"
	case AccelNPUSR:
		return "npu.srcn"
	default:
		return "auto"
	}
}

// Accel converts the public hardware class to the engine's internal
// accelerator value. The conversion is total: unknown values, and the CPU
// SIMD variant not matching the build architecture, default to AccelAuto.
func (hw HW) Accel() AccelHW {
	switch hw {
	case HWAny:
		return AccelDefault
	case HWAuto:
		return AccelAuto
	case HWCPU:
		return AccelCPU
	case HWGPU:
		return AccelGPU
	case HWNPU:
		return AccelNPU
	case HWNPUMovidius:
		return AccelNPUMovidius
	case HWNPUEdgeTPU:
		return AccelNPUEdgeTPU
	case HWNPUVivante:
		return AccelNPUVivante
	case HWNPUSLSI:
		return AccelNPUSLSI
	case HWNPUSR:
		return AccelNPUSR
	default:
		if a, ok := cpuVariantAccel(hw); ok {
			return a
		}
		return AccelAuto
	}
}

// FilterProp renders the hardware class as a filter plugin "accelerator"
// property value, e.g. "true:cpu".
func FilterProp(hw HW) string {
	return "true:" + hw.Accel().String()
}
