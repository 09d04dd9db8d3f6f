package codegen

import "golang.org/x/sys/cpu"

// HostCPUTiers reports the multi-versioning tiers the build host itself
// supports, in tier order. The driver uses this as the default tier list
// when the user doesn't pin one: emitting variants the host can't execute
// wastes object size for local builds, while cross builds pass an explicit
// list. The emitted dispatcher still probes at run time either way.
func HostCPUTiers() []string {
	tiers := []string{"Baseline"}
	if cpu.ARM64.HasASIMDDP {
		tiers = append(tiers, "DotProd")
	}
	if cpu.ARM64.HasFPHP && cpu.ARM64.HasASIMDHP {
		tiers = append(tiers, "Fp16Fml")
	}
	if cpu.ARM64.HasSVE {
		tiers = append(tiers, "Sve")
	}
	if cpu.X86.HasAVX2 {
		tiers = append(tiers, "Avx2")
	}
	if cpu.X86.HasAVX512F && cpu.X86.HasAVX512VNNI {
		tiers = append(tiers, "Avx512")
	}
	return tiers
}
