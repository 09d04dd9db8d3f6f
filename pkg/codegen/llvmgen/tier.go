package llvmgen

// Tier is a CPU ISA feature level used for multi-versioning, §4.4.
type Tier int

const (
	TierBaseline Tier = iota
	TierDotProd
	TierFp16Fml
	TierBf16
	TierI8mm
	TierSve
	TierSve2
	TierSme
	TierAvx2
	TierAvx512
)

// AllTiers lists every tier in canonical declaration order. The emitter
// walks Options.EnabledOrDefault() rather than this list; its dispatcher
// probes run from low tier to high, a later hit overriding an earlier one,
// with Baseline as the fallback.
var AllTiers = []Tier{
	TierBaseline, TierDotProd, TierFp16Fml, TierBf16, TierI8mm,
	TierSve, TierSve2, TierSme, TierAvx2, TierAvx512,
}

func (t Tier) String() string {
	switch t {
	case TierBaseline:
		return "Baseline"
	case TierDotProd:
		return "DotProd"
	case TierFp16Fml:
		return "Fp16Fml"
	case TierBf16:
		return "Bf16"
	case TierI8mm:
		return "I8mm"
	case TierSve:
		return "Sve"
	case TierSve2:
		return "Sve2"
	case TierSme:
		return "Sme"
	case TierAvx2:
		return "Avx2"
	case TierAvx512:
		return "Avx512"
	default:
		return "Unknown"
	}
}

// Arch is the instruction-set family a tier belongs to.
type Arch int

const (
	ArchGeneric Arch = iota
	ArchAarch64
	ArchX86
)

func (t Tier) Arch() Arch {
	switch t {
	case TierDotProd, TierFp16Fml, TierBf16, TierI8mm, TierSve, TierSve2, TierSme:
		return ArchAarch64
	case TierAvx2, TierAvx512:
		return ArchX86
	default:
		return ArchGeneric
	}
}

// hwcapBit is the Linux AT_HWCAP(2) bit getauxval probes for a tier, where
// applicable (aarch64 only; §4.4 says "getauxval(AT_HWCAP=16)" for the
// DotProd probe specifically — HWCAP_ASIMDDP is bit 20, AT_HWCAP itself is
// auxv type 16). Tiers with no bit here (Sve2, Sme) are never selected
// by the Linux probe, which reads AT_HWCAP only, not AT_HWCAP2.
func (t Tier) hwcapBit() (bit uint64, ok bool) {
	switch t {
	case TierDotProd:
		return 1 << 20, true // HWCAP_ASIMDDP
	case TierFp16Fml:
		return 1 << 22, true // HWCAP_FPHP combined with ASIMDHP on most kernels; approximate
	case TierBf16:
		return 1 << 14, true // HWCAP_BF16
	case TierI8mm:
		return 1 << 15, true // HWCAP_I8MM
	case TierSve:
		return 1 << 21, true // HWCAP_SVE
	default:
		return 0, false
	}
}

// sysctlName is the Apple sysctlbyname key §4.4's `chic_arm_sysctl_flag`
// helper queries for a tier.
func (t Tier) sysctlName() (string, bool) {
	switch t {
	case TierDotProd:
		return "hw.optional.arm.FEAT_DotProd", true
	case TierFp16Fml:
		return "hw.optional.arm.FEAT_FHM", true
	case TierBf16:
		return "hw.optional.arm.FEAT_BF16", true
	case TierI8mm:
		return "hw.optional.arm.FEAT_I8MM", true
	case TierSve:
		return "hw.optional.arm.FEAT_SVE", true
	case TierSve2:
		return "hw.optional.arm.FEAT_SVE2", true
	case TierSme:
		return "hw.optional.arm.FEAT_SME", true
	default:
		return "", false
	}
}

// EnabledOrDefault returns the configured tier list, or Baseline-only
// when the caller didn't ask for any multi-versioning.
func (o Options) EnabledOrDefault() []Tier {
	if len(o.EnabledTiers) == 0 {
		return []Tier{TierBaseline}
	}
	out := []Tier{TierBaseline}
	for _, t := range o.EnabledTiers {
		if t != TierBaseline {
			out = append(out, t)
		}
	}
	return out
}
