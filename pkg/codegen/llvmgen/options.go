package llvmgen

// Options configures one Emit call, mirroring wasmgen.Options' shape.
type Options struct {
	// EnabledTiers is the set of CPU ISA tiers §4.4 multi-versions kernels
	// for. Baseline is always emitted regardless of this list.
	EnabledTiers []Tier

	// SveBits pins the SVE vector width (`@chic_cpu_sve_bits`). Zero means
	// "use a runtime query"; the global is then emitted as 0 and the module
	// contains no vector-length query of its own.
	SveBits int

	// Trace mirrors CHIC_WASM_TRACE's role for the WASM backend: emit
	// log.Printf tracing of each function as it's lowered.
	Trace bool

	// Coverage gates per-statement chic_rt.coverage_hit calls, §8 property 5.
	Coverage bool

	// Target is the requested triple, declared in the module header and
	// used to pick the dispatcher's probe path (§4.4: sysctlbyname on
	// Apple targets, getauxval on Linux).
	Target string
}
