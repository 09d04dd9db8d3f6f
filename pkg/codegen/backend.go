// Package codegen selects and drives one of the two code-generation
// backends (WASM or LLVM textual IR) over a shared MirModule, per §2's
// "Control flow" and §4's component design. It mirrors the teacher's
// backend-registry shape generalized from a CPU-target registry to a
// code-gen-artifact registry.
package codegen

import "github.com/Chic-lang/Chic-sub010/pkg/mir"

// Backend defines the interface every code-generation backend implements.
type Backend interface {
	// Name returns the backend's name ("wasm" or "llvm").
	Name() string

	// Generate lowers the given MIR module into the backend's artifact and
	// returns its bytes (a binary WASM module, or LLVM textual IR).
	Generate(module *mir.MirModule) ([]byte, error)

	// GetFileExtension returns the conventional extension for this
	// backend's output file ("wasm" or "ll").
	GetFileExtension() string

	// SupportsFeature reports whether this backend implements an optional
	// capability (see the Feature* constants below).
	SupportsFeature(feature string) bool
}

// CodegenOptions carries configuration threaded from cmd/chic-codegen into
// a backend, modeled on the teacher's BackendOptions: pointer width,
// optimization level, coverage instrumentation, and (LLVM-only) the
// CPU-ISA tier list for multi-versioning, per §4.4.
type CodegenOptions struct {
	// PointerWidth is 32 or 64, per §3's layout invariant.
	PointerWidth int

	// OptimizationLevel controls peephole/intrinsic-selection choices (§1
	// non-goals: the core never does register allocation or general
	// optimization beyond this).
	OptimizationLevel int

	// Coverage enables per-statement coverage_hit instrumentation, §8
	// property 5.
	Coverage bool

	// RequireEntryPoint enforces §6's "executable builds require Main"
	// check; the driver sets this to false when CHIC_SKIP_STDLIB is set.
	RequireEntryPoint bool

	// CPUTiers lists the enabled CPU-ISA tiers for LLVM multi-versioning,
	// §4.4 (ignored by the WASM backend).
	CPUTiers []string

	// SVEBits pins the SVE vector width when nonzero; 0 means "use runtime
	// query", per §4.4.
	SVEBits int

	// Debug enables CHIC_WASM_TRACE-style stderr tracing inside Generate.
	Debug bool

	// Target is the triple the LLVM backend should declare (e.g.
	// "arm64-apple-macosx15.0", "x86_64-unknown-linux-gnu").
	Target string

	// CustomOptions carries backend-specific overflow, matching the
	// teacher's CustomOptions map.
	CustomOptions map[string]interface{}
}

// Backend feature names, checked via SupportsFeature.
const (
	FeatureMultiVersioning = "multi_versioning" // LLVM CPU dispatch, §4.4
	FeatureCoverage        = "coverage"
	FeatureAsync           = "async_state_machines"
	FeatureTraitDispatch   = "trait_dispatch"
	FeatureVirtualDispatch = "virtual_dispatch"
	FeatureAtomics         = "atomics"
	FeatureInlineAsm       = "inline_asm"
)

// BackendFactory constructs a Backend instance from options.
type BackendFactory func(options *CodegenOptions) Backend

var backends = make(map[string]BackendFactory)

// RegisterBackend registers a backend factory under name. Called from the
// init() functions in wasm_backend.go and llvm_backend.go, so importing
// pkg/codegen makes both available via GetBackend.
func RegisterBackend(name string, factory BackendFactory) {
	backends[name] = factory
}

// GetBackend returns a backend instance by name, or nil if unregistered.
func GetBackend(name string, options *CodegenOptions) Backend {
	if factory, ok := backends[name]; ok {
		return factory(options)
	}
	return nil
}

// ListBackends returns the names of all registered backends.
func ListBackends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return names
}
