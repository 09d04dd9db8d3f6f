package codegen

import (
	"os"
	"testing"
)

func TestBackendRegistry(t *testing.T) {
	names := ListBackends()
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	if !found["wasm"] || !found["llvm"] {
		t.Fatalf("registered backends: %v, want wasm and llvm", names)
	}
	if GetBackend("nope", nil) != nil {
		t.Error("unknown backend must return nil")
	}

	wasm := GetBackend("wasm", &CodegenOptions{PointerWidth: 32})
	if wasm.Name() != "wasm" || wasm.GetFileExtension() != "wasm" {
		t.Error("wasm backend identity mismatch")
	}
	if wasm.SupportsFeature(FeatureMultiVersioning) {
		t.Error("wasm backend must not claim multi-versioning")
	}
	if wasm.SupportsFeature(FeatureInlineAsm) {
		t.Error("wasm backend must not claim inline asm")
	}

	llvm := GetBackend("llvm", &CodegenOptions{PointerWidth: 64})
	if llvm.GetFileExtension() != "ll" {
		t.Error("llvm extension mismatch")
	}
	if !llvm.SupportsFeature(FeatureMultiVersioning) || !llvm.SupportsFeature(FeatureInlineAsm) {
		t.Error("llvm backend feature flags mismatch")
	}
}

func TestValidateOptionsRejectsOddPointerWidth(t *testing.T) {
	b := GetBackend("wasm", &CodegenOptions{PointerWidth: 48})
	if _, err := b.Generate(nil); err == nil {
		t.Fatal("expected pointer-width validation error")
	}
}

// TestHostCPUTiers runs only on hosts opted into hardware-dependent
// checks; the tier list depends on the machine the tests run on.
func TestHostCPUTiers(t *testing.T) {
	if os.Getenv("CHIC_ENABLE_SIMD_TESTS") == "" {
		t.Skip("set CHIC_ENABLE_SIMD_TESTS=1 to check host tier detection")
	}
	tiers := HostCPUTiers()
	if len(tiers) == 0 || tiers[0] != "Baseline" {
		t.Fatalf("tiers: %v, want Baseline first", tiers)
	}
}
