package wasmgen

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// TestSmokeGoldenBytes compares the smoke module's emitted bytes against
// the checked-in snapshot. UPDATE_WASM_GOLDENS=1 rewrites it.
func TestSmokeGoldenBytes(t *testing.T) {
	res := emitSmoke(t, Options{})
	path := filepath.Join("testdata", "smoke.wasm")

	if os.Getenv("UPDATE_WASM_GOLDENS") != "" {
		if err := os.MkdirAll("testdata", 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, res.Bytes, 0o644); err != nil {
			t.Fatal(err)
		}
		t.Logf("rewrote %s (%d bytes)", path, len(res.Bytes))
		return
	}

	want, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		t.Skip("no golden snapshot; run with UPDATE_WASM_GOLDENS=1 to create it")
	}
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(res.Bytes, want) {
		t.Errorf("emitted bytes differ from golden (%d vs %d bytes); rerun with UPDATE_WASM_GOLDENS=1 if intentional",
			len(res.Bytes), len(want))
	}

	// Determinism: two emissions of the same module are byte-identical.
	again := emitSmoke(t, Options{})
	if !bytes.Equal(res.Bytes, again.Bytes) {
		t.Error("emission is not deterministic")
	}
}
