package runtimehooks

import (
	"testing"

	"github.com/Chic-lang/Chic-sub010/pkg/wasmcodec"
)

func TestCatalogLookupConsistency(t *testing.T) {
	seen := make(map[string]bool)
	for _, h := range Catalog {
		if seen[h.Name] {
			t.Errorf("duplicate hook name %q", h.Name)
		}
		seen[h.Name] = true
		byID, ok := ByID(h.ID)
		if !ok || byID.Name != h.Name {
			t.Errorf("ByID(%d) mismatch for %q", h.ID, h.Name)
		}
		byName, ok := ByName(h.Name)
		if !ok || byName.ID != h.ID {
			t.Errorf("ByName(%q) mismatch", h.Name)
		}
	}
}

// TestDeclaredSignatures pins the hook signatures the import contract
// names explicitly; a drifted signature breaks every emitted module.
func TestDeclaredSignatures(t *testing.T) {
	i32, i64 := wasmcodec.ValI32, wasmcodec.ValI64
	cases := []struct {
		name    string
		params  []wasmcodec.ValueType
		results []wasmcodec.ValueType
	}{
		{"panic", []wasmcodec.ValueType{i32}, nil},
		{"throw", []wasmcodec.ValueType{i32, i64}, nil},
		{"await", []wasmcodec.ValueType{i32, i32}, []wasmcodec.ValueType{i32}},
		{"alloc", []wasmcodec.ValueType{i32, i32, i32}, []wasmcodec.ValueType{i32}},
		{"memcpy", []wasmcodec.ValueType{i32, i32, i32}, nil},
		{"string_append_signed", []wasmcodec.ValueType{i32, i64, i64, i32, i32, i32, i32, i32}, []wasmcodec.ValueType{i32}},
		{"arc_clone", []wasmcodec.ValueType{i32, i32}, []wasmcodec.ValueType{i32}},
	}
	for _, c := range cases {
		h, ok := ByName(c.name)
		if !ok {
			t.Fatalf("hook %q missing from catalog", c.name)
		}
		want := wasmcodec.FuncType{Params: c.params, Results: c.results}
		got := wasmcodec.FuncType{Params: h.Params, Results: h.Results}
		if !got.Equal(want) {
			t.Errorf("%s: signature %v -> %v, want %v -> %v", c.name, h.Params, h.Results, c.params, c.results)
		}
	}
}
