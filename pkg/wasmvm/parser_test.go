package wasmvm

import (
	"strings"
	"testing"
)

func TestRejectsBadHeader(t *testing.T) {
	cases := [][]byte{
		nil,
		{0x00, 0x61, 0x73},
		{0x01, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00},
		{0x00, 0x61, 0x73, 0x6d, 0x02, 0x00, 0x00, 0x00},
	}
	for i, data := range cases {
		_, err := ParseModule(data)
		if err == nil {
			t.Errorf("case %d: expected error", i)
			continue
		}
		if !strings.Contains(err.Error(), "invalid wasm header") {
			t.Errorf("case %d: got %v, want invalid wasm header", i, err)
		}
		if _, ok := err.(*ParseError); !ok {
			t.Errorf("case %d: error type %T, want *ParseError", i, err)
		}
	}
}

func header() []byte {
	return []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
}

func TestRejectsOversizedSection(t *testing.T) {
	// Section id 1 claiming 100 bytes with none following.
	data := append(header(), 0x01, 100)
	_, err := ParseModule(data)
	if err == nil || !strings.Contains(err.Error(), "section length exceeds module size") {
		t.Fatalf("got %v", err)
	}
}

func TestRejectsNonFuncrefTable(t *testing.T) {
	// Table section: one table of elemtype 0x6f (externref).
	data := append(header(), 0x04, 4, 1, 0x6f, 0x00, 0)
	_, err := ParseModule(data)
	if err == nil || !strings.Contains(err.Error(), "only funcref tables are supported") {
		t.Fatalf("got %v", err)
	}
}

func TestRejectsNonEmptyBlockType(t *testing.T) {
	// One empty type, one function, code body: block with result type i32.
	data := header()
	data = append(data, 0x01, 4, 1, 0x60, 0, 0)          // type section: () -> ()
	data = append(data, 0x03, 2, 1, 0)                   // function section
	data = append(data, 0x0a, 7, 1, 5, 0, 0x02, 0x7f, 0x0b, 0x0b) // code: block i32 ... end end
	_, err := ParseModule(data)
	if err == nil || !strings.Contains(err.Error(), "only empty block types supported") {
		t.Fatalf("got %v", err)
	}
}

func TestRejectsUnsupportedOpcode(t *testing.T) {
	data := header()
	data = append(data, 0x01, 4, 1, 0x60, 0, 0)
	data = append(data, 0x03, 2, 1, 0)
	// 0xd0 (ref.null) is outside the emitted subset.
	data = append(data, 0x0a, 4, 1, 2, 0, 0xd0)
	_, err := ParseModule(data)
	if err == nil || !strings.Contains(err.Error(), "unsupported wasm opcode 0xd0") {
		t.Fatalf("got %v", err)
	}
}

func TestRejectsOversizedName(t *testing.T) {
	// Custom section whose name length runs past the section body.
	data := append(header(), 0x00, 2, 200, 'x')
	_, err := ParseModule(data)
	if err == nil || !strings.Contains(err.Error(), "string length exceeds section") {
		t.Fatalf("got %v", err)
	}
}

func TestEmptyModuleParses(t *testing.T) {
	mod, err := ParseModule(header())
	if err != nil {
		t.Fatal(err)
	}
	if len(mod.Types) != 0 || len(mod.Funcs) != 0 {
		t.Error("empty module must have no types or functions")
	}
}

func TestDivisionByZeroTraps(t *testing.T) {
	// (func (result i32) i32.const 1 i32.const 0 i32.div_s end)
	data := header()
	data = append(data, 0x01, 5, 1, 0x60, 0, 1, 0x7f)
	data = append(data, 0x03, 2, 1, 0)
	data = append(data, 0x07, 8, 1, 4, 'm', 'a', 'i', 'n', 0, 0)
	data = append(data, 0x0a, 9, 1, 7, 0, 0x41, 1, 0x41, 0, 0x6d, 0x0b)
	mod, err := ParseModule(data)
	if err != nil {
		t.Fatal(err)
	}
	vm, err := NewVM(mod, Config{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = vm.CallExport("main")
	if err == nil || !strings.Contains(err.Error(), "division by zero") {
		t.Fatalf("got %v, want division-by-zero trap", err)
	}
	if _, ok := err.(*ExecutionError); !ok {
		t.Errorf("error type %T, want *ExecutionError", err)
	}
}

func TestHookNotFound(t *testing.T) {
	// Import chic_rt.does_not_exist and call it from an exported func.
	data := header()
	data = append(data, 0x01, 4, 1, 0x60, 0, 0)
	imp := []byte{1}
	imp = append(imp, 7)
	imp = append(imp, []byte("chic_rt")...)
	imp = append(imp, 14)
	imp = append(imp, []byte("does_not_exist")...)
	imp = append(imp, 0x00, 0)
	data = append(data, 0x02, byte(len(imp)))
	data = append(data, imp...)
	data = append(data, 0x03, 2, 1, 0)
	data = append(data, 0x07, 8, 1, 4, 'm', 'a', 'i', 'n', 0, 1)
	data = append(data, 0x0a, 6, 1, 4, 0, 0x10, 0, 0x0b)
	mod, err := ParseModule(data)
	if err != nil {
		t.Fatal(err)
	}
	vm, err := NewVM(mod, Config{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = vm.CallExport("main")
	if err == nil || !strings.Contains(err.Error(), "hook not found: chic_rt.does_not_exist") {
		t.Fatalf("got %v", err)
	}
}

func TestUnresolvedCallIndirectTraps(t *testing.T) {
	data := header()
	data = append(data, 0x01, 4, 1, 0x60, 0, 0)
	data = append(data, 0x03, 2, 1, 0)
	data = append(data, 0x04, 4, 1, 0x70, 0x00, 2) // table of 2 uninitialized slots
	data = append(data, 0x07, 8, 1, 4, 'm', 'a', 'i', 'n', 0, 0)
	// i32.const 1, call_indirect type 0 table 0
	data = append(data, 0x0a, 9, 1, 7, 0, 0x41, 1, 0x11, 0, 0, 0x0b)
	mod, err := ParseModule(data)
	if err != nil {
		t.Fatal(err)
	}
	vm, err := NewVM(mod, Config{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = vm.CallExport("main")
	if err == nil || !strings.Contains(err.Error(), "unresolved call_indirect") {
		t.Fatalf("got %v", err)
	}
}
