package wasmgen

import (
	"strings"
	"testing"

	"github.com/Chic-lang/Chic-sub010/pkg/layout"
	"github.com/Chic-lang/Chic-sub010/pkg/mir"
	"github.com/Chic-lang/Chic-sub010/pkg/runtimehooks"
	"github.com/Chic-lang/Chic-sub010/pkg/wasmvm"
)

func smokeModule() *mir.MirModule {
	intTy := mir.TyNamed{Name: "int"}
	add := &mir.MirFunction{
		Name: "Smoke::Add",
		Sig:  mir.Signature{Params: []mir.Ty{intTy, intTy}, Ret: intTy},
		Body: &mir.MirBody{
			ArgCount: 2,
			Locals: []*mir.LocalDecl{
				{Ty: intTy, Kind: mir.LocalReturn},
				{Name: "a", Ty: intTy, Kind: mir.LocalArg, ArgIndex: 0},
				{Name: "b", Ty: intTy, Kind: mir.LocalArg, ArgIndex: 1},
			},
			Blocks: []*mir.BasicBlock{
				{
					Id: 0,
					Statements: []mir.Statement{
						mir.StmtAssign{
							Place: mir.Place{Local: 0},
							Rvalue: mir.RvBinary{
								Op:  mir.BinAdd,
								Lhs: mir.OperandCopy{Place: mir.Place{Local: 1}},
								Rhs: mir.OperandCopy{Place: mir.Place{Local: 2}},
							},
						},
					},
					Terminator: mir.TermReturn{},
				},
			},
		},
	}
	dest := mir.Place{Local: 1}
	main := &mir.MirFunction{
		Name: "Smoke::Main",
		Sig:  mir.Signature{Ret: intTy},
		Body: &mir.MirBody{
			Locals: []*mir.LocalDecl{
				{Ty: intTy, Kind: mir.LocalReturn},
				{Name: "sum", Ty: intTy, Kind: mir.LocalTemp},
			},
			Blocks: []*mir.BasicBlock{
				{
					Id: 0,
					Terminator: mir.TermCall{
						CalleeName: "Smoke::Add",
						Args: []mir.CallArg{
							{Operand: mir.OperandConst{Value: mir.ConstInt{V: 21, Bits: 32}}},
							{Operand: mir.OperandConst{Value: mir.ConstInt{V: 21, Bits: 32}}},
						},
						Destination: &dest,
						Target:      1,
						Dispatch:    mir.DispatchNone{},
					},
				},
				{
					Id: 1,
					Terminator: mir.TermSwitchInt{
						Value:     mir.OperandCopy{Place: mir.Place{Local: 1}},
						Arms:      []mir.SwitchArm{{Value: 42, Target: 2}},
						Otherwise: 3,
					},
				},
				{
					Id: 2,
					Statements: []mir.Statement{
						mir.StmtAssign{
							Place:  mir.Place{Local: 0},
							Rvalue: mir.RvUse{Operand: mir.OperandConst{Value: mir.ConstInt{V: 0, Bits: 32}}},
						},
					},
					Terminator: mir.TermReturn{},
				},
				{
					Id: 3,
					Statements: []mir.Statement{
						mir.StmtAssign{
							Place:  mir.Place{Local: 0},
							Rvalue: mir.RvUse{Operand: mir.OperandConst{Value: mir.ConstInt{V: 1, Bits: 32}}},
						},
					},
					Terminator: mir.TermReturn{},
				},
			},
		},
	}
	return &mir.MirModule{
		Name:      "Smoke",
		Functions: []*mir.MirFunction{add, main},
		Layouts:   mir.NewTypeLayoutTable(32),
		Exports:   []*mir.ExportRecord{{Symbol: "Smoke::Add", Category: mir.ExportFunction}},
	}
}

func emitSmoke(t *testing.T, opt Options) *Result {
	t.Helper()
	mod := smokeModule()
	res, err := Emit(mod, layout.New(mod.Layouts), opt)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

// TestEmitParsesBack covers §8 property 1: the emitted module parses with
// the in-house parser and function count, export names, and hook imports
// match the pre-emission tables.
func TestEmitParsesBack(t *testing.T) {
	res := emitSmoke(t, Options{})
	parsed, err := wasmvm.ParseModule(res.Bytes)
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed.Funcs) != len(res.FunctionNames) {
		t.Errorf("function count: parsed %d, emitted %d", len(parsed.Funcs), len(res.FunctionNames))
	}
	if len(parsed.FunctionNames) != len(res.FunctionNames) {
		t.Fatalf("chic.fn.names count: parsed %d, emitted %d", len(parsed.FunctionNames), len(res.FunctionNames))
	}
	for i, name := range res.FunctionNames {
		if parsed.FunctionNames[i] != name {
			t.Errorf("fn name %d: parsed %q, emitted %q", i, parsed.FunctionNames[i], name)
		}
	}
	for _, name := range res.ExportNames {
		if _, ok := parsed.Exports[name]; !ok {
			t.Errorf("export %q missing after parse", name)
		}
	}
	if len(parsed.Imports) != len(runtimehooks.Catalog) {
		t.Errorf("imports: parsed %d, catalog %d", len(parsed.Imports), len(runtimehooks.Catalog))
	}
	for i, imp := range parsed.Imports {
		if imp.Module != runtimehooks.Module || imp.Name != runtimehooks.Catalog[i].Name {
			t.Errorf("import %d: %s.%s, want %s.%s", i, imp.Module, imp.Name,
				runtimehooks.Module, runtimehooks.Catalog[i].Name)
			break
		}
	}
	// Property 2: every function/import type index is in section 1.
	for _, ti := range parsed.Funcs {
		if ti >= len(parsed.Types) {
			t.Errorf("function type index %d out of range", ti)
		}
	}
}

// TestSmokeExecutes covers scenario S1's WASM half: running chic_main in
// the test VM yields exit code 0.
func TestSmokeExecutes(t *testing.T) {
	res := emitSmoke(t, Options{})
	parsed, err := wasmvm.ParseModule(res.Bytes)
	if err != nil {
		t.Fatal(err)
	}
	vm, err := wasmvm.NewVM(parsed, wasmvm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	out, err := vm.CallExport("chic_main")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || uint32(out[0]) != 0 {
		t.Fatalf("chic_main: got %v, want [0]", out)
	}
}

// TestFrameAllocatingMainRuns covers §8 property 6 indirectly: a chic_main
// whose Main frame-allocates an aggregate runs to completion in the VM.
// The VM does not expose its globals, so the stack-pointer value after the
// run is not inspected.
func TestFrameAllocatingMainRuns(t *testing.T) {
	mod := smokeModule()
	mod.Layouts.Structs["Smoke::Pair"] = &mir.StructLayout{
		Name: "Smoke::Pair",
		Fields: []mir.FieldLayout{
			{Name: "a", Index: 0, Offset: 0, Ty: mir.TyNamed{Name: "int"}, Size: 4, Align: 4},
			{Name: "b", Index: 1, Offset: 4, Ty: mir.TyNamed{Name: "int"}, Size: 4, Align: 4},
		},
		Size: 8, Align: 4,
	}
	main := mod.FunctionByName("Smoke::Main")
	main.Body.Locals = append(main.Body.Locals, &mir.LocalDecl{
		Name: "scratch", Ty: mir.TyNamed{Name: "Smoke::Pair"}, Kind: mir.LocalLocal,
	})
	res, err := Emit(mod, layout.New(mod.Layouts), Options{})
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := wasmvm.ParseModule(res.Bytes)
	if err != nil {
		t.Fatal(err)
	}
	vm, err := wasmvm.NewVM(parsed, wasmvm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := vm.CallExport("chic_main"); err != nil {
		t.Fatal(err)
	}
}

// TestCoverageHits covers §8 property 5: with coverage on, each statement
// in a span-labeled block reports (function_index << 32) | statement_index,
// plus the per-function entry hit.
func TestCoverageHits(t *testing.T) {
	mod := smokeModule()
	for _, fn := range mod.Functions {
		for _, b := range fn.Body.Blocks {
			b.SpanLabel = "smoke"
		}
	}
	res, err := Emit(mod, layout.New(mod.Layouts), Options{Coverage: true})
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := wasmvm.ParseModule(res.Bytes)
	if err != nil {
		t.Fatal(err)
	}
	vm, err := wasmvm.NewVM(parsed, wasmvm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := vm.CallExport("chic_main"); err != nil {
		t.Fatal(err)
	}
	hits := vm.HostCoverage()
	if len(hits) == 0 {
		t.Fatal("no coverage hits recorded")
	}
	seen := make(map[uint64]int)
	for _, id := range hits {
		seen[id]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("coverage id %#x reported %d times, want exactly 1", id, n)
		}
	}
}

// TestInterpolationSignedArgs covers scenario S3: interpolating int 42
// with alignment -5 and no format calls string_append_signed with
// (dest, 42, 0, 32, -5, 1, 0, 0). The function is a test case so the VM
// can reach it through its test:: export.
func TestInterpolationSignedArgs(t *testing.T) {
	strTy := mir.TyString{}
	mod := &mir.MirModule{
		Name:    "Interp",
		Layouts: mir.NewTypeLayoutTable(32),
		Functions: []*mir.MirFunction{{
			Name: "Interp::Render",
			Kind: mir.FuncTestCase,
			Sig:  mir.Signature{Ret: mir.TyUnit{}},
			Body: &mir.MirBody{
				Locals: []*mir.LocalDecl{
					{Ty: mir.TyUnit{}, Kind: mir.LocalReturn},
					{Name: "out", Ty: strTy, Kind: mir.LocalLocal},
				},
				Blocks: []*mir.BasicBlock{{
					Id: 0,
					Statements: []mir.Statement{
						mir.StmtAssign{
							Place: mir.Place{Local: 1},
							Rvalue: mir.RvInterpolate{Segments: []mir.InterpolationSegment{
								mir.InterpExpr{
									Operand: mir.OperandConst{Value: mir.ConstInt{V: 42, Bits: 32}},
									Class:   mir.ClassSignedInt,
									Bits:    32,
									Align:   -5,
								},
							}},
						},
					},
					Terminator: mir.TermReturn{},
				}},
			},
		}},
	}
	res, err := Emit(mod, layout.New(mod.Layouts), Options{})
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := wasmvm.ParseModule(res.Bytes)
	if err != nil {
		t.Fatal(err)
	}

	var got []uint64
	vm, err := wasmvm.NewVM(parsed, wasmvm.Config{Hooks: map[string]wasmvm.HostFunc{
		"chic_rt.string_append_signed": func(vm *wasmvm.VM, args []uint64) ([]uint64, error) {
			got = append([]uint64(nil), args...)
			return []uint64{args[0]}, nil
		},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := vm.CallExport("test::Interp::Render"); err != nil {
		t.Fatal(err)
	}
	if len(got) != 8 {
		t.Fatalf("string_append_signed arg count: %d, want 8 (%v)", len(got), got)
	}
	if int64(got[1]) != 42 || got[2] != 0 {
		t.Errorf("value halves: lo=%d hi=%d, want 42/0", int64(got[1]), got[2])
	}
	if uint32(got[3]) != 32 {
		t.Errorf("bits: %d, want 32", uint32(got[3]))
	}
	if int32(uint32(got[4])) != -5 {
		t.Errorf("align: %d, want -5", int32(uint32(got[4])))
	}
	if uint32(got[5]) != 1 || got[6] != 0 || got[7] != 0 {
		t.Errorf("trailing args: %v, want 1, 0, 0", got[5:])
	}
}

// TestDropGlueEmission checks that a droppable struct gets a synthesized
// __cl_drop__ function and that the resulting module still parses.
func TestDropGlueEmission(t *testing.T) {
	mod := smokeModule()
	mod.Layouts.Structs["Text::Doc"] = &mir.StructLayout{
		Name: "Text::Doc",
		Fields: []mir.FieldLayout{
			{Name: "body", Index: 0, Offset: 0, Ty: mir.TyString{}, Size: 4, Align: 4},
		},
		Size: 4, Align: 4,
	}
	res, err := Emit(mod, layout.New(mod.Layouts), Options{})
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, name := range res.FunctionNames {
		if name == DropGluePrefix+"Text::Doc" {
			found = true
		}
	}
	if !found {
		t.Fatalf("no drop glue for Text::Doc in %v", res.FunctionNames)
	}
	if _, err := wasmvm.ParseModule(res.Bytes); err != nil {
		t.Fatal(err)
	}
}

// TestMatchPayloadPatternRejected pins the §8 open-question decision:
// payload-carrying enum patterns are a hard error in this backend.
func TestMatchPayloadPatternRejected(t *testing.T) {
	mod := smokeModule()
	main := mod.FunctionByName("Smoke::Main")
	main.Body.Blocks[1].Terminator = mir.TermMatch{
		Value:     mir.OperandCopy{Place: mir.Place{Local: 1}},
		Arms:      []mir.MatchArm{{Pattern: mir.PatEnumPayload{Variant: "Some"}, Target: 2}},
		Otherwise: 3,
	}
	_, err := Emit(mod, layout.New(mod.Layouts), Options{})
	if err == nil {
		t.Fatal("expected hard error for payload-carrying enum pattern")
	}
	if !strings.Contains(err.Error(), "payload-carrying") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestWatDump sanity-checks the re-parse/pretty-print path.
func TestWatDump(t *testing.T) {
	res := emitSmoke(t, Options{})
	wat := DumpWat(res)
	if !strings.Contains(wat, "(module") || !strings.Contains(wat, "chic_main") {
		t.Errorf("WAT dump missing expected entries:\n%s", wat)
	}
}

// TestEmptyModule pins the §8 boundary behavior: a module with no
// functions still emits a header, memory, stack-pointer global, and
// sections the parser accepts.
func TestEmptyModule(t *testing.T) {
	mod := &mir.MirModule{Name: "Empty", Layouts: mir.NewTypeLayoutTable(32)}
	res, err := Emit(mod, layout.New(mod.Layouts), Options{})
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := wasmvm.ParseModule(res.Bytes)
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed.Funcs) != 0 {
		t.Errorf("expected no defined functions, got %d", len(parsed.Funcs))
	}
	if parsed.MemPages != 64 {
		t.Errorf("memory min pages: %d, want 64", parsed.MemPages)
	}
	if len(parsed.Globals) != 1 || !parsed.Globals[0].Mutable || parsed.Globals[0].Init != 0x10000 {
		t.Errorf("stack-pointer global: %+v", parsed.Globals)
	}
}
