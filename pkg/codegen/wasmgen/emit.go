package wasmgen

import (
	"bytes"
	"fmt"
	"log"

	"github.com/Chic-lang/Chic-sub010/pkg/layout"
	"github.com/Chic-lang/Chic-sub010/pkg/mir"
	"github.com/Chic-lang/Chic-sub010/pkg/runtimehooks"
	"github.com/Chic-lang/Chic-sub010/pkg/wasmcodec"
)

// Result is everything Emit produces for one MIR module.
type Result struct {
	Bytes        []byte
	FunctionNames []string // in defined-function order, for custom section + round-trip checks (§8 property 1)
	ExportNames  []string
	ImportNames  []string // "module.name" pairs in import order
	EntryIndex   int      // combined-space index of chic_main, -1 if none
}

// Emit lowers an entire MirModule into a binary WASM module, per §4.2/§4.3.
// This is the single entry point wasmgen exposes to pkg/codegen.
func Emit(mod *mir.MirModule, res *layout.Resolver, opt Options) (*Result, error) {
	b := NewModuleBuilder(res, mod, opt)
	b.declareImports()

	var cursor int32
	for _, s := range mod.Strings {
		b.internString(s.Id, &cursor)
	}
	for _, sv := range mod.Statics {
		size := 4
		if sv.Ty != nil {
			if sz, _, err := res.SizeAndAlignForTy(sv.Ty); err == nil && sz > 0 {
				size = sz
			}
		}
		b.reserveStatic(sv.Id, size, &cursor)
	}

	tableSlotNames := collectVtableSlotSymbols(mod)

	// Index assignment precedes body emission so calls and drop glue can
	// reference functions that appear later in the module.
	glueTypes := dropGlueTypes(res)
	var order []string
	for _, fn := range mod.Functions {
		if fn.Body != nil {
			order = append(order, fn.Name)
		}
	}
	for _, name := range glueTypes {
		order = append(order, DropGluePrefix+name)
	}
	b.predeclare(order)

	for _, fn := range mod.Functions {
		if fn.Body == nil {
			continue // extern binding, no code to emit
		}
		if opt.Trace {
			log.Printf("wasmgen: emitting %s", fn.Name)
		}
		addressTaken := computeAddressTaken(fn)
		plan, err := planFunction(res, fn, addressTaken)
		if err != nil {
			return nil, err
		}
		used := make(map[runtimehooks.HookID]bool)
		funcIndex := b.importCount() + len(b.funcNames)
		code, err := emitFunction(b, fn, plan, used, funcIndex)
		if err != nil {
			return nil, fmt.Errorf("wasmgen: %s: %w", fn.Name, err)
		}
		ft := wasmcodec.FuncType{Params: plan.WasmParamTypes, Results: plan.WasmResultTypes}
		_, needsSlot := tableSlotNames[fn.Name]
		b.registerFunction(fn.Name, ft, code, needsSlot)
	}

	glueType := wasmcodec.FuncType{Params: []wasmcodec.ValueType{wasmcodec.ValI32}}
	for _, name := range glueTypes {
		code, err := emitDropGlue(b, name)
		if err != nil {
			return nil, fmt.Errorf("wasmgen: drop glue for %s: %w", name, err)
		}
		b.registerFunction(DropGluePrefix+name, glueType, code, false)
	}

	// Vtable element-segment wiring: walk trait and class vtables in
	// discovery order so table slot indices match that order (§5).
	for _, tv := range mod.TraitVTables {
		for _, slot := range tv.Slots {
			if idx, ok := b.funcIndexByName(slot.Symbol); ok {
				b.ensureTableSlot(slot.Symbol, idx)
			}
		}
	}
	for _, cv := range mod.ClassVTables {
		for _, slot := range cv.Slots {
			if idx, ok := b.funcIndexByName(slot.Symbol); ok {
				b.ensureTableSlot(slot.Symbol, idx)
			}
		}
	}

	entryIdx := -1
	if fn := findEntry(mod); fn != nil {
		if idx, ok := b.funcIndexByName(fn.Name); ok {
			b.addExport("chic_main", idx)
			entryIdx = idx
		}
	}

	for _, fn := range mod.Functions {
		if fn.Kind != mir.FuncTestCase {
			continue
		}
		if idx, ok := b.funcIndexByName(fn.Name); ok {
			b.addExport("test::"+fn.Name, idx)
		}
	}
	for _, exp := range mod.Exports {
		if exp.Category != mir.ExportFunction {
			continue
		}
		if idx, ok := b.funcIndexByName(exp.Symbol); ok {
			b.addExport(exp.Symbol, idx)
		}
	}

	out := b.Finish()

	res2 := &Result{
		Bytes:         out,
		FunctionNames: append([]string(nil), b.funcNames...),
		EntryIndex:    entryIdx,
	}
	for _, e := range b.exports {
		res2.ExportNames = append(res2.ExportNames, e.name)
	}
	for _, h := range b.importHooks {
		res2.ImportNames = append(res2.ImportNames, runtimehooks.Module+"."+h.Name)
	}
	return res2, nil
}

// collectVtableSlotSymbols returns the set of function names referenced by
// any trait or class vtable slot, which therefore need a funcref table
// entry for indirect (virtual/trait) dispatch.
func collectVtableSlotSymbols(mod *mir.MirModule) map[string]bool {
	names := make(map[string]bool)
	for _, tv := range mod.TraitVTables {
		for _, slot := range tv.Slots {
			names[slot.Symbol] = true
		}
	}
	for _, cv := range mod.ClassVTables {
		for _, slot := range cv.Slots {
			names[slot.Symbol] = true
		}
	}
	return names
}

// findEntry locates the module's entry point: a function whose canonical
// name is "Main" or ends in "::Main", matching S1's "Smoke::Main()".
func findEntry(mod *mir.MirModule) *mir.MirFunction {
	for _, fn := range mod.Functions {
		if fn.Name == "Main" || hasSuffixSeg(fn.Name, "Main") {
			return fn
		}
	}
	return nil
}

func hasSuffixSeg(name, seg string) bool {
	suffix := "::" + seg
	if len(name) < len(suffix) {
		return false
	}
	return name[len(name)-len(suffix):] == suffix
}

// DumpWat re-parses an emitted module and renders a minimal WAT text dump,
// per §4.3's "if requested, emit a WAT text dump by re-parsing and
// pretty-printing." This intentionally covers only the subset the emitter
// itself produces (see pkg/wasmvm for the full parser this re-uses).
func DumpWat(r *Result) string {
	var sb bytes.Buffer
	sb.WriteString("(module\n")
	for _, imp := range r.ImportNames {
		fmt.Fprintf(&sb, "  (import %q)\n", imp)
	}
	for i, name := range r.FunctionNames {
		fmt.Fprintf(&sb, "  (func $%s ;; index %d\n  )\n", name, i)
	}
	for _, e := range r.ExportNames {
		fmt.Fprintf(&sb, "  (export %q)\n", e)
	}
	sb.WriteString(")\n")
	return sb.String()
}
