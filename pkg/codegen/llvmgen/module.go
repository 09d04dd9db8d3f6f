package llvmgen

import (
	"bytes"
	"fmt"

	"github.com/Chic-lang/Chic-sub010/pkg/layout"
	"github.com/Chic-lang/Chic-sub010/pkg/mir"
	"github.com/Chic-lang/Chic-sub010/pkg/runtimehooks"
)

// ModuleBuilder accumulates one MirModule's LLVM IR text, mirroring
// wasmgen.ModuleBuilder's role: own the dedup tables (declarations,
// interned strings, statics) that every function emitter shares, and
// assemble them into one textual module at Finish.
type ModuleBuilder struct {
	res *layout.Resolver
	mod *mir.MirModule
	opt Options

	declared map[string]bool // "@name" -> already-declared, across hooks/intrinsics/runtime decls

	globals bytes.Buffer
	funcs   bytes.Buffer

	stringSym map[mir.StrId]string
	staticSym map[mir.StaticId]string

	dispatchGlobals map[string]bool // multi-version dispatcher cache globals, by function symbol
}

func NewModuleBuilder(res *layout.Resolver, mod *mir.MirModule, opt Options) *ModuleBuilder {
	return &ModuleBuilder{
		res:             res,
		mod:             mod,
		opt:             opt,
		declared:        make(map[string]bool),
		stringSym:       make(map[mir.StrId]string),
		staticSym:       make(map[mir.StaticId]string),
		dispatchGlobals: make(map[string]bool),
	}
}

// declareHook ensures `declare <sig> @chic_rt_<name>(...)` is emitted once
// and returns the callable symbol name.
func (b *ModuleBuilder) declareHook(id runtimehooks.HookID) (string, error) {
	h, ok := runtimehooks.ByID(id)
	if !ok {
		return "", fmt.Errorf("llvmgen: unknown runtime hook id %d", id)
	}
	sym := "@chic_rt_" + h.Name
	if b.declared[sym] {
		return sym, nil
	}
	b.declared[sym] = true
	ret := "void"
	if len(h.Results) == 1 {
		ret = llvmValueType(h.Results[0])
	} else if len(h.Results) > 1 {
		parts := make([]string, len(h.Results))
		for i, r := range h.Results {
			parts[i] = llvmValueType(r)
		}
		ret = "{ " + joinComma(parts) + " }"
	}
	parts := make([]string, len(h.Params))
	for i, p := range h.Params {
		parts[i] = llvmValueType(p)
	}
	fmt.Fprintf(&b.globals, "declare %s %s(%s)\n", ret, sym, joinComma(parts))
	return sym, nil
}

func llvmValueType(v interface{ String() string }) string {
	switch v.String() {
	case "i32":
		return "i32"
	case "i64":
		return "i64"
	case "f32":
		return "float"
	case "f64":
		return "double"
	default:
		return "i32"
	}
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

// declareRaw emits a single `declare ...` line at most once, keyed by its
// exact text — used for LLVM intrinsics and the handful of libc/ISA-probe
// externs §4.4 needs (sysctlbyname, getauxval, llvm.trap, llvm.fma.*, ...).
func (b *ModuleBuilder) declareRaw(symbol, declLine string) {
	if b.declared[symbol] {
		return
	}
	b.declared[symbol] = true
	b.globals.WriteString(declLine)
	b.globals.WriteString("\n")
}

// stringSymbol returns (creating if needed) the global symbol for an
// interned string literal, emitting its `private constant` definition.
func (b *ModuleBuilder) stringSymbol(id mir.StrId) string {
	if sym, ok := b.stringSym[id]; ok {
		return sym
	}
	text := b.mod.StringText(id)
	sym := fmt.Sprintf("@.str.%d", id)
	b.stringSym[id] = sym
	fmt.Fprintf(&b.globals, "%s = private unnamed_addr constant [%d x i8] c\"%s\\00\"\n",
		sym, len(text)+1, escapeString(text))
	return sym
}

// staticSymbol returns (creating if needed) the global symbol backing a
// module-level static variable.
func (b *ModuleBuilder) staticSymbol(sv *mir.StaticVar) string {
	if sym, ok := b.staticSym[sv.Id]; ok {
		return sym
	}
	sym := "@" + mangle(sv.Name)
	b.staticSym[sv.Id] = sym
	t := llvmType(sv.Ty, b.res)
	init := zeroInitializer(t)
	fmt.Fprintf(&b.globals, "%s = internal global %s %s\n", sym, t, init)
	return sym
}

func zeroInitializer(t string) string {
	switch t {
	case "float", "double":
		return "0.0"
	}
	if len(t) > 0 && t[len(t)-1] == '*' {
		return "null"
	}
	if len(t) > 0 && (t[0] == '[' || t[0] == '{' || t[0] == '<') {
		return "zeroinitializer"
	}
	return "0"
}

// dispatchCacheGlobal declares (once) the module-private i8 cache backing a
// multi-versioned function's resolved-tier dispatcher, per §4.4.
func (b *ModuleBuilder) dispatchCacheGlobal(fnSym string) string {
	name := "@" + fnSym[1:] + ".tier_cache"
	if b.dispatchGlobals[name] {
		return name
	}
	b.dispatchGlobals[name] = true
	fmt.Fprintf(&b.globals, "%s = internal global i8 -1\n", name)
	return name
}

// Finish assembles the header, declarations/globals, and function bodies
// into one textual LLVM module.
func (b *ModuleBuilder) Finish() string {
	var out bytes.Buffer
	out.WriteString("; generated by the Chic code-generation core's LLVM backend\n")
	if b.opt.Target != "" {
		fmt.Fprintf(&out, "target triple = \"%s\"\n\n", b.opt.Target)
	}
	if b.opt.SveBits != 0 {
		fmt.Fprintf(&out, "@chic_cpu_sve_bits = internal global i32 %d\n", b.opt.SveBits)
	} else {
		out.WriteString("@chic_cpu_sve_bits = internal global i32 0\n")
	}
	out.Write(b.globals.Bytes())
	out.WriteString("\n")
	out.Write(b.funcs.Bytes())
	return out.String()
}
