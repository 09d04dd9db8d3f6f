package llvmgen

import (
	"fmt"
	"log"
	"strings"

	"github.com/Chic-lang/Chic-sub010/pkg/layout"
	"github.com/Chic-lang/Chic-sub010/pkg/mir"
)

// Result is everything Emit produces for one MIR module.
type Result struct {
	IR         string
	EntrySymbol string // mangled entry symbol, "" if the module has no Main
}

// Emit lowers an entire MirModule into textual LLVM IR, per §4.4. Each
// multi-version candidate is emitted once per enabled tier plus a probing
// dispatcher under the unsuffixed symbol; everything else is lowered once.
func Emit(mod *mir.MirModule, res *layout.Resolver, opt Options) (*Result, error) {
	b := NewModuleBuilder(res, mod, opt)

	tiers := opt.EnabledOrDefault()
	for _, fn := range mod.Functions {
		if fn.Body == nil {
			if fn.Extern != nil {
				declareExtern(b, fn)
			}
			continue
		}
		if opt.Trace {
			log.Printf("llvmgen: emitting %s", fn.Name)
		}
		if isMultiVersionCandidate(fn) {
			for _, tier := range tiers {
				fe := newFunctionEmitter(b, fn, tier)
				text, err := fe.emit()
				if err != nil {
					return nil, err
				}
				b.funcs.WriteString(text)
			}
			if err := emitDispatcher(b, fn, tiers); err != nil {
				return nil, err
			}
		} else {
			fe := newFunctionEmitter(b, fn, TierBaseline)
			text, err := fe.emit()
			if err != nil {
				return nil, err
			}
			b.funcs.WriteString(text)
		}
	}

	entry := ""
	for _, fn := range mod.Functions {
		if fn.Name == "Main" || strings.HasSuffix(fn.Name, "::Main") {
			entry = mangle(fn.Name)
			break
		}
	}

	return &Result{IR: b.Finish(), EntrySymbol: entry}, nil
}

// declareExtern emits a bare declaration for an extern-bound function so
// call sites referencing it stay resolvable; the real symbol comes from the
// named library at link time.
func declareExtern(b *ModuleBuilder, fn *mir.MirFunction) {
	sym := "@" + mangle(fn.Name)
	if fn.Extern.Alias != "" {
		sym = "@" + fn.Extern.Alias
	}
	ret := "void"
	if fn.Sig.Ret != nil && !isUnit(fn.Sig.Ret) {
		ret = llvmType(fn.Sig.Ret, b.res)
	}
	params := make([]string, len(fn.Sig.Params))
	for i, p := range fn.Sig.Params {
		params[i] = llvmType(p, b.res)
	}
	variadic := ""
	if fn.Sig.Variadic {
		variadic = ", ..."
		if len(params) == 0 {
			variadic = "..."
		}
	}
	b.declareRaw(sym, fmt.Sprintf("declare %s %s(%s%s)", ret, sym, strings.Join(params, ", "), variadic))
}

// isAppleTarget reports whether the requested triple routes ISA probes
// through sysctlbyname rather than getauxval, per §4.4.
func (o Options) isAppleTarget() bool {
	return strings.Contains(o.Target, "apple")
}

// emitDispatcher emits the unsuffixed symbol for a multi-versioned
// function: a probe-once trampoline that caches the highest available tier
// in a module-private global and switches every call to the matching
// variant (§4.4, design note "Multi-versioned dispatch").
func emitDispatcher(b *ModuleBuilder, fn *mir.MirFunction, tiers []Tier) error {
	sym := "@" + mangle(fn.Name)
	cache := b.dispatchCacheGlobal(sym)

	ret := "void"
	if fn.Sig.Ret != nil && !isUnit(fn.Sig.Ret) {
		ret = llvmType(fn.Sig.Ret, b.res)
	}
	params := make([]string, len(fn.Sig.Params))
	args := make([]string, len(fn.Sig.Params))
	for i, p := range fn.Sig.Params {
		t := llvmType(p, b.res)
		params[i] = fmt.Sprintf("%s %%arg%d", t, i)
		args[i] = fmt.Sprintf("%s %%arg%d", t, i)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "define %s %s(%s) {\nentry:\n", ret, sym, strings.Join(params, ", "))
	fmt.Fprintf(&sb, "  %%cached = load i8, i8* %s\n", cache)
	sb.WriteString("  %probed = icmp sge i8 %cached, 0\n")
	sb.WriteString("  br i1 %probed, label %dispatch, label %probe\n\nprobe:\n")

	if b.opt.isAppleTarget() {
		b.declareRaw("@sysctlbyname",
			"declare i32 @sysctlbyname(i8*, i8*, i64*, i8*, i64)")
		b.declareRaw("@chic_arm_sysctl_flag",
			"declare i32 @chic_arm_sysctl_flag(i8*)")
		emitAppleProbe(b, &sb, tiers)
	} else {
		b.declareRaw("@getauxval", "declare i64 @getauxval(i64)")
		emitLinuxProbe(&sb, tiers)
	}
	fmt.Fprintf(&sb, "  store i8 %%best, i8* %s\n", cache)
	sb.WriteString("  br label %dispatch\n\ndispatch:\n")
	fmt.Fprintf(&sb, "  %%tier = load i8, i8* %s\n", cache)
	fmt.Fprintf(&sb, "  switch i8 %%tier, label %%call.Baseline [\n")
	for _, t := range tiers {
		if t == TierBaseline {
			continue
		}
		fmt.Fprintf(&sb, "    i8 %d, label %%call.%s\n", int(t), t)
	}
	sb.WriteString("  ]\n\n")

	for _, t := range tiers {
		variant := sym + "__" + t.String()
		fmt.Fprintf(&sb, "call.%s:\n", t)
		if ret == "void" {
			fmt.Fprintf(&sb, "  call void %s(%s)\n  ret void\n", variant, strings.Join(args, ", "))
		} else {
			fmt.Fprintf(&sb, "  %%r.%s = call %s %s(%s)\n  ret %s %%r.%s\n",
				t, ret, variant, strings.Join(args, ", "), ret, t)
		}
	}
	sb.WriteString("}\n\n")
	b.funcs.WriteString(sb.String())
	return nil
}

// emitAppleProbe queries each tier's hw.optional.arm sysctl flag via the
// chic_arm_sysctl_flag helper, low tier to high so later selects override.
func emitAppleProbe(b *ModuleBuilder, sb *strings.Builder, tiers []Tier) {
	best := "0"
	n := 0
	for _, t := range tiers {
		name, ok := t.sysctlName()
		if !ok {
			continue
		}
		strSym := fmt.Sprintf("@.sysctl.%s", t)
		b.declareRaw(strSym, fmt.Sprintf("%s = private unnamed_addr constant [%d x i8] c\"%s\\00\"",
			strSym, len(name)+1, name))
		fmt.Fprintf(sb, "  %%flag%d = call i32 @chic_arm_sysctl_flag(i8* getelementptr ([%d x i8], [%d x i8]* %s, i64 0, i64 0))\n",
			n, len(name)+1, len(name)+1, strSym)
		fmt.Fprintf(sb, "  %%have%d = icmp ne i32 %%flag%d, 0\n", n, n)
		fmt.Fprintf(sb, "  %%best%d = select i1 %%have%d, i8 %d, i8 %s\n", n, n, int(t), best)
		best = fmt.Sprintf("%%best%d", n)
		n++
	}
	fmt.Fprintf(sb, "  %%best = add i8 %s, 0\n", best)
}

// emitLinuxProbe reads AT_HWCAP (auxv type 16) once and tests each tier's
// capability bit, low tier to high.
func emitLinuxProbe(sb *strings.Builder, tiers []Tier) {
	sb.WriteString("  %hwcap = call i64 @getauxval(i64 16)\n")
	best := "0"
	n := 0
	for _, t := range tiers {
		bit, ok := t.hwcapBit()
		if !ok {
			continue
		}
		fmt.Fprintf(sb, "  %%masked%d = and i64 %%hwcap, %d\n", n, bit)
		fmt.Fprintf(sb, "  %%have%d = icmp ne i64 %%masked%d, 0\n", n, n)
		fmt.Fprintf(sb, "  %%best%d = select i1 %%have%d, i8 %d, i8 %s\n", n, n, int(t), best)
		best = fmt.Sprintf("%%best%d", n)
		n++
	}
	fmt.Fprintf(sb, "  %%best = add i8 %s, 0\n", best)
}
