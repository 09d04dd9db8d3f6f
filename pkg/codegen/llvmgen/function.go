package llvmgen

import (
	"fmt"
	"strings"

	"github.com/Chic-lang/Chic-sub010/pkg/mir"
	"github.com/Chic-lang/Chic-sub010/pkg/runtimehooks"
)

// functionEmitter lowers one (fn, tier) variant into an LLVM `define` block.
// Unlike wasmgen's relooper-style block cascade, LLVM natively supports a
// labeled-block CFG, so each MIR BasicBlock becomes one LLVM basic block
// addressed by `br`/`br label` — no dispatch scratch local is needed.
type functionEmitter struct {
	b    *ModuleBuilder
	fn   *mir.MirFunction
	tier Tier
	sym  string // mangled, tier-suffixed symbol for this variant

	buf       strings.Builder
	nextReg   int
	localAddr map[int]string // local index -> %name.addr
	localTy   map[int]string // local index -> llvm type string
	stmtIx    int             // running statement counter, for coverage_hit
}

func newFunctionEmitter(b *ModuleBuilder, fn *mir.MirFunction, tier Tier) *functionEmitter {
	sym := "@" + mangle(fn.Name)
	if tier != TierBaseline {
		sym += "__" + tier.String()
	} else if isMultiVersionCandidate(fn) {
		sym += "__Baseline"
	}
	return &functionEmitter{
		b:         b,
		fn:        fn,
		tier:      tier,
		sym:       sym,
		localAddr: make(map[int]string),
		localTy:   make(map[int]string),
	}
}

func (fe *functionEmitter) reg() string {
	fe.nextReg++
	return fmt.Sprintf("%%r%d", fe.nextReg)
}

// emit lowers the function body and returns the complete `define ... { ... }`
// text for this variant.
func (fe *functionEmitter) emit() (string, error) {
	body := fe.fn.Body
	ret := "void"
	if fe.fn.Sig.Ret != nil {
		ret = llvmType(fe.fn.Sig.Ret, fe.b.res)
	}
	sret := ""
	params := make([]string, 0, len(fe.fn.Sig.Params))
	aggregateReturn := ret != "void" && (strings.HasPrefix(ret, "{") || strings.HasPrefix(ret, "["))
	if aggregateReturn {
		sret = fmt.Sprintf("%s* sret(%s) %%sret", ret, ret)
		params = append(params, sret)
		ret = "void"
	}
	for i, p := range fe.fn.Sig.Params {
		params = append(params, fmt.Sprintf("%s %%arg%d", llvmType(p, fe.b.res), i))
	}

	fmt.Fprintf(&fe.buf, "define %s %s(%s)%s {\n", ret, fe.sym, strings.Join(params, ", "), attrString(fe.fn))
	fe.buf.WriteString("entry:\n")

	if fe.tier != TierBaseline && !fe.tierMatchesTarget() {
		// Variant without hardware support on this target: trap body (§4.4).
		fe.b.declareRaw("@llvm.trap", "declare void @llvm.trap()")
		fe.buf.WriteString("  call void @llvm.trap()\n  unreachable\n}\n\n")
		return fe.buf.String(), nil
	}

	if body == nil {
		// extern binding reached the backend: nothing to lower, caller
		// handles declarations separately.
		fe.buf.WriteString("  unreachable\n}\n\n")
		return fe.buf.String(), nil
	}

	for i, local := range body.Locals {
		t := llvmType(local.Ty, fe.b.res)
		fe.localTy[i] = t
		if t == "void" {
			continue // unit locals have no storage
		}
		addr := fmt.Sprintf("%%l%d.addr", i)
		fe.localAddr[i] = addr
		fmt.Fprintf(&fe.buf, "  %s = alloca %s\n", addr, t)
	}
	for i, local := range body.Locals {
		if local.Kind == mir.LocalArg {
			if aggregateReturn && local.ArgIndex == 0 && local.Mode != mir.ModeValue {
				continue
			}
			fmt.Fprintf(&fe.buf, "  store %s %%arg%d, %s* %s\n",
				fe.localTy[i], local.ArgIndex, fe.localTy[i], fe.localAddr[i])
		}
	}
	fe.buf.WriteString("  br label %bb0\n\n")

	for i, block := range body.Blocks {
		fmt.Fprintf(&fe.buf, "bb%d:\n", i)
		for _, stmt := range block.Statements {
			if fe.b.opt.Coverage && block.SpanLabel != "" {
				if err := fe.emitCoverageHit(); err != nil {
					return "", err
				}
			}
			if err := fe.emitStatement(stmt); err != nil {
				return "", fmt.Errorf("llvmgen: %s: block %d: %w", fe.fn.Name, block.Id, err)
			}
			fe.stmtIx++
		}
		if err := fe.emitTerminator(block.Terminator, aggregateReturn, ret, sret); err != nil {
			return "", fmt.Errorf("llvmgen: %s: block %d: %w", fe.fn.Name, block.Id, err)
		}
		fe.buf.WriteString("\n")
	}

	fe.buf.WriteString("}\n\n")
	return fe.buf.String(), nil
}

func (fe *functionEmitter) emitCoverageHit() error {
	sym, err := fe.b.declareHook(runtimehooks.HookCoverageHit)
	if err != nil {
		return err
	}
	id := (int64(fe.funcTableIndex()) << 32) | int64(fe.stmtIx)
	fmt.Fprintf(&fe.buf, "  call void %s(i64 %d)\n", sym, id)
	return nil
}

// funcTableIndex is a stable per-module ordinal used only for the
// coverage_hit id's high bits; the LLVM backend has no import table to
// index into (unlike wasmgen), so it hashes the canonical name instead of
// assigning a dense index, trading a slightly larger id space for not
// needing a second module-wide numbering pass.
func (fe *functionEmitter) funcTableIndex() int32 {
	var h int32
	for _, c := range fe.fn.Name {
		h = h*31 + int32(c)
	}
	if h < 0 {
		h = -h
	}
	return h
}

// tierMatchesTarget reports whether this variant's ISA family exists on
// the requested triple at all.
func (fe *functionEmitter) tierMatchesTarget() bool {
	target := fe.b.opt.Target
	switch fe.tier.Arch() {
	case ArchAarch64:
		return strings.Contains(target, "arm64") || strings.Contains(target, "aarch64") || target == ""
	case ArchX86:
		return strings.Contains(target, "x86_64") || strings.Contains(target, "amd64")
	default:
		return true
	}
}

// attrString renders a function's optimization hints as LLVM attributes.
// Mutually exclusive hints resolve in favor of the stronger directive:
// always_inline over never_inline, hot over cold (§4.4).
func attrString(fn *mir.MirFunction) string {
	var attrs []string
	switch {
	case fn.AlwaysInline:
		attrs = append(attrs, "alwaysinline")
	case fn.NeverInline:
		attrs = append(attrs, "noinline")
	}
	switch {
	case fn.Hot:
		attrs = append(attrs, "hot")
	case fn.Cold:
		attrs = append(attrs, "cold")
	}
	if len(attrs) == 0 {
		return ""
	}
	return " " + strings.Join(attrs, " ")
}

// isMultiVersionCandidate decides whether a function is lowered once
// (Baseline only, unsuffixed symbol) or once per enabled tier behind a
// dispatcher. A function qualifies when any parameter, local, or its return
// type is a fixed-lane SIMD vector — the only type §4.4's tier intrinsics
// operate over.
func isMultiVersionCandidate(fn *mir.MirFunction) bool {
	if tyHasVector(fn.Sig.Ret) {
		return true
	}
	for _, p := range fn.Sig.Params {
		if tyHasVector(p) {
			return true
		}
	}
	if fn.Body == nil {
		return false
	}
	for _, l := range fn.Body.Locals {
		if tyHasVector(l.Ty) {
			return true
		}
	}
	return false
}

func tyHasVector(t mir.Ty) bool {
	switch ty := t.(type) {
	case nil:
		return false
	case mir.TyVector:
		return true
	case mir.TyPointer:
		return tyHasVector(ty.Elem)
	case mir.TyRef:
		return tyHasVector(ty.Elem)
	case mir.TySpan:
		return tyHasVector(ty.Elem)
	case mir.TyArray:
		return tyHasVector(ty.Elem)
	default:
		return false
	}
}
