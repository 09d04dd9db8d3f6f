package llvmgen

import (
	"fmt"
	"strings"

	"github.com/Chic-lang/Chic-sub010/pkg/layout"
	"github.com/Chic-lang/Chic-sub010/pkg/mir"
	"github.com/Chic-lang/Chic-sub010/pkg/runtimehooks"
	"github.com/Chic-lang/Chic-sub010/pkg/typeid"
)

// emitTerminator lowers one MIR terminator. LLVM's native labeled-block CFG
// means this is considerably more direct than wasmgen's relooper-style
// cascade: every branch is a plain `br`/`br i1`.
func (fe *functionEmitter) emitTerminator(term mir.Terminator, aggregateReturn bool, retTy, sretParam string) error {
	switch t := term.(type) {
	case mir.TermGoto:
		fmt.Fprintf(&fe.buf, "  br label %%bb%d\n", t.Target)
		return nil
	case mir.TermSwitchInt:
		return fe.emitSwitchInt(t)
	case mir.TermMatch:
		return fe.emitMatch(t)
	case mir.TermCall:
		return fe.emitCall(t)
	case mir.TermReturn:
		return fe.emitReturn(aggregateReturn, retTy, sretParam)
	case mir.TermThrow:
		return fe.emitThrow(t)
	case mir.TermPanic:
		return fe.emitPanicTerm()
	case mir.TermUnreachable:
		fe.buf.WriteString("  unreachable\n")
		return nil
	case mir.TermAwait:
		return fe.emitAwait(t)
	case mir.TermYield:
		return fe.emitYield(t)
	case mir.TermPending:
		return mir.NewCodegenError(fe.fn.Name, "unresolved pending terminator: %s", t.Reason)
	default:
		return fmt.Errorf("llvmgen: unhandled terminator %T", term)
	}
}

func (fe *functionEmitter) emitSwitchInt(t mir.TermSwitchInt) error {
	v, err := fe.loadOperand(t.Value)
	if err != nil {
		return err
	}
	fmt.Fprintf(&fe.buf, "  switch %s %s, label %%bb%d [\n", v.Ty, v.Val, t.Otherwise)
	for _, arm := range t.Arms {
		fmt.Fprintf(&fe.buf, "    %s %d, label %%bb%d\n", v.Ty, arm.Value, arm.Target)
	}
	fe.buf.WriteString("  ]\n")
	return nil
}

func (fe *functionEmitter) emitMatch(t mir.TermMatch) error {
	v, err := fe.loadOperand(t.Value)
	if err != nil {
		return err
	}
	for i, arm := range t.Arms {
		switch pat := arm.Pattern.(type) {
		case mir.PatWildcard, mir.PatBinding:
			fmt.Fprintf(&fe.buf, "  br label %%bb%d\n", arm.Target)
			return nil
		case mir.PatLiteral:
			cv := fe.constVal(pat.Value)
			if err := fe.emitCondBranch(v, cv, arm.Target, i); err != nil {
				return err
			}
		case mir.PatEnumUnit:
			disc, err := fe.enumDiscriminant(t.Value, pat.Variant)
			if err != nil {
				return err
			}
			addr, err := fe.argAddress(t.Value)
			if err != nil {
				return err
			}
			typed := fe.reg()
			fmt.Fprintf(&fe.buf, "  %s = bitcast i8* %s to i32*\n", typed, addr)
			discR := fe.reg()
			fmt.Fprintf(&fe.buf, "  %s = load i32, i32* %s\n", discR, typed)
			cv := llvmVal{Ty: "i32", Val: fmt.Sprintf("%d", disc)}
			if err := fe.emitCondBranch(llvmVal{Ty: "i32", Val: discR}, cv, arm.Target, i); err != nil {
				return err
			}
		case mir.PatEnumPayload:
			return mir.NewCodegenError(fe.fn.Name, "Match arm with payload-carrying enum pattern %q is not supported by the LLVM backend", pat.Variant)
		default:
			return fmt.Errorf("llvmgen: unhandled pattern %T", arm.Pattern)
		}
	}
	fmt.Fprintf(&fe.buf, "  br label %%bb%d\n", t.Otherwise)
	return nil
}

// enumDiscriminant resolves a Match arm's variant name to its wire
// discriminant via the matched operand's enum layout, mirroring the drop
// glue's lookup. An integer-literal variant (pre-resolved discriminant)
// passes through; anything else unresolvable is a hard error.
func (fe *functionEmitter) enumDiscriminant(value mir.Operand, variant string) (int64, error) {
	if p, ok := matchPlace(value); ok && p.Local < len(fe.fn.Body.Locals) {
		if ty, ok := fe.fn.Body.Locals[p.Local].Ty.(mir.TyNamed); ok {
			kind, v, err := fe.b.res.LayoutForName(ty.Name)
			if err == nil && kind == layout.LayoutEnum {
				l := v.(*mir.EnumLayout)
				for _, ev := range l.Variants {
					if ev.Name == variant {
						return ev.Discriminant, nil
					}
				}
				return 0, mir.NewCodegenError(fe.fn.Name, "enum %s has no variant %q", ty.Name, variant)
			}
		}
	}
	if n, ok := parseDiscriminantLiteral(variant); ok {
		return n, nil
	}
	return 0, mir.NewCodegenError(fe.fn.Name, "cannot resolve discriminant for Match variant %q", variant)
}

func matchPlace(op mir.Operand) (mir.Place, bool) {
	switch o := op.(type) {
	case mir.OperandCopy:
		return o.Place, true
	case mir.OperandMove:
		return o.Place, true
	default:
		return mir.Place{}, false
	}
}

// parseDiscriminantLiteral accepts a pre-resolved numeric discriminant in
// place of a variant name.
func parseDiscriminantLiteral(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
		if s == "" {
			return 0, false
		}
	}
	var n int64
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int64(c-'0')
	}
	if neg {
		n = -n
	}
	return n, true
}

func (fe *functionEmitter) emitCondBranch(lhs, rhs llvmVal, target mir.BlockId, armIdx int) error {
	rhsVal := fe.coerce(rhs, lhs.Ty)
	cond := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = icmp eq %s %s, %s\n", cond, lhs.Ty, lhs.Val, rhsVal)
	nextLabel := fmt.Sprintf("bb%d.arm%d.next", fe.armParent(), armIdx)
	fmt.Fprintf(&fe.buf, "  br i1 %s, label %%bb%d, label %%%s\n", cond, target, nextLabel)
	fmt.Fprintf(&fe.buf, "%s:\n", nextLabel)
	return nil
}

func (fe *functionEmitter) armParent() int {
	return fe.nextReg
}

func (fe *functionEmitter) emitCall(t mir.TermCall) error {
	calleeName := canonicalizeCalleeName(t.CalleeName)
	calleeFn := fe.b.mod.FunctionByName(calleeName)

	var args []llvmVal
	for i, arg := range t.Args {
		if arg.Mode != mir.ModeValue {
			// In/Ref/Out arguments pass the place's address, typed to the
			// callee's declared pointer parameter when it is known.
			addr, err := fe.argAddress(arg.Operand)
			if err != nil {
				return err
			}
			ty := "i8*"
			if calleeFn != nil && i < len(calleeFn.Sig.Params) {
				ty = llvmType(calleeFn.Sig.Params[i], fe.b.res)
			}
			if ty != "i8*" {
				typed := fe.reg()
				fmt.Fprintf(&fe.buf, "  %s = bitcast i8* %s to %s\n", typed, addr, ty)
				addr = typed
			}
			args = append(args, llvmVal{Ty: ty, Val: addr})
			continue
		}
		v, err := fe.loadOperand(arg.Operand)
		if err != nil {
			return err
		}
		args = append(args, v)
	}

	retTy := "void"
	aggregateReturn := false
	if calleeFn != nil && calleeFn.Sig.Ret != nil && !isUnit(calleeFn.Sig.Ret) {
		retTy = llvmType(calleeFn.Sig.Ret, fe.b.res)
		aggregateReturn = strings.HasPrefix(retTy, "{") || strings.HasPrefix(retTy, "[")
	}

	// t.Func for a Trait/Virtual dispatch carries a reference to the object
	// (already a pointer-typed operand, never the aggregate by value), so
	// loadSlot's bitcast-to-i8* is always pointer-to-pointer here.
	var callee string
	switch disp := t.Dispatch.(type) {
	case mir.DispatchTrait:
		obj, err := fe.loadOperand(t.Func)
		if err != nil {
			return err
		}
		vt, err := fe.loadSlot(obj, 1) // trait object's vtable pointer sits one word past the data pointer
		if err != nil {
			return err
		}
		callee, err = fe.loadSlot(llvmVal{Ty: "i8*", Val: vt}, disp.SlotIndex)
		if err != nil {
			return err
		}
	case mir.DispatchVirtual:
		obj, err := fe.loadOperand(t.Func)
		if err != nil {
			return err
		}
		vt, err := fe.loadSlot(obj, 0) // vtable pointer sits at offset 0 of the object
		if err != nil {
			return err
		}
		callee, err = fe.loadSlot(llvmVal{Ty: "i8*", Val: vt}, disp.SlotIndex)
		if err != nil {
			return err
		}
	default: // DispatchNone
		if t.CalleeName == "" {
			v, err := fe.loadOperand(t.Func)
			if err != nil {
				return err
			}
			callee = v.Val
		} else {
			callee = "@" + mangle(calleeName)
		}
	}

	var argParts []string
	var sretAddr string
	if aggregateReturn && t.Destination != nil {
		addr, err := fe.addressOf(*t.Destination)
		if err != nil {
			return err
		}
		typed := fe.reg()
		fmt.Fprintf(&fe.buf, "  %s = bitcast i8* %s to %s*\n", typed, addr, retTy)
		sretAddr = typed
		argParts = append(argParts, fmt.Sprintf("%s* sret(%s) %s", retTy, retTy, sretAddr))
	}
	for _, a := range args {
		argParts = append(argParts, fmt.Sprintf("%s %s", a.Ty, a.Val))
	}

	effectiveRet := retTy
	if aggregateReturn {
		effectiveRet = "void"
	}

	if effectiveRet == "void" {
		fmt.Fprintf(&fe.buf, "  call void %s(%s)\n", callee, strings.Join(argParts, ", "))
	} else {
		r := fe.reg()
		fmt.Fprintf(&fe.buf, "  %s = call %s %s(%s)\n", r, effectiveRet, callee, strings.Join(argParts, ", "))
		if t.Destination != nil {
			if err := fe.storeToPlace(*t.Destination, llvmVal{Ty: effectiveRet, Val: r}); err != nil {
				return err
			}
		}
	}

	for _, arg := range t.Args {
		if arg.Mode != mir.ModeValue {
			sym, err := fe.b.declareHook(runtimehooks.HookBorrowRelease)
			if err != nil {
				return err
			}
			fmt.Fprintf(&fe.buf, "  call void %s(i32 %d)\n", sym, arg.Borrow)
		}
	}

	pendSym, err := fe.b.declareHook(runtimehooks.HookHasPendingException)
	if err != nil {
		return err
	}
	pend := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = call i32 %s()\n", pend, pendSym)
	pendBool := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = icmp ne i32 %s, 0\n", pendBool, pend)
	unwindLabel := fmt.Sprintf("bb.unwind.%d", fe.nextReg)
	contLabel := fmt.Sprintf("bb.cont.%d", fe.nextReg)
	fmt.Fprintf(&fe.buf, "  br i1 %s, label %%%s, label %%%s\n", pendBool, unwindLabel, contLabel)
	fmt.Fprintf(&fe.buf, "%s:\n", unwindLabel)
	if t.Unwind != nil {
		fmt.Fprintf(&fe.buf, "  br label %%bb%d\n", *t.Unwind)
	} else {
		fe.buf.WriteString("  ret ")
		if effectiveRet == "void" {
			fe.buf.WriteString("void\n")
		} else {
			fmt.Fprintf(&fe.buf, "%s zeroinitializer\n", effectiveRet)
		}
	}
	fmt.Fprintf(&fe.buf, "%s:\n", contLabel)
	fmt.Fprintf(&fe.buf, "  br label %%bb%d\n", t.Target)
	return nil
}

// argAddress resolves a by-reference call argument to its i8* address.
func (fe *functionEmitter) argAddress(op mir.Operand) (string, error) {
	switch o := op.(type) {
	case mir.OperandCopy:
		return fe.addressOf(o.Place)
	case mir.OperandMove:
		return fe.addressOf(o.Place)
	default:
		return "", fmt.Errorf("llvmgen: by-reference argument must be a place, got %T", op)
	}
}

// loadSlot loads the pointer-sized value at `slot * pointer-width` bytes
// past obj, used for both the trait-object vtable-pointer read (slot 1,
// i.e. one pointer-width past the data pointer) and vtable-slot reads.
func (fe *functionEmitter) loadSlot(obj llvmVal, slot int) (string, error) {
	r := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = bitcast %s %s to i8*\n", r, obj.Ty, obj.Val)
	ptr := r
	off := slot * fe.b.res.PointerWidthBytes()
	if off != 0 {
		next := fe.reg()
		fmt.Fprintf(&fe.buf, "  %s = getelementptr i8, i8* %s, i64 %d\n", next, ptr, off)
		ptr = next
	}
	typed := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = bitcast i8* %s to i8**\n", typed, ptr)
	out := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = load i8*, i8** %s\n", out, typed)
	return out, nil
}

// canonicalizeCalleeName mirrors wasmgen's: "." and "::" are interchangeable,
// generic instantiations are stripped to their base name.
func canonicalizeCalleeName(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		if name[i] == '<' {
			break
		}
		if name[i] == '.' {
			out = append(out, ':', ':')
			continue
		}
		out = append(out, name[i])
	}
	return string(out)
}

func (fe *functionEmitter) emitReturn(aggregateReturn bool, retTy, sretParam string) error {
	body := fe.fn.Body
	var retLocal int = -1
	for i, l := range body.Locals {
		if l.Kind == mir.LocalReturn {
			retLocal = i
			break
		}
	}
	if retLocal < 0 || isUnit(fe.fn.Sig.Ret) {
		fe.buf.WriteString("  ret void\n")
		return nil
	}
	if aggregateReturn {
		sretName := sretParam
		if idx := strings.IndexByte(sretName, ' '); idx >= 0 {
			sretName = sretName[strings.LastIndexByte(sretName, ' ')+1:]
		}
		src := fe.reg()
		srcTy := fe.localTy[retLocal]
		fmt.Fprintf(&fe.buf, "  %s = bitcast %s* %s to i8*\n", src, srcTy, fe.localAddr[retLocal])
		dst := fe.reg()
		fmt.Fprintf(&fe.buf, "  %s = bitcast %s* %s to i8*\n", dst, retTy, sretName)
		size, _, err := fe.b.res.SizeAndAlignForTy(fe.fn.Sig.Ret)
		if err != nil {
			return err
		}
		fe.b.declareRaw("@llvm.memcpy.p0i8.p0i8.i64",
			"declare void @llvm.memcpy.p0i8.p0i8.i64(i8*, i8*, i64, i1)")
		fmt.Fprintf(&fe.buf, "  call void @llvm.memcpy.p0i8.p0i8.i64(i8* %s, i8* %s, i64 %d, i1 false)\n", dst, src, size)
		fe.buf.WriteString("  ret void\n")
		return nil
	}
	r := fe.reg()
	declTy := fe.localTy[retLocal]
	fmt.Fprintf(&fe.buf, "  %s = load %s, %s* %s\n", r, declTy, declTy, fe.localAddr[retLocal])
	fmt.Fprintf(&fe.buf, "  ret %s %s\n", declTy, r)
	return nil
}

// emitThrow uses the LLVM-specific chic_rt_throw(i64 type_identity, i64
// payload) signature named in §4.4, which differs from the shared
// runtime-hook catalog's (i32, i64) throw signature — that catalog entry
// is WASM's stable import-table shape, not a cross-backend ABI. The LLVM
// side always has a 64-bit identity available, so it doesn't need the
// narrower i32 the WASM import table settled for.
const llvmThrowSymbol = "@chic_rt_throw"

func (fe *functionEmitter) emitThrow(t mir.TermThrow) error {
	exc, err := fe.loadOperand(t.Exception)
	if err != nil {
		return err
	}
	fe.b.declareRaw(llvmThrowSymbol, "declare void "+llvmThrowSymbol+"(i64, i64)")
	id := typeid.Identity(typeCanonicalName(t.Ty))
	payload := fe.toI64(exc)
	fmt.Fprintf(&fe.buf, "  call void %s(i64 %d, i64 %s)\n", llvmThrowSymbol, int64(id), payload)
	fe.buf.WriteString("  unreachable\n")
	return nil
}

func (fe *functionEmitter) emitPanicTerm() error {
	sym, err := fe.b.declareHook(runtimehooks.HookPanic)
	if err != nil {
		return err
	}
	fmt.Fprintf(&fe.buf, "  call void %s(i32 %d)\n", sym, panicGeneric)
	fe.buf.WriteString("  unreachable\n")
	return nil
}

const panicGeneric = 0x2000

func (fe *functionEmitter) emitAwait(t mir.TermAwait) error {
	future, err := fe.loadOperand(t.Future)
	if err != nil {
		return err
	}
	completedPtr := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = bitcast %s %s to i32*\n", completedPtr, future.Ty, future.Val)
	completed := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = load i32, i32* %s\n", completed, completedPtr)
	cond := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = icmp ne i32 %s, 0\n", cond, completed)
	pendLabel := fmt.Sprintf("await.pending.%d", fe.nextReg)
	resumeLabel := fmt.Sprintf("bb%d", t.Resume)
	fmt.Fprintf(&fe.buf, "  br i1 %s, label %%%s, label %%%s\n", cond, resumeLabel, pendLabel)
	fmt.Fprintf(&fe.buf, "%s:\n", pendLabel)
	sym, err := fe.b.declareHook(runtimehooks.HookAwait)
	if err != nil {
		return err
	}
	futureHandle := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = ptrtoint %s %s to i32\n", futureHandle, future.Ty, future.Val)
	r := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = call i32 %s(i32 0, i32 %s)\n", r, sym, futureHandle)
	if t.Drop != nil {
		fmt.Fprintf(&fe.buf, "  br label %%bb%d\n", *t.Drop)
	} else {
		fe.buf.WriteString("  ret void\n")
	}
	return nil
}

func (fe *functionEmitter) emitYield(t mir.TermYield) error {
	v, err := fe.loadOperand(t.Value)
	if err != nil {
		return err
	}
	sym, err := fe.b.declareHook(runtimehooks.HookYield)
	if err != nil {
		return err
	}
	arg := fe.coerce(v, "i32")
	r := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = call i32 %s(i32 %s)\n", r, sym, arg)
	fmt.Fprintf(&fe.buf, "  br label %%bb%d\n", t.Resume)
	return nil
}

func typeCanonicalName(t mir.Ty) string {
	if n, ok := t.(mir.TyNamed); ok {
		return n.Name
	}
	return t.String()
}

