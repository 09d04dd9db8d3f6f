package wasmgen

import (
	"fmt"

	"github.com/Chic-lang/Chic-sub010/pkg/layout"
	"github.com/Chic-lang/Chic-sub010/pkg/mir"
	"github.com/Chic-lang/Chic-sub010/pkg/runtimehooks"
	"github.com/Chic-lang/Chic-sub010/pkg/typeid"
	"github.com/Chic-lang/Chic-sub010/pkg/wasmcodec"
)

// emitTerminator lowers one MIR terminator, per §4.2's "Terminator
// lowering". Control transfer is "set BlockLabel, br to the enclosing
// loop" so the cascade built in emitBlockCascade dispatches back into the
// target block's wrapper; the emitter's labelDepth tracks how many labels
// that br has to cross.
func (fe *functionEmitter) emitTerminator(term mir.Terminator) error {
	switch t := term.(type) {
	case mir.TermGoto:
		return fe.branchTo(t.Target)
	case mir.TermSwitchInt:
		return fe.emitSwitchInt(t)
	case mir.TermMatch:
		return fe.emitMatch(t)
	case mir.TermCall:
		return fe.emitCall(t)
	case mir.TermReturn:
		return fe.emitReturn()
	case mir.TermThrow:
		return fe.emitThrow(t)
	case mir.TermPanic:
		return fe.emitPanic()
	case mir.TermUnreachable:
		fe.buf.WriteByte(byte(wasmcodec.OpUnreachable))
		return nil
	case mir.TermAwait:
		return fe.emitAwait(t)
	case mir.TermYield:
		return fe.emitYield(t)
	case mir.TermPending:
		return mir.NewCodegenError(fe.fn.Name, "unresolved pending terminator: %s", t.Reason)
	default:
		return fmt.Errorf("wasmgen: unhandled terminator %T", term)
	}
}

// branchTo sets BlockLabel to target and branches out to the dispatch
// loop, crossing labelDepth open labels to reach it.
func (fe *functionEmitter) branchTo(target mir.BlockId) error {
	fe.emitI32Const(int32(target))
	fe.emitLocalSet(fe.plan.Scratch.BlockLabel)
	fe.buf.WriteByte(byte(wasmcodec.OpBr))
	wasmcodec.PutUvarint(&fe.buf, uint64(fe.labelDepth))
	return nil
}

func (fe *functionEmitter) emitSwitchInt(t mir.TermSwitchInt) error {
	for _, arm := range t.Arms {
		if err := fe.emitOperand(t.Value); err != nil {
			return err
		}
		fe.emitI32Const(int32(arm.Value))
		fe.buf.WriteByte(byte(wasmcodec.OpI32Eq))
		fe.buf.WriteByte(byte(wasmcodec.OpIf))
		fe.buf.WriteByte(wasmcodec.BlockTypeEmpty)
		fe.labelDepth++
		if err := fe.branchTo(arm.Target); err != nil {
			return err
		}
		fe.labelDepth--
		fe.buf.WriteByte(byte(wasmcodec.OpEnd))
	}
	return fe.branchTo(t.Otherwise)
}

func (fe *functionEmitter) emitMatch(t mir.TermMatch) error {
	for _, arm := range t.Arms {
		switch pat := arm.Pattern.(type) {
		case mir.PatWildcard, mir.PatBinding:
			return fe.branchTo(arm.Target)
		case mir.PatLiteral:
			if err := fe.emitOperand(t.Value); err != nil {
				return err
			}
			if err := fe.emitConst(pat.Value); err != nil {
				return err
			}
			fe.buf.WriteByte(byte(wasmcodec.OpI32Eq))
			fe.buf.WriteByte(byte(wasmcodec.OpIf))
			fe.buf.WriteByte(wasmcodec.BlockTypeEmpty)
			fe.labelDepth++
			if err := fe.branchTo(arm.Target); err != nil {
				return err
			}
			fe.labelDepth--
			fe.buf.WriteByte(byte(wasmcodec.OpEnd))
		case mir.PatEnumUnit:
			disc, err := fe.enumDiscriminant(t.Value, pat.Variant)
			if err != nil {
				return err
			}
			if err := fe.emitOperand(t.Value); err != nil {
				return err
			}
			fe.emitLoadOp(wasmcodec.ValI32) // discriminant is the first word
			fe.emitI32Const(int32(disc))
			fe.buf.WriteByte(byte(wasmcodec.OpI32Eq))
			fe.buf.WriteByte(byte(wasmcodec.OpIf))
			fe.buf.WriteByte(wasmcodec.BlockTypeEmpty)
			fe.labelDepth++
			if err := fe.branchTo(arm.Target); err != nil {
				return err
			}
			fe.labelDepth--
			fe.buf.WriteByte(byte(wasmcodec.OpEnd))
		case mir.PatEnumPayload:
			// §8 open question: payload-carrying enum patterns are a hard
			// error in the WASM backend, no fallback defined by the source.
			return mir.NewCodegenError(fe.fn.Name, "Match arm with payload-carrying enum pattern %q is not supported by the WASM backend", pat.Variant)
		default:
			return fmt.Errorf("wasmgen: unhandled pattern %T", arm.Pattern)
		}
	}
	return fe.branchTo(t.Otherwise)
}

// enumDiscriminant resolves a Match arm's variant name to its wire
// discriminant via the matched operand's enum layout, the same lookup the
// drop glue uses. A variant name that is itself an integer literal (a
// frontend that pre-resolved the discriminant) passes through; anything
// else that fails layout resolution is a hard error, never a silent 0.
func (fe *functionEmitter) enumDiscriminant(value mir.Operand, variant string) (int64, error) {
	if p := operandPlace(value); p.Local >= 0 && p.Local < len(fe.plan.Locals) {
		if ty, ok := fe.localInfo(p.Local).Decl.Ty.(mir.TyNamed); ok {
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

func (fe *functionEmitter) emitCall(t mir.TermCall) error {
	for _, arg := range t.Args {
		if arg.Mode != mir.ModeValue {
			// In/Ref/Out arguments pass the place's address.
			if err := fe.emitPlaceAddress(operandPlace(arg.Operand)); err != nil {
				return err
			}
			continue
		}
		if err := fe.emitOperand(arg.Operand); err != nil {
			return err
		}
	}

	switch disp := t.Dispatch.(type) {
	case mir.DispatchTrait:
		// Trait object: {data_ptr, vtable_ptr}. The vtable pointer is the
		// object's second word; load the slot, then call_indirect.
		if err := fe.emitOperand(t.Func); err != nil {
			return err
		}
		fe.emitI32Const(4)
		fe.buf.WriteByte(byte(wasmcodec.OpI32Add))
		fe.emitLoadOp(wasmcodec.ValI32)
		fe.emitI32Const(int32(disp.SlotIndex * fe.b.res.PointerWidthBytes()))
		fe.buf.WriteByte(byte(wasmcodec.OpI32Add))
		fe.emitLoadOp(wasmcodec.ValI32)
		if err := fe.emitCallIndirect(t); err != nil {
			return err
		}
	case mir.DispatchVirtual:
		// Virtual dispatch: the class vtable pointer lives at object header
		// offset 0.
		if err := fe.emitOperand(t.Func); err != nil {
			return err
		}
		fe.emitLoadOp(wasmcodec.ValI32)
		fe.emitI32Const(int32(disp.SlotIndex * fe.b.res.PointerWidthBytes()))
		fe.buf.WriteByte(byte(wasmcodec.OpI32Add))
		fe.emitLoadOp(wasmcodec.ValI32)
		if err := fe.emitCallIndirect(t); err != nil {
			return err
		}
	default: // DispatchNone
		if t.CalleeName == "" {
			// First-class function value: indirect call through the table.
			if err := fe.emitOperand(t.Func); err != nil {
				return err
			}
			if err := fe.emitCallIndirect(t); err != nil {
				return err
			}
		} else {
			idx, ok := fe.b.funcIndexByName(canonicalizeCalleeName(t.CalleeName))
			if !ok {
				return mir.NewCodegenError(fe.fn.Name, "call target %q could not be resolved", t.CalleeName)
			}
			fe.buf.WriteByte(byte(wasmcodec.OpCall))
			wasmcodec.PutUvarint(&fe.buf, uint64(idx))
		}
	}

	if t.Destination != nil {
		if err := fe.storeToPlace(*t.Destination); err != nil {
			return err
		}
	} else if !fe.calleeReturnsUnit(t) {
		fe.buf.WriteByte(byte(wasmcodec.OpDrop))
	}

	for _, arg := range t.Args {
		if arg.Mode != mir.ModeValue {
			fe.emitI32Const(int32(arg.Borrow))
			if err := fe.callHook(runtimehooks.HookBorrowRelease); err != nil {
				return err
			}
		}
	}

	fe.emitCall_(runtimehooks.HookHasPendingException)
	fe.buf.WriteByte(byte(wasmcodec.OpIf))
	fe.buf.WriteByte(wasmcodec.BlockTypeEmpty)
	fe.labelDepth++
	if t.Unwind != nil {
		if err := fe.branchTo(*t.Unwind); err != nil {
			return err
		}
	} else {
		if fe.plan.FrameSize > 0 {
			fe.emitGlobalGet(wasmcodec.StackPointerGlobalIndex)
			fe.emitLocalGet(fe.plan.Scratch.StackAdjust)
			fe.buf.WriteByte(byte(wasmcodec.OpI32Add))
			fe.emitI32Const(int32(fe.plan.FrameSize))
			fe.buf.WriteByte(byte(wasmcodec.OpI32Add))
			fe.emitGlobalSet(wasmcodec.StackPointerGlobalIndex)
		}
		for _, rt := range fe.plan.WasmResultTypes {
			fe.emitZeroOf(rt)
		}
		fe.buf.WriteByte(byte(wasmcodec.OpReturn))
	}
	fe.labelDepth--
	fe.buf.WriteByte(byte(wasmcodec.OpEnd))

	return fe.branchTo(t.Target)
}

// emitCall_ is callHook without an error return, for the handful of hooks
// whose id is always registered by construction (panic/has_pending_exception).
func (fe *functionEmitter) emitCall_(id runtimehooks.HookID) {
	_ = fe.callHook(id)
}

func (fe *functionEmitter) calleeReturnsUnit(t mir.TermCall) bool {
	fn := fe.b.mod.FunctionByName(canonicalizeCalleeName(t.CalleeName))
	if fn == nil {
		return false
	}
	return isUnit(fn.Sig.Ret)
}

func (fe *functionEmitter) emitCallIndirect(t mir.TermCall) error {
	ft := fe.b.signatureFor(t)
	typeIdx := fe.b.internType(ft)
	fe.buf.WriteByte(byte(wasmcodec.OpCallIndirect))
	wasmcodec.PutUvarint(&fe.buf, uint64(typeIdx))
	wasmcodec.PutUvarint(&fe.buf, 0) // table index 0
	return nil
}

// canonicalizeCalleeName applies §4.2's call-resolution canonicalization:
// "." and "::" are interchangeable separators, and generic instantiations
// are stripped to their base name for lookup.
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

func (fe *functionEmitter) emitReturn() error {
	if fe.plan.RequiresSret {
		fe.emitLocalGet(0) // sret pointer is always wasm param 0
		retInfo := fe.returnLocalInfo()
		fe.localAddress(retInfo)
		size, _, err := fe.b.res.SizeAndAlignForTy(fe.fn.Sig.Ret)
		if err != nil {
			return err
		}
		fe.emitI32Const(int32(size))
		if err := fe.callHook(runtimehooks.HookMemcpy); err != nil {
			return err
		}
	} else if fe.fn.Sig.Ret != nil && !isUnit(fe.fn.Sig.Ret) {
		retInfo := fe.returnLocalInfo()
		switch retInfo.Repr {
		case ReprScalar:
			fe.emitLocalGet(retInfo.WasmLocal)
		case ReprFrameAllocated:
			fe.localAddress(retInfo)
			fe.emitLoadOp(wasmTypeFor(fe.fn.Sig.Ret))
		}
	}
	if fe.plan.FrameSize > 0 {
		// stack_pointer += stack_adjust + frame_size (§4.2 frame teardown):
		// ad-hoc allocate_stack_block reservations accumulated in the
		// StackAdjust scratch local unwind together with the frame.
		fe.emitGlobalGet(wasmcodec.StackPointerGlobalIndex)
		fe.emitLocalGet(fe.plan.Scratch.StackAdjust)
		fe.buf.WriteByte(byte(wasmcodec.OpI32Add))
		fe.emitI32Const(int32(fe.plan.FrameSize))
		fe.buf.WriteByte(byte(wasmcodec.OpI32Add))
		fe.emitGlobalSet(wasmcodec.StackPointerGlobalIndex)
	}
	fe.buf.WriteByte(byte(wasmcodec.OpReturn))
	return nil
}

// emitZeroOf pushes a zero value of the given type, used to satisfy result
// arity on the unwind exit path.
func (fe *functionEmitter) emitZeroOf(t wasmcodec.ValueType) {
	switch t {
	case wasmcodec.ValI64:
		fe.emitI64Const(0)
	case wasmcodec.ValF32:
		fe.buf.WriteByte(byte(wasmcodec.OpF32Const))
		fe.buf.Write([]byte{0, 0, 0, 0})
	case wasmcodec.ValF64:
		fe.buf.WriteByte(byte(wasmcodec.OpF64Const))
		fe.buf.Write([]byte{0, 0, 0, 0, 0, 0, 0, 0})
	default:
		fe.emitI32Const(0)
	}
}

func (fe *functionEmitter) returnLocalInfo() LocalInfo {
	for _, l := range fe.plan.Locals {
		if l.Decl.Kind == mir.LocalReturn {
			return l
		}
	}
	return LocalInfo{}
}

func (fe *functionEmitter) emitThrow(t mir.TermThrow) error {
	if err := fe.emitOperand(t.Exception); err != nil {
		return err
	}
	fe.emitI64Const(int64(typeid.Identity(typeCanonicalName(t.Ty))))
	if err := fe.callHook(runtimehooks.HookThrow); err != nil {
		return err
	}
	fe.buf.WriteByte(byte(wasmcodec.OpUnreachable))
	return nil
}

func (fe *functionEmitter) emitPanic() error {
	fe.emitI32Const(int32(PanicExitCode))
	if err := fe.callHook(runtimehooks.HookPanic); err != nil {
		return err
	}
	fe.buf.WriteByte(byte(wasmcodec.OpUnreachable))
	return nil
}

func (fe *functionEmitter) emitAwait(t mir.TermAwait) error {
	if err := fe.emitOperand(t.Future); err != nil {
		return err
	}
	fe.emitLoadOp(wasmcodec.ValI32) // completed-flag is the future's first word
	fe.buf.WriteByte(byte(wasmcodec.OpIf))
	fe.buf.WriteByte(wasmcodec.BlockTypeEmpty)
	fe.labelDepth++
	if err := fe.branchTo(t.Resume); err != nil {
		return err
	}
	fe.buf.WriteByte(byte(wasmcodec.OpElse))
	fe.emitI32Const(0) // ctx: resolved by the async state-machine lowering pass
	if err := fe.emitOperand(t.Future); err != nil {
		return err
	}
	if err := fe.callHook(runtimehooks.HookAwait); err != nil {
		return err
	}
	fe.buf.WriteByte(byte(wasmcodec.OpDrop))
	if t.Drop != nil {
		if err := fe.branchTo(*t.Drop); err != nil {
			return err
		}
	} else {
		fe.buf.WriteByte(byte(wasmcodec.OpReturn))
	}
	fe.labelDepth--
	fe.buf.WriteByte(byte(wasmcodec.OpEnd))
	return nil
}

func (fe *functionEmitter) emitYield(t mir.TermYield) error {
	if err := fe.emitOperand(t.Value); err != nil {
		return err
	}
	if err := fe.callHook(runtimehooks.HookYield); err != nil {
		return err
	}
	fe.buf.WriteByte(byte(wasmcodec.OpDrop))
	return fe.branchTo(t.Resume)
}

// typeCanonicalName extracts the canonical name used for a thrown type's
// identity hash; non-named types fall back to their String() form.
func typeCanonicalName(t mir.Ty) string {
	if n, ok := t.(mir.TyNamed); ok {
		return n.Name
	}
	return t.String()
}

// PanicExitCode is the canonical default panic code from §6 (generic
// panic, as opposed to the specific 0x20xx index/assert codes).
const PanicExitCode = 0x2000
