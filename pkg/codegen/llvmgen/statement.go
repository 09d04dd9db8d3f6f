package llvmgen

import (
	"fmt"

	"github.com/Chic-lang/Chic-sub010/pkg/mir"
	"github.com/Chic-lang/Chic-sub010/pkg/runtimehooks"
)

// emitStatement lowers one MIR statement, the LLVM-backend counterpart of
// wasmgen's emitStatement: same statement catalog, same set of cases that
// are no-ops past this point (storage markers, Deinit, unsafe-region
// markers) or hard errors
// (device/kernel statements, still out of scope for both backends).
func (fe *functionEmitter) emitStatement(stmt mir.Statement) error {
	switch s := stmt.(type) {
	case mir.StmtAssign:
		return fe.emitAssign(s)
	case mir.StmtStorageLive, mir.StmtStorageDead:
		return nil
	case mir.StmtDrop:
		return fe.emitDrop(s)
	case mir.StmtBorrow:
		return fe.emitBorrow(s)
	case mir.StmtDeinit:
		return nil
	case mir.StmtDefaultInit:
		return fe.emitZeroFill(s.Place, s.Ty)
	case mir.StmtZeroInit:
		return fe.emitZeroFill(s.Place, s.Ty)
	case mir.StmtZeroInitRaw:
		return fe.emitZeroInitRaw(s)
	case mir.StmtMmioStore:
		return fe.emitMmioStore(s)
	case mir.StmtStaticStore:
		return fe.emitStaticStore(s)
	case mir.StmtAtomicStore:
		return fe.emitAtomicStore(s)
	case mir.StmtAtomicFence:
		fmt.Fprintf(&fe.buf, "  fence %s\n", orderingOrSeqCst(s.Ordering))
		return nil
	case mir.StmtInlineAsm:
		// Unlike the WASM backend (which hard-errors), LLVM natively
		// supports inline asm text — §4.4's point of difference.
		fmt.Fprintf(&fe.buf, "  call void asm sideeffect \"%s\", \"\"()\n", escapeString(s.Text))
		return nil
	case mir.StmtAssert:
		return fe.emitAssert(s)
	case mir.StmtEnterUnsafe, mir.StmtExitUnsafe:
		return nil
	case mir.StmtEnqueueKernel, mir.StmtEnqueueCopy, mir.StmtRecordEvent, mir.StmtWaitEvent:
		return mir.NewCodegenError(fe.fn.Name, "device/kernel statements are not supported by the LLVM backend")
	case mir.StmtPending:
		return mir.NewCodegenError(fe.fn.Name, "unresolved pending statement: %s", s.Reason)
	default:
		return fmt.Errorf("llvmgen: unhandled statement %T", stmt)
	}
}

func orderingOrSeqCst(o string) string {
	if o == "" {
		return "seq_cst"
	}
	return o
}

func (fe *functionEmitter) emitAssign(s mir.StmtAssign) error {
	switch rv := s.Rvalue.(type) {
	case mir.RvUse:
		v, err := fe.loadOperand(rv.Operand)
		if err != nil {
			return err
		}
		return fe.storeToPlace(s.Place, v)
	case mir.RvBinary:
		return fe.emitBinary(s.Place, rv)
	case mir.RvUnary:
		return fe.emitUnary(s.Place, rv)
	case mir.RvAggregate:
		return fe.emitAggregate(s.Place, rv)
	case mir.RvRef:
		addr, err := fe.addressOf(rv.Place)
		if err != nil {
			return err
		}
		return fe.storeToPlace(s.Place, llvmVal{Ty: "i8*", Val: addr})
	case mir.RvCast:
		return fe.emitCast(s.Place, rv)
	case mir.RvInterpolate:
		return fe.emitInterpolate(s.Place, rv)
	case mir.RvLoadVtableSlot:
		return fe.emitLoadVtableSlot(s.Place, rv)
	default:
		return fmt.Errorf("llvmgen: unhandled rvalue %T", rv)
	}
}

func (fe *functionEmitter) emitBinary(dst mir.Place, rv mir.RvBinary) error {
	lhs, err := fe.loadOperand(rv.Lhs)
	if err != nil {
		return err
	}
	rhs, err := fe.loadOperand(rv.Rhs)
	if err != nil {
		return err
	}
	rhs.Val = fe.coerce(rhs, lhs.Ty)
	isFloat := lhs.Ty == "float" || lhs.Ty == "double"
	unsigned := fe.operandUnsigned(rv.Lhs) || fe.operandUnsigned(rv.Rhs)
	r := fe.reg()
	var resultTy string
	switch rv.Op {
	case mir.BinAdd:
		resultTy = lhs.Ty
		fmt.Fprintf(&fe.buf, "  %s = %s %s %s, %s\n", r, pickArith(isFloat, "fadd", "add"), lhs.Ty, lhs.Val, rhs.Val)
	case mir.BinSub:
		resultTy = lhs.Ty
		fmt.Fprintf(&fe.buf, "  %s = %s %s %s, %s\n", r, pickArith(isFloat, "fsub", "sub"), lhs.Ty, lhs.Val, rhs.Val)
	case mir.BinMul:
		resultTy = lhs.Ty
		if reg, ok := fe.tryVectorIntrinsic(lhs, llvmVal{Ty: lhs.Ty, Val: rhs.Val}); ok {
			return fe.storeToPlace(dst, llvmVal{Ty: resultTy, Val: reg})
		}
		fmt.Fprintf(&fe.buf, "  %s = %s %s %s, %s\n", r, pickArith(isFloat, "fmul", "mul"), lhs.Ty, lhs.Val, rhs.Val)
	case mir.BinDiv:
		resultTy = lhs.Ty
		op := pickArith(isFloat, "fdiv", pickArith(unsigned, "udiv", "sdiv"))
		fmt.Fprintf(&fe.buf, "  %s = %s %s %s, %s\n", r, op, lhs.Ty, lhs.Val, rhs.Val)
	case mir.BinRem:
		resultTy = lhs.Ty
		op := pickArith(isFloat, "frem", pickArith(unsigned, "urem", "srem"))
		fmt.Fprintf(&fe.buf, "  %s = %s %s %s, %s\n", r, op, lhs.Ty, lhs.Val, rhs.Val)
	case mir.BinAnd:
		resultTy = lhs.Ty
		fmt.Fprintf(&fe.buf, "  %s = and %s %s, %s\n", r, lhs.Ty, lhs.Val, rhs.Val)
	case mir.BinOr:
		resultTy = lhs.Ty
		fmt.Fprintf(&fe.buf, "  %s = or %s %s, %s\n", r, lhs.Ty, lhs.Val, rhs.Val)
	case mir.BinXor:
		resultTy = lhs.Ty
		fmt.Fprintf(&fe.buf, "  %s = xor %s %s, %s\n", r, lhs.Ty, lhs.Val, rhs.Val)
	case mir.BinShl:
		resultTy = lhs.Ty
		fmt.Fprintf(&fe.buf, "  %s = shl %s %s, %s\n", r, lhs.Ty, lhs.Val, rhs.Val)
	case mir.BinShr:
		resultTy = lhs.Ty
		fmt.Fprintf(&fe.buf, "  %s = %s %s %s, %s\n", r, pickArith(unsigned, "lshr", "ashr"), lhs.Ty, lhs.Val, rhs.Val)
	case mir.BinEq, mir.BinNe, mir.BinLt, mir.BinLe, mir.BinGt, mir.BinGe:
		resultTy = "i1"
		cmp := "icmp"
		pred := cmpPredicate(rv.Op, unsigned)
		if isFloat {
			cmp = "fcmp"
			pred = fcmpPredicate(rv.Op)
		}
		fmt.Fprintf(&fe.buf, "  %s = %s %s %s %s, %s\n", r, cmp, pred, lhs.Ty, lhs.Val, rhs.Val)
	default:
		return fmt.Errorf("llvmgen: unhandled binop %v", rv.Op)
	}
	return fe.storeToPlace(dst, llvmVal{Ty: resultTy, Val: r})
}

func pickArith(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

func cmpPredicate(op mir.BinOp, unsigned bool) string {
	switch op {
	case mir.BinEq:
		return "eq"
	case mir.BinNe:
		return "ne"
	case mir.BinLt:
		return pickArith(unsigned, "ult", "slt")
	case mir.BinLe:
		return pickArith(unsigned, "ule", "sle")
	case mir.BinGt:
		return pickArith(unsigned, "ugt", "sgt")
	case mir.BinGe:
		return pickArith(unsigned, "uge", "sge")
	default:
		return "eq"
	}
}

func fcmpPredicate(op mir.BinOp) string {
	switch op {
	case mir.BinEq:
		return "oeq"
	case mir.BinNe:
		return "one"
	case mir.BinLt:
		return "olt"
	case mir.BinLe:
		return "ole"
	case mir.BinGt:
		return "ogt"
	case mir.BinGe:
		return "oge"
	default:
		return "oeq"
	}
}

func (fe *functionEmitter) emitUnary(dst mir.Place, rv mir.RvUnary) error {
	v, err := fe.loadOperand(rv.Operand)
	if err != nil {
		return err
	}
	r := fe.reg()
	switch rv.Op {
	case mir.UnNeg:
		if v.Ty == "float" || v.Ty == "double" {
			fmt.Fprintf(&fe.buf, "  %s = fneg %s %s\n", r, v.Ty, v.Val)
		} else {
			fmt.Fprintf(&fe.buf, "  %s = sub %s 0, %s\n", r, v.Ty, v.Val)
		}
	case mir.UnNot:
		fmt.Fprintf(&fe.buf, "  %s = xor %s %s, -1\n", r, v.Ty, v.Val)
	default:
		return fmt.Errorf("llvmgen: unhandled unop %v", rv.Op)
	}
	return fe.storeToPlace(dst, llvmVal{Ty: v.Ty, Val: r})
}

// emitAggregate constructs a struct/array/tuple literal field-by-field into
// the destination's flat byte storage, the same equal-stride approximation
// wasmgen's emitAggregate makes (a real field-layout walk needs per-field
// offsets from the resolver's StructLayout, left as a follow-up once that
// table is threaded through here).
func (fe *functionEmitter) emitAggregate(dst mir.Place, rv mir.RvAggregate) error {
	size, _, err := fe.b.res.SizeAndAlignForTy(rv.Ty)
	if err != nil {
		return err
	}
	fieldWidth := 4
	if len(rv.Fields) > 0 && size > 0 {
		fieldWidth = size / len(rv.Fields)
		if fieldWidth <= 0 {
			fieldWidth = 4
		}
	}
	for i, field := range rv.Fields {
		v, err := fe.loadOperand(field)
		if err != nil {
			return err
		}
		addr := fe.localAddr[dst.Local]
		base := fe.reg()
		fmt.Fprintf(&fe.buf, "  %s = bitcast %s* %s to i8*\n", base, fe.localTy[dst.Local], addr)
		fieldPtr := base
		if i*fieldWidth != 0 {
			next := fe.reg()
			fmt.Fprintf(&fe.buf, "  %s = getelementptr i8, i8* %s, i64 %d\n", next, base, i*fieldWidth)
			fieldPtr = next
		}
		typed := fe.reg()
		fmt.Fprintf(&fe.buf, "  %s = bitcast i8* %s to %s*\n", typed, fieldPtr, v.Ty)
		fmt.Fprintf(&fe.buf, "  store %s %s, %s* %s\n", v.Ty, v.Val, v.Ty, typed)
	}
	return nil
}

func (fe *functionEmitter) emitCast(dst mir.Place, rv mir.RvCast) error {
	v, err := fe.loadOperand(rv.Operand)
	if err != nil {
		return err
	}
	to := llvmType(rv.To, fe.b.res)
	if v.Ty == to {
		return fe.storeToPlace(dst, v)
	}
	r := fe.reg()
	fromFloat := v.Ty == "float" || v.Ty == "double"
	toFloat := to == "float" || to == "double"
	switch {
	case fromFloat && toFloat:
		op := "fpext"
		if to == "float" {
			op = "fptrunc"
		}
		fmt.Fprintf(&fe.buf, "  %s = %s %s %s to %s\n", r, op, v.Ty, v.Val, to)
	case fromFloat && !toFloat:
		fmt.Fprintf(&fe.buf, "  %s = fptosi %s %s to %s\n", r, v.Ty, v.Val, to)
	case !fromFloat && toFloat:
		fmt.Fprintf(&fe.buf, "  %s = sitofp %s %s to %s\n", r, v.Ty, v.Val, to)
	default:
		wFrom, _ := intWidth(v.Ty)
		wTo, _ := intWidth(to)
		op := "trunc"
		if wTo > wFrom {
			op = pickArith(isUnsignedTy(rv.To), "zext", "sext")
		} else if wTo == wFrom {
			return fe.storeToPlace(dst, llvmVal{Ty: to, Val: v.Val})
		}
		fmt.Fprintf(&fe.buf, "  %s = %s %s %s to %s\n", r, op, v.Ty, v.Val, to)
	}
	return fe.storeToPlace(dst, llvmVal{Ty: to, Val: r})
}

// emitInterpolate mirrors wasmgen's hook-call sequencing for string
// building, swapped to LLVM call syntax.
func (fe *functionEmitter) emitInterpolate(dst mir.Place, rv mir.RvInterpolate) error {
	sym, err := fe.b.declareHook(runtimehooks.HookStringFromSlice)
	if err != nil {
		return err
	}
	builder := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = call i32 %s(i32 0, i32 0)\n", builder, sym)
	for _, seg := range rv.Segments {
		switch s := seg.(type) {
		case mir.InterpText:
			asym, err := fe.b.declareHook(runtimehooks.HookStringAppendSlice)
			if err != nil {
				return err
			}
			strSym := fe.b.stringSymbol(s.Text)
			text := fe.b.mod.StringText(s.Text)
			ptr := fe.reg()
			fmt.Fprintf(&fe.buf, "  %s = getelementptr [%d x i8], [%d x i8]* %s, i64 0, i64 0\n",
				ptr, len(text)+1, len(text)+1, strSym)
			off := fe.reg()
			fmt.Fprintf(&fe.buf, "  %s = ptrtoint i8* %s to i32\n", off, ptr)
			next := fe.reg()
			fmt.Fprintf(&fe.buf, "  %s = call i32 %s(i32 %s, i32 %s, i32 %d, i32 0, i32 0)\n",
				next, asym, builder, off, len(text))
			builder = next
		case mir.InterpExpr:
			v, err := fe.loadOperand(s.Operand)
			if err != nil {
				return err
			}
			next, err := fe.emitInterpExpr(builder, v, s)
			if err != nil {
				return err
			}
			builder = next
		}
	}
	return fe.storeToPlace(dst, llvmVal{Ty: "i32", Val: builder})
}

// emitInterpExpr lowers one classified expression segment through its
// class's append hook, matching the catalog signatures exactly: the integer
// hooks take an i64 low/high pair plus a bit width, bool/char take the
// value as i32, floats pass through at their own width.
func (fe *functionEmitter) emitInterpExpr(builder string, v llvmVal, s mir.InterpExpr) (string, error) {
	hasAlign := 0
	if s.Align != 0 {
		hasAlign = 1
	}
	next := fe.reg()
	switch s.Class {
	case mir.ClassSignedInt, mir.ClassUnsignedInt:
		bits := s.Bits
		if bits == 0 {
			bits = 32
		}
		hook := runtimehooks.HookStringAppendSigned
		if s.Class == mir.ClassUnsignedInt {
			hook = runtimehooks.HookStringAppendUnsigned
		}
		hsym, err := fe.b.declareHook(hook)
		if err != nil {
			return "", err
		}
		lo, hi := fe.toI64(v), "0"
		if bits > 64 {
			// i128 split: truncate for the low half, shift for the high.
			loR := fe.reg()
			fmt.Fprintf(&fe.buf, "  %s = trunc i128 %s to i64\n", loR, v.Val)
			shR := fe.reg()
			fmt.Fprintf(&fe.buf, "  %s = lshr i128 %s, 64\n", shR, v.Val)
			hiR := fe.reg()
			fmt.Fprintf(&fe.buf, "  %s = trunc i128 %s to i64\n", hiR, shR)
			lo, hi = loR, hiR
		}
		fmt.Fprintf(&fe.buf, "  %s = call i32 %s(i32 %s, i64 %s, i64 %s, i32 %d, i32 %d, i32 %d, i32 0, i32 0)\n",
			next, hsym, builder, lo, hi, bits, s.Align, hasAlign)
	case mir.ClassBool, mir.ClassChar:
		hook := runtimehooks.HookStringAppendBool
		if s.Class == mir.ClassChar {
			hook = runtimehooks.HookStringAppendChar
		}
		hsym, err := fe.b.declareHook(hook)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&fe.buf, "  %s = call i32 %s(i32 %s, i32 %s, i32 %d, i32 %d, i32 0, i32 0)\n",
			next, hsym, builder, fe.coerce(v, "i32"), s.Align, hasAlign)
	case mir.ClassFloat:
		hook := runtimehooks.HookStringAppendF64
		fty := "double"
		if s.Bits == 32 {
			hook = runtimehooks.HookStringAppendF32
			fty = "float"
		}
		hsym, err := fe.b.declareHook(hook)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&fe.buf, "  %s = call i32 %s(i32 %s, %s %s, i32 %d, i32 %d, i32 0, i32 0)\n",
			next, hsym, builder, fty, v.Val, s.Align, hasAlign)
	default: // ClassStr, ClassString degrade to the slice hook
		hsym, err := fe.b.declareHook(runtimehooks.HookStringAppendSlice)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&fe.buf, "  %s = call i32 %s(i32 %s, i32 %s, i32 0, i32 0, i32 0)\n",
			next, hsym, builder, fe.coerce(v, "i32"))
	}
	return next, nil
}

func (fe *functionEmitter) emitLoadVtableSlot(dst mir.Place, rv mir.RvLoadVtableSlot) error {
	obj, err := fe.loadOperand(rv.Object)
	if err != nil {
		return err
	}
	base := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = bitcast %s %s to i8*\n", base, obj.Ty, obj.Val)
	slotOff := rv.Slot * fe.b.res.PointerWidthBytes()
	ptr := base
	if slotOff != 0 {
		next := fe.reg()
		fmt.Fprintf(&fe.buf, "  %s = getelementptr i8, i8* %s, i64 %d\n", next, base, slotOff)
		ptr = next
	}
	typed := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = bitcast i8* %s to i8**\n", typed, ptr)
	r := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = load i8*, i8** %s\n", r, typed)
	return fe.storeToPlace(dst, llvmVal{Ty: "i8*", Val: r})
}

// emitBorrow mirrors the WASM backend's borrow-tracker registration.
func (fe *functionEmitter) emitBorrow(s mir.StmtBorrow) error {
	if s.Kind == mir.BorrowRaw {
		return nil
	}
	hook := runtimehooks.HookBorrowShared
	if s.Kind == mir.BorrowUnique {
		hook = runtimehooks.HookBorrowUnique
	}
	sym, err := fe.b.declareHook(hook)
	if err != nil {
		return err
	}
	addr, err := fe.addressOf(s.Place)
	if err != nil {
		return err
	}
	ptr := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = ptrtoint i8* %s to i32\n", ptr, addr)
	fmt.Fprintf(&fe.buf, "  call void %s(i32 %d, i32 %s)\n", sym, s.Id, ptr)
	return nil
}

// emitDrop dispatches on the dropped value's type, mirroring the WASM
// backend: dedicated hooks for String/Vec/Rc/Arc, the __cl_drop__<T> glue
// for named types (the glue calls the class's dispose symbol first),
// drop_missing otherwise.
func (fe *functionEmitter) emitDrop(s mir.StmtDrop) error {
	if !fe.b.res.TyRequiresDrop(s.Ty) {
		return nil
	}
	addr, err := fe.addressOf(s.Place)
	if err != nil {
		return err
	}
	dropHook := func(id runtimehooks.HookID) error {
		sym, err := fe.b.declareHook(id)
		if err != nil {
			return err
		}
		handle := fe.reg()
		fmt.Fprintf(&fe.buf, "  %s = ptrtoint i8* %s to i32\n", handle, addr)
		fmt.Fprintf(&fe.buf, "  call void %s(i32 %s)\n", sym, handle)
		return nil
	}
	switch ty := s.Ty.(type) {
	case mir.TyString:
		return dropHook(runtimehooks.HookStringDrop)
	case mir.TyVec, mir.TyArray, mir.TySpan, mir.TyReadOnlySpan:
		return dropHook(runtimehooks.HookVecDrop)
	case mir.TyRc:
		return dropHook(runtimehooks.HookRcDrop)
	case mir.TyArc:
		return dropHook(runtimehooks.HookArcDrop)
	case mir.TyNamed:
		glue := fe.b.dropGlueSymbol(ty.Name)
		fmt.Fprintf(&fe.buf, "  call void %s(i8* %s)\n", glue, addr)
		return nil
	default:
		return dropHook(runtimehooks.HookDropMissing)
	}
}

func (fe *functionEmitter) emitZeroFill(p mir.Place, t mir.Ty) error {
	size, _, err := fe.b.res.SizeAndAlignForTy(t)
	if err != nil || size == 0 {
		return err
	}
	addr, err := fe.addressOf(p)
	if err != nil {
		return err
	}
	sym, err := fe.b.declareHook(runtimehooks.HookMemset)
	if err != nil {
		return err
	}
	fmt.Fprintf(&fe.buf, "  call void %s(i8* %s, i32 0, i32 %d)\n", sym, addr, size)
	return nil
}

func (fe *functionEmitter) emitZeroInitRaw(s mir.StmtZeroInitRaw) error {
	ptr, err := fe.loadOperand(s.Pointer)
	if err != nil {
		return err
	}
	length, err := fe.loadOperand(s.Length)
	if err != nil {
		return err
	}
	sym, err := fe.b.declareHook(runtimehooks.HookMemset)
	if err != nil {
		return err
	}
	fmt.Fprintf(&fe.buf, "  call void %s(%s %s, i32 0, %s %s)\n", sym, ptr.Ty, ptr.Val, length.Ty, length.Val)
	return nil
}

func (fe *functionEmitter) emitMmioStore(s mir.StmtMmioStore) error {
	addr, err := fe.loadOperand(s.Address)
	if err != nil {
		return err
	}
	val, err := fe.loadOperand(s.Value)
	if err != nil {
		return err
	}
	ty := fmt.Sprintf("i%d", s.Bits)
	typed := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = inttoptr %s %s to %s*\n", typed, addr.Ty, addr.Val, ty)
	fmt.Fprintf(&fe.buf, "  store volatile %s %s, %s* %s\n", ty, fe.coerce(val, ty), ty, typed)
	return nil
}

func (fe *functionEmitter) emitStaticStore(s mir.StmtStaticStore) error {
	var sv *mir.StaticVar
	for _, cand := range fe.b.mod.Statics {
		if cand.Id == s.Static {
			sv = cand
			break
		}
	}
	if sv == nil {
		return fmt.Errorf("llvmgen: static %d not found", s.Static)
	}
	sym := fe.b.staticSymbol(sv)
	v, err := fe.loadOperand(s.Value)
	if err != nil {
		return err
	}
	ty := llvmType(sv.Ty, fe.b.res)
	fmt.Fprintf(&fe.buf, "  store %s %s, %s* %s\n", ty, fe.coerce(v, ty), ty, sym)
	return nil
}

func (fe *functionEmitter) emitAtomicStore(s mir.StmtAtomicStore) error {
	addr, err := fe.addressOf(s.Place)
	if err != nil {
		return err
	}
	v, err := fe.loadOperand(s.Value)
	if err != nil {
		return err
	}
	ty := fmt.Sprintf("i%d", s.Bits)
	typed := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = bitcast i8* %s to %s*\n", typed, addr, ty)
	ord := orderingOrSeqCst(s.Ordering)
	fmt.Fprintf(&fe.buf, "  store atomic %s %s, %s* %s %s, align %d\n",
		ty, fe.coerce(v, ty), ty, typed, ord, s.Bits/8)
	return nil
}

func (fe *functionEmitter) emitAssert(s mir.StmtAssert) error {
	cond, err := fe.loadOperand(s.Cond)
	if err != nil {
		return err
	}
	// Failure condition: cond != expected.
	test := cond.Val
	if s.Expected {
		r := fe.reg()
		fmt.Fprintf(&fe.buf, "  %s = xor i1 %s, 1\n", r, cond.Val)
		test = r
	}
	trueLabel := fmt.Sprintf("assert.fail.%d", fe.nextReg)
	contLabel := fmt.Sprintf("assert.cont.%d", fe.nextReg)
	fmt.Fprintf(&fe.buf, "  br i1 %s, label %%%s, label %%%s\n", test, trueLabel, contLabel)
	fmt.Fprintf(&fe.buf, "%s:\n", trueLabel)
	sym, err := fe.b.declareHook(runtimehooks.HookPanic)
	if err != nil {
		return err
	}
	fmt.Fprintf(&fe.buf, "  call void %s(i32 %d)\n", sym, panicAssertionFailure)
	fe.buf.WriteString("  unreachable\n")
	fmt.Fprintf(&fe.buf, "%s:\n", contLabel)
	return nil
}

const panicAssertionFailure = 0x2100
