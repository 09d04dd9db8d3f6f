package wasmgen

import (
	"fmt"

	"github.com/Chic-lang/Chic-sub010/pkg/mir"
	"github.com/Chic-lang/Chic-sub010/pkg/runtimehooks"
	"github.com/Chic-lang/Chic-sub010/pkg/wasmcodec"
)

// emitStatement lowers one MIR statement, per §4.2.
func (fe *functionEmitter) emitStatement(stmt mir.Statement) error {
	switch s := stmt.(type) {
	case mir.StmtAssign:
		return fe.emitAssign(s)
	case mir.StmtStorageLive, mir.StmtStorageDead:
		return nil // frame slots are reserved for the whole function, no-op
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
		fe.buf.WriteByte(byte(wasmcodec.OpAtomicPrefix))
		fe.buf.WriteByte(byte(wasmcodec.AtomicFence))
		fe.buf.WriteByte(0)
		return nil
	case mir.StmtInlineAsm:
		return mir.NewCodegenError(fe.fn.Name, "inline asm is not representable in WASM")
	case mir.StmtAssert:
		return fe.emitAssert(s)
	case mir.StmtEnterUnsafe, mir.StmtExitUnsafe:
		return nil
	case mir.StmtEnqueueKernel, mir.StmtEnqueueCopy, mir.StmtRecordEvent, mir.StmtWaitEvent:
		return mir.NewCodegenError(fe.fn.Name, "device/kernel statements are not supported by the WASM backend")
	case mir.StmtPending:
		return mir.NewCodegenError(fe.fn.Name, "unresolved pending statement: %s", s.Reason)
	default:
		return fmt.Errorf("wasmgen: unhandled statement %T", stmt)
	}
}

func (fe *functionEmitter) emitAssign(s mir.StmtAssign) error {
	switch rv := s.Rvalue.(type) {
	case mir.RvUse:
		if mv, ok := rv.Operand.(mir.OperandMove); ok && len(mv.Place.Projections) == 0 {
			if done, err := fe.emitHandleMove(s.Place, mv.Place); done || err != nil {
				return err
			}
		}
		if err := fe.emitOperand(rv.Operand); err != nil {
			return err
		}
		return fe.storeToPlace(s.Place)
	case mir.RvBinary:
		return fe.emitBinary(s.Place, rv)
	case mir.RvUnary:
		return fe.emitUnary(s.Place, rv)
	case mir.RvAggregate:
		return fe.emitAggregate(s.Place, rv)
	case mir.RvRef:
		if err := fe.emitPlaceAddress(rv.Place); err != nil {
			return err
		}
		return fe.storeToPlace(s.Place)
	case mir.RvCast:
		return fe.emitCast(s.Place, rv)
	case mir.RvInterpolate:
		return fe.emitInterpolate(s.Place, rv)
	case mir.RvLoadVtableSlot:
		return fe.emitLoadVtableSlot(s.Place, rv)
	default:
		return fmt.Errorf("wasmgen: unhandled rvalue %T", rv)
	}
}

// storeToPlace writes the value currently on the wasm value stack into the
// destination place: a local.set for scalar locals, an i32/i64/f32/f64
// store for frame-allocated or projected destinations.
func (fe *functionEmitter) storeToPlace(p mir.Place) error {
	info := fe.localInfo(p.Local)
	if len(p.Projections) == 0 && info.Repr == ReprScalar {
		fe.emitLocalSet(info.WasmLocal)
		return nil
	}
	// Need the address as well; stash the value, compute the address, swap.
	// WASM has no stack-swap, so materialize the value into a scratch local
	// first, then push address, then value, then store.
	wt := info.WasmType
	if info.Repr == ReprFrameAllocated {
		wt = wasmTypeFor(info.Decl.Ty)
	}
	valTmp := fe.scratchFor(wt)
	fe.emitLocalSet(valTmp)
	if err := fe.emitPlaceAddress(p); err != nil {
		return err
	}
	fe.emitLocalGet(valTmp)
	fe.emitStoreOp(wt)
	return nil
}

func (fe *functionEmitter) scratchFor(t wasmcodec.ValueType) int {
	switch t {
	case wasmcodec.ValI64:
		return fe.plan.Scratch.TmpI64
	case wasmcodec.ValF32:
		return fe.plan.Scratch.TmpF32
	case wasmcodec.ValF64:
		return fe.plan.Scratch.TmpF64
	default:
		return fe.plan.Scratch.TmpI32
	}
}

func (fe *functionEmitter) emitStoreOp(t wasmcodec.ValueType) {
	var op wasmcodec.Op
	switch t {
	case wasmcodec.ValI64:
		op = wasmcodec.OpI64Store
	case wasmcodec.ValF32:
		op = wasmcodec.OpF32Store
	case wasmcodec.ValF64:
		op = wasmcodec.OpF64Store
	default:
		op = wasmcodec.OpI32Store
	}
	fe.buf.WriteByte(byte(op))
	fe.buf.WriteByte(2)
	fe.buf.WriteByte(0)
}

func (fe *functionEmitter) emitLoadOp(t wasmcodec.ValueType) {
	var op wasmcodec.Op
	switch t {
	case wasmcodec.ValI64:
		op = wasmcodec.OpI64Load
	case wasmcodec.ValF32:
		op = wasmcodec.OpF32Load
	case wasmcodec.ValF64:
		op = wasmcodec.OpF64Load
	default:
		op = wasmcodec.OpI32Load
	}
	fe.buf.WriteByte(byte(op))
	fe.buf.WriteByte(2)
	fe.buf.WriteByte(0)
}

func (fe *functionEmitter) emitBinary(dst mir.Place, rv mir.RvBinary) error {
	if err := fe.emitOperand(rv.Lhs); err != nil {
		return err
	}
	if err := fe.emitOperand(rv.Rhs); err != nil {
		return err
	}
	wide := fe.operandIsWide(rv.Lhs)
	var op wasmcodec.Op
	switch rv.Op {
	case mir.BinAdd:
		op = pick(wide, wasmcodec.OpI64Add, wasmcodec.OpI32Add)
	case mir.BinSub:
		op = pick(wide, wasmcodec.OpI64Sub, wasmcodec.OpI32Sub)
	case mir.BinMul:
		op = pick(wide, wasmcodec.OpI64Mul, wasmcodec.OpI32Mul)
	case mir.BinDiv:
		op = pick(wide, wasmcodec.OpI64DivS, wasmcodec.OpI32DivS)
	case mir.BinRem:
		op = pick(wide, wasmcodec.OpI64RemS, wasmcodec.OpI32RemS)
	case mir.BinAnd:
		op = pick(wide, wasmcodec.OpI64And, wasmcodec.OpI32And)
	case mir.BinOr:
		op = pick(wide, wasmcodec.OpI64Or, wasmcodec.OpI32Or)
	case mir.BinXor:
		op = pick(wide, wasmcodec.OpI64Xor, wasmcodec.OpI32Xor)
	case mir.BinShl:
		op = pick(wide, wasmcodec.OpI64Shl, wasmcodec.OpI32Shl)
	case mir.BinShr:
		op = pick(wide, wasmcodec.OpI64ShrS, wasmcodec.OpI32ShrS)
	case mir.BinEq:
		op = pick(wide, wasmcodec.OpI64Eq, wasmcodec.OpI32Eq)
	case mir.BinNe:
		op = pick(wide, wasmcodec.OpI64Ne, wasmcodec.OpI32Ne)
	case mir.BinLt:
		op = pick(wide, wasmcodec.OpI64LtS, wasmcodec.OpI32LtS)
	case mir.BinLe:
		op = pick(wide, wasmcodec.OpI64LeS, wasmcodec.OpI32LeS)
	case mir.BinGt:
		op = pick(wide, wasmcodec.OpI64GtS, wasmcodec.OpI32GtS)
	case mir.BinGe:
		op = pick(wide, wasmcodec.OpI64GeS, wasmcodec.OpI32GeS)
	default:
		return fmt.Errorf("wasmgen: unhandled binop %v", rv.Op)
	}
	fe.buf.WriteByte(byte(op))
	return fe.storeToPlace(dst)
}

func pick(wide bool, w, n wasmcodec.Op) wasmcodec.Op {
	if wide {
		return w
	}
	return n
}

func (fe *functionEmitter) operandIsWide(op mir.Operand) bool {
	if c, ok := op.(mir.OperandConst); ok {
		switch v := c.Value.(type) {
		case mir.ConstInt:
			return v.Bits > 32
		case mir.ConstUInt:
			return v.Bits > 32
		}
	}
	return false
}

func (fe *functionEmitter) emitUnary(dst mir.Place, rv mir.RvUnary) error {
	switch rv.Op {
	case mir.UnNeg:
		fe.emitI32Const(0)
		if err := fe.emitOperand(rv.Operand); err != nil {
			return err
		}
		fe.buf.WriteByte(byte(wasmcodec.OpI32Sub))
	case mir.UnNot:
		if err := fe.emitOperand(rv.Operand); err != nil {
			return err
		}
		fe.buf.WriteByte(byte(wasmcodec.OpI32Eqz))
	default:
		return fmt.Errorf("wasmgen: unhandled unop %v", rv.Op)
	}
	return fe.storeToPlace(dst)
}

// emitAggregate constructs a struct/array/tuple literal directly into the
// destination's frame slot, field by field.
func (fe *functionEmitter) emitAggregate(dst mir.Place, rv mir.RvAggregate) error {
	info := fe.localInfo(dst.Local)
	if info.Repr != ReprFrameAllocated {
		return mir.NewCodegenError(fe.fn.Name, "aggregate assign into non-memory local %q", info.Decl.Name)
	}
	size, _, err := fe.b.res.SizeAndAlignForTy(rv.Ty)
	if err != nil {
		return err
	}
	fieldWidth := 4
	if len(rv.Fields) > 0 && size > 0 {
		fieldWidth = size / maxInt(len(rv.Fields), 1)
		if fieldWidth <= 0 {
			fieldWidth = 4
		}
	}
	for i, field := range rv.Fields {
		if err := fe.emitPlaceAddress(dst); err != nil {
			return err
		}
		if i*fieldWidth != 0 {
			fe.emitI32Const(int32(i * fieldWidth))
			fe.buf.WriteByte(byte(wasmcodec.OpI32Add))
		}
		if err := fe.emitOperand(field); err != nil {
			return err
		}
		fe.emitStoreOp(wasmcodec.ValI32)
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (fe *functionEmitter) emitCast(dst mir.Place, rv mir.RvCast) error {
	if err := fe.emitOperand(rv.Operand); err != nil {
		return err
	}
	toWide := false
	if nt, ok := rv.To.(mir.TyNamed); ok {
		if prim, ok2 := mir.LookupPrimitive(nt.Name); ok2 {
			toWide = prim == mir.PrimLong || prim == mir.PrimULong
		}
	}
	fromWide := fe.operandIsWide(rv.Operand)
	switch {
	case toWide && !fromWide:
		fe.buf.WriteByte(byte(wasmcodec.OpI64ExtendI32S))
	case !toWide && fromWide:
		fe.buf.WriteByte(byte(wasmcodec.OpI32WrapI64))
	}
	return fe.storeToPlace(dst)
}

// emitInterpolate lowers a string interpolation into a sequence of
// chic_rt.string_append_* calls, per §4.2 and the worked example in §6:
// Text segments go through string_append_slice(dest, offset, len, 0, 0),
// classified expressions through their class's hook. The integer hooks take
// the value as an i64 low/high pair plus a bit width, so 128-bit operands
// route through the split path; narrower operands widen and pass high = 0.
func (fe *functionEmitter) emitInterpolate(dst mir.Place, rv mir.RvInterpolate) error {
	fe.emitI32Const(0)
	fe.emitI32Const(0)
	if err := fe.callHook(runtimehooks.HookStringFromSlice); err != nil {
		return err
	}
	builderTmp := fe.plan.Scratch.TmpI32
	fe.emitLocalSet(builderTmp)
	for _, seg := range rv.Segments {
		switch s := seg.(type) {
		case mir.InterpText:
			off, ok := fe.b.stringOffset[s.Text]
			if !ok {
				return fmt.Errorf("wasmgen: interpolated literal %d not interned", s.Text)
			}
			fe.emitLocalGet(builderTmp)
			fe.emitI32Const(off)
			fe.emitI32Const(int32(len(fe.b.mod.StringText(s.Text))))
			fe.emitI32Const(0)
			fe.emitI32Const(0)
			if err := fe.callHook(runtimehooks.HookStringAppendSlice); err != nil {
				return err
			}
			fe.emitLocalSet(builderTmp)
		case mir.InterpExpr:
			if err := fe.emitInterpExpr(builderTmp, s); err != nil {
				return err
			}
		}
	}
	fe.emitLocalGet(builderTmp)
	return fe.storeToPlace(dst)
}

func (fe *functionEmitter) emitInterpExpr(builderTmp int, s mir.InterpExpr) error {
	fe.emitLocalGet(builderTmp)
	hasAlign := int32(0)
	if s.Align != 0 {
		hasAlign = 1
	}
	switch s.Class {
	case mir.ClassSignedInt, mir.ClassUnsignedInt:
		bits := s.Bits
		if bits == 0 {
			bits = 32
		}
		if bits > 64 {
			// 128-bit split path: low and high i64 halves.
			if c, ok := s.Operand.(mir.OperandConst); ok {
				if v, ok := c.Value.(mir.ConstInt128); ok {
					fe.emitI64Const(int64(v.Lo))
					fe.emitI64Const(int64(v.Hi))
				} else {
					if err := fe.emitOperand(s.Operand); err != nil {
						return err
					}
					fe.emitI64Const(0)
				}
			} else {
				// Frame-resident i128: load the two halves.
				p := operandPlace(s.Operand)
				if err := fe.emitPlaceAddress(p); err != nil {
					return err
				}
				fe.emitLoadOp(wasmcodec.ValI64)
				if err := fe.emitPlaceAddress(p); err != nil {
					return err
				}
				fe.emitI32Const(8)
				fe.buf.WriteByte(byte(wasmcodec.OpI32Add))
				fe.emitLoadOp(wasmcodec.ValI64)
			}
		} else {
			if err := fe.emitOperand(s.Operand); err != nil {
				return err
			}
			if !fe.operandIsWide(s.Operand) {
				if s.Class == mir.ClassUnsignedInt {
					fe.buf.WriteByte(byte(wasmcodec.OpI64ExtendI32U))
				} else {
					fe.buf.WriteByte(byte(wasmcodec.OpI64ExtendI32S))
				}
			}
			fe.emitI64Const(0)
		}
		fe.emitI32Const(int32(bits))
		fe.emitI32Const(s.Align)
		fe.emitI32Const(hasAlign)
		fe.emitI32Const(0)
		fe.emitI32Const(0)
		if s.Class == mir.ClassUnsignedInt {
			return callAndStash(fe, runtimehooks.HookStringAppendUnsigned, builderTmp)
		}
		return callAndStash(fe, runtimehooks.HookStringAppendSigned, builderTmp)
	case mir.ClassStr:
		// {offset, length} packed into one i64 scalar: unpack both halves.
		if err := fe.emitOperand(s.Operand); err != nil {
			return err
		}
		fe.buf.WriteByte(byte(wasmcodec.OpI32WrapI64))
		if err := fe.emitOperand(s.Operand); err != nil {
			return err
		}
		fe.emitI64Const(32)
		fe.buf.WriteByte(byte(wasmcodec.OpI64ShrU))
		fe.buf.WriteByte(byte(wasmcodec.OpI32WrapI64))
		fe.emitI32Const(0)
		fe.emitI32Const(0)
		return callAndStash(fe, runtimehooks.HookStringAppendSlice, builderTmp)
	case mir.ClassString:
		if err := fe.emitOperand(s.Operand); err != nil {
			return err
		}
		if err := fe.callHook(runtimehooks.HookStringAsSlice); err != nil {
			return err
		}
		fe.emitI32Const(0)
		fe.emitI32Const(0)
		return callAndStash(fe, runtimehooks.HookStringAppendSlice, builderTmp)
	case mir.ClassBool:
		if err := fe.emitOperand(s.Operand); err != nil {
			return err
		}
		fe.emitI32Const(s.Align)
		fe.emitI32Const(hasAlign)
		fe.emitI32Const(0)
		fe.emitI32Const(0)
		return callAndStash(fe, runtimehooks.HookStringAppendBool, builderTmp)
	case mir.ClassChar:
		if err := fe.emitOperand(s.Operand); err != nil {
			return err
		}
		fe.emitI32Const(s.Align)
		fe.emitI32Const(hasAlign)
		fe.emitI32Const(0)
		fe.emitI32Const(0)
		return callAndStash(fe, runtimehooks.HookStringAppendChar, builderTmp)
	case mir.ClassFloat:
		if err := fe.emitOperand(s.Operand); err != nil {
			return err
		}
		fe.emitI32Const(s.Align)
		fe.emitI32Const(hasAlign)
		fe.emitI32Const(0)
		fe.emitI32Const(0)
		if s.Bits == 32 {
			return callAndStash(fe, runtimehooks.HookStringAppendF32, builderTmp)
		}
		return callAndStash(fe, runtimehooks.HookStringAppendF64, builderTmp)
	default:
		return fmt.Errorf("wasmgen: unhandled interpolation class %v", s.Class)
	}
}

func callAndStash(fe *functionEmitter, id runtimehooks.HookID, builderTmp int) error {
	if err := fe.callHook(id); err != nil {
		return err
	}
	fe.emitLocalSet(builderTmp)
	return nil
}

// operandPlace extracts the place of a copy/move operand; constants return
// a zero place (callers only use this on memory-resident operands).
func operandPlace(op mir.Operand) mir.Place {
	switch o := op.(type) {
	case mir.OperandCopy:
		return o.Place
	case mir.OperandMove:
		return o.Place
	default:
		return mir.Place{}
	}
}

func (fe *functionEmitter) emitLoadVtableSlot(dst mir.Place, rv mir.RvLoadVtableSlot) error {
	if err := fe.emitOperand(rv.Object); err != nil {
		return err
	}
	fe.emitI32Const(int32(rv.Slot * fe.b.res.PointerWidthBytes()))
	fe.buf.WriteByte(byte(wasmcodec.OpI32Add))
	fe.emitLoadOp(wasmcodec.ValI32)
	return fe.storeToPlace(dst)
}

// emitHandleMove is the §4.2 fast path for moving String/Vec/Array/Rc/Arc
// values: clone into the destination, then drop the source, so the
// runtime's ownership counts stay balanced. Non-handle types fall through
// to the plain copy (done=false).
func (fe *functionEmitter) emitHandleMove(dst, src mir.Place) (bool, error) {
	srcInfo := fe.localInfo(src.Local)
	switch srcInfo.Decl.Ty.(type) {
	case mir.TyString:
		fe.emitI32Const(0)
		if err := fe.emitDroppedHandle(src); err != nil {
			return false, err
		}
		if err := fe.callHook(runtimehooks.HookStringClone); err != nil {
			return false, err
		}
		if err := fe.storeToPlace(dst); err != nil {
			return false, err
		}
		if err := fe.emitDroppedHandle(src); err != nil {
			return false, err
		}
		return true, fe.callHook(runtimehooks.HookStringDrop)
	case mir.TyVec, mir.TyArray:
		if err := fe.emitPlaceAddress(dst); err != nil {
			return false, err
		}
		if err := fe.emitPlaceAddress(src); err != nil {
			return false, err
		}
		if err := fe.callHook(runtimehooks.HookVecClone); err != nil {
			return false, err
		}
		fe.buf.WriteByte(byte(wasmcodec.OpDrop))
		if err := fe.emitPlaceAddress(src); err != nil {
			return false, err
		}
		return true, fe.callHook(runtimehooks.HookVecDrop)
	case mir.TyRc:
		return fe.moveRefCounted(dst, src, runtimehooks.HookRcClone, runtimehooks.HookRcDrop)
	case mir.TyArc:
		return fe.moveRefCounted(dst, src, runtimehooks.HookArcClone, runtimehooks.HookArcDrop)
	default:
		return false, nil
	}
}

func (fe *functionEmitter) moveRefCounted(dst, src mir.Place, clone, drop runtimehooks.HookID) (bool, error) {
	fe.emitI32Const(0)
	if err := fe.emitDroppedHandle(src); err != nil {
		return false, err
	}
	if err := fe.callHook(clone); err != nil {
		return false, err
	}
	if err := fe.storeToPlace(dst); err != nil {
		return false, err
	}
	if err := fe.emitDroppedHandle(src); err != nil {
		return false, err
	}
	return true, fe.callHook(drop)
}

// emitBorrow registers a borrow region with the runtime's tracker:
// borrow_shared/borrow_unique take (borrow id, resolved pointer). Raw
// borrows are a no-op. The matching borrow_release fires when the borrow
// is passed out of scope through a Ref/Out/In call argument (emitCall).
func (fe *functionEmitter) emitBorrow(s mir.StmtBorrow) error {
	if s.Kind == mir.BorrowRaw {
		return nil
	}
	fe.emitI32Const(int32(s.Id))
	if err := fe.emitPlaceAddress(s.Place); err != nil {
		return err
	}
	if s.Kind == mir.BorrowUnique {
		return fe.callHook(runtimehooks.HookBorrowUnique)
	}
	return fe.callHook(runtimehooks.HookBorrowShared)
}

// emitDrop dispatches on the dropped value's type: String and the
// refcounted handles go through their dedicated runtime hooks, named types
// with synthesized glue call __cl_drop__<T>, anything else droppable falls
// back to drop_missing.
func (fe *functionEmitter) emitDrop(s mir.StmtDrop) error {
	if !fe.b.res.TyRequiresDrop(s.Ty) {
		return nil
	}
	switch ty := s.Ty.(type) {
	case mir.TyString:
		if err := fe.emitDroppedHandle(s.Place); err != nil {
			return err
		}
		return fe.callHook(runtimehooks.HookStringDrop)
	case mir.TyVec, mir.TyArray, mir.TySpan, mir.TyReadOnlySpan:
		if err := fe.emitPlaceAddress(s.Place); err != nil {
			return err
		}
		return fe.callHook(runtimehooks.HookVecDrop)
	case mir.TyRc:
		if err := fe.emitDroppedHandle(s.Place); err != nil {
			return err
		}
		return fe.callHook(runtimehooks.HookRcDrop)
	case mir.TyArc:
		if err := fe.emitDroppedHandle(s.Place); err != nil {
			return err
		}
		return fe.callHook(runtimehooks.HookArcDrop)
	case mir.TyNamed:
		if err := fe.emitPlaceAddress(s.Place); err != nil {
			return err
		}
		if idx, ok := fe.b.funcIndexByName(DropGluePrefix + ty.Name); ok {
			fe.buf.WriteByte(byte(wasmcodec.OpCall))
			wasmcodec.PutUvarint(&fe.buf, uint64(idx))
			return nil
		}
		return fe.callHook(runtimehooks.HookDropMissing)
	default:
		if err := fe.emitPlaceAddress(s.Place); err != nil {
			return err
		}
		return fe.callHook(runtimehooks.HookDropMissing)
	}
}

// emitDroppedHandle pushes the handle value itself (not its address): a
// scalar local holds it directly, a frame slot needs a load.
func (fe *functionEmitter) emitDroppedHandle(p mir.Place) error {
	info := fe.localInfo(p.Local)
	if len(p.Projections) == 0 && info.Repr == ReprScalar {
		fe.emitLocalGet(info.WasmLocal)
		return nil
	}
	if err := fe.emitPlaceAddress(p); err != nil {
		return err
	}
	fe.emitLoadOp(wasmcodec.ValI32)
	return nil
}

func (fe *functionEmitter) emitZeroFill(p mir.Place, t mir.Ty) error {
	size, _, err := fe.b.res.SizeAndAlignForTy(t)
	if err != nil {
		return err
	}
	if size == 0 {
		return nil
	}
	if err := fe.emitPlaceAddress(p); err != nil {
		return err
	}
	fe.emitI32Const(0)
	fe.emitI32Const(int32(size))
	return fe.callHook(runtimehooks.HookMemset)
}

func (fe *functionEmitter) emitZeroInitRaw(s mir.StmtZeroInitRaw) error {
	if err := fe.emitOperand(s.Pointer); err != nil {
		return err
	}
	fe.emitI32Const(0)
	if err := fe.emitOperand(s.Length); err != nil {
		return err
	}
	return fe.callHook(runtimehooks.HookMemset)
}

func (fe *functionEmitter) emitMmioStore(s mir.StmtMmioStore) error {
	if err := fe.emitOperand(s.Address); err != nil {
		return err
	}
	if err := fe.emitOperand(s.Value); err != nil {
		return err
	}
	if s.Bits > 32 {
		fe.emitStoreOp(wasmcodec.ValI64)
	} else {
		fe.emitStoreOp(wasmcodec.ValI32)
	}
	return nil
}

func (fe *functionEmitter) emitStaticStore(s mir.StmtStaticStore) error {
	off, ok := fe.b.staticOffset[s.Static]
	if !ok {
		return fmt.Errorf("wasmgen: static %d has no reserved address", s.Static)
	}
	fe.emitI32Const(off)
	if err := fe.emitOperand(s.Value); err != nil {
		return err
	}
	fe.emitStoreOp(wasmcodec.ValI32)
	return nil
}

func (fe *functionEmitter) emitAtomicStore(s mir.StmtAtomicStore) error {
	if err := fe.emitPlaceAddress(s.Place); err != nil {
		return err
	}
	if err := fe.emitOperand(s.Value); err != nil {
		return err
	}
	fe.buf.WriteByte(byte(wasmcodec.OpAtomicPrefix))
	if s.Bits > 32 {
		fe.buf.WriteByte(byte(wasmcodec.AtomicI64Store))
	} else {
		fe.buf.WriteByte(byte(wasmcodec.AtomicI32Store))
	}
	fe.buf.WriteByte(2)
	fe.buf.WriteByte(0)
	return nil
}

func (fe *functionEmitter) emitAssert(s mir.StmtAssert) error {
	if err := fe.emitOperand(s.Cond); err != nil {
		return err
	}
	if s.Expected {
		fe.buf.WriteByte(byte(wasmcodec.OpI32Eqz))
	}
	fe.buf.WriteByte(byte(wasmcodec.OpIf))
	fe.buf.WriteByte(wasmcodec.BlockTypeEmpty)
	fe.emitI32Const(panicAssertionFailure)
	if err := fe.callHook(runtimehooks.HookPanic); err != nil {
		return err
	}
	fe.buf.WriteByte(byte(wasmcodec.OpEnd))
	return nil
}

// panicAssertionFailure is the 0x2100 assertion-mismatch code from §6.
const panicAssertionFailure = 0x2100
