package llvmgen

import (
	"fmt"

	"github.com/Chic-lang/Chic-sub010/pkg/mir"
)

// llvmVal pairs an LLVM type with the SSA value (register or immediate)
// that carries it — the unit every emitter helper here passes around
// instead of relying on an implicit value stack, the way the WASM backend
// can (WASM has one, LLVM's textual form does not).
type llvmVal struct {
	Ty  string
	Val string
}

func (fe *functionEmitter) localLLVMType(l int) string {
	return fe.localTy[l]
}

// addressOf returns an i8* pointing at a place's storage, applying byte
// offsets for each projection step. Field offsets arrive pre-resolved into
// ProjField(FieldIndex) as a byte offset by the lowering pass that produced
// this MIR, matching the WASM backend's own assumption in emitPlaceAddress.
func (fe *functionEmitter) addressOf(p mir.Place) (string, error) {
	base := fe.localAddr[p.Local]
	baseTy := fe.localTy[p.Local]
	r := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = bitcast %s* %s to i8*\n", r, baseTy, base)
	cur := r
	for _, proj := range p.Projections {
		switch proj.Kind {
		case mir.ProjField:
			if proj.FieldIndex == 0 {
				continue
			}
			next := fe.reg()
			fmt.Fprintf(&fe.buf, "  %s = getelementptr i8, i8* %s, i64 %d\n", next, cur, proj.FieldIndex)
			cur = next
		case mir.ProjIndex:
			idx, err := fe.loadOperand(proj.IndexOperand)
			if err != nil {
				return "", err
			}
			idxI64 := fe.toI64(idx)
			next := fe.reg()
			fmt.Fprintf(&fe.buf, "  %s = getelementptr i8, i8* %s, i64 %s\n", next, cur, idxI64)
			cur = next
		case mir.ProjDeref:
			typed := fe.reg()
			fmt.Fprintf(&fe.buf, "  %s = bitcast i8* %s to i8**\n", typed, cur)
			loaded := fe.reg()
			fmt.Fprintf(&fe.buf, "  %s = load i8*, i8** %s\n", loaded, typed)
			cur = loaded
		case mir.ProjDowncast, mir.ProjFieldNamed, mir.ProjUnionField:
			// resolved upstream into ProjField, as in the WASM backend.
		}
	}
	return cur, nil
}

// toI64 widens/truncates a value to i64 for use as a GEP byte offset.
func (fe *functionEmitter) toI64(v llvmVal) string {
	if v.Ty == "i64" {
		return v.Val
	}
	r := fe.reg()
	if v.Ty == "float" || v.Ty == "double" {
		fmt.Fprintf(&fe.buf, "  %s = fptosi %s %s to i64\n", r, v.Ty, v.Val)
		return r
	}
	fmt.Fprintf(&fe.buf, "  %s = sext %s %s to i64\n", r, v.Ty, v.Val)
	return r
}

// loadOperand materializes an operand's value into a register (or returns a
// constant immediate directly, without a load).
func (fe *functionEmitter) loadOperand(op mir.Operand) (llvmVal, error) {
	switch o := op.(type) {
	case mir.OperandConst:
		return fe.constVal(o.Value), nil
	case mir.OperandCopy:
		return fe.loadPlace(o.Place)
	case mir.OperandMove:
		return fe.loadPlace(o.Place)
	default:
		return llvmVal{}, fmt.Errorf("llvmgen: unhandled operand %T", op)
	}
}

func (fe *functionEmitter) loadPlace(p mir.Place) (llvmVal, error) {
	declTy := fe.localTy[p.Local]
	if len(p.Projections) == 0 {
		r := fe.reg()
		fmt.Fprintf(&fe.buf, "  %s = load %s, %s* %s\n", r, declTy, declTy, fe.localAddr[p.Local])
		return llvmVal{Ty: declTy, Val: r}, nil
	}
	addr, err := fe.addressOf(p)
	if err != nil {
		return llvmVal{}, err
	}
	// A projected place's leaf type isn't separately tracked on Place (the
	// MIR carries it implicitly via the surrounding rvalue/assign's type);
	// default to the pointer-width integer, which covers scalar field reads,
	// the only leaf kind the statement lowering below dereferences directly.
	leafTy := fmt.Sprintf("i%d", fe.b.res.PointerWidthBytes()*8)
	typed := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = bitcast i8* %s to %s*\n", typed, addr, leafTy)
	r := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = load %s, %s* %s\n", r, leafTy, leafTy, typed)
	return llvmVal{Ty: leafTy, Val: r}, nil
}

// operandUnsigned reports whether an operand's declared type is an
// unsigned primitive, used to pick signed/unsigned comparison and
// division/shift opcodes. Operands without a directly-known type (e.g. a
// projected place) default to signed, matching the WASM backend's own
// signed-by-default choice for the same case.
func (fe *functionEmitter) operandUnsigned(op mir.Operand) bool {
	switch o := op.(type) {
	case mir.OperandConst:
		_, ok := o.Value.(mir.ConstUInt)
		return ok
	case mir.OperandCopy:
		return fe.placeUnsigned(o.Place)
	case mir.OperandMove:
		return fe.placeUnsigned(o.Place)
	default:
		return false
	}
}

func (fe *functionEmitter) placeUnsigned(p mir.Place) bool {
	if len(p.Projections) != 0 || fe.fn.Body == nil || p.Local >= len(fe.fn.Body.Locals) {
		return false
	}
	return isUnsignedTy(fe.fn.Body.Locals[p.Local].Ty)
}

func (fe *functionEmitter) constVal(c mir.ConstValue) llvmVal {
	switch v := c.(type) {
	case mir.ConstUnit:
		return llvmVal{Ty: "void", Val: ""}
	case mir.ConstBool:
		if v.V {
			return llvmVal{Ty: "i1", Val: "1"}
		}
		return llvmVal{Ty: "i1", Val: "0"}
	case mir.ConstInt:
		return llvmVal{Ty: fmt.Sprintf("i%d", v.Bits), Val: fmt.Sprintf("%d", v.V)}
	case mir.ConstUInt:
		return llvmVal{Ty: fmt.Sprintf("i%d", v.Bits), Val: fmt.Sprintf("%d", v.V)}
	case mir.ConstInt128:
		return llvmVal{Ty: "i128", Val: fmt.Sprintf("%d", v.Hi)} // hi/lo packing deferred; rare path
	case mir.ConstFloat:
		ty := "double"
		if v.Bits == 32 {
			ty = "float"
		}
		return llvmVal{Ty: ty, Val: fmt.Sprintf("%g", v.V)}
	case mir.ConstStr:
		sym := fe.b.stringSymbol(v.Id)
		text := fe.b.mod.StringText(v.Id)
		r := fe.reg()
		fmt.Fprintf(&fe.buf, "  %s = getelementptr [%d x i8], [%d x i8]* %s, i64 0, i64 0\n",
			r, len(text)+1, len(text)+1, sym)
		return llvmVal{Ty: "i8*", Val: r}
	case mir.ConstChar:
		return llvmVal{Ty: "i32", Val: fmt.Sprintf("%d", v.V)}
	default:
		return llvmVal{Ty: "i32", Val: "0"}
	}
}

// storeToPlace writes a value into a place's storage, respecting
// projections the same way addressOf does.
func (fe *functionEmitter) storeToPlace(p mir.Place, v llvmVal) error {
	if len(p.Projections) == 0 {
		declTy := fe.localTy[p.Local]
		val := fe.coerce(v, declTy)
		fmt.Fprintf(&fe.buf, "  store %s %s, %s* %s\n", declTy, val, declTy, fe.localAddr[p.Local])
		return nil
	}
	addr, err := fe.addressOf(p)
	if err != nil {
		return err
	}
	leafTy := fmt.Sprintf("i%d", fe.b.res.PointerWidthBytes()*8)
	typed := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = bitcast i8* %s to %s*\n", typed, addr, leafTy)
	val := fe.coerce(v, leafTy)
	fmt.Fprintf(&fe.buf, "  store %s %s, %s* %s\n", leafTy, val, leafTy, typed)
	return nil
}

// coerce adjusts an integer value's width to match a destination type via a
// trunc/zext/sext/bitcast as needed; a no-op when the types already match.
func (fe *functionEmitter) coerce(v llvmVal, to string) string {
	if v.Ty == to {
		return v.Val
	}
	if (v.Ty == "float" || v.Ty == "double") || (to == "float" || to == "double") {
		return v.Val // cross float/int coercions are handled explicitly at cast sites
	}
	wFrom, okFrom := intWidth(v.Ty)
	wTo, okTo := intWidth(to)
	if !okFrom || !okTo {
		return v.Val
	}
	r := fe.reg()
	switch {
	case wTo < wFrom:
		fmt.Fprintf(&fe.buf, "  %s = trunc %s %s to %s\n", r, v.Ty, v.Val, to)
	case wTo > wFrom:
		fmt.Fprintf(&fe.buf, "  %s = zext %s %s to %s\n", r, v.Ty, v.Val, to)
	default:
		return v.Val
	}
	return r
}

func intWidth(t string) (int, bool) {
	if len(t) < 2 || t[0] != 'i' {
		return 0, false
	}
	n := 0
	for _, c := range t[1:] {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
