package llvmgen

import (
	"fmt"
	"strings"
)

// tryVectorIntrinsic lowers a vector multiply through the current tier's
// matrix/dot-product intrinsic when the operand shape allows it, returning
// the result register. ok=false means the caller should fall back to the
// plain IR instruction (Baseline, unsupported shape, or a tier whose
// intrinsics don't cover this element type).
func (fe *functionEmitter) tryVectorIntrinsic(lhs, rhs llvmVal) (reg string, ok bool) {
	bits, elemFloat, known := vectorShape(lhs.Ty)
	if !known {
		return "", false
	}
	switch fe.tier {
	case TierDotProd:
		if elemFloat || bits != 128 {
			return "", false
		}
		return fe.neonAccumulate("llvm.aarch64.neon.udot.v4i32.v16i8", lhs, rhs), true
	case TierI8mm:
		if elemFloat || bits != 128 {
			return "", false
		}
		return fe.neonAccumulate("llvm.aarch64.neon.usmmla.v4i32", lhs, rhs), true
	case TierBf16:
		if !elemFloat || bits != 128 {
			return "", false
		}
		return fe.bfmmla(lhs, rhs), true
	case TierSve, TierSve2, TierSme:
		if elemFloat || bits != 128 {
			return "", false
		}
		return fe.sveUsmmla(lhs, rhs), true
	case TierAvx2:
		if !elemFloat || bits != 256 {
			return "", false
		}
		return fe.avx2Fma(lhs, rhs), true
	case TierAvx512:
		if elemFloat || bits != 512 {
			return "", false
		}
		return fe.vpdpbusd(lhs, rhs), true
	default:
		return "", false
	}
}

// vectorShape parses "<N x T>" into its total bit width and element class.
func vectorShape(ty string) (bits int, elemFloat bool, ok bool) {
	if !strings.HasPrefix(ty, "<") || !strings.HasSuffix(ty, ">") {
		return 0, false, false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(ty, "<"), ">")
	parts := strings.SplitN(inner, " x ", 2)
	if len(parts) != 2 {
		return 0, false, false
	}
	var lanes int
	if _, err := fmt.Sscanf(parts[0], "%d", &lanes); err != nil {
		return 0, false, false
	}
	var elemBits int
	switch parts[1] {
	case "i8":
		elemBits = 8
	case "i16", "half", "bfloat":
		elemBits = 16
	case "i32":
		elemBits = 32
	case "i64":
		elemBits = 64
	case "float":
		elemBits, elemFloat = 32, true
	case "double":
		elemBits, elemFloat = 64, true
	default:
		return 0, false, false
	}
	if parts[1] == "half" || parts[1] == "bfloat" {
		elemFloat = true
	}
	return lanes * elemBits, elemFloat, true
}

// neonAccumulate emits a zero-accumulator NEON dot/matmul call:
// <4 x i32> @name(<4 x i32> acc, <16 x i8> a, <16 x i8> b).
func (fe *functionEmitter) neonAccumulate(name string, lhs, rhs llvmVal) string {
	sym := "@" + name
	fe.b.declareRaw(sym, fmt.Sprintf("declare <4 x i32> %s(<4 x i32>, <16 x i8>, <16 x i8>)", sym))
	a := fe.bitcastVec(lhs, "<16 x i8>")
	b := fe.bitcastVec(rhs, "<16 x i8>")
	r := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = call <4 x i32> %s(<4 x i32> zeroinitializer, <16 x i8> %s, <16 x i8> %s)\n",
		r, sym, a, b)
	return fe.bitcastVecReg(r, "<4 x i32>", lhs.Ty)
}

func (fe *functionEmitter) bfmmla(lhs, rhs llvmVal) string {
	sym := "@llvm.aarch64.neon.bfmmla.v4f32.v8bf16"
	fe.b.declareRaw(sym, "declare <4 x float> "+sym+"(<4 x float>, <8 x bfloat>, <8 x bfloat>)")
	a := fe.bitcastVec(lhs, "<8 x bfloat>")
	b := fe.bitcastVec(rhs, "<8 x bfloat>")
	r := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = call <4 x float> %s(<4 x float> zeroinitializer, <8 x bfloat> %s, <8 x bfloat> %s)\n",
		r, sym, a, b)
	return fe.bitcastVecReg(r, "<4 x float>", lhs.Ty)
}

// sveUsmmla routes a fixed 128-bit vector through the scalable usmmla the
// way clang's fixed-width-SVE mode does: vector.insert into a zeroed
// scalable register, compute, vector.extract back out.
func (fe *functionEmitter) sveUsmmla(lhs, rhs llvmVal) string {
	mm := "@llvm.aarch64.sve.usmmla.nxv4i32"
	fe.b.declareRaw(mm, "declare <vscale x 4 x i32> "+mm+"(<vscale x 4 x i32>, <vscale x 16 x i8>, <vscale x 16 x i8>)")
	ins := "@llvm.vector.insert.nxv16i8.v16i8"
	fe.b.declareRaw(ins, "declare <vscale x 16 x i8> "+ins+"(<vscale x 16 x i8>, <16 x i8>, i64)")
	ext := "@llvm.vector.extract.v4i32.nxv4i32"
	fe.b.declareRaw(ext, "declare <4 x i32> "+ext+"(<vscale x 4 x i32>, i64)")

	a := fe.bitcastVec(lhs, "<16 x i8>")
	b := fe.bitcastVec(rhs, "<16 x i8>")
	wa := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = call <vscale x 16 x i8> %s(<vscale x 16 x i8> zeroinitializer, <16 x i8> %s, i64 0)\n", wa, ins, a)
	wb := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = call <vscale x 16 x i8> %s(<vscale x 16 x i8> zeroinitializer, <16 x i8> %s, i64 0)\n", wb, ins, b)
	wr := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = call <vscale x 4 x i32> %s(<vscale x 4 x i32> zeroinitializer, <vscale x 16 x i8> %s, <vscale x 16 x i8> %s)\n",
		wr, mm, wa, wb)
	r := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = call <4 x i32> %s(<vscale x 4 x i32> %s, i64 0)\n", r, ext, wr)
	return fe.bitcastVecReg(r, "<4 x i32>", lhs.Ty)
}

func (fe *functionEmitter) avx2Fma(lhs, rhs llvmVal) string {
	sym := "@llvm.fma.v8f32"
	fe.b.declareRaw(sym, "declare <8 x float> "+sym+"(<8 x float>, <8 x float>, <8 x float>)")
	a := fe.bitcastVec(lhs, "<8 x float>")
	b := fe.bitcastVec(rhs, "<8 x float>")
	r := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = call <8 x float> %s(<8 x float> %s, <8 x float> %s, <8 x float> zeroinitializer)\n",
		r, sym, a, b)
	return fe.bitcastVecReg(r, "<8 x float>", lhs.Ty)
}

func (fe *functionEmitter) vpdpbusd(lhs, rhs llvmVal) string {
	sym := "@llvm.x86.avx512.vpdpbusd.512"
	fe.b.declareRaw(sym, "declare <16 x i32> "+sym+"(<16 x i32>, <16 x i32>, <16 x i32>)")
	a := fe.bitcastVec(lhs, "<16 x i32>")
	b := fe.bitcastVec(rhs, "<16 x i32>")
	r := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = call <16 x i32> %s(<16 x i32> zeroinitializer, <16 x i32> %s, <16 x i32> %s)\n",
		r, sym, a, b)
	return fe.bitcastVecReg(r, "<16 x i32>", lhs.Ty)
}

func (fe *functionEmitter) bitcastVec(v llvmVal, to string) string {
	if v.Ty == to {
		return v.Val
	}
	r := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = bitcast %s %s to %s\n", r, v.Ty, v.Val, to)
	return r
}

func (fe *functionEmitter) bitcastVecReg(val, from, to string) string {
	if from == to {
		return val
	}
	r := fe.reg()
	fmt.Fprintf(&fe.buf, "  %s = bitcast %s %s to %s\n", r, from, val, to)
	return r
}
