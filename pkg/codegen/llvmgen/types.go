package llvmgen

import (
	"fmt"
	"strings"

	"github.com/Chic-lang/Chic-sub010/pkg/layout"
	"github.com/Chic-lang/Chic-sub010/pkg/mir"
)

// llvmType lowers a MIR type to its textual LLVM representation. Named
// aggregates that aren't fixed-width primitives lower to a flat byte array
// addressed by offset, the same flat-layout approach the WASM backend takes
// over linear memory — §4.1's layout table is the single source of truth
// for both backends, so neither invents its own field ordering.
func llvmType(t mir.Ty, res *layout.Resolver) string {
	switch ty := t.(type) {
	case mir.TyUnit:
		return "void"
	case mir.TyUnknown:
		return "i8"
	case mir.TyNamed:
		if k, ok := mir.LookupPrimitive(ty.Name); ok {
			return primitiveLLVM(k, res.PointerWidthBytes()*8)
		}
		size, _, err := res.SizeAndAlignForTy(ty)
		if err != nil || size <= 0 {
			size = 1
		}
		return fmt.Sprintf("[%d x i8]", size)
	case mir.TyPointer:
		return llvmType(ty.Elem, res) + "*"
	case mir.TyRef:
		return llvmType(ty.Elem, res) + "*"
	case mir.TyArray:
		return fmt.Sprintf("[%d x %s]", ty.Len, llvmType(ty.Elem, res))
	case mir.TyVec, mir.TySpan, mir.TyReadOnlySpan:
		return "{ i8*, i64 }"
	case mir.TyRc, mir.TyArc:
		return "i8*" // opaque pointer to a runtime-owned control block
	case mir.TyTuple:
		parts := make([]string, len(ty.Elems))
		for i, e := range ty.Elems {
			parts[i] = llvmType(e, res)
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case mir.TyFn:
		parts := make([]string, len(ty.Params))
		for i, p := range ty.Params {
			parts[i] = llvmType(p, res)
		}
		ret := "void"
		if ty.Ret != nil {
			ret = llvmType(ty.Ret, res)
		}
		return fmt.Sprintf("%s (%s)*", ret, strings.Join(parts, ", "))
	case mir.TyNullable:
		inner := llvmType(ty.Elem, res)
		if strings.HasSuffix(inner, "*") {
			return inner // null is already a valid sentinel
		}
		return "{ i1, " + inner + " }"
	case mir.TyVector:
		return fmt.Sprintf("<%d x %s>", ty.Lanes, llvmType(ty.Elem, res))
	case mir.TyTraitObject:
		return "{ i8*, i8* }" // { data_ptr, vtable_ptr }
	case mir.TyString, mir.TyStr:
		return "{ i8*, i64 }"
	default:
		return "i8"
	}
}

func primitiveLLVM(k mir.PrimitiveKind, pointerWidthBits int) string {
	switch k {
	case mir.PrimBool:
		return "i1"
	case mir.PrimSByte, mir.PrimByte:
		return "i8"
	case mir.PrimShort, mir.PrimUShort:
		return "i16"
	case mir.PrimInt, mir.PrimUInt, mir.PrimChar:
		return "i32"
	case mir.PrimLong, mir.PrimULong:
		return "i64"
	case mir.PrimFloat:
		return "float"
	case mir.PrimDouble:
		return "double"
	case mir.PrimI128, mir.PrimU128:
		return "i128"
	case mir.PrimNInt, mir.PrimNUInt:
		return fmt.Sprintf("i%d", pointerWidthBits)
	default:
		return "i32"
	}
}

func isUnsignedTy(t mir.Ty) bool {
	named, ok := t.(mir.TyNamed)
	if !ok {
		return false
	}
	switch named.Name {
	case "byte", "ushort", "uint", "ulong", "u128", "nuint", "char", "bool":
		return true
	default:
		return false
	}
}

func isUnit(t mir.Ty) bool {
	if t == nil {
		return true
	}
	_, ok := t.(mir.TyUnit)
	return ok
}

func isFloatTy(t mir.Ty) bool {
	named, ok := t.(mir.TyNamed)
	if !ok {
		return false
	}
	return named.Name == "float" || named.Name == "double"
}

// mangle turns a "::"-qualified canonical name into a valid LLVM global
// identifier: the path separator becomes a double underscore
// (Smoke::Add -> Smoke__Add), generic punctuation flattens to single
// underscores.
func mangle(name string) string {
	r := strings.NewReplacer("::", "__", ".", "__", "<", "_", ">", "_", ",", "_", " ", "")
	return r.Replace(name)
}

func escapeString(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' || c < 0x20 || c >= 0x7f {
			fmt.Fprintf(&sb, "\\%02X", c)
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
