// Package mir defines the typed mid-level intermediate representation that
// the WASM and LLVM backends both lower. The module is built once by an
// external lowering pass (out of scope here) and is read-only from the
// point the backends see it.
package mir

import "strings"

// Ty is the tagged union of MIR types. Concrete kinds implement it; callers
// exhaustively type-switch rather than query a Kind field, matching the
// rest of the MIR's tagged-union idiom.
type Ty interface {
	isTy()
	String() string
}

type TyUnit struct{}
type TyUnknown struct{}

// TyNamed is a resolved or to-be-resolved nominal type: struct, enum,
// union, class, or interface, keyed by canonical name.
type TyNamed struct {
	Name        string
	GenericArgs []GenericArg
}

type TyPointer struct{ Elem Ty }
type TyRef struct{ Elem Ty }
type TyArray struct {
	Elem Ty
	Len  int
}
type TyVec struct{ Elem Ty }
type TySpan struct{ Elem Ty }
type TyReadOnlySpan struct{ Elem Ty }
type TyRc struct{ Elem Ty }
type TyArc struct{ Elem Ty }
type TyTuple struct{ Elems []Ty }
type TyFn struct {
	Params   []Ty
	Ret      Ty
	Variadic bool
}
type TyNullable struct{ Elem Ty }
type TyVector struct {
	Elem  Ty
	Lanes int
}
type TyTraitObject struct{ Trait string }
type TyString struct{}
type TyStr struct{}

func (TyUnit) isTy()          {}
func (TyUnknown) isTy()       {}
func (TyNamed) isTy()         {}
func (TyPointer) isTy()       {}
func (TyRef) isTy()           {}
func (TyArray) isTy()         {}
func (TyVec) isTy()           {}
func (TySpan) isTy()          {}
func (TyReadOnlySpan) isTy()  {}
func (TyRc) isTy()            {}
func (TyArc) isTy()           {}
func (TyTuple) isTy()         {}
func (TyFn) isTy()            {}
func (TyNullable) isTy()      {}
func (TyVector) isTy()        {}
func (TyTraitObject) isTy()   {}
func (TyString) isTy()        {}
func (TyStr) isTy()           {}

func (TyUnit) String() string    { return "()" }
func (TyUnknown) String() string { return "?" }

func (t TyNamed) String() string {
	if len(t.GenericArgs) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.GenericArgs))
	for i, a := range t.GenericArgs {
		parts[i] = a.String()
	}
	return t.Name + "<" + strings.Join(parts, ", ") + ">"
}

func (t TyPointer) String() string      { return "*" + t.Elem.String() }
func (t TyRef) String() string          { return "&" + t.Elem.String() }
func (t TyArray) String() string        { return "[" + t.Elem.String() + "; N]" }
func (t TyVec) String() string          { return "Vec<" + t.Elem.String() + ">" }
func (t TySpan) String() string         { return "Span<" + t.Elem.String() + ">" }
func (t TyReadOnlySpan) String() string { return "ReadOnlySpan<" + t.Elem.String() + ">" }
func (t TyRc) String() string           { return "Rc<" + t.Elem.String() + ">" }
func (t TyArc) String() string          { return "Arc<" + t.Elem.String() + ">" }

func (t TyTuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t TyFn) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return "fn(" + strings.Join(parts, ", ") + ") -> " + t.Ret.String()
}

func (t TyNullable) String() string    { return t.Elem.String() + "?" }
func (t TyVector) String() string      { return t.Elem.String() + "x" + itoa(t.Lanes) }
func (t TyTraitObject) String() string { return "dyn " + t.Trait }
func (TyString) String() string        { return "String" }
func (TyStr) String() string           { return "str" }

// GenericArg is Type(Ty) or Const(expr text), per spec §3.
type GenericArg interface {
	isGenericArg()
	String() string
}

type GAType struct{ Ty Ty }
type GAConst struct{ Expr string }

func (GAType) isGenericArg()  {}
func (GAConst) isGenericArg() {}

func (a GAType) String() string  { return a.Ty.String() }
func (a GAConst) String() string { return a.Expr }

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// PrimitiveKind enumerates the fixed-width scalar types §4.1 requires a
// stable width for.
type PrimitiveKind int

const (
	PrimBool PrimitiveKind = iota
	PrimSByte
	PrimByte
	PrimShort
	PrimUShort
	PrimInt
	PrimUInt
	PrimLong
	PrimULong
	PrimChar
	PrimFloat
	PrimDouble
	PrimI128
	PrimU128
	PrimNInt
	PrimNUInt
)

var primitiveNames = map[string]PrimitiveKind{
	"bool": PrimBool, "sbyte": PrimSByte, "byte": PrimByte,
	"short": PrimShort, "ushort": PrimUShort, "int": PrimInt, "uint": PrimUInt,
	"long": PrimLong, "ulong": PrimULong, "char": PrimChar,
	"float": PrimFloat, "double": PrimDouble,
	"i128": PrimI128, "u128": PrimU128,
	"nint": PrimNInt, "nuint": PrimNUInt,
}

// LookupPrimitive resolves a primitive type name, returning ok=false for
// names that are not fixed-width built-ins.
func LookupPrimitive(name string) (PrimitiveKind, bool) {
	k, ok := primitiveNames[name]
	return k, ok
}

// PrimitiveWidth returns the byte width of a primitive kind for the given
// pointer width (32 or 64), matching §4.1's "pointer-sized for nint/nuint".
func PrimitiveWidth(k PrimitiveKind, pointerWidth int) int {
	switch k {
	case PrimBool, PrimSByte, PrimByte:
		return 1
	case PrimShort, PrimUShort:
		return 2
	case PrimInt, PrimUInt, PrimFloat, PrimChar:
		return 4
	case PrimLong, PrimULong, PrimDouble:
		return 8
	case PrimI128, PrimU128:
		return 16
	case PrimNInt, PrimNUInt:
		return pointerWidth / 8
	default:
		return 0
	}
}
