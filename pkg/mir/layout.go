package mir

import "fmt"

// Repr is a struct's memory representation mode.
type Repr int

const (
	ReprDefault Repr = iota
	ReprC
	ReprPacked
	ReprTransparent
)

// FieldLayout is one field of a struct/class/enum-variant payload.
type FieldLayout struct {
	Name   string
	Index  int
	Offset int // bytes
	Ty     Ty
	Size   int
	Align  int
}

// StructLayout is the resolved layout of a struct type. Every field carries
// a stable index and an explicit byte offset, per §3.
type StructLayout struct {
	Name       string
	Fields     []FieldLayout
	Size       int
	Align      int
	Repr       Repr
	PackedN    int // valid when Repr == ReprPacked
}

// EnumVariant is one discriminated case of an enum, with its own payload
// field list and offsets.
type EnumVariant struct {
	Name          string
	Index         int
	Discriminant  int64
	Fields        []FieldLayout
	PayloadSize   int
	PayloadAlign  int
}

// EnumLayout is the resolved layout of an enum type.
type EnumLayout struct {
	Name           string
	Variants       []EnumVariant
	DiscriminantSize int
	Size           int
	Align          int
}

// UnionMode is how a union view overlays its storage.
type UnionMode int

const (
	UnionOverlay UnionMode = iota
	UnionAtomic
)

// UnionView is one named/indexed view into a union's storage.
type UnionView struct {
	Index int
	Name  string
	Ty    Ty
	Mode  UnionMode
	Size  int
	Align int
}

// UnionLayout is the resolved layout of a union type, with views keyed by
// both index and name per §3.
type UnionLayout struct {
	Name  string
	Views []UnionView
	Size  int
	Align int
}

// ViewByIndex looks up a union view by its declaration index.
func (u *UnionLayout) ViewByIndex(i int) (UnionView, bool) {
	for _, v := range u.Views {
		if v.Index == i {
			return v, true
		}
	}
	return UnionView{}, false
}

// ViewByName looks up a union view by its declared name.
func (u *UnionLayout) ViewByName(name string) (UnionView, bool) {
	for _, v := range u.Views {
		if v.Name == name {
			return v, true
		}
	}
	return UnionView{}, false
}

// ClassLayout extends StructLayout with inheritance and dispatch metadata.
type ClassLayout struct {
	StructLayout
	Bases        []string
	VtableSymbol string
	VtableVersion uint64
	Dispose      string // dispose symbol, "" if the class has none
}

// AggregateAllocation is the result of computing an aggregate's frame
// footprint before the caller has assigned it an offset, per §4.1.
type AggregateAllocation struct {
	OffsetInFrame int
	Size          int
	Align         int
}

// TypeLayoutTable is the module's single owned layout arena, keyed by
// canonical type name.
type TypeLayoutTable struct {
	PointerWidth int // 32 or 64
	Structs      map[string]*StructLayout
	Enums        map[string]*EnumLayout
	Unions       map[string]*UnionLayout
	Classes      map[string]*ClassLayout
}

// NewTypeLayoutTable creates an empty table for the given pointer width.
func NewTypeLayoutTable(pointerWidth int) *TypeLayoutTable {
	if pointerWidth != 32 && pointerWidth != 64 {
		panic(fmt.Sprintf("mir: unsupported pointer width %d", pointerWidth))
	}
	return &TypeLayoutTable{
		PointerWidth: pointerWidth,
		Structs:      make(map[string]*StructLayout),
		Enums:        make(map[string]*EnumLayout),
		Unions:       make(map[string]*UnionLayout),
		Classes:      make(map[string]*ClassLayout),
	}
}

// AlignTo rounds offset up to the next multiple of align (align must be a
// power of two, or 0/1 for no alignment requirement).
func AlignTo(offset, align int) int {
	if align <= 1 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}
