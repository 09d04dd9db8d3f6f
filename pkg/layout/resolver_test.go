package layout

import (
	"testing"

	"github.com/Chic-lang/Chic-sub010/pkg/mir"
)

func testTable() *mir.TypeLayoutTable {
	t := mir.NewTypeLayoutTable(32)
	t.Structs["Geo::Point"] = &mir.StructLayout{
		Name: "Geo::Point",
		Fields: []mir.FieldLayout{
			{Name: "x", Index: 0, Offset: 0, Ty: mir.TyNamed{Name: "int"}, Size: 4, Align: 4},
			{Name: "y", Index: 1, Offset: 4, Ty: mir.TyNamed{Name: "int"}, Size: 4, Align: 4},
		},
		Size: 8, Align: 4,
	}
	t.Structs["Geo::Empty"] = &mir.StructLayout{Name: "Geo::Empty", Size: 0, Align: 1}
	t.Structs["Text::Doc"] = &mir.StructLayout{
		Name: "Text::Doc",
		Fields: []mir.FieldLayout{
			{Name: "body", Index: 0, Offset: 0, Ty: mir.TyString{}, Size: 4, Align: 4},
		},
		Size: 4, Align: 4,
	}
	t.Classes["Demo::Disposable"] = &mir.ClassLayout{
		StructLayout: mir.StructLayout{Name: "Demo::Disposable", Size: 8, Align: 4},
		VtableSymbol: "Demo__Disposable__vtable",
		Dispose:      "Demo::Disposable::dispose",
	}
	return t
}

func TestPrimitiveWidths(t *testing.T) {
	res := New(mir.NewTypeLayoutTable(32))
	cases := []struct {
		name string
		size int
	}{
		{"bool", 1}, {"sbyte", 1}, {"byte", 1},
		{"short", 2}, {"ushort", 2},
		{"int", 4}, {"uint", 4}, {"char", 4}, {"float", 4},
		{"long", 8}, {"ulong", 8}, {"double", 8},
		{"i128", 16}, {"u128", 16},
		{"nint", 4}, {"nuint", 4},
	}
	for _, c := range cases {
		size, align, err := res.SizeAndAlignForTy(mir.TyNamed{Name: c.name})
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if size != c.size || align != c.size {
			t.Errorf("%s: got size=%d align=%d, want %d", c.name, size, align, c.size)
		}
	}

	res64 := New(mir.NewTypeLayoutTable(64))
	size, _, _ := res64.SizeAndAlignForTy(mir.TyNamed{Name: "nint"})
	if size != 8 {
		t.Errorf("nint at 64-bit pointer width: got %d, want 8", size)
	}
}

func TestNamedResolutionAndShortNameFallback(t *testing.T) {
	res := New(testTable())

	size, align, err := res.SizeAndAlignForTy(mir.TyNamed{Name: "Geo::Point"})
	if err != nil || size != 8 || align != 4 {
		t.Fatalf("canonical: size=%d align=%d err=%v", size, align, err)
	}

	// Exactly one type ends in ::Point, so the short name resolves.
	size, _, err = res.SizeAndAlignForTy(mir.TyNamed{Name: "Point"})
	if err != nil || size != 8 {
		t.Fatalf("short name: size=%d err=%v", size, err)
	}

	if _, _, err := res.SizeAndAlignForTy(mir.TyNamed{Name: "Nowhere"}); err == nil {
		t.Fatal("expected error for unregistered type")
	}
}

func TestLayoutForNameAmbiguity(t *testing.T) {
	table := testTable()
	table.Structs["Alt::Point"] = &mir.StructLayout{Name: "Alt::Point", Size: 16, Align: 8}
	res := New(table)
	if _, _, err := res.LayoutForName("Point"); err == nil {
		t.Fatal("expected ambiguity error with two ::Point candidates")
	}
}

func TestZeroFieldStruct(t *testing.T) {
	res := New(testTable())
	alloc, err := res.ComputeAggregateAllocation(mir.TyNamed{Name: "Geo::Empty"})
	if err != nil {
		t.Fatal(err)
	}
	if alloc.Size != 0 || alloc.Align != 1 || alloc.OffsetInFrame != 0 {
		t.Errorf("zero-field struct: got %+v, want size 0 align 1", alloc)
	}
}

func TestLocalRequiresMemory(t *testing.T) {
	res := New(testTable())
	memory := []mir.Ty{
		mir.TyNamed{Name: "Geo::Point"},
		mir.TyVec{Elem: mir.TyNamed{Name: "int"}},
		mir.TyString{},
		mir.TySpan{Elem: mir.TyNamed{Name: "byte"}},
		mir.TyTuple{Elems: []mir.Ty{mir.TyNamed{Name: "int"}}},
		mir.TyTraitObject{Trait: "Display"},
		mir.TyRc{Elem: mir.TyNamed{Name: "int"}},
	}
	for _, ty := range memory {
		if !res.LocalRequiresMemory(ty) {
			t.Errorf("%s: expected memory-resident", ty.String())
		}
	}
	scalar := []mir.Ty{
		mir.TyNamed{Name: "int"},
		mir.TyNamed{Name: "double"},
		mir.TyPointer{Elem: mir.TyNamed{Name: "int"}},
		mir.TyRef{Elem: mir.TyNamed{Name: "int"}},
		mir.TyFn{Ret: mir.TyUnit{}},
		mir.TyStr{},
	}
	for _, ty := range scalar {
		if res.LocalRequiresMemory(ty) {
			t.Errorf("%s: expected scalar", ty.String())
		}
	}
}

func TestTyRequiresDrop(t *testing.T) {
	res := New(testTable())
	if !res.TyRequiresDrop(mir.TyString{}) || !res.TyRequiresDrop(mir.TyArc{Elem: mir.TyUnit{}}) {
		t.Error("String/Arc must require drop")
	}
	if res.TyRequiresDrop(mir.TyNamed{Name: "int"}) {
		t.Error("int must not require drop")
	}
	if !res.TypeRequiresDrop("Text::Doc") {
		t.Error("struct with a String field must require drop")
	}
	if res.TypeRequiresDrop("Geo::Point") {
		t.Error("plain int struct must not require drop")
	}
	if !res.TypeRequiresDrop("Demo::Disposable") {
		t.Error("class with a dispose symbol must require drop")
	}
}

func TestTupleLayout(t *testing.T) {
	res := New(testTable())
	// (byte, int, byte): 0..1, pad to 4, 4..8, 8..9, pad to 12.
	size, align, err := res.SizeAndAlignForTy(mir.TyTuple{Elems: []mir.Ty{
		mir.TyNamed{Name: "byte"},
		mir.TyNamed{Name: "int"},
		mir.TyNamed{Name: "byte"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if size != 12 || align != 4 {
		t.Errorf("tuple: got size=%d align=%d, want 12/4", size, align)
	}
}
