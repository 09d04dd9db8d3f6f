package mir

import "testing"

func TestAlignTo(t *testing.T) {
	cases := []struct{ off, align, want int }{
		{0, 4, 0}, {1, 4, 4}, {4, 4, 4}, {5, 8, 8}, {9, 1, 9}, {3, 0, 3},
	}
	for _, c := range cases {
		if got := AlignTo(c.off, c.align); got != c.want {
			t.Errorf("AlignTo(%d, %d) = %d, want %d", c.off, c.align, got, c.want)
		}
	}
}

func TestUnionViews(t *testing.T) {
	u := &UnionLayout{
		Name: "Bits",
		Views: []UnionView{
			{Index: 0, Name: "raw", Ty: TyNamed{Name: "uint"}, Mode: UnionOverlay},
			{Index: 1, Name: "signed", Ty: TyNamed{Name: "int"}, Mode: UnionAtomic},
		},
	}
	if v, ok := u.ViewByIndex(1); !ok || v.Name != "signed" {
		t.Error("ViewByIndex(1) failed")
	}
	if v, ok := u.ViewByName("raw"); !ok || v.Index != 0 {
		t.Error("ViewByName(raw) failed")
	}
	if _, ok := u.ViewByName("nope"); ok {
		t.Error("missing view must report ok=false")
	}
}

func TestModuleLookups(t *testing.T) {
	mod := &MirModule{
		Functions: []*MirFunction{{Name: "A::F"}, {Name: "A::G"}},
		Strings:   []*InternedString{{Id: 3, Text: "hi"}},
	}
	if mod.FunctionByName("A::G") == nil || mod.FunctionByName("A::H") != nil {
		t.Error("FunctionByName mismatch")
	}
	if mod.StringText(3) != "hi" || mod.StringText(9) != "" {
		t.Error("StringText mismatch")
	}
}

func TestTyStrings(t *testing.T) {
	ty := TyNamed{Name: "Map", GenericArgs: []GenericArg{
		GAType{Ty: TyString{}},
		GAConst{Expr: "8"},
	}}
	if ty.String() != "Map<String, 8>" {
		t.Errorf("got %q", ty.String())
	}
	fn := TyFn{Params: []Ty{TyStr{}}, Ret: TyUnit{}}
	if fn.String() != "fn(str) -> ()" {
		t.Errorf("got %q", fn.String())
	}
	if (TyVector{Elem: TyNamed{Name: "int"}, Lanes: 4}).String() != "intx4" {
		t.Error("vector string mismatch")
	}
}
