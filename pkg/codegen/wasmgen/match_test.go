package wasmgen

import (
	"strings"
	"testing"

	"github.com/Chic-lang/Chic-sub010/pkg/layout"
	"github.com/Chic-lang/Chic-sub010/pkg/mir"
	"github.com/Chic-lang/Chic-sub010/pkg/wasmvm"
)

func colorLayouts() *mir.TypeLayoutTable {
	table := mir.NewTypeLayoutTable(32)
	table.Enums["Paint::Color"] = &mir.EnumLayout{
		Name: "Paint::Color",
		Variants: []mir.EnumVariant{
			{Name: "Red", Index: 0, Discriminant: 10},
			{Name: "Green", Index: 1, Discriminant: 20},
			{Name: "Blue", Index: 2, Discriminant: 30},
		},
		DiscriminantSize: 4,
		Size:             4, Align: 4,
	}
	return table
}

// colorMatchModule matches a Paint::Color local (pre-set to disc) against
// the named variant: return 0 on the matched arm, 1 otherwise.
func colorMatchModule(variant string, disc int64) *mir.MirModule {
	intTy := mir.TyNamed{Name: "int"}
	colorTy := mir.TyNamed{Name: "Paint::Color"}
	fn := &mir.MirFunction{
		Name: "Paint::Pick",
		Kind: mir.FuncTestCase,
		Sig:  mir.Signature{Ret: intTy},
		Body: &mir.MirBody{
			Locals: []*mir.LocalDecl{
				{Ty: intTy, Kind: mir.LocalReturn},
				{Name: "c", Ty: colorTy, Kind: mir.LocalLocal},
			},
			Blocks: []*mir.BasicBlock{
				{
					Id: 0,
					Statements: []mir.Statement{
						mir.StmtAssign{
							Place:  mir.Place{Local: 1},
							Rvalue: mir.RvUse{Operand: mir.OperandConst{Value: mir.ConstInt{V: disc, Bits: 32}}},
						},
					},
					Terminator: mir.TermMatch{
						Value:     mir.OperandCopy{Place: mir.Place{Local: 1}},
						Arms:      []mir.MatchArm{{Pattern: mir.PatEnumUnit{Variant: variant}, Target: 1}},
						Otherwise: 2,
					},
				},
				{
					Id: 1,
					Statements: []mir.Statement{
						mir.StmtAssign{
							Place:  mir.Place{Local: 0},
							Rvalue: mir.RvUse{Operand: mir.OperandConst{Value: mir.ConstInt{V: 0, Bits: 32}}},
						},
					},
					Terminator: mir.TermReturn{},
				},
				{
					Id: 2,
					Statements: []mir.Statement{
						mir.StmtAssign{
							Place:  mir.Place{Local: 0},
							Rvalue: mir.RvUse{Operand: mir.OperandConst{Value: mir.ConstInt{V: 1, Bits: 32}}},
						},
					},
					Terminator: mir.TermReturn{},
				},
			},
		},
	}
	return &mir.MirModule{Name: "Paint", Functions: []*mir.MirFunction{fn}, Layouts: colorLayouts()}
}

// TestMatchEnumUnitDiscriminant pins §4.2's "enum unit-variant → compare
// discriminant": the variant NAME resolves through the enum layout to its
// wire discriminant, so matching "Green" hits only when the stored
// discriminant is Green's 20, never variant-index 0.
func TestMatchEnumUnitDiscriminant(t *testing.T) {
	cases := []struct {
		variant string
		stored  int64
		want    uint32
	}{
		{"Red", 10, 0},
		{"Green", 20, 0},
		{"Blue", 30, 0},
		{"Green", 10, 1}, // stored Red: the Green arm must not fire
		{"Red", 30, 1},   // stored Blue: the Red arm must not fire
	}
	for _, c := range cases {
		mod := colorMatchModule(c.variant, c.stored)
		res, err := Emit(mod, layout.New(mod.Layouts), Options{})
		if err != nil {
			t.Fatalf("%s/%d: %v", c.variant, c.stored, err)
		}
		parsed, err := wasmvm.ParseModule(res.Bytes)
		if err != nil {
			t.Fatalf("%s/%d: %v", c.variant, c.stored, err)
		}
		vm, err := wasmvm.NewVM(parsed, wasmvm.Config{})
		if err != nil {
			t.Fatal(err)
		}
		out, err := vm.CallExport("test::Paint::Pick")
		if err != nil {
			t.Fatalf("%s/%d: %v", c.variant, c.stored, err)
		}
		if len(out) != 1 || uint32(out[0]) != c.want {
			t.Errorf("match %s with stored disc %d: got %v, want [%d]", c.variant, c.stored, out, c.want)
		}
	}
}

// TestMatchUnknownVariantFails pins that an unresolvable variant name is a
// Codegen error, not a silent zero-discriminant compare.
func TestMatchUnknownVariantFails(t *testing.T) {
	mod := colorMatchModule("Chartreuse", 10)
	_, err := Emit(mod, layout.New(mod.Layouts), Options{})
	if err == nil {
		t.Fatal("expected error for unknown enum variant")
	}
	if !strings.Contains(err.Error(), "Chartreuse") {
		t.Errorf("error should name the variant: %v", err)
	}
}
