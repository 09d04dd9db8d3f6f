package wasmgen

import (
	"testing"

	"github.com/Chic-lang/Chic-sub010/pkg/layout"
	"github.com/Chic-lang/Chic-sub010/pkg/mir"
	"github.com/Chic-lang/Chic-sub010/pkg/wasmvm"
)

// TestStringMoveClonesThenDrops covers §8 property 8: moving a String
// emits a clone into the destination followed by a drop of the source.
func TestStringMoveClonesThenDrops(t *testing.T) {
	strTy := mir.TyString{}
	fn := &mir.MirFunction{
		Name: "M::Shuffle",
		Kind: mir.FuncTestCase,
		Sig:  mir.Signature{Ret: mir.TyUnit{}},
		Body: &mir.MirBody{
			Locals: []*mir.LocalDecl{
				{Ty: mir.TyUnit{}, Kind: mir.LocalReturn},
				{Name: "src", Ty: strTy, Kind: mir.LocalLocal},
				{Name: "dst", Ty: strTy, Kind: mir.LocalLocal},
			},
			Blocks: []*mir.BasicBlock{{
				Id: 0,
				Statements: []mir.Statement{
					mir.StmtAssign{
						Place:  mir.Place{Local: 2},
						Rvalue: mir.RvUse{Operand: mir.OperandMove{Place: mir.Place{Local: 1}}},
					},
				},
				Terminator: mir.TermReturn{},
			}},
		},
	}
	mod := &mir.MirModule{Name: "M", Functions: []*mir.MirFunction{fn}, Layouts: mir.NewTypeLayoutTable(32)}
	res, err := Emit(mod, layout.New(mod.Layouts), Options{})
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := wasmvm.ParseModule(res.Bytes)
	if err != nil {
		t.Fatal(err)
	}

	var order []string
	vm, err := wasmvm.NewVM(parsed, wasmvm.Config{Hooks: map[string]wasmvm.HostFunc{
		"chic_rt.string_clone": func(vm *wasmvm.VM, args []uint64) ([]uint64, error) {
			order = append(order, "clone")
			return []uint64{99}, nil
		},
		"chic_rt.string_drop": func(vm *wasmvm.VM, args []uint64) ([]uint64, error) {
			order = append(order, "drop")
			return nil, nil
		},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := vm.CallExport("test::M::Shuffle"); err != nil {
		t.Fatal(err)
	}
	if len(order) != 2 || order[0] != "clone" || order[1] != "drop" {
		t.Fatalf("hook order %v, want [clone drop]", order)
	}
}
