package wasmgen

import (
	"testing"

	"github.com/Chic-lang/Chic-sub010/pkg/layout"
	"github.com/Chic-lang/Chic-sub010/pkg/mir"
	"github.com/Chic-lang/Chic-sub010/pkg/wasmvm"
)

// TestBorrowReleasedAfterCall covers §8 property 7 for the call-argument
// case: a shared borrow passed by Ref is registered before the call and
// released right after it, leaving the runtime's tracker balanced.
func TestBorrowReleasedAfterCall(t *testing.T) {
	intTy := mir.TyNamed{Name: "int"}

	readIt := &mir.MirFunction{
		Name: "B::Read",
		Sig: mir.Signature{
			Params:     []mir.Ty{mir.TyRef{Elem: intTy}},
			ParamModes: []mir.ParamMode{mir.ModeRef},
			Ret:        mir.TyUnit{},
		},
		Body: &mir.MirBody{
			ArgCount: 1,
			Locals: []*mir.LocalDecl{
				{Ty: mir.TyUnit{}, Kind: mir.LocalReturn},
				{Name: "p", Ty: mir.TyRef{Elem: intTy}, Kind: mir.LocalArg, ArgIndex: 0, Mode: mir.ModeRef},
			},
			Blocks: []*mir.BasicBlock{{Id: 0, Terminator: mir.TermReturn{}}},
		},
	}

	main := &mir.MirFunction{
		Name: "B::Main",
		Kind: mir.FuncTestCase,
		Sig:  mir.Signature{Ret: mir.TyUnit{}},
		Body: &mir.MirBody{
			Locals: []*mir.LocalDecl{
				{Ty: mir.TyUnit{}, Kind: mir.LocalReturn},
				{Name: "x", Ty: intTy, Kind: mir.LocalLocal},
			},
			Blocks: []*mir.BasicBlock{
				{
					Id: 0,
					Statements: []mir.Statement{
						mir.StmtBorrow{Id: 7, Kind: mir.BorrowShared, Place: mir.Place{Local: 1}},
					},
					Terminator: mir.TermCall{
						CalleeName: "B::Read",
						Args: []mir.CallArg{{
							Operand: mir.OperandCopy{Place: mir.Place{Local: 1}},
							Mode:    mir.ModeRef,
							Borrow:  7,
						}},
						Target:   1,
						Dispatch: mir.DispatchNone{},
					},
				},
				{Id: 1, Terminator: mir.TermReturn{}},
			},
		},
	}

	mod := &mir.MirModule{
		Name:      "B",
		Functions: []*mir.MirFunction{readIt, main},
		Layouts:   mir.NewTypeLayoutTable(32),
	}
	res, err := Emit(mod, layout.New(mod.Layouts), Options{})
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := wasmvm.ParseModule(res.Bytes)
	if err != nil {
		t.Fatal(err)
	}
	vm, err := wasmvm.NewVM(parsed, wasmvm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := vm.CallExport("test::B::Main"); err != nil {
		t.Fatal(err)
	}
	if bal := vm.HostBorrowBalance(7); bal != 0 {
		t.Errorf("borrow 7 balance %d after run, want 0", bal)
	}
}
