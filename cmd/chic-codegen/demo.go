package main

import "github.com/Chic-lang/Chic-sub010/pkg/mir"

// demoModule builds the pipeline smoke module: Smoke::Main calls
// Smoke::Add(21, 21) and returns 0 when the result is 42, 1 otherwise.
// It stands in for the out-of-scope frontend so emit-wasm / emit-llvm /
// run have something real to chew on.
func demoModule() *mir.MirModule {
	intTy := mir.TyNamed{Name: "int"}

	add := &mir.MirFunction{
		Name: "Smoke::Add",
		Sig:  mir.Signature{Params: []mir.Ty{intTy, intTy}, Ret: intTy},
		Body: &mir.MirBody{
			ArgCount: 2,
			Locals: []*mir.LocalDecl{
				{Ty: intTy, Kind: mir.LocalReturn},
				{Name: "a", Ty: intTy, Kind: mir.LocalArg, ArgIndex: 0},
				{Name: "b", Ty: intTy, Kind: mir.LocalArg, ArgIndex: 1},
			},
			Blocks: []*mir.BasicBlock{
				{
					Id: 0,
					Statements: []mir.Statement{
						mir.StmtAssign{
							Place: mir.Place{Local: 0},
							Rvalue: mir.RvBinary{
								Op:  mir.BinAdd,
								Lhs: mir.OperandCopy{Place: mir.Place{Local: 1}},
								Rhs: mir.OperandCopy{Place: mir.Place{Local: 2}},
							},
						},
					},
					Terminator: mir.TermReturn{},
				},
			},
		},
	}

	dest := mir.Place{Local: 1}
	main := &mir.MirFunction{
		Name: "Smoke::Main",
		Sig:  mir.Signature{Ret: intTy},
		Body: &mir.MirBody{
			Locals: []*mir.LocalDecl{
				{Ty: intTy, Kind: mir.LocalReturn},
				{Name: "sum", Ty: intTy, Kind: mir.LocalTemp},
			},
			Blocks: []*mir.BasicBlock{
				{
					Id: 0,
					Terminator: mir.TermCall{
						CalleeName: "Smoke::Add",
						Args: []mir.CallArg{
							{Operand: mir.OperandConst{Value: mir.ConstInt{V: 21, Bits: 32}}},
							{Operand: mir.OperandConst{Value: mir.ConstInt{V: 21, Bits: 32}}},
						},
						Destination: &dest,
						Target:      1,
						Dispatch:    mir.DispatchNone{},
					},
				},
				{
					Id: 1,
					Terminator: mir.TermSwitchInt{
						Value:     mir.OperandCopy{Place: mir.Place{Local: 1}},
						Arms:      []mir.SwitchArm{{Value: 42, Target: 2}},
						Otherwise: 3,
					},
				},
				{
					Id: 2,
					Statements: []mir.Statement{
						mir.StmtAssign{
							Place:  mir.Place{Local: 0},
							Rvalue: mir.RvUse{Operand: mir.OperandConst{Value: mir.ConstInt{V: 0, Bits: 32}}},
						},
					},
					Terminator: mir.TermReturn{},
				},
				{
					Id: 3,
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

	return &mir.MirModule{
		Name:      "Smoke",
		Functions: []*mir.MirFunction{add, main},
		Layouts:   mir.NewTypeLayoutTable(32),
		Exports: []*mir.ExportRecord{
			{Symbol: "Smoke::Add", Category: mir.ExportFunction},
		},
	}
}
