package wasmgen

import "github.com/Chic-lang/Chic-sub010/pkg/mir"

// computeAddressTaken implements the §9 "address-taken analysis" pre-pass:
// a straightforward set-collecting visitor over a function's statements and
// terminators, flagging locals taken by `&` (RvRef), by In/Ref/Out call
// arguments, or that are a named-type `self` (Arg(0) of a method, heuristic
// by convention since the MIR doesn't tag `self` explicitly).
func computeAddressTaken(fn *mir.MirFunction) map[int]bool {
	taken := make(map[int]bool)
	body := fn.Body
	if body == nil {
		return taken
	}

	if body.ArgCount > 0 {
		if self := firstArgLocal(body); self >= 0 {
			if decl := body.Locals[self]; decl.Mode == mir.ModeValue {
				if _, ok := decl.Ty.(mir.TyNamed); ok {
					taken[self] = true
				}
			}
		}
	}

	for _, block := range body.Blocks {
		for _, stmt := range block.Statements {
			switch s := stmt.(type) {
			case mir.StmtAssign:
				if ref, ok := s.Rvalue.(mir.RvRef); ok {
					taken[ref.Place.Local] = true
				}
			case mir.StmtBorrow:
				taken[s.Place.Local] = true
			}
		}
		if call, ok := block.Terminator.(mir.TermCall); ok {
			for _, arg := range call.Args {
				if arg.Mode != mir.ModeValue {
					if op, ok := arg.Operand.(mir.OperandMove); ok {
						taken[op.Place.Local] = true
					}
					if op, ok := arg.Operand.(mir.OperandCopy); ok {
						taken[op.Place.Local] = true
					}
				}
			}
		}
	}
	return taken
}

// firstArgLocal returns the index of the local with ArgIndex == 0, or -1.
func firstArgLocal(body *mir.MirBody) int {
	for i, l := range body.Locals {
		if l.Kind == mir.LocalArg && l.ArgIndex == 0 {
			return i
		}
	}
	return -1
}
