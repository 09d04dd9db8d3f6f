package wasmgen

import (
	"github.com/Chic-lang/Chic-sub010/pkg/layout"
	"github.com/Chic-lang/Chic-sub010/pkg/mir"
	"github.com/Chic-lang/Chic-sub010/pkg/wasmcodec"
)

// LocalRepr is how one MIR local is represented in the emitted function.
type LocalRepr int

const (
	ReprScalar LocalRepr = iota
	ReprPointerParam
	ReprFrameAllocated
)

// LocalInfo is the per-local plan entry computed before a function body is
// emitted, per §4.2 "Local plan".
type LocalInfo struct {
	Decl       *mir.LocalDecl
	Repr       LocalRepr
	WasmLocal  int                // valid when Repr == ReprScalar or ReprPointerParam
	WasmType   wasmcodec.ValueType // valid when Repr == ReprScalar or ReprPointerParam
	FrameOffset int               // valid when Repr == ReprFrameAllocated
	ParamIndex int                // incoming wasm param slot for Arg locals, -1 otherwise
	Size       int
	Align      int
}

// ScratchLocals are the nine reserved scratch WASM locals every function
// allocates, per §4.2 step 4.
type ScratchLocals struct {
	BlockLabel  int // i32: selects which block to branch to
	TmpI32      int
	TmpI64      int
	TmpF32      int
	TmpF64      int
	TmpI128Lo   int
	TmpI128Hi   int
	StackTemp   int // i32: scratch pointer for ad-hoc stack blocks
	StackAdjust int // i32: running total subtracted by allocate_stack_block
}

// FunctionPlan is the complete result of local planning for one function.
type FunctionPlan struct {
	RequiresSret  bool
	WasmParamTypes []wasmcodec.ValueType
	WasmResultTypes []wasmcodec.ValueType
	ParamShift    int // 1 when RequiresSret, else 0
	Locals        []LocalInfo
	Scratch       ScratchLocals
	FrameSize     int
	NextWasmLocal int // params + scalar locals + scratch; also the frame pointer's index (for local decl section)
}

// planFunction implements §4.2's "Local plan" algorithm.
func planFunction(res *layout.Resolver, fn *mir.MirFunction, addressTaken map[int]bool) (*FunctionPlan, error) {
	plan := &FunctionPlan{}

	retRequiresMemory := fn.Sig.Ret != nil && !isUnit(fn.Sig.Ret) && res.LocalRequiresMemory(fn.Sig.Ret)
	plan.RequiresSret = retRequiresMemory
	if plan.RequiresSret {
		plan.ParamShift = 1
	}

	body := fn.Body
	plan.Locals = make([]LocalInfo, len(body.Locals))

	frameOffset := 0
	isAsync := body.Async != nil

	// Pass 1: pick a representation per local. Params must occupy the first
	// wasm local indices in ArgIndex order, so index assignment waits for
	// pass 2.
	for i, decl := range body.Locals {
		info := LocalInfo{Decl: decl, ParamIndex: -1}
		memReq := decl.Ty != nil && res.LocalRequiresMemory(decl.Ty)

		switch decl.Kind {
		case mir.LocalArg:
			switch {
			case decl.Mode != mir.ModeValue:
				info.Repr = ReprPointerParam
			case memReq:
				info.Repr = ReprPointerParam
			case isAsync || decl.AddressTaken || addressTaken[i]:
				info.Repr = ReprFrameAllocated
			default:
				info.Repr = ReprScalar
			}
			info.ParamIndex = plan.ParamShift + decl.ArgIndex
		case mir.LocalReturn:
			if isUnit(decl.Ty) {
				// no local at all; destination is void
				info.Repr = ReprScalar
			} else if memReq {
				info.Repr = ReprFrameAllocated
			} else {
				info.Repr = ReprScalar
			}
		default: // LocalLocal, LocalTemp
			if isAsync {
				info.Repr = ReprFrameAllocated
			} else if memReq || isArcOrRc(decl.Ty) || isAtomic(decl.Ty) ||
				decl.AddressTaken || addressTaken[i] {
				info.Repr = ReprFrameAllocated
			} else {
				info.Repr = ReprScalar
			}
		}

		if info.Repr == ReprFrameAllocated {
			alloc, err := res.ComputeAggregateAllocation(decl.Ty)
			if err != nil {
				// Scalars spilled to the frame (e.g. address-taken ints) still
				// need a size; fall back to the pointer-aware scalar size.
				size, align, serr := res.SizeAndAlignForTy(decl.Ty)
				if serr != nil {
					return nil, mir.NewCodegenError(fn.Name, "local %d: %v", i, err)
				}
				alloc.Size, alloc.Align = size, align
			}
			if alloc.Align == 0 {
				alloc.Align = 1
			}
			frameOffset = mir.AlignTo(frameOffset, alloc.Align)
			info.FrameOffset = frameOffset
			info.Size = alloc.Size
			info.Align = alloc.Align
			frameOffset += alloc.Size
		}
		plan.Locals[i] = info
	}

	// Pass 2: wasm local index assignment. Slots [0, ParamShift+argCount)
	// are the incoming params (sret pointer first); declared locals follow.
	paramTypes := make([]wasmcodec.ValueType, plan.ParamShift+body.ArgCount)
	if plan.RequiresSret {
		paramTypes[0] = wasmcodec.ValI32
	}
	for i := range plan.Locals {
		info := &plan.Locals[i]
		if info.Decl.Kind != mir.LocalArg {
			continue
		}
		wt := wasmTypeFor(info.Decl.Ty)
		if info.Repr == ReprPointerParam {
			wt = wasmcodec.ValI32
		}
		info.WasmType = wt
		paramTypes[info.ParamIndex] = wt
		if info.Repr != ReprFrameAllocated {
			info.WasmLocal = info.ParamIndex
		}
	}
	plan.WasmParamTypes = paramTypes

	nextWasmLocal := len(paramTypes)
	for i := range plan.Locals {
		info := &plan.Locals[i]
		if info.Decl.Kind == mir.LocalArg || info.Repr != ReprScalar {
			continue
		}
		info.WasmType = wasmTypeFor(info.Decl.Ty)
		info.WasmLocal = nextWasmLocal
		nextWasmLocal++
	}

	if plan.RequiresSret {
		plan.WasmResultTypes = nil
	} else if fn.Sig.Ret != nil && !isUnit(fn.Sig.Ret) {
		plan.WasmResultTypes = []wasmcodec.ValueType{wasmTypeFor(fn.Sig.Ret)}
	}

	plan.FrameSize = mir.AlignTo(frameOffset, 8)

	// Nine reserved scratch locals (§4.2 step 4).
	plan.Scratch.BlockLabel = nextWasmLocal
	nextWasmLocal++
	plan.Scratch.TmpI32 = nextWasmLocal
	nextWasmLocal++
	plan.Scratch.TmpI64 = nextWasmLocal
	nextWasmLocal++
	plan.Scratch.TmpF32 = nextWasmLocal
	nextWasmLocal++
	plan.Scratch.TmpF64 = nextWasmLocal
	nextWasmLocal++
	plan.Scratch.TmpI128Lo = nextWasmLocal
	nextWasmLocal++
	plan.Scratch.TmpI128Hi = nextWasmLocal
	nextWasmLocal++
	plan.Scratch.StackTemp = nextWasmLocal
	nextWasmLocal++
	plan.Scratch.StackAdjust = nextWasmLocal
	nextWasmLocal++

	plan.NextWasmLocal = nextWasmLocal
	return plan, nil
}

func isUnit(t mir.Ty) bool {
	_, ok := t.(mir.TyUnit)
	return ok
}

func isArcOrRc(t mir.Ty) bool {
	switch t.(type) {
	case mir.TyArc, mir.TyRc:
		return true
	default:
		return false
	}
}

func isAtomic(t mir.Ty) bool {
	// Atomic types are carried as a TyNamed tagged by convention
	// ("Atomic<T>" style callers); the MIR doesn't define a dedicated Ty
	// variant for them so this checks the generic-args convention.
	n, ok := t.(mir.TyNamed)
	return ok && n.Name == "Atomic"
}

// wasmTypeFor maps a scalar/pointer-sized MIR type to its WASM value type.
// Memory-requiring aggregates are never passed to this function directly;
// callers pass the pointer's own type instead.
func wasmTypeFor(t mir.Ty) wasmcodec.ValueType {
	switch ty := t.(type) {
	case mir.TyNamed:
		if prim, ok := mir.LookupPrimitive(ty.Name); ok {
			switch prim {
			case mir.PrimFloat:
				return wasmcodec.ValF32
			case mir.PrimDouble:
				return wasmcodec.ValF64
			case mir.PrimLong, mir.PrimULong, mir.PrimI128, mir.PrimU128:
				return wasmcodec.ValI64
			case mir.PrimNInt, mir.PrimNUInt:
				return wasmcodec.ValI32 // wasm32 target; nint/nuint are pointer-width
			default:
				return wasmcodec.ValI32
			}
		}
		return wasmcodec.ValI32
	case mir.TyPointer, mir.TyRef, mir.TyFn:
		return wasmcodec.ValI32
	case mir.TyString, mir.TyRc, mir.TyArc:
		return wasmcodec.ValI32
	case mir.TyStr:
		return wasmcodec.ValI64 // {offset:u32, length:u32} packed
	default:
		return wasmcodec.ValI32
	}
}
