package wasmgen

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Chic-lang/Chic-sub010/pkg/mir"
	"github.com/Chic-lang/Chic-sub010/pkg/runtimehooks"
	"github.com/Chic-lang/Chic-sub010/pkg/wasmcodec"
)

// functionEmitter lowers one MirFunction's body into a WASM code-section
// entry, per §4.2. Control flow is block-structured using a reserved
// "block label" scratch local plus a dispatch loop: every MIR basic block
// becomes a wasm block that ends by writing the next block's index into
// BlockLabel and branching to the loop continuation, so arbitrary MIR CFGs
// (including irreducible ones) lower without relying on WASM's structured
// br/br_if covering every shape directly.
type functionEmitter struct {
	b          *ModuleBuilder
	fn         *mir.MirFunction
	plan       *FunctionPlan
	used       map[runtimehooks.HookID]bool
	funcIndex  int
	stmtCursor int

	// labelDepth is the dispatch loop's current branch depth: the number
	// of labels (cascade wrappers plus any statement-level if/else) open
	// between the emission point and the outer loop. branchTo emits
	// `br labelDepth`; emitters that open an if around a branch bump it.
	labelDepth int

	buf bytes.Buffer
}

func emitFunction(b *ModuleBuilder, fn *mir.MirFunction, plan *FunctionPlan, used map[runtimehooks.HookID]bool, funcIndex int) ([]byte, error) {
	fe := &functionEmitter{b: b, fn: fn, plan: plan, used: used, funcIndex: funcIndex}
	return fe.run()
}

func (fe *functionEmitter) run() ([]byte, error) {
	fe.emitLocalDecls()
	if err := fe.emitPrologue(); err != nil {
		return nil, err
	}

	nb := len(fe.fn.Body.Blocks)
	if nb == 0 {
		fe.buf.WriteByte(byte(wasmcodec.OpEnd))
		return fe.buf.Bytes(), nil
	}

	// outer loop, dispatching on BlockLabel via a cascade of nested blocks
	// (standard "relooper"-style lowering used when a direct structured
	// translation of the MIR CFG isn't attempted).
	fe.buf.WriteByte(byte(wasmcodec.OpLoop))
	fe.buf.WriteByte(wasmcodec.BlockTypeEmpty)

	if err := fe.emitBlockCascade(0, nb); err != nil {
		return nil, err
	}

	fe.buf.WriteByte(byte(wasmcodec.OpEnd)) // end loop
	fe.buf.WriteByte(byte(wasmcodec.OpEnd)) // end function
	return fe.buf.Bytes(), nil
}

// emitBlockCascade wraps each remaining block in its own wasm `block`,
// innermost-last, so that branching to block index i from deeper nesting
// exits exactly i levels before falling through to that block's code, then
// loops back around via `br` to the enclosing `loop`.
func (fe *functionEmitter) emitBlockCascade(from, nb int) error {
	for i := from; i < nb; i++ {
		fe.buf.WriteByte(byte(wasmcodec.OpBlock))
		fe.buf.WriteByte(wasmcodec.BlockTypeEmpty)
	}
	// Dispatch: branch out to the wrapper whose end precedes block i's
	// code. Ends close innermost-first, so block i sits after the i'th
	// end and is reached by `br i`.
	for i := from; i < nb; i++ {
		fe.emitLocalGet(fe.plan.Scratch.BlockLabel)
		fe.emitI32Const(int32(i))
		fe.buf.WriteByte(byte(wasmcodec.OpI32Eq))
		fe.buf.WriteByte(byte(wasmcodec.OpBrIf))
		wasmcodec.PutUvarint(&fe.buf, uint64(i))
	}
	fe.buf.WriteByte(byte(wasmcodec.OpUnreachable))

	for i := from; i < nb; i++ {
		fe.buf.WriteByte(byte(wasmcodec.OpEnd)) // close block i's wrapper
		fe.labelDepth = nb - i - 1
		block := fe.fn.Body.Blocks[i]
		for _, stmt := range block.Statements {
			// Statement ids start at 1; id 0 is the function-entry hit the
			// prologue reports.
			fe.stmtCursor++
			if fe.b.opt.Coverage && block.SpanLabel != "" {
				if err := fe.emitCoverageHit(); err != nil {
					return err
				}
			}
			if err := fe.emitStatement(stmt); err != nil {
				return err
			}
		}
		if err := fe.emitTerminator(block.Terminator); err != nil {
			return err
		}
	}
	return nil
}

// emitCoverageHit emits exactly one coverage_hit(id) call per statement
// when coverage is enabled and the statement's block carries span
// information, per §8 property 5: id = (function_index << 32) |
// statement_index.
func (fe *functionEmitter) emitCoverageHit() error {
	id := (int64(fe.funcIndex) << 32) | int64(fe.stmtCursor)
	fe.emitI64Const(id)
	return fe.callHook(runtimehooks.HookCoverageHit)
}

func (fe *functionEmitter) emitLocalDecls() {
	// Group consecutive identically-typed locals per WASM's local-decl
	// compression, per §4.2 ("grouped local declarations").
	type group struct {
		count int
		typ   wasmcodec.ValueType
	}
	var groups []group
	push := func(t wasmcodec.ValueType) {
		if len(groups) > 0 && groups[len(groups)-1].typ == t {
			groups[len(groups)-1].count++
			return
		}
		groups = append(groups, group{1, t})
	}

	for _, l := range fe.plan.Locals {
		switch l.Repr {
		case ReprScalar:
			if l.Decl.Kind != mir.LocalArg {
				push(l.WasmType)
			}
		case ReprFrameAllocated:
			// Frame-allocated locals live at frame-pointer offsets; no
			// declared local is needed beyond the shared frame pointer.
		}
	}
	// The nine reserved scratch locals, in their plan order, then the frame
	// pointer: declaration order must match the indices planFunction handed
	// out (scratch block first, frame pointer at NextWasmLocal).
	for _, s := range []wasmcodec.ValueType{
		wasmcodec.ValI32, wasmcodec.ValI32, wasmcodec.ValI64, wasmcodec.ValF32, wasmcodec.ValF64,
		wasmcodec.ValI64, wasmcodec.ValI64, wasmcodec.ValI32, wasmcodec.ValI32,
	} {
		push(s)
	}
	push(wasmcodec.ValI32) // frame pointer

	wasmcodec.PutUvarint(&fe.buf, uint64(len(groups)))
	for _, g := range groups {
		wasmcodec.PutUvarint(&fe.buf, uint64(g.count))
		fe.buf.WriteByte(byte(g.typ))
	}
}

func (fe *functionEmitter) framePointerLocal() int {
	return fe.plan.NextWasmLocal
}

// emitPrologue allocates the function's frame from the stack-pointer
// global, copies frame-allocated value-mode args from their incoming
// scalar params into the frame, and zero-fills any frame-allocated local
// not covered by an incoming arg.
func (fe *functionEmitter) emitPrologue() error {
	if fe.plan.FrameSize > 0 {
		fe.emitGlobalGet(wasmcodec.StackPointerGlobalIndex)
		fe.emitI32Const(int32(fe.plan.FrameSize))
		fe.buf.WriteByte(byte(wasmcodec.OpI32Sub))
		fe.buf.WriteByte(byte(wasmcodec.OpLocalTee))
		wasmcodec.PutUvarint(&fe.buf, uint64(fe.framePointerLocal()))
		fe.emitGlobalSet(wasmcodec.StackPointerGlobalIndex)
		// Zero-fill the frame so DefaultInit-free locals read as zero.
		fe.emitLocalGet(fe.framePointerLocal())
		fe.emitI32Const(0)
		fe.emitI32Const(int32(fe.plan.FrameSize))
		if err := fe.callHook(runtimehooks.HookMemset); err != nil {
			return err
		}
	}

	if fe.b.opt.Coverage {
		fe.emitI64Const(int64(fe.funcIndex) << 32)
		if err := fe.callHook(runtimehooks.HookCoverageHit); err != nil {
			return err
		}
	}

	// Spill frame-allocated Value-mode args: the scalar still arrives as a
	// wasm param; copy it into the arg's frame slot so its address is
	// stable for the rest of the body. Pointer-mode args keep their param
	// as the address and need no copy.
	for _, l := range fe.plan.Locals {
		if l.Decl.Kind != mir.LocalArg || l.Repr != ReprFrameAllocated {
			continue
		}
		fe.localAddress(l)
		fe.emitLocalGet(l.ParamIndex)
		fe.emitStoreOp(wasmTypeFor(l.Decl.Ty))
	}
	return nil
}

func (fe *functionEmitter) localAddress(info LocalInfo) {
	fe.emitLocalGet(fe.framePointerLocal())
	if info.FrameOffset != 0 {
		fe.emitI32Const(int32(info.FrameOffset))
		fe.buf.WriteByte(byte(wasmcodec.OpI32Add))
	}
}

func (fe *functionEmitter) emitLocalGet(idx int) {
	fe.buf.WriteByte(byte(wasmcodec.OpLocalGet))
	wasmcodec.PutUvarint(&fe.buf, uint64(idx))
}

func (fe *functionEmitter) emitLocalSet(idx int) {
	fe.buf.WriteByte(byte(wasmcodec.OpLocalSet))
	wasmcodec.PutUvarint(&fe.buf, uint64(idx))
}

func (fe *functionEmitter) emitGlobalGet(idx int) {
	fe.buf.WriteByte(byte(wasmcodec.OpGlobalGet))
	wasmcodec.PutUvarint(&fe.buf, uint64(idx))
}

func (fe *functionEmitter) emitGlobalSet(idx int) {
	fe.buf.WriteByte(byte(wasmcodec.OpGlobalSet))
	wasmcodec.PutUvarint(&fe.buf, uint64(idx))
}

func (fe *functionEmitter) emitI32Const(v int32) {
	fe.buf.WriteByte(byte(wasmcodec.OpI32Const))
	wasmcodec.PutVarint(&fe.buf, int64(v))
}

func (fe *functionEmitter) emitI64Const(v int64) {
	fe.buf.WriteByte(byte(wasmcodec.OpI64Const))
	wasmcodec.PutVarint(&fe.buf, v)
}

func (fe *functionEmitter) callHook(id runtimehooks.HookID) error {
	if _, ok := runtimehooks.ByID(id); !ok {
		return fmt.Errorf("wasmgen: unknown runtime hook id %d", id)
	}
	fe.used[id] = true
	idx := hookImportIndex(id)
	if idx < 0 {
		return fmt.Errorf("wasmgen: hook id %d not in catalog", id)
	}
	fe.buf.WriteByte(byte(wasmcodec.OpCall))
	wasmcodec.PutUvarint(&fe.buf, uint64(idx))
	return nil
}

func (fe *functionEmitter) localInfo(l int) LocalInfo {
	return fe.plan.Locals[l]
}

func (fe *functionEmitter) emitPlaceAddress(p mir.Place) error {
	info := fe.localInfo(p.Local)
	switch info.Repr {
	case ReprFrameAllocated, ReprPointerParam:
		if info.Repr == ReprPointerParam {
			fe.emitLocalGet(info.WasmLocal)
		} else {
			fe.localAddress(info)
		}
	default:
		return mir.NewCodegenError(fe.fn.Name, "cannot take address of scalar local %q", info.Decl.Name)
	}
	for _, proj := range p.Projections {
		switch proj.Kind {
		case mir.ProjField:
			if proj.FieldIndex != 0 {
				fe.emitI32Const(int32(proj.FieldIndex))
				fe.buf.WriteByte(byte(wasmcodec.OpI32Add))
			}
		case mir.ProjIndex:
			if err := fe.emitOperand(proj.IndexOperand); err != nil {
				return err
			}
			fe.buf.WriteByte(byte(wasmcodec.OpI32Add))
		case mir.ProjDeref:
			fe.buf.WriteByte(byte(wasmcodec.OpI32Load))
			fe.buf.WriteByte(2) // align 4
			fe.buf.WriteByte(0)
		case mir.ProjDowncast, mir.ProjFieldNamed, mir.ProjUnionField:
			// Payload/named-field offsets are resolved by the caller into a
			// plain ProjField(FieldIndex) before reaching the emitter; these
			// kinds fall through without an address adjustment here.
		}
	}
	return nil
}

func (fe *functionEmitter) emitOperand(op mir.Operand) error {
	switch o := op.(type) {
	case mir.OperandConst:
		return fe.emitConst(o.Value)
	case mir.OperandCopy, mir.OperandMove:
		var p mir.Place
		if c, ok := o.(mir.OperandCopy); ok {
			p = c.Place
		} else {
			p = o.(mir.OperandMove).Place
		}
		info := fe.localInfo(p.Local)
		if len(p.Projections) == 0 {
			switch info.Repr {
			case ReprScalar, ReprPointerParam:
				fe.emitLocalGet(info.WasmLocal)
				return nil
			case ReprFrameAllocated:
				fe.localAddress(info)
				if info.Decl.Ty != nil && !fe.b.res.LocalRequiresMemory(info.Decl.Ty) {
					// Scalar spilled to the frame (address-taken or async):
					// reads yield the value, not the slot address.
					fe.emitLoadOp(wasmTypeFor(info.Decl.Ty))
				}
				return nil
			}
		}
		return fe.emitPlaceAddress(p)
	default:
		return fmt.Errorf("wasmgen: unhandled operand %T", op)
	}
}

func (fe *functionEmitter) emitConst(c mir.ConstValue) error {
	switch v := c.(type) {
	case mir.ConstUnit:
		return nil
	case mir.ConstBool:
		if v.V {
			fe.emitI32Const(1)
		} else {
			fe.emitI32Const(0)
		}
	case mir.ConstInt:
		if v.Bits > 32 {
			fe.emitI64Const(v.V)
		} else {
			fe.emitI32Const(int32(v.V))
		}
	case mir.ConstUInt:
		if v.Bits > 32 {
			fe.emitI64Const(int64(v.V))
		} else {
			fe.emitI32Const(int32(v.V))
		}
	case mir.ConstFloat:
		if v.Bits == 32 {
			fe.buf.WriteByte(byte(wasmcodec.OpF32Const))
			var bits [4]byte
			putFloat32(bits[:], float32(v.V))
			fe.buf.Write(bits[:])
		} else {
			fe.buf.WriteByte(byte(wasmcodec.OpF64Const))
			var bits [8]byte
			putFloat64(bits[:], v.V)
			fe.buf.Write(bits[:])
		}
	case mir.ConstChar:
		fe.emitI32Const(int32(v.V))
	case mir.ConstStr:
		// Resolved to its data-segment offset by the module builder during
		// string interning, which runs before function emission.
		off, ok := fe.b.stringOffset[v.Id]
		if !ok {
			return fmt.Errorf("wasmgen: string %d not interned", v.Id)
		}
		fe.emitI32Const(off)
	default:
		return fmt.Errorf("wasmgen: unhandled const %T", c)
	}
	return nil
}

func putFloat32(dst []byte, f float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(f))
}

func putFloat64(dst []byte, f float64) {
	binary.LittleEndian.PutUint64(dst, math.Float64bits(f))
}
