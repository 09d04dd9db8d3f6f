package wasmvm

import (
	"encoding/binary"
	"math"

	"github.com/Chic-lang/Chic-sub010/pkg/wasmcodec"
)

// HostFunc implements one runtime import; args and results are raw 64-bit
// value slots (i32s zero-extended, floats as their bit patterns).
type HostFunc func(vm *VM, args []uint64) ([]uint64, error)

// Config tunes one VM instance, mirroring the teacher's mirvm.Config shape.
type Config struct {
	// MaxCallDepth bounds recursion before the VM traps instead of
	// exhausting the host stack.
	MaxCallDepth int

	// Hooks overrides or extends the default chic_rt host table, keyed
	// "module.name".
	Hooks map[string]HostFunc
}

// Statistics counts what a run touched, for test assertions and telemetry.
type Statistics struct {
	InstructionsExecuted uint64
	CallsExecuted        uint64
	HostCallsExecuted    uint64
	MaxStackDepth        int
}

// VM executes one parsed module: a straightforward stack machine over the
// decoded instruction stream (§4.7), with runtime imports dispatched
// through a fixed table keyed by module.name.
type VM struct {
	mod     *Module
	mem     []byte
	globals []uint64
	hooks   map[string]HostFunc
	cfg     Config
	depth   int

	Stats Statistics

	// pendingException carries the thrown (pointer, type id) pair between
	// chic_rt.throw and has/take_pending_exception.
	pendingException bool
	pendingValue     uint64
	pendingTypeID    uint64

	host *hostState
}

// NewVM instantiates memory, globals, and the host table for a parsed
// module.
func NewVM(mod *Module, cfg Config) (*VM, error) {
	if cfg.MaxCallDepth == 0 {
		cfg.MaxCallDepth = 512
	}
	pages := mod.MemPages
	if pages == 0 {
		pages = 1
	}
	vm := &VM{
		mod:     mod,
		mem:     make([]byte, pages*wasmcodec.WasmPageSize),
		globals: make([]uint64, len(mod.Globals)),
		cfg:     cfg,
	}
	for i, g := range mod.Globals {
		vm.globals[i] = uint64(uint32(g.Init))
	}
	for _, seg := range mod.Data {
		if int(seg.Offset)+len(seg.Bytes) > len(vm.mem) {
			return nil, execErr("data segment [%d, %d) exceeds memory", seg.Offset, int(seg.Offset)+len(seg.Bytes))
		}
		copy(vm.mem[seg.Offset:], seg.Bytes)
	}
	vm.host = newHostState(len(vm.mem))
	vm.hooks = defaultHooks()
	for k, f := range cfg.Hooks {
		vm.hooks[k] = f
	}
	return vm, nil
}

// Memory exposes the linear memory to host hooks.
func (vm *VM) Memory() []byte { return vm.mem }

// CallExport runs an exported function by name.
func (vm *VM) CallExport(name string, args ...uint64) ([]uint64, error) {
	exp, ok := vm.mod.Exports[name]
	if !ok {
		return nil, execErr("export %q not found", name)
	}
	return vm.call(exp.Index, args)
}

func (vm *VM) call(funcIndex int, args []uint64) ([]uint64, error) {
	vm.depth++
	defer func() { vm.depth-- }()
	if vm.depth > vm.cfg.MaxCallDepth {
		return nil, execErr("call depth exceeded")
	}
	if vm.depth > vm.Stats.MaxStackDepth {
		vm.Stats.MaxStackDepth = vm.depth
	}

	if funcIndex < len(vm.mod.Imports) {
		imp := vm.mod.Imports[funcIndex]
		key := imp.Module + "." + imp.Name
		hook, ok := vm.hooks[key]
		if !ok {
			return nil, execErr("hook not found: %s", key)
		}
		vm.Stats.HostCallsExecuted++
		return hook(vm, args)
	}

	defined := funcIndex - len(vm.mod.Imports)
	if defined >= len(vm.mod.Bodies) {
		return nil, execErr("function index %d out of range", funcIndex)
	}
	vm.Stats.CallsExecuted++
	ft := vm.mod.Types[vm.mod.Funcs[defined]]
	body := &vm.mod.Bodies[defined]

	locals := make([]uint64, len(ft.Params)+len(body.Locals))
	copy(locals, args)
	return vm.exec(body, ft, locals)
}

// label is one runtime control-stack entry.
type label struct {
	isLoop bool
	pc     int // instruction index of the block/loop/if itself
	endPC  int
	height int // value-stack height at entry
}

func (vm *VM) exec(body *FuncBody, ft wasmcodec.FuncType, locals []uint64) ([]uint64, error) {
	var stack []uint64
	var labels []label

	push := func(v uint64) { stack = append(stack, v) }
	pop := func() (uint64, error) {
		if len(stack) == 0 {
			return 0, execErr("stack underflow")
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v, nil
	}
	pop2 := func() (a, b uint64, err error) {
		b, err = pop()
		if err != nil {
			return
		}
		a, err = pop()
		return
	}

	branch := func(depth int) (int, error) {
		idx := len(labels) - 1 - depth
		if idx < 0 {
			return 0, execErr("branch depth %d out of range", depth)
		}
		l := labels[idx]
		stack = stack[:l.height]
		if l.isLoop {
			labels = labels[:idx+1]
			return l.pc + 1, nil
		}
		labels = labels[:idx]
		return l.endPC + 1, nil
	}

	pc := 0
	for pc < len(body.Instrs) {
		in := body.Instrs[pc]
		vm.Stats.InstructionsExecuted++
		next := pc + 1

		switch in.Op {
		case wasmcodec.OpUnreachable:
			return nil, execErr("unreachable executed")
		case wasmcodec.OpNop:
			// nothing

		case wasmcodec.OpBlock:
			labels = append(labels, label{pc: pc, endPC: in.EndPC, height: len(stack)})
		case wasmcodec.OpLoop:
			labels = append(labels, label{isLoop: true, pc: pc, endPC: in.EndPC, height: len(stack)})
		case wasmcodec.OpIf:
			c, err := pop()
			if err != nil {
				return nil, err
			}
			labels = append(labels, label{pc: pc, endPC: in.EndPC, height: len(stack)})
			if uint32(c) == 0 {
				if in.ElsePC >= 0 {
					next = in.ElsePC + 1
				} else {
					next = in.EndPC // the End pops the label
				}
			}
		case wasmcodec.OpElse:
			// True branch ran to the else marker: skip to the matching end.
			next = in.EndPC
		case wasmcodec.OpEnd:
			if len(labels) > 0 {
				labels = labels[:len(labels)-1]
			}

		case wasmcodec.OpBr:
			n, err := branch(in.A)
			if err != nil {
				return nil, err
			}
			next = n
		case wasmcodec.OpBrIf:
			c, err := pop()
			if err != nil {
				return nil, err
			}
			if uint32(c) != 0 {
				n, err := branch(in.A)
				if err != nil {
					return nil, err
				}
				next = n
			}

		case wasmcodec.OpReturn:
			return vm.results(ft, stack)

		case wasmcodec.OpCall:
			res, err := vm.callWithArgs(in.A, &stack)
			if err != nil {
				return nil, err
			}
			stack = append(stack, res...)

		case wasmcodec.OpCallIndirect:
			slotV, err := pop()
			if err != nil {
				return nil, err
			}
			slot := int(uint32(slotV))
			if slot >= len(vm.mod.Table) || vm.mod.Table[slot] < 0 {
				return nil, execErr("unresolved call_indirect to table slot %d", slot)
			}
			target := vm.mod.Table[slot]
			want := vm.mod.Types[in.A]
			got, ok := vm.mod.TypeOf(target)
			if !ok || !got.Equal(want) {
				return nil, execErr("call_indirect signature mismatch at table slot %d", slot)
			}
			res, err := vm.callWithArgs(target, &stack)
			if err != nil {
				return nil, err
			}
			stack = append(stack, res...)

		case wasmcodec.OpDrop:
			if _, err := pop(); err != nil {
				return nil, err
			}
		case wasmcodec.OpSelect:
			c, err := pop()
			if err != nil {
				return nil, err
			}
			a, b, err := pop2()
			if err != nil {
				return nil, err
			}
			if uint32(c) != 0 {
				push(a)
			} else {
				push(b)
			}

		case wasmcodec.OpLocalGet:
			if in.A >= len(locals) {
				return nil, execErr("local index %d out of range", in.A)
			}
			push(locals[in.A])
		case wasmcodec.OpLocalSet:
			v, err := pop()
			if err != nil {
				return nil, err
			}
			if in.A >= len(locals) {
				return nil, execErr("local index %d out of range", in.A)
			}
			locals[in.A] = v
		case wasmcodec.OpLocalTee:
			if len(stack) == 0 {
				return nil, execErr("stack underflow")
			}
			if in.A >= len(locals) {
				return nil, execErr("local index %d out of range", in.A)
			}
			locals[in.A] = stack[len(stack)-1]
		case wasmcodec.OpGlobalGet:
			if in.A >= len(vm.globals) {
				return nil, execErr("global index %d out of range", in.A)
			}
			push(vm.globals[in.A])
		case wasmcodec.OpGlobalSet:
			v, err := pop()
			if err != nil {
				return nil, err
			}
			if in.A >= len(vm.globals) {
				return nil, execErr("global index %d out of range", in.A)
			}
			vm.globals[in.A] = v

		case wasmcodec.OpI32Const:
			push(uint64(uint32(int32(in.I64))))
		case wasmcodec.OpI64Const:
			push(uint64(in.I64))
		case wasmcodec.OpF32Const:
			push(uint64(math.Float32bits(in.F32)))
		case wasmcodec.OpF64Const:
			push(math.Float64bits(in.F64))

		default:
			handled, err := vm.execLoadStore(in, &stack)
			if err != nil {
				return nil, err
			}
			if !handled {
				handled, err = vm.execNumeric(in, &stack)
				if err != nil {
					return nil, err
				}
			}
			if !handled {
				return nil, execErr("unsupported opcode 0x%02x at pc %d", byte(in.Op), pc)
			}
		}

		pc = next
	}
	return vm.results(ft, stack)
}

// callWithArgs pops the callee's arguments off the operand stack in the
// right order and invokes it.
func (vm *VM) callWithArgs(funcIndex int, stack *[]uint64) ([]uint64, error) {
	ft, ok := vm.mod.TypeOf(funcIndex)
	if !ok {
		return nil, execErr("function index %d out of range", funcIndex)
	}
	n := len(ft.Params)
	s := *stack
	if len(s) < n {
		return nil, execErr("stack underflow")
	}
	args := make([]uint64, n)
	copy(args, s[len(s)-n:])
	*stack = s[:len(s)-n]
	return vm.call(funcIndex, args)
}

// results truncates the final operand stack to the function's declared
// result arity.
func (vm *VM) results(ft wasmcodec.FuncType, stack []uint64) ([]uint64, error) {
	n := len(ft.Results)
	if n == 0 {
		return nil, nil
	}
	if len(stack) < n {
		return nil, execErr("stack underflow at function exit")
	}
	out := make([]uint64, n)
	copy(out, stack[len(stack)-n:])
	return out, nil
}

// memAddr bounds-checks an effective address for an n-byte access.
func (vm *VM) memAddr(base uint64, offset, n int) (int, error) {
	addr := int(uint32(base)) + offset
	if addr < 0 || addr+n > len(vm.mem) {
		return 0, execErr("memory access out of bounds at %d", addr)
	}
	return addr, nil
}

func (vm *VM) execLoadStore(in Instruction, stack *[]uint64) (bool, error) {
	pop := func() (uint64, error) {
		s := *stack
		if len(s) == 0 {
			return 0, execErr("stack underflow")
		}
		v := s[len(s)-1]
		*stack = s[:len(s)-1]
		return v, nil
	}
	push := func(v uint64) { *stack = append(*stack, v) }

	load := func(n int, conv func([]byte) uint64) error {
		base, err := pop()
		if err != nil {
			return err
		}
		addr, err := vm.memAddr(base, in.B, n)
		if err != nil {
			return err
		}
		push(conv(vm.mem[addr : addr+n]))
		return nil
	}
	store := func(n int, conv func([]byte, uint64)) error {
		v, err := pop()
		if err != nil {
			return err
		}
		base, err := pop()
		if err != nil {
			return err
		}
		addr, err := vm.memAddr(base, in.B, n)
		if err != nil {
			return err
		}
		conv(vm.mem[addr:addr+n], v)
		return nil
	}

	op := in.Op
	if op == wasmcodec.OpAtomicPrefix {
		switch in.Atomic {
		case wasmcodec.AtomicFence:
			return true, nil
		case wasmcodec.AtomicI32Load:
			return true, load(4, func(b []byte) uint64 { return uint64(binary.LittleEndian.Uint32(b)) })
		case wasmcodec.AtomicI64Load:
			return true, load(8, func(b []byte) uint64 { return binary.LittleEndian.Uint64(b) })
		case wasmcodec.AtomicI32Store:
			return true, store(4, func(b []byte, v uint64) { binary.LittleEndian.PutUint32(b, uint32(v)) })
		case wasmcodec.AtomicI64Store:
			return true, store(8, func(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) })
		}
		return false, nil
	}

	switch op {
	case wasmcodec.OpI32Load:
		return true, load(4, func(b []byte) uint64 { return uint64(binary.LittleEndian.Uint32(b)) })
	case wasmcodec.OpI64Load:
		return true, load(8, func(b []byte) uint64 { return binary.LittleEndian.Uint64(b) })
	case wasmcodec.OpF32Load:
		return true, load(4, func(b []byte) uint64 { return uint64(binary.LittleEndian.Uint32(b)) })
	case wasmcodec.OpF64Load:
		return true, load(8, func(b []byte) uint64 { return binary.LittleEndian.Uint64(b) })
	case wasmcodec.OpI32Load8S:
		return true, load(1, func(b []byte) uint64 { return uint64(uint32(int32(int8(b[0])))) })
	case wasmcodec.OpI32Load8U:
		return true, load(1, func(b []byte) uint64 { return uint64(b[0]) })
	case wasmcodec.OpI32Load16S:
		return true, load(2, func(b []byte) uint64 { return uint64(uint32(int32(int16(binary.LittleEndian.Uint16(b))))) })
	case wasmcodec.OpI32Load16U:
		return true, load(2, func(b []byte) uint64 { return uint64(binary.LittleEndian.Uint16(b)) })
	case wasmcodec.OpI64Load8S:
		return true, load(1, func(b []byte) uint64 { return uint64(int64(int8(b[0]))) })
	case wasmcodec.OpI64Load8U:
		return true, load(1, func(b []byte) uint64 { return uint64(b[0]) })
	case wasmcodec.OpI64Load16S:
		return true, load(2, func(b []byte) uint64 { return uint64(int64(int16(binary.LittleEndian.Uint16(b)))) })
	case wasmcodec.OpI64Load16U:
		return true, load(2, func(b []byte) uint64 { return uint64(binary.LittleEndian.Uint16(b)) })
	case wasmcodec.OpI64Load32S:
		return true, load(4, func(b []byte) uint64 { return uint64(int64(int32(binary.LittleEndian.Uint32(b)))) })
	case wasmcodec.OpI64Load32U:
		return true, load(4, func(b []byte) uint64 { return uint64(binary.LittleEndian.Uint32(b)) })
	case wasmcodec.OpI32Store, wasmcodec.OpF32Store:
		return true, store(4, func(b []byte, v uint64) { binary.LittleEndian.PutUint32(b, uint32(v)) })
	case wasmcodec.OpI64Store, wasmcodec.OpF64Store:
		return true, store(8, func(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) })
	case wasmcodec.OpI32Store8, wasmcodec.OpI64Store8:
		return true, store(1, func(b []byte, v uint64) { b[0] = byte(v) })
	case wasmcodec.OpI32Store16, wasmcodec.OpI64Store16:
		return true, store(2, func(b []byte, v uint64) { binary.LittleEndian.PutUint16(b, uint16(v)) })
	case wasmcodec.OpI64Store32:
		return true, store(4, func(b []byte, v uint64) { binary.LittleEndian.PutUint32(b, uint32(v)) })
	case wasmcodec.OpMemorySize:
		push(uint64(len(vm.mem) / wasmcodec.WasmPageSize))
		return true, nil
	case wasmcodec.OpMemoryGrow:
		// The stdlib bump allocator never grows memory (§4.3); report
		// failure the way a fixed-size memory does.
		if _, err := pop(); err != nil {
			return true, err
		}
		push(uint64(uint32(0xffffffff)))
		return true, nil
	}
	return false, nil
}
