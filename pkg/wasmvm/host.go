package wasmvm

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Chic-lang/Chic-sub010/pkg/runtimehooks"
)

func float64FromBits(v uint64) float64 { return math.Float64frombits(v) }

// hostState backs the default chic_rt hook implementations: a heap bump
// allocator carved from the top of linear memory, host-side string-builder
// storage, refcount cells, and coverage/borrow counters test assertions can
// read.
type hostState struct {
	heapTop  int // grows downward from the end of linear memory
	strings  map[uint32][]byte
	nextStr  uint32
	refs     map[uint32]int
	nextRef  uint32
	borrows  map[uint32]int
	Coverage []uint64
	PanicCode *int32
}

func newHostState(memSize int) *hostState {
	return &hostState{
		heapTop: memSize,
		strings: make(map[uint32][]byte),
		nextStr: 1,
		refs:    make(map[uint32]int),
		nextRef: 1,
		borrows: make(map[uint32]int),
	}
}

// HostCoverage exposes the coverage_hit ids a run recorded.
func (vm *VM) HostCoverage() []uint64 { return vm.host.Coverage }

// HostPanicCode reports the code of the first chic_rt.panic call, or nil.
func (vm *VM) HostPanicCode() *int32 { return vm.host.PanicCode }

// HostBorrowBalance reports a borrow id's outstanding acquire/release
// delta; zero means every registration was released.
func (vm *VM) HostBorrowBalance(id uint32) int { return vm.host.borrows[id] }

// hostAlloc carves size bytes with the given alignment from the top of
// memory, growing the bump region downward; the emitted stack grows from
// STACK_BASE down, so the two regions never meet in test-sized modules.
func (vm *VM) hostAlloc(size, align int) uint32 {
	if align <= 0 {
		align = 8
	}
	top := vm.host.heapTop - size
	top &^= align - 1
	if top < 0 {
		return 0
	}
	vm.host.heapTop = top
	return uint32(top)
}

func hook(name string, f HostFunc) (string, HostFunc) {
	return runtimehooks.Module + "." + name, f
}

// defaultHooks is the fixed dispatch table §4.7 names: every hook the
// emitter's dedicated lowering paths reference has an implementation here
// except vec_clone; calls to vec_clone or any other catalog hook fail with
// hook-not-found at call time.
func defaultHooks() map[string]HostFunc {
	m := make(map[string]HostFunc)
	add := func(name string, f HostFunc) {
		k, v := hook(name, f)
		m[k] = v
	}

	add("panic", func(vm *VM, args []uint64) ([]uint64, error) {
		code := int32(uint32(args[0]))
		if vm.host.PanicCode == nil {
			vm.host.PanicCode = &code
		}
		return nil, execErr("panic(0x%x)", uint32(args[0]))
	})
	add("abort", func(vm *VM, args []uint64) ([]uint64, error) {
		return nil, execErr("abort(%d)", int32(uint32(args[0])))
	})
	add("throw", func(vm *VM, args []uint64) ([]uint64, error) {
		vm.pendingException = true
		vm.pendingValue = args[0]
		vm.pendingTypeID = args[1]
		return nil, nil
	})
	add("has_pending_exception", func(vm *VM, args []uint64) ([]uint64, error) {
		if vm.pendingException {
			return []uint64{1}, nil
		}
		return []uint64{0}, nil
	})
	add("take_pending_exception", func(vm *VM, args []uint64) ([]uint64, error) {
		if !vm.pendingException {
			return []uint64{0}, nil
		}
		vm.pendingException = false
		return []uint64{uint64(uint32(vm.pendingValue))}, nil
	})
	add("await", func(vm *VM, args []uint64) ([]uint64, error) {
		return []uint64{1}, nil // AWAIT_READY: the test VM never suspends
	})
	add("yield", func(vm *VM, args []uint64) ([]uint64, error) {
		return []uint64{0}, nil
	})

	add("borrow_shared", func(vm *VM, args []uint64) ([]uint64, error) {
		vm.host.borrows[uint32(args[0])]++
		return nil, nil
	})
	add("borrow_unique", func(vm *VM, args []uint64) ([]uint64, error) {
		vm.host.borrows[uint32(args[0])]++
		return nil, nil
	})
	add("borrow_release", func(vm *VM, args []uint64) ([]uint64, error) {
		vm.host.borrows[uint32(args[0])]--
		return nil, nil
	})
	add("drop_missing", func(vm *VM, args []uint64) ([]uint64, error) {
		return nil, nil
	})
	add("drop_invoke", func(vm *VM, args []uint64) ([]uint64, error) {
		return nil, nil
	})
	add("coverage_hit", func(vm *VM, args []uint64) ([]uint64, error) {
		vm.host.Coverage = append(vm.host.Coverage, args[0])
		return nil, nil
	})
	add("trace_enter", func(vm *VM, args []uint64) ([]uint64, error) { return nil, nil })
	add("trace_exit", func(vm *VM, args []uint64) ([]uint64, error) { return nil, nil })
	add("trace_flush", func(vm *VM, args []uint64) ([]uint64, error) { return []uint64{0}, nil })

	add("alloc", func(vm *VM, args []uint64) ([]uint64, error) {
		p := vm.hostAlloc(int(uint32(args[0])), int(uint32(args[1])))
		if p == 0 {
			return nil, execErr("out of memory: alloc(%d)", uint32(args[0]))
		}
		return []uint64{uint64(p)}, nil
	})
	add("alloc_zeroed", func(vm *VM, args []uint64) ([]uint64, error) {
		size := int(uint32(args[0]))
		p := vm.hostAlloc(size, int(uint32(args[1])))
		if p == 0 {
			return nil, execErr("out of memory: alloc_zeroed(%d)", size)
		}
		for i := 0; i < size; i++ {
			vm.mem[int(p)+i] = 0
		}
		return []uint64{uint64(p)}, nil
	})
	add("realloc", func(vm *VM, args []uint64) ([]uint64, error) {
		old := int(uint32(args[0]))
		oldSize := int(uint32(args[1]))
		newSize := int(uint32(args[3]))
		p := vm.hostAlloc(newSize, int(uint32(args[2])))
		if p == 0 {
			return nil, execErr("out of memory: realloc(%d)", newSize)
		}
		n := oldSize
		if newSize < n {
			n = newSize
		}
		copy(vm.mem[p:int(p)+n], vm.mem[old:old+n])
		return []uint64{uint64(p)}, nil
	})
	add("free", func(vm *VM, args []uint64) ([]uint64, error) { return nil, nil })

	add("memcpy", memMove)
	add("memmove", memMove)
	add("memset", func(vm *VM, args []uint64) ([]uint64, error) {
		dst := int(uint32(args[0]))
		val := byte(args[1])
		n := int(uint32(args[2]))
		if dst < 0 || dst+n > len(vm.mem) {
			return nil, execErr("memset out of bounds at %d", dst)
		}
		for i := 0; i < n; i++ {
			vm.mem[dst+i] = val
		}
		return nil, nil
	})

	addStringHooks(add)
	addContainerHooks(add)
	return m
}

func memMove(vm *VM, args []uint64) ([]uint64, error) {
	dst := int(uint32(args[0]))
	src := int(uint32(args[1]))
	n := int(uint32(args[2]))
	if dst < 0 || src < 0 || dst+n > len(vm.mem) || src+n > len(vm.mem) {
		return nil, execErr("memcpy out of bounds (dst=%d src=%d len=%d)", dst, src, n)
	}
	copy(vm.mem[dst:dst+n], vm.mem[src:src+n])
	return nil, nil
}

func (vm *VM) newString(b []byte) uint32 {
	h := vm.host.nextStr
	vm.host.nextStr++
	vm.host.strings[h] = b
	return h
}

// HostString reads back a host-side string handle's current contents.
func (vm *VM) HostString(handle uint32) (string, bool) {
	b, ok := vm.host.strings[handle]
	return string(b), ok
}

func addStringHooks(add func(string, HostFunc)) {
	add("string_from_slice", func(vm *VM, args []uint64) ([]uint64, error) {
		ptr := int(uint32(args[0]))
		n := int(uint32(args[1]))
		if n > 0 && (ptr < 0 || ptr+n > len(vm.mem)) {
			return nil, execErr("string_from_slice out of bounds at %d", ptr)
		}
		buf := make([]byte, n)
		if n > 0 {
			copy(buf, vm.mem[ptr:ptr+n])
		}
		return []uint64{uint64(vm.newString(buf))}, nil
	})
	add("string_clone", func(vm *VM, args []uint64) ([]uint64, error) {
		src, ok := vm.host.strings[uint32(args[1])]
		if !ok {
			return nil, execErr("string_clone of unknown handle %d", uint32(args[1]))
		}
		return []uint64{uint64(vm.newString(append([]byte(nil), src...)))}, nil
	})
	add("string_drop", func(vm *VM, args []uint64) ([]uint64, error) {
		delete(vm.host.strings, uint32(args[0]))
		return nil, nil
	})
	add("string_as_slice", func(vm *VM, args []uint64) ([]uint64, error) {
		src, ok := vm.host.strings[uint32(args[0])]
		if !ok {
			return nil, execErr("string_as_slice of unknown handle %d", uint32(args[0]))
		}
		ptr := vm.hostAlloc(len(src), 1)
		copy(vm.mem[ptr:int(ptr)+len(src)], src)
		return []uint64{uint64(ptr), uint64(uint32(len(src)))}, nil
	})
	add("string_append_slice", func(vm *VM, args []uint64) ([]uint64, error) {
		dst := uint32(args[0])
		ptr := int(uint32(args[1]))
		n := int(uint32(args[2]))
		if n > 0 && (ptr < 0 || ptr+n > len(vm.mem)) {
			return nil, execErr("string_append_slice out of bounds at %d", ptr)
		}
		vm.host.strings[dst] = append(vm.host.strings[dst], vm.mem[ptr:ptr+n]...)
		return []uint64{uint64(dst)}, nil
	})
	add("string_append_bool", func(vm *VM, args []uint64) ([]uint64, error) {
		dst := uint32(args[0])
		text := "false"
		if uint32(args[1]) != 0 {
			text = "true"
		}
		vm.host.strings[dst] = append(vm.host.strings[dst], text...)
		return []uint64{uint64(dst)}, nil
	})
	add("string_append_char", func(vm *VM, args []uint64) ([]uint64, error) {
		dst := uint32(args[0])
		vm.host.strings[dst] = append(vm.host.strings[dst], string(rune(uint32(args[1])))...)
		return []uint64{uint64(dst)}, nil
	})
	add("string_append_signed", func(vm *VM, args []uint64) ([]uint64, error) {
		dst := uint32(args[0])
		vm.host.strings[dst] = append(vm.host.strings[dst],
			strconv.FormatInt(int64(args[1]), 10)...)
		return []uint64{uint64(dst)}, nil
	})
	add("string_append_unsigned", func(vm *VM, args []uint64) ([]uint64, error) {
		dst := uint32(args[0])
		vm.host.strings[dst] = append(vm.host.strings[dst],
			strconv.FormatUint(args[1], 10)...)
		return []uint64{uint64(dst)}, nil
	})
	add("string_append_f32", func(vm *VM, args []uint64) ([]uint64, error) {
		dst := uint32(args[0])
		vm.host.strings[dst] = append(vm.host.strings[dst],
			fmt.Sprintf("%g", math.Float32frombits(uint32(args[1])))...)
		return []uint64{uint64(dst)}, nil
	})
	add("string_append_f64", func(vm *VM, args []uint64) ([]uint64, error) {
		dst := uint32(args[0])
		vm.host.strings[dst] = append(vm.host.strings[dst],
			fmt.Sprintf("%g", float64FromBits(args[1]))...)
		return []uint64{uint64(dst)}, nil
	})
}

func addContainerHooks(add func(string, HostFunc)) {
	add("vec_drop", func(vm *VM, args []uint64) ([]uint64, error) { return nil, nil })
	add("rc_clone", func(vm *VM, args []uint64) ([]uint64, error) {
		vm.host.refs[uint32(args[1])]++
		return []uint64{args[1]}, nil
	})
	add("rc_drop", func(vm *VM, args []uint64) ([]uint64, error) {
		vm.host.refs[uint32(args[0])]--
		return nil, nil
	})
	add("arc_new", func(vm *VM, args []uint64) ([]uint64, error) {
		h := vm.host.nextRef
		vm.host.nextRef++
		vm.host.refs[h] = 1
		return []uint64{uint64(h)}, nil
	})
	add("arc_clone", func(vm *VM, args []uint64) ([]uint64, error) {
		vm.host.refs[uint32(args[1])]++
		return []uint64{args[1]}, nil
	})
	add("arc_drop", func(vm *VM, args []uint64) ([]uint64, error) {
		vm.host.refs[uint32(args[0])]--
		return nil, nil
	})
}
