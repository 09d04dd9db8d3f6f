package wasmvm

import (
	"math"

	"github.com/Chic-lang/Chic-sub010/pkg/wasmcodec"
)

// execNumeric covers the comparison/arithmetic/conversion opcodes. Integer
// division traps on zero divisors and on signed overflow (MinInt / -1),
// per §4.7's trap list.
func (vm *VM) execNumeric(in Instruction, stack *[]uint64) (bool, error) {
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

	un32 := func(f func(uint32) uint64) error {
		a, err := pop()
		if err != nil {
			return err
		}
		push(f(uint32(a)))
		return nil
	}
	un64 := func(f func(uint64) uint64) error {
		a, err := pop()
		if err != nil {
			return err
		}
		push(f(a))
		return nil
	}
	bin32 := func(f func(a, b uint32) (uint64, error)) error {
		b, err := pop()
		if err != nil {
			return err
		}
		a, err := pop()
		if err != nil {
			return err
		}
		r, err := f(uint32(a), uint32(b))
		if err != nil {
			return err
		}
		push(r)
		return nil
	}
	bin64 := func(f func(a, b uint64) (uint64, error)) error {
		b, err := pop()
		if err != nil {
			return err
		}
		a, err := pop()
		if err != nil {
			return err
		}
		r, err := f(a, b)
		if err != nil {
			return err
		}
		push(r)
		return nil
	}
	binF32 := func(f func(a, b float32) float32) error {
		return bin32(func(a, b uint32) (uint64, error) {
			r := f(math.Float32frombits(a), math.Float32frombits(b))
			return uint64(math.Float32bits(r)), nil
		})
	}
	binF64 := func(f func(a, b float64) float64) error {
		return bin64(func(a, b uint64) (uint64, error) {
			r := f(math.Float64frombits(a), math.Float64frombits(b))
			return math.Float64bits(r), nil
		})
	}
	b32 := func(c bool) uint64 {
		if c {
			return 1
		}
		return 0
	}

	switch in.Op {
	case wasmcodec.OpI32Eqz:
		return true, un32(func(a uint32) uint64 { return b32(a == 0) })
	case wasmcodec.OpI64Eqz:
		return true, un64(func(a uint64) uint64 { return b32(a == 0) })

	case wasmcodec.OpI32Eq:
		return true, bin32(func(a, b uint32) (uint64, error) { return b32(a == b), nil })
	case wasmcodec.OpI32Ne:
		return true, bin32(func(a, b uint32) (uint64, error) { return b32(a != b), nil })
	case wasmcodec.OpI32LtS:
		return true, bin32(func(a, b uint32) (uint64, error) { return b32(int32(a) < int32(b)), nil })
	case wasmcodec.OpI32LtU:
		return true, bin32(func(a, b uint32) (uint64, error) { return b32(a < b), nil })
	case wasmcodec.OpI32GtS:
		return true, bin32(func(a, b uint32) (uint64, error) { return b32(int32(a) > int32(b)), nil })
	case wasmcodec.OpI32GtU:
		return true, bin32(func(a, b uint32) (uint64, error) { return b32(a > b), nil })
	case wasmcodec.OpI32LeS:
		return true, bin32(func(a, b uint32) (uint64, error) { return b32(int32(a) <= int32(b)), nil })
	case wasmcodec.OpI32LeU:
		return true, bin32(func(a, b uint32) (uint64, error) { return b32(a <= b), nil })
	case wasmcodec.OpI32GeS:
		return true, bin32(func(a, b uint32) (uint64, error) { return b32(int32(a) >= int32(b)), nil })
	case wasmcodec.OpI32GeU:
		return true, bin32(func(a, b uint32) (uint64, error) { return b32(a >= b), nil })

	case wasmcodec.OpI64Eq:
		return true, bin64(func(a, b uint64) (uint64, error) { return b32(a == b), nil })
	case wasmcodec.OpI64Ne:
		return true, bin64(func(a, b uint64) (uint64, error) { return b32(a != b), nil })
	case wasmcodec.OpI64LtS:
		return true, bin64(func(a, b uint64) (uint64, error) { return b32(int64(a) < int64(b)), nil })
	case wasmcodec.OpI64LtU:
		return true, bin64(func(a, b uint64) (uint64, error) { return b32(a < b), nil })
	case wasmcodec.OpI64GtS:
		return true, bin64(func(a, b uint64) (uint64, error) { return b32(int64(a) > int64(b)), nil })
	case wasmcodec.OpI64GtU:
		return true, bin64(func(a, b uint64) (uint64, error) { return b32(a > b), nil })
	case wasmcodec.OpI64LeS:
		return true, bin64(func(a, b uint64) (uint64, error) { return b32(int64(a) <= int64(b)), nil })
	case wasmcodec.OpI64LeU:
		return true, bin64(func(a, b uint64) (uint64, error) { return b32(a <= b), nil })
	case wasmcodec.OpI64GeS:
		return true, bin64(func(a, b uint64) (uint64, error) { return b32(int64(a) >= int64(b)), nil })
	case wasmcodec.OpI64GeU:
		return true, bin64(func(a, b uint64) (uint64, error) { return b32(a >= b), nil })

	case wasmcodec.OpI32Add:
		return true, bin32(func(a, b uint32) (uint64, error) { return uint64(a + b), nil })
	case wasmcodec.OpI32Sub:
		return true, bin32(func(a, b uint32) (uint64, error) { return uint64(a - b), nil })
	case wasmcodec.OpI32Mul:
		return true, bin32(func(a, b uint32) (uint64, error) { return uint64(a * b), nil })
	case wasmcodec.OpI32DivS:
		return true, bin32(func(a, b uint32) (uint64, error) {
			if b == 0 {
				return 0, execErr("division by zero")
			}
			if int32(a) == math.MinInt32 && int32(b) == -1 {
				return 0, execErr("signed division overflow")
			}
			return uint64(uint32(int32(a) / int32(b))), nil
		})
	case wasmcodec.OpI32DivU:
		return true, bin32(func(a, b uint32) (uint64, error) {
			if b == 0 {
				return 0, execErr("division by zero")
			}
			return uint64(a / b), nil
		})
	case wasmcodec.OpI32RemS:
		return true, bin32(func(a, b uint32) (uint64, error) {
			if b == 0 {
				return 0, execErr("division by zero")
			}
			if int32(a) == math.MinInt32 && int32(b) == -1 {
				return 0, nil
			}
			return uint64(uint32(int32(a) % int32(b))), nil
		})
	case wasmcodec.OpI32RemU:
		return true, bin32(func(a, b uint32) (uint64, error) {
			if b == 0 {
				return 0, execErr("division by zero")
			}
			return uint64(a % b), nil
		})
	case wasmcodec.OpI32And:
		return true, bin32(func(a, b uint32) (uint64, error) { return uint64(a & b), nil })
	case wasmcodec.OpI32Or:
		return true, bin32(func(a, b uint32) (uint64, error) { return uint64(a | b), nil })
	case wasmcodec.OpI32Xor:
		return true, bin32(func(a, b uint32) (uint64, error) { return uint64(a ^ b), nil })
	case wasmcodec.OpI32Shl:
		return true, bin32(func(a, b uint32) (uint64, error) { return uint64(a << (b & 31)), nil })
	case wasmcodec.OpI32ShrS:
		return true, bin32(func(a, b uint32) (uint64, error) { return uint64(uint32(int32(a) >> (b & 31))), nil })
	case wasmcodec.OpI32ShrU:
		return true, bin32(func(a, b uint32) (uint64, error) { return uint64(a >> (b & 31)), nil })

	case wasmcodec.OpI64Add:
		return true, bin64(func(a, b uint64) (uint64, error) { return a + b, nil })
	case wasmcodec.OpI64Sub:
		return true, bin64(func(a, b uint64) (uint64, error) { return a - b, nil })
	case wasmcodec.OpI64Mul:
		return true, bin64(func(a, b uint64) (uint64, error) { return a * b, nil })
	case wasmcodec.OpI64DivS:
		return true, bin64(func(a, b uint64) (uint64, error) {
			if b == 0 {
				return 0, execErr("division by zero")
			}
			if int64(a) == math.MinInt64 && int64(b) == -1 {
				return 0, execErr("signed division overflow")
			}
			return uint64(int64(a) / int64(b)), nil
		})
	case wasmcodec.OpI64DivU:
		return true, bin64(func(a, b uint64) (uint64, error) {
			if b == 0 {
				return 0, execErr("division by zero")
			}
			return a / b, nil
		})
	case wasmcodec.OpI64RemS:
		return true, bin64(func(a, b uint64) (uint64, error) {
			if b == 0 {
				return 0, execErr("division by zero")
			}
			if int64(a) == math.MinInt64 && int64(b) == -1 {
				return 0, nil
			}
			return uint64(int64(a) % int64(b)), nil
		})
	case wasmcodec.OpI64RemU:
		return true, bin64(func(a, b uint64) (uint64, error) {
			if b == 0 {
				return 0, execErr("division by zero")
			}
			return a % b, nil
		})
	case wasmcodec.OpI64And:
		return true, bin64(func(a, b uint64) (uint64, error) { return a & b, nil })
	case wasmcodec.OpI64Or:
		return true, bin64(func(a, b uint64) (uint64, error) { return a | b, nil })
	case wasmcodec.OpI64Xor:
		return true, bin64(func(a, b uint64) (uint64, error) { return a ^ b, nil })
	case wasmcodec.OpI64Shl:
		return true, bin64(func(a, b uint64) (uint64, error) { return a << (b & 63), nil })
	case wasmcodec.OpI64ShrS:
		return true, bin64(func(a, b uint64) (uint64, error) { return uint64(int64(a) >> (b & 63)), nil })
	case wasmcodec.OpI64ShrU:
		return true, bin64(func(a, b uint64) (uint64, error) { return a >> (b & 63), nil })

	case wasmcodec.OpF32Add:
		return true, binF32(func(a, b float32) float32 { return a + b })
	case wasmcodec.OpF32Sub:
		return true, binF32(func(a, b float32) float32 { return a - b })
	case wasmcodec.OpF32Mul:
		return true, binF32(func(a, b float32) float32 { return a * b })
	case wasmcodec.OpF32Div:
		return true, binF32(func(a, b float32) float32 { return a / b })
	case wasmcodec.OpF64Add:
		return true, binF64(func(a, b float64) float64 { return a + b })
	case wasmcodec.OpF64Sub:
		return true, binF64(func(a, b float64) float64 { return a - b })
	case wasmcodec.OpF64Mul:
		return true, binF64(func(a, b float64) float64 { return a * b })
	case wasmcodec.OpF64Div:
		return true, binF64(func(a, b float64) float64 { return a / b })

	case wasmcodec.OpI32WrapI64:
		return true, un64(func(a uint64) uint64 { return uint64(uint32(a)) })
	case wasmcodec.OpI64ExtendI32S:
		return true, un32(func(a uint32) uint64 { return uint64(int64(int32(a))) })
	case wasmcodec.OpI64ExtendI32U:
		return true, un32(func(a uint32) uint64 { return uint64(a) })
	}
	return false, nil
}
