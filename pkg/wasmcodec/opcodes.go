package wasmcodec

// Op is a WASM instruction opcode. Only the subset the emitter produces
// (and the parser/executor therefore needs to recognize) is defined; any
// other byte is an "unsupported wasm opcode" ParseError, per §7.
type Op byte

const (
	OpUnreachable Op = 0x00
	OpNop         Op = 0x01
	OpBlock       Op = 0x02
	OpLoop        Op = 0x03
	OpIf          Op = 0x04
	OpElse        Op = 0x05
	OpEnd         Op = 0x0b
	OpBr          Op = 0x0c
	OpBrIf        Op = 0x0d
	OpBrTable     Op = 0x0e
	OpReturn      Op = 0x0f
	OpCall        Op = 0x10
	OpCallIndirect Op = 0x11

	OpDrop   Op = 0x1a
	OpSelect Op = 0x1b

	OpLocalGet  Op = 0x20
	OpLocalSet  Op = 0x21
	OpLocalTee  Op = 0x22
	OpGlobalGet Op = 0x23
	OpGlobalSet Op = 0x24

	OpI32Load    Op = 0x28
	OpI64Load    Op = 0x29
	OpF32Load    Op = 0x2a
	OpF64Load    Op = 0x2b
	OpI32Load8S  Op = 0x2c
	OpI32Load8U  Op = 0x2d
	OpI32Load16S Op = 0x2e
	OpI32Load16U Op = 0x2f
	OpI64Load8S  Op = 0x30
	OpI64Load8U  Op = 0x31
	OpI64Load16S Op = 0x32
	OpI64Load16U Op = 0x33
	OpI64Load32S Op = 0x34
	OpI64Load32U Op = 0x35
	OpI32Store   Op = 0x36
	OpI64Store   Op = 0x37
	OpF32Store   Op = 0x38
	OpF64Store   Op = 0x39
	OpI32Store8  Op = 0x3a
	OpI32Store16 Op = 0x3b
	OpI64Store8  Op = 0x3c
	OpI64Store16 Op = 0x3d
	OpI64Store32 Op = 0x3e
	OpMemorySize Op = 0x3f
	OpMemoryGrow Op = 0x40

	OpI32Const Op = 0x41
	OpI64Const Op = 0x42
	OpF32Const Op = 0x43
	OpF64Const Op = 0x44

	OpI32Eqz Op = 0x45
	OpI32Eq  Op = 0x46
	OpI32Ne  Op = 0x47
	OpI32LtS Op = 0x48
	OpI32LtU Op = 0x49
	OpI32GtS Op = 0x4a
	OpI32GtU Op = 0x4b
	OpI32LeS Op = 0x4c
	OpI32LeU Op = 0x4d
	OpI32GeS Op = 0x4e
	OpI32GeU Op = 0x4f

	OpI64Eqz Op = 0x50
	OpI64Eq  Op = 0x51
	OpI64Ne  Op = 0x52
	OpI64LtS Op = 0x53
	OpI64LtU Op = 0x54
	OpI64GtS Op = 0x55
	OpI64GtU Op = 0x56
	OpI64LeS Op = 0x57
	OpI64LeU Op = 0x58
	OpI64GeS Op = 0x59
	OpI64GeU Op = 0x5a

	OpI32Add  Op = 0x6a
	OpI32Sub  Op = 0x6b
	OpI32Mul  Op = 0x6c
	OpI32DivS Op = 0x6d
	OpI32DivU Op = 0x6e
	OpI32RemS Op = 0x6f
	OpI32RemU Op = 0x70
	OpI32And  Op = 0x71
	OpI32Or   Op = 0x72
	OpI32Xor  Op = 0x73
	OpI32Shl  Op = 0x74
	OpI32ShrS Op = 0x75
	OpI32ShrU Op = 0x76

	OpI64Add  Op = 0x7c
	OpI64Sub  Op = 0x7d
	OpI64Mul  Op = 0x7e
	OpI64DivS Op = 0x7f
	OpI64DivU Op = 0x80
	OpI64RemS Op = 0x81
	OpI64RemU Op = 0x82
	OpI64And  Op = 0x83
	OpI64Or   Op = 0x84
	OpI64Xor  Op = 0x85
	OpI64Shl  Op = 0x86
	OpI64ShrS Op = 0x87
	OpI64ShrU Op = 0x88

	OpF32Add Op = 0x92
	OpF32Sub Op = 0x93
	OpF32Mul Op = 0x94
	OpF32Div Op = 0x95

	OpF64Add Op = 0xa0
	OpF64Sub Op = 0xa1
	OpF64Mul Op = 0xa2
	OpF64Div Op = 0xa3

	OpI32WrapI64    Op = 0xa7
	OpI64ExtendI32S Op = 0xac
	OpI64ExtendI32U Op = 0xad

	OpAtomicPrefix Op = 0xfe // followed by a further opcode byte + memarg
)

// AtomicOp is the sub-opcode following OpAtomicPrefix.
type AtomicOp byte

const (
	AtomicFence    AtomicOp = 0x03
	AtomicI32Load  AtomicOp = 0x10
	AtomicI64Load  AtomicOp = 0x11
	AtomicI32Store AtomicOp = 0x17
	AtomicI64Store AtomicOp = 0x18
)

// BlockTypeEmpty is the only block type the in-house backend ever emits
// (§7: "only empty block types supported").
const BlockTypeEmpty byte = 0x40
