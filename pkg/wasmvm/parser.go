package wasmvm

import (
	"encoding/binary"
	"math"

	"github.com/Chic-lang/Chic-sub010/pkg/wasmcodec"
)

// reader is a bounds-checked cursor over one byte region; every read
// failure surfaces as an "unexpected end of <what>" ParseError.
type reader struct {
	data []byte
	pos  int
	what string
}

func (r *reader) remaining() int { return len(r.data) - r.pos }

func (r *reader) byte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, parseErr("unexpected end of %s", r.what)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) take(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, parseErr("unexpected end of %s", r.what)
	}
	out := r.data[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

func (r *reader) uvarint() (uint64, error) {
	v, n := wasmcodec.Uvarint(r.data[r.pos:])
	if n == 0 {
		return 0, parseErr("unexpected end of %s", r.what)
	}
	r.pos += n
	return v, nil
}

func (r *reader) varint() (int64, error) {
	v, n := wasmcodec.Varint(r.data[r.pos:])
	if n == 0 {
		return 0, parseErr("unexpected end of %s", r.what)
	}
	r.pos += n
	return v, nil
}

func (r *reader) name() (string, error) {
	n, err := r.uvarint()
	if err != nil {
		return "", err
	}
	if int(n) > r.remaining() {
		return "", parseErr("string length exceeds section")
	}
	raw, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// ParseModule decodes one emitted binary module. Only the emitter's subset
// is accepted; anything outside it is a ParseError.
func ParseModule(data []byte) (*Module, error) {
	if len(data) < 8 ||
		data[0] != wasmcodec.Magic[0] || data[1] != wasmcodec.Magic[1] ||
		data[2] != wasmcodec.Magic[2] || data[3] != wasmcodec.Magic[3] ||
		data[4] != wasmcodec.Version[0] || data[5] != wasmcodec.Version[1] ||
		data[6] != wasmcodec.Version[2] || data[7] != wasmcodec.Version[3] {
		return nil, parseErr("invalid wasm header")
	}

	mod := &Module{
		Exports:  make(map[string]Export),
		HashGlue: make(map[string]int),
		EqGlue:   make(map[string]int),
	}
	r := &reader{data: data, pos: 8, what: "module"}

	for r.remaining() > 0 {
		id, err := r.byte()
		if err != nil {
			return nil, err
		}
		size, err := r.uvarint()
		if err != nil {
			return nil, err
		}
		if int(size) > r.remaining() {
			return nil, parseErr("section length exceeds module size")
		}
		body, _ := r.take(int(size))
		sec := &reader{data: body, what: sectionName(wasmcodec.SectionID(id))}
		if err := mod.parseSection(wasmcodec.SectionID(id), sec); err != nil {
			return nil, err
		}
	}
	return mod, nil
}

func sectionName(id wasmcodec.SectionID) string {
	switch id {
	case wasmcodec.SecCustom:
		return "custom section"
	case wasmcodec.SecType:
		return "type section"
	case wasmcodec.SecImport:
		return "import section"
	case wasmcodec.SecFunction:
		return "function section"
	case wasmcodec.SecTable:
		return "table section"
	case wasmcodec.SecMemory:
		return "memory section"
	case wasmcodec.SecGlobal:
		return "global section"
	case wasmcodec.SecExport:
		return "export section"
	case wasmcodec.SecElement:
		return "element section"
	case wasmcodec.SecCode:
		return "code section"
	case wasmcodec.SecData:
		return "data section"
	default:
		return "section"
	}
}

func (m *Module) parseSection(id wasmcodec.SectionID, r *reader) error {
	switch id {
	case wasmcodec.SecCustom:
		return m.parseCustom(r)
	case wasmcodec.SecType:
		return m.parseTypes(r)
	case wasmcodec.SecImport:
		return m.parseImports(r)
	case wasmcodec.SecFunction:
		return m.parseFunctions(r)
	case wasmcodec.SecTable:
		return m.parseTable(r)
	case wasmcodec.SecMemory:
		return m.parseMemory(r)
	case wasmcodec.SecGlobal:
		return m.parseGlobals(r)
	case wasmcodec.SecExport:
		return m.parseExports(r)
	case wasmcodec.SecElement:
		return m.parseElements(r)
	case wasmcodec.SecCode:
		return m.parseCode(r)
	case wasmcodec.SecData:
		return m.parseData(r)
	default:
		return parseErr("unsupported section id %d", id)
	}
}

func (m *Module) parseTypes(r *reader) error {
	count, err := r.uvarint()
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		form, err := r.byte()
		if err != nil {
			return err
		}
		if form != wasmcodec.FuncTypeForm {
			return parseErr("unsupported type form 0x%02x", form)
		}
		var ft wasmcodec.FuncType
		np, err := r.uvarint()
		if err != nil {
			return err
		}
		for j := uint64(0); j < np; j++ {
			b, err := r.byte()
			if err != nil {
				return err
			}
			ft.Params = append(ft.Params, wasmcodec.ValueType(b))
		}
		nr, err := r.uvarint()
		if err != nil {
			return err
		}
		for j := uint64(0); j < nr; j++ {
			b, err := r.byte()
			if err != nil {
				return err
			}
			ft.Results = append(ft.Results, wasmcodec.ValueType(b))
		}
		m.Types = append(m.Types, ft)
	}
	return nil
}

func (m *Module) parseImports(r *reader) error {
	count, err := r.uvarint()
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		module, err := r.name()
		if err != nil {
			return err
		}
		name, err := r.name()
		if err != nil {
			return err
		}
		kind, err := r.byte()
		if err != nil {
			return err
		}
		if kind != 0x00 {
			return parseErr("only function imports are supported")
		}
		ti, err := r.uvarint()
		if err != nil {
			return err
		}
		if int(ti) >= len(m.Types) {
			return parseErr("import type index %d out of range", ti)
		}
		m.Imports = append(m.Imports, Import{Module: module, Name: name, TypeIndex: int(ti)})
	}
	return nil
}

func (m *Module) parseFunctions(r *reader) error {
	count, err := r.uvarint()
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		ti, err := r.uvarint()
		if err != nil {
			return err
		}
		if int(ti) >= len(m.Types) {
			return parseErr("function type index %d out of range", ti)
		}
		m.Funcs = append(m.Funcs, int(ti))
	}
	return nil
}

func (m *Module) parseTable(r *reader) error {
	count, err := r.uvarint()
	if err != nil {
		return err
	}
	if count != 1 {
		return parseErr("exactly one table expected, got %d", count)
	}
	elemType, err := r.byte()
	if err != nil {
		return err
	}
	if wasmcodec.ValueType(elemType) != wasmcodec.ValFuncRef {
		return parseErr("only funcref tables are supported")
	}
	flags, err := r.byte()
	if err != nil {
		return err
	}
	if flags > 1 {
		return parseErr("unsupported table limits flag 0x%02x", flags)
	}
	min, err := r.uvarint()
	if err != nil {
		return err
	}
	if flags == 1 {
		if _, err := r.uvarint(); err != nil {
			return err
		}
	}
	m.Table = make([]int, min)
	for i := range m.Table {
		m.Table[i] = -1
	}
	return nil
}

func (m *Module) parseMemory(r *reader) error {
	count, err := r.uvarint()
	if err != nil {
		return err
	}
	if count != 1 {
		return parseErr("exactly one memory expected, got %d", count)
	}
	flags, err := r.byte()
	if err != nil {
		return err
	}
	if flags > 1 {
		return parseErr("unsupported memory limits flag 0x%02x", flags)
	}
	min, err := r.uvarint()
	if err != nil {
		return err
	}
	if flags == 1 {
		if _, err := r.uvarint(); err != nil {
			return err
		}
	}
	m.MemPages = int(min)
	return nil
}

func (m *Module) parseGlobals(r *reader) error {
	count, err := r.uvarint()
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		vt, err := r.byte()
		if err != nil {
			return err
		}
		mut, err := r.byte()
		if err != nil {
			return err
		}
		init, err := parseConstExpr(r)
		if err != nil {
			return err
		}
		m.Globals = append(m.Globals, Global{
			Type:    wasmcodec.ValueType(vt),
			Mutable: mut == 1,
			Init:    init,
		})
	}
	return nil
}

// parseConstExpr reads the `i32.const N end` initializer form, the only
// constant expression the emitter produces.
func parseConstExpr(r *reader) (int64, error) {
	op, err := r.byte()
	if err != nil {
		return 0, err
	}
	if wasmcodec.Op(op) != wasmcodec.OpI32Const {
		return 0, parseErr("unsupported constant expression opcode 0x%02x", op)
	}
	v, err := r.varint()
	if err != nil {
		return 0, err
	}
	end, err := r.byte()
	if err != nil {
		return 0, err
	}
	if wasmcodec.Op(end) != wasmcodec.OpEnd {
		return 0, parseErr("unterminated constant expression")
	}
	return v, nil
}

func (m *Module) parseExports(r *reader) error {
	count, err := r.uvarint()
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		name, err := r.name()
		if err != nil {
			return err
		}
		kind, err := r.byte()
		if err != nil {
			return err
		}
		idx, err := r.uvarint()
		if err != nil {
			return err
		}
		m.Exports[name] = Export{Kind: kind, Index: int(idx)}
	}
	return nil
}

func (m *Module) parseElements(r *reader) error {
	count, err := r.uvarint()
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		tableIdx, err := r.uvarint()
		if err != nil {
			return err
		}
		if tableIdx != 0 {
			return parseErr("only table 0 element segments are supported")
		}
		offset, err := parseConstExpr(r)
		if err != nil {
			return err
		}
		n, err := r.uvarint()
		if err != nil {
			return err
		}
		for j := uint64(0); j < n; j++ {
			fidx, err := r.uvarint()
			if err != nil {
				return err
			}
			slot := int(offset) + int(j)
			if slot >= len(m.Table) {
				return parseErr("element segment writes past table end")
			}
			m.Table[slot] = int(fidx)
		}
	}
	return nil
}

func (m *Module) parseCode(r *reader) error {
	count, err := r.uvarint()
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		size, err := r.uvarint()
		if err != nil {
			return err
		}
		raw, err := r.take(int(size))
		if err != nil {
			return err
		}
		body, err := parseFuncBody(raw)
		if err != nil {
			return err
		}
		m.Bodies = append(m.Bodies, *body)
	}
	return nil
}

func parseFuncBody(raw []byte) (*FuncBody, error) {
	r := &reader{data: raw, what: "code body"}
	groups, err := r.uvarint()
	if err != nil {
		return nil, err
	}
	body := &FuncBody{}
	for i := uint64(0); i < groups; i++ {
		n, err := r.uvarint()
		if err != nil {
			return nil, err
		}
		vt, err := r.byte()
		if err != nil {
			return nil, err
		}
		for j := uint64(0); j < n; j++ {
			body.Locals = append(body.Locals, wasmcodec.ValueType(vt))
		}
	}
	instrs, err := decodeInstructions(r)
	if err != nil {
		return nil, err
	}
	body.Instrs = instrs
	return body, nil
}

func (m *Module) parseData(r *reader) error {
	count, err := r.uvarint()
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		memIdx, err := r.uvarint()
		if err != nil {
			return err
		}
		if memIdx != 0 {
			return parseErr("only active memory-0 data segments are supported")
		}
		offset, err := parseConstExpr(r)
		if err != nil {
			return err
		}
		n, err := r.uvarint()
		if err != nil {
			return err
		}
		raw, err := r.take(int(n))
		if err != nil {
			return err
		}
		seg := DataSegment{Offset: int32(offset), Bytes: make([]byte, len(raw))}
		copy(seg.Bytes, raw)
		m.Data = append(m.Data, seg)
	}
	return nil
}

// parseCustom recognizes the emitter's own custom sections and skips
// everything else silently.
func (m *Module) parseCustom(r *reader) error {
	name, err := r.name()
	if err != nil {
		return err
	}
	switch name {
	case "chic.fn.names":
		count, err := r.uvarint()
		if err != nil {
			return err
		}
		for i := uint64(0); i < count; i++ {
			n, err := r.name()
			if err != nil {
				return err
			}
			m.FunctionNames = append(m.FunctionNames, n)
		}
	case "chic.iface.defaults":
		count, err := r.uvarint()
		if err != nil {
			return err
		}
		for i := uint64(0); i < count; i++ {
			trait, err := r.name()
			if err != nil {
				return err
			}
			method, err := r.name()
			if err != nil {
				return err
			}
			symbol, err := r.name()
			if err != nil {
				return err
			}
			m.IfaceDefaults = append(m.IfaceDefaults, IfaceDefault{trait, method, symbol})
		}
	case "chic.type.metadata":
		count, err := r.uvarint()
		if err != nil {
			return err
		}
		for i := uint64(0); i < count; i++ {
			n, err := r.name()
			if err != nil {
				return err
			}
			size, err := r.uvarint()
			if err != nil {
				return err
			}
			align, err := r.uvarint()
			if err != nil {
				return err
			}
			kind, err := r.byte()
			if err != nil {
				return err
			}
			m.TypeMetadata = append(m.TypeMetadata, TypeMeta{n, int(size), int(align), kind})
		}
	case "chic.hash.glue", "chic.eq.glue":
		count, err := r.uvarint()
		if err != nil {
			return err
		}
		dst := m.HashGlue
		if name == "chic.eq.glue" {
			dst = m.EqGlue
		}
		for i := uint64(0); i < count; i++ {
			n, err := r.name()
			if err != nil {
				return err
			}
			idx, err := r.uvarint()
			if err != nil {
				return err
			}
			dst[n] = int(idx)
		}
	}
	return nil
}

// control is one entry of the decode-time control stack used to resolve
// block/loop/if end (and else) targets into precomputed indices.
type control struct {
	op     wasmcodec.Op
	pc     int
	elsePC int
}

func decodeInstructions(r *reader) ([]Instruction, error) {
	var instrs []Instruction
	var stack []control

	for {
		if r.remaining() == 0 {
			return nil, parseErr("unexpected end of code body")
		}
		b, _ := r.byte()
		op := wasmcodec.Op(b)
		in := Instruction{Op: op, ElsePC: -1, EndPC: -1}

		switch op {
		case wasmcodec.OpUnreachable, wasmcodec.OpNop, wasmcodec.OpReturn,
			wasmcodec.OpDrop, wasmcodec.OpSelect,
			wasmcodec.OpI32Eqz, wasmcodec.OpI64Eqz,
			wasmcodec.OpI32Eq, wasmcodec.OpI32Ne, wasmcodec.OpI32LtS, wasmcodec.OpI32LtU,
			wasmcodec.OpI32GtS, wasmcodec.OpI32GtU, wasmcodec.OpI32LeS, wasmcodec.OpI32LeU,
			wasmcodec.OpI32GeS, wasmcodec.OpI32GeU,
			wasmcodec.OpI64Eq, wasmcodec.OpI64Ne, wasmcodec.OpI64LtS, wasmcodec.OpI64LtU,
			wasmcodec.OpI64GtS, wasmcodec.OpI64GtU, wasmcodec.OpI64LeS, wasmcodec.OpI64LeU,
			wasmcodec.OpI64GeS, wasmcodec.OpI64GeU,
			wasmcodec.OpI32Add, wasmcodec.OpI32Sub, wasmcodec.OpI32Mul,
			wasmcodec.OpI32DivS, wasmcodec.OpI32DivU, wasmcodec.OpI32RemS, wasmcodec.OpI32RemU,
			wasmcodec.OpI32And, wasmcodec.OpI32Or, wasmcodec.OpI32Xor,
			wasmcodec.OpI32Shl, wasmcodec.OpI32ShrS, wasmcodec.OpI32ShrU,
			wasmcodec.OpI64Add, wasmcodec.OpI64Sub, wasmcodec.OpI64Mul,
			wasmcodec.OpI64DivS, wasmcodec.OpI64DivU, wasmcodec.OpI64RemS, wasmcodec.OpI64RemU,
			wasmcodec.OpI64And, wasmcodec.OpI64Or, wasmcodec.OpI64Xor,
			wasmcodec.OpI64Shl, wasmcodec.OpI64ShrS, wasmcodec.OpI64ShrU,
			wasmcodec.OpF32Add, wasmcodec.OpF32Sub, wasmcodec.OpF32Mul, wasmcodec.OpF32Div,
			wasmcodec.OpF64Add, wasmcodec.OpF64Sub, wasmcodec.OpF64Mul, wasmcodec.OpF64Div,
			wasmcodec.OpI32WrapI64, wasmcodec.OpI64ExtendI32S, wasmcodec.OpI64ExtendI32U,
			wasmcodec.OpMemorySize, wasmcodec.OpMemoryGrow:
			if op == wasmcodec.OpMemorySize || op == wasmcodec.OpMemoryGrow {
				if _, err := r.byte(); err != nil { // reserved memory index
					return nil, err
				}
			}

		case wasmcodec.OpBlock, wasmcodec.OpLoop, wasmcodec.OpIf:
			bt, err := r.byte()
			if err != nil {
				return nil, err
			}
			if bt != wasmcodec.BlockTypeEmpty {
				return nil, parseErr("only empty block types supported")
			}
			stack = append(stack, control{op: op, pc: len(instrs), elsePC: -1})

		case wasmcodec.OpElse:
			if len(stack) == 0 || stack[len(stack)-1].op != wasmcodec.OpIf {
				return nil, parseErr("else without matching if")
			}
			stack[len(stack)-1].elsePC = len(instrs)
			instrs[stack[len(stack)-1].pc].ElsePC = len(instrs)

		case wasmcodec.OpEnd:
			if len(stack) == 0 {
				// Function body terminator.
				instrs = append(instrs, in)
				return instrs, nil
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			instrs[top.pc].EndPC = len(instrs)
			if top.elsePC >= 0 {
				instrs[top.elsePC].EndPC = len(instrs)
			}

		case wasmcodec.OpBr, wasmcodec.OpBrIf:
			depth, err := r.uvarint()
			if err != nil {
				return nil, err
			}
			in.A = int(depth)

		case wasmcodec.OpBrTable:
			n, err := r.uvarint()
			if err != nil {
				return nil, err
			}
			for j := uint64(0); j <= n; j++ { // targets plus default
				if _, err := r.uvarint(); err != nil {
					return nil, err
				}
			}
			return nil, parseErr("unsupported wasm opcode 0x%02x", byte(op))

		case wasmcodec.OpCall:
			idx, err := r.uvarint()
			if err != nil {
				return nil, err
			}
			in.A = int(idx)

		case wasmcodec.OpCallIndirect:
			ti, err := r.uvarint()
			if err != nil {
				return nil, err
			}
			tbl, err := r.uvarint()
			if err != nil {
				return nil, err
			}
			in.A = int(ti)
			in.B = int(tbl)

		case wasmcodec.OpLocalGet, wasmcodec.OpLocalSet, wasmcodec.OpLocalTee,
			wasmcodec.OpGlobalGet, wasmcodec.OpGlobalSet:
			idx, err := r.uvarint()
			if err != nil {
				return nil, err
			}
			in.A = int(idx)

		case wasmcodec.OpI32Load, wasmcodec.OpI64Load, wasmcodec.OpF32Load, wasmcodec.OpF64Load,
			wasmcodec.OpI32Load8S, wasmcodec.OpI32Load8U, wasmcodec.OpI32Load16S, wasmcodec.OpI32Load16U,
			wasmcodec.OpI64Load8S, wasmcodec.OpI64Load8U, wasmcodec.OpI64Load16S, wasmcodec.OpI64Load16U,
			wasmcodec.OpI64Load32S, wasmcodec.OpI64Load32U,
			wasmcodec.OpI32Store, wasmcodec.OpI64Store, wasmcodec.OpF32Store, wasmcodec.OpF64Store,
			wasmcodec.OpI32Store8, wasmcodec.OpI32Store16,
			wasmcodec.OpI64Store8, wasmcodec.OpI64Store16, wasmcodec.OpI64Store32:
			align, err := r.uvarint()
			if err != nil {
				return nil, err
			}
			offset, err := r.uvarint()
			if err != nil {
				return nil, err
			}
			in.A = int(align)
			in.B = int(offset)

		case wasmcodec.OpI32Const:
			v, err := r.varint()
			if err != nil {
				return nil, err
			}
			in.I64 = v

		case wasmcodec.OpI64Const:
			v, err := r.varint()
			if err != nil {
				return nil, err
			}
			in.I64 = v

		case wasmcodec.OpF32Const:
			raw, err := r.take(4)
			if err != nil {
				return nil, err
			}
			in.F32 = math.Float32frombits(binary.LittleEndian.Uint32(raw))

		case wasmcodec.OpF64Const:
			raw, err := r.take(8)
			if err != nil {
				return nil, err
			}
			in.F64 = math.Float64frombits(binary.LittleEndian.Uint64(raw))

		case wasmcodec.OpAtomicPrefix:
			sub, err := r.byte()
			if err != nil {
				return nil, err
			}
			in.Atomic = wasmcodec.AtomicOp(sub)
			switch in.Atomic {
			case wasmcodec.AtomicFence:
				if _, err := r.byte(); err != nil {
					return nil, err
				}
			case wasmcodec.AtomicI32Load, wasmcodec.AtomicI64Load,
				wasmcodec.AtomicI32Store, wasmcodec.AtomicI64Store:
				align, err := r.uvarint()
				if err != nil {
					return nil, err
				}
				offset, err := r.uvarint()
				if err != nil {
					return nil, err
				}
				in.A = int(align)
				in.B = int(offset)
			default:
				return nil, parseErr("unsupported wasm opcode 0xfe 0x%02x", sub)
			}

		default:
			return nil, parseErr("unsupported wasm opcode 0x%02x", byte(op))
		}

		instrs = append(instrs, in)
	}
}
