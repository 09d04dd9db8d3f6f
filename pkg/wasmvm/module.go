// Package wasmvm re-reads the binary modules pkg/codegen/wasmgen emits:
// a byte-oriented section parser plus a stack-machine executor, per spec
// §4.7. Both accept only the subset the in-house emitter produces — no
// passive segments, no reference types beyond funcref, no SIMD128, one
// memory, empty block types — and reject everything else with a ParseError.
package wasmvm

import "github.com/Chic-lang/Chic-sub010/pkg/wasmcodec"

// Import is one import-section entry (always a function in the emitted
// subset).
type Import struct {
	Module    string
	Name      string
	TypeIndex int
}

// Global is one global-section entry; the emitted subset only ever
// contains the single mutable i32 stack pointer.
type Global struct {
	Type    wasmcodec.ValueType
	Mutable bool
	Init    int64
}

// Export is one export-section entry.
type Export struct {
	Kind  byte
	Index int
}

// DataSegment is one active data-section entry for memory 0.
type DataSegment struct {
	Offset int32
	Bytes  []byte
}

// Instruction is one decoded operation. Operand meaning depends on Op:
// branch depth, function/type index, local/global index, or memarg
// align/offset live in A/B; constants in I64/F32/F64. ElsePC/EndPC are the
// control targets resolved by the parser's control stack so the executor
// never re-scans for matching `end`s.
type Instruction struct {
	Op     wasmcodec.Op
	Atomic wasmcodec.AtomicOp
	A, B   int
	I64    int64
	F32    float32
	F64    float64
	ElsePC int
	EndPC  int
}

// FuncBody is one code-section entry after decoding.
type FuncBody struct {
	Locals []wasmcodec.ValueType
	Instrs []Instruction
}

// IfaceDefault mirrors the chic.iface.defaults custom-section records.
type IfaceDefault struct {
	Trait  string
	Method string
	Symbol string
}

// TypeMeta mirrors the chic.type.metadata custom-section records.
type TypeMeta struct {
	Name  string
	Size  int
	Align int
	Kind  byte
}

// Module is the parsed form of one emitted binary module.
type Module struct {
	Types    []wasmcodec.FuncType
	Imports  []Import
	Funcs    []int // per defined function: index into Types
	Table    []int // funcref table contents: combined-space function indices
	MemPages int
	Globals  []Global
	Exports  map[string]Export
	Bodies   []FuncBody
	Data     []DataSegment

	FunctionNames []string
	IfaceDefaults []IfaceDefault
	TypeMetadata  []TypeMeta
	HashGlue      map[string]int
	EqGlue        map[string]int
}

// ImportCount returns the number of imported functions preceding defined
// functions in the combined index space.
func (m *Module) ImportCount() int { return len(m.Imports) }

// TypeOf returns the function type of a combined-space function index.
func (m *Module) TypeOf(funcIndex int) (wasmcodec.FuncType, bool) {
	if funcIndex < 0 {
		return wasmcodec.FuncType{}, false
	}
	if funcIndex < len(m.Imports) {
		ti := m.Imports[funcIndex].TypeIndex
		if ti >= len(m.Types) {
			return wasmcodec.FuncType{}, false
		}
		return m.Types[ti], true
	}
	di := funcIndex - len(m.Imports)
	if di >= len(m.Funcs) {
		return wasmcodec.FuncType{}, false
	}
	return m.Types[m.Funcs[di]], true
}
