package wasmcodec

// ValueType is a WASM value type tag.
type ValueType byte

const (
	ValI32    ValueType = 0x7f
	ValI64    ValueType = 0x7e
	ValF32    ValueType = 0x7d
	ValF64    ValueType = 0x7c
	ValFuncRef ValueType = 0x70
)

func (v ValueType) String() string {
	switch v {
	case ValI32:
		return "i32"
	case ValI64:
		return "i64"
	case ValF32:
		return "f32"
	case ValF64:
		return "f64"
	case ValFuncRef:
		return "funcref"
	default:
		return "unknown"
	}
}

// SectionID is a WASM section's numeric id; emission order follows this
// numbering (§4.3).
type SectionID byte

const (
	SecCustom   SectionID = 0
	SecType     SectionID = 1
	SecImport   SectionID = 2
	SecFunction SectionID = 3
	SecTable    SectionID = 4
	SecMemory   SectionID = 5
	SecGlobal   SectionID = 6
	SecExport   SectionID = 7
	SecStart    SectionID = 8
	SecElement  SectionID = 9
	SecCode     SectionID = 10
	SecData     SectionID = 11
)

// FuncType is a WASM type-section entry (func form 0x60).
type FuncType struct {
	Params  []ValueType
	Results []ValueType
}

func (f FuncType) Equal(o FuncType) bool {
	if len(f.Params) != len(o.Params) || len(f.Results) != len(o.Results) {
		return false
	}
	for i := range f.Params {
		if f.Params[i] != o.Params[i] {
			return false
		}
	}
	for i := range f.Results {
		if f.Results[i] != o.Results[i] {
			return false
		}
	}
	return true
}

const FuncTypeForm byte = 0x60

// Module layout constants, §6.
var (
	Magic   = [4]byte{0x00, 0x61, 0x73, 0x6d}
	Version = [4]byte{0x01, 0x00, 0x00, 0x00}
)

const (
	WasmPageSize   = 65536
	MemMinPages    = 64 // 4 MiB minimum, §6
	StackBase      = 0x10000
	StackPointerGlobalIndex = 0
)
