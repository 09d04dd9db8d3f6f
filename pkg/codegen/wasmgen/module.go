package wasmgen

import (
	"bytes"
	"sort"

	"github.com/Chic-lang/Chic-sub010/pkg/layout"
	"github.com/Chic-lang/Chic-sub010/pkg/mir"
	"github.com/Chic-lang/Chic-sub010/pkg/runtimehooks"
	"github.com/Chic-lang/Chic-sub010/pkg/wasmcodec"
)

// Options configures a single Emit call (§6 environment knobs surfaced as
// struct fields rather than reading os.Getenv deep inside the emitter).
type Options struct {
	Trace    bool // CHIC_WASM_TRACE: log each function name to stderr as it is emitted
	Coverage bool // emit one coverage_hit(id) call per statement, §8 property 5
}

// ModuleBuilder accumulates the sections of one WASM binary module in the
// canonical order required by §4.3.
type ModuleBuilder struct {
	res *layout.Resolver
	mod *mir.MirModule
	opt Options

	types     []wasmcodec.FuncType
	typeIndex map[string]int // FuncType signature string -> index, for interning

	importHooks []runtimehooks.Hook
	importTypeIdx []int

	funcTypeIdx []int // one per defined function, into types
	funcNames   []string

	tableFuncs []int // element segment contents: function indices in table order
	funcTableIndex map[string]int // function name -> table index (for call_indirect)

	predeclared map[string]int // function name -> combined-space index, assigned before body emission

	dataSegments []dataSegment
	stringOffset map[mir.StrId]int32
	staticOffset map[mir.StaticId]int32

	exports []exportEntry

	code [][]byte // one code-section entry per defined function, in funcNames order
}

type dataSegment struct {
	offset int32
	bytes  []byte
}

type exportEntry struct {
	name string
	kind byte // 0 = func
	idx  int
}

// NewModuleBuilder starts a builder for the given MIR module.
func NewModuleBuilder(res *layout.Resolver, mod *mir.MirModule, opt Options) *ModuleBuilder {
	b := &ModuleBuilder{
		res:            res,
		mod:            mod,
		opt:            opt,
		typeIndex:      make(map[string]int),
		funcTableIndex: make(map[string]int),
		predeclared:    make(map[string]int),
		stringOffset:   make(map[mir.StrId]int32),
		staticOffset:   make(map[mir.StaticId]int32),
	}
	return b
}

// reserveStatic carves out a zero-initialized data-segment slot for a
// module-level static variable and returns its linear-memory address.
func (b *ModuleBuilder) reserveStatic(id mir.StaticId, size int, cursor *int32) int32 {
	if off, ok := b.staticOffset[id]; ok {
		return off
	}
	if size <= 0 {
		size = 4
	}
	off := int32(mir.AlignTo(int(*cursor), 8))
	b.dataSegments = append(b.dataSegments, dataSegment{offset: off, bytes: make([]byte, size)})
	*cursor = off + int32(size)
	b.staticOffset[id] = off
	return off
}

// internType interns a FuncType and returns its type-section index.
func (b *ModuleBuilder) internType(ft wasmcodec.FuncType) int {
	key := funcTypeKey(ft)
	if idx, ok := b.typeIndex[key]; ok {
		return idx
	}
	idx := len(b.types)
	b.types = append(b.types, ft)
	b.typeIndex[key] = idx
	return idx
}

func funcTypeKey(ft wasmcodec.FuncType) string {
	var sb bytes.Buffer
	for _, p := range ft.Params {
		sb.WriteByte(byte(p))
	}
	sb.WriteByte('>')
	for _, r := range ft.Results {
		sb.WriteByte(byte(r))
	}
	return sb.String()
}

// declareImports registers every runtime hook in the catalog as a WASM
// import, in catalog (enumeration) order, per §5's ordering guarantee and
// §6's "MUST include every hook the module references"; since any hook may
// be referenced indirectly (a function value naming one compiles even
// without a dedicated lowering path, per SPEC_FULL's supplemented-features
// note), the whole catalog is imported unconditionally rather than
// computed from a live-use scan. This also keeps per-function hook call
// indices stable across a single emission pass.
func (b *ModuleBuilder) declareImports() {
	for _, h := range runtimehooks.Catalog {
		idx := b.internType(wasmcodec.FuncType{Params: h.Params, Results: h.Results})
		b.importHooks = append(b.importHooks, h)
		b.importTypeIdx = append(b.importTypeIdx, idx)
	}
}

// hookImportIndex returns a hook's fixed position in the import section,
// which (because declareImports imports the full catalog in catalog
// order) is simply its index within runtimehooks.Catalog.
func hookImportIndex(id runtimehooks.HookID) int {
	for i, h := range runtimehooks.Catalog {
		if h.ID == id {
			return i
		}
	}
	return -1
}

// importCount returns how many import-section function entries precede the
// module's own defined functions in the combined function index space.
func (b *ModuleBuilder) importCount() int {
	return len(b.importHooks)
}

// internString reserves (or reuses) a data-segment slot for an interned
// string's UTF-8 bytes and returns its byte offset in linear memory.
func (b *ModuleBuilder) internString(id mir.StrId, cursor *int32) int32 {
	if off, ok := b.stringOffset[id]; ok {
		return off
	}
	text := b.mod.StringText(id)
	raw := []byte(text)
	off := *cursor
	b.dataSegments = append(b.dataSegments, dataSegment{offset: off, bytes: raw})
	*cursor += int32(len(raw))
	*cursor = int32(mir.AlignTo(int(*cursor), 8))
	b.stringOffset[id] = off
	return off
}

// registerFunction assigns a function its function-section type index,
// appends its code bytes, and (if it's referenced indirectly via a
// Dispatch) assigns it a table slot.
func (b *ModuleBuilder) registerFunction(name string, ft wasmcodec.FuncType, code []byte, needsTableSlot bool) int {
	typeIdx := b.internType(ft)
	idx := len(b.funcNames)
	b.funcNames = append(b.funcNames, name)
	b.funcTypeIdx = append(b.funcTypeIdx, typeIdx)
	b.code = append(b.code, code)
	if needsTableSlot {
		b.ensureTableSlot(name, b.importCount()+idx)
	}
	return idx
}

func (b *ModuleBuilder) ensureTableSlot(name string, funcIndex int) int {
	if slot, ok := b.funcTableIndex[name]; ok {
		return slot
	}
	slot := len(b.tableFuncs)
	b.tableFuncs = append(b.tableFuncs, funcIndex)
	b.funcTableIndex[name] = slot
	return slot
}

func (b *ModuleBuilder) addExport(name string, funcIndex int) {
	b.exports = append(b.exports, exportEntry{name: name, kind: 0, idx: funcIndex})
}

// predeclare assigns combined-space indices to every function that will be
// defined, in emission order, before any body is lowered. Call lowering and
// drop-glue references can then resolve forward targets (a call to a
// function or glue body that hasn't been emitted yet).
func (b *ModuleBuilder) predeclare(names []string) {
	for i, n := range names {
		b.predeclared[n] = b.importCount() + i
	}
}

// funcIndexByName resolves a canonical function name to its index in the
// combined import+defined function space, as §4.2's Call lowering needs.
func (b *ModuleBuilder) funcIndexByName(name string) (int, bool) {
	if idx, ok := b.predeclared[name]; ok {
		return idx, true
	}
	for i, n := range b.funcNames {
		if n == name {
			return b.importCount() + i, true
		}
	}
	return 0, false
}

// signatureFor builds the WASM FuncType an indirect call site expects,
// from the arguments and destination it can observe. Table entries are
// required to share this exact signature (§8 property 3); a mismatched
// concrete callee is a caller-side MIR bug, not something this builder can
// detect locally.
func (b *ModuleBuilder) signatureFor(t mir.TermCall) wasmcodec.FuncType {
	ft := wasmcodec.FuncType{}
	for range t.Args {
		ft.Params = append(ft.Params, wasmcodec.ValI32)
	}
	if t.Destination != nil {
		ft.Results = []wasmcodec.ValueType{wasmcodec.ValI32}
	}
	return ft
}

// Finish serializes all accumulated sections into a complete binary module,
// per §4.3's canonical section order (Type, Import, Function, Table,
// Memory, Global, Export, Element, Code, Data).
func (b *ModuleBuilder) Finish() []byte {
	var out bytes.Buffer
	out.Write(wasmcodec.Magic[:])
	out.Write(wasmcodec.Version[:])

	writeSection(&out, wasmcodec.SecType, b.encodeTypeSection())
	if len(b.importHooks) > 0 {
		writeSection(&out, wasmcodec.SecImport, b.encodeImportSection())
	}
	writeSection(&out, wasmcodec.SecFunction, b.encodeFunctionSection())
	if len(b.tableFuncs) > 0 {
		writeSection(&out, wasmcodec.SecTable, b.encodeTableSection())
	}
	writeSection(&out, wasmcodec.SecMemory, b.encodeMemorySection())
	writeSection(&out, wasmcodec.SecGlobal, b.encodeGlobalSection())
	writeSection(&out, wasmcodec.SecExport, b.encodeExportSection())
	if len(b.tableFuncs) > 0 {
		writeSection(&out, wasmcodec.SecElement, b.encodeElementSection())
	}
	writeSection(&out, wasmcodec.SecCode, b.encodeCodeSection())
	if len(b.dataSegments) > 0 {
		writeSection(&out, wasmcodec.SecData, b.encodeDataSection())
	}
	writeCustomSection(&out, "chic.fn.names", b.encodeFnNames())
	writeCustomSection(&out, "chic.iface.defaults", b.encodeIfaceDefaults())
	writeCustomSection(&out, "chic.type.metadata", b.encodeTypeMetadata())
	writeCustomSection(&out, "chic.hash.glue", b.encodeGlueTable("__cl_hash__"))
	writeCustomSection(&out, "chic.eq.glue", b.encodeGlueTable("__cl_eq__"))
	return out.Bytes()
}

func writeCustomSection(out *bytes.Buffer, name string, payload []byte) {
	var body bytes.Buffer
	writeName(&body, name)
	body.Write(payload)
	writeSection(out, wasmcodec.SecCustom, body.Bytes())
}

// encodeFnNames lists every defined function's canonical name in index
// order; the parser rebuilds its name table from this section (§4.3).
func (b *ModuleBuilder) encodeFnNames() []byte {
	var buf bytes.Buffer
	wasmcodec.PutUvarint(&buf, uint64(len(b.funcNames)))
	for _, n := range b.funcNames {
		writeName(&buf, n)
	}
	return buf.Bytes()
}

func (b *ModuleBuilder) encodeIfaceDefaults() []byte {
	var buf bytes.Buffer
	wasmcodec.PutUvarint(&buf, uint64(len(b.mod.InterfaceDefaults)))
	for _, d := range b.mod.InterfaceDefaults {
		writeName(&buf, d.Trait)
		writeName(&buf, d.Method)
		writeName(&buf, d.Symbol)
	}
	return buf.Bytes()
}

// encodeTypeMetadata records {name, size, align, kind} per registered
// aggregate layout, sorted by name so libraries hash identically run to run.
func (b *ModuleBuilder) encodeTypeMetadata() []byte {
	table := b.res.Table
	type entry struct {
		name        string
		size, align int
		kind        byte
	}
	var entries []entry
	for n, l := range table.Structs {
		entries = append(entries, entry{n, l.Size, l.Align, 0})
	}
	for n, l := range table.Enums {
		entries = append(entries, entry{n, l.Size, l.Align, 1})
	}
	for n, l := range table.Unions {
		entries = append(entries, entry{n, l.Size, l.Align, 2})
	}
	for n, l := range table.Classes {
		entries = append(entries, entry{n, l.Size, l.Align, 3})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
	var buf bytes.Buffer
	wasmcodec.PutUvarint(&buf, uint64(len(entries)))
	for _, e := range entries {
		writeName(&buf, e.name)
		wasmcodec.PutUvarint(&buf, uint64(e.size))
		wasmcodec.PutUvarint(&buf, uint64(e.align))
		buf.WriteByte(e.kind)
	}
	return buf.Bytes()
}

// encodeGlueTable maps type names to their synthesized hash/eq glue
// function indices, for the handful of modules whose frontend emitted
// __cl_hash__/__cl_eq__ bodies.
func (b *ModuleBuilder) encodeGlueTable(prefix string) []byte {
	type entry struct {
		name string
		idx  int
	}
	var entries []entry
	for i, n := range b.funcNames {
		if len(n) > len(prefix) && n[:len(prefix)] == prefix {
			entries = append(entries, entry{n[len(prefix):], b.importCount() + i})
		}
	}
	var buf bytes.Buffer
	wasmcodec.PutUvarint(&buf, uint64(len(entries)))
	for _, e := range entries {
		writeName(&buf, e.name)
		wasmcodec.PutUvarint(&buf, uint64(e.idx))
	}
	return buf.Bytes()
}

func writeSection(out *bytes.Buffer, id wasmcodec.SectionID, body []byte) {
	out.WriteByte(byte(id))
	wasmcodec.PutUvarint(out, uint64(len(body)))
	out.Write(body)
}

func (b *ModuleBuilder) encodeTypeSection() []byte {
	var buf bytes.Buffer
	wasmcodec.PutUvarint(&buf, uint64(len(b.types)))
	for _, ft := range b.types {
		buf.WriteByte(wasmcodec.FuncTypeForm)
		wasmcodec.PutUvarint(&buf, uint64(len(ft.Params)))
		for _, p := range ft.Params {
			buf.WriteByte(byte(p))
		}
		wasmcodec.PutUvarint(&buf, uint64(len(ft.Results)))
		for _, r := range ft.Results {
			buf.WriteByte(byte(r))
		}
	}
	return buf.Bytes()
}

func (b *ModuleBuilder) encodeImportSection() []byte {
	var buf bytes.Buffer
	wasmcodec.PutUvarint(&buf, uint64(len(b.importHooks)))
	for i, h := range b.importHooks {
		writeName(&buf, runtimehooks.Module)
		writeName(&buf, h.Name)
		buf.WriteByte(0x00) // import kind: func
		wasmcodec.PutUvarint(&buf, uint64(b.importTypeIdx[i]))
	}
	return buf.Bytes()
}

func writeName(buf *bytes.Buffer, s string) {
	wasmcodec.PutUvarint(buf, uint64(len(s)))
	buf.WriteString(s)
}

func (b *ModuleBuilder) encodeFunctionSection() []byte {
	var buf bytes.Buffer
	wasmcodec.PutUvarint(&buf, uint64(len(b.funcTypeIdx)))
	for _, idx := range b.funcTypeIdx {
		wasmcodec.PutUvarint(&buf, uint64(idx))
	}
	return buf.Bytes()
}

func (b *ModuleBuilder) encodeTableSection() []byte {
	var buf bytes.Buffer
	wasmcodec.PutUvarint(&buf, 1) // one table
	buf.WriteByte(byte(wasmcodec.ValFuncRef))
	buf.WriteByte(0x00) // flags: min only
	wasmcodec.PutUvarint(&buf, uint64(len(b.tableFuncs)))
	return buf.Bytes()
}

func (b *ModuleBuilder) encodeMemorySection() []byte {
	var buf bytes.Buffer
	wasmcodec.PutUvarint(&buf, 1)
	buf.WriteByte(0x00) // flags: min only
	wasmcodec.PutUvarint(&buf, wasmcodec.MemMinPages)
	return buf.Bytes()
}

func (b *ModuleBuilder) encodeGlobalSection() []byte {
	var buf bytes.Buffer
	wasmcodec.PutUvarint(&buf, 1) // single mutable stack-pointer global
	buf.WriteByte(byte(wasmcodec.ValI32))
	buf.WriteByte(0x01) // mutable
	buf.WriteByte(byte(wasmcodec.OpI32Const))
	wasmcodec.PutVarint(&buf, int64(b.stackBaseForModule()))
	buf.WriteByte(byte(wasmcodec.OpEnd))
	return buf.Bytes()
}

// stackBaseForModule returns the initial stack-pointer value: StackBase, or
// the end of the module's interned-string data segments if that is higher,
// aligned up to 8.
func (b *ModuleBuilder) stackBaseForModule() int32 {
	top := int32(wasmcodec.StackBase)
	for _, seg := range b.dataSegments {
		end := seg.offset + int32(len(seg.bytes))
		if end > top {
			top = end
		}
	}
	return int32(mir.AlignTo(int(top), 8))
}

func (b *ModuleBuilder) encodeExportSection() []byte {
	var buf bytes.Buffer
	wasmcodec.PutUvarint(&buf, uint64(len(b.exports)))
	for _, e := range b.exports {
		writeName(&buf, e.name)
		buf.WriteByte(e.kind)
		wasmcodec.PutUvarint(&buf, uint64(e.idx))
	}
	return buf.Bytes()
}

func (b *ModuleBuilder) encodeElementSection() []byte {
	var buf bytes.Buffer
	wasmcodec.PutUvarint(&buf, 1) // single active segment onto table 0
	wasmcodec.PutUvarint(&buf, 0)
	buf.WriteByte(byte(wasmcodec.OpI32Const))
	wasmcodec.PutVarint(&buf, 0)
	buf.WriteByte(byte(wasmcodec.OpEnd))
	wasmcodec.PutUvarint(&buf, uint64(len(b.tableFuncs)))
	for _, idx := range b.tableFuncs {
		wasmcodec.PutUvarint(&buf, uint64(idx))
	}
	return buf.Bytes()
}

func (b *ModuleBuilder) encodeCodeSection() []byte {
	var buf bytes.Buffer
	wasmcodec.PutUvarint(&buf, uint64(len(b.code)))
	for _, body := range b.code {
		wasmcodec.PutUvarint(&buf, uint64(len(body)))
		buf.Write(body)
	}
	return buf.Bytes()
}

func (b *ModuleBuilder) encodeDataSection() []byte {
	var buf bytes.Buffer
	wasmcodec.PutUvarint(&buf, uint64(len(b.dataSegments)))
	for _, seg := range b.dataSegments {
		wasmcodec.PutUvarint(&buf, 0) // active, memory 0
		buf.WriteByte(byte(wasmcodec.OpI32Const))
		wasmcodec.PutVarint(&buf, int64(seg.offset))
		buf.WriteByte(byte(wasmcodec.OpEnd))
		wasmcodec.PutUvarint(&buf, uint64(len(seg.bytes)))
		buf.Write(seg.bytes)
	}
	return buf.Bytes()
}
