package metaobj

import (
	"bytes"
	"debug/elf"
	"debug/macho"
	"debug/pe"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Chic-lang/Chic-sub010/pkg/mir"
)

func metaModule() *mir.MirModule {
	cpu := 12.5
	table := mir.NewTypeLayoutTable(64)
	table.Structs["Interop::Point"] = &mir.StructLayout{
		Name: "Interop::Point",
		Fields: []mir.FieldLayout{
			{Name: "x", Index: 0, Offset: 0, Ty: mir.TyNamed{Name: "int"}, Size: 4, Align: 4},
			{Name: "y", Index: 1, Offset: 4, Ty: mir.TyNamed{Name: "int"}, Size: 4, Align: 4},
		},
		Size: 8, Align: 4,
	}
	return &mir.MirModule{
		Name:    "Interop",
		Layouts: table,
		Functions: []*mir.MirFunction{
			{
				Name:       "Interop::Add",
				Doc:        "Adds two numbers.\nWraps on overflow.",
				InlineMode: "cross",
				Sig:        mir.Signature{Ret: mir.TyNamed{Name: "int"}},
				LendsReturn: []string{"a"},
				DefaultArgs: []mir.DefaultArg{{Param: "b", Index: 1, Const: "0"}},
			},
			{
				Name:   "Interop::Raw",
				Extern: &mir.ExternBinding{Convention: "c", Binding: "static", Library: "m"},
			},
		},
		Exports: []*mir.ExportRecord{{Symbol: "Interop::Add", Category: mir.ExportFunction}},
		Perf: &mir.PerfMetadata{
			Tracepoints: []mir.Tracepoint{{Function: "Interop::Add", Label: "hot-path", TraceId: 42, Level: mir.TraceLevelPerf}},
			Costs:       []mir.CostModel{{Function: "Interop::Add", CpuUs: &cpu}},
		},
	}
}

// TestMetadataPayload covers §4.5's line format and §8 property 10's
// null terminator.
func TestMetadataPayload(t *testing.T) {
	in := Input{
		Module:          metaModule(),
		TargetRequested: "arm64-apple-macosx15.0",
		TargetCanonical: "arm64-apple-macosx15.0",
		Kind:            KindStaticLibrary,
		Docs:            map[string]string{"Interop": "Interop namespace."},
	}
	payload := BuildMetadata(in, NewCaches())
	if payload[len(payload)-1] != 0 {
		t.Fatal("payload must be null-terminated")
	}
	text := string(payload[:len(payload)-1])
	for _, want := range []string{
		"Chic Metadata\n",
		"target-requested=arm64-apple-macosx15.0",
		"kind=static-library",
		"doc:Interop=Interop namespace.",
		"doc:Interop::Add=Adds two numbers.\\nWraps on overflow.",
		"inline:Interop::Add=cross",
		"profile=std",
		"export:Interop::Add=Interop__Add",
		"extern:Interop::Raw=convention=c;binding=static;library=m;",
		"lends_return:Interop::Add=a",
		"default_arg:Interop::Add#1=b|const:0",
		"trace:Interop::Add=id=42;label=hot-path;level=perf",
		"cost:Interop::Add=cpu_us=12.5;trace_id=42;trace_label=hot-path",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("payload missing %q", want)
		}
	}
}

func TestReflectTables(t *testing.T) {
	data, err := BuildReflect(metaModule(), NewCaches())
	if err != nil {
		t.Fatal(err)
	}
	var tables ReflectTables
	if err := json.Unmarshal(data, &tables); err != nil {
		t.Fatal(err)
	}
	if tables.Version != 2 {
		t.Errorf("version: %d, want 2", tables.Version)
	}
	if len(tables.Types) != 1 || tables.Types[0].Name != "Interop::Point" {
		t.Fatalf("types: %+v", tables.Types)
	}
	if len(tables.Types[0].Members) != 2 || tables.Types[0].Members[1].Offset != 4 {
		t.Errorf("members: %+v", tables.Types[0].Members)
	}
}

// TestELFObject validates the ELF container with the standard library's
// read-only parser: section names and the __chic_metadata symbol whose
// size equals the payload length including the terminator.
func TestELFObject(t *testing.T) {
	in := Input{Module: metaModule(), TargetRequested: "x86_64-unknown-linux-gnu",
		TargetCanonical: "x86_64-unknown-linux-gnu", Kind: KindStaticLibrary}
	obj, err := Build(in, nil)
	if err != nil {
		t.Fatal(err)
	}
	if obj.Format != "elf" {
		t.Fatalf("format: %s", obj.Format)
	}
	f, err := elf.NewFile(bytes.NewReader(obj.Bytes))
	if err != nil {
		t.Fatal(err)
	}
	meta := f.Section(".chic.meta")
	if meta == nil {
		t.Fatal("no .chic.meta section")
	}
	raw, err := meta.Data()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(raw, obj.Metadata) {
		t.Error(".chic.meta bytes differ from payload")
	}
	if f.Section(".chic.reflect") == nil {
		t.Fatal("no .chic.reflect section")
	}
	syms, err := f.Symbols()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, s := range syms {
		if s.Name == "__chic_metadata" {
			found = true
			if int(s.Size) != len(obj.Metadata) {
				t.Errorf("symbol size %d, payload %d", s.Size, len(obj.Metadata))
			}
		}
	}
	if !found {
		t.Error("__chic_metadata symbol missing")
	}
}

// TestMachOObject validates the Mach-O container and the LC_BUILD_VERSION
// platform/version constants (§4.5).
func TestMachOObject(t *testing.T) {
	in := Input{Module: metaModule(), TargetRequested: "arm64-apple-macosx15.0",
		TargetCanonical: "arm64-apple-macosx15.0", Kind: KindDynamicLibrary}
	obj, err := Build(in, nil)
	if err != nil {
		t.Fatal(err)
	}
	if obj.Format != "macho" {
		t.Fatalf("format: %s", obj.Format)
	}
	f, err := macho.NewFile(bytes.NewReader(obj.Bytes))
	if err != nil {
		t.Fatal(err)
	}
	if f.Section("__chxmeta") == nil || f.Section("__chxreflect") == nil {
		t.Fatal("missing __chxmeta/__chxreflect sections")
	}
	raw, err := f.Section("__chxmeta").Data()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(raw, obj.Metadata) {
		t.Error("__chxmeta bytes differ from payload")
	}
	// LC_BUILD_VERSION is not decoded by debug/macho; check the raw bytes
	// for cmd 0x32 with platform 1 and version 0x000B0000.
	want := []byte{0x32, 0, 0, 0, 24, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0x0b, 0, 0, 0, 0x0b, 0}
	if !bytes.Contains(obj.Bytes, want) {
		t.Error("LC_BUILD_VERSION command bytes not found")
	}
	if f.Symtab == nil || len(f.Symtab.Syms) != 1 || f.Symtab.Syms[0].Name != "__chic_metadata" {
		t.Error("__chic_metadata symbol missing from symtab")
	}
}

// TestCOFFObject validates the COFF container via debug/pe.
func TestCOFFObject(t *testing.T) {
	in := Input{Module: metaModule(), TargetRequested: "x86_64-pc-windows-msvc",
		TargetCanonical: "x86_64-pc-windows-msvc", Kind: KindStaticLibrary}
	obj, err := Build(in, nil)
	if err != nil {
		t.Fatal(err)
	}
	if obj.Format != "coff" {
		t.Fatalf("format: %s", obj.Format)
	}
	f, err := pe.NewFile(bytes.NewReader(obj.Bytes))
	if err != nil {
		t.Fatal(err)
	}
	if f.Section(".chicxmeta") == nil || f.Section(".chicxreflect") == nil {
		t.Fatal("missing .chicxmeta/.chicxreflect sections")
	}
	found := false
	for _, s := range f.Symbols {
		if s.Name == "__chic_metadata" {
			found = true
		}
	}
	if !found {
		t.Error("__chic_metadata symbol missing")
	}
}

func TestCachesReportHitsAndMisses(t *testing.T) {
	caches := NewCaches()
	in := Input{Module: metaModule(), TargetRequested: "x86_64-unknown-linux-gnu",
		TargetCanonical: "x86_64-unknown-linux-gnu", Kind: KindStaticLibrary}
	BuildMetadata(in, caches)
	misses := caches.Misses
	if misses == 0 {
		t.Fatal("first build must miss")
	}
	BuildMetadata(in, caches)
	if caches.Hits < misses {
		t.Errorf("second build: hits %d < first-build misses %d", caches.Hits, misses)
	}
	if caches.Misses != misses {
		t.Errorf("second build added misses: %d -> %d", misses, caches.Misses)
	}
}
