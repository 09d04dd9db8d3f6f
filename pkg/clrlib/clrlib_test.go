package clrlib

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"

	"github.com/Chic-lang/Chic-sub010/pkg/mir"
)

func interopArchive(t *testing.T) ([]byte, *Manifest) {
	t.Helper()
	mod := &mir.MirModule{
		Name: "Interop",
		Exports: []*mir.ExportRecord{
			{Symbol: "Interop::Add", Category: mir.ExportFunction},
			{Symbol: "Interop::Point", Category: mir.ExportStruct},
		},
	}
	manifest := &Manifest{
		Target:    "arm64-apple-macosx15.0",
		Kind:      "static-library",
		Namespace: "Interop",
		Exports:   ExportsFromModule(mod),
	}
	members := []Member{
		{Name: "interop.o", Role: RoleObject, Payload: []byte{0x7f, 'E', 'L', 'F', 1, 2, 3}},
		{Name: "interop.metadata.o", Role: RoleMetadata, Payload: []byte("Chic Metadata\x00")},
		{Name: "interop.ll", Role: RoleLlvmIr, Payload: []byte("define i32 @Interop__Add()\n")},
	}
	var buf bytes.Buffer
	if err := Write(&buf, manifest, members); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes(), manifest
}

// TestArchiveRoundTrip covers scenario S5: magic, version, the two export
// records, three files, and a manifest that re-serializes byte-for-byte.
func TestArchiveRoundTrip(t *testing.T) {
	data, _ := interopArchive(t)

	if !bytes.Equal(data[:8], Magic[:]) {
		t.Fatalf("magic: %q", data[:8])
	}
	if v := binary.LittleEndian.Uint32(data[8:12]); v != 2 {
		t.Fatalf("version: %d, want 2", v)
	}

	arch, err := Read(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(arch.Members) != 3 {
		t.Fatalf("members: %d, want 3", len(arch.Members))
	}
	if len(arch.Manifest.Files) != 3 {
		t.Fatalf("manifest files: %d, want 3", len(arch.Manifest.Files))
	}
	wantExports := map[string]string{"Interop::Add": "Function", "Interop::Point": "Struct"}
	if len(arch.Manifest.Exports) != len(wantExports) {
		t.Fatalf("exports: %v", arch.Manifest.Exports)
	}
	for _, e := range arch.Manifest.Exports {
		if wantExports[e.Name] != e.Kind {
			t.Errorf("export %s: kind %s", e.Name, e.Kind)
		}
	}

	// Round-trip law: re-serializing the parsed manifest at the canonical
	// pretty-print settings reproduces the stored bytes exactly.
	again, err := MarshalManifest(&arch.Manifest)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(again, arch.ManifestJSON) {
		t.Errorf("manifest re-serialization differs:\n%s\n--\n%s", arch.ManifestJSON, again)
	}
}

// TestArchiveHashes covers §8 property 9: recorded BLAKE3 hashes match the
// stored payload bytes, and tampering is detected.
func TestArchiveHashes(t *testing.T) {
	data, _ := interopArchive(t)
	arch, err := Read(data)
	if err != nil {
		t.Fatal(err)
	}
	if err := arch.Verify(); err != nil {
		t.Fatal(err)
	}

	arch.Members[0].Payload[0] ^= 0xff
	if err := arch.Verify(); err == nil {
		t.Fatal("expected hash mismatch after tampering")
	}
}

func TestReadRejectsTruncation(t *testing.T) {
	data, _ := interopArchive(t)
	if _, err := Read(data[:20]); err == nil {
		t.Error("truncated manifest must fail")
	}
	if _, err := Read(data[:len(data)-3]); err == nil {
		t.Error("truncated payload must fail")
	}
	bad := append([]byte(nil), data...)
	bad[0] = 'X'
	if _, err := Read(bad); err == nil {
		t.Error("bad magic must fail")
	}
}

func TestWriteFileDeletesPartialOnFailure(t *testing.T) {
	dir := t.TempDir()
	if _, err := Read(nil); err == nil {
		t.Error("nil archive must fail")
	}
	if err := WriteFile(dir+"/lib.clrlib", &Manifest{}, nil); err != nil {
		t.Fatalf("plain write: %v", err)
	}
	arch, err := ReadFile(dir + "/lib.clrlib")
	if err != nil {
		t.Fatal(err)
	}
	if arch.Manifest.Version != 2 {
		t.Errorf("version: %d", arch.Manifest.Version)
	}
	// Writing into a path whose parent is a file forces a failure.
	blocker := dir + "/blocker"
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(blocker+"/lib.clrlib", &Manifest{}, nil); err == nil {
		t.Error("write under a regular file must fail")
	}
	if _, err := os.Stat(blocker + "/lib.clrlib"); err == nil {
		t.Error("failed write left a file behind")
	}
}
