// Package clrlib reads and writes the versioned library archive format
// (§4.6): a magic+version header, a pretty-printed JSON manifest, then the
// payload members, with every recorded file carrying a BLAKE3 hash of its
// stored bytes (§8 property 9).
package clrlib

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Chic-lang/Chic-sub010/pkg/typeid"
)

// Magic is the 8-byte archive signature "CLRLIB\0\0".
var Magic = [8]byte{'C', 'L', 'R', 'L', 'I', 'B', 0, 0}

// Version is the current archive format version.
const Version uint32 = 2

// FileRole tags what a payload member holds.
type FileRole string

const (
	RoleObject   FileRole = "Object"
	RoleMetadata FileRole = "Metadata"
	RoleLlvmIr   FileRole = "LlvmIr"
	RoleOther    FileRole = "Other"
)

// FileEntry is one manifest file record: name, byte size, the BLAKE3 hex
// hash of the stored payload, and its role.
type FileEntry struct {
	Name string   `json:"name"`
	Size uint64   `json:"size"`
	Hash string   `json:"hash"`
	Role FileRole `json:"role"`
}

// ExportEntry is one public symbol the library exposes.
type ExportEntry struct {
	Name string `json:"name"`
	Kind string `json:"kind"` // Function | Struct | Union | Enum | Class | Interface | Extension
}

// TypeAlias records a `using Alias = Target` visible to consumers.
type TypeAlias struct {
	Alias  string `json:"alias"`
	Target string `json:"target"`
}

// Dependency is one `using` edge of the library.
type Dependency struct {
	Kind   string `json:"kind"` // namespace | alias | static | c_import
	Target string `json:"target"`
	Alias  string `json:"alias,omitempty"`
}

// VTableSlot summarizes one class vtable entry for consumers that need to
// lay out compatible objects without the defining source.
type VTableSlot struct {
	Index    int    `json:"index"`
	Member   string `json:"member"`
	Accessor string `json:"accessor,omitempty"`
	Symbol   string `json:"symbol"`
}

// VTableSummary is one class's dispatch-table description.
type VTableSummary struct {
	Name    string       `json:"name"`
	Symbol  string       `json:"symbol"`
	Version uint64       `json:"version"`
	Slots   []VTableSlot `json:"slots"`
}

// Manifest is the archive's JSON descriptor.
type Manifest struct {
	Version      uint32          `json:"version"`
	Target       string          `json:"target"`
	Kind         string          `json:"kind"` // static-library | dynamic-library | executable
	Namespace    string          `json:"namespace,omitempty"`
	Exports      []ExportEntry   `json:"exports"`
	TypeAliases  []TypeAlias     `json:"type_aliases,omitempty"`
	Dependencies []Dependency    `json:"dependencies,omitempty"`
	Files        []FileEntry     `json:"files"`
	VTables      []VTableSummary `json:"vtables,omitempty"`
}

// Member is one payload carried by the archive.
type Member struct {
	Name    string
	Role    FileRole
	Payload []byte
}

// Archive is the parsed form of one .clrlib byte stream.
type Archive struct {
	Manifest     Manifest
	ManifestJSON []byte // exact stored bytes, for byte-for-byte round-trips
	Members      []Member
}

// MarshalManifest renders a manifest at the archive's canonical
// pretty-print settings; Write and the round-trip law (§8) both rely on
// this exact form.
func MarshalManifest(m *Manifest) ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// Write serializes an archive. The manifest's Files list is replaced with
// one entry per member, hashed over the exact payload bytes written.
func Write(w io.Writer, manifest *Manifest, members []Member) error {
	manifest.Version = Version
	manifest.Files = manifest.Files[:0]
	for _, m := range members {
		sum := typeid.FileHash(m.Payload)
		manifest.Files = append(manifest.Files, FileEntry{
			Name: m.Name,
			Size: uint64(len(m.Payload)),
			Hash: hex.EncodeToString(sum[:]),
			Role: m.Role,
		})
	}
	manifestJSON, err := MarshalManifest(manifest)
	if err != nil {
		return fmt.Errorf("clrlib: marshal manifest: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(Magic[:])
	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], Version)
	buf.Write(u32[:])
	binary.LittleEndian.PutUint32(u32[:], uint32(len(manifestJSON)))
	buf.Write(u32[:])
	buf.Write(manifestJSON)

	var u64 [8]byte
	for _, m := range members {
		binary.LittleEndian.PutUint32(u32[:], uint32(len(m.Name)))
		buf.Write(u32[:])
		binary.LittleEndian.PutUint64(u64[:], uint64(len(m.Payload)))
		buf.Write(u64[:])
		buf.WriteString(m.Name)
		buf.Write(m.Payload)
	}

	_, err = w.Write(buf.Bytes())
	return err
}

// WriteFile writes an archive to path, creating parent directories and
// deleting the partial file on failure (§7: archive writes that would
// produce partial files must delete them).
func WriteFile(path string, manifest *Manifest, members []Member) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, manifest, members); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

// Read parses an archive from its full byte contents.
func Read(data []byte) (*Archive, error) {
	if len(data) < 16 || !bytes.Equal(data[:8], Magic[:]) {
		return nil, fmt.Errorf("clrlib: bad magic")
	}
	version := binary.LittleEndian.Uint32(data[8:12])
	if version != Version {
		return nil, fmt.Errorf("clrlib: unsupported version %d", version)
	}
	manifestLen := int(binary.LittleEndian.Uint32(data[12:16]))
	if 16+manifestLen > len(data) {
		return nil, fmt.Errorf("clrlib: manifest length %d exceeds archive size", manifestLen)
	}
	manifestJSON := data[16 : 16+manifestLen]

	arch := &Archive{ManifestJSON: append([]byte(nil), manifestJSON...)}
	if err := json.Unmarshal(manifestJSON, &arch.Manifest); err != nil {
		return nil, fmt.Errorf("clrlib: manifest: %w", err)
	}

	roleByName := make(map[string]FileRole, len(arch.Manifest.Files))
	for _, f := range arch.Manifest.Files {
		roleByName[f.Name] = f.Role
	}

	pos := 16 + manifestLen
	for pos < len(data) {
		if pos+12 > len(data) {
			return nil, fmt.Errorf("clrlib: truncated member header at %d", pos)
		}
		nameLen := int(binary.LittleEndian.Uint32(data[pos : pos+4]))
		payloadLen := binary.LittleEndian.Uint64(data[pos+4 : pos+12])
		pos += 12
		if pos+nameLen > len(data) {
			return nil, fmt.Errorf("clrlib: truncated member name at %d", pos)
		}
		name := string(data[pos : pos+nameLen])
		pos += nameLen
		if uint64(pos)+payloadLen > uint64(len(data)) {
			return nil, fmt.Errorf("clrlib: truncated member payload for %q", name)
		}
		payload := append([]byte(nil), data[pos:pos+int(payloadLen)]...)
		pos += int(payloadLen)
		role := roleByName[name]
		if role == "" {
			role = RoleOther
		}
		arch.Members = append(arch.Members, Member{Name: name, Role: role, Payload: payload})
	}
	return arch, nil
}

// ReadFile reads and parses an archive from disk.
func ReadFile(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Read(data)
}

// Verify recomputes each member's BLAKE3 hash against the manifest's
// recorded value (§8 property 9).
func (a *Archive) Verify() error {
	recorded := make(map[string]string, len(a.Manifest.Files))
	for _, f := range a.Manifest.Files {
		recorded[f.Name] = f.Hash
	}
	for _, m := range a.Members {
		sum := typeid.FileHash(m.Payload)
		got := hex.EncodeToString(sum[:])
		want, ok := recorded[m.Name]
		if !ok {
			return fmt.Errorf("clrlib: member %q not recorded in manifest", m.Name)
		}
		if got != want {
			return fmt.Errorf("clrlib: hash mismatch for %q: recorded %s, stored %s", m.Name, want, got)
		}
	}
	return nil
}
