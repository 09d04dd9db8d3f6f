package metaobj

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Object is the finished metadata object plus the payloads it carries,
// kept so callers (the .clrlib packer, tests) can reuse the bytes without
// re-parsing the container.
type Object struct {
	Bytes    []byte
	Metadata []byte
	Reflect  []byte
	Format   string // "macho" | "elf" | "coff"
}

// Build renders both section payloads and wraps them in the container the
// target triple calls for.
func Build(in Input, caches *Caches) (*Object, error) {
	if caches == nil {
		caches = NewCaches()
	}
	meta := BuildMetadata(in, caches)
	reflect, err := BuildReflect(in.Module, caches)
	if err != nil {
		return nil, fmt.Errorf("metaobj: reflect tables: %w", err)
	}

	triple := in.TargetCanonical
	if triple == "" {
		triple = in.TargetRequested
	}
	obj := &Object{Metadata: meta, Reflect: reflect}
	switch {
	case strings.Contains(triple, "apple") || strings.Contains(triple, "darwin") || strings.Contains(triple, "macos"):
		obj.Format = "macho"
		cpu := uint32(machoCPUX86_64)
		if strings.Contains(triple, "arm64") || strings.Contains(triple, "aarch64") {
			cpu = machoCPUArm64
		}
		obj.Bytes = writeMachO(meta, reflect, cpu)
	case strings.Contains(triple, "windows") || strings.Contains(triple, "msvc") || strings.Contains(triple, "mingw"):
		obj.Format = "coff"
		machine := uint16(coffMachineAmd64)
		if strings.Contains(triple, "arm64") || strings.Contains(triple, "aarch64") {
			machine = coffMachineArm64
		}
		obj.Bytes = writeCOFF(meta, reflect, machine)
	default:
		obj.Format = "elf"
		machine := uint16(62) // EM_X86_64
		if strings.Contains(triple, "arm64") || strings.Contains(triple, "aarch64") {
			machine = 183 // EM_AARCH64
		}
		obj.Bytes = writeELF(meta, reflect, machine)
	}
	return obj, nil
}

// WriteFile builds the object and writes it to path, creating parent
// directories and deleting the partial file on error (§7).
func WriteFile(path string, in Input, caches *Caches) (*Object, error) {
	obj, err := Build(in, caches)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, obj.Bytes, 0o644); err != nil {
		os.Remove(path)
		return nil, err
	}
	return obj, nil
}
