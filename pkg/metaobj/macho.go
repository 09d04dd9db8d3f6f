package metaobj

import (
	"bytes"
	"encoding/binary"
)

// Mach-O constants for the subset this writer emits.
const (
	machoMagic64      = 0xfeedfacf
	machoObjectFile   = 0x1  // MH_OBJECT
	machoSegment64    = 0x19 // LC_SEGMENT_64
	machoSymtab       = 0x2  // LC_SYMTAB
	machoBuildVersion = 0x32 // LC_BUILD_VERSION
	machoPlatformMac  = 1    // PLATFORM_MACOS

	// Minimum OS and SDK 11.0, encoded 0x000B_0000 (§4.5).
	machoVersion11 = 0x000B0000

	machoCPUArm64  = 0x0100000c
	machoCPUX86_64 = 0x01000007
)

// writeMachO emits an MH_OBJECT with __chxmeta and __chxreflect sections
// inside a __DATA segment, an LC_BUILD_VERSION command, and a symbol table
// exporting __chic_metadata.
func writeMachO(meta, reflect []byte, cputype uint32) []byte {
	const (
		headerSize  = 32
		segCmdSize  = 72 + 2*80 // segment command + two section headers
		buildSize   = 24
		symtabSize  = 24
		nlistSize   = 16
	)
	cmdsSize := segCmdSize + buildSize + symtabSize
	dataOff := headerSize + cmdsSize
	metaOff := dataOff
	reflectOff := metaOff + len(meta)
	symOff := reflectOff + len(reflect)
	strOff := symOff + nlistSize
	strtab := append([]byte{0}, append([]byte("__chic_metadata"), 0)...)

	var out bytes.Buffer
	le := binary.LittleEndian
	binary.Write(&out, le, uint32(machoMagic64))
	binary.Write(&out, le, cputype)
	binary.Write(&out, le, uint32(0)) // cpusubtype
	binary.Write(&out, le, uint32(machoObjectFile))
	binary.Write(&out, le, uint32(3)) // ncmds
	binary.Write(&out, le, uint32(cmdsSize))
	binary.Write(&out, le, uint32(0)) // flags
	binary.Write(&out, le, uint32(0)) // reserved

	// LC_SEGMENT_64 with both sections.
	binary.Write(&out, le, uint32(machoSegment64))
	binary.Write(&out, le, uint32(segCmdSize))
	out.Write(name16("__DATA"))
	binary.Write(&out, le, uint64(0))                      // vmaddr
	binary.Write(&out, le, uint64(len(meta)+len(reflect))) // vmsize
	binary.Write(&out, le, uint64(metaOff))
	binary.Write(&out, le, uint64(len(meta)+len(reflect)))
	binary.Write(&out, le, uint32(3)) // maxprot rw
	binary.Write(&out, le, uint32(3)) // initprot rw
	binary.Write(&out, le, uint32(2)) // nsects
	binary.Write(&out, le, uint32(0)) // flags

	writeMachOSection(&out, "__chxmeta", "__DATA", uint64(metaOff), uint64(len(meta)))
	writeMachOSection(&out, "__chxreflect", "__DATA", uint64(reflectOff), uint64(len(reflect)))

	// LC_BUILD_VERSION: macOS, min 11.0, SDK 11.0, no tools.
	binary.Write(&out, le, uint32(machoBuildVersion))
	binary.Write(&out, le, uint32(buildSize))
	binary.Write(&out, le, uint32(machoPlatformMac))
	binary.Write(&out, le, uint32(machoVersion11))
	binary.Write(&out, le, uint32(machoVersion11))
	binary.Write(&out, le, uint32(0)) // ntools

	// LC_SYMTAB.
	binary.Write(&out, le, uint32(machoSymtab))
	binary.Write(&out, le, uint32(symtabSize))
	binary.Write(&out, le, uint32(symOff))
	binary.Write(&out, le, uint32(1)) // nsyms
	binary.Write(&out, le, uint32(strOff))
	binary.Write(&out, le, uint32(len(strtab)))

	out.Write(meta)
	out.Write(reflect)

	// nlist_64 for __chic_metadata: external, defined in section 1.
	binary.Write(&out, le, uint32(1))  // n_strx
	out.WriteByte(0x0f)                // n_type: N_SECT | N_EXT
	out.WriteByte(1)                   // n_sect
	binary.Write(&out, le, uint16(0))  // n_desc
	binary.Write(&out, le, uint64(0))  // n_value

	out.Write(strtab)
	return out.Bytes()
}

func writeMachOSection(out *bytes.Buffer, sectname, segname string, offset, size uint64) {
	le := binary.LittleEndian
	out.Write(name16(sectname))
	out.Write(name16(segname))
	binary.Write(out, le, uint64(0)) // addr
	binary.Write(out, le, size)
	binary.Write(out, le, uint32(offset))
	binary.Write(out, le, uint32(0)) // align 2^0
	binary.Write(out, le, uint32(0)) // reloff
	binary.Write(out, le, uint32(0)) // nreloc
	binary.Write(out, le, uint32(0)) // flags
	binary.Write(out, le, uint32(0)) // reserved1
	binary.Write(out, le, uint32(0)) // reserved2
	binary.Write(out, le, uint32(0)) // reserved3
}

func name16(s string) []byte {
	var b [16]byte
	copy(b[:], s)
	return b[:]
}
