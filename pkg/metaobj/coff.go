package metaobj

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	coffMachineAmd64 = 0x8664
	coffMachineArm64 = 0xaa64

	// IMAGE_SCN_CNT_INITIALIZED_DATA | IMAGE_SCN_MEM_READ
	coffDataSection = 0x00000040 | 0x40000000
)

// writeCOFF emits a relocatable COFF object with .chicxmeta and
// .chicxreflect sections. Both section names and the __chic_metadata
// symbol name exceed COFF's 8-byte inline limit, so all three live in the
// string table and are referenced by "/offset".
func writeCOFF(meta, reflect []byte, machine uint16) []byte {
	const (
		headerSize  = 20
		sectionSize = 40
		symbolSize  = 18
	)

	// String table layout: 4-byte length prefix, then the names.
	var strtab bytes.Buffer
	binary.Write(&strtab, binary.LittleEndian, uint32(0)) // patched below
	metaNameOff := strtab.Len()
	strtab.WriteString(".chicxmeta")
	strtab.WriteByte(0)
	reflectNameOff := strtab.Len()
	strtab.WriteString(".chicxreflect")
	strtab.WriteByte(0)
	symNameOff := strtab.Len()
	strtab.WriteString("__chic_metadata")
	strtab.WriteByte(0)
	strBytes := strtab.Bytes()
	binary.LittleEndian.PutUint32(strBytes[:4], uint32(len(strBytes)))

	dataOff := headerSize + 2*sectionSize
	metaOff := dataOff
	reflectOff := metaOff + len(meta)
	symOff := reflectOff + len(reflect)

	var out bytes.Buffer
	le := binary.LittleEndian
	binary.Write(&out, le, machine)
	binary.Write(&out, le, uint16(2)) // NumberOfSections
	binary.Write(&out, le, uint32(0)) // TimeDateStamp: zeroed for determinism
	binary.Write(&out, le, uint32(symOff))
	binary.Write(&out, le, uint32(1)) // NumberOfSymbols
	binary.Write(&out, le, uint16(0)) // SizeOfOptionalHeader
	binary.Write(&out, le, uint16(0)) // Characteristics

	writeCOFFSection(&out, metaNameOff, len(meta), metaOff)
	writeCOFFSection(&out, reflectNameOff, len(reflect), reflectOff)

	out.Write(meta)
	out.Write(reflect)

	// Symbol: __chic_metadata at offset 0 of section 1, external. A name
	// longer than 8 bytes is encoded as four zero bytes plus its string
	// table offset.
	binary.Write(&out, le, uint32(0))
	binary.Write(&out, le, uint32(symNameOff))
	binary.Write(&out, le, uint32(0))  // Value
	binary.Write(&out, le, uint16(1))  // SectionNumber
	binary.Write(&out, le, uint16(0))  // Type
	out.WriteByte(2)                   // StorageClass: IMAGE_SYM_CLASS_EXTERNAL
	out.WriteByte(0)                   // NumberOfAuxSymbols

	out.Write(strBytes)
	return out.Bytes()
}

func writeCOFFSection(out *bytes.Buffer, nameOff, size, fileOff int) {
	le := binary.LittleEndian
	copy8 := fmt.Sprintf("/%d", nameOff)
	var name [8]byte
	copy(name[:], copy8)
	out.Write(name[:])
	binary.Write(out, le, uint32(0)) // VirtualSize
	binary.Write(out, le, uint32(0)) // VirtualAddress
	binary.Write(out, le, uint32(size))
	binary.Write(out, le, uint32(fileOff))
	binary.Write(out, le, uint32(0)) // PointerToRelocations
	binary.Write(out, le, uint32(0)) // PointerToLinenumbers
	binary.Write(out, le, uint16(0)) // NumberOfRelocations
	binary.Write(out, le, uint16(0)) // NumberOfLinenumbers
	binary.Write(out, le, uint32(coffDataSection))
}
