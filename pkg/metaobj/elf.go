package metaobj

import (
	"bytes"
	"encoding/binary"
)

// writeELF emits a minimal ET_REL object: .chic.meta and .chic.reflect
// progbits sections plus a symbol table defining __chic_metadata over the
// whole metadata payload.
func writeELF(meta, reflect []byte, machine uint16) []byte {
	const (
		ehSize      = 64
		shentSize   = 64
		symSize     = 24
		shnum       = 6 // null, .chic.meta, .chic.reflect, .symtab, .strtab, .shstrtab
	)

	shstrtab := buildStrtab([]string{".chic.meta", ".chic.reflect", ".symtab", ".strtab", ".shstrtab"})
	strtab := buildStrtab([]string{"__chic_metadata"})

	// Symbol table: null symbol + __chic_metadata (GLOBAL OBJECT in section 1).
	var symtab bytes.Buffer
	symtab.Write(make([]byte, symSize))
	binary.Write(&symtab, binary.LittleEndian, uint32(strtab.offsets["__chic_metadata"]))
	symtab.WriteByte(0x11) // st_info: STB_GLOBAL<<4 | STT_OBJECT
	symtab.WriteByte(0)    // st_other
	binary.Write(&symtab, binary.LittleEndian, uint16(1)) // st_shndx: .chic.meta
	binary.Write(&symtab, binary.LittleEndian, uint64(0)) // st_value
	binary.Write(&symtab, binary.LittleEndian, uint64(len(meta)))

	type section struct {
		name      string
		typ       uint32
		data      []byte
		link      uint32
		info      uint32
		addralign uint64
		entsize   uint64
	}
	sections := []section{
		{},
		{name: ".chic.meta", typ: 1 /* PROGBITS */, data: meta, addralign: 1},
		{name: ".chic.reflect", typ: 1, data: reflect, addralign: 1},
		{name: ".symtab", typ: 2 /* SYMTAB */, data: symtab.Bytes(), link: 4, info: 1, addralign: 8, entsize: symSize},
		{name: ".strtab", typ: 3 /* STRTAB */, data: strtab.bytes, addralign: 1},
		{name: ".shstrtab", typ: 3, data: shstrtab.bytes, addralign: 1},
	}

	// Lay data out after the ELF header, section headers after the data.
	offset := uint64(ehSize)
	offsets := make([]uint64, len(sections))
	for i := 1; i < len(sections); i++ {
		offset = alignUp(offset, 8)
		offsets[i] = offset
		offset += uint64(len(sections[i].data))
	}
	shoff := alignUp(offset, 8)

	var out bytes.Buffer
	out.Write([]byte{0x7f, 'E', 'L', 'F', 2 /* 64-bit */, 1 /* little */, 1 /* version */, 0})
	out.Write(make([]byte, 8))
	binary.Write(&out, binary.LittleEndian, uint16(1)) // e_type: ET_REL
	binary.Write(&out, binary.LittleEndian, machine)
	binary.Write(&out, binary.LittleEndian, uint32(1)) // e_version
	binary.Write(&out, binary.LittleEndian, uint64(0)) // e_entry
	binary.Write(&out, binary.LittleEndian, uint64(0)) // e_phoff
	binary.Write(&out, binary.LittleEndian, shoff)
	binary.Write(&out, binary.LittleEndian, uint32(0))        // e_flags
	binary.Write(&out, binary.LittleEndian, uint16(ehSize))   // e_ehsize
	binary.Write(&out, binary.LittleEndian, uint16(0))        // e_phentsize
	binary.Write(&out, binary.LittleEndian, uint16(0))        // e_phnum
	binary.Write(&out, binary.LittleEndian, uint16(shentSize))
	binary.Write(&out, binary.LittleEndian, uint16(shnum))
	binary.Write(&out, binary.LittleEndian, uint16(5)) // e_shstrndx

	for i := 1; i < len(sections); i++ {
		padTo(&out, int(offsets[i]))
		out.Write(sections[i].data)
	}
	padTo(&out, int(shoff))
	for i, s := range sections {
		var nameOff uint32
		if s.name != "" {
			nameOff = uint32(shstrtab.offsets[s.name])
		}
		binary.Write(&out, binary.LittleEndian, nameOff)
		binary.Write(&out, binary.LittleEndian, s.typ)
		binary.Write(&out, binary.LittleEndian, uint64(0)) // sh_flags
		binary.Write(&out, binary.LittleEndian, uint64(0)) // sh_addr
		binary.Write(&out, binary.LittleEndian, offsets[i])
		binary.Write(&out, binary.LittleEndian, uint64(len(s.data)))
		binary.Write(&out, binary.LittleEndian, s.link)
		binary.Write(&out, binary.LittleEndian, s.info)
		binary.Write(&out, binary.LittleEndian, s.addralign)
		binary.Write(&out, binary.LittleEndian, s.entsize)
	}
	return out.Bytes()
}

type strtab struct {
	bytes   []byte
	offsets map[string]int
}

func buildStrtab(names []string) strtab {
	t := strtab{bytes: []byte{0}, offsets: make(map[string]int)}
	for _, n := range names {
		t.offsets[n] = len(t.bytes)
		t.bytes = append(t.bytes, n...)
		t.bytes = append(t.bytes, 0)
	}
	return t
}

func alignUp(v, a uint64) uint64 {
	return (v + a - 1) &^ (a - 1)
}

func padTo(out *bytes.Buffer, target int) {
	for out.Len() < target {
		out.WriteByte(0)
	}
}
