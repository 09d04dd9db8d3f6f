// Package wasmcodec holds the WASM encoding primitives shared by the
// module builder (pkg/codegen/wasmgen) and the parser/executor
// (pkg/wasmvm): LEB128 varints, section framing, opcode tables, and
// value/func type tags. Hand-rolled per spec §1 ("no third-party
// encoder") rather than built on an existing WASM library.
package wasmcodec

import "bytes"

// PutUvarint appends an unsigned LEB128 encoding of v to buf.
func PutUvarint(buf *bytes.Buffer, v uint64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			buf.WriteByte(b | 0x80)
		} else {
			buf.WriteByte(b)
			return
		}
	}
}

// PutVarint appends a signed LEB128 encoding of v to buf.
func PutVarint(buf *bytes.Buffer, v int64) {
	more := true
	for more {
		b := byte(v & 0x7f)
		v >>= 7
		signBitSet := b&0x40 != 0
		if (v == 0 && !signBitSet) || (v == -1 && signBitSet) {
			more = false
		} else {
			b |= 0x80
		}
		buf.WriteByte(b)
	}
}

// Uvarint decodes an unsigned LEB128 varint starting at data[0], returning
// the value and the number of bytes consumed. n == 0 signals malformed
// input (unterminated varint).
func Uvarint(data []byte) (value uint64, n int) {
	var shift uint
	for i := 0; i < len(data); i++ {
		b := data[i]
		value |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return value, i + 1
		}
		shift += 7
		if shift >= 64 {
			return 0, 0
		}
	}
	return 0, 0
}

// Varint decodes a signed LEB128 varint starting at data[0].
func Varint(data []byte) (value int64, n int) {
	var result int64
	var shift uint
	var b byte
	i := 0
	for {
		if i >= len(data) {
			return 0, 0
		}
		b = data[i]
		result |= int64(b&0x7f) << shift
		shift += 7
		i++
		if b&0x80 == 0 {
			break
		}
	}
	if shift < 64 && b&0x40 != 0 {
		result |= -1 << shift
	}
	return result, i
}
