package wasmcodec

import (
	"bytes"
	"testing"
)

func TestUvarintRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 300, 16384, 1<<32 - 1, 1<<63 + 42} {
		var buf bytes.Buffer
		PutUvarint(&buf, v)
		got, n := Uvarint(buf.Bytes())
		if n != buf.Len() || got != v {
			t.Errorf("uvarint %d: got %d (consumed %d of %d)", v, got, n, buf.Len())
		}
	}
}

func TestVarintRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 63, 64, -64, -65, 127, 128, -12345, 1 << 40, -(1 << 40)} {
		var buf bytes.Buffer
		PutVarint(&buf, v)
		got, n := Varint(buf.Bytes())
		if n != buf.Len() || got != v {
			t.Errorf("varint %d: got %d (consumed %d of %d)", v, got, n, buf.Len())
		}
	}
}

func TestUvarintMalformed(t *testing.T) {
	if _, n := Uvarint([]byte{0x80, 0x80}); n != 0 {
		t.Error("unterminated uvarint must report n == 0")
	}
	if _, n := Varint([]byte{0xff}); n != 0 {
		t.Error("unterminated varint must report n == 0")
	}
}

func TestFuncTypeEqual(t *testing.T) {
	a := FuncType{Params: []ValueType{ValI32, ValI64}, Results: []ValueType{ValI32}}
	b := FuncType{Params: []ValueType{ValI32, ValI64}, Results: []ValueType{ValI32}}
	c := FuncType{Params: []ValueType{ValI32}, Results: []ValueType{ValI32}}
	if !a.Equal(b) || a.Equal(c) {
		t.Error("FuncType.Equal mismatch")
	}
}
