package typeid

import "testing"

func TestIdentityIsStableAndDistinct(t *testing.T) {
	a := Identity("Demo::Error")
	if a != Identity("Demo::Error") {
		t.Fatal("identity must be deterministic")
	}
	if a == Identity("Demo::Error2") || a == Identity("demo::error") {
		t.Error("distinct names should not collide on these inputs")
	}
	if a == 0 {
		t.Error("identity of a nonempty name should not be zero")
	}
}

func TestFileHashMatchesIdentityPrefix(t *testing.T) {
	// Identity is the big-endian fold of the digest's first 8 bytes.
	name := "Interop::Add||hot-path"
	sum := FileHash([]byte(name))
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(sum[i])
	}
	if v != Identity(name) {
		t.Error("Identity must agree with FileHash's leading bytes")
	}
}
