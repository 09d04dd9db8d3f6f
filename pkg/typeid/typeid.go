// Package typeid computes the BLAKE3-derived 64-bit identities used across
// the code-generation core: tracepoint ids (§3), thrown-exception type
// identities (§4.2, §4.4), and .clrlib archive file hashes (§4.6).
package typeid

import "lukechampine.com/blake3"

// Identity returns the first 8 bytes of BLAKE3(name), big-endian, folded
// into a uint64. This is the one construction every wire-visible hash in
// the spec shares, so it lives in one place rather than being re-derived
// per backend.
func Identity(name string) uint64 {
	sum := blake3.Sum256([]byte(name))
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(sum[i])
	}
	return v
}

// FileHash returns the full 32-byte BLAKE3 digest of a file's payload, the
// hash §4.6's manifest records per archived file and §8 property 9 checks.
func FileHash(payload []byte) [32]byte {
	return blake3.Sum256(payload)
}
