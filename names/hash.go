package names

import "hash/crc32"

const (
	fnvOffset64 = 0xCBF29CE484222325
	fnvPrime64  = 0x00000100000001B3
)

// CNameHash computes the FNV-1a 64 hash the engine uses for CName
// tokens.
func CNameHash(s string) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime64
	}
	return h
}

// TweakID computes a TweakDBID: the CRC32 of the name in the low 32
// bits, the byte length of the name in bits 32..39.
func TweakID(s string) uint64 {
	crc := crc32.ChecksumIEEE([]byte(s))
	return uint64(crc) | uint64(len(s)&0xFF)<<32
}
