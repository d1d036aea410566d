// Package compress implements the BLAKE3 compression function and the deferred-compression nodes that the chunk
// processor, the tree reducer, and the output expander exchange.
//
// All arithmetic is wrapping 32-bit and all byte/word conversions are little-endian.
package compress

import (
	"encoding/binary"
	"math/bits"
)

const (
	// BlockSize is the size of a compression block in bytes.
	BlockSize = 64

	// ChunkSize is the size of a leaf chunk in bytes.
	ChunkSize = 1024

	// KeySize is the size of a key (and of a chaining value) in bytes.
	KeySize = 32

	// OutSize is the default output size in bytes.
	OutSize = 32
)

// Domain separation flags.
const (
	ChunkStart uint32 = 1 << iota
	ChunkEnd
	Parent
	Root
	KeyedHash
	DeriveKeyContext
	DeriveKeyMaterial
)

// IV is the initial chaining value for unkeyed hashing and for the derive-key context stage.
var IV = [8]uint32{ //nolint:gochecknoglobals // constant
	0x6A09E667, 0xBB67AE85, 0x3C6EF372, 0xA54FF53A,
	0x510E527F, 0x9B05688C, 0x1F83D9AB, 0x5BE0CD19,
}

// schedule holds the message word order for each of the seven rounds.
var schedule = [7][16]uint8{ //nolint:gochecknoglobals // constant
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{2, 6, 3, 10, 7, 0, 4, 13, 1, 11, 12, 5, 9, 14, 15, 8},
	{3, 4, 10, 12, 13, 2, 7, 14, 6, 5, 9, 0, 11, 15, 8, 1},
	{10, 7, 12, 9, 14, 3, 13, 15, 4, 0, 11, 2, 5, 8, 1, 6},
	{12, 13, 9, 11, 15, 10, 14, 8, 7, 2, 5, 3, 0, 1, 6, 4},
	{9, 14, 11, 5, 8, 12, 15, 1, 13, 3, 0, 10, 2, 6, 4, 7},
	{11, 15, 5, 0, 1, 9, 8, 6, 14, 10, 2, 12, 3, 4, 7, 13},
}

// Compress applies the compression function to a chaining value and a message block, returning the full 16-word
// state. The first eight words are the next chaining value; all sixteen are extended output for root nodes.
func Compress(cv *[8]uint32, block *[16]uint32, counter uint64, blockLen, flags uint32) [16]uint32 {
	s := [16]uint32{
		cv[0], cv[1], cv[2], cv[3],
		cv[4], cv[5], cv[6], cv[7],
		IV[0], IV[1], IV[2], IV[3],
		uint32(counter), uint32(counter >> 32), blockLen, flags,
	}

	for r := range schedule {
		m := &schedule[r]

		// columns
		s[0], s[4], s[8], s[12] = g(s[0], s[4], s[8], s[12], block[m[0]], block[m[1]])
		s[1], s[5], s[9], s[13] = g(s[1], s[5], s[9], s[13], block[m[2]], block[m[3]])
		s[2], s[6], s[10], s[14] = g(s[2], s[6], s[10], s[14], block[m[4]], block[m[5]])
		s[3], s[7], s[11], s[15] = g(s[3], s[7], s[11], s[15], block[m[6]], block[m[7]])

		// diagonals
		s[0], s[5], s[10], s[15] = g(s[0], s[5], s[10], s[15], block[m[8]], block[m[9]])
		s[1], s[6], s[11], s[12] = g(s[1], s[6], s[11], s[12], block[m[10]], block[m[11]])
		s[2], s[7], s[8], s[13] = g(s[2], s[7], s[8], s[13], block[m[12]], block[m[13]])
		s[3], s[4], s[9], s[14] = g(s[3], s[4], s[9], s[14], block[m[14]], block[m[15]])
	}

	for i := range 8 {
		s[i] ^= s[i+8]
		s[i+8] ^= cv[i]
	}
	return s
}

func g(a, b, c, d, mx, my uint32) (uint32, uint32, uint32, uint32) {
	a += b + mx
	d = bits.RotateLeft32(d^a, -16)
	c += d
	b = bits.RotateLeft32(b^c, -12)
	a += b + my
	d = bits.RotateLeft32(d^a, -8)
	c += d
	b = bits.RotateLeft32(b^c, -7)
	return a, b, c, d
}

// BytesToWords loads a 64-byte block as sixteen little-endian words.
func BytesToWords(b *[BlockSize]byte) (words [16]uint32) {
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[4*i:])
	}
	return words
}

// WordsToBytes stores sixteen words as a 64-byte little-endian block.
func WordsToBytes(words *[16]uint32) (b [BlockSize]byte) {
	for i, w := range words {
		binary.LittleEndian.PutUint32(b[4*i:], w)
	}
	return b
}

// KeyWords loads a 32-byte key as eight little-endian words.
func KeyWords(key *[KeySize]byte) (words [8]uint32) {
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(key[4*i:])
	}
	return words
}

// CVBytes stores a chaining value as 32 little-endian bytes.
func CVBytes(cv *[8]uint32) (b [KeySize]byte) {
	for i, w := range cv {
		binary.LittleEndian.PutUint32(b[4*i:], w)
	}
	return b
}
