// Package blake3 implements the BLAKE3 cryptographic hash function.
//
// BLAKE3 hashes input as a binary tree of 1024-byte chunks, which allows large inputs to be hashed in parallel and
// produces an extendable output stream of up to 2^64 bytes which can be read from any offset. It supports three
// mutually exclusive modes: unkeyed hashing (New), keyed hashing (NewKeyed), and key derivation (NewDeriveKey).
package blake3

import (
	"errors"

	"github.com/codahale/blake3/internal/compress"
	"github.com/codahale/blake3/internal/parallel"
)

const (
	// Size is the default size, in bytes, of a BLAKE3 digest.
	Size = compress.OutSize

	// BlockSize is the size, in bytes, of a BLAKE3 compression block.
	BlockSize = compress.BlockSize

	// ChunkSize is the size, in bytes, of a BLAKE3 chunk, the leaf of the hash tree.
	ChunkSize = compress.ChunkSize

	// KeySize is the size, in bytes, of a BLAKE3 key.
	KeySize = compress.KeySize

	// Auto, as a thread count, uses one thread per usable logical core.
	Auto = parallel.Auto
)

var (
	// ErrKeySize is returned when a key is not KeySize bytes long.
	ErrKeySize = errors.New("blake3: invalid key size")

	// ErrKeyAndContext is returned when both a key and a key derivation context are configured.
	ErrKeyAndContext = errors.New("blake3: cannot use key and derive-key context at the same time")

	// ErrInvalidThreads is returned when a thread count is neither Auto nor non-negative.
	ErrInvalidThreads = parallel.ErrInvalidThreads

	// ErrOutputLength is returned when a negative output length is requested.
	ErrOutputLength = errors.New("blake3: negative output length")

	// ErrOutputOverflow is returned when requested output extends past the end of the 2^64-byte output stream.
	ErrOutputOverflow = errors.New("blake3: output overflows the 2^64-byte stream")

	// ErrNegativeSeek is returned when seeking to a negative position.
	ErrNegativeSeek = errors.New("blake3: negative seek position")

	// ErrInvalidWhence is returned when seeking with an unknown whence value.
	ErrInvalidWhence = errors.New("blake3: invalid whence")
)

// Sum256 returns the 32-byte BLAKE3 hash of data.
func Sum256(data []byte) [Size]byte {
	var h Hasher
	h.init(&compress.IV, 0, 1)
	h.Update(data)

	var out [Size]byte
	h.finalize(out[:], 0)
	return out
}

// SumKeyed returns the 32-byte keyed BLAKE3 hash of data. It returns ErrKeySize if key is not KeySize bytes long.
func SumKeyed(key, data []byte) ([Size]byte, error) {
	var out [Size]byte
	if len(key) != KeySize {
		return out, ErrKeySize
	}

	words := compress.KeyWords((*[KeySize]byte)(key))
	var h Hasher
	h.init(&words, compress.KeyedHash, 1)
	h.Update(data)
	h.finalize(out[:], 0)
	return out, nil
}

// DeriveKey fills out with key material derived from the given context string and input key material.
//
// The context string should be hardcoded, globally unique, and application-specific. It is hashed separately from the
// key material and must never be constructed from variable data.
func DeriveKey(context string, material, out []byte) {
	h := NewDeriveKey(context)
	h.Update(material)
	h.finalize(out, 0)
}
