// Package chunk implements the BLAKE3 chunk processor, which compresses up to 1024 bytes of input block-by-block into
// a single chaining value.
package chunk

import (
	"github.com/codahale/blake3/internal/compress"
)

const blocksPerChunk = compress.ChunkSize / compress.BlockSize

// State is the in-progress compression of a single chunk. The zero value is not usable; use New.
//
// The last block of a chunk is never compressed by Update, since whether it is the last block (and whether the chunk
// is the root of the tree) depends on input which has not been seen yet. Node returns it as a deferred compression.
type State struct {
	cv       [8]uint32
	counter  uint64
	flags    uint32
	block    [compress.BlockSize]byte
	blockLen int // buffered bytes in block
	blocks   int // compressed blocks
}

// New returns an empty chunk state for the chunk with the given index.
func New(key *[8]uint32, counter uint64, flags uint32) State {
	return State{cv: *key, counter: counter, flags: flags}
}

// Len returns the number of bytes absorbed into the chunk.
func (s *State) Len() int {
	return s.blocks*compress.BlockSize + s.blockLen
}

// Counter returns the chunk's index.
func (s *State) Counter() uint64 {
	return s.counter
}

// Full returns true if the chunk holds ChunkSize bytes.
func (s *State) Full() bool {
	return s.Len() == compress.ChunkSize
}

// Update absorbs as much of p as fits in the chunk and returns the number of bytes absorbed.
func (s *State) Update(p []byte) int {
	n := 0
	for len(p) > 0 && !s.Full() {
		if s.blockLen == compress.BlockSize {
			s.compressBlock(&s.block)
			clear(s.block[:])
			s.blockLen = 0
		}

		// Compress whole blocks straight from the input while at least one more byte follows them.
		for s.blockLen == 0 && len(p) > compress.BlockSize && s.blocks < blocksPerChunk-1 {
			s.compressBlock((*[compress.BlockSize]byte)(p))
			p = p[compress.BlockSize:]
			n += compress.BlockSize
		}

		c := copy(s.block[s.blockLen:], p)
		s.blockLen += c
		p = p[c:]
		n += c
	}
	return n
}

// Node returns the deferred compression of the chunk's final block.
func (s *State) Node() compress.Node {
	return compress.Node{
		CV:       s.cv,
		Block:    compress.BytesToWords(&s.block),
		Counter:  s.counter,
		BlockLen: uint32(s.blockLen), //nolint:gosec // blockLen <= 64
		Flags:    s.flags | s.startFlag() | compress.ChunkEnd,
	}
}

func (s *State) compressBlock(block *[compress.BlockSize]byte) {
	words := compress.BytesToWords(block)
	out := compress.Compress(&s.cv, &words, s.counter, compress.BlockSize, s.flags|s.startFlag())
	copy(s.cv[:], out[:8])
	s.blocks++
}

func (s *State) startFlag() uint32 {
	if s.blocks == 0 {
		return compress.ChunkStart
	}
	return 0
}

// CV returns the chaining value of a complete, non-root chunk.
func CV(chunk []byte, key *[8]uint32, counter uint64, flags uint32) [8]uint32 {
	s := New(key, counter, flags)
	s.Update(chunk)
	n := s.Node()
	return n.ChainingValue()
}

// CVs computes the chaining values of len(dst) consecutive whole chunks of input, starting at the chunk index counter.
func CVs(dst [][8]uint32, input []byte, key *[8]uint32, counter uint64, flags uint32) {
	for i := range dst {
		dst[i] = CV(input[i*compress.ChunkSize:(i+1)*compress.ChunkSize], key, counter+uint64(i), flags) //nolint:gosec // i >= 0
	}
}
