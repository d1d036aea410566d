// Package tree implements the BLAKE3 chaining value stack, which incrementally reduces a sequence of subtree chaining
// values into the canonical left-balanced binary tree.
package tree

import (
	"github.com/codahale/blake3/internal/compress"
)

// MaxDepth is the maximum number of merged entries on a stack: one per bit of a 2^64-byte input's chunk count.
const MaxDepth = 64 - 10

// An Entry is the chaining value of a complete subtree of Chunks chunks.
type Entry struct {
	Chunks uint64
	CV     [8]uint32
}

// Stack is a chaining value stack. Subtree sizes are powers of two and strictly decrease from bottom to top, except
// that the two topmost entries may be of equal size until the next Push or Merge combines them.
//
// Stack is a value type: assigning it copies it.
type Stack struct {
	key     [8]uint32
	flags   uint32
	n       int
	entries [MaxDepth + 1]Entry
}

// New returns an empty stack whose parent nodes use the given key and flags.
func New(key *[8]uint32, flags uint32) Stack {
	return Stack{key: *key, flags: flags}
}

// Len returns the number of entries on the stack.
func (s *Stack) Len() int {
	return s.n
}

// Chunks returns the total number of chunks covered by the stack's entries.
func (s *Stack) Chunks() uint64 {
	var total uint64
	for _, e := range s.entries[:s.n] {
		total += e.Chunks
	}
	return total
}

// Entries returns the stack's entries, bottom first. The returned slice aliases the stack.
func (s *Stack) Entries() []Entry {
	return s.entries[:s.n]
}

// Push merges any pending equal-sized subtrees and then pushes the chaining value of a subtree of the given number of
// chunks. The new entry is not merged until more input is known to follow it.
func (s *Stack) Push(cv *[8]uint32, chunks uint64) {
	s.Merge()
	s.entries[s.n] = Entry{Chunks: chunks, CV: *cv}
	s.n++
}

// Merge combines the two topmost entries into their parent while they cover equal numbers of chunks.
func (s *Stack) Merge() {
	for s.n >= 2 && s.entries[s.n-1].Chunks == s.entries[s.n-2].Chunks {
		left, right := &s.entries[s.n-2], &s.entries[s.n-1]
		p := compress.ParentNode(&left.CV, &right.CV, &s.key, s.flags)
		*left = Entry{Chunks: left.Chunks * 2, CV: p.ChainingValue()}
		s.n--
	}
}

// Root folds the stack right-to-left onto the final node and returns the root node of the tree. The stack must have
// been merged since the last Push. The stack is not modified.
func (s *Stack) Root(last *compress.Node) compress.Node {
	return s.fold(*last, s.n)
}

// RootWithoutTail returns the root node of the tree when the final subtree is the topmost entry itself, as happens
// when input ends exactly on a subtree boundary consumed in bulk. The stack must hold at least two entries.
func (s *Stack) RootWithoutTail() compress.Node {
	top := s.n - 2
	n := compress.ParentNode(&s.entries[top].CV, &s.entries[top+1].CV, &s.key, s.flags)
	return s.fold(n, top)
}

func (s *Stack) fold(n compress.Node, depth int) compress.Node {
	for i := depth - 1; i >= 0; i-- {
		cv := n.ChainingValue()
		n = compress.ParentNode(&s.entries[i].CV, &cv, &s.key, s.flags)
	}
	return n
}

// Reset empties the stack, keeping its key and flags.
func (s *Stack) Reset() {
	s.n = 0
}

// Reduce combines a power-of-two number of adjacent chaining values into the chaining value of their subtree. cvs is
// used as scratch space.
func Reduce(cvs [][8]uint32, key *[8]uint32, flags uint32) [8]uint32 {
	for n := len(cvs); n > 1; n /= 2 {
		for i := range n / 2 {
			p := compress.ParentNode(&cvs[2*i], &cvs[2*i+1], key, flags)
			cvs[i] = p.ChainingValue()
		}
	}
	return cvs[0]
}
