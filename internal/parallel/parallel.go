// Package parallel computes the chaining values of large, aligned subtrees by recursively bisecting them and
// compressing the halves on separate goroutines.
//
// Split points are always power-of-two chunk boundaries aligned to the subtree's starting chunk, which are exactly the
// merge points of the sequential chaining value stack, so the results are identical to sequential hashing.
package parallel

import (
	"errors"
	"runtime"

	"github.com/codahale/blake3/internal/chunk"
	"github.com/codahale/blake3/internal/compress"
	"github.com/codahale/blake3/internal/tree"
	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sync/semaphore"
)

// Auto selects a number of threads equal to the number of usable logical cores.
const Auto = -1

// maxGroupChunks bounds GroupChunks so base-case chaining values fit in a fixed-size array.
const maxGroupChunks = 32

// ErrInvalidThreads is returned when a thread count is neither Auto nor non-negative.
var ErrInvalidThreads = errors.New("blake3: invalid number of threads")

// GroupChunks is the subtree size, in chunks, at or below which subtrees are compressed on a single goroutine.
var GroupChunks = min(maxGroupChunks, max(8, 2*compress.Degree)) //nolint:gochecknoglobals // tuning parameter

// Threads resolves a requested maximum thread count. Zero and one both mean single-threaded.
func Threads(maxThreads int) (int, error) {
	switch {
	case maxThreads == Auto:
		return cores(), nil
	case maxThreads < 0:
		return 0, ErrInvalidThreads
	case maxThreads <= 1:
		return 1, nil
	default:
		return maxThreads, nil
	}
}

func cores() int {
	n := cpuid.CPU.LogicalCores
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return max(1, min(n, runtime.GOMAXPROCS(0)))
}

// A Joiner runs two functions and returns once both have completed.
type Joiner interface {
	Join(a, b func())
}

// Serial is a Joiner which runs both functions on the calling goroutine.
var Serial Joiner = serial{} //nolint:gochecknoglobals // stateless

type serial struct{}

func (serial) Join(a, b func()) {
	a()
	b()
}

// A Pool is a Joiner which runs at most a fixed number of functions at once, counting the calling goroutine. When no
// slot is free, Join degrades to running both functions on the calling goroutine, so nested joins never block waiting
// for a slot.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool returns a Pool which uses at most threads goroutines.
func NewPool(threads int) *Pool {
	return &Pool{sem: semaphore.NewWeighted(int64(max(threads, 1) - 1))}
}

// Join runs a on a new goroutine if a slot is free and b on the calling goroutine, and waits for both.
func (p *Pool) Join(a, b func()) {
	if !p.sem.TryAcquire(1) {
		a()
		b()
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer p.sem.Release(1)
		a()
	}()
	b()
	<-done
}

// For returns the Joiner for a resolved thread count.
func For(threads int) Joiner {
	if threads <= 1 {
		return Serial
	}
	return NewPool(threads)
}

// SubtreeCVs returns the chaining values of the left and right halves of a subtree. The input must be a power-of-two
// number of chunks, at least two, starting at the chunk index counter, which must be a multiple of that number.
func SubtreeCVs(j Joiner, input []byte, key *[8]uint32, counter uint64, flags uint32) (left, right [8]uint32) {
	if len(input) <= GroupChunks*compress.ChunkSize {
		j = Serial
	}

	half := len(input) / 2
	j.Join(
		func() { left = subtreeCV(j, input[:half], key, counter, flags) },
		func() { right = subtreeCV(j, input[half:], key, counter+uint64(half/compress.ChunkSize), flags) }, //nolint:gosec // half >= 0
	)
	return left, right
}

func subtreeCV(j Joiner, input []byte, key *[8]uint32, counter uint64, flags uint32) [8]uint32 {
	if chunks := len(input) / compress.ChunkSize; chunks <= GroupChunks {
		var buf [maxGroupChunks][8]uint32
		cvs := buf[:chunks]
		chunk.CVs(cvs, input, key, counter, flags)
		return tree.Reduce(cvs, key, flags)
	}

	left, right := SubtreeCVs(j, input, key, counter, flags)
	p := compress.ParentNode(&left, &right, key, flags)
	return p.ChainingValue()
}
