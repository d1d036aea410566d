package blake3

import (
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"math/bits"

	"github.com/codahale/blake3/internal/chunk"
	"github.com/codahale/blake3/internal/compress"
	"github.com/codahale/blake3/internal/mem"
	"github.com/codahale/blake3/internal/mmap"
	"github.com/codahale/blake3/internal/parallel"
	"github.com/codahale/blake3/internal/tree"
)

// Config configures a Hasher. The zero value is an unkeyed, single-threaded hasher.
type Config struct {
	// Key, if non-nil, selects keyed hashing. It must be KeySize bytes long.
	Key []byte

	// Context, if non-nil, selects key derivation with the given context string.
	Context *string

	// MaxThreads is the maximum number of threads used to hash large inputs passed to Write or UpdateFile. Auto uses
	// one thread per logical core; zero and one are single-threaded.
	MaxThreads int

	// Data, if non-empty, is hashed as the first input.
	Data []byte
}

// A Hasher incrementally computes a BLAKE3 hash. Output may be requested at any time without affecting further
// updates.
//
// A Hasher is not safe for concurrent use.
type Hasher struct {
	key     [8]uint32
	flags   uint32
	chunk   chunk.State
	stack   tree.Stack
	threads int
	joiner  parallel.Joiner
}

// New returns a Hasher for unkeyed hashing.
func New() *Hasher {
	h := new(Hasher)
	h.init(&compress.IV, 0, 1)
	return h
}

// NewKeyed returns a Hasher for keyed hashing with the given key. It returns ErrKeySize if the key is not KeySize
// bytes long.
func NewKeyed(key []byte) (*Hasher, error) {
	return NewWithConfig(Config{Key: key})
}

// NewDeriveKey returns a Hasher which derives key material from the input using the given context string.
func NewDeriveKey(context string) *Hasher {
	ctx := new(Hasher)
	ctx.init(&compress.IV, compress.DeriveKeyContext, 1)
	_, _ = io.WriteString(ctx, context)

	var key [KeySize]byte
	ctx.finalize(key[:], 0)
	words := compress.KeyWords(&key)

	h := new(Hasher)
	h.init(&words, compress.DeriveKeyMaterial, 1)
	return h
}

// NewWithConfig returns a Hasher configured by cfg. It returns ErrKeyAndContext if both a key and a context are
// given, ErrKeySize if the key is not KeySize bytes long, and ErrInvalidThreads if cfg.MaxThreads is invalid.
func NewWithConfig(cfg Config) (*Hasher, error) {
	if cfg.Key != nil && cfg.Context != nil {
		return nil, ErrKeyAndContext
	}

	if cfg.Key != nil && len(cfg.Key) != KeySize {
		return nil, ErrKeySize
	}

	threads, err := parallel.Threads(cfg.MaxThreads)
	if err != nil {
		return nil, err
	}

	var h *Hasher
	switch {
	case cfg.Key != nil:
		words := compress.KeyWords((*[KeySize]byte)(cfg.Key))
		h = new(Hasher)
		h.init(&words, compress.KeyedHash, threads)
	case cfg.Context != nil:
		h = NewDeriveKey(*cfg.Context)
		h.threads, h.joiner = threads, parallel.For(threads)
	default:
		h = new(Hasher)
		h.init(&compress.IV, 0, threads)
	}

	if len(cfg.Data) > 0 {
		h.update(cfg.Data, h.joiner)
	}
	return h, nil
}

func (h *Hasher) init(key *[8]uint32, flags uint32, threads int) {
	h.key = *key
	h.flags = flags
	h.threads = threads
	h.joiner = parallel.For(threads)
	h.Reset()
}

// Write adds more data to the running hash, using the Hasher's configured thread count. It never returns an error.
func (h *Hasher) Write(p []byte) (int, error) {
	h.update(p, h.joiner)
	return len(p), nil
}

// Update adds more data to the running hash on the calling goroutine.
func (h *Hasher) Update(p []byte) {
	h.update(p, parallel.Serial)
}

// UpdateParallel adds more data to the running hash using at most maxThreads threads. It returns ErrInvalidThreads,
// without modifying the hash, if maxThreads is invalid.
func (h *Hasher) UpdateParallel(p []byte, maxThreads int) error {
	threads, err := parallel.Threads(maxThreads)
	if err != nil {
		return err
	}

	j := h.joiner
	if threads != h.threads {
		j = parallel.For(threads)
	}
	h.update(p, j)
	return nil
}

// ReadFrom adds all data read from r to the running hash, using the Hasher's configured thread count.
func (h *Hasher) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 64*1024)
	var n int64
	for {
		c, err := r.Read(buf)
		h.update(buf[:c], h.joiner)
		n += int64(c)
		if errors.Is(err, io.EOF) {
			return n, nil
		}

		if err != nil {
			return n, err
		}
	}
}

// UpdateFile adds the contents of the file at path to the running hash, using the Hasher's configured thread count.
// The file is memory-mapped where possible.
func (h *Hasher) UpdateFile(path string) error {
	if err := mmap.With(path, func(data []byte) error {
		h.update(data, h.joiner)
		return nil
	}); err != nil {
		return fmt.Errorf("blake3: update from file: %w", err)
	}
	return nil
}

func (h *Hasher) update(p []byte, j parallel.Joiner) {
	// Finish a partially filled chunk, pushing it only once more input is known to follow it.
	if h.chunk.Len() > 0 {
		n := h.chunk.Update(p)
		p = p[n:]
		if len(p) == 0 {
			return
		}

		node := h.chunk.Node()
		cv := node.ChainingValue()
		h.stack.Push(&cv, 1)
		h.chunk = chunk.New(&h.key, h.chunk.Counter()+1, h.flags)
	}

	// Consume the largest complete subtrees the input allows, keeping at least one byte back for the chunk state.
	for len(p) > ChunkSize {
		counter := h.chunk.Counter()
		size := largestSubtree(uint64(len(p)), counter*ChunkSize) //nolint:gosec // len(p) >= 0
		chunks := size / ChunkSize

		if chunks == 1 {
			cv := chunk.CV(p[:ChunkSize], &h.key, counter, h.flags)
			h.stack.Push(&cv, 1)
		} else {
			left, right := parallel.SubtreeCVs(j, p[:size], &h.key, counter, h.flags)
			h.stack.Push(&left, chunks/2)
			h.stack.Push(&right, chunks/2)
		}

		h.chunk = chunk.New(&h.key, counter+chunks, h.flags)
		p = p[size:]
	}

	if len(p) > 0 {
		h.chunk.Update(p)
		h.stack.Merge()
	}
}

// largestSubtree returns the length of the largest complete subtree which fits in n bytes and is aligned to offset.
func largestSubtree(n, offset uint64) uint64 {
	size := uint64(1) << (63 - bits.LeadingZeros64(n))
	for offset%size != 0 {
		size /= 2
	}
	return size
}

// Sum appends the current 32-byte hash to b and returns the resulting slice. It does not change the underlying hash
// state.
func (h *Hasher) Sum(b []byte) []byte {
	ret, out := mem.SliceForAppend(b, Size)
	h.finalize(out, 0)
	return ret
}

// Digest returns length bytes of output starting at the byte offset seek of the output stream. It returns
// ErrOutputLength if length is negative and ErrOutputOverflow if the output would extend past 2^64 bytes.
func (h *Hasher) Digest(length int, seek uint64) ([]byte, error) {
	if err := checkOutput(length, seek); err != nil {
		return nil, err
	}

	out := make([]byte, length)
	h.finalize(out, seek)
	return out, nil
}

// Finalize fills dst with output starting at the byte offset seek of the output stream. It returns ErrOutputOverflow
// if the output would extend past 2^64 bytes.
func (h *Hasher) Finalize(dst []byte, seek uint64) error {
	if err := checkOutput(len(dst), seek); err != nil {
		return err
	}

	h.finalize(dst, seek)
	return nil
}

// HexDigest returns Digest's output as a lowercase hexadecimal string.
func (h *Hasher) HexDigest(length int, seek uint64) (string, error) {
	out, err := h.Digest(length, seek)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(out), nil
}

// XOF returns an OutputReader for the hash's output stream as of now, positioned at its start.
func (h *Hasher) XOF() *OutputReader {
	return &OutputReader{root: h.root(), pos: 0, end: false}
}

func (h *Hasher) finalize(dst []byte, seek uint64) {
	root := h.root()
	root.RootBytes(dst, seek)
}

func (h *Hasher) root() compress.Node {
	switch {
	case h.stack.Len() == 0:
		return h.chunk.Node()
	case h.chunk.Len() > 0:
		last := h.chunk.Node()
		return h.stack.Root(&last)
	default:
		return h.stack.RootWithoutTail()
	}
}

// Reset discards all input, keeping the Hasher's key mode and thread count.
func (h *Hasher) Reset() {
	h.chunk = chunk.New(&h.key, 0, h.flags)
	h.stack = tree.New(&h.key, h.flags)
}

// Clone returns an independent copy of the Hasher.
func (h *Hasher) Clone() *Hasher {
	c := *h
	c.joiner = parallel.For(c.threads)
	return &c
}

// Size returns the default digest size, Size.
func (h *Hasher) Size() int {
	return Size
}

// BlockSize returns the hash's block size, BlockSize.
func (h *Hasher) BlockSize() int {
	return BlockSize
}

// Name returns the name of the hash function.
func (h *Hasher) Name() string {
	return "blake3"
}

func checkOutput(length int, seek uint64) error {
	if length < 0 {
		return ErrOutputLength
	}

	if length > 0 && seek+uint64(length-1) < seek { //nolint:gosec // length > 0
		return ErrOutputOverflow
	}
	return nil
}

var (
	_ hash.Hash     = (*Hasher)(nil)
	_ io.ReaderFrom = (*Hasher)(nil)
)
