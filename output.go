package blake3

import (
	"io"
	"math"

	"github.com/codahale/blake3/internal/compress"
)

// An OutputReader reads a hash's extendable output stream, which is 2^64 bytes long. Reads past the end of the stream
// return io.EOF.
type OutputReader struct {
	root compress.Node
	pos  uint64
	end  bool // pos has wrapped past 2^64-1
}

// Read fills p with output from the current position and advances it.
func (r *OutputReader) Read(p []byte) (int, error) {
	if r.end {
		return 0, io.EOF
	}

	n := len(p)
	if r.pos != 0 && uint64(n) > -r.pos { //nolint:gosec // n >= 0
		n = int(-r.pos) //nolint:gosec // -r.pos < len(p)
	}

	r.root.RootBytes(p[:n], r.pos)
	r.pos += uint64(n) //nolint:gosec // n >= 0
	if n > 0 && r.pos == 0 {
		r.end = true
	}
	return n, nil
}

// ReadAt fills p with output starting at the byte offset off. It does not change the reader's position.
func (r *OutputReader) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrNegativeSeek
	}

	// Every offset addressable by an int64 has more than 2^63 bytes of output after it.
	r.root.RootBytes(p, uint64(off)) //nolint:gosec // off >= 0
	return len(p), nil
}

// Seek sets the position of the next Read. The stream is longer than an int64 can address, so Seek returns
// ErrOutputOverflow, without moving, for positions past math.MaxInt64, including every position relative to
// io.SeekEnd. SetPosition addresses the whole stream.
func (r *OutputReader) Seek(offset int64, whence int) (int64, error) {
	var base uint64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		if r.end {
			return 0, ErrOutputOverflow
		}
		base = r.pos
	case io.SeekEnd:
		return 0, ErrOutputOverflow
	default:
		return 0, ErrInvalidWhence
	}

	var pos uint64
	if offset < 0 {
		back := uint64(-(offset + 1)) + 1
		if back > base {
			return 0, ErrNegativeSeek
		}
		pos = base - back
	} else {
		pos = base + uint64(offset)
		if pos < base || pos > math.MaxInt64 {
			return 0, ErrOutputOverflow
		}
	}

	r.pos, r.end = pos, false
	return int64(pos), nil //nolint:gosec // pos <= math.MaxInt64
}

// SetPosition sets the position of the next Read to the byte offset pos.
func (r *OutputReader) SetPosition(pos uint64) {
	r.pos, r.end = pos, false
}

// Position returns the position of the next Read. It returns false if the reader is at the end of the stream.
func (r *OutputReader) Position() (uint64, bool) {
	return r.pos, !r.end
}

var (
	_ io.Reader   = (*OutputReader)(nil)
	_ io.ReaderAt = (*OutputReader)(nil)
	_ io.Seeker   = (*OutputReader)(nil)
)
