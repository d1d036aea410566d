package chunk

import (
	"encoding/hex"
	"testing"

	"github.com/codahale/blake3/internal/compress"
	"github.com/codahale/blake3/internal/testdata"
)

func TestState_Empty(t *testing.T) {
	s := New(&compress.IV, 0, 0)
	n := s.Node()

	if got, want := n.Flags, compress.ChunkStart|compress.ChunkEnd; got != want {
		t.Errorf("Flags = %d, want = %d", got, want)
	}

	out := n.RootBlock(0)
	if got, want := hex.EncodeToString(out[:32]), "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"; got != want {
		t.Errorf("RootBlock(0) = %s, want = %s", got, want)
	}
}

func TestState_Update(t *testing.T) {
	input := testdata.Input(compress.ChunkSize + 100)
	s := New(&compress.IV, 0, 0)

	if got, want := s.Update(input[:10]), 10; got != want {
		t.Errorf("Update(10 bytes) = %d, want = %d", got, want)
	}

	if got, want := s.Update(input[10:]), compress.ChunkSize-10; got != want {
		t.Errorf("Update(rest) = %d, want = %d", got, want)
	}

	if !s.Full() {
		t.Error("Full() = false, want = true")
	}

	if got, want := s.Update(input[compress.ChunkSize:]), 0; got != want {
		t.Errorf("Update(full chunk) = %d, want = %d", got, want)
	}
}

func TestState_LastBlockDeferred(t *testing.T) {
	for _, size := range []int{1, 63, 64, 65, 128, 129, compress.ChunkSize - 1, compress.ChunkSize} {
		s := New(&compress.IV, 0, 0)
		s.Update(testdata.Input(size))
		n := s.Node()

		wantLen := size % compress.BlockSize
		if wantLen == 0 {
			wantLen = compress.BlockSize
		}

		if got, want := n.BlockLen, uint32(wantLen); got != want {
			t.Errorf("size %d: BlockLen = %d, want = %d", size, got, want)
		}

		wantStart := size <= compress.BlockSize
		if got, want := n.Flags&compress.ChunkStart != 0, wantStart; got != want {
			t.Errorf("size %d: ChunkStart = %v, want = %v", size, got, want)
		}
	}
}

func TestState_Incremental(t *testing.T) {
	input := testdata.Input(compress.ChunkSize)

	whole := New(&compress.IV, 7, 0)
	whole.Update(input)
	want := whole.Node()

	for _, step := range []int{1, 3, 63, 64, 65, 500} {
		s := New(&compress.IV, 7, 0)
		for p := input; len(p) > 0; {
			n := min(step, len(p))
			s.Update(p[:n])
			p = p[n:]
		}

		if got := s.Node(); got != want {
			t.Errorf("step %d: Node() = %+v, want = %+v", step, got, want)
		}
	}
}

func TestCV(t *testing.T) {
	zeros := make([]byte, compress.ChunkSize)

	for _, tt := range []struct {
		counter uint64
		want    string
	}{
		{0, "91715ad631c858232d522cc2ff678052288c8c540fc6ab6c5fa5104cb63e0d39"},
		{5, "bc55663cf23f1ecc5686f5c5aac7f9448f2a3e11a8598076aa3d20953230731b"},
	} {
		cv := CV(zeros, &compress.IV, tt.counter, 0)
		b := compress.CVBytes(&cv)
		if got := hex.EncodeToString(b[:]); got != tt.want {
			t.Errorf("CV(zeros, %d) = %s, want = %s", tt.counter, got, tt.want)
		}
	}
}

func TestCVs(t *testing.T) {
	input := testdata.Input(4 * compress.ChunkSize)
	cvs := make([][8]uint32, 4)
	CVs(cvs, input, &compress.IV, 12, compress.KeyedHash)

	for i, cv := range cvs {
		off := i * compress.ChunkSize
		if got, want := cv, CV(input[off:off+compress.ChunkSize], &compress.IV, uint64(12+i), compress.KeyedHash); got != want {
			t.Errorf("CVs()[%d] = %x, want = %x", i, got, want)
		}
	}
}
