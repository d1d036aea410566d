//go:build unix

package mmap

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

func mapFile(f *os.File, size int, fn func(data []byte) error) (err error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED) //nolint:gosec // fd fits in an int
	if err != nil {
		// Some filesystems don't support mapping.
		return readAll(f, fn)
	}
	defer func() {
		err = errors.Join(err, unix.Munmap(data))
	}()

	_ = unix.Madvise(data, unix.MADV_WILLNEED)

	return fn(data)
}
