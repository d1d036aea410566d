// Package mmap provides read-only access to the contents of a file, mapping it into memory where the platform allows.
package mmap

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrTooLarge is returned when a file is too large to be addressed as a single slice.
var ErrTooLarge = errors.New("mmap: file too large")

// With calls fn with the contents of the file at path. The slice is only valid for the duration of the call and must
// not be modified.
func With(path string, fn func(data []byte) error) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	fi, err := f.Stat()
	if err != nil {
		return err
	}

	// Pipes, devices, and the like have no meaningful size.
	if !fi.Mode().IsRegular() {
		return readAll(f, fn)
	}

	size := fi.Size()
	if size == 0 {
		return fn(nil)
	}

	if int64(int(size)) != size {
		return fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, path, size)
	}

	return mapFile(f, int(size), fn)
}

func readAll(r io.Reader, fn func(data []byte) error) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return fn(data)
}
