//go:build !unix

package mmap

import (
	"os"
)

func mapFile(f *os.File, _ int, fn func(data []byte) error) error {
	return readAll(f, fn)
}
