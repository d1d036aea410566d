// Package mem provides slice helpers for functions which append their output to a caller-provided slice.
package mem

import (
	"slices"
)

// SliceForAppend returns a slice with the contents of in followed by n more bytes, and a second slice aliasing only
// the extra bytes. If in has sufficient capacity, no allocation is performed.
func SliceForAppend(in []byte, n int) (head, tail []byte) {
	head = slices.Grow(in, n)
	head = head[:len(in)+n]
	tail = head[len(in):]
	return head, tail
}
