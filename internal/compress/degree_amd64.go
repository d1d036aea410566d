//go:build amd64 && !purego

package compress

import "golang.org/x/sys/cpu"

// Degree is the number of chunks the compressor prefers to process per batch on this CPU.
var Degree = degree() //nolint:gochecknoglobals // should only check once

func degree() int {
	switch {
	case cpu.X86.HasAVX512F:
		return 16
	case cpu.X86.HasAVX2:
		return 8
	case cpu.X86.HasSSE41:
		return 4
	default:
		return 1
	}
}
