//go:build arm64 && !purego

package compress

import "golang.org/x/sys/cpu"

// Degree is the number of chunks the compressor prefers to process per batch on this CPU.
var Degree = degree() //nolint:gochecknoglobals // should only check once

func degree() int {
	if cpu.ARM64.HasASIMD {
		return 4
	}
	return 1
}
