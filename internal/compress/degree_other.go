//go:build (!amd64 && !arm64) || purego

package compress

// Degree is the number of chunks the compressor prefers to process per batch on this CPU.
var Degree = 1 //nolint:gochecknoglobals // should only check once
