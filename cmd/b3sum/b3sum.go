// Command b3sum prints BLAKE3 digests of files, or of standard input if no files are given.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/codahale/blake3"
	"golang.org/x/sync/errgroup"
)

func main() {
	log := slog.New(slog.Default().Handler())

	length := flag.Int("length", blake3.Size, "the number of output bytes")
	seek := flag.Uint64("seek", 0, "the output offset, in bytes")
	keyHex := flag.String("key", "", "a hex-encoded 32-byte key for keyed hashing")
	context := flag.String("context", "", "a context string for key derivation")
	threads := flag.Int("threads", blake3.Auto, "the maximum number of threads per file (-1 for one per core)")
	jobs := flag.Int("jobs", runtime.GOMAXPROCS(0), "the number of files to hash concurrently")
	useMmap := flag.Bool("mmap", true, "memory-map files instead of reading them")
	flag.Parse()

	cfg := blake3.Config{MaxThreads: *threads}
	if *keyHex != "" {
		key, err := hex.DecodeString(*keyHex)
		if err != nil {
			log.Error("invalid key", "err", err)
			os.Exit(2)
		}
		cfg.Key = key
	}

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "context" {
			cfg.Context = context
		}
	})

	base, err := blake3.NewWithConfig(cfg)
	if err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(2)
	}

	paths := flag.Args()
	if len(paths) == 0 {
		out, err := hashStdin(base, *length, *seek)
		if err != nil {
			log.Error("failed to hash stdin", "err", err)
			os.Exit(1)
		}
		fmt.Println(out)
		return
	}

	digests := make([]string, len(paths))
	failed := make([]bool, len(paths))

	var g errgroup.Group
	g.SetLimit(max(*jobs, 1))
	for i, path := range paths {
		g.Go(func() error {
			out, err := hashFile(base.Clone(), path, *length, *seek, *useMmap)
			if err != nil {
				log.Error("failed to hash file", "path", path, "err", err)
				failed[i] = true
				return nil
			}
			digests[i] = out
			return nil
		})
	}
	_ = g.Wait()

	status := 0
	for i, path := range paths {
		if failed[i] {
			status = 1
			continue
		}
		fmt.Printf("%s  %s\n", digests[i], path)
	}
	os.Exit(status)
}

func hashStdin(h *blake3.Hasher, length int, seek uint64) (string, error) {
	if _, err := h.ReadFrom(os.Stdin); err != nil {
		return "", err
	}
	return h.HexDigest(length, seek)
}

func hashFile(h *blake3.Hasher, path string, length int, seek uint64, useMmap bool) (string, error) {
	if useMmap {
		if err := h.UpdateFile(path); err != nil {
			return "", err
		}
		return h.HexDigest(length, seek)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err := h.ReadFrom(f); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return h.HexDigest(length, seek)
}
