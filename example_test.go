package blake3_test

import (
	"fmt"
	"io"

	"github.com/codahale/blake3"
)

func ExampleSum256() {
	digest := blake3.Sum256([]byte("hello world"))
	fmt.Printf("%x\n", digest)
	// Output: d74981efa70a0c880b8d8c1985d075dbcbf679b99a5f9914e5aaf96b831a9e24
}

func ExampleNewKeyed() {
	// Keys must be exactly 32 bytes.
	h, err := blake3.NewKeyed([]byte("whats the Elvish word for friend"))
	if err != nil {
		panic(err)
	}

	_, _ = h.Write([]byte("hello world"))
	fmt.Printf("%x\n", h.Sum(nil))
	// Output: 546a11cf08472ee68fb83c3f28ab2dc21ef620a6f03a64b429e4bac4e454d2b2
}

func ExampleDeriveKey() {
	// The context string should be hardcoded and unique to the application and purpose.
	key := make([]byte, 32)
	blake3.DeriveKey("example.com 2026-10-17 session keys", []byte("input key material"), key)
	fmt.Printf("%x\n", key)
	// Output: adfc934c5c05252e4cfd57ade10cba21a4d74489549d89b7b3b17692a28b983c
}

func ExampleHasher_Digest() {
	h := blake3.New()
	h.Update([]byte("hello world"))

	// Output of any length can be read from any offset.
	out, err := h.Digest(16, 1000)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%x\n", out)
	// Output: ab7cf9f9f880bcdb54ad1bca304a8b5b
}

func ExampleHasher_XOF() {
	h := blake3.New()
	h.Update([]byte("hello world"))

	r := h.XOF()
	if _, err := r.Seek(32, io.SeekStart); err != nil {
		panic(err)
	}

	out := make([]byte, 32)
	if _, err := io.ReadFull(r, out); err != nil {
		panic(err)
	}
	fmt.Printf("%x\n", out)
	// Output: a020ed55aed9a6ab2eaf3fd70d2c98c949e142d8f42a10250190b699e02cf9eb
}

func ExampleNewWithConfig() {
	h, err := blake3.NewWithConfig(blake3.Config{
		MaxThreads: blake3.Auto,
		Data:       []byte("hello world"),
	})
	if err != nil {
		panic(err)
	}

	digest, err := h.HexDigest(32, 0)
	if err != nil {
		panic(err)
	}
	fmt.Println(digest)
	// Output: d74981efa70a0c880b8d8c1985d075dbcbf679b99a5f9914e5aaf96b831a9e24
}
