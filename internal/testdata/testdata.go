// Package testdata provides deterministic inputs, reference vectors, and a DRBG for tests.
package testdata

import (
	"crypto/sha3"
	_ "embed"
	"encoding/hex"
	"encoding/json"
)

const (
	// Key is the key used by the reference keyed-hash vectors.
	Key = "whats the Elvish word for friend"

	// Context is the context string used by the reference derive-key vectors.
	Context = "BLAKE3 2019-12-27 16:29:52 test vectors context"
)

// Input returns the reference test input of length n: bytes counting up modulo 251.
func Input(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 251)
	}
	return b
}

// A Case is a reference vector: the extended outputs of each key mode for Input(InputLen).
type Case struct {
	InputLen  int    `json:"input_len"`
	Hash      string `json:"hash"`
	KeyedHash string `json:"keyed_hash"`
	DeriveKey string `json:"derive_key"`
}

//go:embed vectors.json
var vectorsJSON []byte

// Cases returns the official BLAKE3 test vectors followed by multi-megabyte vectors which span many tree levels.
func Cases() ([]Case, error) {
	var v struct {
		Key   string `json:"key"`
		Cases []Case `json:"cases"`
	}
	if err := json.Unmarshal(vectorsJSON, &v); err != nil {
		return nil, err
	}
	return append(v.Cases, large...), nil
}

var large = []Case{ //nolint:gochecknoglobals // test vectors
	{
		InputLen:  3*1024*1024 + 17,
		Hash:      "26003c63117013de5d02be76e5e32a2f75bfbc075f17180fd5f9f0b4752d2bfe2427621edd01a8ed88eac99a13d850f5dfee05124db3305926482ed9f4f352b08f437dde5765739703254463b9834582776b5aea454a3614845e66f15583b304cf98e9e0e264d69f8967926778d32f6d7dd5dd8e7929c7ec28c9fdc75fff0a8938fa3d",
		KeyedHash: "dab19801d51d78e8e0a32ee271e24c428882b777c7235b4f907f07ebff59406bb974101813a073bb5b892907b82d21439052afb3122df52f7c65eb26e1427c8eb8928b5633224d29678238f5d6561f2b68800e63112730adac38e183b83bc2329f1ad88d2afbfe74c00d9952a4b8530cc6c3f8359c80eb15bcb6770486ebf740df0dc8",
		DeriveKey: "8f60a537e63e9a3ed9bd176559e76182d802a92e930a0d3e7f119588dbf4c47accd7d809d58480626449748a48dc6533fa3e751d3ef02cd58cf36be6faa94d1214badef0f764c7754b8a6f09c82e42786666555ab099406bcb279d46e6e0487680df17b51a605ae348ba4318c23233ea6c50b29b7ec943f4c16df547c0c3642625f193",
	},
	{
		InputLen:  4 * 1024 * 1024,
		Hash:      "4e94e6f582581a0f3855f3ce504b153e951e65036fe9e2f010b7e25473c54f9837d7b96d9b118cc52d9355b3a29569cbc089752c10081c47bd92e4395e5c02189d2231f218722a0d99790d9c9b69355b0fd9ff5837128a14e369dbadf3eb8e0e1d127c3bb7d3346f57c45962b863a1e9a75d5178abfb0cbcb6e43c352fcd32eba985d2",
		KeyedHash: "182b531d06d2705f68e23dc6a5580481f3342ded15cece016b58e0922e75c0e337b279c31c1108cb768b12a56289d53bc20fb9397d25b2dd58a4489ad24edc9f3f7ba9ea8da9b2a13813d7d0126f612269ce8f44cab5afd623c1bdbfe1d28f03ad1dd2e7afd3fa7249fabb4466c83b86e3a231912a7c320985f7200544558f9a74d4bf",
		DeriveKey: "14689cc67a8329afabf4ddfb9c5bd23b910ffcc69fb59beb934f867608f1005a55b9f2cb7c44d358a2bf9158b4d6b0cb3d114b1f681f25ba5ef2c8a92789d0c44374f2629905ed4ffcdbdf652e1bd745635adbb280e0ba5aa2c7501266ce0ad558ebf576aa5bfc1b45db879bf680fde43ae56dcbe06f993eafc8a5effec9180da943e1",
	},
}

// MustHex decodes a hex string, panicking on error.
func MustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// DRBG is a deterministic generator of pseudorandom test data.
type DRBG struct {
	h *sha3.SHAKE
}

// New returns a DRBG seeded with the given domain string.
func New(domain string) *DRBG {
	h := sha3.NewSHAKE128()
	_, _ = h.Write([]byte(domain))
	return &DRBG{h: h}
}

// Data returns n bytes of pseudorandom data.
func (d *DRBG) Data(n int) []byte {
	b := make([]byte, n)
	_, _ = d.h.Read(b)
	return b
}
