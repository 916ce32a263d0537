package walnut

import (
	"fmt"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/braid"
)

// Encoder turns a message hash into a pure braid of B_n.
type Encoder interface {
	Encode(n int, hash []byte) (braid.Word, error)
}

// EncoderFunc adapts a function to the Encoder interface.
type EncoderFunc func(n int, hash []byte) (braid.Word, error)

// Encode calls f(n, hash).
func (f EncoderFunc) Encode(n int, hash []byte) (braid.Word, error) {
	return f(n, hash)
}

// PureEncoder maps every nibble of the hash to a power of a pure braid
// generator wrapping strand n around strand k. The two high bits choose
// k among n-7, n-5, n-3 and n-1, the two low bits choose the power 1..4.
// Those generators generate a free subgroup, so distinct hashes give
// distinct braids.
type PureEncoder struct{}

// Encode implements Encoder. It needs n >= 8 and a non-empty hash.
func (PureEncoder) Encode(n int, hash []byte) (braid.Word, error) {
	if n < 8 {
		return nil, fmt.Errorf("%w: encoder needs at least 8 strands, got %d", braidcrypt.ErrValidation, n)
	}
	if len(hash) == 0 {
		return nil, fmt.Errorf("%w: empty hash", braidcrypt.ErrValidation)
	}
	var gens [4]braid.Word
	for i := range gens {
		gens[i] = braid.PureGenerator(n-7+2*i, n)
	}
	var w braid.Word
	for _, b := range hash {
		for _, nibble := range [2]byte{b >> 4, b & 0x0f} {
			g := gens[nibble>>2]
			for k := 0; k <= int(nibble&0x03); k++ {
				w = append(w, g...)
			}
		}
	}
	return w, nil
}
