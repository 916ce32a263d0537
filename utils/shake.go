package utils

import (
	"encoding/binary"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/sha3"
)

// MaxHashConcatInputSize bounds each part fed to HashConcat so its
// 32-bit length prefix cannot wrap.
const MaxHashConcatInputSize = MaxPayloadLength

// absorbDomain writes the one-byte length of domain followed by domain.
// Labels longer than 255 bytes are a programming error.
func absorbDomain(w io.Writer, domain string) {
	if len(domain) > 0xff {
		panic(fmt.Sprintf("utils: domain label of %d bytes", len(domain)))
	}
	w.Write([]byte{byte(len(domain))})
	io.WriteString(w, domain)
}

func sum(h hash.Hash, parts ...[]byte) []byte {
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// SHA3256 returns the 32-byte SHA3-256 digest of input.
func SHA3256(input []byte) []byte {
	return sum(sha3.New256(), input)
}

// HashWithDomain is SHA3-256 over the length-prefixed domain and data.
func HashWithDomain(domain string, data []byte) []byte {
	h := sha3.New256()
	absorbDomain(h, domain)
	return sum(h, data)
}

// HashConcat hashes the inputs with a little-endian uint32 length before
// each one, so ("ab","c") and ("a","bc") differ.
func HashConcat(inputs ...[]byte) []byte {
	h := sha3.New256()
	var n [4]byte
	for _, in := range inputs {
		if len(in) > MaxHashConcatInputSize {
			panic(fmt.Sprintf("utils: HashConcat input of %d bytes", len(in)))
		}
		binary.LittleEndian.PutUint32(n[:], uint32(len(in)))
		h.Write(n[:])
		h.Write(in)
	}
	return h.Sum(nil)
}

// newDomainShake returns a SHAKE256 state that has absorbed domain and data.
func newDomainShake(domain string, data []byte) sha3.ShakeHash {
	x := sha3.NewShake256()
	absorbDomain(x, domain)
	x.Write(data)
	return x
}

// Shake256WithDomain squeezes outLen bytes from newDomainShake(domain, data).
func Shake256WithDomain(domain string, data []byte, outLen int) []byte {
	out := make([]byte, outLen)
	newDomainShake(domain, data).Read(out)
	return out
}
