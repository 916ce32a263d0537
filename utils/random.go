package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/crypto/sha3"
)

// DomainSource separates RNG streams from every other SHAKE256 use.
const DomainSource = "braidcrypt-source-v1"

// RandReader feeds SecureRandomBytes. Tests replace it.
var RandReader io.Reader = rand.Reader

// SecureRandomBytes reads n bytes from RandReader.
func SecureRandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(RandReader, buf); err != nil {
		return nil, fmt.Errorf("reading system randomness: %w", err)
	}
	return buf, nil
}

// Source is a deterministic random stream expanded from a seed with SHAKE256.
// Two sources built from the same seed produce the same draws, which is what
// makes protocol runs replayable. A Source is not safe for concurrent use;
// give every goroutine its own stream with Split.
type Source struct {
	xof sha3.ShakeHash
	buf [8]byte
}

// NewSource creates a stream from an arbitrary seed.
func NewSource(seed []byte) *Source {
	return &Source{xof: newDomainShake(DomainSource, seed)}
}

// NewSourceFromUint64 creates a stream from an integer seed.
func NewSourceFromUint64(seed uint64) *Source {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], seed)
	return NewSource(b[:])
}

// NewSecureSource creates a stream seeded with 32 bytes from crypto/rand.
func NewSecureSource() (*Source, error) {
	seed, err := SecureRandomBytes(32)
	if err != nil {
		return nil, err
	}
	s := NewSource(seed)
	Zeroize(seed)
	return s, nil
}

// Read fills p with stream output. It never fails.
func (s *Source) Read(p []byte) (int, error) {
	return s.xof.Read(p)
}

// Uint64 returns 64 uniformly random bits.
func (s *Source) Uint64() uint64 {
	_, _ = s.xof.Read(s.buf[:])
	return binary.LittleEndian.Uint64(s.buf[:])
}

// Intn returns a uniform integer in [0, n).
// It uses rejection sampling to ensure a uniform distribution.
// Panics if n <= 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		panic("utils: Intn argument must be positive")
	}
	if n == 1 {
		return 0
	}
	bound := uint64(n)
	threshold := -bound % bound
	for {
		v := s.Uint64()
		if v >= threshold {
			return int(v % bound)
		}
	}
}

// IntRange returns a uniform integer in [lo, hi].
func (s *Source) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.Intn(hi-lo+1)
}

// Bool returns a fair coin flip.
func (s *Source) Bool() bool {
	return s.Uint64()&1 == 1
}

// Perm returns a uniform permutation of [0, n) as a slice (Fisher-Yates).
func (s *Source) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := s.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// Split derives an independent child stream. The parent advances by 32
// bytes, so a fixed sequence of Split calls yields the same children.
func (s *Source) Split(label string) *Source {
	var key [32]byte
	_, _ = s.xof.Read(key[:])
	child := NewSource(Shake256WithDomain(label, key[:], 32))
	Zeroize(key[:])
	return child
}

// SplitN derives n child streams sharing one label.
func (s *Source) SplitN(label string, n int) []*Source {
	out := make([]*Source, n)
	for i := range out {
		out[i] = s.Split(label)
	}
	return out
}

// ErrLowEntropy marks a seed rejected by ValidateSeedEntropy.
var ErrLowEntropy = errors.New("seed has low entropy")

// ValidateSeedEntropy rejects seeds that are short, form an arithmetic
// progression of bytes (constant runs included) or use fewer than 8
// distinct byte values. Passing it says nothing about real randomness.
func ValidateSeedEntropy(seed []byte) error {
	if len(seed) < 32 {
		return fmt.Errorf("%w: %d bytes, need 32", ErrLowEntropy, len(seed))
	}
	step := seed[1] - seed[0]
	progression := true
	var seen [256]bool
	distinct := 0
	for i, b := range seed {
		if i > 0 && b-seed[i-1] != step {
			progression = false
		}
		if !seen[b] {
			seen[b] = true
			distinct++
		}
	}
	if progression {
		return fmt.Errorf("%w: bytes advance by a constant %d", ErrLowEntropy, step)
	}
	if distinct < 8 {
		return fmt.Errorf("%w: only %d distinct bytes", ErrLowEntropy, distinct)
	}
	return nil
}

// ConstantTimeEqual compares a and b in time that depends only on their
// lengths. Two empty slices are equal.
func ConstantTimeEqual(a, b []byte) bool {
	return len(a) == len(b) && subtle.ConstantTimeCompare(a, b) == 1
}

func wipe[T byte | int](s []T) {
	for i := range s {
		s[i] = 0
	}
	runtime.KeepAlive(s)
}

// Zeroize clears secret bytes in place.
func Zeroize(b []byte) { wipe(b) }

// ZeroizeInts clears a private braid word in place.
func ZeroizeInts(s []int) { wipe(s) }
