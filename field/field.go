// Package field provides the finite fields braid group computations are
// evaluated over.
//
// Algorithms in the other packages are generic over Element, so any type
// with field arithmetic can be plugged in. Two families ship with the
// package: prime fields ZZ[M] with the modulus fixed at the type level, and
// the binary field GF256.
package field

import (
	"fmt"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
)

// Rand is the randomness a field needs to sample elements.
type Rand interface {
	Intn(n int) int
}

// Element is the constraint satisfied by field element types. Operations
// return new values and never modify the receiver. Inverse and Div panic on
// a zero divisor, like integer division.
type Element[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	Neg() T
	Inverse() T
	IsZero() bool
	IsOne() bool
	Equal(T) bool
	Zero() T
	One() T
	FromInt(int64) T
	FromUint64(uint64) (T, bool)
	Random(r Rand) T
	Order() uint64
	Uint64() uint64
	String() string
}

// maxSampleAttempts bounds the rejection loop of RandomNonTrivial.
const maxSampleAttempts = 1024

// FromInt converts an integer into T.
func FromInt[T Element[T]](x int64) T {
	var z T
	return z.FromInt(x)
}

// One returns the multiplicative identity of T.
func One[T Element[T]]() T {
	var z T
	return z.One()
}

// Zero returns the additive identity of T.
func Zero[T Element[T]]() T {
	var z T
	return z.Zero()
}

// RandomNonTrivial draws an element that is neither 0 nor 1.
func RandomNonTrivial[T Element[T]](r Rand) (T, error) {
	var z T
	if z.Order() <= 2 {
		return z, fmt.Errorf("%w: field of order %d has no element besides 0 and 1", braidcrypt.ErrValidation, z.Order())
	}
	for i := 0; i < maxSampleAttempts; i++ {
		v := z.Random(r)
		if !v.IsZero() && !v.IsOne() {
			return v, nil
		}
	}
	return z, fmt.Errorf("%w: sampling a non-trivial field element", braidcrypt.ErrExhausted)
}

// RandomTValues draws n non-trivial t-values. Positions present in fixed
// take the given value instead.
func RandomTValues[T Element[T]](n int, r Rand, fixed map[int]T) ([]T, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 t-values, got %d", braidcrypt.ErrValidation, n)
	}
	for i := range fixed {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("%w: fixed t-value position %d outside [0,%d)", braidcrypt.ErrIndexOutOfRange, i, n)
		}
	}
	out := make([]T, n)
	for i := range out {
		if v, ok := fixed[i]; ok {
			out[i] = v
			continue
		}
		v, err := RandomNonTrivial[T](r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// FromUint64 decodes the canonical value returned by Uint64.
func FromUint64[T Element[T]](x uint64) (T, error) {
	var z T
	v, ok := z.FromUint64(x)
	if !ok {
		return v, fmt.Errorf("%w: %d is not a canonical element of a field of order %d", braidcrypt.ErrMalformed, x, z.Order())
	}
	return v, nil
}

// Bytes encodes a vector of elements as little-endian uint64 values.
func Bytes[T Element[T]](values []T) []byte {
	out := make([]byte, 0, 8*len(values))
	for _, v := range values {
		x := v.Uint64()
		out = append(out, byte(x), byte(x>>8), byte(x>>16), byte(x>>24),
			byte(x>>32), byte(x>>40), byte(x>>48), byte(x>>56))
	}
	return out
}
