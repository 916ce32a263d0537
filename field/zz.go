package field

import "strconv"

// Modulus fixes the prime of a ZZ field at the type level. Primes must be
// below 2^32 so products fit in a uint64.
type Modulus interface {
	Prime() uint64
}

// Ready made moduli.
type (
	Mod5        struct{}
	Mod7        struct{}
	Mod13       struct{}
	Mod31       struct{}
	Mod257      struct{}
	Mod32003    struct{}
	ModMersenne struct{} // 2^31 - 1
)

// Prime returns the modulus.
func (Mod5) Prime() uint64 { return 5 }
func (Mod7) Prime() uint64 { return 7 }
func (Mod13) Prime() uint64 { return 13 }
func (Mod31) Prime() uint64 { return 31 }
func (Mod257) Prime() uint64 { return 257 }
func (Mod32003) Prime() uint64 { return 32003 }
func (ModMersenne) Prime() uint64 { return 2147483647 }

// ZZ is the prime field Z/pZ where p is given by M.
type ZZ[M Modulus] struct {
	v uint64
}

// Instantiated prime fields.
type (
	ZZ5     = ZZ[Mod5]
	ZZ7     = ZZ[Mod7]
	ZZ13    = ZZ[Mod13]
	ZZ31    = ZZ[Mod31]
	ZZ257   = ZZ[Mod257]
	ZZ32003 = ZZ[Mod32003]
	P31     = ZZ[ModMersenne]
)

func prime[M Modulus]() uint64 {
	var m M
	return m.Prime()
}

// NewZZ reduces x into the field.
func NewZZ[M Modulus](x int64) ZZ[M] {
	p := int64(prime[M]())
	r := x % p
	if r < 0 {
		r += p
	}
	return ZZ[M]{v: uint64(r)}
}

// Add returns a + b mod p.
func (a ZZ[M]) Add(b ZZ[M]) ZZ[M] {
	s := a.v + b.v
	if p := prime[M](); s >= p {
		s -= p
	}
	return ZZ[M]{v: s}
}

// Sub returns a - b mod p.
func (a ZZ[M]) Sub(b ZZ[M]) ZZ[M] {
	if a.v >= b.v {
		return ZZ[M]{v: a.v - b.v}
	}
	return ZZ[M]{v: prime[M]() - b.v + a.v}
}

// Mul returns a * b mod p.
func (a ZZ[M]) Mul(b ZZ[M]) ZZ[M] {
	return ZZ[M]{v: a.v * b.v % prime[M]()}
}

// Neg returns -a mod p.
func (a ZZ[M]) Neg() ZZ[M] {
	if a.v == 0 {
		return a
	}
	return ZZ[M]{v: prime[M]() - a.v}
}

// Inverse uses Fermat's little theorem. Panics on zero.
func (a ZZ[M]) Inverse() ZZ[M] {
	if a.v == 0 {
		panic("field: inverse of zero")
	}
	return a.Pow(prime[M]() - 2)
}

// Div returns a / b. Panics if b is zero.
func (a ZZ[M]) Div(b ZZ[M]) ZZ[M] {
	return a.Mul(b.Inverse())
}

// Pow returns a^e by square and multiply.
func (a ZZ[M]) Pow(e uint64) ZZ[M] {
	p := prime[M]()
	result, base := uint64(1)%p, a.v
	for e > 0 {
		if e&1 == 1 {
			result = result * base % p
		}
		base = base * base % p
		e >>= 1
	}
	return ZZ[M]{v: result}
}

// The remaining methods satisfy Element.
func (a ZZ[M]) IsZero() bool { return a.v == 0 }
func (a ZZ[M]) IsOne() bool { return a.v == 1 }
func (a ZZ[M]) Equal(b ZZ[M]) bool { return a.v == b.v }
func (ZZ[M]) Zero() ZZ[M] { return ZZ[M]{} }
func (ZZ[M]) One() ZZ[M] { return ZZ[M]{v: 1} }
func (ZZ[M]) FromInt(x int64) ZZ[M] { return NewZZ[M](x) }
func (ZZ[M]) FromUint64(x uint64) (ZZ[M], bool) { return ZZ[M]{v: x}, x < prime[M]() }
func (ZZ[M]) Order() uint64 { return prime[M]() }
func (a ZZ[M]) Uint64() uint64 { return a.v }
func (a ZZ[M]) String() string { return strconv.FormatUint(a.v, 10) }
func (ZZ[M]) Random(r Rand) ZZ[M] { return ZZ[M]{v: uint64(r.Intn(int(prime[M]())))} }
