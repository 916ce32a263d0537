package field

import "strconv"

// GF256 is an element of GF(2^8) modulo x^8 + x^4 + x^3 + x^2 + 1 (0x11D).
type GF256 uint8

const (
	gfModulus = 0x11D
	gfOrder   = 255 // size of the multiplicative group
)

var (
	gfLog [256]uint8
	gfExp [512]uint8
)

func init() {
	var x uint16 = 1
	for i := 0; i < gfOrder; i++ {
		gfExp[i] = uint8(x)
		gfLog[x] = uint8(i)
		x <<= 1
		if x&0x100 != 0 {
			x ^= gfModulus
		}
	}
	// Second half for wraparound.
	for i := 0; i < gfOrder; i++ {
		gfExp[i+gfOrder] = gfExp[i]
	}
}

// Addition and subtraction are both XOR in characteristic 2.
func (a GF256) Add(b GF256) GF256 { return a ^ b }
// Sub equals Add in characteristic 2.
func (a GF256) Sub(b GF256) GF256 { return a ^ b }
func (a GF256) Neg() GF256 { return a }

// Mul multiplies through the log and exp tables.
func (a GF256) Mul(b GF256) GF256 {
	if a == 0 || b == 0 {
		return 0
	}
	return GF256(gfExp[int(gfLog[a])+int(gfLog[b])])
}

// Inverse panics on zero.
func (a GF256) Inverse() GF256 {
	if a == 0 {
		panic("field: inverse of zero")
	}
	return GF256(gfExp[gfOrder-int(gfLog[a])])
}

// Div panics if b is zero.
func (a GF256) Div(b GF256) GF256 {
	if b == 0 {
		panic("field: division by zero")
	}
	if a == 0 {
		return 0
	}
	return GF256(gfExp[int(gfLog[a])+gfOrder-int(gfLog[b])])
}

// The remaining methods satisfy Element.
func (a GF256) IsZero() bool { return a == 0 }
func (a GF256) IsOne() bool { return a == 1 }
func (a GF256) Equal(b GF256) bool { return a == b }
func (GF256) Zero() GF256 { return 0 }
func (GF256) One() GF256 { return 1 }
func (GF256) Order() uint64 { return 256 }
func (a GF256) Uint64() uint64 { return uint64(a) }
func (a GF256) String() string { return strconv.Itoa(int(a)) }
func (GF256) Random(r Rand) GF256 { return GF256(r.Intn(256)) }

// FromUint64 returns the element whose byte value is x.
func (GF256) FromUint64(x uint64) (GF256, bool) {
	return GF256(x), x < 256
}

// FromInt maps an integer to its image under Z -> GF(2^8), that is its
// parity, matching the characteristic of the field.
func (GF256) FromInt(x int64) GF256 {
	return GF256(x & 1)
}
