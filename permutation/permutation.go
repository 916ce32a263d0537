// Package permutation implements elements of the symmetric group S_n as they
// appear in braid computations: the image of a braid in S_n tracks where
// every strand ends up.
//
// Composition follows one convention throughout the module:
//
//	(p * q)[i] = p[q[i]]
//
// and a braid word w induces the permutation obtained by swapping positions
// |g|-1 and |g| of the identity array for every letter g, left to right.
// With these choices the induced permutation is a homomorphism:
// perm(w1 w2) = perm(w1) * perm(w2).
package permutation

import (
	"fmt"
	"strconv"
	"strings"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
)

// Permutation maps index i to p[i]. The zero value is the empty
// permutation, which behaves as the identity of any size.
type Permutation []int

// Identity returns the identity permutation on n points.
func Identity(n int) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// Delta returns the half twist i -> n-1-i, the permutation of the Garside
// element.
func Delta(n int) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = n - 1 - i
	}
	return p
}

// New validates values as a bijection on [0, len(values)) and returns a copy.
func New(values []int) (Permutation, error) {
	seen := make([]bool, len(values))
	for i, v := range values {
		if v < 0 || v >= len(values) {
			return nil, fmt.Errorf("%w: permutation value %d at %d outside [0,%d)", braidcrypt.ErrValidation, v, i, len(values))
		}
		if seen[v] {
			return nil, fmt.Errorf("%w: permutation value %d repeated", braidcrypt.ErrValidation, v)
		}
		seen[v] = true
	}
	return append(Permutation(nil), values...), nil
}

// FromCycles builds the permutation on n points sending every cycle element
// to its successor.
func FromCycles(n int, cycles [][]int) (Permutation, error) {
	p := Identity(n)
	used := make([]bool, n)
	for _, c := range cycles {
		for k, v := range c {
			if v < 0 || v >= n {
				return nil, fmt.Errorf("%w: cycle element %d outside [0,%d)", braidcrypt.ErrValidation, v, n)
			}
			if used[v] {
				return nil, fmt.Errorf("%w: cycles are not disjoint at %d", braidcrypt.ErrValidation, v)
			}
			used[v] = true
			p[v] = c[(k+1)%len(c)]
		}
	}
	return p, nil
}

// Size returns the number of points.
func (p Permutation) Size() int {
	return len(p)
}

// At returns p[i]; points beyond the size are fixed.
func (p Permutation) At(i int) int {
	if i >= len(p) {
		return i
	}
	return p[i]
}

// Clone returns an independent copy.
func (p Permutation) Clone() Permutation {
	return append(Permutation(nil), p...)
}

// Extend returns p on max(n, Size()) points, fixing the new points.
func (p Permutation) Extend(n int) Permutation {
	if n <= len(p) {
		return p
	}
	q := make(Permutation, n)
	copy(q, p)
	for i := len(p); i < n; i++ {
		q[i] = i
	}
	return q
}

// Equal reports whether p and q have the same size and values. Unlike the
// arithmetic operations it does not extend the shorter operand.
func (p Permutation) Equal(q Permutation) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Compare orders by size first, then lexicographically.
func (p Permutation) Compare(q Permutation) int {
	if len(p) != len(q) {
		if len(p) < len(q) {
			return -1
		}
		return 1
	}
	for i := range p {
		if p[i] != q[i] {
			if p[i] < q[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Mul returns p * q. The shorter operand is extended with fixed points.
func (p Permutation) Mul(q Permutation) Permutation {
	n := max(len(p), len(q))
	a, b := p.Extend(n), q.Extend(n)
	r := make(Permutation, n)
	for i := range r {
		r[i] = a[b[i]]
	}
	return r
}

// Inverse returns p^-1.
func (p Permutation) Inverse() Permutation {
	r := make(Permutation, len(p))
	for i, v := range p {
		r[v] = i
	}
	return r
}

// Pow returns p^k by binary exponentiation; negative k uses the inverse.
func (p Permutation) Pow(k int) Permutation {
	base := p
	if k < 0 {
		base = p.Inverse()
		k = -k
	}
	result := Identity(len(p))
	for k > 0 {
		if k&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		k >>= 1
	}
	return result
}

// Change swaps the values at positions i and j in place, i.e. p becomes
// p * (i j).
func (p Permutation) Change(i, j int) {
	p[i], p[j] = p[j], p[i]
}

// IsIdentity reports whether every point is fixed.
func (p Permutation) IsIdentity() bool {
	for i, v := range p {
		if i != v {
			return false
		}
	}
	return true
}

// Length returns the number of inversions, which is the length of a
// geodesic word.
func (p Permutation) Length() int {
	n := 0
	for i := range p {
		for j := i + 1; j < len(p); j++ {
			if p[i] > p[j] {
				n++
			}
		}
	}
	return n
}

// Geodesic returns a minimal sequence of adjacent transpositions, as
// positive generator indices in 1..n-1, whose product is p.
func (p Permutation) Geodesic() []int {
	a := p.Clone()
	var swaps []int
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j-1] > a[j]; j-- {
			a.Change(j-1, j)
			swaps = append(swaps, j)
		}
	}
	for l, r := 0, len(swaps)-1; l < r; l, r = l+1, r-1 {
		swaps[l], swaps[r] = swaps[r], swaps[l]
	}
	return swaps
}

// Cycles decomposes p into disjoint cycles of length at least two, each
// starting at its smallest point.
func (p Permutation) Cycles() [][]int {
	var out [][]int
	seen := make([]bool, len(p))
	for i := range p {
		if seen[i] || p[i] == i {
			continue
		}
		var c []int
		for j := i; !seen[j]; j = p[j] {
			seen[j] = true
			c = append(c, j)
		}
		out = append(out, c)
	}
	return out
}

// String renders p as "[0 2 1]".
func (p Permutation) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Parse reads the String form back.
func Parse(s string) (Permutation, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("%w: permutation must be bracketed", braidcrypt.ErrValidation)
	}
	fields := strings.Fields(strings.ReplaceAll(s[1:len(s)-1], ",", " "))
	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", braidcrypt.ErrValidation, err)
		}
		values[i] = v
	}
	return New(values)
}
