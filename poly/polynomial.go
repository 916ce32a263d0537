package poly

import (
	"fmt"
	"sort"
	"strings"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/field"
	"github.com/BackendStack21/braidcrypt-go/permutation"
)

// Polynomial is a sum of monomials with distinct terms and non-zero
// coefficients. Standard polynomials only have non-negative exponents,
// Laurent polynomials allow negative ones.
//
// Polynomials are values: arithmetic returns new polynomials and shares
// nothing mutable with its operands. The zero value is a zero polynomial
// that adopts the dimension of whatever it is combined with. Combining two
// polynomials of different non-zero dimensions panics.
type Polynomial[T field.Element[T]] struct {
	dim     int
	laurent bool
	terms   map[string]Monomial[T]
}

// Zero returns the zero polynomial in dim variables.
func Zero[T field.Element[T]](dim int, laurent bool) Polynomial[T] {
	return Polynomial[T]{dim: dim, laurent: laurent}
}

// Constant returns the constant polynomial c.
func Constant[T field.Element[T]](dim int, laurent bool, c T) Polynomial[T] {
	p := Zero[T](dim, laurent)
	p.insert(Monomial[T]{dim: dim, coef: c})
	return p
}

// New sums monomials into a polynomial. Negative exponents require a
// Laurent polynomial.
func New[T field.Element[T]](dim int, laurent bool, monomials ...Monomial[T]) (Polynomial[T], error) {
	if dim < 2 {
		return Polynomial[T]{}, fmt.Errorf("%w: polynomial dimension %d below 2", braidcrypt.ErrValidation, dim)
	}
	p := Zero[T](dim, laurent)
	for _, m := range monomials {
		if m.dim != dim {
			return Polynomial[T]{}, fmt.Errorf("%w: monomial in %d variables, polynomial in %d", braidcrypt.ErrDimensionMismatch, m.dim, dim)
		}
		if !laurent && m.term.HasNegative() {
			return Polynomial[T]{}, fmt.Errorf("%w: negative exponent in a standard polynomial", braidcrypt.ErrValidation)
		}
		p.insert(m)
	}
	return p, nil
}

// Laurent returns the Laurent monomial coef * term as a polynomial.
// It panics if term uses a variable outside dim.
func Laurent[T field.Element[T]](dim int, coef T, term Term) Polynomial[T] {
	m, err := NewMonomial(dim, coef, term)
	if err != nil {
		panic(err)
	}
	p := Zero[T](dim, true)
	p.insert(m)
	return p
}

// insert adds m into p in place, dropping the entry when it cancels.
func (p *Polynomial[T]) insert(m Monomial[T]) {
	if m.coef.IsZero() {
		return
	}
	k := m.term.key()
	if old, ok := p.terms[k]; ok {
		c := old.coef.Add(m.coef)
		if c.IsZero() {
			delete(p.terms, k)
			return
		}
		old.coef = c
		p.terms[k] = old
		return
	}
	if p.terms == nil {
		p.terms = make(map[string]Monomial[T])
	}
	m.dim = p.dim
	p.terms[k] = m
}

func (p Polynomial[T]) clone() Polynomial[T] {
	q := Polynomial[T]{dim: p.dim, laurent: p.laurent}
	if len(p.terms) > 0 {
		q.terms = make(map[string]Monomial[T], len(p.terms))
		for k, m := range p.terms {
			q.terms[k] = m
		}
	}
	return q
}

// shape resolves the dimension and ring of a binary operation.
func shape[T field.Element[T]](a, b Polynomial[T]) (int, bool) {
	switch {
	case a.dim == 0:
		return b.dim, b.laurent
	case b.dim == 0, a.dim == b.dim:
		return a.dim, a.laurent || b.laurent
	default:
		panic(fmt.Sprintf("poly: dimension mismatch %d != %d", a.dim, b.dim))
	}
}

// Dim is the number of indeterminates.
func (p Polynomial[T]) Dim() int { return p.dim }

// IsLaurent reports whether negative exponents are allowed.
func (p Polynomial[T]) IsLaurent() bool { return p.laurent }

// Len returns the number of non-zero terms.
func (p Polynomial[T]) Len() int {
	return len(p.terms)
}

// Monomials returns the terms in ascending Term order.
func (p Polynomial[T]) Monomials() []Monomial[T] {
	out := make([]Monomial[T], 0, len(p.terms))
	for _, m := range p.terms {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].term.Compare(out[j].term) < 0 })
	return out
}

// Coefficient returns the coefficient of t, zero when absent.
func (p Polynomial[T]) Coefficient(t Term) T {
	if m, ok := p.terms[t.key()]; ok {
		return m.coef
	}
	var z T
	return z.Zero()
}

// Add returns p + o.
func (p Polynomial[T]) Add(o Polynomial[T]) Polynomial[T] {
	dim, laurent := shape(p, o)
	r := p.clone()
	r.dim, r.laurent = dim, laurent
	for _, m := range o.terms {
		r.insert(m)
	}
	return r
}

// Neg returns -p.
func (p Polynomial[T]) Neg() Polynomial[T] {
	r := Zero[T](p.dim, p.laurent)
	for _, m := range p.terms {
		m.coef = m.coef.Neg()
		r.insert(m)
	}
	return r
}

// Sub returns p - o.
func (p Polynomial[T]) Sub(o Polynomial[T]) Polynomial[T] {
	return p.Add(o.Neg())
}

// Mul is the full distributive product.
func (p Polynomial[T]) Mul(o Polynomial[T]) Polynomial[T] {
	dim, laurent := shape(p, o)
	r := Zero[T](dim, laurent)
	for _, a := range p.terms {
		for _, b := range o.terms {
			r.insert(a.Mul(b))
		}
	}
	return r
}

// Scale multiplies every coefficient by c.
func (p Polynomial[T]) Scale(c T) Polynomial[T] {
	r := Zero[T](p.dim, p.laurent)
	for _, m := range p.terms {
		m.coef = m.coef.Mul(c)
		r.insert(m)
	}
	return r
}

// MulMonomial multiplies by a single monomial.
func (p Polynomial[T]) MulMonomial(m Monomial[T]) Polynomial[T] {
	r := Zero[T](p.dim, p.laurent)
	for _, a := range p.terms {
		r.insert(a.Mul(m))
	}
	return r
}

// DivMonomial divides by a non-zero monomial. For standard polynomials the
// division must be exact.
func (p Polynomial[T]) DivMonomial(m Monomial[T]) (Polynomial[T], error) {
	if m.IsZero() {
		return Polynomial[T]{}, fmt.Errorf("%w: division by the zero monomial", braidcrypt.ErrEvaluation)
	}
	inv := m.Inverse()
	r := p.MulMonomial(inv)
	if !r.laurent {
		for _, a := range r.terms {
			if a.term.HasNegative() {
				return Polynomial[T]{}, fmt.Errorf("%w: %s does not divide %s", braidcrypt.ErrEvaluation, m, p)
			}
		}
	}
	return r, nil
}

// IsZero reports whether p has no terms.
func (p Polynomial[T]) IsZero() bool {
	return len(p.terms) == 0
}

// IsNumber reports a constant polynomial, zero included.
func (p Polynomial[T]) IsNumber() bool {
	for _, m := range p.terms {
		if !m.term.IsConstant() {
			return false
		}
	}
	return true
}

// IsUnit reports whether p is invertible in its ring.
func (p Polynomial[T]) IsUnit() bool {
	if len(p.terms) != 1 {
		return false
	}
	for _, m := range p.terms {
		return m.IsUnit(p.laurent)
	}
	return false
}

// IsOne reports whether p is the constant 1.
func (p Polynomial[T]) IsOne() bool {
	if len(p.terms) != 1 {
		return false
	}
	m, ok := p.terms[Term(nil).key()]
	return ok && m.coef.IsOne()
}

// Equal compares term by term; dimensions are not compared, so the zero
// value equals every zero polynomial.
func (p Polynomial[T]) Equal(o Polynomial[T]) bool {
	if len(p.terms) != len(o.terms) {
		return false
	}
	for k, m := range p.terms {
		n, ok := o.terms[k]
		if !ok || !m.coef.Equal(n.coef) {
			return false
		}
	}
	return true
}

// Evaluate substitutes values[v] for t_v.
func (p Polynomial[T]) Evaluate(values []T) (T, error) {
	var z T
	result := z.Zero()
	if len(values) != p.dim && p.dim != 0 {
		return result, fmt.Errorf("%w: %d values for %d variables", braidcrypt.ErrDimensionMismatch, len(values), p.dim)
	}
	for _, m := range p.terms {
		v, err := m.Evaluate(values)
		if err != nil {
			return z.Zero(), err
		}
		result = result.Add(v)
	}
	return result, nil
}

// Permute relabels variable v as perm[v].
func (p Polynomial[T]) Permute(perm permutation.Permutation) Polynomial[T] {
	r := Zero[T](p.dim, p.laurent)
	if len(p.terms) > 0 {
		r.terms = make(map[string]Monomial[T], len(p.terms))
	}
	for _, m := range p.terms {
		m = m.Permute(perm)
		r.terms[m.term.key()] = m
	}
	return r
}

// String renders the terms in ascending order joined by " + ".
func (p Polynomial[T]) String() string {
	if len(p.terms) == 0 {
		return "0"
	}
	ms := p.Monomials()
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = m.String()
	}
	return strings.Join(parts, " + ")
}
