package poly

import (
	"fmt"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/field"
	"github.com/BackendStack21/braidcrypt-go/permutation"
)

// Monomial is coef * term in dim variables.
type Monomial[T field.Element[T]] struct {
	dim  int
	coef T
	term Term
}

// NewMonomial checks that dim >= 2 and that the term only uses variables
// below dim.
func NewMonomial[T field.Element[T]](dim int, coef T, term Term) (Monomial[T], error) {
	if dim < 2 {
		return Monomial[T]{}, fmt.Errorf("%w: monomial dimension %d below 2", braidcrypt.ErrValidation, dim)
	}
	if term.MaxVar() >= dim {
		return Monomial[T]{}, fmt.Errorf("%w: variable t%d in dimension %d", braidcrypt.ErrDimensionMismatch, term.MaxVar(), dim)
	}
	return Monomial[T]{dim: dim, coef: coef, term: term}, nil
}

// Dim is the number of indeterminates.
func (m Monomial[T]) Dim() int { return m.dim }

// Coef returns the coefficient.
func (m Monomial[T]) Coef() T { return m.coef }

// Term returns the exponent vector.
func (m Monomial[T]) Term() Term { return m.term }

// IsZero reports a zero coefficient. The term is irrelevant then.
func (m Monomial[T]) IsZero() bool {
	return m.coef.IsZero()
}

// IsNumber reports a constant monomial.
func (m Monomial[T]) IsNumber() bool {
	return m.IsZero() || m.term.IsConstant()
}

// IsUnit reports whether m is invertible: a non-zero constant, or in the
// Laurent ring any non-zero monomial.
func (m Monomial[T]) IsUnit(laurent bool) bool {
	if m.IsZero() {
		return false
	}
	return laurent || m.term.IsConstant()
}

// Equal compares coefficient and term. Any two zero monomials are equal
// whatever their terms.
func (m Monomial[T]) Equal(o Monomial[T]) bool {
	if m.IsZero() || o.IsZero() {
		return m.IsZero() && o.IsZero()
	}
	return m.coef.Equal(o.coef) && m.term.Equal(o.term)
}

// Mul multiplies coefficients and adds exponents.
func (m Monomial[T]) Mul(o Monomial[T]) Monomial[T] {
	return Monomial[T]{dim: max(m.dim, o.dim), coef: m.coef.Mul(o.coef), term: m.term.Mul(o.term)}
}

// Inverse returns 1/m in the Laurent ring. Panics on zero.
func (m Monomial[T]) Inverse() Monomial[T] {
	return Monomial[T]{dim: m.dim, coef: m.coef.Inverse(), term: m.term.Inverse()}
}

// Permute relabels variables by p.
func (m Monomial[T]) Permute(p permutation.Permutation) Monomial[T] {
	return Monomial[T]{dim: m.dim, coef: m.coef, term: m.term.Permute(p)}
}

// Evaluate substitutes values[v] for t_v. A negative power of a zero value
// fails with ErrEvaluation.
func (m Monomial[T]) Evaluate(values []T) (T, error) {
	if len(values) != m.dim {
		return m.coef.Zero(), fmt.Errorf("%w: %d values for %d variables", braidcrypt.ErrDimensionMismatch, len(values), m.dim)
	}
	result := m.coef
	if result.IsZero() {
		return result, nil
	}
	for _, p := range m.term {
		x := values[p.Var]
		e := p.Exp
		if e < 0 {
			if x.IsZero() {
				return m.coef.Zero(), fmt.Errorf("%w: t%d^%d at zero", braidcrypt.ErrEvaluation, p.Var, p.Exp)
			}
			x, e = x.Inverse(), -e
		}
		result = result.Mul(pow(x, e))
	}
	return result, nil
}

// String renders m as c*t0^e0*t1^e1..., skipping zero exponents.
func (m Monomial[T]) String() string {
	if m.term.IsConstant() {
		return m.coef.String()
	}
	if m.coef.IsOne() {
		return m.term.String()
	}
	return m.coef.String() + "*" + m.term.String()
}

func pow[T field.Element[T]](x T, e int) T {
	result := x.One()
	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(x)
		}
		x = x.Mul(x)
		e >>= 1
	}
	return result
}
