package burau

import (
	"fmt"
	"strings"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/braid"
	"github.com/BackendStack21/braidcrypt-go/field"
	"github.com/BackendStack21/braidcrypt-go/matrix"
	"github.com/BackendStack21/braidcrypt-go/permutation"
	"github.com/BackendStack21/braidcrypt-go/poly"
)

// Element is a braid in the colored Burau representation: an n x n matrix
// of Laurent polynomials in t_0..t_{n-1} paired with the permutation the
// braid induces on the strands.
//
// Products compose as (M1, s1)(M2, s2) = (M1 * s1(M2), s1 * s2), where
// s1(M2) renames every variable t_j of M2 to t_{s1[j]}.
type Element[T field.Element[T]] struct {
	n    int
	mat  *matrix.Matrix[poly.Polynomial[T]]
	perm permutation.Permutation
}

// NewElement returns the identity of B_n.
func NewElement[T field.Element[T]](n int) (*Element[T], error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: braid index %d below 2", braidcrypt.ErrValidation, n)
	}
	one := poly.Constant[T](n, true, field.One[T]())
	mat, err := matrix.Identity(n, poly.Zero[T](n, true), one)
	if err != nil {
		return nil, err
	}
	return &Element[T]{n: n, mat: mat, perm: permutation.Identity(n)}, nil
}

// NewGenerator returns the element of the single letter g.
func NewGenerator[T field.Element[T]](n, g int) (*Element[T], error) {
	if err := checkGenerator(n, g); err != nil {
		return nil, err
	}
	e, err := NewElement[T](n)
	if err != nil {
		return nil, err
	}
	return e, e.MulGenerator(g)
}

// NewFromWord returns the element of w.
func NewFromWord[T field.Element[T]](n int, w braid.Word) (*Element[T], error) {
	e, err := NewElement[T](n)
	if err != nil {
		return nil, err
	}
	if err := e.MulWord(w); err != nil {
		return nil, err
	}
	return e, nil
}

// N is the number of strands.
func (e *Element[T]) N() int { return e.n }

// Matrix returns a copy of the polynomial matrix.
func (e *Element[T]) Matrix() *matrix.Matrix[poly.Polynomial[T]] { return e.mat.Clone() }

// Permutation returns a copy of the induced permutation.
func (e *Element[T]) Permutation() permutation.Permutation { return e.perm.Clone() }

// Clone returns a deep copy.
func (e *Element[T]) Clone() *Element[T] {
	return &Element[T]{n: e.n, mat: e.mat.Clone(), perm: e.perm.Clone()}
}

// MulGenerator multiplies e on the right by the letter g in place. Only
// three columns change, so no full matrix product is formed.
func (e *Element[T]) MulGenerator(g int) error {
	if err := checkGenerator(e.n, g); err != nil {
		return err
	}
	var c, v, exp int
	if g > 0 {
		c, v, exp = g-1, e.perm[g-1], 1
	} else {
		c, v, exp = -g-1, e.perm[-g], -1
	}
	t, err := poly.NewMonomial(e.n, field.One[T](), poly.VarTerm(v, exp))
	if err != nil {
		return err
	}
	columnStep(e.mat, c, g > 0, func(x poly.Polynomial[T]) poly.Polynomial[T] {
		return x.MulMonomial(t)
	})
	e.perm.Change(c, c+1)
	return nil
}

// MulWord multiplies e on the right by every letter of w. The word is
// validated first, so e is unchanged on error.
func (e *Element[T]) MulWord(w braid.Word) error {
	if err := w.Validate(e.n); err != nil {
		return err
	}
	for _, g := range w {
		if err := e.MulGenerator(g); err != nil {
			return err
		}
	}
	return nil
}

// Mul returns the product e * o.
func (e *Element[T]) Mul(o *Element[T]) (*Element[T], error) {
	if e.n != o.n {
		return nil, fmt.Errorf("%w: B_%d times B_%d", braidcrypt.ErrDimensionMismatch, e.n, o.n)
	}
	moved := o.mat.Map(func(p poly.Polynomial[T]) poly.Polynomial[T] { return p.Permute(e.perm) })
	mat, err := e.mat.Mul(moved)
	if err != nil {
		return nil, err
	}
	return &Element[T]{n: e.n, mat: mat, perm: e.perm.Mul(o.perm)}, nil
}

// Evaluate substitutes t_j = values[perm[j]] in every entry. A nil perm
// means the identity.
func (e *Element[T]) Evaluate(values []T, perm permutation.Permutation) (*matrix.Matrix[T], error) {
	if len(values) != e.n {
		return nil, fmt.Errorf("%w: %d t-values for B_%d", braidcrypt.ErrDimensionMismatch, len(values), e.n)
	}
	if perm != nil && perm.Size() != e.n {
		return nil, fmt.Errorf("%w: permutation of %d strands for B_%d", braidcrypt.ErrDimensionMismatch, perm.Size(), e.n)
	}
	return matrix.Convert(e.mat, field.Zero[T](), func(p poly.Polynomial[T]) (T, error) {
		if perm != nil {
			p = p.Permute(perm)
		}
		return p.Evaluate(values)
	})
}

// Equal compares the matrices and permutations.
func (e *Element[T]) Equal(o *Element[T]) bool {
	return e.n == o.n && e.perm.Equal(o.perm) && e.mat.Equal(o.mat)
}

// String prints the permutation followed by the matrix rows.
func (e *Element[T]) String() string {
	var sb strings.Builder
	sb.WriteString("perm ")
	sb.WriteString(e.perm.String())
	sb.WriteByte('\n')
	sb.WriteString(e.mat.String())
	return sb.String()
}
