package burau

import (
	"github.com/BackendStack21/braidcrypt-go/braid"
	"github.com/BackendStack21/braidcrypt-go/field"
	"github.com/BackendStack21/braidcrypt-go/matrix"
	"github.com/BackendStack21/braidcrypt-go/utils"
)

// IdentityChecker tests braid words for non-triviality by E-multiplying a
// random unit. A trivial braid always maps the unit to itself, so a
// changed unit proves the word is non-trivial. An unchanged unit is only
// strong evidence of triviality.
type IdentityChecker[T field.Element[T]] struct {
	unit *Projection[T]
}

// NewIdentityChecker draws independent non-trivial t-values for n strands.
func NewIdentityChecker[T field.Element[T]](n int, rng field.Rand) (*IdentityChecker[T], error) {
	t, err := field.RandomTValues[T](n, rng, nil)
	if err != nil {
		return nil, err
	}
	unit, err := NewProjection(t)
	if err != nil {
		return nil, err
	}
	return &IdentityChecker[T]{unit: unit}, nil
}

// NewDefaultIdentityChecker works over the 31-bit Mersenne prime field.
func NewDefaultIdentityChecker(n int, rng field.Rand) (*IdentityChecker[field.P31], error) {
	return NewIdentityChecker[field.P31](n, rng)
}

// IsNonTrivial reports whether w certainly is not the trivial braid.
func (c *IdentityChecker[T]) IsNonTrivial(w braid.Word) (bool, error) {
	p, err := c.unit.Apply(w)
	if err != nil {
		return false, err
	}
	return !p.Equal(c.unit), nil
}

// AreDifferent reports whether w1 and w2 certainly are different braids.
func (c *IdentityChecker[T]) AreDifferent(w1, w2 braid.Word) (bool, error) {
	return c.IsNonTrivial(braid.Concat(w1, w2.Inverse()))
}

// IsNonTrivialBatch checks several words in parallel.
func (c *IdentityChecker[T]) IsNonTrivialBatch(words []braid.Word) ([]bool, error) {
	return utils.MapErr(len(words), func(i int) (bool, error) {
		return c.IsNonTrivial(words[i])
	})
}

// ConjugacyChecker compares characteristic polynomials of projections taken
// with one t-value on every strand. There the colored representation
// collapses to the classical Burau one and conjugate braids give similar
// matrices, so different polynomials prove the braids are not conjugate.
type ConjugacyChecker[T field.Element[T]] struct {
	unit *Projection[T]
}

// NewConjugacyChecker draws a single non-trivial t-value for n strands.
func NewConjugacyChecker[T field.Element[T]](n int, rng field.Rand) (*ConjugacyChecker[T], error) {
	v, err := field.RandomNonTrivial[T](rng)
	if err != nil {
		return nil, err
	}
	t := make([]T, n)
	for i := range t {
		t[i] = v
	}
	unit, err := NewProjection(t)
	if err != nil {
		return nil, err
	}
	return &ConjugacyChecker[T]{unit: unit}, nil
}

// NewDefaultConjugacyChecker works over the 31-bit Mersenne prime field.
func NewDefaultConjugacyChecker(n int, rng field.Rand) (*ConjugacyChecker[field.P31], error) {
	return NewConjugacyChecker[field.P31](n, rng)
}

func (c *ConjugacyChecker[T]) charPoly(w braid.Word) ([]T, error) {
	p, err := c.unit.Apply(w)
	if err != nil {
		return nil, err
	}
	return matrix.CharPoly(p.mat)
}

// AreNotConjugate returns true only when w1 and w2 are provably not
// conjugate. False means the test could not tell them apart.
func (c *ConjugacyChecker[T]) AreNotConjugate(w1, w2 braid.Word) (bool, error) {
	p1, err := c.charPoly(w1)
	if err != nil {
		return false, err
	}
	p2, err := c.charPoly(w2)
	if err != nil {
		return false, err
	}
	return !sameValues(p1, p2), nil
}

// AreNotConjugateBatch checks several pairs in parallel.
func (c *ConjugacyChecker[T]) AreNotConjugateBatch(pairs [][2]braid.Word) ([]bool, error) {
	return utils.MapErr(len(pairs), func(i int) (bool, error) {
		return c.AreNotConjugate(pairs[i][0], pairs[i][1])
	})
}
