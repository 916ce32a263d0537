package walnut

import (
	"fmt"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/core"
	"github.com/BackendStack21/braidcrypt-go/field"
)

// PublicParameters are the protocol parameters plus one t-value per
// strand. The t-values at A and B must satisfy the precondition of the
// stabilizer the signer is built with.
type PublicParameters[T field.Element[T]] struct {
	braidcrypt.WalnutParams
	TValues []T
}

// NewPublicParameters validates p and t.
func NewPublicParameters[T field.Element[T]](p braidcrypt.WalnutParams, t []T) (PublicParameters[T], error) {
	if err := core.ValidateWalnut(p); err != nil {
		return PublicParameters[T]{}, err
	}
	if len(t) != p.N {
		return PublicParameters[T]{}, fmt.Errorf("%w: %d t-values for %d strands", braidcrypt.ErrDimensionMismatch, len(t), p.N)
	}
	for i, v := range t {
		if v.IsZero() {
			return PublicParameters[T]{}, fmt.Errorf("%w: t-value %d is zero", braidcrypt.ErrValidation, i)
		}
	}
	return PublicParameters[T]{WalnutParams: p, TValues: append([]T(nil), t...)}, nil
}

// GeneratePublicParameters draws non-trivial t-values with t[A] = t[B] = 1,
// which suits the square stabilizers.
func GeneratePublicParameters[T field.Element[T]](p braidcrypt.WalnutParams, rng field.Rand) (PublicParameters[T], error) {
	if err := core.ValidateWalnut(p); err != nil {
		return PublicParameters[T]{}, err
	}
	one := field.One[T]()
	t, err := field.RandomTValues[T](p.N, rng, map[int]T{p.A: one, p.B: one})
	if err != nil {
		return PublicParameters[T]{}, err
	}
	return NewPublicParameters(p, t)
}

// WithPrivateLength returns a copy with a new private word length range.
func (pp PublicParameters[T]) WithPrivateLength(lo, hi int) (PublicParameters[T], error) {
	p := pp.WalnutParams
	p.PrivateMinLength, p.PrivateMaxLength = lo, hi
	return NewPublicParameters(p, pp.TValues)
}

// WithCloakLength returns a copy with a new cloaking conjugator length range.
func (pp PublicParameters[T]) WithCloakLength(lo, hi int) (PublicParameters[T], error) {
	p := pp.WalnutParams
	p.CloakMinLength, p.CloakMaxLength = lo, hi
	return NewPublicParameters(p, pp.TValues)
}
