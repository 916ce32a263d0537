package kayawood

import (
	"fmt"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/core"
	"github.com/BackendStack21/braidcrypt-go/field"
)

// PublicParameters are the shared inputs of a Kayawood run: the protocol
// parameters and one t-value per strand, where t[A] = t[B] = 1.
type PublicParameters[T field.Element[T]] struct {
	braidcrypt.KayawoodParams
	TValues []T
}

// NewPublicParameters validates p and t.
func NewPublicParameters[T field.Element[T]](p braidcrypt.KayawoodParams, t []T) (PublicParameters[T], error) {
	if err := core.ValidateKayawood(p); err != nil {
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
	if !t[p.A].IsOne() || !t[p.B].IsOne() {
		return PublicParameters[T]{}, fmt.Errorf("%w: t[%d] and t[%d] must be 1", braidcrypt.ErrValidation, p.A, p.B)
	}
	return PublicParameters[T]{KayawoodParams: p, TValues: append([]T(nil), t...)}, nil
}

// GeneratePublicParameters draws non-trivial t-values for every strand
// except A and B, which get 1.
func GeneratePublicParameters[T field.Element[T]](p braidcrypt.KayawoodParams, rng field.Rand) (PublicParameters[T], error) {
	if err := core.ValidateKayawood(p); err != nil {
		return PublicParameters[T]{}, err
	}
	one := field.One[T]()
	t, err := field.RandomTValues[T](p.N, rng, map[int]T{p.A: one, p.B: one})
	if err != nil {
		return PublicParameters[T]{}, err
	}
	return NewPublicParameters(p, t)
}

func (pp PublicParameters[T]) with(mutate func(*braidcrypt.KayawoodParams)) (PublicParameters[T], error) {
	p := pp.KayawoodParams
	mutate(&p)
	return NewPublicParameters(p, pp.TValues)
}

// WithZLength returns a copy with a new setup word length range.
func (pp PublicParameters[T]) WithZLength(lo, hi int) (PublicParameters[T], error) {
	return pp.with(func(p *braidcrypt.KayawoodParams) { p.ZMinLength, p.ZMaxLength = lo, hi })
}

// WithPrivateLength returns a copy with a new private word length range.
func (pp PublicParameters[T]) WithPrivateLength(lo, hi int) (PublicParameters[T], error) {
	return pp.with(func(p *braidcrypt.KayawoodParams) { p.PrivateMinLength, p.PrivateMaxLength = lo, hi })
}

// WithCloakLength returns a copy with a new cloaking conjugator length range.
func (pp PublicParameters[T]) WithCloakLength(lo, hi int) (PublicParameters[T], error) {
	return pp.with(func(p *braidcrypt.KayawoodParams) { p.CloakMinLength, p.CloakMaxLength = lo, hi })
}
