// Package walnut implements Walnut signatures over the colored Burau
// projection.
//
// A private key is a pair of braids w1, w2 and the public key is their
// projections. A signature on the hash encoding E is the rewritten word
//
//	v1 w1^-1 v E v2 w2
//
// where v1, v and v2 are cloaking elements that vanish in the states they
// are multiplied into. A verifier checks Pub(w1) * sig == E * Pub(w2).
package walnut

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/braid"
	"github.com/BackendStack21/braidcrypt-go/burau"
	"github.com/BackendStack21/braidcrypt-go/cloaking"
	"github.com/BackendStack21/braidcrypt-go/field"
	"github.com/BackendStack21/braidcrypt-go/log"
	"github.com/BackendStack21/braidcrypt-go/permutation"
	"github.com/BackendStack21/braidcrypt-go/rewrite"
	"github.com/BackendStack21/braidcrypt-go/utils"
)

const (
	DomainPrivateKey = "braidcrypt-walnut-sk-v1"
	DomainSign       = "braidcrypt-walnut-sign-v1"
	DomainStabilizer = "braidcrypt-walnut-stab-v1"
	DomainRewrite    = "braidcrypt-walnut-rewrite-v1"
	DomainMessage    = "braidcrypt-walnut-msg-v1"
)

// PrivateKey holds the two secret braids.
type PrivateKey struct {
	W1 braid.Word `json:"w1"`
	W2 braid.Word `json:"w2"`
}

// Zeroize clears the secret braids.
func (sk *PrivateKey) Zeroize() {
	utils.ZeroizeInts(sk.W1)
	utils.ZeroizeInts(sk.W2)
	sk.W1, sk.W2 = nil, nil
}

// PublicKey holds the projections of the two secret braids.
type PublicKey[T field.Element[T]] struct {
	P1 *burau.Projection[T]
	P2 *burau.Projection[T]
}

type options struct {
	stabilizer cloaking.Stabilizer
	obfuscator braid.Obfuscator
	encoder    Encoder
	logger     log.Logger
}

// Option configures a Signer.
type Option func(*options)

// WithStabilizer sets the cloaking policy. The default is a square cloak
// on the strands A and B.
func WithStabilizer(s cloaking.Stabilizer) Option {
	return func(o *options) { o.stabilizer = s }
}

// WithObfuscator sets the obfuscator applied to signatures. The default
// is one stochastic rewriting obfuscator per Signer whose engines are
// reused across signatures. A braid.RandomizedObfuscator draws from the
// signing stream.
func WithObfuscator(ob braid.Obfuscator) Option {
	return func(o *options) { o.obfuscator = ob }
}

// WithEncoder sets the hash encoder. The default is PureEncoder.
func WithEncoder(e Encoder) Option {
	return func(o *options) { o.encoder = e }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Signer produces and checks Walnut signatures over T.
type Signer[T field.Element[T]] struct {
	params PublicParameters[T]
	opts   options
}

// New builds a signer for the given public parameters.
func New[T field.Element[T]](pp PublicParameters[T], opts ...Option) (*Signer[T], error) {
	pp, err := NewPublicParameters(pp.WalnutParams, pp.TValues)
	if err != nil {
		return nil, err
	}
	o := options{encoder: PureEncoder{}, logger: log.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.stabilizer == nil {
		s, err := cloaking.NewSquare(pp.N, pp.A, pp.B, pp.TValues,
			cloaking.WithLength(pp.CloakMinLength, pp.CloakMaxLength),
			cloaking.WithCanonical(pp.PureGenerators))
		if err != nil {
			return nil, err
		}
		o.stabilizer = s
	}
	if o.obfuscator == nil {
		ob, err := rewrite.NewObfuscator(pp.N, utils.NewSource([]byte(DomainRewrite)))
		if err != nil {
			return nil, err
		}
		o.obfuscator = ob
	}
	o.logger = o.logger.Named("walnut")
	return &Signer[T]{params: pp, opts: o}, nil
}

// Params returns the public parameters.
func (s *Signer[T]) Params() PublicParameters[T] { return s.params }

// GeneratePrivateKey draws w1 and w2, each with a non-trivial permutation.
func (s *Signer[T]) GeneratePrivateKey(rng *utils.Source) (*PrivateKey, error) {
	w1, err := s.privateWord(rng)
	if err != nil {
		return nil, err
	}
	w2, err := s.privateWord(rng)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{W1: w1, W2: w2}, nil
}

func (s *Signer[T]) privateWord(rng *utils.Source) (braid.Word, error) {
	n := s.params.N
	for attempt := 0; attempt < s.params.MaxAttempts; attempt++ {
		w := braid.RandomWord(n, rng.IntRange(s.params.PrivateMinLength, s.params.PrivateMaxLength), rng).FreeReduce()
		if !w.Permutation(n).IsIdentity() {
			return w, nil
		}
	}
	return nil, fmt.Errorf("%w: no private braid with a non-trivial permutation after %d attempts", braidcrypt.ErrExhausted, s.params.MaxAttempts)
}

// ComputePublicKey projects both private braids.
func (s *Signer[T]) ComputePublicKey(sk *PrivateKey) (*PublicKey[T], error) {
	if err := s.checkPrivateKey(sk); err != nil {
		return nil, err
	}
	unit, err := burau.NewProjection(s.params.TValues)
	if err != nil {
		return nil, err
	}
	p1, err := unit.Apply(sk.W1)
	if err != nil {
		return nil, err
	}
	p2, err := unit.Apply(sk.W2)
	if err != nil {
		return nil, err
	}
	return &PublicKey[T]{P1: p1, P2: p2}, nil
}

// GenerateKeyPair draws a private key and computes its public key.
func (s *Signer[T]) GenerateKeyPair(rng *utils.Source) (*PrivateKey, *PublicKey[T], error) {
	sk, err := s.GeneratePrivateKey(rng.Split(DomainPrivateKey))
	if err != nil {
		return nil, nil, err
	}
	pk, err := s.ComputePublicKey(sk)
	if err != nil {
		sk.Zeroize()
		return nil, nil, err
	}
	return sk, pk, nil
}

// GenerateKeyPairFromSeed is GenerateKeyPair on a stream derived from seed,
// which must be at least 32 bytes of real entropy.
func (s *Signer[T]) GenerateKeyPairFromSeed(seed []byte) (*PrivateKey, *PublicKey[T], error) {
	if len(seed) < 32 {
		return nil, nil, fmt.Errorf("%w: seed must be at least 32 bytes", braidcrypt.ErrValidation)
	}
	if err := utils.ValidateSeedEntropy(seed); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", braidcrypt.ErrValidation, err)
	}
	return s.GenerateKeyPair(utils.NewSource(seed))
}

func (s *Signer[T]) checkPrivateKey(sk *PrivateKey) error {
	n := s.params.N
	for _, w := range []braid.Word{sk.W1, sk.W2} {
		if err := w.Validate(n); err != nil {
			return err
		}
		if w.Permutation(n).IsIdentity() {
			return fmt.Errorf("%w: private braid has a trivial permutation", braidcrypt.ErrValidation)
		}
	}
	return nil
}

// Sign signs a message hash.
func (s *Signer[T]) Sign(hash []byte, sk *PrivateKey, rng *utils.Source) (braid.Word, error) {
	if err := s.checkPrivateKey(sk); err != nil {
		return nil, err
	}
	n := s.params.N
	e, err := s.opts.encoder.Encode(n, hash)
	if err != nil {
		return nil, err
	}

	// v1 cloaks the state left by w1, v and v2 the states with trivial
	// permutation around the pure encoding.
	var v1, v, v2 braid.Word
	rngs := rng.SplitN(DomainStabilizer, 3)
	id := permutation.Identity(n)
	var g errgroup.Group
	g.Go(func() (err error) {
		v1, err = s.opts.stabilizer.Stabilize(sk.W1.Permutation(n), rngs[0])
		return err
	})
	g.Go(func() (err error) {
		v, err = s.opts.stabilizer.Stabilize(id, rngs[1])
		return err
	})
	g.Go(func() (err error) {
		v2, err = s.opts.stabilizer.Stabilize(id, rngs[2])
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	raw := braid.Concat(v1, sk.W1.Inverse(), v, e, v2, sk.W2)
	sig, err := braid.ObfuscateWith(s.opts.obfuscator, n, raw, rng.Split(DomainRewrite))
	if err != nil {
		return nil, err
	}
	s.opts.logger.Debugw("signed", "encoding_length", len(e), "raw_length", len(raw), "signature_length", len(sig))
	return sig, nil
}

// SignFromSeed signs with randomness derived from seed.
func (s *Signer[T]) SignFromSeed(hash []byte, sk *PrivateKey, seed uint64) (braid.Word, error) {
	return s.Sign(hash, sk, utils.NewSourceFromUint64(seed))
}

// Verify reports whether sig is a signature on hash under pk. A malformed
// signature word or public key is an error, a wrong signature is false.
func (s *Signer[T]) Verify(hash []byte, sig braid.Word, pk *PublicKey[T]) (bool, error) {
	n := s.params.N
	if pk == nil || pk.P1 == nil || pk.P2 == nil {
		return false, fmt.Errorf("%w: incomplete public key", braidcrypt.ErrValidation)
	}
	if pk.P1.N() != n || pk.P2.N() != n {
		return false, fmt.Errorf("%w: public key has %d and %d strands, want %d", braidcrypt.ErrDimensionMismatch, pk.P1.N(), pk.P2.N(), n)
	}
	if err := sig.Validate(n); err != nil {
		return false, err
	}
	e, err := s.opts.encoder.Encode(n, hash)
	if err != nil {
		return false, err
	}

	lhs, err := pk.P1.Apply(sig)
	if err != nil {
		return false, err
	}
	unit, err := burau.NewProjection(pk.P2.TValues())
	if err != nil {
		return false, err
	}
	pe, err := unit.Apply(e)
	if err != nil {
		return false, err
	}
	rhs, err := pe.Compose(pk.P2)
	if err != nil {
		return false, err
	}
	ok := utils.ConstantTimeEqual(lhs.Hash(), rhs.Hash())
	if !ok {
		s.opts.logger.Debugw("signature rejected", "signature_length", len(sig))
	}
	return ok, nil
}

// MessageHash binds a message to the public key it is signed under.
func MessageHash[T field.Element[T]](msg []byte, pk *PublicKey[T]) ([]byte, error) {
	if pk == nil || pk.P1 == nil || pk.P2 == nil {
		return nil, fmt.Errorf("%w: incomplete public key", braidcrypt.ErrValidation)
	}
	if len(msg) > utils.MaxMessageSize {
		return nil, fmt.Errorf("%w: message of %d bytes exceeds %d", braidcrypt.ErrValidation, len(msg), utils.MaxMessageSize)
	}
	return utils.HashWithDomain(DomainMessage, utils.HashConcat(msg, SerializePublicKey(pk))), nil
}

// SignMessage hashes msg with MessageHash and signs the result.
func (s *Signer[T]) SignMessage(msg []byte, sk *PrivateKey, pk *PublicKey[T], rng *utils.Source) (braid.Word, error) {
	h, err := MessageHash(msg, pk)
	if err != nil {
		return nil, err
	}
	return s.Sign(h, sk, rng.Split(DomainSign))
}

// VerifyMessage is the counterpart of SignMessage.
func (s *Signer[T]) VerifyMessage(msg []byte, sig braid.Word, pk *PublicKey[T]) (bool, error) {
	h, err := MessageHash(msg, pk)
	if err != nil {
		return false, err
	}
	return s.Verify(h, sig, pk)
}
