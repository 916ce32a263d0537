// Package kayawood implements the Kayawood key agreement protocol.
//
// A setup braid z mixes the two halves of the strands. Alice conjugates a
// random braid on the left half by z, Bob one on the right half, so their
// private braids commute. Each publishes its private braid hidden between
// cloaking elements and rewritten, which E-multiplies like the private
// braid itself. The shared key is the projection of the other party's
// public word multiplied by one's own private braid.
package kayawood

import (
	"context"
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
	DomainSetup        = "braidcrypt-kayawood-setup-v1"
	DomainAlice        = "braidcrypt-kayawood-alice-v1"
	DomainBob          = "braidcrypt-kayawood-bob-v1"
	DomainRewrite      = "braidcrypt-kayawood-rewrite-v1"
	DomainSharedSecret = "braidcrypt-kayawood-ss-v1"

	// SharedSecretSize is the length of a derived shared secret.
	SharedSecretSize = 32
)

type options struct {
	betasOb    braid.Obfuscator
	pubOb      braid.Obfuscator
	stabilizer cloaking.WordStabilizer
	logger     log.Logger
}

// Option configures a Protocol.
type Option func(*options)

// WithBetasObfuscator sets the obfuscator applied to private braids.
// The default only free reduces.
func WithBetasObfuscator(o braid.Obfuscator) Option {
	return func(opts *options) { opts.betasOb = o }
}

// WithPublicKeyObfuscator sets the obfuscator applied to cloaked public
// words. The default is one stochastic rewriting obfuscator per Protocol.
// A braid.RandomizedObfuscator draws from the party's own stream, so
// instances replay from their seed; other stateful obfuscators do not.
func WithPublicKeyObfuscator(o braid.Obfuscator) Option {
	return func(opts *options) { opts.pubOb = o }
}

// WithStabilizer sets how public words are cloaked. The default is a
// square cloak on the strands A and B.
func WithStabilizer(s cloaking.WordStabilizer) Option {
	return func(opts *options) { opts.stabilizer = s }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l log.Logger) Option {
	return func(opts *options) { opts.logger = l }
}

// Protocol runs Kayawood over the field T.
type Protocol[T field.Element[T]] struct {
	params PublicParameters[T]
	opts   options
}

// New builds a protocol for the given public parameters.
func New[T field.Element[T]](pp PublicParameters[T], opts ...Option) (*Protocol[T], error) {
	pp, err := NewPublicParameters(pp.KayawoodParams, pp.TValues)
	if err != nil {
		return nil, err
	}
	o := options{betasOb: braid.FreeReduction, logger: log.NewNop()}
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
	if o.pubOb == nil {
		ob, err := rewrite.NewObfuscator(pp.N, utils.NewSource([]byte(DomainRewrite)))
		if err != nil {
			return nil, err
		}
		o.pubOb = ob
	}
	o.logger = o.logger.Named("kayawood")
	return &Protocol[T]{params: pp, opts: o}, nil
}

// Params returns the public parameters.
func (p *Protocol[T]) Params() PublicParameters[T] { return p.params }

// Instance is the outcome of one protocol run with both parties' material.
type Instance[T field.Element[T]] struct {
	TValues []T
	// Z is the setup braid.
	Z braid.Word
	// AlicePrivate and BobPrivate are the commuting private braids.
	AlicePrivate braid.Word
	BobPrivate   braid.Word
	// AlicePublic and BobPublic are the published words.
	AlicePublic braid.Word
	BobPublic   braid.Word
	// SharedKey is the projection both parties agree on.
	SharedKey *burau.Projection[T]
}

// GenerateInstance runs setup, key generation for both parties and the
// shared key computation, and checks that the parties agree.
func (p *Protocol[T]) GenerateInstance(rng *utils.Source) (*Instance[T], error) {
	z, attempts, err := p.sampleZ(rng.Split(DomainSetup))
	if err != nil {
		return nil, err
	}
	p.opts.logger.Debugw("sampled setup braid", "attempts", attempts, "length", len(z))

	n, half := p.params.N, p.params.N/2
	left := make([]int, 0, half-1)
	for g := 1; g < half; g++ {
		left = append(left, g)
	}
	right := make([]int, 0, half-1)
	for g := half + 1; g < n; g++ {
		right = append(right, g)
	}

	inst := &Instance[T]{TValues: append([]T(nil), p.params.TValues...), Z: z}
	aliceRng, bobRng := rng.Split(DomainAlice), rng.Split(DomainBob)
	var g errgroup.Group
	g.Go(func() (err error) {
		inst.AlicePrivate, inst.AlicePublic, err = p.party(z, left, aliceRng)
		return err
	})
	g.Go(func() (err error) {
		inst.BobPrivate, inst.BobPublic, err = p.party(z, right, bobRng)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if inst.SharedKey, err = inst.agree(context.Background()); err != nil {
		return nil, err
	}
	return inst, nil
}

// GenerateInstanceFromSeed runs GenerateInstance on a deterministic stream.
func (p *Protocol[T]) GenerateInstanceFromSeed(seed uint64) (*Instance[T], error) {
	return p.GenerateInstance(utils.NewSourceFromUint64(seed))
}

// sampleZ draws a braid whose permutation sends exactly n/4 strands of
// each half to the other half and puts A and B in different halves.
func (p *Protocol[T]) sampleZ(rng *utils.Source) (braid.Word, int, error) {
	n, half := p.params.N, p.params.N/2
	for attempt := 1; attempt <= p.params.MaxAttempts; attempt++ {
		pi := permutation.Permutation(rng.Perm(n))
		pos := pi.Inverse()
		mixed := 0
		for i := 0; i < half; i++ {
			if pos[i] >= half {
				mixed++
			}
		}
		if mixed != n/4 || (pos[p.params.A] < half) == (pos[p.params.B] < half) {
			continue
		}
		r := braid.RandomWord(n, rng.IntRange(p.params.ZMinLength, p.params.ZMaxLength), rng)
		fix := braid.RandomWordFor(r.Permutation(n).Inverse().Mul(pi), rng)
		return braid.Concat(r, fix).FreeReduce(), attempt, nil
	}
	return nil, p.params.MaxAttempts, fmt.Errorf("%w: no setup permutation after %d attempts", braidcrypt.ErrExhausted, p.params.MaxAttempts)
}

// party samples a private braid z x z^-1 with x on gens that moves A or B,
// and derives its public word.
func (p *Protocol[T]) party(z braid.Word, gens []int, rng *utils.Source) (braid.Word, braid.Word, error) {
	n := p.params.N
	var priv braid.Word
	for attempt := 1; ; attempt++ {
		if attempt > p.params.MaxAttempts {
			return nil, nil, fmt.Errorf("%w: private braid fixes both distinguished strands after %d attempts", braidcrypt.ErrExhausted, p.params.MaxAttempts)
		}
		x := braid.RandomWordOn(gens, rng.IntRange(p.params.PrivateMinLength, p.params.PrivateMaxLength), rng)
		w := braid.Concat(z, x, z.Inverse())
		perm := w.Permutation(n)
		if perm[p.params.A] != p.params.A || perm[p.params.B] != p.params.B {
			priv = w
			break
		}
	}

	priv, err := braid.ObfuscateWith(p.opts.betasOb, n, priv, rng)
	if err != nil {
		return nil, nil, err
	}
	hidden, err := p.opts.stabilizer.StabilizeWord(permutation.Identity(n), priv, rng)
	if err != nil {
		return nil, nil, err
	}
	pub, err := braid.ObfuscateWith(p.opts.pubOb, n, hidden, rng.Split(DomainRewrite))
	if err != nil {
		return nil, nil, err
	}
	p.opts.logger.Debugw("derived key pair", "private_length", len(priv), "cloaked_length", len(hidden), "public_length", len(pub))
	return priv, pub, nil
}

// sharedKeys returns Alice's key (Id * W_B) * alpha, Bob's key
// (Id * W_A) * beta and Id * alpha beta, computed concurrently.
func (inst *Instance[T]) sharedKeys(ctx context.Context) ([3]*burau.Projection[T], error) {
	var keys [3]*burau.Projection[T]
	unit, err := burau.NewProjection(inst.TValues)
	if err != nil {
		return keys, err
	}
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		keys[0], err = unit.Apply(braid.Concat(inst.BobPublic, inst.AlicePrivate))
		return err
	})
	g.Go(func() (err error) {
		keys[1], err = unit.Apply(braid.Concat(inst.AlicePublic, inst.BobPrivate))
		return err
	})
	g.Go(func() (err error) {
		keys[2], err = unit.Apply(braid.Concat(inst.AlicePrivate, inst.BobPrivate))
		return err
	})
	return keys, g.Wait()
}

func (inst *Instance[T]) agree(ctx context.Context) (*burau.Projection[T], error) {
	keys, err := inst.sharedKeys(ctx)
	if err != nil {
		return nil, err
	}
	if !keys[0].Equal(keys[1]) || !keys[0].Equal(keys[2]) {
		return nil, fmt.Errorf("%w: parties computed different shared keys", braidcrypt.ErrProtocolInvariant)
	}
	return keys[0], nil
}

// Verify recomputes both parties' keys and checks them against SharedKey.
func (inst *Instance[T]) Verify() error {
	key, err := inst.agree(context.Background())
	if err != nil {
		return err
	}
	if inst.SharedKey == nil || !key.Equal(inst.SharedKey) {
		return fmt.Errorf("%w: stored shared key does not match", braidcrypt.ErrProtocolInvariant)
	}
	return nil
}

// IsBadInstance reports whether the shared key follows from the public
// words alone, as Id * W_A * W_B or Id * W_B * W_A. Cloaking should make
// this false.
func (p *Protocol[T]) IsBadInstance(inst *Instance[T]) (bool, error) {
	unit, err := burau.NewProjection(inst.TValues)
	if err != nil {
		return false, err
	}
	for _, w := range []braid.Word{
		braid.Concat(inst.AlicePublic, inst.BobPublic),
		braid.Concat(inst.BobPublic, inst.AlicePublic),
	} {
		k, err := unit.Apply(w)
		if err != nil {
			return false, err
		}
		if k.Equal(inst.SharedKey) {
			p.opts.logger.Warnw("public words reveal the shared key")
			return true, nil
		}
	}
	return false, nil
}

// SharedSecret derives SharedSecretSize bytes from a shared key.
func (p *Protocol[T]) SharedSecret(key *burau.Projection[T]) []byte {
	return utils.Shake256WithDomain(DomainSharedSecret, key.Bytes(), SharedSecretSize)
}
