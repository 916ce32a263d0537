package cloaking

import (
	"fmt"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/braid"
	"github.com/BackendStack21/braidcrypt-go/field"
	"github.com/BackendStack21/braidcrypt-go/permutation"
	"github.com/BackendStack21/braidcrypt-go/utils"
)

// Stabilizer returns words that E-multiply any projection with permutation
// perm back to itself.
type Stabilizer interface {
	Stabilize(perm permutation.Permutation, rng *utils.Source) (braid.Word, error)
}

// WordStabilizer hides a word between two stabilizing words: the result is
// c1 * w * c2 where c1 stabilizes perm and c2 stabilizes perm * perm(w).
type WordStabilizer interface {
	StabilizeWord(perm permutation.Permutation, w braid.Word, rng *utils.Source) (braid.Word, error)
}

// Default conjugator lengths.
const (
	DefaultMinLength      = 10
	DefaultMaxLength      = 20
	DefaultShortMinLength = 1
	DefaultShortMaxLength = 4
	DefaultShortCount     = 4
)

// Option tunes a stabilizer.
type Option func(*Config, *int)

// WithLength sets the length range of the random conjugator.
func WithLength(lo, hi int) Option {
	return func(c *Config, _ *int) { c.MinLength, c.MaxLength = lo, hi }
}

// WithCanonical mixes count pure braid generators into every conjugator.
func WithCanonical(count int) Option {
	return func(c *Config, _ *int) { c.Canonical = count }
}

// WithCount sets how many cloaks ManyShort concatenates.
func WithCount(k int) Option {
	return func(_ *Config, count *int) { *count = k }
}

func checkStrands[T field.Element[T]](n, a, b int, t []T) error {
	if len(t) != n {
		return fmt.Errorf("%w: %d t-values for %d strands", braidcrypt.ErrDimensionMismatch, len(t), n)
	}
	if a < 0 || a >= n || b < 0 || b >= n {
		return fmt.Errorf("%w: strands %d, %d outside [0,%d)", braidcrypt.ErrIndexOutOfRange, a, b, n)
	}
	return nil
}

func checkSquare[T field.Element[T]](n, a, b int, t []T) error {
	if err := checkStrands(n, a, b, t); err != nil {
		return err
	}
	if !t[a].IsOne() || !t[b].IsOne() {
		return fmt.Errorf("%w: square cloaks need t[%d] = t[%d] = 1, got %s and %s", braidcrypt.ErrValidation, a, b, t[a], t[b])
	}
	return nil
}

func build(n, a, b, lo, hi, count int, opts []Option) (Config, int, error) {
	cfg := Config{N: n, A: a, B: b, MinLength: lo, MaxLength: hi, Power: 2}
	for _, o := range opts {
		o(&cfg, &count)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, 0, err
	}
	if count < 1 {
		return Config{}, 0, fmt.Errorf("%w: cloak count %d", braidcrypt.ErrValidation, count)
	}
	return cfg, count, nil
}

// cloaks concatenates count cloaking elements with random centre signs.
func cloaks(cfg Config, count int, perm permutation.Permutation, rng *utils.Source) (braid.Word, error) {
	var out braid.Word
	power := cfg.Power
	for i := 0; i < count; i++ {
		cfg.Power = power
		if rng.Bool() {
			cfg.Power = -power
		}
		c, err := Generate(cfg, perm, rng)
		if err != nil {
			return nil, err
		}
		out = append(out, c...)
	}
	return out, nil
}

func stabilizeWord(s Stabilizer, perm permutation.Permutation, w braid.Word, rng *utils.Source) (braid.Word, error) {
	n := perm.Size()
	if err := w.Validate(n); err != nil {
		return nil, err
	}
	c1, err := s.Stabilize(perm, rng)
	if err != nil {
		return nil, err
	}
	c2, err := s.Stabilize(perm.Mul(w.Permutation(n)), rng)
	if err != nil {
		return nil, err
	}
	return braid.Concat(c1, w, c2), nil
}

// Square stabilizes with a single cloak of centre power ±2.
type Square struct {
	cfg Config
}

// NewSquare requires t[a] = t[b] = 1.
func NewSquare[T field.Element[T]](n, a, b int, t []T, opts ...Option) (*Square, error) {
	if err := checkSquare(n, a, b, t); err != nil {
		return nil, err
	}
	cfg, _, err := build(n, a, b, DefaultMinLength, DefaultMaxLength, 1, opts)
	if err != nil {
		return nil, err
	}
	return &Square{cfg: cfg}, nil
}

// Stabilize returns one square cloak for perm.
func (s *Square) Stabilize(perm permutation.Permutation, rng *utils.Source) (braid.Word, error) {
	return cloaks(s.cfg, 1, perm, rng)
}

// StabilizeWord returns c1 * w * c2.
func (s *Square) StabilizeWord(perm permutation.Permutation, w braid.Word, rng *utils.Source) (braid.Word, error) {
	return stabilizeWord(s, perm, w, rng)
}

// DoubleSquare concatenates two independent ±2 cloaks.
type DoubleSquare struct {
	cfg Config
}

// NewDoubleSquare requires t[a] = t[b] = 1.
func NewDoubleSquare[T field.Element[T]](n, a, b int, t []T, opts ...Option) (*DoubleSquare, error) {
	if err := checkSquare(n, a, b, t); err != nil {
		return nil, err
	}
	cfg, _, err := build(n, a, b, DefaultMinLength, DefaultMaxLength, 2, opts)
	if err != nil {
		return nil, err
	}
	return &DoubleSquare{cfg: cfg}, nil
}

// Stabilize concatenates two independent square cloaks.
func (s *DoubleSquare) Stabilize(perm permutation.Permutation, rng *utils.Source) (braid.Word, error) {
	return cloaks(s.cfg, 2, perm, rng)
}

func (s *DoubleSquare) StabilizeWord(perm permutation.Permutation, w braid.Word, rng *utils.Source) (braid.Word, error) {
	return stabilizeWord(s, perm, w, rng)
}

// ManyShort concatenates several cloaks with short conjugators.
type ManyShort struct {
	cfg   Config
	count int
}

// NewManyShort requires t[a] = t[b] = 1.
func NewManyShort[T field.Element[T]](n, a, b int, t []T, opts ...Option) (*ManyShort, error) {
	if err := checkSquare(n, a, b, t); err != nil {
		return nil, err
	}
	cfg, count, err := build(n, a, b, DefaultShortMinLength, DefaultShortMaxLength, DefaultShortCount, opts)
	if err != nil {
		return nil, err
	}
	return &ManyShort{cfg: cfg, count: count}, nil
}

// Stabilize concatenates k short cloaks.
func (s *ManyShort) Stabilize(perm permutation.Permutation, rng *utils.Source) (braid.Word, error) {
	return cloaks(s.cfg, s.count, perm, rng)
}

func (s *ManyShort) StabilizeWord(perm permutation.Permutation, w braid.Word, rng *utils.Source) (braid.Word, error) {
	return stabilizeWord(s, perm, w, rng)
}

// FourthPower stabilizes with one cloak of centre power ±4.
type FourthPower struct {
	cfg Config
}

// NewFourthPower requires t[a] * t[b] = -1.
func NewFourthPower[T field.Element[T]](n, a, b int, t []T, opts ...Option) (*FourthPower, error) {
	if err := checkStrands(n, a, b, t); err != nil {
		return nil, err
	}
	if !t[a].Mul(t[b]).Equal(field.One[T]().Neg()) {
		return nil, fmt.Errorf("%w: fourth power cloaks need t[%d] * t[%d] = -1", braidcrypt.ErrValidation, a, b)
	}
	cfg, _, err := build(n, a, b, DefaultMinLength, DefaultMaxLength, 1, opts)
	if err != nil {
		return nil, err
	}
	cfg.Power = 4
	return &FourthPower{cfg: cfg}, nil
}

// Stabilize returns one fourth power cloak for perm.
func (s *FourthPower) Stabilize(perm permutation.Permutation, rng *utils.Source) (braid.Word, error) {
	return cloaks(s.cfg, 1, perm, rng)
}

func (s *FourthPower) StabilizeWord(perm permutation.Permutation, w braid.Word, rng *utils.Source) (braid.Word, error) {
	return stabilizeWord(s, perm, w, rng)
}

// Trivial returns empty stabilizers. It hides nothing and exists to
// exercise protocols without cloaking.
type Trivial struct{}

// Stabilize returns the empty word.
func (Trivial) Stabilize(permutation.Permutation, *utils.Source) (braid.Word, error) {
	return braid.Word{}, nil
}

func (t Trivial) StabilizeWord(perm permutation.Permutation, w braid.Word, rng *utils.Source) (braid.Word, error) {
	return stabilizeWord(t, perm, w, rng)
}

var (
	_ Stabilizer     = (*Square)(nil)
	_ Stabilizer     = (*DoubleSquare)(nil)
	_ Stabilizer     = (*ManyShort)(nil)
	_ Stabilizer     = (*FourthPower)(nil)
	_ Stabilizer     = Trivial{}
	_ WordStabilizer = (*Square)(nil)
	_ WordStabilizer = (*DoubleSquare)(nil)
	_ WordStabilizer = (*ManyShort)(nil)
	_ WordStabilizer = (*FourthPower)(nil)
	_ WordStabilizer = Trivial{}
)
