// Package cloaking builds cloaking elements: braids w * b_j^k * w^-1 that
// E-multiply a projection with a given permutation back to itself, provided
// the t-values of two chosen strands satisfy a condition depending on k.
//
// For k = ±2 both strands need t = 1. For k = ±4 the product of their
// t-values must be -1.
package cloaking

import (
	"fmt"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/braid"
	"github.com/BackendStack21/braidcrypt-go/permutation"
	"github.com/BackendStack21/braidcrypt-go/utils"
)

// Config describes one family of cloaking elements on n strands.
type Config struct {
	// N is the braid index.
	N int
	// A and B are the strand labels the centre generator must cross,
	// i.e. indices into the t-values, not generator positions.
	A, B int
	// MinLength and MaxLength bound the random part of the conjugator.
	MinLength, MaxLength int
	// Power is the exponent of the centre generator: ±2 or ±4.
	Power int
	// Canonical is the number of random pure braid generators mixed into
	// the conjugator. Zero disables mixing.
	Canonical int
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch {
	case c.N < 3:
		return fmt.Errorf("%w: cloaking needs at least 3 strands, got %d", braidcrypt.ErrValidation, c.N)
	case c.A < 0 || c.A >= c.N || c.B < 0 || c.B >= c.N:
		return fmt.Errorf("%w: strands %d, %d outside [0,%d)", braidcrypt.ErrIndexOutOfRange, c.A, c.B, c.N)
	case c.A == c.B:
		return fmt.Errorf("%w: cloaking strands must differ", braidcrypt.ErrValidation)
	case c.Power != 2 && c.Power != -2 && c.Power != 4 && c.Power != -4:
		return fmt.Errorf("%w: centre power %d, want ±2 or ±4", braidcrypt.ErrValidation, c.Power)
	case c.Canonical < 0:
		return fmt.Errorf("%w: negative canonical mixing count", braidcrypt.ErrValidation)
	}
	if err := utils.CheckRange(c.MinLength, c.MaxLength, "conjugator length"); err != nil {
		return fmt.Errorf("%w: %v", braidcrypt.ErrValidation, err)
	}
	return nil
}

// Generate returns a cloaking element for a projection whose permutation
// is target.
func Generate(cfg Config, target permutation.Permutation, rng *utils.Source) (braid.Word, error) {
	w, _, err := generate(cfg, target, rng)
	return w, err
}

// GenerateCanonical is Generate with count pure braid generators mixed
// into the conjugator.
func GenerateCanonical(cfg Config, count int, target permutation.Permutation, rng *utils.Source) (braid.Word, error) {
	cfg.Canonical = count
	return Generate(cfg, target, rng)
}

// generate also reports how many fix-up letters were appended.
func generate(cfg Config, target permutation.Permutation, rng *utils.Source) (braid.Word, int, error) {
	if err := cfg.Validate(); err != nil {
		return nil, 0, err
	}
	if target.Size() != cfg.N {
		return nil, 0, fmt.Errorf("%w: permutation of %d strands for B_%d", braidcrypt.ErrDimensionMismatch, target.Size(), cfg.N)
	}

	n := cfg.N
	w := braid.RandomWord(n, rng.IntRange(cfg.MinLength, cfg.MaxLength), rng)
	if cfg.Canonical > 0 {
		w = braid.Concat(braid.RandomPureWord(n, cfg.Canonical, rng), w)
	}

	// Q maps a strand label to its position once target and w are applied.
	q := target.Mul(w.Permutation(n)).Inverse()
	pa, pb := q[cfg.A], q[cfg.B]
	steps := 0
	for pa-pb != 1 && pb-pa != 1 {
		if steps >= 4*n {
			return nil, steps, fmt.Errorf("%w: cloaking fix-up did not converge after %d steps", braidcrypt.ErrExhausted, steps)
		}
		next := pa + 1
		if pb < pa {
			next = pa - 1
		}
		g := min(pa, next) + 1
		if rng.Bool() {
			g = -g
		}
		w = append(w, g)
		pa = next
		steps++
	}

	j := max(pa, pb)
	if cfg.Power < 0 {
		j = -j
	}
	centre := braid.Repeat(j, abs(cfg.Power))
	return braid.Concat(w, centre, w.Inverse()), steps, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
