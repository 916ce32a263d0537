// Package rewrite obfuscates braid words by stochastic rewriting.
//
// The generators of B_n are split into contiguous blocks. Within a block
// the word is rewritten in partial-reversal Y-generators, where the braid
// relations and a few block-local relations give a table of two-letter
// substitutions. Every substitution applies a relation, so the output is
// always the same braid as the input.
package rewrite

import (
	"fmt"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/braid"
	"github.com/BackendStack21/braidcrypt-go/utils"
)

// Default window sizes of a rewriting pass.
const (
	DefaultMinWindow = 2
	DefaultMaxWindow = 6
)

type engineConfig struct {
	slack     int
	minWindow int
	maxWindow int
}

// Option configures an Engine.
type Option func(*engineConfig)

// WithLengthSlack keeps rules whose replacement is up to two plus slack
// letters long. The default of zero keeps word length stable.
func WithLengthSlack(slack int) Option {
	return func(c *engineConfig) { c.slack = slack }
}

// WithWindow sets the size range of the windows one pass splits the word
// into. Each window gets at most one substitution.
func WithWindow(lo, hi int) Option {
	return func(c *engineConfig) { c.minWindow, c.maxWindow = lo, hi }
}

// Engine holds the rewriting tables derived from one block partition.
// It is immutable and safe for concurrent use.
type Engine struct {
	n      int
	blocks []Block
	toY    []braid.Word
	toB    []braid.Word
	rules  map[pair][]braid.Word
	cfg    engineConfig
}

// NewEngine derives the rewriting tables for the given partition of the
// generators of B_n.
func NewEngine(n int, partition []Block, opts ...Option) (*Engine, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: braid index %d below 2", braidcrypt.ErrValidation, n)
	}
	if err := validateBlocks(n, partition); err != nil {
		return nil, err
	}
	cfg := engineConfig{minWindow: DefaultMinWindow, maxWindow: DefaultMaxWindow}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.slack < 0 {
		return nil, fmt.Errorf("%w: negative length slack", braidcrypt.ErrValidation)
	}
	if cfg.minWindow < 2 || cfg.minWindow > cfg.maxWindow {
		return nil, fmt.Errorf("%w: window sizes [%d,%d]", braidcrypt.ErrValidation, cfg.minWindow, cfg.maxWindow)
	}
	blocks := append([]Block(nil), partition...)
	return &Engine{
		n:      n,
		blocks: blocks,
		toY:    bInY(n, blocks),
		toB:    yInB(n, blocks),
		rules:  rules(relations(n, blocks), 2+cfg.slack),
		cfg:    cfg,
	}, nil
}

// Blocks returns a copy of the partition.
func (e *Engine) Blocks() []Block { return append([]Block(nil), e.blocks...) }

// RuleCount returns the number of stored substitutions.
func (e *Engine) RuleCount() int {
	c := 0
	for _, r := range e.rules {
		c += len(r)
	}
	return c
}

// Rewrite applies iterations rewriting passes to w.
func (e *Engine) Rewrite(w braid.Word, iterations int, rng *utils.Source) (braid.Word, error) {
	if err := w.Validate(e.n); err != nil {
		return nil, err
	}
	if iterations < 0 {
		return nil, fmt.Errorf("%w: negative iteration count", braidcrypt.ErrValidation)
	}
	y := substitute(w, e.toY)
	for i := 0; i < iterations; i++ {
		var err error
		if y, err = e.pass(y, rng); err != nil {
			return nil, err
		}
	}
	return substitute(y, e.toB), nil
}

// pass splits y into windows and rewrites one random letter pair in each.
func (e *Engine) pass(y braid.Word, rng *utils.Source) (braid.Word, error) {
	sizes, err := RandomPartition(len(y), e.cfg.minWindow, e.cfg.maxWindow, rng)
	if err != nil {
		return nil, err
	}
	out := make(braid.Word, 0, len(y)+len(sizes)*e.cfg.slack)
	pos := 0
	for _, size := range sizes {
		win := y[pos : pos+size]
		pos += size
		if size < 2 {
			out = append(out, win...)
			continue
		}
		o := rng.Intn(size - 1)
		reps := e.rules[pair{win[o], win[o+1]}]
		if len(reps) == 0 {
			out = append(out, win...)
			continue
		}
		out = append(out, win[:o]...)
		out = append(out, reps[rng.Intn(len(reps))]...)
		out = append(out, win[o+2:]...)
	}
	return out.FreeReduce(), nil
}
