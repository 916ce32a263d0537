package rewrite

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/braid"
	"github.com/BackendStack21/braidcrypt-go/utils"
)

// Obfuscator defaults.
const (
	DefaultIterations  = 10
	DefaultMinBlock    = 1
	DefaultMaxBlock    = 3
	DefaultEngineCache = 64
)

// Obfuscator rewrites words with an engine for a fresh random block
// partition on every call. Engines are cached by partition and shared by
// all callers.
//
// Obfuscate draws from the obfuscator's own source under a lock, so its
// results depend on the order of calls. ObfuscateWith draws only from the
// caller's stream and is deterministic under any scheduling.
type Obfuscator struct {
	n          int
	iterations int
	minBlock   int
	maxBlock   int
	engineOpts []Option
	shorten    bool
	cacheSize  int

	mu    sync.Mutex
	rng   *utils.Source
	calls uint64

	engines *lru.ARCCache
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// ObfuscatorOption configures an Obfuscator.
type ObfuscatorOption func(*Obfuscator)

// WithIterations sets the number of passes per call.
func WithIterations(k int) ObfuscatorOption {
	return func(o *Obfuscator) { o.iterations = k }
}

// WithBlockSizes bounds the block sizes of the random partitions.
func WithBlockSizes(lo, hi int) ObfuscatorOption {
	return func(o *Obfuscator) { o.minBlock, o.maxBlock = lo, hi }
}

// WithEngineOptions passes options to every engine.
func WithEngineOptions(opts ...Option) ObfuscatorOption {
	return func(o *Obfuscator) { o.engineOpts = append(o.engineOpts, opts...) }
}

// WithCacheSize sets how many engines are kept.
func WithCacheSize(size int) ObfuscatorOption {
	return func(o *Obfuscator) { o.cacheSize = size }
}

// WithShortening handle-reduces the rewritten word.
func WithShortening() ObfuscatorOption {
	return func(o *Obfuscator) { o.shorten = true }
}

// NewObfuscator returns an obfuscator for B_n drawing from rng. The
// obfuscator takes ownership of rng.
func NewObfuscator(n int, rng *utils.Source, opts ...ObfuscatorOption) (*Obfuscator, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: braid index %d below 2", braidcrypt.ErrValidation, n)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", braidcrypt.ErrValidation)
	}
	o := &Obfuscator{
		n:          n,
		iterations: DefaultIterations,
		minBlock:   DefaultMinBlock,
		maxBlock:   DefaultMaxBlock,
		cacheSize:  DefaultEngineCache,
		rng:        rng,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.iterations < 0 {
		return nil, fmt.Errorf("%w: negative iteration count", braidcrypt.ErrValidation)
	}
	if o.minBlock < 1 || o.minBlock > o.maxBlock {
		return nil, fmt.Errorf("%w: block sizes [%d,%d]", braidcrypt.ErrValidation, o.minBlock, o.maxBlock)
	}
	cache, err := lru.NewARC(o.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", braidcrypt.ErrValidation, err)
	}
	o.engines = cache
	return o, nil
}

// Obfuscate implements braid.Obfuscator with the owned source.
func (o *Obfuscator) Obfuscate(n int, w braid.Word) (braid.Word, error) {
	o.mu.Lock()
	o.calls++
	rng := o.rng.Split("rewrite-" + strconv.FormatUint(o.calls, 10))
	o.mu.Unlock()
	return o.ObfuscateWith(n, w, rng)
}

// ObfuscateWith implements braid.RandomizedObfuscator. The partition and
// every rewriting pass are drawn from rng.
func (o *Obfuscator) ObfuscateWith(n int, w braid.Word, rng *utils.Source) (braid.Word, error) {
	if n != o.n {
		return nil, fmt.Errorf("%w: obfuscator for B_%d called with B_%d", braidcrypt.ErrDimensionMismatch, o.n, n)
	}
	if err := w.Validate(n); err != nil {
		return nil, err
	}
	sizes, err := RandomPartition(n-1, o.minBlock, o.maxBlock, rng)
	if err != nil {
		return nil, err
	}
	e, err := o.engine(sizes)
	if err != nil {
		return nil, err
	}
	out, err := e.Rewrite(w, o.iterations, rng)
	if err != nil {
		return nil, err
	}
	if o.shorten {
		out = braid.Shorten(n, out)
	}
	return out, nil
}

func (o *Obfuscator) engine(sizes []int) (*Engine, error) {
	key := partitionKey(sizes)
	if v, ok := o.engines.Get(key); ok {
		o.hits.Add(1)
		return v.(*Engine), nil
	}
	o.misses.Add(1)
	blocks, err := BlocksFromSizes(o.n, sizes)
	if err != nil {
		return nil, err
	}
	e, err := NewEngine(o.n, blocks, o.engineOpts...)
	if err != nil {
		return nil, err
	}
	o.engines.Add(key, e)
	return e, nil
}

// CachedEngines returns the number of engines currently cached.
func (o *Obfuscator) CachedEngines() int {
	return o.engines.Len()
}

// CacheStats reports engine cache hits and misses since construction.
func (o *Obfuscator) CacheStats() (hits, misses uint64) {
	return o.hits.Load(), o.misses.Load()
}

func partitionKey(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}

var _ braid.RandomizedObfuscator = (*Obfuscator)(nil)
