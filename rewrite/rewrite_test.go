package rewrite

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/braid"
	"github.com/BackendStack21/braidcrypt-go/utils"
)

func TestRandomPartition(t *testing.T) {
	rng := utils.NewSourceFromUint64(1)
	for i := 0; i < 200; i++ {
		total := rng.Intn(40)
		sizes, err := RandomPartition(total, 2, 5, rng)
		require.NoError(t, err)
		sum := 0
		for k, s := range sizes {
			require.LessOrEqual(t, s, 5)
			if k < len(sizes)-1 {
				require.GreaterOrEqual(t, s, 2)
			}
			sum += s
		}
		require.Equal(t, total, sum)
	}

	_, err := RandomPartition(5, 3, 2, rng)
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
	_, err = RandomPartition(-1, 1, 2, rng)
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
}

func TestRandomPartitionIsBiased(t *testing.T) {
	// A part of size min+k needs k heads in a row.
	rng := utils.NewSourceFromUint64(2)
	counts := map[int]int{}
	for i := 0; i < 2000; i++ {
		sizes, err := RandomPartition(100, 1, 4, rng)
		require.NoError(t, err)
		counts[sizes[0]]++
	}
	require.Greater(t, counts[1], counts[2])
	require.Greater(t, counts[2], counts[3])
	require.InDelta(t, 1000, counts[1], 150)
}

func TestBlocks(t *testing.T) {
	blocks, err := BlocksFromSizes(7, []int{3, 1, 2})
	require.NoError(t, err)
	require.Equal(t, []Block{{1, 3}, {4, 4}, {5, 6}}, blocks)
	require.NoError(t, validateBlocks(7, blocks))

	_, err = BlocksFromSizes(7, []int{3, 1})
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
	require.ErrorIs(t, validateBlocks(7, []Block{{1, 3}, {5, 6}}), braidcrypt.ErrValidation)

	rb, err := RandomBlocks(9, 1, 3, utils.NewSourceFromUint64(3))
	require.NoError(t, err)
	require.NoError(t, validateBlocks(9, rb))
}

func TestGeneratorTranslation(t *testing.T) {
	n := 8
	blocks := []Block{{1, 3}, {4, 5}, {6, 7}}
	toY, toB := bInY(n, blocks), yInB(n, blocks)
	require.Equal(t, braid.Word{3, 2, 1}, toB[3])
	require.Equal(t, braid.Word{5, -4}, toY[5])
	for k := 1; k < n; k++ {
		back := substitute(toY[k], toB)
		require.True(t, braid.AreEqual(n, back, braid.Word{k}), "generator %d", k)
	}
}

func TestRelationsAreRelators(t *testing.T) {
	n := 7
	rng := utils.NewSourceFromUint64(4)
	for trial := 0; trial < 10; trial++ {
		blocks, err := RandomBlocks(n, 1, 4, rng)
		require.NoError(t, err)
		toB := yInB(n, blocks)
		for _, r := range relations(n, blocks) {
			require.True(t, braid.IsTrivial(substitute(r, toB)), "blocks %v relation %v", blocks, r)
		}
	}
}

func TestRulesPreserveBraid(t *testing.T) {
	n := 6
	blocks := []Block{{1, 3}, {4, 5}}
	toB := yInB(n, blocks)
	for _, slack := range []int{0, 2} {
		table := rules(relations(n, blocks), 2+slack)
		require.NotEmpty(t, table)
		for k, reps := range table {
			for _, rep := range reps {
				require.LessOrEqual(t, len(rep), 2+slack)
				lhs := substitute(braid.Word{k[0], k[1]}, toB)
				rhs := substitute(rep, toB)
				require.True(t, braid.AreEqual(n, lhs, rhs), "rule %v -> %v", k, rep)
			}
		}
	}
}

func TestEngineRewrite(t *testing.T) {
	n := 7
	rng := utils.NewSourceFromUint64(5)
	changed := 0
	for trial := 0; trial < 40; trial++ {
		blocks, err := RandomBlocks(n, 1, 3, rng)
		require.NoError(t, err)
		e, err := NewEngine(n, blocks)
		require.NoError(t, err)
		w := braid.RandomWord(n, 15, rng)
		r, err := e.Rewrite(w, 10, rng)
		require.NoError(t, err)
		require.True(t, braid.AreEqual(n, w, r), "blocks %v: %v vs %v", blocks, w, r)
		if !r.Equal(w) {
			changed++
		}
	}
	require.Greater(t, changed, 20)
}

func TestEngineSlack(t *testing.T) {
	n := 6
	blocks := []Block{{1, 2}, {3, 5}}
	tight, err := NewEngine(n, blocks)
	require.NoError(t, err)
	loose, err := NewEngine(n, blocks, WithLengthSlack(3), WithWindow(3, 8))
	require.NoError(t, err)
	require.Greater(t, loose.RuleCount(), tight.RuleCount())
	require.Equal(t, blocks, loose.Blocks())

	rng := utils.NewSourceFromUint64(6)
	w := braid.RandomWord(n, 20, rng)
	r, err := loose.Rewrite(w, 5, rng)
	require.NoError(t, err)
	require.True(t, braid.AreEqual(n, w, r))
}

func TestEngineErrors(t *testing.T) {
	blocks := []Block{{1, 2}, {3, 4}}
	_, err := NewEngine(1, nil)
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
	_, err = NewEngine(6, blocks)
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
	_, err = NewEngine(5, blocks, WithLengthSlack(-1))
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
	_, err = NewEngine(5, blocks, WithWindow(1, 4))
	require.ErrorIs(t, err, braidcrypt.ErrValidation)

	e, err := NewEngine(5, blocks)
	require.NoError(t, err)
	rng := utils.NewSourceFromUint64(7)
	_, err = e.Rewrite(braid.Word{5}, 1, rng)
	require.ErrorIs(t, err, braidcrypt.ErrIndexOutOfRange)
	_, err = e.Rewrite(braid.Word{1}, -1, rng)
	require.ErrorIs(t, err, braidcrypt.ErrValidation)

	empty, err := e.Rewrite(braid.Word{}, 3, rng)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestObfuscator(t *testing.T) {
	n := 8
	o, err := NewObfuscator(n, utils.NewSourceFromUint64(8), WithCacheSize(4))
	require.NoError(t, err)

	rng := utils.NewSourceFromUint64(9)
	for i := 0; i < 20; i++ {
		w := braid.RandomWord(n, 12, rng)
		r, err := o.Obfuscate(n, w)
		require.NoError(t, err)
		require.True(t, braid.AreEqual(n, w, r))
	}
	require.LessOrEqual(t, o.CachedEngines(), 4)
	require.Greater(t, o.CachedEngines(), 0)

	_, err = o.Obfuscate(n+1, braid.Word{1})
	require.ErrorIs(t, err, braidcrypt.ErrDimensionMismatch)
	_, err = o.Obfuscate(n, braid.Word{0})
	require.ErrorIs(t, err, braidcrypt.ErrIndexOutOfRange)
}

func TestObfuscatorDeterministic(t *testing.T) {
	n := 6
	w := braid.Word{1, 2, -3, 4, 5, -1, 2, 3}
	run := func() []braid.Word {
		o, err := NewObfuscator(n, utils.NewSourceFromUint64(10), WithShortening())
		require.NoError(t, err)
		var out []braid.Word
		for i := 0; i < 5; i++ {
			r, err := o.Obfuscate(n, w)
			require.NoError(t, err)
			out = append(out, r)
		}
		return out
	}
	require.Equal(t, run(), run())
}

func TestObfuscatorConcurrent(t *testing.T) {
	n := 7
	o, err := NewObfuscator(n, utils.NewSourceFromUint64(11), WithIterations(4))
	require.NoError(t, err)
	words := make([]braid.Word, 16)
	rng := utils.NewSourceFromUint64(12)
	for i := range words {
		words[i] = braid.RandomWord(n, 10, rng)
	}
	var wg sync.WaitGroup
	errs := make([]error, len(words))
	outs := make([]braid.Word, len(words))
	for i := range words {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outs[i], errs[i] = o.Obfuscate(n, words[i])
		}(i)
	}
	wg.Wait()
	for i := range words {
		require.NoError(t, errs[i])
		require.True(t, braid.AreEqual(n, words[i], outs[i]))
	}
}

func TestObfuscateWithCallerStream(t *testing.T) {
	n := 7
	a, err := NewObfuscator(n, utils.NewSourceFromUint64(20), WithIterations(4))
	require.NoError(t, err)
	b, err := NewObfuscator(n, utils.NewSourceFromUint64(21), WithIterations(4))
	require.NoError(t, err)
	words := make([]braid.Word, 12)
	rng := utils.NewSourceFromUint64(22)
	for i := range words {
		words[i] = braid.RandomWord(n, 10, rng)
	}

	want := make([]braid.Word, len(words))
	for i, w := range words {
		want[i], err = a.ObfuscateWith(n, w, utils.NewSourceFromUint64(uint64(i)))
		require.NoError(t, err)
		require.True(t, braid.AreEqual(n, w, want[i]))
	}

	var wg sync.WaitGroup
	outs := make([]braid.Word, len(words))
	errs := make([]error, len(words))
	for i := len(words) - 1; i >= 0; i-- {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outs[i], errs[i] = b.ObfuscateWith(n, words[i], utils.NewSourceFromUint64(uint64(i)))
		}(i)
	}
	wg.Wait()
	for i := range words {
		require.NoError(t, errs[i])
		require.Equal(t, want[i], outs[i], "word %d", i)
	}

	hits, misses := b.CacheStats()
	require.Equal(t, uint64(len(words)), hits+misses)
}

func TestObfuscatorCacheStats(t *testing.T) {
	n := 6
	o, err := NewObfuscator(n, utils.NewSourceFromUint64(23), WithBlockSizes(n-1, n-1))
	require.NoError(t, err)
	w := braid.Word{1, 2, -3, 4, 5}
	for i := 0; i < 3; i++ {
		_, err := o.Obfuscate(n, w)
		require.NoError(t, err)
	}
	hits, misses := o.CacheStats()
	require.Equal(t, uint64(2), hits)
	require.Equal(t, uint64(1), misses)
}

func TestObfuscatorOptions(t *testing.T) {
	rng := utils.NewSourceFromUint64(13)
	_, err := NewObfuscator(1, rng)
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
	_, err = NewObfuscator(5, nil)
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
	_, err = NewObfuscator(5, rng, WithIterations(-1))
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
	_, err = NewObfuscator(5, rng, WithBlockSizes(3, 2))
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
	_, err = NewObfuscator(5, rng, WithCacheSize(0))
	require.ErrorIs(t, err, braidcrypt.ErrValidation)

	o, err := NewObfuscator(5, rng, WithEngineOptions(WithLengthSlack(1)), WithBlockSizes(4, 4))
	require.NoError(t, err)
	w := braid.Word{1, 2, 3, 4, -2, -1}
	r, err := o.Obfuscate(5, w)
	require.NoError(t, err)
	require.True(t, braid.AreEqual(5, w, r))
	require.Equal(t, 1, o.CachedEngines())
}

func BenchmarkObfuscate(b *testing.B) {
	n := 16
	o, _ := NewObfuscator(n, utils.NewSourceFromUint64(14))
	w := braid.RandomWord(n, 200, utils.NewSourceFromUint64(15))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = o.Obfuscate(n, w)
	}
}
