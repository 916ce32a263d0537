package cloaking

import (
	"testing"

	"github.com/stretchr/testify/require"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/braid"
	"github.com/BackendStack21/braidcrypt-go/burau"
	"github.com/BackendStack21/braidcrypt-go/field"
	"github.com/BackendStack21/braidcrypt-go/permutation"
	"github.com/BackendStack21/braidcrypt-go/utils"
)

type F = field.ZZ32003

const (
	testN = 8
	testA = 2
	testB = 5
)

func squareValues(t *testing.T, rng *utils.Source) []F {
	t.Helper()
	one := field.One[F]()
	v, err := field.RandomTValues[F](testN, rng, map[int]F{testA: one, testB: one})
	require.NoError(t, err)
	return v
}

func fourthValues(t *testing.T, rng *utils.Source) []F {
	t.Helper()
	x, err := field.RandomNonTrivial[F](rng)
	require.NoError(t, err)
	v, err := field.RandomTValues[F](testN, rng, map[int]F{testA: x, testB: x.Inverse().Neg()})
	require.NoError(t, err)
	return v
}

// randomState returns a projection reached by a random word.
func randomState(t *testing.T, values []F, rng *utils.Source) *burau.Projection[F] {
	t.Helper()
	unit, err := burau.NewProjection(values)
	require.NoError(t, err)
	p, err := unit.Apply(braid.RandomWord(testN, 20, rng))
	require.NoError(t, err)
	return p
}

func TestConfigValidate(t *testing.T) {
	good := Config{N: 6, A: 1, B: 3, MinLength: 2, MaxLength: 5, Power: 2}
	require.NoError(t, good.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"few strands", func(c *Config) { c.N = 2 }, braidcrypt.ErrValidation},
		{"strand range", func(c *Config) { c.B = 6 }, braidcrypt.ErrIndexOutOfRange},
		{"same strand", func(c *Config) { c.B = 1 }, braidcrypt.ErrValidation},
		{"length range", func(c *Config) { c.MinLength = 6 }, braidcrypt.ErrValidation},
		{"power", func(c *Config) { c.Power = 3 }, braidcrypt.ErrValidation},
		{"canonical", func(c *Config) { c.Canonical = -1 }, braidcrypt.ErrValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := good
			tc.mutate(&c)
			require.ErrorIs(t, c.Validate(), tc.want)
		})
	}
}

func TestGenerateShape(t *testing.T) {
	rng := utils.NewSourceFromUint64(1)
	cfg := Config{N: testN, A: testA, B: testB, MinLength: 5, MaxLength: 9, Power: -4}
	for i := 0; i < 50; i++ {
		target := permutation.Permutation(rng.Perm(testN))
		w, err := Generate(cfg, target, rng)
		require.NoError(t, err)
		require.True(t, w.IsPure(testN))

		// w = c * b_j^-4 * c^-1 with the centre in the middle.
		half := (len(w) - 4) / 2
		centre := w[half : half+4]
		require.Equal(t, braid.Repeat(centre[0], 4), braid.Word(centre))
		require.Less(t, centre[0], 0)
		require.Equal(t, braid.Word(w[:half]).Inverse(), braid.Word(w[half+4:]))

		// The centre crosses strands A and B.
		j := -centre[0]
		p := target.Mul(braid.Word(w[:half]).Permutation(testN))
		require.ElementsMatch(t, []int{testA, testB}, []int{p[j-1], p[j]})
	}

	_, err := Generate(cfg, permutation.Identity(testN+1), rng)
	require.ErrorIs(t, err, braidcrypt.ErrDimensionMismatch)
	cfg.Power = 1
	_, err = Generate(cfg, permutation.Identity(testN), rng)
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
}

func TestFixUpSteps(t *testing.T) {
	rng := utils.NewSourceFromUint64(2)
	cfg := Config{N: testN, A: 0, B: testN - 1, MinLength: 0, MaxLength: 30, Power: 2}
	worst := 0
	for i := 0; i < 500; i++ {
		target := permutation.Permutation(rng.Perm(testN))
		_, steps, err := generate(cfg, target, rng)
		require.NoError(t, err)
		worst = max(worst, steps)
	}
	require.LessOrEqual(t, worst, testN-2)

	_, steps, err := generate(Config{N: testN, A: 0, B: testN - 1, Power: 2}, permutation.Identity(testN), rng)
	require.NoError(t, err)
	require.Equal(t, testN-2, steps)
}

func TestCloaksStabilize(t *testing.T) {
	rng := utils.NewSourceFromUint64(3)
	sq := squareValues(t, rng)
	fp := fourthValues(t, rng)

	square, err := NewSquare(testN, testA, testB, sq)
	require.NoError(t, err)
	double, err := NewDoubleSquare(testN, testA, testB, sq, WithCanonical(3))
	require.NoError(t, err)
	short, err := NewManyShort(testN, testA, testB, sq, WithCount(6))
	require.NoError(t, err)
	fourth, err := NewFourthPower(testN, testA, testB, fp, WithLength(3, 6))
	require.NoError(t, err)

	tests := []struct {
		name   string
		s      Stabilizer
		values []F
	}{
		{"square", square, sq},
		{"double square", double, sq},
		{"many short", short, sq},
		{"fourth power", fourth, fp},
		{"trivial", Trivial{}, sq},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				state := randomState(t, tc.values, rng)
				c, err := tc.s.Stabilize(state.Permutation(), rng)
				require.NoError(t, err)
				got, err := state.Apply(c)
				require.NoError(t, err)
				require.True(t, got.Equal(state), "cloak %v", c)
			}
		})
	}
}

func TestCloakIsNotTrivialBraid(t *testing.T) {
	rng := utils.NewSourceFromUint64(4)
	sq := squareValues(t, rng)
	square, err := NewSquare(testN, testA, testB, sq)
	require.NoError(t, err)
	checker, err := burau.NewDefaultIdentityChecker(testN, rng)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		c, err := square.Stabilize(permutation.Permutation(rng.Perm(testN)), rng)
		require.NoError(t, err)
		nontrivial, err := checker.IsNonTrivial(c)
		require.NoError(t, err)
		require.True(t, nontrivial)
	}
}

func TestStabilizeWord(t *testing.T) {
	rng := utils.NewSourceFromUint64(5)
	sq := squareValues(t, rng)
	double, err := NewDoubleSquare(testN, testA, testB, sq)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		state := randomState(t, sq, rng)
		w := braid.RandomWord(testN, 15, rng)
		hidden, err := double.StabilizeWord(state.Permutation(), w, rng)
		require.NoError(t, err)
		require.Greater(t, len(hidden), len(w))

		want, err := state.Apply(w)
		require.NoError(t, err)
		got, err := state.Apply(hidden)
		require.NoError(t, err)
		require.True(t, got.Equal(want))
	}

	_, err = double.StabilizeWord(permutation.Identity(testN), braid.Word{testN}, rng)
	require.ErrorIs(t, err, braidcrypt.ErrIndexOutOfRange)

	same, err := Trivial{}.StabilizeWord(permutation.Identity(testN), braid.Word{1, 2}, rng)
	require.NoError(t, err)
	require.Equal(t, braid.Word{1, 2}, same)
}

func TestConstructorPreconditions(t *testing.T) {
	rng := utils.NewSourceFromUint64(6)
	sq := squareValues(t, rng)
	fp := fourthValues(t, rng)

	_, err := NewSquare(testN, testA, testB, fp)
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
	_, err = NewDoubleSquare(testN, testA, testB+1, sq)
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
	_, err = NewManyShort(testN, testA, testB, sq, WithCount(0))
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
	_, err = NewFourthPower(testN, testA, testB, sq)
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
	_, err = NewSquare(testN, testA, testN, sq)
	require.ErrorIs(t, err, braidcrypt.ErrIndexOutOfRange)
	_, err = NewSquare(testN+1, testA, testB, sq)
	require.ErrorIs(t, err, braidcrypt.ErrDimensionMismatch)
	_, err = NewSquare(testN, testA, testB, sq, WithLength(5, 2))
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
}

func BenchmarkSquare(b *testing.B) {
	rng := utils.NewSourceFromUint64(7)
	one := field.One[F]()
	values, _ := field.RandomTValues[F](32, rng, map[int]F{0: one, 1: one})
	s, _ := NewSquare(32, 0, 1, values)
	target := permutation.Permutation(rng.Perm(32))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Stabilize(target, rng)
	}
}
