package field

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/utils"
)

func checkAxioms[T Element[T]](t *testing.T, seed uint64) {
	t.Helper()
	rng := utils.NewSourceFromUint64(seed)
	var z T
	one := z.One()
	zero := z.Zero()
	for i := 0; i < 200; i++ {
		a, b, c := z.Random(rng), z.Random(rng), z.Random(rng)

		require.True(t, a.Add(b).Equal(b.Add(a)))
		require.True(t, a.Mul(b).Equal(b.Mul(a)))
		require.True(t, a.Mul(b.Add(c)).Equal(a.Mul(b).Add(a.Mul(c))))
		require.True(t, a.Add(a.Neg()).IsZero())
		require.True(t, a.Sub(b).Add(b).Equal(a))
		require.True(t, a.Mul(one).Equal(a))
		require.True(t, a.Add(zero).Equal(a))
		if !a.IsZero() {
			require.True(t, a.Mul(a.Inverse()).IsOne(), "a=%s", a)
			require.True(t, b.Div(a).Mul(a).Equal(b))
		}
	}
}

func TestFieldAxioms(t *testing.T) {
	t.Run("ZZ5", func(t *testing.T) { checkAxioms[ZZ5](t, 1) })
	t.Run("ZZ7", func(t *testing.T) { checkAxioms[ZZ7](t, 2) })
	t.Run("ZZ13", func(t *testing.T) { checkAxioms[ZZ13](t, 3) })
	t.Run("ZZ257", func(t *testing.T) { checkAxioms[ZZ257](t, 4) })
	t.Run("ZZ32003", func(t *testing.T) { checkAxioms[ZZ32003](t, 5) })
	t.Run("P31", func(t *testing.T) { checkAxioms[P31](t, 6) })
	t.Run("GF256", func(t *testing.T) { checkAxioms[GF256](t, 7) })
}

func TestZZ_Reduction(t *testing.T) {
	require.Equal(t, uint64(3), NewZZ[Mod5](-2).Uint64())
	require.Equal(t, uint64(0), NewZZ[Mod5](10).Uint64())
	require.Equal(t, "4", FromInt[ZZ5](9).String())
	require.True(t, FromInt[ZZ7](-1).Equal(One[ZZ7]().Neg()))
	require.Equal(t, uint64(1), NewZZ[Mod13](2).Pow(12).Uint64())
	require.Equal(t, uint64(2147483647), Zero[P31]().Order())
}

func TestGF256(t *testing.T) {
	// 2 generates the multiplicative group.
	x := GF256(1)
	seen := map[GF256]bool{}
	for i := 0; i < 255; i++ {
		seen[x] = true
		x = x.Mul(2)
	}
	require.Len(t, seen, 255)
	require.True(t, x.IsOne())

	require.Equal(t, GF256(0), GF256(0x53).Add(0x53))
	require.Equal(t, GF256(1), FromInt[GF256](3))
	require.Equal(t, GF256(0), FromInt[GF256](4))
}

func TestInverseOfZeroPanics(t *testing.T) {
	require.Panics(t, func() { Zero[ZZ5]().Inverse() })
	require.Panics(t, func() { One[GF256]().Div(0) })
}

func TestRandomNonTrivial(t *testing.T) {
	rng := utils.NewSourceFromUint64(11)
	for i := 0; i < 100; i++ {
		v, err := RandomNonTrivial[ZZ5](rng)
		require.NoError(t, err)
		require.False(t, v.IsZero())
		require.False(t, v.IsOne())
	}
}

// binary is a field with two elements, too small for non-trivial samples.
type binary = ZZ[mod2]

type mod2 struct{}

func (mod2) Prime() uint64 { return 2 }

func TestRandomNonTrivial_TinyField(t *testing.T) {
	_, err := RandomNonTrivial[binary](utils.NewSourceFromUint64(1))
	require.True(t, errors.Is(err, braidcrypt.ErrValidation))
}

func TestRandomTValues(t *testing.T) {
	rng := utils.NewSourceFromUint64(12)
	tv, err := RandomTValues[ZZ7](8, rng, map[int]ZZ7{2: One[ZZ7](), 5: One[ZZ7]()})
	require.NoError(t, err)
	require.Len(t, tv, 8)
	for i, v := range tv {
		if i == 2 || i == 5 {
			require.True(t, v.IsOne())
			continue
		}
		require.False(t, v.IsZero() || v.IsOne())
	}

	_, err = RandomTValues[ZZ7](1, rng, nil)
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
	_, err = RandomTValues[ZZ7](4, rng, map[int]ZZ7{9: One[ZZ7]()})
	require.ErrorIs(t, err, braidcrypt.ErrIndexOutOfRange)
}

func TestBytes(t *testing.T) {
	b := Bytes([]ZZ257{NewZZ[Mod257](1), NewZZ[Mod257](256)})
	require.Len(t, b, 16)
	require.Equal(t, byte(1), b[0])
	require.Equal(t, byte(1), b[9])
}

func TestFromUint64(t *testing.T) {
	for _, x := range []uint64{0, 1, 200, 256} {
		v, err := FromUint64[ZZ257](x)
		require.NoError(t, err)
		require.Equal(t, x, v.Uint64())
	}
	_, err := FromUint64[ZZ257](257)
	require.ErrorIs(t, err, braidcrypt.ErrMalformed)

	g, err := FromUint64[GF256](0xa7)
	require.NoError(t, err)
	require.Equal(t, GF256(0xa7), g)
	_, err = FromUint64[GF256](256)
	require.ErrorIs(t, err, braidcrypt.ErrMalformed)
}
