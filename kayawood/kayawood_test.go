package kayawood

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/braid"
	"github.com/BackendStack21/braidcrypt-go/burau"
	"github.com/BackendStack21/braidcrypt-go/cloaking"
	"github.com/BackendStack21/braidcrypt-go/core"
	"github.com/BackendStack21/braidcrypt-go/field"
	"github.com/BackendStack21/braidcrypt-go/rewrite"
	"github.com/BackendStack21/braidcrypt-go/utils"
)

type F = field.ZZ32003

func testParams(t *testing.T, seed uint64) PublicParameters[F] {
	t.Helper()
	pp, err := GeneratePublicParameters[F](core.KW16Params, utils.NewSourceFromUint64(seed))
	require.NoError(t, err)
	return pp
}

func testProtocol(t *testing.T, opts ...Option) *Protocol[F] {
	t.Helper()
	p, err := New(testParams(t, 1), opts...)
	require.NoError(t, err)
	return p
}

func TestPublicParameters(t *testing.T) {
	pp := testParams(t, 7)
	require.Len(t, pp.TValues, pp.N)
	require.True(t, pp.TValues[pp.A].IsOne())
	require.True(t, pp.TValues[pp.B].IsOne())
	for i, v := range pp.TValues {
		if i != pp.A && i != pp.B {
			require.False(t, v.IsOne(), "t[%d]", i)
			require.False(t, v.IsZero(), "t[%d]", i)
		}
	}

	_, err := NewPublicParameters(core.KW16Params, pp.TValues[:4])
	require.ErrorIs(t, err, braidcrypt.ErrDimensionMismatch)

	bad := append([]F(nil), pp.TValues...)
	bad[pp.A] = field.FromInt[F](3)
	_, err = NewPublicParameters(core.KW16Params, bad)
	require.ErrorIs(t, err, braidcrypt.ErrValidation)

	bad[pp.A] = field.One[F]()
	bad[0] = field.Zero[F]()
	_, err = NewPublicParameters(core.KW16Params, bad)
	require.ErrorIs(t, err, braidcrypt.ErrValidation)

	p := core.KW16Params
	p.N = 15
	_, err = GeneratePublicParameters[F](p, utils.NewSourceFromUint64(1))
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
}

func TestPublicParameters_Setters(t *testing.T) {
	pp := testParams(t, 2)

	short, err := pp.WithZLength(3, 4)
	require.NoError(t, err)
	require.Equal(t, 3, short.ZMinLength)
	require.Equal(t, 4, short.ZMaxLength)
	require.Equal(t, core.KW16Params.ZMinLength, pp.ZMinLength, "receiver must not change")

	short, err = short.WithPrivateLength(5, 6)
	require.NoError(t, err)
	require.Equal(t, 5, short.PrivateMinLength)

	short, err = short.WithCloakLength(1, 2)
	require.NoError(t, err)
	require.Equal(t, 2, short.CloakMaxLength)

	_, err = pp.WithPrivateLength(6, 5)
	require.ErrorIs(t, err, braidcrypt.ErrValidation)
}

func TestGenerateInstance(t *testing.T) {
	p := testProtocol(t)
	inst, err := p.GenerateInstanceFromSeed(42)
	require.NoError(t, err)
	require.NoError(t, inst.Verify())

	n := p.Params().N
	for _, w := range []braid.Word{inst.Z, inst.AlicePrivate, inst.BobPrivate, inst.AlicePublic, inst.BobPublic} {
		require.NoError(t, w.Validate(n))
	}
	require.NotEqual(t, inst.AlicePrivate, inst.AlicePublic)

	// the private braids commute
	checker, err := burau.NewDefaultIdentityChecker(n, utils.NewSourceFromUint64(1))
	require.NoError(t, err)
	differ, err := checker.AreDifferent(
		braid.Concat(inst.AlicePrivate, inst.BobPrivate),
		braid.Concat(inst.BobPrivate, inst.AlicePrivate))
	require.NoError(t, err)
	require.False(t, differ)

	ss := p.SharedSecret(inst.SharedKey)
	require.Len(t, ss, SharedSecretSize)
}

func TestGenerateInstance_Deterministic(t *testing.T) {
	p := testProtocol(t)
	a, err := p.GenerateInstanceFromSeed(9)
	require.NoError(t, err)
	b, err := p.GenerateInstanceFromSeed(9)
	require.NoError(t, err)
	require.Equal(t, a.AlicePublic, b.AlicePublic)
	require.Equal(t, a.BobPublic, b.BobPublic)
	require.Equal(t, p.SharedSecret(a.SharedKey), p.SharedSecret(b.SharedKey))

	c, err := p.GenerateInstanceFromSeed(10)
	require.NoError(t, err)
	require.NotEqual(t, p.SharedSecret(a.SharedKey), p.SharedSecret(c.SharedKey))
}

func TestSetupBraid(t *testing.T) {
	p := testProtocol(t)
	n, half := p.Params().N, p.Params().N/2
	rng := utils.NewSourceFromUint64(3)
	for i := 0; i < 20; i++ {
		z, attempts, err := p.sampleZ(rng)
		require.NoError(t, err)
		require.GreaterOrEqual(t, attempts, 1)

		pos := z.Permutation(n).Inverse()
		mixed := 0
		for s := 0; s < half; s++ {
			if pos[s] >= half {
				mixed++
			}
		}
		require.Equal(t, n/4, mixed)
		require.NotEqual(t, pos[p.Params().A] < half, pos[p.Params().B] < half)
	}
}

func TestSetupBraid_Exhausted(t *testing.T) {
	params := core.KW16Params
	params.MaxAttempts = 1
	pp, err := GeneratePublicParameters[F](params, utils.NewSourceFromUint64(1))
	require.NoError(t, err)
	p, err := New(pp)
	require.NoError(t, err)

	exhausted := 0
	for seed := uint64(0); seed < 40; seed++ {
		_, _, err := p.sampleZ(utils.NewSourceFromUint64(seed))
		if err != nil {
			require.ErrorIs(t, err, braidcrypt.ErrExhausted)
			exhausted++
		}
	}
	require.Positive(t, exhausted)
}

func TestIsBadInstance(t *testing.T) {
	weak := testProtocol(t, WithStabilizer(cloaking.Trivial{}))
	inst, err := weak.GenerateInstanceFromSeed(5)
	require.NoError(t, err)
	bad, err := weak.IsBadInstance(inst)
	require.NoError(t, err)
	require.True(t, bad, "uncloaked public words reveal the key")

	p := testProtocol(t)
	inst, err = p.GenerateInstanceFromSeed(5)
	require.NoError(t, err)
	bad, err = p.IsBadInstance(inst)
	require.NoError(t, err)
	require.False(t, bad)
}

func TestVerify_Tampered(t *testing.T) {
	p := testProtocol(t)
	inst, err := p.GenerateInstanceFromSeed(11)
	require.NoError(t, err)

	other, err := p.GenerateInstanceFromSeed(12)
	require.NoError(t, err)
	inst.SharedKey = other.SharedKey
	require.ErrorIs(t, inst.Verify(), braidcrypt.ErrProtocolInvariant)

	inst, err = p.GenerateInstanceFromSeed(11)
	require.NoError(t, err)
	inst.AlicePublic = inst.AlicePublic.PushBack(1)
	require.ErrorIs(t, inst.Verify(), braidcrypt.ErrProtocolInvariant)
}

func TestObfuscatorOptions(t *testing.T) {
	p := testProtocol(t,
		WithBetasObfuscator(braid.Unchanged),
		WithPublicKeyObfuscator(braid.FreeReduction))
	inst, err := p.GenerateInstanceFromSeed(4)
	require.NoError(t, err)
	require.NoError(t, inst.Verify())

	boom := errors.New("boom")
	failing := braid.ObfuscatorFunc(func(int, braid.Word) (braid.Word, error) { return nil, boom })
	p = testProtocol(t, WithPublicKeyObfuscator(failing))
	_, err = p.GenerateInstanceFromSeed(4)
	require.ErrorIs(t, err, boom)
}

func TestSharedPublicObfuscatorReplays(t *testing.T) {
	n := core.KW16Params.N
	want, err := testProtocol(t).GenerateInstanceFromSeed(9)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		ob, err := rewrite.NewObfuscator(n, utils.NewSourceFromUint64(77))
		require.NoError(t, err)
		inst, err := testProtocol(t, WithPublicKeyObfuscator(ob)).GenerateInstanceFromSeed(9)
		require.NoError(t, err)
		require.Equal(t, want.AlicePublic, inst.AlicePublic, "run %d", i)
		require.Equal(t, want.BobPublic, inst.BobPublic, "run %d", i)
	}

	// Earlier runs through the same obfuscator do not shift later ones.
	ob, err := rewrite.NewObfuscator(n, utils.NewSourceFromUint64(5))
	require.NoError(t, err)
	p := testProtocol(t, WithPublicKeyObfuscator(ob))
	_, err = p.GenerateInstanceFromSeed(3)
	require.NoError(t, err)
	again, err := p.GenerateInstanceFromSeed(9)
	require.NoError(t, err)
	require.Equal(t, want.AlicePublic, again.AlicePublic)
	require.Equal(t, want.BobPublic, again.BobPublic)
}

func TestDefaultObfuscatorSharesEngines(t *testing.T) {
	p := testProtocol(t)
	ob, ok := p.opts.pubOb.(*rewrite.Obfuscator)
	require.True(t, ok)
	for seed := uint64(1); seed <= 2; seed++ {
		_, err := p.GenerateInstanceFromSeed(seed)
		require.NoError(t, err)
	}
	hits, misses := ob.CacheStats()
	require.Equal(t, uint64(4), hits+misses)
	require.LessOrEqual(t, uint64(ob.CachedEngines()), misses)
}

func BenchmarkGenerateInstance(b *testing.B) {
	pp, err := GeneratePublicParameters[F](core.KW16Params, utils.NewSourceFromUint64(1))
	if err != nil {
		b.Fatal(err)
	}
	p, err := New(pp)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.GenerateInstanceFromSeed(uint64(i)); err != nil {
			b.Fatal(err)
		}
	}
}
