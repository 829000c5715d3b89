package textbookrsa

import (
	"context"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/textbook-rsa/pkg/numtheory"
)

func TestKeyMaterial_Validate(t *testing.T) {
	k := textbookKey()
	require.NoError(t, k.Validate())
	assert.Equal(t, int64(3233), k.N.Int64())
	assert.Equal(t, int64(3120), k.R.Int64())

	pub := k.Public()
	pub.E.SetInt64(3)
	assert.Equal(t, int64(17), k.E.Int64(), "Public must return copies")

	tests := []struct {
		name   string
		mutate func(k *KeyMaterial)
	}{
		{"missing d", func(k *KeyMaterial) { k.D = nil }},
		{"wrong n", func(k *KeyMaterial) { k.N = big.NewInt(3234) }},
		{"wrong r", func(k *KeyMaterial) { k.R = big.NewInt(3000) }},
		{"e not coprime", func(k *KeyMaterial) { k.E = big.NewInt(15) }},
		{"d not inverse", func(k *KeyMaterial) { k.D = big.NewInt(2754) }},
		{"equal primes", func(k *KeyMaterial) { k.Q = k.P }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := textbookKey()
			tt.mutate(k)
			assert.True(t, errors.Is(k.Validate(), ErrInvalidKey))
		})
	}
}

func TestDeriveExponents(t *testing.T) {
	r := big.NewInt(3120)

	dv, err := DeriveExponents(r, 10, 50)
	require.NoError(t, err)

	// 3121 is prime, 6241 = 79 * 79
	require.Len(t, dv.Tried, 2)
	assert.Nil(t, dv.Tried[0].E)
	assert.Equal(t, int64(3121), dv.Tried[0].Value.Int64())
	assert.Equal(t, int64(79), dv.E.Int64())
	assert.Equal(t, int64(79), dv.D.Int64())

	ed := new(big.Int).Mul(dv.E, dv.D)
	assert.Equal(t, int64(1), ed.Mod(ed, r).Int64())
}

func TestDeriveExponents_Invalid(t *testing.T) {
	_, err := DeriveExponents(big.NewInt(1), 10, 5)
	assert.True(t, errors.Is(err, numtheory.ErrInvalidModulus))

	_, err = DeriveExponents(big.NewInt(3120), 0, 5)
	assert.True(t, errors.Is(err, numtheory.ErrInvalidLimit))

	// the only candidate, 3, cannot be split
	_, err = DeriveExponents(big.NewInt(2), 1, 1)
	assert.True(t, errors.Is(err, numtheory.ErrAttemptsExceeded))
}

func TestGeneratePrimePairFrom_Sequence(t *testing.T) {
	// 131 repeats, 133 = 7*19, 137 is prime
	values := bigs(3, 131, 5, 131, 133, 137)
	i := 0
	next := func() (*big.Int, error) {
		v := values[i]
		i++
		return new(big.Int).Set(v), nil
	}

	p, q, draws, err := GeneratePrimePairFrom(context.Background(), next, 8, 20, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(131), p.Int64()) // 3 | 128 = 131
	assert.Equal(t, int64(137), q.Int64())
	assert.Equal(t, 6, draws)
}

func TestGeneratePrimePairFrom_AttemptsExceeded(t *testing.T) {
	next := func() (*big.Int, error) { return big.NewInt(4), nil }

	_, _, draws, err := GeneratePrimePairFrom(context.Background(), next, 8, 5, 25)
	assert.True(t, errors.Is(err, numtheory.ErrAttemptsExceeded))
	assert.Equal(t, 25, draws)
}

func TestGeneratePrimePairFrom_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	next := func() (*big.Int, error) { return big.NewInt(4), nil }
	_, _, _, err := GeneratePrimePairFrom(ctx, next, 8, 5, 25)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestGeneratePrimePair(t *testing.T) {
	for i := 0; i < 10; i++ {
		p, q, err := GeneratePrimePair(context.Background(), 8, 20, 1000)
		require.NoError(t, err)

		assert.NotEqual(t, 0, p.Cmp(q))
		for _, v := range []*big.Int{p, q} {
			assert.Equal(t, 8, v.BitLen(), "%v is not an 8-bit value", v)
			assert.True(t, v.ProbablyPrime(20), "%v is not prime", v)
		}
	}
}

func TestNewRandomSource_SeedPhrase(t *testing.T) {
	a, err := NewRandomSource(16, "classroom")
	require.NoError(t, err)
	b, err := NewRandomSource(16, "classroom")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		x, err := a()
		require.NoError(t, err)
		y, err := b()
		require.NoError(t, err)
		assert.Equal(t, 0, x.Cmp(y))
		assert.True(t, x.BitLen() <= 16)
	}

	_, err = NewRandomSource(0, "classroom")
	assert.True(t, errors.Is(err, numtheory.ErrInvalidBitLength))
}

func TestGenerateKeys(t *testing.T) {
	k, err := GenerateKeys(context.Background(), DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, k.Validate())

	assert.True(t, k.N.Cmp(big.NewInt(255)) > 0)
	assert.Equal(t, 8, k.P.BitLen())
	assert.Equal(t, 8, k.Q.BitLen())
}

func TestGenerateKeys_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keys.ConfidenceRounds = 0

	_, err := GenerateKeys(context.Background(), cfg)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}
