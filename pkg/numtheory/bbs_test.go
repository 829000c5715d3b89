package numtheory

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextN(t *testing.T, g *Generator, bits, count int) []int64 {
	t.Helper()
	out := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		v, err := g.Next(bits)
		require.NoError(t, err)
		out = append(out, v.Int64())
	}
	return out
}

func TestGenerator_KnownSequence(t *testing.T) {
	// x0 = 3 mod 11*23: residues 9, 81, 236, 36, 31, 202, 71, 234 -> parities 11001010
	g, err := NewGenerator(big.NewInt(11), big.NewInt(23), big.NewInt(3))
	require.NoError(t, err)

	assert.Equal(t, []int64{202, 13, 156, 160}, nextN(t, g, 8, 4))
}

func TestGenerator_Deterministic(t *testing.T) {
	p, q := big.NewInt(499), big.NewInt(547)

	g1, err := NewGenerator(p, q, big.NewInt(159201))
	require.NoError(t, err)
	g2, err := NewGenerator(p, q, big.NewInt(159201))
	require.NoError(t, err)
	g3, err := NewGenerator(p, q, big.NewInt(159202))
	require.NoError(t, err)

	s1 := nextN(t, g1, 16, 3)
	s2 := nextN(t, g2, 16, 3)
	s3 := nextN(t, g3, 16, 3)

	assert.Equal(t, s1, s2)
	assert.Equal(t, []int64{41478, 35309, 33396}, s1)
	assert.NotEqual(t, s1, s3)
}

func TestGenerator_Func(t *testing.T) {
	g, err := NewGenerator(big.NewInt(11), big.NewInt(23), big.NewInt(3))
	require.NoError(t, err)

	next := g.Func(8)
	v, err := next()
	require.NoError(t, err)
	assert.Equal(t, int64(202), v.Int64())
	assert.Equal(t, int64(253), g.Modulus().Int64())
}

func TestNewGenerator_InvalidParameters(t *testing.T) {
	tests := []struct {
		name    string
		p, q, x int64
		want    error
	}{
		{"p not 3 mod 4", 13, 23, 3, ErrInvalidBlumPrime},
		{"q not 3 mod 4", 11, 17, 3, ErrInvalidBlumPrime},
		{"equal primes", 11, 11, 3, ErrInvalidBlumPrime},
		{"seed shares factor", 11, 23, 22, ErrInvalidSeed},
		{"seed zero", 11, 23, 0, ErrInvalidSeed},
		{"seed one", 11, 23, 1, ErrInvalidSeed},
		{"seed reduces to one", 11, 23, 254, ErrInvalidSeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(big.NewInt(tt.p), big.NewInt(tt.q), big.NewInt(tt.x))
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestGenerator_InvalidBitLength(t *testing.T) {
	g, err := NewGenerator(big.NewInt(11), big.NewInt(23), big.NewInt(3))
	require.NoError(t, err)

	_, err = g.Next(0)
	assert.True(t, errors.Is(err, ErrInvalidBitLength))
}

func TestMakeGenerator(t *testing.T) {
	next, err := MakeGenerator(8)
	require.NoError(t, err)

	limit := big.NewInt(256)
	for i := 0; i < 20; i++ {
		v, err := next()
		require.NoError(t, err)
		assert.True(t, v.Sign() >= 0 && v.Cmp(limit) < 0, "value %v out of 8-bit range", v)
	}

	_, err = MakeGenerator(0)
	assert.True(t, errors.Is(err, ErrInvalidBitLength))
}

func TestNewRandomGenerator_Config(t *testing.T) {
	g, err := NewRandomGenerator(GeneratorConfig{PrimeBits: 12, Rounds: 10, MaxAttempts: 5000})
	require.NoError(t, err)

	// product of two 12-bit primes
	bits := g.Modulus().BitLen()
	assert.True(t, bits == 23 || bits == 24, "modulus has %d bits", bits)

	_, err = NewRandomGenerator(GeneratorConfig{PrimeBits: 2})
	assert.True(t, errors.Is(err, ErrInvalidBitLength))
}

func TestDeriveSeed(t *testing.T) {
	n := new(big.Int).Mul(big.NewInt(1019), big.NewInt(1031))

	s1, err := DeriveSeed("alice and bob", n)
	require.NoError(t, err)
	s2, err := DeriveSeed("alice and bob", n)
	require.NoError(t, err)

	assert.Equal(t, 0, s1.Cmp(s2))
	assert.True(t, s1.Cmp(big.NewInt(1)) > 0 && s1.Cmp(n) < 0)
	assert.Equal(t, int64(1), GCD(s1, n).Int64())

	g, err := NewGenerator(big.NewInt(1019), big.NewInt(1031), s1)
	require.NoError(t, err)
	_, err = g.Next(16)
	require.NoError(t, err)

	_, err = DeriveSeed("x", big.NewInt(3))
	assert.True(t, errors.Is(err, ErrInvalidModulus))
}
