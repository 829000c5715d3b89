package numtheory

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscreteLog_RoundTrip(t *testing.T) {
	g, n := big.NewInt(5), big.NewInt(23)

	for x := int64(0); x < 22; x++ {
		h := MustModExp(g, big.NewInt(x), n)
		got, err := DiscreteLog(g, h, n)
		require.NoError(t, err, "x=%d", x)
		assert.Equal(t, x, got.Int64(), "5^x = %v (mod 23)", h)
	}
}

func TestDiscreteLog_Cases(t *testing.T) {
	tests := []struct {
		name    string
		g, h, n int64
		want    int64
	}{
		{"composite modulus", 2, 4, 8, 2},
		{"identity", 2, 1, 7, 0},
		{"h larger than n", 3, 12, 7, 5}, // 3^5 = 243 = 5 (mod 7)
		{"giant step", 5, 11, 23, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DiscreteLog(big.NewInt(tt.g), big.NewInt(tt.h), big.NewInt(tt.n))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Int64())
		})
	}
}

func TestDiscreteLog_NotFound(t *testing.T) {
	// 2 generates {1, 2, 4} modulo 7
	_, err := DiscreteLog(big.NewInt(2), big.NewInt(3), big.NewInt(7))
	assert.True(t, errors.Is(err, ErrDiscreteLogNotFound))

	_, err = DiscreteLog(big.NewInt(2), big.NewInt(3), big.NewInt(8))
	assert.True(t, errors.Is(err, ErrDiscreteLogNotFound))
}

func TestDiscreteLog_InvalidModulus(t *testing.T) {
	_, err := DiscreteLog(big.NewInt(2), big.NewInt(3), big.NewInt(0))
	assert.True(t, errors.Is(err, ErrInvalidModulus))

	_, err = DiscreteLog(big.NewInt(2), big.NewInt(3), big.NewInt(1<<46))
	assert.True(t, errors.Is(err, ErrInvalidModulus))
}

func TestMultiplicativeOrder(t *testing.T) {
	tests := []struct {
		g, n, want int64
	}{
		{2, 7, 3},
		{3, 7, 6},
		{5, 23, 22},
		{2, 23, 11},
		{1, 23, 1},
		{4, 1, 1},
		{65, 3233, 780},
	}

	for _, tt := range tests {
		got, err := MultiplicativeOrder(big.NewInt(tt.g), big.NewInt(tt.n))
		require.NoError(t, err, "ord(%d mod %d)", tt.g, tt.n)
		assert.Equal(t, tt.want, got.Int64(), "ord(%d mod %d)", tt.g, tt.n)
	}

	_, err := MultiplicativeOrder(big.NewInt(2), big.NewInt(8))
	assert.True(t, errors.Is(err, ErrNotInvertible))
}
