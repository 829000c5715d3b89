package numtheory

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsProbablePrime_SmallNumbers(t *testing.T) {
	primes := []int64{2, 3, 5, 7, 11, 13}
	composites := []int64{4, 6, 8, 9, 10, 15}

	// witnesses are random, the classification must not be
	for i := 0; i < 50; i++ {
		for _, p := range primes {
			ok, err := IsProbablePrime(big.NewInt(p), 5)
			require.NoError(t, err)
			require.True(t, ok, "%d should be prime", p)
		}
		for _, c := range composites {
			ok, err := IsProbablePrime(big.NewInt(c), 5)
			require.NoError(t, err)
			require.False(t, ok, "%d should be composite", c)
		}
	}
}

func TestIsProbablePrime_TrivialCases(t *testing.T) {
	for _, n := range []int64{-7, 0, 1} {
		ok, err := IsProbablePrime(big.NewInt(n), 1)
		require.NoError(t, err)
		assert.False(t, ok, "%d", n)
	}
}

func TestIsProbablePrime_LargerValues(t *testing.T) {
	tests := []struct {
		n     string
		prime bool
	}{
		{"7919", true},
		{"65537", true},
		{"561", false}, // Carmichael number
		{"8051", false},
		{"170141183460469231731687303715884105727", true}, // 2^127 - 1
		{"170141183460469231731687303715884105729", false},
	}

	for _, tt := range tests {
		t.Run(tt.n, func(t *testing.T) {
			n, _ := new(big.Int).SetString(tt.n, 10)
			ok, err := IsProbablePrime(n, 20)
			require.NoError(t, err)
			assert.Equal(t, tt.prime, ok)
		})
	}
}

func TestIsProbablePrime_InvalidRounds(t *testing.T) {
	_, err := IsProbablePrime(big.NewInt(7), 0)
	assert.True(t, errors.Is(err, ErrInvalidRounds))
}

func TestPrimalityTester_EntropyFailure(t *testing.T) {
	tester := NewPrimalityTester(bytes.NewReader(nil))

	_, err := tester.IsProbablePrime(big.NewInt(101), 3)
	assert.Error(t, err)

	// trivial cases never draw a witness
	ok, err := tester.IsProbablePrime(big.NewInt(3), 3)
	require.NoError(t, err)
	assert.True(t, ok)
}
