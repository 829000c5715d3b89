package numtheory

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rootValues(roots []*big.Int) []int64 {
	out := make([]int64, len(roots))
	for i, r := range roots {
		out[i] = r.Int64()
	}
	return out
}

func TestFindPrimitiveRoots_Seven(t *testing.T) {
	roots, err := FindPrimitiveRoots(big.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, []int64{-1, -1, 3, -1, 5, -1}, rootValues(roots))
}

func TestFindPrimitiveRoots_TwentyThree(t *testing.T) {
	roots, err := FindPrimitiveRoots(big.NewInt(23))
	require.NoError(t, err)
	require.Len(t, roots, 22)

	var found []int64
	for _, r := range roots {
		if r.Cmp(NotPrimitiveRoot) != 0 {
			found = append(found, r.Int64())
		}
	}
	// phi(22) = 10 roots
	assert.Equal(t, []int64{5, 7, 10, 11, 14, 15, 17, 19, 20, 21}, found)
}

func TestFindPrimitiveRoots_Two(t *testing.T) {
	roots, err := FindPrimitiveRoots(big.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, rootValues(roots))
}

func TestFindPrimitiveRoots_Invalid(t *testing.T) {
	for _, p := range []int64{-5, 0, 1, 8, 561, 4099} {
		_, err := FindPrimitiveRoots(big.NewInt(p))
		assert.True(t, errors.Is(err, ErrInvalidModulus), "p=%d: %v", p, err)
	}
}

func TestPrimitiveRootTable(t *testing.T) {
	table, err := PrimitiveRootTable(big.NewInt(5))
	require.NoError(t, err)
	require.Len(t, table, 4)

	assert.Equal(t, []uint16{1, 1, 1, 1}, table[0])
	assert.Equal(t, []uint16{2, 4, 3, 1}, table[1])
	assert.Equal(t, []uint16{3, 4, 2, 1}, table[2])
	assert.Equal(t, []uint16{4, 1, 4, 1}, table[3])

	assert.Equal(t, []int64{-1, 2, 3, -1}, rootValues(table.Roots()))
}

func TestFindPrimitiveRoots_LargestPrime(t *testing.T) {
	// 4093 is the largest prime under the table limit; phi(4092) = 1200 roots
	table, err := PrimitiveRootTable(big.NewInt(4093))
	require.NoError(t, err)
	require.Len(t, table, 4092)
	assert.Len(t, table[4091], 4092)
	assert.Equal(t, uint16(1), table[4091][4091], "(p-1)^(p-1) = 1")

	count := 0
	for _, r := range table.Roots() {
		if r.Cmp(NotPrimitiveRoot) != 0 {
			count++
		}
	}
	assert.Equal(t, 1200, count)
}
