package numtheory

import (
	"math/big"

	mapset "github.com/deckarep/golang-set"
	"github.com/pkg/errors"
)

// MaxPrimitiveRootPrime bounds FindPrimitiveRoots, whose table is
// quadratic in the prime. Residues below it fit a uint16.
const MaxPrimitiveRootPrime = 1 << 12

// NotPrimitiveRoot marks entries of FindPrimitiveRoots that are not roots.
var NotPrimitiveRoot = big.NewInt(-1)

// RootTable holds b^k mod p for b, k = 1 .. p-1. Row b-1 is b^1 .. b^(p-1).
// All rows share one backing array.
type RootTable [][]uint16

// PrimitiveRootTable returns the (p-1) x (p-1) power table of prime.
func PrimitiveRootTable(prime *big.Int) (RootTable, error) {
	if err := checkRootPrime(prime); err != nil {
		return nil, err
	}
	p := uint32(prime.Int64())
	phi := int(p - 1)

	cells := make([]uint16, phi*phi)
	table := make(RootTable, phi)
	for row := 0; row < phi; row++ {
		b := uint32(row + 1)
		residues := cells[row*phi : (row+1)*phi : (row+1)*phi]
		// b^(col+1) from the previous column instead of a fresh ModExp
		acc := uint32(1)
		for col := range residues {
			acc = acc * b % p
			residues[col] = uint16(acc)
		}
		table[row] = residues
	}
	return table, nil
}

// FindPrimitiveRoots returns a slice of length p-1 whose entry i is i+1
// when i+1 is a primitive root modulo p and NotPrimitiveRoot otherwise.
//
// The full exponent table is built first; a row is a primitive root
// exactly when its p-1 residues are pairwise distinct.
func FindPrimitiveRoots(prime *big.Int) ([]*big.Int, error) {
	table, err := PrimitiveRootTable(prime)
	if err != nil {
		return nil, err
	}
	return table.Roots(), nil
}

// Roots marks the rows of t whose residues are pairwise distinct, in the
// layout of FindPrimitiveRoots.
func (t RootTable) Roots() []*big.Int {
	roots := make([]*big.Int, len(t))
	for row, residues := range t {
		seen := mapset.NewThreadUnsafeSet()
		distinct := true
		for _, r := range residues {
			if !seen.Add(r) {
				distinct = false
				break
			}
		}
		if distinct {
			roots[row] = big.NewInt(int64(row + 1))
		} else {
			roots[row] = new(big.Int).Set(NotPrimitiveRoot)
		}
	}
	return roots
}

func checkRootPrime(prime *big.Int) error {
	if prime == nil || prime.Cmp(two) < 0 {
		return errors.Wrapf(ErrInvalidModulus, "%v is not a prime", prime)
	}
	if prime.Cmp(big.NewInt(MaxPrimitiveRootPrime)) > 0 {
		return errors.Wrapf(ErrInvalidModulus, "%v exceeds the table limit %d", prime, MaxPrimitiveRootPrime)
	}
	if ok, err := IsProbablePrime(prime, 20); err != nil || !ok {
		return errors.Wrapf(ErrInvalidModulus, "%v is not a prime", prime)
	}
	return nil
}
