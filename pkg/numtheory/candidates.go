package numtheory

import (
	"math/big"

	"github.com/pkg/errors"
)

// FindCandidates enumerates start + k*modulus for k = 0 .. limit-1.
//
// With start = r+1 and modulus = r every value is congruent to 1 mod r,
// which makes them raw material for an exponent pair e*d = 1 (mod r).
// No filtering is done here; splitting a candidate into e and d is left to
// FactorPair.
func FindCandidates(start, modulus *big.Int, limit int) ([]*big.Int, error) {
	if modulus == nil || modulus.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidModulus, "modulus %v must be positive", modulus)
	}
	if limit < 0 {
		return nil, errors.Wrapf(ErrInvalidLimit, "limit %d must not be negative", limit)
	}

	candidates := make([]*big.Int, 0, limit)
	next := new(big.Int).Set(start)
	for k := 0; k < limit; k++ {
		candidates = append(candidates, new(big.Int).Set(next))
		next.Add(next, modulus)
	}
	return candidates, nil
}
