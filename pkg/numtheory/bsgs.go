package numtheory

import (
	"math/big"

	"github.com/pkg/errors"
)

// MaxBabySteps bounds the size of the baby-step table.
const MaxBabySteps = 1 << 22

// DiscreteLog returns the smallest non-negative x < n with g^x = h (mod n)
// using baby-step/giant-step.
//
// With m = ceil(sqrt(n)), the baby steps g^j mod n for j < m are stored
// keyed by residue, keeping the smallest j on collisions. The giant steps
// h * (g^-m)^i mod n for i < m are looked up in the table and the first
// hit gives i*m + j.
//
// Returns:
//   - x, or ErrDiscreteLogNotFound when no exponent exists in range or g^m
//     is not invertible modulo n.
func DiscreteLog(g, h, n *big.Int) (*big.Int, error) {
	if n == nil || n.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidModulus, "modulus %v must be positive", n)
	}
	m := ceilSqrt(n)
	if !m.IsInt64() || m.Int64() > MaxBabySteps {
		return nil, errors.Wrapf(ErrInvalidModulus, "modulus %v needs more than %d baby steps", n, MaxBabySteps)
	}
	steps := m.Int64()

	base := new(big.Int).Mod(g, n)
	table := make(map[string]int64, steps)
	cur := new(big.Int).Mod(one, n)
	for j := int64(0); j < steps; j++ {
		key := cur.String()
		if _, ok := table[key]; !ok {
			table[key] = j
		}
		cur.Mul(cur, base)
		cur.Mod(cur, n)
	}

	gamma := new(big.Int).Mod(h, n)
	if j, ok := table[gamma.String()]; ok {
		return big.NewInt(j), nil
	}

	// cur holds g^m mod n
	factor, err := ModInverse(cur, n)
	if err != nil {
		return nil, errors.Wrapf(ErrDiscreteLogNotFound, "%v^%d is not invertible modulo %v", g, steps, n)
	}
	for i := int64(1); i < steps; i++ {
		gamma.Mul(gamma, factor)
		gamma.Mod(gamma, n)
		if j, ok := table[gamma.String()]; ok {
			x := new(big.Int).Mul(big.NewInt(i), m)
			return x.Add(x, big.NewInt(j)), nil
		}
	}
	return nil, errors.Wrapf(ErrDiscreteLogNotFound, "no x with %v^x = %v (mod %v)", g, h, n)
}

// MultiplicativeOrder returns the smallest k >= 1 with g^k = 1 (mod n).
// It is found as DiscreteLog(g, g^-1, n) + 1, so g must be coprime to n.
func MultiplicativeOrder(g, n *big.Int) (*big.Int, error) {
	if n == nil || n.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidModulus, "modulus %v must be positive", n)
	}
	if n.Cmp(one) == 0 {
		return big.NewInt(1), nil
	}
	inv, err := ModInverse(g, n)
	if err != nil {
		return nil, err
	}
	x, err := DiscreteLog(g, inv, n)
	if err != nil {
		return nil, errors.Wrapf(err, "order of %v modulo %v", g, n)
	}
	return x.Add(x, one), nil
}

func ceilSqrt(n *big.Int) *big.Int {
	s := new(big.Int).Sqrt(n)
	if new(big.Int).Mul(s, s).Cmp(n) < 0 {
		s.Add(s, one)
	}
	return s
}
