package numtheory

import (
	"math/big"

	"github.com/pkg/errors"
)

var (
	zero  = big.NewInt(0)
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
	four  = big.NewInt(4)
)

// ModExp computes base^exponent mod modulus with square-and-multiply.
//
// The exponent is consumed from its least significant bit upwards: the
// accumulator is squared every step and multiplied into the result when
// the current bit is set, reducing modulo modulus after each
// multiplication. The result always lies in [0, modulus). A zero exponent
// yields 1 mod modulus, which is 0 for modulus 1.
//
// Args:
//   - base: Any integer; negative values are reduced first.
//   - exponent: Must be non-negative (compute inverses with ModInverse).
//   - modulus: Must be positive.
//
// Returns:
//   - base^exponent mod modulus, or ErrInvalidModulus / ErrInvalidExponent.
func ModExp(base, exponent, modulus *big.Int) (*big.Int, error) {
	if modulus == nil || modulus.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidModulus, "modulus %v must be positive", modulus)
	}
	if exponent == nil || exponent.Sign() < 0 {
		return nil, errors.Wrapf(ErrInvalidExponent, "exponent %v must be non-negative", exponent)
	}
	return squareMultiply(base, exponent, modulus), nil
}

// MustModExp is like ModExp but panics on invalid arguments. It is meant
// for callers that have already validated modulus and exponent.
func MustModExp(base, exponent, modulus *big.Int) *big.Int {
	r, err := ModExp(base, exponent, modulus)
	if err != nil {
		panic(err)
	}
	return r
}

func squareMultiply(base, exponent, modulus *big.Int) *big.Int {
	result := new(big.Int).Mod(one, modulus)
	acc := new(big.Int).Mod(base, modulus)

	for i := 0; i < exponent.BitLen(); i++ {
		if exponent.Bit(i) == 1 {
			result.Mul(result, acc)
			result.Mod(result, modulus)
		}
		acc.Mul(acc, acc)
		acc.Mod(acc, modulus)
	}
	return result
}

// ModInverse returns x in [0, m) with a*x = 1 (mod m).
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidModulus, "modulus %v must be positive", m)
	}
	if m.Cmp(one) == 0 {
		return big.NewInt(0), nil
	}
	reduced := new(big.Int).Mod(a, m)
	inv := new(big.Int).ModInverse(reduced, m)
	if inv == nil {
		return nil, errors.Wrapf(ErrNotInvertible, "%v has no inverse modulo %v", a, m)
	}
	return inv, nil
}

// GCD returns the greatest common divisor of |a| and |b|.
func GCD(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
}

// LCM returns the least common multiple of |a| and |b|; zero if either is zero.
func LCM(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return big.NewInt(0)
	}
	g := GCD(a, b)
	l := new(big.Int).Div(new(big.Int).Abs(a), g)
	return l.Mul(l, new(big.Int).Abs(b))
}
