package numtheory

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// PrimalityTester runs the Miller-Rabin test with witnesses drawn from its
// randomness source.
type PrimalityTester struct {
	rand io.Reader
}

// NewPrimalityTester creates a tester drawing witnesses from r. A nil r
// selects crypto/rand.
func NewPrimalityTester(r io.Reader) *PrimalityTester {
	if r == nil {
		r = rand.Reader
	}
	return &PrimalityTester{rand: r}
}

var defaultTester = NewPrimalityTester(nil)

// IsProbablePrime reports whether n survives rounds Miller-Rabin rounds
// with fresh random witnesses. A composite passes with probability at
// most 4^-rounds.
func IsProbablePrime(n *big.Int, rounds int) (bool, error) {
	return defaultTester.IsProbablePrime(n, rounds)
}

// IsProbablePrime reports whether n survives rounds Miller-Rabin rounds.
//
// n-1 is written as 2^s * d with d odd. For each witness a in [2, n-2],
// x = a^d mod n passes when it is 1 or n-1, or when one of the following
// s-1 squarings reaches n-1. The first failing witness proves n composite.
func (t *PrimalityTester) IsProbablePrime(n *big.Int, rounds int) (bool, error) {
	if rounds <= 0 {
		return false, errors.Wrapf(ErrInvalidRounds, "rounds %d must be positive", rounds)
	}
	if n.Cmp(two) < 0 {
		return false, nil
	}
	if n.Cmp(two) == 0 || n.Cmp(three) == 0 {
		return true, nil
	}
	if n.Bit(0) == 0 {
		return false, nil
	}

	nMinus1 := new(big.Int).Sub(n, one)
	d := new(big.Int).Set(nMinus1)
	s := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}

	// witnesses come from [0, n-3) shifted by 2
	span := new(big.Int).Sub(n, three)
	for i := 0; i < rounds; i++ {
		a, err := rand.Int(t.rand, span)
		if err != nil {
			return false, errors.Wrap(err, "draw witness")
		}
		a.Add(a, two)

		if !t.witnessPasses(a, d, nMinus1, n, s) {
			return false, nil
		}
	}
	return true, nil
}

func (t *PrimalityTester) witnessPasses(a, d, nMinus1, n *big.Int, s int) bool {
	x := MustModExp(a, d, n)
	if x.Cmp(one) == 0 || x.Cmp(nMinus1) == 0 {
		return true
	}
	for r := 1; r < s; r++ {
		x = MustModExp(x, two, n)
		if x.Cmp(nMinus1) == 0 {
			return true
		}
	}
	return false
}

// PrimeCandidate is a value that passed Rounds Miller-Rabin rounds.
type PrimeCandidate struct {
	Value  *big.Int
	Rounds int
}
