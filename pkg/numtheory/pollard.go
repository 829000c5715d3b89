package numtheory

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// DefaultSmoothnessBound is the largest k folded into the exponent
// M = k! by FactorPair.
const DefaultSmoothnessBound = 1 << 14

// bases tried in order when a run collapses to gcd = n
var pollardBases = []int64{2, 3, 5, 7}

// FactorPair splits a composite n into two factors with Pollard's p-1
// method, using DefaultSmoothnessBound.
func FactorPair(n *big.Int) (*big.Int, *big.Int, error) {
	return FactorPairWithBound(n, DefaultSmoothnessBound)
}

// FactorPairWithBound splits n into (d, n/d) with 1 < d <= n/d.
//
// For each base a the exponent grows factorial-wise, g <- g^k mod n for
// k = 2 .. bound, and d = gcd(g-1, n) is checked after every step. When d
// collapses to n (every prime factor became smooth at the same k) the next
// base is tried. A base sharing a factor with n yields that factor
// directly.
//
// Returns ErrFactorizationExhausted when n is prime, smaller than 4, or no
// split shows up within the bound; the caller is expected to pick another
// candidate.
func FactorPairWithBound(n *big.Int, bound int) (*big.Int, *big.Int, error) {
	if n == nil || n.Cmp(four) < 0 {
		return nil, nil, errors.Wrapf(ErrFactorizationExhausted, "%v has no nontrivial split", n)
	}
	if bound < 2 {
		return nil, nil, errors.Wrapf(ErrInvalidLimit, "smoothness bound %d must be at least 2", bound)
	}
	if prime, _ := IsProbablePrime(n, 20); prime {
		return nil, nil, errors.Wrapf(ErrFactorizationExhausted, "%v is prime", n)
	}

	for _, base := range pollardBases {
		a := big.NewInt(base)
		if d := GCD(a, n); d.Cmp(one) > 0 {
			if d.Cmp(n) < 0 {
				return orderedSplit(n, d)
			}
			continue
		}

		g := new(big.Int).Set(a)
		k := new(big.Int)
		for i := 2; i <= bound; i++ {
			k.SetInt64(int64(i))
			g = MustModExp(g, k, n)
			d := GCD(new(big.Int).Sub(g, one), n)
			if d.Cmp(one) == 0 {
				continue
			}
			if d.Cmp(n) < 0 {
				return orderedSplit(n, d)
			}
			break
		}
	}
	return nil, nil, errors.Wrapf(ErrFactorizationExhausted, "no factor of %v within bound %d", n, bound)
}

func orderedSplit(n, d *big.Int) (*big.Int, *big.Int, error) {
	other := new(big.Int).Div(n, d)
	if d.Cmp(other) > 0 {
		return other, new(big.Int).Set(d), nil
	}
	return new(big.Int).Set(d), other, nil
}

// FactorPower is one prime factor with its multiplicity.
type FactorPower struct {
	Factor       *big.Int
	Multiplicity int
}

// FactorSet is a factorization ordered by ascending factor.
type FactorSet []FactorPower

// Product multiplies the factors back together.
func (fs FactorSet) Product() *big.Int {
	p := big.NewInt(1)
	for _, f := range fs {
		for i := 0; i < f.Multiplicity; i++ {
			p.Mul(p, f.Factor)
		}
	}
	return p
}

// String renders the set as 2^3 * 3^2 * 5; the empty set is 1.
func (fs FactorSet) String() string {
	if len(fs) == 0 {
		return "1"
	}
	parts := make([]string, len(fs))
	for i, f := range fs {
		if f.Multiplicity == 1 {
			parts[i] = f.Factor.String()
		} else {
			parts[i] = fmt.Sprintf("%v^%d", f.Factor, f.Multiplicity)
		}
	}
	return strings.Join(parts, " * ")
}

const trialDivisionLimit = 1000

// Factorize returns the complete factorization of n >= 1.
//
// Small factors are removed by trial division, the rest is split
// recursively with FactorPair until every part is a probable prime.
// Perfect squares are split by their root since p-1 alone cannot separate
// equal factors.
func Factorize(n *big.Int) (FactorSet, error) {
	if n == nil || n.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidModulus, "cannot factor %v", n)
	}

	counts := make(map[string]*FactorPower)
	add := func(p *big.Int) {
		key := p.String()
		if fp, ok := counts[key]; ok {
			fp.Multiplicity++
			return
		}
		counts[key] = &FactorPower{Factor: new(big.Int).Set(p), Multiplicity: 1}
	}

	rest := new(big.Int).Set(n)
	d := new(big.Int)
	mod := new(big.Int)
	for i := int64(2); i < trialDivisionLimit; i++ {
		d.SetInt64(i)
		if new(big.Int).Mul(d, d).Cmp(rest) > 0 {
			break
		}
		for {
			q, r := new(big.Int).QuoRem(rest, d, mod)
			if r.Sign() != 0 {
				break
			}
			add(d)
			rest = q
		}
	}

	if err := splitInto(rest, add); err != nil {
		return nil, err
	}

	fs := make(FactorSet, 0, len(counts))
	for _, fp := range counts {
		fs = append(fs, *fp)
	}
	sort.Slice(fs, func(i, j int) bool { return fs[i].Factor.Cmp(fs[j].Factor) < 0 })
	return fs, nil
}

func splitInto(n *big.Int, add func(*big.Int)) error {
	if n.Cmp(one) == 0 {
		return nil
	}
	if prime, _ := IsProbablePrime(n, 20); prime {
		add(n)
		return nil
	}
	if root := new(big.Int).Sqrt(n); new(big.Int).Mul(root, root).Cmp(n) == 0 {
		if err := splitInto(root, add); err != nil {
			return err
		}
		return splitInto(root, add)
	}
	a, b, err := FactorPair(n)
	if err != nil {
		return errors.Wrapf(err, "factorize %v", n)
	}
	if err := splitInto(a, add); err != nil {
		return err
	}
	return splitInto(b, add)
}
