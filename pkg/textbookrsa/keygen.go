package textbookrsa

import (
	"context"
	"math/big"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/textbook-rsa/pkg/numtheory"
)

// Blum primes behind seeded generators; both are 3 mod 4.
var (
	seededBlumP = big.NewInt(4294967291)
	seededBlumQ = big.NewInt(4294967279)
)

// RandomSource yields successive pseudorandom candidates.
type RandomSource func() (*big.Int, error)

// NewRandomSource returns a Blum Blum Shub source of bitLength-bit values.
// An empty phrase draws fresh parameters; otherwise the seed is derived
// from the phrase so that runs are reproducible.
func NewRandomSource(bitLength int, phrase string) (RandomSource, error) {
	if phrase == "" {
		next, err := numtheory.MakeGenerator(bitLength)
		if err != nil {
			return nil, err
		}
		return next, nil
	}
	if bitLength <= 0 {
		return nil, errors.Wrapf(numtheory.ErrInvalidBitLength, "bit length %d must be positive", bitLength)
	}
	n := new(big.Int).Mul(seededBlumP, seededBlumQ)
	seed, err := numtheory.DeriveSeed(phrase, n)
	if err != nil {
		return nil, err
	}
	g, err := numtheory.NewGenerator(seededBlumP, seededBlumQ, seed)
	if err != nil {
		return nil, err
	}
	return g.Func(bitLength), nil
}

// GeneratePrimePair draws two distinct primes of exactly bitLength bits from
// a fresh Blum Blum Shub generator.
//
// Args:
//   - ctx: Context for cancellation.
//   - bitLength: Size of each prime; the top bit of every candidate is forced.
//   - confidenceRounds: Miller-Rabin witnesses per candidate.
//   - maxAttempts: Upper bound on candidate draws for the pair.
//
// Returns:
//   - p, q with p != q, or ErrAttemptsExceeded.
func GeneratePrimePair(ctx context.Context, bitLength, confidenceRounds, maxAttempts int) (*big.Int, *big.Int, error) {
	next, err := NewRandomSource(bitLength, "")
	if err != nil {
		return nil, nil, err
	}
	p, q, _, err := GeneratePrimePairFrom(ctx, next, bitLength, confidenceRounds, maxAttempts)
	return p, q, err
}

// GeneratePrimePairFrom is GeneratePrimePair over an explicit source. It
// also reports how many candidates were drawn.
func GeneratePrimePairFrom(ctx context.Context, next RandomSource, bitLength, confidenceRounds, maxAttempts int) (*big.Int, *big.Int, int, error) {
	if bitLength < 2 {
		return nil, nil, 0, errors.Wrapf(numtheory.ErrInvalidBitLength, "no two distinct %d-bit primes", bitLength)
	}
	if confidenceRounds <= 0 {
		return nil, nil, 0, errors.Wrapf(numtheory.ErrInvalidRounds, "confidence rounds %d must be positive", confidenceRounds)
	}

	var primes []numtheory.PrimeCandidate
	for draws := 1; draws <= maxAttempts; draws++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, draws - 1, err
		}
		c, err := next()
		if err != nil {
			return nil, nil, draws, errors.Wrap(err, "draw prime candidate")
		}
		// keep the candidate at exactly bitLength bits so n exceeds a byte
		c.SetBit(c, bitLength-1, 1)

		prime, err := numtheory.IsProbablePrime(c, confidenceRounds)
		if err != nil {
			return nil, nil, draws, err
		}
		if !prime || (len(primes) == 1 && primes[0].Value.Cmp(c) == 0) {
			continue
		}
		primes = append(primes, numtheory.PrimeCandidate{Value: c, Rounds: confidenceRounds})
		if len(primes) == 2 {
			return primes[0].Value, primes[1].Value, draws, nil
		}
	}
	return nil, nil, maxAttempts, errors.Wrapf(numtheory.ErrAttemptsExceeded,
		"found %d of 2 primes in %d draws", len(primes), maxAttempts)
}

// Candidate is one step of the e/d derivation.
type Candidate struct {
	Value *big.Int
	E     *big.Int // nil when the candidate could not be used
	D     *big.Int
}

// Derivation records how (e, d) was obtained.
type Derivation struct {
	Tried []Candidate // every candidate looked at, in order
	E     *big.Int
	D     *big.Int
}

// DeriveExponents finds (e, d) with e*d = 1 (mod r) without extended
// Euclid.
//
// Candidates r+1, 2r+1, ... come from FindCandidates in blocks of limit.
// Each is split with FactorPair; candidates that cannot be split, split
// trivially, or give an e sharing a factor with r are skipped. The first
// usable split is returned, with e the smaller factor.
//
// Returns:
//   - Derivation, or ErrAttemptsExceeded after maxRounds blocks.
func DeriveExponents(r *big.Int, limit, maxRounds int) (*Derivation, error) {
	if r == nil || r.Cmp(big.NewInt(2)) < 0 {
		return nil, errors.Wrapf(numtheory.ErrInvalidModulus, "r=%v too small for an exponent pair", r)
	}
	if limit <= 0 || maxRounds <= 0 {
		return nil, errors.Wrapf(numtheory.ErrInvalidLimit, "limit %d and rounds %d must be positive", limit, maxRounds)
	}

	dv := &Derivation{}
	start := new(big.Int).Add(r, big.NewInt(1))
	step := new(big.Int).Mul(r, big.NewInt(int64(limit)))
	for round := 0; round < maxRounds; round++ {
		candidates, err := numtheory.FindCandidates(start, r, limit)
		if err != nil {
			return nil, err
		}
		for _, c := range candidates {
			e, d, err := numtheory.FactorPair(c)
			if errors.Is(err, numtheory.ErrFactorizationExhausted) {
				dv.Tried = append(dv.Tried, Candidate{Value: c})
				continue
			}
			if err != nil {
				return nil, err
			}
			if e.Cmp(big.NewInt(1)) == 0 || numtheory.GCD(e, r).Cmp(big.NewInt(1)) != 0 {
				dv.Tried = append(dv.Tried, Candidate{Value: c})
				continue
			}
			dv.Tried = append(dv.Tried, Candidate{Value: c, E: e, D: d})
			dv.E, dv.D = e, d
			return dv, nil
		}
		start.Add(start, step)
	}
	return nil, errors.Wrapf(numtheory.ErrAttemptsExceeded, "no usable candidate in %d blocks of %d", maxRounds, limit)
}

// NewKeyMaterial assembles a key from p, q and a derived exponent pair.
func NewKeyMaterial(p, q, e, d *big.Int) (*KeyMaterial, error) {
	one := big.NewInt(1)
	k := &KeyMaterial{
		P: new(big.Int).Set(p),
		Q: new(big.Int).Set(q),
		N: new(big.Int).Mul(p, q),
		R: new(big.Int).Mul(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one)),
		E: new(big.Int).Set(e),
		D: new(big.Int).Set(d),
	}
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return k, nil
}

// GenerateKeys runs the whole key setup from cfg: a prime pair from a
// Blum Blum Shub source, then the two-stage e/d derivation.
func GenerateKeys(ctx context.Context, cfg Config) (*KeyMaterial, error) {
	k, _, err := generateKeys(ctx, cfg, nil)
	return k, err
}

func generateKeys(ctx context.Context, cfg Config, m *Metrics) (*KeyMaterial, *Derivation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	next, err := NewRandomSource(cfg.Keys.PrimeBits, cfg.SeedPhrase)
	if err != nil {
		return nil, nil, err
	}
	p, q, draws, err := GeneratePrimePairFrom(ctx, next, cfg.Keys.PrimeBits, cfg.Keys.ConfidenceRounds, cfg.Keys.MaxPrimeAttempts)
	m.observePrimeDraws(draws)
	if err != nil {
		return nil, nil, errors.Wrap(err, "select primes")
	}

	r := new(big.Int).Mul(new(big.Int).Sub(p, big.NewInt(1)), new(big.Int).Sub(q, big.NewInt(1)))
	dv, err := DeriveExponents(r, cfg.Keys.CandidatesPerBlock, cfg.Keys.MaxCandidateBlocks)
	if dv != nil {
		m.observeFactorAttempts(len(dv.Tried))
	}
	if err != nil {
		return nil, nil, errors.Wrapf(err, "derive exponents for r=%v", r)
	}

	k, err := NewKeyMaterial(p, q, dv.E, dv.D)
	if err != nil {
		return nil, nil, err
	}
	return k, dv, nil
}
