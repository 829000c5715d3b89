package numtheory

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// MinBlumPrimeBits is the smallest prime size MakeGenerator uses, so that
// short outputs still come from a modulus with a usable period.
const MinBlumPrimeBits = 16

// Generator is a Blum Blum Shub pseudorandom generator. Its state (the
// modulus n = p*q and the current residue x) is private to the instance
// and only advanced by Next. A Generator is not safe for concurrent use.
type Generator struct {
	n *big.Int
	x *big.Int
}

// NewGenerator builds a generator from explicit parameters. Identical
// (p, q, seed) triples produce identical output sequences.
//
// Args:
//   - p, q: Distinct primes, each congruent to 3 mod 4.
//   - seed: Initial residue; must be coprime to p*q and not 0 or 1.
//
// Returns:
//   - Generator, or ErrInvalidBlumPrime / ErrInvalidSeed.
func NewGenerator(p, q, seed *big.Int) (*Generator, error) {
	for _, prime := range []*big.Int{p, q} {
		if prime == nil || prime.Sign() <= 0 || new(big.Int).Mod(prime, four).Cmp(three) != 0 {
			return nil, errors.Wrapf(ErrInvalidBlumPrime, "%v is not congruent to 3 mod 4", prime)
		}
	}
	if p.Cmp(q) == 0 {
		return nil, errors.Wrapf(ErrInvalidBlumPrime, "p and q must differ, both are %v", p)
	}

	n := new(big.Int).Mul(p, q)
	x := new(big.Int).Mod(seed, n)
	if x.Cmp(one) <= 0 {
		return nil, errors.Wrapf(ErrInvalidSeed, "seed %v reduces to %v", seed, x)
	}
	if GCD(x, n).Cmp(one) != 0 {
		return nil, errors.Wrapf(ErrInvalidSeed, "seed %v shares a factor with the modulus", seed)
	}
	return &Generator{n: n, x: x}, nil
}

// Next advances the state once per output bit (x <- x^2 mod n) and
// collects the parity of each residue, most significant bit first.
func (g *Generator) Next(bitLength int) (*big.Int, error) {
	if bitLength <= 0 {
		return nil, errors.Wrapf(ErrInvalidBitLength, "bit length %d must be positive", bitLength)
	}
	out := new(big.Int)
	for i := 0; i < bitLength; i++ {
		g.x = MustModExp(g.x, two, g.n)
		out.Lsh(out, 1)
		if g.x.Bit(0) == 1 {
			out.SetBit(out, 0, 1)
		}
	}
	return out, nil
}

// Func returns the zero-argument view of the generator: every call yields
// the next bitLength-bit value.
func (g *Generator) Func(bitLength int) func() (*big.Int, error) {
	return func() (*big.Int, error) {
		return g.Next(bitLength)
	}
}

// Modulus returns a copy of n.
func (g *Generator) Modulus() *big.Int {
	return new(big.Int).Set(g.n)
}

// GeneratorConfig controls how NewRandomGenerator picks its parameters.
type GeneratorConfig struct {
	// PrimeBits is the size of p and q (0 = MinBlumPrimeBits)
	PrimeBits int

	// Rounds is the Miller-Rabin confidence for p and q
	Rounds int

	// MaxAttempts bounds the number of candidates drawn per prime
	MaxAttempts int

	// Rand is the entropy source for candidates and seed (nil = crypto/rand)
	Rand io.Reader
}

// DefaultGeneratorConfig returns a sensible default configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PrimeBits:   MinBlumPrimeBits,
		Rounds:      20,
		MaxAttempts: 10000,
	}
}

// MakeGenerator returns a function yielding a fresh pseudorandom value of
// bitLength bits on each call, backed by a private Blum Blum Shub state.
func MakeGenerator(bitLength int) (func() (*big.Int, error), error) {
	if bitLength <= 0 {
		return nil, errors.Wrapf(ErrInvalidBitLength, "bit length %d must be positive", bitLength)
	}
	cfg := DefaultGeneratorConfig()
	if bitLength > cfg.PrimeBits {
		cfg.PrimeBits = bitLength
	}
	g, err := NewRandomGenerator(cfg)
	if err != nil {
		return nil, err
	}
	return g.Func(bitLength), nil
}

// NewRandomGenerator draws two distinct Blum primes and a coprime seed.
func NewRandomGenerator(cfg GeneratorConfig) (*Generator, error) {
	def := DefaultGeneratorConfig()
	if cfg.PrimeBits <= 0 {
		cfg.PrimeBits = def.PrimeBits
	}
	if cfg.Rounds <= 0 {
		cfg.Rounds = def.Rounds
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.PrimeBits < 3 {
		return nil, errors.Wrapf(ErrInvalidBitLength, "blum primes need at least 3 bits, got %d", cfg.PrimeBits)
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.Reader
	}
	tester := NewPrimalityTester(cfg.Rand)

	p, err := drawBlumPrime(cfg, tester, nil)
	if err != nil {
		return nil, err
	}
	q, err := drawBlumPrime(cfg, tester, p)
	if err != nil {
		return nil, err
	}

	n := new(big.Int).Mul(p, q)
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		seed, err := rand.Int(cfg.Rand, n)
		if err != nil {
			return nil, errors.Wrap(err, "draw seed")
		}
		g, err := NewGenerator(p, q, seed)
		if errors.Is(err, ErrInvalidSeed) {
			continue
		}
		return g, err
	}
	return nil, errors.Wrapf(ErrAttemptsExceeded, "no seed coprime to %v after %d draws", n, cfg.MaxAttempts)
}

// drawBlumPrime draws PrimeBits-bit odd candidates congruent to 3 mod 4
// until one passes Miller-Rabin and differs from exclude.
func drawBlumPrime(cfg GeneratorConfig, tester *PrimalityTester, exclude *big.Int) (*big.Int, error) {
	low := new(big.Int).Lsh(one, uint(cfg.PrimeBits-1))
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		c, err := rand.Int(cfg.Rand, low)
		if err != nil {
			return nil, errors.Wrap(err, "draw prime candidate")
		}
		c.Add(c, low)
		c.SetBit(c, 0, 1)
		c.SetBit(c, 1, 1)
		if exclude != nil && c.Cmp(exclude) == 0 {
			continue
		}
		ok, err := tester.IsProbablePrime(c, cfg.Rounds)
		if err != nil {
			return nil, err
		}
		if ok {
			return c, nil
		}
	}
	return nil, errors.Wrapf(ErrAttemptsExceeded, "no %d-bit blum prime after %d draws", cfg.PrimeBits, cfg.MaxAttempts)
}
