package textbookrsa

import (
	"context"
	"math/big"
	"runtime"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mahdiidarabi/textbook-rsa/pkg/numtheory"
)

// DefaultOrderCacheSize is the number of (n, code) orders kept by a
// DiscreteLogAttack.
const DefaultOrderCacheSize = 1024

// DiscreteLogAttack recovers a decryption exponent from multiplicative
// orders.
//
// Since gcd(e, r) = 1, encryption permutes each cyclic subgroup, so a code
// c = m^e has the same order as m. With L the lcm of the orders of all
// observed codes, d' = e^-1 mod L satisfies c^d' = m for every code. Each
// order is computed with baby-step/giant-step as
// DiscreteLog(c, c^-1, n) + 1.
type DiscreteLogAttack struct {
	cache       *lru.Cache
	concurrency int
	log         zerolog.Logger
}

// NewDiscreteLogAttack creates the attack with an order cache of
// DefaultOrderCacheSize entries.
func NewDiscreteLogAttack() *DiscreteLogAttack {
	cache, _ := lru.New(DefaultOrderCacheSize)
	return &DiscreteLogAttack{cache: cache, log: zerolog.Nop()}
}

// WithCacheSize replaces the order cache; size <= 0 disables caching.
func (a *DiscreteLogAttack) WithCacheSize(size int) *DiscreteLogAttack {
	if size <= 0 {
		a.cache = nil
		return a
	}
	a.cache, _ = lru.New(size)
	return a
}

// WithConcurrency bounds the number of orders computed in parallel
// (0 = number of CPUs).
func (a *DiscreteLogAttack) WithConcurrency(n int) *DiscreteLogAttack {
	a.concurrency = n
	return a
}

// WithLogger sets the logger.
func (a *DiscreteLogAttack) WithLogger(log zerolog.Logger) *DiscreteLogAttack {
	a.log = log.With().Str("module", "eavesdropper").Str("strategy", StrategyDiscreteLog).Logger()
	return a
}

// Name returns the name of this strategy.
func (a *DiscreteLogAttack) Name() string {
	return StrategyDiscreteLog
}

// Recover implements the AttackStrategy interface.
func (a *DiscreteLogAttack) Recover(ctx context.Context, t *Transcript) (*RecoveryResult, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	codes := distinctCodes(t.Codes)
	a.log.Debug().Int("codes", len(t.Codes)).Int("distinct", len(codes)).Msg("computing code orders")

	// a code sharing a factor with n gives the factorization away
	for _, c := range codes {
		if g := numtheory.GCD(c, t.N); g.Cmp(big.NewInt(1)) != 0 {
			a.log.Info().Str("code", c.String()).Str("factor", g.String()).Msg("code shares a factor with n")
			q := new(big.Int).Div(t.N, g)
			return recoverFromFactors(t, g, q, a.Name())
		}
	}

	orders, err := a.orders(ctx, t.N, codes)
	if err != nil {
		return nil, err
	}

	l := big.NewInt(1)
	for _, o := range orders {
		l = numtheory.LCM(l, o)
	}
	d, err := numtheory.ModInverse(t.E, l)
	if err != nil {
		return nil, errors.Wrapf(ErrRecoveryFailed, "e=%v is not invertible modulo lcm of orders %v", t.E, l)
	}
	if d.Sign() == 0 {
		d.SetInt64(1)
	}
	a.log.Debug().Str("lcm", l.String()).Str("d", d.String()).Msg("exponent derived")

	result, err := decryptTranscript(t, d, a.Name())
	if err != nil {
		return nil, err
	}
	result.Orders = orders
	return result, nil
}

// orders computes the multiplicative order of every code in parallel.
func (a *DiscreteLogAttack) orders(ctx context.Context, n *big.Int, codes []*big.Int) ([]*big.Int, error) {
	limit := a.concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	orders := make([]*big.Int, len(codes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, c := range codes {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := n.String() + ":" + c.String()
			if a.cache != nil {
				if v, ok := a.cache.Get(key); ok {
					orders[i] = new(big.Int).Set(v.(*big.Int))
					return nil
				}
			}
			o, err := numtheory.MultiplicativeOrder(c, n)
			if err != nil {
				return errors.Wrapf(err, "order of code %v", c)
			}
			if a.cache != nil {
				a.cache.Add(key, new(big.Int).Set(o))
			}
			orders[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return orders, nil
}

// FactoringAttack splits n with Pollard p-1 and rebuilds d from r.
type FactoringAttack struct {
	log zerolog.Logger
}

// NewFactoringAttack creates the factoring strategy.
func NewFactoringAttack() *FactoringAttack {
	return &FactoringAttack{log: zerolog.Nop()}
}

// WithLogger sets the logger.
func (a *FactoringAttack) WithLogger(log zerolog.Logger) *FactoringAttack {
	a.log = log.With().Str("module", "eavesdropper").Str("strategy", StrategyFactoring).Logger()
	return a
}

// Name returns the name of this strategy.
func (a *FactoringAttack) Name() string {
	return StrategyFactoring
}

// Recover implements the AttackStrategy interface.
func (a *FactoringAttack) Recover(ctx context.Context, t *Transcript) (*RecoveryResult, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, q, err := numtheory.FactorPair(t.N)
	if err != nil {
		return nil, errors.Wrapf(ErrRecoveryFailed, "factor n: %v", err)
	}
	a.log.Debug().Str("p", p.String()).Str("q", q.String()).Msg("modulus factored")
	return recoverFromFactors(t, p, q, a.Name())
}

func recoverFromFactors(t *Transcript, p, q *big.Int, strategy string) (*RecoveryResult, error) {
	one := big.NewInt(1)
	r := new(big.Int).Mul(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))
	d, err := numtheory.ModInverse(t.E, r)
	if err != nil {
		return nil, errors.Wrapf(ErrRecoveryFailed, "e=%v is not invertible modulo r=%v", t.E, r)
	}
	return decryptTranscript(t, d, strategy)
}

func decryptTranscript(t *Transcript, d *big.Int, strategy string) (*RecoveryResult, error) {
	plaintext, err := Decrypt(t.Codes, d, t.N)
	if err != nil {
		return nil, errors.Wrapf(ErrRecoveryFailed, "decrypt with d=%v: %v", d, err)
	}
	return &RecoveryResult{
		PrivateExponent: d,
		Modulus:         new(big.Int).Set(t.N),
		Plaintext:       plaintext,
		Strategy:        strategy,
		Verified:        verifyPlaintext(plaintext, t),
	}, nil
}

// distinctCodes drops repeats and the code 0, which every exponent fixes.
func distinctCodes(codes []*big.Int) []*big.Int {
	seen := make(map[string]struct{}, len(codes))
	out := make([]*big.Int, 0, len(codes))
	for _, c := range codes {
		if c.Sign() == 0 {
			continue
		}
		key := c.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
