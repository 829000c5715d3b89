package bruteforce

import (
	"context"
	"math/big"

	"github.com/rs/zerolog"

	"github.com/mahdiidarabi/textbook-rsa/pkg/numtheory"
)

// Problem is what an eavesdropper holds: the public key and the codes.
type Problem struct {
	E     *big.Int
	N     *big.Int
	Codes []*big.Int
}

// Result contains the result of a brute-force search
type Result struct {
	PrivateExponent *big.Int
	Tested          int64
}

// Matches reports whether d inverts encryption for every code, that is
// (c^d)^e = c (mod n).
func (p *Problem) Matches(d *big.Int) bool {
	for _, c := range p.Codes {
		m := numtheory.MustModExp(c, d, p.N)
		if numtheory.MustModExp(m, p.E, p.N).Cmp(c) != 0 {
			return false
		}
	}
	return true
}

// Informative returns a copy of the problem keeping one instance of each
// code that constrains d. Codes 0 and 1 are fixed by every exponent and
// are dropped.
func (p *Problem) Informative() *Problem {
	seen := make(map[string]struct{}, len(p.Codes))
	out := &Problem{E: p.E, N: p.N}
	for _, c := range p.Codes {
		if c.Cmp(big.NewInt(1)) <= 0 {
			continue
		}
		key := c.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out.Codes = append(out.Codes, c)
	}
	return out
}

// SearchExponent tries d = dRange[0] .. dRange[1] in order and returns the
// first, hence smallest, exponent matching every code.
//
// Args:
//   - ctx: Cancels the search; nil is returned on cancellation
//   - problem: Public exponent, modulus and observed codes
//   - dRange: Range of d values to try (min, max), inclusive
//   - log: Progress logger
//
// Returns:
//   - Result if found, nil otherwise
func SearchExponent(ctx context.Context, problem *Problem, dRange [2]int64, log zerolog.Logger) *Result {
	reduced := problem.Informative()
	log.Debug().
		Int("codes", len(problem.Codes)).
		Int("informative", len(reduced.Codes)).
		Int64("from", dRange[0]).
		Int64("to", dRange[1]).
		Msg("sequential exponent search")

	var tested int64
	d := new(big.Int)
	for v := dRange[0]; v <= dRange[1]; v++ {
		tested++
		d.SetInt64(v)
		if reduced.Matches(d) {
			return &Result{PrivateExponent: big.NewInt(v), Tested: tested}
		}
		if tested%1024 == 0 && ctx.Err() != nil {
			log.Debug().Int64("tested", tested).Msg("search cancelled")
			return nil
		}
		if tested%50000 == 0 {
			log.Debug().Int64("tested", tested).Msg("search progress")
		}
	}

	log.Debug().Int64("tested", tested).Msg("no exponent found")
	return nil
}
