package textbookrsa

import (
	"context"
	"math/big"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/mahdiidarabi/textbook-rsa/internal/bruteforce"
)

// BruteForceConfig configures the exhaustive exponent search.
type BruteForceConfig struct {
	// MaxCandidates bounds the exponents tried, d in [1, min(n-1, MaxCandidates)] (0 = n-1)
	MaxCandidates int64

	// NumWorkers controls parallelization (0 = auto-detect, 1 = sequential
	// search returning the smallest d)
	NumWorkers int

	// BatchSize is the number of consecutive exponents per work item
	// (0 = 1024)
	BatchSize int64
}

// DefaultBruteForceConfig returns a sensible default configuration.
func DefaultBruteForceConfig() BruteForceConfig {
	return BruteForceConfig{
		MaxCandidates: 1 << 20,
		NumWorkers:    0, // Auto-detect
		BatchSize:     1024,
	}
}

// BruteForceAttack tries every exponent d until (c^d)^e = c holds for all
// observed codes.
type BruteForceAttack struct {
	Config BruteForceConfig
	log    zerolog.Logger
}

// NewBruteForceAttack creates a new brute-force strategy with default settings.
func NewBruteForceAttack() *BruteForceAttack {
	return &BruteForceAttack{Config: DefaultBruteForceConfig(), log: zerolog.Nop()}
}

// WithConfig sets the search configuration.
func (a *BruteForceAttack) WithConfig(cfg BruteForceConfig) *BruteForceAttack {
	a.Config = cfg
	return a
}

// WithLogger sets the logger.
func (a *BruteForceAttack) WithLogger(log zerolog.Logger) *BruteForceAttack {
	a.log = log.With().Str("module", "eavesdropper").Str("strategy", StrategyBruteForce).Logger()
	return a
}

// Name returns the name of this strategy.
func (a *BruteForceAttack) Name() string {
	return StrategyBruteForce
}

// Recover implements the AttackStrategy interface.
func (a *BruteForceAttack) Recover(ctx context.Context, t *Transcript) (*RecoveryResult, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	upper := new(big.Int).Sub(t.N, big.NewInt(1))
	if a.Config.MaxCandidates > 0 && upper.Cmp(big.NewInt(a.Config.MaxCandidates)) > 0 {
		upper.SetInt64(a.Config.MaxCandidates)
	}
	if !upper.IsInt64() {
		return nil, errors.Wrapf(ErrRecoveryFailed, "search range up to %v is too large, set MaxCandidates", upper)
	}

	problem := &bruteforce.Problem{E: t.E, N: t.N, Codes: t.Codes}
	dRange := [2]int64{1, upper.Int64()}
	var found *bruteforce.Result
	switch {
	case a.Config.NumWorkers == 1:
		found = bruteforce.SearchExponent(ctx, problem, dRange, a.log)
	case a.Config.BatchSize == 1:
		found = bruteforce.SearchExponentParallel(ctx, problem, dRange, a.Config.NumWorkers, a.log)
	default:
		found = bruteforce.SearchExponentBatch(ctx, problem, dRange, a.Config.BatchSize, a.Config.NumWorkers, a.log)
	}
	if found == nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, errors.Wrapf(ErrRecoveryFailed, "no exponent in [1, %v]", upper)
	}

	a.log.Debug().Int64("tested", found.Tested).Str("d", found.PrivateExponent.String()).Msg("exponent found")
	return decryptTranscript(t, found.PrivateExponent, a.Name())
}
