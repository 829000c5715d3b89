package textbookrsa

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Strategy names accepted by StrategyByName and the configuration.
const (
	StrategyDiscreteLog = "discrete-log"
	StrategyFactoring   = "factoring"
	StrategyBruteForce  = "brute-force"
)

// AttackStrategy defines the interface for eavesdropper strategies.
// Implement this interface to plug a custom attack into the Client.
type AttackStrategy interface {
	// Recover derives a private exponent from the transcript alone and
	// decrypts the observed codes with it.
	// The context can be used for cancellation.
	Recover(ctx context.Context, t *Transcript) (*RecoveryResult, error)

	// Name returns a human-readable name for this strategy.
	Name() string
}

// StrategyNames lists the built-in strategies, default first.
func StrategyNames() []string {
	return []string{StrategyDiscreteLog, StrategyFactoring, StrategyBruteForce}
}

func knownStrategy(name string) bool {
	for _, n := range StrategyNames() {
		if n == name {
			return true
		}
	}
	return false
}

// StrategyByName builds a built-in strategy configured from cfg.
func StrategyByName(name string, cfg AttackConfig, log zerolog.Logger) (AttackStrategy, error) {
	switch name {
	case StrategyDiscreteLog:
		return NewDiscreteLogAttack().
			WithCacheSize(cfg.OrderCacheSize).
			WithConcurrency(cfg.NumWorkers).
			WithLogger(log), nil
	case StrategyFactoring:
		return NewFactoringAttack().WithLogger(log), nil
	case StrategyBruteForce:
		return NewBruteForceAttack().
			WithConfig(BruteForceConfig{
				MaxCandidates: cfg.MaxCandidates,
				NumWorkers:    cfg.NumWorkers,
			}).
			WithLogger(log), nil
	}
	return nil, errors.Errorf("unknown strategy %q (want one of %v)", name, StrategyNames())
}
