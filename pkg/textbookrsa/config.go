package textbookrsa

import (
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/textbook-rsa/pkg/numtheory"
)

// DefaultMessage is the secret the demonstration encrypts.
const DefaultMessage = "This is a hardcoded secret message."

// Config is the full demonstration configuration. It is loaded from TOML by
// the CLI and passed explicitly to the Client.
type Config struct {
	Message    string       `toml:"message"`
	SeedPhrase string       `toml:"seed-phrase"` // empty = fresh randomness
	Color      bool         `toml:"color"`
	Keys       KeyConfig    `toml:"keys"`
	Actors     Actors       `toml:"actors"`
	Attack     AttackConfig `toml:"attack"`
}

// KeyConfig controls prime selection and the e/d derivation.
type KeyConfig struct {
	// PrimeBits is the bit length of p and q
	PrimeBits int `toml:"prime-bits"`

	// ConfidenceRounds is the number of Miller-Rabin witnesses per candidate
	ConfidenceRounds int `toml:"confidence-rounds"`

	// MaxPrimeAttempts bounds the pseudorandom draws for the prime pair
	MaxPrimeAttempts int `toml:"max-prime-attempts"`

	// CandidatesPerBlock is the limit handed to FindCandidates
	CandidatesPerBlock int `toml:"candidates-per-block"`

	// MaxCandidateBlocks bounds how many blocks of candidates are tried
	MaxCandidateBlocks int `toml:"max-candidate-blocks"`

	// Backend names the modular exponentiation backend for encryption
	Backend string `toml:"backend"`
}

// Actors names the three parties of the demonstration.
type Actors struct {
	Receiver     string `toml:"receiver"`
	Sender       string `toml:"sender"`
	Eavesdropper string `toml:"eavesdropper"`
}

// AttackConfig configures the eavesdropper.
type AttackConfig struct {
	// Strategy is one of StrategyDiscreteLog, StrategyFactoring, StrategyBruteForce
	Strategy string `toml:"strategy"`

	// MaxCandidates bounds the brute-force exponent search
	MaxCandidates int64 `toml:"max-candidates"`

	// NumWorkers controls parallelization (0 = auto-detect)
	NumWorkers int `toml:"num-workers"`

	// OrderCacheSize is the number of code orders memoized between runs
	OrderCacheSize int `toml:"order-cache-size"`
}

// DefaultConfig returns the classroom defaults: 8-bit primes, five
// Miller-Rabin rounds and the discrete-log eavesdropper.
func DefaultConfig() Config {
	return Config{
		Message: DefaultMessage,
		Color:   true,
		Keys: KeyConfig{
			PrimeBits:          8,
			ConfidenceRounds:   5,
			MaxPrimeAttempts:   1000,
			CandidatesPerBlock: 10,
			MaxCandidateBlocks: 50,
			Backend:            numtheory.BackendSquareMultiply,
		},
		Actors: Actors{
			Receiver:     "Alice",
			Sender:       "Bob",
			Eavesdropper: "Eve",
		},
		Attack: AttackConfig{
			Strategy:       StrategyDiscreteLog,
			MaxCandidates:  1 << 20,
			NumWorkers:     0,
			OrderCacheSize: 1024,
		},
	}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Keys.PrimeBits < 2:
		return errors.Wrapf(ErrInvalidConfig, "prime-bits %d must be at least 2", c.Keys.PrimeBits)
	case c.Keys.ConfidenceRounds <= 0:
		return errors.Wrapf(ErrInvalidConfig, "confidence-rounds %d must be positive", c.Keys.ConfidenceRounds)
	case c.Keys.MaxPrimeAttempts <= 0:
		return errors.Wrapf(ErrInvalidConfig, "max-prime-attempts %d must be positive", c.Keys.MaxPrimeAttempts)
	case c.Keys.CandidatesPerBlock <= 0:
		return errors.Wrapf(ErrInvalidConfig, "candidates-per-block %d must be positive", c.Keys.CandidatesPerBlock)
	case c.Keys.MaxCandidateBlocks <= 0:
		return errors.Wrapf(ErrInvalidConfig, "max-candidate-blocks %d must be positive", c.Keys.MaxCandidateBlocks)
	case c.Attack.MaxCandidates < 0:
		return errors.Wrapf(ErrInvalidConfig, "max-candidates %d must not be negative", c.Attack.MaxCandidates)
	}
	if _, err := numtheory.ExponentiatorByName(c.Keys.Backend); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "backend: %v", err)
	}
	if !knownStrategy(c.Attack.Strategy) {
		return errors.Wrapf(ErrInvalidConfig, "unknown strategy %q", c.Attack.Strategy)
	}
	return nil
}
