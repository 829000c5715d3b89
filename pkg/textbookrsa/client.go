package textbookrsa

import (
	"context"
	"math/big"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/mahdiidarabi/textbook-rsa/pkg/numtheory"
)

// Client provides a high-level API for the RSA demonstration: key setup,
// encryption for the sender, decryption for the receiver and the
// eavesdropper's attack.
type Client struct {
	cfg      Config
	strategy AttackStrategy
	custom   bool // strategy set through WithStrategy
	parser   TranscriptParser
	exp      numtheory.Exponentiator
	log      zerolog.Logger
	metrics  *Metrics
}

// NewClient creates a new client with default settings.
func NewClient() *Client {
	c, err := NewClientWithConfig(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return c
}

// NewClientWithConfig creates a client from an explicit configuration.
func NewClientWithConfig(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	exp, err := numtheory.ExponentiatorByName(cfg.Keys.Backend)
	if err != nil {
		return nil, err
	}
	c := &Client{
		cfg:    cfg,
		parser: &JSONParser{},
		exp:    exp,
		log:    zerolog.Nop(),
	}
	if err := c.buildStrategy(zerolog.Nop()); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) buildStrategy(log zerolog.Logger) error {
	s, err := StrategyByName(c.cfg.Attack.Strategy, c.cfg.Attack, log)
	if err != nil {
		return err
	}
	c.strategy = s
	return nil
}

// WithStrategy sets a custom eavesdropper strategy.
func (c *Client) WithStrategy(strategy AttackStrategy) *Client {
	c.strategy = strategy
	c.custom = true
	return c
}

// WithParser sets a custom transcript parser.
func (c *Client) WithParser(parser TranscriptParser) *Client {
	c.parser = parser
	return c
}

// WithLogger sets the logger. Built-in strategies pick it up as well.
func (c *Client) WithLogger(log zerolog.Logger) *Client {
	c.log = log.With().Str("module", "textbookrsa").Logger()
	if !c.custom {
		// the strategy name was validated in NewClientWithConfig
		_ = c.buildStrategy(log)
	}
	return c
}

// WithMetrics registers the client's counters on reg. It panics if the
// counters are already registered there, like prometheus.MustRegister.
func (c *Client) WithMetrics(reg prometheus.Registerer) *Client {
	m, err := NewMetrics(reg)
	if err != nil {
		panic(err)
	}
	c.metrics = m
	return c
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config {
	return c.cfg
}

// Strategy returns the active eavesdropper strategy.
func (c *Client) Strategy() AttackStrategy {
	return c.strategy
}

// GenerateKeys selects the primes and derives (e, d) for the receiver.
func (c *Client) GenerateKeys(ctx context.Context) (*KeyMaterial, error) {
	k, _, err := c.generateKeys(ctx)
	return k, err
}

// GenerateKeysWithDerivation is GenerateKeys that also returns the
// candidates tried while deriving (e, d).
func (c *Client) GenerateKeysWithDerivation(ctx context.Context) (*KeyMaterial, *Derivation, error) {
	return c.generateKeys(ctx)
}

func (c *Client) generateKeys(ctx context.Context) (*KeyMaterial, *Derivation, error) {
	k, dv, err := generateKeys(ctx, c.cfg, c.metrics)
	if err != nil {
		c.log.Error().Err(err).Msg("key generation failed")
		return nil, nil, err
	}
	c.log.Debug().
		Str("p", k.P.String()).
		Str("q", k.Q.String()).
		Str("e", k.E.String()).
		Int("candidates", len(dv.Tried)).
		Msg("keys generated")
	return k, dv, nil
}

// Encrypt encrypts message for the holder of pub.
func (c *Client) Encrypt(message []byte, pub PublicKey) ([]*big.Int, error) {
	return EncryptWith(c.exp, message, pub.E, pub.N)
}

// Decrypt decrypts codes with the private half of k.
func (c *Client) Decrypt(codes []*big.Int, k *KeyMaterial) ([]byte, error) {
	return DecryptWith(c.exp, codes, k.D, k.N)
}

// Eavesdrop recovers the plaintext of a transcript file.
//
// Args:
//   - ctx: Context for cancellation.
//   - source: Path to a transcript file, read with the client's parser.
//
// Returns:
//   - RecoveryResult if successful, error otherwise.
func (c *Client) Eavesdrop(ctx context.Context, source string) (*RecoveryResult, error) {
	t, err := c.parser.ParseTranscript(source)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse transcript")
	}
	return c.EavesdropTranscript(ctx, t)
}

// EavesdropTranscript runs the active strategy on an in-memory transcript.
// A result whose plaintext does not re-encrypt to the observed codes is
// reported as ErrRecoveryFailed.
func (c *Client) EavesdropTranscript(ctx context.Context, t *Transcript) (*RecoveryResult, error) {
	name := c.strategy.Name()
	result, err := c.strategy.Recover(ctx, t)
	if err == nil && !result.Verified {
		err = errors.Wrapf(ErrRecoveryFailed, "%s: plaintext does not re-encrypt to the observed codes", name)
	}
	c.metrics.observeAttack(name, err)
	if err != nil {
		c.log.Warn().Err(err).Str("strategy", name).Msg("eavesdropper failed")
		return nil, err
	}
	c.log.Info().
		Str("strategy", name).
		Str("d", result.PrivateExponent.String()).
		Int("bytes", len(result.Plaintext)).
		Msg("eavesdropper recovered message")
	return result, nil
}
