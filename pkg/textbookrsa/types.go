package textbookrsa

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/textbook-rsa/pkg/numtheory"
)

// PublicKey is the pair Bob publishes.
type PublicKey struct {
	E *big.Int // public exponent
	N *big.Int // modulus p*q
}

// KeyMaterial is a complete textbook RSA key.
type KeyMaterial struct {
	P *big.Int // first prime
	Q *big.Int // second prime
	N *big.Int // p*q
	R *big.Int // (p-1)*(q-1)
	E *big.Int // public exponent
	D *big.Int // private exponent, e*d = 1 (mod r)
}

// Public returns a copy of the public half of the key.
func (k *KeyMaterial) Public() PublicKey {
	return PublicKey{E: new(big.Int).Set(k.E), N: new(big.Int).Set(k.N)}
}

// Validate checks the relations between the key components.
func (k *KeyMaterial) Validate() error {
	names := []string{"p", "q", "n", "r", "e", "d"}
	for i, v := range []*big.Int{k.P, k.Q, k.N, k.R, k.E, k.D} {
		if v == nil || v.Sign() <= 0 {
			return errors.Wrapf(ErrInvalidKey, "%s must be positive", names[i])
		}
	}
	if k.P.Cmp(k.Q) == 0 {
		return errors.Wrap(ErrInvalidKey, "p and q must be distinct")
	}
	if new(big.Int).Mul(k.P, k.Q).Cmp(k.N) != 0 {
		return errors.Wrap(ErrInvalidKey, "n != p*q")
	}
	r := new(big.Int).Mul(new(big.Int).Sub(k.P, big.NewInt(1)), new(big.Int).Sub(k.Q, big.NewInt(1)))
	if r.Cmp(k.R) != 0 {
		return errors.Wrap(ErrInvalidKey, "r != (p-1)*(q-1)")
	}
	if numtheory.GCD(k.E, k.R).Cmp(big.NewInt(1)) != 0 {
		return errors.Wrapf(ErrInvalidKey, "e=%v shares a factor with r=%v", k.E, k.R)
	}
	ed := new(big.Int).Mul(k.E, k.D)
	if ed.Mod(ed, k.R).Cmp(big.NewInt(1)) != 0 {
		return errors.Wrap(ErrInvalidKey, "e*d != 1 (mod r)")
	}
	return nil
}

// Transcript is everything a passive eavesdropper observes: the public key
// and the ciphertext codes, one per message byte.
type Transcript struct {
	E     *big.Int
	N     *big.Int
	Codes []*big.Int
}

// Validate checks that the transcript can be attacked at all.
func (t *Transcript) Validate() error {
	if t == nil || t.E == nil || t.N == nil {
		return errors.Wrap(ErrInvalidTranscript, "missing public key")
	}
	if t.N.Cmp(big.NewInt(3)) <= 0 || t.E.Sign() <= 0 {
		return errors.Wrapf(ErrInvalidTranscript, "bad public key (e=%v, n=%v)", t.E, t.N)
	}
	for i, c := range t.Codes {
		if c == nil || c.Sign() < 0 || c.Cmp(t.N) >= 0 {
			return errors.Wrapf(ErrInvalidTranscript, "code %d (%v) outside [0, n)", i, c)
		}
	}
	return nil
}

// RecoveryResult contains the result of an eavesdropper attack.
type RecoveryResult struct {
	PrivateExponent *big.Int   // d' that decrypts every observed code
	Modulus         *big.Int   // n from the transcript
	Plaintext       []byte     // recovered message
	Strategy        string     // name of the strategy that succeeded
	Orders          []*big.Int // multiplicative orders of the distinct codes, when computed
	Verified        bool       // plaintext re-encrypts to the observed codes
}
