package numtheory

import (
	"crypto/sha256"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
)

const maxSeedIterations = 1 << 10

// DeriveSeed maps a passphrase to a Blum Blum Shub seed for modulus n.
//
// The value is an RFC 6979 deterministic nonce keyed by SHA-256 of the
// phrase, reduced mod n. Further nonce iterations are taken until the
// result is coprime to n and not 0 or 1, so the same phrase and modulus
// always give the same seed.
func DeriveSeed(phrase string, n *big.Int) (*big.Int, error) {
	if n == nil || n.Cmp(three) <= 0 {
		return nil, errors.Wrapf(ErrInvalidModulus, "modulus %v too small for a seed", n)
	}
	key := sha256.Sum256([]byte(phrase))
	hash := sha256.Sum256(append([]byte("bbs-seed:"), phrase...))

	for iter := uint32(0); iter < maxSeedIterations; iter++ {
		nonce := secp256k1.NonceRFC6979(key[:], hash[:], nil, nil, iter)
		b := nonce.Bytes()
		x := new(big.Int).SetBytes(b[:])
		x.Mod(x, n)
		if x.Cmp(one) > 0 && GCD(x, n).Cmp(one) == 0 {
			return x, nil
		}
	}
	return nil, errors.Wrapf(ErrInvalidSeed, "no usable seed for phrase after %d iterations", maxSeedIterations)
}
