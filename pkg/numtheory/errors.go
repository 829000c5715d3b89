package numtheory

import "github.com/pkg/errors"

// Error kinds reported by the primitives. Returned errors wrap one of
// these; match them with errors.Is.
var (
	ErrInvalidModulus         = errors.New("invalid modulus")
	ErrInvalidExponent        = errors.New("invalid exponent")
	ErrInvalidSeed            = errors.New("invalid seed")
	ErrInvalidBlumPrime       = errors.New("invalid blum prime")
	ErrInvalidRounds          = errors.New("invalid number of rounds")
	ErrInvalidLimit           = errors.New("invalid limit")
	ErrInvalidBitLength       = errors.New("invalid bit length")
	ErrNotInvertible          = errors.New("value is not invertible")
	ErrFactorizationExhausted = errors.New("factorization exhausted")
	ErrDiscreteLogNotFound    = errors.New("discrete log not found")
	ErrAttemptsExceeded       = errors.New("attempts exceeded")
	ErrUnknownAlgorithm       = errors.New("unknown algorithm")
)
