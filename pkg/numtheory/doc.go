// Package numtheory provides the arbitrary-precision number-theoretic
// primitives behind the textbook RSA demonstration: modular
// exponentiation, Miller-Rabin primality testing, the Blum Blum Shub
// pseudorandom generator, congruent-candidate enumeration, Pollard's p-1
// factorization, baby-step/giant-step discrete logarithms and a
// primitive-root finder.
//
// All operations work on *big.Int, never mutate their arguments and
// return freshly allocated values. None of them is suitable for real
// cryptography.
//
// # Quick Start
//
//	// 5^117 mod 19
//	r, err := numtheory.ModExp(big.NewInt(5), big.NewInt(117), big.NewInt(19))
//
//	// Miller-Rabin with 20 random witnesses
//	ok, err := numtheory.IsProbablePrime(big.NewInt(7919), 20)
//
//	// Split a composite with Pollard's p-1
//	e, d, err := numtheory.FactorPair(big.NewInt(299))
//
//	// Recover x from 5^x = 8 (mod 23)
//	x, err := numtheory.DiscreteLog(big.NewInt(5), big.NewInt(8), big.NewInt(23))
//
// # Errors
//
// Failures are reported as wrapped sentinel errors (ErrInvalidModulus,
// ErrFactorizationExhausted, ...). Use errors.Is to classify them.
// Primitives never retry on their own; bounded retry loops live in the
// callers that own the bound.
//
// # Registry
//
// The fixed set of algorithms is available by name through Algorithms and
// Lookup, so front-ends can offer them without discovering code at runtime.
package numtheory
