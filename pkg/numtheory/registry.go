package numtheory

import (
	"math/big"

	"github.com/pkg/errors"
)

// MaxRegistryBits caps the output size of the blum-blum-shub entry. Larger
// outputs need Blum primes of the same size.
const MaxRegistryBits = 64

// Algorithm is a named entry of the static registry.
type Algorithm struct {
	Name        string
	Description string
	Args        []string // argument names, in order
	Run         func(args []*big.Int) (interface{}, error)
}

// Algorithms returns the fixed set of algorithms, in menu order.
func Algorithms() []Algorithm {
	return []Algorithm{
		{
			Name:        "fast-exponential",
			Description: "square-and-multiply modular exponentiation",
			Args:        []string{"base", "exponent", "modulus"},
			Run: func(args []*big.Int) (interface{}, error) {
				return ModExp(args[0], args[1], args[2])
			},
		},
		{
			Name:        "miller-rabin",
			Description: "probabilistic primality test",
			Args:        []string{"n", "rounds"},
			Run: func(args []*big.Int) (interface{}, error) {
				rounds, err := smallInt(args[1], "rounds")
				if err != nil {
					return nil, err
				}
				return IsProbablePrime(args[0], rounds)
			},
		},
		{
			Name:        "blum-blum-shub",
			Description: "pseudorandom number from a fresh generator",
			Args:        []string{"bits"},
			Run: func(args []*big.Int) (interface{}, error) {
				bits, err := smallInt(args[0], "bits")
				if err != nil {
					return nil, err
				}
				if bits > MaxRegistryBits {
					return nil, errors.Wrapf(ErrInvalidBitLength, "bits %d exceeds %d", bits, MaxRegistryBits)
				}
				next, err := MakeGenerator(bits)
				if err != nil {
					return nil, err
				}
				return next()
			},
		},
		{
			Name:        "multiplicative-inverse",
			Description: "candidates start + k*modulus for an e*d pair",
			Args:        []string{"start", "modulus", "limit"},
			Run: func(args []*big.Int) (interface{}, error) {
				limit, err := smallInt(args[2], "limit")
				if err != nil {
					return nil, err
				}
				return FindCandidates(args[0], args[1], limit)
			},
		},
		{
			Name:        "pollard-p-1",
			Description: "split a composite into two factors",
			Args:        []string{"n"},
			Run: func(args []*big.Int) (interface{}, error) {
				a, b, err := FactorPair(args[0])
				if err != nil {
					return nil, err
				}
				return []*big.Int{a, b}, nil
			},
		},
		{
			Name:        "factorize",
			Description: "full prime factorization",
			Args:        []string{"n"},
			Run: func(args []*big.Int) (interface{}, error) {
				return Factorize(args[0])
			},
		},
		{
			Name:        "baby-step-giant-step",
			Description: "discrete logarithm x with g^x = h (mod n)",
			Args:        []string{"g", "h", "n"},
			Run: func(args []*big.Int) (interface{}, error) {
				return DiscreteLog(args[0], args[1], args[2])
			},
		},
		{
			Name:        "primitive-root-search",
			Description: "primitive roots of a small prime",
			Args:        []string{"prime"},
			Run: func(args []*big.Int) (interface{}, error) {
				return FindPrimitiveRoots(args[0])
			},
		},
	}
}

// Lookup returns the registry entry called name.
func Lookup(name string) (Algorithm, error) {
	for _, a := range Algorithms() {
		if a.Name == name {
			return a, nil
		}
	}
	return Algorithm{}, errors.Wrapf(ErrUnknownAlgorithm, "%q", name)
}

// Call checks the argument count and runs the algorithm.
func (a Algorithm) Call(args []*big.Int) (interface{}, error) {
	if len(args) != len(a.Args) {
		return nil, errors.Errorf("%s expects %d arguments (%v), got %d", a.Name, len(a.Args), a.Args, len(args))
	}
	return a.Run(args)
}

func smallInt(v *big.Int, name string) (int, error) {
	if !v.IsInt64() || v.Int64() > 1<<20 || v.Int64() < -(1<<20) {
		return 0, errors.Errorf("%s %v out of range", name, v)
	}
	return int(v.Int64()), nil
}
