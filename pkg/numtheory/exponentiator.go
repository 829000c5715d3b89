package numtheory

import (
	"math/big"

	"filippo.io/bigmod"
	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
)

// Exponentiator computes base^exponent mod modulus. Implementations must
// agree with ModExp on every input ModExp accepts.
type Exponentiator interface {
	Exp(base, exponent, modulus *big.Int) (*big.Int, error)

	// Name returns the registry name of the backend.
	Name() string
}

// Backend names accepted by ExponentiatorByName.
const (
	BackendSquareMultiply = "square-multiply"
	BackendSaferith       = "saferith"
	BackendBigmod         = "bigmod"
	BackendStdlib         = "stdlib"
)

// SquareMultiply is the default backend, see ModExp.
type SquareMultiply struct{}

func (SquareMultiply) Exp(base, exponent, modulus *big.Int) (*big.Int, error) {
	return ModExp(base, exponent, modulus)
}

func (SquareMultiply) Name() string { return BackendSquareMultiply }

// Saferith exponentiates with the constant-time Nat type of
// github.com/cronokirby/saferith. Its modular exponentiation works in
// Montgomery form, so even moduli fall back to square-and-multiply.
type Saferith struct{}

func (Saferith) Exp(base, exponent, modulus *big.Int) (*big.Int, error) {
	if err := checkExpArgs(exponent, modulus); err != nil {
		return nil, err
	}
	if modulus.Cmp(one) == 0 {
		return big.NewInt(0), nil
	}
	if exponent.Sign() == 0 {
		return big.NewInt(1), nil
	}
	if modulus.Bit(0) == 0 {
		return squareMultiply(base, exponent, modulus), nil
	}
	m := saferith.ModulusFromBytes(modulus.Bytes())
	reduced := new(big.Int).Mod(base, modulus)
	x := new(saferith.Nat).SetBig(reduced, modulus.BitLen())
	e := new(saferith.Nat).SetBig(exponent, exponent.BitLen())
	return new(saferith.Nat).Exp(x, e, m).Big(), nil
}

func (Saferith) Name() string { return BackendSaferith }

// Bigmod exponentiates with filippo.io/bigmod. Montgomery multiplication
// needs an odd modulus, so even moduli fall back to square-and-multiply.
type Bigmod struct{}

func (Bigmod) Exp(base, exponent, modulus *big.Int) (*big.Int, error) {
	if err := checkExpArgs(exponent, modulus); err != nil {
		return nil, err
	}
	if modulus.Cmp(one) == 0 {
		return big.NewInt(0), nil
	}
	if exponent.Sign() == 0 {
		return big.NewInt(1), nil
	}
	if modulus.Bit(0) == 0 {
		return squareMultiply(base, exponent, modulus), nil
	}
	m, err := bigmod.NewModulusFromBig(modulus)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidModulus, "bigmod: %v", err)
	}
	reduced := new(big.Int).Mod(base, modulus)
	x, err := bigmod.NewNat().SetBytes(reduced.Bytes(), m)
	if err != nil {
		return nil, errors.Wrap(err, "bigmod: load base")
	}
	out := bigmod.NewNat().Exp(x, exponent.Bytes(), m)
	return new(big.Int).SetBytes(out.Bytes(m)), nil
}

func (Bigmod) Name() string { return BackendBigmod }

// Stdlib delegates to big.Int.Exp; it serves as the reference in tests.
type Stdlib struct{}

func (Stdlib) Exp(base, exponent, modulus *big.Int) (*big.Int, error) {
	if err := checkExpArgs(exponent, modulus); err != nil {
		return nil, err
	}
	reduced := new(big.Int).Mod(base, modulus)
	return new(big.Int).Exp(reduced, exponent, modulus), nil
}

func (Stdlib) Name() string { return BackendStdlib }

// Exponentiators returns every backend, default first.
func Exponentiators() []Exponentiator {
	return []Exponentiator{SquareMultiply{}, Saferith{}, Bigmod{}, Stdlib{}}
}

// ExponentiatorByName looks a backend up by name.
func ExponentiatorByName(name string) (Exponentiator, error) {
	for _, e := range Exponentiators() {
		if e.Name() == name {
			return e, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownAlgorithm, "exponentiator %q", name)
}

func checkExpArgs(exponent, modulus *big.Int) error {
	if modulus == nil || modulus.Sign() <= 0 {
		return errors.Wrapf(ErrInvalidModulus, "modulus %v must be positive", modulus)
	}
	if exponent == nil || exponent.Sign() < 0 {
		return errors.Wrapf(ErrInvalidExponent, "exponent %v must be non-negative", exponent)
	}
	return nil
}
