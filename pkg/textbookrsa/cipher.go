package textbookrsa

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/textbook-rsa/pkg/numtheory"
)

var maxByte = big.NewInt(255)

// Encrypt maps every byte m of message to m^e mod n. There is no padding:
// equal bytes give equal codes.
func Encrypt(message []byte, e, n *big.Int) ([]*big.Int, error) {
	return EncryptWith(numtheory.SquareMultiply{}, message, e, n)
}

// EncryptWith is Encrypt on an explicit exponentiation backend.
func EncryptWith(exp numtheory.Exponentiator, message []byte, e, n *big.Int) ([]*big.Int, error) {
	if n == nil || n.Cmp(maxByte) <= 0 {
		return nil, errors.Wrapf(ErrMessageTooLarge, "n=%v must exceed 255", n)
	}
	codes := make([]*big.Int, len(message))
	m := new(big.Int)
	for i, b := range message {
		m.SetInt64(int64(b))
		c, err := exp.Exp(m, e, n)
		if err != nil {
			return nil, errors.Wrapf(err, "encrypt byte %d", i)
		}
		codes[i] = c
	}
	return codes, nil
}

// Decrypt maps every code c to c^d mod n and reassembles the bytes.
func Decrypt(codes []*big.Int, d, n *big.Int) ([]byte, error) {
	return DecryptWith(numtheory.SquareMultiply{}, codes, d, n)
}

// DecryptWith is Decrypt on an explicit exponentiation backend.
func DecryptWith(exp numtheory.Exponentiator, codes []*big.Int, d, n *big.Int) ([]byte, error) {
	out := make([]byte, len(codes))
	for i, c := range codes {
		m, err := exp.Exp(c, d, n)
		if err != nil {
			return nil, errors.Wrapf(err, "decrypt code %d", i)
		}
		if m.Cmp(maxByte) > 0 {
			return nil, errors.Wrapf(ErrCodeOutOfRange, "code %d decrypts to %v", i, m)
		}
		out[i] = byte(m.Int64())
	}
	return out, nil
}

// verifyPlaintext re-encrypts plaintext and compares with the observed codes.
func verifyPlaintext(plaintext []byte, t *Transcript) bool {
	codes, err := Encrypt(plaintext, t.E, t.N)
	if err != nil || len(codes) != len(t.Codes) {
		return false
	}
	for i := range codes {
		if codes[i].Cmp(t.Codes[i]) != 0 {
			return false
		}
	}
	return true
}
