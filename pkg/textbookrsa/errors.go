package textbookrsa

import "github.com/pkg/errors"

var (
	ErrMessageTooLarge   = errors.New("modulus too small for byte-wise encryption")
	ErrCodeOutOfRange    = errors.New("decrypted value does not fit in a byte")
	ErrInvalidKey        = errors.New("invalid key material")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrInvalidTranscript = errors.New("invalid transcript")
	ErrRecoveryFailed    = errors.New("private exponent not recovered")
)
