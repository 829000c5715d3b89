package textbookrsa

import (
	"math/big"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
)

// testdataDir returns the path to the testdata directory (works regardless of test cwd).
func testdataDir() string {
	_, f, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(f), "testdata")
}

func bigs(values ...int64) []*big.Int {
	out := make([]*big.Int, len(values))
	for i, v := range values {
		out[i] = big.NewInt(v)
	}
	return out
}

// textbookKey is p = 53, q = 61 with the textbook exponent pair (17, 2753).
func textbookKey() *KeyMaterial {
	k, err := NewKeyMaterial(big.NewInt(53), big.NewInt(61), big.NewInt(17), big.NewInt(2753))
	if err != nil {
		panic(err)
	}
	return k
}

// helloTranscript is "HELLO" encrypted under textbookKey.
func helloTranscript() *Transcript {
	return &Transcript{
		E:     big.NewInt(17),
		N:     big.NewInt(3233),
		Codes: bigs(3000, 28, 2726, 2726, 1307),
	}
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Message = "AB"
	return cfg
}

func zerologNop() zerolog.Logger {
	return zerolog.Nop()
}
