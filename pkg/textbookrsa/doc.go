// Package textbookrsa composes the number-theory primitives into a
// classroom RSA exchange between a receiver, a sender and a passive
// eavesdropper.
//
// Keys are built without extended Euclid: primes come from a Blum Blum
// Shub source filtered by Miller-Rabin, and (e, d) is found by factoring
// values congruent to 1 mod r with Pollard p-1. Messages are encrypted one
// byte at a time with no padding, which is what lets the eavesdropper win.
//
// This is not production cryptography.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/textbook-rsa/pkg/textbookrsa"
//
//	client := textbookrsa.NewClient()
//
//	keys, err := client.GenerateKeys(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	codes, _ := client.Encrypt([]byte("AB"), keys.Public())
//	plain, _ := client.Decrypt(codes, keys)
//
//	// Eve only sees (e, n) and the codes
//	result, err := client.EavesdropTranscript(ctx, &textbookrsa.Transcript{E: keys.E, N: keys.N, Codes: codes})
//	fmt.Printf("d' = %v, message = %q\n", result.PrivateExponent, result.Plaintext)
//
// # Strategies
//
// The eavesdropper is pluggable through AttackStrategy. The built-in
// strategies are DiscreteLogAttack (default), FactoringAttack and
// BruteForceAttack:
//
//	strategy := textbookrsa.NewBruteForceAttack().
//	    WithConfig(textbookrsa.BruteForceConfig{MaxCandidates: 1 << 16, NumWorkers: 8})
//
//	client := textbookrsa.NewClient().WithStrategy(strategy)
//
// # Demonstration
//
// Client.Demonstrate runs the whole exchange and returns one Step per
// stage. Steps carry data only; rendering is left to the caller.
package textbookrsa
