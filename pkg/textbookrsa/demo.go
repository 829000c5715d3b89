package textbookrsa

import (
	"context"
	"fmt"
	"math/big"
)

// StepKind identifies a demonstration step.
type StepKind string

const (
	StepPrimes     StepKind = "primes"
	StepCandidates StepKind = "candidates"
	StepExponents  StepKind = "exponents"
	StepPublish    StepKind = "publish"
	StepEncrypt    StepKind = "encrypt"
	StepDecrypt    StepKind = "decrypt"
	StepEavesdrop  StepKind = "eavesdrop"
)

// Step is one labelled stage of the demonstration. Value holds the data
// produced at that stage; its type depends on Kind:
//
//	StepPrimes      PrimeSelection
//	StepCandidates  []Candidate
//	StepExponents   ExponentSplit
//	StepPublish     *KeyMaterial
//	StepEncrypt     *Transcript
//	StepDecrypt     string
//	StepEavesdrop   *RecoveryResult
type Step struct {
	Kind  StepKind
	Actor string
	Label string
	Value interface{}
}

// PrimeSelection is the outcome of the prime step.
type PrimeSelection struct {
	P, Q, N, R *big.Int
}

// ExponentSplit is the candidate chosen for (e, d) and its factors.
type ExponentSplit struct {
	Candidate *big.Int
	E, D      *big.Int
}

// Demonstrate runs the whole exchange: the receiver builds a key, the
// sender encrypts message, the receiver decrypts it and the eavesdropper
// recovers it from the public key and the codes alone. An empty message
// uses the configured one.
//
// Steps are returned as they complete; on error the steps so far are
// returned together with the error.
func (c *Client) Demonstrate(ctx context.Context, message string) ([]Step, error) {
	if message == "" {
		message = c.cfg.Message
	}
	actors := c.cfg.Actors
	var steps []Step

	k, dv, err := c.generateKeys(ctx)
	if err != nil {
		return steps, err
	}

	steps = append(steps,
		Step{
			Kind:  StepPrimes,
			Actor: actors.Receiver,
			Label: fmt.Sprintf("%s picks prime numbers P and Q", actors.Receiver),
			Value: PrimeSelection{P: k.P, Q: k.Q, N: k.N, R: k.R},
		},
		Step{
			Kind:  StepCandidates,
			Actor: actors.Receiver,
			Label: fmt.Sprintf("%s lists candidates congruent to 1 mod r", actors.Receiver),
			Value: dv.Tried,
		},
		Step{
			Kind:  StepExponents,
			Actor: actors.Receiver,
			Label: fmt.Sprintf("%s splits the first usable candidate into e and d", actors.Receiver),
			Value: ExponentSplit{Candidate: new(big.Int).Mul(k.E, k.D), E: k.E, D: k.D},
		},
		Step{
			Kind:  StepPublish,
			Actor: actors.Receiver,
			Label: fmt.Sprintf("%s sends (e, n) as the public key to %s and %s", actors.Receiver, actors.Sender, actors.Eavesdropper),
			Value: k,
		},
	)

	codes, err := c.Encrypt([]byte(message), k.Public())
	if err != nil {
		return steps, err
	}
	t := &Transcript{E: k.E, N: k.N, Codes: codes}
	steps = append(steps, Step{
		Kind:  StepEncrypt,
		Actor: actors.Sender,
		Label: fmt.Sprintf("%s encrypts the message while %s is eavesdropping", actors.Sender, actors.Eavesdropper),
		Value: t,
	})

	plain, err := c.Decrypt(codes, k)
	if err != nil {
		return steps, err
	}
	steps = append(steps, Step{
		Kind:  StepDecrypt,
		Actor: actors.Receiver,
		Label: fmt.Sprintf("%s decrypts with the private key (d, n)", actors.Receiver),
		Value: string(plain),
	})

	result, err := c.EavesdropTranscript(ctx, t)
	if err != nil {
		return steps, err
	}
	steps = append(steps, Step{
		Kind:  StepEavesdrop,
		Actor: actors.Eavesdropper,
		Label: fmt.Sprintf("%s recovers a private exponent from (e, n) and the codes", actors.Eavesdropper),
		Value: result,
	})
	return steps, nil
}
