package textbookrsa

import (
	"bytes"
	"context"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func TestClient_EndToEnd(t *testing.T) {
	client := NewClient()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		keys, err := client.GenerateKeys(ctx)
		if err != nil {
			t.Fatalf("Failed to generate keys: %v", err)
		}

		codes, err := client.Encrypt([]byte("AB"), keys.Public())
		if err != nil {
			t.Fatalf("Failed to encrypt: %v", err)
		}

		plain, err := client.Decrypt(codes, keys)
		if err != nil {
			t.Fatalf("Failed to decrypt: %v", err)
		}
		if string(plain) != "AB" {
			t.Errorf("Round trip mismatch with p=%v q=%v e=%v d=%v: got %q", keys.P, keys.Q, keys.E, keys.D, plain)
		}

		result, err := client.EavesdropTranscript(ctx, &Transcript{E: keys.E, N: keys.N, Codes: codes})
		if err != nil {
			t.Fatalf("Eavesdropper failed: %v", err)
		}
		if string(result.Plaintext) != "AB" {
			t.Errorf("Eavesdropper recovered %q", result.Plaintext)
		}
	}
}

func TestClient_Eavesdrop_FromFile(t *testing.T) {
	ctx := context.Background()

	for _, name := range []string{"transcript_hello.json", "transcript_hello.csv"} {
		path := filepath.Join(testdataDir(), name)
		client := NewClient().WithParser(ParserForFile(path))

		result, err := client.Eavesdrop(ctx, path)
		if err != nil {
			t.Fatalf("%s: failed to recover: %v", name, err)
		}
		if string(result.Plaintext) != "HELLO" {
			t.Errorf("%s: expected HELLO, got %q", name, result.Plaintext)
		}
		if !result.Verified {
			t.Errorf("%s: result should be verified", name)
		}
	}
}

func TestClient_WithStrategy(t *testing.T) {
	client := NewClient().WithStrategy(NewFactoringAttack())

	result, err := client.EavesdropTranscript(context.Background(), helloTranscript())
	if err != nil {
		t.Fatalf("Failed to recover: %v", err)
	}
	if result.Strategy != StrategyFactoring {
		t.Errorf("expected %s, got %s", StrategyFactoring, result.Strategy)
	}

	// a custom strategy survives WithLogger
	client.WithLogger(zerolog.Nop())
	if client.Strategy().Name() != StrategyFactoring {
		t.Errorf("WithLogger replaced the custom strategy")
	}
}

type liar struct{}

func (liar) Name() string { return "liar" }

func (liar) Recover(_ context.Context, t *Transcript) (*RecoveryResult, error) {
	return &RecoveryResult{PrivateExponent: big.NewInt(1), Modulus: t.N, Plaintext: []byte("nope"), Strategy: "liar"}, nil
}

func TestClient_UnverifiedResult(t *testing.T) {
	reg := prometheus.NewRegistry()
	client := NewClient().WithStrategy(liar{}).WithMetrics(reg)

	_, err := client.EavesdropTranscript(context.Background(), helloTranscript())
	if err == nil {
		t.Fatal("expected an error for an unverified result")
	}
	if got := testutil.ToFloat64(client.metrics.attackRuns.WithLabelValues("liar", "failed")); got != 1 {
		t.Errorf("expected 1 failed run, got %v", got)
	}
}

func TestClient_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	client := NewClient().WithMetrics(reg)

	if _, err := client.Demonstrate(context.Background(), "AB"); err != nil {
		t.Fatalf("Demonstrate failed: %v", err)
	}

	if got := testutil.ToFloat64(client.metrics.primeDraws); got < 2 {
		t.Errorf("expected at least 2 prime draws, got %v", got)
	}
	if got := testutil.ToFloat64(client.metrics.factorAttempts); got < 1 {
		t.Errorf("expected at least 1 factor attempt, got %v", got)
	}
	if got := testutil.ToFloat64(client.metrics.attackRuns.WithLabelValues(StrategyDiscreteLog, "recovered")); got != 1 {
		t.Errorf("expected 1 recovered run, got %v", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("registering twice should panic")
		}
	}()
	NewClient().WithMetrics(reg)
}

func TestClient_Demonstrate(t *testing.T) {
	var logs bytes.Buffer
	cfg := smallConfig()
	cfg.Actors = Actors{Receiver: "Ada", Sender: "Ben", Eavesdropper: "Cy"}
	cfg.SeedPhrase = "lecture 7"

	client, err := NewClientWithConfig(cfg)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	client.WithLogger(zerolog.New(&logs).Level(zerolog.InfoLevel))

	steps, err := client.Demonstrate(context.Background(), "")
	if err != nil {
		t.Fatalf("Demonstrate failed: %v", err)
	}

	kinds := []StepKind{StepPrimes, StepCandidates, StepExponents, StepPublish, StepEncrypt, StepDecrypt, StepEavesdrop}
	if len(steps) != len(kinds) {
		t.Fatalf("expected %d steps, got %d", len(kinds), len(steps))
	}
	for i, k := range kinds {
		if steps[i].Kind != k {
			t.Errorf("step %d: expected %s, got %s", i, k, steps[i].Kind)
		}
		if steps[i].Label == "" {
			t.Errorf("step %d has no label", i)
		}
	}

	if steps[0].Actor != "Ada" || steps[4].Actor != "Ben" || steps[6].Actor != "Cy" {
		t.Errorf("actors not taken from config: %q %q %q", steps[0].Actor, steps[4].Actor, steps[6].Actor)
	}
	if got := steps[5].Value.(string); got != "AB" {
		t.Errorf("receiver decrypted %q", got)
	}
	result := steps[6].Value.(*RecoveryResult)
	if string(result.Plaintext) != "AB" || !result.Verified {
		t.Errorf("eavesdropper recovered %q (verified=%v)", result.Plaintext, result.Verified)
	}

	split := steps[2].Value.(ExponentSplit)
	keys := steps[3].Value.(*KeyMaterial)
	if err := keys.Validate(); err != nil {
		t.Errorf("published key is invalid: %v", err)
	}
	ed := new(big.Int).Mul(split.E, split.D)
	if ed.Mod(ed, keys.R).Int64() != 1 {
		t.Errorf("e*d is not 1 mod r")
	}

	if !bytes.Contains(logs.Bytes(), []byte("eavesdropper recovered message")) {
		t.Errorf("expected an info log for the recovery, got %s", logs.String())
	}
}

func TestClient_SeedPhraseReproducible(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SeedPhrase = "lecture 7"
	cfg.Keys.ConfidenceRounds = 20

	a, err := GenerateKeys(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to generate keys: %v", err)
	}
	b, err := GenerateKeys(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to generate keys: %v", err)
	}
	if a.P.Cmp(b.P) != 0 || a.Q.Cmp(b.Q) != 0 || a.E.Cmp(b.E) != 0 {
		t.Errorf("seeded keys differ: (%v, %v, %v) vs (%v, %v, %v)", a.P, a.Q, a.E, b.P, b.Q, b.E)
	}
}

func TestClient_GenerateKeysWithDerivation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SeedPhrase = "lecture 7"
	cfg.Keys.ConfidenceRounds = 20
	client, err := NewClientWithConfig(cfg)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	keys, dv, err := client.GenerateKeysWithDerivation(context.Background())
	if err != nil {
		t.Fatalf("Failed to generate keys: %v", err)
	}
	if len(dv.Tried) == 0 {
		t.Fatal("expected at least one tried candidate")
	}
	last := dv.Tried[len(dv.Tried)-1]
	if last.E == nil || last.E.Cmp(keys.E) != 0 || last.D.Cmp(keys.D) != 0 {
		t.Errorf("last candidate %v does not carry the key exponents (%v, %v)", last.Value, keys.E, keys.D)
	}
	if dv.E.Cmp(keys.E) != 0 || dv.D.Cmp(keys.D) != 0 {
		t.Errorf("derivation (%v, %v) differs from key (%v, %v)", dv.E, dv.D, keys.E, keys.D)
	}

	again, err := client.GenerateKeys(context.Background())
	if err != nil {
		t.Fatalf("Failed to generate keys: %v", err)
	}
	if again.E.Cmp(keys.E) != 0 {
		t.Errorf("seeded derivation not reproducible: e=%v vs %v", again.E, keys.E)
	}
}
