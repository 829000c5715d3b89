package main

import (
	"os"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/textbook-rsa/pkg/textbookrsa"
)

const (
	configFlag    = "config"
	verbosityFlag = "verbosity"
	noColorFlag   = "no-color"
	seedFlag      = "seed"
	bitsFlag      = "bits"
	roundsFlag    = "rounds"
	backendFlag   = "backend"
	strategyFlag  = "strategy"
	workersFlag   = "workers"
	maxCandFlag   = "max-candidates"
)

func registerRootFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringP(configFlag, "c", "", "load the demonstration config from a toml file")
	f.Int(verbosityFlag, 1, "log verbosity: 0=error 1=warn 2=info 3=debug 4=trace")
	f.Bool(noColorFlag, false, "disable coloured output")
	f.String(seedFlag, "", "passphrase for a reproducible pseudorandom source")
	f.Int(bitsFlag, 0, "bit length of the primes p and q")
	f.Int(roundsFlag, 0, "Miller-Rabin rounds per prime candidate")
	f.String(backendFlag, "", "modular exponentiation backend")
	f.String(strategyFlag, "", "eavesdropper strategy: discrete-log, factoring or brute-force")
	f.Int(workersFlag, 0, "number of parallel workers (0 = auto-detect based on CPU cores)")
	f.Int64(maxCandFlag, 0, "largest exponent tried by the brute-force strategy")
}

func loadConfig(file string) (textbookrsa.Config, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return textbookrsa.Config{}, err
	}

	// start from the defaults so that a partial file is enough
	config := textbookrsa.DefaultConfig()
	if err := toml.Unmarshal(b, &config); err != nil {
		return textbookrsa.Config{}, errors.Wrapf(err, "parse %s", file)
	}
	return config, nil
}

func dumpConfig(config textbookrsa.Config) ([]byte, error) {
	return toml.Marshal(config)
}

// getConfig loads --config (or the defaults) and applies the flags that
// were set on the command line over it.
func getConfig(cmd *cobra.Command) (textbookrsa.Config, error) {
	config := textbookrsa.DefaultConfig()
	flags := cmd.Flags()

	if file, _ := flags.GetString(configFlag); file != "" {
		var err error
		if config, err = loadConfig(file); err != nil {
			return textbookrsa.Config{}, err
		}
	}

	if flags.Changed(noColorFlag) {
		v, _ := flags.GetBool(noColorFlag)
		config.Color = !v
	}
	if flags.Changed(seedFlag) {
		config.SeedPhrase, _ = flags.GetString(seedFlag)
	}
	if flags.Changed(bitsFlag) {
		config.Keys.PrimeBits, _ = flags.GetInt(bitsFlag)
	}
	if flags.Changed(roundsFlag) {
		config.Keys.ConfidenceRounds, _ = flags.GetInt(roundsFlag)
	}
	if flags.Changed(backendFlag) {
		config.Keys.Backend, _ = flags.GetString(backendFlag)
	}
	if flags.Changed(strategyFlag) {
		config.Attack.Strategy, _ = flags.GetString(strategyFlag)
	}
	if flags.Changed(workersFlag) {
		config.Attack.NumWorkers, _ = flags.GetInt(workersFlag)
	}
	if flags.Changed(maxCandFlag) {
		config.Attack.MaxCandidates, _ = flags.GetInt64(maxCandFlag)
	}

	if err := config.Validate(); err != nil {
		return textbookrsa.Config{}, err
	}
	return config, nil
}
