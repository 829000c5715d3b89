package main

import (
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/textbook-rsa/pkg/textbookrsa"
)

var primesCmd = &cobra.Command{
	Use:   "primes",
	Short: "generate a key and show the primes, candidates and exponents",
	Args:  cobra.NoArgs,
	RunE:  runPrimes,
}

func runPrimes(cmd *cobra.Command, _ []string) error {
	config, err := getConfig(cmd)
	if err != nil {
		return err
	}
	client, err := textbookrsa.NewClientWithConfig(config)
	if err != nil {
		return err
	}
	client.WithLogger(setupLogger(cmd, config.Color))

	keys, dv, err := client.GenerateKeysWithDerivation(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderKeys(out, keys)
	renderCandidates(out, dv.Tried)
	return nil
}
