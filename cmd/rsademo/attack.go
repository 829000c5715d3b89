package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/textbook-rsa/pkg/textbookrsa"
)

var attackCmd = &cobra.Command{
	Use:   "attack <transcript>",
	Short: "recover the plaintext of an intercepted transcript (json or csv)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAttack,
}

func runAttack(cmd *cobra.Command, args []string) error {
	config, err := getConfig(cmd)
	if err != nil {
		return err
	}

	client, err := textbookrsa.NewClientWithConfig(config)
	if err != nil {
		return err
	}
	client.WithLogger(setupLogger(cmd, config.Color)).
		WithParser(textbookrsa.ParserForFile(args[0]))

	out := cmd.OutOrStdout()
	p := newPalette(config.Actors, config.Color)
	fmt.Fprintf(out, "%s is attacking %s with the %s strategy...\n",
		p.label(config.Actors.Eavesdropper), args[0], client.Strategy().Name())

	result, err := client.Eavesdrop(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n[+] Recovered the message!\n")
	renderRecovery(out, p, result)
	return nil
}
