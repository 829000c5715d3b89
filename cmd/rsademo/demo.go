package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/textbook-rsa/pkg/textbookrsa"
)

var demoCmd = &cobra.Command{
	Use:   "demo [message]",
	Short: "run the full receiver / sender / eavesdropper exchange",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDemo,
}

func init() {
	demoCmd.Flags().Bool("dump-config", false, "print the effective config as toml and exit")
	demoCmd.Flags().String("transcript-out", "", "write what the eavesdropper saw to this json file")
}

func runDemo(cmd *cobra.Command, args []string) error {
	config, err := getConfig(cmd)
	if err != nil {
		return err
	}

	if dump, _ := cmd.Flags().GetBool("dump-config"); dump {
		b, err := dumpConfig(config)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	}

	client, err := textbookrsa.NewClientWithConfig(config)
	if err != nil {
		return err
	}
	client.WithLogger(setupLogger(cmd, config.Color))

	message := config.Message
	if len(args) == 1 {
		message = args[0]
	}

	out := cmd.OutOrStdout()
	p := newPalette(config.Actors, config.Color)
	a := config.Actors

	fmt.Fprintln(out, p.highlight("=== Demonstrating RSA Encryption ==="))
	fmt.Fprintln(out, "There are three people in this RSA encryption process:")
	fmt.Fprintf(out, "\t%s - Receiver\n\t%s - Sender\n\t%s - Eavesdropper\n", p.label(a.Receiver), p.label(a.Sender), p.label(a.Eavesdropper))

	steps, err := client.Demonstrate(cmd.Context(), message)
	for _, step := range steps {
		renderStep(out, p, step)
	}
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("transcript-out"); path != "" {
		for _, step := range steps {
			if t, ok := step.Value.(*textbookrsa.Transcript); ok {
				if err := writeTranscript(path, t); err != nil {
					return err
				}
				fmt.Fprintf(out, "\nTranscript written to %s\n", path)
			}
		}
	}

	fmt.Fprintln(out, p.highlight("\n=== End of RSA Encryption ==="))
	return nil
}

func writeTranscript(path string, t *textbookrsa.Transcript) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := textbookrsa.WriteJSON(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
