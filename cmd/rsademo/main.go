package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rsademo",
	Short: "textbook RSA demonstration",
	Long: "Walks through textbook RSA between a receiver, a sender and an eavesdropper, " +
		"and exposes the underlying number-theory algorithms.",
	SilenceUsage: true,
}

func init() {
	registerRootFlags(rootCmd)
	rootCmd.AddCommand(demoCmd, attackCmd, primesCmd, rootsCmd, algorithmsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
