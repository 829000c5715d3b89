package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var verbosityLevels = []zerolog.Level{
	zerolog.ErrorLevel,
	zerolog.WarnLevel,
	zerolog.InfoLevel,
	zerolog.DebugLevel,
	zerolog.TraceLevel,
}

func setupLogger(cmd *cobra.Command, color bool) zerolog.Logger {
	v, _ := cmd.Flags().GetInt(verbosityFlag)
	if v < 0 {
		v = 0
	}
	if v >= len(verbosityLevels) {
		v = len(verbosityLevels) - 1
	}

	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen, NoColor: !color}
	return zerolog.New(out).Level(verbosityLevels[v]).With().Timestamp().Logger()
}
