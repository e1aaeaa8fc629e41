// Command iqcal inspects and simulates IQ mixer imbalance corrections.
//
// Usage:
//
//	iqcal matrix -g 0.02 -p 0.015
//	iqcal simulate -g 0.1 -p 0.05 --correct
//	iqcal calibrate -g 0.1 -p 0.05
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var logLevel = "info"

func setupLogger() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))

	return nil
}

// NewCommand builds the iqcal command tree.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "iqcal",
		Short:         "iqcal inspects and simulates IQ mixer imbalance corrections",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
	}

	cmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		NewMatrixCommand(),
		NewSimulateCommand(),
		NewCalibrateCommand(),
	)

	return cmd
}

func main() {
	if err := NewCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "iqcal: %v\n", err)
		os.Exit(1)
	}
}
