package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	logger zerolog.Logger
)

// RootCmd is the base command. Subcommands register themselves in init().
var RootCmd = &cobra.Command{
	Use:   "gnucash-convert",
	Short: "Convert brokerage activity exports to GnuCash import CSV",
	Long: `gnucash-convert turns brokerage activity exports (date, type,
description, amount) into balanced double-entry line items ready for the
GnuCash multi-split CSV importer.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(level).
			With().Timestamp().Logger()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML file with default account paths (default ~/.config/gnucash-convert.toml).")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug detail for skipped rows.")
}
