package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fundamentals",
	Short: "fundamentals imports A-share financial statements and recomputes daily valuation ratios",
	Long: `fundamentals is a command line utility for maintaining a declare-date
timeline of quarterly financial statements for Chinese A-share issuers, and
for recomputing the daily valuation ratios (P/E, P/B, EV/EBIT, ...) that
depend on that timeline.

It runs in two phases, exposed as subcommands:

  fundamentals quarter   imports and reconciles quarterly statements
  fundamentals day       recomputes daily ratios against the reconciled timeline`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $FUNDAMENTALS_CONFIG or ./fundamentals.yaml)")
	rootCmd.PersistentFlags().Bool("first", false, "run a full rebuild instead of an incremental update")
	rootCmd.PersistentFlags().Int("workers", 5, "number of stocks to recompute concurrently (day subcommand only)")

	if err := viper.BindPFlag("first", rootCmd.PersistentFlags().Lookup("first")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for first failed")
	}
	if err := viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for workers failed")
	}
}

func initConfig() {
	viper.AutomaticEnv()
}
