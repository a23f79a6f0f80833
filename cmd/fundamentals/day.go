package main

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// dayCmd recomputes daily valuation ratios across the instrument universe,
// fanned out over --workers goroutines.
var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Recompute daily valuation ratios",
	Long: `day walks every stock in the instrument universe, pulls its
reconciled quarterly timeline and daily closing prices and raw valuation
rows, and recomputes P/E, P/B, EV/EBIT, and related ratios into recal_day.
Work is fanned out across --workers stocks concurrently; a failure on one
stock is logged and counted but never aborts its siblings.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		orch, pools, err := buildOrchestrator(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("could not initialize pipeline")
		}
		defer pools.Close()

		if err := orch.UpdateDay(ctx, viper.GetBool("first")); err != nil {
			log.Fatal().Err(err).Msg("day recomputation had failures")
		}
	},
}

func init() {
	rootCmd.AddCommand(dayCmd)
}
