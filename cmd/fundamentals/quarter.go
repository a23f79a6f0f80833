package main

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// quarterCmd runs Research -> Prepare -> Strategy -> Verify.
var quarterCmd = &cobra.Command{
	Use:   "quarter",
	Short: "Import and reconcile quarterly financial statements",
	Long: `quarter runs the four-stage quarterly pipeline: it researches raw
statement rows from the source database, prepares a declare-date timeline
per stock, promotes it into the strategy timeline the day recomputation
reads from, and verifies the result's declare-order invariants.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		orch, pools, err := buildOrchestrator(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("could not initialize pipeline")
		}
		defer pools.Close()

		if err := orch.UpdateQuarter(ctx, viper.GetBool("first")); err != nil {
			log.Fatal().Err(err).Msg("quarter update failed")
		}
	},
}

func init() {
	rootCmd.AddCommand(quarterCmd)
}
