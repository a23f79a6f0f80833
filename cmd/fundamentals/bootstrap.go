package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"fundamentals/pkg/config"
	"fundamentals/pkg/domain/codemap"
	"fundamentals/pkg/pipeline"
	"fundamentals/pkg/store"
)

// buildOrchestrator loads config, opens both connection pools, builds the
// code-map bijections, and assembles an Orchestrator ready to run either
// subcommand. Mirrors the teacher's cmd/pipeline/main.go bootstrap shape
// (godotenv-backed config, log.Fatal on any setup failure) translated into
// a reusable helper shared by both subcommands instead of duplicated inline.
func buildOrchestrator(ctx context.Context) (*pipeline.Orchestrator, *store.Pools, error) {
	cfgPath := config.ResolvePath(cfgFile)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}

	pools, err := store.Open(ctx, cfg.SourceDSN(), cfg.DestDSN())
	if err != nil {
		return nil, nil, err
	}

	maps, err := codemap.Build(ctx, pools.Source, cfg.Instruments)
	if err != nil {
		pools.Close()
		return nil, nil, err
	}

	orch := &pipeline.Orchestrator{
		Src:      pools.Source,
		Dest:     pools.Dest,
		Maps:     maps,
		Log:      log.Logger,
		Now:      time.Now,
		Timeslot: cfg.Update.Timeslot,
		Workers:  viper.GetInt("workers"),
	}
	return orch, pools, nil
}
