package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"fundamentals/pkg/domain/codemap"
	"fundamentals/pkg/domain/quarter"
	"fundamentals/pkg/domain/recal"
	"fundamentals/pkg/store"
)

// Orchestrator is the thin coordinator that injects dependencies into each
// stage and runs them in sequence, reporting timing the way the teacher's
// pipeline orchestrator logs each filing-extraction step — translated here
// from fmt.Printf timing lines into structured zerolog fields.
type Orchestrator struct {
	Src     store.Querier
	Dest    store.Querier
	Maps    *codemap.Maps
	Log     zerolog.Logger
	Now     func() time.Time
	// Timeslot is the mtime lookback window, in days, for incremental
	// Research-stage queries; negative means full rebuild.
	Timeslot int
	// Workers bounds how many stocks the Day recomputation fans out across
	// concurrently.
	Workers int
}

// UpdateQuarter runs Research -> Prepare -> Strategy -> Verify in sequence.
// Each stage commits its own rows before the next stage reads them, exactly
// as the original update_quarter() pipeline serialized its four steps.
func (o *Orchestrator) UpdateQuarter(ctx context.Context, first bool) error {
	research := &quarter.ResearchStage{
		Src:      o.Src,
		Dest:     o.Dest,
		Maps:     o.Maps,
		Log:      o.Log.With().Str("stage", "research").Logger(),
		Now:      o.Now,
		Timeslot: o.Timeslot,
	}
	if err := o.timeStage(ctx, "research", research.Run, first); err != nil {
		return err
	}

	prepare := &quarter.PrepareStage{Dest: o.Dest, Log: o.Log.With().Str("stage", "prepare").Logger()}
	if err := o.timeStage(ctx, "prepare", func(ctx context.Context, _ bool) error { return prepare.Run(ctx) }, first); err != nil {
		return err
	}

	strategy := &quarter.StrategyStage{Dest: o.Dest, Log: o.Log.With().Str("stage", "strategy").Logger()}
	if err := o.timeStage(ctx, "strategy", func(ctx context.Context, _ bool) error { return strategy.Run(ctx) }, first); err != nil {
		return err
	}

	verify := &quarter.VerifyStage{Dest: o.Dest, Log: o.Log.With().Str("stage", "verify").Logger()}
	if err := o.timeStage(ctx, "verify", func(ctx context.Context, _ bool) error { return verify.Run(ctx) }, first); err != nil {
		return err
	}

	return nil
}

func (o *Orchestrator) timeStage(ctx context.Context, name string, run func(ctx context.Context, first bool) error, first bool) error {
	start := o.Now()
	o.Log.Info().Str("stage", name).Msg("stage starting")
	err := run(ctx, first)
	elapsed := o.Now().Sub(start)
	if err != nil {
		o.Log.Error().Str("stage", name).Dur("elapsed", elapsed).Err(err).Msg("stage failed")
		return fmt.Errorf("%s stage: %w", name, err)
	}
	o.Log.Info().Str("stage", name).Dur("elapsed", elapsed).Msg("stage finished")
	return nil
}

// UpdateDay fans DayRecomputer.RecalStock out across every stock code in
// the instrument universe. A failure on one stock is logged and counted
// but never aborts its siblings (§5); UpdateDay returns a non-nil error
// only once every job has finished, naming how many stocks failed, so the
// caller can set a non-zero process exit code per §7.
func (o *Orchestrator) UpdateDay(ctx context.Context, first bool) error {
	recomputer := &recal.DayRecomputer{
		Src:  o.Src,
		Dest: o.Dest,
		Maps: o.Maps,
		Log:  o.Log.With().Str("stage", "recal").Logger(),
	}

	start := o.Now()
	results := RunWorkerPool(ctx, o.Maps.OrderBookIDs, o.Workers, func(ctx context.Context, stockCode string) error {
		return recomputer.RecalStock(ctx, stockCode, first)
	})
	elapsed := o.Now().Sub(start)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			o.Log.Error().Str("stockcode", r.StockCode).Err(r.Err).Msg("day recomputation failed")
		}
	}

	o.Log.Info().Int("stocks", len(results)).Int("failed", failed).Dur("elapsed", elapsed).Msg("day recomputation finished")
	if failed > 0 {
		return fmt.Errorf("day recomputation: %d of %d stocks failed", failed, len(results))
	}
	return nil
}
