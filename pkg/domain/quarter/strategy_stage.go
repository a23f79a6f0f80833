package quarter

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"fundamentals/pkg/store"
)

// StrategyStage is the thin I/O wrapper around the Strategy stage (§4.2.2):
// it imports prepare_quarter wholesale into strategy_quarter, then
// refreshes announce_to on existing strategy_quarter rows wherever
// prepare_quarter has since extended it (a newer quarter report arrived
// and superseded what used to be the open-ended "latest" row).
type StrategyStage struct {
	Dest store.Querier
	Log  zerolog.Logger
}

func (s *StrategyStage) Run(ctx context.Context) error {
	stockCodes, err := distinctStockCodes(ctx, s.Dest, "prepare_quarter")
	if err != nil {
		return fmt.Errorf("strategy stage: %w", err)
	}

	for i, stockCode := range stockCodes {
		reports, err := fetchQuarterRows(ctx, s.Dest, "prepare_quarter", stockCode)
		if err != nil {
			return fmt.Errorf("strategy stage: fetch %s: %w", stockCode, err)
		}
		for _, r := range reports {
			if err := upsertQuarterRow(ctx, s.Dest, "strategy_quarter", r); err != nil {
				return fmt.Errorf("strategy stage: import %s: %w", stockCode, err)
			}
		}

		for _, u := range AnnounceToUpdatesFrom(reports) {
			if err := store.Upsert(ctx, s.Dest, "strategy_quarter", []string{"stockcode", "end_date"}, map[string]any{
				"stockcode":   stockCode,
				"end_date":    u.EndDate,
				"announce_to": u.AnnounceTo,
			}); err != nil {
				return fmt.Errorf("strategy stage: refresh announce_to for %s: %w", stockCode, err)
			}
		}

		s.Log.Debug().Str("stockcode", stockCode).
			Float64("percent_complete", progressPercent(i, len(stockCodes))).
			Msg("strategy_quarter announce_to refresh")
	}
	return nil
}
