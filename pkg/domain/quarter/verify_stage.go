package quarter

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"fundamentals/pkg/store"
)

// VerifyStage is the thin I/O wrapper around VerifyDeclare (§4.2.3): it
// walks every stock's finalized strategy_quarter rows and fails the run if
// any violates the declare-order invariant, matching the original's
// standalone verify_declare pass run after StrategyQuarter.update().
type VerifyStage struct {
	Dest store.Querier
	Log  zerolog.Logger
}

func (s *VerifyStage) Run(ctx context.Context) error {
	stockCodes, err := distinctStockCodes(ctx, s.Dest, "strategy_quarter")
	if err != nil {
		return fmt.Errorf("verify stage: %w", err)
	}

	for i, stockCode := range stockCodes {
		reports, err := fetchQuarterRows(ctx, s.Dest, "strategy_quarter", stockCode)
		if err != nil {
			return fmt.Errorf("verify stage: fetch %s: %w", stockCode, err)
		}
		if err := VerifyDeclare(reports); err != nil {
			return fmt.Errorf("verify stage: %w", err)
		}
		s.Log.Debug().Str("stockcode", stockCode).
			Float64("percent_complete", progressPercent(i, len(stockCodes))).
			Msg("strategy_quarter declare-order verification")
	}
	return nil
}
