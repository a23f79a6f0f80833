package quarter

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"fundamentals/pkg/domain"
	"fundamentals/pkg/domain/schema"
	"fundamentals/pkg/store"
)

// PrepareStage is the thin I/O wrapper around the Prepare stage (§4.2.2):
// it imports every research_quarter row into prepare_quarter, then prunes
// late announcements per stock so that announce_date is strictly
// decreasing within each stock's history.
type PrepareStage struct {
	Dest store.Querier
	Log  zerolog.Logger
}

func (s *PrepareStage) Run(ctx context.Context) error {
	stockCodes, err := distinctStockCodes(ctx, s.Dest, "research_quarter")
	if err != nil {
		return fmt.Errorf("prepare stage: %w", err)
	}

	for i, stockCode := range stockCodes {
		reports, err := fetchQuarterRows(ctx, s.Dest, "research_quarter", stockCode)
		if err != nil {
			return fmt.Errorf("prepare stage: fetch %s: %w", stockCode, err)
		}
		for _, r := range reports {
			if err := upsertQuarterRow(ctx, s.Dest, "prepare_quarter", r); err != nil {
				return fmt.Errorf("prepare stage: import %s: %w", stockCode, err)
			}
		}

		survivors := PruneLateAnnouncements(reports)
		if err := s.reconcile(ctx, stockCode, reports, survivors); err != nil {
			return fmt.Errorf("prepare stage: prune %s: %w", stockCode, err)
		}

		s.Log.Debug().Str("stockcode", stockCode).
			Float64("percent_complete", progressPercent(i, len(stockCodes))).
			Msg("prepare_quarter late-announcement pruning")
	}
	return nil
}

// reconcile deletes the rows PruneLateAnnouncements dropped and refreshes
// announce_to on the rows it extended.
func (s *PrepareStage) reconcile(ctx context.Context, stockCode string, all, survivors []*domain.QuarterReport) error {
	survive := make(map[int]bool, len(survivors))
	for _, r := range survivors {
		survive[r.EndDate] = true
	}
	for _, r := range all {
		if !survive[r.EndDate] {
			if err := store.Delete(ctx, s.Dest, "prepare_quarter", map[string]any{
				"stockcode": stockCode, "end_date": r.EndDate,
			}); err != nil {
				return err
			}
		}
	}
	for _, r := range survivors {
		if err := store.Upsert(ctx, s.Dest, "prepare_quarter", []string{"stockcode", "end_date"}, map[string]any{
			"stockcode":   stockCode,
			"end_date":    r.EndDate,
			"announce_to": r.AnnounceTo,
		}); err != nil {
			return err
		}
	}
	return nil
}

func progressPercent(done, total int) float64 {
	if total == 0 {
		return 100
	}
	return float64(done+1) / float64(total) * 100
}

// allQuarterColumns names every bookkeeping + metric column shared by
// research_quarter/prepare_quarter/strategy_quarter.
func allQuarterColumns() []string {
	cols := []string{"comcode", "end_date", "announce_date", "announce_to", "rpt_year", "rpt_quarter"}
	for _, defs := range schema.QuarterTables() {
		for _, d := range defs {
			cols = append(cols, d.CanonicalName)
		}
	}
	return cols
}

func distinctStockCodes(ctx context.Context, q store.Querier, table string) ([]string, error) {
	rows, err := store.Rows(ctx, q, fmt.Sprintf("SELECT DISTINCT stockcode FROM %s", table))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if v, ok := r["stockcode"].(string); ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func fetchQuarterRows(ctx context.Context, q store.Querier, table, stockCode string) ([]*domain.QuarterReport, error) {
	cols := allQuarterColumns()
	sql := fmt.Sprintf("SELECT stockcode, %s FROM %s WHERE stockcode = $1 ORDER BY end_date DESC", joinColumnList(cols), table)
	dictRows, err := store.Rows(ctx, q, sql, stockCode)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.QuarterReport, 0, len(dictRows))
	for _, dr := range dictRows {
		out = append(out, decodeQuarterRow(dr))
	}
	return out, nil
}

func decodeQuarterRow(dr map[string]any) *domain.QuarterReport {
	r := &domain.QuarterReport{Metrics: make(map[string]float64)}
	if v, ok := dr["stockcode"].(string); ok {
		r.StockCode = v
	}
	if v, ok := dr["comcode"].(string); ok {
		r.ComCode = v
	}
	r.EndDate = toInt(dr["end_date"])
	r.AnnounceDate = toInt(dr["announce_date"])
	r.AnnounceTo = toInt(dr["announce_to"])
	r.RptYear = toInt(dr["rpt_year"])
	r.RptQuarter = toInt(dr["rpt_quarter"])
	r.RptSrc = domain.RptSrcFromQuarter(r.RptQuarter)
	for _, defs := range schema.QuarterTables() {
		for _, d := range defs {
			if v, ok := toFloat(dr[d.CanonicalName]); ok {
				r.Metrics[d.CanonicalName] = v
			}
		}
	}
	return r
}

func upsertQuarterRow(ctx context.Context, q store.Querier, table string, r *domain.QuarterReport) error {
	return store.Upsert(ctx, q, table, []string{"stockcode", "end_date"}, quarterRowValues(r))
}

func quarterRowValues(r *domain.QuarterReport) map[string]any {
	values := map[string]any{
		"stockcode":     r.StockCode,
		"comcode":       r.ComCode,
		"end_date":      r.EndDate,
		"announce_date": r.AnnounceDate,
		"announce_to":   r.AnnounceTo,
		"rpt_year":      r.RptYear,
		"rpt_quarter":   r.RptQuarter,
	}
	for name, v := range r.Metrics {
		values[name] = v
	}
	return values
}

func joinColumnList(cols []string) string {
	out := ""
	for i, c := range cols {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}

func toInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	default:
		return 0
	}
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}
