package recal

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"fundamentals/pkg/domain"
	"fundamentals/pkg/domain/codemap"
	"fundamentals/pkg/domain/schema"
	"fundamentals/pkg/store"
)

// quarterInputColumns names the strategy_quarter columns the cursor needs,
// in the engine's own canonical naming (strategy_quarter is populated by
// the Research/Prepare/Strategy stages, which already write canonical
// names — unlike ana_stk_val_idx below, which is a raw source table).
var quarterInputColumns = []string{
	"net_profit_parent_company", "net_profit", "operating_revenue",
	"cash_flow_from_operating_activities", "current_assets", "cash",
	"cash_equivalent", "interest_bearing_debt", "ebitda", "revenue",
	"cash_equivalent_inc_net", "book_value_per_share",
}

// DayRecomputer is the thin I/O wrapper around the Day stage (§4.4): for
// one stock, it pulls quarter fundamentals, daily closing prices, and raw
// daily valuation rows, and upserts both the raw row (orig_day) and the
// recomputed ratios (recal_day). All ratio logic lives in ratios.go and
// quartermetrics.go, which this stage calls with real data.
type DayRecomputer struct {
	Src  store.Querier
	Dest store.Querier
	Maps *codemap.Maps
	Log  zerolog.Logger
}

// RecalStock recomputes every day row for one stock. When first is false,
// only rows newer than the latest already-recorded orig_day.trd_date for
// this stock are requeried. This deliberately orders by trd_date DESC and
// LIMIT 1 to find the latest recorded date, where the original queried
// ascending and so always found the earliest date instead — a bug fixed
// here rather than reproduced (see DESIGN.md).
func (d *DayRecomputer) RecalStock(ctx context.Context, stockCode string, first bool) error {
	innerCode, ok := d.Maps.StockToInnerCode[stockCode]
	if !ok {
		return fmt.Errorf("recal: stockcode %s has no inner_code mapping", stockCode)
	}

	quarterRows, err := d.fetchQuarterMetrics(ctx, stockCode)
	if err != nil {
		return fmt.Errorf("recal: fetch quarter metrics for %s: %w", stockCode, err)
	}
	cursor := NewQuarterMetricsCursor(quarterRows)

	closingPrices, err := d.fetchClosingPrices(ctx, innerCode)
	if err != nil {
		return fmt.Errorf("recal: fetch closing prices for %s: %w", stockCode, err)
	}

	var latestDate *int
	if !first {
		ld, err := d.latestRecordedDate(ctx, stockCode)
		if err != nil {
			return fmt.Errorf("recal: latest recorded date for %s: %w", stockCode, err)
		}
		latestDate = ld
	}

	dayRows, err := d.fetchDayMetrics(ctx, innerCode, latestDate)
	if err != nil {
		return fmt.Errorf("recal: fetch day metrics for %s: %w", stockCode, err)
	}

	for _, row := range dayRows {
		if err := store.Upsert(ctx, d.Dest, "orig_day", []string{"stockcode", "trd_date"}, origDayValues(stockCode, row)); err != nil {
			return err
		}

		snapshot := cursor.Get(row.TrdDate)
		closingPrice, hasClose := closingPrices[row.TrdDate]

		var latestAnnualNPPC float64
		hasLatestAnnual := false
		if annual := cursor.LatestAnnualReport(row.TrdDate); annual != nil {
			if v, ok := annual.Get("net_profit_parent_company"); ok {
				latestAnnualNPPC = v
				hasLatestAnnual = true
			}
		}

		computed := ComputeRatios(stockCode, row.TrdDate, row.Metrics, snapshot, closingPrice, hasClose, latestAnnualNPPC, hasLatestAnnual)
		if err := store.Upsert(ctx, d.Dest, "recal_day", []string{"stockcode", "trd_date"}, recalRowValues(computed)); err != nil {
			return err
		}
	}
	return nil
}

func (d *DayRecomputer) fetchQuarterMetrics(ctx context.Context, stockCode string) ([]*domain.QuarterReport, error) {
	sql := fmt.Sprintf(
		"SELECT announce_date, rpt_year, rpt_quarter, end_date, %s FROM strategy_quarter WHERE stockcode = $1 ORDER BY end_date DESC",
		joinCols(quarterInputColumns),
	)
	dictRows, err := store.Rows(ctx, d.Dest, sql, stockCode)
	if err != nil {
		return nil, err
	}

	reports := make([]*domain.QuarterReport, 0, len(dictRows))
	for _, dr := range dictRows {
		r := &domain.QuarterReport{
			StockCode: stockCode,
			Metrics:   make(map[string]float64, len(quarterInputColumns)),
		}
		r.EndDate = asYYYYMMDD(dr["end_date"])
		r.AnnounceDate = asYYYYMMDD(dr["announce_date"])
		if v, ok := asInt(dr["rpt_year"]); ok {
			r.RptYear = v
		}
		if v, ok := asInt(dr["rpt_quarter"]); ok {
			r.RptQuarter = v
		}
		for _, col := range quarterInputColumns {
			if v, ok := asFloat(dr[col]); ok {
				r.Metrics[col] = v
			}
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func (d *DayRecomputer) fetchClosingPrices(ctx context.Context, innerCode string) (map[int]float64, error) {
	dictRows, err := store.Rows(ctx, d.Src,
		"SELECT tradedate, tclose FROM stk_mkt WHERE inner_code = $1 AND isvalid = 1 ORDER BY tradedate DESC",
		innerCode,
	)
	if err != nil {
		return nil, err
	}
	out := make(map[int]float64, len(dictRows))
	for _, dr := range dictRows {
		tradeDate := asYYYYMMDD(dr["tradedate"])
		close, ok := asFloat(dr["tclose"])
		if tradeDate == 0 || !ok {
			continue
		}
		out[tradeDate] = close
	}
	return out, nil
}

func (d *DayRecomputer) latestRecordedDate(ctx context.Context, stockCode string) (*int, error) {
	dictRows, err := store.Rows(ctx, d.Dest,
		"SELECT trd_date FROM orig_day WHERE stockcode = $1 ORDER BY trd_date DESC LIMIT 1",
		stockCode,
	)
	if err != nil {
		return nil, err
	}
	if len(dictRows) == 0 {
		return nil, nil
	}
	v := asYYYYMMDD(dictRows[0]["trd_date"])
	return &v, nil
}

func (d *DayRecomputer) fetchDayMetrics(ctx context.Context, innerCode string, latestDate *int) ([]*domain.DayRow, error) {
	physicalCols := schema.SelectColumns(schema.DayMetrics)
	canonical := schema.CanonicalNames(schema.DayMetrics)

	sql := fmt.Sprintf(
		"SELECT trd_date, %s FROM ana_stk_val_idx WHERE inner_code = $1 AND isvalid = 1",
		joinCols(physicalCols),
	)
	args := []any{innerCode}
	if latestDate != nil {
		sql += " AND trd_date > $2"
		args = append(args, *latestDate)
	}
	sql += " ORDER BY trd_date DESC"

	dictRows, err := store.Rows(ctx, d.Src, sql, args...)
	if err != nil {
		return nil, err
	}

	rows := make([]*domain.DayRow, 0, len(dictRows))
	for _, dr := range dictRows {
		row := &domain.DayRow{
			InnerCode: innerCode,
			TrdDate:   asYYYYMMDD(dr["trd_date"]),
			Metrics:   make(map[string]float64, len(physicalCols)),
		}
		for _, physical := range physicalCols {
			v, ok := asFloat(dr[physical])
			if !ok {
				continue
			}
			row.Metrics[canonical[physical]] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func origDayValues(stockCode string, row *domain.DayRow) map[string]any {
	values := map[string]any{
		"stockcode": stockCode,
		"trd_date":  row.TrdDate,
	}
	for k, v := range row.Metrics {
		values[k] = v
	}
	return values
}

func recalRowValues(r *recalRow) map[string]any {
	values := map[string]any{
		"stockcode": r.stockCode,
		"trd_date":  r.trdDate,
	}
	for k, v := range r.metrics {
		values[k] = v
	}
	return values
}

func joinCols(cols []string) string {
	sorted := append([]string(nil), cols...)
	sort.Strings(sorted)
	out := ""
	for i, c := range sorted {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}

func asYYYYMMDD(v any) int {
	switch t := v.(type) {
	case time.Time:
		return t.Year()*10000 + int(t.Month())*100 + t.Day()
	case int:
		return t
	case int64:
		return int(t)
	default:
		return 0
	}
}

func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
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
