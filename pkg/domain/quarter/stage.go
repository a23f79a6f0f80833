package quarter

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

const (
	rptType = "合并"
)

var rptSrcValues = []string{"第一季度报", "中报", "第三季度报", "年报"}

// ResearchStage is the thin I/O wrapper around the Research stage
// (§4.2.1): it queries the four source tables, merges and normalizes rows,
// and upserts research_quarter, then runs the two cleanup passes. All of
// its real logic lives in the pure functions in research.go/synthesize.go.
type ResearchStage struct {
	Src    store.Querier
	Dest   store.Querier
	Maps   *codemap.Maps
	Log    zerolog.Logger
	Now    func() time.Time
	Timeslot int // days of mtime lookback; negative means full rebuild
}

// Run executes the Research stage. first forces a full rebuild regardless
// of Timeslot, mirroring the original's `first` argument to update().
func (s *ResearchStage) Run(ctx context.Context, first bool) error {
	reports, err := s.fetchAndMerge(ctx, first)
	if err != nil {
		return fmt.Errorf("research stage: %w", err)
	}

	reports = RemoveRptSrcOnlyRows(reports)

	byStock := groupByStock(reports)
	today := yyyymmdd(s.Now())
	allSynthesized := make([]*domain.QuarterReport, 0, len(reports))
	for _, stockReports := range byStock {
		sortByEndDateDesc(stockReports)
		synthesized, err := SynthesizeAnnounceDates(stockReports, today)
		if err != nil {
			s.Log.Error().Err(err).Msg("research: announce date synthesis failed for stock")
			continue // per §7: mapping/schema errors are fatal to that stock's job, not the run
		}
		allSynthesized = append(allSynthesized, synthesized...)
	}

	for i, r := range allSynthesized {
		if err := s.upsertResearchRow(ctx, r); err != nil {
			return fmt.Errorf("research stage: upsert row %d: %w", i, err)
		}
	}
	return nil
}

func (s *ResearchStage) fetchAndMerge(ctx context.Context, first bool) ([]*domain.QuarterReport, error) {
	catalogues := schema.QuarterTables()
	bySource := make([][]RawRow, len(catalogues))

	for i, defs := range catalogues {
		rows, err := s.queryCatalogue(ctx, defs, first)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", defs[0].SourceTable, err)
		}
		bySource[i] = rows
	}

	merged := MergeRawRows(bySource)
	canonical := combinedCanonicalNames(catalogues)

	out := make([]*domain.QuarterReport, 0, len(merged))
	for _, row := range merged {
		report, ok := NormalizeRow(row, s.Maps.ComCodeToStock, canonical)
		if !ok {
			continue
		}
		out = append(out, report)
	}
	return out, nil
}

// queryCatalogue builds and runs the filtered select for one source table,
// per §4.2.1/§6.2's filters, and decodes rows into RawRow. The query has no
// comcode filter: rows whose comcode is outside the universe are dropped
// later by NormalizeRow. In incremental mode it adds a single
// mtime >= now - Timeslot days condition; mtime days are not enumerated
// one by one.
func (s *ResearchStage) queryCatalogue(ctx context.Context, defs []schema.MetricDef, first bool) ([]RawRow, error) {
	table := defs[0].SourceTable
	cols := schema.SelectColumns(defs)

	sql, args := buildSourceQuery(table, cols, first, s.Timeslot, s.Now())
	dictRows, err := store.Rows(ctx, s.Src, sql, args...)
	if err != nil {
		return nil, err
	}

	rows := make([]RawRow, 0, len(dictRows))
	for _, dr := range dictRows {
		rows = append(rows, decodeRawRow(dr, cols))
	}
	return rows, nil
}

func buildSourceQuery(table string, cols []string, first bool, timeslot int, now func() time.Time) (string, []any) {
	if table == schema.TableIncome || table == schema.TableBalance || table == schema.TableCashFlow {
		base := fmt.Sprintf(
			"SELECT comcode, enddate, declaredate, rpt_src, %s FROM %s WHERE isvalid = 1",
			joinCols(cols), table,
		)
		base += " AND rpt_type = $1 AND rpt_src = ANY($2) AND rpt_date = enddate"
		args := []any{rptType, rptSrcValues}
		if table == schema.TableIncome || table == schema.TableCashFlow {
			base += " AND startdate::text LIKE '%-01-01%'"
		}
		if !first && timeslot >= 0 {
			base += fmt.Sprintf(" AND mtime >= $%d", len(args)+1)
			args = append(args, now().AddDate(0, 0, -timeslot))
		}
		return base, args
	}

	// indicator table (ana_stk_fin_idx): no declaredate/rpt_src columns
	// exist here — that absence is why RemoveRptSrcOnlyRows exists.
	base := fmt.Sprintf(
		"SELECT comcode, enddate, %s FROM %s WHERE isvalid = 1",
		joinCols(cols), table,
	)
	var args []any
	if !first && timeslot >= 0 {
		base += " AND mtime >= $1"
		args = append(args, now().AddDate(0, 0, -timeslot))
	}
	return base, args
}

func joinCols(cols []string) string {
	out := ""
	for i, c := range cols {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}

func decodeRawRow(dr map[string]any, cols []string) RawRow {
	row := RawRow{Metrics: make(map[string]float64, len(cols))}

	if v, ok := dr["comcode"].(string); ok {
		row.ComCode = v
	}
	row.EndDate = asYYYYMMDD(dr["enddate"])
	row.AnnounceDate = asYYYYMMDD(dr["declaredate"])
	if v, ok := dr["rpt_src"].(string); ok {
		row.RptSrc = v
	}

	for _, col := range cols {
		if v, ok := asFloat(dr[col]); ok {
			row.Metrics[col] = v
		}
	}
	return row
}

func (s *ResearchStage) upsertResearchRow(ctx context.Context, r *domain.QuarterReport) error {
	return store.Upsert(ctx, s.Dest, "research_quarter", []string{"stockcode", "end_date"}, rowToValues(r))
}

func rowToValues(r *domain.QuarterReport) map[string]any {
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

func combinedCanonicalNames(catalogues [][]schema.MetricDef) map[string]string {
	out := make(map[string]string)
	for _, defs := range catalogues {
		for k, v := range schema.CanonicalNames(defs) {
			out[k] = v
		}
	}
	return out
}

func groupByStock(reports []*domain.QuarterReport) map[string][]*domain.QuarterReport {
	out := make(map[string][]*domain.QuarterReport)
	for _, r := range reports {
		out[r.StockCode] = append(out[r.StockCode], r)
	}
	return out
}

func sortByEndDateDesc(reports []*domain.QuarterReport) {
	sort.Slice(reports, func(i, j int) bool { return reports[i].EndDate > reports[j].EndDate })
}

func yyyymmdd(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

func asYYYYMMDD(v any) int {
	switch t := v.(type) {
	case time.Time:
		return yyyymmdd(t)
	case int:
		return t
	case int64:
		return int(t)
	}
	return 0
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
	case nil:
		return 0, false
	default:
		return 0, false
	}
}
