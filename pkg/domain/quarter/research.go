// Package quarter implements the three-stage quarter pipeline
// (research -> prepare -> strategy) described in spec.md §4.2: merging the
// four source statement tables per fiscal period, normalizing and
// filtering rows, synthesizing missing announcement dates, pruning
// late-announced reports, and propagating announce_to validity windows.
//
// Each stage's core logic is a pure function over []*domain.QuarterReport
// (or the raw pre-normalization RawRow), so it is testable without a
// database; a thin *Stage wrapper supplies the Querier-backed I/O.
package quarter

import (
	"fundamentals/pkg/domain"
	"fundamentals/pkg/domain/fiscal"
)

// RawRow is one source-table record before stockcode resolution and type
// normalization: physical column names, an un-derived end date, and a
// possibly-absent rpt_src (only the three statement tables carry it; the
// indicator table does not).
type RawRow struct {
	ComCode      string
	EndDate      int // YYYYMMDD
	AnnounceDate int // YYYYMMDD, 0 if absent
	RptSrc       string
	Metrics      map[string]float64 // keyed by physical column name
}

// MergeRawRows merges per-source rows for the same (comcode, end_date) into
// one row each, in source order (income, balance, cash flow, indicator —
// see schema.QuarterTables). Per DESIGN.md's resolution of spec.md §9's
// merge-order open question, every metric has exactly one canonical
// source, so merging is a plain union of metric maps; later sources only
// ever contribute new keys, never overwrite. RptSrc and AnnounceDate are
// taken from whichever source row supplies them first (only the statement
// tables do).
func MergeRawRows(bySource [][]RawRow) []RawRow {
	type key struct {
		comCode string
		endDate int
	}
	order := make([]key, 0)
	merged := make(map[key]*RawRow)

	for _, rows := range bySource {
		for _, row := range rows {
			k := key{row.ComCode, row.EndDate}
			existing, ok := merged[k]
			if !ok {
				copyRow := row
				copyRow.Metrics = make(map[string]float64, len(row.Metrics))
				for name, v := range row.Metrics {
					copyRow.Metrics[name] = v
				}
				merged[k] = &copyRow
				order = append(order, k)
				continue
			}
			for name, v := range row.Metrics {
				if _, already := existing.Metrics[name]; !already {
					existing.Metrics[name] = v
				}
			}
			if existing.RptSrc == "" && row.RptSrc != "" {
				existing.RptSrc = row.RptSrc
			}
			if existing.AnnounceDate == 0 && row.AnnounceDate != 0 {
				existing.AnnounceDate = row.AnnounceDate
			}
		}
	}

	out := make([]RawRow, len(order))
	for i, k := range order {
		out[i] = *merged[k]
	}
	return out
}

// NormalizeRow resolves a merged RawRow into a QuarterReport, applying
// §4.2.1's row normalization rules: drop the row if its comcode maps to no
// stock in the universe, rename physical metric names to their canonical
// form, derive rpt_year/rpt_quarter from end_date, and drop `revenue` when
// it is exactly 0 and `operating_revenue` is present (old filings store 0
// to mean "not reported"). Returns ok=false if the row should be dropped.
func NormalizeRow(row RawRow, comCodeToStock map[string]string, canonicalNames map[string]string) (*domain.QuarterReport, bool) {
	stockCode, ok := comCodeToStock[row.ComCode]
	if !ok {
		return nil, false
	}

	metrics := make(map[string]float64, len(row.Metrics))
	for physical, v := range row.Metrics {
		canon, ok := canonicalNames[physical]
		if !ok {
			continue
		}
		metrics[canon] = v
	}

	if v, ok := metrics["revenue"]; ok && v == 0 {
		if _, hasOperating := metrics["operating_revenue"]; hasOperating {
			delete(metrics, "revenue")
		}
	}

	year, quarter := fiscal.YearQuarter(row.EndDate)

	return &domain.QuarterReport{
		StockCode:    stockCode,
		ComCode:      row.ComCode,
		EndDate:      row.EndDate,
		AnnounceDate: row.AnnounceDate,
		RptYear:      year,
		RptQuarter:   quarter,
		RptSrc:       rptSrcFromLabel(row.RptSrc),
		Metrics:      metrics,
	}, true
}

func rptSrcFromLabel(label string) domain.RptSrc {
	switch label {
	case "第一季度报":
		return domain.RptSrcQ1
	case "中报":
		return domain.RptSrcH1
	case "第三季度报":
		return domain.RptSrcQ3
	case "年报":
		return domain.RptSrcAnnual
	default:
		return domain.RptSrcUnknown
	}
}

// RemoveRptSrcOnlyRows implements cleanup pass 1 (§4.2.1): drop rows whose
// rpt_src is absent, meaning they were contributed exclusively by the
// indicator table (which has no rpt_src column) and matched no statement
// table at that (comcode, end_date) — structurally incomplete.
func RemoveRptSrcOnlyRows(reports []*domain.QuarterReport) []*domain.QuarterReport {
	out := make([]*domain.QuarterReport, 0, len(reports))
	for _, r := range reports {
		if r.RptSrc != domain.RptSrcUnknown {
			out = append(out, r)
		}
	}
	return out
}
