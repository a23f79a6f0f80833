package recal

import "fundamentals/pkg/domain"

// recalRow is the mutable working copy a single day's ratios are computed
// into: it starts as a copy of the raw day row's metrics (so source fields
// like market_cap and val_of_stk_right are available to the formulas) and
// ends up holding only the fields that survive recomputation, since the
// formulas drop() every ratio they cannot compute.
type recalRow struct {
	stockCode string
	trdDate   int
	metrics   map[string]float64
}

func newRecalRow(stockCode string, trdDate int, source map[string]float64) *recalRow {
	m := make(map[string]float64, len(source))
	for k, v := range source {
		m[k] = v
	}
	return &recalRow{stockCode: stockCode, trdDate: trdDate, metrics: m}
}

func (r *recalRow) get(name string) (float64, bool) {
	v, ok := r.metrics[name]
	return v, ok
}

func (r *recalRow) set(name string, v float64) {
	r.metrics[name] = v
}

func (r *recalRow) drop(name string) {
	delete(r.metrics, name)
}

// ToDomain converts the working row into the persisted shape.
func (r *recalRow) ToDomain() *domain.RecalDayRow {
	return domain.NewRecalDayRow(r.stockCode, r.trdDate, r.metrics)
}
