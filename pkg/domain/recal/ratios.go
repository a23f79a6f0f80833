package recal

import "github.com/shopspring/decimal"

// round4 rounds to 4 decimal places, half away from zero, matching
// decimal.Decimal.Round's documented behavior (the precision every ratio
// below is stored at).
func round4(v float64) float64 {
	result, _ := decimal.NewFromFloat(v).Round(4).Float64()
	return result
}

// ComputeRatios derives every ratio in §4.4 for one day row, given the
// quarter snapshot resolved for that trading date, the stock's closing
// price on that date (if any), and the prior year's annual net profit
// attributable to the parent company (the peg_ratio base). The returned
// row starts as a copy of record's raw metrics, so source fields (such as
// a day table's own stale pe_ratio) are overwritten or dropped by the
// formulas below rather than left stale.
func ComputeRatios(
	stockCode string,
	tradingDate int,
	record map[string]float64,
	quarter Snapshot,
	closingPrice float64,
	hasClosingPrice bool,
	latestAnnualNPPC float64,
	hasLatestAnnualNPPC bool,
) *recalRow {
	out := newRecalRow(stockCode, tradingDate, record)

	fourQuarterRatio(out, quarter, "straight_net_profit", "pe_ratio")
	fourQuarterRatio(out, quarter, "straight_cash_flow_from_operating_activities", "pcf_ratio")
	fourQuarterRatio(out, quarter, "latest_cash_flow_from_operating_activities", "pcf_ratio_1")
	psRatio(out, quarter)
	fourQuarterRatio(out, quarter, "latest_net_profit_parent_company", "pe_ratio_2")

	evValue := evRatio(out, quarter)
	ev2Ratio(out, quarter, evValue)
	evToEbit(out, quarter, evValue)

	peRatio1(out, quarter)
	pegRatio(out, quarter, latestAnnualNPPC, hasLatestAnnualNPPC)
	fourQuarterRatio(out, quarter, "straight_cash_equivalent_inc_net", "pcf_ratio_3")
	fourQuarterRatio(out, quarter, "latest_cash_equivalent_inc_net", "pcf_ratio_2")
	pbRatio(out, quarter, closingPrice, hasClosingPrice)

	return out
}

// fourQuarterRatio is the shared shape behind pe_ratio, pcf_ratio,
// pcf_ratio_1, pe_ratio_2, pcf_ratio_3 and pcf_ratio_2: market cap divided
// by a trailing quarter aggregate.
func fourQuarterRatio(out *recalRow, quarter Snapshot, renameMetric, metricName string) {
	marketCap, hasCap := out.get("market_cap")
	metricValue, hasMetric := quarter.Get(renameMetric)
	if !hasCap || !hasMetric || metricValue == 0 {
		out.drop(metricName)
		return
	}
	out.set(metricName, round4(marketCap/metricValue))
}

func psRatio(out *recalRow, quarter Snapshot) {
	marketCap, hasCap := out.get("market_cap")
	revenue, hasRevenue := quarter.Get("latest_revenue")
	if !hasRevenue || revenue == 0 {
		revenue, hasRevenue = quarter.Get("latest_operating_revenue")
	}
	if !hasCap || !hasRevenue || revenue == 0 {
		out.drop("ps_ratio")
		return
	}
	out.set("ps_ratio", round4(marketCap/revenue))
}

func evRatio(out *recalRow, quarter Snapshot) float64 {
	var ev float64
	if v, ok := out.get("val_of_stk_right"); ok {
		ev += v
	}
	if v, ok := quarter.Get("interest_bearing_debt"); ok {
		ev += v
	}
	out.set("ev", ev)
	return ev
}

func ev2Ratio(out *recalRow, quarter Snapshot, evValue float64) {
	cashTotal, _ := quarter.Get("cash_total") // absent treated as zero
	out.set("ev_2", evValue-cashTotal)
}

func evToEbit(out *recalRow, quarter Snapshot, evValue float64) {
	ebitda, ok := quarter.Get("ebitda")
	if !ok || ebitda == 0 {
		out.drop("ev_to_ebit")
		return
	}
	out.set("ev_to_ebit", round4(evValue/ebitda))
}

func peRatio1(out *recalRow, quarter Snapshot) {
	marketCap, hasCap := out.get("market_cap")
	nppc, hasNPPC := quarter.Get("net_profit_parent_company")
	if !hasCap || !hasNPPC || nppc == 0 {
		out.drop("pe_ratio_1")
		return
	}
	out.set("pe_ratio_1", round4(marketCap/nppc))
}

// pegRatio compares pe_ratio_2 against the growth rate of the annualized
// (four-latest) net profit attributable to parent company versus the prior
// year's annual figure.
func pegRatio(out *recalRow, quarter Snapshot, latestAnnualNPPC float64, hasLatestAnnualNPPC bool) {
	peRatio2, hasPE2 := out.get("pe_ratio_2")
	latestFourNPPC, hasLatestFour := quarter.Get("latest_net_profit_parent_company")
	if !hasPE2 || !hasLatestFour || !hasLatestAnnualNPPC || latestAnnualNPPC == 0 {
		out.drop("peg_ratio")
		return
	}
	growthPct := (latestFourNPPC - latestAnnualNPPC) / latestAnnualNPPC * 100
	if growthPct == 0 {
		out.drop("peg_ratio")
		return
	}
	out.set("peg_ratio", round4(peRatio2/growthPct))
}

func pbRatio(out *recalRow, quarter Snapshot, closingPrice float64, hasClosingPrice bool) {
	bookValue, hasBook := quarter.Get("book_value_per_share")
	if !hasBook || !hasClosingPrice {
		out.drop("pb_ratio")
		return
	}
	out.set("pb_ratio", round4(closingPrice/bookValue))
}
