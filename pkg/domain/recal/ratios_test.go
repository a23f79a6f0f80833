package recal

import "testing"

func snapshot(metrics map[string]float64) Snapshot {
	return Snapshot{EndDate: 20201231, Metrics: metrics}
}

func TestComputeRatiosPERatio(t *testing.T) {
	record := map[string]float64{"market_cap": 1000}
	quarter := snapshot(map[string]float64{"straight_net_profit": 200})
	out := ComputeRatios("000001.XSHE", 20210101, record, quarter, 0, false, 0, false)
	v, ok := out.get("pe_ratio")
	if !ok || v != 5 {
		t.Fatalf("pe_ratio = %v, %v; want 5, true", v, ok)
	}
}

func TestComputeRatiosDropsWhenMetricMissing(t *testing.T) {
	record := map[string]float64{"market_cap": 1000, "pe_ratio": 99} // stale source value
	quarter := snapshot(nil)
	out := ComputeRatios("000001.XSHE", 20210101, record, quarter, 0, false, 0, false)
	if _, ok := out.get("pe_ratio"); ok {
		t.Fatal("expected pe_ratio to be dropped when no straight_net_profit is available")
	}
}

func TestComputeRatiosPSRatioFallsBackToOperatingRevenue(t *testing.T) {
	record := map[string]float64{"market_cap": 400}
	quarter := snapshot(map[string]float64{"latest_revenue": 0, "latest_operating_revenue": 200})
	out := ComputeRatios("000001.XSHE", 20210101, record, quarter, 0, false, 0, false)
	v, ok := out.get("ps_ratio")
	if !ok || v != 2 {
		t.Fatalf("ps_ratio = %v, %v; want 2, true", v, ok)
	}
}

func TestComputeRatiosEVIncludesDebtAndSubtractsCash(t *testing.T) {
	record := map[string]float64{"val_of_stk_right": 500}
	quarter := snapshot(map[string]float64{"interest_bearing_debt": 150, "cash_total": 80})
	out := ComputeRatios("000001.XSHE", 20210101, record, quarter, 0, false, 0, false)
	if v, _ := out.get("ev"); v != 650 {
		t.Errorf("ev = %v, want 650", v)
	}
	if v, _ := out.get("ev_2"); v != 570 {
		t.Errorf("ev_2 = %v, want 570", v)
	}
}

func TestComputeRatiosEvToEbitDroppedWhenEbitdaZero(t *testing.T) {
	record := map[string]float64{"val_of_stk_right": 500}
	quarter := snapshot(map[string]float64{"ebitda": 0})
	out := ComputeRatios("000001.XSHE", 20210101, record, quarter, 0, false, 0, false)
	if _, ok := out.get("ev_to_ebit"); ok {
		t.Fatal("expected ev_to_ebit dropped when ebitda is zero")
	}
}

// S7: pe_ratio_2=15, latest-four nppc=120, prior-annual nppc=100 -> g=20,
// peg_ratio=0.75.
func TestComputeRatiosPegRatio(t *testing.T) {
	record := map[string]float64{"market_cap": 1800} // 1800/120 = 15 = pe_ratio_2
	quarter := snapshot(map[string]float64{"latest_net_profit_parent_company": 120})
	out := ComputeRatios("000001.XSHE", 20210101, record, quarter, 0, false, 100, true)
	if v, ok := out.get("pe_ratio_2"); !ok || v != 15 {
		t.Fatalf("pe_ratio_2 = %v, %v; want 15, true", v, ok)
	}
	v, ok := out.get("peg_ratio")
	if !ok || v != 0.75 {
		t.Fatalf("peg_ratio = %v, %v; want 0.75, true", v, ok)
	}
}

func TestComputeRatiosPegRatioDroppedWhenGrowthZero(t *testing.T) {
	record := map[string]float64{"market_cap": 1500}
	quarter := snapshot(map[string]float64{"latest_net_profit_parent_company": 100})
	out := ComputeRatios("000001.XSHE", 20210101, record, quarter, 0, false, 100, true)
	if _, ok := out.get("peg_ratio"); ok {
		t.Fatal("expected peg_ratio dropped when year-over-year growth is zero")
	}
}

func TestComputeRatiosPBRatio(t *testing.T) {
	record := map[string]float64{}
	quarter := snapshot(map[string]float64{"book_value_per_share": 4})
	out := ComputeRatios("000001.XSHE", 20210101, record, quarter, 10, true, 0, false)
	v, ok := out.get("pb_ratio")
	if !ok || v != 2.5 {
		t.Fatalf("pb_ratio = %v, %v; want 2.5, true", v, ok)
	}
}

func TestComputeRatiosPBRatioDroppedWithoutClosingPrice(t *testing.T) {
	record := map[string]float64{}
	quarter := snapshot(map[string]float64{"book_value_per_share": 4})
	out := ComputeRatios("000001.XSHE", 20210101, record, quarter, 0, false, 0, false)
	if _, ok := out.get("pb_ratio"); ok {
		t.Fatal("expected pb_ratio dropped without a closing price")
	}
}

func TestComputeRatiosRoundsHalfAwayFromZero(t *testing.T) {
	record := map[string]float64{"market_cap": 1}
	quarter := snapshot(map[string]float64{"straight_net_profit": 3}) // 1/3 = 0.33333...
	out := ComputeRatios("000001.XSHE", 20210101, record, quarter, 0, false, 0, false)
	v, _ := out.get("pe_ratio")
	if v != 0.3333 {
		t.Errorf("pe_ratio = %v, want 0.3333", v)
	}

	// 1/20000 = 0.00005 is an exact half at the fifth decimal: half away
	// from zero gives 0.0001 (half-to-even would give 0).
	quarter = snapshot(map[string]float64{"straight_net_profit": 20000})
	out = ComputeRatios("000001.XSHE", 20210101, record, quarter, 0, false, 0, false)
	v, _ = out.get("pe_ratio")
	if v != 0.0001 {
		t.Errorf("pe_ratio = %v, want 0.0001", v)
	}
}
