package fiscal

import (
	"reflect"
	"testing"
)

func TestPeriodEndRoundtrip(t *testing.T) {
	// S2: (year=2017, quarter=3) <-> 20170930
	if got := PeriodEnd(2017, 3); got != 20170930 {
		t.Errorf("PeriodEnd(2017,3) = %d, want 20170930", got)
	}
	year, quarter := YearQuarter(20170930)
	if year != 2017 || quarter != 3 {
		t.Errorf("YearQuarter(20170930) = (%d,%d), want (2017,3)", year, quarter)
	}

	// end_date 20161231 -> (rpt_year=2016, rpt_quarter=4)
	year, quarter = YearQuarter(20161231)
	if year != 2016 || quarter != 4 {
		t.Errorf("YearQuarter(20161231) = (%d,%d), want (2016,4)", year, quarter)
	}
}

func TestPeriodEndNotOctal(t *testing.T) {
	// Guards against the classic Go gotcha: a leading-zero integer literal
	// parses as octal, so 0331 would be 217 decimal, not 331.
	if PeriodEnd(2020, 1)%10000 != 331 {
		t.Fatalf("Q1 MMDD must be decimal 331, got %d", PeriodEnd(2020, 1)%10000)
	}
}

func TestLatestEnds(t *testing.T) {
	cases := []struct {
		trading int
		want    []int
	}{
		// S1
		{20161020, []int{20160930, 20160630}},
		{20161101, []int{20160930}},
		{20160210, []int{20160331, 20151231, 20150930}},
	}
	for _, c := range cases {
		got := LatestEnds(c.trading)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("LatestEnds(%d) = %v, want %v", c.trading, got, c.want)
		}
	}
}

func TestLatestEndsCoverage(t *testing.T) {
	// Every real trading date in the year must return a non-empty
	// candidate list whose period-ends do not fall after the trading date
	// (property 1, §8). The one exception is the current year's Q1
	// period-end, which the Jan-Apr window lists from Jan 1 on (see the
	// 20160210 case in TestLatestEnds).
	daysInMonth := []int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	year := 2019
	for month := 1; month <= 12; month++ {
		for day := 1; day <= daysInMonth[month-1]; day++ {
			trading := year*10000 + month*100 + day
			got := LatestEnds(trading)
			if len(got) == 0 {
				t.Fatalf("LatestEnds(%d) returned no candidates", trading)
			}
			for _, end := range got {
				if month <= 3 && end == PeriodEnd(year, 1) {
					continue
				}
				if end > trading {
					t.Errorf("LatestEnds(%d) candidate %d is after trading date", trading, end)
				}
			}
		}
	}
}
