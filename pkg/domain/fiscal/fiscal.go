// Package fiscal implements pure fiscal-calendar arithmetic: mapping a
// trading date to the fiscal period-ends that could plausibly be the
// latest publicly available report on that day, and converting between
// (year, quarter) and the YYYYMMDD period-end encoding.
package fiscal

// periodEndMMDD is indexed by quarter (1-4). Values are plain decimal
// literals, not octal: a leading zero in a Go integer literal is parsed as
// octal, so these are written 331/630/930/1231, never 0331/0630/0930/1231.
var periodEndMMDD = [5]int{0, 331, 630, 930, 1231}

// PeriodEnd returns the YYYYMMDD fiscal period-end for (year, quarter).
// quarter must be in 1..4.
func PeriodEnd(year, quarter int) int {
	return year*10000 + periodEndMMDD[quarter]
}

// YearQuarter inverts PeriodEnd: given an end_date, returns (rpt_year,
// rpt_quarter). rpt_quarter is derived as (end_date mod 10000) div 300,
// which yields 1/2/3/4 for the four canonical MMDD endings (331/630/930/1231
// all satisfy n/300 == {1,2,3,4} respectively).
func YearQuarter(endDate int) (year, quarter int) {
	year = endDate / 10000
	quarter = (endDate % 10000) / 300
	return year, quarter
}

// LatestEnds returns the candidate period-ends that could be the latest
// publicly announced fiscal report on tradingDate, ordered most-recent
// first. It is a calendar-only approximation (§4.1); callers must further
// filter candidates by actual announce_date <= tradingDate.
//
// Regulated filing deadlines: Q1 by Apr 30, H1 by Aug 31, Q3 by Oct 31,
// Annual by Apr 30 of the following year. Overlap windows (e.g. early
// April, when both the prior annual and the current Q1 may be
// unannounced) list every ambiguous candidate.
func LatestEnds(tradingDate int) []int {
	year := tradingDate / 10000
	mmdd := tradingDate % 10000

	switch {
	case mmdd >= 101 && mmdd <= 430:
		return []int{
			PeriodEnd(year, 1),
			PeriodEnd(year-1, 4),
			PeriodEnd(year-1, 3),
		}
	case mmdd >= 501 && mmdd <= 630:
		return []int{PeriodEnd(year, 1)}
	case mmdd >= 701 && mmdd <= 831:
		return []int{
			PeriodEnd(year, 2),
			PeriodEnd(year, 1),
		}
	case mmdd >= 901 && mmdd <= 930:
		return []int{PeriodEnd(year, 2)}
	case mmdd >= 1001 && mmdd <= 1031:
		return []int{
			PeriodEnd(year, 3),
			PeriodEnd(year, 2),
		}
	default: // 1101-1231
		return []int{PeriodEnd(year, 3)}
	}
}
