package quarter

import (
	"fmt"

	"fundamentals/pkg/domain"
)

// SynthesizeAnnounceDates implements cleanup pass 2 (§4.2.1): for one
// stock's reports, ordered end_date DESC, fill in any missing
// announce_date and (re)derive announce_to from the immediately newer
// report. reports is mutated in place and also returned for convenience.
//
// today is the caller's current YYYYMMDD date, used only by the Q4 "still
// within its legal window" rule below.
func SynthesizeAnnounceDates(reports []*domain.QuarterReport, today int) ([]*domain.QuarterReport, error) {
	var previous *domain.QuarterReport

	for _, r := range reports {
		if err := validateForSynthesis(r); err != nil {
			return nil, err
		}

		if r.AnnounceDate == 0 {
			r.AnnounceDate = synthesizeOne(r, previous, today)
		}

		if previous == nil {
			r.AnnounceTo = domain.NoAnnounceTo
		} else {
			r.AnnounceTo = previous.AnnounceDate
		}

		if r.AnnounceDate == 0 {
			return nil, fmt.Errorf("synthesize announce date: stock %s end_date %d still missing announce_date", r.StockCode, r.EndDate)
		}
		if r.AnnounceTo == 0 {
			return nil, fmt.Errorf("synthesize announce date: stock %s end_date %d still missing announce_to", r.StockCode, r.EndDate)
		}

		previous = r
	}
	return reports, nil
}

func validateForSynthesis(r *domain.QuarterReport) error {
	if r.StockCode == "" {
		return fmt.Errorf("synthesize announce date: missing stockcode for end_date %d", r.EndDate)
	}
	if r.ComCode == "" {
		return fmt.Errorf("synthesize announce date: missing comcode for stock %s end_date %d", r.StockCode, r.EndDate)
	}
	if r.EndDate == 0 {
		return fmt.Errorf("synthesize announce date: missing end_date for stock %s", r.StockCode)
	}
	if r.RptYear == 0 {
		return fmt.Errorf("synthesize announce date: missing rpt_year for stock %s end_date %d", r.StockCode, r.EndDate)
	}
	if r.RptQuarter == 0 {
		return fmt.Errorf("synthesize announce date: missing rpt_quarter for stock %s end_date %d", r.StockCode, r.EndDate)
	}
	return nil
}

// synthesizeOne derives the missing announce_date for r. previous is the
// immediately newer report already processed (nil if r is the newest row
// for this stock); today is the caller's current YYYYMMDD date.
func synthesizeOne(r *domain.QuarterReport, previous *domain.QuarterReport, today int) int {
	switch r.RptQuarter {
	case 1:
		return r.RptYear*10000 + 430
	case 2:
		return r.RptYear*10000 + 831
	case 3:
		return r.RptYear*10000 + 1031
	case 4:
		return fourthQuarterAnnounceDate(r, previous, today)
	default:
		return 0
	}
}

// fourthQuarterAnnounceDate implements AnnounceDateAdjustement.fourth_quarter:
// the annual report's deadline is April 30 of the following year.
//
//   - If this is the newest row for the stock (previous == nil) and today
//     falls strictly between (year+1)-01-01 and that deadline, the annual
//     is still legally unannounced — use today instead.
//   - Otherwise, if the immediately newer report is Q1 of year+1, reuse its
//     announce_date (it was almost certainly filed alongside the annual).
//   - Otherwise, use the deadline itself.
func fourthQuarterAnnounceDate(r *domain.QuarterReport, previous *domain.QuarterReport, today int) int {
	nextYear := r.RptYear + 1
	deadline := nextYear*10000 + 430

	if previous == nil {
		lowerBound := nextYear*10000 + 101
		if lowerBound < today && today < deadline {
			return today
		}
		return deadline
	}

	if previous.RptQuarter == 1 && previous.RptYear == nextYear {
		return previous.AnnounceDate
	}
	return deadline
}
