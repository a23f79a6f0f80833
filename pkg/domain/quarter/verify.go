package quarter

import (
	"fmt"

	"fundamentals/pkg/domain"
)

// VerifyDeclare checks property 2 (§8) over one stock's finalized
// strategy_quarter reports, ordered end_date DESC: every row must carry an
// announce_date, announce_to, and end_date; announce_date must strictly
// decrease from one row to the next; a row's announce_to must equal the
// immediately newer row's announce_date; and end_date must precede
// announce_date. This is the Go port of the original's standalone
// verify_declare routine, run here as a post-Strategy-stage assertion
// (§7: "Assertions of pipeline invariants ... fatal").
func VerifyDeclare(reports []*domain.QuarterReport) error {
	var previous *domain.QuarterReport

	for _, r := range reports {
		if r.AnnounceDate == 0 {
			return fmt.Errorf("verify_declare: stock %s end_date %d missing announce_date", r.StockCode, r.EndDate)
		}
		if r.AnnounceTo == 0 {
			return fmt.Errorf("verify_declare: stock %s end_date %d missing announce_to", r.StockCode, r.EndDate)
		}
		if r.EndDate == 0 {
			return fmt.Errorf("verify_declare: stock %s missing end_date", r.StockCode)
		}
		if r.EndDate >= r.AnnounceDate {
			return fmt.Errorf("verify_declare: stock %s end_date %d is not before announce_date %d", r.StockCode, r.EndDate, r.AnnounceDate)
		}

		if previous != nil {
			if r.AnnounceDate >= previous.AnnounceDate {
				return fmt.Errorf("verify_declare: stock %s announce_date %d is not strictly before previous %d", r.StockCode, r.AnnounceDate, previous.AnnounceDate)
			}
			if r.AnnounceTo != previous.AnnounceDate {
				return fmt.Errorf("verify_declare: stock %s end_date %d announce_to %d does not match previous announce_date %d", r.StockCode, r.EndDate, r.AnnounceTo, previous.AnnounceDate)
			}
		}

		previous = r
	}
	return nil
}
