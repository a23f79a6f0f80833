package quarter

import "fundamentals/pkg/domain"

// AnnounceToUpdate is the (end_date, announce_to) pair re-read from
// prepare_quarter by the Strategy stage (§4.2.3) to refresh
// strategy_quarter's announce_to column — this catches the newest quarter
// whose downstream neighbor did not yet exist when Prepare last ran.
type AnnounceToUpdate struct {
	EndDate    int
	AnnounceTo int
}

// AnnounceToUpdatesFrom derives the refresh tuples from a stock's
// prepare_quarter-state reports, ordered end_date DESC.
func AnnounceToUpdatesFrom(prepared []*domain.QuarterReport) []AnnounceToUpdate {
	updates := make([]AnnounceToUpdate, len(prepared))
	for i, r := range prepared {
		updates[i] = AnnounceToUpdate{EndDate: r.EndDate, AnnounceTo: r.AnnounceTo}
	}
	return updates
}

// ApplyAnnounceToUpdates applies a set of (end_date -> announce_to)
// refreshes onto a stock's existing strategy_quarter reports, updating
// only the announce_to column and leaving everything else untouched — the
// same narrow update the original's on_duplicate_key_update clause
// performs.
func ApplyAnnounceToUpdates(existing []*domain.QuarterReport, updates []AnnounceToUpdate) []*domain.QuarterReport {
	byEndDate := make(map[int]int, len(updates))
	for _, u := range updates {
		byEndDate[u.EndDate] = u.AnnounceTo
	}
	for _, r := range existing {
		if to, ok := byEndDate[r.EndDate]; ok {
			r.AnnounceTo = to
		}
	}
	return existing
}
