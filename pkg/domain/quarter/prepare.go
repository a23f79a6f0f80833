package quarter

import "fundamentals/pkg/domain"

// PruneLateAnnouncements implements the Prepare stage's late-announcement
// pruning (§4.2.2) for one stock's reports, ordered end_date DESC. A row is
// deleted when its announce_date is no earlier than the latest announce
// date seen so far (scanning from the newest end_date down): the newer
// fiscal period's filing supersedes it. Surviving rows that immediately
// follow a deleted run have their announce_to extended to cover the gap.
//
// Returns the surviving reports in the same order, with announce_to
// updated where required. Does not mutate the input slice's order, but
// does mutate the AnnounceTo field of surviving report pointers.
func PruneLateAnnouncements(reports []*domain.QuarterReport) []*domain.QuarterReport {
	out := make([]*domain.QuarterReport, 0, len(reports))

	latestAnnounceDate := domain.NoAnnounceTo
	lastDeleted := false

	for _, r := range reports {
		if r.AnnounceDate >= latestAnnounceDate {
			lastDeleted = true
			continue // this row is superseded; drop it
		}

		if lastDeleted {
			r.AnnounceTo = latestAnnounceDate
			lastDeleted = false
		}
		latestAnnounceDate = r.AnnounceDate
		out = append(out, r)
	}
	return out
}
