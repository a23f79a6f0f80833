package quarter

import (
	"testing"

	"fundamentals/pkg/domain"
)

func report(year, quarter, endDate, announceDate int) *domain.QuarterReport {
	return &domain.QuarterReport{
		StockCode:  "000001.XSHE",
		ComCode:    "C1",
		EndDate:    endDate,
		RptYear:    year,
		RptQuarter: quarter,
		AnnounceDate: announceDate,
	}
}

func TestSynthesizeAnnounceDatesBasicQuarters(t *testing.T) {
	reports := []*domain.QuarterReport{
		report(2020, 3, 20200930, 0),
		report(2020, 2, 20200630, 0),
		report(2020, 1, 20200331, 0),
	}
	out, err := SynthesizeAnnounceDates(reports, 20210101)
	if err != nil {
		t.Fatal(err)
	}
	if out[0].AnnounceDate != 20201031 {
		t.Errorf("Q3 announce_date = %d, want 20201031", out[0].AnnounceDate)
	}
	if out[1].AnnounceDate != 20200831 {
		t.Errorf("Q2 announce_date = %d, want 20200831", out[1].AnnounceDate)
	}
	if out[2].AnnounceDate != 20200430 {
		t.Errorf("Q1 announce_date = %d, want 20200430", out[2].AnnounceDate)
	}
	if out[0].AnnounceTo != domain.NoAnnounceTo {
		t.Errorf("newest row announce_to = %d, want sentinel", out[0].AnnounceTo)
	}
	if out[1].AnnounceTo != out[0].AnnounceDate {
		t.Errorf("announce_to chaining broken: %d != %d", out[1].AnnounceTo, out[0].AnnounceDate)
	}
}

// S6: Q4 2022, newest row, no announce_date, today = 2023-03-10 falls
// strictly between 2023-01-01 and the 2023-04-30 deadline -> use today.
func TestSynthesizeAnnounceDatesS6(t *testing.T) {
	reports := []*domain.QuarterReport{
		report(2022, 4, 20221231, 0),
	}
	out, err := SynthesizeAnnounceDates(reports, 20230310)
	if err != nil {
		t.Fatal(err)
	}
	if out[0].AnnounceDate != 20230310 {
		t.Errorf("announce_date = %d, want 20230310 (today), not the 0430 deadline", out[0].AnnounceDate)
	}
}

func TestSynthesizeAnnounceDatesQ4PastDeadlineUsesDefault(t *testing.T) {
	reports := []*domain.QuarterReport{
		report(2022, 4, 20221231, 0),
	}
	out, err := SynthesizeAnnounceDates(reports, 20230601)
	if err != nil {
		t.Fatal(err)
	}
	if out[0].AnnounceDate != 20230430 {
		t.Errorf("announce_date = %d, want 20230430 deadline once past the window", out[0].AnnounceDate)
	}
}

func TestSynthesizeAnnounceDatesQ4ReusesQ1AnnounceDate(t *testing.T) {
	// Q1 2021 newer than Q4 2020: previous (already processed) = Q1 2021.
	q1 := report(2021, 1, 20210331, 20210420)
	q4 := report(2020, 4, 20201231, 0)
	_, err := SynthesizeAnnounceDates([]*domain.QuarterReport{q1, q4}, 20210601)
	if err != nil {
		t.Fatal(err)
	}
	if q4.AnnounceDate != 20210420 {
		t.Errorf("Q4 announce_date = %d, want reused Q1 announce_date 20210420", q4.AnnounceDate)
	}
}

func TestSynthesizeAnnounceDatesMissingFieldErrors(t *testing.T) {
	bad := &domain.QuarterReport{StockCode: "", ComCode: "C1", EndDate: 20200331, RptYear: 2020, RptQuarter: 1}
	if _, err := SynthesizeAnnounceDates([]*domain.QuarterReport{bad}, 20200101); err == nil {
		t.Fatal("expected error for missing stockcode")
	}
}
