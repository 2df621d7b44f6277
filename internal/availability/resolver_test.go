package availability

import (
	"testing"
	"time"

	"github.com/onduty-eng/oncall-roster/internal/domain"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("time.Parse(%q): %v", s, err)
	}
	return d
}

func weeksStartingAt(start time.Time, n int) []domain.Week {
	weeks := make([]domain.Week, n)
	for i := range weeks {
		weeks[i] = domain.Week{Index: i, Start: start.AddDate(0, 0, 7*i)}
	}
	return weeks
}

func TestResolveOverlappingRecordForbidsWeek(t *testing.T) {
	team := domain.Team{"alice", "bob"}
	weeks := weeksStartingAt(date(t, "2026-01-05"), 3)
	records := []domain.UnavailabilityRecord{
		{Engineer: "alice", StartDate: date(t, "2026-01-10"), EndDate: date(t, "2026-01-12")},
	}

	pairs, warnings := Resolve(team, records, weeks)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	// The record's inclusive end date, Jan12, is the first day of week 1.
	want := []domain.ForbiddenPair{{Engineer: "alice", WeekIndex: 0}, {Engineer: "alice", WeekIndex: 1}}
	if len(pairs) != len(want) || pairs[0] != want[0] || pairs[1] != want[1] {
		t.Fatalf("got pairs %v, want %v", pairs, want)
	}
}

func TestResolveSpanningMultipleWeeks(t *testing.T) {
	team := domain.Team{"alice"}
	weeks := weeksStartingAt(date(t, "2026-01-05"), 3)
	records := []domain.UnavailabilityRecord{
		{Engineer: "alice", StartDate: date(t, "2026-01-10"), EndDate: date(t, "2026-01-20")},
	}

	pairs, _ := Resolve(team, records, weeks)
	if len(pairs) != 3 {
		t.Fatalf("got %d forbidden pairs, want 3 (one per week): %v", len(pairs), pairs)
	}
}

func TestResolveUnknownEngineerWarnsAndSkips(t *testing.T) {
	team := domain.Team{"alice"}
	weeks := weeksStartingAt(date(t, "2026-01-05"), 1)
	records := []domain.UnavailabilityRecord{
		{Engineer: "mallory", StartDate: date(t, "2026-01-05"), EndDate: date(t, "2026-01-06")},
	}

	pairs, warnings := Resolve(team, records, weeks)
	if len(pairs) != 0 {
		t.Fatalf("expected no forbidden pairs for unknown engineer, got %v", pairs)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(warnings), warnings)
	}
}

func TestResolveNonOverlappingRecordIsIgnored(t *testing.T) {
	team := domain.Team{"alice"}
	weeks := weeksStartingAt(date(t, "2026-01-05"), 1) // [Jan5, Jan12)
	records := []domain.UnavailabilityRecord{
		{Engineer: "alice", StartDate: date(t, "2026-01-20"), EndDate: date(t, "2026-01-22")},
	}

	pairs, _ := Resolve(team, records, weeks)
	if len(pairs) != 0 {
		t.Fatalf("expected no overlap, got %v", pairs)
	}
}

func TestResolveDuplicatePairDeduplicated(t *testing.T) {
	team := domain.Team{"alice"}
	weeks := weeksStartingAt(date(t, "2026-01-05"), 1)
	records := []domain.UnavailabilityRecord{
		{Engineer: "alice", StartDate: date(t, "2026-01-05"), EndDate: date(t, "2026-01-06")},
		{Engineer: "alice", StartDate: date(t, "2026-01-07"), EndDate: date(t, "2026-01-08")},
	}

	pairs, _ := Resolve(team, records, weeks)
	if len(pairs) != 1 {
		t.Fatalf("expected deduplication to 1 pair, got %d: %v", len(pairs), pairs)
	}
}
