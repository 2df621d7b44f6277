package csvio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/onduty-eng/oncall-roster/internal/domain"
)

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "unavailability.csv")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing test CSV: %v", err)
	}
	return path
}

func TestLoadUnavailability(t *testing.T) {
	path := writeCSV(t, "engineer,start_date,end_date\nalice,2026-01-10,2026-01-12\nbob,2026-02-01,2026-02-01\n")

	records, err := LoadUnavailability(path)
	if err != nil {
		t.Fatalf("LoadUnavailability: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	want := domain.UnavailabilityRecord{
		Engineer:  "alice",
		StartDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
	}
	if records[0] != want {
		t.Errorf("records[0] = %+v, want %+v", records[0], want)
	}
}

func TestLoadUnavailabilityBadHeader(t *testing.T) {
	path := writeCSV(t, "name,from,to\nalice,2026-01-10,2026-01-12\n")
	if _, err := LoadUnavailability(path); err == nil {
		t.Fatal("expected an error for a mismatched header")
	}
}

func TestLoadUnavailabilityEndBeforeStart(t *testing.T) {
	path := writeCSV(t, "engineer,start_date,end_date\nalice,2026-01-12,2026-01-10\n")
	if _, err := LoadUnavailability(path); err == nil {
		t.Fatal("expected an error when end_date precedes start_date")
	}
}

func TestLoadUnavailabilityMalformedDate(t *testing.T) {
	path := writeCSV(t, "engineer,start_date,end_date\nalice,not-a-date,2026-01-10\n")
	if _, err := LoadUnavailability(path); err == nil {
		t.Fatal("expected an error for a malformed date")
	}
}

func TestLoadUnavailabilityMissingFile(t *testing.T) {
	if _, err := LoadUnavailability(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
