// Package csvio is the mechanical I/O layer for the unavailability CSV
// format in spec §6; the schedule CSV export is written by
// internal/export. It uses the standard library's encoding/csv directly — no third-party CSV
// package appears anywhere in the retrieved corpus, so there is nothing
// to adopt instead (see DESIGN.md).
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/onduty-eng/oncall-roster/internal/apperr"
	"github.com/onduty-eng/oncall-roster/internal/domain"
)

const dateLayout = "2006-01-02"

var unavailabilityHeader = []string{"engineer", "start_date", "end_date"}

// LoadUnavailability parses the header/rows contract from spec §6:
// "engineer,start_date,end_date", ISO-8601 dates, inclusive endpoints.
// It does not check engineer membership — that belongs to
// internal/availability, which turns unknown engineers into warnings
// rather than errors.
func LoadUnavailability(path string) ([]domain.UnavailabilityRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.NewIOError("opening unavailability CSV", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, apperr.NewIOError("reading unavailability CSV header", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, apperr.NewConfigError("unavailability CSV: %v", err)
	}

	var records []domain.UnavailabilityRecord
	rowNum := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperr.NewIOError("reading unavailability CSV", err)
		}
		rowNum++

		rec, err := parseRow(row)
		if err != nil {
			return nil, apperr.NewConfigError("unavailability CSV row %d: %v", rowNum, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func checkHeader(got []string) error {
	if len(got) != len(unavailabilityHeader) {
		return fmt.Errorf("expected header %v, got %v", unavailabilityHeader, got)
	}
	for i, want := range unavailabilityHeader {
		if got[i] != want {
			return fmt.Errorf("expected header %v, got %v", unavailabilityHeader, got)
		}
	}
	return nil
}

func parseRow(row []string) (domain.UnavailabilityRecord, error) {
	if len(row) != 3 {
		return domain.UnavailabilityRecord{}, fmt.Errorf("expected 3 columns, got %d", len(row))
	}

	start, err := time.Parse(dateLayout, row[1])
	if err != nil {
		return domain.UnavailabilityRecord{}, fmt.Errorf("invalid start_date %q", row[1])
	}
	end, err := time.Parse(dateLayout, row[2])
	if err != nil {
		return domain.UnavailabilityRecord{}, fmt.Errorf("invalid end_date %q", row[2])
	}
	if end.Before(start) {
		return domain.UnavailabilityRecord{}, fmt.Errorf("end_date %q is before start_date %q", row[2], row[1])
	}

	return domain.UnavailabilityRecord{
		Engineer:  domain.Engineer(row[0]),
		StartDate: start,
		EndDate:   end,
	}, nil
}
