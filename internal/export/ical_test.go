package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/onduty-eng/oncall-roster/internal/domain"
)

func sampleShift() domain.Shift {
	return domain.Shift{
		Block:      0,
		Week:       0,
		Role:       "D",
		RoleName:   "Day",
		EntryIndex: 0,
		Weekday:    domain.Monday,
		Engineer:   "alice",
		Start:      time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
		End:        time.Date(2026, 1, 5, 17, 0, 0, 0, time.UTC),
	}
}

func TestWriteICalProducesVEventPerShift(t *testing.T) {
	shifts := []domain.Shift{sampleShift()}
	path := filepath.Join(t.TempDir(), "schedule.ics")

	if err := WriteICal(shifts, time.UTC, path); err != nil {
		t.Fatalf("WriteICal: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "BEGIN:VCALENDAR\r\n") {
		t.Error("missing VCALENDAR header")
	}
	if strings.Count(content, "BEGIN:VEVENT") != 1 {
		t.Errorf("expected 1 VEVENT, got %d", strings.Count(content, "BEGIN:VEVENT"))
	}
	if !strings.Contains(content, "SUMMARY:Day — alice\r\n") {
		t.Errorf("missing expected SUMMARY line, got:\n%s", content)
	}
	if !strings.Contains(content, "DTSTART;TZID=UTC:20260105T090000\r\n") {
		t.Errorf("missing expected DTSTART line, got:\n%s", content)
	}
}

func TestShiftUIDStableAcrossRuns(t *testing.T) {
	a := sampleShift()
	b := sampleShift()
	if shiftUID(a) != shiftUID(b) {
		t.Error("UID must be stable for identical (block, week, role, entry-index, weekday)")
	}

	c := sampleShift()
	c.Engineer = "bob" // changing the assigned engineer must not change the UID
	if shiftUID(a) != shiftUID(c) {
		t.Error("UID must not depend on the assigned engineer")
	}

	d := sampleShift()
	d.Week = 1
	if shiftUID(a) == shiftUID(d) {
		t.Error("UID must differ when the week differs")
	}
}
