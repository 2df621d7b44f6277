// Package export writes the schedule CSV and iCal formats from spec §6.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/onduty-eng/oncall-roster/internal/apperr"
	"github.com/onduty-eng/oncall-roster/internal/domain"
)

const csvDateTimeLayout = "2006-01-02 15:04"

// WriteScheduleCSV writes one row per Shift in the header/format from
// spec §6, in whatever order shifts is already sorted in (the
// orchestrator produces (block, week, role, entry, weekday) order, per
// spec §5).
func WriteScheduleCSV(shifts []domain.Shift, zone *time.Location, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return apperr.NewIOError("creating schedule CSV", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Week", "Role", "Engineer", "Start DateTime", "End DateTime"}); err != nil {
		return apperr.NewIOError("writing schedule CSV header", err)
	}

	for _, s := range shifts {
		row := []string{
			fmt.Sprintf("%d", s.GlobalWeek+1),
			s.RoleName,
			string(s.Engineer),
			s.Start.In(zone).Format(csvDateTimeLayout),
			s.End.In(zone).Format(csvDateTimeLayout),
		}
		if err := w.Write(row); err != nil {
			return apperr.NewIOError("writing schedule CSV row", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return apperr.NewIOError("flushing schedule CSV", err)
	}
	return nil
}
