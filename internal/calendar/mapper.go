// Package calendar implements the Calendar Mapper: turning a Role's
// recurring schedule entries into concrete, dated Shifts for one Week.
package calendar

import (
	"sort"
	"time"

	"github.com/onduty-eng/oncall-roster/internal/domain"
)

// ShiftsForWeek resolves every schedule entry of role against week's
// 7-day window, returning one Shift per (entry, weekday) pair, engineer
// left unset — the caller fills that in once the solver has produced an
// Assignment. Shifts are returned in (schedule-entry, weekday) order, per
// spec §5.
//
// Weekday tokens always refer to the actual calendar weekday within
// week's window, never an offset from week.Start: every weekday appears
// exactly once in a 7-day window, so the mapping is total.
func ShiftsForWeek(week domain.Week, role domain.Role) []domain.Shift {
	var shifts []domain.Shift

	for entryIndex, entry := range role.Schedule {
		entryShifts := make([]domain.Shift, 0, len(entry.Days))
		for _, day := range entry.Days {
			date := dateForWeekday(week.Start, day)
			start := date.Add(entry.StartTime.Duration())
			entryShifts = append(entryShifts, domain.Shift{
				Block:      week.BlockIndex,
				Week:       week.Index,
				Role:       role.ID,
				RoleName:   role.Name,
				EntryIndex: entryIndex,
				Weekday:    day,
				Start:      start,
				End:        start.Add(entry.Duration()),
			})
		}
		sort.Slice(entryShifts, func(i, j int) bool {
			return entryShifts[i].Start.Before(entryShifts[j].Start)
		})
		shifts = append(shifts, entryShifts...)
	}

	return shifts
}

// dateForWeekday finds the unique date within [weekStart, weekStart+7)
// whose weekday equals day.
func dateForWeekday(weekStart time.Time, day domain.Weekday) time.Time {
	offset := (int(day.ToTime()) - int(weekStart.Weekday()) + 7) % 7
	return weekStart.AddDate(0, 0, offset)
}
