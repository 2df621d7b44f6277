// Package availability implements the Availability Resolver: turning
// unavailability date ranges into per-block ForbiddenPairs. It knows
// nothing about CSV files — internal/csvio supplies the parsed records.
package availability

import (
	"fmt"

	"github.com/onduty-eng/oncall-roster/internal/domain"
)

// Resolve intersects each record's date range with each week's 7-day
// window. Any nonzero overlap forbids the engineer for that entire week.
// Records naming an engineer outside team are skipped and reported as
// warnings rather than aborting the run.
func Resolve(team domain.Team, records []domain.UnavailabilityRecord, weeks []domain.Week) (pairs []domain.ForbiddenPair, warnings []string) {
	seen := make(map[domain.ForbiddenPair]bool)

	for _, rec := range records {
		if !team.Contains(rec.Engineer) {
			warnings = append(warnings, fmt.Sprintf("unavailability record for unknown engineer %q ignored", rec.Engineer))
			continue
		}

		for _, week := range weeks {
			if !week.Overlaps(rec.StartDate, rec.EndDate) {
				continue
			}
			pair := domain.ForbiddenPair{Engineer: rec.Engineer, WeekIndex: week.Index}
			if seen[pair] {
				continue
			}
			seen[pair] = true
			pairs = append(pairs, pair)
		}
	}

	return pairs, warnings
}
