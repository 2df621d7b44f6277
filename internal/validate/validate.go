// Package validate implements the Validator from spec §4.6: an
// independent pass over the loaded configuration and unavailability
// records that surfaces structural and capacity problems before
// generate ever invokes the solver. internal/config already rejects
// malformed YAML and missing keys at load time; this package re-checks
// the semantic invariants that span multiple config sections (team
// uniqueness, weekend_role existing, capacity arithmetic) and collects
// non-fatal warnings (unknown engineers in the unavailability file)
// rather than aborting on them.
package validate

import (
	"fmt"

	"github.com/onduty-eng/oncall-roster/internal/config"
	"github.com/onduty-eng/oncall-roster/internal/domain"
)

// Severity distinguishes a problem that must block generate from one
// that's merely informative.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Problem is one finding from a validation pass.
type Problem struct {
	Severity Severity
	Message  string
}

func errorf(format string, args ...any) Problem {
	return Problem{Severity: SeverityError, Message: fmt.Sprintf(format, args...)}
}

func warnf(format string, args ...any) Problem {
	return Problem{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)}
}

// HasErrors reports whether any problem in the list is error-severity.
func HasErrors(problems []Problem) bool {
	for _, p := range problems {
		if p.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Run performs the independent checks from spec §4.6 against an already
// loaded configuration.
func Run(cfg *config.Config, records []domain.UnavailabilityRecord) []Problem {
	var problems []Problem

	problems = append(problems, checkTeam(cfg)...)
	problems = append(problems, checkRoles(cfg)...)
	problems = append(problems, checkCapacity(cfg)...)
	problems = append(problems, checkUnavailability(cfg, records)...)

	return problems
}

func checkTeam(cfg *config.Config) []Problem {
	var problems []Problem
	seen := make(map[domain.Engineer]bool, len(cfg.Team))
	for _, e := range cfg.Team {
		if e == "" {
			problems = append(problems, errorf("team contains an empty engineer name"))
			continue
		}
		if seen[e] {
			problems = append(problems, errorf("duplicate engineer name %q in team", e))
		}
		seen[e] = true
	}
	return problems
}

func checkRoles(cfg *config.Config) []Problem {
	var problems []Problem
	for _, id := range cfg.RoleOrder {
		role := cfg.Roles[id]
		if len(role.Schedule) == 0 {
			problems = append(problems, errorf("role %q has no schedule entries", id))
		}
	}
	if cfg.HasWeekendRole {
		if _, ok := cfg.Roles[cfg.WeekendRole]; !ok {
			problems = append(problems, errorf("constraints.weekend_role %q does not name a configured role", cfg.WeekendRole))
		}
	}
	return problems
}

// checkCapacity re-derives the §4.3 capacity inequalities per block. The
// Constraint Model Builder performs the same check right before solving;
// surfacing it here too lets `validate` catch it without ever invoking
// the solver.
func checkCapacity(cfg *config.Config) []Problem {
	var problems []Problem

	if cfg.Rules.MaxWorkload {
		demand := cfg.WeeksPerBlock * len(cfg.RoleOrder)
		capacity := len(cfg.Team) * cfg.MaxShiftsPerEngineer
		if capacity < demand {
			problems = append(problems, errorf(
				"insufficient capacity per block: %d engineers × %d max_shifts_per_engineer = %d person-shifts, but %d weeks × %d roles = %d required",
				len(cfg.Team), cfg.MaxShiftsPerEngineer, capacity, cfg.WeeksPerBlock, len(cfg.RoleOrder), demand))
		}
	}

	if cfg.Rules.WeekendLimit && cfg.HasWeekendRole {
		capacity := len(cfg.Team) * cfg.MaxWeekendsPerEngineer
		if capacity < cfg.WeeksPerBlock {
			problems = append(problems, errorf(
				"insufficient weekend capacity per block: %d engineers × %d max_weekends_per_engineer = %d, but %d weekend weeks required",
				len(cfg.Team), cfg.MaxWeekendsPerEngineer, capacity, cfg.WeeksPerBlock))
		}
	}

	return problems
}

func checkUnavailability(cfg *config.Config, records []domain.UnavailabilityRecord) []Problem {
	var problems []Problem
	for _, rec := range records {
		if !cfg.Team.Contains(rec.Engineer) {
			problems = append(problems, warnf("unavailability record for unknown engineer %q", rec.Engineer))
		}
	}
	return problems
}
