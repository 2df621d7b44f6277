// Package scheduler is the constraint model builder and block solver from
// spec §4.3/§4.4. The decision variables x[e,w,r] are never materialized
// as a boolean array; the search in search.go branches directly over
// (week, role) slots and tracks the same running totals CP-SAT's linear
// constraints would enforce, which is equivalent for this problem size
// and lets the search prune far earlier than a generic SAT solver would.
package scheduler

import (
	"github.com/onduty-eng/oncall-roster/internal/apperr"
	"github.com/onduty-eng/oncall-roster/internal/domain"
)

// Model is the constraint-satisfaction instance for one block.
type Model struct {
	Team  domain.Team
	Weeks int
	Roles []domain.Role // in config declaration order

	// AvailabilityForbidden holds the (engineer, week) pairs derived from
	// unavailability records. Enforced only when Rules.Availability is on.
	AvailabilityForbidden map[domain.ForbiddenPair]bool

	// ContinuityForbidden holds the engineers who worked the last week of
	// the previous block. Enforced in week 0 whenever
	// Rules.NoConsecutiveWeeks is on, independent of the Availability
	// toggle — it is a structural consequence of no_consecutive_weeks,
	// not an availability fact.
	ContinuityForbidden map[domain.Engineer]bool

	Rules domain.Rules

	MaxShiftsPerEngineer   int
	MaxWeekendsPerEngineer int
	WeekendRole            domain.RoleID
	HasWeekendRole         bool
}

// Slot is one (week, role) decision point. The Block Solver branches over
// slots in this order, which is also the order spec §5 requires
// assignments to be emitted in.
type Slot struct {
	Week int
	Role domain.RoleID
}

// Slots returns every (week, role) slot in the block, week-major.
func (m *Model) Slots() []Slot {
	slots := make([]Slot, 0, m.Weeks*len(m.Roles))
	for w := 0; w < m.Weeks; w++ {
		for _, role := range m.Roles {
			slots = append(slots, Slot{Week: w, Role: role.ID})
		}
	}
	return slots
}

func (m *Model) forbiddenByAvailability(e domain.Engineer, week int) bool {
	if !m.Rules.Availability {
		return false
	}
	return m.AvailabilityForbidden[domain.ForbiddenPair{Engineer: e, WeekIndex: week}]
}

func (m *Model) forbiddenByContinuity(e domain.Engineer, week int) bool {
	if !m.Rules.NoConsecutiveWeeks || week != 0 {
		return false
	}
	return m.ContinuityForbidden[e]
}

// BuildModel applies the §4.3 capacity pre-check and returns the model
// ready for the Block Solver, or an *apperr.CapacityError if capacity is
// insufficient to satisfy the enabled caps.
func BuildModel(
	team domain.Team,
	roles []domain.Role,
	weeks int,
	availabilityForbidden []domain.ForbiddenPair,
	continuityForbidden []domain.Engineer,
	rules domain.Rules,
	maxShifts, maxWeekends int,
	weekendRole domain.RoleID,
	hasWeekendRole bool,
) (*Model, error) {
	m := &Model{
		Team:                   team,
		Weeks:                  weeks,
		Roles:                  roles,
		AvailabilityForbidden:  make(map[domain.ForbiddenPair]bool, len(availabilityForbidden)),
		ContinuityForbidden:    make(map[domain.Engineer]bool, len(continuityForbidden)),
		Rules:                  rules,
		MaxShiftsPerEngineer:   maxShifts,
		MaxWeekendsPerEngineer: maxWeekends,
		WeekendRole:            weekendRole,
		HasWeekendRole:         hasWeekendRole,
	}
	for _, p := range availabilityForbidden {
		m.AvailabilityForbidden[p] = true
	}
	for _, e := range continuityForbidden {
		m.ContinuityForbidden[e] = true
	}

	if rules.MaxWorkload {
		capacity := len(team) * maxShifts
		demand := weeks * len(roles)
		if capacity < demand {
			return nil, apperr.NewCapacityError(
				"insufficient capacity: %d engineers × %d max shifts/engineer = %d person-shifts available, but %d weeks × %d roles = %d required",
				len(team), maxShifts, capacity, weeks, len(roles), demand)
		}
	}

	if rules.WeekendLimit && hasWeekendRole {
		weekendWeeks := weeks
		capacity := len(team) * maxWeekends
		if capacity < weekendWeeks {
			return nil, apperr.NewCapacityError(
				"insufficient weekend capacity: %d engineers × %d max weekends/engineer = %d available, but %d weekend weeks required",
				len(team), maxWeekends, capacity, weekendWeeks)
		}
	}

	return m, nil
}
