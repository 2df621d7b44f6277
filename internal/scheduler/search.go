package scheduler

import (
	"context"
	"math/rand"

	"github.com/onduty-eng/oncall-roster/internal/domain"
)

// Status mirrors the three-way outcome CP-SAT would report for a model:
// a satisfying assignment was found, none exists, or the search ran out
// of its wall-clock budget before it could decide either way.
type Status int

const (
	StatusFeasible Status = iota
	StatusInfeasible
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// timeoutCheckInterval bounds how often the search polls ctx.Err(),
// trading a little latency-past-deadline for not paying a context-switch
// cost at every single node.
const timeoutCheckInterval = 2048

// Solve runs the exact backtracking search described in model.go's
// package comment, bounded by ctx. The search is deterministic for a
// fixed seed: candidate engineers are tried in a single
// seed-derived shuffle order, fixed for the whole search, rather than
// re-randomized per node.
//
// The returned Assignment is block-local: every key's Block field is
// zero. The caller (internal/orchestrator) is responsible for stamping
// in the real block index when it merges results across blocks.
func Solve(ctx context.Context, m *Model, seed int64) (Status, domain.Assignment, error) {
	s := &search{
		m:            m,
		slots:        m.Slots(),
		candidates:   shuffledTeam(m.Team, seed),
		totalShifts:  make(map[domain.Engineer]int, len(m.Team)),
		weekendCount: make(map[domain.Engineer]int, len(m.Team)),
		weekWorkers:  make([]map[domain.Engineer]bool, m.Weeks),
		assignment:   make(domain.Assignment),
		nodes:        0,
	}
	for w := range s.weekWorkers {
		s.weekWorkers[w] = make(map[domain.Engineer]bool)
	}

	ok, timedOut := s.assign(ctx, 0)
	switch {
	case timedOut:
		return StatusTimeout, nil, nil
	case ok:
		return StatusFeasible, s.assignment, nil
	default:
		return StatusInfeasible, nil, nil
	}
}

func shuffledTeam(team domain.Team, seed int64) []domain.Engineer {
	order := make([]domain.Engineer, len(team))
	copy(order, team)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

type search struct {
	m          *Model
	slots      []Slot
	candidates []domain.Engineer

	totalShifts  map[domain.Engineer]int
	weekendCount map[domain.Engineer]int
	weekWorkers  []map[domain.Engineer]bool
	assignment   domain.Assignment

	nodes int
}

// assign tries to fill slots[index:] to the end. It returns (true, false)
// on success, (false, false) on exhausted search (infeasible), and
// (false, true) if ctx expired mid-search.
func (s *search) assign(ctx context.Context, index int) (bool, bool) {
	if index == len(s.slots) {
		return true, false
	}

	s.nodes++
	if s.nodes%timeoutCheckInterval == 0 {
		select {
		case <-ctx.Done():
			return false, true
		default:
		}
	}

	slot := s.slots[index]

	for _, e := range s.candidates {
		if !s.eligible(e, slot) {
			continue
		}

		s.place(e, slot)
		ok, timedOut := s.assign(ctx, index+1)
		if timedOut {
			s.unplace(e, slot)
			return false, true
		}
		if ok {
			return true, false
		}
		s.unplace(e, slot)
	}

	if !s.m.Rules.RosterCompleteness {
		// Leaving the slot empty is a valid branch in the degenerate
		// "allow gaps" mode.
		return s.assign(ctx, index+1)
	}

	return false, false
}

func (s *search) eligible(e domain.Engineer, slot Slot) bool {
	if s.m.forbiddenByAvailability(e, slot.Week) {
		return false
	}
	if s.m.forbiddenByContinuity(e, slot.Week) {
		return false
	}
	if s.m.Rules.RoleSeparation && s.weekWorkers[slot.Week][e] {
		return false
	}
	if s.m.Rules.NoConsecutiveWeeks {
		if slot.Week > 0 && s.weekWorkers[slot.Week-1][e] {
			return false
		}
	}
	if s.m.Rules.MaxWorkload && s.totalShifts[e] >= s.m.MaxShiftsPerEngineer {
		return false
	}
	if s.m.Rules.WeekendLimit && s.m.HasWeekendRole && slot.Role == s.m.WeekendRole {
		if s.weekendCount[e] >= s.m.MaxWeekendsPerEngineer {
			return false
		}
	}
	return true
}

func (s *search) place(e domain.Engineer, slot Slot) {
	s.assignment[domain.AssignmentKey{Week: slot.Week, Role: slot.Role}] = e
	s.totalShifts[e]++
	s.weekWorkers[slot.Week][e] = true
	if s.m.HasWeekendRole && slot.Role == s.m.WeekendRole {
		s.weekendCount[e]++
	}
}

func (s *search) unplace(e domain.Engineer, slot Slot) {
	delete(s.assignment, domain.AssignmentKey{Week: slot.Week, Role: slot.Role})
	s.totalShifts[e]--
	// Only clear weekWorkers if no other role this week still has e —
	// relevant when role_separation is off and an engineer can legally
	// hold more than one role in the same week.
	if !s.stillWorksWeek(e, slot.Week) {
		delete(s.weekWorkers[slot.Week], e)
	}
	if s.m.HasWeekendRole && slot.Role == s.m.WeekendRole {
		s.weekendCount[e]--
	}
}

func (s *search) stillWorksWeek(e domain.Engineer, week int) bool {
	for _, role := range s.m.Roles {
		if v, ok := s.assignment[domain.AssignmentKey{Week: week, Role: role.ID}]; ok && v == e {
			return true
		}
	}
	return false
}
