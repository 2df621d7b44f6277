// Package orchestrator implements the Block Orchestrator from spec §4.5:
// it runs the calendar mapper, availability resolver, constraint model
// builder, and block solver once per block in sequence, threading
// cross-block continuity forbids, and concatenates the results.
package orchestrator

import (
	"context"
	"time"

	"github.com/onduty-eng/oncall-roster/internal/apperr"
	"github.com/onduty-eng/oncall-roster/internal/availability"
	"github.com/onduty-eng/oncall-roster/internal/calendar"
	"github.com/onduty-eng/oncall-roster/internal/config"
	"github.com/onduty-eng/oncall-roster/internal/domain"
	"github.com/onduty-eng/oncall-roster/internal/scheduler"
)

// Result is the final product of a run: every Shift across every block,
// plus enough bookkeeping for the console summary.
type Result struct {
	Shifts       []domain.Shift
	BlocksSolved int
}

// Run executes the block-decomposition protocol across cfg.NumBlocks
// blocks. On the first Infeasible or Timeout it aborts the whole run with
// that error — no partial output is ever returned, per spec §4.5 step 5.
func Run(ctx context.Context, cfg *config.Config, records []domain.UnavailabilityRecord) (*Result, []string, error) {
	roles := make([]domain.Role, len(cfg.RoleOrder))
	for i, id := range cfg.RoleOrder {
		roles[i] = cfg.Roles[id]
	}

	var allShifts []domain.Shift
	var warnings []string
	var continuityForbidden []domain.Engineer

	for k := 0; k < cfg.NumBlocks; k++ {
		block := domain.Block{
			Index: k,
			Start: cfg.StartDate.AddDate(0, 0, 7*cfg.WeeksPerBlock*k),
			Weeks: cfg.WeeksPerBlock,
		}
		weeks := make([]domain.Week, block.Weeks)
		for w := range weeks {
			weeks[w] = block.Week(w)
		}

		pairs, warns := availability.Resolve(cfg.Team, records, weeks)
		warnings = append(warnings, warns...)

		model, err := scheduler.BuildModel(
			cfg.Team, roles, block.Weeks,
			pairs, continuityForbidden,
			cfg.Rules,
			cfg.MaxShiftsPerEngineer, cfg.MaxWeekendsPerEngineer,
			cfg.WeekendRole, cfg.HasWeekendRole,
		)
		if err != nil {
			return nil, warnings, err
		}

		solveCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.TimeoutSeconds*float64(time.Second)))
		status, assignment, err := scheduler.Solve(solveCtx, model, int64(k))
		cancel()
		if err != nil {
			return nil, warnings, err
		}

		switch status {
		case scheduler.StatusInfeasible:
			return nil, warnings, &apperr.InfeasibleError{Block: k}
		case scheduler.StatusTimeout:
			return nil, warnings, &apperr.TimeoutError{Block: k, Seconds: cfg.TimeoutSeconds}
		}

		allShifts = append(allShifts, extractShifts(weeks, roles, assignment, k*cfg.WeeksPerBlock)...)

		if cfg.Rules.NoConsecutiveWeeks {
			continuityForbidden = lastWeekWorkers(block.Weeks-1, roles, assignment)
		}
	}

	return &Result{Shifts: allShifts, BlocksSolved: cfg.NumBlocks}, warnings, nil
}

// extractShifts turns one block's Assignment into concrete Shifts, in
// (week, role, schedule-entry, weekday) order per spec §5. Slots left
// unassigned (possible only when roster_completeness is disabled) are
// simply omitted.
func extractShifts(weeks []domain.Week, roles []domain.Role, assignment domain.Assignment, globalWeekBase int) []domain.Shift {
	var shifts []domain.Shift
	for _, week := range weeks {
		for _, role := range roles {
			engineer, ok := assignment[domain.AssignmentKey{Week: week.Index, Role: role.ID}]
			if !ok {
				continue
			}
			for _, shift := range calendar.ShiftsForWeek(week, role) {
				shift.Engineer = engineer
				shift.GlobalWeek = globalWeekBase + week.Index
				shifts = append(shifts, shift)
			}
		}
	}
	return shifts
}

func lastWeekWorkers(lastWeek int, roles []domain.Role, assignment domain.Assignment) []domain.Engineer {
	var workers []domain.Engineer
	for _, role := range roles {
		if e, ok := assignment[domain.AssignmentKey{Week: lastWeek, Role: role.ID}]; ok {
			workers = append(workers, e)
		}
	}
	return workers
}
