package validate

import (
	"testing"

	"github.com/onduty-eng/oncall-roster/internal/config"
	"github.com/onduty-eng/oncall-roster/internal/domain"
)

func baseConfig() *config.Config {
	return &config.Config{
		Team:          domain.Team{"alice", "bob", "carol"},
		NumBlocks:     1,
		WeeksPerBlock: 6,
		RoleOrder:     []domain.RoleID{"D", "N"},
		Roles: map[domain.RoleID]domain.Role{
			"D": {ID: "D", Name: "Day", Schedule: []domain.ScheduleEntry{{Days: []domain.Weekday{domain.Monday}}}},
			"N": {ID: "N", Name: "Night", Schedule: []domain.ScheduleEntry{{Days: []domain.Weekday{domain.Monday}}}},
		},
		MaxShiftsPerEngineer:   3,
		MaxWeekendsPerEngineer: 1,
		Rules:                  domain.Rules{RosterCompleteness: true, MaxWorkload: true},
	}
}

func TestCheckTeamDuplicateEngineer(t *testing.T) {
	cfg := baseConfig()
	cfg.Team = domain.Team{"alice", "alice"}

	problems := checkTeam(cfg)
	if !HasErrors(problems) {
		t.Fatal("expected an error for a duplicate engineer name")
	}
}

func TestCheckRolesMissingSchedule(t *testing.T) {
	cfg := baseConfig()
	cfg.Roles["D"] = domain.Role{ID: "D", Name: "Day"}

	problems := checkRoles(cfg)
	if !HasErrors(problems) {
		t.Fatal("expected an error for a role with no schedule entries")
	}
}

func TestCheckRolesUnknownWeekendRole(t *testing.T) {
	cfg := baseConfig()
	cfg.HasWeekendRole = true
	cfg.WeekendRole = "nonexistent"

	problems := checkRoles(cfg)
	if !HasErrors(problems) {
		t.Fatal("expected an error for weekend_role naming a missing role")
	}
}

func TestCheckCapacityInsufficientWorkload(t *testing.T) {
	// Scenario F: 3 engineers, 2 roles, 6 weeks, max_shifts_per_engineer=3.
	// Capacity 9 < demand 12.
	cfg := baseConfig()

	problems := checkCapacity(cfg)
	if !HasErrors(problems) {
		t.Fatal("expected a capacity error matching spec Scenario F")
	}
}

func TestCheckCapacitySufficientWorkload(t *testing.T) {
	cfg := baseConfig()
	cfg.MaxShiftsPerEngineer = 4 // 3*4=12 >= 12

	problems := checkCapacity(cfg)
	if HasErrors(problems) {
		t.Fatalf("unexpected capacity error: %v", problems)
	}
}

func TestCheckUnavailabilityUnknownEngineerWarns(t *testing.T) {
	cfg := baseConfig()
	records := []domain.UnavailabilityRecord{{Engineer: "mallory"}}

	problems := checkUnavailability(cfg, records)
	if HasErrors(problems) {
		t.Fatal("an unknown-engineer unavailability record must be a warning, not an error")
	}
	if len(problems) != 1 {
		t.Fatalf("got %d problems, want 1 warning", len(problems))
	}
}

func TestRunAggregatesAllChecks(t *testing.T) {
	cfg := baseConfig()
	cfg.Team = append(cfg.Team, cfg.Team[0]) // duplicate -> checkTeam error
	problems := Run(cfg, nil)
	if !HasErrors(problems) {
		t.Fatal("expected Run to surface the checkTeam error")
	}
}
