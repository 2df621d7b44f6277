// Package config loads the YAML configuration file described in spec §6
// and resolves it into the typed values the rest of the system consumes.
// Loading surfaces structural problems (bad YAML, unparseable dates,
// unknown weekday tokens, unknown weekend_role) as *apperr.ConfigError
// immediately; deeper semantic checks (capacity, name uniqueness) are the
// job of internal/validate, run as an explicit separate step.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/onduty-eng/oncall-roster/internal/apperr"
	"github.com/onduty-eng/oncall-roster/internal/domain"
)

// validate checks the numeric range invariants that survive resolution —
// the same validator.New()/struct-tag pattern the corpus's HTTP handler
// layer uses for its request bodies (see internal/handler/handler.go).
var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the fully-resolved configuration driving one run.
type Config struct {
	Team Team `validate:"required,min=1"`

	StartDate     time.Time
	NumBlocks     int `validate:"gte=1"`
	WeeksPerBlock int `validate:"gte=1"`
	Zone          *time.Location

	// RoleOrder preserves the order roles appear in the YAML file, since
	// spec §5 requires output ordered "with roles in the order they
	// appear in the config."
	RoleOrder []domain.RoleID
	Roles     map[domain.RoleID]domain.Role

	MaxShiftsPerEngineer   int `validate:"gte=1"`
	MaxWeekendsPerEngineer int `validate:"gte=0"`
	WeekendRole            domain.RoleID
	HasWeekendRole         bool

	Rules domain.Rules

	TimeoutSeconds float64 `validate:"gt=0"`

	Files Files
}

// Team is a thin alias kept separate from domain.Team so config loading
// doesn't need to special-case uniqueness here; internal/validate checks
// that.
type Team = domain.Team

// Files names the input/output paths for the mechanical I/O layers.
type Files struct {
	UnavailabilityCSV string
	ScheduleCSVOutput string
	ICalOutput        string
	ExportFormats     []string
}

// raw mirrors the YAML shape exactly (pointers where "was this key
// present at all" matters) before it is resolved into Config.
type raw struct {
	Team        []string       `yaml:"team"`
	Schedule    *rawSchedule   `yaml:"schedule"`
	Roles       yaml.Node      `yaml:"roles"`
	Constraints *rawConstraint `yaml:"constraints"`
	Rules       *rawRules      `yaml:"rules"`
	Solver      *rawSolver     `yaml:"solver"`
	Files       *rawFiles      `yaml:"files"`
}

type rawSchedule struct {
	StartDate     string `yaml:"start_date"`
	NumBlocks     *int   `yaml:"num_blocks"`
	WeeksPerBlock *int   `yaml:"weeks_per_block"`
	Timezone      string `yaml:"timezone"`
}

type rawScheduleEntry struct {
	Days      []string `yaml:"days"`
	StartTime string   `yaml:"start_time"`
	EndTime   string   `yaml:"end_time"`
	SpanDays  int      `yaml:"span_days"`
}

type rawRole struct {
	Name     string             `yaml:"name"`
	Schedule []rawScheduleEntry `yaml:"schedule"`
}

type rawConstraint struct {
	MaxShiftsPerEngineer   *int   `yaml:"max_shifts_per_engineer"`
	MaxWeekendsPerEngineer *int   `yaml:"max_weekends_per_engineer"`
	WeekendRole            string `yaml:"weekend_role"`
}

type rawRules struct {
	RosterCompleteness *bool `yaml:"roster_completeness"`
	RoleSeparation     *bool `yaml:"role_separation"`
	Availability       *bool `yaml:"availability"`
	NoConsecutiveWeeks *bool `yaml:"no_consecutive_weeks"`
	MaxWorkload        *bool `yaml:"max_workload"`
	WeekendLimit       *bool `yaml:"weekend_limit"`
}

type rawSolver struct {
	TimeoutSeconds *float64 `yaml:"timeout_seconds"`
}

type rawFiles struct {
	UnavailabilityCSV string   `yaml:"unavailability_csv"`
	ScheduleCSVOutput string   `yaml:"schedule_csv_output"`
	ICalOutput        string   `yaml:"ical_output"`
	ExportFormats     []string `yaml:"export_formats"`
}

// Load reads and resolves the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.NewConfigError("reading config file: %v", err)
	}

	var r raw
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, apperr.NewConfigError("parsing config file: %v", err)
	}

	return r.resolve()
}

func (r raw) resolve() (*Config, error) {
	if len(r.Team) == 0 {
		return nil, apperr.NewConfigError("'team' must be a non-empty list")
	}
	team := make(domain.Team, len(r.Team))
	for i, name := range r.Team {
		team[i] = domain.Engineer(name)
	}

	if r.Schedule == nil {
		return nil, apperr.NewConfigError("'schedule' section is required")
	}
	schedule, err := r.Schedule.resolve()
	if err != nil {
		return nil, err
	}

	roleOrder, roles, err := resolveRoles(r.Roles)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return nil, apperr.NewConfigError("'roles' must be a non-empty mapping")
	}

	if r.Constraints == nil {
		return nil, apperr.NewConfigError("'constraints' section is required")
	}
	if r.Constraints.MaxShiftsPerEngineer == nil {
		return nil, apperr.NewConfigError("'constraints.max_shifts_per_engineer' is required")
	}
	if r.Constraints.MaxWeekendsPerEngineer == nil {
		return nil, apperr.NewConfigError("'constraints.max_weekends_per_engineer' is required")
	}
	weekendRole := domain.RoleID(r.Constraints.WeekendRole)
	hasWeekendRole := weekendRole != ""
	if hasWeekendRole {
		if _, ok := roles[weekendRole]; !ok {
			return nil, apperr.NewConfigError("'constraints.weekend_role' %q does not name a configured role", weekendRole)
		}
	}

	if r.Rules == nil {
		return nil, apperr.NewConfigError("'rules' section is required")
	}
	rules, err := r.Rules.resolve()
	if err != nil {
		return nil, err
	}
	if rules.WeekendLimit && !hasWeekendRole {
		return nil, apperr.NewConfigError("rules.weekend_limit is enabled but 'constraints.weekend_role' is not set")
	}
	if !rules.RosterCompleteness && !rules.MaxWorkload {
		return nil, apperr.NewConfigError("rules.roster_completeness and rules.max_workload cannot both be disabled: every slot would be allowed to stay empty with no cap on workload")
	}

	if r.Solver == nil || r.Solver.TimeoutSeconds == nil {
		return nil, apperr.NewConfigError("'solver.timeout_seconds' is required")
	}
	if *r.Solver.TimeoutSeconds <= 0 {
		return nil, apperr.NewConfigError("'solver.timeout_seconds' must be positive")
	}

	if r.Files == nil {
		return nil, apperr.NewConfigError("'files' section is required")
	}

	cfg := &Config{
		Team:                   team,
		StartDate:              schedule.start,
		NumBlocks:              schedule.numBlocks,
		WeeksPerBlock:          schedule.weeksPerBlock,
		Zone:                   schedule.zone,
		RoleOrder:              roleOrder,
		Roles:                  roles,
		MaxShiftsPerEngineer:   *r.Constraints.MaxShiftsPerEngineer,
		MaxWeekendsPerEngineer: *r.Constraints.MaxWeekendsPerEngineer,
		WeekendRole:            weekendRole,
		HasWeekendRole:         hasWeekendRole,
		Rules:                  rules,
		TimeoutSeconds:         *r.Solver.TimeoutSeconds,
		Files: Files{
			UnavailabilityCSV: r.Files.UnavailabilityCSV,
			ScheduleCSVOutput: r.Files.ScheduleCSVOutput,
			ICalOutput:        r.Files.ICalOutput,
			ExportFormats:     r.Files.ExportFormats,
		},
	}

	if err := validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return nil, apperr.NewConfigError("%s", validationErrors[0].Error())
		}
		return nil, apperr.NewConfigError("%v", err)
	}

	return cfg, nil
}

type resolvedSchedule struct {
	start         time.Time
	numBlocks     int
	weeksPerBlock int
	zone          *time.Location
}

func (s *rawSchedule) resolve() (resolvedSchedule, error) {
	var out resolvedSchedule

	if s.StartDate == "" {
		return out, apperr.NewConfigError("'schedule.start_date' is required")
	}
	start, err := time.Parse("2006-01-02", s.StartDate)
	if err != nil {
		return out, apperr.NewConfigError("'schedule.start_date' has invalid date format: %s (expected YYYY-MM-DD)", s.StartDate)
	}

	if s.NumBlocks == nil {
		return out, apperr.NewConfigError("'schedule.num_blocks' is required")
	}
	if *s.NumBlocks < 1 {
		return out, apperr.NewConfigError("'schedule.num_blocks' must be >= 1")
	}

	if s.WeeksPerBlock == nil {
		return out, apperr.NewConfigError("'schedule.weeks_per_block' is required")
	}
	if *s.WeeksPerBlock < 1 {
		return out, apperr.NewConfigError("'schedule.weeks_per_block' must be >= 1")
	}

	if s.Timezone == "" {
		return out, apperr.NewConfigError("'schedule.timezone' is required")
	}
	zone, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return out, apperr.NewConfigError("'schedule.timezone' %q is not a recognized IANA zone: %v", s.Timezone, err)
	}

	out.start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, zone)
	out.numBlocks = *s.NumBlocks
	out.weeksPerBlock = *s.WeeksPerBlock
	out.zone = zone
	return out, nil
}

func (r *rawRules) resolve() (domain.Rules, error) {
	fields := map[string]*bool{
		"roster_completeness":  r.RosterCompleteness,
		"role_separation":      r.RoleSeparation,
		"availability":         r.Availability,
		"no_consecutive_weeks": r.NoConsecutiveWeeks,
		"max_workload":         r.MaxWorkload,
		"weekend_limit":        r.WeekendLimit,
	}
	for name, v := range fields {
		if v == nil {
			return domain.Rules{}, apperr.NewConfigError("'rules.%s' is required (no silent defaults)", name)
		}
	}
	return domain.Rules{
		RosterCompleteness: *r.RosterCompleteness,
		RoleSeparation:     *r.RoleSeparation,
		Availability:       *r.Availability,
		NoConsecutiveWeeks: *r.NoConsecutiveWeeks,
		MaxWorkload:        *r.MaxWorkload,
		WeekendLimit:       *r.WeekendLimit,
	}, nil
}

// resolveRoles decodes the 'roles' mapping by hand, via its yaml.Node
// form, so that declaration order survives — a plain
// map[string]rawRole would scramble it, but spec §5 requires shifts to be
// emitted "with roles in the order they appear in the config."
func resolveRoles(node yaml.Node) ([]domain.RoleID, map[domain.RoleID]domain.Role, error) {
	roles := make(map[domain.RoleID]domain.Role)
	var order []domain.RoleID

	if node.Kind == 0 {
		return order, roles, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, nil, apperr.NewConfigError("'roles' must be a mapping")
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]

		id := domain.RoleID(keyNode.Value)

		var rr rawRole
		if err := valNode.Decode(&rr); err != nil {
			return nil, nil, apperr.NewConfigError("role %q: %v", id, err)
		}
		if len(rr.Schedule) == 0 {
			return nil, nil, apperr.NewConfigError("role %q must have at least one schedule entry", id)
		}

		entries := make([]domain.ScheduleEntry, len(rr.Schedule))
		for j, e := range rr.Schedule {
			entry, err := e.resolve()
			if err != nil {
				return nil, nil, apperr.NewConfigError("role %q schedule entry %d: %v", id, j, err)
			}
			entries[j] = entry
		}

		roles[id] = domain.Role{ID: id, Name: rr.Name, Schedule: entries}
		order = append(order, id)
	}

	return order, roles, nil
}

func (e rawScheduleEntry) resolve() (domain.ScheduleEntry, error) {
	if len(e.Days) == 0 {
		return domain.ScheduleEntry{}, fmt.Errorf("'days' must list at least one weekday")
	}
	days := make([]domain.Weekday, len(e.Days))
	for i, token := range e.Days {
		d, err := domain.ParseWeekday(token)
		if err != nil {
			return domain.ScheduleEntry{}, err
		}
		days[i] = d
	}

	start, err := domain.ParseClockTime(e.StartTime)
	if err != nil {
		return domain.ScheduleEntry{}, fmt.Errorf("start_time: %w", err)
	}
	end, err := domain.ParseClockTime(e.EndTime)
	if err != nil {
		return domain.ScheduleEntry{}, fmt.Errorf("end_time: %w", err)
	}

	span := e.SpanDays
	if span == 0 {
		span = 1
	}
	if span < 1 {
		return domain.ScheduleEntry{}, fmt.Errorf("span_days must be >= 1, got %d", span)
	}

	return domain.ScheduleEntry{Days: days, StartTime: start, EndTime: end, SpanDays: span}, nil
}
