// Package report renders the Validator's findings and a generated
// schedule for the terminal, styled with charmbracelet/lipgloss the way
// the corpus's TUI code styles its own panels.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/onduty-eng/oncall-roster/internal/domain"
	"github.com/onduty-eng/oncall-roster/internal/validate"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// RenderProblems formats every validate.Problem for terminal display,
// in the order Run produced them.
func RenderProblems(problems []validate.Problem) string {
	if len(problems) == 0 {
		return dimStyle.Render("no problems found")
	}

	var lines []string
	for _, p := range problems {
		switch p.Severity {
		case validate.SeverityError:
			lines = append(lines, fmt.Sprintf("%s %s", errorStyle.Render("error:"), p.Message))
		default:
			lines = append(lines, fmt.Sprintf("%s %s", warningStyle.Render("warning:"), p.Message))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderSchedule builds an aligned table of shifts: one row per shift,
// columns Week/Role/Engineer/Start/End, sorted by (GlobalWeek, Role).
func RenderSchedule(shifts []domain.Shift) string {
	rows := make([]domain.Shift, len(shifts))
	copy(rows, shifts)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].GlobalWeek != rows[j].GlobalWeek {
			return rows[i].GlobalWeek < rows[j].GlobalWeek
		}
		return rows[i].Role < rows[j].Role
	})

	cols := []string{"Week", "Role", "Engineer", "Start", "End"}
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = len(c)
	}

	formatted := make([][]string, len(rows))
	for i, s := range rows {
		formatted[i] = []string{
			fmt.Sprintf("%d", s.GlobalWeek+1),
			s.RoleName,
			string(s.Engineer),
			s.Start.Format("Jan 2 15:04"),
			s.End.Format("Jan 2 15:04"),
		}
		for j, cell := range formatted[i] {
			if len(cell) > widths[j] {
				widths[j] = len(cell)
			}
		}
	}

	var lines []string
	lines = append(lines, renderRow(cols, widths, headerStyle))
	for _, row := range formatted {
		lines = append(lines, renderRow(row, widths, lipgloss.NewStyle()))
	}
	return strings.Join(lines, "\n")
}

func renderRow(cells []string, widths []int, style lipgloss.Style) string {
	var b strings.Builder
	for i, cell := range cells {
		b.WriteString(cellStyle.Inherit(style).Width(widths[i] + 2).Render(cell))
	}
	return b.String()
}

// RenderSummary formats the run totals inside a bordered panel, matching
// the corpus's bordered-panel convention for top-level status output.
func RenderSummary(blocksSolved, shiftCount int, warnings []string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1)

	body := fmt.Sprintf("blocks solved: %d\nshifts generated: %d\nwarnings: %d", blocksSolved, shiftCount, len(warnings))

	lines := []string{box.Render(body)}
	for _, warning := range warnings {
		lines = append(lines, fmt.Sprintf("%s %s", warningStyle.Render("warning:"), warning))
	}
	return strings.Join(lines, "\n")
}
