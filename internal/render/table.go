// Package render prints reconciled day reports as terminal tables.
// The layout mirrors the two-sided comparison: Toggl columns on the
// left, Jira columns on the right, matched rows sharing a line.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tbraun/toggl-jira-reconciler/internal/model"
	"github.com/tbraun/toggl-jira-reconciler/internal/timecalc"
)

const (
	idWidth   = 10
	textWidth = 32
	timeWidth = 8
)

var (
	dateStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Faint(true)
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	totalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// IssueURL builds the browse URL for an issue key on the given site.
func IssueURL(host, issueKey string) string {
	return strings.TrimRight(host, "/") + "/browse/" + issueKey
}

// cell pads or truncates s to exactly width display columns.
func cell(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// side renders the ID/text/time cells for one half of a row. A nil
// group renders as blanks so unmatched rows stay aligned.
func side(group *model.ReportGroup, timeFirst bool) []string {
	id, text, duration := "", "", ""
	if group != nil {
		id = group.TaskID
		text = group.Description
		duration = timecalc.FormatDurationHHMMSS(group.Duration)
	}
	idCell := idStyle.Render(cell(id, idWidth))
	if timeFirst {
		return []string{cell(duration, timeWidth), cell(text, textWidth), idCell}
	}
	return []string{idCell, cell(text, textWidth), cell(duration, timeWidth)}
}

// Table writes one section per day report to w.
func Table(w io.Writer, reports []model.DayReport) {
	if len(reports) == 0 {
		fmt.Fprintln(w, "No worklogs or time entries found.")
		return
	}

	header := strings.Join([]string{
		cell("ID", idWidth),
		cell("TOGGL", textWidth),
		cell("TIME", timeWidth),
		cell("TIME", timeWidth),
		cell("JIRA", textWidth),
		cell("ID", idWidth),
	}, "  ")

	for i, day := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		totals := fmt.Sprintf("toggl %s · jira %s",
			timecalc.FormatDurationHHMMSS(day.TogglDuration),
			timecalc.FormatDurationHHMMSS(day.JiraDuration))
		fmt.Fprintf(w, "%s  %s\n", dateStyle.Render(day.Date), totalStyle.Render(totals))
		fmt.Fprintln(w, headerStyle.Render(header))

		for _, pair := range day.Pairs {
			cells := append(side(pair.Toggl, false), side(pair.Jira, true)...)
			fmt.Fprintln(w, strings.Join(cells, "  "))
		}
	}
}
