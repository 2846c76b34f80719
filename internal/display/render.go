// Package display renders daylists and agendas for the terminal.
package display

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	model "todaygenda.com/todaygenda/internal/models"
	"todaygenda.com/todaygenda/pkg/duration"
)

const clockLayout = "Mon 03:04 PM"

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderList shows the pending queue with the start times from agenda,
// followed by the done tasks and a summary. Numbers are the 1-based positions
// the CLI commands accept.
func RenderList(list *model.Daylist, agenda model.Agenda, now time.Time, loc *time.Location) string {
	lines := []string{headerStyle.Render("Today")}
	if len(list.Pending) == 0 {
		lines = append(lines, mutedStyle.Render("Nothing left to do."))
	} else {
		rows := make([][]string, 0, len(list.Pending))
		for i, task := range list.Pending {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				task.Title,
				duration.Format(task.Estimate),
				agenda.Timeline[i].Start.In(loc).Format(clockLayout),
			})
		}
		lines = append(lines, newTable("#", "Task", "Estimate", "Start").Rows(rows...).String())
	}

	if len(list.Done) > 0 {
		lines = append(lines, headerStyle.Render("Done"))
		for i, task := range list.Done {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, doneStyle.Render(task.Title)))
		}
	}

	lines = append(lines,
		summaryStyle.Render(fmt.Sprintf(
			"Total: %s  Done: %d  Now: %s  Finish: %s",
			orDash(duration.Format(list.TotalEstimate())),
			len(list.Done),
			now.In(loc).Format(clockLayout),
			agenda.Finish.In(loc).Format(clockLayout),
		)),
	)
	if agenda.PastExpiry {
		lines = append(lines, expiryWarning(list.Expiry, loc))
	}

	return strings.Join(lines, "\n")
}

// RenderAgenda shows the projected timeline.
func RenderAgenda(agenda model.Agenda, loc *time.Location) string {
	lines := []string{headerStyle.Render("Agenda")}

	if len(agenda.Timeline) == 0 {
		lines = append(lines, mutedStyle.Render("Nothing scheduled."))
	} else {
		rows := make([][]string, 0, len(agenda.Timeline))
		for _, item := range agenda.Timeline {
			rows = append(rows, []string{
				item.Start.In(loc).Format(clockLayout),
				item.End.In(loc).Format(clockLayout),
				item.Title,
			})
		}
		lines = append(lines, newTable("Start", "End", "Task").Rows(rows...).String())
	}

	lines = append(lines, summaryStyle.Render("Finish: "+agenda.Finish.In(loc).Format(clockLayout)))
	if agenda.PastExpiry {
		lines = append(lines, expiryWarning(agenda.Expiry, loc))
	}

	return strings.Join(lines, "\n")
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func expiryWarning(expiry time.Time, loc *time.Location) string {
	return warningStyle.Render("Warning: this runs past the list's expiry at " + expiry.In(loc).Format(clockLayout))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
