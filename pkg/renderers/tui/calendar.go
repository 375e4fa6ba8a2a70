package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-formkit/pkg/style"
	"github.com/goliatone/go-formkit/pkg/widgets/calendar"
)

const cellWidth = 4

// MonthView draws the displayed month of cal as a seven column grid.
func MonthView(cal *calendar.Calendar, theme Theme) string {
	grid := cal.Grid()
	cell := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Right)

	headers := make([]string, 0, len(grid.Headers))
	for _, h := range grid.Headers {
		headers = append(headers, cell.Render(theme.Header.Render(h.Label)))
	}

	rows := []string{
		theme.Title.Render(grid.Title),
		lipgloss.JoinHorizontal(lipgloss.Top, headers...),
	}
	week := make([]string, 0, 7)
	for i := 0; i < grid.Blanks; i++ {
		week = append(week, cell.Render(""))
	}
	for _, c := range grid.Cells {
		week = append(week, cell.Render(dayStyle(theme, c.Variant).Render(fmt.Sprint(c.Day))))
		if len(week) == 7 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, week...))
			week = week[:0]
		}
	}
	if len(week) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, week...))
	}
	return strings.TrimRight(lipgloss.JoinVertical(lipgloss.Left, rows...), "\n")
}

func dayStyle(theme Theme, variant style.DayVariant) lipgloss.Style {
	switch variant {
	case style.DaySelected:
		return theme.Selected
	case style.DayToday:
		return theme.Today
	case style.DayDisabled:
		return theme.Disabled
	case style.DayWeekend:
		return theme.Weekend
	case style.DayHighlighted:
		return theme.Title
	default:
		return theme.Day
	}
}
