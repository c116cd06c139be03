package calendar

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/studyhub/studydesk/internal/api"
	"github.com/studyhub/studydesk/internal/calendar"
	"github.com/studyhub/studydesk/internal/ui/layout"
	"github.com/studyhub/studydesk/internal/ui/theme"
)

var weekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (s *CalendarScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, s.renderNavBar(width))
	if s.search.Focused() || s.search.Query() != "" {
		sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, s.search.View()))
	}

	switch {
	case s.search.Query() != "":
		sections = append(sections, s.renderSearchResults(width))
	case s.errMsg != "":
		sections = append(sections, layout.Centered(width, theme.Error, "\nError: "+s.errMsg))
	case s.loading && s.assignments == nil:
		sections = append(sections, layout.Centered(width, theme.TextDim, "\nLoading assignments..."))
	case s.nav.Mode == calendar.ViewMonth && layout.IsCompactHeight(height):
		// Not enough room for the list; the selection still moves through it.
		sections = append(sections, s.renderMonth(width), s.renderSelection(width))
	case s.nav.Mode == calendar.ViewMonth:
		sections = append(sections, s.renderMonth(width), s.renderList(width, s.assignments))
	default:
		sections = append(sections, s.renderDays(width))
	}

	if s.status != "" {
		sections = append(sections, layout.Centered(width, theme.Accent, s.status))
	}
	return strings.Join(sections, "\n")
}

func (s *CalendarScreen) renderNavBar(width int) string {
	label := theme.Title.Render("‹  " + s.nav.Label() + "  ›")

	var modes []string
	for _, m := range calendar.Modes {
		if m == s.nav.Mode {
			modes = append(modes, theme.ButtonActive.Render(m.Title()))
		} else {
			modes = append(modes, theme.ButtonInactive.Render(m.Title()))
		}
	}
	switcher := lipgloss.JoinHorizontal(lipgloss.Top, modes...)

	bar := lipgloss.JoinVertical(lipgloss.Center, label, switcher)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+bar+"\n")
}

func (s *CalendarScreen) renderMonth(width int) string {
	r := s.nav.Range()
	due := s.dueOn()
	today := calendar.Date(s.env.Clock())
	cellWidth := max(min((width-4)/7, 12), 5)
	cell := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)

	var rows []string
	var head []string
	for _, name := range weekdayNames {
		head = append(head, cell.Foreground(theme.TextDim).Render(name))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, head...))

	for _, week := range calendar.Grid(r) {
		var cells []string
		for _, d := range week {
			day := fmt.Sprintf("%2d", d.Day())
			switch {
			case calendar.SameDay(d, today):
				day = theme.Today.Render(day)
			case !r.Contains(d):
				cells = append(cells, cell.Render(theme.OutsideMonth.Render(day)))
				continue
			}
			if n := len(due[dayKey(d)]); n > 0 {
				day += theme.DueBadge.Render(fmt.Sprintf(" •%d", n))
			}
			cells = append(cells, cell.Render(day))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, grid)
}

// renderDays lists each day of the range with the assignments due on it.
func (s *CalendarScreen) renderDays(width int) string {
	due := s.dueOn()
	today := calendar.Date(s.env.Clock())
	sel, hasSel := s.selectedAssignment()

	var b strings.Builder
	for _, d := range s.nav.Range().Dates() {
		heading := d.Format("Mon Jan 2")
		style := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
		if calendar.SameDay(d, today) {
			heading += "  (today)"
			style = style.Foreground(theme.Accent)
		}
		b.WriteString("\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(heading)) + "\n")

		items := due[dayKey(d)]
		if len(items) == 0 {
			b.WriteString(layout.Centered(width, theme.TextDim, "nothing due") + "\n")
			continue
		}
		for _, a := range items {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				assignmentLine(a, hasSel && a.ID == sel.ID)) + "\n")
		}
	}
	return b.String()
}

func (s *CalendarScreen) renderList(width int, items []api.Assignment) string {
	if len(items) == 0 {
		return layout.Centered(width, theme.TextDim, "\nNo assignments due")
	}
	var b strings.Builder
	b.WriteString(layout.Centered(width, theme.TextDim, "\n"+countLabel(len(items))) + "\n")
	for i, a := range items {
		line := a.Due.Format("Jan 02") + "  " + assignmentLine(a, i == s.selected)
		if rel := relativeDue(s.env.Clock(), a.Due); rel != "" {
			line += "  " + theme.DueBadge.Render(rel)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line) + "\n")
	}
	return b.String()
}

func (s *CalendarScreen) renderSelection(width int) string {
	a, ok := s.selectedAssignment()
	if !ok {
		return layout.Centered(width, theme.TextDim, "\nNo assignments due")
	}
	line := fmt.Sprintf("%d/%d  %s  %s", s.selected+1, len(s.assignments), a.Due.Format("Jan 02"), assignmentLine(a, true))
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}

func (s *CalendarScreen) renderSearchResults(width int) string {
	if s.searching {
		return layout.Centered(width, theme.TextDim, "\nSearching...")
	}
	if len(s.results) == 0 {
		return layout.Centered(width, theme.TextDim, fmt.Sprintf("\nNo assignments match %q", s.search.Query()))
	}
	return s.renderList(width, s.results)
}

func assignmentLine(a api.Assignment, selected bool) string {
	line := a.Title
	if a.CourseName != "" {
		line += "  " + theme.Hint.Render(a.CourseName)
	}
	if selected {
		return theme.Selected.Render("▸ ") + theme.Selected.Render(a.Title) + strings.TrimPrefix(line, a.Title)
	}
	return "  " + line
}

// relativeDue describes due dates in the coming week relative to now.
func relativeDue(now, due time.Time) string {
	switch n := calendar.DaysBetween(now, due); {
	case n == 0:
		return "due today"
	case n == 1:
		return "due tomorrow"
	case n > 1 && n < 7:
		return fmt.Sprintf("due in %d days", n)
	case n < 0:
		return "past due"
	}
	return ""
}
