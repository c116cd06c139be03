package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/studyhub/studydesk/internal/calendar"
	"github.com/studyhub/studydesk/internal/router"
	"github.com/studyhub/studydesk/internal/screen"
	calendarscreen "github.com/studyhub/studydesk/internal/screens/calendar"
	"github.com/studyhub/studydesk/internal/screens/guides"
	"github.com/studyhub/studydesk/internal/screens/history"
	"github.com/studyhub/studydesk/internal/screens/notice"
	"github.com/studyhub/studydesk/internal/ui/components"
	"github.com/studyhub/studydesk/internal/ui/layout"
	"github.com/studyhub/studydesk/internal/ui/theme"
)

type statsLoadedMsg struct {
	Sessions int
	AvgPct   int
}

// HomeScreen is the main menu.
type HomeScreen struct {
	env      *screen.Env
	menu     components.Menu
	sessions int
	avgPct   int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. Calendar opens in mode.
func New(env *screen.Env, mode calendar.ViewMode) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Study Guides", Hint: "quizzes and flashcards", Action: func() tea.Cmd {
			return router.Push(guides.New(env))
		}},
		{Label: "Calendar", Hint: "assignments due", Action: func() tea.Cmd {
			if env.Assignments == nil {
				return router.Push(notice.Text("Calendar", "The calendar needs a backend.\n\nSet STUDYDESK_API_URL or pass --api-url."))
			}
			return router.Push(calendarscreen.New(env, mode))
		}},
		{Label: "History", Hint: "past sessions", Disabled: env.Events == nil, Action: func() tea.Cmd {
			return router.Push(history.New(env.Events))
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	return &HomeScreen{env: env, menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	repo := h.env.Events
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		done, err := history.Finished(context.Background(), repo, 0)
		if err != nil || len(done) == 0 {
			return statsLoadedMsg{}
		}
		total := 0
		for _, e := range done {
			total += e.PctCorrect
		}
		return statsLoadedMsg{Sessions: len(done), AvgPct: total / len(done)}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(statsLoadedMsg); ok {
		h.sessions, h.avgPct = m.Sessions, m.AvgPct
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := contentWidth(width)

	sections := []string{
		renderTitle(cw, layout.IsCompactWidth(width)),
		renderStatsBar(h.sessions, h.avgPct, h.env.Handoff != nil && h.env.Handoff.Pending(), cw),
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(h.menu.View()),
	}
	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func contentWidth(frameWidth int) int {
	return max(min(frameWidth-6, 60), 20)
}

func renderTitle(cw int, compact bool) string {
	title := theme.Title.Width(cw).Render("S T U D Y D E S K")
	if compact {
		return title
	}
	sub := theme.Subtitle.Width(cw).Render("review smarter, one card at a time")
	return title + "\n" + sub
}

func renderStatsBar(sessions, avgPct int, pending bool, cw int) string {
	countStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	pctStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if sessions == 0 {
		stats = dimStyle.Render("No sessions yet")
	} else {
		stats = fmt.Sprintf("%s  %s",
			countStyle.Render(fmt.Sprintf("%d SESSIONS", sessions)),
			pctStyle.Render(fmt.Sprintf("%d%% AVERAGE", avgPct)),
		)
	}
	if pending {
		stats += "  " + theme.DueBadge.Render("1 REQUEST PENDING")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}
