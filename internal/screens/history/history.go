package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/studyhub/studydesk/internal/screen"
	"github.com/studyhub/studydesk/internal/store"
	"github.com/studyhub/studydesk/internal/ui/layout"
	"github.com/studyhub/studydesk/internal/ui/theme"
)

type historyLoadedMsg struct {
	Sessions []store.SessionEvent
	Err      error
}

type outcomesLoadedMsg struct {
	SessionID string
	Outcomes  []store.OutcomeEvent
	Err       error
}

// HistoryScreen displays finished review sessions, newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionEvent
	outcomes  map[string][]store.OutcomeEvent // sessionID → outcomes
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		outcomes:  make(map[string][]store.OutcomeEvent),
		expanded:  make(map[int]bool),
	}
}

// Finished returns the "end" events of the most recent sessions.
func Finished(ctx context.Context, repo store.EventRepo, limit int) ([]store.SessionEvent, error) {
	events, err := repo.QuerySessionEvents(ctx, store.QueryOpts{Newest: true})
	if err != nil {
		return nil, err
	}
	var out []store.SessionEvent
	for _, e := range events {
		if e.Action != "end" {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		sessions, err := Finished(context.Background(), repo, 50)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) loadOutcomes(sessionID string) tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		out, err := repo.QueryOutcomeEvents(context.Background(), sessionID)
		return outcomesLoadedMsg{SessionID: sessionID, Outcomes: out, Err: err}
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case outcomesLoadedMsg:
		if msg.Err == nil {
			s.outcomes[msg.SessionID] = msg.Outcomes
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if s.selected >= len(s.sessions) {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			id := s.sessions[s.selected].SessionID
			if _, ok := s.outcomes[id]; s.expanded[s.selected] && !ok {
				return s, s.loadOutcomes(id)
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Centered(width, theme.Error, fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return layout.Centered(width, theme.TextDim, "\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Open a study guide to start!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(prefix+FormatSession(sess))))
		b.WriteString("\n")

		if !s.expanded[i] {
			continue
		}
		outcomes, ok := s.outcomes[sess.SessionID]
		switch {
		case !ok:
			b.WriteString(dimLine(width, "    Loading..."))
		case len(outcomes) == 0:
			b.WriteString(dimLine(width, "    No answers recorded"))
		default:
			for _, o := range outcomes {
				line := fmt.Sprintf("    #%d %s", o.ItemID+1, o.Outcome)
				if o.Answer != "" {
					line += fmt.Sprintf(" (answered %s)", o.Answer)
				}
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(outcomeColor(o.Outcome)).Render(line)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

// FormatSession renders one finished session as a single line.
func FormatSession(sess store.SessionEvent) string {
	dateStr := sess.Timestamp.Local().Format("Jan 02, 2006")
	durationStr := fmt.Sprintf("%d:%02d", sess.DurationSecs/60, sess.DurationSecs%60)
	title := sess.GuideTitle
	if sess.DifficultOnly {
		title += " (difficult)"
	}
	noun := "correct"
	if sess.Kind == "flashcards" {
		noun = "mastered"
	}
	return fmt.Sprintf("%s  %s  %s  %d/%d %s  %d%%",
		dateStr, durationStr, title, sess.CorrectOrMastered, sess.Total, noun, sess.PctCorrect)
}

func dimLine(width int, text string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(text)) + "\n"
}

func outcomeColor(outcome string) color.Color {
	switch outcome {
	case "correct", "mastered":
		return theme.Success
	case "incorrect", "learning":
		return theme.Error
	default:
		return theme.Text
	}
}
