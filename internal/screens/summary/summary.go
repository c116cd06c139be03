package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/studyhub/studydesk/internal/router"
	"github.com/studyhub/studydesk/internal/screen"
	"github.com/studyhub/studydesk/internal/study"
	"github.com/studyhub/studydesk/internal/ui/components"
	"github.com/studyhub/studydesk/internal/ui/layout"
	"github.com/studyhub/studydesk/internal/ui/theme"
)

// Result describes a finished session.
type Result struct {
	GuideTitle    string
	Kind          study.Kind
	Summary       study.Summary
	Duration      time.Duration
	DifficultOnly bool
}

// Actions are the follow-ups the summary offers. A nil ReviewDifficult
// hides that button.
type Actions struct {
	ReviewDifficult func() tea.Cmd
	StartOver       func() tea.Cmd
}

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	result  Result
	buttons components.ButtonRow
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result Result, actions Actions) *SummaryScreen {
	var buttons []components.Button
	if actions.ReviewDifficult != nil && result.Summary.CanReviewDifficult() {
		buttons = append(buttons, components.Button{Label: "Review Difficult", OnPress: actions.ReviewDifficult})
	}
	if actions.StartOver != nil {
		buttons = append(buttons, components.Button{Label: "Start Over", OnPress: actions.StartOver})
	}
	buttons = append(buttons, components.Button{Label: "Done", OnPress: func() tea.Cmd { return router.Pop }})

	return &SummaryScreen{result: result, buttons: components.NewButtonRow(buttons...)}
}

// Buttons returns the labels of the offered follow-ups in order.
func (s *SummaryScreen) Buttons() []string {
	labels := make([]string, len(s.buttons.Buttons))
	for i, b := range s.buttons.Buttons {
		labels[i] = b.Label
	}
	return labels
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.buttons, cmd = s.buttons.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	sum := r.Summary

	var b strings.Builder

	heading := "Quiz complete!"
	if r.Kind == study.KindFlashcards {
		heading = "Deck complete!"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(heading))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.TextDim, r.GuideTitle))
	b.WriteString("\n\n")

	mins := int(r.Duration.Minutes())
	secs := int(r.Duration.Seconds()) % 60
	b.WriteString(layout.Centered(width, theme.TextDim, fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	scoreNoun, difficultNoun := "Correct", "Incorrect"
	if r.Kind == study.KindFlashcards {
		scoreNoun, difficultNoun = "Got it", "Still learning"
	}
	stats := fmt.Sprintf("Total: %d        %s: %d        %s: %d        Score: %d%%",
		sum.Total, scoreNoun, sum.CorrectOrMastered, difficultNoun, sum.DifficultCount, sum.PctCorrect)
	b.WriteString(layout.Centered(width, theme.Text, stats))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("", sum.CorrectOrMastered, sum.Total, min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")
	b.WriteString(layout.Divider(width))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.buttons.View()))
	return b.String()
}
