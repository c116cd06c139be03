package review

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/studyhub/studydesk/internal/study"
	"github.com/studyhub/studydesk/internal/ui/components"
	"github.com/studyhub/studydesk/internal/ui/layout"
	"github.com/studyhub/studydesk/internal/ui/theme"
)

func (s *ReviewScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if s.state.Kind == study.KindQuiz {
		b.WriteString(s.renderQuestion(width))
	} else {
		b.WriteString(s.renderCard(width, height))
	}

	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(width, theme.Accent, s.notice))
	}
	return b.String()
}

// renderInfoLine shows position on the left and progress on the right.
func (s *ReviewScreen) renderInfoLine(width int) string {
	st := s.state
	noun := "Question"
	if st.Kind == study.KindFlashcards {
		noun = "Card"
	}
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s %d of %d", noun, st.Index+1, st.Len()))

	bar := components.NewProgressBar("", st.Answered(), st.Len(), min(40, width/3))
	right := bar.View()

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		return left
	}
	return left + strings.Repeat(" ", pad) + right
}

func (s *ReviewScreen) renderQuestion(width int) string {
	st := s.state
	q := st.Current().Question

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt))
	b.WriteString("\n\n")

	opts := components.OptionList{Question: q, Pending: st.Pending, Revealed: st.Revealed}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, opts.View()))

	if !st.Revealed {
		b.WriteString("\n")
		b.WriteString(layout.Centered(width, theme.TextDim, "Select an option, then press Enter"))
		return b.String()
	}

	b.WriteString("\n")
	if st.CurrentOutcome() == study.OutcomeCorrect {
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Inherit(theme.Correct).Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Inherit(theme.Incorrect).
			Render(fmt.Sprintf("Not quite. The answer is %s) %s", q.CorrectLabel, q.Options[q.CorrectLabel])))
	}
	if q.Explanation != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(min(width-8, 80)).Foreground(theme.TextDim).Render(q.Explanation)))
	}
	return b.String()
}

func (s *ReviewScreen) renderCard(width, height int) string {
	st := s.state
	c := st.Current().Card

	cardWidth := min(width-8, 70)
	cardHeight := max(min(height-10, 12), 5)

	var card string
	if st.Revealed {
		card = theme.CardBack.Width(cardWidth).Height(cardHeight).Render(c.Back)
	} else {
		card = theme.CardFront.Width(cardWidth).Height(cardHeight).Render(c.Front)
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	status := st.CurrentOutcome().Label(study.KindFlashcards)
	color := theme.TextDim
	switch st.CurrentOutcome() {
	case study.OutcomeMastered:
		status, color = "got it", theme.Success
	case study.OutcomeLearning:
		status, color = "still learning", theme.Accent
	}
	side := "front"
	if st.Revealed {
		side = "back"
	}
	b.WriteString(layout.Centered(width, color, fmt.Sprintf("%s · %s", side, status)))
	return b.String()
}
