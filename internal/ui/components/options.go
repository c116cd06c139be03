package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/studyhub/studydesk/internal/study"
	"github.com/studyhub/studydesk/internal/ui/theme"
)

// OptionList renders the labelled options of a quiz question.
//
// Before the answer is revealed the pending option is highlighted. After,
// the correct option is green and a wrong pending choice is red.
type OptionList struct {
	Question study.Question
	Pending  string
	Revealed bool
}

// View renders one line per option in label order.
func (o OptionList) View() string {
	var b strings.Builder
	for _, label := range o.Question.Labels() {
		prefix := "  "
		if label == o.Pending {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, o.Question.Options[label])

		var style lipgloss.Style
		switch {
		case o.Revealed && label == o.Question.CorrectLabel:
			style = theme.Correct
		case o.Revealed && label == o.Pending:
			style = theme.Incorrect
		case o.Revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case label == o.Pending:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}

// LabelForKey maps a pressed key to an option label. Letters match labels
// case-insensitively; digits pick the n-th option in label order.
func LabelForKey(q study.Question, key string) (string, bool) {
	if len(key) != 1 {
		return "", false
	}
	labels := q.Labels()
	c := key[0]
	if c >= '1' && c <= '9' {
		i := int(c - '1')
		if i < len(labels) {
			return labels[i], true
		}
		return "", false
	}
	for _, l := range labels {
		if strings.EqualFold(l, key) {
			return l, true
		}
	}
	return "", false
}
