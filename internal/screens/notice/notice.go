// Package notice shows a full-screen message: an error that stopped a
// guide from loading, or the prose of a study guide.
package notice

import (
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/studyhub/studydesk/internal/router"
	"github.com/studyhub/studydesk/internal/screen"
	"github.com/studyhub/studydesk/internal/ui/layout"
	"github.com/studyhub/studydesk/internal/ui/theme"
)

// NoticeScreen renders a titled block of text.
type NoticeScreen struct {
	title  string
	body   string
	color  color.Color
	offset int // first visible line
}

var _ screen.Screen = (*NoticeScreen)(nil)
var _ screen.KeyHintProvider = (*NoticeScreen)(nil)

// Error creates a screen reporting err.
func Error(title string, err error) *NoticeScreen {
	return &NoticeScreen{title: title, body: err.Error(), color: theme.Error}
}

// Text creates a screen showing body as scrollable text.
func Text(title, body string) *NoticeScreen {
	return &NoticeScreen{title: title, body: body, color: theme.Text}
}

func (n *NoticeScreen) Init() tea.Cmd {
	return nil
}

func (n *NoticeScreen) Title() string {
	return n.title
}

func (n *NoticeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (n *NoticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return n, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if n.offset > 0 {
			n.offset--
		}
	case "down", "j":
		if n.offset < strings.Count(n.body, "\n") {
			n.offset++
		}
	case "enter", "q":
		return n, router.Pop
	}
	return n, nil
}

func (n *NoticeScreen) View(width, height int) string {
	textWidth := min(width-8, 90)
	lines := strings.Split(lipgloss.NewStyle().Width(textWidth).Render(n.body), "\n")
	start := min(n.offset, max(len(lines)-1, 0))
	end := min(start+max(height-2, 1), len(lines))

	block := lipgloss.NewStyle().
		Foreground(n.color).
		Render(strings.Join(lines[start:end], "\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}
