package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/studyhub/studydesk/internal/ui/theme"
)

// Button is a labelled action in a ButtonRow.
type Button struct {
	Label   string
	OnPress func() tea.Cmd
}

// ButtonRow is a horizontal row of buttons navigated with left/right (or
// tab) and pressed with enter.
type ButtonRow struct {
	Buttons []Button
	Focused int
}

// NewButtonRow creates a row with the first button focused.
func NewButtonRow(buttons ...Button) ButtonRow {
	return ButtonRow{Buttons: buttons}
}

// Update handles key events.
func (r ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(r.Buttons) == 0 {
		return r, nil
	}

	switch kmsg.String() {
	case "left", "h", "shift+tab":
		if r.Focused > 0 {
			r.Focused--
		}
	case "right", "l", "tab":
		if r.Focused < len(r.Buttons)-1 {
			r.Focused++
		}
	case "enter":
		return r, r.Press(r.Focused)
	}
	return r, nil
}

// Press returns the command of button i, or nil if out of range.
func (r ButtonRow) Press(i int) tea.Cmd {
	if i < 0 || i >= len(r.Buttons) || r.Buttons[i].OnPress == nil {
		return nil
	}
	return r.Buttons[i].OnPress()
}

// View renders the row.
func (r ButtonRow) View() string {
	parts := make([]string, len(r.Buttons))
	for i, b := range r.Buttons {
		if i == r.Focused {
			parts[i] = theme.ButtonActive.Render("▸ " + b.Label)
		} else {
			parts[i] = theme.ButtonInactive.Render("  " + b.Label)
		}
	}
	return strings.Join(parts, "  ")
}
