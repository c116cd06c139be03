package components

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/studyhub/studydesk/internal/ui/theme"
)

// DefaultDebounce is how long typing must pause before a query settles.
const DefaultDebounce = 300 * time.Millisecond

// SearchSettledMsg is emitted once the query has not changed for the
// debounce interval. Query is trimmed.
type SearchSettledMsg struct {
	ID    int
	Query string
}

type searchTickMsg struct {
	id  int
	seq int
}

// SearchBox wraps bubbles/textinput and reports the query only after the
// user stops typing. Each keystroke restarts the timer; ticks from older
// keystrokes are dropped by sequence number.
type SearchBox struct {
	Model    textinput.Model
	Debounce time.Duration

	// ID distinguishes several boxes on one screen.
	ID int

	seq     int
	settled string
}

// NewSearchBox creates an unfocused search box.
func NewSearchBox(placeholder string, id int) SearchBox {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	ti.CharLimit = 80
	return SearchBox{Model: ti, Debounce: DefaultDebounce, ID: id}
}

// Focus gives the box keyboard focus.
func (s *SearchBox) Focus() tea.Cmd {
	return s.Model.Focus()
}

// Blur removes keyboard focus.
func (s *SearchBox) Blur() {
	s.Model.Blur()
}

// Focused reports whether the box has keyboard focus.
func (s SearchBox) Focused() bool {
	return s.Model.Focused()
}

// Query returns the last settled query.
func (s SearchBox) Query() string {
	return s.settled
}

// Clear empties the box and settles the empty query immediately.
func (s *SearchBox) Clear() tea.Cmd {
	s.Model.SetValue("")
	s.seq++
	if s.settled == "" {
		return nil
	}
	s.settled = ""
	id := s.ID
	return func() tea.Msg { return SearchSettledMsg{ID: id} }
}

// Update forwards keys to the text input and manages the debounce timer.
func (s SearchBox) Update(msg tea.Msg) (SearchBox, tea.Cmd) {
	if tick, ok := msg.(searchTickMsg); ok {
		if tick.id != s.ID || tick.seq != s.seq {
			return s, nil
		}
		q := strings.TrimSpace(s.Model.Value())
		if q == s.settled {
			return s, nil
		}
		s.settled = q
		return s, func() tea.Msg { return SearchSettledMsg{ID: s.ID, Query: q} }
	}

	before := s.Model.Value()
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	if s.Model.Value() == before {
		return s, cmd
	}

	s.seq++
	id, seq := s.ID, s.seq
	tick := tea.Tick(s.Debounce, func(time.Time) tea.Msg {
		return searchTickMsg{id: id, seq: seq}
	})
	return s, tea.Batch(cmd, tick)
}

// View renders the search box.
func (s SearchBox) View() string {
	view := s.Model.View()
	if !s.Focused() && s.settled != "" {
		view += "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render("(esc to clear)")
	}
	return view
}
