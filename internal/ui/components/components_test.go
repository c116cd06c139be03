package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/studyhub/studydesk/internal/study"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestLabelForKey(t *testing.T) {
	q := study.Question{
		Prompt:       "Q",
		Options:      map[string]string{"A": "one", "B": "two", "C": "three"},
		CorrectLabel: "B",
	}

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{"a", "A", true},
		{"B", "B", true},
		{"1", "A", true},
		{"3", "C", true},
		{"4", "", false},
		{"z", "", false},
		{"enter", "", false},
	}
	for _, tt := range tests {
		got, ok := LabelForKey(q, tt.key)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("LabelForKey(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	pressed := ""
	m := NewMenu([]MenuItem{
		{Label: "Off", Disabled: true},
		{Label: "One", Action: func() tea.Cmd { pressed = "one"; return nil }},
		{Label: "Off", Disabled: true},
		{Label: "Two", Action: func() tea.Cmd { pressed = "two"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Fatalf("after down Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if pressed != "two" {
		t.Errorf("pressed = %q, want two", pressed)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("after up Selected = %d, want 1", m.Selected)
	}
}

func TestButtonRow(t *testing.T) {
	var pressed []string
	btn := func(name string) Button {
		return Button{Label: name, OnPress: func() tea.Cmd { pressed = append(pressed, name); return nil }}
	}
	r := NewButtonRow(btn("a"), btn("b"))

	r, _ = r.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	r, _ = r.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if r.Focused != 1 {
		t.Fatalf("Focused = %d, want 1", r.Focused)
	}
	r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if len(pressed) != 1 || pressed[0] != "b" {
		t.Errorf("pressed = %v, want [b]", pressed)
	}
}

func TestSearchBoxDebounce(t *testing.T) {
	s := NewSearchBox("search", 1)
	s.Focus()

	s, cmd := s.Update(keyPress('l'))
	if cmd == nil {
		t.Fatal("expected a debounce tick after typing")
	}
	firstSeq := s.seq
	s, _ = s.Update(keyPress('a'))
	s, _ = s.Update(keyPress('b'))

	// A tick from an older keystroke is ignored.
	s, cmd = s.Update(searchTickMsg{id: 1, seq: firstSeq})
	if cmd != nil {
		t.Error("stale tick should not settle the query")
	}
	if s.Query() != "" {
		t.Errorf("Query = %q before settling", s.Query())
	}

	s, cmd = s.Update(searchTickMsg{id: 1, seq: s.seq})
	if cmd == nil {
		t.Fatal("expected SearchSettledMsg")
	}
	settled, ok := cmd().(SearchSettledMsg)
	if !ok || settled.Query != "lab" || settled.ID != 1 {
		t.Errorf("settled = %#v, want query lab", settled)
	}
	if s.Query() != "lab" {
		t.Errorf("Query = %q, want lab", s.Query())
	}

	// Same query again does not re-emit.
	if _, cmd := s.Update(searchTickMsg{id: 1, seq: s.seq}); cmd != nil {
		t.Error("unchanged query should not re-emit")
	}

	if cmd := s.Clear(); cmd == nil {
		t.Error("clearing a settled query should emit")
	}
	if s.Query() != "" {
		t.Errorf("Query after Clear = %q", s.Query())
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 0, 0},
		{1, 4, 0.25},
		{5, 4, 1},
	}
	for _, tt := range tests {
		if got := NewProgressBar("", tt.done, tt.total, 40).Percent(); got != tt.want {
			t.Errorf("Percent(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
}
