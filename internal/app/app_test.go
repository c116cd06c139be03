package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/studyhub/studydesk/internal/router"
	"github.com/studyhub/studydesk/internal/screen"
	"github.com/studyhub/studydesk/internal/screens/notice"
	"github.com/studyhub/studydesk/internal/ui/layout"
)

// capturing is a screen that claims esc while active is set.
type capturing struct {
	active bool
	got    []string
}

func (c *capturing) Init() tea.Cmd { return nil }
func (c *capturing) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		c.got = append(c.got, k.String())
	}
	return c, nil
}
func (c *capturing) View(int, int) string { return "" }
func (c *capturing) Title() string { return "Capturing" }
func (c *capturing) CapturingInput() bool { return c.active }
func (c *capturing) KeyHints() []layout.KeyHint { return nil }

func esc() tea.Msg { return tea.KeyPressMsg{Code: tea.KeyEscape} }

func TestAppOwnsHandoffSlot(t *testing.T) {
	env := &screen.Env{}
	m := newAppModel(env, Options{})
	if env.Handoff == nil || m.env.Handoff != env.Handoff {
		t.Fatal("app should create the shared hand-off slot")
	}
}

func TestAppStartScreen(t *testing.T) {
	m := newAppModel(&screen.Env{}, Options{Start: func(*screen.Env) screen.Screen {
		return notice.Text("Hello", "body")
	}})
	for _, msg := range collect(m.Init()) {
		m.router.Update(msg)
	}
	if m.router.Depth() != 2 || m.router.Active().Title() != "Hello" {
		t.Errorf("start screen not opened: depth %d", m.router.Depth())
	}
}

func TestAppEscRespectsInputCapture(t *testing.T) {
	m := newAppModel(&screen.Env{}, Options{})
	c := &capturing{active: true}
	m.router.Push(c)

	_, cmd := m.Update(esc())
	if cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Fatal("esc popped a screen that is capturing input")
		}
	}
	if len(c.got) != 1 || c.got[0] != "esc" {
		t.Errorf("screen got %v, want esc", c.got)
	}

	c.active = false
	_, cmd = m.Update(esc())
	if cmd == nil {
		t.Fatal("esc should pop once input is released")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestAppEscAtRootDoesNothing(t *testing.T) {
	m := newAppModel(&screen.Env{}, Options{})
	if _, cmd := m.Update(esc()); cmd != nil {
		t.Error("esc on the home screen should be a no-op")
	}
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestAppHomeKeyPopsToRoot(t *testing.T) {
	m := newAppModel(&screen.Env{}, Options{})
	m.router.Push(notice.Text("One", ""))
	m.router.Push(notice.Text("Two", ""))

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyHome})
	m.Update(cmd())
	if m.router.Depth() != 1 || m.router.Active().Title() != "Home" {
		t.Errorf("depth = %d, want only the home screen", m.router.Depth())
	}
}
