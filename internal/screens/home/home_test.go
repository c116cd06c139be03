package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/studyhub/studydesk/internal/calendar"
	"github.com/studyhub/studydesk/internal/router"
	"github.com/studyhub/studydesk/internal/screen"
	calendarscreen "github.com/studyhub/studydesk/internal/screens/calendar"
	"github.com/studyhub/studydesk/internal/screens/guides"
	"github.com/studyhub/studydesk/internal/screens/notice"
	"github.com/studyhub/studydesk/internal/store"
)

type fakeRepo struct {
	store.EventRepo
	sessions []store.SessionEvent
}

func (f fakeRepo) QuerySessionEvents(context.Context, store.QueryOpts) ([]store.SessionEvent, error) {
	return f.sessions, nil
}

type fakeLister struct {
	screen.AssignmentLister
}

func end(pct int) store.SessionEvent {
	return store.SessionEvent{SessionEventData: store.SessionEventData{Action: "end", PctCorrect: pct}}
}

func pushed(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	return msg.Screen
}

func TestHomeMenu(t *testing.T) {
	env := &screen.Env{Assignments: fakeLister{}}
	h := New(env, calendar.ViewWeek)

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := pushed(t, cmd).(*guides.GuidesScreen); !ok {
		t.Error("first item should open the guide list")
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	cal, ok := pushed(t, cmd).(*calendarscreen.CalendarScreen)
	if !ok {
		t.Fatal("second item should open the calendar")
	}
	if cal.Nav().Mode != calendar.ViewWeek {
		t.Errorf("calendar mode = %v, want week", cal.Nav().Mode)
	}

	// History is disabled without a store, so down skips to Quit.
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("last item should quit")
	}
}

func TestHomeCalendarWithoutBackend(t *testing.T) {
	h := New(&screen.Env{}, calendar.ViewMonth)
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := pushed(t, cmd).(*notice.NoticeScreen); !ok {
		t.Error("calendar without a backend should explain why")
	}
}

func TestHomeStats(t *testing.T) {
	env := &screen.Env{Events: fakeRepo{sessions: []store.SessionEvent{end(50), end(100)}}}
	h := New(env, calendar.ViewMonth)
	h.Update(h.Init()())

	if view := h.View(100, 30); !strings.Contains(view, "2 SESSIONS") || !strings.Contains(view, "75% AVERAGE") {
		t.Errorf("stats missing from view:\n%s", view)
	}
}
