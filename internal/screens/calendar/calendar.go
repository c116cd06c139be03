// Package calendar is the assignment calendar screen.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/studyhub/studydesk/internal/api"
	"github.com/studyhub/studydesk/internal/calendar"
	"github.com/studyhub/studydesk/internal/handoff"
	"github.com/studyhub/studydesk/internal/router"
	"github.com/studyhub/studydesk/internal/screen"
	"github.com/studyhub/studydesk/internal/screens/guides"
	"github.com/studyhub/studydesk/internal/study"
	"github.com/studyhub/studydesk/internal/ui/components"
	"github.com/studyhub/studydesk/internal/ui/layout"
)

// searchWindow is how far either side of today a global search looks.
const searchWindow = 6

var errNoBackend = errors.New("the calendar needs a backend (set STUDYDESK_API_URL)")

type assignmentsLoadedMsg struct {
	Seq   int
	Items []api.Assignment
	Err   error
}

type searchResultsMsg struct {
	Seq   int
	Query string
	Items []api.Assignment
	Err   error
}

// CalendarScreen shows assignments due in the visible range and lets the
// student ask for a quiz or flashcards for one of them.
type CalendarScreen struct {
	env *screen.Env
	nav calendar.NavState

	assignments []api.Assignment
	reqSeq      int
	loading     bool
	errMsg      string

	search    components.SearchBox
	results   []api.Assignment
	searchSeq int
	searching bool

	selected int
	status   string
}

var _ screen.Screen = (*CalendarScreen)(nil)
var _ screen.KeyHintProvider = (*CalendarScreen)(nil)
var _ screen.InputCapturer = (*CalendarScreen)(nil)

// New creates a calendar anchored on today.
func New(env *screen.Env, mode calendar.ViewMode) *CalendarScreen {
	return &CalendarScreen{
		env:    env,
		nav:    calendar.New(env.Clock(), mode),
		search: components.NewSearchBox("Search assignments", 0),
	}
}

// Nav returns the current navigation state.
func (s *CalendarScreen) Nav() calendar.NavState {
	return s.nav
}

func (s *CalendarScreen) Init() tea.Cmd {
	return s.fetch()
}

func (s *CalendarScreen) Title() string {
	return "Calendar"
}

func (s *CalendarScreen) KeyHints() []layout.KeyHint {
	if s.search.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Prev/Next"},
		{Key: "T", Description: "Today"},
		{Key: "D/3/W/M", Description: "View"},
		{Key: "/", Description: "Search"},
		{Key: "G", Description: "Quiz"},
		{Key: "F", Description: "Flashcards"},
		{Key: "Esc", Description: "Back"},
	}
}

// CapturingInput keeps esc on this screen while a search is active.
func (s *CalendarScreen) CapturingInput() bool {
	return s.search.Focused() || s.search.Query() != ""
}

// fetch loads the visible range. Responses to older requests are dropped.
func (s *CalendarScreen) fetch() tea.Cmd {
	s.reqSeq++
	s.loading = true
	seq, r, lister := s.reqSeq, s.nav.Range(), s.env.Assignments
	return func() tea.Msg {
		if lister == nil {
			return assignmentsLoadedMsg{Seq: seq, Err: errNoBackend}
		}
		items, err := lister.ListAssignments(context.Background(), r)
		return assignmentsLoadedMsg{Seq: seq, Items: items, Err: err}
	}
}

// runSearch looks for query across a wide window around today.
func (s *CalendarScreen) runSearch(query string) tea.Cmd {
	s.searchSeq++
	s.searching = true
	seq, lister := s.searchSeq, s.env.Assignments
	today := calendar.Date(s.env.Clock())
	r := calendar.Range{
		Start: calendar.AddMonths(today, -searchWindow),
		End:   calendar.AddMonths(today, searchWindow),
	}
	return func() tea.Msg {
		if lister == nil {
			return searchResultsMsg{Seq: seq, Query: query, Err: errNoBackend}
		}
		items, err := lister.ListAssignments(context.Background(), r)
		return searchResultsMsg{Seq: seq, Query: query, Items: Filter(items, query), Err: err}
	}
}

// Filter keeps the assignments whose title, course or description
// contains query, ignoring case.
func Filter(items []api.Assignment, query string) []api.Assignment {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	var out []api.Assignment
	for _, a := range items {
		if strings.Contains(strings.ToLower(a.Title), q) ||
			strings.Contains(strings.ToLower(a.CourseName), q) ||
			strings.Contains(strings.ToLower(a.Description), q) {
			out = append(out, a)
		}
	}
	return out
}

// visible returns the list the selection moves through.
func (s *CalendarScreen) visible() []api.Assignment {
	if s.search.Query() != "" {
		return s.results
	}
	return s.assignments
}

func (s *CalendarScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case assignmentsLoadedMsg:
		if msg.Seq != s.reqSeq {
			return s, nil
		}
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.assignments = nil
		} else {
			s.errMsg = ""
			s.assignments = msg.Items
		}
		s.clampSelection()
		return s, nil

	case searchResultsMsg:
		if msg.Seq != s.searchSeq || msg.Query != s.search.Query() {
			return s, nil
		}
		s.searching = false
		if msg.Err != nil {
			s.status = "Search failed: " + msg.Err.Error()
			s.results = nil
		} else {
			s.results = msg.Items
		}
		s.selected = 0
		return s, nil

	case components.SearchSettledMsg:
		s.selected = 0
		if msg.Query == "" {
			s.searchSeq++
			s.searching = false
			s.results = nil
			return s, nil
		}
		return s, s.runSearch(msg.Query)

	case tea.KeyMsg:
		if s.search.Focused() {
			return s.updateSearch(msg)
		}
		return s.handleKey(msg.String())
	}

	// Debounce ticks and cursor blinks.
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	return s, cmd
}

func (s *CalendarScreen) updateSearch(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.search.Blur()
		return s, s.search.Clear()
	case "enter":
		s.search.Blur()
		return s, nil
	}
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	return s, cmd
}

func (s *CalendarScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	s.status = ""
	switch key {
	case "/":
		return s, s.search.Focus()
	case "esc":
		return s, s.search.Clear()
	case "left", "h":
		return s.navigate(s.nav.GoPrev())
	case "right", "l":
		return s.navigate(s.nav.GoNext())
	case "t":
		return s.navigate(s.nav.GoToday(s.env.Clock()))
	case "d", "3", "w", "m":
		mode, _ := calendar.ParseViewMode(key)
		return s.navigate(s.nav.SetViewMode(mode))
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.visible())-1 {
			s.selected++
		}
	case "g":
		return s, s.requestGeneration(study.KindQuiz)
	case "f":
		return s, s.requestGeneration(study.KindFlashcards)
	}
	return s, nil
}

func (s *CalendarScreen) navigate(next calendar.NavState) (screen.Screen, tea.Cmd) {
	if next.Mode == s.nav.Mode && next.Anchor.Equal(s.nav.Anchor) {
		return s, nil
	}
	s.nav = next
	s.selected = 0
	return s, s.fetch()
}

// requestGeneration leaves a request for the selected assignment in the
// hand-off slot and opens the guide list, which fulfils it.
func (s *CalendarScreen) requestGeneration(kind study.Kind) tea.Cmd {
	items := s.visible()
	if s.selected >= len(items) {
		s.status = "Select an assignment first"
		return nil
	}
	if s.env.Handoff == nil {
		s.status = "Generation is not available"
		return nil
	}
	a := items[s.selected]
	req := handoff.Request{
		Kind:         kind,
		Title:        a.Title,
		CourseID:     a.CourseID,
		AssignmentID: a.ID,
	}
	if err := s.env.Handoff.Offer(req); err != nil {
		s.status = "A generation request is already pending"
		return nil
	}
	return router.Push(guides.New(s.env))
}

func (s *CalendarScreen) clampSelection() {
	s.selected = min(s.selected, max(len(s.visible())-1, 0))
}

// dueOn groups the loaded assignments by due date.
func (s *CalendarScreen) dueOn() map[string][]api.Assignment {
	m := make(map[string][]api.Assignment)
	for _, a := range s.assignments {
		m[dayKey(a.Due)] = append(m[dayKey(a.Due)], a)
	}
	return m
}

func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

func (s *CalendarScreen) selectedAssignment() (api.Assignment, bool) {
	items := s.visible()
	if s.selected < len(items) {
		return items[s.selected], true
	}
	return api.Assignment{}, false
}

func countLabel(n int) string {
	if n == 1 {
		return "1 assignment"
	}
	return fmt.Sprintf("%d assignments", n)
}

// WithAnchor moves the initial view to date.
func (s *CalendarScreen) WithAnchor(date time.Time) *CalendarScreen {
	s.nav = s.nav.GoToDate(date)
	return s
}
