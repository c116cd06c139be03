// Package guides lists the available study guides and opens them.
package guides

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/studyhub/studydesk/internal/guide"
	"github.com/studyhub/studydesk/internal/handoff"
	"github.com/studyhub/studydesk/internal/router"
	"github.com/studyhub/studydesk/internal/screen"
	"github.com/studyhub/studydesk/internal/screens/notice"
	"github.com/studyhub/studydesk/internal/screens/review"
	"github.com/studyhub/studydesk/internal/store"
	"github.com/studyhub/studydesk/internal/ui/layout"
	"github.com/studyhub/studydesk/internal/ui/theme"
)

// errNoGenerator is shown when a generation request arrives but no
// backend is configured.
var errNoGenerator = errors.New("guide generation needs a backend (set STUDYDESK_API_URL)")

type guidesLoadedMsg struct {
	Guides []guide.Summary
	Stats  map[string]store.GuideStats
	Err    error
}

// guideLoadedMsg carries the result of fetching or generating one guide.
type guideLoadedMsg struct {
	Guide *guide.Guide
	Err   error
}

// GuidesScreen lists guides. It also fulfils a pending generation request
// left in the hand-off slot.
type GuidesScreen struct {
	env      *screen.Env
	guides   []guide.Summary
	stats    map[string]store.GuideStats
	selected int
	loaded   bool
	busy     string // non-empty while fetching or generating
	errMsg   string

	// pending is a generation request taken from the hand-off slot. It
	// starts once the list has loaded, so the list result is never
	// delivered to the review screen that generation opens.
	pending *handoff.Request
}

var _ screen.Screen = (*GuidesScreen)(nil)
var _ screen.KeyHintProvider = (*GuidesScreen)(nil)
var _ screen.InputCapturer = (*GuidesScreen)(nil)

// New creates a new GuidesScreen.
func New(env *screen.Env) *GuidesScreen {
	return &GuidesScreen{env: env}
}

func (s *GuidesScreen) Init() tea.Cmd {
	if s.env.Handoff != nil {
		if req, ok := s.env.Handoff.Take(); ok {
			s.pending = &req
			s.busy = generatingLabel(req)
		}
	}
	return s.load()
}

func (s *GuidesScreen) Title() string {
	return "Study Guides"
}

// CapturingInput keeps esc from leaving while a guide is being fetched or
// generated; the result would otherwise arrive at another screen.
func (s *GuidesScreen) CapturingInput() bool {
	return s.busy != ""
}

func (s *GuidesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GuidesScreen) load() tea.Cmd {
	src, repo := s.env.Guides, s.env.Events
	return func() tea.Msg {
		if src == nil {
			return guidesLoadedMsg{Err: errors.New("no guide source configured")}
		}
		ctx := context.Background()
		list, err := src.List(ctx)
		if err != nil {
			return guidesLoadedMsg{Err: err}
		}
		stats := make(map[string]store.GuideStats)
		if repo != nil {
			for _, g := range list {
				if st, err := repo.GuideStats(ctx, g.ID); err == nil && st.Sessions > 0 {
					stats[g.ID] = st
				}
			}
		}
		return guidesLoadedMsg{Guides: list, Stats: stats}
	}
}

func (s *GuidesScreen) open(id string) tea.Cmd {
	s.busy = "Loading guide..."
	src := s.env.Guides
	return func() tea.Msg {
		g, err := src.Get(context.Background(), id)
		return guideLoadedMsg{Guide: g, Err: err}
	}
}

func (s *GuidesScreen) generate(req handoff.Request) tea.Cmd {
	s.busy = generatingLabel(req)
	gen := s.env.Generator
	return func() tea.Msg {
		if gen == nil {
			return guideLoadedMsg{Err: errNoGenerator}
		}
		g, err := gen.RequestGeneration(context.Background(), req)
		return guideLoadedMsg{Guide: g, Err: err}
	}
}

func generatingLabel(req handoff.Request) string {
	return fmt.Sprintf("Generating %s for %s...", req.Kind, req.Title)
}

func (s *GuidesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case guidesLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.errMsg = ""
			s.guides = msg.Guides
			s.stats = msg.Stats
			s.selected = min(s.selected, max(len(s.guides)-1, 0))
		}
		if s.pending != nil {
			req := *s.pending
			s.pending = nil
			return s, s.generate(req)
		}
		return s, nil

	case guideLoadedMsg:
		s.busy = ""
		return s, openGuide(s.env, msg.Guide, msg.Err)

	case tea.KeyMsg:
		if s.busy != "" {
			return s, nil
		}
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.guides)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.guides) {
				return s, s.open(s.guides[s.selected].ID)
			}
		case "r":
			return s, s.load()
		}
	}
	return s, nil
}

// openGuide pushes the screen that presents g: a review for quizzes and
// flashcards, the text for a study guide, or an error. A guide that
// fails validation never starts a session.
func openGuide(env *screen.Env, g *guide.Guide, err error) tea.Cmd {
	if err != nil {
		return router.Push(notice.Error("Could not load guide", err))
	}
	if g.Type == guide.TypeStudyGuide {
		return router.Push(notice.Text(g.Title, g.Body))
	}
	rs, err := review.New(env, g)
	if err != nil {
		return router.Push(notice.Error("Could not start review", err))
	}
	return router.Push(rs)
}

func (s *GuidesScreen) View(width, height int) string {
	if s.busy != "" {
		return layout.Centered(width, theme.TextDim, "\n\n"+s.busy)
	}
	if s.errMsg != "" {
		return layout.Centered(width, theme.Error, fmt.Sprintf("\n\nError: %s\n\nPress R to retry", s.errMsg))
	}
	if !s.loaded {
		return layout.Centered(width, theme.TextDim, "\n\n  Loading guides...")
	}
	if len(s.guides) == 0 {
		return layout.Centered(width, theme.TextDim, "\n\n  No study guides yet. Generate one from the calendar!")
	}

	var b strings.Builder
	b.WriteString("\n")

	// Keep the selection in view.
	visible := max(height-2, 1)
	start := max(s.selected-visible+1, 0)
	end := min(start+visible, len(s.guides))

	for i := start; i < end; i++ {
		g := s.guides[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		date := ""
		if !g.CreatedAt.IsZero() {
			date = g.CreatedAt.Local().Format("Jan 02, 2006")
		}
		line := fmt.Sprintf("%s%-40s  %-11s  %s", prefix, truncate(g.Title, 40), typeLabel(g.Type), date)
		if st, ok := s.stats[g.ID]; ok {
			line += fmt.Sprintf("   last %d%%  best %d%%", st.LastPct, st.BestPct)
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func typeLabel(t guide.Type) string {
	switch t {
	case guide.TypeQuiz:
		return "quiz"
	case guide.TypeFlashcards:
		return "flashcards"
	default:
		return "study guide"
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
