// Package review runs a quiz or flashcard session over a loaded guide.
package review

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/studyhub/studydesk/internal/guide"
	"github.com/studyhub/studydesk/internal/router"
	"github.com/studyhub/studydesk/internal/screen"
	"github.com/studyhub/studydesk/internal/screens/summary"
	"github.com/studyhub/studydesk/internal/store"
	"github.com/studyhub/studydesk/internal/study"
	"github.com/studyhub/studydesk/internal/ui/layout"
)

// ReviewScreen implements screen.Screen for an active review session.
type ReviewScreen struct {
	env   *screen.Env
	guide *guide.Guide
	state study.SessionState

	sessionID     string
	difficultOnly bool
	started       time.Time
	shownAt       time.Time

	// notice is the reason the last input was refused, shown until the
	// next accepted action.
	notice string
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates a review over g. It fails when the guide cannot start a
// session, in which case no session exists.
func New(env *screen.Env, g *guide.Guide) (*ReviewScreen, error) {
	state, err := g.Start()
	if err != nil {
		return nil, err
	}
	return newWithState(env, g, state, false), nil
}

func newWithState(env *screen.Env, g *guide.Guide, state study.SessionState, difficultOnly bool) *ReviewScreen {
	now := env.Clock()
	return &ReviewScreen{
		env:           env,
		guide:         g,
		state:         state,
		sessionID:     uuid.New().String(),
		difficultOnly: difficultOnly,
		started:       now,
		shownAt:       now,
	}
}

// State returns the current session state.
func (s *ReviewScreen) State() study.SessionState {
	return s.state
}

func (s *ReviewScreen) Init() tea.Cmd {
	s.recordSession("start", study.Summary{})
	return nil
}

func (s *ReviewScreen) Title() string {
	if s.difficultOnly {
		return s.guide.Title + " (difficult)"
	}
	return s.guide.Title
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	if s.state.Kind == study.KindQuiz {
		if s.state.Revealed {
			return []layout.KeyHint{
				{Key: "Enter/N", Description: "Next"},
				{Key: "Esc", Description: "Quit"},
			}
		}
		return []layout.KeyHint{
			{Key: "A-Z/1-9", Description: "Select"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	if s.state.Revealed {
		return []layout.KeyHint{
			{Key: "1", Description: "Got it"},
			{Key: "2", Description: "Still learning"},
			{Key: "←→", Description: "Prev/Next"},
			{Key: "S", Description: "Shuffle"},
			{Key: "R", Description: "Reset"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Flip"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "S", Description: "Shuffle"},
		{Key: "R", Description: "Reset"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		intent := resolveKey(s.state, msg.String())
		if intent.label != "" {
			return s, s.apply(func(st study.SessionState) (study.SessionState, error) {
				return study.SelectAnswer(st, intent.label)
			})
		}
		return s, s.dispatch(intent.action)

	case tea.MouseClickMsg:
		return s, s.dispatch(resolveClick(s.state, msg.Mouse()))
	}
	return s, nil
}

// dispatch runs a through the engine. Keyboard and mouse input both end
// up here.
func (s *ReviewScreen) dispatch(a study.Action) tea.Cmd {
	if a == study.ActionNone {
		return nil
	}
	return s.apply(func(st study.SessionState) (study.SessionState, error) {
		return study.Apply(st, a, s.env.RNG())
	})
}

func (s *ReviewScreen) apply(op func(study.SessionState) (study.SessionState, error)) tea.Cmd {
	prev := s.state
	next, err := op(prev)
	if err != nil {
		var te *study.TransitionError
		if errors.As(err, &te) {
			s.notice = te.Reason
		} else {
			s.notice = err.Error()
		}
		return nil
	}
	s.notice = ""
	s.state = next

	s.recordOutcomes(prev, next)
	if next.Index != prev.Index || next.Current().ID != prev.Current().ID {
		s.shownAt = s.env.Clock()
	}

	if next.Finished && !prev.Finished {
		return s.finish()
	}
	return nil
}

// finish records the end of the session and swaps in the summary.
func (s *ReviewScreen) finish() tea.Cmd {
	sum := study.Summarize(s.state)
	s.recordSession("end", sum)

	finished := s.state
	result := summary.Result{
		GuideTitle:    s.guide.Title,
		Kind:          finished.Kind,
		Summary:       sum,
		Duration:      s.env.Clock().Sub(s.started),
		DifficultOnly: s.difficultOnly,
	}
	actions := summary.Actions{
		StartOver: func() tea.Cmd {
			return router.Replace(newWithState(s.env, s.guide, study.Reset(finished), s.difficultOnly))
		},
	}
	if sum.CanReviewDifficult() {
		actions.ReviewDifficult = func() tea.Cmd {
			next, err := study.RestrictToDifficult(finished)
			if err != nil {
				return nil
			}
			return router.Replace(newWithState(s.env, s.guide, next, true))
		}
	}
	return router.Replace(summary.New(result, actions))
}

func (s *ReviewScreen) recordSession(action string, sum study.Summary) {
	if s.env.Events == nil {
		return
	}
	data := store.SessionEventData{
		SessionID:     s.sessionID,
		GuideID:       s.guide.ID,
		GuideTitle:    s.guide.Title,
		Kind:          string(s.state.Kind),
		Action:        action,
		DifficultOnly: s.difficultOnly,
		Total:         s.state.Len(),
	}
	if action == "end" {
		data.CorrectOrMastered = sum.CorrectOrMastered
		data.PctCorrect = sum.PctCorrect
		data.DifficultCount = sum.DifficultCount
		data.DurationSecs = int(s.env.Clock().Sub(s.started).Seconds())
	}
	_ = s.env.Events.AppendSessionEvent(context.Background(), data)
}

// recordOutcomes appends an event for every item whose outcome was set or
// changed by the last transition.
func (s *ReviewScreen) recordOutcomes(prev, next study.SessionState) {
	if s.env.Events == nil {
		return
	}
	timeMs := int(s.env.Clock().Sub(s.shownAt).Milliseconds())
	for _, it := range next.Items {
		o := next.Outcome(it.ID)
		if o == study.OutcomeUnset || o == prev.Outcome(it.ID) {
			continue
		}
		data := store.OutcomeEventData{
			SessionID: s.sessionID,
			GuideID:   s.guide.ID,
			ItemID:    it.ID,
			Kind:      string(next.Kind),
			Outcome:   o.String(),
			TimeMs:    timeMs,
		}
		if next.Kind == study.KindQuiz {
			data.Answer = prev.Pending
		}
		_ = s.env.Events.AppendOutcomeEvent(context.Background(), data)
	}
}
