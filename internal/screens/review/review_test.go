package review

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/studyhub/studydesk/internal/guide"
	"github.com/studyhub/studydesk/internal/router"
	"github.com/studyhub/studydesk/internal/screen"
	"github.com/studyhub/studydesk/internal/screens/summary"
	"github.com/studyhub/studydesk/internal/store"
	"github.com/studyhub/studydesk/internal/study"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	sessionEvents []store.SessionEventData
	outcomeEvents []store.OutcomeEventData
}

func (m *mockEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	m.sessionEvents = append(m.sessionEvents, data)
	return nil
}
func (m *mockEventRepo) AppendOutcomeEvent(_ context.Context, data store.OutcomeEventData) error {
	m.outcomeEvents = append(m.outcomeEvents, data)
	return nil
}
func (m *mockEventRepo) AppendRequestEvent(context.Context, store.RequestEventData) error {
	return nil
}
func (m *mockEventRepo) QuerySessionEvents(context.Context, store.QueryOpts) ([]store.SessionEvent, error) {
	return nil, nil
}
func (m *mockEventRepo) QueryOutcomeEvents(context.Context, string) ([]store.OutcomeEvent, error) {
	return nil, nil
}
func (m *mockEventRepo) QueryRequestEvents(context.Context, store.QueryOpts) ([]store.RequestEvent, error) {
	return nil, nil
}
func (m *mockEventRepo) GuideStats(context.Context, string) (store.GuideStats, error) {
	return store.GuideStats{}, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testEnv() (*screen.Env, *mockEventRepo) {
	repo := &mockEventRepo{}
	now := time.Date(2026, time.October, 1, 9, 0, 0, 0, time.UTC)
	return &screen.Env{
		Events: repo,
		Now:    func() time.Time { return now },
		Rand:   rand.New(rand.NewPCG(1, 2)),
	}, repo
}

func quizGuide() *guide.Guide {
	q := func(prompt, correct string) study.Item {
		return study.QuestionItem(study.Question{
			Prompt:       prompt,
			Options:      map[string]string{"A": "first", "B": "second", "C": "third"},
			CorrectLabel: correct,
		})
	}
	return &guide.Guide{
		ID:    "q1",
		Title: "Quiz",
		Type:  guide.TypeQuiz,
		Items: []study.Item{q("one", "A"), q("two", "B"), q("three", "C")},
	}
}

func cardGuide() *guide.Guide {
	c := func(front, back string) study.Item { return study.CardItem(study.Card{Front: front, Back: back}) }
	return &guide.Guide{
		ID:    "f1",
		Title: "Cards",
		Type:  guide.TypeFlashcards,
		Items: []study.Item{c("hola", "hello"), c("adiós", "goodbye")},
	}
}

// run feeds msgs to s and executes the returned commands once, returning
// the messages they produced.
func run(t *testing.T, s screen.Screen, msgs ...tea.Msg) (screen.Screen, []tea.Msg) {
	t.Helper()
	var out []tea.Msg
	for _, m := range msgs {
		var cmd tea.Cmd
		s, cmd = s.Update(m)
		if cmd != nil {
			out = append(out, cmd())
		}
	}
	return s, out
}

func TestQuizFlow(t *testing.T) {
	env, repo := testEnv()
	rs, err := New(env, quizGuide())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rs.Init()

	// Submitting without a selection is refused.
	run(t, rs, specialKey(tea.KeyEnter))
	if rs.notice == "" {
		t.Error("expected a notice after submitting with no selection")
	}

	// q1: correct via letter key.
	run(t, rs, keyPress('a'), specialKey(tea.KeyEnter))
	if got := rs.State().CurrentOutcome(); got != study.OutcomeCorrect {
		t.Fatalf("q1 outcome = %v, want correct", got)
	}
	if rs.notice != "" {
		t.Errorf("notice not cleared: %q", rs.notice)
	}
	run(t, rs, keyPress('n'))

	// q2: wrong via digit key; Enter then moves on.
	run(t, rs, keyPress('1'), specialKey(tea.KeyEnter), specialKey(tea.KeyEnter))
	if rs.State().Index != 2 {
		t.Fatalf("Index = %d, want 2", rs.State().Index)
	}

	// q3: correct, then finishing swaps in the summary.
	_, msgs := run(t, rs, keyPress('c'), specialKey(tea.KeyEnter), keyPress('n'))
	if !rs.State().Finished {
		t.Fatal("expected session to be finished")
	}
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	rep, ok := msgs[0].(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msgs[0])
	}
	sum, ok := rep.Screen.(*summary.SummaryScreen)
	if !ok {
		t.Fatalf("expected summary screen, got %T", rep.Screen)
	}
	if got := sum.Buttons(); got[0] != "Review Difficult" {
		t.Errorf("buttons = %v, want Review Difficult first", got)
	}

	if len(repo.outcomeEvents) != 3 {
		t.Fatalf("outcome events = %d, want 3", len(repo.outcomeEvents))
	}
	if e := repo.outcomeEvents[1]; e.Outcome != "incorrect" || e.Answer != "A" {
		t.Errorf("q2 event = %+v", e)
	}

	if len(repo.sessionEvents) != 2 {
		t.Fatalf("session events = %d, want 2", len(repo.sessionEvents))
	}
	end := repo.sessionEvents[1]
	if end.Action != "end" || end.Total != 3 || end.CorrectOrMastered != 2 || end.PctCorrect != 67 || end.DifficultCount != 1 {
		t.Errorf("end event = %+v", end)
	}
}

func TestQuizIsForwardOnly(t *testing.T) {
	env, _ := testEnv()
	rs, _ := New(env, quizGuide())

	run(t, rs, keyPress('a'), specialKey(tea.KeyEnter), keyPress('n'))
	run(t, rs, specialKey(tea.KeyLeft))
	if rs.State().Index != 1 {
		t.Errorf("left arrow moved a quiz back to %d", rs.State().Index)
	}
}

func TestQuizSelectionLockedAfterReveal(t *testing.T) {
	env, _ := testEnv()
	rs, _ := New(env, quizGuide())

	run(t, rs, keyPress('b'), specialKey(tea.KeyEnter), keyPress('a'))
	if rs.State().Pending != "B" {
		t.Errorf("Pending = %q, want B", rs.State().Pending)
	}
	if rs.State().CurrentOutcome() != study.OutcomeIncorrect {
		t.Errorf("outcome changed after reveal")
	}
}

func TestFlashcardFlow(t *testing.T) {
	env, repo := testEnv()
	rs, err := New(env, cardGuide())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Marking before flipping is refused.
	run(t, rs, keyPress('1'))
	if rs.State().CurrentOutcome() != study.OutcomeUnset {
		t.Fatal("card marked before it was flipped")
	}

	run(t, rs, keyPress(' '))
	if !rs.State().Revealed {
		t.Fatal("space did not flip the card")
	}
	if !strings.Contains(rs.View(100, 30), "hello") {
		t.Error("back of card not shown after flip")
	}

	run(t, rs, keyPress('2'))
	if rs.State().Index != 1 {
		t.Fatalf("Index = %d, want 1 after marking", rs.State().Index)
	}

	// Previous card keeps its outcome.
	run(t, rs, specialKey(tea.KeyLeft))
	if rs.State().Index != 0 || rs.State().CurrentOutcome() != study.OutcomeLearning {
		t.Fatalf("after left: index %d outcome %v", rs.State().Index, rs.State().CurrentOutcome())
	}
	run(t, rs, specialKey(tea.KeyRight))

	_, msgs := run(t, rs, specialKey(tea.KeyEnter), keyPress('1'))
	if !rs.State().Finished {
		t.Fatal("expected finished")
	}
	if len(msgs) != 1 {
		t.Fatalf("expected summary command, got %d messages", len(msgs))
	}
	if len(repo.outcomeEvents) != 2 {
		t.Errorf("outcome events = %d, want 2", len(repo.outcomeEvents))
	}
}

func TestFlashcardClickFlips(t *testing.T) {
	env, _ := testEnv()
	rs, _ := New(env, cardGuide())

	run(t, rs, tea.MouseClickMsg{Button: tea.MouseLeft})
	if !rs.State().Revealed {
		t.Error("click did not flip the card")
	}
}

func TestFlashcardShuffleAndReset(t *testing.T) {
	env, _ := testEnv()
	rs, _ := New(env, cardGuide())

	run(t, rs, keyPress(' '), keyPress('1'))
	run(t, rs, keyPress('s'))
	st := rs.State()
	if st.Index != 0 || st.Revealed {
		t.Errorf("after shuffle: index %d revealed %v", st.Index, st.Revealed)
	}
	if st.Answered() != 1 {
		t.Errorf("shuffle lost outcomes: answered %d", st.Answered())
	}

	run(t, rs, keyPress('r'))
	st = rs.State()
	if st.Answered() != 0 || st.Current().Card.Front != "hola" {
		t.Errorf("after reset: answered %d front %q", st.Answered(), st.Current().Card.Front)
	}
}

func TestReviewDifficultRestartsWithDifficultItems(t *testing.T) {
	env, _ := testEnv()
	rs, _ := New(env, cardGuide())

	_, msgs := run(t, rs, keyPress(' '), keyPress('2'), keyPress(' '), keyPress('1'))
	sum := msgs[len(msgs)-1].(router.ReplaceScreenMsg).Screen.(*summary.SummaryScreen)

	// "Review Difficult" is focused first.
	_, msgs = run(t, sum, specialKey(tea.KeyEnter))
	rep, ok := msgs[0].(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msgs[0])
	}
	next := rep.Screen.(*ReviewScreen)
	if next.State().Len() != 1 || next.State().Current().Card.Front != "hola" {
		t.Errorf("difficult session = %d items, first %q", next.State().Len(), next.State().Current().Card.Front)
	}
	if !strings.Contains(next.Title(), "difficult") {
		t.Errorf("Title = %q", next.Title())
	}
}

func TestNewRejectsProseGuide(t *testing.T) {
	env, _ := testEnv()
	_, err := New(env, &guide.Guide{ID: "s", Title: "Notes", Type: guide.TypeStudyGuide, Body: "text"})
	if err == nil {
		t.Error("expected error for a study guide")
	}
}
