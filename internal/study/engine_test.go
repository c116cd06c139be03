package study

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func testQuestions() []Item {
	return []Item{
		QuestionItem(Question{Prompt: "2 + 2?", Options: map[string]string{"A": "3", "B": "4"}, CorrectLabel: "B"}),
		QuestionItem(Question{Prompt: "Capital of France?", Options: map[string]string{"A": "Paris", "B": "Rome", "C": "Oslo"}, CorrectLabel: "A"}),
		QuestionItem(Question{Prompt: "H2O is?", Options: map[string]string{"A": "Water", "B": "Salt"}, CorrectLabel: "A"}),
	}
}

func testCards() []Item {
	return []Item{
		CardItem(Card{Front: "mitochondria", Back: "powerhouse of the cell"}),
		CardItem(Card{Front: "photosynthesis", Back: "light to sugar"}),
		CardItem(Card{Front: "osmosis", Back: "water across a membrane"}),
	}
}

func mustLoad(t *testing.T, kind Kind, items []Item) SessionState {
	t.Helper()
	s, err := Load(kind, items)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func answer(t *testing.T, s SessionState, label string) SessionState {
	t.Helper()
	s, err := SelectAnswer(s, label)
	if err != nil {
		t.Fatalf("SelectAnswer(%q): %v", label, err)
	}
	s, err = SubmitAnswer(s)
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	return s
}

func next(t *testing.T, s SessionState) SessionState {
	t.Helper()
	s, err := Advance(s)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	return s
}

func flipAndMark(t *testing.T, s SessionState, o Outcome) SessionState {
	t.Helper()
	s, err := Reveal(s)
	if err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	s, err = MarkOutcome(s, o)
	if err != nil {
		t.Fatalf("MarkOutcome: %v", err)
	}
	return s
}

func TestLoad_InitialState(t *testing.T) {
	s := mustLoad(t, KindQuiz, testQuestions())
	if s.Index != 0 || s.Revealed || s.Finished || s.Pending != "" {
		t.Errorf("unexpected initial state: %+v", s)
	}
	for i, it := range s.Items {
		if it.ID != i {
			t.Errorf("item %d has ID %d", i, it.ID)
		}
		if s.Outcome(it.ID) != OutcomeUnset {
			t.Errorf("item %d outcome = %v, want unset", i, s.Outcome(it.ID))
		}
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		items []Item
		want  error
	}{
		{"empty", KindQuiz, nil, ErrEmptySession},
		{"unknown kind", Kind("poll"), testQuestions(), ErrInvalidItem},
		{"correct label not an option", KindQuiz, []Item{
			QuestionItem(Question{Prompt: "?", Options: map[string]string{"A": "x", "B": "y"}, CorrectLabel: "D"}),
		}, ErrCorrectLabelMissing},
		{"single option", KindQuiz, []Item{
			QuestionItem(Question{Prompt: "?", Options: map[string]string{"A": "x"}, CorrectLabel: "A"}),
		}, ErrInvalidItem},
		{"card without back", KindFlashcards, []Item{CardItem(Card{Front: "x"})}, ErrInvalidItem},
		{"question in flashcard session", KindFlashcards, testQuestions(), ErrInvalidItem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.kind, tt.items)
			if !errors.Is(err, tt.want) {
				t.Errorf("Load err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoad_ItemErrorIndex(t *testing.T) {
	items := testCards()
	items[2] = CardItem(Card{Front: "", Back: "x"})
	_, err := Load(KindFlashcards, items)
	var ie *ItemError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *ItemError, got %v", err)
	}
	if ie.Index != 2 {
		t.Errorf("ItemError.Index = %d, want 2", ie.Index)
	}
}

func TestLoad_DoesNotAliasOptions(t *testing.T) {
	items := testQuestions()
	s := mustLoad(t, KindQuiz, items)
	items[0].Question.Options["A"] = "changed"
	if s.Items[0].Question.Options["A"] != "3" {
		t.Error("loaded item shares its option map with the caller")
	}
}

func TestReveal_Idempotent(t *testing.T) {
	s := mustLoad(t, KindFlashcards, testCards())
	once, err := Reveal(s)
	if err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	twice, err := Reveal(once)
	if err != nil {
		t.Fatalf("Reveal again: %v", err)
	}
	if once.Revealed != twice.Revealed || once.Index != twice.Index || len(once.Outcomes) != len(twice.Outcomes) {
		t.Errorf("reveal twice = %+v, want %+v", twice, once)
	}
}

func TestReveal_QuizNeedsSelection(t *testing.T) {
	s := mustLoad(t, KindQuiz, testQuestions())
	got, err := Reveal(s)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Reveal err = %v, want ErrInvalidTransition", err)
	}
	if got.Revealed {
		t.Error("refused reveal must not change state")
	}
}

func TestReveal_QuizLocksSelection(t *testing.T) {
	s := mustLoad(t, KindQuiz, testQuestions())
	s, _ = SelectAnswer(s, "A")
	s, err := Reveal(s)
	if err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	if s.CurrentOutcome() != OutcomeIncorrect {
		t.Errorf("outcome = %v, want incorrect", s.CurrentOutcome())
	}
}

func TestSelectAnswer_IgnoredAfterReveal(t *testing.T) {
	s := answer(t, mustLoad(t, KindQuiz, testQuestions()), "B")
	got, err := SelectAnswer(s, "A")
	if err != nil {
		t.Fatalf("SelectAnswer after reveal: %v", err)
	}
	if got.Pending != "B" {
		t.Errorf("Pending = %q, want B", got.Pending)
	}
}

func TestSelectAnswer_UnknownLabel(t *testing.T) {
	s := mustLoad(t, KindQuiz, testQuestions())
	if _, err := SelectAnswer(s, "Z"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestSubmitAnswer_RequiresSelection(t *testing.T) {
	s := mustLoad(t, KindQuiz, testQuestions())
	got, err := SubmitAnswer(s)
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want *TransitionError", err)
	}
	if te.Op != "submit" {
		t.Errorf("Op = %q, want submit", te.Op)
	}
	if got.Revealed || len(got.Outcomes) != 0 {
		t.Error("refused submit must not change state")
	}
}

func TestSubmitAnswer_DoesNotMutateInput(t *testing.T) {
	s := mustLoad(t, KindQuiz, testQuestions())
	s, _ = SelectAnswer(s, "B")
	before := s
	_, _ = SubmitAnswer(s)
	if len(before.Outcomes) != 0 || before.Revealed {
		t.Error("SubmitAnswer mutated its input")
	}
}

func TestMarkOutcome_RequiresReveal(t *testing.T) {
	s := mustLoad(t, KindFlashcards, testCards())
	got, err := MarkOutcome(s, OutcomeMastered)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	if got.CurrentOutcome() != OutcomeUnset || got.Index != 0 {
		t.Error("refused mark must not change state")
	}
}

func TestMarkOutcome_RejectsQuizOutcome(t *testing.T) {
	s, _ := Reveal(mustLoad(t, KindFlashcards, testCards()))
	if _, err := MarkOutcome(s, OutcomeCorrect); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestMarkOutcome_Advances(t *testing.T) {
	s := flipAndMark(t, mustLoad(t, KindFlashcards, testCards()), OutcomeLearning)
	if s.Index != 1 || s.Revealed {
		t.Errorf("after mark: index=%d revealed=%v, want 1 false", s.Index, s.Revealed)
	}
	if s.Outcome(0) != OutcomeLearning {
		t.Errorf("outcome(0) = %v, want learning", s.Outcome(0))
	}
}

func TestMarkOutcome_LastCardWithUnseenStays(t *testing.T) {
	s := mustLoad(t, KindFlashcards, testCards())
	s = next(t, next(t, s)) // skip to the last card without marking
	s = flipAndMark(t, s, OutcomeMastered)
	if s.Finished {
		t.Error("session finished with unseen cards")
	}
	if s.Index != 2 || s.Outcome(2) != OutcomeMastered {
		t.Errorf("index=%d outcome=%v, want 2 mastered", s.Index, s.Outcome(2))
	}
}

func TestAdvance_QuizRequiresAnswer(t *testing.T) {
	s := mustLoad(t, KindQuiz, testQuestions())
	if _, err := Advance(s); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestAdvance_ClearsRevealAndPending(t *testing.T) {
	s := answer(t, mustLoad(t, KindQuiz, testQuestions()), "B")
	s = next(t, s)
	if s.Revealed || s.Pending != "" || s.Index != 1 {
		t.Errorf("after advance: %+v", s)
	}
}

func TestCompletion_OnlyByAdvancingPastLast(t *testing.T) {
	s := mustLoad(t, KindQuiz, testQuestions())
	for i := range s.Items {
		s = answer(t, s, "A")
		if s.Finished {
			t.Fatalf("finished before advancing from item %d", i)
		}
		s = next(t, s)
		if i < len(s.Items)-1 && s.Finished {
			t.Fatalf("finished after advancing from item %d", i)
		}
	}
	if !s.Finished {
		t.Fatal("expected finished after advancing past the last item")
	}
	if s.Index != len(s.Items)-1 {
		t.Errorf("Index = %d, want last index", s.Index)
	}

	again := next(t, s)
	if again.Index != s.Index || !again.Finished {
		t.Error("Advance on a finished session must be a no-op")
	}
}

func TestRetreat(t *testing.T) {
	s := flipAndMark(t, mustLoad(t, KindFlashcards, testCards()), OutcomeMastered)
	s, err := Retreat(s)
	if err != nil {
		t.Fatalf("Retreat: %v", err)
	}
	if s.Index != 0 || s.Revealed {
		t.Errorf("index=%d revealed=%v, want 0 false", s.Index, s.Revealed)
	}
	if s.Outcome(0) != OutcomeMastered {
		t.Error("Retreat erased a recorded outcome")
	}

	atStart, err := Retreat(s)
	if err != nil || atStart.Index != 0 {
		t.Errorf("Retreat at 0: index=%d err=%v, want no-op", atStart.Index, err)
	}
}

func TestRetreat_QuizForwardOnly(t *testing.T) {
	s := next(t, answer(t, mustLoad(t, KindQuiz, testQuestions()), "B"))
	got, err := Retreat(s)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	if got.Index != 1 {
		t.Errorf("Index = %d, want 1", got.Index)
	}
}

func TestOutcomePermanence(t *testing.T) {
	s := flipAndMark(t, mustLoad(t, KindFlashcards, testCards()), OutcomeLearning)
	ops := []func(SessionState) (SessionState, error){Advance, Retreat, Reveal, Retreat, Advance}
	for i, op := range ops {
		var err error
		s, err = op(s)
		if err != nil {
			t.Fatalf("op %d: %v", i, err)
		}
		if s.Outcome(0) != OutcomeLearning {
			t.Fatalf("op %d changed outcome(0) to %v", i, s.Outcome(0))
		}
	}
}

func TestShuffle_OutcomesFollowItems(t *testing.T) {
	s := mustLoad(t, KindFlashcards, testCards())
	s = flipAndMark(t, s, OutcomeMastered) // card 0
	s = flipAndMark(t, s, OutcomeLearning) // card 1

	r := rand.New(rand.NewPCG(1, 2))
	shuffled := Shuffle(s, r)
	if shuffled.Index != 0 || shuffled.Revealed {
		t.Errorf("index=%d revealed=%v, want 0 false", shuffled.Index, shuffled.Revealed)
	}
	if len(shuffled.Items) != len(s.Items) {
		t.Fatalf("len = %d, want %d", len(shuffled.Items), len(s.Items))
	}
	for _, it := range shuffled.Items {
		if shuffled.Outcome(it.ID) != s.Outcome(it.ID) {
			t.Errorf("item %d outcome = %v, want %v", it.ID, shuffled.Outcome(it.ID), s.Outcome(it.ID))
		}
	}
	for i, it := range s.Items {
		if it.ID != i {
			t.Fatal("Shuffle reordered the input state")
		}
	}
}

func TestReset(t *testing.T) {
	s := mustLoad(t, KindFlashcards, testCards())
	s = flipAndMark(t, s, OutcomeMastered)
	s = Shuffle(s, rand.New(rand.NewPCG(7, 7)))
	s = Reset(s)
	if s.Answered() != 0 || s.Index != 0 || s.Finished {
		t.Errorf("reset state not fresh: %+v", s)
	}
	for i, it := range s.Items {
		if it.ID != i {
			t.Errorf("position %d holds item %d, want load order", i, it.ID)
		}
	}
}

func TestRestrictToDifficult_NoneAvailable(t *testing.T) {
	s := mustLoad(t, KindFlashcards, testCards())
	for range s.Items {
		s = flipAndMark(t, s, OutcomeMastered)
	}
	if _, err := RestrictToDifficult(s); !errors.Is(err, ErrNoDifficultItems) {
		t.Errorf("err = %v, want ErrNoDifficultItems", err)
	}
}

func TestRestrictToDifficult_PreservesOriginalOrder(t *testing.T) {
	s := mustLoad(t, KindFlashcards, testCards())
	s = flipAndMark(t, s, OutcomeLearning)
	s = flipAndMark(t, s, OutcomeMastered)
	s = flipAndMark(t, s, OutcomeLearning)
	// Shuffle after finishing so the review order differs from load order.
	s = Shuffle(s, rand.New(rand.NewPCG(3, 9)))

	sub, err := RestrictToDifficult(s)
	if err != nil {
		t.Fatalf("RestrictToDifficult: %v", err)
	}
	if sub.Len() != 2 || sub.Items[0].ID != 0 || sub.Items[1].ID != 2 {
		t.Fatalf("difficult items = %+v, want IDs [0 2]", sub.Items)
	}
	if sub.Answered() != 0 || sub.Index != 0 || sub.Finished {
		t.Error("derived session must start fresh")
	}
	if got := Summarize(s).DifficultCount; got != sub.Len() {
		t.Errorf("DifficultCount = %d, want %d", got, sub.Len())
	}
}

func TestScenario_QuizHappyPath(t *testing.T) {
	s := mustLoad(t, KindQuiz, testQuestions())
	s = next(t, answer(t, s, "B")) // correct
	s = next(t, answer(t, s, "C")) // incorrect
	s = next(t, answer(t, s, "A")) // correct
	if !s.Finished {
		t.Fatal("expected finished session")
	}

	got := Summarize(s)
	want := Summary{Total: 3, CorrectOrMastered: 2, PctCorrect: 67, DifficultCount: 1}
	if got != want {
		t.Errorf("Summarize = %+v, want %+v", got, want)
	}

	sub, err := RestrictToDifficult(s)
	if err != nil {
		t.Fatalf("RestrictToDifficult: %v", err)
	}
	if sub.Len() != 1 || sub.Items[0].Question.Prompt != "Capital of France?" {
		t.Errorf("difficult session = %+v, want only Q2", sub.Items)
	}
}

func TestScenario_FlashcardsFullMastery(t *testing.T) {
	s := mustLoad(t, KindFlashcards, testCards())
	for range s.Items {
		s = flipAndMark(t, s, OutcomeMastered)
	}
	if !s.Finished {
		t.Fatal("expected finished session")
	}
	sum := Summarize(s)
	if sum.PctCorrect != 100 || sum.DifficultCount != 0 {
		t.Errorf("Summarize = %+v, want 100%% and no difficult items", sum)
	}
	if sum.CanReviewDifficult() {
		t.Error("Review Difficult must not be offered with zero difficult items")
	}
}

func TestApply_MatchesDirectCalls(t *testing.T) {
	s := mustLoad(t, KindFlashcards, testCards())
	viaApply, err := Apply(s, ActionReveal, nil)
	if err != nil {
		t.Fatalf("Apply reveal: %v", err)
	}
	direct, _ := Reveal(s)
	if viaApply.Revealed != direct.Revealed {
		t.Error("Apply(ActionReveal) differs from Reveal")
	}

	viaApply, err = Apply(viaApply, ActionMastered, nil)
	if err != nil {
		t.Fatalf("Apply mastered: %v", err)
	}
	if viaApply.Outcome(0) != OutcomeMastered || viaApply.Index != 1 {
		t.Errorf("Apply(ActionMastered) state = %+v", viaApply)
	}

	if _, err := Apply(viaApply, ActionShuffle, nil); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("shuffle without rng err = %v, want ErrInvalidTransition", err)
	}
}

func TestOutcomeLabels(t *testing.T) {
	tests := []struct {
		o    Outcome
		kind Kind
		want string
	}{
		{OutcomeUnset, KindQuiz, "unanswered"},
		{OutcomeUnset, KindFlashcards, "unseen"},
		{OutcomeCorrect, KindQuiz, "correct"},
		{OutcomeLearning, KindFlashcards, "learning"},
	}
	for _, tt := range tests {
		if got := tt.o.Label(tt.kind); got != tt.want {
			t.Errorf("%v.Label(%s) = %q, want %q", tt.o, tt.kind, got, tt.want)
		}
	}
}
