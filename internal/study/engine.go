package study

import (
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
)

// Load starts a new session over items. Items are numbered by their
// position, which becomes their identity for the rest of the session.
// Load rejects empty input and any item that is malformed for kind.
func Load(kind Kind, items []Item) (SessionState, error) {
	if !kind.Valid() {
		return SessionState{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidItem, kind)
	}
	if len(items) == 0 {
		return SessionState{}, ErrEmptySession
	}

	loaded := make([]Item, len(items))
	for i, it := range items {
		if err := it.validate(kind); err != nil {
			return SessionState{}, &ItemError{Index: i, Err: err}
		}
		it.ID = i
		it.Question.Options = maps.Clone(it.Question.Options)
		loaded[i] = it
	}
	return newSession(kind, loaded), nil
}

func newSession(kind Kind, items []Item) SessionState {
	return SessionState{
		Kind:     kind,
		Items:    items,
		Outcomes: make(map[int]Outcome),
	}
}

// Reveal shows the answer or flips the card. Revealing twice is the same
// as revealing once. On a quiz the learner must have selected an option
// first, and revealing locks in that selection.
func Reveal(s SessionState) (SessionState, error) {
	if s.Revealed {
		return s, nil
	}
	if s.Kind == KindQuiz {
		if !s.HasPending() {
			return s, refuse("reveal", "select an answer first")
		}
		return SubmitAnswer(s)
	}
	next := s.clone()
	next.Revealed = true
	return next, nil
}

// SelectAnswer records label as the pending choice for the current
// question. It is ignored once the answer has been revealed.
func SelectAnswer(s SessionState, label string) (SessionState, error) {
	if s.Kind != KindQuiz {
		return s, refuse("select", "flashcards have no options")
	}
	if s.Revealed {
		return s, nil
	}
	if _, ok := s.Current().Question.Options[label]; !ok {
		return s, refuse("select", fmt.Sprintf("no option %q", label))
	}
	next := s.clone()
	next.Pending = label
	return next, nil
}

// SubmitAnswer scores the pending selection and reveals the answer.
func SubmitAnswer(s SessionState) (SessionState, error) {
	if s.Kind != KindQuiz {
		return s, refuse("submit", "only quiz questions can be submitted")
	}
	if s.Revealed {
		return s, refuse("submit", "answer already submitted")
	}
	if !s.HasPending() {
		return s, refuse("submit", "no answer selected")
	}
	next := s.clone()
	it := next.Current()
	if it.Question.IsCorrect(next.Pending) {
		next.Outcomes[it.ID] = OutcomeCorrect
	} else {
		next.Outcomes[it.ID] = OutcomeIncorrect
	}
	next.Revealed = true
	return next, nil
}

// MarkOutcome records the learner's self-assessment for the current
// flashcard and moves on. The card must have been flipped.
//
// When the card is the last one and other cards are still unseen the mark
// is kept but the session does not finish; the state stays on the card.
func MarkOutcome(s SessionState, o Outcome) (SessionState, error) {
	if s.Kind != KindFlashcards {
		return s, refuse("mark", "only flashcards can be marked")
	}
	if !o.allowedFor(s.Kind) {
		return s, refuse("mark", fmt.Sprintf("outcome %s is not a flashcard outcome", o))
	}
	if !s.Revealed {
		return s, refuse("mark", "flip the card first")
	}
	marked := s.clone()
	marked.Outcomes[marked.Current().ID] = o

	next, err := Advance(marked)
	if err != nil {
		return marked, nil
	}
	return next, nil
}

// Advance moves to the next item. Advancing from the last item finishes
// the session, which requires every item to have an outcome. A quiz
// question must be answered before moving past it.
func Advance(s SessionState) (SessionState, error) {
	if s.Finished {
		return s, nil
	}
	if s.Kind == KindQuiz && s.CurrentOutcome() == OutcomeUnset {
		return s, refuse("advance", "answer the question first")
	}
	if s.IsLast() {
		if left := s.Len() - s.Answered(); left > 0 {
			return s, refuse("advance", fmt.Sprintf("%d item(s) still without an outcome", left))
		}
		next := s.clone()
		next.Finished = true
		return next, nil
	}
	next := s.clone()
	next.Index++
	next.Revealed = false
	next.Pending = ""
	return next, nil
}

// Retreat moves back one flashcard. Recorded outcomes are kept. Quizzes are
// forward-only.
func Retreat(s SessionState) (SessionState, error) {
	if s.Kind == KindQuiz {
		return s, refuse("retreat", "quiz navigation is forward-only")
	}
	if s.Index == 0 {
		return s, nil
	}
	next := s.clone()
	next.Index--
	next.Revealed = false
	next.Pending = ""
	next.Finished = false
	return next, nil
}

// Shuffle randomly reorders the items using r and restarts from the first
// item. Outcomes are keyed by item identity and survive the shuffle.
func Shuffle(s SessionState, r *rand.Rand) SessionState {
	next := s.clone()
	next.Items = slices.Clone(s.Items)
	r.Shuffle(len(next.Items), func(i, j int) {
		next.Items[i], next.Items[j] = next.Items[j], next.Items[i]
	})
	next.Index = 0
	next.Revealed = false
	next.Pending = ""
	next.Finished = false
	return next
}

// Reset starts over with the same items in their loaded order and no
// recorded outcomes.
func Reset(s SessionState) SessionState {
	items := slices.Clone(s.Items)
	slices.SortFunc(items, func(a, b Item) int { return a.ID - b.ID })
	return newSession(s.Kind, items)
}

// Difficult returns the items whose outcome is incorrect or learning, in
// their original relative order.
func Difficult(s SessionState) []Item {
	var items []Item
	for _, it := range s.Items {
		if s.Outcomes[it.ID].Difficult() {
			items = append(items, it)
		}
	}
	slices.SortFunc(items, func(a, b Item) int { return a.ID - b.ID })
	return items
}

// RestrictToDifficult builds a fresh session over the difficult items of s.
// Item identities are preserved so results can be related back to the
// guide.
func RestrictToDifficult(s SessionState) (SessionState, error) {
	items := Difficult(s)
	if len(items) == 0 {
		return s, ErrNoDifficultItems
	}
	return newSession(s.Kind, items), nil
}
