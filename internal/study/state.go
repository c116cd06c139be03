package study

import "maps"

// SessionState is the full state of one review session.
//
// A SessionState is a value: every operation returns a new state and leaves
// its input untouched, so a screen can keep the previous state around (for
// example to undo) without defensive copies.
type SessionState struct {
	// Kind selects quiz or flashcard semantics.
	Kind Kind

	// Items is the review order. It is only reordered by Shuffle and only
	// narrowed by RestrictToDifficult.
	Items []Item

	// Index is the position of the current item. Always a valid index into
	// Items; it stays on the last item once Finished is set.
	Index int

	// Revealed is true when the answer is shown (quiz) or the card is
	// flipped (flashcards).
	Revealed bool

	// Pending is the selected but unsubmitted option label (quiz only).
	Pending string

	// Outcomes holds the recorded outcome per item ID. Missing entries are
	// OutcomeUnset.
	Outcomes map[int]Outcome

	// Finished is set when the learner advances past the last item.
	Finished bool
}

// Current returns the item at the current index.
func (s SessionState) Current() Item {
	return s.Items[s.Index]
}

// Outcome returns the recorded outcome of the item with the given ID.
func (s SessionState) Outcome(id int) Outcome {
	return s.Outcomes[id]
}

// CurrentOutcome returns the outcome recorded for the current item.
func (s SessionState) CurrentOutcome() Outcome {
	return s.Outcomes[s.Current().ID]
}

// Len returns the number of items in the session.
func (s SessionState) Len() int {
	return len(s.Items)
}

// IsLast reports whether the current item is the last one.
func (s SessionState) IsLast() bool {
	return s.Index == len(s.Items)-1
}

// Answered returns how many items have a recorded outcome.
func (s SessionState) Answered() int {
	n := 0
	for _, it := range s.Items {
		if s.Outcomes[it.ID] != OutcomeUnset {
			n++
		}
	}
	return n
}

// HasPending reports whether a quiz answer has been selected.
func (s SessionState) HasPending() bool {
	return s.Pending != ""
}

// clone returns a copy that can be modified without affecting s.
// Items is shared: no operation writes into an existing Items slice.
func (s SessionState) clone() SessionState {
	c := s
	c.Outcomes = maps.Clone(s.Outcomes)
	if c.Outcomes == nil {
		c.Outcomes = make(map[int]Outcome)
	}
	return c
}
