package study

import "math/rand/v2"

// Action is a learner intent, independent of how it was triggered.
// Key bindings and mouse clicks both resolve to an Action so that every
// input path reaches the same state.
type Action int

const (
	ActionNone Action = iota
	ActionReveal
	ActionSubmit
	ActionNext
	ActionPrev
	ActionMastered
	ActionLearning
	ActionShuffle
	ActionReset
)

func (a Action) String() string {
	switch a {
	case ActionReveal:
		return "reveal"
	case ActionSubmit:
		return "submit"
	case ActionNext:
		return "next"
	case ActionPrev:
		return "prev"
	case ActionMastered:
		return "mastered"
	case ActionLearning:
		return "learning"
	case ActionShuffle:
		return "shuffle"
	case ActionReset:
		return "reset"
	default:
		return "none"
	}
}

// Apply performs a on s. r is only used by ActionShuffle and may be nil
// otherwise.
func Apply(s SessionState, a Action, r *rand.Rand) (SessionState, error) {
	switch a {
	case ActionReveal:
		return Reveal(s)
	case ActionSubmit:
		return SubmitAnswer(s)
	case ActionNext:
		return Advance(s)
	case ActionPrev:
		return Retreat(s)
	case ActionMastered:
		return MarkOutcome(s, OutcomeMastered)
	case ActionLearning:
		return MarkOutcome(s, OutcomeLearning)
	case ActionShuffle:
		if r == nil {
			return s, refuse("shuffle", "no random source")
		}
		return Shuffle(s, r), nil
	case ActionReset:
		return Reset(s), nil
	}
	return s, nil
}
