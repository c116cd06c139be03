package study

// Kind selects which review flow a session runs.
type Kind string

const (
	KindQuiz       Kind = "quiz"
	KindFlashcards Kind = "flashcards"
)

// Valid reports whether k is a known session kind.
func (k Kind) Valid() bool {
	return k == KindQuiz || k == KindFlashcards
}

// Outcome is the recorded result for one item.
// The zero value is the unset outcome: "unanswered" for a quiz question,
// "unseen" for a flashcard.
type Outcome int

const (
	OutcomeUnset Outcome = iota
	OutcomeCorrect
	OutcomeIncorrect
	OutcomeMastered
	OutcomeLearning
)

// String returns the outcome name as stored in the activity log.
func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	case OutcomeMastered:
		return "mastered"
	case OutcomeLearning:
		return "learning"
	default:
		return "unset"
	}
}

// Label returns the kind-specific display name of the outcome.
func (o Outcome) Label(k Kind) string {
	if o != OutcomeUnset {
		return o.String()
	}
	if k == KindFlashcards {
		return "unseen"
	}
	return "unanswered"
}

// Positive reports whether the outcome counts toward the score.
func (o Outcome) Positive() bool {
	return o == OutcomeCorrect || o == OutcomeMastered
}

// Difficult reports whether the outcome marks an item for re-review.
func (o Outcome) Difficult() bool {
	return o == OutcomeIncorrect || o == OutcomeLearning
}

// allowedFor reports whether o may be recorded in a session of kind k.
func (o Outcome) allowedFor(k Kind) bool {
	switch k {
	case KindQuiz:
		return o == OutcomeCorrect || o == OutcomeIncorrect
	case KindFlashcards:
		return o == OutcomeMastered || o == OutcomeLearning
	}
	return false
}
