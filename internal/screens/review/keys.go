package review

import (
	tea "charm.land/bubbletea/v2"

	"github.com/studyhub/studydesk/internal/study"
	"github.com/studyhub/studydesk/internal/ui/components"
)

// flashcardKeys is the single dispatch table for flashcard sessions.
var flashcardKeys = map[string]study.Action{
	"space": study.ActionReveal,
	" ":     study.ActionReveal,
	"enter": study.ActionReveal,
	"right": study.ActionNext,
	"l":     study.ActionNext,
	"left":  study.ActionPrev,
	"h":     study.ActionPrev,
	"1":     study.ActionMastered,
	"2":     study.ActionLearning,
	"s":     study.ActionShuffle,
	"r":     study.ActionReset,
}

// quizKeys covers the non-option keys of a quiz. Option labels and digits
// are resolved against the current question first.
var quizKeys = map[string]study.Action{
	"enter": study.ActionSubmit,
	"n":     study.ActionNext,
	"right": study.ActionNext,
}

// keyIntent is what a key press asks for: either an engine action or an
// option selection.
type keyIntent struct {
	action study.Action
	label  string
}

func resolveKey(s study.SessionState, key string) keyIntent {
	switch s.Kind {
	case study.KindFlashcards:
		return keyIntent{action: flashcardKeys[key]}
	case study.KindQuiz:
		if !s.Revealed {
			if label, ok := components.LabelForKey(s.Current().Question, key); ok {
				return keyIntent{label: label}
			}
		}
		a := quizKeys[key]
		// Enter on a revealed answer moves on.
		if a == study.ActionSubmit && s.Revealed {
			a = study.ActionNext
		}
		return keyIntent{action: a}
	}
	return keyIntent{}
}

// resolveClick maps a left click to the action the same spot would get
// from the keyboard: flip an unrevealed card, or continue past a revealed
// answer.
func resolveClick(s study.SessionState, m tea.Mouse) study.Action {
	if m.Button != tea.MouseLeft {
		return study.ActionNone
	}
	if !s.Revealed {
		if s.Kind == study.KindFlashcards {
			return study.ActionReveal
		}
		return study.ActionNone
	}
	if s.Kind == study.KindQuiz {
		return study.ActionNext
	}
	return study.ActionNone
}
