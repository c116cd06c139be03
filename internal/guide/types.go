// Package guide decodes and validates study guides produced by the backend
// and exposes them as review items.
package guide

import (
	"time"

	"github.com/studyhub/studydesk/internal/study"
)

// Type is the kind of study artifact the backend generated.
type Type string

const (
	TypeQuiz       Type = "quiz"
	TypeFlashcards Type = "flashcards"
	TypeStudyGuide Type = "study_guide"
)

// SessionKind returns the review session kind for t, or false for prose
// study guides which are read, not reviewed.
func (t Type) SessionKind() (study.Kind, bool) {
	switch t {
	case TypeQuiz:
		return study.KindQuiz, true
	case TypeFlashcards:
		return study.KindFlashcards, true
	}
	return "", false
}

// Guide is a decoded study artifact.
type Guide struct {
	ID        string
	Title     string
	Type      Type
	CourseID  string
	CreatedAt time.Time

	// Items holds the questions or cards. Empty for study guides.
	Items []study.Item

	// Body is the prose of a study guide. Empty for quizzes and flashcards.
	Body string
}

// Reviewable reports whether the guide can start a review session.
func (g *Guide) Reviewable() bool {
	_, ok := g.Type.SessionKind()
	return ok && len(g.Items) > 0
}

// Start loads a review session over the guide's items.
func (g *Guide) Start() (study.SessionState, error) {
	kind, ok := g.Type.SessionKind()
	if !ok {
		return study.SessionState{}, &InvalidGuideError{ID: g.ID, Err: errNotReviewable}
	}
	return study.Load(kind, g.Items)
}

// Summary is a guide list entry.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      Type      `json:"guide_type"`
	CourseID  string    `json:"course_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
