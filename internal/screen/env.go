package screen

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/studyhub/studydesk/internal/api"
	"github.com/studyhub/studydesk/internal/calendar"
	"github.com/studyhub/studydesk/internal/guide"
	"github.com/studyhub/studydesk/internal/handoff"
	"github.com/studyhub/studydesk/internal/store"
)

// AssignmentLister lists assignments due in a date range.
type AssignmentLister interface {
	ListAssignments(ctx context.Context, r calendar.Range) ([]api.Assignment, error)
}

// Generator asks the backend to generate a quiz or flashcard set.
type Generator interface {
	RequestGeneration(ctx context.Context, req handoff.Request) (*guide.Guide, error)
}

// Env carries the dependencies screens share. A nil field disables the
// feature that needs it.
type Env struct {
	Guides      guide.Source
	Assignments AssignmentLister
	Generator   Generator
	Events      store.EventRepo

	// Handoff carries a generation request from the calendar to the
	// guide list. Owned by the app model.
	Handoff *handoff.Slot

	Now  func() time.Time
	Rand *rand.Rand
}

// Clock returns the current time from Now, or time.Now when unset.
func (e *Env) Clock() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// RNG returns the shared random source, creating one on first use.
func (e *Env) RNG() *rand.Rand {
	if e.Rand == nil {
		e.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
	}
	return e.Rand
}
