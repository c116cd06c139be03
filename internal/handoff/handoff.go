// Package handoff passes a pending guide-generation request from the screen
// that asks for it to the screen that fulfils it.
package handoff

import (
	"errors"

	"github.com/studyhub/studydesk/internal/study"
)

// ErrSlotFull is returned by Offer when a request is already pending.
var ErrSlotFull = errors.New("handoff: a generation request is already pending")

// Request asks the backend to generate a study artifact for an assignment
// or course content.
type Request struct {
	Kind         study.Kind
	Title        string
	CourseID     string
	AssignmentID string
	ContentID    string
}

// Slot holds at most one pending Request. The zero value is not usable;
// create one with New. A Slot is safe for concurrent use.
type Slot struct {
	ch chan Request
}

// New returns an empty slot.
func New() *Slot {
	return &Slot{ch: make(chan Request, 1)}
}

// Offer stores req. It never blocks and never replaces a pending request.
func (s *Slot) Offer(req Request) error {
	select {
	case s.ch <- req:
		return nil
	default:
		return ErrSlotFull
	}
}

// Take removes and returns the pending request, if any.
func (s *Slot) Take() (Request, bool) {
	select {
	case req := <-s.ch:
		return req, true
	default:
		return Request{}, false
	}
}

// Pending reports whether a request is waiting to be taken.
func (s *Slot) Pending() bool {
	return len(s.ch) > 0
}
