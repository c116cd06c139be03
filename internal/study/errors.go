package study

import (
	"errors"
	"fmt"
)

// Sentinel errors for the study package.
// Use errors.Is to check: errors.Is(err, study.ErrInvalidTransition)
var (
	ErrEmptySession        = errors.New("study: session has no items")
	ErrInvalidItem         = errors.New("study: invalid item")
	ErrCorrectLabelMissing = errors.New("study: correct label is not one of the options")
	ErrInvalidTransition   = errors.New("study: invalid transition")
	ErrNoDifficultItems    = errors.New("study: no difficult items to review")
)

// TransitionError describes an operation the session refused to apply.
// The state returned alongside it is always the unchanged input state.
type TransitionError struct {
	Op     string // Operation name, e.g. "submit", "mark"
	Reason string // Human-readable description of the failed precondition
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("study: %s: %s", e.Op, e.Reason)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

func refuse(op, reason string) error {
	return &TransitionError{Op: op, Reason: reason}
}

// ItemError reports which item failed validation at load time.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("study: item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }
