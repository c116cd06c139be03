package guide

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by a Source when no guide has the requested ID.
var ErrNotFound = errors.New("guide: not found")

var errNotReviewable = errors.New("study guides cannot be reviewed")

// InvalidGuideError reports guide content that failed validation. No
// session is ever created from such content.
type InvalidGuideError struct {
	ID  string
	Err error
}

func (e *InvalidGuideError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid guide: %v", e.Err)
	}
	return fmt.Sprintf("invalid guide %q: %v", e.ID, e.Err)
}

func (e *InvalidGuideError) Unwrap() error { return e.Err }
