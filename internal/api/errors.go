package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/studyhub/studydesk/internal/guide"
)

// ErrUnauthorized is wrapped by 401 and 403 responses.
var ErrUnauthorized = errors.New("api: not authorized (check STUDYDESK_TOKEN)")

// StatusError is a non-2xx reply that is not worth retrying.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// Unwrap maps well-known statuses onto sentinel errors so callers can use
// errors.Is(err, guide.ErrNotFound).
func (e *StatusError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return guide.ErrNotFound
	}
	return nil
}

// ErrRateLimit indicates the backend returned 429.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrUnavailable indicates the backend is down, unreachable or returned 5xx.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend unavailable: %v", e.Err)
	}
	return "backend unavailable"
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrClientOutdated is returned by CheckCompatibility when the backend
// requires a newer client.
type ErrClientOutdated struct {
	Client  string
	Minimum string
}

func (e *ErrClientOutdated) Error() string {
	return fmt.Sprintf("studydesk %s is too old for this server (requires %s or newer)", e.Client, e.Minimum)
}
