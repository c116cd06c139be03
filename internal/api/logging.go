package api

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/studyhub/studydesk/internal/store"
)

// LoggingDoer is a decorator that records every backend request as an event.
type LoggingDoer struct {
	inner     Doer
	eventRepo store.EventRepo
}

// WithLogging wraps a Doer with event logging.
func WithLogging(d Doer, repo store.EventRepo) Doer {
	return &LoggingDoer{inner: d, eventRepo: repo}
}

func (l *LoggingDoer) Do(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Do(ctx, req)

	method := req.Method
	if method == "" {
		method = "GET"
	}
	data := store.RequestEventData{
		Method:    method,
		Path:      req.Path,
		Purpose:   PurposeFrom(ctx),
		Attempt:   attemptFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.Status = resp.Status
	}
	if err != nil {
		data.Status = statusOf(err)
		data.ErrorMessage = err.Error()
	}

	// Log the event but don't fail the request if logging fails. The
	// request context may already be cancelled.
	if logErr := l.eventRepo.AppendRequestEvent(context.WithoutCancel(ctx), data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log request event: %v\n", logErr)
	}

	return resp, err
}

// statusOf returns the HTTP status carried by err, or 0 for transport errors.
func statusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}
