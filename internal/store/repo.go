package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Newest bool      // newest first instead of sequence order
}

// EventMeta holds the columns shared by every event table.
type EventMeta struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// SessionEventData captures a review session starting or ending.
type SessionEventData struct {
	SessionID  string
	GuideID    string
	GuideTitle string
	Kind       string // "quiz" | "flashcards"
	Action     string // "start" | "end"

	// DifficultOnly marks a "Review Difficult" session.
	DifficultOnly bool

	// Totals, set on "end".
	Total             int
	CorrectOrMastered int
	PctCorrect        int
	DifficultCount    int
	DurationSecs      int
}

// SessionEvent is a persisted SessionEventData.
type SessionEvent struct {
	EventMeta
	SessionEventData
}

// OutcomeEventData captures the outcome recorded for one item.
type OutcomeEventData struct {
	SessionID string
	GuideID   string
	ItemID    int
	Kind      string
	Outcome   string // correct, incorrect, mastered, learning
	Answer    string // selected label, quiz only
	TimeMs    int
}

// OutcomeEvent is a persisted OutcomeEventData.
type OutcomeEvent struct {
	EventMeta
	OutcomeEventData
}

// RequestEventData captures a single backend API call.
type RequestEventData struct {
	Method       string
	Path         string
	Purpose      string
	Status       int
	Attempt      int // 1-based retry attempt
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// RequestEvent is a persisted RequestEventData.
type RequestEvent struct {
	EventMeta
	RequestEventData
}

// GuideStats aggregates finished sessions for one guide.
type GuideStats struct {
	Sessions int
	LastPct  int
	BestPct  int
	LastAt   time.Time
}

// EventRepo provides append and query access to local activity events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendOutcomeEvent records the outcome of one item.
	AppendOutcomeEvent(ctx context.Context, data OutcomeEventData) error

	// AppendRequestEvent records a backend API call.
	AppendRequestEvent(ctx context.Context, data RequestEventData) error

	// QuerySessionEvents returns session events matching opts.
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error)

	// QueryOutcomeEvents returns the outcome events of one session in order.
	QueryOutcomeEvents(ctx context.Context, sessionID string) ([]OutcomeEvent, error)

	// QueryRequestEvents returns request events matching opts.
	QueryRequestEvents(ctx context.Context, opts QueryOpts) ([]RequestEvent, error)

	// GuideStats aggregates the finished sessions of guideID.
	GuideStats(ctx context.Context, guideID string) (GuideStats, error)
}
