package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var requestEventCols = []string{
	"method", "path", "purpose", "status", "attempt", "latency_ms", "success", "error_message",
}

func (r *eventRepo) AppendRequestEvent(ctx context.Context, data RequestEventData) error {
	attempt := data.Attempt
	if attempt < 1 {
		attempt = 1
	}
	err := r.insert(ctx, RequestEventsTable.Name, requestEventCols, []any{
		data.Method, data.Path, data.Purpose, data.Status, attempt,
		data.LatencyMs, data.Success, data.ErrorMessage,
	})
	if err != nil {
		return fmt.Errorf("save request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRequestEvents(ctx context.Context, opts QueryOpts) ([]RequestEvent, error) {
	var out []RequestEvent
	sel := selectEvents(RequestEventsTable.Name, requestEventCols, opts)
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var e RequestEvent
		if err := rows.Scan(
			&e.ID, &e.Sequence, &e.Timestamp,
			&e.Method, &e.Path, &e.Purpose, &e.Status, &e.Attempt,
			&e.LatencyMs, &e.Success, &e.ErrorMessage,
		); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query request events: %w", err)
	}
	return out, nil
}
