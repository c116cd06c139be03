package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var outcomeEventCols = []string{
	"session_id", "guide_id", "item_id", "kind", "outcome", "answer", "time_ms",
}

func (r *eventRepo) AppendOutcomeEvent(ctx context.Context, data OutcomeEventData) error {
	err := r.insert(ctx, OutcomeEventsTable.Name, outcomeEventCols, []any{
		data.SessionID, data.GuideID, data.ItemID, data.Kind, data.Outcome, data.Answer, data.TimeMs,
	})
	if err != nil {
		return fmt.Errorf("save outcome event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryOutcomeEvents(ctx context.Context, sessionID string) ([]OutcomeEvent, error) {
	var out []OutcomeEvent
	sel := selectEvents(OutcomeEventsTable.Name, outcomeEventCols, QueryOpts{})
	sel.Where(entsql.EQ("session_id", sessionID))
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var e OutcomeEvent
		if err := rows.Scan(
			&e.ID, &e.Sequence, &e.Timestamp,
			&e.SessionID, &e.GuideID, &e.ItemID, &e.Kind, &e.Outcome, &e.Answer, &e.TimeMs,
		); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query outcome events: %w", err)
	}
	return out, nil
}
