package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var sessionEventCols = []string{
	"session_id", "guide_id", "guide_title", "kind", "action", "difficult_only",
	"total", "correct_or_mastered", "pct_correct", "difficult_count", "duration_secs",
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insert(ctx, SessionEventsTable.Name, sessionEventCols, []any{
		data.SessionID, data.GuideID, data.GuideTitle, data.Kind, data.Action, data.DifficultOnly,
		data.Total, data.CorrectOrMastered, data.PctCorrect, data.DifficultCount, data.DurationSecs,
	})
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	var out []SessionEvent
	sel := selectEvents(SessionEventsTable.Name, sessionEventCols, opts)
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var e SessionEvent
		if err := rows.Scan(
			&e.ID, &e.Sequence, &e.Timestamp,
			&e.SessionID, &e.GuideID, &e.GuideTitle, &e.Kind, &e.Action, &e.DifficultOnly,
			&e.Total, &e.CorrectOrMastered, &e.PctCorrect, &e.DifficultCount, &e.DurationSecs,
		); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) GuideStats(ctx context.Context, guideID string) (GuideStats, error) {
	var stats GuideStats
	sel := selectEvents(SessionEventsTable.Name, []string{"pct_correct"}, QueryOpts{})
	sel.Where(entsql.And(
		entsql.EQ("guide_id", guideID),
		entsql.EQ("action", "end"),
	))
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var meta EventMeta
		var pct int
		if err := rows.Scan(&meta.ID, &meta.Sequence, &meta.Timestamp, &pct); err != nil {
			return err
		}
		if stats.Sessions == 0 || pct > stats.BestPct {
			stats.BestPct = pct
		}
		stats.Sessions++
		stats.LastPct = pct
		stats.LastAt = meta.Timestamp
		return nil
	})
	if err != nil {
		return GuideStats{}, fmt.Errorf("guide stats: %w", err)
	}
	return stats, nil
}
