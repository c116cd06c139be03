package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Every event table starts with the same id, sequence and timestamp
// columns so events of all types share one global ordering.
func eventColumns(cols ...*schema.Column) []*schema.Column {
	base := []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
	return append(base, cols...)
}

var (
	// SessionEventsColumns holds the columns for the "session_events" table.
	SessionEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "guide_id", Type: field.TypeString},
		&schema.Column{Name: "guide_title", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "kind", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "difficult_only", Type: field.TypeBool, Default: false},
		&schema.Column{Name: "total", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "correct_or_mastered", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "pct_correct", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "difficult_count", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt, Default: 0},
	)
	// SessionEventsTable holds the schema information for the "session_events" table.
	SessionEventsTable = &schema.Table{
		Name:       "session_events",
		Columns:    SessionEventsColumns,
		PrimaryKey: []*schema.Column{SessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_session_id", Columns: []*schema.Column{SessionEventsColumns[3]}},
			{Name: "sessionevent_guide_id", Columns: []*schema.Column{SessionEventsColumns[4]}},
		},
	}

	// OutcomeEventsColumns holds the columns for the "outcome_events" table.
	OutcomeEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "guide_id", Type: field.TypeString},
		&schema.Column{Name: "item_id", Type: field.TypeInt},
		&schema.Column{Name: "kind", Type: field.TypeString},
		&schema.Column{Name: "outcome", Type: field.TypeString},
		&schema.Column{Name: "answer", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "time_ms", Type: field.TypeInt, Default: 0},
	)
	// OutcomeEventsTable holds the schema information for the "outcome_events" table.
	OutcomeEventsTable = &schema.Table{
		Name:       "outcome_events",
		Columns:    OutcomeEventsColumns,
		PrimaryKey: []*schema.Column{OutcomeEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "outcomeevent_session_id", Columns: []*schema.Column{OutcomeEventsColumns[3]}},
			{Name: "outcomeevent_guide_id_item_id", Columns: []*schema.Column{OutcomeEventsColumns[4], OutcomeEventsColumns[5]}},
		},
	}

	// RequestEventsColumns holds the columns for the "request_events" table.
	RequestEventsColumns = eventColumns(
		&schema.Column{Name: "method", Type: field.TypeString},
		&schema.Column{Name: "path", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "status", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "attempt", Type: field.TypeInt, Default: 1},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
	)
	// RequestEventsTable holds the schema information for the "request_events" table.
	RequestEventsTable = &schema.Table{
		Name:       "request_events",
		Columns:    RequestEventsColumns,
		PrimaryKey: []*schema.Column{RequestEventsColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		SessionEventsTable,
		OutcomeEventsTable,
		RequestEventsTable,
	}
)
