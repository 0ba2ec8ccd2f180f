package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table declarations. Every event table carries the same id, sequence and
// timestamp prefix; timestamps are stored as Unix milliseconds.

func eventColumns(extra ...*schema.Column) []*schema.Column {
	return append([]*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
	}, extra...)
}

func eventTable(name string, cols []*schema.Column, indexed ...string) *schema.Table {
	t := &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
	}
	for _, col := range indexed {
		for _, c := range cols {
			if c.Name == col {
				t.Indexes = append(t.Indexes, &schema.Index{
					Name:    name + "_" + col,
					Columns: []*schema.Column{c},
				})
			}
		}
	}
	return t
}

var (
	globalSequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	globalSequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    globalSequenceColumns,
		PrimaryKey: []*schema.Column{globalSequenceColumns[0]},
	}

	llmRequestEventsTable = eventTable("llm_request_events", eventColumns(
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 1 << 20, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 1 << 20, Default: ""},
	), "purpose")

	answerEventsTable = eventTable("answer_events", eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "question_id", Type: field.TypeString},
		&schema.Column{Name: "source", Type: field.TypeString},
		&schema.Column{Name: "mode", Type: field.TypeString},
		&schema.Column{Name: "shape", Type: field.TypeString},
		&schema.Column{Name: "length", Type: field.TypeFloat64},
		&schema.Column{Name: "interval", Type: field.TypeFloat64},
		&schema.Column{Name: "correct_answer", Type: field.TypeInt},
		&schema.Column{Name: "learner_answer", Type: field.TypeInt},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "time_ms", Type: field.TypeInt64},
	), "session_id", "mode")

	sessionEventsTable = eventTable("session_events", eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "questions_served", Type: field.TypeInt},
		&schema.Column{Name: "correct_answers", Type: field.TypeInt},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt},
	), "session_id")

	diagnosisEventsTable = eventTable("diagnosis_events", eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "question_id", Type: field.TypeString},
		&schema.Column{Name: "mode", Type: field.TypeString},
		&schema.Column{Name: "correct_answer", Type: field.TypeInt},
		&schema.Column{Name: "learner_answer", Type: field.TypeInt},
		&schema.Column{Name: "category", Type: field.TypeString},
		&schema.Column{Name: "misconception_id", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "confidence", Type: field.TypeFloat64},
		&schema.Column{Name: "classifier_name", Type: field.TypeString},
		&schema.Column{Name: "reasoning", Type: field.TypeString, Default: ""},
	), "session_id")

	lessonEventsTable = eventTable("lesson_events", eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "mode", Type: field.TypeString},
		&schema.Column{Name: "lesson_title", Type: field.TypeString},
		&schema.Column{Name: "practice_attempted", Type: field.TypeBool},
		&schema.Column{Name: "practice_correct", Type: field.TypeBool},
	))

	gameEventsTable = eventTable("game_events", eventColumns(
		&schema.Column{Name: "score", Type: field.TypeInt},
		&schema.Column{Name: "submissions", Type: field.TypeInt},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt},
	), "score")

	// Snapshots reuse the sequence of the last event they cover, so it is
	// not unique here.
	snapshotsTable = eventTable("snapshots", []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "data", Type: field.TypeJSON},
	}, "timestamp")

	progressColumns = []*schema.Column{
		{Name: "name", Type: field.TypeString, Size: 64},
		{Name: "value", Type: field.TypeString},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	progressTable = &schema.Table{
		Name:       "progress",
		Columns:    progressColumns,
		PrimaryKey: []*schema.Column{progressColumns[0]},
	}
)

// tables lists every table in migration order.
var tables = []*schema.Table{
	globalSequenceTable,
	llmRequestEventsTable,
	answerEventsTable,
	sessionEventsTable,
	diagnosisEventsTable,
	lessonEventsTable,
	gameEventsTable,
	snapshotsTable,
	progressTable,
}

// eventTables are cleared by Reset.
var eventTables = []*schema.Table{
	llmRequestEventsTable,
	answerEventsTable,
	sessionEventsTable,
	diagnosisEventsTable,
	lessonEventsTable,
	gameEventsTable,
	snapshotsTable,
}
