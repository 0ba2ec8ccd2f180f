package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	return r.appendEvent(ctx, sessionEventsTable.Name,
		[]string{"session_id", "action", "questions_served", "correct_answers", "duration_secs"},
		[]any{data.SessionID, data.Action, data.QuestionsServed, data.CorrectAnswers, data.DurationSecs})
}

// QuerySessionSummaries returns completed sessions newest first.
func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	sel := builder().Select("session_id", "timestamp", "questions_served", "correct_answers", "duration_secs").
		From(entsql.Table(sessionEventsTable.Name)).
		Where(entsql.EQ("action", "end")).
		OrderBy(entsql.Desc("sequence"))
	sel = applyOpts(sel, opts)

	var out []SessionSummaryRecord
	err := queryRows(ctx, r.db, sel, func(rows *sql.Rows) error {
		var (
			s  SessionSummaryRecord
			ts int64
		)
		if err := rows.Scan(&s.SessionID, &ts, &s.QuestionsServed, &s.CorrectAnswers, &s.DurationSecs); err != nil {
			return err
		}
		s.Timestamp = fromMillis(ts)
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	return out, nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	return r.appendEvent(ctx, answerEventsTable.Name,
		[]string{
			"session_id", "question_id", "source", "mode", "shape", "length", "interval",
			"correct_answer", "learner_answer", "correct", "time_ms",
		},
		[]any{
			data.SessionID, data.QuestionID, data.Source, data.Mode, data.Shape, data.Length, data.Interval,
			data.CorrectAnswer, data.LearnerAnswer, data.Correct, data.TimeMs,
		})
}

// QueryAnswerEvents returns answers newest first.
func (r *eventRepo) QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error) {
	sel := builder().Select(
		"sequence", "timestamp", "session_id", "question_id", "source", "mode", "shape",
		"length", "interval", "correct_answer", "learner_answer", "correct", "time_ms",
	).
		From(entsql.Table(answerEventsTable.Name)).
		OrderBy(entsql.Desc("sequence"))
	sel = applyOpts(sel, opts)

	var out []AnswerEventRecord
	err := queryRows(ctx, r.db, sel, func(rows *sql.Rows) error {
		var (
			a  AnswerEventRecord
			ts int64
		)
		err := rows.Scan(&a.Sequence, &ts, &a.SessionID, &a.QuestionID, &a.Source, &a.Mode, &a.Shape,
			&a.Length, &a.Interval, &a.CorrectAnswer, &a.LearnerAnswer, &a.Correct, &a.TimeMs)
		if err != nil {
			return err
		}
		a.Timestamp = fromMillis(ts)
		out = append(out, a)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	return out, nil
}

// AccuracyByMode tallies answers per mode in mode name order.
func (r *eventRepo) AccuracyByMode(ctx context.Context) ([]ModeAccuracy, error) {
	sel := builder().Select(
		"mode",
		entsql.As(entsql.Count("*"), "attempts"),
		entsql.As(entsql.Sum("correct"), "correct_count"),
	).
		From(entsql.Table(answerEventsTable.Name)).
		GroupBy("mode").
		OrderBy("mode")

	var out []ModeAccuracy
	err := queryRows(ctx, r.db, sel, func(rows *sql.Rows) error {
		var m ModeAccuracy
		if err := rows.Scan(&m.Mode, &m.Attempts, &m.Correct); err != nil {
			return err
		}
		out = append(out, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query accuracy by mode: %w", err)
	}
	return out, nil
}

func (r *eventRepo) LatestAnswerTime(ctx context.Context, mode string) (time.Time, error) {
	query, args := builder().Select("timestamp").
		From(entsql.Table(answerEventsTable.Name)).
		Where(entsql.EQ("mode", mode)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Query()

	var ts int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("query latest answer time: %w", err)
	}
	return fromMillis(ts), nil
}

func (r *eventRepo) AppendDiagnosisEvent(ctx context.Context, data DiagnosisEventData) error {
	var misconception any
	if data.MisconceptionID != nil {
		misconception = *data.MisconceptionID
	}
	return r.appendEvent(ctx, diagnosisEventsTable.Name,
		[]string{
			"session_id", "question_id", "mode", "correct_answer", "learner_answer",
			"category", "misconception_id", "confidence", "classifier_name", "reasoning",
		},
		[]any{
			data.SessionID, data.QuestionID, data.Mode, data.CorrectAnswer, data.LearnerAnswer,
			data.Category, misconception, data.Confidence, data.ClassifierName, data.Reasoning,
		})
}

func (r *eventRepo) AppendLessonEvent(ctx context.Context, data LessonEventData) error {
	return r.appendEvent(ctx, lessonEventsTable.Name,
		[]string{"session_id", "mode", "lesson_title", "practice_attempted", "practice_correct"},
		[]any{data.SessionID, data.Mode, data.LessonTitle, data.PracticeAttempted, data.PracticeCorrect})
}
