package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/abhisek/arbor/internal/diagnosis"
	"github.com/abhisek/arbor/internal/store"
)

// SnapshotsKept is how many snapshots survive pruning after a session.
const SnapshotsKept = 10

// Recorder persists a session's events, progress and snapshot. Any repo
// may be nil; its writes are skipped.
type Recorder struct {
	Events    store.EventRepo
	Snapshots store.SnapshotRepo
	Progress  store.ProgressRepo
	Now       func() time.Time
}

func (r *Recorder) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Start records the session start.
func (r *Recorder) Start(ctx context.Context, state *SessionState) error {
	if r.Events == nil {
		return nil
	}
	return r.Events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: state.SessionID,
		Action:    "start",
	})
}

// Answer records one answer and, for wrong answers, its diagnosis.
func (r *Recorder) Answer(ctx context.Context, state *SessionState, res *AnswerResult) error {
	if r.Events == nil || res == nil {
		return nil
	}
	q := res.Question
	err := r.Events.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:     state.SessionID,
		QuestionID:    q.ID,
		Source:        store.SourcePractice,
		Mode:          q.Spec.Mode.String(),
		Shape:         q.Spec.Shape.String(),
		Length:        q.Spec.Length,
		Interval:      q.Spec.Interval,
		CorrectAnswer: q.Answer,
		LearnerAnswer: res.LearnerAnswer,
		Correct:       res.Correct,
		TimeMs:        int64(res.ResponseTimeMs),
	})

	state.Mu.Lock()
	diag := res.Diagnosis
	state.Mu.Unlock()
	if diag == nil {
		return err
	}

	var misconception *string
	if diag.MisconceptionID != "" {
		id := diag.MisconceptionID
		misconception = &id
	}
	derr := r.Events.AppendDiagnosisEvent(ctx, store.DiagnosisEventData{
		SessionID:       state.SessionID,
		QuestionID:      q.ID,
		Mode:            q.Spec.Mode.String(),
		CorrectAnswer:   q.Answer,
		LearnerAnswer:   res.LearnerAnswer,
		Category:        string(diag.Category),
		MisconceptionID: misconception,
		Confidence:      diag.Confidence,
		ClassifierName:  diag.ClassifierName,
		Reasoning:       diag.Reasoning,
	})
	return errors.Join(err, derr)
}

// End records the session end, bumps the progress record and saves a
// snapshot of per-mode tallies.
func (r *Recorder) End(ctx context.Context, state *SessionState) error {
	now := r.now()
	var errs []error

	if r.Events != nil {
		errs = append(errs, r.Events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:       state.SessionID,
			Action:          "end",
			QuestionsServed: state.TotalQuestions,
			CorrectAnswers:  state.TotalCorrect,
			DurationSecs:    int(state.Elapsed.Seconds()),
		}))
	}
	if r.Progress != nil {
		errs = append(errs, r.bumpProgress(ctx, now))
	}
	if r.Snapshots != nil {
		errs = append(errs, r.saveSnapshot(ctx, state, now))
	}
	return errors.Join(errs...)
}

func (r *Recorder) bumpProgress(ctx context.Context, now time.Time) error {
	completed := 0
	if v, ok, err := r.Progress.Get(ctx, store.KeySessionsCompleted); err != nil {
		return err
	} else if ok {
		completed, _ = strconv.Atoi(v)
	}
	return errors.Join(
		r.Progress.Set(ctx, store.KeySessionsCompleted, strconv.Itoa(completed+1)),
		r.Progress.Set(ctx, store.KeyLastPracticeAt, now.UTC().Format(time.RFC3339)),
	)
}

func (r *Recorder) saveSnapshot(ctx context.Context, state *SessionState, now time.Time) error {
	data := store.SnapshotData{Version: 1, Modes: make(map[string]store.ModeSnapshot)}
	latest, err := r.Snapshots.Latest(ctx)
	if err != nil {
		return err
	}
	if latest != nil {
		for k, v := range latest.Data.Modes {
			data.Modes[k] = v
		}
	}
	for mode, res := range state.PerModeResults {
		ms := data.Modes[mode.String()]
		ms.Attempts += res.Attempted
		ms.Correct += res.Correct
		ms.LastPracticed = now
		data.Modes[mode.String()] = ms
	}

	if err := r.Snapshots.Save(ctx, &store.Snapshot{Timestamp: now, Data: data}); err != nil {
		return err
	}
	return r.Snapshots.Prune(ctx, SnapshotsKept)
}

// Diagnosis returns the current diagnosis of res, which an async LLM
// result may have replaced.
func Diagnosis(state *SessionState, res *AnswerResult) *diagnosis.DiagnosisResult {
	state.Mu.Lock()
	defer state.Mu.Unlock()
	return res.Diagnosis
}
