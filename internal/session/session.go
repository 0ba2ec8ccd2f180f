package session

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/arbor/internal/diagnosis"
	"github.com/abhisek/arbor/internal/lessons"
	"github.com/abhisek/arbor/internal/planting"
	"github.com/abhisek/arbor/internal/store"
)

// MaxRecentErrors is the maximum number of recent errors tracked per mode.
const MaxRecentErrors = 5

// LessonAfterWrong is how many wrong answers on one mode trigger a lesson.
const LessonAfterWrong = 2

// compressionThreshold is the character count triggering error compression.
const compressionThreshold = lessons.SessionCompressionThreshold

// HandleAnswer records the learner's answer to the current question and
// returns the result, or nil when no question is active.
func HandleAnswer(state *SessionState, learnerAnswer int) *AnswerResult {
	q := state.CurrentQuestion
	if q == nil {
		return nil
	}
	ctx := context.Background()
	mode := q.Spec.Mode

	correct := learnerAnswer == q.Answer
	res := &AnswerResult{
		Question:       q,
		LearnerAnswer:  learnerAnswer,
		Correct:        correct,
		ResponseTimeMs: responseTime(state),
	}

	state.LastAnswerCorrect = correct
	state.TotalQuestions++
	if correct {
		state.TotalCorrect++
	}

	mr := state.PerModeResults[mode]
	if mr == nil {
		mr = &ModeResult{Mode: mode}
		state.PerModeResults[mode] = mr
	}
	mr.Record(correct)

	state.Mu.Lock()
	state.Answers = append(state.Answers, res)
	state.LastDiagnosis = nil
	state.Mu.Unlock()

	if correct {
		return res
	}

	state.WrongCountByMode[mode]++

	var diag *diagnosis.DiagnosisResult
	if state.DiagnosisService != nil {
		diag = state.DiagnosisService.Diagnose(ctx, &diagnosis.ClassifyInput{
			Spec:           q.Spec,
			Narrative:      q.Text,
			CorrectAnswer:  q.Answer,
			LearnerAnswer:  learnerAnswer,
			ResponseTimeMs: res.ResponseTimeMs,
			ModeAccuracy:   modeAccuracy(ctx, state.EventRepo, mode),
		}, func(async *diagnosis.DiagnosisResult) {
			state.Mu.Lock()
			defer state.Mu.Unlock()
			res.Diagnosis = async
			if len(state.Answers) > 0 && state.Answers[len(state.Answers)-1] == res {
				state.LastDiagnosis = async
			}
		})
		state.Mu.Lock()
		// The LLM callback may already have landed a refined result.
		if res.Diagnosis == nil {
			res.Diagnosis = diag
			if len(state.Answers) > 0 && state.Answers[len(state.Answers)-1] == res {
				state.LastDiagnosis = diag
			}
		}
		state.Mu.Unlock()
	}

	errCtx := BuildErrorContext(q, learnerAnswer, diag)
	state.Mu.Lock()
	errs := append(state.RecentErrors[mode], errCtx)
	if len(errs) > MaxRecentErrors {
		errs = errs[len(errs)-MaxRecentErrors:]
	}
	state.RecentErrors[mode] = errs
	recent := append([]string(nil), errs...)
	state.Mu.Unlock()

	if state.WrongCountByMode[mode] >= LessonAfterWrong && state.LessonService != nil {
		state.PendingLesson = true
		state.LessonService.RequestLesson(ctx, lessons.LessonInput{
			Mode:          mode,
			Shape:         q.Spec.Shape,
			RecentErrors:  recent,
			LastDiagnosis: diag,
			Accuracy:      mr.Accuracy(),
		})
	}

	totalLen := 0
	for _, e := range recent {
		totalLen += len(e)
	}
	if totalLen > compressionThreshold && state.Compressor != nil {
		state.Compressor.CompressErrors(ctx, mode.String(), recent, func(_ string, summary string) {
			state.Mu.Lock()
			defer state.Mu.Unlock()
			state.RecentErrors[mode] = []string{"[compressed] " + summary}
		})
	}

	return res
}

func responseTime(state *SessionState) int {
	if state.QuestionStartTime.IsZero() {
		return 0
	}
	return int(time.Since(state.QuestionStartTime).Milliseconds())
}

func modeAccuracy(ctx context.Context, repo store.EventRepo, mode planting.BoundaryMode) float64 {
	if repo == nil {
		return 0
	}
	tallies, err := repo.AccuracyByMode(ctx)
	if err != nil {
		return 0
	}
	for _, t := range tallies {
		if t.Mode == mode.String() {
			return t.Rate()
		}
	}
	return 0
}

// Advance moves to the next slot. Returns false when the batch is done.
func Advance(state *SessionState) bool {
	state.CurrentQuestion = nil
	state.Index++
	return state.Index < len(state.Plan.Slots)
}

// Done reports whether every slot has been served.
func Done(state *SessionState) bool {
	return state.Index >= len(state.Plan.Slots)
}

// CurrentSlot returns the current plan slot, or nil if the batch is done.
func CurrentSlot(state *SessionState) *PlanSlot {
	if state.Index < 0 || state.Index >= len(state.Plan.Slots) {
		return nil
	}
	return &state.Plan.Slots[state.Index]
}

// BuildErrorContext constructs an error description string for LLM context.
// When a diagnosis is available, it enriches the context with the category
// and misconception label.
func BuildErrorContext(q *Question, learnerAnswer int, diag *diagnosis.DiagnosisResult) string {
	base := fmt.Sprintf("Answered %d for %s, correct answer was %d", learnerAnswer, q.Spec, q.Answer)
	if diag == nil || diag.Category == diagnosis.CategoryUnclassified {
		return base
	}
	enriched := fmt.Sprintf("%s [%s", base, diag.Category)
	if diag.MisconceptionID != "" {
		if m := diagnosis.GetMisconception(diag.MisconceptionID); m != nil {
			enriched += ": " + m.Label
		}
	}
	return enriched + "]"
}
