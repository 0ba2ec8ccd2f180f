package session

import (
	"time"

	"github.com/abhisek/arbor/internal/planting"
	"github.com/abhisek/arbor/internal/tutor"
)

// SessionSummary holds the data displayed on the summary screen.
type SessionSummary struct {
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64
	ModeResults    []ModeResult
}

// BuildSummary creates a SessionSummary from the current session state.
// Mode results follow planting.AllModes order.
func BuildSummary(state *SessionState) *SessionSummary {
	var results []ModeResult
	for _, m := range planting.AllModes {
		if r, ok := state.PerModeResults[m]; ok {
			results = append(results, *r)
		}
	}

	var accuracy float64
	if state.TotalQuestions > 0 {
		accuracy = float64(state.TotalCorrect) / float64(state.TotalQuestions)
	}

	return &SessionSummary{
		Duration:       state.Elapsed,
		TotalQuestions: state.TotalQuestions,
		TotalCorrect:   state.TotalCorrect,
		Accuracy:       accuracy,
		ModeResults:    results,
	}
}

// Report builds the input for tutor.EvaluateSession.
func Report(state *SessionState) tutor.SessionReport {
	state.Mu.Lock()
	defer state.Mu.Unlock()

	answers := make([]tutor.AnswerRecord, len(state.Answers))
	for i, a := range state.Answers {
		answers[i] = tutor.AnswerRecord{QuestionID: a.Question.ID, IsCorrect: a.Correct}
	}
	return tutor.SessionReport{Answers: answers, TotalTime: state.Elapsed}
}
