package session

import (
	"testing"
	"time"

	"github.com/abhisek/arbor/internal/planting"
)

func TestBuildSummary(t *testing.T) {
	state := testState()
	HandleAnswer(state, 11)
	state.CurrentQuestion = &Question{
		ID:     "q4_1",
		Spec:   planting.SpacingSpec{Length: 30, Interval: 5, Mode: planting.Loop, Shape: planting.Circle},
		Answer: 6,
	}
	HandleAnswer(state, 7)
	state.Elapsed = 95 * time.Second

	s := BuildSummary(state)
	if s.TotalQuestions != 2 || s.TotalCorrect != 1 || s.Accuracy != 0.5 {
		t.Errorf("summary = %+v", s)
	}
	if s.Duration != 95*time.Second {
		t.Errorf("Duration = %v", s.Duration)
	}
	if len(s.ModeResults) != 2 || s.ModeResults[0].Mode != planting.BothEnds || s.ModeResults[1].Mode != planting.Loop {
		t.Errorf("ModeResults = %+v", s.ModeResults)
	}

	r := Report(state)
	if len(r.Answers) != 2 || !r.Answers[0].IsCorrect || r.Answers[1].IsCorrect {
		t.Errorf("report answers = %+v", r.Answers)
	}
	if r.Answers[1].QuestionID != "q4_1" || r.TotalTime != 95*time.Second {
		t.Errorf("report = %+v", r)
	}
}

func TestBuildSummary_Empty(t *testing.T) {
	s := BuildSummary(testState())
	if s.TotalQuestions != 0 || s.Accuracy != 0 || len(s.ModeResults) != 0 {
		t.Errorf("summary = %+v", s)
	}
}
