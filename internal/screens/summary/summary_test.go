package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/arbor/internal/planting"
	"github.com/abhisek/arbor/internal/router"
	"github.com/abhisek/arbor/internal/session"
	"github.com/abhisek/arbor/internal/tutor"
)

func testSummary() *session.SessionSummary {
	return &session.SessionSummary{
		Duration:       95 * time.Second,
		TotalQuestions: 3,
		TotalCorrect:   2,
		Accuracy:       float64(2) / float64(3),
		ModeResults: []session.ModeResult{
			{Mode: planting.BothEnds, Attempted: 2, Correct: 2},
			{Mode: planting.Loop, Attempted: 1, Correct: 0},
		},
	}
}

func testReport() tutor.SessionReport {
	return tutor.SessionReport{
		Answers: []tutor.AnswerRecord{
			{QuestionID: "q1", IsCorrect: true},
			{QuestionID: "q2", IsCorrect: true},
			{QuestionID: "q3", IsCorrect: false},
		},
		TotalTime: 95 * time.Second,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(), testReport(), nil)
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary(), testReport(), nil)
	view := s.View(80, 24)
	for _, want := range []string{"Practice complete!", "1m35s", "Accuracy: 67%", "both", "loop"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_Evaluation(t *testing.T) {
	s := New(testSummary(), testReport(), tutor.New(nil))
	if !strings.Contains(s.View(80, 24), "Reviewing your answers") {
		t.Error("expected pending evaluation")
	}

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected evaluation command")
	}
	s.Update(cmd())
	if s.eval == nil {
		t.Fatal("evaluation not stored")
	}
	if s.eval.CorrectRate != "2/3" || s.eval.Performance != tutor.Good {
		t.Errorf("eval = %+v", s.eval)
	}
	if !strings.Contains(s.View(80, 40), "2/3 correct") {
		t.Error("evaluation missing from view")
	}
}

func TestSummaryScreen_NoAnswersSkipsEvaluation(t *testing.T) {
	s := New(&session.SessionSummary{}, tutor.SessionReport{}, tutor.New(nil))
	if s.Init() != nil {
		t.Error("no answers should skip the evaluation")
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, k := range []rune{tea.KeyEnter, tea.KeyEscape} {
		s := New(testSummary(), testReport(), nil)
		_, cmd := s.Update(tea.KeyPressMsg{Code: k})
		if cmd == nil {
			t.Fatal("expected command")
		}
		if _, ok := cmd().(router.PopToRootMsg); !ok {
			t.Error("expected PopToRootMsg")
		}
	}
}
