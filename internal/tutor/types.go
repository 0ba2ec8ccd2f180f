package tutor

import (
	"time"

	"github.com/abhisek/arbor/internal/diagnosis"
	"github.com/abhisek/arbor/internal/llm"
	"github.com/abhisek/arbor/internal/planting"
)

// State is what the learner currently has set up in the visualizer.
type State struct {
	Length   float64               `json:"length"`
	Interval float64               `json:"interval"`
	Mode     planting.BoundaryMode `json:"mode"`
	Shape    planting.PathShape    `json:"shape"`
}

// Spec returns the state as a normalized spacing spec.
func (s State) Spec() planting.SpacingSpec {
	return planting.SpacingSpec{
		Length:   s.Length,
		Interval: s.Interval,
		Mode:     s.Mode,
		Shape:    s.Shape,
	}.Normalize()
}

// DefaultState is 100 m every 10 m with trees at both ends.
func DefaultState() State {
	return State{Length: 100, Interval: 10, Mode: planting.BothEnds, Shape: planting.Segment}
}

// ChatRequest is one learner message to either assistant.
type ChatRequest struct {
	Message         string
	State           State
	History         []llm.Message
	NewConversation bool
}

// ChatResponse carries the reply and the history to send next time.
type ChatResponse struct {
	Reply          string
	UpdatedHistory []llm.Message
	// Degraded is set when the reply was produced without the LLM.
	Degraded bool
}

// GenerateQuestionRequest selects a practice slot. Difficulty is optional.
type GenerateQuestionRequest struct {
	QuestionNumber int
	Difficulty     planting.Difficulty
}

// GeneratedQuestion is a practice question with its ground-truth answer.
type GeneratedQuestion struct {
	ID             string               `json:"question_id"`
	Text           string               `json:"question_text"`
	Spec           planting.SpacingSpec `json:"parameters"`
	ExpectedAnswer int                  `json:"expected_answer"`
	Strategy       string               `json:"strategy"`
	Difficulty     planting.Difficulty  `json:"difficulty"`
	Degraded       bool                 `json:"degraded"`
}

// CheckAnswerRequest is a learner's answer to a question.
type CheckAnswerRequest struct {
	Spec       planting.SpacingSpec
	UserAnswer int
	// Optional context for diagnosis.
	QuestionText   string
	ResponseTimeMs int
	ModeAccuracy   float64
}

// CheckResult is the verdict on one answer.
type CheckResult struct {
	IsCorrect     bool                       `json:"is_correct"`
	CorrectAnswer int                        `json:"correct_answer"`
	Explanation   string                     `json:"explanation"`
	SolvingSteps  []string                   `json:"solving_steps"`
	Diagnosis     *diagnosis.DiagnosisResult `json:"diagnosis,omitempty"`
	Degraded      bool                       `json:"degraded"`
}

// AnswerRecord is one answered question in a session report.
type AnswerRecord struct {
	QuestionID string `json:"question_id"`
	IsCorrect  bool   `json:"is_correct"`
}

// SessionReport summarises a practice run for evaluation.
type SessionReport struct {
	Answers   []AnswerRecord
	TotalTime time.Duration
}

// Performance grades a practice run.
type Performance string

const (
	Excellent Performance = "excellent"
	Good      Performance = "good"
	NeedsWork Performance = "needs-work"
)

// Evaluation is the end-of-session feedback.
type Evaluation struct {
	CorrectRate   string      `json:"correct_rate"`
	TotalTimeText string      `json:"total_time_text"`
	Performance   Performance `json:"performance"`
	Suggestions   []string    `json:"suggestions"`
	Degraded      bool        `json:"degraded"`
}
