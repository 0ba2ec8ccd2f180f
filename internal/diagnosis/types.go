package diagnosis

import "github.com/abhisek/arbor/internal/planting"

// ErrorCategory classifies a wrong answer.
type ErrorCategory string

const (
	CategoryCareless      ErrorCategory = "careless"
	CategorySpeedRush     ErrorCategory = "speed-rush"
	CategoryMisconception ErrorCategory = "misconception"
	CategoryUnclassified  ErrorCategory = "unclassified"
)

// ClassifyInput holds the context for classification.
type ClassifyInput struct {
	Spec          planting.SpacingSpec
	Narrative     string // Question text shown to the learner, if any
	CorrectAnswer int
	LearnerAnswer int
	// ResponseTimeMs is 0 when the answer was not timed.
	ResponseTimeMs int
	ModeAccuracy   float64 // Historical accuracy for this boundary mode (0.0–1.0)
}

// DiagnosisResult is the output of classifying a wrong answer.
type DiagnosisResult struct {
	Category        ErrorCategory `json:"category"`
	MisconceptionID string        `json:"misconception_id,omitempty"` // Non-empty only when Category == misconception
	Confidence      float64       `json:"confidence"`
	ClassifierName  string        `json:"classifier"`
	Reasoning       string        `json:"reasoning,omitempty"` // LLM reasoning (empty for rule-based)
}

// Label returns a learner-facing name for the result.
func (r *DiagnosisResult) Label() string {
	if r.Category == CategoryMisconception {
		if m := GetMisconception(r.MisconceptionID); m != nil {
			return m.Label
		}
	}
	switch r.Category {
	case CategoryCareless:
		return "Careless slip"
	case CategorySpeedRush:
		return "Answered too fast"
	}
	return "Unclassified"
}
