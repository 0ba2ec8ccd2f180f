package lessons

import (
	"time"

	"github.com/abhisek/arbor/internal/diagnosis"
	"github.com/abhisek/arbor/internal/planting"
)

// Lesson is a micro-lesson for one boundary mode and error pattern.
type Lesson struct {
	Mode          planting.BoundaryMode `json:"mode"`
	Title         string                `json:"title"`
	Explanation   string                `json:"explanation"`
	WorkedExample string                `json:"worked_example"`
	Practice      PracticeQuestion      `json:"practice"`
	// Builtin is set when the lesson came from the offline content rather
	// than the LLM.
	Builtin bool `json:"builtin,omitempty"`
}

// PracticeQuestion is a mini-practice embedded in a lesson.
type PracticeQuestion struct {
	Spec        planting.SpacingSpec `json:"spec"`
	Text        string               `json:"text"`
	Answer      int                  `json:"answer"`
	Explanation string               `json:"explanation"`
}

// LessonInput holds all context needed to generate a micro-lesson.
type LessonInput struct {
	Mode          planting.BoundaryMode
	Shape         planting.PathShape
	RecentErrors  []string
	LastDiagnosis *diagnosis.DiagnosisResult
	Accuracy      float64
}

// LearnerProfile is a holistic summary of the learner's patterns.
type LearnerProfile struct {
	Summary     string
	Strengths   []string
	Weaknesses  []string
	Patterns    []string
	GeneratedAt time.Time
}

// ProfileInput holds all context for profile generation.
type ProfileInput struct {
	ModeResults     map[string]ModeResultSummary
	ErrorHistory    map[string][]string
	PreviousProfile *LearnerProfile
	SessionCount    int
}

// ModeResultSummary is the answer tally for one boundary mode.
type ModeResultSummary struct {
	Attempted int
	Correct   int
}
