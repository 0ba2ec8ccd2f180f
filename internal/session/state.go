package session

import (
	"context"
	"sync"
	"time"

	"github.com/abhisek/arbor/internal/diagnosis"
	"github.com/abhisek/arbor/internal/lessons"
	"github.com/abhisek/arbor/internal/planting"
	"github.com/abhisek/arbor/internal/store"
)

// SessionPhase represents the current phase of the session.
type SessionPhase int

const (
	PhaseLoading  SessionPhase = iota // Building the plan
	PhaseActive                       // Serving questions
	PhaseFeedback                     // Showing answer feedback
	PhaseEnding                       // Batch done or quit confirmed
	PhaseSummary                      // Showing summary screen
)

// Diagnoser classifies a wrong answer. The callback, when invoked, carries a
// refined result that may arrive before or after Diagnose returns.
type Diagnoser interface {
	Diagnose(ctx context.Context, input *diagnosis.ClassifyInput, cb func(*diagnosis.DiagnosisResult)) *diagnosis.DiagnosisResult
}

// SessionState tracks the runtime state of a practice run.
type SessionState struct {
	// Plan is the batch built at start.
	Plan *Plan

	// Index is the position of the current slot in Plan.Slots.
	Index int

	// CurrentQuestion is the active question (nil between questions).
	CurrentQuestion *Question

	// Answers holds every answered question in order.
	Answers []*AnswerResult

	TotalQuestions int
	TotalCorrect   int

	// PerModeResults tracks per-mode stats for the summary screen.
	PerModeResults map[planting.BoundaryMode]*ModeResult

	StartTime time.Time
	Elapsed   time.Duration
	Phase     SessionPhase

	// SessionID is the UUID for this session.
	SessionID string

	// QuestionStartTime is when the current question was first displayed.
	QuestionStartTime time.Time

	ShowingFeedback    bool
	ShowingQuitConfirm bool
	LastAnswerCorrect  bool

	// DiagnosisService classifies wrong answers (nil if diagnosis disabled).
	DiagnosisService Diagnoser

	// LastDiagnosis is the most recent diagnosis (nil if the last answer
	// was correct). Async LLM results replace it under Mu.
	LastDiagnosis *diagnosis.DiagnosisResult

	// EventRepo supplies historical accuracy for diagnosis.
	EventRepo store.EventRepo

	// LessonService generates micro-lessons (nil if lessons disabled).
	LessonService *lessons.Service

	// Compressor handles error-history compression (nil if disabled).
	Compressor *lessons.Compressor

	// RecentErrors tracks recent error descriptions per mode for lessons.
	RecentErrors map[planting.BoundaryMode][]string

	// WrongCountByMode tracks per-mode wrong answers in this session.
	WrongCountByMode map[planting.BoundaryMode]int

	// PendingLesson is true when a lesson has been requested but not yet consumed.
	PendingLesson bool

	// Mu protects RecentErrors, LastDiagnosis and Answers[i].Diagnosis
	// during async callbacks.
	Mu sync.Mutex
}

// AnswerResult is the outcome of one answered question.
type AnswerResult struct {
	Question       *Question
	LearnerAnswer  int
	Correct        bool
	ResponseTimeMs int
	Diagnosis      *diagnosis.DiagnosisResult
}

// NewSessionState creates a new session state with initialized maps.
func NewSessionState(plan *Plan, sessionID string) *SessionState {
	return &SessionState{
		Plan:             plan,
		SessionID:        sessionID,
		PerModeResults:   make(map[planting.BoundaryMode]*ModeResult),
		RecentErrors:     make(map[planting.BoundaryMode][]string),
		WrongCountByMode: make(map[planting.BoundaryMode]int),
		StartTime:        time.Now(),
		Phase:            PhaseActive,
	}
}
