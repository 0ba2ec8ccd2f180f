package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM calls sharing a purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM calls served by one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// Answer sources.
const (
	SourcePractice = "practice"
	SourceGame     = "game"
	SourceAPI      = "api"
)

// AnswerEventData records one answered planting question.
type AnswerEventData struct {
	SessionID     string
	QuestionID    string
	Source        string
	Mode          string
	Shape         string
	Length        float64
	Interval      float64
	CorrectAnswer int
	LearnerAnswer int
	Correct       bool
	TimeMs        int64
}

// AnswerEventRecord is a stored answer event.
type AnswerEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// ModeAccuracy is the answer tally for one boundary mode.
type ModeAccuracy struct {
	Mode     string
	Attempts int
	Correct  int
}

// Rate returns the fraction of correct answers, or 0 with no attempts.
func (m ModeAccuracy) Rate() float64 {
	if m.Attempts == 0 {
		return 0
	}
	return float64(m.Correct) / float64(m.Attempts)
}

// SessionEventData records the start or end of a practice session.
type SessionEventData struct {
	SessionID       string
	Action          string // "start" or "end"
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// SessionSummaryRecord is one completed practice session.
type SessionSummaryRecord struct {
	SessionID       string
	Timestamp       time.Time
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// DiagnosisEventData records the classification of a wrong answer.
type DiagnosisEventData struct {
	SessionID       string
	QuestionID      string
	Mode            string
	CorrectAnswer   int
	LearnerAnswer   int
	Category        string
	MisconceptionID *string
	Confidence      float64
	ClassifierName  string
	Reasoning       string
}

// LessonEventData records a micro-lesson the learner went through.
type LessonEventData struct {
	SessionID         string
	Mode              string
	LessonTitle       string
	PracticeAttempted bool
	PracticeCorrect   bool
}

// GameEventData records one finished minigame round.
type GameEventData struct {
	Score        int
	Submissions  int
	DurationSecs int
}

// GameEventRecord is a stored minigame round.
type GameEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	GameEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)
	// GetLLMEvent returns nil when no event has the id.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error)
	// AccuracyByMode tallies every recorded answer per boundary mode.
	AccuracyByMode(ctx context.Context) ([]ModeAccuracy, error)
	// LatestAnswerTime returns the zero time when mode was never answered.
	LatestAnswerTime(ctx context.Context, mode string) (time.Time, error)

	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	AppendDiagnosisEvent(ctx context.Context, data DiagnosisEventData) error
	AppendLessonEvent(ctx context.Context, data LessonEventData) error

	AppendGameEvent(ctx context.Context, data GameEventData) error
	QueryGameEvents(ctx context.Context, opts QueryOpts) ([]GameEventRecord, error)
	// BestGameScore returns 0 when no round was played.
	BestGameScore(ctx context.Context) (int, error)
}

// SnapshotData captures the learner's per-mode standing at a point in time.
type SnapshotData struct {
	Version int                     `json:"version"`
	Modes   map[string]ModeSnapshot `json:"modes,omitempty"`
}

// ModeSnapshot is the running tally for one boundary mode.
type ModeSnapshot struct {
	Attempts      int       `json:"attempts"`
	Correct       int       `json:"correct"`
	LastPracticed time.Time `json:"last_practiced"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	Save(ctx context.Context, snap *Snapshot) error
	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)
	// Prune deletes all but the keep most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// Progress keys.
const (
	KeyLastPracticeAt    = "last_practice_at"
	KeyBestGameScore     = "best_game_score"
	KeySessionsCompleted = "sessions_completed"
	KeyLearnerProfile    = "learner_profile"
)

// ProgressRepo is a small key-value record of learner progress.
type ProgressRepo interface {
	// Get returns "", false for a missing key.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
