package session

import (
	sess "github.com/abhisek/arbor/internal/session"
	"github.com/abhisek/arbor/internal/tutor"
)

// sessionInitMsg is sent when the plan is built and the start recorded.
type sessionInitMsg struct {
	State *sess.SessionState
	Err   error
}

// questionReadyMsg is sent when the next question has been written.
type questionReadyMsg struct {
	Question *sess.Question
	Err      error
}

// explanationMsg carries the tutor's explanation of the last answer.
type explanationMsg struct {
	QuestionID string
	Result     *tutor.CheckResult
	Err        error
}

// timerTickMsg is sent every second while the screen is active. Ticks
// from an older generation are dropped.
type timerTickMsg struct {
	gen int
}

// feedbackDoneMsg is sent when the learner dismisses the feedback.
type feedbackDoneMsg struct{}

// sessionEndMsg is sent when the batch is done or the learner quits.
type sessionEndMsg struct{}
