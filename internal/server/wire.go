package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/abhisek/arbor/internal/llm"
	"github.com/abhisek/arbor/internal/planting"
	"github.com/abhisek/arbor/internal/tutor"
)

// Request and response bodies. Field names follow the web client.

type groundConfig struct {
	Length   float64 `json:"length"`
	Interval float64 `json:"interval"`
}

type interactionState struct {
	Ground    *groundConfig `json:"ground"`
	TreeMode  string        `json:"tree_mode"`
	ShapeMode string        `json:"shape_mode"`
}

// toState fills gaps with the default setup. A "circle" tree mode implies
// a circle when no shape is given.
func (s *interactionState) toState() (tutor.State, error) {
	st := tutor.DefaultState()
	if s == nil {
		return st, nil
	}
	if s.Ground != nil {
		if s.Ground.Length > 0 {
			st.Length = s.Ground.Length
		}
		if s.Ground.Interval > 0 {
			st.Interval = s.Ground.Interval
		}
	}
	if s.TreeMode != "" {
		m, err := planting.ParseBoundaryMode(s.TreeMode)
		if err != nil {
			return st, err
		}
		st.Mode = m
		if m == planting.Loop && s.ShapeMode == "" {
			st.Shape = planting.Circle
		}
	}
	if s.ShapeMode != "" {
		sh, err := planting.ParsePathShape(s.ShapeMode)
		if err != nil {
			return st, err
		}
		st.Shape = sh
	}
	return st, nil
}

type chatRequest struct {
	Message           string            `json:"message"`
	InteractionState  *interactionState `json:"interaction_state"`
	ChatHistory       []llm.Message     `json:"chat_history"`
	IsNewConversation bool              `json:"is_new_conversation"`
	SessionID         string            `json:"session_id"`
}

type chatResponse struct {
	Response       string        `json:"response"`
	UpdatedHistory []llm.Message `json:"updated_history"`
	SessionID      string        `json:"session_id"`
	Degraded       bool          `json:"degraded"`
}

type generateQuestionRequest struct {
	QuestionNumber  int    `json:"question_number"`
	DifficultyLevel string `json:"difficulty_level"`
}

type checkAnswerRequest struct {
	Parameters     planting.SpacingSpec `json:"parameters"`
	UserAnswer     *flexInt             `json:"user_answer"`
	QuestionID     string               `json:"question_id"`
	QuestionText   string               `json:"question_text"`
	ResponseTimeMs int                  `json:"response_time_ms"`
}

type evaluateRequest struct {
	PracticeSession struct {
		Answers []tutor.AnswerRecord `json:"answers"`
		// TotalTime is in seconds.
		TotalTime float64 `json:"total_time"`
	} `json:"practice_session"`
}

type countRequest struct {
	planting.SpacingSpec
	Strict bool `json:"strict"`
}

type countResponse struct {
	Count    int      `json:"count"`
	Feasible bool     `json:"feasible"`
	Reason   string   `json:"reason,omitempty"`
	Steps    []string `json:"steps"`
}

type sampleRequest struct {
	planting.SpacingSpec
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type sampleResponse struct {
	planting.PlacementResult
	Reason string `json:"reason,omitempty"`
}

type questionsResponse struct {
	Seed      uint64              `json:"seed"`
	Questions []planting.Question `json:"questions"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// flexInt accepts a JSON number or a numeric string, since answer inputs
// arrive as either.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	n, err := strconv.Atoi(string(bytes.TrimSpace(b)))
	if err != nil {
		return fmt.Errorf("answer %q is not a whole number", b)
	}
	*f = flexInt(n)
	return nil
}
