package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/abhisek/arbor/internal/planting"
	"github.com/abhisek/arbor/internal/store"
	"github.com/abhisek/arbor/internal/tutor"
)

const (
	maxBodyBytes     = 1 << 20
	defaultBatchSize = 5
	maxBatchSize     = 100
	defaultFrameSize = 800
)

// writeJSON encodes v as the response body.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, errorResponse{Detail: detail})
}

// fail maps err to a status: bad parameters are the client's fault,
// everything else is a tutor failure.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, planting.ErrInvalidParameter),
		errors.Is(err, planting.ErrInfeasible),
		errors.Is(err, tutor.ErrEmptyMessage):
		status = http.StatusBadRequest
	default:
		s.logger.Error("request failed", "op", op, "err", err)
	}
	s.writeError(w, status, fmt.Sprintf("%s: %v", op, err))
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Message: healthMessage})
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	s.writeError(w, http.StatusNotFound, "API endpoint not found")
}

type chatFunc = func(ctx context.Context, req tutor.ChatRequest) (*tutor.ChatResponse, error)

// handleChat serves both assistants. Clients that send no history get a
// server-side session keyed by session_id.
func (s *Server) handleChat(chat chatFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if !s.decode(w, r, &req) {
			return
		}
		state, err := req.InteractionState.toState()
		if err != nil {
			s.fail(w, "chat", err)
			return
		}

		history := req.ChatHistory
		if history == nil && req.SessionID != "" {
			history = s.sessions.history(req.SessionID)
		}

		resp, err := chat(r.Context(), tutor.ChatRequest{
			Message:         req.Message,
			State:           state,
			History:         history,
			NewConversation: req.IsNewConversation,
		})
		if err != nil {
			s.fail(w, "chat", err)
			return
		}

		id := s.sessions.save(req.SessionID, resp.UpdatedHistory)
		s.writeJSON(w, http.StatusOK, chatResponse{
			Response:       resp.Reply,
			UpdatedHistory: resp.UpdatedHistory,
			SessionID:      id,
			Degraded:       resp.Degraded,
		})
	}
}

func (s *Server) handleGenerateQuestion(w http.ResponseWriter, r *http.Request) {
	var req generateQuestionRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.QuestionNumber <= 0 {
		req.QuestionNumber = 1
	}
	var difficulty planting.Difficulty
	if req.DifficultyLevel != "" {
		d, err := planting.ParseDifficulty(req.DifficultyLevel)
		if err != nil {
			s.fail(w, "generate question", err)
			return
		}
		difficulty = d
	}

	q, err := s.tutor.GenerateQuestion(r.Context(), tutor.GenerateQuestionRequest{
		QuestionNumber: req.QuestionNumber,
		Difficulty:     difficulty,
	})
	if err != nil {
		s.fail(w, "generate question", err)
		return
	}
	s.writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleCheckAnswer(w http.ResponseWriter, r *http.Request) {
	var req checkAnswerRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.UserAnswer == nil {
		s.writeError(w, http.StatusBadRequest, "check answer: user_answer is required")
		return
	}

	res, err := s.tutor.CheckAnswer(r.Context(), tutor.CheckAnswerRequest{
		Spec:           req.Parameters,
		UserAnswer:     int(*req.UserAnswer),
		QuestionText:   req.QuestionText,
		ResponseTimeMs: req.ResponseTimeMs,
	})
	if err != nil {
		s.fail(w, "check answer", err)
		return
	}
	s.recordAnswer(r, req, res)
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) recordAnswer(r *http.Request, req checkAnswerRequest, res *tutor.CheckResult) {
	if s.events == nil {
		return
	}
	spec := req.Parameters.Normalize()
	err := s.events.AppendAnswerEvent(r.Context(), store.AnswerEventData{
		QuestionID:    req.QuestionID,
		Source:        store.SourceAPI,
		Mode:          spec.Mode.String(),
		Shape:         spec.Shape.String(),
		Length:        spec.Length,
		Interval:      spec.Interval,
		CorrectAnswer: res.CorrectAnswer,
		LearnerAnswer: int(*req.UserAnswer),
		Correct:       res.IsCorrect,
		TimeMs:        int64(req.ResponseTimeMs),
	})
	if err != nil {
		s.logger.Warn("record answer", "err", err)
	}
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !s.decode(w, r, &req) {
		return
	}
	ev, err := s.tutor.EvaluateSession(r.Context(), tutor.SessionReport{
		Answers:   req.PracticeSession.Answers,
		TotalTime: time.Duration(req.PracticeSession.TotalTime * float64(time.Second)),
	})
	if err != nil {
		s.fail(w, "evaluate", err)
		return
	}
	s.writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	var req countRequest
	if !s.decode(w, r, &req) {
		return
	}
	spec := req.SpacingSpec.Normalize()
	if err := spec.Validate(); err != nil {
		s.fail(w, "count", err)
		return
	}

	count, err := planting.ComputeCount(spec)
	if req.Strict {
		count, err = planting.ComputeCountStrict(spec)
	}
	resp := countResponse{Steps: planting.SolvingSteps(spec)}
	if err != nil {
		resp.Reason = err.Error()
	} else {
		resp.Count, resp.Feasible = count, true
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	var req sampleRequest
	if !s.decode(w, r, &req) {
		return
	}
	spec := req.SpacingSpec.Normalize()
	if err := spec.Validate(); err != nil {
		s.fail(w, "sample", err)
		return
	}
	width, height := req.Width, req.Height
	if width <= 0 {
		width = defaultFrameSize
	}
	if height <= 0 {
		height = defaultFrameSize
	}

	res := sampleResponse{PlacementResult: planting.Place(spec, planting.NewFrame(width, height))}
	if res.Err != nil {
		res.Reason = res.Err.Error()
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	count := defaultBatchSize
	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxBatchSize {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("count must be between 1 and %d", maxBatchSize))
			return
		}
		count = n
	}

	seed := uint64(s.now().UnixNano())
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "seed must be a non-negative integer")
			return
		}
		seed = n
	}

	gen := planting.NewGenerator(planting.NewRand(seed))
	s.writeJSON(w, http.StatusOK, questionsResponse{Seed: seed, Questions: gen.GenerateBatch(count)})
}
