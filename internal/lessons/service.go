package lessons

import (
	"context"
	"fmt"
	"sync"

	"github.com/abhisek/arbor/internal/llm"
	"github.com/abhisek/arbor/internal/planting"
)

// Service generates micro-lessons asynchronously. Without a provider, or
// when the LLM fails, it serves the builtin lesson for the mode.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu      sync.Mutex
	pending *Lesson
	err     error
	ready   bool
}

// NewService creates a lesson generation service. provider may be nil.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// RequestLesson starts async lesson generation. Only one lesson is in-flight
// at a time; new requests replace pending ones.
func (s *Service) RequestLesson(ctx context.Context, input LessonInput) {
	go func() {
		lesson, err := s.Generate(ctx, input)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.pending = lesson
		s.err = err
		s.ready = true
	}()
}

// ConsumeLesson returns the pending lesson if one is ready.
// Returns (nil, false) if no lesson is ready yet.
// After consumption, the pending slot is cleared.
func (s *Service) ConsumeLesson() (*Lesson, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, false
	}
	lesson := s.pending
	s.pending = nil
	s.ready = false
	s.err = nil
	return lesson, lesson != nil
}

// LastError returns the LLM error behind a builtin fallback that is still
// pending, if any.
func (s *Service) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Generate produces a lesson synchronously. An LLM failure yields the
// builtin lesson together with the error.
func (s *Service) Generate(ctx context.Context, input LessonInput) (*Lesson, error) {
	if s.provider == nil {
		return Builtin(input.Mode)
	}
	lesson, err := s.generate(ctx, input)
	if err == nil {
		return lesson, nil
	}
	fallback, ferr := Builtin(input.Mode)
	if ferr != nil {
		return nil, err
	}
	return fallback, err
}

type lessonOutput struct {
	Title            string                 `json:"title"`
	Explanation      string                 `json:"explanation"`
	WorkedExample    string                 `json:"worked_example"`
	PracticeQuestion practiceQuestionOutput `json:"practice_question"`
}

type practiceQuestionOutput struct {
	Text        string  `json:"text"`
	Length      float64 `json:"length"`
	Interval    float64 `json:"interval"`
	Explanation string  `json:"explanation"`
}

func (s *Service) generate(ctx context.Context, input LessonInput) (*Lesson, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeLesson)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: lessonSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildLessonUserMessage(input)},
		},
		Schema:      LessonSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("lesson generation: %w", err)
	}

	var out lessonOutput
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("parse lesson response: %w", err)
	}

	practice, err := practiceFrom(input, out.PracticeQuestion)
	if err != nil {
		return nil, err
	}

	return &Lesson{
		Mode:          input.Mode,
		Title:         out.Title,
		Explanation:   out.Explanation,
		WorkedExample: out.WorkedExample,
		Practice:      practice,
	}, nil
}

// practiceFrom computes the practice answer itself; the LLM only proposes
// the numbers and the wording.
func practiceFrom(input LessonInput, out practiceQuestionOutput) (PracticeQuestion, error) {
	spec := planting.SpacingSpec{
		Length:   out.Length,
		Interval: out.Interval,
		Mode:     input.Mode,
		Shape:    input.Shape,
	}.Normalize()
	answer, err := planting.ComputeCountStrict(spec)
	if err != nil {
		return PracticeQuestion{}, fmt.Errorf("lesson practice %s: %w", spec, err)
	}
	return PracticeQuestion{
		Spec:        spec,
		Text:        out.Text,
		Answer:      answer,
		Explanation: out.Explanation,
	}, nil
}
