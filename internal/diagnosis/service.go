package diagnosis

import (
	"context"

	"github.com/abhisek/arbor/internal/llm"
)

// Service coordinates error diagnosis using rule-based classifiers and
// optional LLM-based misconception identification.
type Service struct {
	classifiers []Classifier
	diagnoser   *Diagnoser
	pending     chan diagnosisJob
}

type diagnosisJob struct {
	ctx context.Context
	req *DiagnosisRequest
	cb  func(*DiagnosisResult)
}

// NewService creates a diagnosis service. If provider is nil, only rule-based
// classification is available.
func NewService(provider llm.Provider) *Service {
	s := &Service{
		classifiers: DefaultClassifiers(),
		pending:     make(chan diagnosisJob, 32),
	}
	if provider != nil {
		s.diagnoser = NewDiagnoser(provider, DefaultDiagnoserConfig())
		go s.processLoop()
	}
	return s
}

// Classify runs only the rule-based classifiers.
func (s *Service) Classify(input *ClassifyInput) *DiagnosisResult {
	f, name := RunClassifiers(s.classifiers, input)
	if f.Category == "" {
		return &DiagnosisResult{Category: CategoryUnclassified, ClassifierName: "none"}
	}
	return &DiagnosisResult{
		Category:        f.Category,
		MisconceptionID: f.MisconceptionID,
		Confidence:      f.Confidence,
		ClassifierName:  name,
	}
}

// Diagnose classifies a wrong answer. Rule-based classification is synchronous.
// If rules are inconclusive and an LLM is available, async LLM diagnosis is
// dispatched and the callback fires when the result is ready.
// Returns the synchronous result immediately.
func (s *Service) Diagnose(ctx context.Context, input *ClassifyInput, cb func(*DiagnosisResult)) *DiagnosisResult {
	result := s.Classify(input)
	if result.Category != CategoryUnclassified || s.diagnoser == nil {
		return result
	}
	if input.LearnerAnswer != input.CorrectAnswer {
		s.dispatchLLM(ctx, input, cb)
	}
	return result
}

// DiagnoseSync is Diagnose that waits for the LLM instead of calling back.
// LLM failures leave the rule-based result in place.
func (s *Service) DiagnoseSync(ctx context.Context, input *ClassifyInput) *DiagnosisResult {
	result := s.Classify(input)
	if result.Category != CategoryUnclassified || s.diagnoser == nil || input.LearnerAnswer == input.CorrectAnswer {
		return result
	}
	req := newRequest(input)
	if len(req.Candidates) == 0 {
		return result
	}
	if r, err := s.diagnoser.Diagnose(ctx, req); err == nil {
		return r
	}
	return result
}

func newRequest(input *ClassifyInput) *DiagnosisRequest {
	return &DiagnosisRequest{
		Spec:          input.Spec,
		QuestionText:  input.Narrative,
		CorrectAnswer: input.CorrectAnswer,
		LearnerAnswer: input.LearnerAnswer,
		Candidates:    MisconceptionsFor(input.Spec),
	}
}

func (s *Service) dispatchLLM(ctx context.Context, input *ClassifyInput, cb func(*DiagnosisResult)) {
	req := newRequest(input)
	if len(req.Candidates) == 0 {
		return
	}

	select {
	case s.pending <- diagnosisJob{ctx: ctx, req: req, cb: cb}:
	default:
		// Queue full; the diagnosis is dropped.
	}
}

func (s *Service) processLoop() {
	for job := range s.pending {
		result, err := s.diagnoser.Diagnose(job.ctx, job.req)
		if err != nil || result == nil {
			continue
		}
		if job.cb != nil {
			job.cb(result)
		}
	}
}

// Close shuts down the async processing loop.
func (s *Service) Close() {
	close(s.pending)
}
