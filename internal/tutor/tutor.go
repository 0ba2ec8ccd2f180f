// Package tutor holds the LLM-assisted tutoring operations. Every number
// the learner sees comes from the planting package; the LLM only words it.
package tutor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/abhisek/arbor/internal/diagnosis"
	"github.com/abhisek/arbor/internal/lessons"
	"github.com/abhisek/arbor/internal/llm"
)

var (
	// ErrEmptyMessage is returned for a chat request with no message.
	ErrEmptyMessage = errors.New("tutor: message is empty")

	errNoProvider = errors.New("no LLM provider configured")
	errEmptyReply = errors.New("empty reply")
)

// Tutor answers chat messages, writes practice questions, checks answers
// and evaluates sessions. A nil provider is allowed: every operation then
// returns its deterministic fallback.
type Tutor struct {
	provider   llm.Provider
	compressor *lessons.Compressor
	diagnoser  *diagnosis.Service
	cfg        Config
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Tutor.
type Option func(*Tutor)

// WithConfig replaces the default config.
func WithConfig(cfg Config) Option {
	return func(t *Tutor) { t.cfg = cfg }
}

// WithLogger sets where degraded-LLM warnings go.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tutor) { t.logger = l }
}

// WithDiagnosis classifies wrong answers in CheckAnswer.
func WithDiagnosis(svc *diagnosis.Service) Option {
	return func(t *Tutor) { t.diagnoser = svc }
}

// WithCompressor summarises long chat histories.
func WithCompressor(c *lessons.Compressor) Option {
	return func(t *Tutor) { t.compressor = c }
}

// WithClock overrides time.Now for question ids.
func WithClock(now func() time.Time) Option {
	return func(t *Tutor) { t.now = now }
}

// New creates a tutor over provider, which may be nil.
func New(provider llm.Provider, opts ...Option) *Tutor {
	t := &Tutor{
		provider: provider,
		cfg:      DefaultConfig(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.compressor == nil && provider != nil {
		t.compressor = lessons.NewCompressor(provider, lessons.DefaultCompressorConfig())
	}
	return t
}

// Available reports whether an LLM is configured.
func (t *Tutor) Available() bool {
	return t.provider != nil
}

// text runs a plain-text request. It returns an error for a nil provider
// so callers have one fallback path.
func (t *Tutor) text(ctx context.Context, purpose, system string, msgs []llm.Message, maxTokens int) (string, error) {
	if t.provider == nil {
		return "", errNoProvider
	}
	resp, err := t.provider.Generate(llm.WithPurpose(ctx, purpose), llm.Request{
		System:      system,
		Messages:    msgs,
		MaxTokens:   maxTokens,
		Temperature: t.cfg.Temperature,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// degrade logs an LLM failure. A missing provider is not worth a warning.
func (t *Tutor) degrade(op string, err error) {
	if errors.Is(err, errNoProvider) {
		return
	}
	t.logger.Warn("LLM unavailable, using fallback", "op", op, "err", err)
}

func userMessage(content string) []llm.Message {
	return []llm.Message{{Role: llm.RoleUser, Content: content}}
}
