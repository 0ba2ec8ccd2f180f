package lessons

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/arbor/internal/llm"
)

// Compressor shortens learner context: error histories, chat histories and
// learner profiles.
type Compressor struct {
	provider llm.Provider
	cfg      CompressorConfig
}

// NewCompressor creates a context compressor.
func NewCompressor(provider llm.Provider, cfg CompressorConfig) *Compressor {
	return &Compressor{provider: provider, cfg: cfg}
}

// CompressErrors compresses a mode's error history into a summary.
// Runs asynchronously. The callback receives the compressed summary.
func (c *Compressor) CompressErrors(
	ctx context.Context,
	mode string,
	errors []string,
	cb func(mode string, summary string),
) {
	go func() {
		summary, err := c.summarize(ctx, compressionSystemPrompt, buildCompressionUserMessage(errors),
			SessionCompressionSchema, c.cfg.SessionMaxTokens)
		if err != nil || cb == nil {
			return
		}
		cb(mode, summary)
	}()
}

// CompressHistory condenses chat turns into a summary the tutor can carry
// forward as a single message.
func (c *Compressor) CompressHistory(ctx context.Context, history []llm.Message) (string, error) {
	summary, err := c.summarize(ctx, historySystemPrompt, buildHistoryUserMessage(history),
		HistoryCompressionSchema, c.cfg.HistoryMaxTokens)
	if err != nil {
		return "", fmt.Errorf("history compression: %w", err)
	}
	return summary, nil
}

type compressionOutput struct {
	Summary string `json:"summary"`
}

func (c *Compressor) summarize(ctx context.Context, system, user string, schema *llm.Schema, maxTokens int) (string, error) {
	if llm.PurposeFrom(ctx) == "unknown" {
		ctx = llm.WithPurpose(ctx, llm.PurposeCompression)
	}

	resp, err := c.provider.Generate(ctx, llm.Request{
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: user},
		},
		Schema:      schema,
		MaxTokens:   maxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("compression: %w", err)
	}

	var out compressionOutput
	if err := resp.Decode(&out); err != nil {
		return "", fmt.Errorf("parse compression response: %w", err)
	}
	return out.Summary, nil
}

type profileOutput struct {
	Summary    string   `json:"summary"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Patterns   []string `json:"patterns"`
}

// GenerateProfile creates a learner profile from per-mode results.
func (c *Compressor) GenerateProfile(ctx context.Context, input ProfileInput) (*LearnerProfile, error) {
	ctx = llm.WithPurpose(ctx, "profile")

	resp, err := c.provider.Generate(ctx, llm.Request{
		System: profileSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildProfileUserMessage(input)},
		},
		Schema:      ProfileSchema,
		MaxTokens:   c.cfg.ProfileMaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("profile generation: %w", err)
	}

	var out profileOutput
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("parse profile response: %w", err)
	}

	return &LearnerProfile{
		Summary:     out.Summary,
		Strengths:   out.Strengths,
		Weaknesses:  out.Weaknesses,
		Patterns:    out.Patterns,
		GeneratedAt: time.Now(),
	}, nil
}
