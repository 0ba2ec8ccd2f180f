package tutor

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/arbor/internal/llm"
	"github.com/abhisek/arbor/internal/planting"
)

const summaryPrefix = "Summary of our conversation so far: "

// Chat answers a message with the learning assistant.
func (t *Tutor) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	return t.chat(ctx, req, llm.PurposeChat, chatSystemPrompt(req.State), chatFallback)
}

// PracticeChat answers a message with the practice assistant, which
// guides without giving the answer away.
func (t *Tutor) PracticeChat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	return t.chat(ctx, req, llm.PurposePracticeChat, practiceSystemPrompt(req.State), practiceFallback)
}

func (t *Tutor) chat(
	ctx context.Context,
	req ChatRequest,
	purpose, system string,
	fallback func(State) string,
) (*ChatResponse, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return nil, ErrEmptyMessage
	}

	history := req.History
	if req.NewConversation {
		history = nil
	}
	history = t.compactHistory(ctx, history)

	msgs := make([]llm.Message, 0, len(history)+1)
	msgs = append(msgs, history...)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: msg})

	reply, err := t.text(ctx, purpose, system, msgs, t.cfg.ChatMaxTokens)
	reply = strings.TrimSpace(reply)
	degraded := false
	if err != nil || reply == "" {
		if err == nil {
			err = errEmptyReply
		}
		t.degrade(purpose, err)
		reply = fallback(req.State)
		degraded = true
	}

	return &ChatResponse{
		Reply:          reply,
		UpdatedHistory: append(msgs, llm.Message{Role: llm.RoleAssistant, Content: reply}),
		Degraded:       degraded,
	}, nil
}

// compactHistory replaces all but the most recent turns of a long history
// with a one-message summary. When summarising fails the old turns are
// dropped.
func (t *Tutor) compactHistory(ctx context.Context, history []llm.Message) []llm.Message {
	limit, keep := t.cfg.HistoryLimit, t.cfg.HistoryKeep
	if limit <= 0 || len(history) <= limit {
		return history
	}
	keep = min(max(keep, 0), len(history))
	old, recent := history[:len(history)-keep], history[len(history)-keep:]

	out := make([]llm.Message, 0, keep+1)
	if t.compressor != nil {
		summary, err := t.compressor.CompressHistory(ctx, old)
		if err == nil && summary != "" {
			out = append(out, llm.Message{Role: llm.RoleUser, Content: summaryPrefix + summary})
		} else if err != nil {
			t.degrade("history-compression", err)
		}
	}
	return append(out, recent...)
}

func chatFallback(s State) string {
	spec := s.Spec()
	var b strings.Builder
	b.WriteString("The tutor is offline right now, so here is how your current setup works out:\n")
	for i, step := range planting.SolvingSteps(spec) {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	return strings.TrimRight(b.String(), "\n")
}

func practiceFallback(s State) string {
	spec := s.Spec()
	c, ok := planting.ConceptFor(spec.Mode)
	if !ok {
		return "The tutor is offline right now. Start by working out how many gaps fit along the path."
	}
	return fmt.Sprintf("The tutor is offline right now. Think about %s: %s Formula: %s",
		strings.ToLower(c.Title), c.Idea, c.Formula)
}
