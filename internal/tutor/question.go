package tutor

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/arbor/internal/llm"
	"github.com/abhisek/arbor/internal/planting"
)

// QuestionSchema constrains the LLM narrative response.
var QuestionSchema = &llm.Schema{
	Name:        "planting-question",
	Description: "A tree-planting word problem without its answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question_text": map[string]any{
				"type":        "string",
				"description": "The word problem, asking how many trees are needed",
			},
		},
		"required":             []any{"question_text"},
		"additionalProperties": false,
	},
}

type questionOutput struct {
	QuestionText string `json:"question_text"`
}

// GenerateQuestion builds the practice question for a slot. The numbers
// and the answer are deterministic in the question number; only the
// wording comes from the LLM, with a template narrative as fallback.
func (t *Tutor) GenerateQuestion(ctx context.Context, req GenerateQuestionRequest) (*GeneratedQuestion, error) {
	strategy := strategyFor(req.QuestionNumber, req.Difficulty)
	spec := planting.DiverseParameters(strategy.Name, req.QuestionNumber)
	answer, err := planting.ComputeCount(spec)
	if err != nil {
		return nil, fmt.Errorf("question %d: %w", req.QuestionNumber, err)
	}

	q := &GeneratedQuestion{
		ID:             fmt.Sprintf("q%d_%d", req.QuestionNumber, t.now().UnixMilli()),
		Spec:           spec,
		ExpectedAnswer: answer,
		Strategy:       strategy.Name,
		Difficulty:     strategy.Difficulty,
	}

	text, err := t.narrate(ctx, req.QuestionNumber, strategy, q)
	if err != nil {
		t.degrade(llm.PurposeQuestionText, err)
		text = planting.Narrate(spec)
		q.Degraded = true
	}
	q.Text = text
	return q, nil
}

func (t *Tutor) narrate(ctx context.Context, number int, strategy planting.Strategy, q *GeneratedQuestion) (string, error) {
	if t.provider == nil {
		return "", errNoProvider
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionText)
	resp, err := t.provider.Generate(ctx, llm.Request{
		System:      questionSystemPrompt,
		Messages:    userMessage(buildQuestionUserMessage(number, strategy, q.Spec)),
		Schema:      QuestionSchema,
		MaxTokens:   t.cfg.QuestionMaxTokens,
		Temperature: t.cfg.Temperature,
	})
	if err != nil {
		return "", err
	}
	var out questionOutput
	if err := resp.Decode(&out); err != nil {
		return "", err
	}
	text := strings.TrimSpace(out.QuestionText)
	for _, v := range t.cfg.Validators {
		if verr := v.Validate(text, q); verr != nil {
			return "", verr
		}
	}
	return text, nil
}

// strategyFor picks the slot's strategy, or the first strategy of the
// requested difficulty when the slot's does not match it.
func strategyFor(number int, difficulty planting.Difficulty) planting.Strategy {
	s := planting.StrategyFor(number)
	if difficulty == "" || s.Difficulty == difficulty {
		return s
	}
	for _, c := range planting.Strategies() {
		if c.Difficulty == difficulty {
			return c
		}
	}
	return s
}
