package tutor

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/arbor/internal/diagnosis"
	"github.com/abhisek/arbor/internal/llm"
	"github.com/abhisek/arbor/internal/planting"
)

// CheckAnswer marks an answer against the computed count. Closed shapes
// use the floored count so a loop that does not divide evenly still has
// an answer. Wrong answers are diagnosed when a diagnosis service is set.
func (t *Tutor) CheckAnswer(ctx context.Context, req CheckAnswerRequest) (*CheckResult, error) {
	req.Spec = req.Spec.Normalize()
	correct, err := planting.ComputeCount(req.Spec)
	if err != nil {
		return nil, fmt.Errorf("check answer: %w", err)
	}

	res := &CheckResult{
		IsCorrect:     req.UserAnswer == correct,
		CorrectAnswer: correct,
		SolvingSteps:  planting.SolvingSteps(req.Spec),
	}

	if !res.IsCorrect && t.diagnoser != nil {
		res.Diagnosis = t.diagnoser.DiagnoseSync(ctx, &diagnosis.ClassifyInput{
			Spec:           req.Spec,
			Narrative:      req.QuestionText,
			CorrectAnswer:  correct,
			LearnerAnswer:  req.UserAnswer,
			ResponseTimeMs: req.ResponseTimeMs,
			ModeAccuracy:   req.ModeAccuracy,
		})
	}

	label := ""
	if res.Diagnosis != nil && res.Diagnosis.Category != diagnosis.CategoryUnclassified {
		label = res.Diagnosis.Label()
	}

	explanation, err := t.text(ctx, llm.PurposeExplanation, explanationSystemPrompt,
		userMessage(buildExplanationUserMessage(req, correct, res.SolvingSteps, label)),
		t.cfg.ExplanationMaxTokens)
	explanation = strings.TrimSpace(explanation)
	if err != nil || explanation == "" {
		if err == nil {
			err = errEmptyReply
		}
		t.degrade(llm.PurposeExplanation, err)
		explanation = fallbackExplanation(res, label)
		res.Degraded = true
	}
	res.Explanation = explanation
	return res, nil
}

func fallbackExplanation(res *CheckResult, label string) string {
	var b strings.Builder
	if res.IsCorrect {
		fmt.Fprintf(&b, "Correct! %d trees.", res.CorrectAnswer)
	} else {
		fmt.Fprintf(&b, "Not quite. The answer is %d.", res.CorrectAnswer)
		if label != "" {
			fmt.Fprintf(&b, " Likely mistake: %s.", label)
		}
	}
	for _, s := range res.SolvingSteps {
		b.WriteString(" ")
		b.WriteString(s)
	}
	return b.String()
}
