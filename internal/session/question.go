package session

import (
	"context"
	"fmt"

	"github.com/abhisek/arbor/internal/planting"
	"github.com/abhisek/arbor/internal/tutor"
)

// Question is one practice question as the session serves it.
type Question struct {
	ID       string
	Text     string
	Spec     planting.SpacingSpec
	Answer   int
	Strategy string
	Category PlanCategory
	// Degraded is set when the wording fell back to the template.
	Degraded bool
}

// QuestionSource writes progression questions. *tutor.Tutor implements it.
type QuestionSource interface {
	GenerateQuestion(ctx context.Context, req tutor.GenerateQuestionRequest) (*tutor.GeneratedQuestion, error)
}

// QuestionFor produces the question for slot. Progression slots go to src;
// booster slots are drawn from gen.
func QuestionFor(ctx context.Context, slot PlanSlot, src QuestionSource, gen *planting.Generator) (*Question, error) {
	switch slot.Category {
	case CategoryBooster:
		if gen == nil {
			return nil, fmt.Errorf("booster question: no generator")
		}
		q := gen.GenerateQuestion(slot.Mode, slot.Shape)
		return &Question{
			ID:       q.ID,
			Text:     q.NarrativeText,
			Spec:     q.Spec,
			Answer:   q.ExpectedAnswer,
			Strategy: "booster_" + slot.Mode.String(),
			Category: CategoryBooster,
		}, nil
	default:
		if src == nil {
			return nil, fmt.Errorf("question %d: no question source", slot.Number)
		}
		g, err := src.GenerateQuestion(ctx, tutor.GenerateQuestionRequest{QuestionNumber: slot.Number})
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", slot.Number, err)
		}
		return &Question{
			ID:       g.ID,
			Text:     g.Text,
			Spec:     g.Spec,
			Answer:   g.ExpectedAnswer,
			Strategy: g.Strategy,
			Category: CategoryProgression,
			Degraded: g.Degraded,
		}, nil
	}
}
