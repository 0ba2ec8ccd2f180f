package session

import (
	"context"
	"sort"

	"github.com/abhisek/arbor/internal/planting"
	"github.com/abhisek/arbor/internal/store"
)

const (
	// BoosterAccuracyThreshold is the accuracy below which a mode gets
	// booster questions.
	BoosterAccuracyThreshold = 0.6

	// BoosterMinAttempts is how many answers a mode needs before its
	// accuracy counts.
	BoosterMinAttempts = 3
)

// Planner builds a practice batch.
type Planner interface {
	BuildPlan(ctx context.Context, size int) (*Plan, error)
}

// DefaultPlanner fills the batch with the strategy progression and swaps
// the tail for booster questions on the learner's weakest modes.
type DefaultPlanner struct {
	EventRepo store.EventRepo
}

// NewPlanner creates a new DefaultPlanner. eventRepo may be nil.
func NewPlanner(eventRepo store.EventRepo) *DefaultPlanner {
	return &DefaultPlanner{EventRepo: eventRepo}
}

// BuildPlan creates a plan of size questions, DefaultBatchSize when size
// is not positive.
func (p *DefaultPlanner) BuildPlan(ctx context.Context, size int) (*Plan, error) {
	if size <= 0 {
		size = DefaultBatchSize
	}

	weak, err := p.weakModes(ctx)
	if err != nil {
		return nil, err
	}
	boosters := min(len(weak), MaxBoosterSlots, size-1)

	progression := len(planting.Strategies())
	slots := make([]PlanSlot, 0, size)
	for i := 0; i < size-boosters; i++ {
		slots = append(slots, PlanSlot{
			Number:   i%progression + 1,
			Category: CategoryProgression,
		})
	}
	for _, m := range weak[:boosters] {
		slots = append(slots, PlanSlot{
			Category: CategoryBooster,
			Mode:     m,
			Shape:    boosterShape(m),
		})
	}
	return &Plan{Slots: slots}, nil
}

// weakModes returns the modes below the booster threshold, weakest first.
func (p *DefaultPlanner) weakModes(ctx context.Context) ([]planting.BoundaryMode, error) {
	if p.EventRepo == nil {
		return nil, nil
	}
	tallies, err := p.EventRepo.AccuracyByMode(ctx)
	if err != nil {
		return nil, err
	}

	var weak []store.ModeAccuracy
	for _, t := range tallies {
		if t.Attempts >= BoosterMinAttempts && t.Rate() < BoosterAccuracyThreshold {
			weak = append(weak, t)
		}
	}
	sort.SliceStable(weak, func(i, j int) bool {
		return weak[i].Rate() < weak[j].Rate()
	})

	var out []planting.BoundaryMode
	for _, t := range weak {
		m, err := planting.ParseBoundaryMode(t.Mode)
		if err != nil {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func boosterShape(m planting.BoundaryMode) planting.PathShape {
	if m == planting.Loop {
		return planting.Circle
	}
	return planting.Segment
}
