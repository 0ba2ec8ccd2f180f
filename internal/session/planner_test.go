package session

import (
	"errors"
	"testing"

	"github.com/abhisek/arbor/internal/planting"
	"github.com/abhisek/arbor/internal/store"
)

func TestBuildPlan_NoHistory(t *testing.T) {
	plan, err := NewPlanner(nil).BuildPlan(t.Context(), 0)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if len(plan.Slots) != DefaultBatchSize {
		t.Fatalf("slots = %d, want %d", len(plan.Slots), DefaultBatchSize)
	}
	for i, s := range plan.Slots {
		if s.Category != CategoryProgression || s.Number != i+1 {
			t.Errorf("slot %d = %+v, want progression #%d", i, s, i+1)
		}
	}
}

func TestBuildPlan_ProgressionWraps(t *testing.T) {
	plan, err := NewPlanner(nil).BuildPlan(t.Context(), 7)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if got := plan.Slots[5].Number; got != 1 {
		t.Errorf("slot 6 number = %d, want 1", got)
	}
}

func TestBuildPlan_BoostersForWeakModes(t *testing.T) {
	repo := &mockEventRepo{accuracy: []store.ModeAccuracy{
		{Mode: "both", Attempts: 10, Correct: 9},
		{Mode: "loop", Attempts: 4, Correct: 2},
		{Mode: "none", Attempts: 5, Correct: 1},
		{Mode: "one", Attempts: 2, Correct: 0}, // too few attempts
	}}
	plan, err := NewPlanner(repo).BuildPlan(t.Context(), 5)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if len(plan.Slots) != 5 {
		t.Fatalf("slots = %d, want 5", len(plan.Slots))
	}

	boosters := plan.Slots[3:]
	if boosters[0].Category != CategoryBooster || boosters[0].Mode != planting.NoEnds || boosters[0].Shape != planting.Segment {
		t.Errorf("first booster = %+v, want none/segment", boosters[0])
	}
	if boosters[1].Mode != planting.Loop || boosters[1].Shape != planting.Circle {
		t.Errorf("second booster = %+v, want loop/circle", boosters[1])
	}
	for _, s := range plan.Slots[:3] {
		if s.Category != CategoryProgression {
			t.Errorf("expected progression slot, got %+v", s)
		}
	}
}

func TestBuildPlan_SingleQuestionHasNoBooster(t *testing.T) {
	repo := &mockEventRepo{accuracy: []store.ModeAccuracy{{Mode: "none", Attempts: 5, Correct: 0}}}
	plan, err := NewPlanner(repo).BuildPlan(t.Context(), 1)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if len(plan.Slots) != 1 || plan.Slots[0].Category != CategoryProgression {
		t.Errorf("slots = %+v", plan.Slots)
	}
}

func TestBuildPlan_RepoError(t *testing.T) {
	repo := &mockEventRepo{accuracyErr: errors.New("db locked")}
	if _, err := NewPlanner(repo).BuildPlan(t.Context(), 5); err == nil {
		t.Error("expected error")
	}
}
