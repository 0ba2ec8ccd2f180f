package diagnosis

import (
	"testing"

	"github.com/abhisek/arbor/internal/planting"
)

func TestAllMisconceptions_Count(t *testing.T) {
	if got := len(AllMisconceptions()); got != len(seedMisconceptions) {
		t.Errorf("got %d misconceptions, want %d", got, len(seedMisconceptions))
	}
}

func TestGetMisconception_Found(t *testing.T) {
	m := GetMisconception(MisconceptionLoopClosingTree)
	if m == nil {
		t.Fatal("GetMisconception(loop-closing-tree) returned nil")
	}
	if m.Label == "" || m.Description == "" {
		t.Error("label or description is empty")
	}
}

func TestGetMisconception_NotFound(t *testing.T) {
	if m := GetMisconception("nonexistent"); m != nil {
		t.Errorf("GetMisconception(nonexistent) = %v, want nil", m)
	}
}

func TestMisconceptionsFor(t *testing.T) {
	ids := func(ms []*Misconception) map[string]bool {
		out := make(map[string]bool)
		for _, m := range ms {
			out[m.ID] = true
		}
		return out
	}

	square := ids(MisconceptionsFor(loop(20, 5, planting.Square)))
	for _, want := range []string{MisconceptionLoopClosingTree, MisconceptionSideNotPerimeter, MisconceptionCornersTwice, MisconceptionMultiplied} {
		if !square[want] {
			t.Errorf("square candidates missing %s", want)
		}
	}
	if square[MisconceptionMissedEnds] {
		t.Error("square candidates include a segment-only misconception")
	}

	circle := ids(MisconceptionsFor(loop(60, 5, planting.Circle)))
	if circle[MisconceptionSideNotPerimeter] {
		t.Error("circle candidates include a polygon-only misconception")
	}

	both := ids(MisconceptionsFor(segment(100, 10, planting.BothEnds)))
	if !both[MisconceptionMissedEnds] || !both["ratio-only"] || both[MisconceptionKeptEnds] {
		t.Errorf("both-ends candidates = %v", both)
	}
}

func TestSeedData_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range seedMisconceptions {
		if seen[m.ID] {
			t.Errorf("duplicate misconception ID: %s", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestSeedData_AllFieldsPopulated(t *testing.T) {
	for _, m := range seedMisconceptions {
		if m.ID == "" {
			t.Error("misconception with empty ID")
		}
		if m.Label == "" {
			t.Errorf("misconception %s has empty label", m.ID)
		}
		if m.Description == "" {
			t.Errorf("misconception %s has empty description", m.ID)
		}
		if len(m.Examples) == 0 {
			t.Errorf("misconception %s has no examples", m.ID)
		}
	}
}
