package planting

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateQuestion_Solvable(t *testing.T) {
	g := NewGenerator(NewRand(7))
	for _, shape := range AllShapes {
		for _, mode := range AllModes {
			for range 20 {
				q := g.GenerateQuestion(mode, shape)
				count, err := ComputeCountStrict(q.Spec)
				require.NoError(t, err, "%v", q.Spec)
				assert.Equal(t, count, q.ExpectedAnswer, "%v", q.Spec)
				if shape.IsClosed() {
					assert.Equal(t, Loop, q.Spec.Mode)
				} else {
					assert.Equal(t, mode, q.Spec.Mode)
				}
				assert.LessOrEqual(t, Perimeter(q.Spec), 500.0)
				assert.NotEmpty(t, q.NarrativeText)
			}
		}
	}
}

func TestGenerateQuestion_Deterministic(t *testing.T) {
	a := NewGenerator(NewRand(99)).GenerateBatch(8)
	b := NewGenerator(NewRand(99)).GenerateBatch(8)
	assert.Equal(t, a, b)
}

func TestGenerateQuestion_FallbackWhenNoTripleFits(t *testing.T) {
	g := NewGenerator(NewRand(1), WithMaxLength(1), WithMaxAttempts(3))
	q := g.GenerateQuestion(BothEnds, Segment)
	assert.Equal(t, SpacingSpec{Length: 120, Interval: 10, Mode: BothEnds, Shape: Segment}, q.Spec)
	assert.Equal(t, 13, q.ExpectedAnswer)

	q = g.GenerateQuestion(Loop, Triangle)
	assert.Equal(t, 40.0, q.Spec.Length)
	assert.Equal(t, 12, q.ExpectedAnswer)
}

func TestGenerateQuestion_CustomNarrative(t *testing.T) {
	g := NewGenerator(NewRand(3), WithNarrative(func(s SpacingSpec) string {
		return "custom " + s.Mode.String()
	}))
	q := g.GenerateQuestion(OneEnd, Segment)
	assert.Equal(t, "custom one", q.NarrativeText)
}

func TestGenerateQuestion_UniqueIDs(t *testing.T) {
	g := NewGenerator(NewRand(5))
	q1 := g.GenerateQuestion(BothEnds, Segment)
	q2 := g.GenerateQuestion(BothEnds, Segment)
	assert.NotEqual(t, q1.ID, q2.ID)
	assert.True(t, strings.HasPrefix(q1.ID, "q"))
}

func TestGenerateBatch_CoverageAndNoDuplicates(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		batch := NewGenerator(NewRand(seed)).GenerateBatch(6)
		require.Len(t, batch, 6)

		modes := make(map[BoundaryMode]int)
		seen := make(map[batchKey]bool)
		for _, q := range batch {
			modes[q.Spec.Mode]++
			key := batchKey{q.Spec.Mode, q.Spec.Length, q.Spec.Interval}
			if seen[key] {
				t.Errorf("seed %d: duplicate %v", seed, q.Spec)
			}
			seen[key] = true
		}
		for _, m := range AllModes {
			if modes[m] == 0 {
				t.Errorf("seed %d: no question for mode %s", seed, m)
			}
		}
	}
}

func TestGenerateBatch_Empty(t *testing.T) {
	assert.Empty(t, NewGenerator(NewRand(1)).GenerateBatch(0))
}

func TestGenerateBatch_Concurrent(t *testing.T) {
	g := NewGenerator(NewRand(11))
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, q := range g.GenerateBatch(5) {
				if !IsFeasibleStrict(q.Spec) {
					t.Errorf("infeasible question %v", q.Spec)
				}
			}
		}()
	}
	wg.Wait()
}

func TestStrategyFor(t *testing.T) {
	assert.Equal(t, Strategy{StrategyBasicLine, Basic}, StrategyFor(1))
	assert.Equal(t, Strategy{StrategyLineAdvanced, Medium}, StrategyFor(3))
	assert.Equal(t, Strategy{StrategyComprehensive, Advanced}, StrategyFor(5))
	assert.Equal(t, StrategyFor(1), StrategyFor(0))
	assert.Equal(t, StrategyFor(1), StrategyFor(6))
}

func TestDiverseParameters_FeasibleAndDeterministic(t *testing.T) {
	for _, s := range Strategies() {
		for n := -3; n <= 60; n++ {
			spec := DiverseParameters(s.Name, n)
			if !IsFeasibleStrict(spec) {
				t.Errorf("%s #%d: infeasible %v", s.Name, n, spec)
			}
			if spec != DiverseParameters(s.Name, n) {
				t.Errorf("%s #%d: not deterministic", s.Name, n)
			}
		}
	}
}

func TestDiverseParameters_StrategyShapes(t *testing.T) {
	for n := 1; n <= 30; n++ {
		spec := DiverseParameters(StrategyBasicLine, n)
		assert.Equal(t, BothEnds, spec.Mode)
		assert.Equal(t, Segment, spec.Shape)

		spec = DiverseParameters(StrategyLineAdvanced, n)
		assert.Contains(t, []BoundaryMode{NoEnds, OneEnd}, spec.Mode)

		spec = DiverseParameters(StrategyShapeProblem, n)
		assert.True(t, spec.Shape.IsClosed())
		assert.Equal(t, Loop, spec.Mode)
	}
}

func TestDiverseParameters_UnknownStrategy(t *testing.T) {
	got := DiverseParameters("nope", 1)
	assert.Equal(t, SpacingSpec{Length: 100, Interval: 10, Mode: BothEnds, Shape: Segment}, got)
}
