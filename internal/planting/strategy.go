package planting

import (
	"fmt"
	"strings"
)

// Difficulty labels a practice strategy.
type Difficulty string

const (
	Basic    Difficulty = "basic"
	Medium   Difficulty = "medium"
	Advanced Difficulty = "advanced"
)

// ParseDifficulty accepts the three labels case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Basic, Medium, Advanced:
		return d, nil
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidParameter, s)
}

// Strategy names the family of parameters used for one question slot.
type Strategy struct {
	Name       string     `json:"name"`
	Difficulty Difficulty `json:"difficulty"`
}

// Strategy names.
const (
	StrategyBasicLine     = "basic_line"
	StrategyBasicLineBoth = "basic_line_both"
	StrategyLineAdvanced  = "line_advanced"
	StrategyShapeProblem  = "shape_problem"
	StrategyComprehensive = "comprehensive"
)

var strategies = []Strategy{
	{StrategyBasicLine, Basic},
	{StrategyBasicLineBoth, Basic},
	{StrategyLineAdvanced, Medium},
	{StrategyShapeProblem, Medium},
	{StrategyComprehensive, Advanced},
}

// Strategies returns the five-question practice progression.
func Strategies() []Strategy {
	out := make([]Strategy, len(strategies))
	copy(out, strategies)
	return out
}

// StrategyFor maps a 1-based question number to its strategy. Numbers
// outside 1..5 get the first strategy.
func StrategyFor(questionNumber int) Strategy {
	if questionNumber < 1 || questionNumber > len(strategies) {
		return strategies[0]
	}
	return strategies[questionNumber-1]
}

// lcg is the small linear congruential generator that makes question
// parameters reproducible from the question number alone.
type lcg struct{ seed int64 }

const lcgModulus = 233280

func newLCG(questionNumber int) *lcg {
	s := (int64(questionNumber)*42 + 1) % lcgModulus
	if s < 0 {
		s += lcgModulus
	}
	return &lcg{seed: s}
}

func (r *lcg) next() float64 {
	r.seed = (r.seed*9301 + 49297) % lcgModulus
	return float64(r.seed) / lcgModulus
}

func (r *lcg) pick(n int) int {
	return int(r.next()*float64(n)) % n
}

// DiverseParameters returns the spec for questionNumber under strategy.
// The choice is deterministic, and the result always passes
// IsFeasibleStrict: when the drawn pair does not divide evenly the next
// interval, then the next length, in table order is used. Unknown
// strategies get 100 m every 10 m with trees at both ends.
func DiverseParameters(strategy string, questionNumber int) SpacingSpec {
	r := newLCG(questionNumber)

	switch strategy {
	case StrategyBasicLine:
		return pickFeasible(r, []float64{60, 80, 100, 120}, []float64{5, 10, 15}, BothEnds, Segment)
	case StrategyBasicLineBoth:
		return pickFeasible(r, []float64{80, 100, 120, 140}, []float64{8, 10, 12}, BothEnds, Segment)
	case StrategyLineAdvanced:
		lengths := []float64{90, 110, 130, 150}
		intervals := []float64{6, 9, 12, 15}
		li, ii := r.pick(len(lengths)), r.pick(len(intervals))
		mode := []BoundaryMode{NoEnds, OneEnd}[r.pick(2)]
		return feasibleFrom(lengths, intervals, li, ii, mode, Segment)
	case StrategyShapeProblem:
		shape := []PathShape{Circle, Triangle, Square}[r.pick(3)]
		if shape == Circle {
			return pickFeasible(r, []float64{24, 30, 36, 42}, []float64{3, 6}, Loop, Circle)
		}
		return pickFeasible(r, []float64{12, 18, 24, 30}, []float64{3, 6}, Loop, shape)
	case StrategyComprehensive:
		shape := []PathShape{Segment, Circle}[r.pick(2)]
		mode := Loop
		if shape == Segment {
			mode = []BoundaryMode{BothEnds, NoEnds, OneEnd}[r.pick(3)]
		}
		return pickFeasible(r, []float64{120, 140, 160, 180}, []float64{8, 10, 12, 15}, mode, shape)
	}
	return SpacingSpec{Length: 100, Interval: 10, Mode: BothEnds, Shape: Segment}
}

func pickFeasible(r *lcg, lengths, intervals []float64, mode BoundaryMode, shape PathShape) SpacingSpec {
	li := r.pick(len(lengths))
	ii := r.pick(len(intervals))
	return feasibleFrom(lengths, intervals, li, ii, mode, shape)
}

func feasibleFrom(lengths, intervals []float64, li, ii int, mode BoundaryMode, shape PathShape) SpacingSpec {
	for a := range lengths {
		for b := range intervals {
			spec := SpacingSpec{
				Length:   lengths[(li+a)%len(lengths)],
				Interval: intervals[(ii+b)%len(intervals)],
				Mode:     mode,
				Shape:    shape,
			}
			if IsFeasibleStrict(spec) {
				return spec
			}
		}
	}
	// Every table above contains an evenly dividing pair.
	return SpacingSpec{Length: lengths[li], Interval: intervals[ii], Mode: mode, Shape: shape}
}
