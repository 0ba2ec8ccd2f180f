package diagnosis

import (
	"math"

	"github.com/abhisek/arbor/internal/planting"
)

func misconception(id string, conf float64) Finding {
	return Finding{Category: CategoryMisconception, MisconceptionID: id, Confidence: conf}
}

// gaps returns the number of intervals along the full path of a
// well-formed input.
func gaps(input *ClassifyInput) int {
	return planting.Gaps(input.CorrectAnswer, input.Spec.Mode)
}

// BoundaryClassifier matches answers that apply the wrong end rule: the
// learner computed the gaps correctly but added or dropped the end trees.
type BoundaryClassifier struct{}

func (c *BoundaryClassifier) Name() string { return "boundary-rule" }

func (c *BoundaryClassifier) Classify(input *ClassifyInput) Finding {
	if input.CorrectAnswer <= 0 {
		return Finding{}
	}
	g, a := gaps(input), input.LearnerAnswer
	switch input.Spec.Mode {
	case planting.BothEnds:
		if a == g || a == g-1 {
			return misconception(MisconceptionMissedEnds, 0.85)
		}
	case planting.NoEnds:
		if a == g || a == g+1 {
			return misconception(MisconceptionKeptEnds, 0.85)
		}
	case planting.OneEnd:
		if a == g+1 || a == g-1 {
			return misconception(MisconceptionOneEndShift, 0.85)
		}
	case planting.Loop:
		if a == g+1 {
			return misconception(MisconceptionLoopClosingTree, 0.85)
		}
	}
	return Finding{}
}

// PerimeterClassifier matches polygon answers worked from a single side.
type PerimeterClassifier struct{}

func (c *PerimeterClassifier) Name() string { return "perimeter" }

func (c *PerimeterClassifier) Classify(input *ClassifyInput) Finding {
	sides := input.Spec.Shape.Sides()
	if sides < 3 || input.Spec.Interval <= 0 {
		return Finding{}
	}
	perSide := planting.FloorRatio(input.Spec.Length, input.Spec.Interval)
	a := input.LearnerAnswer
	switch a {
	case perSide, perSide + 1:
		return misconception(MisconceptionSideNotPerimeter, 0.85)
	case sides * (perSide + 1):
		return misconception(MisconceptionCornersTwice, 0.8)
	}
	return Finding{}
}

// OperationClassifier matches answers that multiply length and interval.
type OperationClassifier struct{}

func (c *OperationClassifier) Name() string { return "operation" }

func (c *OperationClassifier) Classify(input *ClassifyInput) Finding {
	product := input.Spec.Length * input.Spec.Interval
	if planting.IsWhole(product) && input.LearnerAnswer == int(math.Round(product)) {
		return misconception(MisconceptionMultiplied, 0.7)
	}
	return Finding{}
}
