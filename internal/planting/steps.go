package planting

import "fmt"

// SolvingSteps explains how the answer for spec is worked out, one line
// per step. Infeasible specs end with the reason no even spacing exists.
func SolvingSteps(spec SpacingSpec) []string {
	if err := spec.Validate(); err != nil {
		return []string{fmt.Sprintf("These numbers cannot be used: %v.", err)}
	}

	l, d := spec.Length, spec.Interval
	ratio := Perimeter(spec) / d

	if !spec.Shape.IsClosed() {
		steps := []string{
			"This is a straight-line planting problem.",
			fmt.Sprintf("Known: the road is %g m long and trees are %g m apart.", l, d),
		}
		if !isInt(ratio) {
			return append(steps,
				fmt.Sprintf("%g ÷ %g = %.2f is not a whole number, so the trees cannot be spaced evenly.", l, d, ratio))
		}
		gaps := int(ratio)
		steps = append(steps, fmt.Sprintf("Number of gaps: %g ÷ %g = %d.", l, d, gaps))
		switch spec.Mode {
		case BothEnds:
			steps = append(steps,
				"Trees at both ends: trees = gaps + 1.",
				fmt.Sprintf("Compute: %d + 1 = %d trees.", gaps, gaps+1))
		case NoEnds:
			steps = append(steps,
				"No trees at either end: trees = gaps - 1.",
				fmt.Sprintf("Compute: %d - 1 = %d trees.", gaps, gaps-1))
		default:
			steps = append(steps,
				"A tree at one end only: trees = gaps.",
				fmt.Sprintf("Compute: %d trees.", gaps))
		}
		return steps
	}

	var steps []string
	switch spec.Shape {
	case Circle:
		steps = append(steps,
			"This is a closed-loop (circle) planting problem.",
			fmt.Sprintf("Known: the circumference is %g m and trees are %g m apart.", l, d))
	default:
		sides := spec.Shape.Sides()
		steps = append(steps,
			fmt.Sprintf("This is a closed-loop (%s) planting problem.", DescribeShape(spec.Shape)),
			fmt.Sprintf("Known: each side is %g m and trees are %g m apart.", l, d),
			fmt.Sprintf("Perimeter: %g × %d = %g m.", l, sides, Perimeter(spec)))
	}

	steps = append(steps, "On a closed loop the start and end meet: trees = perimeter ÷ interval.")
	count, _ := ComputeCount(spec)
	if isInt(ratio) {
		steps = append(steps, fmt.Sprintf("Compute: %g ÷ %g = %d trees.", Perimeter(spec), d, count))
	} else {
		steps = append(steps,
			fmt.Sprintf("%g ÷ %g = %.2f, so only %d full gaps fit.", Perimeter(spec), d, ratio, int(floorTol(ratio))),
			fmt.Sprintf("Answer: %d trees.", count))
	}
	return steps
}
