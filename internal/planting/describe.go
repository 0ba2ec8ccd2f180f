package planting

import "fmt"

// DescribeMode returns a learner-facing label for mode.
func DescribeMode(m BoundaryMode) string {
	switch m {
	case BothEnds:
		return "trees at both ends"
	case NoEnds:
		return "no trees at either end"
	case OneEnd:
		return "a tree at one end only"
	case Loop:
		return "planted around a closed loop"
	}
	return m.String()
}

// DescribeShape returns a learner-facing label for shape.
func DescribeShape(s PathShape) string {
	switch s {
	case Segment:
		return "straight line"
	case Circle:
		return "circle"
	case Triangle:
		return "equilateral triangle"
	case Square:
		return "square"
	}
	return s.String()
}

// Narrate renders the default word problem for spec.
func Narrate(spec SpacingSpec) string {
	l, d := spec.Length, spec.Interval
	switch spec.Shape {
	case Circle:
		return fmt.Sprintf("A circular pond has a circumference of %g m. Trees are planted around it every %g m. How many trees are needed?", l, d)
	case Triangle:
		return fmt.Sprintf("A triangular garden has three equal sides of %g m. Trees are planted along its edge every %g m. How many trees are needed?", l, d)
	case Square:
		return fmt.Sprintf("A square playground has sides of %g m. Trees are planted along its edge every %g m. How many trees are needed?", l, d)
	}

	switch spec.Mode {
	case BothEnds:
		return fmt.Sprintf("A road is %g m long. Trees are planted every %g m, with a tree at both ends. How many trees are planted?", l, d)
	case NoEnds:
		return fmt.Sprintf("A road is %g m long. Trees are planted every %g m, but not at either end. How many trees are planted?", l, d)
	case OneEnd:
		return fmt.Sprintf("A road is %g m long. Trees are planted every %g m, starting at one end but not at the other. How many trees are planted?", l, d)
	default:
		return fmt.Sprintf("A looped running track is %g m long. Trees are planted along it every %g m. How many trees are needed?", l, d)
	}
}
