package planting

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance for treating a float ratio as a whole number.
const Epsilon = 1e-9

// MaxCount caps the number of items a single spec may produce.
const MaxCount = 1_000_000

// isInt reports whether x is within Epsilon of an integer.
func isInt(x float64) bool {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return false
	}
	return math.Abs(x-math.Round(x)) < Epsilon
}

func isInf(x float64) bool {
	return math.IsInf(x, 0)
}

// floorTol floors x, except that values within Epsilon below an integer
// round up to it. 3*(7/3) must floor to 7, not 6.
func floorTol(x float64) float64 {
	if isInt(x) {
		return math.Round(x)
	}
	return math.Floor(x)
}

// IsWhole reports whether x is a whole number within Epsilon.
func IsWhole(x float64) bool {
	return isInt(x)
}

// FloorRatio is the tolerance-aware floor of a / b used by every count.
func FloorRatio(a, b float64) int {
	return int(floorTol(a / b))
}

// Perimeter returns the full path length of the spec: the side length
// times the side count for polygons, Length otherwise.
func Perimeter(spec SpacingSpec) float64 {
	return spec.Length * float64(spec.Shape.Sides())
}

// ComputeCount returns the number of items placed by spec.
//
// Segments require length/interval to be a whole number. Closed shapes
// floor perimeter/interval and never go below their minimum point count
// (3 for circles and triangles, 4 for squares).
func ComputeCount(spec SpacingSpec) (int, error) {
	return computeCount(spec, false)
}

// ComputeCountStrict is ComputeCount with closed shapes also required to
// divide their perimeter exactly.
func ComputeCountStrict(spec SpacingSpec) (int, error) {
	return computeCount(spec, true)
}

func computeCount(spec SpacingSpec, strict bool) (int, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}

	ratio := Perimeter(spec) / spec.Interval
	if math.IsNaN(ratio) || ratio > MaxCount {
		return 0, fmt.Errorf("%w: %g / %g exceeds %d items", ErrInfeasible, Perimeter(spec), spec.Interval, MaxCount)
	}

	if !spec.Shape.IsClosed() {
		if !isInt(ratio) {
			return 0, fmt.Errorf("%w: %g / %g = %.4g is not a whole number",
				ErrInfeasible, spec.Length, spec.Interval, ratio)
		}
		n := int(math.Round(ratio))
		var count int
		switch spec.Mode {
		case BothEnds:
			count = n + 1
		case NoEnds:
			count = n - 1
		case OneEnd, Loop:
			count = n
		}
		if count <= 0 {
			return 0, fmt.Errorf("%w: %s leaves no room for items (count %d)", ErrInfeasible, spec, count)
		}
		return count, nil
	}

	if strict && !isInt(ratio) {
		return 0, fmt.Errorf("%w: perimeter %g is not a multiple of %g",
			ErrInfeasible, Perimeter(spec), spec.Interval)
	}
	return max(int(floorTol(ratio)), spec.Shape.minCount()), nil
}

// LengthFrom is the inverse of the segment formulas: the path length that
// holds count items spaced interval apart under mode.
func LengthFrom(count int, interval float64, mode BoundaryMode) (float64, error) {
	if count <= 0 {
		return 0, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidParameter, count)
	}
	if !(interval > 0) || isInf(interval) {
		return 0, fmt.Errorf("%w: interval must be positive, got %v", ErrInvalidParameter, interval)
	}

	if !mode.Valid() {
		return 0, fmt.Errorf("%w: boundary mode %d", ErrInvalidParameter, int(mode))
	}
	length := float64(Gaps(count, mode)) * interval
	// A single tree with both ends planted has no road to stand on.
	if !(length > 0) || isInf(length) {
		return 0, fmt.Errorf("%w: %d items under %s span no length", ErrInfeasible, count, mode)
	}
	return length, nil
}

// Gaps returns how many intervals separate count items under mode.
func Gaps(count int, mode BoundaryMode) int {
	switch mode {
	case BothEnds:
		return count - 1
	case NoEnds:
		return count + 1
	default:
		return count
	}
}
