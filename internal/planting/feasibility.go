package planting

// IsFeasible reports whether spec yields a positive whole number of items.
// UI code calls this (or Place) before drawing anything.
func IsFeasible(spec SpacingSpec) bool {
	_, err := ComputeCount(spec)
	return err == nil
}

// IsFeasibleStrict is IsFeasible under the strict divisibility policy,
// where closed shapes must also divide their perimeter exactly.
func IsFeasibleStrict(spec SpacingSpec) bool {
	_, err := ComputeCountStrict(spec)
	return err == nil
}

// Place runs the full guard, count and sample cycle. An infeasible spec
// yields Feasible=false, no points and the reason in Err.
func Place(spec SpacingSpec, frame Frame) PlacementResult {
	count, err := ComputeCount(spec)
	if err != nil {
		return PlacementResult{Points: []Point{}, Err: err}
	}
	return PlacementResult{
		Count:    count,
		Feasible: true,
		Points:   samplePoints(spec, frame, count),
	}
}
