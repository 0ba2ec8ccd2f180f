package lessons

import (
	"fmt"
	"strings"

	"github.com/abhisek/arbor/internal/planting"
)

// exampleSpecs are the worked examples of the offline lessons.
var exampleSpecs = map[planting.BoundaryMode]planting.SpacingSpec{
	planting.BothEnds: {Length: 100, Interval: 10, Mode: planting.BothEnds, Shape: planting.Segment},
	planting.NoEnds:   {Length: 60, Interval: 10, Mode: planting.NoEnds, Shape: planting.Segment},
	planting.OneEnd:   {Length: 80, Interval: 20, Mode: planting.OneEnd, Shape: planting.Segment},
	planting.Loop:     {Length: 60, Interval: 5, Mode: planting.Loop, Shape: planting.Circle},
}

// practiceSpecs are smaller than the worked examples.
var practiceSpecs = map[planting.BoundaryMode]planting.SpacingSpec{
	planting.BothEnds: {Length: 30, Interval: 5, Mode: planting.BothEnds, Shape: planting.Segment},
	planting.NoEnds:   {Length: 24, Interval: 4, Mode: planting.NoEnds, Shape: planting.Segment},
	planting.OneEnd:   {Length: 40, Interval: 8, Mode: planting.OneEnd, Shape: planting.Segment},
	planting.Loop:     {Length: 12, Interval: 3, Mode: planting.Loop, Shape: planting.Square},
}

// Builtin returns the offline lesson for mode, built from the concept
// cards and the solving steps of fixed examples.
func Builtin(mode planting.BoundaryMode) (*Lesson, error) {
	concept, ok := planting.ConceptFor(mode)
	if !ok {
		return nil, fmt.Errorf("no lesson for boundary mode %s", mode)
	}
	example, practice := exampleSpecs[mode], practiceSpecs[mode]
	answer, err := planting.ComputeCount(practice)
	if err != nil {
		return nil, fmt.Errorf("builtin practice for %s: %w", mode, err)
	}

	return &Lesson{
		Mode:          mode,
		Title:         concept.Title,
		Explanation:   concept.Idea + " Formula: " + concept.Formula + ".",
		WorkedExample: planting.Narrate(example) + "\n" + numbered(planting.SolvingSteps(example)),
		Practice: PracticeQuestion{
			Spec:        practice,
			Text:        planting.Narrate(practice),
			Answer:      answer,
			Explanation: strings.Join(planting.SolvingSteps(practice), " "),
		},
		Builtin: true,
	}, nil
}

func numbered(steps []string) string {
	var b strings.Builder
	for i, s := range steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}
