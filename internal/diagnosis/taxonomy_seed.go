package diagnosis

import "github.com/abhisek/arbor/internal/planting"

// Misconception IDs matched by the rule-based classifiers.
const (
	MisconceptionMissedEnds       = "ends-missed"
	MisconceptionKeptEnds         = "ends-kept"
	MisconceptionOneEndShift      = "one-end-shift"
	MisconceptionLoopClosingTree  = "loop-closing-tree"
	MisconceptionSideNotPerimeter = "side-not-perimeter"
	MisconceptionCornersTwice     = "corners-twice"
	MisconceptionMultiplied       = "multiplied"
)

var polygons = []planting.PathShape{planting.Triangle, planting.Square}

// seedMisconceptions is the tree-planting misconception taxonomy.
var seedMisconceptions = []Misconception{
	{
		ID:          MisconceptionMissedEnds,
		Label:       "Forgot the end trees",
		Description: "With trees at both ends, answers the number of gaps (or one less) instead of gaps + 1",
		Examples:    []string{"100 m every 10 m, both ends: answers 10 instead of 11"},
		Modes:       []planting.BoundaryMode{planting.BothEnds},
	},
	{
		ID:          MisconceptionKeptEnds,
		Label:       "Kept the end trees",
		Description: "With no trees at the ends, answers the gaps (or gaps + 1) instead of gaps - 1",
		Examples:    []string{"100 m every 10 m, no ends: answers 10 or 11 instead of 9"},
		Modes:       []planting.BoundaryMode{planting.NoEnds},
	},
	{
		ID:          MisconceptionOneEndShift,
		Label:       "Off by one at one end",
		Description: "With a tree at one end only, adds or subtracts one from the gap count",
		Examples:    []string{"100 m every 10 m, one end: answers 11 or 9 instead of 10"},
		Modes:       []planting.BoundaryMode{planting.OneEnd},
	},
	{
		ID:          MisconceptionLoopClosingTree,
		Label:       "Counted the closing tree twice",
		Description: "On a closed loop, adds one as if the start and end were different trees",
		Examples:    []string{"60 m circle every 5 m: answers 13 instead of 12"},
		Modes:       []planting.BoundaryMode{planting.Loop},
	},
	{
		ID:          MisconceptionSideNotPerimeter,
		Label:       "Used one side, not the perimeter",
		Description: "For a polygon, divides a single side by the interval instead of the whole perimeter",
		Examples:    []string{"square of side 20 m every 5 m: answers 4 or 5 instead of 16"},
		Modes:       []planting.BoundaryMode{planting.Loop},
		Shapes:      polygons,
	},
	{
		ID:          MisconceptionCornersTwice,
		Label:       "Counted corners twice",
		Description: "Plants each side with both ends and adds the sides, so every corner tree is counted twice",
		Examples:    []string{"square of side 20 m every 5 m: answers 20 instead of 16"},
		Modes:       []planting.BoundaryMode{planting.Loop},
		Shapes:      polygons,
	},
	{
		ID:          MisconceptionMultiplied,
		Label:       "Multiplied instead of divided",
		Description: "Multiplies the length by the interval instead of dividing",
		Examples:    []string{"30 m every 5 m: answers 150"},
	},
	{
		ID:          "ratio-only",
		Label:       "Stopped at the division",
		Description: "Divides length by interval and gives that as the answer without applying any end rule",
		Examples:    []string{"100 m every 10 m, no ends: answers 10"},
		Modes:       []planting.BoundaryMode{planting.BothEnds, planting.NoEnds},
	},
	{
		ID:          "arithmetic-slip",
		Label:       "Arithmetic slip",
		Description: "Chooses the right rule but makes a division or addition mistake",
		Examples:    []string{"120 m every 8 m, both ends: answers 14 instead of 16"},
	},
}
