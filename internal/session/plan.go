package session

import "github.com/abhisek/arbor/internal/planting"

// PlanCategory represents the reason a question was included in the plan.
type PlanCategory string

const (
	CategoryProgression PlanCategory = "progression"
	CategoryBooster     PlanCategory = "booster"
)

// PlanSlot is a single question in the practice batch.
type PlanSlot struct {
	// Number is the 1-based position in the strategy progression. Only
	// progression slots use it.
	Number   int
	Category PlanCategory
	// Mode and Shape are set for booster slots.
	Mode  planting.BoundaryMode
	Shape planting.PathShape
}

// Plan is the ordered list of question slots for a session.
type Plan struct {
	Slots []PlanSlot
}

// DefaultBatchSize is the standard number of questions in a session.
const DefaultBatchSize = 5

// MaxBoosterSlots caps how many weak-mode questions replace progression
// questions.
const MaxBoosterSlots = 2
