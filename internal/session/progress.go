package session

import "github.com/abhisek/arbor/internal/planting"

// ModeResult tracks answers for one boundary mode within a session.
type ModeResult struct {
	Mode      planting.BoundaryMode
	Attempted int
	Correct   int
}

// Record adds a new answer result.
func (r *ModeResult) Record(correct bool) {
	r.Attempted++
	if correct {
		r.Correct++
	}
}

// Accuracy returns Correct / Attempted, or 0 before any attempt.
func (r *ModeResult) Accuracy() float64 {
	if r.Attempted == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Attempted)
}
