package diagnosis

import (
	"slices"

	"github.com/abhisek/arbor/internal/planting"
)

// Misconception defines a known misconception pattern.
type Misconception struct {
	ID          string
	Label       string
	Description string
	Examples    []string
	// Modes and Shapes restrict where the misconception can occur. Empty
	// means any.
	Modes  []planting.BoundaryMode
	Shapes []planting.PathShape
}

// AppliesTo reports whether the misconception can explain an answer to spec.
func (m *Misconception) AppliesTo(spec planting.SpacingSpec) bool {
	if len(m.Modes) > 0 && !slices.Contains(m.Modes, spec.Mode) {
		return false
	}
	if len(m.Shapes) > 0 && !slices.Contains(m.Shapes, spec.Shape) {
		return false
	}
	return true
}

// registry is the package-level misconception registry, keyed by ID.
var registry map[string]*Misconception

func init() {
	registry = make(map[string]*Misconception, len(seedMisconceptions))
	for i := range seedMisconceptions {
		m := &seedMisconceptions[i]
		registry[m.ID] = m
	}
}

// GetMisconception returns a misconception by ID, or nil if not found.
func GetMisconception(id string) *Misconception {
	return registry[id]
}

// MisconceptionsFor returns the misconceptions that can explain a wrong
// answer to spec, in taxonomy order.
func MisconceptionsFor(spec planting.SpacingSpec) []*Misconception {
	var out []*Misconception
	for i := range seedMisconceptions {
		if m := &seedMisconceptions[i]; m.AppliesTo(spec) {
			out = append(out, m)
		}
	}
	return out
}

// AllMisconceptions returns every misconception in the taxonomy.
func AllMisconceptions() []*Misconception {
	result := make([]*Misconception, 0, len(seedMisconceptions))
	for i := range seedMisconceptions {
		result = append(result, &seedMisconceptions[i])
	}
	return result
}
