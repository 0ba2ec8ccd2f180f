package planting

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/tailscale/hujson"
)

// Concept is one formula card for a boundary mode.
type Concept struct {
	Mode    BoundaryMode `json:"mode"`
	Title   string       `json:"title"`
	Idea    string       `json:"idea"`
	Formula string       `json:"formula"`
}

//go:embed content/concepts.hujson
var conceptsSource []byte

type contentFile struct {
	Concepts []Concept `json:"concepts"`
	Syllabus []string  `json:"syllabus"`
}

var loadContent = sync.OnceValues(func() (contentFile, error) {
	return parseContent(conceptsSource)
})

func parseContent(data []byte) (contentFile, error) {
	var c contentFile
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return c, fmt.Errorf("parse content: %w", err)
	}
	if err := json.Unmarshal(standardized, &c); err != nil {
		return c, fmt.Errorf("decode content: %w", err)
	}
	return c, nil
}

// Concepts returns the concept card for each boundary mode.
func Concepts() []Concept {
	c, err := loadContent()
	if err != nil {
		panic(err)
	}
	return append([]Concept(nil), c.Concepts...)
}

// ConceptFor returns the card for mode.
func ConceptFor(mode BoundaryMode) (Concept, bool) {
	for _, c := range Concepts() {
		if c.Mode == mode {
			return c, true
		}
	}
	return Concept{}, false
}

// Syllabus returns the lesson titles in teaching order.
func Syllabus() []string {
	c, err := loadContent()
	if err != nil {
		panic(err)
	}
	return append([]string(nil), c.Syllabus...)
}
