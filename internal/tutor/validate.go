package tutor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Validator checks an LLM-written question narrative.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for error messages and logging.
	Name() string

	// Validate returns nil if the narrative can be shown for q.
	Validate(text string, q *GeneratedQuestion) *ValidationError
}

// ValidationError describes why a narrative was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

const maxNarrativeLen = 500

// NarrativeValidator checks the narrative is present, bounded and uses
// the question's numbers.
type NarrativeValidator struct{}

func (v *NarrativeValidator) Name() string { return "narrative" }

func (v *NarrativeValidator) Validate(text string, q *GeneratedQuestion) *ValidationError {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Validator: v.Name(), Message: "question text is empty"}
	}
	if len(text) > maxNarrativeLen {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("question text exceeds %d characters", maxNarrativeLen)}
	}
	nums := numbersIn(text)
	for _, want := range []float64{q.Spec.Length, q.Spec.Interval} {
		if !nums[want] {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("question text does not mention %g", want)}
		}
	}
	return nil
}

// AnswerLeakValidator rejects narratives that state the expected answer
// as a number of trees.
type AnswerLeakValidator struct{}

func (v *AnswerLeakValidator) Name() string { return "answer-leak" }

func (v *AnswerLeakValidator) Validate(text string, q *GeneratedQuestion) *ValidationError {
	re := regexp.MustCompile(`(?i)\b` + strconv.Itoa(q.ExpectedAnswer) + `\s+(trees?|saplings?|bushes|flags?|lamps?|posts?)\b`)
	if re.MatchString(text) {
		return &ValidationError{Validator: v.Name(), Message: "question text gives away the answer"}
	}
	return nil
}

var numberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

func numbersIn(text string) map[float64]bool {
	out := make(map[float64]bool)
	for _, m := range numberRe.FindAllString(text, -1) {
		if f, err := strconv.ParseFloat(m, 64); err == nil {
			out[f] = true
		}
	}
	return out
}
