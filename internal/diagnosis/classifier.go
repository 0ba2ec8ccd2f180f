package diagnosis

// Finding is what a classifier concluded. The zero Finding means the rule
// did not apply.
type Finding struct {
	Category        ErrorCategory
	MisconceptionID string
	Confidence      float64
}

// Classifier is a rule-based error classifier.
type Classifier interface {
	Name() string
	Classify(input *ClassifyInput) Finding
}

// DefaultClassifiers returns classifiers in priority order.
// Answers that reproduce a known wrong rule are matched before timing and
// accuracy heuristics.
func DefaultClassifiers() []Classifier {
	return []Classifier{
		&BoundaryClassifier{},
		&PerimeterClassifier{},
		&OperationClassifier{},
		&SpeedRushClassifier{},
		&CarelessClassifier{},
	}
}

// RunClassifiers executes rule-based classifiers in order.
// Returns the first match and its classifier name, or a zero Finding and
// "" if no rules apply.
func RunClassifiers(classifiers []Classifier, input *ClassifyInput) (Finding, string) {
	if input.LearnerAnswer == input.CorrectAnswer {
		return Finding{}, ""
	}
	for _, c := range classifiers {
		f := c.Classify(input)
		if f.Category != "" {
			return f, c.Name()
		}
	}
	return Finding{}, ""
}
