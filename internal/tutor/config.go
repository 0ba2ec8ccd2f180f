package tutor

// Config controls the tutor's LLM requests.
type Config struct {
	// Validators run on every LLM-written question narrative. The first
	// failure sends the question back to the template narrative.
	Validators []Validator

	ChatMaxTokens        int
	QuestionMaxTokens    int
	ExplanationMaxTokens int
	EvaluationMaxTokens  int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// HistoryLimit is the longest chat history sent as-is. Longer
	// histories are summarised down to HistoryKeep recent turns.
	HistoryLimit int
	HistoryKeep  int
}

// DefaultConfig returns the recommended tutor settings.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&NarrativeValidator{},
			&AnswerLeakValidator{},
		},
		ChatMaxTokens:        600,
		QuestionMaxTokens:    256,
		ExplanationMaxTokens: 512,
		EvaluationMaxTokens:  300,
		Temperature:          0.7,
		HistoryLimit:         12,
		HistoryKeep:          4,
	}
}
