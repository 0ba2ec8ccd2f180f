package tutor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/arbor/internal/llm"
)

var defaultSuggestions = []string{
	"Before dividing, draw a short line with a few trees and count the gaps.",
	"Ask yourself whether the ends of the path get a tree.",
	"On a loop the last gap comes back to the first tree, so trees equal gaps.",
	"Check your answer by multiplying the gaps by the interval.",
}

// EvaluateSession grades a practice run and asks the LLM for study
// suggestions. The grade never depends on the LLM.
func (t *Tutor) EvaluateSession(ctx context.Context, report SessionReport) (*Evaluation, error) {
	total := len(report.Answers)
	correct := 0
	for _, a := range report.Answers {
		if a.IsCorrect {
			correct++
		}
	}

	ev := &Evaluation{
		CorrectRate:   fmt.Sprintf("%d/%d", correct, total),
		TotalTimeText: FormatDuration(report.TotalTime),
		Performance:   grade(correct, total),
	}

	text, err := t.text(ctx, llm.PurposeEvaluation, evaluationSystemPrompt,
		userMessage(buildEvaluationUserMessage(correct, total, ev.TotalTimeText, ev.Performance)),
		t.cfg.EvaluationMaxTokens)
	ev.Suggestions = suggestionLines(text)
	if err != nil || len(ev.Suggestions) == 0 {
		if err == nil {
			err = errEmptyReply
		}
		t.degrade(llm.PurposeEvaluation, err)
		ev.Suggestions = append([]string(nil), defaultSuggestions...)
		ev.Degraded = true
	}
	return ev, nil
}

func grade(correct, total int) Performance {
	if total == 0 {
		return NeedsWork
	}
	switch rate := float64(correct) / float64(total); {
	case rate >= 0.8:
		return Excellent
	case rate >= 0.6:
		return Good
	default:
		return NeedsWork
	}
}

// FormatDuration renders whole seconds as "3m20s", or "40s" under a minute.
func FormatDuration(d time.Duration) string {
	secs := max(int(d/time.Second), 0)
	if m := secs / 60; m > 0 {
		return fmt.Sprintf("%dm%ds", m, secs%60)
	}
	return fmt.Sprintf("%ds", secs)
}

// suggestionLines splits an LLM reply into one suggestion per line,
// dropping list markers.
func suggestionLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•")
		line = strings.TrimSpace(trimNumbering(line))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func trimNumbering(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')') {
		return s[i+1:]
	}
	return s
}
