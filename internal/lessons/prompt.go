package lessons

import (
	"fmt"
	"strings"

	"github.com/abhisek/arbor/internal/llm"
	"github.com/abhisek/arbor/internal/planting"
)

const lessonSystemPrompt = `You are a patient, encouraging maths tutor for primary-school children. A student keeps getting tree-planting problems wrong (how many evenly spaced trees fit along a road or around a closed shape) and needs a short, clear lesson.`

func buildLessonUserMessage(input LessonInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Rule: %s\n", planting.DescribeMode(input.Mode))
	fmt.Fprintf(&b, "Path: %s\n", planting.DescribeShape(input.Shape))
	if c, ok := planting.ConceptFor(input.Mode); ok {
		fmt.Fprintf(&b, "Key idea: %s\nFormula: %s\n", c.Idea, c.Formula)
	}
	fmt.Fprintf(&b, "Student accuracy with this rule: %.0f%%\n", input.Accuracy*100)

	b.WriteString("\nRecent Errors:\n")
	if len(input.RecentErrors) == 0 {
		b.WriteString("None\n")
	} else {
		for _, e := range input.RecentErrors {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}

	if d := input.LastDiagnosis; d != nil {
		fmt.Fprintf(&b, "\nDiagnosed Issue:\nCategory: %s\n", d.Category)
		if d.MisconceptionID != "" {
			fmt.Fprintf(&b, "Misconception: %s\n", d.Label())
		}
	}

	b.WriteString(`
Instructions:
Create a micro-lesson that:
1. Explains the rule clearly in 3-5 sentences. Use simple language a child would understand. Address the specific errors shown above.
2. Shows a complete worked example with numbered steps: find the number of gaps, then apply the rule for the ends.
3. Creates one practice question using the SAME rule and path, with smaller numbers than the ones the student got wrong. Give its length and interval in metres; the length must be a whole multiple of the interval.
4. Do not state the practice answer in the question text.
5. Use plain ASCII text for all maths. No LaTeX.`)

	return b.String()
}

const compressionSystemPrompt = `You are summarizing a maths student's error patterns on tree-planting problems with one boundary rule. Create a concise summary that captures the key patterns without losing important details.`

func buildCompressionUserMessage(errors []string) string {
	var b strings.Builder

	b.WriteString("Errors:\n")
	for _, e := range errors {
		fmt.Fprintf(&b, "- %s\n", e)
	}

	b.WriteString(`
Instructions:
Summarize these errors in 2-3 sentences. Focus on:
- Whether the student miscounts the end trees, the gaps, or the perimeter
- Any patterns you see across multiple errors
- What the student seems to understand vs. what they're struggling with

Keep the summary concise and factual. Do not include encouragement or advice.`)

	return b.String()
}

const historySystemPrompt = `You are condensing the earlier part of a conversation between a child and a maths tutor about tree-planting problems, so the tutor can continue it without the full transcript.`

func buildHistoryUserMessage(history []llm.Message) string {
	var b strings.Builder

	b.WriteString("Conversation:\n")
	for _, m := range history {
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
	}

	b.WriteString(`
Instructions:
Summarize the conversation in at most 4 sentences. Keep every number, problem setup and answer the student gave, and what the tutor already explained. Write in the third person.`)

	return b.String()
}

const profileSystemPrompt = `You are creating a learner profile for a maths tutoring system about tree-planting problems. This profile helps personalize future practice sessions for a primary-school student.`

func buildProfileUserMessage(input ProfileInput) string {
	var b strings.Builder

	b.WriteString("Results by rule:\n")
	for _, mode := range planting.AllModes {
		result, ok := input.ModeResults[mode.String()]
		if !ok {
			continue
		}
		var pct float64
		if result.Attempted > 0 {
			pct = float64(result.Correct) / float64(result.Attempted) * 100
		}
		fmt.Fprintf(&b, "- %s: %d attempted, %d correct (%.0f%%)\n", planting.DescribeMode(mode), result.Attempted, result.Correct, pct)
	}
	fmt.Fprintf(&b, "\nSessions completed: %d\n", input.SessionCount)

	if len(input.ErrorHistory) > 0 {
		b.WriteString("\nError History:\n")
		for _, mode := range planting.AllModes {
			errors := input.ErrorHistory[mode.String()]
			if len(errors) == 0 {
				continue
			}
			fmt.Fprintf(&b, "### %s\n", planting.DescribeMode(mode))
			for _, e := range errors {
				fmt.Fprintf(&b, "- %s\n", e)
			}
		}
	}

	if p := input.PreviousProfile; p != nil {
		fmt.Fprintf(&b, "\nPrevious Profile:\n%s\n", p.Summary)
		fmt.Fprintf(&b, "Strengths: %s\n", strings.Join(p.Strengths, ", "))
		fmt.Fprintf(&b, "Weaknesses: %s\n", strings.Join(p.Weaknesses, ", "))
	}

	b.WriteString(`
Instructions:
Create a concise learner profile:
1. Write a 3-5 sentence summary of the student's current abilities, focusing on which boundary rules they handle well and where they need work.
2. List 2-4 specific strengths (e.g., "counts both-end trees correctly").
3. List 2-4 specific weaknesses (e.g., "forgets to subtract one with no end trees").
4. List 1-3 error patterns observed (e.g., "divides one side instead of the perimeter").

If a previous profile exists, update it with new evidence rather than starting fresh. Keep all entries concise (5-10 words each for strengths/weaknesses/patterns).`)

	return b.String()
}
