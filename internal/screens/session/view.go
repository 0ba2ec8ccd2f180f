package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/arbor/internal/diagnosis"
	"github.com/abhisek/arbor/internal/planting"
	sess "github.com/abhisek/arbor/internal/session"
	"github.com/abhisek/arbor/internal/tutor"
	"github.com/abhisek/arbor/internal/ui/canvas"
	"github.com/abhisek/arbor/internal/ui/theme"
)

// feedbackCanvasHeight is the number of rows the answer drawing takes.
const feedbackCanvasHeight = 9

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

// renderQuestionView renders the active question display.
func (s *SessionScreen) renderQuestionView(width, height int) string {
	state := s.state
	if state.CurrentQuestion == nil {
		return centered(width).
			Foreground(theme.TextDim).
			Render("\n\n  Writing the next question...")
	}

	var b strings.Builder

	q := state.CurrentQuestion
	label := "Practice"
	if q.Category == sess.CategoryBooster {
		label = "Booster: " + q.Spec.Mode.String()
	}
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + label)

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d  %s %s",
			state.Index+1,
			len(state.Plan.Slots),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			state.TotalCorrect,
			lipgloss.NewStyle().Foreground(theme.Accent).Render("⏱"),
			tutor.FormatDuration(state.Elapsed),
		))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	text := lipgloss.NewStyle().
		Width(min(width-8, 70)).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, text))
	b.WriteString("\n\n")

	b.WriteString(centered(width).Render("Answer: " + s.input.View()))
	b.WriteString("\n\n")
	b.WriteString(centered(width).
		Foreground(theme.TextDim).
		Render("Stuck? Press ? to ask for a hint."))

	return b.String()
}

// renderFeedback renders the verdict, a drawing of the answer and the
// tutor's explanation.
func (s *SessionScreen) renderFeedback(width, height int) string {
	res := s.last
	if res == nil {
		return ""
	}
	q := res.Question

	var b strings.Builder
	b.WriteString("\n")

	if res.Correct {
		b.WriteString(centered(width).Foreground(theme.Success).Bold(true).Render("Correct!"))
	} else {
		b.WriteString(centered(width).Foreground(theme.Error).Bold(true).Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(centered(width).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("You said %d. Correct answer: %d", res.LearnerAnswer, q.Answer)))
	}
	b.WriteString("\n\n")

	drawing, _ := canvas.Draw(q.Spec, min(width-8, 72), feedbackCanvasHeight, canvas.DefaultOptions())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Tree.Render(drawing)))
	b.WriteString("\n\n")

	textWidth := min(width-8, 70)
	switch {
	case s.explanation != nil:
		exp := lipgloss.NewStyle().Width(textWidth).Foreground(theme.Text).Render(s.explanation.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
	case s.explaining:
		b.WriteString(centered(width).Foreground(theme.TextDim).Render("Thinking about your answer..."))
	default:
		steps := lipgloss.NewStyle().Width(textWidth).Foreground(theme.Text).
			Render(strings.Join(planting.SolvingSteps(q.Spec), "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, steps))
	}
	b.WriteString("\n\n")

	if d := sess.Diagnosis(s.state, res); d != nil && d.Category != diagnosis.CategoryUnclassified {
		b.WriteString(centered(width).
			Foreground(theme.Accent).
			Render("Likely mistake: " + d.Label()))
		b.WriteString("\n\n")
	}

	if s.state.PendingLesson {
		b.WriteString(centered(width).
			Foreground(theme.Secondary).
			Render("A short lesson on this is on its way."))
		b.WriteString("\n\n")
	}

	b.WriteString(centered(width).
		Foreground(theme.TextDim).
		Render("Press any key to continue..."))

	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(centered(width).Foreground(theme.Text).Bold(true).Render("End practice early?"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).Render("Your answers so far will be saved."))
	b.WriteString("\n\n")
	b.WriteString(centered(width).Foreground(theme.Success).Render("[Y] Yes, end practice"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.Primary).Render("[N] No, keep going"))

	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width, height int) string {
	return centered(width).
		Foreground(theme.TextDim).
		Render("\n\n\n  Planning your practice...")
}

// renderError renders an error message.
func renderError(width, height int, errMsg string) string {
	return centered(width).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
