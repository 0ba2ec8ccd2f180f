// Package summary shows the result of a practice batch and the tutor's
// evaluation of it.
package summary

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/arbor/internal/router"
	"github.com/abhisek/arbor/internal/screen"
	"github.com/abhisek/arbor/internal/session"
	"github.com/abhisek/arbor/internal/tutor"
	"github.com/abhisek/arbor/internal/ui/components"
	"github.com/abhisek/arbor/internal/ui/layout"
	"github.com/abhisek/arbor/internal/ui/theme"
)

type evaluationMsg struct {
	eval *tutor.Evaluation
	err  error
}

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary *session.SessionSummary
	report  tutor.SessionReport
	tutor   *tutor.Tutor

	eval    *tutor.Evaluation
	evalErr error
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. t may be nil, which skips the
// evaluation.
func New(summary *session.SessionSummary, report tutor.SessionReport, t *tutor.Tutor) *SummaryScreen {
	return &SummaryScreen{summary: summary, report: report, tutor: t}
}

func (s *SummaryScreen) Init() tea.Cmd {
	if s.tutor == nil || len(s.report.Answers) == 0 {
		return nil
	}
	t, report := s.tutor, s.report
	return func() tea.Msg {
		eval, err := t.EvaluateSession(context.Background(), report)
		return evaluationMsg{eval: eval, err: err}
	}
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case evaluationMsg:
		s.eval, s.evalErr = msg.eval, msg.err
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, router.PopToRoot
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Practice complete!"))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.TextDim).
		Render("Duration: " + tutor.FormatDuration(sum.Duration)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
		sum.TotalQuestions, sum.TotalCorrect, sum.Accuracy*100)
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))

	if len(sum.ModeResults) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Planting rules")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for _, mr := range sum.ModeResults {
			bar := components.NewAccuracyBar(mr.Mode.String(), mr.Correct, mr.Attempted, 6, 20)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Tutor's notes")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")
	b.WriteString(s.renderEvaluation(width))

	return b.String()
}

func (s *SummaryScreen) renderEvaluation(width int) string {
	dim := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim)
	switch {
	case s.tutor == nil || len(s.report.Answers) == 0:
		return dim.Render("No answers to review.")
	case s.evalErr != nil:
		return dim.Render("The tutor could not review this session.")
	case s.eval == nil:
		return dim.Render("Reviewing your answers...")
	}

	var b strings.Builder
	perf := lipgloss.NewStyle().Foreground(performanceColor(s.eval.Performance)).Bold(true).
		Render(fmt.Sprintf("%s  (%s correct)", s.eval.Performance, s.eval.CorrectRate))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, perf))
	b.WriteString("\n\n")

	var lines []string
	for _, sug := range s.eval.Suggestions {
		lines = append(lines, "• "+sug)
	}
	text := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, text))
	return b.String()
}

func performanceColor(p tutor.Performance) color.Color {
	switch p {
	case tutor.Excellent:
		return theme.Accent
	case tutor.Good:
		return theme.Success
	default:
		return theme.Error
	}
}
