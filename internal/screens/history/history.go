// Package history lists past practice sessions with per-rule accuracy.
package history

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/arbor/internal/router"
	"github.com/abhisek/arbor/internal/screen"
	"github.com/abhisek/arbor/internal/store"
	"github.com/abhisek/arbor/internal/ui/components"
	"github.com/abhisek/arbor/internal/ui/layout"
	"github.com/abhisek/arbor/internal/ui/theme"
)

// answersLoaded bounds how many recent answers are grouped under sessions.
const answersLoaded = 500

type historyLoadedMsg struct {
	Sessions  []store.SessionSummaryRecord
	Answers   map[string][]store.AnswerEventRecord // sessionID → answers
	Accuracy  []store.ModeAccuracy
	BestGame  int
	Completed int
	Err       error
}

// HistoryScreen displays past sessions and how each planting rule is going.
type HistoryScreen struct {
	eventRepo store.EventRepo
	progress  store.ProgressRepo

	sessions  []store.SessionSummaryRecord
	answers   map[string][]store.AnswerEventRecord
	accuracy  []store.ModeAccuracy
	bestGame  int
	completed int

	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. progress may be nil.
func New(eventRepo store.EventRepo, progress store.ProgressRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		progress:  progress,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events, progress := s.eventRepo, s.progress
	return func() tea.Msg {
		ctx := context.Background()

		sessions, err := events.QuerySessionSummaries(ctx, store.QueryOpts{Limit: 50})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		accuracy, err := events.AccuracyByMode(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		msg := historyLoadedMsg{
			Sessions: sessions,
			Accuracy: accuracy,
			Answers:  make(map[string][]store.AnswerEventRecord),
		}

		// The rest is decoration; a failure leaves it empty.
		if answers, err := events.QueryAnswerEvents(ctx, store.QueryOpts{Limit: answersLoaded}); err == nil {
			for _, a := range answers {
				if a.Source == store.SourcePractice {
					msg.Answers[a.SessionID] = append(msg.Answers[a.SessionID], a)
				}
			}
		}
		msg.BestGame, _ = events.BestGameScore(ctx)
		if progress != nil {
			if v, ok, err := progress.Get(ctx, store.KeySessionsCompleted); err == nil && ok {
				msg.Completed, _ = strconv.Atoi(v)
			}
		}
		return msg
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.answers = msg.Answers
			s.accuracy = msg.Accuracy
			s.bestGame = msg.BestGame
			s.completed = msg.Completed
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}

	var b strings.Builder
	b.WriteString("\n")

	totals := fmt.Sprintf("Sessions completed: %d        Best game score: %d", s.completed, s.bestGame)
	b.WriteString(center.Foreground(theme.Text).Render(totals))
	b.WriteString("\n\n")

	if len(s.accuracy) > 0 {
		for _, m := range s.accuracy {
			bar := components.NewAccuracyBar(m.Mode, m.Correct, m.Attempts, 6, 24)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(s.sessions) == 0 {
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).
			Render("No sessions yet. Start practicing!"))
		return b.String()
	}

	for i, sess := range s.sessions {
		var accuracy float64
		if sess.QuestionsServed > 0 {
			accuracy = float64(sess.CorrectAnswers) / float64(sess.QuestionsServed) * 100
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %s  %d questions  %.0f%% accuracy",
			prefix,
			sess.Timestamp.Format("Jan 02, 2006"),
			formatDuration(sess.DurationSecs),
			sess.QuestionsServed,
			accuracy)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderAnswers(width, sess.SessionID))
		}
	}

	return b.String()
}

// renderAnswers lists a session's answers oldest first.
func (s *HistoryScreen) renderAnswers(width int, sessionID string) string {
	answers := s.answers[sessionID]
	if len(answers) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("    No answers recorded")) + "\n"
	}

	var b strings.Builder
	for i := len(answers) - 1; i >= 0; i-- {
		a := answers[i]
		mark, color := "✗", theme.Error
		if a.Correct {
			mark, color = "✓", theme.Success
		}
		line := fmt.Sprintf("    %s %s %s %g/%g: answered %d (answer %d)",
			mark, a.Shape, a.Mode, a.Length, a.Interval, a.LearnerAnswer, a.CorrectAnswer)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(color).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func formatDuration(secs int) string {
	d := time.Duration(secs) * time.Second
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), secs%60)
}
