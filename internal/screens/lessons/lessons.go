// Package lessons shows the concept cards and micro-lessons with a short
// practice question.
package lessons

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	lessonsvc "github.com/abhisek/arbor/internal/lessons"
	"github.com/abhisek/arbor/internal/planting"
	"github.com/abhisek/arbor/internal/router"
	"github.com/abhisek/arbor/internal/screen"
	"github.com/abhisek/arbor/internal/store"
	"github.com/abhisek/arbor/internal/ui/components"
	"github.com/abhisek/arbor/internal/ui/layout"
	"github.com/abhisek/arbor/internal/ui/theme"
)

type lessonReadyMsg struct {
	lesson *lessonsvc.Lesson
	err    error
}

// LessonsScreen is either a picker over the concept cards or one open
// lesson.
type LessonsScreen struct {
	service   *lessonsvc.Service
	events    store.EventRepo
	sessionID string

	menu components.Menu

	// standalone lessons pop when done instead of returning to the picker.
	standalone bool

	lesson  *lessonsvc.Lesson
	loading bool
	errMsg  string

	input    components.TextInput
	answered bool
	correct  bool
}

var _ screen.Screen = (*LessonsScreen)(nil)
var _ screen.KeyHintProvider = (*LessonsScreen)(nil)

// New opens the concept picker. service may have a nil provider, in
// which case the builtin lessons are shown.
func New(service *lessonsvc.Service, events store.EventRepo) *LessonsScreen {
	s := &LessonsScreen{service: service, events: events}
	var items []components.MenuItem
	for _, c := range planting.Concepts() {
		mode := c.Mode
		items = append(items, components.MenuItem{
			Label:  c.Title,
			Hint:   c.Formula,
			Action: func() tea.Cmd { return s.load(mode) },
		})
	}
	s.menu = components.NewMenu(items)
	return s
}

// NewWithLesson opens lesson directly, as offered during practice.
func NewWithLesson(lesson *lessonsvc.Lesson, events store.EventRepo, sessionID string) *LessonsScreen {
	s := &LessonsScreen{events: events, sessionID: sessionID, standalone: true}
	s.open(lesson)
	return s
}

func (s *LessonsScreen) Init() tea.Cmd {
	if s.lesson != nil {
		return s.input.Init()
	}
	return nil
}

func (s *LessonsScreen) Title() string {
	if s.lesson != nil {
		return "Lesson"
	}
	return "Lessons"
}

func (s *LessonsScreen) KeyHints() []layout.KeyHint {
	if s.lesson == nil {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Open"},
			{Key: "Esc", Description: "Back"},
		}
	}
	if s.answered {
		return []layout.KeyHint{{Key: "Enter", Description: "Done"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Check"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LessonsScreen) load(mode planting.BoundaryMode) tea.Cmd {
	s.loading = true
	s.errMsg = ""
	svc := s.service
	return func() tea.Msg {
		shape := planting.Segment
		if mode == planting.Loop {
			shape = planting.Circle
		}
		input := lessonsvc.LessonInput{Mode: mode, Shape: shape}
		if svc == nil {
			l, err := lessonsvc.Builtin(mode)
			return lessonReadyMsg{lesson: l, err: err}
		}
		l, err := svc.Generate(context.Background(), input)
		return lessonReadyMsg{lesson: l, err: err}
	}
}

func (s *LessonsScreen) open(l *lessonsvc.Lesson) {
	s.lesson = l
	s.answered = false
	s.input = components.NewTextInput("How many trees?", true, 7)
}

func (s *LessonsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lessonReadyMsg:
		s.loading = false
		if msg.lesson == nil {
			s.errMsg = fmt.Sprintf("could not load lesson: %v", msg.err)
			return s, nil
		}
		s.open(msg.lesson)
		return s, s.input.Init()

	case tea.KeyMsg:
		if s.lesson == nil {
			var cmd tea.Cmd
			s.menu, cmd = s.menu.Update(msg)
			return s, cmd
		}
		if msg.String() == "enter" {
			return s, s.submit()
		}
	}

	if s.lesson != nil && !s.answered {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// submit checks the practice answer, or closes the lesson once answered.
func (s *LessonsScreen) submit() tea.Cmd {
	if s.answered {
		if s.standalone {
			return router.Pop
		}
		s.lesson = nil
		return nil
	}
	n, err := s.input.NumericValue()
	if err != nil {
		return nil
	}
	s.answered = true
	s.correct = n == s.lesson.Practice.Answer
	s.input.Submit(s.correct)

	if s.events == nil {
		return nil
	}
	data := store.LessonEventData{
		SessionID:         s.sessionID,
		Mode:              s.lesson.Mode.String(),
		LessonTitle:       s.lesson.Title,
		PracticeAttempted: true,
		PracticeCorrect:   s.correct,
	}
	events := s.events
	return func() tea.Msg {
		_ = events.AppendLessonEvent(context.Background(), data)
		return nil
	}
}

func (s *LessonsScreen) View(width, height int) string {
	textWidth := max(min(width-8, 80), 20)
	block := func(style lipgloss.Style, text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Width(textWidth).Render(text))
	}

	var b strings.Builder
	b.WriteString("\n")

	switch {
	case s.loading:
		b.WriteString(block(theme.Hint, "Preparing your lesson..."))
		return b.String()
	case s.lesson == nil:
		b.WriteString(block(theme.Title, "Tree-planting lessons"))
		b.WriteString("\n\n")
		var syllabus []string
		for i, line := range planting.Syllabus() {
			syllabus = append(syllabus, fmt.Sprintf("%d. %s", i+1, line))
		}
		b.WriteString(block(theme.Subtitle.Align(lipgloss.Left), strings.Join(syllabus, "\n")))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))
		if s.errMsg != "" {
			b.WriteString("\n" + block(theme.Incorrect, s.errMsg))
		}
		return b.String()
	}

	l := s.lesson
	b.WriteString(block(theme.Title, l.Title))
	b.WriteString("\n\n")
	b.WriteString(block(theme.Body, l.Explanation))
	b.WriteString("\n\n")
	b.WriteString(block(lipgloss.NewStyle().Foreground(theme.TextDim), l.WorkedExample))
	b.WriteString("\n\n")
	b.WriteString(block(theme.Formula.Align(lipgloss.Left), "Try it"))
	b.WriteString("\n")
	b.WriteString(block(theme.Body, l.Practice.Text))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "Answer: "+s.input.View()))

	if s.answered {
		b.WriteString("\n\n")
		if s.correct {
			b.WriteString(block(theme.Correct, "Correct!"))
		} else {
			b.WriteString(block(theme.Incorrect, fmt.Sprintf("Not quite. The answer is %d.", l.Practice.Answer)))
		}
		b.WriteString("\n")
		b.WriteString(block(theme.Hint, l.Practice.Explanation))
	}
	return b.String()
}
