// Package home is the main menu.
package home

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/arbor/internal/config"
	"github.com/abhisek/arbor/internal/diagnosis"
	gamesvc "github.com/abhisek/arbor/internal/game"
	"github.com/abhisek/arbor/internal/lessons"
	"github.com/abhisek/arbor/internal/router"
	"github.com/abhisek/arbor/internal/screen"
	"github.com/abhisek/arbor/internal/screens/chat"
	gamescreen "github.com/abhisek/arbor/internal/screens/game"
	"github.com/abhisek/arbor/internal/screens/history"
	lessonscreen "github.com/abhisek/arbor/internal/screens/lessons"
	"github.com/abhisek/arbor/internal/screens/placeholder"
	sessionscreen "github.com/abhisek/arbor/internal/screens/session"
	"github.com/abhisek/arbor/internal/screens/visualizer"
	"github.com/abhisek/arbor/internal/session"
	"github.com/abhisek/arbor/internal/store"
	"github.com/abhisek/arbor/internal/tutor"
	"github.com/abhisek/arbor/internal/ui/components"
)

// thirstyAfter is how long without practice before the mascot droops.
const thirstyAfter = 72 * time.Hour

// Deps are the services the screens behind the menu need. Nil repos
// disable the features that persist.
type Deps struct {
	Tutor      *tutor.Tutor
	Events     store.EventRepo
	Snapshots  store.SnapshotRepo
	Progress   store.ProgressRepo
	Diagnosis  *diagnosis.Service
	Lessons    *lessons.Service
	Compressor *lessons.Compressor
	Config     config.Config
	Logger     *slog.Logger
}

type stats struct {
	sessions     int
	bestGame     int
	lastPractice time.Time
	now          time.Time
}

type statsLoadedMsg struct {
	stats stats
}

func (s stats) lastPracticeText(compact bool) string {
	if s.lastPractice.IsZero() {
		if compact {
			return "⏱-"
		}
		return "⏱ NOT YET"
	}
	days := int(s.now.Sub(s.lastPractice) / (24 * time.Hour))
	text := "TODAY"
	switch {
	case days == 1:
		text = "YESTERDAY"
	case days > 1:
		text = fmt.Sprintf("%d DAYS AGO", days)
	}
	if compact {
		return fmt.Sprintf("⏱%dd", days)
	}
	return "⏱ " + text
}

func (s stats) mascot() MascotVariant {
	switch {
	case s.lastPractice.IsZero():
		return MascotIdle
	case s.now.Sub(s.lastPractice) < 24*time.Hour:
		return MascotCelebrating
	case s.now.Sub(s.lastPractice) > thirstyAfter:
		return MascotThirsty
	}
	return MascotIdle
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps     Deps
	menu     components.Menu
	labels   []string
	disabled map[int]bool
	stats    stats
	now      func() time.Time
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Tutor == nil {
		deps.Tutor = tutor.New(nil)
	}
	h := &HomeScreen{deps: deps, now: time.Now, disabled: make(map[int]bool)}

	items := []components.MenuItem{
		{Label: "VISUALIZER", Hint: "Change a row and watch the trees move", Action: h.openVisualizer},
		{Label: "PRACTICE", Hint: "A batch of tree-planting questions", Action: h.openPractice},
		{Label: "PLANTING GAME", Hint: "Find even layouts against the clock", Action: h.openGame},
		{Label: "ASK THE TUTOR", Hint: "Talk a problem through", Action: h.openChat},
		{Label: "LESSONS", Hint: "The four planting rules", Action: h.openLessons},
		{Label: "HISTORY", Hint: "Past sessions and accuracy", Action: h.openHistory, Disabled: deps.Events == nil},
		{Label: "EXIT", Hint: "See you soon", Action: func() tea.Cmd { return tea.Quit }},
	}
	for i, item := range items {
		h.labels = append(h.labels, item.Label)
		h.disabled[i] = item.Disabled
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) openVisualizer() tea.Cmd {
	return router.Push(visualizer.New(h.deps.Tutor, tutor.DefaultState()))
}

func (h *HomeScreen) openPractice() tea.Cmd {
	d := h.deps
	return router.Push(sessionscreen.New(sessionscreen.Config{
		Tutor:   d.Tutor,
		Planner: session.NewPlanner(d.Events),
		Recorder: &session.Recorder{
			Events:    d.Events,
			Snapshots: d.Snapshots,
			Progress:  d.Progress,
		},
		Diagnosis:  d.Diagnosis,
		Lessons:    d.Lessons,
		Compressor: d.Compressor,
		Events:     d.Events,
		Logger:     d.Logger,
		BatchSize:  d.Config.Practice.BatchSize,
		Seed:       d.Config.Practice.Seed,
	}))
}

func (h *HomeScreen) openGame() tea.Cmd {
	round := gamesvc.NewRound(h.deps.Config.Game)
	return router.Push(gamescreen.New(round, gamesvc.NewService(h.deps.Events, h.deps.Progress), nil))
}

func (h *HomeScreen) openChat() tea.Cmd {
	if !h.deps.Tutor.Available() {
		return router.Push(placeholder.New("Ask the Tutor", placeholder.NoLLMMessage))
	}
	return router.Push(chat.New(h.deps.Tutor, chat.Learning, tutor.DefaultState()))
}

func (h *HomeScreen) openLessons() tea.Cmd {
	return router.Push(lessonscreen.New(h.deps.Lessons, h.deps.Events))
}

func (h *HomeScreen) openHistory() tea.Cmd {
	return router.Push(history.New(h.deps.Events, h.deps.Progress))
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume refreshes the stats after a practice or game.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	progress, now := h.deps.Progress, h.now()
	if progress == nil {
		return nil
	}
	return func() tea.Msg {
		values, err := progress.All(context.Background())
		st := stats{now: now}
		if err != nil {
			return statsLoadedMsg{stats: st}
		}
		st.sessions, _ = strconv.Atoi(values[store.KeySessionsCompleted])
		st.bestGame, _ = strconv.Atoi(values[store.KeyBestGameScore])
		if v, ok := values[store.KeyLastPracticeAt]; ok {
			st.lastPractice, _ = time.Parse(time.RFC3339, v)
		}
		return statsLoadedMsg{stats: st}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(statsLoadedMsg); ok {
		h.stats = m.stats
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer and frame gaps.
	termHeight := height + 8
	compact := termHeight < 34 || width < 100

	cw := contentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, renderMascotBox(h.stats.mascot(), cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if !h.deps.Tutor.Available() {
		sections = append(sections, renderLLMBanner(cw))
	}
	if compact {
		sections = append(sections, renderMenuCompact(h.labels, h.menu.Selected, cw, h.disabled))
	} else {
		sections = append(sections, renderMenu(h.labels, h.menu.Selected, cw, h.disabled))
	}
	sections = append(sections, renderHint(h.menu.Items[h.menu.Selected].Hint, cw))

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
