// Package game is the timed spacing minigame screen.
package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	gamesvc "github.com/abhisek/arbor/internal/game"
	"github.com/abhisek/arbor/internal/router"
	"github.com/abhisek/arbor/internal/screen"
	"github.com/abhisek/arbor/internal/ui/canvas"
	"github.com/abhisek/arbor/internal/ui/components"
	"github.com/abhisek/arbor/internal/ui/layout"
	"github.com/abhisek/arbor/internal/ui/theme"
)

// canvasHeight is the number of rows the layout preview takes.
const canvasHeight = 9

type tickMsg struct {
	gen int
}

type bestLoadedMsg struct {
	best int
}

type finishedMsg struct {
	best   int
	record bool
	err    error
}

// GameScreen runs rounds of the minigame.
type GameScreen struct {
	round   *gamesvc.Round
	service *gamesvc.Service
	now     func() time.Time

	last    *gamesvc.Result
	best    int
	record  bool
	saveErr error
	over    bool
	buttons components.ButtonRow
	tickGen int
}

var _ screen.Screen = (*GameScreen)(nil)
var _ screen.KeyHintProvider = (*GameScreen)(nil)

// New creates an idle game. now may be nil to use the wall clock.
func New(round *gamesvc.Round, service *gamesvc.Service, now func() time.Time) *GameScreen {
	if now == nil {
		now = time.Now
	}
	g := &GameScreen{round: round, service: service, now: now}
	g.buttons = components.NewButtonRow(
		components.Button{Label: "Play again", OnPress: g.start},
		components.Button{Label: "Home", OnPress: func() tea.Cmd { return router.Pop }},
	)
	return g
}

func (g *GameScreen) Init() tea.Cmd {
	if g.service == nil {
		return nil
	}
	svc := g.service
	return func() tea.Msg {
		best, _ := svc.Best(context.Background())
		return bestLoadedMsg{best: best}
	}
}

func (g *GameScreen) Title() string {
	return "Planting Game"
}

func (g *GameScreen) KeyHints() []layout.KeyHint {
	switch {
	case g.over:
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Select"},
		}
	case g.round.Status == gamesvc.StatusIdle:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Length"},
		{Key: "←→", Description: "Interval"},
		{Key: "M", Description: "Mode"},
		{Key: "Enter", Description: "Plant"},
	}
}

// start begins a new round and its clock.
func (g *GameScreen) start() tea.Cmd {
	g.round.Start(g.now())
	g.last = nil
	g.over = false
	g.record = false
	g.saveErr = nil
	g.buttons.Active = 0
	g.tickGen++
	return g.tick()
}

func (g *GameScreen) tick() tea.Cmd {
	gen := g.tickGen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (g *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bestLoadedMsg:
		g.best = max(g.best, msg.best)
		return g, nil

	case finishedMsg:
		g.saveErr = msg.err
		if msg.err == nil {
			g.best, g.record = msg.best, msg.record
		}
		return g, nil

	case tickMsg:
		if msg.gen != g.tickGen || g.over {
			return g, nil
		}
		if !g.round.Running(g.now()) {
			return g, g.finish()
		}
		return g, g.tick()

	case tea.KeyMsg:
		return g.handleKey(msg)
	}
	return g, nil
}

func (g *GameScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if g.over {
		var cmd tea.Cmd
		g.buttons, cmd = g.buttons.Update(msg)
		return g, cmd
	}

	key := msg.String()
	if g.round.Status == gamesvc.StatusIdle {
		if key == "enter" || key == "space" {
			return g, g.start()
		}
		return g, nil
	}

	if !g.round.Running(g.now()) {
		return g, g.finish()
	}

	switch key {
	case "up", "k":
		g.round.SetLength(g.round.Length + 1)
	case "down", "j":
		g.round.SetLength(g.round.Length - 1)
	case "shift+up", "pgup":
		g.round.SetLength(g.round.Length + 10)
	case "shift+down", "pgdown":
		g.round.SetLength(g.round.Length - 10)
	case "right", "l":
		g.round.SetInterval(g.round.Interval + 1)
	case "left", "h":
		g.round.SetInterval(g.round.Interval - 1)
	case "m":
		g.round.CycleMode(1)
	case "M":
		g.round.CycleMode(-1)
	case "enter", "space":
		res, err := g.round.Submit(g.now())
		if err != nil {
			return g, g.finish()
		}
		g.last = &res
	}
	return g, nil
}

// finish ends the round and records it.
func (g *GameScreen) finish() tea.Cmd {
	if g.over {
		return nil
	}
	g.over = true
	g.tickGen++
	if g.service == nil {
		g.record = g.round.Score > g.best
		g.best = max(g.best, g.round.Score)
		return nil
	}
	svc, round := g.service, g.round
	return func() tea.Msg {
		best, record, err := svc.Finish(context.Background(), round)
		return finishedMsg{best: best, record: record, err: err}
	}
}

func (g *GameScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	r := g.round

	var b strings.Builder
	b.WriteString("\n")

	if r.Status == gamesvc.StatusIdle {
		b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Plant as many even rows as you can"))
		b.WriteString("\n\n")
		rules := fmt.Sprintf("Tune the length, the gap and the planting rule until the trees fit exactly.\n"+
			"Each new even layout scores a point. You have %s.", r.Duration())
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).Render(rules)))
		b.WriteString("\n\n")
		b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("Best score: %d", g.best)))
		b.WriteString("\n\n")
		b.WriteString(center.Foreground(theme.Accent).Render("Press Enter to start"))
		return b.String()
	}

	status := fmt.Sprintf("Score %d   Streak %d   ⏱ %ds   Best %d",
		r.Score, r.Streak, int(r.Remaining(g.now()).Seconds()), g.best)
	b.WriteString(center.Foreground(theme.Secondary).Bold(true).Render(status))
	b.WriteString("\n\n")

	spec := r.Spec()
	drawing, _ := canvas.Draw(spec, min(width-8, 72), canvasHeight, canvas.DefaultOptions())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Tree.Render(drawing)))
	b.WriteString("\n\n")

	settings := fmt.Sprintf("%gm %s, a tree every %gm, %s", spec.Length, spec.Shape, spec.Interval, spec.Mode)
	b.WriteString(center.Foreground(theme.Text).Render(settings))
	b.WriteString("\n\n")

	if g.over {
		b.WriteString(g.renderOver(width))
		return b.String()
	}
	b.WriteString(g.renderResult(width))
	return b.String()
}

func (g *GameScreen) renderResult(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	res := g.last
	if res == nil {
		return center.Foreground(theme.TextDim).Render("Press Enter to plant this layout.")
	}
	switch res.Status {
	case gamesvc.StatusScored:
		line := fmt.Sprintf("+1! %d trees fit evenly.", res.Count)
		if res.Milestone > 0 {
			line += fmt.Sprintf(" Streak of %d!", res.Milestone)
		}
		return center.Foreground(theme.Success).Bold(true).Render(line)
	case gamesvc.StatusRepeat:
		return center.Foreground(theme.Accent).Render("You just planted that one. Change something first.")
	default:
		return center.Foreground(theme.Error).Render("Uneven: " + res.Reason)
	}
}

func (g *GameScreen) renderOver(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	var b strings.Builder
	b.WriteString(center.Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("Time's up! You scored %d.", g.round.Score)))
	b.WriteString("\n")
	switch {
	case g.saveErr != nil:
		b.WriteString(center.Foreground(theme.Error).Render("Could not save this round: " + g.saveErr.Error()))
	case g.record:
		b.WriteString(center.Foreground(theme.Accent).Render("New best score!"))
	default:
		b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("Best score: %d", g.best)))
	}
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, g.buttons.View()))
	return b.String()
}
