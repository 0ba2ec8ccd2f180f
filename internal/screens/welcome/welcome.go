// Package welcome is the splash screen: a row of trees is planted one by
// one before the banner appears.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/arbor/internal/router"
	"github.com/abhisek/arbor/internal/screen"
	"github.com/abhisek/arbor/internal/ui/canvas"
	"github.com/abhisek/arbor/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	plantEvery   = 200 * time.Millisecond
	bannerAt     = 2000 * time.Millisecond
	totalDur     = 3000 * time.Millisecond

	rowTrees = 9
	treeGap  = 5
)

// Tagline is shown under the banner.
const Tagline = "Every tree in its place."

type tickMsg time.Time

// WelcomeScreen shows a splash animation before transitioning to the home screen.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.Replace(w.homeFactory())
}

// planted is how many trees of the row are in the ground.
func (w *WelcomeScreen) planted() int {
	return min(int(w.elapsed/plantEvery), rowTrees)
}

// renderRow draws the row with the planted trees on it.
func (w *WelcomeScreen) renderRow() string {
	width := (rowTrees-1)*treeGap + 2
	g := canvas.NewGrid(width, 1)
	for x := 0; x < width; x++ {
		g.Set(x, 0, canvas.PathGlyph)
	}
	for i := 0; i < w.planted(); i++ {
		g.Set(i*treeGap, 0, canvas.TreeGlyph)
	}
	return theme.Tree.Render(g.String())
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{w.renderRow()}

	if w.elapsed >= bannerAt {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(Tagline),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
