// Package app is the root Bubble Tea model: header, footer and the screen
// stack.
package app

import (
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/arbor/internal/config"
	"github.com/abhisek/arbor/internal/diagnosis"
	"github.com/abhisek/arbor/internal/lessons"
	"github.com/abhisek/arbor/internal/router"
	"github.com/abhisek/arbor/internal/screen"
	"github.com/abhisek/arbor/internal/screens/home"
	"github.com/abhisek/arbor/internal/screens/welcome"
	"github.com/abhisek/arbor/internal/store"
	"github.com/abhisek/arbor/internal/tutor"
	"github.com/abhisek/arbor/internal/ui/layout"
)

// Options wires the TUI. Any service may be nil.
type Options struct {
	Tutor      *tutor.Tutor
	Events     store.EventRepo
	Snapshots  store.SnapshotRepo
	Progress   store.ProgressRepo
	Diagnosis  *diagnosis.Service
	Lessons    *lessons.Service
	Compressor *lessons.Compressor
	Config     config.Config
	Logger     *slog.Logger

	// SkipWelcome opens the home screen directly.
	SkipWelcome bool
}

func (o Options) homeDeps() home.Deps {
	return home.Deps{
		Tutor:      o.Tutor,
		Events:     o.Events,
		Snapshots:  o.Snapshots,
		Progress:   o.Progress,
		Diagnosis:  o.Diagnosis,
		Lessons:    o.Lessons,
		Compressor: o.Compressor,
		Config:     o.Config,
		Logger:     o.Logger,
	}
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status string
	width  int
	height int
}

// newAppModel creates a new AppModel with the welcome or home screen.
func newAppModel(opts Options) AppModel {
	deps := opts.homeDeps()
	var first screen.Screen
	if opts.SkipWelcome {
		first = home.New(deps)
	} else {
		first = welcome.New(func() screen.Screen { return home.New(deps) })
	}

	status := "offline tutor"
	if opts.Tutor != nil && opts.Tutor.Available() {
		status = "AI tutor"
	}
	return AppModel{
		router: router.New(first),
		status: status,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bi, ok := m.router.Active().(screen.BackInterceptor); ok && bi.InterceptBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)

	var footerHints []layout.KeyHint
	if khp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(khp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
