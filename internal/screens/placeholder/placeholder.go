// Package placeholder shows a notice for features that cannot run with
// the current setup.
package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/arbor/internal/router"
	"github.com/abhisek/arbor/internal/screen"
	"github.com/abhisek/arbor/internal/ui/theme"
)

// NoLLMMessage explains how to enable the tutor features.
const NoLLMMessage = "This needs an AI tutor.\n\n" +
	"Set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY\n" +
	"or OPENROUTER_API_KEY and start arbor again."

// PlaceholderScreen shows a centred message until any key is pressed.
type PlaceholderScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a PlaceholderScreen.
func New(title, message string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, message: message}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return p, router.Pop
	}
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	body := lipgloss.NewStyle().Foreground(theme.Text).Render(p.message) +
		"\n\n" + theme.Hint.Render("Press any key to go back.")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
