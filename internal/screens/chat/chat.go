// Package chat is the conversation screen for both tutor assistants.
package chat

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/arbor/internal/llm"
	"github.com/abhisek/arbor/internal/planting"
	"github.com/abhisek/arbor/internal/screen"
	"github.com/abhisek/arbor/internal/tutor"
	"github.com/abhisek/arbor/internal/ui/components"
	"github.com/abhisek/arbor/internal/ui/layout"
	"github.com/abhisek/arbor/internal/ui/theme"
)

// Kind selects which assistant answers.
type Kind int

const (
	// Learning works problems through with the learner.
	Learning Kind = iota
	// Practice gives hints without revealing answers.
	Practice
)

type replyMsg struct {
	resp *tutor.ChatResponse
	err  error
}

type turn struct {
	role llm.Role
	text string
}

// ChatScreen holds one conversation with the tutor.
type ChatScreen struct {
	tutor   *tutor.Tutor
	kind    Kind
	state   tutor.State
	history []llm.Message
	turns   []turn
	input   components.TextInput
	waiting bool
	fresh   bool
	errMsg  string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New opens a conversation about state.
func New(t *tutor.Tutor, kind Kind, state tutor.State) *ChatScreen {
	return &ChatScreen{
		tutor: t,
		kind:  kind,
		state: state,
		input: components.NewTextInput("Ask about the trees...", false, 500),
		fresh: true,
	}
}

func (c *ChatScreen) Init() tea.Cmd {
	return c.input.Init()
}

func (c *ChatScreen) Title() string {
	if c.kind == Practice {
		return "Hint"
	}
	return "Ask the Tutor"
}

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Ctrl+N", Description: "New chat"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		c.waiting = false
		if msg.err != nil {
			c.errMsg = msg.err.Error()
			return c, nil
		}
		c.errMsg = ""
		c.history = msg.resp.UpdatedHistory
		c.turns = append(c.turns, turn{role: llm.RoleAssistant, text: msg.resp.Reply})
		return c, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return c, c.send()
		case "ctrl+n":
			c.history, c.turns, c.errMsg = nil, nil, ""
			c.fresh = true
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *ChatScreen) send() tea.Cmd {
	text := c.input.Value()
	if text == "" || c.waiting {
		return nil
	}
	c.input.Reset()
	c.turns = append(c.turns, turn{role: llm.RoleUser, text: text})
	c.waiting = true

	req := tutor.ChatRequest{
		Message:         text,
		State:           c.state,
		History:         c.history,
		NewConversation: c.fresh,
	}
	c.fresh = false

	t, kind := c.tutor, c.kind
	return func() tea.Msg {
		ask := t.Chat
		if kind == Practice {
			ask = t.PracticeChat
		}
		resp, err := ask(context.Background(), req)
		return replyMsg{resp: resp, err: err}
	}
}

func (c *ChatScreen) View(width, height int) string {
	textWidth := max(min(width-8, 90), 20)

	spec := c.state.Spec()
	header := theme.Hint.Render(fmt.Sprintf("Talking about: %s, %g m every %g m, %s",
		planting.DescribeShape(spec.Shape), spec.Length, spec.Interval, planting.DescribeMode(spec.Mode)))

	var lines []string
	for _, t := range c.turns {
		lines = append(lines, strings.Split(renderTurn(t, textWidth), "\n")...)
		lines = append(lines, "")
	}
	if c.waiting {
		lines = append(lines, theme.Hint.Render("Tutor is thinking..."))
	}
	if c.errMsg != "" {
		lines = append(lines, theme.Incorrect.Render("Error: "+c.errMsg))
	}

	room := max(height-6, 1)
	if len(lines) > room {
		lines = lines[len(lines)-room:]
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, header))
	b.WriteString("\n\n")
	body := lipgloss.NewStyle().Width(textWidth).Height(room).Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, body))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "> "+c.input.View()))
	return b.String()
}

func renderTurn(t turn, width int) string {
	if t.role == llm.RoleUser {
		return lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Width(width).Render("You: " + t.text)
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Width(width).Render("Tutor: " + t.text)
}
