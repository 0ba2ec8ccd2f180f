package chat

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/arbor/internal/llm"
	"github.com/abhisek/arbor/internal/tutor"
)

func typeText(c *ChatScreen, s string) {
	for _, r := range s {
		c.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestChatScreen_SendAndReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Count the gaps first."})
	c := New(tutor.New(mock), Learning, tutor.DefaultState())

	typeText(c, "how many?")
	_, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a send command")
	}
	if !c.waiting {
		t.Error("expected waiting after send")
	}
	if c.input.Value() != "" {
		t.Errorf("input not cleared: %q", c.input.Value())
	}

	c.Update(cmd())
	if c.waiting {
		t.Error("still waiting after reply")
	}
	if len(c.turns) != 2 || c.turns[1].text != "Count the gaps first." {
		t.Fatalf("turns = %+v", c.turns)
	}
	if len(c.history) != 2 {
		t.Errorf("history len = %d, want 2", len(c.history))
	}
	if got := mock.Calls[0].Messages[0].Content; got != "how many?" {
		t.Errorf("sent %q", got)
	}
	if !strings.Contains(c.View(100, 30), "Count the gaps first.") {
		t.Error("reply not rendered")
	}
}

func TestChatScreen_EmptyInputDoesNothing(t *testing.T) {
	c := New(tutor.New(nil), Practice, tutor.DefaultState())
	if _, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("expected no command for empty input")
	}
	if c.Title() != "Hint" {
		t.Errorf("Title = %q", c.Title())
	}
}

func TestChatScreen_NewConversation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "one"}, llm.MockResponse{Text: "two"})
	c := New(tutor.New(mock), Learning, tutor.DefaultState())

	typeText(c, "first")
	_, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	c.Update(cmd())

	c.Update(tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl})
	if len(c.turns) != 0 || c.history != nil {
		t.Fatalf("ctrl+n did not reset: %+v", c.turns)
	}

	typeText(c, "second")
	_, cmd = c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	c.Update(cmd())
	if n := len(mock.Calls[1].Messages); n != 1 {
		t.Errorf("second conversation sent %d messages, want 1", n)
	}
}
