package home

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/arbor/internal/router"
	"github.com/abhisek/arbor/internal/store"
)

type progressRepo struct {
	store.ProgressRepo
	values map[string]string
}

func (p *progressRepo) All(context.Context) (map[string]string, error) {
	return p.values, nil
}

func selectLabel(t *testing.T, h *HomeScreen, label string) tea.Cmd {
	t.Helper()
	for i, l := range h.labels {
		if l == label {
			h.menu.Selected = i
			_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
			return cmd
		}
	}
	t.Fatalf("no menu item %q", label)
	return nil
}

func pushedTitle(t *testing.T, cmd tea.Cmd) string {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	return push.Screen.Title()
}

func TestHomeMenu_Navigation(t *testing.T) {
	h := New(Deps{})

	cases := map[string]string{
		"VISUALIZER":    "Visualizer",
		"PRACTICE":      "Practice",
		"PLANTING GAME": "Planting Game",
		"ASK THE TUTOR": "Ask the Tutor",
		"LESSONS":       "Lessons",
	}
	for label, title := range cases {
		if got := pushedTitle(t, selectLabel(t, h, label)); got != title {
			t.Errorf("%s pushed %q, want %q", label, got, title)
		}
	}
}

func TestHomeMenu_HistoryNeedsEvents(t *testing.T) {
	h := New(Deps{})
	if !h.disabled[5] || h.labels[5] != "HISTORY" {
		t.Fatal("history should be disabled without an event repo")
	}
	if cmd := selectLabel(t, h, "HISTORY"); cmd != nil {
		t.Error("disabled item should do nothing")
	}
}

func TestHomeScreen_OfflineBanner(t *testing.T) {
	h := New(Deps{})
	if !strings.Contains(h.View(120, 40), "Offline tutor") {
		t.Error("expected offline banner without an LLM")
	}
}

func TestHomeScreen_Stats(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	h := New(Deps{Progress: &progressRepo{values: map[string]string{
		store.KeySessionsCompleted: "4",
		store.KeyBestGameScore:     "9",
		store.KeyLastPracticeAt:    now.Add(-5 * 24 * time.Hour).Format(time.RFC3339),
	}}})
	h.now = func() time.Time { return now }

	h.Update(h.Init()())
	if h.stats.sessions != 4 || h.stats.bestGame != 9 {
		t.Errorf("stats = %+v", h.stats)
	}
	if h.stats.mascot() != MascotThirsty {
		t.Error("five days without practice should droop the mascot")
	}
	if got := h.stats.lastPracticeText(false); got != "⏱ 5 DAYS AGO" {
		t.Errorf("last practice = %q", got)
	}

	view := h.View(120, 40)
	for _, want := range []string{"4 SESSIONS", "BEST 9"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if h.Resume() == nil {
		t.Error("Resume should reload the stats")
	}
}

func TestStats_Mascot(t *testing.T) {
	now := time.Now()
	if (stats{now: now}).mascot() != MascotIdle {
		t.Error("no practice yet should be idle")
	}
	if (stats{now: now, lastPractice: now.Add(-time.Hour)}).mascot() != MascotCelebrating {
		t.Error("practice today should celebrate")
	}
}
