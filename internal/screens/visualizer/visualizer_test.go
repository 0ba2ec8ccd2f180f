package visualizer

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/arbor/internal/planting"
	"github.com/abhisek/arbor/internal/router"
	"github.com/abhisek/arbor/internal/tutor"
)

func key(s string) tea.KeyPressMsg {
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestVisualizer_Controls(t *testing.T) {
	v := New(nil, tutor.DefaultState())

	v.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	v.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	st := v.State()
	if st.Length != 110 || st.Interval != 11 {
		t.Fatalf("state = %+v, want length 110 interval 11", st)
	}

	for range 200 {
		v.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	}
	if v.State().Interval != MinInterval {
		t.Errorf("interval = %g, want clamped to %d", v.State().Interval, MinInterval)
	}
}

func TestVisualizer_ModeAndShape(t *testing.T) {
	v := New(nil, tutor.DefaultState())

	v.Update(key("m"))
	if v.State().Mode != planting.NoEnds {
		t.Errorf("mode = %s, want none", v.State().Mode)
	}

	v.Update(key("s"))
	if st := v.State(); st.Shape != planting.Circle || st.Mode != planting.Loop {
		t.Fatalf("after shape change = %+v", st)
	}
	v.Update(key("m"))
	if v.State().Mode != planting.Loop {
		t.Error("closed shapes must stay on loop")
	}

	v.Update(key("s"))
	v.Update(key("s"))
	v.Update(key("s"))
	if st := v.State(); st.Shape != planting.Segment || st.Mode != planting.BothEnds {
		t.Errorf("back on segment = %+v", st)
	}
}

func TestVisualizer_View(t *testing.T) {
	v := New(nil, tutor.DefaultState())
	view := v.View(100, 30)
	if !strings.Contains(view, "11 trees") {
		t.Error("missing tree count")
	}

	v.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	v.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	v.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if view := v.View(100, 30); !strings.Contains(view, "No even spacing") {
		t.Error("interval 7 should be reported infeasible")
	}
}

func TestVisualizer_ChatWithoutLLM(t *testing.T) {
	v := New(tutor.New(nil), tutor.DefaultState())
	_, cmd := v.Update(key("c"))
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("got %T", cmd())
	}
	if msg.Screen.Title() != "Ask the Tutor" {
		t.Errorf("pushed %q", msg.Screen.Title())
	}
}
