// Package visualizer lets the learner change a planting layout and watch
// the trees move.
package visualizer

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/arbor/internal/planting"
	"github.com/abhisek/arbor/internal/router"
	"github.com/abhisek/arbor/internal/screen"
	"github.com/abhisek/arbor/internal/screens/chat"
	"github.com/abhisek/arbor/internal/screens/placeholder"
	"github.com/abhisek/arbor/internal/tutor"
	"github.com/abhisek/arbor/internal/ui/canvas"
	"github.com/abhisek/arbor/internal/ui/layout"
	"github.com/abhisek/arbor/internal/ui/theme"
)

// Control steps and limits.
const (
	LengthStep   = 10
	IntervalStep = 1
	MinLength    = 10
	MaxLength    = 1000
	MinInterval  = 1
	MaxInterval  = 100
)

// VisualizerScreen draws the current layout with its count and formula.
type VisualizerScreen struct {
	tutor *tutor.Tutor
	state tutor.State
	ascii bool
}

var _ screen.Screen = (*VisualizerScreen)(nil)
var _ screen.KeyHintProvider = (*VisualizerScreen)(nil)

// New creates a visualizer starting from state. t may be nil, in which
// case the tutor shortcut is disabled.
func New(t *tutor.Tutor, state tutor.State) *VisualizerScreen {
	return &VisualizerScreen{tutor: t, state: state}
}

func (v *VisualizerScreen) Init() tea.Cmd {
	return nil
}

func (v *VisualizerScreen) Title() string {
	return "Visualizer"
}

func (v *VisualizerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Length"},
		{Key: "←→", Description: "Interval"},
		{Key: "M", Description: "Mode"},
		{Key: "S", Description: "Shape"},
		{Key: "C", Description: "Ask tutor"},
		{Key: "Esc", Description: "Back"},
	}
}

// State returns the layout currently shown.
func (v *VisualizerScreen) State() tutor.State {
	return v.state
}

func (v *VisualizerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch kmsg.String() {
	case "up", "k":
		v.state.Length = clamp(v.state.Length+LengthStep, MinLength, MaxLength)
	case "down", "j":
		v.state.Length = clamp(v.state.Length-LengthStep, MinLength, MaxLength)
	case "right", "l":
		v.state.Interval = clamp(v.state.Interval+IntervalStep, MinInterval, MaxInterval)
	case "left", "h":
		v.state.Interval = clamp(v.state.Interval-IntervalStep, MinInterval, MaxInterval)
	case "m":
		v.cycleMode()
	case "s":
		v.cycleShape()
	case "a":
		v.ascii = !v.ascii
	case "c":
		return v, v.openChat()
	}
	return v, nil
}

// cycleMode steps through the open-path modes. Closed shapes stay on
// Loop.
func (v *VisualizerScreen) cycleMode() {
	if v.state.Shape.IsClosed() {
		return
	}
	open := []planting.BoundaryMode{planting.BothEnds, planting.NoEnds, planting.OneEnd}
	for i, m := range open {
		if m == v.state.Mode {
			v.state.Mode = open[(i+1)%len(open)]
			return
		}
	}
	v.state.Mode = planting.BothEnds
}

func (v *VisualizerScreen) cycleShape() {
	shapes := planting.AllShapes
	next := shapes[0]
	for i, s := range shapes {
		if s == v.state.Shape {
			next = shapes[(i+1)%len(shapes)]
			break
		}
	}
	v.state.Shape = next
	switch {
	case next.IsClosed():
		v.state.Mode = planting.Loop
	case v.state.Mode == planting.Loop:
		v.state.Mode = planting.BothEnds
	}
}

func (v *VisualizerScreen) openChat() tea.Cmd {
	if v.tutor == nil || !v.tutor.Available() {
		return router.Push(placeholder.New("Ask the Tutor", placeholder.NoLLMMessage))
	}
	return router.Push(chat.New(v.tutor, chat.Learning, v.state))
}

func (v *VisualizerScreen) View(width, height int) string {
	spec := v.state.Spec()

	opts := canvas.DefaultOptions()
	if v.ascii {
		opts = canvas.ASCIIOptions()
	}
	canvasWidth := max(min(width-4, 100), 20)
	canvasHeight := max(height-12, 5)
	drawing, res := canvas.Draw(spec, canvasWidth, canvasHeight, opts)
	drawing = strings.ReplaceAll(drawing, opts.Path, theme.Path.Render(opts.Path))
	drawing = strings.ReplaceAll(drawing, opts.Tree, theme.Tree.Render(opts.Tree))

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, drawing))
	b.WriteString("\n\n")

	settings := fmt.Sprintf("Length %g m   Interval %g m   %s, %s",
		spec.Length, spec.Interval, planting.DescribeShape(spec.Shape), planting.DescribeMode(spec.Mode))
	b.WriteString(center(width, theme.Body, settings))
	b.WriteString("\n")

	if res.Feasible {
		b.WriteString(center(width, theme.Correct, fmt.Sprintf("%d trees", res.Count)))
	} else {
		b.WriteString(center(width, theme.Incorrect, "No even spacing: "+reason(res.Err)))
	}
	b.WriteString("\n")

	if c, ok := planting.ConceptFor(spec.Mode); ok {
		b.WriteString(center(width, theme.Formula, c.Formula))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	steps := planting.SolvingSteps(spec)
	stepStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(min(width-8, 80))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, stepStyle.Render(strings.Join(steps, "\n"))))
	return b.String()
}

func center(width int, style lipgloss.Style, s string) string {
	return style.Width(width).Align(lipgloss.Center).Render(s)
}

func reason(err error) string {
	if err == nil {
		return "unknown"
	}
	return err.Error()
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
