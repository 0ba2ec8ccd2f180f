package canvas

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/abhisek/arbor/internal/planting"
)

func assertRectangular(t *testing.T, out string, width, height int) {
	t.Helper()
	lines := strings.Split(out, "\n")
	if len(lines) != height {
		t.Fatalf("got %d lines, want %d", len(lines), height)
	}
	for i, l := range lines {
		if w := runewidth.StringWidth(l); w != width {
			t.Errorf("line %d width = %d, want %d: %q", i, w, width, l)
		}
	}
}

func TestGrid_WideGlyph(t *testing.T) {
	g := NewGrid(6, 1)
	g.Set(1, 0, TreeGlyph)

	if g.At(1, 0) != TreeGlyph {
		t.Errorf("At(1,0) = %q", g.At(1, 0))
	}
	if g.At(2, 0) != "" {
		t.Errorf("continuation cell = %q, want empty", g.At(2, 0))
	}
	assertRectangular(t, g.String(), 6, 1)
}

func TestGrid_WideGlyphOnLastColumn(t *testing.T) {
	g := NewGrid(4, 1)
	g.Set(3, 0, TreeGlyph)
	if g.At(2, 0) != TreeGlyph {
		t.Errorf("wide glyph not shifted left: %q", g.String())
	}
	assertRectangular(t, g.String(), 4, 1)
}

func TestGrid_OverwriteHalfOfWideGlyph(t *testing.T) {
	g := NewGrid(5, 1)
	g.Set(1, 0, TreeGlyph)
	g.Set(2, 0, "x")

	if g.At(1, 0) != blankGlyph {
		t.Errorf("head of broken wide glyph = %q, want blank", g.At(1, 0))
	}
	if got := g.String(); got != "  x  " {
		t.Errorf("String = %q", got)
	}
}

func TestGrid_OutOfRange(t *testing.T) {
	g := NewGrid(3, 2)
	g.Set(-1, 0, "x")
	g.Set(0, 5, "x")
	g.Set(3, 1, "x")
	if got := g.String(); got != "   \n   " {
		t.Errorf("String = %q", got)
	}
}

func TestDraw_SegmentTrees(t *testing.T) {
	tests := []struct {
		mode planting.BoundaryMode
		want int
	}{
		{planting.BothEnds, 11},
		{planting.NoEnds, 9},
		{planting.OneEnd, 10},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			spec := planting.SpacingSpec{Length: 100, Interval: 10, Mode: tt.mode, Shape: planting.Segment}
			out, res := Draw(spec, 61, 5, ASCIIOptions())

			assertRectangular(t, out, 61, 5)
			if !res.Feasible || res.Count != tt.want {
				t.Fatalf("result = %+v", res)
			}
			if got := strings.Count(out, ASCIITree); got != tt.want {
				t.Errorf("drew %d trees, want %d\n%s", got, tt.want, out)
			}
		})
	}
}

func TestDraw_Infeasible(t *testing.T) {
	spec := planting.SpacingSpec{Length: 100, Interval: 7, Mode: planting.BothEnds, Shape: planting.Segment}
	out, res := Draw(spec, 40, 5, ASCIIOptions())

	if res.Feasible || res.Err == nil {
		t.Fatalf("expected infeasible result, got %+v", res)
	}
	if strings.Contains(out, ASCIITree) {
		t.Error("infeasible layout should not draw trees")
	}
	if !strings.Contains(out, ASCIIPath) {
		t.Error("path should still be drawn")
	}
}

func TestDraw_ClosedShapesStayRectangular(t *testing.T) {
	for _, shape := range []planting.PathShape{planting.Circle, planting.Triangle, planting.Square} {
		t.Run(shape.String(), func(t *testing.T) {
			spec := planting.SpacingSpec{Length: 60, Interval: 10, Mode: planting.Loop, Shape: shape}
			out, res := Draw(spec, 50, 16, DefaultOptions())
			if !res.Feasible {
				t.Fatalf("expected feasible: %v", res.Err)
			}
			assertRectangular(t, out, 50, 16)
			if !strings.Contains(out, TreeGlyph) {
				t.Error("no trees drawn")
			}
		})
	}
}
