// Package canvas draws planting layouts on a character grid.
package canvas

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/abhisek/arbor/internal/planting"
)

// Glyphs used by Draw.
const (
	TreeGlyph  = "🌳"
	ASCIITree  = "T"
	PathGlyph  = "·"
	ASCIIPath  = "."
	blankGlyph = " "
)

// Options selects the glyphs for trees and the path.
type Options struct {
	Tree string
	Path string
}

// DefaultOptions draws emoji trees on a dotted path.
func DefaultOptions() Options {
	return Options{Tree: TreeGlyph, Path: PathGlyph}
}

// ASCIIOptions is for terminals without emoji support.
func ASCIIOptions() Options {
	return Options{Tree: ASCIITree, Path: ASCIIPath}
}

// Grid is a fixed-size character surface. Wide glyphs occupy two cells;
// the second cell holds an empty string.
type Grid struct {
	width, height int
	cells         [][]string
}

// NewGrid returns a blank width x height grid.
func NewGrid(width, height int) *Grid {
	width, height = max(width, 1), max(height, 1)
	cells := make([][]string, height)
	for y := range cells {
		cells[y] = make([]string, width)
		for x := range cells[y] {
			cells[y][x] = blankGlyph
		}
	}
	return &Grid{width: width, height: height, cells: cells}
}

// Width is the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height is the grid height in rows.
func (g *Grid) Height() int { return g.height }

// Set writes glyph at (x, y). Out-of-range positions are ignored; a wide
// glyph on the last column is moved one cell left.
func (g *Grid) Set(x, y int, glyph string) {
	if y < 0 || y >= g.height || x < 0 || x >= g.width {
		return
	}
	w := runewidth.StringWidth(glyph)
	if w > 1 {
		if g.width < 2 {
			return
		}
		if x+1 >= g.width {
			x = g.width - 2
		}
	}
	g.clear(x, y)
	g.cells[y][x] = glyph
	if w > 1 {
		g.clear(x+1, y)
		g.cells[y][x+1] = ""
	}
}

// clear blanks the cell at (x, y) along with the other half of any wide
// glyph it belongs to.
func (g *Grid) clear(x, y int) {
	row := g.cells[y]
	switch {
	case row[x] == "" && x > 0:
		row[x-1] = blankGlyph
	case runewidth.StringWidth(row[x]) > 1 && x+1 < g.width:
		row[x+1] = blankGlyph
	}
	row[x] = blankGlyph
}

// At returns the glyph at (x, y), or "" for continuation cells and
// positions off the grid.
func (g *Grid) At(x, y int) string {
	if y < 0 || y >= g.height || x < 0 || x >= g.width {
		return ""
	}
	return g.cells[y][x]
}

// String renders the grid as lines of equal display width.
func (g *Grid) String() string {
	var b strings.Builder
	for y, row := range g.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			b.WriteString(c)
		}
	}
	return b.String()
}

// Surface maps frame coordinates to grid cells. One x unit is one column
// and one y unit is half a row, so circles come out round.
type Surface struct {
	Grid  *Grid
	Frame planting.Frame
}

// NewSurface sizes a frame to fill a width x height grid.
func NewSurface(width, height int) *Surface {
	g := NewGrid(width, height)
	return &Surface{
		Grid:  g,
		Frame: planting.NewFrame(float64(g.width-1), float64(g.height-1)*2),
	}
}

func (s *Surface) cell(p planting.Point) (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y / 2))
}

// Plot draws glyph at a frame point.
func (s *Surface) Plot(p planting.Point, glyph string) {
	x, y := s.cell(p)
	s.Grid.Set(x, y, glyph)
}

// Line draws glyph along the segment from a to b.
func (s *Surface) Line(a, b planting.Point, glyph string) {
	steps := int(math.Ceil(max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y)/2))) * 2
	if steps == 0 {
		s.Plot(a, glyph)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.Plot(planting.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}, glyph)
	}
}

// Path draws the outline of shape on the surface's frame.
func (s *Surface) Path(shape planting.PathShape, glyph string) {
	f := s.Frame
	switch shape {
	case planting.Segment:
		s.Line(f.Start, f.End, glyph)
	case planting.Circle:
		n := max(int(4*math.Pi*f.Radius), 8)
		for i := range n {
			angle := float64(i) / float64(n) * 2 * math.Pi
			s.Plot(planting.Point{
				X: f.Center.X + f.Radius*math.Cos(angle),
				Y: f.Center.Y + f.Radius*math.Sin(angle),
			}, glyph)
		}
	case planting.Triangle:
		s.polygon(planting.TriangleVertices(f), glyph)
	case planting.Square:
		s.polygon(planting.SquareVertices(f), glyph)
	}
}

func (s *Surface) polygon(vertices []planting.Point, glyph string) {
	for i, v := range vertices {
		s.Line(v, vertices[(i+1)%len(vertices)], glyph)
	}
}

// Draw renders spec on a width x height grid: the path first, then a tree
// at every sampled point. An infeasible spec draws the bare path; the
// placement result carries the reason.
func Draw(spec planting.SpacingSpec, width, height int, opts Options) (string, planting.PlacementResult) {
	if opts.Tree == "" {
		opts.Tree = TreeGlyph
	}
	if opts.Path == "" {
		opts.Path = PathGlyph
	}

	s := NewSurface(width, height)
	spec = spec.Normalize()
	s.Path(spec.Shape, opts.Path)

	res := planting.Place(spec, s.Frame)
	for _, p := range res.Points {
		s.Plot(p, opts.Tree)
	}
	return s.Grid.String(), res
}
