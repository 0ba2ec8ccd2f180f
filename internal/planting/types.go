package planting

import (
	"fmt"
	"strings"
)

// BoundaryMode governs which ends of an open path receive an item.
type BoundaryMode int

const (
	BothEnds BoundaryMode = iota // Items at both ends
	NoEnds                       // No item at either end
	OneEnd                       // Item at the start only
	Loop                         // Closed path, no ends
)

// AllModes lists every boundary mode in display order.
var AllModes = []BoundaryMode{BothEnds, NoEnds, OneEnd, Loop}

// String returns the wire name of the mode.
func (m BoundaryMode) String() string {
	switch m {
	case BothEnds:
		return "both"
	case NoEnds:
		return "none"
	case OneEnd:
		return "one"
	case Loop:
		return "loop"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the declared modes.
func (m BoundaryMode) Valid() bool {
	return m >= BothEnds && m <= Loop
}

// ParseBoundaryMode parses a wire name. "circle" is accepted as a legacy
// alias for Loop.
func ParseBoundaryMode(s string) (BoundaryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "both", "bothends", "both-ends":
		return BothEnds, nil
	case "none", "noends", "no-ends":
		return NoEnds, nil
	case "one", "oneend", "one-end":
		return OneEnd, nil
	case "loop", "circle":
		return Loop, nil
	}
	return 0, fmt.Errorf("%w: unknown boundary mode %q", ErrInvalidParameter, s)
}

func (m BoundaryMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: boundary mode %d", ErrInvalidParameter, int(m))
	}
	return []byte(m.String()), nil
}

func (m *BoundaryMode) UnmarshalText(b []byte) error {
	v, err := ParseBoundaryMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// PathShape is the geometry items are placed along.
type PathShape int

const (
	Segment PathShape = iota
	Circle
	Triangle
	Square
)

// AllShapes lists every path shape in display order.
var AllShapes = []PathShape{Segment, Circle, Triangle, Square}

func (s PathShape) String() string {
	switch s {
	case Segment:
		return "segment"
	case Circle:
		return "circle"
	case Triangle:
		return "triangle"
	case Square:
		return "square"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// Valid reports whether s is one of the declared shapes.
func (s PathShape) Valid() bool {
	return s >= Segment && s <= Square
}

// IsClosed reports whether the shape is a loop.
func (s PathShape) IsClosed() bool {
	return s == Circle || s == Triangle || s == Square
}

// Sides returns how many multiples of Length make up the perimeter.
// Circle and Segment lengths are already the full path length.
func (s PathShape) Sides() int {
	switch s {
	case Triangle:
		return 3
	case Square:
		return 4
	default:
		return 1
	}
}

// minCount is the smallest meaningful number of points on the shape.
func (s PathShape) minCount() int {
	switch s {
	case Circle, Triangle:
		return 3
	case Square:
		return 4
	default:
		return 0
	}
}

// ParsePathShape parses a wire name. "line" is accepted for Segment.
func ParsePathShape(s string) (PathShape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "segment", "line":
		return Segment, nil
	case "circle":
		return Circle, nil
	case "triangle":
		return Triangle, nil
	case "square":
		return Square, nil
	}
	return 0, fmt.Errorf("%w: unknown path shape %q", ErrInvalidParameter, s)
}

func (s PathShape) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: path shape %d", ErrInvalidParameter, int(s))
	}
	return []byte(s.String()), nil
}

func (s *PathShape) UnmarshalText(b []byte) error {
	v, err := ParsePathShape(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// SpacingSpec is the input to every core computation. For Triangle and
// Square, Length is the side length; for Circle it is the circumference.
type SpacingSpec struct {
	Length   float64      `json:"length"`
	Interval float64      `json:"interval"`
	Mode     BoundaryMode `json:"mode"`
	Shape    PathShape    `json:"shape"`
}

// Normalize returns a copy with the mode forced to Loop on closed shapes.
func (s SpacingSpec) Normalize() SpacingSpec {
	if s.Shape.IsClosed() {
		s.Mode = Loop
	}
	return s
}

// Validate checks the parameter invariants without judging feasibility.
func (s SpacingSpec) Validate() error {
	switch {
	case !s.Mode.Valid():
		return fmt.Errorf("%w: boundary mode %d", ErrInvalidParameter, int(s.Mode))
	case !s.Shape.Valid():
		return fmt.Errorf("%w: path shape %d", ErrInvalidParameter, int(s.Shape))
	case !(s.Interval > 0) || isInf(s.Interval):
		return fmt.Errorf("%w: interval must be positive, got %v", ErrInvalidParameter, s.Interval)
	case !(s.Length > 0) || isInf(s.Length):
		return fmt.Errorf("%w: length must be positive, got %v", ErrInvalidParameter, s.Length)
	case s.Shape.IsClosed() && s.Mode != Loop:
		return fmt.Errorf("%w: %s is closed and only supports loop mode, got %s",
			ErrInvalidParameter, s.Shape, s.Mode)
	}
	return nil
}

func (s SpacingSpec) String() string {
	return fmt.Sprintf("%s/%s length=%g interval=%g", s.Shape, s.Mode, s.Length, s.Interval)
}

// Point is a coordinate on the drawing surface.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Frame describes where paths are drawn. Start and End bound a segment;
// Center with Radius (circle) or Size (polygons) anchors closed shapes.
type Frame struct {
	Start  Point   `json:"start"`
	End    Point   `json:"end"`
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
	Size   float64 `json:"size"`
}

// NewFrame lays out a frame on a width x height surface with a 10% margin.
func NewFrame(width, height float64) Frame {
	cx, cy := width/2, height/2
	half := min(width, height) / 2
	return Frame{
		Start:  Point{X: width * 0.1, Y: cy},
		End:    Point{X: width * 0.9, Y: cy},
		Center: Point{X: cx, Y: cy},
		Radius: half * 0.8,
		Size:   half * 0.8,
	}
}

// PlacementResult is the outcome of one compute-and-sample cycle.
type PlacementResult struct {
	Count    int     `json:"count"`
	Feasible bool    `json:"feasible"`
	Points   []Point `json:"points"`
	Err      error   `json:"-"`
}
