package planting

import "math"

// DedupEpsilon is the distance below which consecutive polygon points are
// merged.
const DedupEpsilon = 0.5

// SamplePoints places the items of spec on frame. It returns an empty
// slice when spec is infeasible; otherwise the slice holds exactly
// ComputeCount(spec) points.
func SamplePoints(spec SpacingSpec, frame Frame) []Point {
	count, err := ComputeCount(spec)
	if err != nil {
		return []Point{}
	}
	return samplePoints(spec, frame, count)
}

func samplePoints(spec SpacingSpec, frame Frame, count int) []Point {
	switch spec.Shape {
	case Segment:
		return sampleSegment(spec, frame)
	case Circle:
		return sampleCircle(frame, count)
	case Triangle:
		return samplePolygon(TriangleVertices(frame), count)
	case Square:
		return samplePolygon(SquareVertices(frame), count)
	}
	return []Point{}
}

// sampleSegment walks the segment from frame.Start to frame.End in
// length/interval equal steps and keeps the steps the mode allows.
func sampleSegment(spec SpacingSpec, frame Frame) []Point {
	n := int(floorTol(spec.Length / spec.Interval))
	frac := spec.Interval / spec.Length
	dx := (frame.End.X - frame.Start.X) * frac
	dy := (frame.End.Y - frame.Start.Y) * frac

	points := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		if !includeStep(spec.Mode, i, n) {
			continue
		}
		points = append(points, Point{
			X: frame.Start.X + float64(i)*dx,
			Y: frame.Start.Y + float64(i)*dy,
		})
	}

	// Accumulated steps drift; the ends must sit exactly on the frame.
	if spec.Mode == BothEnds && len(points) > 0 {
		points[0] = frame.Start
		points[len(points)-1] = frame.End
	}
	return points
}

func includeStep(mode BoundaryMode, i, n int) bool {
	switch mode {
	case BothEnds:
		return true
	case NoEnds:
		return i > 0 && i < n
	default:
		return i < n
	}
}

// sampleCircle spaces count points evenly, starting at angle 0.
func sampleCircle(frame Frame, count int) []Point {
	points := make([]Point, 0, count)
	for i := range count {
		angle := float64(i) / float64(count) * 2 * math.Pi
		points = append(points, Point{
			X: frame.Center.X + frame.Radius*math.Cos(angle),
			Y: frame.Center.Y + frame.Radius*math.Sin(angle),
		})
	}
	return points
}

// samplePolygon walks the closed polyline through vertices in uniform
// steps of perimeter/count, starting at the first vertex.
func samplePolygon(vertices []Point, count int) []Point {
	if len(vertices) == 0 || count <= 0 {
		return []Point{}
	}

	lengths := make([]float64, len(vertices))
	var total float64
	for i, a := range vertices {
		lengths[i] = distance(a, vertices[(i+1)%len(vertices)])
		total += lengths[i]
	}

	step := total / float64(count)
	// A quarter step stays below the shortest chord two uniform steps can
	// make around any corner of these shapes.
	eps := min(DedupEpsilon, step/4)

	points := make([]Point, 0, count)
	edge := 0
	var edgeStart float64
	for i := range count {
		d := float64(i) * step
		for edge < len(lengths)-1 && (lengths[edge] == 0 || d-edgeStart > lengths[edge]) {
			edgeStart += lengths[edge]
			edge++
		}

		a := vertices[edge]
		b := vertices[(edge+1)%len(vertices)]
		var t float64
		if lengths[edge] > 0 {
			t = math.Min(1, math.Max(0, (d-edgeStart)/lengths[edge]))
		}
		p := Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}

		if len(points) > 0 && distance(p, points[len(points)-1]) < eps {
			continue
		}
		points = append(points, p)
	}
	return points
}

// TriangleVertices returns the triangle drawn for frame: apex at the top,
// base below the center.
func TriangleVertices(frame Frame) []Point {
	c, s := frame.Center, frame.Size
	return []Point{
		{X: c.X, Y: c.Y - s*0.8},
		{X: c.X - s*0.8, Y: c.Y + s*0.4},
		{X: c.X + s*0.8, Y: c.Y + s*0.4},
	}
}

// SquareVertices returns the square drawn for frame, clockwise from the
// top-left corner.
func SquareVertices(frame Frame) []Point {
	c, s := frame.Center, frame.Size
	return []Point{
		{X: c.X - s, Y: c.Y - s},
		{X: c.X + s, Y: c.Y - s},
		{X: c.X + s, Y: c.Y + s},
		{X: c.X - s, Y: c.Y + s},
	}
}

func distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
