package planting

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
)

// Question is a generated practice problem.
type Question struct {
	ID             string      `json:"id"`
	Spec           SpacingSpec `json:"spec"`
	NarrativeText  string      `json:"narrative_text"`
	ExpectedAnswer int         `json:"expected_answer"`
}

// NarrativeFunc renders the word problem for a spec.
type NarrativeFunc func(spec SpacingSpec) string

// GeneratorConfig bounds the random parameters of generated questions.
type GeneratorConfig struct {
	MinCount    int
	MaxCount    int
	MinInterval int
	MaxInterval int
	// MaxLength caps the full path length (perimeter for closed shapes).
	MaxLength   float64
	MaxAttempts int
	Narrative   NarrativeFunc
}

// DefaultGeneratorConfig returns the standard practice ranges.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MinCount:    5,
		MaxCount:    30,
		MinInterval: 2,
		MaxInterval: 20,
		MaxLength:   500,
		MaxAttempts: 100,
		Narrative:   Narrate,
	}
}

// Option customizes a Generator.
type Option func(*GeneratorConfig)

// WithCountRange sets the inclusive range of item counts.
func WithCountRange(lo, hi int) Option {
	return func(c *GeneratorConfig) { c.MinCount, c.MaxCount = lo, hi }
}

// WithIntervalRange sets the inclusive range of whole-number intervals.
func WithIntervalRange(lo, hi int) Option {
	return func(c *GeneratorConfig) { c.MinInterval, c.MaxInterval = lo, hi }
}

// WithMaxLength caps the generated path length.
func WithMaxLength(l float64) Option {
	return func(c *GeneratorConfig) { c.MaxLength = l }
}

// WithMaxAttempts sets the resampling budget per question.
func WithMaxAttempts(n int) Option {
	return func(c *GeneratorConfig) { c.MaxAttempts = n }
}

// WithNarrative replaces the word-problem template.
func WithNarrative(fn NarrativeFunc) Option {
	return func(c *GeneratorConfig) { c.Narrative = fn }
}

// Generator produces always-solvable questions. It is safe for
// concurrent use.
type Generator struct {
	cfg GeneratorConfig

	mu     sync.Mutex
	rng    *rand.Rand
	nextID int
}

// NewRand returns a deterministic source for NewGenerator.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewGenerator creates a Generator drawing from rng.
func NewGenerator(rng *rand.Rand, opts ...Option) *Generator {
	cfg := DefaultGeneratorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Narrative == nil {
		cfg.Narrative = Narrate
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &Generator{cfg: cfg, rng: rng}
}

// GenerateQuestion returns a question for mode on shape. Closed shapes
// always use Loop. When no random triple passes within the attempt
// budget, a fixed known-good triple is returned instead.
func (g *Generator) GenerateQuestion(mode BoundaryMode, shape PathShape) Question {
	if shape.IsClosed() {
		mode = Loop
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for range g.cfg.MaxAttempts {
		n := g.intRange(g.cfg.MinCount, g.cfg.MaxCount)
		d := g.intRange(g.cfg.MinInterval, g.cfg.MaxInterval)
		if spec, ok := g.buildSpec(n, float64(d), mode, shape); ok {
			return g.newQuestion(spec, n)
		}
	}

	spec := fallbackSpec(mode, shape)
	count, _ := ComputeCount(spec)
	return g.newQuestion(spec, count)
}

// buildSpec inverts the formula for n items and accepts the result only
// if it is in range, has a whole-number side, and counts back to n.
func (g *Generator) buildSpec(n int, d float64, mode BoundaryMode, shape PathShape) (SpacingSpec, bool) {
	total, err := LengthFrom(n, d, mode)
	if err != nil || !(total > 0) || isInf(total) || total > g.cfg.MaxLength {
		return SpacingSpec{}, false
	}

	side := total / float64(shape.Sides())
	if !isInt(side) {
		return SpacingSpec{}, false
	}

	spec := SpacingSpec{Length: math.Round(side), Interval: d, Mode: mode, Shape: shape}
	count, err := ComputeCount(spec)
	if err != nil || count != n {
		return SpacingSpec{}, false
	}
	return spec, true
}

func (g *Generator) newQuestion(spec SpacingSpec, answer int) Question {
	g.nextID++
	return Question{
		ID:             fmt.Sprintf("q%d", g.nextID),
		Spec:           spec,
		NarrativeText:  g.cfg.Narrative(spec),
		ExpectedAnswer: answer,
	}
}

func (g *Generator) intRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.IntN(hi-lo+1)
}

// fallbackSpec is a fixed triple that is feasible for every mode: the
// path is always 120 long with items every 10.
func fallbackSpec(mode BoundaryMode, shape PathShape) SpacingSpec {
	return SpacingSpec{
		Length:   120 / float64(shape.Sides()),
		Interval: 10,
		Mode:     mode,
		Shape:    shape,
	}
}

type batchKey struct {
	mode     BoundaryMode
	length   float64
	interval float64
}

type modeShape struct {
	mode  BoundaryMode
	shape PathShape
}

// coverage is generated first so every boundary mode appears in a batch.
var coverage = []modeShape{
	{BothEnds, Segment},
	{NoEnds, Segment},
	{OneEnd, Segment},
	{Loop, Circle},
}

// GenerateBatch returns up to count questions with no repeated
// (mode, length, interval) triple. The first questions cover every
// boundary mode; the rest use random modes and shapes.
func (g *Generator) GenerateBatch(count int) []Question {
	if count <= 0 {
		return nil
	}

	out := make([]Question, 0, count)
	seen := make(map[batchKey]bool, count)
	add := func(q Question) bool {
		key := batchKey{q.Spec.Mode, q.Spec.Length, q.Spec.Interval}
		if seen[key] {
			return false
		}
		seen[key] = true
		out = append(out, q)
		return true
	}

	for _, ms := range coverage {
		if len(out) == count {
			return out
		}
		for range g.cfg.MaxAttempts {
			if add(g.GenerateQuestion(ms.mode, ms.shape)) {
				break
			}
		}
	}

	budget := count * g.cfg.MaxAttempts
	for len(out) < count && budget > 0 {
		budget--
		ms := g.randomModeShape()
		add(g.GenerateQuestion(ms.mode, ms.shape))
	}
	return out
}

func (g *Generator) randomModeShape() modeShape {
	g.mu.Lock()
	defer g.mu.Unlock()

	mode := AllModes[g.rng.IntN(len(AllModes))]
	if mode != Loop {
		return modeShape{mode, Segment}
	}
	closed := []PathShape{Circle, Triangle, Square}
	return modeShape{Loop, closed[g.rng.IntN(len(closed))]}
}
