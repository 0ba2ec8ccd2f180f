// Package game implements the spacing minigame: within a timed round the
// player tunes length, interval and mode until the trees space evenly.
package game

import (
	"errors"
	"math"
	"time"

	"github.com/abhisek/arbor/internal/config"
	"github.com/abhisek/arbor/internal/planting"
)

var (
	// ErrNotRunning is returned by Submit outside a running round.
	ErrNotRunning = errors.New("game: round is not running")
)

// Status is the outcome of the most recent submission.
type Status int

const (
	StatusIdle      Status = iota // Round not started
	StatusPlaying                 // Waiting for a submission
	StatusScored                  // Last submission scored
	StatusRepeat                  // Last submission repeated the previous one
	StatusUneven                  // Last submission did not space evenly
	StatusOver                    // Time is up
)

// Result describes one submission.
type Result struct {
	Spec   planting.SpacingSpec
	Count  int
	Scored bool
	Status Status
	// Reason explains an uneven submission.
	Reason string
	// Milestone is the streak length reached, or 0.
	Milestone int
}

// Round is one timed game. The clock is passed in so callers and tests
// control time.
type Round struct {
	cfg config.GameConfig

	Length   float64
	Interval float64
	Mode     planting.BoundaryMode

	Score       int
	Submissions int
	Streak      int
	BestStreak  int
	Status      Status

	started  time.Time
	running  bool
	last     *planting.SpacingSpec
	nextGoal int
}

// NewRound creates an idle round with the controls at their starting
// positions: 100 m every 10 m with trees at both ends, clamped to cfg.
func NewRound(cfg config.GameConfig) *Round {
	r := &Round{cfg: cfg, Mode: planting.BothEnds}
	r.SetLength(100)
	r.SetInterval(10)
	return r
}

// Start resets the score and starts the clock.
func (r *Round) Start(now time.Time) {
	r.Score = 0
	r.Submissions = 0
	r.Streak = 0
	r.BestStreak = 0
	r.Status = StatusPlaying
	r.started = now
	r.running = true
	r.last = nil
	r.nextGoal = NextStreakMilestone(0)
}

// Duration is the configured round length.
func (r *Round) Duration() time.Duration {
	return r.cfg.RoundDuration()
}

// Remaining is the time left at now, never negative.
func (r *Round) Remaining(now time.Time) time.Duration {
	if !r.running {
		return 0
	}
	return max(r.Duration()-now.Sub(r.started), 0)
}

// Running reports whether the round is on. It ends the round once time
// is up.
func (r *Round) Running(now time.Time) bool {
	if r.running && r.Remaining(now) == 0 {
		r.running = false
		r.Status = StatusOver
	}
	return r.running
}

// SetLength sets the length, rounded to whole metres and clamped.
func (r *Round) SetLength(v float64) {
	r.Length = clamp(math.Round(v), r.cfg.MinLength, r.cfg.MaxLength)
}

// SetInterval sets the interval, rounded to whole metres and clamped.
func (r *Round) SetInterval(v float64) {
	r.Interval = clamp(math.Round(v), r.cfg.MinInterval, r.cfg.MaxInterval)
}

// CycleMode moves to the next mode in planting.AllModes order.
func (r *Round) CycleMode(step int) {
	n := len(planting.AllModes)
	r.Mode = planting.AllModes[((int(r.Mode)+step)%n+n)%n]
}

// Spec is the layout the controls currently describe. Loop plays on a
// circle.
func (r *Round) Spec() planting.SpacingSpec {
	shape := planting.Segment
	if r.Mode == planting.Loop {
		shape = planting.Circle
	}
	return planting.SpacingSpec{Length: r.Length, Interval: r.Interval, Mode: r.Mode, Shape: shape}
}

// Submit checks the current layout. An evenly spaced layout scores one
// point unless it repeats the previous submission.
func (r *Round) Submit(now time.Time) (Result, error) {
	if !r.Running(now) {
		return Result{Status: r.Status}, ErrNotRunning
	}

	spec := r.Spec()
	repeat := r.last != nil && *r.last == spec
	r.last = &spec
	r.Submissions++

	res := Result{Spec: spec}
	count, err := planting.ComputeCountStrict(spec)
	switch {
	case err != nil:
		r.Streak = 0
		r.nextGoal = NextStreakMilestone(0)
		res.Status = StatusUneven
		res.Reason = err.Error()
	case repeat:
		res.Count = count
		res.Status = StatusRepeat
	default:
		r.Score++
		r.Streak++
		r.BestStreak = max(r.BestStreak, r.Streak)
		if r.Streak >= r.nextGoal {
			res.Milestone = r.Streak
			r.nextGoal = NextStreakMilestone(r.Streak)
		}
		res.Count = count
		res.Scored = true
		res.Status = StatusScored
	}
	r.Status = res.Status
	return res, nil
}

// NextStreakMilestone returns the next streak length worth celebrating
// above current.
func NextStreakMilestone(current int) int {
	for _, t := range []int{3, 5, 10, 15, 20} {
		if t > current {
			return t
		}
	}
	return ((current / 5) + 1) * 5
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
