package game

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/arbor/internal/config"
	"github.com/abhisek/arbor/internal/planting"
)

var t0 = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func startedRound() *Round {
	r := NewRound(config.Default().Game)
	r.Start(t0)
	return r
}

func TestNewRound_Defaults(t *testing.T) {
	r := NewRound(config.Default().Game)
	assert.Equal(t, 100.0, r.Length)
	assert.Equal(t, 10.0, r.Interval)
	assert.Equal(t, planting.BothEnds, r.Mode)
	assert.Equal(t, StatusIdle, r.Status)
	assert.False(t, r.Running(t0))
}

func TestRound_ControlsClamp(t *testing.T) {
	r := NewRound(config.Default().Game)

	r.SetLength(500)
	assert.Equal(t, 200.0, r.Length)
	r.SetLength(3)
	assert.Equal(t, 40.0, r.Length)
	r.SetLength(72.6)
	assert.Equal(t, 73.0, r.Length)

	r.SetInterval(0)
	assert.Equal(t, 4.0, r.Interval)
	r.SetInterval(99)
	assert.Equal(t, 40.0, r.Interval)
}

func TestRound_CycleMode(t *testing.T) {
	r := NewRound(config.Default().Game)
	r.CycleMode(1)
	assert.Equal(t, planting.NoEnds, r.Mode)
	r.CycleMode(-2)
	assert.Equal(t, planting.Loop, r.Mode)
	assert.Equal(t, planting.Circle, r.Spec().Shape)
	r.CycleMode(1)
	assert.Equal(t, planting.BothEnds, r.Mode)
	assert.Equal(t, planting.Segment, r.Spec().Shape)
}

func TestRound_SubmitScoresEvenLayout(t *testing.T) {
	r := startedRound()

	res, err := r.Submit(t0.Add(time.Second))
	require.NoError(t, err)
	assert.True(t, res.Scored)
	assert.Equal(t, StatusScored, res.Status)
	assert.Equal(t, 11, res.Count)
	assert.Equal(t, 1, r.Score)
	assert.Equal(t, 1, r.Submissions)
}

func TestRound_RepeatDoesNotScoreTwice(t *testing.T) {
	r := startedRound()

	_, err := r.Submit(t0)
	require.NoError(t, err)
	res, err := r.Submit(t0.Add(time.Second))
	require.NoError(t, err)

	assert.False(t, res.Scored)
	assert.Equal(t, StatusRepeat, res.Status)
	assert.Equal(t, 1, r.Score)
	assert.Equal(t, 2, r.Submissions)

	// A different layout scores again, and so does going back.
	r.SetInterval(20)
	res, _ = r.Submit(t0.Add(2 * time.Second))
	assert.True(t, res.Scored)
	r.SetInterval(10)
	res, _ = r.Submit(t0.Add(3 * time.Second))
	assert.True(t, res.Scored)
	assert.Equal(t, 3, r.Score)
}

func TestRound_UnevenLayout(t *testing.T) {
	r := startedRound()
	r.SetInterval(7)

	res, err := r.Submit(t0)
	require.NoError(t, err)
	assert.False(t, res.Scored)
	assert.Equal(t, StatusUneven, res.Status)
	assert.NotEmpty(t, res.Reason)
	assert.Equal(t, 0, r.Score)
	assert.Equal(t, 0, r.Streak)
}

func TestRound_LoopMustDivideExactly(t *testing.T) {
	r := startedRound()
	r.Mode = planting.Loop
	r.SetLength(62)
	r.SetInterval(5)

	res, err := r.Submit(t0)
	require.NoError(t, err)
	assert.Equal(t, StatusUneven, res.Status, "62 m loop every 5 m is not even")

	r.SetLength(60)
	res, err = r.Submit(t0)
	require.NoError(t, err)
	assert.True(t, res.Scored)
	assert.Equal(t, 12, res.Count)
}

func TestRound_TimeUp(t *testing.T) {
	r := startedRound()
	assert.Equal(t, 30*time.Second, r.Remaining(t0))
	assert.Equal(t, 10*time.Second, r.Remaining(t0.Add(20*time.Second)))

	_, err := r.Submit(t0.Add(31 * time.Second))
	assert.True(t, errors.Is(err, ErrNotRunning))
	assert.Equal(t, StatusOver, r.Status)
	assert.Equal(t, time.Duration(0), r.Remaining(t0.Add(31*time.Second)))
}

func TestRound_StartResets(t *testing.T) {
	r := startedRound()
	_, _ = r.Submit(t0)
	r.Start(t0.Add(time.Minute))
	assert.Equal(t, 0, r.Score)
	assert.Equal(t, 0, r.Submissions)

	// The first submission of a new round is never a repeat.
	res, err := r.Submit(t0.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, res.Scored)
}

func TestRound_StreakMilestones(t *testing.T) {
	r := startedRound()
	intervals := []float64{10, 20, 5}

	var milestones []int
	for _, d := range intervals {
		r.SetInterval(d)
		res, err := r.Submit(t0)
		require.NoError(t, err)
		if res.Milestone > 0 {
			milestones = append(milestones, res.Milestone)
		}
	}
	assert.Equal(t, []int{3}, milestones)
	assert.Equal(t, 3, r.BestStreak)

	r.SetInterval(7)
	_, _ = r.Submit(t0)
	assert.Equal(t, 0, r.Streak)
	assert.Equal(t, 3, r.BestStreak)
}

func TestNextStreakMilestone(t *testing.T) {
	tests := []struct{ current, want int }{
		{0, 3}, {3, 5}, {4, 5}, {9, 10}, {20, 25}, {27, 30},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NextStreakMilestone(tt.current), "current=%d", tt.current)
	}
}
