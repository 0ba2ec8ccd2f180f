package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/abhisek/arbor/internal/store"
)

// Service persists finished rounds and the best score.
type Service struct {
	events   store.EventRepo
	progress store.ProgressRepo
}

// NewService creates a game service. Either repo may be nil.
func NewService(events store.EventRepo, progress store.ProgressRepo) *Service {
	return &Service{events: events, progress: progress}
}

// Best returns the best recorded score, preferring the progress record
// and falling back to the game events.
func (s *Service) Best(ctx context.Context) (int, error) {
	if s.progress != nil {
		v, ok, err := s.progress.Get(ctx, store.KeyBestGameScore)
		if err != nil {
			return 0, err
		}
		if ok {
			if n, err := strconv.Atoi(v); err == nil {
				return n, nil
			}
		}
	}
	if s.events != nil {
		return s.events.BestGameScore(ctx)
	}
	return 0, nil
}

// Finish records a round. It reports the best score after the round and
// whether this round set it.
func (s *Service) Finish(ctx context.Context, r *Round) (best int, record bool, err error) {
	prev, err := s.Best(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("read best score: %w", err)
	}

	var errs []error
	if s.events != nil {
		errs = append(errs, s.events.AppendGameEvent(ctx, store.GameEventData{
			Score:        r.Score,
			Submissions:  r.Submissions,
			DurationSecs: int(r.Duration().Seconds()),
		}))
	}

	best, record = prev, r.Score > prev
	if record {
		best = r.Score
		if s.progress != nil {
			errs = append(errs, s.progress.Set(ctx, store.KeyBestGameScore, strconv.Itoa(best)))
		}
	}
	return best, record, errors.Join(errs...)
}
