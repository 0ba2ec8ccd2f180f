package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries failed Generate calls with capped exponential
// backoff. Fewer than one attempt counts as one.
//
// A learner waiting on a chat reply is never left behind a rate limit:
// chat and practice-chat calls fail fast on 429 and let the caller fall
// back. Background work such as evaluation or diagnosis waits it out.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	interactive := isInteractive(PurposeFrom(ctx))
	askedAgain := false

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch classifyRetry(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if askedAgain {
				return nil, err
			}
			askedAgain = true
		case retryRateLimit:
			if interactive {
				return nil, err
			}
		}

		if attempt == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.wait(attempt, err)):
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// isInteractive reports whether a learner is waiting on the reply.
func isInteractive(purpose string) bool {
	return purpose == PurposeChat || purpose == PurposePracticeChat
}

// wait is the pause before the next attempt. A provider RetryAfter hint
// wins but is still capped at MaxWait.
func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return min(rl.RetryAfter, r.capWait())
	}

	base := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	base = math.Min(base, float64(r.capWait()))
	// ±20% jitter
	base *= 1 + 0.2*(2*rand.Float64()-1)
	return time.Duration(math.Max(base, 0))
}

func (r *RetryProvider) capWait() time.Duration {
	if r.config.MaxWait <= 0 {
		return r.config.InitialWait
	}
	return r.config.MaxWait
}
