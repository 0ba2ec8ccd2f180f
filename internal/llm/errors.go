package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrRateLimit is a 429 from the provider. RetryAfter is zero when the
// provider gave no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("tutor model rate limited, retry in %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("tutor model rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse is a structured reply that is not JSON or does not
// match the request schema. Content keeps the raw reply for the event log.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("unusable tutor reply: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable is a provider outage, a network failure or an
// empty mock queue.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "tutor model unavailable"
	}
	return fmt.Sprintf("tutor model unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded is a structured reply cut off at MaxTokens.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("tutor reply truncated at the token limit after %d bytes", len(e.Content))
}

// checkTruncated rejects structured replies cut off at the token limit.
// Truncated plain text is still usable and passes through.
func checkTruncated(req Request, text, stop string) error {
	if req.Schema != nil && stop == "max_tokens" {
		return &ErrMaxTokensExceeded{Content: json.RawMessage(text)}
	}
	return nil
}

// retryKind says how the retry layer treats a failed Generate call.
type retryKind int

const (
	retryNever     retryKind = iota // give up at once
	retryOnce                       // ask again a single time
	retryRateLimit                  // wait out the limit
	retryTransient                  // back off and try again
)

func classifyRetry(err error) retryKind {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return retryNever
	}
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return retryNever
	}
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		return retryOnce
	}
	var rl *ErrRateLimit
	if errors.As(err, &rl) {
		return retryRateLimit
	}
	return retryTransient
}
