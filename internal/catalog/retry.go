package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// retryPolicy retries transient remote failures with exponential backoff.
// The clock is injected so tests can drive the backoff with a fake clock.
type retryPolicy struct {
	attempts  int
	baseDelay time.Duration
	maxDelay  time.Duration
	clock     clockwork.Clock
}

func (p retryPolicy) do(ctx context.Context, op string, fn func() error) error {
	delay := p.baseDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || attempt >= p.attempts || !retryable(err) {
			return err
		}

		slog.WarnContext(ctx, "transient catalog failure, retrying",
			"op", op, "attempt", attempt, "delay", delay, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.clock.After(delay):
		}

		delay *= 2
		if delay > p.maxDelay {
			delay = p.maxDelay
		}
	}
}

// retryable classifies an error as transient. Server-side 5xx responses and
// transport errors are worth another attempt; rejected requests, empty
// collections, and cancellation are terminal.
func retryable(err error) bool {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return false
	}
	if errors.Is(err, ErrEmptyCollection) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
