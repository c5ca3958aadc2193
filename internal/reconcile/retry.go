package reconcile

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"plagrelay/internal/domain"
)

// Policy configures a constant-delay retry loop.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	// Retryable decides whether a failed attempt is worth repeating.
	// A nil Retryable retries every error.
	Retryable func(err error) bool
	// OnRetry runs before the wait that precedes the next attempt.
	OnRetry func(attempt int, err error)
}

// Retry runs op up to p.MaxAttempts times with p.Delay between attempts and
// returns the first success. On exhaustion it returns the last error
// unchanged so callers can still inspect upstream status codes. The wait is
// abandoned when ctx is done.
func Retry[T any](ctx context.Context, p Policy, op func(ctx context.Context, attempt int) (T, error)) (T, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(p.Delay), uint64(maxAttempts-1)),
		ctx,
	)

	attempt := 0
	var lastErr error
	result, err := backoff.RetryNotifyWithData(func() (T, error) {
		attempt++
		res, err := op(ctx, attempt)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if p.Retryable != nil && !p.Retryable(err) {
			return res, backoff.Permanent(err)
		}
		return res, err
	}, b, func(err error, _ time.Duration) {
		if p.OnRetry != nil {
			p.OnRetry(attempt, err)
		}
	})
	if err != nil && lastErr != nil {
		var zero T
		return zero, lastErr
	}
	return result, err
}

// Retryable is the default predicate for upstream calls. Caller mistakes and
// terminal upstream answers do not change between attempts.
func Retryable(err error) bool {
	switch {
	case domain.IsValidation(err),
		errors.Is(err, domain.ErrConfiguration),
		errors.Is(err, domain.ErrSubmissionFailed),
		errors.Is(err, context.Canceled):
		return false
	}
	return true
}
