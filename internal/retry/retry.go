// Package retry provides a bounded retry wrapper for remote calls.
//
// Every failure is treated as retryable; the policy makes no distinction
// between transient and permanent errors. The delay before retry n is
// BaseDelay multiplied by n, with no jitter. Sites that need a
// retryable/fatal split later can grow one inside Policy without touching
// callers.
package retry

import (
	"context"
	"log"
	"time"
)

// Policy describes the retry schedule.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BaseDelay is the wait before the first retry; the wait before retry
	// n is n times this value.
	BaseDelay time.Duration
}

// DefaultPolicy matches the backend call schedule: three attempts with a
// two-second base delay.
var DefaultPolicy = Policy{MaxAttempts: 3, BaseDelay: 2 * time.Second}

// Do executes op under the policy, returning its first successful result.
// After MaxAttempts failures the most recent error is returned. The
// inter-attempt wait is context-aware; a canceled context aborts the wait
// and returns the context error.
func Do[T any](ctx context.Context, p Policy, op func() (T, error)) (T, error) {
	var lastErr error
	var zero T

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		result, err := op()
		if err == nil {
			return result, nil
		}

		lastErr = err
		log.Printf("API call failed (attempt %d/%d): %v", attempt, p.MaxAttempts, err)

		if attempt < p.MaxAttempts {
			if err := sleep(ctx, p.BaseDelay*time.Duration(attempt)); err != nil {
				return zero, err
			}
		}
	}

	return zero, lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
