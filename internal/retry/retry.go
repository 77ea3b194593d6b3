// Package retry wraps a fallible operation with bounded exponential-backoff
// retry for transient upstream failures. The generative-AI call site is the
// only consumer; nothing else in the system retries.
package retry

import (
	"context"
	"time"
)

const (
	// DefaultMaxRetries bounds how many times a transient failure is retried.
	DefaultMaxRetries = 3
	// DefaultInitialDelay is the wait before the first retry; it doubles on
	// each subsequent attempt.
	DefaultInitialDelay = time.Second
)

// Do executes op, retrying up to maxRetries times when isTransient reports
// the failure as retryable. The delay doubles after every attempt with no
// upper bound. Non-transient errors and exhausted retries propagate the
// operation's error unchanged. Context cancellation interrupts the backoff
// wait and returns ctx.Err().
func Do[T any](ctx context.Context, op func(ctx context.Context) (T, error), maxRetries int, initialDelay time.Duration, isTransient func(error) bool) (T, error) {
	result, err := op(ctx)
	if err == nil {
		return result, nil
	}

	if maxRetries <= 0 || isTransient == nil || !isTransient(err) {
		return result, err
	}

	if waitErr := wait(ctx, initialDelay); waitErr != nil {
		var zero T
		return zero, waitErr
	}

	return Do(ctx, op, maxRetries-1, initialDelay*2, isTransient)
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
