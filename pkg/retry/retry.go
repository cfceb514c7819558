// Package retry provides a bounded fixed-backoff retry combinator.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrAttemptsExhausted wraps the final error once every attempt has failed.
var ErrAttemptsExhausted = errors.New("retry attempts exhausted")

// Do runs op up to attempts times, sleeping backoff between failures.
// It returns nil on the first success. When all attempts fail, the returned
// error wraps both ErrAttemptsExhausted and the last error from op.
// Context cancellation is honored while sleeping.
func Do(ctx context.Context, attempts int, backoff time.Duration, op func() error) error {
	if attempts < 1 {
		return fmt.Errorf("retry: attempts must be >= 1, got %d", attempts)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if lastErr = op(); lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, attempts, lastErr)
}
