package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
	Backoff     bool // exponential: Delay, 2*Delay, 4*Delay...
}

// WithRetry runs fn until it succeeds, attempts run out or ctx ends.
// MaxAttempts below 1 is treated as a single attempt.
func WithRetry(ctx context.Context, config RetryConfig, fn func() error) error {
	attempts := config.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		delay := config.Delay
		if config.Backoff {
			delay = config.Delay << (attempt - 1)
		}
		slog.Debug("Retrying", "attempt", attempt, "max", attempts, "wait", delay, "error", lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	if attempts == 1 {
		return lastErr
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}
