// internal/repositories/retry.go
// Retry helper for transient store failures (spec.md §5), mirroring the
// shape of internal/database/connections.go's MySQL-connect retry loop
// but applied to query execution instead of dial.

package repositories

import (
	"context"
	"time"

	"padeltour/internal/apperrors"
)

// WithRetry runs fn up to maxAttempts times, backing off exponentially
// between attempts, and only retries when fn's error is classified as
// apperrors.TransientStore. Any other error, or a cancelled/expired
// context, returns immediately.
func WithRetry(ctx context.Context, maxAttempts int, fn func() error) error {
	backoff := 20 * time.Millisecond
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return apperrors.Wrap(apperrors.DeadlineExceeded, "context ended before retry", err)
		}
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if apperrors.KindOf(lastErr) != apperrors.TransientStore {
			return lastErr
		}
		select {
		case <-ctx.Done():
			return apperrors.Wrap(apperrors.DeadlineExceeded, "context ended while retrying", ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return lastErr
}
