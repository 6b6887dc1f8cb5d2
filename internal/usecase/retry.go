package usecase

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"storefront/pkg/errors"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
)

const retryBaseDelay = 50 * time.Millisecond

// Retrier re-runs read-only store calls that failed with a transient error.
// Anything else, including validation and not-found, is returned at once.
type Retrier struct {
	attempts uint64
	base     time.Duration
	metrics  *metrics.Metrics
}

func NewRetrier(attempts uint64, m *metrics.Metrics) *Retrier {
	if attempts == 0 {
		attempts = 1
	}
	return &Retrier{attempts: attempts, base: retryBaseDelay, metrics: m}
}

func (r *Retrier) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if r == nil || r.attempts <= 1 {
		return fn(ctx)
	}

	backoff := retry.WithMaxRetries(r.attempts-1, retry.NewExponential(r.base))
	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := fn(ctx)
		if errors.IsTransient(err) {
			logger.Warn("transient store error (attempt %d/%d): %v", attempt, r.attempts, err)
			if uint64(attempt) < r.attempts {
				r.metrics.IncStoreRetry()
			}
			return retry.RetryableError(err)
		}
		return err
	})
}
