package providers

import (
	"context"
	"log/slog"
	"time"

	"lineup-service/internal/domain/players"
	"lineup-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a RosterProvider with retry/backoff behavior.
// NotFoundError is terminal and never retried; rate limits honor the
// upstream Retry-After when it exceeds the computed backoff.
type retryingProvider struct {
	inner       RosterProvider
	logger      *slog.Logger
	metrics     *metrics.Recorder
	name        string
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner RosterProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, backoff time.Duration) RosterProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		name:        name,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingProvider) FetchPlayers(ctx context.Context, teamID string) ([]players.Player, error) {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		roster, err := r.inner.FetchPlayers(ctx, teamID)
		r.metrics.RecordProviderAttempt(r.name, time.Since(start), err)
		if err == nil {
			return roster, nil
		}
		lastErr = err

		if _, ok := AsNotFoundError(err); ok {
			return nil, err
		}
		if attempt == r.maxAttempts {
			break
		}

		delay := r.backoffFn(attempt)
		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.name, rlErr.RetryAfter)
			if rlErr.RetryAfter > delay {
				delay = rlErr.RetryAfter
			}
		}

		logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "roster fetch retry",
			"attempt", attempt, "max_attempts", r.maxAttempts, "team_id", teamID, "err", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "roster fetch failed",
		"attempts", r.maxAttempts, "team_id", teamID, "err", lastErr)
	return nil, lastErr
}
