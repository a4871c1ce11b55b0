package assignments

import (
	"context"
	"errors"
	"time"

	"paquexpress-service/internal/apperr"
	"paquexpress-service/internal/logx"
)

type handler interface {
	Handle(ctx context.Context, e Event) error
}

type counter interface {
	Inc()
}

// RetryConfig controls how often a failed event is reapplied.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryConfig returns the worker retry policy.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{MaxAttempts: 3, BaseDelay: 200 * time.Millisecond, MaxDelay: 2 * time.Second}
}

// Retrying reapplies events that failed for a transient reason.
type Retrying struct {
	next    handler
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetrying wraps next. retries may be nil.
func NewRetrying(next handler, logger logx.Logger, retries counter, cfg RetryConfig) *Retrying {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Retrying{next: next, logger: logger, retries: retries, cfg: cfg}
}

// Handle applies e, retrying with exponential backoff while the error is transient.
func (r *Retrying) Handle(ctx context.Context, e Event) error {
	var lastErr error
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		err := r.next.Handle(ctx, e)
		if err == nil {
			return nil
		}
		lastErr = err
		if ctx.Err() != nil || attempt == r.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(r.cfg.BaseDelay, r.cfg.MaxDelay, attempt)
		if r.retries != nil {
			r.retries.Inc()
		}
		r.logger.Warn("assignment event retry",
			logx.String("tracking_code", e.TrackingCode),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return lastErr
}

// isRetryable is false for events that can never be applied.
func isRetryable(err error) bool {
	switch {
	case errors.Is(err, apperr.ErrInvalid),
		errors.Is(err, apperr.ErrNotFound),
		errors.Is(err, context.Canceled):
		return false
	default:
		return true
	}
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base
	for i := 1; i < attempt && d < max; i++ {
		d *= 2
	}
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
