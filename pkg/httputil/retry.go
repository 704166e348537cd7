package httputil

import (
	"context"
	"errors"
	"math"
	"net"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/matzehuels/mcp-registry/pkg/errors"
	"github.com/matzehuels/mcp-registry/pkg/observability"
)

// Default retry settings.
const (
	DefaultMaxRetries    = 3
	DefaultBaseDelay     = time.Second
	DefaultBackoffFactor = 2.0
	DefaultMaxDelay      = 30 * time.Second
)

// Strategy configures [Execute]. A Strategy is a plain value: it is never
// mutated by Execute and may be shared by concurrent calls.
type Strategy struct {
	// MaxRetries is the number of retries after the first attempt.
	// Execute invokes the operation at most MaxRetries+1 times.
	MaxRetries int

	// BaseDelay is the wait after the first failed attempt.
	BaseDelay time.Duration

	// BackoffFactor multiplies the wait after each further failure.
	BackoffFactor float64

	// MaxDelay caps a single wait. Zero means uncapped.
	MaxDelay time.Duration
}

// DefaultStrategy returns 3 retries starting at 1 second, doubling each time,
// with single waits capped at 30 seconds.
func DefaultStrategy() Strategy {
	return Strategy{
		MaxRetries:    DefaultMaxRetries,
		BaseDelay:     DefaultBaseDelay,
		BackoffFactor: DefaultBackoffFactor,
		MaxDelay:      DefaultMaxDelay,
	}
}

// Validate checks the strategy constraints: MaxRetries >= 0, BaseDelay > 0,
// BackoffFactor >= 1 and MaxDelay >= 0.
func (s Strategy) Validate() error {
	switch {
	case s.MaxRetries < 0:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "max retries must be >= 0, got %d", s.MaxRetries)
	case s.BaseDelay <= 0:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "retry delay must be > 0, got %s", s.BaseDelay)
	case s.BackoffFactor < 1 || math.IsNaN(s.BackoffFactor):
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "backoff factor must be >= 1, got %g", s.BackoffFactor)
	case s.MaxDelay < 0:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "max retry delay must be >= 0, got %s", s.MaxDelay)
	}
	return nil
}

// ShouldRetry reports whether a failure on the given 0-based attempt earns
// another attempt. It is false once attempt >= MaxRetries, and otherwise
// follows [IsRetryable].
func (s Strategy) ShouldRetry(attempt int, err error) bool {
	if attempt >= s.MaxRetries {
		return false
	}
	return IsRetryable(err)
}

// Delay returns the wait after the given 0-based attempt failed:
// BaseDelay * BackoffFactor^attempt, limited by MaxDelay when set.
func (s Strategy) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := float64(s.BaseDelay) * math.Pow(s.BackoffFactor, float64(attempt))
	if s.MaxDelay > 0 && d > float64(s.MaxDelay) {
		return s.MaxDelay
	}
	if d >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d)
}

// Budget returns the longest time [Execute] can take when each attempt is
// bounded by perAttempt: every attempt timing out plus every wait. It is zero,
// meaning unbounded, when perAttempt is not positive or the sum overflows.
func (s Strategy) Budget(perAttempt time.Duration) time.Duration {
	if perAttempt <= 0 || s.MaxRetries < 0 {
		return 0
	}
	total := perAttempt
	for i := range s.MaxRetries {
		step := perAttempt + s.Delay(i)
		if step < 0 || total > math.MaxInt64-step {
			return 0
		}
		total += step
	}
	return total
}

// IsRetryable classifies a failure independently of the attempt budget.
//
// Transport errors and errors marked with [Retryable] are retryable. A
// [StatusError] is retryable for 5xx and 429 only. Cancellation of the
// caller's context is never retried. Any other net.Error is treated as a
// transport failure; everything else is terminal.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.As(err, new(*TransportError)) || errors.As(err, new(*RetryableError)) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Retryable()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var ne net.Error
	return errors.As(err, &ne)
}

// Execute runs op until it succeeds, fails with a terminal error, or the
// strategy's attempt budget is spent.
//
// Attempts run one after another. Between a retryable failure and the next
// attempt Execute waits for [Strategy.Delay]; cancelling ctx aborts the wait
// and Execute returns ctx.Err(). When attempts are exhausted or a failure is
// terminal, the last error is returned exactly as op returned it.
//
// The name identifies the operation in debug logs, which go to the logger
// stored in ctx (see log.WithContext).
func Execute[T any](ctx context.Context, s Strategy, name string, op func(context.Context) (T, error)) (T, error) {
	var zero T
	logger := log.FromContext(ctx)
	total := s.MaxRetries + 1
	var lastErr error

	for attempt := 0; attempt < total; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if !s.ShouldRetry(attempt, err) {
			if attempt == s.MaxRetries {
				logger.Debug("final attempt failed", "op", name, "attempt", attempt+1, "max", total, "err", err)
			} else {
				logger.Debug("attempt failed, not retrying", "op", name, "attempt", attempt+1, "max", total, "err", err)
			}
			break
		}

		delay := s.Delay(attempt)
		logger.Debug("attempt failed, retrying", "op", name, "attempt", attempt+1, "max", total, "delay", delay, "err", err)
		observability.Retry().OnRetry(ctx, name, attempt+1, delay, err)

		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
	}

	if lastErr != nil {
		return zero, lastErr
	}
	return zero, apperrors.Wrap(apperrors.ErrCodeInternal, ErrNoAttempts, "%s", name)
}

// Retry is [Execute] for operations without a result value.
func Retry(ctx context.Context, s Strategy, name string, fn func(context.Context) error) error {
	_, err := Execute(ctx, s, name, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
