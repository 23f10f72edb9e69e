package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/stylist/internal/service"
)

var (
	// ErrRateLimit marks an upstream response that throttled the caller.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries is returned once every attempt has failed.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryableError wraps an error with retry-specific metadata.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return &RetryableError{Err: err, Retryable: false}
}

func isPermanent(err error) bool {
	var re *RetryableError
	return errors.As(err, &re) && !re.Retryable
}

func withRetryDefaults(opts service.RetryOptions) service.RetryOptions {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = 100 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 30 * time.Second
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = 2.0
	}
	return opts
}

// WithRetry calls an upstream (provider or catalog) until it succeeds, returns
// a Permanent error, the context ends or opts.MaxAttempts calls have failed.
// A throttled call (ErrRateLimit) waits the full MaxDelay before the next one.
func WithRetry(ctx context.Context, call func() error, opts service.RetryOptions) error {
	opts = withRetryDefaults(opts)
	wait := opts.InitialDelay

	for attempt := 1; ; attempt++ {
		err := call()
		switch {
		case err == nil:
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		case isPermanent(err):
			return err
		case attempt >= opts.MaxAttempts:
			return fmt.Errorf("%w after %d attempts: %v", ErrMaxRetries, attempt, err)
		}

		throttled := errors.Is(err, ErrRateLimit)
		if throttled {
			wait = opts.MaxDelay
		}
		slog.WarnContext(ctx, "upstream call failed, backing off",
			"attempt", attempt,
			"max_attempts", opts.MaxAttempts,
			"throttled", throttled,
			"wait", wait,
			"error", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait = min(time.Duration(float64(wait)*opts.Multiplier), opts.MaxDelay)
	}
}
