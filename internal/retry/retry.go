// Package retry runs idempotent operations with exponential backoff.
// Only read operations go through it: a mutating request that times out
// may have committed server-side, so repeating it can turn into a
// spurious duplicate-enrollment rejection.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// ErrContextCanceled is returned when the context ends during a wait.
var ErrContextCanceled = errors.New("context canceled during retry")

// Config contains retry configuration.
type Config struct {
	// MaxRetries is the number of attempts after the initial one.
	MaxRetries int
	// InitialInterval is the first backoff interval.
	InitialInterval time.Duration
	// MaxInterval caps the backoff interval.
	MaxInterval time.Duration
	// Multiplier grows the interval after each retry.
	Multiplier float64
	// JitterFactor (0-1) randomizes each interval by that fraction.
	JitterFactor float64
}

// DefaultConfig returns a short backoff suited to interactive reads:
// 250ms, 500ms, 1s (capped).
func DefaultConfig() *Config {
	return &Config{
		MaxRetries:      2,
		InitialInterval: 250 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		Multiplier:      2.0,
		JitterFactor:    0.1,
	}
}

// Operation is the function being retried.
type Operation func(ctx context.Context) error

// PermanentError wraps an error that must not be retried.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent marks an error as not retryable.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// Retrier executes operations with exponential backoff.
type Retrier struct {
	config *Config
}

// New creates a Retrier, filling zero config values with defaults.
func New(config *Config) *Retrier {
	if config == nil {
		config = DefaultConfig()
	}
	if config.InitialInterval <= 0 {
		config.InitialInterval = 250 * time.Millisecond
	}
	if config.MaxInterval <= 0 {
		config.MaxInterval = 2 * time.Second
	}
	if config.Multiplier <= 0 {
		config.Multiplier = 2.0
	}
	if config.JitterFactor < 0 {
		config.JitterFactor = 0
	}
	if config.JitterFactor > 1 {
		config.JitterFactor = 1
	}
	return &Retrier{config: config}
}

// Do executes op, retrying on any non-permanent error until MaxRetries
// is exhausted or the context ends. Returns the last error.
func (r *Retrier) Do(ctx context.Context, op Operation) error {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return ErrContextCanceled
		}

		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		var permErr *PermanentError
		if errors.As(err, &permErr) {
			return permErr.Err
		}

		if attempt == r.config.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ErrContextCanceled
		case <-time.After(r.calculateInterval(attempt)):
		}
	}
	return lastErr
}

func (r *Retrier) calculateInterval(attempt int) time.Duration {
	interval := float64(r.config.InitialInterval) * math.Pow(r.config.Multiplier, float64(attempt))
	if interval > float64(r.config.MaxInterval) {
		interval = float64(r.config.MaxInterval)
	}
	if r.config.JitterFactor > 0 {
		jitter := interval * r.config.JitterFactor
		interval += (rand.Float64()*2 - 1) * jitter
	}
	if interval < 0 {
		interval = 0
	}
	return time.Duration(interval)
}
