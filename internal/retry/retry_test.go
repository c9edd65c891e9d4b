package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() *Config {
	return &Config{
		MaxRetries:      2,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		Multiplier:      2.0,
	}
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	r := New(fastConfig())
	calls := 0

	err := r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesTransientErrors(t *testing.T) {
	r := New(fastConfig())
	calls := 0

	err := r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoReturnsLastErrorWhenExhausted(t *testing.T) {
	r := New(fastConfig())
	calls := 0
	transient := errors.New("still down")

	err := r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return transient
	})

	assert.ErrorIs(t, err, transient)
	assert.Equal(t, 3, calls, "initial attempt plus two retries")
}

func TestDoStopsOnPermanentError(t *testing.T) {
	r := New(fastConfig())
	calls := 0
	boom := errors.New("404")

	err := r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return Permanent(boom)
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)

	var permErr *PermanentError
	assert.False(t, errors.As(err, &permErr), "the wrapper is stripped before returning")
}

func TestPermanentNilIsNil(t *testing.T) {
	assert.NoError(t, Permanent(nil))
}

func TestDoHonorsContextCancellation(t *testing.T) {
	r := New(&Config{MaxRetries: 5, InitialInterval: 50 * time.Millisecond, MaxInterval: time.Second, Multiplier: 2})
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	errCh := make(chan error, 1)
	go func() {
		errCh <- r.Do(ctx, func(ctx context.Context) error {
			calls++
			return errors.New("transient")
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrContextCanceled)
	case <-time.After(time.Second):
		t.Fatal("Do did not return after cancellation")
	}
}

func TestNewFillsZeroValues(t *testing.T) {
	r := New(&Config{MaxRetries: 1})

	assert.Equal(t, 250*time.Millisecond, r.config.InitialInterval)
	assert.Equal(t, 2*time.Second, r.config.MaxInterval)
	assert.Equal(t, 2.0, r.config.Multiplier)
}

func TestCalculateIntervalIsCapped(t *testing.T) {
	r := New(&Config{
		MaxRetries:      10,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     300 * time.Millisecond,
		Multiplier:      2.0,
	})

	assert.Equal(t, 100*time.Millisecond, r.calculateInterval(0))
	assert.Equal(t, 200*time.Millisecond, r.calculateInterval(1))
	assert.Equal(t, 300*time.Millisecond, r.calculateInterval(2), "growth stops at the cap")
	assert.Equal(t, 300*time.Millisecond, r.calculateInterval(8))
}

func TestCalculateIntervalJitterStaysInBounds(t *testing.T) {
	r := New(&Config{
		MaxRetries:      1,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     time.Second,
		Multiplier:      2.0,
		JitterFactor:    0.5,
	})

	for i := 0; i < 50; i++ {
		got := r.calculateInterval(0)
		assert.GreaterOrEqual(t, got, 50*time.Millisecond)
		assert.LessOrEqual(t, got, 150*time.Millisecond)
	}
}
