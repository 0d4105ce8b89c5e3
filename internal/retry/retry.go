// Package retry runs an operation under a bounded attempt policy with a
// pluggable delay function and clock, so delays can be simulated in tests.
package retry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrExhausted is returned when every attempt failed
var ErrExhausted = errors.New("retry attempts exhausted")

// DelayFunc returns how long to wait after the given failed attempt (1-based).
type DelayFunc func(attempt int) time.Duration

// Fixed waits the same duration between every attempt.
func Fixed(d time.Duration) DelayFunc {
	return func(int) time.Duration { return d }
}

// Clock abstracts waiting so tests can advance time without sleeping.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

// RealClock waits on a timer and returns early if ctx is done.
func RealClock() Clock {
	return realClock{}
}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// SimulatedClock records requested waits and returns immediately.
// The zero value is ready to use.
type SimulatedClock struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

func (c *SimulatedClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	return nil
}

// Sleeps returns the waits requested so far, in order.
func (c *SimulatedClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.sleeps))
	copy(out, c.sleeps)
	return out
}

// Elapsed is the sum of all requested waits.
func (c *SimulatedClock) Elapsed() time.Duration {
	var total time.Duration
	for _, d := range c.Sleeps() {
		total += d
	}
	return total
}

// Policy bounds how an operation is retried.
type Policy struct {
	MaxAttempts int
	Delay       DelayFunc
	Clock       Clock

	// OnRetry is called before waiting after a failed attempt, if set.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// Do calls op until it succeeds or MaxAttempts is reached. It returns nil on
// success, ctx.Err() if the context ends first, and an error wrapping both
// ErrExhausted and the last failure otherwise.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context, attempt int) error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	delay := p.Delay
	if delay == nil {
		delay = Fixed(0)
	}
	clock := p.Clock
	if clock == nil {
		clock = RealClock()
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx, attempt)
		if lastErr == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if attempt == maxAttempts {
			break
		}

		d := delay(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt, d, lastErr)
		}
		if err := clock.Sleep(ctx, d); err != nil {
			return err
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrExhausted, maxAttempts, lastErr)
}
