// Package ratelimit provides a local rolling-window limiter for outbound
// provider requests.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter gates outbound requests. Wait blocks until a slot is available or
// the context is cancelled.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Noop is a Limiter that never blocks.
var Noop Limiter = noopLimiter{}

type noopLimiter struct{}

func (noopLimiter) Wait(ctx context.Context) error {
	return ctx.Err()
}

// RollingWindow allows at most capacity requests per window.
type RollingWindow struct {
	capacity int
	window   time.Duration
	now      func() time.Time

	mu     sync.Mutex
	starts []time.Time
}

// NewRollingWindow builds a limiter with the given capacity and window.
func NewRollingWindow(capacity int, window time.Duration) *RollingWindow {
	return &RollingWindow{
		capacity: capacity,
		window:   window,
		now:      time.Now,
	}
}

// PerMinute returns a rolling one-minute limiter, or Noop when the rate is
// zero or negative.
func PerMinute(requestsPerMinute int) Limiter {
	if requestsPerMinute <= 0 {
		return Noop
	}
	return NewRollingWindow(requestsPerMinute, time.Minute)
}

// Wait blocks until the rolling window has room for one more request.
func (l *RollingWindow) Wait(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		wait, ok := l.tryReserve()
		if ok {
			return nil
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// tryReserve records a request start if capacity allows, otherwise returns
// how long until the oldest recorded start leaves the window.
func (l *RollingWindow) tryReserve() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)
	kept := l.starts[:0]
	for _, start := range l.starts {
		if start.After(cutoff) {
			kept = append(kept, start)
		}
	}
	l.starts = kept

	if len(l.starts) < l.capacity {
		l.starts = append(l.starts, now)
		return 0, true
	}
	return l.starts[0].Sub(cutoff), false
}
