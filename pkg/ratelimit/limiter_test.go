package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestNoopNeverBlocks(t *testing.T) {
	if err := Noop.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

func TestNoopHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Noop.Wait(ctx); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestPerMinuteZeroIsNoop(t *testing.T) {
	if PerMinute(0) != Noop {
		t.Fatalf("expected Noop for zero rate")
	}
	if PerMinute(-5) != Noop {
		t.Fatalf("expected Noop for negative rate")
	}
}

func TestRollingWindowAllowsUpToCapacity(t *testing.T) {
	now := time.Unix(1000, 0)
	l := NewRollingWindow(2, time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		if wait, ok := l.tryReserve(); !ok {
			t.Fatalf("reservation %d denied, wait %v", i, wait)
		}
	}
	if _, ok := l.tryReserve(); ok {
		t.Fatalf("expected third reservation to be denied")
	}
}

func TestRollingWindowFreesAfterWindow(t *testing.T) {
	now := time.Unix(1000, 0)
	l := NewRollingWindow(1, time.Minute)
	l.now = func() time.Time { return now }

	if _, ok := l.tryReserve(); !ok {
		t.Fatalf("first reservation denied")
	}
	wait, ok := l.tryReserve()
	if ok {
		t.Fatalf("expected denial while window full")
	}
	if wait <= 0 || wait > time.Minute {
		t.Fatalf("unexpected wait: %v", wait)
	}

	now = now.Add(time.Minute + time.Second)
	if _, ok := l.tryReserve(); !ok {
		t.Fatalf("expected reservation after window passed")
	}
}

func TestWaitReturnsOnCancel(t *testing.T) {
	l := NewRollingWindow(1, time.Hour)
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx); err == nil {
		t.Fatalf("expected context deadline error")
	}
}
