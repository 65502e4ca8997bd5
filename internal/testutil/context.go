package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds a single unit test when the caller passes no timeout.
const DefaultTimeout = 5 * time.Second

// Context returns a context cancelled on test cleanup. The timeout shrinks
// to fit inside the test binary's own deadline, leaving a second for
// teardown, so a hung test fails with a context error rather than a panic.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if d, ok := t.(interface{ Deadline() (time.Time, bool) }); ok {
		if deadline, ok := d.Deadline(); ok {
			remaining := time.Until(deadline) - time.Second
			if remaining > 0 && remaining < timeout {
				timeout = remaining
			}
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
