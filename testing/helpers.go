// Package testing provides test utilities and helpers for scry waits.
package testing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zoobzio/scry"
)

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// Drive ticks s until d settles, failing the test if it is still pending
// after maxTicks frames. Returns the number of ticks used.
func Drive[T any](t *testing.T, s *scry.ManualScheduler, d *scry.Deferred[T], maxTicks int) int {
	t.Helper()
	ticks := 0
	for !d.State().Settled() {
		if ticks == maxTicks {
			t.Fatalf("wait still pending after %d frames", maxTicks)
		}
		s.Tick()
		ticks++
	}
	return ticks
}

// RequireState fails the test immediately if d is not in the expected state.
func RequireState[T any](t *testing.T, d *scry.Deferred[T], expected scry.State) {
	t.Helper()
	if got := d.State(); got != expected {
		t.Fatalf("expected state %s, got %s", expected, got)
	}
}

// RequireFulfilled waits up to timeout for d to settle and fails the test
// unless it was fulfilled. Returns the matched node.
func RequireFulfilled[T any](t *testing.T, d *scry.Deferred[T], timeout time.Duration) T {
	t.Helper()
	v, err := await(t, d, timeout)
	if err != nil {
		t.Fatalf("expected wait to be fulfilled, got error: %v", err)
	}
	return v
}

// RequireRejected waits up to timeout for d to settle and fails the test
// unless it was rejected. Returns the rejection error.
func RequireRejected[T any](t *testing.T, d *scry.Deferred[T], timeout time.Duration) error {
	t.Helper()
	v, err := await(t, d, timeout)
	if err == nil {
		t.Fatalf("expected wait to be rejected, got %v", v)
	}
	return err
}

// RequireExhausted is RequireRejected that also requires the attempt budget
// to have run out, rather than a query error.
func RequireExhausted[T any](t *testing.T, d *scry.Deferred[T], timeout time.Duration) *scry.ExhaustedError {
	t.Helper()
	err := RequireRejected(t, d, timeout)
	var exhausted *scry.ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected budget exhaustion, got: %v", err)
	}
	return exhausted
}

func await[T any](t *testing.T, d *scry.Deferred[T], timeout time.Duration) (T, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	v, err := d.Await(ctx)
	if ctx.Err() == nil {
		return v, err
	}
	v, ok, err := d.Result()
	if !ok {
		t.Fatalf("wait still pending after %s", timeout)
	}
	return v, err
}
