package testing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zoobzio/scry"
)

func TestWaitFor(t *testing.T) {
	t.Run("condition met immediately", func(t *testing.T) {
		result := WaitFor(t, 100*time.Millisecond, func() bool {
			return true
		})
		if !result {
			t.Error("expected WaitFor to return true")
		}
	})

	t.Run("condition never met", func(t *testing.T) {
		result := WaitFor(t, 50*time.Millisecond, func() bool {
			return false
		})
		if result {
			t.Error("expected WaitFor to return false on timeout")
		}
	})
}

func TestDrive(t *testing.T) {
	s := scry.NewManualScheduler()
	calls := 0
	d := scry.Poll(context.Background(), s, func() ([]string, error) {
		calls++
		if calls == 3 {
			return []string{"found"}, nil
		}
		return nil, nil
	}, scry.Attempts(5))

	ticks := Drive(t, s, d, 10)
	if ticks != 3 {
		t.Errorf("expected 3 ticks, got %d", ticks)
	}
	RequireState(t, d, scry.StateFulfilled)

	if v := RequireFulfilled(t, d, time.Second); v != "found" {
		t.Errorf("expected found, got %q", v)
	}
}

func TestRequireExhausted(t *testing.T) {
	s := scry.NewManualScheduler()
	d := scry.Poll(context.Background(), s, func() ([]int, error) {
		return nil, nil
	}, scry.Attempts(2), scry.WithCriterion(`tag "li"`))

	Drive(t, s, d, 10)

	err := RequireExhausted(t, d, time.Second)
	if err.Criterion != `tag "li"` {
		t.Errorf("expected criterion to be kept, got %q", err.Criterion)
	}
	if err.Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", err.Attempts)
	}
}

func TestRequireRejected(t *testing.T) {
	s := scry.NewManualScheduler()
	want := errors.New("bad tree")
	d := scry.Poll(context.Background(), s, func() ([]int, error) {
		return nil, want
	})

	Drive(t, s, d, 10)

	if err := RequireRejected(t, d, time.Second); !errors.Is(err, want) {
		t.Errorf("expected %v, got %v", want, err)
	}
	RequireState(t, d, scry.StateRejected)
}

func TestRequireFulfilled_AcrossGoroutines(t *testing.T) {
	s := scry.NewManualScheduler()
	d := scry.Poll(context.Background(), s, func() ([]int, error) {
		return []int{42}, nil
	})

	go func() {
		time.Sleep(10 * time.Millisecond)
		s.Tick()
	}()

	if v := RequireFulfilled(t, d, time.Second); v != 42 {
		t.Errorf("expected 42, got %d", v)
	}
}
