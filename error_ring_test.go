package scry

import (
	"errors"
	"testing"
)

func TestRing_NilSafe(t *testing.T) {
	var r *ring[error]

	r.push(errors.New("test"))
	r.reset()

	if r.snapshot() != nil {
		t.Error("expected nil from nil ring")
	}
}

func TestRing_DisabledSizes(t *testing.T) {
	if newRing[error](0) != nil {
		t.Error("expected nil ring for size 0")
	}
	if newRing[error](-1) != nil {
		t.Error("expected nil ring for negative size")
	}
}

func TestRing_FillsWithoutWrapping(t *testing.T) {
	r := newRing[error](3)
	r.push(errors.New("error1"))
	r.push(errors.New("error2"))

	errs := r.snapshot()
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(errs))
	}
	if errs[0].Error() != "error1" || errs[1].Error() != "error2" {
		t.Errorf("unexpected order: %v", errs)
	}
}

func TestRing_EvictsOldest(t *testing.T) {
	r := newRing[int](3)
	for i := 1; i <= 5; i++ {
		r.push(i)
	}

	got := r.snapshot()
	want := []int{3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestRing_Reset(t *testing.T) {
	r := newRing[int](2)
	r.push(1)
	r.push(2)
	r.reset()

	if got := r.snapshot(); got != nil {
		t.Errorf("expected nil after reset, got %v", got)
	}

	r.push(7)
	if got := r.snapshot(); len(got) != 1 || got[0] != 7 {
		t.Errorf("expected [7], got %v", got)
	}
}
