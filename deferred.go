package scry

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deferred is a value that settles at most once, either fulfilled with a
// result or rejected with an error.
type Deferred[T any] struct {
	once  sync.Once
	done  chan struct{}
	state atomic.Int32

	value T
	err   error
}

func newDeferred[T any]() *Deferred[T] {
	return &Deferred[T]{done: make(chan struct{})}
}

// State returns the current settlement state.
func (d *Deferred[T]) State() State {
	return State(d.state.Load())
}

// Done returns a channel that is closed once the Deferred settles.
func (d *Deferred[T]) Done() <-chan struct{} {
	return d.done
}

// Await blocks until the Deferred settles or ctx is done. If ctx ends first
// the Deferred keeps running; only the caller stops waiting.
func (d *Deferred[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-d.done:
		return d.value, d.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result returns the settled value and error without blocking. ok is false
// while the Deferred is pending.
func (d *Deferred[T]) Result() (value T, ok bool, err error) {
	select {
	case <-d.done:
		return d.value, true, d.err
	default:
		var zero T
		return zero, false, nil
	}
}

// fulfill settles with v. It reports whether this call settled the Deferred.
func (d *Deferred[T]) fulfill(v T) bool {
	return d.settle(StateFulfilled, v, nil)
}

// reject settles with err. It reports whether this call settled the Deferred.
func (d *Deferred[T]) reject(err error) bool {
	var zero T
	return d.settle(StateRejected, zero, err)
}

func (d *Deferred[T]) settle(state State, v T, err error) bool {
	settled := false
	d.once.Do(func() {
		d.value = v
		d.err = err
		d.state.Store(int32(state))
		close(d.done)
		settled = true
	})
	return settled
}
