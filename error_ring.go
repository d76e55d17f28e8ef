package scry

import "sync"

// ring is a thread-safe bounded history that keeps the most recent items.
type ring[T any] struct {
	mu    sync.RWMutex
	items []T
	head  int
	count int
}

// newRing creates a ring with the given capacity. A capacity of zero or less
// disables the history and returns nil; all methods are nil-safe.
func newRing[T any](size int) *ring[T] {
	if size <= 0 {
		return nil
	}
	return &ring[T]{items: make([]T, size)}
}

// push records v, evicting the oldest item when full.
func (r *ring[T]) push(v T) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[r.head] = v
	r.head = (r.head + 1) % len(r.items)
	if r.count < len(r.items) {
		r.count++
	}
}

// reset forgets every recorded item.
func (r *ring[T]) reset() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.items)
	r.head = 0
	r.count = 0
}

// snapshot returns the recorded items, oldest first.
func (r *ring[T]) snapshot() []T {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}

	size := len(r.items)
	out := make([]T, r.count)
	start := (r.head - r.count + size) % size
	for i := range out {
		out[i] = r.items[(start+i)%size]
	}
	return out
}
