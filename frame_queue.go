package scry

import (
	"context"
	"fmt"
	"sync"

	"github.com/zoobzio/capitan"
)

// frameQueue collects callbacks for the next frame.
type frameQueue struct {
	mu        sync.Mutex
	pending   []func()
	scheduled int
}

func (q *frameQueue) push(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, fn)
	q.scheduled++
}

// drain takes every queued callback, leaving the queue empty for callbacks
// scheduled while the batch runs.
func (q *frameQueue) drain() []func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	batch := q.pending
	q.pending = nil
	return batch
}

func (q *frameQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *frameQueue) total() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.scheduled
}

// renderFrame runs batch in order. A panicking callback is recorded in errs
// and signalled; the remaining callbacks still run.
func renderFrame(ctx context.Context, frame int, batch []func(), errs *ring[error]) {
	for _, fn := range batch {
		invoke(ctx, frame, fn, errs)
	}
}

func invoke(ctx context.Context, frame int, fn func(), errs *ring[error]) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("frame %d: callback panicked: %v", frame, r)
			errs.push(err)
			capitan.Emit(ctx, FrameCallbackPanicked,
				KeyFrame.Field(frame),
				KeyError.Field(err.Error()),
			)
		}
	}()
	fn()
}
