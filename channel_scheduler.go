package scry

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/zoobzio/capitan"
)

// ChannelScheduler is a Scheduler whose frames are driven by an existing
// channel: every value received renders one frame. Use it when the host
// already delivers refresh notifications, e.g. a renderer's vsync channel or
// a time.Ticker.
type ChannelScheduler[V any] struct {
	ticks <-chan V
	queue frameQueue

	mu      sync.Mutex
	started bool
	done    chan struct{}

	frame  atomic.Int64
	errors *ring[error]
}

// NewChannelScheduler creates a ChannelScheduler fed by ticks.
func NewChannelScheduler[V any](ticks <-chan V) *ChannelScheduler[V] {
	return &ChannelScheduler[V]{
		ticks:  ticks,
		done:   make(chan struct{}),
		errors: newRing[error](DefaultErrorHistory),
	}
}

// Start begins rendering a frame per received value. Rendering stops when ctx
// is canceled or the channel is closed; callbacks still queued then never run.
func (c *ChannelScheduler[V]) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return ErrLoopStarted
	}
	c.started = true
	c.mu.Unlock()

	capitan.Emit(ctx, FramesStarted)

	go c.run(ctx)
	return nil
}

// ScheduleFrame queues fn for the next received value.
func (c *ChannelScheduler[V]) ScheduleFrame(fn func()) {
	c.queue.push(fn)
}

// Frame returns the number of frames rendered so far.
func (c *ChannelScheduler[V]) Frame() int {
	return int(c.frame.Load())
}

// Errors returns recent callback panics, oldest first.
func (c *ChannelScheduler[V]) Errors() []error {
	return c.errors.snapshot()
}

// ClearErrors forgets the recorded callback panics.
func (c *ChannelScheduler[V]) ClearErrors() {
	c.errors.reset()
}

// Done is closed once the scheduler stops rendering.
func (c *ChannelScheduler[V]) Done() <-chan struct{} {
	return c.done
}

func (c *ChannelScheduler[V]) run(ctx context.Context) {
	defer func() {
		close(c.done)
		capitan.Emit(ctx, FramesStopped,
			KeyFrame.Field(c.Frame()),
		)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case _, ok := <-c.ticks:
			if !ok {
				return
			}
			batch := c.queue.drain()
			frame := int(c.frame.Add(1))
			renderFrame(ctx, frame, batch, c.errors)
		}
	}
}
