package scry

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// DefaultFrameInterval is the default time between frames (60 Hz).
const DefaultFrameInterval = time.Second / 60

// DefaultErrorHistory is the number of callback panics a FrameLoop remembers.
const DefaultErrorHistory = 16

// validate is the shared validator instance.
var validate = validator.New()

// FrameLoop is a Scheduler driven by a clock. A single goroutine renders one
// frame per interval and runs, in order, every callback scheduled before that
// frame began. Callbacks scheduled while a frame runs go to the next frame.
type FrameLoop struct {
	clock    clockz.Clock
	interval time.Duration
	cfg      frameConfig

	queue frameQueue

	mu      sync.Mutex
	started bool

	frame  atomic.Int64
	errors *ring[error]
}

// frameConfig holds configuration options for a FrameLoop.
type frameConfig struct {
	Interval     time.Duration `validate:"gt=0"`
	ErrorHistory int           `validate:"min=0"`
	clock        clockz.Clock
}

// FrameOption configures a FrameLoop.
type FrameOption func(*frameConfig)

// WithInterval sets the time between frames.
func WithInterval(d time.Duration) FrameOption {
	return func(c *frameConfig) {
		c.Interval = d
	}
}

// WithClock sets a custom clock for frame timing.
// Use this with clockz.FakeClock for deterministic frame testing.
func WithClock(clock clockz.Clock) FrameOption {
	return func(c *frameConfig) {
		c.clock = clock
	}
}

// WithErrorHistory sets how many callback panics are kept for Errors.
// Zero disables the history.
func WithErrorHistory(n int) FrameOption {
	return func(c *frameConfig) {
		c.ErrorHistory = n
	}
}

// NewFrameLoop creates a FrameLoop. It does not tick until Start is called.
func NewFrameLoop(opts ...FrameOption) *FrameLoop {
	cfg := frameConfig{
		Interval:     DefaultFrameInterval,
		ErrorHistory: DefaultErrorHistory,
		clock:        clockz.RealClock,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &FrameLoop{
		clock:    cfg.clock,
		interval: cfg.Interval,
		cfg:      cfg,
		errors:   newRing[error](cfg.ErrorHistory),
	}
}

// Start begins rendering frames until ctx is canceled. It returns an error if
// the configuration is invalid or the loop was already started.
func (l *FrameLoop) Start(ctx context.Context) error {
	if err := validate.Struct(l.cfg); err != nil {
		return fmt.Errorf("invalid frame loop config: %w", err)
	}
	if l.clock == nil {
		return fmt.Errorf("invalid frame loop config: nil clock")
	}

	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return ErrLoopStarted
	}
	l.started = true
	l.mu.Unlock()

	timer := l.clock.NewTimer(l.interval)

	capitan.Emit(ctx, FramesStarted,
		KeyInterval.Field(l.interval),
	)

	go l.run(ctx, timer)
	return nil
}

// ScheduleFrame queues fn for the next frame.
func (l *FrameLoop) ScheduleFrame(fn func()) {
	l.queue.push(fn)
}

// Frame returns the number of frames rendered so far.
func (l *FrameLoop) Frame() int {
	return int(l.frame.Load())
}

// Errors returns recent callback panics, oldest first.
func (l *FrameLoop) Errors() []error {
	return l.errors.snapshot()
}

// ClearErrors forgets the recorded callback panics.
func (l *FrameLoop) ClearErrors() {
	l.errors.reset()
}

// run renders a frame every time the timer fires.
func (l *FrameLoop) run(ctx context.Context, timer clockz.Timer) {
	defer func() {
		capitan.Emit(ctx, FramesStopped,
			KeyFrame.Field(l.Frame()),
		)
	}()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case <-timer.C():
			l.render(ctx)
			timer.Reset(l.interval)
		}
	}
}

// render runs the callbacks queued before this frame.
func (l *FrameLoop) render(ctx context.Context) {
	batch := l.queue.drain()
	frame := int(l.frame.Add(1))
	renderFrame(ctx, frame, batch, l.errors)
}
