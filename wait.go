package scry

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/zoobzio/capitan"
)

// DefaultAttempts is the attempt budget used when Attempts is not given.
const DefaultAttempts = 1

// TagQuery returns every node in tree whose tag matches, in the order the
// underlying tree defines.
type TagQuery[T, N any] func(tree T, tag string) ([]N, error)

// TypeQuery returns every node in tree whose component type is typ.
type TypeQuery[T, N any] func(tree T, typ reflect.Type) ([]N, error)

// waitConfig holds configuration options for a single wait.
type waitConfig struct {
	Attempts  int `validate:"min=0"`
	criterion string
	metrics   MetricsProvider
}

// WaitOption configures a wait.
type WaitOption func(*waitConfig)

// Attempts sets how many frames to poll before giving up.
// Zero rejects immediately without scheduling a frame.
func Attempts(n int) WaitOption {
	return func(c *waitConfig) {
		c.Attempts = n
	}
}

// WithCriterion sets the description used in signals and in the
// ExhaustedError, e.g. `tag "div"`.
func WithCriterion(desc string) WaitOption {
	return func(c *waitConfig) {
		c.criterion = desc
	}
}

// WithMetrics sets a metrics provider for the wait.
func WithMetrics(m MetricsProvider) WaitOption {
	return func(c *waitConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WaitForTag waits for a node with the given tag to appear in tree.
//
// Once per frame, for up to the attempt budget (default 1), query is run
// against tree. The returned Deferred fulfils with the first node of the
// first non-empty result. If no frame finds a match it rejects with an
// *ExhaustedError naming the tag. An error from query rejects the Deferred
// with that same error and ends the wait.
//
// Example:
//
//	frames := scry.NewFrameLoop()
//	frames.Start(ctx)
//
//	button, err := scry.WaitForTag(ctx, frames, tree.ByTag, root, "button",
//	    scry.Attempts(5),
//	).Await(ctx)
func WaitForTag[T, N any](ctx context.Context, s Scheduler, query TagQuery[T, N], tree T, tag string, opts ...WaitOption) *Deferred[N] {
	var q func() ([]N, error)
	if query != nil {
		q = func() ([]N, error) {
			return query(tree, tag)
		}
	}
	opts = append([]WaitOption{WithCriterion(fmt.Sprintf("tag %q", tag))}, opts...)
	return Poll(ctx, s, q, opts...)
}

// WaitForType waits for a node whose component has type typ to appear in
// tree. It behaves exactly like WaitForTag apart from the query used.
func WaitForType[T, N any](ctx context.Context, s Scheduler, query TypeQuery[T, N], tree T, typ reflect.Type, opts ...WaitOption) *Deferred[N] {
	var q func() ([]N, error)
	if query != nil {
		q = func() ([]N, error) {
			return query(tree, typ)
		}
	}
	opts = append([]WaitOption{WithCriterion(fmt.Sprintf("type %v", typ))}, opts...)
	return Poll(ctx, s, q, opts...)
}

// Poll is the retry routine behind WaitForTag and WaitForType.
//
// Each attempt schedules one frame callback on s; the callback runs query
// once. A non-empty result fulfils the Deferred with its first element, an
// empty result spends one attempt and schedules the next frame. When the
// budget reaches zero the Deferred rejects with an *ExhaustedError.
//
// When ctx is done the wait rejects with ctx.Err() straight away, even if s
// never renders another frame; no further queries run.
//
// MetricsProvider calls are made from frame callbacks and, on cancellation,
// from the goroutine that observes ctx. A panicking provider is recovered and
// reported with WaitMetricsPanicked.
func Poll[N any](ctx context.Context, s Scheduler, query func() ([]N, error), opts ...WaitOption) *Deferred[N] {
	cfg := waitConfig{
		Attempts: DefaultAttempts,
		metrics:  NoOpMetricsProvider{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	w := &wait[N]{
		id:        uuid.NewString(),
		ctx:       ctx,
		scheduler: s,
		query:     query,
		criterion: cfg.criterion,
		attempts:  cfg.Attempts,
		remaining: cfg.Attempts,
		metrics:   cfg.metrics,
		deferred:  newDeferred[N](),
		stop:      func() bool { return false },
	}

	capitan.Emit(ctx, WaitStarted,
		KeyWaitID.Field(w.id),
		KeyCriterion.Field(w.criterion),
		KeyAttempts.Field(w.attempts),
	)
	w.observe(func(m MetricsProvider) { m.OnWaitStarted(w.attempts) })

	switch err := validate.Struct(cfg); {
	case err != nil:
		w.fail("invalid", fmt.Errorf("%w %d: %w", ErrInvalidAttempts, cfg.Attempts, err))
	case query == nil:
		w.fail("invalid", ErrNilQuery)
	case s == nil && cfg.Attempts > 0:
		w.fail("invalid", ErrNilScheduler)
	case cfg.Attempts == 0:
		w.exhaust()
	default:
		w.stop = context.AfterFunc(ctx, w.cancel)
		w.next()
	}

	return w.deferred
}

// wait is the state of one Poll call. Apart from frames, which cancel reads,
// it is only touched from frame callbacks, one at a time.
type wait[N any] struct {
	id        string
	ctx       context.Context
	scheduler Scheduler
	query     func() ([]N, error)
	criterion string
	metrics   MetricsProvider
	deferred  *Deferred[N]
	stop      func() bool

	attempts  int
	remaining int
	frames    atomic.Int64
}

// next schedules the next attempt, or gives up when the budget is spent.
func (w *wait[N]) next() {
	if w.remaining == 0 {
		w.exhaust()
		return
	}
	w.scheduler.ScheduleFrame(w.attempt)
}

// attempt runs on a frame: one query, then settle or schedule again.
func (w *wait[N]) attempt() {
	if w.deferred.State().Settled() {
		return
	}
	frame := int(w.frames.Add(1))

	if err := w.ctx.Err(); err != nil {
		w.fail("canceled", err)
		return
	}

	nodes, err := w.run()
	if err != nil {
		var panicErr *QueryPanicError
		if errors.As(err, &panicErr) {
			w.fail("panic", err)
		} else {
			w.fail("query", err)
		}
		return
	}

	w.observe(func(m MetricsProvider) { m.OnAttempt(frame, len(nodes) > 0) })

	if len(nodes) > 0 {
		w.fulfill(nodes[0])
		return
	}

	w.remaining--
	capitan.Emit(w.ctx, WaitAttempted,
		KeyWaitID.Field(w.id),
		KeyFrame.Field(frame),
		KeyRemaining.Field(w.remaining),
	)
	w.next()
}

// run calls the query, turning a panic into a *QueryPanicError.
func (w *wait[N]) run() (nodes []N, err error) {
	defer func() {
		if r := recover(); r != nil {
			nodes = nil
			err = &QueryPanicError{Value: r}
		}
	}()
	return w.query()
}

func (w *wait[N]) fulfill(node N) {
	if !w.deferred.fulfill(node) {
		return
	}
	w.stop()
	frames := w.frame()
	capitan.Emit(w.ctx, WaitFulfilled,
		KeyWaitID.Field(w.id),
		KeyCriterion.Field(w.criterion),
		KeyFrame.Field(frames),
	)
	w.observe(func(m MetricsProvider) { m.OnFulfilled(frames) })
}

func (w *wait[N]) exhaust() {
	frames := w.frame()
	err := &ExhaustedError{Criterion: w.criterion, Attempts: frames}
	if !w.deferred.reject(err) {
		return
	}
	w.stop()
	capitan.Emit(w.ctx, WaitExhausted,
		KeyWaitID.Field(w.id),
		KeyCriterion.Field(w.criterion),
		KeyAttempts.Field(w.attempts),
	)
	w.observe(func(m MetricsProvider) { m.OnRejected("exhausted", frames) })
}

// fail rejects with err unchanged.
func (w *wait[N]) fail(reason string, err error) {
	if !w.reject(reason, err) {
		return
	}
	w.stop()
}

// cancel runs once ctx is done. It rejects at once, since the scheduler
// may never render the frame that would notice.
func (w *wait[N]) cancel() {
	w.reject("canceled", w.ctx.Err())
}

func (w *wait[N]) reject(reason string, err error) bool {
	if !w.deferred.reject(err) {
		return false
	}
	frames := w.frame()
	capitan.Emit(w.ctx, WaitFailed,
		KeyWaitID.Field(w.id),
		KeyCriterion.Field(w.criterion),
		KeyFrame.Field(frames),
		KeyError.Field(err.Error()),
	)
	w.observe(func(m MetricsProvider) { m.OnRejected(reason, frames) })
	return true
}

// observe calls the metrics provider, recovering a panic so the wait still
// settles.
func (w *wait[N]) observe(fn func(MetricsProvider)) {
	defer func() {
		if r := recover(); r != nil {
			capitan.Emit(w.ctx, WaitMetricsPanicked,
				KeyWaitID.Field(w.id),
				KeyError.Field(fmt.Sprint(r)),
			)
		}
	}()
	fn(w.metrics)
}

func (w *wait[N]) frame() int {
	return int(w.frames.Load())
}
