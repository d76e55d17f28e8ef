/*
Package scry waits for components to appear in a rendered tree.

Rendering is often asynchronous: a component may only show up a frame or two
after the test triggered it, once a promise-like piece of work has finished.
scry polls the tree once per display frame, for a bounded number of frames,
and hands back a Deferred that settles with the first matching node or with
an error once the attempt budget is spent.

# Waiting

Two entry points differ only in the criterion they match on:

	// By tag: the first "button" host node.
	d := scry.WaitForTag(ctx, frames, tree.ByTag, root, "button")

	// By type: the first node rendering a *Dialog component.
	d := scry.WaitForType(ctx, frames, tree.ByType, root,
	    reflect.TypeOf(&Dialog{}),
	    scry.Attempts(5),
	)

	node, err := d.Await(ctx)

The budget defaults to one frame (DefaultAttempts). Attempts(0) rejects
immediately without touching the tree. Budget exhaustion rejects with an
*ExhaustedError, which matches ErrExhausted:

	if errors.Is(err, scry.ErrExhausted) {
	    t.Fatalf("dialog never rendered: %v", err)
	}

An error returned by the query is passed through unchanged and ends the
wait on that frame. Both entry points are thin wrappers over Poll, which
accepts any query closure.

# Frames

A Scheduler runs a callback on the next frame. Each attempt schedules
exactly one callback, and the query runs inside it, so a wait spends one
query per frame and never more.

FrameLoop is the real scheduler: a single goroutine driven by a clockz.Clock
renders a frame every interval (DefaultFrameInterval, 60 Hz) and runs the
callbacks queued before it:

	frames := scry.NewFrameLoop(scry.WithInterval(10 * time.Millisecond))
	if err := frames.Start(ctx); err != nil {
	    return err
	}

ManualScheduler renders a frame only when Tick is called, for fully
deterministic tests.

# Observability

Waits and frame loops emit capitan signals (WaitStarted, WaitAttempted,
WaitFulfilled, WaitExhausted, WaitFailed, WaitMetricsPanicked, FramesStarted,
FramesStopped, FrameCallbackPanicked). Every wait carries a unique KeyWaitID
so concurrent waits can be told apart:

	capitan.Hook(scry.WaitExhausted, func(_ context.Context, e *capitan.Event) {
	    criterion, _ := scry.KeyCriterion.From(e)
	    log.Printf("gave up waiting for %s", criterion)
	})

A MetricsProvider can be attached per wait with WithMetrics.

# Trees

Queries are plain functions. Ready-made ones live in:
  - tree: an in-memory component tree, Live snapshots and YAML/JSON fixtures
  - pkg/dom: HTML documents parsed with golang.org/x/net/html
  - pkg/file: a fixture file re-rendered into a tree.Live on every write
*/
package scry
