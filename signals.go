package scry

import "github.com/zoobzio/capitan"

// Wait lifecycle signals.
var (
	// WaitStarted is emitted when a wait begins polling.
	WaitStarted = capitan.NewSignal(
		"scry.wait.started",
		"Wait for rendered node started",
	)

	// WaitAttempted is emitted after each frame's query that found nothing.
	WaitAttempted = capitan.NewSignal(
		"scry.wait.attempted",
		"Frame query found no match",
	)

	// WaitFulfilled is emitted when a matching node is found.
	WaitFulfilled = capitan.NewSignal(
		"scry.wait.fulfilled",
		"Matching node found",
	)

	// WaitExhausted is emitted when the attempt budget runs out.
	WaitExhausted = capitan.NewSignal(
		"scry.wait.exhausted",
		"Gave up waiting for node",
	)

	// WaitFailed is emitted when a wait ends on a query error, a panic,
	// invalid options or context cancellation.
	WaitFailed = capitan.NewSignal(
		"scry.wait.failed",
		"Wait failed",
	)

	// WaitMetricsPanicked is emitted when a MetricsProvider panics.
	WaitMetricsPanicked = capitan.NewSignal(
		"scry.wait.metrics.panicked",
		"Metrics provider panicked",
	)
)

// Frame loop signals.
var (
	// FramesStarted is emitted when a FrameLoop begins ticking.
	FramesStarted = capitan.NewSignal(
		"scry.frames.started",
		"Frame loop started",
	)

	// FramesStopped is emitted when a FrameLoop stops ticking.
	FramesStopped = capitan.NewSignal(
		"scry.frames.stopped",
		"Frame loop stopped",
	)

	// FrameCallbackPanicked is emitted when a frame callback panics.
	FrameCallbackPanicked = capitan.NewSignal(
		"scry.frames.callback.panicked",
		"Frame callback panicked",
	)
)
