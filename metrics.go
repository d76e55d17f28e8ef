package scry

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key wait events. Calls may
// come from a frame callback or, on cancellation, from another goroutine.
type MetricsProvider interface {
	// OnWaitStarted is called when a wait begins with the given budget.
	OnWaitStarted(attempts int)

	// OnAttempt is called after each frame's query. Frame is 1-based.
	OnAttempt(frame int, matched bool)

	// OnFulfilled is called when a wait finds a match after the given
	// number of frames.
	OnFulfilled(frames int)

	// OnRejected is called when a wait ends without a match.
	// Reason is one of "exhausted", "query", "panic", "canceled" or "invalid".
	OnRejected(reason string, frames int)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnWaitStarted(_ int)        {}
func (NoOpMetricsProvider) OnAttempt(_ int, _ bool)    {}
func (NoOpMetricsProvider) OnFulfilled(_ int)          {}
func (NoOpMetricsProvider) OnRejected(_ string, _ int) {}
