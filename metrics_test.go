package scry

import "testing"

func TestNoOpMetricsProvider_DoesNotPanic(_ *testing.T) {
	var m NoOpMetricsProvider

	m.OnWaitStarted(3)
	m.OnAttempt(1, false)
	m.OnFulfilled(2)
	m.OnRejected("exhausted", 3)
}

func TestWithMetrics_NilKeepsDefault(t *testing.T) {
	cfg := waitConfig{metrics: NoOpMetricsProvider{}}
	WithMetrics(nil)(&cfg)
	if cfg.metrics == nil {
		t.Error("expected nil provider to be ignored")
	}
}
