package scry

import "sync/atomic"

// ManualScheduler is a Scheduler whose frames are advanced explicitly with
// Tick. Use it for deterministic tests: nothing runs until the test ticks.
// Panics raised by callbacks propagate out of Tick.
type ManualScheduler struct {
	queue  frameQueue
	frames atomic.Int64
}

// NewManualScheduler creates a ManualScheduler with no pending callbacks.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// ScheduleFrame queues fn for the next Tick.
func (m *ManualScheduler) ScheduleFrame(fn func()) {
	m.queue.push(fn)
}

// Tick renders one frame: every callback queued before the call runs, in
// the order it was scheduled. Callbacks scheduled while the frame runs are
// left for the next Tick. Tick returns the number of callbacks run.
func (m *ManualScheduler) Tick() int {
	batch := m.queue.drain()
	m.frames.Add(1)

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Pending returns the number of callbacks waiting for the next Tick.
func (m *ManualScheduler) Pending() int {
	return m.queue.len()
}

// Scheduled returns the total number of ScheduleFrame calls.
func (m *ManualScheduler) Scheduled() int {
	return m.queue.total()
}

// Frames returns the number of Ticks so far.
func (m *ManualScheduler) Frames() int {
	return int(m.frames.Load())
}
