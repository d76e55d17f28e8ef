package scry

// Scheduler runs callbacks on the next display frame.
//
// Implementations must invoke fn exactly once, on a later frame. fn must never
// run synchronously inside ScheduleFrame: waits rely on that to advance one
// attempt per frame without growing the stack.
type Scheduler interface {
	ScheduleFrame(fn func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(fn func())

// ScheduleFrame calls f(fn).
func (f SchedulerFunc) ScheduleFrame(fn func()) {
	f(fn)
}

// Ensure implementations satisfy Scheduler.
var (
	_ Scheduler = SchedulerFunc(nil)
	_ Scheduler = (*ManualScheduler)(nil)
	_ Scheduler = (*FrameLoop)(nil)
	_ Scheduler = (*ChannelScheduler[struct{}])(nil)
)
