package scry

import (
	"errors"
	"fmt"
)

var (
	// ErrExhausted matches every *ExhaustedError.
	ErrExhausted = errors.New("scry: gave up waiting for component")

	// ErrInvalidAttempts is returned when the attempt budget is negative.
	ErrInvalidAttempts = errors.New("scry: invalid attempt budget")

	// ErrNilQuery is returned when a wait is started without a query.
	ErrNilQuery = errors.New("scry: nil query")

	// ErrNilScheduler is returned when a wait that needs frames has no scheduler.
	ErrNilScheduler = errors.New("scry: nil scheduler")

	// ErrLoopStarted is returned by FrameLoop.Start on a second call.
	ErrLoopStarted = errors.New("scry: frame loop already started")
)

// ExhaustedError reports that the attempt budget ran out before any node
// matched.
type ExhaustedError struct {
	// Criterion describes what was being waited for, e.g. `tag "div"`.
	// Empty for waits started through Poll without WithCriterion.
	Criterion string

	// Attempts is the number of frames that were polled.
	Attempts int
}

func (e *ExhaustedError) Error() string {
	if e.Criterion == "" {
		return fmt.Sprintf("%s after %d frame(s)", ErrExhausted, e.Attempts)
	}
	return fmt.Sprintf("%s with %s after %d frame(s)", ErrExhausted, e.Criterion, e.Attempts)
}

// Is makes errors.Is(err, ErrExhausted) true for any ExhaustedError.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}

// QueryPanicError is the rejection reason when a query panics.
type QueryPanicError struct {
	Value any
}

func (e *QueryPanicError) Error() string {
	return fmt.Sprintf("scry: query panicked: %v", e.Value)
}
