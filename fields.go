package scry

import "github.com/zoobzio/capitan"

// Field keys for wait and frame events.
var (
	// KeyWaitID identifies a single wait across its events.
	KeyWaitID = capitan.NewStringKey("wait_id")

	// KeyCriterion describes what the wait is looking for, e.g. `tag "div"`.
	KeyCriterion = capitan.NewStringKey("criterion")

	// KeyAttempts is the attempt budget the wait started with.
	KeyAttempts = capitan.NewIntKey("attempts")

	// KeyRemaining is the number of attempts left.
	KeyRemaining = capitan.NewIntKey("remaining")

	// KeyFrame is the frame number (1-based within a wait, or the loop's
	// frame counter for frame events).
	KeyFrame = capitan.NewIntKey("frame")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyInterval is the configured frame interval.
	KeyInterval = capitan.NewDurationKey("interval")
)
