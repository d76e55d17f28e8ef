package scry

// State represents the settlement state of a Deferred.
type State int32

const (
	// StatePending indicates the wait is still polling frames.
	StatePending State = iota

	// StateFulfilled indicates a matching node was found. The Deferred holds
	// the first match.
	StateFulfilled

	// StateRejected indicates the wait ended without a match, either because
	// the attempt budget ran out or because the query failed.
	StateRejected
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateFulfilled:
		return "fulfilled"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Settled reports whether s is a terminal state.
func (s State) Settled() bool {
	return s == StateFulfilled || s == StateRejected
}
