package app

// State represents the current application state.
type State int

const (
	StateConnecting State = iota // Fetching the year index
	StateReady                   // Browsing the timeline
	StateDetail                  // Release notes modal open
	StateFailed                  // Index fetch failed; offering retry
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateDetail:
		return "detail"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
