// Package msg defines the tea.Msg types dispatched within the gamecal TUI.
// It imports neither client nor timeline to avoid import cycles; results
// carry plain data and the app layer re-associates them.
package msg

// -- Lifecycle --

// IndexResult from the initial GET of the year index.
type IndexResult struct {
	Years []string
	Err   error
}

// -- Page fetches --

// Release mirrors client.Release for the msg layer.
type Release struct {
	Date      string
	Title     string
	TitleZH   string
	Platforms []string
	Notes     string
	TBD       bool
}

// PageResult from a year page fetch. The app layer recovers the originating
// engine request (and its direction) from its pending map by Page.
type PageResult struct {
	Page  string
	Items []Release
	Err   error
}

// -- UI events --

// FrameMsg drives one deferred layout pass; at most one is in flight.
type FrameMsg struct{}

// CloseDetail dismisses the notes modal.
type CloseDetail struct{}
