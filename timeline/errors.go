package timeline

import "fmt"

// NetworkError marks a failed page fetch. It is non-fatal: loaded content
// stays intact and the host surfaces a status indicator. The failed
// direction does not retry automatically; a later qualifying edge-cross
// does.
type NetworkError struct {
	Page string
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch page %s: %v", e.Page, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DataShapeError marks a missing or malformed page index. It is fatal to
// the initial load: the host replaces the feed with a blocking error state.
type DataShapeError struct {
	Reason string
}

func (e *DataShapeError) Error() string {
	return "page index: " + e.Reason
}
