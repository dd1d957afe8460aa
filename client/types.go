package client

// Release is one dated game release entry as served by the backend. Date is
// the chronological key ("2006-01-02"); titles come pre-translated per
// locale so the TUI only chooses which one to render.
type Release struct {
	Date      string   `json:"date"`
	Title     string   `json:"title"`
	TitleZH   string   `json:"title_zh,omitempty"`
	Platforms []string `json:"platforms,omitempty"`
	Notes     string   `json:"notes,omitempty"` // markdown
	TBD       bool     `json:"tbd,omitempty"`   // day within the month not confirmed
}

// IndexResponse from GET /api/v1/releases/index.
type IndexResponse struct {
	Years []string `json:"years"`
}

// PageResponse from GET /api/v1/releases/{year}.
type PageResponse struct {
	Year  string    `json:"year"`
	Items []Release `json:"items"`
}

// ErrorResponse for API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
