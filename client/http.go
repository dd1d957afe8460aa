package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gamecal/gamecal/timeline"
)

// Client fetches the release calendar from the gamecal backend. Errors are
// translated at this boundary into the timeline error taxonomy: a missing
// or malformed index is a DataShapeError (fatal to initial load), anything
// that goes wrong fetching a single year page is a NetworkError (non-fatal,
// loaded content stays intact).
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchIndex returns the ordered list of available year pages.
func (c *Client) FetchIndex() ([]string, error) {
	resp, err := c.get("/api/v1/releases/index")
	if err != nil {
		return nil, &timeline.DataShapeError{Reason: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &timeline.DataShapeError{Reason: c.parseError(resp).Error()}
	}
	var index IndexResponse
	if err := json.NewDecoder(resp.Body).Decode(&index); err != nil {
		return nil, &timeline.DataShapeError{Reason: fmt.Sprintf("decode index: %v", err)}
	}
	if len(index.Years) == 0 {
		return nil, &timeline.DataShapeError{Reason: "empty"}
	}
	return index.Years, nil
}

// FetchPage returns one year of releases, ordered by date ascending.
func (c *Client) FetchPage(year string) ([]Release, error) {
	resp, err := c.get("/api/v1/releases/" + year)
	if err != nil {
		return nil, &timeline.NetworkError{Page: year, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &timeline.NetworkError{Page: year, Err: c.parseError(resp)}
	}
	var page PageResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, &timeline.NetworkError{Page: year, Err: fmt.Errorf("decode page: %w", err)}
	}
	// Drop entries whose date key is malformed. The sequence key and the
	// render path both rely on the 2006-01-02 shape, and one bad entry must
	// not take down the page.
	items := page.Items[:0]
	for _, rel := range page.Items {
		if _, err := time.Parse("2006-01-02", rel.Date); err != nil {
			continue
		}
		items = append(items, rel)
	}
	return items, nil
}

// -- HTTP helpers -------------------------------------------------------------

func (c *Client) get(path string) (*http.Response, error) {
	req, err := http.NewRequest("GET", c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return c.HTTPClient.Do(req)
}

func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var apiErr ErrorResponse
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
		return fmt.Errorf("API %d: %s", resp.StatusCode, apiErr.Error)
	}
	return fmt.Errorf("API %d: %s", resp.StatusCode, string(body))
}
