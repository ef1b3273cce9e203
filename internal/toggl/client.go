// Package toggl fetches time entries from the Toggl Track v9 API.
package toggl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tbraun/toggl-jira-reconciler/internal/model"
)

// DefaultBaseURL is the production Toggl Track API endpoint for the
// authenticated user's time entries.
const DefaultBaseURL = "https://api.track.toggl.com/api/v9/me/time_entries"

// Toggl basic auth uses the API token as the username and this literal
// as the password.
const tokenUser = "api_token"

// Client talks to the Toggl Track API with a personal API token.
type Client struct {
	Token      string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the production API.
func NewClient(token string) *Client {
	return &Client{
		Token:      token,
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
	}
}

// timeEntry is the wire shape of one entry; meta=true adds project_name.
type timeEntry struct {
	ID          int64  `json:"id"`
	ProjectName string `json:"project_name"`
	WorkspaceID int64  `json:"workspace_id"`
	Duration    int64  `json:"duration"`
	Description string `json:"description"`
	Start       string `json:"start"`
	Stop        string `json:"stop"`
}

// FetchTimeEntries returns the user's entries in [from, till) that
// belong to the given project, ready for reconciliation. A running
// timer is reported with a negative duration and is dropped here; the
// reconciler only accepts completed entries.
func (c *Client) FetchTimeEntries(ctx context.Context, from, till, project string) ([]model.TimeEntry, error) {
	query := url.Values{
		"start_date": {from},
		"end_date":   {till},
		"meta":       {"true"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.Token, tokenUser)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("toggl request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("toggl API error %d: %s", resp.StatusCode, string(body))
	}

	var raw []timeEntry
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decoding toggl response: %w", err)
	}

	var entries []model.TimeEntry
	for _, entry := range raw {
		if entry.ProjectName != project {
			continue
		}
		if entry.Duration < 0 {
			continue
		}
		entries = append(entries, model.TimeEntry{
			Description: entry.Description,
			Duration:    entry.Duration,
			Start:       entry.Start,
		})
	}
	return entries, nil
}
