// Package jira is a minimal Jira Cloud REST v3 client covering exactly
// what the reconciler needs: finding the issues the user logged work on
// in a date range, pulling those worklogs, and booking new ones.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tbraun/toggl-jira-reconciler/internal/model"
)

// worklogFetchLimit caps concurrent per-issue worklog requests.
const worklogFetchLimit = 8

// Validation failures on the submit path. These are caller mistakes and
// are kept distinct from APIError so the CLI can report them without
// suggesting a connectivity problem.
var (
	ErrMissingIssueKey = errors.New("worklog has no issue key")
	ErrInvalidDuration = errors.New("worklog duration must be positive")
)

// APIError is a non-2xx response from Jira.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jira API error %d: %s", e.StatusCode, e.Body)
}

// Client talks to one Jira Cloud site using an email + API token pair
// (HTTP Basic).
type Client struct {
	Host       string // e.g. "https://myproject.atlassian.net"
	Username   string
	Token      string
	HTTPClient *http.Client
}

// NewClient creates a client for the given site.
func NewClient(host, username, token string) *Client {
	return &Client{
		Host:       strings.TrimRight(host, "/"),
		Username:   username,
		Token:      token,
		HTTPClient: http.DefaultClient,
	}
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.Host + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.Username, c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("jira request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding jira response: %w", err)
	}
	return nil
}

type searchResponse struct {
	Issues []struct {
		Key string `json:"key"`
	} `json:"issues"`
}

type worklogResponse struct {
	Worklogs []struct {
		Author struct {
			DisplayName string `json:"displayName"`
		} `json:"author"`
		TimeSpentSeconds int64    `json:"timeSpentSeconds"`
		Started          string   `json:"started"`
		Comment          *Content `json:"comment"`
	} `json:"worklogs"`
}

type userResponse struct {
	DisplayName string `json:"displayName"`
}

// SearchIssueKeys returns the keys of all issues with worklogs dated in
// [from, till), paging through the search endpoint until an empty page.
func (c *Client) SearchIssueKeys(ctx context.Context, from, till string) ([]string, error) {
	var keys []string
	for {
		query := url.Values{
			"fields":  {"key"},
			"startAt": {fmt.Sprintf("%d", len(keys))},
			"jql":     {fmt.Sprintf("worklogDate >= %q and worklogDate < %q", from, till)},
		}
		var page searchResponse
		if err := c.get(ctx, "/rest/api/3/search", query, &page); err != nil {
			return nil, fmt.Errorf("searching issues: %w", err)
		}
		if len(page.Issues) == 0 {
			return keys, nil
		}
		for _, issue := range page.Issues {
			keys = append(keys, issue.Key)
		}
	}
}

// fetchIssueWorklogs returns the worklogs of one issue started in
// [from, till). The endpoint has no date filter of its own, so the
// filtering happens here; the lexicographic compare of the full ISO
// timestamp against the day strings is intentional.
func (c *Client) fetchIssueWorklogs(ctx context.Context, issueKey, from, till string) ([]model.Worklog, error) {
	var resp worklogResponse
	if err := c.get(ctx, "/rest/api/3/issue/"+url.PathEscape(issueKey)+"/worklog", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching worklog for %s: %w", issueKey, err)
	}

	var worklogs []model.Worklog
	for _, wl := range resp.Worklogs {
		if wl.Started < from || wl.Started >= till {
			continue
		}
		worklogs = append(worklogs, model.Worklog{
			IssueKey:    issueKey,
			Author:      normalizeName(wl.Author.DisplayName),
			TimeSeconds: wl.TimeSpentSeconds,
			Started:     wl.Started[:10],
			Comment:     flattenContent(wl.Comment),
		})
	}
	return worklogs, nil
}

// FetchWorklogs returns all worklogs in [from, till) across all issues
// found by SearchIssueKeys. Per-issue fetches run concurrently; the
// result keeps issue search order so repeated runs produce identical
// record sequences.
func (c *Client) FetchWorklogs(ctx context.Context, from, till string) ([]model.Worklog, error) {
	keys, err := c.SearchIssueKeys(ctx, from, till)
	if err != nil {
		return nil, err
	}

	perIssue := make([][]model.Worklog, len(keys))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(worklogFetchLimit)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			worklogs, err := c.fetchIssueWorklogs(ctx, key, from, till)
			if err != nil {
				return err
			}
			perIssue[i] = worklogs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []model.Worklog
	for _, worklogs := range perIssue {
		all = append(all, worklogs...)
	}
	return all, nil
}

// Myself returns the authenticated user's display name.
func (c *Client) Myself(ctx context.Context) (string, error) {
	var resp userResponse
	if err := c.get(ctx, "/rest/api/3/myself", nil, &resp); err != nil {
		return "", fmt.Errorf("fetching current user: %w", err)
	}
	return resp.DisplayName, nil
}

// FetchUserWorklogs fetches the current user and all worklogs in
// [from, till) concurrently and keeps only the user's own entries.
func (c *Client) FetchUserWorklogs(ctx context.Context, from, till string) ([]model.Worklog, error) {
	var (
		me       string
		worklogs []model.Worklog
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		me, err = c.Myself(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		worklogs, err = c.FetchWorklogs(ctx, from, till)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	name := normalizeName(me)
	var mine []model.Worklog
	for _, wl := range worklogs {
		if wl.Author == name {
			mine = append(mine, wl)
		}
	}
	return mine, nil
}

// SubmitWorklog books a new worklog on the given issue. Started is a
// calendar day; Jira wants a full datetime, so the entry is pinned to
// noon UTC of that day.
func (c *Client) SubmitWorklog(ctx context.Context, wl model.Worklog) error {
	if wl.IssueKey == "" {
		return ErrMissingIssueKey
	}
	if wl.TimeSeconds <= 0 {
		return ErrInvalidDuration
	}

	payload := struct {
		Started          string  `json:"started"`
		TimeSpentSeconds int64   `json:"timeSpentSeconds"`
		Comment          Content `json:"comment"`
	}{
		Started:          wl.Started + "T12:00:00.000+0000",
		TimeSpentSeconds: wl.TimeSeconds,
		Comment:          textDoc(wl.Comment),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding worklog: %w", err)
	}

	endpoint := c.Host + "/rest/api/3/issue/" + url.PathEscape(wl.IssueKey) + "/worklog"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.Username, c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("jira request failed: %w", err)
	}
	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return nil
}

// normalizeName makes author names comparable across the worklog and
// myself endpoints, which disagree on casing for some accounts.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
