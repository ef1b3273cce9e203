package toggl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tbraun/toggl-jira-reconciler/internal/model"
)

func TestFetchTimeEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "my-token", user)
		require.Equal(t, "api_token", pass)

		require.Equal(t, "2024-04-01", r.URL.Query().Get("start_date"))
		require.Equal(t, "2024-04-08", r.URL.Query().Get("end_date"))
		require.Equal(t, "true", r.URL.Query().Get("meta"))

		json.NewEncoder(w).Encode([]map[string]any{
			{
				"id": 1, "project_name": "Internal", "workspace_id": 7,
				"duration": 3600, "description": "#DEV-1 wrote tests",
				"start": "2024-04-02T09:00:00Z", "stop": "2024-04-02T10:00:00Z",
			},
			{
				"id": 2, "project_name": "Other", "workspace_id": 7,
				"duration": 1800, "description": "foreign project",
				"start": "2024-04-02T11:00:00Z", "stop": "2024-04-02T11:30:00Z",
			},
			{
				"id": 3, "project_name": "Internal", "workspace_id": 7,
				"duration": -1712050000, "description": "still running",
				"start": "2024-04-02T12:00:00Z",
			},
			{
				"id": 4, "project_name": "Internal", "workspace_id": 7,
				"duration": 0, "description": "",
				"start": "2024-04-03T09:00:00Z", "stop": "2024-04-03T09:00:00Z",
			},
		})
	}))
	defer server.Close()

	client := NewClient("my-token")
	client.BaseURL = server.URL

	entries, err := client.FetchTimeEntries(context.Background(), "2024-04-01", "2024-04-08", "Internal")
	require.NoError(t, err)
	require.Equal(t, []model.TimeEntry{
		{Description: "#DEV-1 wrote tests", Duration: 3600, Start: "2024-04-02T09:00:00Z"},
		{Description: "", Duration: 0, Start: "2024-04-03T09:00:00Z"},
	}, entries)
}

func TestFetchTimeEntriesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Incorrect username and/or password", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient("bad-token")
	client.BaseURL = server.URL

	_, err := client.FetchTimeEntries(context.Background(), "2024-04-01", "2024-04-08", "Internal")
	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
}
