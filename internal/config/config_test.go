package config_test

import (
	"testing"

	"github.com/tbraun/toggl-jira-reconciler/internal/config"
)

func TestParseStripsComments(t *testing.T) {
	data := []byte(`// header comment
{
  // section comment
  "jira": {"host": "https://x.atlassian.net", "username": "u", "token": "t"},
  "toggl": {"token": "tt", "project": "Internal"}
}
`)
	cfg, err := config.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Jira.Host != "https://x.atlassian.net" {
		t.Errorf("jira host = %q", cfg.Jira.Host)
	}
	if cfg.Toggl.Project != "Internal" {
		t.Errorf("toggl project = %q", cfg.Toggl.Project)
	}
}

func TestParseBackfillsSortOrder(t *testing.T) {
	cfg, err := config.Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Report.SortOrder != "desc" {
		t.Errorf("sort order = %q, want %q", cfg.Report.SortOrder, "desc")
	}

	cfg, err = config.Parse([]byte(`{"report": {"sort_order": "asc"}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Report.SortOrder != "asc" {
		t.Errorf("sort order = %q, want %q", cfg.Report.SortOrder, "asc")
	}
}

func TestParseRejectsBadJSON(t *testing.T) {
	if _, err := config.Parse([]byte(`{bad json`)); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestRequireCredentials(t *testing.T) {
	var cfg config.Config
	if err := cfg.RequireCredentials(); err == nil {
		t.Fatal("expected error for empty credentials, got nil")
	}

	cfg = config.Config{
		Jira:  config.JiraConfig{Host: "https://x.atlassian.net", Username: "u", Token: "t"},
		Toggl: config.TogglConfig{Token: "tt", Project: "p"},
	}
	if err := cfg.RequireCredentials(); err != nil {
		t.Fatalf("RequireCredentials on full config: %v", err)
	}
}
