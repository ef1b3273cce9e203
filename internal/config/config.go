package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration for tjr, stored in ~/.tjr/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	Jira   JiraConfig   `json:"jira"`
	Toggl  TogglConfig  `json:"toggl"`
	Report ReportConfig `json:"report"`
}

// JiraConfig holds the Jira Cloud site and API token credentials.
type JiraConfig struct {
	// Host is the full site URL, e.g. "https://myproject.atlassian.net".
	Host string `json:"host"`
	// Username is the Atlassian account email the token belongs to.
	Username string `json:"username"`
	// Token is a Jira Cloud API token (id.atlassian.com → Security → API tokens).
	Token string `json:"token"`
}

// TogglConfig holds the Toggl Track credentials and project filter.
type TogglConfig struct {
	// Token is the personal API token from the Toggl profile page.
	Token string `json:"token"`
	// Project limits reconciliation to entries of this Toggl project.
	Project string `json:"project"`
}

// ReportConfig holds display preferences.
type ReportConfig struct {
	// SortOrder is the default day ordering for reports: "asc" or "desc".
	SortOrder string `json:"sort_order"`
}

// DefaultSortOrder lists the most recent day first.
const DefaultSortOrder = "desc"

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		Report: ReportConfig{SortOrder: DefaultSortOrder},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON
// parsing, allowing human-readable documentation inside the file.
const configTemplate = `// tjr configuration – ~/.tjr/config.json
//
// Both API sections must be filled in before "tjr report" can run.
// Nothing here is sent anywhere except to the two services themselves.
{
  // ── Jira Cloud ───────────────────────────────────────────────────────────
  "jira": {
    // Full site URL, including the scheme.
    "host": "https://myproject.atlassian.net",

    // The Atlassian account email the API token belongs to.
    "username": "",

    // API token from id.atlassian.com → Security → API tokens.
    "token": ""
  },

  // ── Toggl Track ──────────────────────────────────────────────────────────
  "toggl": {
    // Personal API token from the bottom of the Toggl profile page.
    "token": "",

    // Only entries of this Toggl project are reconciled.
    "project": ""
  },

  // ── Report display ───────────────────────────────────────────────────────
  "report": {
    // Default day ordering: "desc" (most recent first) or "asc".
    // Can be overridden per run with: tjr report --order <asc|desc>
    "sort_order": "desc"
  }
}
`

// configFilePath returns the path to ~/.tjr/config.json.
func configFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".tjr", "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.tjr/config.json, creating it with an annotated template on
// first run. Lines starting with // are treated as comments and stripped
// before JSON parsing.
func Load() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return defaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(), nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}
	return cfg, nil
}

// Parse decodes a commented-JSON config and backfills defaults for the
// display settings. Credentials are left as-is; the commands that need
// them call RequireCredentials.
func Parse(data []byte) (Config, error) {
	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return defaultConfig(), err
	}
	if cfg.Report.SortOrder == "" {
		cfg.Report.SortOrder = DefaultSortOrder
	}
	return cfg, nil
}

// RequireCredentials returns an error naming every credential field that
// is still empty, so a fresh install fails with one actionable message.
func (c Config) RequireCredentials() error {
	var missing []string
	if c.Jira.Host == "" {
		missing = append(missing, "jira.host")
	}
	if c.Jira.Username == "" {
		missing = append(missing, "jira.username")
	}
	if c.Jira.Token == "" {
		missing = append(missing, "jira.token")
	}
	if c.Toggl.Token == "" {
		missing = append(missing, "toggl.token")
	}
	if c.Toggl.Project == "" {
		missing = append(missing, "toggl.project")
	}
	if len(missing) == 0 {
		return nil
	}
	path, err := configFilePath()
	if err != nil {
		path = "~/.tjr/config.json"
	}
	return fmt.Errorf("missing config values %v in %s", missing, path)
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
