package report_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tbraun/toggl-jira-reconciler/internal/report"
)

func TestParseDescription(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantID   string
		wantText string
	}{
		{"hash prefix", "#DEV-42 fix bug", "DEV-42", "fix bug"},
		{"colon suffix", "DEV-42: fix bug", "DEV-42", "fix bug"},
		{"plain text", "refactor things", "", "refactor things"},
		{"empty", "", "", ""},
		{"hash wins over colon", "#DEV-1 DEV-2: both forms", "DEV-1", "DEV-2: both forms"},
		{"underscore and digits", "#task_42 cleanup", "task_42", "cleanup"},
		{"hash without trailing space", "#DEV-42", "", "#DEV-42"},
		{"colon without trailing space", "DEV-42:fix", "", "DEV-42:fix"},
		{"colon mid-sentence only", "see DEV-42: later", "", "see DEV-42: later"},
		{"extra whitespace trimmed", "#DEV-42   fix bug  ", "DEV-42", "fix bug"},
		{"hash with invalid token char", "#DEV 42 fix", "DEV", "42 fix"},
		{"whitespace only remainder", "#DEV-42  ", "DEV-42", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, text := report.ParseDescription(tt.input)
			require.Equal(t, tt.wantID, id)
			require.Equal(t, tt.wantText, text)
		})
	}
}

func TestParseDescriptionNeverContainsDelimiter(t *testing.T) {
	for _, input := range []string{"#DEV-42 x", "DEV-42: x", "#a b", "a: b"} {
		id, _ := report.ParseDescription(input)
		require.NotContains(t, id, "#")
		require.NotContains(t, id, ":")
	}
}
