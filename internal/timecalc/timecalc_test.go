package timecalc_test

import (
	"testing"
	"time"

	"github.com/tbraun/toggl-jira-reconciler/internal/timecalc"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{90, "1m"},
		{3600, "1h 0m"},
		{3661, "1h 1m"},
		{5400, "1h 30m"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDuration(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatDurationHHMMSS(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00:00"},
		{61, "00:01:01"},
		{3661, "01:01:01"},
		// More than 24 hours keeps counting hours.
		{108310, "30:05:10"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDurationHHMMSS(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatDurationHHMMSS(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestDefaultRange(t *testing.T) {
	now := time.Date(2024, 4, 15, 10, 30, 0, 0, time.UTC)
	from, till := timecalc.DefaultRange(now)
	if from != "2024-03-15" {
		t.Errorf("from = %q, want %q", from, "2024-03-15")
	}
	if till != "2024-04-16" {
		t.Errorf("till = %q, want %q", till, "2024-04-16")
	}
}

func TestValidDate(t *testing.T) {
	if !timecalc.ValidDate("2024-04-02") {
		t.Error("expected 2024-04-02 to be valid")
	}
	for _, s := range []string{"", "2024-4-2", "02.04.2024", "2024-04-02T09:00:00Z"} {
		if timecalc.ValidDate(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
