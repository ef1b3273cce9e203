package timecalc

import (
	"fmt"
	"time"
)

// FormatDuration formats seconds as a human-readable string like "1h 40m" or "45m" or "30s".
func FormatDuration(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatDurationHHMMSS formats seconds as HH:MM:SS. Totals beyond a
// full day keep counting hours (30:05:10).
func FormatDurationHHMMSS(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// DateString formats t as a YYYY-MM-DD calendar day.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// DefaultRange returns the default reporting window: one month before
// now up to (and excluding) tomorrow, so today is always included.
func DefaultRange(now time.Time) (from, till string) {
	return DateString(now.AddDate(0, -1, 0)), DateString(now.AddDate(0, 0, 1))
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD day.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
