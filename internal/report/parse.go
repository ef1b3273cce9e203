// Package report implements the reconciliation engine: it aligns Jira
// worklogs against Toggl time entries day by day and computes per-day
// totals. Everything in this package is pure; fetching, filtering and
// rendering live elsewhere.
package report

import (
	"regexp"
	"strings"
)

// Task references are recognized at the start of a Toggl description in
// two forms, tried in order:
//
//	#DEV-42 wrote tests   -> task "DEV-42", text "wrote tests"
//	DEV-42: wrote tests   -> task "DEV-42", text "wrote tests"
//
// Anything else passes through unchanged.
var (
	hashPattern  = regexp.MustCompile(`^#([a-zA-Z0-9_\-]+)\s+`)
	colonPattern = regexp.MustCompile(`^([a-zA-Z0-9_\-]+):\s+`)
)

// ParseDescription extracts an optional task ID from a free-text time
// entry description. It returns the ID (empty when none was found) and
// the remaining description. It never fails: unrecognized input comes
// back verbatim with an empty ID.
func ParseDescription(text string) (taskID, description string) {
	if text == "" {
		return "", ""
	}

	if m := hashPattern.FindStringSubmatch(text); m != nil {
		return m[1], strings.TrimSpace(text[len(m[0]):])
	}
	if m := colonPattern.FindStringSubmatch(text); m != nil {
		return m[1], strings.TrimSpace(text[len(m[0]):])
	}

	return "", text
}
