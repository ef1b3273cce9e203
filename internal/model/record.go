package model

// Worklog is a single Jira worklog as returned by the fetch layer:
// already filtered to the requested date range and mapped to the fields
// the reconciler needs. Comment holds the flattened worklog text and is
// the string entries are grouped and matched on.
type Worklog struct {
	IssueKey    string `json:"issue_key"`
	Author      string `json:"author"`
	TimeSeconds int64  `json:"time_seconds"`
	Started     string `json:"started"` // YYYY-MM-DD
	Comment     string `json:"comment"`
}

// TimeEntry is a single Toggl time entry after project filtering.
// Start is the full ISO-8601 timestamp; the calendar day is its first
// ten characters.
type TimeEntry struct {
	Description string `json:"description"`
	Duration    int64  `json:"duration"` // seconds, never negative
	Start       string `json:"start"`
}

// TimeRecord is the normalized per-source record the reconciler works
// on. TaskID is empty when no task reference is known. Records are not
// mutated after construction.
type TimeRecord struct {
	Date        string `json:"date"` // YYYY-MM-DD
	Description string `json:"description"`
	TaskID      string `json:"task_id,omitempty"`
	Duration    int64  `json:"duration"`
}

// ReportGroup is the aggregate of all same-day records from one source
// that share a description. Duration is the sum over the group; the
// remaining fields are taken from the first record seen.
type ReportGroup struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	TaskID      string `json:"task_id,omitempty"`
	Duration    int64  `json:"duration"`
}

// AlignedPair pairs one Jira-side group with one Toggl-side group that
// share a description, or carries a single unmatched group. At least
// one side is always non-nil.
type AlignedPair struct {
	Jira  *ReportGroup `json:"jira,omitempty"`
	Toggl *ReportGroup `json:"toggl,omitempty"`
}

// DayReport is the reconciliation result for one calendar day.
type DayReport struct {
	Date          string        `json:"date"`
	Pairs         []AlignedPair `json:"reports"`
	JiraDuration  int64         `json:"jira_duration"`
	TogglDuration int64         `json:"toggl_duration"`
}
