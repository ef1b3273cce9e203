package report

import (
	"fmt"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/tbraun/toggl-jira-reconciler/internal/model"
)

// SortOrder controls the direction of the final day sequence. It is a
// display preference, not an engine invariant, so callers must pick one
// explicitly.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// ParseSortOrder maps the config/flag spelling ("asc"/"desc") to a
// SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	switch s {
	case "asc":
		return Ascending, nil
	case "desc":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("invalid sort order %q (want asc or desc)", s)
	}
}

// dayOf truncates an ISO-8601 timestamp to its calendar day.
func dayOf(timestamp string) string {
	if len(timestamp) < 10 {
		return timestamp
	}
	return timestamp[:10]
}

// jiraRecords converts fetched worklogs to records. The issue key is
// already a structured task reference; the comment text is used as the
// description without re-parsing.
func jiraRecords(worklogs []model.Worklog) []model.TimeRecord {
	records := make([]model.TimeRecord, 0, len(worklogs))
	for _, wl := range worklogs {
		records = append(records, model.TimeRecord{
			Date:        wl.Started,
			Description: wl.Comment,
			TaskID:      wl.IssueKey,
			Duration:    wl.TimeSeconds,
		})
	}
	return records
}

// togglRecords converts fetched time entries to records, deriving the
// task ID from the free-text description.
func togglRecords(entries []model.TimeEntry) []model.TimeRecord {
	records := make([]model.TimeRecord, 0, len(entries))
	for _, entry := range entries {
		taskID, description := ParseDescription(entry.Description)
		records = append(records, model.TimeRecord{
			Date:        dayOf(entry.Start),
			Description: description,
			TaskID:      taskID,
			Duration:    entry.Duration,
		})
	}
	return records
}

// Bucketize partitions records by their calendar day. Both the day
// order (first appearance) and the record order within a day follow the
// input order. Records are trusted to be range-filtered upstream; a
// stray out-of-range record is bucketed under its own date, never
// dropped.
func Bucketize(records []model.TimeRecord) *orderedmap.OrderedMap[string, []model.TimeRecord] {
	buckets := orderedmap.New[string, []model.TimeRecord]()
	for _, record := range records {
		existing, _ := buckets.Get(record.Date)
		buckets.Set(record.Date, append(existing, record))
	}
	return buckets
}

// Aggregate collapses same-description records from one day and one
// source into a single group each, summing durations. The first record
// seen for a description supplies every other field. The key is the
// description text, not the task ID, so the total duration over all
// groups always equals the total over the input records.
func Aggregate(records []model.TimeRecord) *orderedmap.OrderedMap[string, *model.ReportGroup] {
	groups := orderedmap.New[string, *model.ReportGroup]()
	for _, record := range records {
		if group, ok := groups.Get(record.Description); ok {
			group.Duration += record.Duration
			continue
		}
		groups.Set(record.Description, &model.ReportGroup{
			Date:        record.Date,
			Description: record.Description,
			TaskID:      record.TaskID,
			Duration:    record.Duration,
		})
	}
	return groups
}

// Align pairs the two per-day group maps by description text. Matching
// is deliberately on the description, not the parsed task ID: two
// wordings of the same task never match. All Jira-side entries come
// first in Jira insertion order, matched or not, followed by the
// remaining Toggl-only entries in Toggl insertion order. Every group
// from either map appears in exactly one pair.
//
// Align consumes the toggl map (matched keys are removed from it).
func Align(jira, toggl *orderedmap.OrderedMap[string, *model.ReportGroup]) []model.AlignedPair {
	aligned := make([]model.AlignedPair, 0, jira.Len()+toggl.Len())

	for pair := jira.Oldest(); pair != nil; pair = pair.Next() {
		match, ok := toggl.Get(pair.Key)
		if ok {
			toggl.Delete(pair.Key)
		}
		aligned = append(aligned, model.AlignedPair{Jira: pair.Value, Toggl: match})
	}

	for pair := toggl.Oldest(); pair != nil; pair = pair.Next() {
		aligned = append(aligned, model.AlignedPair{Toggl: pair.Value})
	}

	return aligned
}

// Reconcile aligns the two record collections into one DayReport per
// calendar day that has at least one record from either source.
//
// startDate and endDate describe the range the inputs were fetched for;
// the engine trusts the fetch layer to have applied them and does not
// re-filter. Reconcile never fails and shares no state between calls.
func Reconcile(startDate, endDate string, worklogs []model.Worklog, entries []model.TimeEntry, order SortOrder) []model.DayReport {
	togglBuckets := Bucketize(togglRecords(entries))
	jiraBuckets := Bucketize(jiraRecords(worklogs))

	// Union of days from both sources, Toggl-first like the buckets.
	days := orderedmap.New[string, struct{}]()
	for pair := togglBuckets.Oldest(); pair != nil; pair = pair.Next() {
		days.Set(pair.Key, struct{}{})
	}
	for pair := jiraBuckets.Oldest(); pair != nil; pair = pair.Next() {
		days.Set(pair.Key, struct{}{})
	}

	reports := make([]model.DayReport, 0, days.Len())
	for day := days.Oldest(); day != nil; day = day.Next() {
		jiraDay, _ := jiraBuckets.Get(day.Key)
		togglDay, _ := togglBuckets.Get(day.Key)

		pairs := Align(Aggregate(jiraDay), Aggregate(togglDay))

		var jiraTotal, togglTotal int64
		for _, p := range pairs {
			if p.Jira != nil {
				jiraTotal += p.Jira.Duration
			}
			if p.Toggl != nil {
				togglTotal += p.Toggl.Duration
			}
		}

		reports = append(reports, model.DayReport{
			Date:          day.Key,
			Pairs:         pairs,
			JiraDuration:  jiraTotal,
			TogglDuration: togglTotal,
		})
	}

	// Lexicographic compare is chronological for YYYY-MM-DD dates.
	sort.SliceStable(reports, func(i, j int) bool {
		if order == Descending {
			return reports[i].Date > reports[j].Date
		}
		return reports[i].Date < reports[j].Date
	})

	return reports
}
