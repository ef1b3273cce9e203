package cmd

import (
	"testing"

	"github.com/tbraun/toggl-jira-reconciler/internal/model"
)

func TestSubmitCandidates(t *testing.T) {
	reports := []model.DayReport{
		{
			Date: "2024-04-02",
			Pairs: []model.AlignedPair{
				// Matched: already booked.
				{
					Jira:  &model.ReportGroup{Description: "wrote tests", TaskID: "DEV-1", Duration: 3600},
					Toggl: &model.ReportGroup{Description: "wrote tests", TaskID: "DEV-1", Duration: 3600},
				},
				// Toggl-only without a task reference: cannot be booked.
				{Toggl: &model.ReportGroup{Description: "lunch", Duration: 1800}},
				// Toggl-only with a task reference: candidate.
				{Toggl: &model.ReportGroup{Description: "code review", TaskID: "DEV-3", Duration: 900}},
				// Jira-only: nothing to book.
				{Jira: &model.ReportGroup{Description: "standup", TaskID: "DEV-4", Duration: 600}},
			},
		},
	}

	candidates := submitCandidates(reports)
	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(candidates))
	}
	got := candidates[0]
	if got.IssueKey != "DEV-3" || got.Started != "2024-04-02" || got.TimeSeconds != 900 || got.Comment != "code review" {
		t.Errorf("candidate = %+v", got)
	}
}
