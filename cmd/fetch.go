package cmd

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tbraun/toggl-jira-reconciler/internal/config"
	"github.com/tbraun/toggl-jira-reconciler/internal/jira"
	"github.com/tbraun/toggl-jira-reconciler/internal/model"
	"github.com/tbraun/toggl-jira-reconciler/internal/report"
	"github.com/tbraun/toggl-jira-reconciler/internal/timecalc"
	"github.com/tbraun/toggl-jira-reconciler/internal/toggl"
)

// resolveRange turns the --from/--to flags into a concrete [from, till)
// day range, defaulting to one month back through tomorrow.
func resolveRange(fromFlag, toFlag string) (from, till string, err error) {
	from, till = timecalc.DefaultRange(time.Now())
	if fromFlag != "" {
		if !timecalc.ValidDate(fromFlag) {
			return "", "", fmt.Errorf("invalid --from value %q (want YYYY-MM-DD)", fromFlag)
		}
		from = fromFlag
	}
	if toFlag != "" {
		if !timecalc.ValidDate(toFlag) {
			return "", "", fmt.Errorf("invalid --to value %q (want YYYY-MM-DD)", toFlag)
		}
		till = toFlag
	}
	if till <= from {
		return "", "", fmt.Errorf("--to (%s) must be after --from (%s)", till, from)
	}
	return from, till, nil
}

// resolveOrder picks the sort order: the flag wins, otherwise the
// config default applies.
func resolveOrder(orderFlag string, cfg config.Config) (report.SortOrder, error) {
	if orderFlag != "" {
		return report.ParseSortOrder(orderFlag)
	}
	return report.ParseSortOrder(cfg.Report.SortOrder)
}

// fetchBoth retrieves the user's Jira worklogs and the project's Toggl
// entries for [from, till) concurrently. Reconciliation needs both
// sides, so a failure of either fetch fails the whole call with no
// partial result.
func fetchBoth(ctx context.Context, cfg config.Config, from, till string) ([]model.Worklog, []model.TimeEntry, error) {
	jiraClient := jira.NewClient(cfg.Jira.Host, cfg.Jira.Username, cfg.Jira.Token)
	togglClient := toggl.NewClient(cfg.Toggl.Token)

	var (
		worklogs []model.Worklog
		entries  []model.TimeEntry
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		worklogs, err = jiraClient.FetchUserWorklogs(ctx, from, till)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = togglClient.FetchTimeEntries(ctx, from, till, cfg.Toggl.Project)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return worklogs, entries, nil
}
