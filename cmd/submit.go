package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tbraun/toggl-jira-reconciler/internal/config"
	"github.com/tbraun/toggl-jira-reconciler/internal/jira"
	"github.com/tbraun/toggl-jira-reconciler/internal/model"
	"github.com/tbraun/toggl-jira-reconciler/internal/render"
	"github.com/tbraun/toggl-jira-reconciler/internal/report"
	"github.com/tbraun/toggl-jira-reconciler/internal/timecalc"
)

var (
	submitFrom        string
	submitTo          string
	submitTask        string
	submitDate        string
	submitDuration    int64
	submitDescription string
	submitYes         bool
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Book unmatched Toggl entries as Jira worklogs",
	Long: `submit finds Toggl entries that reference a task but have no matching
Jira worklog and books them. Without flags it is interactive: pick the
entries to book from a list. With --task it books a single worklog
non-interactively.`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVar(&submitFrom, "from", "", "Start date (YYYY-MM-DD); defaults to one month ago")
	submitCmd.Flags().StringVar(&submitTo, "to", "", "End date, exclusive (YYYY-MM-DD); defaults to tomorrow")
	submitCmd.Flags().StringVar(&submitTask, "task", "", "Issue key to book a single worklog on (non-interactive)")
	submitCmd.Flags().StringVar(&submitDate, "date", "", "Worklog date (YYYY-MM-DD); required with --task")
	submitCmd.Flags().Int64Var(&submitDuration, "duration", 0, "Worklog duration in seconds; required with --task")
	submitCmd.Flags().StringVar(&submitDescription, "description", "", "Worklog comment text")
	submitCmd.Flags().BoolVar(&submitYes, "yes", false, "Submit all candidates without prompting")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := cfg.RequireCredentials(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	client := jira.NewClient(cfg.Jira.Host, cfg.Jira.Username, cfg.Jira.Token)
	ctx := context.Background()

	if submitTask != "" {
		if !timecalc.ValidDate(submitDate) {
			fmt.Fprintf(os.Stderr, "invalid --date value %q (want YYYY-MM-DD)\n", submitDate)
			os.Exit(1)
		}
		worklog := model.Worklog{
			IssueKey:    submitTask,
			Started:     submitDate,
			TimeSeconds: submitDuration,
			Comment:     submitDescription,
		}
		if err := submitOne(ctx, client, cfg.Jira.Host, worklog); err != nil {
			os.Exit(1)
		}
		return nil
	}

	from, till, err := resolveRange(submitFrom, submitTo)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	worklogs, entries, err := fetchBoth(ctx, cfg, from, till)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fetching records failed: %v\n", err)
		os.Exit(1)
	}

	candidates := submitCandidates(report.Reconcile(from, till, worklogs, entries, report.Ascending))
	if len(candidates) == 0 {
		fmt.Println("Nothing to submit: every task-tagged Toggl entry already has a Jira worklog.")
		return nil
	}

	selected := candidates
	if !submitYes {
		selected, err = pickCandidates(candidates)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if len(selected) == 0 {
			fmt.Println("Nothing selected.")
			return nil
		}
	}

	failures := 0
	for _, worklog := range selected {
		if err := submitOne(ctx, client, cfg.Jira.Host, worklog); err != nil {
			failures++
		}
	}

	fmt.Println()
	fmt.Printf("Summary: %d submitted, %d failed\n", len(selected)-failures, failures)
	if failures > 0 {
		os.Exit(2)
	}
	return nil
}

// submitCandidates collects Toggl-only entries that carry a task ID —
// the only ones that can be booked without asking for an issue key.
func submitCandidates(reports []model.DayReport) []model.Worklog {
	var candidates []model.Worklog
	for _, day := range reports {
		for _, pair := range day.Pairs {
			if pair.Jira != nil || pair.Toggl == nil || pair.Toggl.TaskID == "" {
				continue
			}
			candidates = append(candidates, model.Worklog{
				IssueKey:    pair.Toggl.TaskID,
				Started:     day.Date,
				TimeSeconds: pair.Toggl.Duration,
				Comment:     pair.Toggl.Description,
			})
		}
	}
	return candidates
}

// pickCandidates runs the interactive selection form.
func pickCandidates(candidates []model.Worklog) ([]model.Worklog, error) {
	options := make([]huh.Option[int], 0, len(candidates))
	for i, c := range candidates {
		label := fmt.Sprintf("%s  %-10s  %s  %s",
			c.Started, c.IssueKey, timecalc.FormatDurationHHMMSS(c.TimeSeconds), c.Comment)
		options = append(options, huh.NewOption(label, i))
	}

	var (
		picked    []int
		confirmed bool
	)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Toggl entries without a Jira worklog").
				Description("Space to toggle, enter to continue").
				Options(options...).
				Value(&picked),
			huh.NewConfirm().
				Title("Book the selected entries in Jira?").
				Affirmative("Submit").
				Negative("Cancel").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("selection aborted: %w", err)
	}
	if !confirmed {
		return nil, nil
	}

	selected := make([]model.Worklog, 0, len(picked))
	for _, i := range picked {
		selected = append(selected, candidates[i])
	}
	return selected, nil
}

// submitOne books a single worklog and prints the outcome. Validation
// mistakes and Jira rejections get distinct messages so the user knows
// whether to fix the input or the credentials.
func submitOne(ctx context.Context, client *jira.Client, host string, worklog model.Worklog) error {
	err := client.SubmitWorklog(ctx, worklog)
	switch {
	case err == nil:
		fmt.Printf("  ✓ Booked %s on %s (%s) → %s\n",
			timecalc.FormatDurationHHMMSS(worklog.TimeSeconds), worklog.IssueKey,
			worklog.Started, render.IssueURL(host, worklog.IssueKey))
		return nil
	case errors.Is(err, jira.ErrMissingIssueKey), errors.Is(err, jira.ErrInvalidDuration):
		fmt.Fprintf(os.Stderr, "  ! Invalid worklog for %s on %s: %v\n", worklog.IssueKey, worklog.Started, err)
		return err
	default:
		fmt.Fprintf(os.Stderr, "  ! Submitting to %s failed: %v\n", worklog.IssueKey, err)
		return err
	}
}
