package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tbraun/toggl-jira-reconciler/internal/config"
	"github.com/tbraun/toggl-jira-reconciler/internal/model"
	"github.com/tbraun/toggl-jira-reconciler/internal/report"
)

var (
	exportFrom   string
	exportTo     string
	exportOrder  string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export reconciled reports to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Start date (YYYY-MM-DD); defaults to one month ago")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "End date, exclusive (YYYY-MM-DD); defaults to tomorrow")
	exportCmd.Flags().StringVar(&exportOrder, "order", "", "Day ordering: asc or desc (default from config)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := cfg.RequireCredentials(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	from, till, err := resolveRange(exportFrom, exportTo)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	order, err := resolveOrder(exportOrder, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	worklogs, entries, err := fetchBoth(context.Background(), cfg, from, till)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fetching records failed: %v\n", err)
		os.Exit(1)
	}

	reports := report.Reconcile(from, till, worklogs, entries, order)

	switch exportFormat {
	case "json":
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	default: // csv
		printCSV(reports)
	}

	return nil
}

func printCSV(reports []model.DayReport) {
	fmt.Println("date,toggl_task_id,toggl_description,toggl_seconds,jira_task_id,jira_description,jira_seconds")
	for _, day := range reports {
		for _, pair := range day.Pairs {
			togglID, togglText, togglSeconds := groupColumns(pair.Toggl)
			jiraID, jiraText, jiraSeconds := groupColumns(pair.Jira)
			fmt.Printf("%s,%s,%s,%s,%s,%s,%s\n",
				csvEscape(day.Date),
				csvEscape(togglID),
				csvEscape(togglText),
				togglSeconds,
				csvEscape(jiraID),
				csvEscape(jiraText),
				jiraSeconds,
			)
		}
	}
}

// groupColumns returns the CSV cells for one side of a pair; an absent
// side yields empty cells rather than zeros.
func groupColumns(group *model.ReportGroup) (id, text, seconds string) {
	if group == nil {
		return "", "", ""
	}
	return group.TaskID, group.Description, fmt.Sprintf("%d", group.Duration)
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	needsQuote := false
	for _, c := range s {
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	// Escape internal double quotes by doubling them.
	escaped := ""
	for _, c := range s {
		if c == '"' {
			escaped += "\""
		}
		escaped += string(c)
	}
	return `"` + escaped + `"`
}
