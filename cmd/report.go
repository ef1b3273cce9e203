package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tbraun/toggl-jira-reconciler/internal/config"
	"github.com/tbraun/toggl-jira-reconciler/internal/render"
	"github.com/tbraun/toggl-jira-reconciler/internal/report"
)

var (
	reportFrom  string
	reportTo    string
	reportOrder string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show Toggl entries aligned against Jira worklogs",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "Start date (YYYY-MM-DD); defaults to one month ago")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "End date, exclusive (YYYY-MM-DD); defaults to tomorrow")
	reportCmd.Flags().StringVar(&reportOrder, "order", "", "Day ordering: asc or desc (default from config)")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := cfg.RequireCredentials(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	from, till, err := resolveRange(reportFrom, reportTo)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	order, err := resolveOrder(reportOrder, cfg)
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

	fmt.Printf("Reports %s … %s\n\n", from, till)
	render.Table(os.Stdout, reports)
	return nil
}
