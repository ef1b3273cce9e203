package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tjr",
	Short: "Toggl/Jira reconciler – compare time entries against worklogs",
	Long: `tjr fetches your Jira worklogs and Toggl time entries for a date
range, aligns them day by day and shows where Toggl has time that was
never booked in Jira. Credentials live in ~/.tjr/config.json.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(submitCmd)
}
