package commands

import (
	"context"
	"fmt"
	"logarun-export/lib/telemetry"
	"os"

	"github.com/spf13/cobra"
)

var verbose *bool

var rootCmd = &cobra.Command{
	Use:   "logarun-export <start-date> [end-date]",
	Short: "logarun-export scrapes a logarun.com training log into a JSON file.",
	Long: `logarun-export logs into logarun.com, walks an inclusive date range one
day at a time and writes every day's log entry to a single JSON file.
Dates are given as YYYY-MM-DD; the end date defaults to today.`,
	Args:          cobra.RangeArgs(1, 2),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
	RunE: runExport,
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging/instrumentation.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
