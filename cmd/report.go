package cmd

import (
	"github.com/rmonroe/shotline/core"
	"github.com/rmonroe/shotline/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd runs the whole pipeline end to end.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the full analysis: clean, aggregate, chart and regress.",
	Long: `Run the whole pipeline in one command:

1. Load the dataset (stored copy, or download when missing or --refresh)
2. Print the clean report
3. Print the yearly summary and borough breakdown
4. Render the descriptive charts
5. Fit and print the OLS regression of deaths on incidents

Examples:
  # Full report with defaults
  shotline report

  # Fresh download, charts in a custom directory
  shotline report --refresh --chart-dir out/charts`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg, newFetcher(), storeManager); err != nil {
			contract.LogFatal("Cannot build report", err)
		}
	},
}
