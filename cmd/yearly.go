package cmd

import (
	"github.com/rmonroe/shotline/core"
	"github.com/rmonroe/shotline/internal/contract"
	"github.com/spf13/cobra"
)

// yearlyCmd aggregates the dataset by year.
var yearlyCmd = &cobra.Command{
	Use:   "yearly",
	Short: "Show incidents and deaths aggregated by year.",
	Long: `Aggregate the cleaned dataset by calendar year of occurrence.

One row per distinct year, with the total number of incidents and the total
number of deaths (incidents where the murder flag is true), sorted ascending
by year.

Examples:
  # Print the yearly table
  shotline yearly

  # Force a fresh download first
  shotline yearly --refresh

  # Export the yearly summaries to Parquet
  shotline yearly --output parquet --output-file yearly.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteYearly(rootCtx, cfg, newFetcher(), storeManager); err != nil {
			contract.LogFatal("Cannot aggregate by year", err)
		}
	},
}
