package cmd

import (
	"github.com/rmonroe/shotline/core"
	"github.com/rmonroe/shotline/internal/contract"
	"github.com/spf13/cobra"
)

// chartsCmd renders the descriptive charts.
var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Render the descriptive charts as PNG files.",
	Long: `Render the four descriptive charts to the chart directory:

- boroughs: bar chart of incident counts per borough
- yearly: line chart of total incidents per year
- deaths: line chart of total deaths per year
- victim-sex: bar chart of incident counts by victim sex

Examples:
  # Render to the default ./charts directory
  shotline charts

  # Render somewhere else
  shotline charts --chart-dir /tmp/shotline-charts`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCharts(rootCtx, cfg, newFetcher(), storeManager); err != nil {
			contract.LogFatal("Cannot render charts", err)
		}
	},
}
