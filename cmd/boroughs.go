package cmd

import (
	"github.com/rmonroe/shotline/core"
	"github.com/rmonroe/shotline/internal/contract"
	"github.com/spf13/cobra"
)

// boroughsCmd breaks down incidents by borough.
var boroughsCmd = &cobra.Command{
	Use:   "boroughs",
	Short: "Show incident counts broken down by borough.",
	Long: `Count shooting incidents per borough, sorted by count descending.

Each row shows the borough, its incident count, the deaths among those
incidents, and its share of the total.

Examples:
  # Print the borough table
  shotline boroughs

  # Only the top three boroughs, as CSV
  shotline boroughs --limit 3 --output csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBoroughs(rootCtx, cfg, newFetcher(), storeManager); err != nil {
			contract.LogFatal("Cannot break down by borough", err)
		}
	},
}
