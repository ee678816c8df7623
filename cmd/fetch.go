package cmd

import (
	"github.com/rmonroe/shotline/core"
	"github.com/rmonroe/shotline/internal/contract"
	"github.com/spf13/cobra"
)

// fetchCmd downloads and cleans the dataset.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download and clean the shooting incident dataset.",
	Long: `Download the NYPD Shooting Incident Data (Historic) CSV, clean it, and
persist the result to the configured store.

Cleaning:
- Coerces OCCUR_DATE strings into real dates
- Coerces STATISTICAL_MURDER_FLAG into a boolean
- Drops the raw geographic columns (coordinates, latitude/longitude)
- Drops rows missing a JURISDICTION_CODE

Prints a report of what cleaning did: rows read, rows kept, rows dropped
and columns discarded.

Examples:
  # Fetch from the default NYC Open Data URL
  shotline fetch

  # Fetch from a mirror with a shorter timeout
  shotline fetch --url https://example.com/rows.csv --timeout 30s

  # Write the clean report as JSON
  shotline fetch --output json --output-file report.json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFetch(rootCtx, cfg, newFetcher(), storeManager); err != nil {
			contract.LogFatal("Cannot fetch dataset", err)
		}
	},
}
