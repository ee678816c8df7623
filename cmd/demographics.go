package cmd

import (
	"github.com/rmonroe/shotline/core"
	"github.com/rmonroe/shotline/internal/contract"
	"github.com/spf13/cobra"
)

// demographicsCmd breaks down incidents by a demographic field.
var demographicsCmd = &cobra.Command{
	Use:   "demographics",
	Short: "Show incident counts broken down by a demographic field.",
	Long: `Count shooting incidents per category of a demographic field.

Supported grouping keys: borough, vic-sex, vic-race, perp-sex, perp-race.
Missing or null values are folded into an UNKNOWN category during cleaning,
so the breakdown always covers every kept row.

Examples:
  # Victim sex breakdown (the default grouping)
  shotline demographics

  # Perpetrator race, top ten categories
  shotline demographics --group perp-race --limit 10

  # Victim race as JSON
  shotline demographics --group vic-race --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDemographics(rootCtx, cfg, newFetcher(), storeManager); err != nil {
			contract.LogFatal("Cannot break down demographics", err)
		}
	},
}
