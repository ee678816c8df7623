package cmd

import (
	"github.com/rmonroe/shotline/core"
	"github.com/rmonroe/shotline/internal/contract"
	"github.com/spf13/cobra"
)

// regressCmd fits the yearly OLS model.
var regressCmd = &cobra.Command{
	Use:   "regress",
	Short: "Fit an OLS regression of annual deaths on annual incidents.",
	Long: `Fit an ordinary least squares model with annual deaths as the response
and annual incidents as the predictor.

Reports the slope, intercept, R-squared and the two-sided p-value for the
slope, plus a plain-language strength label for the fit. At least three
yearly data points are required.

Examples:
  # Fit and print the model summary
  shotline regress

  # Higher precision, no colors
  shotline regress --precision 4 --color no

  # Machine-readable output
  shotline regress --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRegress(rootCtx, cfg, newFetcher(), storeManager); err != nil {
			contract.LogFatal("Cannot fit regression", err)
		}
	},
}
