package schema

import "fmt"

// RegressionResult holds an ordinary least-squares fit of annual deaths on
// annual incidents. Deterministic for a fixed input table.
type RegressionResult struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
	PValue    float64 `json:"p_value"`
	N         int     `json:"n"`
}

// Summary renders the textual regression summary included in reports.
func (r RegressionResult) Summary() string {
	return fmt.Sprintf(
		"deaths = %.4f * incidents + %.4f (n=%d, R²=%.4f, p=%.4g)",
		r.Slope, r.Intercept, r.N, r.RSquared, r.PValue,
	)
}

// PredictDeaths evaluates the fitted line for a given incident count.
func (r RegressionResult) PredictDeaths(incidents float64) float64 {
	return r.Slope*incidents + r.Intercept
}
