package core

import (
	"errors"
	"math"

	"github.com/rmonroe/shotline/schema"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Minimum yearly points needed for a meaningful two-variable fit.
const minRegressionPoints = 3

// Errors returned by FitYearly.
var (
	ErrTooFewPoints = errors.New("regression needs at least 3 yearly points")
	ErrZeroVariance = errors.New("regression input has zero variance in incident counts")
)

// FitYearly fits ordinary least squares of total deaths on total incidents
// over the annual summary table. The fit is deterministic for a fixed input.
func FitYearly(summaries []schema.YearSummary) (schema.RegressionResult, error) {
	var result schema.RegressionResult
	if len(summaries) < minRegressionPoints {
		return result, ErrTooFewPoints
	}

	xs := make([]float64, len(summaries))
	ys := make([]float64, len(summaries))
	for i, summary := range summaries {
		xs[i] = float64(summary.TotalIncidents)
		ys[i] = float64(summary.TotalDeaths)
	}

	if stat.Variance(xs, nil) == 0 {
		return result, ErrZeroVariance
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	// A flat response has no correlation with the predictor; leaving this
	// to stat.Correlation would divide by a zero standard deviation and
	// poison the result with NaN.
	var r float64
	if stat.Variance(ys, nil) > 0 {
		r = stat.Correlation(xs, ys, nil)
	}
	rSquared := r * r

	result = schema.RegressionResult{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  rSquared,
		PValue:    slopePValue(r, len(summaries)),
		N:         len(summaries),
	}
	return result, nil
}

// slopePValue computes the two-sided p-value for the null hypothesis of a
// zero slope, via the t statistic of the sample correlation with n-2
// degrees of freedom.
func slopePValue(r float64, n int) float64 {
	dof := float64(n - 2)
	denom := 1 - r*r
	if denom <= 0 {
		// Exact linear relationship: the null is rejected outright.
		return 0
	}
	t := r * math.Sqrt(dof/denom)
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}
	return 2 * dist.Survival(math.Abs(t))
}
