// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/rmonroe/shotline/internal/contract"
	"github.com/rmonroe/shotline/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteYearly prints the annual summary table using the configured output format.
func (ow *OutWriter) WriteYearly(summaries []schema.YearSummary, cfg *contract.Config, duration time.Duration) error {
	return PrintYearlyResults(summaries, cfg, duration)
}

// WriteGroups prints a categorical breakdown using the configured output format.
func (ow *OutWriter) WriteGroups(counts []schema.GroupCount, cfg *contract.Config, duration time.Duration) error {
	return PrintGroupResults(counts, cfg, duration)
}

// WriteRegression prints the regression fit using the configured output format.
func (ow *OutWriter) WriteRegression(result schema.RegressionResult, cfg *contract.Config, duration time.Duration) error {
	return PrintRegressionResult(result, cfg, duration)
}

// WriteClean prints the cleaning report using the configured output format.
func (ow *OutWriter) WriteClean(report schema.CleanReport, cfg *contract.Config, duration time.Duration) error {
	return PrintCleanReport(report, cfg, duration)
}

// GetMaxTableLabelWidth calculates the maximum width for category labels in
// table output based on terminal width.
func GetMaxTableLabelWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the count, deaths and share columns with borders.
	available := termWidth - 40
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}

// truncateLabel shortens a label to fit the table column.
func truncateLabel(label string, maxWidth int) string {
	if len(label) <= maxWidth {
		return label
	}
	if maxWidth <= 3 {
		return label[:maxWidth]
	}
	return label[:maxWidth-3] + "..."
}
