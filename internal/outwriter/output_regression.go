package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/rmonroe/shotline/internal/contract"
	"github.com/rmonroe/shotline/schema"
)

// PrintRegressionResult outputs the OLS fit, dispatching based on the output
// format configured.
func PrintRegressionResult(result schema.RegressionResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForRegression(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForRegression(result, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printRegressionTable(result, cfg, duration); err != nil {
			return fmt.Errorf("error writing regression table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForRegression handles opening the file and calling the JSON writer.
func printJSONResultsForRegression(result schema.RegressionResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, result)
	}, "Wrote JSON regression summary")
}

// printCSVResultsForRegression handles opening the file and calling the CSV writer.
func printCSVResultsForRegression(result schema.RegressionResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"slope", "intercept", "r_squared", "p_value", "n"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			row := []string{
				strconv.FormatFloat(result.Slope, 'f', -1, 64),
				strconv.FormatFloat(result.Intercept, 'f', -1, 64),
				strconv.FormatFloat(result.RSquared, 'f', -1, 64),
				strconv.FormatFloat(result.PValue, 'g', -1, 64),
				strconv.Itoa(result.N),
			}
			return csvWriter.Write(row)
		})
	}, "Wrote CSV regression summary")
}

// printRegressionTable prints the fit as a two-column metric table plus the
// one-line textual summary used in reports.
func printRegressionTable(result schema.RegressionResult, cfg *contract.Config, duration time.Duration) error {
	strength := contract.GetPlainLabel(result.RSquared)
	if cfg.UseColors && cfg.OutputFile == "" {
		strength = contract.GetColorLabel(result.RSquared)
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Metric", "Value"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		data := [][]string{
			{"Slope (deaths per incident)", fmt.Sprintf("%.4f", result.Slope)},
			{"Intercept", fmt.Sprintf("%.4f", result.Intercept)},
			{"R²", fmt.Sprintf("%.4f", result.RSquared)},
			{"p-value (slope)", fmt.Sprintf("%.4g", result.PValue)},
			{"Years (n)", strconv.Itoa(result.N)},
			{"Fit strength", strength},
		}

		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}

		fmt.Fprintln(w, result.Summary())
		fmt.Fprintf(w, "Model fit completed in %v\n", duration)
		return nil
	}, "Wrote regression table")
}
