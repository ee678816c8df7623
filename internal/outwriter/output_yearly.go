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
	"github.com/rmonroe/shotline/internal/parquet"
	"github.com/rmonroe/shotline/schema"
)

// PrintYearlyResults outputs the annual summary table, dispatching based on
// the output format configured.
func PrintYearlyResults(summaries []schema.YearSummary, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForYearly(summaries, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForYearly(summaries, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.WriteYearSummaries(summaries, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Printf("Wrote parquet yearly summary to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable table
		if err := printYearlyTable(summaries, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing yearly table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForYearly handles opening the file and calling the JSON writer.
func printJSONResultsForYearly(summaries []schema.YearSummary, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, summaries)
	}, "Wrote JSON yearly summary")
}

// printCSVResultsForYearly handles opening the file and calling the CSV writer.
func printCSVResultsForYearly(summaries []schema.YearSummary, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"year", "total_incidents", "total_deaths"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, summary := range summaries {
				row := []string{
					strconv.Itoa(summary.Year),
					strconv.Itoa(summary.TotalIncidents),
					strconv.Itoa(summary.TotalDeaths),
				}
				if err := csvWriter.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	}, "Wrote CSV yearly summary")
}

// printYearlyTable prints the annual summaries in a four-column table.
func printYearlyTable(summaries []schema.YearSummary, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Year", "Incidents", "Deaths", "Death Rate %"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, summary := range summaries {
			row := []string{
				strconv.Itoa(summary.Year),
				strconv.Itoa(summary.TotalIncidents),
				strconv.Itoa(summary.TotalDeaths),
				fmtFloat(share(summary.TotalDeaths, summary.TotalIncidents)),
			}
			data = append(data, row)
		}

		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}

		fmt.Fprintf(w, "Yearly aggregation over %d years completed in %v\n", len(summaries), duration)
		return nil
	}, "Wrote yearly table")
}
