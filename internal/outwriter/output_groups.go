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

// PrintGroupResults outputs a categorical breakdown, dispatching based on
// the output format configured. Rows beyond the result limit are elided.
func PrintGroupResults(counts []schema.GroupCount, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	limited := counts
	if len(limited) > cfg.ResultLimit {
		limited = limited[:cfg.ResultLimit]
	}

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForGroups(limited, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForGroups(limited, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printGroupTable(limited, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing group table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForGroups handles opening the file and calling the JSON writer.
func printJSONResultsForGroups(counts []schema.GroupCount, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, counts)
	}, "Wrote JSON breakdown")
}

// printCSVResultsForGroups handles opening the file and calling the CSV writer.
func printCSVResultsForGroups(counts []schema.GroupCount, cfg *contract.Config, fmtFloat func(float64) string) error {
	total := totalCount(counts)
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"key", "label", "count", "deaths", "share_pct"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, count := range counts {
				row := []string{
					string(count.Key),
					count.Label,
					strconv.Itoa(count.Count),
					strconv.Itoa(count.Deaths),
					fmtFloat(share(count.Count, total)),
				}
				if err := csvWriter.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	}, "Wrote CSV breakdown")
}

// printGroupTable prints the breakdown in a four-column table.
func printGroupTable(counts []schema.GroupCount, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	total := totalCount(counts)
	maxLabel := GetMaxTableLabelWidth(cfg)

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Label", "Count", "Deaths", "Share %"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, count := range counts {
			row := []string{
				truncateLabel(count.Label, maxLabel),
				strconv.Itoa(count.Count),
				strconv.Itoa(count.Deaths),
				fmtFloat(share(count.Count, total)),
			}
			data = append(data, row)
		}

		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}

		fmt.Fprintf(w, "Breakdown of %d rows completed in %v\n", len(counts), duration)
		return nil
	}, "Wrote breakdown table")
}

// totalCount sums the counts across all rows of a breakdown.
func totalCount(counts []schema.GroupCount) int {
	total := 0
	for _, count := range counts {
		total += count.Count
	}
	return total
}
