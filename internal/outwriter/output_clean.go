package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rmonroe/shotline/internal/contract"
	"github.com/rmonroe/shotline/schema"
)

// PrintCleanReport outputs the cleaning summary, dispatching based on the
// output format configured.
func PrintCleanReport(report schema.CleanReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON clean report")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"rows_read", "rows_kept", "dropped_missing_jurisdiction", "columns_discarded"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				row := []string{
					strconv.Itoa(report.RowsRead),
					strconv.Itoa(report.RowsKept),
					strconv.Itoa(report.DroppedNoJurisID),
					strings.Join(report.ColumnsDiscarded, ";"),
				}
				return csvWriter.Write(row)
			})
		}, "Wrote CSV clean report")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			fmt.Fprintf(w, "Rows read: %d\n", report.RowsRead)
			fmt.Fprintf(w, "Rows kept: %d\n", report.RowsKept)
			fmt.Fprintf(w, "Dropped (missing jurisdiction code): %d\n", report.DroppedNoJurisID)
			fmt.Fprintf(w, "Columns discarded: %s\n", strings.Join(report.ColumnsDiscarded, ", "))
			if report.SourceURL != "" {
				fmt.Fprintf(w, "Source: %s\n", report.SourceURL)
			}
			fmt.Fprintf(w, "Clean completed in %v\n", duration)
			return nil
		}, "Wrote clean report")
	}
}

// PrintChartFiles lists the rendered chart paths.
func PrintChartFiles(files []string) {
	for _, file := range files {
		fmt.Printf("📈 Wrote %s\n", file)
	}
}

// PrintDatasetStatus prints dataset store status information.
func PrintDatasetStatus(status schema.DatasetStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Incidents: %d\n", status.TotalIncidents)
	if status.TotalIncidents > 0 {
		fmt.Printf("Fetched At: %s\n", status.FetchedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Source: %s\n", status.SourceURL)
	}
	fmt.Printf("Table Size: %d bytes\n", status.TableSizeBytes)
}

// PrintRunStatus prints run tracking status information.
func PrintRunStatus(status schema.RunStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run ID: %d\n", status.LastRunID)
		fmt.Printf("Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Run: %s\n", status.OldestRunTime.Format("2006-01-02 15:04:05"))
	}
}
