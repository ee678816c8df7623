package iocache

import (
	"errors"
	"fmt"

	"github.com/rmonroe/shotline/core"
	"github.com/rmonroe/shotline/internal/parquet"
)

// ExecuteStoreExport exports the stored dataset to Parquet files.
func ExecuteStoreExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the dataset store
	store := Manager.GetDatasetStore()

	incidents, report, ok, err := store.LoadIncidents()
	if err != nil {
		return fmt.Errorf("failed to load stored dataset: %w", err)
	}
	if !ok || len(incidents) == 0 {
		return errors.New("no stored dataset found to export. Run 'shotline fetch' first")
	}

	fmt.Printf("Exporting %d incidents fetched at %s...\n", len(incidents), report.FetchedAt.Format("2006-01-02 15:04:05"))

	// Write incidents to Parquet
	incidentsFile := outputFile + ".incidents.parquet"
	if err := parquet.WriteIncidents(incidents, incidentsFile); err != nil {
		return fmt.Errorf("failed to write incidents: %w", err)
	}
	fmt.Printf("Exported %d incidents to: %s\n", len(incidents), incidentsFile)

	// Write yearly summaries to Parquet
	summaries := core.YearlySummaries(incidents)
	summariesFile := outputFile + ".year_summaries.parquet"
	if err := parquet.WriteYearSummaries(summaries, summariesFile); err != nil {
		return fmt.Errorf("failed to write year summaries: %w", err)
	}
	fmt.Printf("Exported %d year summaries to: %s\n", len(summaries), summariesFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
