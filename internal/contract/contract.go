// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/rmonroe/shotline/schema"
)

// Fetcher downloads the raw dataset CSV. This allows the pipeline to be
// tested without network access.
type Fetcher interface {
	// Fetch performs a single GET of the dataset and returns the raw CSV body.
	// Transport errors and non-2xx statuses are fatal to the run.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// StoreManager defines the interface for managing the persistence stores.
// This allows the store layer to be mocked for testing.
type StoreManager interface {
	GetDatasetStore() DatasetStore
	GetRunStore() RunStore
}

// DatasetStore persists cleaned incidents between runs so repeat commands
// do not re-download the feed.
type DatasetStore interface {
	// SaveIncidents replaces the stored dataset with the given cleaned rows.
	SaveIncidents(incidents []schema.Incident, report schema.CleanReport) error

	// LoadIncidents returns the stored dataset, or ok=false when empty.
	LoadIncidents() (incidents []schema.Incident, report schema.CleanReport, ok bool, err error)

	// GetStatus returns status information about the dataset store.
	GetStatus() (schema.DatasetStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// RunStore records analysis runs for later inspection.
type RunStore interface {
	// RecordRun stores one completed run with its parameters and regression result.
	RecordRun(params map[string]any, result *schema.RegressionResult) (int64, error)

	// GetStatus returns status information about recorded runs.
	GetStatus() (schema.RunStatus, error)

	// Close closes the underlying connection.
	Close() error
}
