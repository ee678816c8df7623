package schema

import "time"

// YearSummary is the derived annual record: one row per distinct year in the
// cleaned data, with total incidents and total deaths (murder flag true).
type YearSummary struct {
	Year           int `json:"year"`
	TotalIncidents int `json:"total_incidents"`
	TotalDeaths    int `json:"total_deaths"`
}

// GroupCount is one row of a categorical breakdown (borough, victim sex, ...).
type GroupCount struct {
	Key    GroupKey `json:"key"`
	Label  string   `json:"label"`
	Count  int      `json:"count"`
	Deaths int      `json:"deaths"`
}

// DatasetStatus holds status information about the dataset store.
type DatasetStatus struct {
	Backend        DatabaseBackend
	Connected      bool
	TotalIncidents int
	FetchedAt      time.Time
	SourceURL      string
	TableSizeBytes int64
}

// RunStatus holds status information about recorded analysis runs.
type RunStatus struct {
	Backend       DatabaseBackend
	Connected     bool
	TotalRuns     int
	LastRunID     int64
	LastRunTime   time.Time
	OldestRunTime time.Time
}
