package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rmonroe/shotline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIncidents() []schema.Incident {
	return []schema.Incident{
		{
			IncidentKey:      "100001",
			OccurDate:        time.Date(2018, 7, 4, 0, 0, 0, 0, time.UTC),
			OccurTime:        "23:15:00",
			Boro:             "BROOKLYN",
			Precinct:         "73",
			JurisdictionCode: 0,
			LocationDesc:     "MULTI DWELL - PUBLIC HOUS",
			MurderFlag:       true,
			PerpAgeGroup:     "25-44",
			PerpSex:          "M",
			PerpRace:         "BLACK",
			VicAgeGroup:      "18-24",
			VicSex:           "M",
			VicRace:          "BLACK",
		},
		{
			IncidentKey:      "100002",
			OccurDate:        time.Date(2019, 1, 12, 0, 0, 0, 0, time.UTC),
			OccurTime:        "02:30:00",
			Boro:             "QUEENS",
			Precinct:         "103",
			JurisdictionCode: 2,
			MurderFlag:       false,
			PerpAgeGroup:     schema.UnknownCategory,
			PerpSex:          schema.UnknownCategory,
			PerpRace:         schema.UnknownCategory,
			VicAgeGroup:      "25-44",
			VicSex:           "F",
			VicRace:          "WHITE HISPANIC",
		},
	}
}

func testReport() schema.CleanReport {
	return schema.CleanReport{
		RowsRead:         3,
		RowsKept:         2,
		DroppedNoJurisID: 1,
		ColumnsDiscarded: schema.DiscardedColumns,
		FetchedAt:        time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		SourceURL:        "https://example.com/rows.csv",
	}
}

func TestDatasetStore_NoneBackend(t *testing.T) {
	store, err := NewDatasetStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// Save should be a no-op
	err = store.SaveIncidents(testIncidents(), testReport())
	assert.NoError(t, err)

	// Load should report nothing stored
	_, _, ok, err := store.LoadIncidents()
	assert.NoError(t, err)
	assert.False(t, ok)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)
	assert.False(t, status.Connected)

	err = store.Close()
	assert.NoError(t, err)
}

func TestDatasetStore_SQLiteRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shotline_test.db")

	store, err := NewDatasetStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Empty store reports nothing stored
	_, _, ok, err := store.LoadIncidents()
	require.NoError(t, err)
	assert.False(t, ok)

	incidents := testIncidents()
	report := testReport()
	require.NoError(t, store.SaveIncidents(incidents, report))

	loaded, loadedReport, ok, err := store.LoadIncidents()
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, loaded, 2)

	// Rows come back ordered by occurrence date
	assert.Equal(t, "100001", loaded[0].IncidentKey)
	assert.Equal(t, "100002", loaded[1].IncidentKey)
	assert.True(t, loaded[0].MurderFlag)
	assert.False(t, loaded[1].MurderFlag)
	assert.Equal(t, "BROOKLYN", loaded[0].Boro)
	assert.Equal(t, "73", loaded[0].Precinct)
	assert.Equal(t, 2, loaded[1].JurisdictionCode)
	assert.Equal(t, schema.UnknownCategory, loaded[1].PerpSex)
	assert.True(t, loaded[0].OccurDate.Equal(incidents[0].OccurDate))

	assert.Equal(t, report.RowsRead, loadedReport.RowsRead)
	assert.Equal(t, report.RowsKept, loadedReport.RowsKept)
	assert.Equal(t, report.DroppedNoJurisID, loadedReport.DroppedNoJurisID)
	assert.Equal(t, report.ColumnsDiscarded, loadedReport.ColumnsDiscarded)
	assert.Equal(t, report.SourceURL, loadedReport.SourceURL)
	assert.True(t, loadedReport.FetchedAt.Equal(report.FetchedAt))
}

func TestDatasetStore_DuplicateIncidentKeys(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shotline_test.db")

	store, err := NewDatasetStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Multi-victim incidents repeat the incident key, one row per victim.
	incidents := testIncidents()
	second := incidents[0]
	second.VicAgeGroup = "25-44"
	second.VicSex = "F"
	incidents = append(incidents, second)

	report := testReport()
	report.RowsKept = 3
	require.NoError(t, store.SaveIncidents(incidents, report))

	loaded, _, ok, err := store.LoadIncidents()
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, loaded, 3)

	assert.Equal(t, "100001", loaded[0].IncidentKey)
	assert.Equal(t, "100001", loaded[1].IncidentKey)
	assert.Equal(t, "100002", loaded[2].IncidentKey)
	assert.Equal(t, "M", loaded[0].VicSex)
	assert.Equal(t, "F", loaded[1].VicSex)
}

func TestDatasetStore_SaveReplacesPrevious(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shotline_test.db")

	store, err := NewDatasetStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.SaveIncidents(testIncidents(), testReport()))

	// Second save with a single row replaces the first dataset entirely
	replacement := testIncidents()[:1]
	newReport := testReport()
	newReport.RowsKept = 1
	require.NoError(t, store.SaveIncidents(replacement, newReport))

	loaded, loadedReport, ok, err := store.LoadIncidents()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, loaded, 1)
	assert.Equal(t, 1, loadedReport.RowsKept)
}

func TestDatasetStore_GetStatus(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shotline_test.db")

	store, err := NewDatasetStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalIncidents)

	require.NoError(t, store.SaveIncidents(testIncidents(), testReport()))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalIncidents)
	assert.Equal(t, "https://example.com/rows.csv", status.SourceURL)
	assert.False(t, status.FetchedAt.IsZero())
	assert.Greater(t, status.TableSizeBytes, int64(0))
}

func TestDatasetStore_UnsupportedBackend(t *testing.T) {
	_, err := NewDatasetStore(schema.DatabaseBackend("bogus"), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}
