package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/rmonroe/shotline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleIncidents() []schema.Incident {
	return []schema.Incident{
		{
			IncidentKey:      "100",
			OccurDate:        time.Date(2019, time.May, 27, 0, 0, 0, 0, time.UTC),
			Boro:             "QUEENS",
			JurisdictionCode: 0,
			MurderFlag:       false,
			PerpSex:          "M",
			PerpRace:         "BLACK",
			VicSex:           "M",
			VicRace:          "BLACK",
		},
		{
			IncidentKey:      "101",
			OccurDate:        time.Date(2020, time.July, 4, 0, 0, 0, 0, time.UTC),
			Boro:             "BRONX",
			JurisdictionCode: 2,
			MurderFlag:       true,
			PerpSex:          "UNKNOWN",
			PerpRace:         "UNKNOWN",
			VicSex:           "F",
			VicRace:          "WHITE HISPANIC",
		},
	}
}

// TestWriteIncidents writes incidents and reads them back through the
// generic reader to confirm the schema round-trips.
func TestWriteIncidents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "incidents.parquet")

	require.NoError(t, WriteIncidents(sampleIncidents(), path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	require.NoError(t, err)

	reader := parquet.NewGenericReader[IncidentRow](file)
	defer func() { _ = reader.Close() }()
	assert.Equal(t, int64(2), reader.NumRows())

	rows := make([]IncidentRow, 2)
	n, _ := reader.Read(rows)
	require.Equal(t, 2, n)
	assert.Equal(t, "100", rows[0].IncidentKey)
	assert.Equal(t, "QUEENS", rows[0].Boro)
	assert.True(t, rows[1].MurderFlag)
	assert.Greater(t, info.Size(), int64(0))
}

// TestWriteYearSummaries round-trips the annual summary table.
func TestWriteYearSummaries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yearly.parquet")
	summaries := []schema.YearSummary{
		{Year: 2018, TotalIncidents: 100, TotalDeaths: 20},
		{Year: 2019, TotalIncidents: 90, TotalDeaths: 18},
	}

	require.NoError(t, WriteYearSummaries(summaries, path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[YearSummaryRow](file)
	defer func() { _ = reader.Close() }()

	rows := make([]YearSummaryRow, 2)
	n, _ := reader.Read(rows)
	require.Equal(t, 2, n)
	assert.Equal(t, int32(2018), rows[0].Year)
	assert.Equal(t, int32(18), rows[1].TotalDeaths)
}

// TestWriteIncidentsBadPath verifies unwritable paths surface as errors.
func TestWriteIncidentsBadPath(t *testing.T) {
	err := WriteIncidents(sampleIncidents(), filepath.Join(t.TempDir(), "missing", "out.parquet"))
	assert.Error(t, err)
}

// TestConvertIncidentsEmpty keeps the converters total on empty input.
func TestConvertIncidentsEmpty(t *testing.T) {
	assert.Empty(t, ConvertIncidents(nil))
	assert.Empty(t, ConvertYearSummaries(nil))
}
