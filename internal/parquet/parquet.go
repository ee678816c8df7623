// Package parquet exports cleaned incidents and annual summaries to Parquet
// files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/rmonroe/shotline/schema"
)

// IncidentRow is the Parquet projection of one cleaned incident.
type IncidentRow struct {
	IncidentKey      string    `parquet:"incident_key,snappy"`
	OccurDate        time.Time `parquet:"occur_date,snappy"`
	OccurTime        string    `parquet:"occur_time,optional,snappy"`
	Boro             string    `parquet:"boro,snappy"`
	Precinct         string    `parquet:"precinct,optional,snappy"`
	JurisdictionCode int32     `parquet:"jurisdiction_code,snappy"`
	LocationDesc     string    `parquet:"location_desc,optional,snappy"`
	MurderFlag       bool      `parquet:"statistical_murder_flag,snappy"`
	PerpAgeGroup     string    `parquet:"perp_age_group,optional,snappy"`
	PerpSex          string    `parquet:"perp_sex,snappy"`
	PerpRace         string    `parquet:"perp_race,snappy"`
	VicAgeGroup      string    `parquet:"vic_age_group,optional,snappy"`
	VicSex           string    `parquet:"vic_sex,snappy"`
	VicRace          string    `parquet:"vic_race,snappy"`
}

// YearSummaryRow is the Parquet projection of one annual summary record.
type YearSummaryRow struct {
	Year           int32 `parquet:"year,snappy"`
	TotalIncidents int32 `parquet:"total_incidents,snappy"`
	TotalDeaths    int32 `parquet:"total_deaths,snappy"`
}

// WriteIncidents writes cleaned incidents to a Parquet file.
func WriteIncidents(incidents []schema.Incident, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the IncidentRow struct tags.
	writer := parquet.NewGenericWriter[IncidentRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(ConvertIncidents(incidents)); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// WriteYearSummaries writes the annual summary table to a Parquet file.
func WriteYearSummaries(summaries []schema.YearSummary, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[YearSummaryRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(ConvertYearSummaries(summaries)); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// ConvertIncidents converts schema.Incident to IncidentRow for Parquet export.
func ConvertIncidents(incidents []schema.Incident) []IncidentRow {
	rows := make([]IncidentRow, len(incidents))
	for i, incident := range incidents {
		rows[i] = IncidentRow{
			IncidentKey:      incident.IncidentKey,
			OccurDate:        incident.OccurDate,
			OccurTime:        incident.OccurTime,
			Boro:             incident.Boro,
			Precinct:         incident.Precinct,
			JurisdictionCode: int32(incident.JurisdictionCode),
			LocationDesc:     incident.LocationDesc,
			MurderFlag:       incident.MurderFlag,
			PerpAgeGroup:     incident.PerpAgeGroup,
			PerpSex:          incident.PerpSex,
			PerpRace:         incident.PerpRace,
			VicAgeGroup:      incident.VicAgeGroup,
			VicSex:           incident.VicSex,
			VicRace:          incident.VicRace,
		}
	}
	return rows
}

// ConvertYearSummaries converts schema.YearSummary to YearSummaryRow for Parquet export.
func ConvertYearSummaries(summaries []schema.YearSummary) []YearSummaryRow {
	rows := make([]YearSummaryRow, len(summaries))
	for i, summary := range summaries {
		rows[i] = YearSummaryRow{
			Year:           int32(summary.Year),
			TotalIncidents: int32(summary.TotalIncidents),
			TotalDeaths:    int32(summary.TotalDeaths),
		}
	}
	return rows
}
