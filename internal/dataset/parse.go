// Package dataset parses and cleans the raw incident CSV feed.
package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rmonroe/shotline/schema"
)

// occurDateLayout matches the MM/DD/YYYY dates in the published feed.
// The non-padded form also accepts single-digit months and days.
const occurDateLayout = "1/2/2006"

// Parse reads the raw CSV body and produces cleaned incidents plus a report
// of what cleaning did. Cleaning follows three rules: coerce typed columns,
// discard the fixed geographic column list, and drop rows with a missing
// jurisdiction code. Any other schema deviation is an error that aborts
// the run.
func Parse(raw []byte) ([]schema.Incident, schema.CleanReport, error) {
	report := schema.CleanReport{FetchedAt: time.Now().UTC()}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, report, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols, err := indexColumns(header)
	if err != nil {
		return nil, report, err
	}
	report.ColumnsDiscarded = discardedIn(header)

	var incidents []schema.Incident
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, report, fmt.Errorf("malformed CSV row %d: %w", report.RowsRead+2, err)
		}
		report.RowsRead++

		// The only tolerated data defect: a missing jurisdiction code
		// drops the row.
		jurisCell := strings.TrimSpace(cols.get(record, schema.ColJurisdictionCode))
		if jurisCell == "" {
			report.DroppedNoJurisID++
			continue
		}

		incident, err := parseRow(record, cols, jurisCell)
		if err != nil {
			return nil, report, fmt.Errorf("row %d: %w", report.RowsRead+1, err)
		}
		incidents = append(incidents, incident)
	}

	report.RowsKept = len(incidents)
	return incidents, report, nil
}

// parseRow coerces one CSV record into a typed Incident.
func parseRow(record []string, cols columnIndex, jurisCell string) (schema.Incident, error) {
	var incident schema.Incident

	occurDate, err := time.Parse(occurDateLayout, strings.TrimSpace(cols.get(record, schema.ColOccurDate)))
	if err != nil {
		return incident, fmt.Errorf("cannot parse %s: %w", schema.ColOccurDate, err)
	}

	jurisdiction, err := strconv.Atoi(jurisCell)
	if err != nil {
		return incident, fmt.Errorf("cannot parse %s %q: %w", schema.ColJurisdictionCode, jurisCell, err)
	}

	murder, err := parseMurderFlag(cols.get(record, schema.ColMurderFlag))
	if err != nil {
		return incident, err
	}

	incident = schema.Incident{
		IncidentKey:      strings.TrimSpace(cols.get(record, schema.ColIncidentKey)),
		OccurDate:        occurDate,
		OccurTime:        strings.TrimSpace(cols.get(record, schema.ColOccurTime)),
		Boro:             schema.NormalizeCategory(cols.get(record, schema.ColBoro)),
		Precinct:         strings.TrimSpace(cols.get(record, schema.ColPrecinct)),
		JurisdictionCode: jurisdiction,
		LocationDesc:     schema.NormalizeCategory(cols.get(record, schema.ColLocationDesc)),
		MurderFlag:       murder,
		PerpAgeGroup:     schema.NormalizeCategory(cols.get(record, schema.ColPerpAgeGroup)),
		PerpSex:          schema.NormalizeCategory(cols.get(record, schema.ColPerpSex)),
		PerpRace:         schema.NormalizeCategory(cols.get(record, schema.ColPerpRace)),
		VicAgeGroup:      schema.NormalizeCategory(cols.get(record, schema.ColVicAgeGroup)),
		VicSex:           schema.NormalizeCategory(cols.get(record, schema.ColVicSex)),
		VicRace:          schema.NormalizeCategory(cols.get(record, schema.ColVicRace)),
	}
	return incident, nil
}

// parseMurderFlag coerces the statistical murder flag to a boolean. The feed
// has used both true/false and Y/N spellings over the years.
func parseMurderFlag(raw string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "TRUE", "Y", "YES", "1":
		return true, nil
	case "FALSE", "N", "NO", "0":
		return false, nil
	}
	return false, fmt.Errorf("cannot parse %s %q as boolean", schema.ColMurderFlag, raw)
}

// columnIndex maps column names to positions in the CSV header.
type columnIndex map[string]int

// get returns the cell for a named column, or "" when the feed omits it.
// Optional columns (OCCUR_TIME, PRECINCT, LOCATION_DESC, age groups) are
// absent from some published extracts.
func (c columnIndex) get(record []string, col string) string {
	idx, ok := c[col]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// indexColumns builds the header index and checks required columns.
func indexColumns(header []string) (columnIndex, error) {
	cols := make(columnIndex, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, required := range schema.RequiredColumns {
		if _, ok := cols[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("dataset header missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

// discardedIn returns the members of the fixed discard list that appear in
// the header. Discarding happens implicitly: the columns are simply never
// read into the Incident model.
func discardedIn(header []string) []string {
	present := make(map[string]struct{}, len(header))
	for _, name := range header {
		present[strings.TrimSpace(name)] = struct{}{}
	}
	var discarded []string
	for _, col := range schema.DiscardedColumns {
		if _, ok := present[col]; ok {
			discarded = append(discarded, col)
		}
	}
	return discarded
}
