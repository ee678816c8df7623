package schema

import "time"

// Column names from the published dataset schema. Columns are addressed by
// header name so the feed may reorder or append columns without breaking us.
const (
	ColIncidentKey      = "INCIDENT_KEY"
	ColOccurDate        = "OCCUR_DATE"
	ColOccurTime        = "OCCUR_TIME"
	ColBoro             = "BORO"
	ColPrecinct         = "PRECINCT"
	ColJurisdictionCode = "JURISDICTION_CODE"
	ColLocationDesc     = "LOCATION_DESC"
	ColMurderFlag       = "STATISTICAL_MURDER_FLAG"
	ColPerpAgeGroup     = "PERP_AGE_GROUP"
	ColPerpSex          = "PERP_SEX"
	ColPerpRace         = "PERP_RACE"
	ColVicAgeGroup      = "VIC_AGE_GROUP"
	ColVicSex           = "VIC_SEX"
	ColVicRace          = "VIC_RACE"
)

// RequiredColumns must all be present in the CSV header; a missing one is a
// schema deviation and aborts the run.
var RequiredColumns = []string{
	ColIncidentKey,
	ColOccurDate,
	ColBoro,
	ColJurisdictionCode,
	ColMurderFlag,
	ColPerpSex,
	ColPerpRace,
	ColVicSex,
	ColVicRace,
}

// DiscardedColumns is the fixed list of geographic columns dropped during
// cleaning. They never enter the Incident model.
var DiscardedColumns = []string{
	"X_COORD_CD",
	"Y_COORD_CD",
	"Latitude",
	"Longitude",
	"Lon_Lat",
}

// Incident represents one cleaned record from the shooting incident feed.
type Incident struct {
	IncidentKey      string    `json:"incident_key"`
	OccurDate        time.Time `json:"occur_date"`
	OccurTime        string    `json:"occur_time"`
	Boro             string    `json:"boro"`
	Precinct         string    `json:"precinct"`
	JurisdictionCode int       `json:"jurisdiction_code"`
	LocationDesc     string    `json:"location_desc"`
	MurderFlag       bool      `json:"statistical_murder_flag"`
	PerpAgeGroup     string    `json:"perp_age_group"`
	PerpSex          string    `json:"perp_sex"`
	PerpRace         string    `json:"perp_race"`
	VicAgeGroup      string    `json:"vic_age_group"`
	VicSex           string    `json:"vic_sex"`
	VicRace          string    `json:"vic_race"`
}

// Year returns the calendar year of the occurrence date.
func (i Incident) Year() int {
	return i.OccurDate.Year()
}

// CleanReport summarizes what cleaning did to the raw feed.
type CleanReport struct {
	RowsRead         int       `json:"rows_read"`
	RowsKept         int       `json:"rows_kept"`
	DroppedNoJurisID int       `json:"dropped_missing_jurisdiction"`
	ColumnsDiscarded []string  `json:"columns_discarded"`
	FetchedAt        time.Time `json:"fetched_at"`
	SourceURL        string    `json:"source_url"`
}
