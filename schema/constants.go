package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the dataset store.
	DatabaseBackend string

	// ChartKind identifies one of the rendered descriptive charts.
	ChartKind string

	// GroupKey identifies a categorical grouping for count breakdowns.
	GroupKey string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All dataset store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All descriptive charts rendered by the charts command.
const (
	BoroughChart   ChartKind = "boroughs"
	YearlyChart    ChartKind = "yearly"
	DeathsChart    ChartKind = "deaths"
	VictimSexChart ChartKind = "victim-sex"
)

// Categorical grouping keys for the demographics breakdowns.
const (
	GroupBorough  GroupKey = "borough"
	GroupVicSex   GroupKey = "vic-sex"
	GroupVicRace  GroupKey = "vic-race"
	GroupPerpSex  GroupKey = "perp-sex"
	GroupPerpRace GroupKey = "perp-race"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid dataset store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// AllChartKinds returns every chart the charts command renders, in render order.
var AllChartKinds = []ChartKind{BoroughChart, YearlyChart, DeathsChart, VictimSexChart}

// ValidGroupKeys lists all valid demographic grouping keys.
var ValidGroupKeys = map[GroupKey]struct{}{
	GroupBorough:  {},
	GroupVicSex:   {},
	GroupVicRace:  {},
	GroupPerpSex:  {},
	GroupPerpRace: {},
}
