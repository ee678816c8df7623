package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"   // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/rmonroe/shotline/internal/contract"
	"github.com/rmonroe/shotline/schema"
	_ "modernc.org/sqlite" // SQLite driver
)

// DatasetStoreImpl implements the DatasetStore interface.
type DatasetStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
	connStr    string
}

var _ contract.DatasetStore = &DatasetStoreImpl{} // Compile-time check

// NewDatasetStore creates a new DatasetStore with the specified backend.
func NewDatasetStore(backend schema.DatabaseBackend, connStr string) (contract.DatasetStore, error) {
	db, driverName, err := openStoreDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	// No-op store for disabled persistence
	if backend == schema.NoneBackend {
		return &DatasetStoreImpl{db: nil, backend: backend}, nil
	}

	// Create the table schemas
	if err := createDatasetTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create dataset tables: %w", err)
	}

	return &DatasetStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
		connStr:    connStr,
	}, nil
}

// createDatasetTables creates the incident and metadata tables.
func createDatasetTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{incidentsTable, getCreateIncidentsQuery(backend)},
		{datasetMetaTable, getCreateDatasetMetaQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateIncidentsQuery returns the CREATE TABLE query for shotline_incidents.
// incident_key is not unique: multi-victim incidents repeat the same key,
// one row per victim, so rows get a surrogate row_id key.
func getCreateIncidentsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(incidentsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				row_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				incident_key VARCHAR(64) NOT NULL,
				occur_date DATETIME(6) NOT NULL,
				occur_time VARCHAR(16) NOT NULL,
				boro VARCHAR(64) NOT NULL,
				precinct VARCHAR(16) NOT NULL,
				jurisdiction_code INT NOT NULL,
				location_desc VARCHAR(255),
				murder_flag BOOLEAN NOT NULL,
				perp_age_group VARCHAR(32) NOT NULL,
				perp_sex VARCHAR(32) NOT NULL,
				perp_race VARCHAR(64) NOT NULL,
				vic_age_group VARCHAR(32) NOT NULL,
				vic_sex VARCHAR(32) NOT NULL,
				vic_race VARCHAR(64) NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				row_id BIGSERIAL PRIMARY KEY,
				incident_key TEXT NOT NULL,
				occur_date TIMESTAMPTZ NOT NULL,
				occur_time TEXT NOT NULL,
				boro TEXT NOT NULL,
				precinct TEXT NOT NULL,
				jurisdiction_code INTEGER NOT NULL,
				location_desc TEXT,
				murder_flag BOOLEAN NOT NULL,
				perp_age_group TEXT NOT NULL,
				perp_sex TEXT NOT NULL,
				perp_race TEXT NOT NULL,
				vic_age_group TEXT NOT NULL,
				vic_sex TEXT NOT NULL,
				vic_race TEXT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				row_id INTEGER PRIMARY KEY AUTOINCREMENT,
				incident_key TEXT NOT NULL,
				occur_date TEXT NOT NULL,
				occur_time TEXT NOT NULL,
				boro TEXT NOT NULL,
				precinct TEXT NOT NULL,
				jurisdiction_code INTEGER NOT NULL,
				location_desc TEXT,
				murder_flag INTEGER NOT NULL,
				perp_age_group TEXT NOT NULL,
				perp_sex TEXT NOT NULL,
				perp_race TEXT NOT NULL,
				vic_age_group TEXT NOT NULL,
				vic_sex TEXT NOT NULL,
				vic_race TEXT NOT NULL
			);
		`, quotedTableName)
	}
}

// getCreateDatasetMetaQuery returns the CREATE TABLE query for shotline_dataset_meta.
// The table holds a single row describing the last stored fetch.
func getCreateDatasetMetaQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(datasetMetaTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				meta_id INT PRIMARY KEY,
				rows_read INT NOT NULL,
				rows_kept INT NOT NULL,
				dropped_no_juris INT NOT NULL,
				columns_discarded TEXT NOT NULL,
				fetched_at DATETIME(6) NOT NULL,
				source_url TEXT NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				meta_id INTEGER PRIMARY KEY,
				rows_read INTEGER NOT NULL,
				rows_kept INTEGER NOT NULL,
				dropped_no_juris INTEGER NOT NULL,
				columns_discarded TEXT NOT NULL,
				fetched_at TIMESTAMPTZ NOT NULL,
				source_url TEXT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				meta_id INTEGER PRIMARY KEY,
				rows_read INTEGER NOT NULL,
				rows_kept INTEGER NOT NULL,
				dropped_no_juris INTEGER NOT NULL,
				columns_discarded TEXT NOT NULL,
				fetched_at TEXT NOT NULL,
				source_url TEXT NOT NULL
			);
		`, quotedTableName)
	}
}

// SaveIncidents replaces the stored dataset with the given cleaned rows.
// The replace happens in a single transaction so readers never see a
// half-written dataset.
func (ds *DatasetStoreImpl) SaveIncidents(incidents []schema.Incident, report schema.CleanReport) error {
	// Skip for NoneBackend
	if ds.backend == schema.NoneBackend || ds.db == nil {
		return nil
	}

	columnsJSON, err := json.Marshal(report.ColumnsDiscarded)
	if err != nil {
		return fmt.Errorf("failed to marshal discarded columns: %w", err)
	}

	tx, err := ds.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	quotedIncidents := quoteTableName(incidentsTable, ds.backend)
	quotedMeta := quoteTableName(datasetMetaTable, ds.backend)

	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", quotedIncidents)); err != nil {
		return fmt.Errorf("failed to clear incidents table: %w", err)
	}
	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", quotedMeta)); err != nil {
		return fmt.Errorf("failed to clear dataset meta table: %w", err)
	}

	var metaQuery string
	switch ds.backend {
	case schema.PostgreSQLBackend:
		metaQuery = fmt.Sprintf(`INSERT INTO %s (meta_id, rows_read, rows_kept, dropped_no_juris, columns_discarded, fetched_at, source_url)
			VALUES (1, $1, $2, $3, $4, $5, $6)`, quotedMeta)
	default: // SQLite and MySQL
		metaQuery = fmt.Sprintf(`INSERT INTO %s (meta_id, rows_read, rows_kept, dropped_no_juris, columns_discarded, fetched_at, source_url)
			VALUES (1, ?, ?, ?, ?, ?, ?)`, quotedMeta)
	}
	_, err = tx.Exec(metaQuery,
		report.RowsRead, report.RowsKept, report.DroppedNoJurisID,
		string(columnsJSON), formatTime(report.FetchedAt, ds.backend), report.SourceURL)
	if err != nil {
		return fmt.Errorf("failed to insert dataset meta: %w", err)
	}

	var incidentQuery string
	switch ds.backend {
	case schema.PostgreSQLBackend:
		incidentQuery = fmt.Sprintf(`
			INSERT INTO %s (incident_key, occur_date, occur_time, boro, precinct, jurisdiction_code,
			                location_desc, murder_flag, perp_age_group, perp_sex, perp_race,
			                vic_age_group, vic_sex, vic_race)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`, quotedIncidents)
	default: // SQLite and MySQL
		incidentQuery = fmt.Sprintf(`
			INSERT INTO %s (incident_key, occur_date, occur_time, boro, precinct, jurisdiction_code,
			                location_desc, murder_flag, perp_age_group, perp_sex, perp_race,
			                vic_age_group, vic_sex, vic_race)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, quotedIncidents)
	}

	stmt, err := tx.Prepare(incidentQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare incident insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, inc := range incidents {
		_, err := stmt.Exec(
			inc.IncidentKey, formatTime(inc.OccurDate, ds.backend), inc.OccurTime,
			inc.Boro, inc.Precinct, inc.JurisdictionCode, inc.LocationDesc, inc.MurderFlag,
			inc.PerpAgeGroup, inc.PerpSex, inc.PerpRace,
			inc.VicAgeGroup, inc.VicSex, inc.VicRace,
		)
		if err != nil {
			return fmt.Errorf("failed to insert incident %s: %w", inc.IncidentKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset save: %w", err)
	}

	return nil
}

// LoadIncidents returns the stored dataset, or ok=false when nothing is stored.
func (ds *DatasetStoreImpl) LoadIncidents() ([]schema.Incident, schema.CleanReport, bool, error) {
	// Nothing stored for NoneBackend
	if ds.backend == schema.NoneBackend || ds.db == nil {
		return nil, schema.CleanReport{}, false, nil
	}

	report, ok, err := ds.loadMeta()
	if err != nil || !ok {
		return nil, schema.CleanReport{}, false, err
	}

	quotedTableName := quoteTableName(incidentsTable, ds.backend)
	query := fmt.Sprintf(`SELECT incident_key, occur_date, occur_time, boro, precinct, jurisdiction_code,
		location_desc, murder_flag, perp_age_group, perp_sex, perp_race,
		vic_age_group, vic_sex, vic_race
		FROM %s ORDER BY occur_date, incident_key, row_id`, quotedTableName)

	rows, err := ds.db.Query(query)
	if err != nil {
		return nil, schema.CleanReport{}, false, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var incidents []schema.Incident

	for rows.Next() {
		var inc schema.Incident
		var locationDesc sql.NullString

		switch ds.backend {
		case schema.SQLiteBackend:
			var occurDateStr string
			if err := rows.Scan(&inc.IncidentKey, &occurDateStr, &inc.OccurTime, &inc.Boro,
				&inc.Precinct, &inc.JurisdictionCode, &locationDesc, &inc.MurderFlag,
				&inc.PerpAgeGroup, &inc.PerpSex, &inc.PerpRace,
				&inc.VicAgeGroup, &inc.VicSex, &inc.VicRace); err != nil {
				return nil, schema.CleanReport{}, false, fmt.Errorf("failed to scan incident: %w", err)
			}
			occurDate, err := time.Parse(time.RFC3339Nano, occurDateStr)
			if err != nil {
				return nil, schema.CleanReport{}, false, fmt.Errorf("failed to parse occur_date: %w", err)
			}
			inc.OccurDate = occurDate
		default: // MySQL and PostgreSQL store as native datetime
			if err := rows.Scan(&inc.IncidentKey, &inc.OccurDate, &inc.OccurTime, &inc.Boro,
				&inc.Precinct, &inc.JurisdictionCode, &locationDesc, &inc.MurderFlag,
				&inc.PerpAgeGroup, &inc.PerpSex, &inc.PerpRace,
				&inc.VicAgeGroup, &inc.VicSex, &inc.VicRace); err != nil {
				return nil, schema.CleanReport{}, false, fmt.Errorf("failed to scan incident: %w", err)
			}
		}

		inc.LocationDesc = locationDesc.String
		incidents = append(incidents, inc)
	}

	if err := rows.Err(); err != nil {
		return nil, schema.CleanReport{}, false, fmt.Errorf("error iterating incidents: %w", err)
	}

	return incidents, report, true, nil
}

// loadMeta reads the single metadata row describing the stored dataset.
func (ds *DatasetStoreImpl) loadMeta() (schema.CleanReport, bool, error) {
	quotedTableName := quoteTableName(datasetMetaTable, ds.backend)
	query := fmt.Sprintf(`SELECT rows_read, rows_kept, dropped_no_juris, columns_discarded, fetched_at, source_url
		FROM %s WHERE meta_id = 1`, quotedTableName)

	row := ds.db.QueryRow(query)

	var report schema.CleanReport
	var columnsJSON string

	switch ds.backend {
	case schema.SQLiteBackend:
		var fetchedAtStr string
		err := row.Scan(&report.RowsRead, &report.RowsKept, &report.DroppedNoJurisID,
			&columnsJSON, &fetchedAtStr, &report.SourceURL)
		if err == sql.ErrNoRows {
			return schema.CleanReport{}, false, nil
		}
		if err != nil {
			return schema.CleanReport{}, false, fmt.Errorf("failed to read dataset meta: %w", err)
		}
		fetchedAt, err := time.Parse(time.RFC3339Nano, fetchedAtStr)
		if err != nil {
			return schema.CleanReport{}, false, fmt.Errorf("failed to parse fetched_at: %w", err)
		}
		report.FetchedAt = fetchedAt
	default: // MySQL and PostgreSQL store as native datetime
		err := row.Scan(&report.RowsRead, &report.RowsKept, &report.DroppedNoJurisID,
			&columnsJSON, &report.FetchedAt, &report.SourceURL)
		if err == sql.ErrNoRows {
			return schema.CleanReport{}, false, nil
		}
		if err != nil {
			return schema.CleanReport{}, false, fmt.Errorf("failed to read dataset meta: %w", err)
		}
	}

	if err := json.Unmarshal([]byte(columnsJSON), &report.ColumnsDiscarded); err != nil {
		return schema.CleanReport{}, false, fmt.Errorf("failed to unmarshal discarded columns: %w", err)
	}

	return report, true, nil
}

// Close closes the underlying connection.
func (ds *DatasetStoreImpl) Close() error {
	if ds.db != nil {
		return ds.db.Close()
	}
	return nil
}

// GetStatus returns status information about the dataset store.
func (ds *DatasetStoreImpl) GetStatus() (schema.DatasetStatus, error) {
	status := schema.DatasetStatus{
		Backend:   ds.backend,
		Connected: ds.db != nil,
	}

	if ds.backend == schema.NoneBackend || ds.db == nil {
		return status, nil
	}

	// Get total incidents
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(incidentsTable, ds.backend))
	row := ds.db.QueryRow(countQuery)
	if err := row.Scan(&status.TotalIncidents); err != nil {
		return status, fmt.Errorf("failed to get total incidents: %w", err)
	}

	if report, ok, err := ds.loadMeta(); err != nil {
		return status, err
	} else if ok {
		status.FetchedAt = report.FetchedAt
		status.SourceURL = report.SourceURL
	}

	// Estimate table size (approximate)
	switch ds.backend {
	case schema.SQLiteBackend:
		// For SQLite, use page_count * page_size
		sizeQuery := "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
		row = ds.db.QueryRow(sizeQuery)
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			// If pragma fails, skip size
			status.TableSizeBytes = 0
		}

	case schema.MySQLBackend:
		// Fallback rough estimate if information_schema query fails
		status.TableSizeBytes = int64(status.TotalIncidents) * 200

		// Use information_schema for MySQL
		cfg, err := mysql.ParseDSN(ds.connStr)
		if err != nil || cfg.DBName == "" {
			break
		}
		sizeQuery := "SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?"
		row := ds.db.QueryRow(sizeQuery, cfg.DBName, incidentsTable)
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			status.TableSizeBytes = int64(status.TotalIncidents) * 200
		}

	case schema.PostgreSQLBackend:
		// Use pg_total_relation_size for PostgreSQL
		sizeQuery := "SELECT pg_total_relation_size($1)"
		row = ds.db.QueryRow(sizeQuery, incidentsTable)
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			status.TableSizeBytes = int64(status.TotalIncidents) * 200 // Fallback rough estimate
		}
	}

	return status, nil
}
