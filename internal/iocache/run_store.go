package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rmonroe/shotline/internal/contract"
	"github.com/rmonroe/shotline/schema"
)

// RunStoreImpl implements the RunStore interface.
type RunStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// NewRunStore creates a new RunStore with the specified backend.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (contract.RunStore, error) {
	db, driverName, err := openStoreDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	// No-op store for disabled run tracking
	if backend == schema.NoneBackend {
		return &RunStoreImpl{db: nil, backend: backend}, nil
	}

	query := getCreateRunsQuery(backend)
	if _, err := db.Exec(query); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", runsTable, err)
	}

	return &RunStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// getCreateRunsQuery returns the CREATE TABLE query for shotline_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_time DATETIME(6) NOT NULL,
				config_params TEXT,
				slope DOUBLE,
				intercept DOUBLE,
				r_squared DOUBLE,
				p_value DOUBLE,
				n INT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				run_time TIMESTAMPTZ NOT NULL,
				config_params TEXT,
				slope DOUBLE PRECISION,
				intercept DOUBLE PRECISION,
				r_squared DOUBLE PRECISION,
				p_value DOUBLE PRECISION,
				n INTEGER
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_time TEXT NOT NULL,
				config_params TEXT,
				slope REAL,
				intercept REAL,
				r_squared REAL,
				p_value REAL,
				n INTEGER
			);
		`, quotedTableName)
	}
}

// RecordRun stores one completed run and returns its unique ID. The
// regression result is optional; commands without one pass nil.
func (rs *RunStoreImpl) RecordRun(params map[string]any, result *schema.RegressionResult) (int64, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return 0, nil
	}

	// Serialize config params to JSON
	configJSON, err := json.Marshal(params)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	var slope, intercept, rSquared, pValue any
	var n any
	if result != nil {
		slope, intercept, rSquared, pValue = result.Slope, result.Intercept, result.RSquared, result.PValue
		n = result.N
	}

	quotedTableName := quoteTableName(runsTable, rs.backend)
	runTime := formatTime(time.Now(), rs.backend)

	var runID int64
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (run_time, config_params, slope, intercept, r_squared, p_value, n)
			VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING run_id`, quotedTableName)
		err = rs.db.QueryRow(query, runTime, string(configJSON), slope, intercept, rSquared, pValue, n).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (run_time, config_params, slope, intercept, r_squared, p_value, n)
			VALUES (?, ?, ?, ?, ?, ?, ?)`, quotedTableName)
		var res sql.Result
		res, err = rs.db.Exec(query, runTime, string(configJSON), slope, intercept, rSquared, pValue, n)
		if err != nil {
			return 0, fmt.Errorf("failed to insert run: %w", err)
		}
		runID, err = res.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	return runID, nil
}

// Close closes the underlying connection.
func (rs *RunStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// GetStatus returns status information about recorded runs.
func (rs *RunStoreImpl) GetStatus() (schema.RunStatus, error) {
	status := schema.RunStatus{
		Backend:   rs.backend,
		Connected: rs.db != nil,
	}

	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}

	// Get total runs
	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(runsTable, rs.backend))
	row := rs.db.QueryRow(runsQuery)
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns == 0 {
		return status, nil
	}

	// Get last run info
	lastRunQuery := fmt.Sprintf("SELECT run_id, run_time FROM %s ORDER BY run_id DESC LIMIT 1", quoteTableName(runsTable, rs.backend))
	row = rs.db.QueryRow(lastRunQuery)

	switch rs.backend {
	case schema.SQLiteBackend:
		var lastRunTimeStr string
		if err := row.Scan(&status.LastRunID, &lastRunTimeStr); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		lastRunTime, err := time.Parse(time.RFC3339Nano, lastRunTimeStr)
		if err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		status.LastRunTime = lastRunTime
	default: // MySQL and PostgreSQL store as native datetime
		if err := row.Scan(&status.LastRunID, &status.LastRunTime); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
	}

	// Get oldest run time
	oldestRunQuery := fmt.Sprintf("SELECT run_time FROM %s ORDER BY run_id ASC LIMIT 1", quoteTableName(runsTable, rs.backend))
	row = rs.db.QueryRow(oldestRunQuery)

	switch rs.backend {
	case schema.SQLiteBackend:
		var oldestRunTimeStr string
		if err := row.Scan(&oldestRunTimeStr); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		oldestRunTime, err := time.Parse(time.RFC3339Nano, oldestRunTimeStr)
		if err != nil {
			return status, fmt.Errorf("failed to parse oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRunTime
	default: // MySQL and PostgreSQL store as native datetime
		if err := row.Scan(&status.OldestRunTime); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
	}

	return status, nil
}
