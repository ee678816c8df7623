package cmd

import (
	"fmt"

	"github.com/rmonroe/shotline/internal/contract"
	"github.com/rmonroe/shotline/internal/iocache"
	"github.com/rmonroe/shotline/internal/outwriter"
	"github.com/rmonroe/shotline/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize the stores with the loaded config
	if err := iocache.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on store management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by analysis commands. This avoids dataset URL
// validation and complex config processing for simple store operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the stored dataset and run history",
	Long: `Manage the durable store that keeps the cleaned dataset between runs.

Shotline persists the cleaned incident rows after a fetch so repeat commands
do not re-download the feed, and records every analysis run for later
inspection.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show store statistics and connection info
  clear   - Remove the stored dataset and run history
  export  - Export the stored dataset to Parquet files
  migrate - Run database schema migrations

Examples:
  # Check store status
  shotline cache status

  # Clear everything stored
  shotline cache clear`,
}

// cacheStatusCmd shows store status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the dataset store and run history.

Displays:
- Backend type and connection status
- Total stored incidents, fetch time and source URL
- Total recorded runs with last and oldest run timestamps

Examples:
  # Check store status
  shotline cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		datasetStatus, err := iocache.Manager.GetDatasetStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get dataset store status", err)
		}
		outwriter.PrintDatasetStatus(datasetStatus)

		runStatus, err := iocache.Manager.GetRunStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run store status", err)
		}
		outwriter.PrintRunStatus(runStatus)
	},
}

// cacheClearCmd clears the store.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored dataset and run history",
	Long: `Delete all stored data from the configured backend.

Use this when:
- The feed published corrected data and the stored copy is stale
- The store may be corrupted
- Testing a full re-download

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the store tables

Examples:
  # Clear SQLite store (default)
  shotline cache clear

  # Clear MySQL store (set connection string via env variable)
  SHOTLINE_STORE_BACKEND=mysql SHOTLINE_STORE_DB_CONNECT="..." shotline cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearStore(cfg.StoreBackend, iocache.GetDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// cacheExportCmd exports the stored dataset to Parquet.
var cacheExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the stored dataset to Parquet files",
	Long: `Export the stored incidents and derived yearly summaries to Parquet.

Writes two files next to the given output prefix:
  <output-file>.incidents.parquet
  <output-file>.year_summaries.parquet

Examples:
  # Export to shotline.incidents.parquet and shotline.year_summaries.parquet
  shotline cache export --output-file shotline`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteStoreExport(viper.GetString("output-file")); err != nil {
			contract.LogFatal("Failed to export store", err)
		}
	},
}

// cacheMigrateCmd runs schema migrations for the store.
var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations for the store",
	Long: `Apply versioned schema migrations to the configured store backend.

By default migrates to the latest version. Use --target-version to pin a
specific version, or 0 to roll everything back.

Examples:
  # Migrate to the latest version
  shotline cache migrate

  # Roll back all migrations
  shotline cache migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Migrations open their own connection; only config loading is needed.
		if err := loadConfigFile(); err != nil {
			return err
		}
		backend := schema.DatabaseBackend(viper.GetString("store-backend"))
		connStr := viper.GetString("store-db-connect")
		if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
			return err
		}
		cfg.StoreBackend = backend
		cfg.StoreDBConnect = connStr
		return nil
	},
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
