package contract

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rmonroe/shotline/schema"
)

// Default values for configuration.
const (
	// DefaultDatasetURL is the published NYPD Shooting Incident Data (Historic) CSV.
	DefaultDatasetURL = "https://data.cityofnewyork.us/api/views/833y-fsy8/rows.csv?accessType=DOWNLOAD"

	DefaultResultLimit  = 25
	MaxResultLimit      = 1000
	DefaultPrecision    = 1
	MaxPrecision        = 6
	DefaultChartDir     = "charts"
	DefaultFetchTimeout = 2 * time.Minute
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig validates the profiling prefix and fills cfg.
func ProcessProfilingConfig(cfg *ProfileConfig, prefix string) error {
	if prefix == "" {
		cfg.Enabled = false
		return nil
	}
	if strings.ContainsAny(prefix, " \t") {
		return fmt.Errorf("profile prefix %q must not contain whitespace", prefix)
	}
	cfg.Enabled = true
	cfg.Prefix = prefix
	return nil
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	DatasetURL   string
	FetchTimeout time.Duration
	Refresh      bool

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	ChartDir string
	Group    schema.GroupKey

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	URL        string `mapstructure:"url"`
	Timeout    string `mapstructure:"timeout"`
	Refresh    bool   `mapstructure:"refresh"`
	Limit      int    `mapstructure:"limit"`
	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Width      int    `mapstructure:"width"`
	ChartDir   string `mapstructure:"chart-dir"`
	Group      string `mapstructure:"group"`
	Backend    string `mapstructure:"store-backend"`
	DBConnect  string `mapstructure:"store-db-connect"`
	Color      string `mapstructure:"color"`
	Config     string `mapstructure:"config"`
}

// Clone returns a shallow copy of the config, used by MCP handlers that
// override fields per request.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate converts the raw input into the final validated Config.
// It is the single place where flag/env/file values are checked.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// Dataset URL
	rawURL := input.URL
	if rawURL == "" {
		rawURL = DefaultDatasetURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid dataset url %q", rawURL)
	}
	cfg.DatasetURL = rawURL

	// Fetch timeout
	cfg.FetchTimeout = DefaultFetchTimeout
	if input.Timeout != "" {
		d, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", input.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %q", input.Timeout)
		}
		cfg.FetchTimeout = d
	}

	cfg.Refresh = input.Refresh

	// Result limit
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 1 and %d, got %d", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// Precision
	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d, got %d", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	// Output mode
	output := schema.OutputMode(input.Output)
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode %q", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile

	if input.Width < 0 {
		return fmt.Errorf("width must be non-negative, got %d", input.Width)
	}
	cfg.Width = input.Width

	// Chart directory
	cfg.ChartDir = input.ChartDir
	if cfg.ChartDir == "" {
		cfg.ChartDir = DefaultChartDir
	}

	// Demographic grouping key
	group := schema.GroupKey(input.Group)
	if input.Group == "" {
		group = schema.GroupVicSex
	}
	if _, ok := schema.ValidGroupKeys[group]; !ok {
		return fmt.Errorf("invalid group key %q", input.Group)
	}
	cfg.Group = group

	// Store backend
	backend := schema.DatabaseBackend(input.Backend)
	if _, ok := schema.ValidStoreBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend %q", input.Backend)
	}
	if err := ValidateDatabaseConnectionString(backend, input.DBConnect); err != nil {
		return err
	}
	cfg.StoreBackend = backend
	cfg.StoreDBConnect = input.DBConnect

	cfg.UseColors = parseBoolish(input.Color, true)

	return nil
}

// ValidateDatabaseConnectionString checks that server backends carry a
// connection string and sqlite/none do not require one.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store backend %q requires --store-db-connect", backend)
		}
	case schema.SQLiteBackend, schema.NoneBackend:
		// Connection string optional (sqlite path override) or ignored.
	default:
		return fmt.Errorf("unsupported store backend: %s", backend)
	}
	return nil
}

// parseBoolish interprets yes/no style flag values.
func parseBoolish(v string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return fallback
	}
}
