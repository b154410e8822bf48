// =============================================================================
// Monarch Importer - Configuration Module
// =============================================================================
//
// This module loads and manages the application configuration: directories,
// logging, delimited-file settings, the Monarch directory connection, and the
// sales-agent table.
//
// ARCHITECTURE:
//   All mapping defaults that used to be hard-coded module state (the sales
//   agent table, header synonym overrides) live here as immutable data and
//   are injected into the importers per run. The mapping tables themselves
//   stay pure functions.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration, loaded from config.yaml.
type Config struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the directory scanned for input files (.csv, .zip, .xlsx).
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where generated fixed-width files and
	// rejection reports are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir is the directory where processed input files are moved
	// after successful processing.
	// Default: "./archive"
	ArchiveDir string `yaml:"archive_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls verbosity: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the slog handler: "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat defines output file names. Placeholders:
	//   {type}      - record type (customer, job, wip)
	//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - a random UUID
	// Default: "{type}_{timestamp}_{uuid}.txt"
	OutputNameFormat string `yaml:"output_name_format"`

	// =========================================================================
	// INPUT FILE SETTINGS
	// =========================================================================

	// CSV contains settings for parsing delimited input files.
	CSV CSVSettings `yaml:"csv"`

	// =========================================================================
	// MONARCH DIRECTORY SETTINGS
	// =========================================================================

	// Monarch contains the customer directory service connection settings.
	Monarch MonarchSettings `yaml:"monarch"`

	// =========================================================================
	// SALES AGENT TABLE
	// =========================================================================

	// SalesAgents maps source-system sales rep ids to Monarch agent names.
	SalesAgents SalesAgentSettings `yaml:"sales_agents"`

	// =========================================================================
	// HEADER SYNONYM OVERRIDES
	// =========================================================================

	// HeaderSynonyms appends site-specific header spellings to the built-in
	// synonym tables. Keys are logical field names (account_name, order_id,
	// due_date, ...); values are extra header spellings to accept.
	HeaderSynonyms map[string][]string `yaml:"header_synonyms"`
}

// CSVSettings contains settings for parsing delimited input files.
type CSVSettings struct {
	// Delimiter separates fields. Common values: "," "|" "\t".
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// HeaderRow is the 1-based row number carrying the column headers.
	// Default: 1
	HeaderRow int `yaml:"header_row"`

	// Encoding is the character encoding of the input files.
	// Supported: "UTF-8", "ISO-8859-1", "Windows-1252".
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`
}

// MonarchSettings contains the Monarch customer directory connection.
type MonarchSettings struct {
	// BaseURL is the directory service root, e.g. "https://monarch.example.com/api".
	BaseURL string `yaml:"base_url"`

	// Username and Password are the HTTP Basic authentication credentials.
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// TimeoutSeconds bounds each lookup call. The legacy importer had no
	// timeout; keep this set to avoid unbounded hangs on a stalled call.
	// Default: 30
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Timeout returns the lookup timeout as a duration.
func (m MonarchSettings) Timeout() time.Duration {
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// SalesAgentSettings is the sales rep id -> agent name lookup table.
type SalesAgentSettings struct {
	// Table maps source rep ids to Monarch agent names.
	Table map[string]string `yaml:"table"`

	// Default is the agent used when no id matches.
	// Default: "House"
	Default string `yaml:"default"`
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// Load reads and validates the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the Config struct with defaults applied.
//   - An error if the file cannot be read or parsed.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration with all defaults applied and no file
// loaded. Used by tests and by commands that run without a config file.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputDir == "" {
		cfg.InputDir = "./input"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = "./archive"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.OutputNameFormat == "" {
		cfg.OutputNameFormat = "{type}_{timestamp}_{uuid}.txt"
	}

	// CSV settings defaults.
	if cfg.CSV.Delimiter == "" {
		cfg.CSV.Delimiter = ","
	}
	if cfg.CSV.HeaderRow == 0 {
		cfg.CSV.HeaderRow = 1
	}
	if cfg.CSV.Encoding == "" {
		cfg.CSV.Encoding = "UTF-8"
	}

	// Monarch settings defaults.
	if cfg.Monarch.TimeoutSeconds == 0 {
		cfg.Monarch.TimeoutSeconds = 30
	}

	// Sales agent defaults. The table ships with the known rep ids; sites
	// override or extend it in config.yaml.
	if cfg.SalesAgents.Default == "" {
		cfg.SalesAgents.Default = "House"
	}
	if cfg.SalesAgents.Table == nil {
		cfg.SalesAgents.Table = map[string]string{
			"1": "R. Delgado",
			"2": "S. Whitfield",
			"3": "M. Okafor",
			"4": "T. Brandt",
			"5": "House",
		}
	}
}

// validate checks the loaded configuration for unusable values.
func validate(cfg *Config) error {
	if cfg.Monarch.BaseURL == "" {
		return fmt.Errorf("monarch.base_url is required")
	}
	if cfg.Monarch.Username == "" || cfg.Monarch.Password == "" {
		return fmt.Errorf("monarch.username and monarch.password are required")
	}
	if cfg.Monarch.TimeoutSeconds < 0 {
		return fmt.Errorf("monarch.timeout_seconds must not be negative")
	}
	if cfg.CSV.HeaderRow < 1 {
		return fmt.Errorf("csv.header_row must be at least 1")
	}

	switch cfg.CSV.Encoding {
	case "UTF-8", "ISO-8859-1", "Windows-1252":
	default:
		return fmt.Errorf("unsupported csv.encoding: %s", cfg.CSV.Encoding)
	}

	return nil
}
