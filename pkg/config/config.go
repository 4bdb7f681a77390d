// Package config provides configuration management for fertadvisor.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Tables: source, dir, deficiency_file, dosage_file, sqlite_path
//   - Model: path
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Engine: sample_threshold_fallback
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use FERTADVISOR_ prefix with underscores for nesting:
//
//	FERTADVISOR_TABLES_SOURCE=sqlite
//	FERTADVISOR_MODEL_PATH=/data/fertilizer_model.yaml
//	FERTADVISOR_LOG_LEVEL=info
//	FERTADVISOR_JOBS_NUMBER=8
package config

import (
	"path/filepath"
	"runtime"
)

// Config represents the complete fertadvisor configuration.
type Config struct {
	// Tables tells where reference tables are read from.
	Tables TablesConfig `mapstructure:"tables" yaml:"tables"`

	// Model locates the fertilizer classifier.
	Model ModelConfig `mapstructure:"model" yaml:"model"`

	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Engine tunes strategy selection.
	Engine EngineConfig `mapstructure:"engine" yaml:"engine"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for batch processing.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// TablesConfig describes the reference tables source.
type TablesConfig struct {
	// Source is 'csv', 'sqlite' or 'postgres'.
	Source string `mapstructure:"source" yaml:"source"`

	// Dir contains CSV files. Empty means the data directory
	// (~/.local/share/fertadvisor).
	Dir string `mapstructure:"dir" yaml:"dir"`

	// DeficiencyFile is the regional deficiency CSV.
	DeficiencyFile string `mapstructure:"deficiency_file" yaml:"deficiency_file"`

	// DosageFile is the dosage CSV.
	DosageFile string `mapstructure:"dosage_file" yaml:"dosage_file"`

	// SQLitePath is the SQLite database with both tables.
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
}

// ModelConfig locates the classifier file.
type ModelConfig struct {
	// Path to a YAML or JSON model file. Relative paths are resolved
	// against Tables.Dir.
	Path string `mapstructure:"path" yaml:"path"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of rows sent per CopyFrom call on import.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// EngineConfig tunes the recommendation engine.
type EngineConfig struct {
	// SampleThresholdFallback lets samples without a region use fixed
	// N-P-K thresholds when the model is unavailable.
	SampleThresholdFallback bool `mapstructure:"sample_threshold_fallback" yaml:"sample_threshold_fallback"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Tables: TablesConfig{
			Source:         "csv",
			DeficiencyFile: "state_soil_summary.csv",
			DosageFile:     "dosage_recommendation.csv",
			SQLitePath:     "fertadvisor.sqlite",
		},
		Model: ModelConfig{
			Path: "fertilizer_model.yaml",
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "fertadvisor",
			SSLMode:   "disable",
			BatchSize: 1_000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}

// TablesDir returns the directory of reference files.
func (c *Config) TablesDir() string {
	if c.Tables.Dir != "" {
		return c.Tables.Dir
	}
	return DataDir(c.HomeDir)
}

// DeficiencyPath returns the location of the deficiency CSV.
func (c *Config) DeficiencyPath() string {
	return c.resolve(c.Tables.DeficiencyFile)
}

// DosagePath returns the location of the dosage CSV.
func (c *Config) DosagePath() string {
	return c.resolve(c.Tables.DosageFile)
}

// SQLitePath returns the location of the SQLite database.
func (c *Config) SQLitePath() string {
	return c.resolve(c.Tables.SQLitePath)
}

// ModelPath returns the location of the model file.
func (c *Config) ModelPath() string {
	return c.resolve(c.Model.Path)
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.TablesDir(), path)
}
