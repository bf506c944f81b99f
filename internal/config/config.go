// =============================================================================
// docctl - Configuration Module
// =============================================================================
//
// Loads the optional YAML configuration file (docctl.yaml by default). Every
// setting has a default matching the standard project layout, so running
// without a configuration file at all is the normal case; the file exists to
// rename directories or report files for projects with a different
// convention.
//
// CONFIGURATION FILE:
//   directories:
//     current_files: Current Files
//     pending: Pending Transmittals
//     accepted: Accepted Transmittals
//     rejected: Rejected Transmittals
//     reports: Reports
//     logs: Logs
//   database_file: transmittal_database.xlsx
//   document_list_file: document_list.xlsx
//   log_file: docctl.log
//   log_level: info
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Directories names the fixed subdirectories under the project root.
type Directories struct {
	// CurrentFiles holds the mirror of currently valid files.
	CurrentFiles string `yaml:"current_files"`

	// Pending holds submitted transmittals awaiting processing.
	Pending string `yaml:"pending"`

	// Accepted receives transmittals that passed validation.
	Accepted string `yaml:"accepted"`

	// Rejected receives transmittals that failed validation.
	Rejected string `yaml:"rejected"`

	// Reports holds the two persistent tables and run reports.
	Reports string `yaml:"reports"`

	// Logs holds the application log file.
	Logs string `yaml:"logs"`
}

// Config holds the application configuration.
type Config struct {
	// Directories names the project subdirectories.
	Directories Directories `yaml:"directories"`

	// DatabaseFile is the transmittal database workbook name under Reports.
	DatabaseFile string `yaml:"database_file"`

	// DocumentListFile is the document list workbook name under Reports.
	DocumentListFile string `yaml:"document_list_file"`

	// LogFile is the log file name under Logs.
	LogFile string `yaml:"log_file"`

	// LogLevel controls logging verbosity: "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from path. A missing file is not an error;
// the defaults are returned.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.Directories.CurrentFiles == "" {
		cfg.Directories.CurrentFiles = "Current Files"
	}
	if cfg.Directories.Pending == "" {
		cfg.Directories.Pending = "Pending Transmittals"
	}
	if cfg.Directories.Accepted == "" {
		cfg.Directories.Accepted = "Accepted Transmittals"
	}
	if cfg.Directories.Rejected == "" {
		cfg.Directories.Rejected = "Rejected Transmittals"
	}
	if cfg.Directories.Reports == "" {
		cfg.Directories.Reports = "Reports"
	}
	if cfg.Directories.Logs == "" {
		cfg.Directories.Logs = "Logs"
	}
	if cfg.DatabaseFile == "" {
		cfg.DatabaseFile = "transmittal_database.xlsx"
	}
	if cfg.DocumentListFile == "" {
		cfg.DocumentListFile = "document_list.xlsx"
	}
	if cfg.LogFile == "" {
		cfg.LogFile = "docctl.log"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}
