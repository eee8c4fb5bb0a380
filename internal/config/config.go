// Package config loads and validates the application configuration from
// environment variables (prefix TREND) merged with an optional YAML file.
// Environment variables take precedence over file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix for all environment variables read by Load.
const EnvPrefix = "TREND"

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	InputDir  string `yaml:"input_dir" envconfig:"INPUT_DIR" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// PipelineConfig contains pipeline execution configuration
type PipelineConfig struct {
	// InputFormat selects the input reader: "csv" for comma-separated
	// files, "xlsx" for Excel workbooks.
	InputFormat string `yaml:"input_format" envconfig:"INPUT_FORMAT" validate:"oneof=csv xlsx"`
	// Workers bounds the number of tickers enriched concurrently.
	Workers int `yaml:"workers" envconfig:"WORKERS" validate:"min=1"`
	// OutputPrefix is prepended to the ticker symbol when naming the
	// per-ticker output artifact, e.g. "result_" yields result_AAPL.csv.
	OutputPrefix string `yaml:"output_prefix" envconfig:"OUTPUT_PREFIX" validate:"required"`
}

// Default returns the configuration used when neither file nor
// environment provides a value. Defaults live here rather than in
// struct tags so that file values are not clobbered by the env pass.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/trend-report.log",
		},
		Paths: PathsConfig{
			InputDir:  "raw_data",
			OutputDir: "output",
			LogsDir:   "logs",
		},
		Pipeline: PipelineConfig{
			InputFormat:  "csv",
			Workers:      4,
			OutputPrefix: "result_",
		},
	}
}

// Load loads configuration from environment variables and, if present,
// the YAML file named by configFile (empty string skips the file).
func Load(configFile string) (*Config, error) {
	cfg := Default()

	// File values first so environment variables override them
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile overlays values from a YAML file onto cfg. Keys absent
// from the file keep their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against its struct-level constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// EnsureDirectories creates the output and log directories if they do not
// exist. The input directory is deliberately not created: a missing input
// directory is an error the caller should see, not silently paper over.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// LogPath returns the resolved log file path, rooted in LogsDir when the
// configured path is relative.
func (c *Config) LogPath() string {
	if filepath.IsAbs(c.Logging.FilePath) {
		return c.Logging.FilePath
	}
	if filepath.Dir(c.Logging.FilePath) == "." {
		return filepath.Join(c.Paths.LogsDir, c.Logging.FilePath)
	}
	return c.Logging.FilePath
}
