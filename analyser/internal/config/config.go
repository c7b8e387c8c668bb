package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/osler/analysers/analyser/internal/threshold"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultReportPath = "mgmt_report.txt"
	DefaultLogLevel   = "info"
)

// Source types.
const (
	SourceFile     = "file"
	SourceEmbedded = "embedded"
)

// Config is the top-level analyser configuration.
type Config struct {
	Data       DataConfig       `yaml:"data"`
	Report     ReportConfig     `yaml:"report"`
	Thresholds []threshold.Rule `yaml:"thresholds"`

	// LogLevel is one of: debug | info | warn | error.
	LogLevel string `yaml:"log_level"`
}

// DataConfig selects where raw records come from.
type DataConfig struct {
	// Source is file | embedded. Empty means file when DataPath is set,
	// embedded otherwise.
	Source string `yaml:"source"`

	// DataPath is the comma-separated data file.
	DataPath string `yaml:"data_path"`

	// ExpiryPath is the optional "name,timestamp" expiry file.
	ExpiryPath string `yaml:"expiry_path"`

	// Watch reloads the data when DataPath or ExpiryPath changes.
	Watch bool `yaml:"watch"`
}

// ReportConfig controls where generated output is written.
type ReportConfig struct {
	// Path is the text report, overwritten on every generation.
	Path string `yaml:"path"`

	// JSONPath, when set, also writes the snapshot as JSON.
	JSONPath string `yaml:"json_path"`

	// PromPath, when set, also writes Prometheus text-format gauges.
	PromPath string `yaml:"prom_path"`
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	cfg.Thresholds = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	if cfg.Thresholds == nil {
		cfg.Thresholds = threshold.DefaultRules()
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in configuration used when no file is given:
// the embedded sample data and the default report and rules.
func Default() *Config {
	cfg := defaults()
	cfg.Data.Source = SourceEmbedded
	return cfg
}

// Level maps LogLevel to a slog level. Unknown values map to Info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WatchPaths returns the files whose change should trigger a reload.
func (c *Config) WatchPaths() []string {
	if !c.Data.Watch || c.Data.Source != SourceFile {
		return nil
	}
	paths := []string{c.Data.DataPath}
	if c.Data.ExpiryPath != "" {
		paths = append(paths, c.Data.ExpiryPath)
	}
	return paths
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Report:     ReportConfig{Path: DefaultReportPath},
		Thresholds: threshold.DefaultRules(),
		LogLevel:   DefaultLogLevel,
	}
}

// validate resolves the source type and checks structural constraints.
func validate(cfg *Config) error {
	if cfg.Data.Source == "" {
		if cfg.Data.DataPath != "" {
			cfg.Data.Source = SourceFile
		} else {
			cfg.Data.Source = SourceEmbedded
		}
	}
	switch cfg.Data.Source {
	case SourceFile:
		if cfg.Data.DataPath == "" {
			return fmt.Errorf("data.data_path is required for source %q", SourceFile)
		}
	case SourceEmbedded:
	default:
		return fmt.Errorf("data.source: unknown type %q", cfg.Data.Source)
	}

	if cfg.Report.Path == "" {
		return fmt.Errorf("report.path is required")
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level: unknown level %q", cfg.LogLevel)
	}

	for i, r := range cfg.Thresholds {
		if err := threshold.Validate(r); err != nil {
			return fmt.Errorf("thresholds[%d]: %w", i, err)
		}
	}
	return nil
}
