package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Valid(t *testing.T) {
	yaml := `
data:
  source: file
  data_path: "/srv/analysers/data.csv"
  expiry_path: "/srv/analysers/expiry.txt"
  watch: true
report:
  path: "/srv/analysers/mgmt_report.txt"
  json_path: "/srv/analysers/report.json"
  prom_path: "/var/lib/node_exporter/analysers.prom"
thresholds:
  - name: very-high
    condition: "positive_pct >= 75"
    severity: critical
  - name: small-sample
    condition: "tested < 20"
    severity: info
log_level: debug
`
	cfg := loadFromString(t, yaml)

	if cfg.Data.Source != SourceFile {
		t.Errorf("source: got %q", cfg.Data.Source)
	}
	if cfg.Data.DataPath != "/srv/analysers/data.csv" {
		t.Errorf("data_path: got %q", cfg.Data.DataPath)
	}
	if cfg.Report.PromPath != "/var/lib/node_exporter/analysers.prom" {
		t.Errorf("prom_path: got %q", cfg.Report.PromPath)
	}
	if len(cfg.Thresholds) != 2 {
		t.Fatalf("thresholds: got %d, want 2", len(cfg.Thresholds))
	}
	if cfg.Thresholds[0].Name != "very-high" {
		t.Errorf("threshold name: got %q", cfg.Thresholds[0].Name)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level(): got %v", cfg.Level())
	}
	paths := cfg.WatchPaths()
	if len(paths) != 2 {
		t.Errorf("WatchPaths(): got %v", paths)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := loadFromString(t, "data:\n  data_path: data.csv\n")

	if cfg.Data.Source != SourceFile {
		t.Errorf("source inferred from data_path: got %q, want %q", cfg.Data.Source, SourceFile)
	}
	if cfg.Report.Path != DefaultReportPath {
		t.Errorf("default report path: got %q, want %q", cfg.Report.Path, DefaultReportPath)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("default log_level: got %q", cfg.LogLevel)
	}
	if len(cfg.Thresholds) != 1 || cfg.Thresholds[0].Name != "high-positivity" {
		t.Errorf("default thresholds: got %+v", cfg.Thresholds)
	}
	if cfg.WatchPaths() != nil {
		t.Errorf("WatchPaths() without watch: got %v", cfg.WatchPaths())
	}
}

func TestLoad_EmptyFileIsEmbedded(t *testing.T) {
	cfg := loadFromString(t, "")
	if cfg.Data.Source != SourceEmbedded {
		t.Errorf("source: got %q, want %q", cfg.Data.Source, SourceEmbedded)
	}
}

func TestLoad_ExplicitNoThresholds(t *testing.T) {
	cfg := loadFromString(t, "thresholds: []\n")
	if len(cfg.Thresholds) != 0 {
		t.Errorf("thresholds: got %+v, want none", cfg.Thresholds)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"file source without path", "data:\n  source: file\n"},
		{"unknown source", "data:\n  source: s3\n"},
		{"empty report path", "report:\n  path: \"\"\n"},
		{"unknown log level", "log_level: loud\n"},
		{"bad threshold", "thresholds:\n  - name: x\n    condition: \"drop_pct > 1\"\n"},
		{"malformed yaml", "data: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := loadStringErr(t, tc.yaml); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Data.Source != SourceEmbedded {
		t.Errorf("source: got %q", cfg.Data.Source)
	}
	if cfg.Level() != slog.LevelInfo {
		t.Errorf("Level(): got %v", cfg.Level())
	}
	if err := validate(cfg); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: info\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 8)
	go Watch(ctx, path, func(c *Config) { got <- c }) //nolint:errcheck

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case c := <-got:
			// A reload can observe the truncated file before the write lands.
			if c.LogLevel == "warn" {
				return
			}
		case <-tick.C:
			_ = os.WriteFile(path, []byte("log_level: warn\n"), 0o600)
		case <-deadline:
			t.Fatal("no reload within 5s")
		}
	}
}

// loadFromString writes yaml to a temp file and calls Load, failing on error.
func loadFromString(t *testing.T, content string) *Config {
	t.Helper()
	cfg, err := loadStringErr(t, content)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	return cfg
}

// loadStringErr writes yaml to a temp file and calls Load, returning any error.
func loadStringErr(t *testing.T, content string) (*Config, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return Load(path)
}

func TestLoad_ExampleFile(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "..", "config.example.yaml"))
	if err != nil {
		t.Fatalf("Load example: %v", err)
	}
	if cfg.Data.Source != SourceFile || !cfg.Data.Watch {
		t.Errorf("Data = %+v, want watched file source", cfg.Data)
	}
	if len(cfg.Thresholds) != 2 {
		t.Errorf("Thresholds = %d, want 2", len(cfg.Thresholds))
	}
	if got := cfg.WatchPaths(); len(got) != 2 {
		t.Errorf("WatchPaths = %v, want data and expiry", got)
	}
}
