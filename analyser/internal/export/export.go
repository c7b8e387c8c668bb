package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/osler/analysers/analyser/internal/config"
	"github.com/osler/analysers/analyser/internal/store"
)

// Exporter writes one representation of a snapshot.
type Exporter interface {
	// Name is the file name shown to the user.
	Name() string
	Export(snap *store.Snapshot) error
}

// FromConfig returns the text report exporter followed by any optional
// exporters enabled in cfg.
func FromConfig(cfg config.ReportConfig) []Exporter {
	out := []Exporter{&TextFile{Path: cfg.Path}}
	if cfg.JSONPath != "" {
		out = append(out, &JSONFile{Path: cfg.JSONPath})
	}
	if cfg.PromPath != "" {
		out = append(out, &PromFile{Path: cfg.PromPath})
	}
	return out
}

// writeFile creates or truncates path and streams fill into it through a
// buffered writer. The file is closed on every path; a close error is
// returned when nothing failed earlier.
func writeFile(path string, fill func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export: close %s: %w", path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := fill(bw); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export: flush %s: %w", path, err)
	}
	return nil
}

func baseName(path string) string {
	return filepath.Base(path)
}
