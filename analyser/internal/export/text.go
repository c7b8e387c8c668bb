package export

import (
	"errors"
	"io"

	"github.com/osler/analysers/analyser/internal/store"
)

// TextFile writes the formatted management report.
type TextFile struct {
	Path string
}

// Name returns the report file name.
func (t *TextFile) Name() string { return baseName(t.Path) }

// Export overwrites Path with the report text.
func (t *TextFile) Export(snap *store.Snapshot) error {
	if snap == nil || snap.Report == nil {
		return errors.New("export: no report to write")
	}
	return writeFile(t.Path, func(w io.Writer) error {
		_, err := io.WriteString(w, snap.Report.Text())
		return err
	})
}
