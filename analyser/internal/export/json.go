package export

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/osler/analysers/analyser/internal/compute"
	"github.com/osler/analysers/analyser/internal/store"
	"github.com/osler/analysers/analyser/internal/threshold"
	"github.com/osler/analysers/pkg/types"
)

// JSONFile writes the snapshot as an indented JSON document.
type JSONFile struct {
	Path string
}

type jsonSnapshot struct {
	Generation  uint64       `json:"generation"`
	LoadedAt    time.Time    `json:"loaded_at"`
	Origin      string       `json:"origin"`
	Entries     []jsonEntry  `json:"entries"`
	Totals      types.Totals `json:"totals"`
	ParseErrors int          `json:"parse_errors"`
	Dropped     int          `json:"dropped"`
	Expired     int          `json:"expired"`
}

type jsonEntry struct {
	types.Entry
	Percent float64         `json:"percent"`
	Flag    *threshold.Flag `json:"flag,omitempty"`
}

// Name returns the JSON file name.
func (j *JSONFile) Name() string { return baseName(j.Path) }

// Export overwrites Path with the snapshot in report order.
func (j *JSONFile) Export(snap *store.Snapshot) error {
	if snap == nil || snap.Report == nil || snap.Result == nil {
		return errors.New("export: no snapshot to write")
	}

	doc := jsonSnapshot{
		Generation:  snap.Generation,
		LoadedAt:    snap.LoadedAt.UTC(),
		Origin:      snap.Origin,
		Entries:     make([]jsonEntry, 0, len(snap.Report.Entries)),
		Totals:      snap.Totals,
		ParseErrors: len(snap.Result.Diagnostics),
		Dropped:     snap.Result.Dropped,
		Expired:     snap.Result.Expired,
	}
	for _, e := range snap.Report.Entries {
		je := jsonEntry{Entry: e, Percent: compute.Percentage(e.Tested, e.Positive)}
		if f, ok := snap.Flag(e.Name); ok {
			je.Flag = &f
		}
		doc.Entries = append(doc.Entries, je)
	}

	return writeFile(j.Path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	})
}
