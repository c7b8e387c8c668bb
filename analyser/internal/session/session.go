package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/osler/analysers/analyser/internal/aggregate"
	"github.com/osler/analysers/analyser/internal/compute"
	"github.com/osler/analysers/analyser/internal/export"
	"github.com/osler/analysers/analyser/internal/report"
	"github.com/osler/analysers/analyser/internal/source"
	"github.com/osler/analysers/analyser/internal/store"
	"github.com/osler/analysers/analyser/internal/threshold"
	"github.com/osler/analysers/pkg/types"
)

// SelectPrompt is the placeholder at the head of the selection list.
// Selecting it clears the view.
const SelectPrompt = "Select"

// Notices shown to the user.
const (
	MsgLoadFailed   = "Error reading data from CSV"
	MsgParseFailed  = "Error parsing data from CSV"
	MsgReportSaved  = "Management report saved to %s"
	MsgReportFailed = "Error writing management report to file"
	MsgExportFailed = "Error writing %s"
	MsgNoData       = "No data loaded"
)

// Listener receives the events raised by a front-end.
type Listener interface {
	OnSelectionChanged(name string)
	OnReportRequested()
}

// Presenter renders engine output. Implementations must not block.
type Presenter interface {
	ShowEntry(v View)
	ShowOverall(t types.Totals)
	Clear()
	Notify(msg string)
}

// View is what a front-end displays for one selected name.
type View struct {
	Name     string
	Tested   int64
	Positive int64

	// Percent is the integer-truncated positive percentage.
	Percent int64

	// Gauge is Percent clamped to [0, 100].
	Gauge int64

	// Severity is the matching threshold severity, or empty.
	Severity string
}

// Controller implements Listener on top of a store.Store.
type Controller struct {
	mu         sync.Mutex
	src        source.Source
	store      *store.Store
	classifier *threshold.Classifier
	exporters  []export.Exporter
	presenter  Presenter
	now        func() time.Time // injectable for deterministic tests
}

var _ Listener = (*Controller)(nil)

// New returns a Controller. exporters[0] is treated as the management
// report; any others are secondary exports.
func New(src source.Source, st *store.Store, cls *threshold.Classifier, exporters []export.Exporter, p Presenter) *Controller {
	return &Controller{
		src:        src,
		store:      st,
		classifier: cls,
		exporters:  exporters,
		presenter:  p,
		now:        time.Now,
	}
}

// Reconfigure swaps the source, threshold rules and exporters, typically
// after a config reload. Nil arguments keep the current value. The next Load
// or report request uses the new values.
func (c *Controller) Reconfigure(src source.Source, cls *threshold.Classifier, exporters []export.Exporter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if src != nil {
		c.src = src
	}
	if cls != nil {
		c.classifier = cls
	}
	if exporters != nil {
		c.exporters = exporters
	}
}

// Load runs one load cycle and replaces the stored snapshot. On a source
// error the previous snapshot stays in place and the error is returned.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	batch, err := c.src.Load(ctx)
	if err != nil {
		slog.Error("session: load failed", "err", err)
		c.presenter.Notify(MsgLoadFailed)
		return fmt.Errorf("session: load: %w", err)
	}

	expiry := aggregate.LoadExpiry(batch.ExpiryLines)
	res := aggregate.Aggregate(batch.DataLines, expiry, c.now())
	for range res.Diagnostics {
		c.presenter.Notify(MsgParseFailed)
	}

	entries := res.List()
	snap := &store.Snapshot{
		Origin: batch.Origin,
		Result: res,
		Report: report.Build(entries),
		Totals: report.Totals(entries),
	}
	if c.classifier != nil {
		snap.Flags = c.classifier.EvaluateAll(entries)
	}
	c.store.Put(snap)

	slog.Info("session: data loaded",
		"origin", snap.Origin,
		"generation", snap.Generation,
		"names", len(res.Order),
		"lines", res.Lines,
		"accepted", res.Accepted,
		"dropped", res.Dropped,
		"expired", res.Expired,
		"parse_errors", len(res.Diagnostics),
		"total_percent", snap.Totals.Percent,
		"flagged", len(snap.Flags),
		"critical", lo.CountBy(snap.Flags, func(f threshold.Flag) bool {
			return f.Severity == threshold.SeverityCritical
		}),
	)

	c.presenter.ShowOverall(snap.Totals)
	return nil
}

// SelectionList returns the placeholder followed by the current names in
// first-seen order.
func (c *Controller) SelectionList() []string {
	snap, _ := c.store.Current()
	return SelectionList(snap)
}

// SelectionList returns the placeholder followed by the names of snap in
// first-seen order. A nil snapshot yields only the placeholder.
func SelectionList(snap *store.Snapshot) []string {
	out := []string{SelectPrompt}
	if snap == nil || snap.Result == nil {
		return out
	}
	return append(out, snap.Result.Order...)
}

// OnSelectionChanged shows the entry for name. The placeholder or an empty
// name clears the view; unknown names are ignored.
func (c *Controller) OnSelectionChanged(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if name == "" || name == SelectPrompt {
		c.presenter.Clear()
		return
	}

	snap, ok := c.store.Current()
	if !ok {
		return
	}
	e, ok := snap.Result.Get(name)
	if !ok {
		slog.Debug("session: selection not found", "name", name)
		return
	}

	pct := compute.PercentageTruncated(e.Tested, e.Positive)
	v := View{
		Name:     e.Name,
		Tested:   e.Tested,
		Positive: e.Positive,
		Percent:  pct,
		Gauge:    compute.Clamp(pct),
	}
	if f, ok := snap.Flag(name); ok {
		v.Severity = f.Severity
	}
	c.presenter.ShowEntry(v)
}

// OnReportRequested writes every export of the current snapshot and then
// shows the report text. Export failures are reported as notices only.
func (c *Controller) OnReportRequested() {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, ok := c.store.Current()
	if !ok {
		c.presenter.Notify(MsgNoData)
		return
	}

	for i, ex := range c.exporters {
		err := ex.Export(snap)
		switch {
		case err != nil && i == 0:
			slog.Error("session: report write failed", "file", ex.Name(), "err", err)
			c.presenter.Notify(MsgReportFailed)
		case err != nil:
			slog.Error("session: export failed", "file", ex.Name(), "err", err)
			c.presenter.Notify(fmt.Sprintf(MsgExportFailed, ex.Name()))
		case i == 0:
			slog.Info("session: report written", "file", ex.Name(), "generation", snap.Generation)
			c.presenter.Notify(fmt.Sprintf(MsgReportSaved, ex.Name()))
		default:
			slog.Debug("session: export written", "file", ex.Name())
		}
	}

	c.presenter.Notify(snap.Report.Text())
}
