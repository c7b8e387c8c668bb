package export

import (
	"errors"
	"io"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/osler/analysers/analyser/internal/compute"
	"github.com/osler/analysers/analyser/internal/store"
)

// Metric names written by PromFile.
const (
	metricTested          = "analysers_tested"
	metricPositive        = "analysers_positive"
	metricPositivePercent = "analysers_positive_percent"
	metricFlagged         = "analysers_flagged"
	metricTotalTested     = "analysers_total_tested"
	metricTotalPositive   = "analysers_total_positive"
	metricTotalPercent    = "analysers_total_positive_percent"
	metricParseErrors     = "analysers_parse_errors"
	metricGeneration      = "analysers_snapshot_generation"
	metricLoadedAt        = "analysers_snapshot_loaded_timestamp_seconds"
)

// PromFile writes gauges in the Prometheus text exposition format.
type PromFile struct {
	Path string
}

// Name returns the metrics file name.
func (p *PromFile) Name() string { return baseName(p.Path) }

// Export overwrites Path with one gauge family per metric.
func (p *PromFile) Export(snap *store.Snapshot) error {
	if snap == nil || snap.Result == nil {
		return errors.New("export: no snapshot to write")
	}
	families := metricFamilies(snap)
	return writeFile(p.Path, func(w io.Writer) error {
		for _, mf := range families {
			if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
				return err
			}
		}
		return nil
	})
}

// metricFamilies converts snap into gauge families. Per-name families list
// entries in first-seen order.
func metricFamilies(snap *store.Snapshot) []*dto.MetricFamily {
	entries := snap.Result.List()

	tested := newGauge(metricTested, "Samples tested per name.")
	positive := newGauge(metricPositive, "Positive samples per name.")
	pct := newGauge(metricPositivePercent, "Positive samples as a percentage of tested, per name.")
	flagged := newGauge(metricFlagged, "1 when a threshold rule matched the name.")

	for _, e := range entries {
		tested.Metric = append(tested.Metric, gaugeMetric(float64(e.Tested), "name", e.Name))
		positive.Metric = append(positive.Metric, gaugeMetric(float64(e.Positive), "name", e.Name))
		pct.Metric = append(pct.Metric, gaugeMetric(compute.Percentage(e.Tested, e.Positive), "name", e.Name))
		if f, ok := snap.Flag(e.Name); ok {
			flagged.Metric = append(flagged.Metric,
				gaugeMetric(1, "name", e.Name, "rule", f.Rule, "severity", f.Severity))
		}
	}

	var out []*dto.MetricFamily
	for _, mf := range []*dto.MetricFamily{tested, positive, pct, flagged} {
		// The text encoder rejects families without samples.
		if len(mf.Metric) > 0 {
			out = append(out, mf)
		}
	}
	out = append(out,
		singleGauge(metricTotalTested, "Samples tested across all names.", float64(snap.Totals.Tested)),
		singleGauge(metricTotalPositive, "Positive samples across all names.", float64(snap.Totals.Positive)),
		singleGauge(metricTotalPercent, "Overall positive percentage, truncated to an integer.", float64(snap.Totals.Percent)),
		singleGauge(metricParseErrors, "Data lines skipped because a count did not parse.", float64(len(snap.Result.Diagnostics))),
		singleGauge(metricGeneration, "Load cycle counter.", float64(snap.Generation)),
	)
	if !snap.LoadedAt.IsZero() {
		out = append(out, singleGauge(metricLoadedAt, "Unix time of the last load.",
			float64(snap.LoadedAt.UnixNano())/1e9))
	}
	return out
}

func newGauge(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: strPtr(name),
		Help: strPtr(help),
		Type: dto.MetricType_GAUGE.Enum(),
	}
}

func singleGauge(name, help string, v float64) *dto.MetricFamily {
	mf := newGauge(name, help)
	mf.Metric = []*dto.Metric{gaugeMetric(v)}
	return mf
}

// gaugeMetric builds a gauge sample; labels are name/value pairs.
func gaugeMetric(v float64, labels ...string) *dto.Metric {
	m := &dto.Metric{Gauge: &dto.Gauge{Value: &v}}
	for i := 0; i+1 < len(labels); i += 2 {
		m.Label = append(m.Label, &dto.LabelPair{
			Name:  strPtr(labels[i]),
			Value: strPtr(labels[i+1]),
		})
	}
	return m
}

func strPtr(s string) *string { return &s }
