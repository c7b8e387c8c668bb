package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/osler/analysers/analyser/internal/compute"
	"github.com/osler/analysers/pkg/types"
)

// Report is the sorted, formatted management report.
type Report struct {
	// Entries holds the input entries in report order.
	Entries []types.Entry

	// Lines holds one formatted, newline-terminated line per entry.
	Lines []string
}

// Build copies entries, sorts the copy by descending percentage and formats
// each line. The input slice is not modified.
func Build(entries []types.Entry) *Report {
	sorted := make([]types.Entry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		return compute.Percentage(sorted[i].Tested, sorted[i].Positive) >
			compute.Percentage(sorted[j].Tested, sorted[j].Positive)
	})

	lines := make([]string, len(sorted))
	for i, e := range sorted {
		lines[i] = FormatLine(e)
	}
	return &Report{Entries: sorted, Lines: lines}
}

// Text returns the full report as one string.
func (r *Report) Text() string {
	return strings.Join(r.Lines, "")
}

// FormatLine formats one report line, including the trailing newline.
func FormatLine(e types.Entry) string {
	return fmt.Sprintf("%s, Tested = %d, Positive = %s%% (%d/%d)\n",
		e.Name, e.Tested, FormatPercent(e.Tested, e.Positive), e.Positive, e.Tested)
}

// FormatPercent renders the floating-point percentage with exactly two
// decimals. The shortest decimal form of the float is rounded half away from
// zero, so 1/800 renders as "0.13" and 23/160 (14.374999...) as "14.37".
func FormatPercent(tested, positive int64) string {
	return decimal.NewFromFloat(compute.Percentage(tested, positive)).StringFixed(2)
}

// Totals sums tested and positive across entries and applies the
// integer-truncating percentage to the sums.
func Totals(entries []types.Entry) types.Totals {
	tested := lo.SumBy(entries, func(e types.Entry) int64 { return e.Tested })
	positive := lo.SumBy(entries, func(e types.Entry) int64 { return e.Positive })
	return types.Totals{
		Tested:   tested,
		Positive: positive,
		Percent:  compute.PercentageTruncated(tested, positive),
	}
}
