// Package report turns aggregated entries into the management report.
//
// Build sorts entries by descending positivity percentage using a stable
// sort, so entries with equal percentages keep their input order, and
// formats one line per entry:
//
//	<name>, Tested = <tested>, Positive = <pct>% (<positive>/<tested>)
//
// <pct> is rounded half-up to two decimals. There is no header, footer or
// summary line. Totals computes the overall figures with the integer
// percentage form.
package report
