// Package export writes a snapshot to flat files.
//
// TextFile writes the management report exactly as formatted by package
// report. JSONFile writes the entries in report order with totals and flags.
// PromFile writes Prometheus text-format gauges suitable for the
// node_exporter textfile collector.
//
// Every exporter truncates and rewrites its file in place with a single
// buffered write and flush. The handle is closed on every path. There is no
// temp-file rename, so a crash mid-write can leave a partial file.
package export
