// Package store holds the result of the most recent load cycle.
//
// A Snapshot bundles the aggregate, the built report, the overall totals and
// the threshold flags. Put replaces the whole snapshot at once and stamps it
// with a generation number and load time; nothing is merged across loads.
// Readers receive the same *Snapshot and must not modify it.
package store
