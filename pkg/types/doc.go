// Package types defines the shared Go types passed between the aggregation,
// report and export packages. These are the canonical in-memory
// representations of per-name test counts.
package types
