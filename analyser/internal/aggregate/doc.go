// Package aggregate parses raw comma-separated records and folds them into
// per-name running totals.
//
// A data line is accepted only when it has at least six comma-separated
// fields. Field 0 is the name, field 2 the tested count and field 3 the
// positive count; the remaining fields are carried by the format but unused.
// Lines with fewer fields are dropped silently. Lines whose numeric fields do
// not parse produce a *ParseError diagnostic and are skipped; the rest of the
// input is still processed.
//
// An ExpiryTable maps a name to an epoch-millisecond timestamp. Records for a
// name whose expiry is strictly before now are excluded from the totals.
//
// Aggregate is a pure function of its inputs: the caller owns the returned
// Result and nothing is cached between calls.
package aggregate
