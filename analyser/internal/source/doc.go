// Package source supplies the raw data and expiry lines for one load cycle.
//
// Implemented sources: file (data and optional expiry file on disk) and
// embedded (a sample dataset compiled into the binary). Factory:
// New(config.DataConfig) returns the correct Source.
//
// A missing or unreadable expiry file is not an error: the load continues
// with an empty expiry table and a warning is logged.
package source
