// Package session connects the engine to a presentation layer.
//
// Controller owns one load cycle at a time: Load pulls raw lines from a
// source.Source, aggregates them, builds the report and totals, evaluates
// threshold rules and replaces the snapshot in the store. It implements
// Listener, the two events a front-end raises: a selection change and a
// report request. Results flow back through the Presenter interface, which
// the front-end implements; Notify carries transient, non-blocking notices
// such as parse failures and report write outcomes.
//
// Nothing here is fatal. A failed load keeps the previous snapshot, a bad
// line costs one notice, and a failed export leaves the snapshot untouched.
package session
