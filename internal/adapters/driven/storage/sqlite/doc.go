// Package sqlite provides the durable store for extraction runs.
//
// A single database file holds runs, their output rows and their
// diagnostics. Schema changes ship as embedded numbered migrations and
// apply automatically on open.
package sqlite
