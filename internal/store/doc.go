// Package store provides optional durable storage for transformation logs.
//
// The in-memory log returned by transform.Graphify is the source of truth
// for one run and is rebuilt fresh per run; this package is an opt-in
// audit sink behind the CLI's --audit-db flag. It uses SQLite with WAL
// mode so audit readers never block a writer.
//
// Writes are idempotent: persisting the same run twice is a no-op.
package store
