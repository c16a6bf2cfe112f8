// Package sqlite implements the driven storage ports on a single SQLite database.
//
// It uses modernc.org/sqlite, a pure Go driver, so the binary builds without CGO.
// One database connection backs every store:
//
//   - DocumentStore: the local search documents table
//   - SyncStateStore: per-source cursors
//   - SchedulerStore: scheduled tasks and run history
//   - UserDirectory: the local user directory
//
// # Schema
//
// Versioned migrations live in migrations/ as .up.sql and .down.sql pairs.
// Applied versions are recorded in schema_migrations.
//
// Document timestamps are stored as unix seconds. A zero time is stored as 0.
//
// # Data Location
//
// By default, the database is stored at ~/.sitesync/data/sitesync.db
package sqlite
