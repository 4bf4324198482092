// Package sqlite persists poll history and settled draws in SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. One database connection backs two store interfaces:
//
//   - SchedulerStore: scheduled task state and per-run results
//   - ResultArchive: every settled draw, keyed by source, sub-game and draw date
//
// The in-memory result cache stays the source of truth for today's snapshot;
// the archive only answers history queries.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory, each a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.drawwatch/data/drawwatch.db
package sqlite
