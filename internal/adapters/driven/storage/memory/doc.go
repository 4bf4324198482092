// Package memory provides in-process implementations of the driven storage ports.
//
// They back the collector when no data directory is configured, and stand in
// for the SQLite and TOML adapters in tests. Nothing here survives a restart.
package memory
