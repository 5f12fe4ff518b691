// Package sqlite stores records in a SQLite database file.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. It backs the ".sqlite" and ".db" export formats: every
// record becomes a row of the records table, with extra fields kept as a
// JSON column.
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory and applied when a store is opened.
package sqlite
