// Package store persists catalog imports and book-search sessions in SQLite
// so state carries across CLI invocations.
//
// The schema lives in schema.sql and is created on first open. There are no
// migrations: when the schema changes, bump schemaVersion and users clear the
// database. Writers take an advisory file lock next to the database so two
// concurrent invocations never interleave a multi-statement write.
package store
