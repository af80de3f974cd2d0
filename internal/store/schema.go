package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes shape.
const schemaVersion = 1

// ErrSchemaMismatch is returned when the database was created by a
// different schema version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// initSchema creates any missing tables and stamps or checks the version,
// all in one transaction. schema.sql only uses IF NOT EXISTS statements so
// it is safe to replay on every open.
func (s *Store) initSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var version int
	err = tx.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case err == nil:
		if version != schemaVersion {
			return fmt.Errorf("%w: database has version %d, expected %d (delete %s to start over)",
				ErrSchemaMismatch, version, schemaVersion, s.path)
		}
		return nil
	case errors.Is(err, sql.ErrNoRows):
		// Table exists but was never stamped; fall through and stamp it.
	case strings.Contains(err.Error(), "no such table"):
		// Fresh database.
	default:
		return fmt.Errorf("read schema version: %w", err)
	}

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
