package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"marquee/internal/services"
)

// CatalogImport records a catalog CSV that was imported as the default.
type CatalogImport struct {
	ID         int64
	Path       string
	Version    string
	Rows       int
	ImportedAt time.Time
}

// RecordCatalogImport stores an import and returns its ID.
func (s *Store) RecordCatalogImport(ctx context.Context, record CatalogImport) (int64, error) {
	if record.Path == "" {
		return 0, services.Wrap(services.ErrValidation, "store", "record catalog import", "path must not be empty", nil)
	}
	if record.ImportedAt.IsZero() {
		record.ImportedAt = time.Now()
	}
	var id int64
	err := s.withWriteLock(ctx, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO catalog_imports (path, version, rows, imported_at) VALUES (?, ?, ?, ?)`,
			record.Path, record.Version, record.Rows, formatTime(record.ImportedAt),
		)
		if err != nil {
			return fmt.Errorf("insert catalog import: %w", err)
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// LatestCatalogImport returns the most recent import, or services.ErrNotFound.
func (s *Store) LatestCatalogImport(ctx context.Context) (*CatalogImport, error) {
	ctx = orBackground(ctx)
	var (
		record     CatalogImport
		importedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, path, version, rows, imported_at FROM catalog_imports ORDER BY id DESC LIMIT 1`,
	).Scan(&record.ID, &record.Path, &record.Version, &record.Rows, &importedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, "store", "latest catalog import", "no catalog imported", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("query catalog import: %w", err)
	}
	record.ImportedAt = parseTime(importedAt)
	return &record, nil
}
