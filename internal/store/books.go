package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"marquee/internal/bookapi"
	"marquee/internal/services"
)

// BookSearch is one persisted book search together with its results.
type BookSearch struct {
	ID          int64
	SessionID   string
	Query       string
	Endpoint    string
	Display     int
	CreatedAt   time.Time
	ResultCount int
	Results     []bookapi.Book
}

// SaveBookSearch stores a search and its results in one transaction and
// returns the assigned search ID.
func (s *Store) SaveBookSearch(ctx context.Context, search BookSearch) (int64, error) {
	if strings.TrimSpace(search.Query) == "" {
		return 0, services.Wrap(services.ErrValidation, "store", "save book search", "query must not be empty", nil)
	}
	if search.Endpoint == "" {
		search.Endpoint = "book"
	}
	if search.CreatedAt.IsZero() {
		search.CreatedAt = time.Now()
	}

	payloads := make([]string, len(search.Results))
	for i, book := range search.Results {
		data, err := json.Marshal(book)
		if err != nil {
			return 0, fmt.Errorf("encode book result %d: %w", i, err)
		}
		payloads[i] = string(data)
	}

	var id int64
	err := s.withWriteLock(ctx, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin book search tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		res, err := tx.ExecContext(ctx,
			`INSERT INTO book_searches (session_id, query, endpoint, display, created_at) VALUES (?, ?, ?, ?, ?)`,
			search.SessionID, search.Query, search.Endpoint, search.Display, formatTime(search.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("insert book search: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("book search id: %w", err)
		}
		for position, payload := range payloads {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO book_results (search_id, position, payload_json) VALUES (?, ?, ?)`,
				id, position, payload,
			); err != nil {
				return fmt.Errorf("insert book result %d: %w", position, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit book search: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// LatestBookSearch returns the most recent search with its results.
// It returns services.ErrNotFound when nothing has been searched yet.
func (s *Store) LatestBookSearch(ctx context.Context) (*BookSearch, error) {
	ctx = orBackground(ctx)
	row := s.db.QueryRowContext(ctx,
		`SELECT s.id, s.session_id, s.query, s.endpoint, s.display, s.created_at,
		        (SELECT COUNT(1) FROM book_results r WHERE r.search_id = s.id)
		   FROM book_searches s ORDER BY s.id DESC LIMIT 1`)
	search, err := scanBookSearch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, "store", "latest book search", "no book search saved yet; run 'marquee books search <query>'", nil)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT payload_json FROM book_results WHERE search_id = ? ORDER BY position`, search.ID)
	if err != nil {
		return nil, fmt.Errorf("query book results: %w", err)
	}
	defer rows.Close()

	search.Results = make([]bookapi.Book, 0, search.ResultCount)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan book result: %w", err)
		}
		var book bookapi.Book
		if err := json.Unmarshal([]byte(payload), &book); err != nil {
			return nil, fmt.Errorf("decode book result: %w", err)
		}
		search.Results = append(search.Results, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate book results: %w", err)
	}
	return search, nil
}

// ListBookSearches returns up to limit searches, newest first, without their
// results. A limit <= 0 returns all searches.
func (s *Store) ListBookSearches(ctx context.Context, limit int) ([]BookSearch, error) {
	ctx = orBackground(ctx)
	query := `SELECT s.id, s.session_id, s.query, s.endpoint, s.display, s.created_at,
	                 (SELECT COUNT(1) FROM book_results r WHERE r.search_id = s.id)
	            FROM book_searches s ORDER BY s.id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query book searches: %w", err)
	}
	defer rows.Close()

	var searches []BookSearch
	for rows.Next() {
		search, err := scanBookSearch(rows)
		if err != nil {
			return nil, err
		}
		searches = append(searches, *search)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate book searches: %w", err)
	}
	return searches, nil
}

// ClearBookSearches removes every saved search and returns how many were removed.
func (s *Store) ClearBookSearches(ctx context.Context) (int64, error) {
	var removed int64
	err := s.withWriteLock(ctx, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin clear tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, `DELETE FROM book_results`); err != nil {
			return fmt.Errorf("clear book results: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM book_searches`)
		if err != nil {
			return fmt.Errorf("clear book searches: %w", err)
		}
		removed, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("count cleared searches: %w", err)
		}
		return tx.Commit()
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookSearch(row rowScanner) (*BookSearch, error) {
	var (
		search    BookSearch
		createdAt string
	)
	if err := row.Scan(&search.ID, &search.SessionID, &search.Query, &search.Endpoint,
		&search.Display, &createdAt, &search.ResultCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan book search: %w", err)
	}
	search.CreatedAt = parseTime(createdAt)
	return &search, nil
}
