package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"marquee/internal/bookapi"
	"marquee/internal/services"
	"marquee/internal/store"
	"marquee/internal/testsupport"
)

func TestOpenCreatesDatabaseAndLock(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	if st.Path() != cfg.DatabasePath() {
		t.Fatalf("expected db at %s, got %s", cfg.DatabasePath(), st.Path())
	}
	if _, err := os.Stat(cfg.DatabasePath()); err != nil {
		t.Fatalf("expected database file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.DataDir, store.LockFileName)); err != nil {
		t.Fatalf("expected lock file: %v", err)
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := st.RecordCatalogImport(context.Background(), store.CatalogImport{Path: "a.csv", Version: "v1", Rows: 3}); err != nil {
		t.Fatalf("RecordCatalogImport: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	latest, err := reopened.LatestCatalogImport(context.Background())
	if err != nil {
		t.Fatalf("LatestCatalogImport after reopen: %v", err)
	}
	if latest.Path != "a.csv" || latest.Rows != 3 {
		t.Fatalf("unexpected import after reopen: %+v", latest)
	}
}

func TestBookSearchRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, err := st.LatestBookSearch(ctx); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found before any search, got %v", err)
	}

	results := []bookapi.Book{
		{Title: "First", Publisher: "한빛미디어", Discount: "19800"},
		{Title: "Second", Publisher: "Manning", Discount: "30000"},
	}
	firstID, err := st.SaveBookSearch(ctx, store.BookSearch{SessionID: "s1", Query: "go", Display: 10, Results: results[:1]})
	if err != nil {
		t.Fatalf("SaveBookSearch: %v", err)
	}
	secondID, err := st.SaveBookSearch(ctx, store.BookSearch{SessionID: "s2", Query: "파이썬", Display: 50, Results: results})
	if err != nil {
		t.Fatalf("SaveBookSearch: %v", err)
	}
	if secondID <= firstID {
		t.Fatalf("expected increasing ids, got %d then %d", firstID, secondID)
	}

	latest, err := st.LatestBookSearch(ctx)
	if err != nil {
		t.Fatalf("LatestBookSearch: %v", err)
	}
	if latest.ID != secondID || latest.Query != "파이썬" || latest.SessionID != "s2" {
		t.Fatalf("unexpected latest search: %+v", latest)
	}
	if latest.Endpoint != "book" || latest.Display != 50 || latest.ResultCount != 2 {
		t.Fatalf("unexpected latest metadata: %+v", latest)
	}
	if len(latest.Results) != 2 || latest.Results[0].Title != "First" || latest.Results[1].Publisher != "Manning" {
		t.Fatalf("results not restored in order: %+v", latest.Results)
	}
	if latest.CreatedAt.IsZero() || time.Since(latest.CreatedAt) > time.Minute {
		t.Fatalf("unexpected created_at %v", latest.CreatedAt)
	}
}

func TestListAndClearBookSearches(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for _, query := range []string{"one", "two", "three"} {
		if _, err := st.SaveBookSearch(ctx, store.BookSearch{Query: query, Display: 10}); err != nil {
			t.Fatalf("SaveBookSearch(%s): %v", query, err)
		}
	}

	limited, err := st.ListBookSearches(ctx, 2)
	if err != nil {
		t.Fatalf("ListBookSearches: %v", err)
	}
	if len(limited) != 2 || limited[0].Query != "three" || limited[1].Query != "two" {
		t.Fatalf("expected newest two searches, got %+v", limited)
	}

	all, err := st.ListBookSearches(ctx, 0)
	if err != nil {
		t.Fatalf("ListBookSearches: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 searches, got %d", len(all))
	}

	removed, err := st.ClearBookSearches(ctx)
	if err != nil {
		t.Fatalf("ClearBookSearches: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed, got %d", removed)
	}
	if _, err := st.LatestBookSearch(ctx); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found after clear, got %v", err)
	}
}

func TestSaveBookSearchRequiresQuery(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	if _, err := st.SaveBookSearch(context.Background(), store.BookSearch{Query: "  "}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCatalogImports(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, err := st.LatestCatalogImport(ctx); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := st.RecordCatalogImport(ctx, store.CatalogImport{}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for empty path, got %v", err)
	}
	for _, path := range []string{"old.csv", "new.csv"} {
		if _, err := st.RecordCatalogImport(ctx, store.CatalogImport{Path: path, Version: path + "-v", Rows: 7}); err != nil {
			t.Fatalf("RecordCatalogImport(%s): %v", path, err)
		}
	}
	latest, err := st.LatestCatalogImport(ctx)
	if err != nil {
		t.Fatalf("LatestCatalogImport: %v", err)
	}
	if latest.Path != "new.csv" || latest.Version != "new.csv-v" || latest.ImportedAt.IsZero() {
		t.Fatalf("unexpected latest import: %+v", latest)
	}
}

func TestWritesFailWhileLockHeldElsewhere(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	other := flock.New(filepath.Join(cfg.Paths.DataDir, store.LockFileName))
	ok, err := other.TryLock()
	if err != nil || !ok {
		t.Fatalf("expected to take lock, ok=%v err=%v", ok, err)
	}
	defer other.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if _, err := st.SaveBookSearch(ctx, store.BookSearch{Query: "blocked"}); !errors.Is(err, store.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}
