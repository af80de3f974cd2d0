package session

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"marquee/internal/bookapi"
	"marquee/internal/catalog"
	"marquee/internal/logging"
	"marquee/internal/recommend"
)

// Session owns a catalog snapshot and the state derived from it.
type Session struct {
	ID string

	logger *slog.Logger
	engine *recommend.Engine

	mu        sync.RWMutex
	snapshot  *catalog.Snapshot
	bookQuery string
	books     []bookapi.Book
}

// Option customizes a Session.
type Option func(*Session)

// WithLogger attaches a logger; records carry the session ID.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithID overrides the generated session ID, used when resuming a session.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.ID = id
		}
	}
}

// New creates a session over snapshot. A nil engine gets a fresh one.
func New(snapshot *catalog.Snapshot, engine *recommend.Engine, opts ...Option) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		logger:   logging.NewNop(),
		snapshot: snapshot,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(logging.WithSessionID(s.logger, s.ID), "session")
	if engine == nil {
		engine = recommend.NewEngine(s.logger)
	}
	s.engine = engine
	return s
}

// Snapshot returns the current catalog snapshot.
func (s *Session) Snapshot() *catalog.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Replace swaps in a new catalog and drops any model fit from the old one.
func (s *Session) Replace(snapshot *catalog.Snapshot) {
	s.mu.Lock()
	previous := s.snapshot
	s.snapshot = snapshot
	s.mu.Unlock()

	s.engine.Invalidate()
	s.logger.Info("catalog replaced",
		logging.Int("rows", snapshot.Len()),
		logging.String("previous_version", previous.Version()),
		logging.String("version", snapshot.Version()),
	)
}

// Recommend ranks the current snapshot against referenceID.
func (s *Session) Recommend(referenceID, k int) ([]recommend.Recommendation, error) {
	return s.engine.Recommend(s.Snapshot(), referenceID, k)
}

// Engine returns the session's recommendation engine.
func (s *Session) Engine() *recommend.Engine {
	return s.engine
}

// Logger returns the session-scoped logger.
func (s *Session) Logger() *slog.Logger {
	return s.logger
}

// SetBookResults replaces the cached book results for query.
func (s *Session) SetBookResults(query string, results []bookapi.Book) {
	copied := make([]bookapi.Book, len(results))
	copy(copied, results)

	s.mu.Lock()
	s.bookQuery = query
	s.books = copied
	s.mu.Unlock()

	s.logger.Debug("book results cached",
		logging.String("query", query),
		logging.Int("results", len(copied)),
	)
}

// BookResults returns the cached query and a copy of its results.
func (s *Session) BookResults() (string, []bookapi.Book) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]bookapi.Book, len(s.books))
	copy(out, s.books)
	return s.bookQuery, out
}
