package recommend

import (
	"log/slog"
	"sync"
	"time"

	"marquee/internal/catalog"
	"marquee/internal/logging"
)

// Engine caches the model fit from the most recent snapshot. Output is the
// same as calling Recommend directly; only the refit is skipped while the
// snapshot version is unchanged.
type Engine struct {
	logger *slog.Logger

	mu    sync.Mutex
	model *Model
	fits  int
}

// NewEngine creates an engine with an empty cache.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logging.NewComponentLogger(logger, "recommend")}
}

// Recommend ranks snap against referenceID, fitting a model first when the
// cached one belongs to a different snapshot.
func (e *Engine) Recommend(snap *catalog.Snapshot, referenceID, k int) ([]Recommendation, error) {
	model, err := e.Model(snap)
	if err != nil {
		return nil, err
	}
	return model.Recommend(snap, referenceID, k)
}

// Model returns the cached model for snap, fitting one when needed.
func (e *Engine) Model(snap *catalog.Snapshot) (*Model, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.model != nil && e.model.Version() == snap.Version() && e.model.Len() == snap.Len() {
		return e.model, nil
	}
	start := time.Now()
	model, err := Fit(snap)
	if err != nil {
		return nil, err
	}
	e.model = model
	e.fits++
	e.logger.Debug("fit similarity model",
		logging.Int("documents", model.Len()),
		logging.Int("vocabulary", model.Vocabulary()),
		logging.Duration("elapsed", time.Since(start)),
		logging.String("snapshot_version", shortVersion(model.Version())),
	)
	return model, nil
}

// Invalidate drops the cached model.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	e.model = nil
	e.mu.Unlock()
}

// Fits returns how many models the engine has fit.
func (e *Engine) Fits() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fits
}

func shortVersion(version string) string {
	if len(version) > 12 {
		return version[:12]
	}
	return version
}
