package testsupport

import (
	"path/filepath"
	"testing"

	"marquee/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.ExportDir = filepath.Join(base, "export")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.CatalogCSV = filepath.Join(base, "titles.csv")
	cfgVal.Naver.ClientID = "test-id"
	cfgVal.Naver.ClientSecret = "test-secret"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithNaverBaseURL points the book search client at url, typically an
// httptest server.
func WithNaverBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Naver.BaseURL = url
	}
}

// WithoutNaverCredentials clears the book search credentials.
func WithoutNaverCredentials() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Naver.ClientID = ""
		b.cfg.Naver.ClientSecret = ""
	}
}

// WithCatalog writes rows as the configured catalog CSV.
func WithCatalog(rows ...CatalogRow) ConfigOption {
	return func(b *configBuilder) {
		WriteCatalogCSV(b.t, b.cfg.Paths.CatalogCSV, rows...)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
