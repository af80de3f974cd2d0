package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"marquee/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory locations.
type Paths struct {
	CatalogCSV string `toml:"catalog_csv"`
	DataDir    string `toml:"data_dir"`
	ExportDir  string `toml:"export_dir"`
	LogDir     string `toml:"log_dir"`
}

// Naver contains configuration for the Naver Open API book search.
type Naver struct {
	ClientID          string  `toml:"client_id"`
	ClientSecret      string  `toml:"client_secret"`
	BaseURL           string  `toml:"base_url"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Recommend contains configuration for similar-title recommendations.
type Recommend struct {
	TopK int `toml:"top_k"`
}

// Books contains defaults for the book search flows.
type Books struct {
	Display     int `toml:"display"`
	MinDiscount int `toml:"min_discount"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for marquee.
//
// Configuration sections:
//   - Paths: catalog CSV, database, export and log locations
//   - Naver: book search API credentials and pacing
//   - Recommend: recommendation count
//   - Books: search result size and discount threshold
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Naver     Naver     `toml:"naver"`
	Recommend Recommend `toml:"recommend"`
	Books     Books     `toml:"books"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the expanded per-user config location.
func DefaultConfigPath() (string, error) {
	return ExpandPath(defaultConfigPath)
}

// Load reads the configuration at path, or searches the per-user location
// and then ./marquee.toml when path is empty. A missing file yields the
// defaults. It returns the config, the path it settled on, and whether
// that file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := locate(path)
	if err != nil {
		return nil, "", false, err
	}
	if exists {
		data, err := os.ReadFile(resolved)
		if err != nil {
			return nil, "", false, fmt.Errorf("read %s: %w", resolved, err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, "", false, fmt.Errorf("decode %s: %w", resolved, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func locate(path string) (string, bool, error) {
	if path != "" {
		explicit, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		found, err := isFile(explicit)
		return explicit, found, err
	}

	userPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	localPath, err := ExpandPath(projectConfigName)
	if err != nil {
		return "", false, err
	}
	for _, candidate := range []string{userPath, localPath} {
		if found, _ := isFile(candidate); found {
			return candidate, true, nil
		}
	}
	return userPath, false, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		return !info.IsDir(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the SQLite database location under the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "marquee.db")
}

// RequireNaver reports a configuration error when the book search
// credentials are missing. Only commands that call the API need them.
func (c *Config) RequireNaver() error {
	if c.Naver.ClientID == "" || c.Naver.ClientSecret == "" {
		where, err := DefaultConfigPath()
		if err != nil {
			where = defaultConfigPath
		}
		return fmt.Errorf("naver.client_id and naver.client_secret are required. Set NAVER_CLIENT_ID and NAVER_CLIENT_SECRET or edit %s (create with 'marquee config init')", where)
	}
	return nil
}

// ExpandPath resolves a leading "~" to the home directory and returns an
// absolute, cleaned path. Empty stays empty.
func ExpandPath(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home directory: %w", err)
		}
		p = home + p[1:]
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("absolute path for %q: %w", p, err)
	}
	return abs, nil
}

// CreateSample writes the commented sample configuration to path,
// creating parent directories.
func CreateSample(path string) error {
	if err := fileutil.WriteFileAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("create sample config: %w", err)
	}
	return nil
}
