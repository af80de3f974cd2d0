package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"marquee/internal/catalog"
	"marquee/internal/config"
	"marquee/internal/logging"
	"marquee/internal/services"
	"marquee/internal/store"
)

// Catalog origins reported by catalog info.
const (
	catalogFromFlag   = "flag"
	catalogFromImport = "import"
	catalogFromConfig = "config"
)

type commandContext struct {
	configFlag  *string
	catalogFlag *string
	jsonFlag    *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	store *store.Store
}

func newCommandContext(configFlag, catalogFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		catalogFlag: catalogFlag,
		jsonFlag:    jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// baseLogger builds the process logger once from the loaded configuration.
func (c *commandContext) baseLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			logger, _ = logging.New(logging.Options{Level: cfg.Logging.Level, Format: "console"})
		}
		c.logger = logger
	})
	return c.logger
}

// commandLogger returns a logger annotated with the command path and a fresh
// correlation ID, plus a context carrying the same fields.
func (c *commandContext) commandLogger(cmd *cobra.Command) (context.Context, *slog.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = services.WithCommand(ctx, cmd.CommandPath())
	ctx = services.WithRequestID(ctx, uuid.NewString())
	return ctx, logging.WithContext(ctx, c.baseLogger())
}

// openStore opens the store on first use; close releases it.
func (c *commandContext) openStore() (*store.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	c.store = st
	return st, nil
}

func (c *commandContext) close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	return err
}

// catalogPath resolves the catalog CSV: --catalog first, then the most
// recent import, then the configured path.
func (c *commandContext) catalogPath(ctx context.Context) (string, string, error) {
	if c.catalogFlag != nil {
		if flagPath := strings.TrimSpace(*c.catalogFlag); flagPath != "" {
			expanded, err := config.ExpandPath(flagPath)
			if err != nil {
				return "", "", fmt.Errorf("resolve catalog path: %w", err)
			}
			return expanded, catalogFromFlag, nil
		}
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", "", err
	}
	st, err := c.openStore()
	if err != nil {
		return "", "", err
	}
	latest, err := st.LatestCatalogImport(ctx)
	switch {
	case err == nil:
		return latest.Path, catalogFromImport, nil
	case errors.Is(err, services.ErrNotFound):
		return cfg.Paths.CatalogCSV, catalogFromConfig, nil
	default:
		return "", "", err
	}
}

// loadCatalog loads the resolved catalog CSV.
func (c *commandContext) loadCatalog(ctx context.Context, logger *slog.Logger) (*catalog.Snapshot, string, error) {
	path, origin, err := c.catalogPath(ctx)
	if err != nil {
		return nil, "", err
	}
	snap, err := catalog.LoadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("load catalog: %w", err)
	}
	logger.Debug("catalog loaded",
		logging.String("path", path),
		logging.String("origin", origin),
		logging.Int("rows", snap.Len()),
	)
	return snap, origin, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
