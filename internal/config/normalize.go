package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeNaver()
	c.normalizeBooks()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.CatalogCSV, err = ExpandPath(strings.TrimSpace(c.Paths.CatalogCSV)); err != nil {
		return fmt.Errorf("paths.catalog_csv: %w", err)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = ExpandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ExportDir) == "" {
		c.Paths.ExportDir = defaultExportDir
	}
	if c.Paths.ExportDir, err = ExpandPath(c.Paths.ExportDir); err != nil {
		return fmt.Errorf("paths.export_dir: %w", err)
	}
	if c.Paths.LogDir, err = ExpandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeNaver() {
	c.Naver.ClientID = strings.TrimSpace(c.Naver.ClientID)
	if c.Naver.ClientID == "" {
		if value, ok := os.LookupEnv("NAVER_CLIENT_ID"); ok {
			c.Naver.ClientID = strings.TrimSpace(value)
		}
	}
	c.Naver.ClientSecret = strings.TrimSpace(c.Naver.ClientSecret)
	if c.Naver.ClientSecret == "" {
		if value, ok := os.LookupEnv("NAVER_CLIENT_SECRET"); ok {
			c.Naver.ClientSecret = strings.TrimSpace(value)
		}
	}
	c.Naver.BaseURL = strings.TrimRight(strings.TrimSpace(c.Naver.BaseURL), "/")
	if c.Naver.BaseURL == "" {
		c.Naver.BaseURL = defaultNaverBaseURL
	}
	if c.Naver.TimeoutSeconds <= 0 {
		c.Naver.TimeoutSeconds = defaultNaverTimeout
	}
	if c.Naver.Burst <= 0 {
		c.Naver.Burst = defaultNaverBurst
	}
}

func (c *Config) normalizeBooks() {
	if c.Books.Display == 0 {
		c.Books.Display = defaultBookDisplay
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
