package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Naver credentials are not
// checked here; see RequireNaver.
func (c *Config) Validate() error {
	if err := c.validateNaver(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateBooks(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateNaver() error {
	if c.Naver.RequestsPerSecond <= 0 {
		return errors.New("naver.requests_per_second must be positive")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.TopK < 0 {
		return errors.New("recommend.top_k must be >= 0")
	}
	return nil
}

func (c *Config) validateBooks() error {
	if c.Books.Display < minBookDisplay || c.Books.Display > maxBookDisplay {
		return fmt.Errorf("books.display must be between %d and %d", minBookDisplay, maxBookDisplay)
	}
	if c.Books.MinDiscount < 0 || c.Books.MinDiscount > maxBookDiscountThreshold {
		return fmt.Errorf("books.min_discount must be between 0 and %d", maxBookDiscountThreshold)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	}
	return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
}
