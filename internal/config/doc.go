// Package config loads, normalizes, and validates marquee configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// NAVER_CLIENT_ID and NAVER_CLIENT_SECRET. The Config type centralizes every
// knob the CLI needs so catalog, database, export and log locations plus
// API credentials are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
