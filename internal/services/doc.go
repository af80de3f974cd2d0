// Package services defines shared utilities consumed by the browsing flows
// and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp session IDs, command names, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures (bad input vs configuration vs upstream trouble) with errors.Is.
//
// Use these helpers when wiring new commands so operational behaviour stays
// uniform across the CLI.
package services
