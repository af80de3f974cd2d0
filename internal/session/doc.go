// Package session holds the per-invocation state shared by the CLI flows:
// the loaded catalog snapshot, the recommendation engine that caches the
// model fit from it, and the most recent book-search results.
//
// A Session replaces the process-wide state a long-running UI would keep.
// The CLI builds one per invocation and restores book results from the
// store, so nothing is held in package globals.
package session
