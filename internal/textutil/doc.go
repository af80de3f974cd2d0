// Package textutil provides text processing utilities for term weighting,
// similarity, substring matching, and filename sanitization.
//
// The primary use cases are:
//   - Tokenizing free text into lowercase terms with English stop words removed
//   - Building TF-IDF fingerprints over a corpus and comparing them with cosine
//     similarity
//   - Case-insensitive substring matching over optional text fields
//   - Sanitizing filenames for export paths
//
// A token is any run of two or more letters, digits, or underscores. Weights
// use raw term counts multiplied by a smoothed inverse document frequency,
// ln((1+N)/(1+df)) + 1, and fingerprints are L2-normalized before comparison.
package textutil
