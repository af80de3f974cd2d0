// Package recommend ranks catalog titles by how similar their text is to a
// reference title.
//
// Fit builds a Model from a catalog snapshot: every item's composite
// document (type, genres, description) becomes an L2-normalized TF-IDF
// vector over a vocabulary shared by the whole snapshot, with English stop
// words excluded. Model.Recommend scores the reference item against every
// item with cosine similarity, orders the scores from high to low, drops
// the reference itself, and returns the next k items.
//
// A Model is bound to the snapshot version it was fit from and refuses to
// rank any other snapshot. Engine keeps the most recent Model so repeated
// requests against an unchanged snapshot skip the refit.
package recommend
