// Package books filters and exports cached book-search results.
//
// Filters never mutate their input. Each returns a projection that keeps
// only the columns shown for that view.
package books
